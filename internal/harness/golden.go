package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RunWithGolden loads and runs a scenario, reports every unmet
// expectation, and compares a successful translation's document against
// testdata/golden/{name}.golden byte for byte.
//
// To regenerate golden files after an intentional output change:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenarioPath string) *Result {
	t.Helper()

	scenario, err := LoadScenario(scenarioPath)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}

	result, err := Run(scenario)
	if err != nil {
		t.Fatalf("run scenario %s: %v", scenario.Name, err)
	}

	for _, failure := range result.Failures {
		t.Errorf("scenario %s: %s", scenario.Name, failure)
	}

	if result.Outcome != nil && result.Outcome.OK {
		g := goldie.New(t,
			goldie.WithFixtureDir("testdata/golden"),
			goldie.WithNameSuffix(".golden"),
		)
		g.Assert(t, scenario.Name, result.Outcome.Document)
	}

	return result
}
