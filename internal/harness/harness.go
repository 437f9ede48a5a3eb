package harness

import (
	"fmt"
	"os"
	"strings"

	"github.com/roach88/h2hpxml/internal/conformance"
	"github.com/roach88/h2hpxml/internal/source"
	"github.com/roach88/h2hpxml/internal/translate"
)

// Result is the outcome of running one scenario.
type Result struct {
	// Outcome is the translation result, nil when the input could not
	// be parsed at all.
	Outcome *translate.Outcome

	// Err is the translation or parse error, nil on success.
	Err error

	// Failures lists every unmet expectation. Empty means the scenario
	// passed.
	Failures []string
}

// Pass reports whether every expectation held.
func (r *Result) Pass() bool {
	return len(r.Failures) == 0
}

// Run executes a scenario: translate the input, then check every
// expectation. The returned error covers harness-level problems only
// (unreadable input file); translation failures land in the Result so
// error scenarios can assert on them.
func Run(scenario *Scenario) (*Result, error) {
	data, err := os.ReadFile(scenario.Input)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	res := &Result{}

	doc, err := source.Parse(strings.NewReader(string(data)))
	if err != nil {
		res.Err = err
	} else {
		res.Outcome, res.Err = translate.Translate(doc, scenario.config())
	}

	res.Failures = check(scenario, res)
	return res, nil
}

// check evaluates every expectation against the run's outcome.
func check(scenario *Scenario, res *Result) []string {
	var failures []string
	expect := scenario.Expect

	ok := res.Outcome != nil && res.Outcome.OK
	if ok != expect.OK {
		if expect.OK {
			failures = append(failures, fmt.Sprintf("expected success, got error: %v", res.Err))
		} else {
			failures = append(failures, "expected failure, translation succeeded")
		}
	}

	if !expect.OK && expect.ErrorContains != "" {
		if res.Err == nil {
			failures = append(failures, fmt.Sprintf("expected error containing %q, got none", expect.ErrorContains))
		} else if !strings.Contains(res.Err.Error(), expect.ErrorContains) {
			failures = append(failures, fmt.Sprintf("error %q does not contain %q", res.Err, expect.ErrorContains))
		}
	}

	var warnings []string
	if res.Outcome != nil {
		for _, w := range res.Outcome.Warnings {
			warnings = append(warnings, w.Message)
		}
	}
	for _, want := range expect.WarningsContain {
		if !containsSubstring(warnings, want) {
			failures = append(failures, fmt.Sprintf("no warning contains %q (warnings: %v)", want, warnings))
		}
	}

	if expect.Valid != nil {
		if !ok {
			failures = append(failures, "expect.valid set but no document was produced")
		} else {
			vres := conformance.Validate(res.Outcome.Document)
			if vres.Valid != *expect.Valid {
				failures = append(failures, fmt.Sprintf("conformance valid=%v, want %v (issues: %v)", vres.Valid, *expect.Valid, vres.Errors))
			}
		}
	}

	return failures
}

func containsSubstring(haystack []string, want string) bool {
	for _, h := range haystack {
		if strings.Contains(h, want) {
			return true
		}
	}
	return false
}
