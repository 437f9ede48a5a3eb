package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/h2hpxml/internal/translate"
)

// Scenario defines one end-to-end translation test case.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario covers.
	Description string `yaml:"description"`

	// Input is the H2K file to translate, relative to the scenario file.
	Input string `yaml:"input"`

	// Config overrides the default translation config.
	Config *translate.Config `yaml:"config,omitempty"`

	// Expect describes the required outcome.
	Expect Expect `yaml:"expect"`
}

// Expect describes a scenario's required outcome.
type Expect struct {
	// OK is whether the translation must produce a document.
	OK bool `yaml:"ok"`

	// ErrorContains is a substring the error must carry when OK is
	// false. Error codes work well here ("[E500]").
	ErrorContains string `yaml:"error_contains,omitempty"`

	// WarningsContain lists substrings that must each appear in some
	// warning message.
	WarningsContain []string `yaml:"warnings_contain,omitempty"`

	// Valid, when set, requires the emitted document to pass (or fail)
	// conformance validation.
	Valid *bool `yaml:"valid,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file. Unknown fields
// are rejected so a typo'd expectation fails loudly instead of silently
// passing. The input path is resolved relative to the scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if !filepath.IsAbs(scenario.Input) && scenario.Input != "" {
		scenario.Input = filepath.Join(filepath.Dir(path), scenario.Input)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Input == "" {
		return fmt.Errorf("input is required")
	}
	if _, err := os.Stat(s.Input); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", s.Input)
	}
	if !s.Expect.OK && s.Expect.ErrorContains == "" {
		return fmt.Errorf("expect.error_contains is required when expect.ok is false")
	}
	return nil
}

// config resolves the scenario's translation config.
func (s *Scenario) config() translate.Config {
	if s.Config != nil {
		return *s.Config
	}
	return translate.DefaultConfig()
}
