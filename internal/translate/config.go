package translate

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Config carries the caller-supplied settings the translation reads.
// The core only ever consumes typed values from it; file discovery and
// merging happen in the CLI layer.
type Config struct {
	Weather    WeatherConfig    `yaml:"weather"`
	Simulation SimulationConfig `yaml:"simulation"`
}

// WeatherConfig controls weather-station selection.
type WeatherConfig struct {
	// Station forces a named station from the table, bypassing the
	// nearest-match search. Empty means derive from the source document.
	Station string `yaml:"station"`
}

// SimulationConfig carries flags passed through to the downstream
// simulation engine via the emitted SimulationControl extension.
type SimulationConfig struct {
	// TimestepMinutes is the engine timestep. Zero means engine default.
	TimestepMinutes int `yaml:"timestep_minutes"`

	// DaylightSaving toggles daylight-saving handling in the engine.
	DaylightSaving bool `yaml:"daylight_saving"`
}

// DefaultConfig returns the settings used when the caller supplies none.
func DefaultConfig() Config {
	return Config{
		Simulation: SimulationConfig{TimestepMinutes: 60},
	}
}

// ParseConfig decodes a YAML config. Unknown keys are rejected so a
// typo'd setting fails loudly instead of silently using a default.
func ParseConfig(r io.Reader) (Config, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Simulation.TimestepMinutes < 0 {
		return Config{}, fmt.Errorf("parse config: timestep_minutes must be non-negative")
	}
	return cfg, nil
}
