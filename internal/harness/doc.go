// Package harness runs end-to-end translation scenarios from YAML.
//
// A scenario names an input H2K file, an optional translation config,
// and the expected outcome: success or a specific error, warning
// substrings, and whether the emitted document must pass conformance
// validation. Successful scenarios are additionally compared against a
// golden HPXML file, byte for byte.
//
// # Scenario Format
//
//	name: minimal_house
//	description: "One wall, one window, a gas furnace"
//	input: ../inputs/minimal_house.h2k
//	config:
//	  simulation:
//	    timestep_minutes: 60
//	expect:
//	  ok: true
//	  valid: true
//	  warnings_contain:
//	    - "no blower-door test"
//
// Paths are relative to the scenario file. Golden files live in
// testdata/golden/{name}.golden; regenerate with:
//
//	go test ./internal/harness -update
//
// Translation is deterministic for a fixed input and config, which is
// what makes byte-exact golden comparison possible.
package harness
