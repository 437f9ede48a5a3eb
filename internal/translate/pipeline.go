package translate

import (
	"fmt"

	"github.com/roach88/h2hpxml/internal/hpxml"
	"github.com/roach88/h2hpxml/internal/model"
	"github.com/roach88/h2hpxml/internal/source"
)

// Model fact names used in stage read/write declarations.
const (
	factFacilityType = "facility-type"
	factFloorArea    = "conditioned-floor-area"
	factStoreys      = "storeys"
	factInfiltration = "infiltration"
	factVolume       = "heated-volume"
)

// runContext is the state one translation run threads through its
// stages. Everything here is owned by the run; nothing is shared.
type runContext struct {
	house *source.Node // HouseFile root
	m     *model.Model
	cfg   Config
	doc   *hpxml.Document
	reg   *hpxml.Registry
}

// stage is one step of the translation pipeline. reads and writes
// declare the model facts the stage consumes and produces; the init
// check below turns an ordering mistake into a startup panic instead of
// a latent wrong-output bug.
type stage struct {
	name   string
	reads  []string
	writes []string
	run    func(*runContext) error
}

// stages is the fixed translation order. Later stages depend on facts
// earlier stages derive, so this slice must never be reordered without
// updating the declarations.
var stages = []stage{
	{
		name:   "building",
		writes: []string{factFacilityType, factFloorArea, factStoreys, factInfiltration, factVolume},
		run:    runBuilding,
	},
	{
		name: "weather",
		run:  runWeather,
	},
	{
		name:  "enclosure",
		reads: []string{factFacilityType, factInfiltration, factVolume},
		run:   runEnclosure,
	},
	{
		name:  "systems",
		reads: []string{factFloorArea, factInfiltration},
		run:   runSystems,
	},
	{
		name:  "loads",
		reads: []string{factFloorArea},
		run:   runLoads,
	},
}

func init() {
	// Every declared read must be satisfied by an earlier stage's write.
	written := make(map[string]bool)
	for _, s := range stages {
		for _, f := range s.reads {
			if !written[f] {
				panic(fmt.Sprintf("translate: stage %q reads %q before any stage writes it", s.name, f))
			}
		}
		for _, f := range s.writes {
			written[f] = true
		}
	}
}

// runStages executes the pipeline in declaration order, stopping at the
// first error so no partially inconsistent model flows forward.
func runStages(rc *runContext) error {
	for _, s := range stages {
		if err := s.run(rc); err != nil {
			return fmt.Errorf("stage %s: %w", s.name, err)
		}
	}
	return nil
}
