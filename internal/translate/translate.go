package translate

import (
	"fmt"

	"github.com/roach88/h2hpxml/internal/hpxml"
	"github.com/roach88/h2hpxml/internal/model"
	"github.com/roach88/h2hpxml/internal/source"
)

// Outcome is the result of one translation run.
type Outcome struct {
	// Document is the serialized HPXML, nil when OK is false.
	Document []byte

	// Warnings is the run's ordered warning log. Populated on failure
	// too: warnings recorded before the fatal error are still useful.
	Warnings []model.Warning

	// RunToken correlates this run across logs and batch records.
	RunToken string

	// OK reports whether a document was produced.
	OK bool
}

// Translate runs the full pipeline over a parsed H2K document.
//
// Each call owns a fresh semantic model, so concurrent calls on
// different documents are safe. The returned Outcome is non-nil even on
// error; on error its Document is nil and OK is false.
func Translate(src *source.Document, cfg Config) (*Outcome, error) {
	m := model.New()
	out := &Outcome{RunToken: m.RunToken()}

	house := src.Root()
	if house.Name() != "HouseFile" {
		out.Warnings = m.Warnings()
		return out, &source.ParseError{
			Code:    source.ErrCodeMalformedXML,
			Path:    house.Name(),
			Message: "root element is not HouseFile",
		}
	}

	doc := hpxml.NewDocument()
	reg := hpxml.NewRegistry(m)
	rc := &runContext{house: house, m: m, cfg: cfg, doc: doc, reg: reg}

	writeHeader(rc)
	writeBuildingShell(rc)

	if err := runStages(rc); err != nil {
		out.Warnings = m.Warnings()
		return out, err
	}

	// Assembly: the model is read-only from here (warnings excepted).
	m.Freeze()
	if err := reg.ResolveAll(); err != nil {
		out.Warnings = m.Warnings()
		return out, err
	}

	serialized, err := doc.Serialize()
	if err != nil {
		out.Warnings = m.Warnings()
		return out, fmt.Errorf("assemble: %w", err)
	}

	out.Document = serialized
	out.Warnings = m.Warnings()
	out.OK = true
	return out, nil
}

// writeHeader emits the transaction header and the software section,
// including the simulation flags passed through from the config.
// Nothing here is derived from the source document, so it carries no
// timestamps: the same source and config must serialize identically.
func writeHeader(rc *runContext) {
	header := rc.doc.Ensure("XMLTransactionHeaderInformation")
	header.Add(
		hpxml.TextElem("XMLType", "HPXML"),
		hpxml.TextElem("XMLGeneratedBy", "h2hpxml"),
		hpxml.TextElem("Transaction", "create"),
	)

	sw := rc.doc.Ensure("SoftwareInfo")
	sim := sw.Ensure("extension/SimulationControl")
	if rc.cfg.Simulation.TimestepMinutes > 0 {
		sim.Add(hpxml.IntElem("Timestep", rc.cfg.Simulation.TimestepMinutes))
	}
	sim.Add(hpxml.BoolElem("DaylightSaving", rc.cfg.Simulation.DaylightSaving))
}

// writeBuildingShell emits the Building element skeleton that every
// later stage hangs its sections off. BuildingID comes first so the
// serialized child order matches the schema's sequence.
func writeBuildingShell(rc *runContext) {
	b := rc.doc.Ensure("Building")
	b.Add(hpxml.Elem("BuildingID").SetAttr("id", rc.reg.AllocateID("Building")))
	b.Ensure("ProjectStatus").Add(hpxml.TextElem("EventType", "audit"))
}
