package translate

import (
	"github.com/roach88/h2hpxml/internal/hpxml"
	"github.com/roach88/h2hpxml/internal/model"
	"github.com/roach88/h2hpxml/internal/source"
)

// Default RSI values assumed for openings the source leaves unrated.
const (
	defaultWindowRSI = 0.35 // double glazed, air filled
	defaultDoorRSI   = 0.98 // insulated steel
	defaultSHGC      = 0.6
)

// runEnclosure walks every envelope component, computes composite
// assembly resistances, allocates identifiers, and records attachment
// references. Windows and doors sit nested under their wall in the
// source; the attachment becomes an AttachedToWall reference resolved
// against the wall's role, never a guessed identifier.
func runEnclosure(rc *runContext) error {
	enclosure := rc.doc.Ensure("Building/BuildingDetails/Enclosure")

	// Infiltration first: it reads facts the building stage derived.
	ach, _ := rc.m.InfiltrationACH()
	volume, _ := rc.m.HeatedVolume()
	meas, _ := rc.reg.NewEntity("AirInfiltrationMeasurement", "AirInfiltrationMeasurement")
	meas.Add(
		hpxml.IntElem("HousePressure", 50),
		hpxml.Elem("BuildingAirLeakage",
			hpxml.TextElem("UnitofMeasure", "ACH"),
			hpxml.FloatElem("AirLeakage", ach),
		),
		hpxml.FloatElem("InfiltrationVolume", round1(m3ToFt3(volume))),
	)
	enclosure.Ensure("AirInfiltration").Add(meas)

	var windows, doors []*hpxml.Node

	walls := rc.house.All("House/Components/Wall")
	for _, wall := range walls {
		wallNode, wins, drs, err := translateWall(rc, wall)
		if err != nil {
			return err
		}
		enclosure.Ensure("Walls").Add(wallNode)
		windows = append(windows, wins...)
		doors = append(doors, drs...)
	}

	for _, b := range rc.house.All("House/Components/Basement") {
		fw, slab, err := translateBasement(rc, b)
		if err != nil {
			return err
		}
		enclosure.Ensure("FoundationWalls").Add(fw)
		enclosure.Ensure("Slabs").Add(slab)
	}
	for _, s := range rc.house.All("House/Components/Slab") {
		slab, err := translateSlab(rc, s)
		if err != nil {
			return err
		}
		enclosure.Ensure("Slabs").Add(slab)
	}

	if len(windows) > 0 {
		enclosure.Ensure("Windows").Add(windows...)
	}
	if len(doors) > 0 {
		enclosure.Ensure("Doors").Add(doors...)
	}
	return nil
}

// translateWall builds one Wall entity plus the windows and doors
// nested under it in the source.
func translateWall(rc *runContext, wall *source.Node) (*hpxml.Node, []*hpxml.Node, []*hpxml.Node, error) {
	node, id := rc.reg.NewEntity("Wall", "Wall")

	srcID, err := wall.Str("@id")
	if err != nil {
		return nil, nil, nil, err
	}
	if err := rc.m.RegisterSystem(model.WallRole(srcID), id); err != nil {
		return nil, nil, nil, err
	}

	height, err := wall.Float("Measurements/@height")
	if err != nil {
		return nil, nil, nil, err
	}
	perimeter, err := wall.Float("Measurements/@perimeter")
	if err != nil {
		return nil, nil, nil, err
	}
	area := height * perimeter
	if area <= 0 {
		return nil, nil, nil, &GeometryError{
			Code:     ErrCodeBadGeometry,
			Path:     wall.Path() + "/Measurements",
			Value:    fmtFloat(area),
			EntityID: id,
			Message:  "wall area must be positive",
		}
	}

	rsi, err := assemblyRSI(wall, id)
	if err != nil {
		return nil, nil, nil, err
	}

	insulation, _ := rc.reg.NewEntity("Insulation", "Insulation")
	insulation.Add(hpxml.FloatElem("AssemblyEffectiveRValue", round1(rsiToR(rsi))))

	node.Add(
		hpxml.Elem("WallType", hpxml.Elem("WoodStud")),
		hpxml.FloatElem("Area", round1(m2ToFt2(area))),
		insulation,
	)

	var windows, doors []*hpxml.Node
	for _, w := range wall.All("Components/Window") {
		win, err := translateWindow(rc, w, srcID)
		if err != nil {
			return nil, nil, nil, err
		}
		windows = append(windows, win)
	}
	for _, d := range wall.All("Components/Door") {
		door, err := translateDoor(rc, d, srcID)
		if err != nil {
			return nil, nil, nil, err
		}
		doors = append(doors, door)
	}
	return node, windows, doors, nil
}

func translateWindow(rc *runContext, win *source.Node, wallSrcID string) (*hpxml.Node, error) {
	node, id := rc.reg.NewEntity("Window", "Window")

	height, err := win.Float("Measurements/@height")
	if err != nil {
		return nil, err
	}
	width, err := win.Float("Measurements/@width")
	if err != nil {
		return nil, err
	}
	area := height * width
	if area <= 0 {
		return nil, &GeometryError{
			Code:     ErrCodeBadGeometry,
			Path:     win.Path() + "/Measurements",
			Value:    fmtFloat(area),
			EntityID: id,
			Message:  "window area must be positive",
		}
	}

	rsi, err := win.FloatOr("Construction/@rsi", 0)
	if err != nil {
		return nil, err
	}
	if rsi == 0 {
		rsi = defaultWindowRSI
		rc.m.AddWarning(model.SeverityNotice,
			"window has no rated RSI, assuming double glazing",
			win.Path())
	}

	node.Add(
		hpxml.FloatElem("Area", round1(m2ToFt2(area))),
		hpxml.FloatElem("UFactor", round3(1/rsiToR(rsi))),
		hpxml.FloatElem("SHGC", defaultSHGC),
	)
	rc.reg.RecordReference(node, win.Path(), "AttachedToWall", model.WallRole(wallSrcID))
	return node, nil
}

func translateDoor(rc *runContext, door *source.Node, wallSrcID string) (*hpxml.Node, error) {
	node, id := rc.reg.NewEntity("Door", "Door")

	height, err := door.Float("Measurements/@height")
	if err != nil {
		return nil, err
	}
	width, err := door.Float("Measurements/@width")
	if err != nil {
		return nil, err
	}
	area := height * width
	if area <= 0 {
		return nil, &GeometryError{
			Code:     ErrCodeBadGeometry,
			Path:     door.Path() + "/Measurements",
			Value:    fmtFloat(area),
			EntityID: id,
			Message:  "door area must be positive",
		}
	}

	rsi, err := door.FloatOr("Construction/@rsi", 0)
	if err != nil {
		return nil, err
	}
	if rsi == 0 {
		rsi = defaultDoorRSI
		rc.m.AddWarning(model.SeverityInfo,
			"door has no rated RSI, assuming insulated steel",
			door.Path())
	}

	rc.reg.RecordReference(node, door.Path(), "AttachedToWall", model.WallRole(wallSrcID))
	node.Add(
		hpxml.FloatElem("Area", round1(m2ToFt2(area))),
		hpxml.FloatElem("RValue", round1(rsiToR(rsi))),
	)
	return node, nil
}

func translateBasement(rc *runContext, b *source.Node) (*hpxml.Node, *hpxml.Node, error) {
	fw, fwID := rc.reg.NewEntity("FoundationWall", "FoundationWall")

	height, err := b.Float("Wall/Measurements/@height")
	if err != nil {
		return nil, nil, err
	}
	perimeter, err := b.Float("Wall/Measurements/@perimeter")
	if err != nil {
		return nil, nil, err
	}
	if height*perimeter <= 0 {
		return nil, nil, &GeometryError{
			Code:     ErrCodeBadGeometry,
			Path:     b.Path() + "/Wall/Measurements",
			Value:    fmtFloat(height * perimeter),
			EntityID: fwID,
			Message:  "foundation wall area must be positive",
		}
	}

	bw, ok := b.Lookup("Wall")
	if !ok {
		return nil, nil, &source.ParseError{
			Code:    source.ErrCodeMissingMandatory,
			Path:    b.Path() + "/Wall",
			Message: "mandatory field is missing",
		}
	}
	rsi, err := assemblyRSI(bw, fwID)
	if err != nil {
		return nil, nil, err
	}

	insulation, _ := rc.reg.NewEntity("Insulation", "Insulation")
	insulation.Add(hpxml.FloatElem("AssemblyEffectiveRValue", round1(rsiToR(rsi))))
	fw.Add(
		hpxml.FloatElem("Height", round1(mToFt(height))),
		hpxml.FloatElem("Area", round1(m2ToFt2(height*perimeter))),
		insulation,
	)

	slab, err := translateSlab(rc, b)
	if err != nil {
		return nil, nil, err
	}
	return fw, slab, nil
}

func translateSlab(rc *runContext, s *source.Node) (*hpxml.Node, error) {
	node, id := rc.reg.NewEntity("Slab", "Slab")

	area, err := s.Float("Floor/Measurements/@area")
	if err != nil {
		return nil, err
	}
	perimeter, err := s.Float("Floor/Measurements/@perimeter")
	if err != nil {
		return nil, err
	}
	if area <= 0 {
		return nil, &GeometryError{
			Code:     ErrCodeBadGeometry,
			Path:     s.Path() + "/Floor/Measurements",
			Value:    fmtFloat(area),
			EntityID: id,
			Message:  "slab area must be positive",
		}
	}

	node.Add(
		hpxml.FloatElem("Area", round1(m2ToFt2(area))),
		hpxml.FloatElem("ExposedPerimeter", round1(mToFt(perimeter))),
	)
	return node, nil
}

// assemblyRSI computes the composite resistance of a component's
// construction: parallel Composite sections when present, else serial
// Layers. A construction with neither is malformed source data.
func assemblyRSI(component *source.Node, entityID string) (float64, error) {
	sections := component.All("Construction/Composite/Section")
	if len(sections) > 0 {
		paths := make([]ParallelPath, 0, len(sections))
		for _, sec := range sections {
			pct, err := sec.Float("@percentage")
			if err != nil {
				return 0, err
			}
			rsi, err := sec.Float("@rsi")
			if err != nil {
				return 0, err
			}
			paths = append(paths, ParallelPath{Fraction: pct / 100, R: rsi})
		}
		r, err := ParallelR(paths)
		if err != nil {
			return 0, &GeometryError{
				Code:     ErrCodeBadGeometry,
				Path:     component.Path() + "/Construction/Composite",
				Value:    err.Error(),
				EntityID: entityID,
				Message:  "inconsistent composite sections",
			}
		}
		return r, nil
	}

	layers := component.All("Construction/Layers/Layer")
	if len(layers) > 0 {
		rs := make([]float64, 0, len(layers))
		for _, l := range layers {
			rsi, err := l.Float("@rsi")
			if err != nil {
				return 0, err
			}
			if rsi <= 0 {
				return 0, &GeometryError{
					Code:     ErrCodeBadGeometry,
					Path:     l.Path(),
					Value:    fmtFloat(rsi),
					EntityID: entityID,
					Message:  "layer resistance must be positive",
				}
			}
			rs = append(rs, rsi)
		}
		return SerialR(rs), nil
	}

	return 0, &source.ParseError{
		Code:    source.ErrCodeMissingMandatory,
		Path:    component.Path() + "/Construction",
		Message: "construction has no layers and no composite sections",
	}
}
