package translate

import (
	"fmt"

	"github.com/roach88/h2hpxml/internal/hpxml"
	"github.com/roach88/h2hpxml/internal/model"
)

// facilityCodes maps the H2K house-type code to the HPXML residential
// facility type. The set is deliberately closed to two values: every
// later stage assumes one of exactly these, so an unmapped code is fatal
// rather than defaulted.
var facilityCodes = map[string]model.FacilityType{
	"1": model.FacilityDetached, // single detached
	"2": model.FacilityAttached, // double / row end unit
	"3": model.FacilityAttached, // row mid unit
}

// storeyCodes maps the H2K storey code to a whole storey count.
// Half storeys count as full: they are conditioned floor levels.
var storeyCodes = map[string]int{
	"1": 1, // one storey
	"2": 2, // one and a half
	"3": 2, // two
	"4": 3, // two and a half
	"5": 3, // three
}

// defaultACH50 is assumed when the document carries no blower-door
// test, matching the conventional untested-house assumption.
const defaultACH50 = 4.55

// assumedCeilingHeightM backs the heated-volume fallback when the
// source omits HouseVolume.
const assumedCeilingHeightM = 2.5

// runBuilding derives the building and occupancy facts every later
// stage reads, and emits the BuildingSummary section.
func runBuilding(rc *runContext) error {
	spec, ok := rc.house.Lookup("House/Specifications")
	if !ok {
		_, err := rc.house.Str("House/Specifications")
		return err
	}

	facilityCode, err := spec.Code("FacilityType")
	if err != nil {
		return err
	}
	facility, ok := facilityCodes[facilityCode]
	if !ok {
		return &MappingError{
			Code:  ErrCodeUnmappedFacility,
			Table: "facility",
			Path:  "House/Specifications/FacilityType",
			Value: facilityCode,
		}
	}
	if err := rc.m.SetFacilityType(facility); err != nil {
		return err
	}

	storeyCode, err := spec.Code("Storeys")
	if err != nil {
		return err
	}
	storeys, ok := storeyCodes[storeyCode]
	if !ok {
		return &MappingError{
			Code:  ErrCodeUnmappedStoreys,
			Table: "storeys",
			Path:  "House/Specifications/Storeys",
			Value: storeyCode,
		}
	}
	if err := rc.m.SetStoreyCount(storeys); err != nil {
		return err
	}

	above, err := spec.Float("HeatedFloorArea/@aboveGrade")
	if err != nil {
		return err
	}
	below, err := spec.FloatOr("HeatedFloorArea/@belowGrade", 0)
	if err != nil {
		return err
	}
	if err := rc.m.SetConditionedFloorArea(above + below); err != nil {
		return err
	}

	volume, err := spec.FloatOr("HouseVolume/@total", 0)
	if err != nil {
		return err
	}
	if volume == 0 {
		volume = (above + below) * assumedCeilingHeightM
		rc.m.AddWarning(model.SeverityNotice,
			fmt.Sprintf("house volume missing, assuming %.1f m ceiling height", assumedCeilingHeightM),
			"House/Specifications/HouseVolume")
	}
	if err := rc.m.SetHeatedVolume(volume); err != nil {
		return err
	}

	ach, err := rc.house.FloatOr("House/NaturalAirInfiltration/Specifications/BlowerTest/@airChangeRate", 0)
	if err != nil {
		return err
	}
	if ach == 0 {
		ach = defaultACH50
		rc.m.AddWarning(model.SeverityNotice,
			fmt.Sprintf("no blower-door test, assuming %.2f ACH50", defaultACH50),
			"House/NaturalAirInfiltration")
	}
	if err := rc.m.SetInfiltrationACH(ach); err != nil {
		return err
	}

	adults, err := rc.house.FloatOr("House/BaseLoads/Occupancy/@adults", 2)
	if err != nil {
		return err
	}
	children, err := rc.house.FloatOr("House/BaseLoads/Occupancy/@children", 1)
	if err != nil {
		return err
	}
	if _, ok := rc.house.Lookup("House/BaseLoads/Occupancy"); !ok {
		rc.m.AddWarning(model.SeverityInfo,
			"occupancy missing, assuming 2 adults and 1 child",
			"House/BaseLoads/Occupancy")
	}

	summary := rc.doc.Ensure("Building/BuildingDetails/BuildingSummary")
	summary.Ensure("BuildingOccupancy").Add(
		hpxml.FloatElem("NumberofResidents", adults+children),
	)
	summary.Ensure("BuildingConstruction").Add(
		hpxml.TextElem("ResidentialFacilityType", string(facility)),
		hpxml.IntElem("NumberofConditionedFloorsAboveGrade", storeys),
		hpxml.FloatElem("ConditionedFloorArea", round1(m2ToFt2(above+below))),
		hpxml.FloatElem("ConditionedBuildingVolume", round1(m3ToFt3(volume))),
	)
	return nil
}
