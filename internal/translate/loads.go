package translate

import (
	"github.com/roach88/h2hpxml/internal/hpxml"
)

// Fixed appliance defaults. H2K models base loads as aggregate energy,
// not individual appliances, so the appliance section is a fixed table
// the simulation engine expects rather than something derived from the
// source.
const (
	refrigeratorKWh = 650
	rangeFuel       = "electricity"
	dryerFuel       = "electricity"
)

// lightingFractions is the fixed lighting-group table: fraction of
// fixtures per lamp type, summing to 1.
var lightingFractions = []struct {
	TypeElem string
	Fraction float64
}{
	{"LightEmittingDiode", 0.2},
	{"CompactFluorescent", 0.2},
	{"Incandescent", 0.6},
}

// otherLoadKWhPerFt2 is the ANSI/RESNET 301 residual plug-load
// allowance: 0.91 kWh/year per square foot of conditioned floor area.
const otherLoadKWhPerFt2 = 0.91

// runLoads appends the remaining sections: appliances, lighting groups,
// and misc plug loads. Runs after systems so every identifier class the
// processors allocate is already counted when assembly freezes the model.
func runLoads(rc *runContext) error {
	details := rc.doc.Ensure("Building/BuildingDetails")

	appliances := details.Ensure("Appliances")

	fridge, _ := rc.reg.NewEntity("Refrigerator", "Refrigerator")
	fridge.Add(hpxml.FloatElem("RatedAnnualkWh", refrigeratorKWh))
	appliances.Add(fridge)

	washer, _ := rc.reg.NewEntity("ClothesWasher", "ClothesWasher")
	appliances.Add(washer)

	dryer, _ := rc.reg.NewEntity("ClothesDryer", "ClothesDryer")
	dryer.Add(hpxml.TextElem("FuelType", dryerFuel))
	appliances.Add(dryer)

	dishwasher, _ := rc.reg.NewEntity("Dishwasher", "Dishwasher")
	appliances.Add(dishwasher)

	cooking, _ := rc.reg.NewEntity("CookingRange", "CookingRange")
	cooking.Add(hpxml.TextElem("FuelType", rangeFuel))
	appliances.Add(cooking)

	lighting := details.Ensure("Lighting")
	for _, lf := range lightingFractions {
		group, _ := rc.reg.NewEntity("LightingGroup", "LightingGroup")
		group.Add(
			hpxml.TextElem("Location", "interior"),
			hpxml.FloatElem("FractionofUnitsInLocation", lf.Fraction),
			hpxml.Elem("LightingType", hpxml.Elem(lf.TypeElem)),
		)
		lighting.Add(group)
	}

	area, _ := rc.m.ConditionedFloorArea()
	plug, _ := rc.reg.NewEntity("PlugLoad", "PlugLoad")
	plug.Add(
		hpxml.TextElem("PlugLoadType", "other"),
		hpxml.Elem("Load",
			hpxml.TextElem("Units", "kWh/year"),
			hpxml.FloatElem("Value", round1(otherLoadKWhPerFt2*m2ToFt2(area))),
		),
	)
	details.Ensure("MiscLoads").Add(plug)
	return nil
}
