package translate

import (
	"fmt"
	"math"

	"github.com/roach88/h2hpxml/internal/hpxml"
	"github.com/roach88/h2hpxml/internal/model"
	"github.com/roach88/h2hpxml/internal/source"
)

// heatingEquipment maps an H2K Type1 equipment code to its HPXML
// system type element. Closed table: an unmapped code is fatal.
type heatingEquipment struct {
	TypeElem     string // child of HeatingSystemType
	ElectricOnly bool   // baseboards must burn electricity
}

var equipmentCodes = map[string]heatingEquipment{
	"1": {TypeElem: "Furnace"},
	"2": {TypeElem: "Boiler"},
	"3": {TypeElem: "ElectricResistance", ElectricOnly: true},
}

// fuelCodes maps the H2K energy-source code to the HPXML fuel type.
var fuelCodes = map[string]string{
	"1": "electricity",
	"2": "natural gas",
	"3": "fuel oil",
	"4": "propane",
	"5": "wood",
}

// defaultEfficiency is the assumed AFUE fraction per fuel when the
// source carries no rated efficiency.
var defaultEfficiency = map[string]float64{
	"electricity": 1.00,
	"natural gas": 0.92,
	"fuel oil":    0.85,
	"propane":     0.92,
	"wood":        0.70,
}

// Sizing and heat-pump derating parameters.
const (
	// autosizeWPerM2 sizes unrated equipment from the conditioned floor
	// area at 50 W/m2, a conservative cold-climate envelope load.
	autosizeWPerM2 = 50.0
	autosizeMinKW  = 5.0

	// Heat pumps are rated at 8.33 C (47 F). Output falls off roughly
	// linearly below that; 1.12 %/C matches field-measured single-stage
	// air-source units. The retention curve point is reported at
	// -8.3 C (17 F), the standard low-temperature rating point.
	hpRatingTempC    = 8.33
	hpRetentionTempC = -8.3
	hpDeratePerC     = 0.0112
	hpMinRetention   = 0.1

	defaultHeatPumpCOP = 2.5
	defaultTankLitres  = 151.4 // 40 gal
)

// capacityRetention returns the fraction of rated heating capacity an
// air-source heat pump retains at tempC.
func capacityRetention(tempC float64) float64 {
	f := 1 - hpDeratePerC*(hpRatingTempC-tempC)
	return math.Max(hpMinRetention, f)
}

// runSystems maps the mechanical systems through the closed tables,
// sizes unrated equipment from facts the building stage derived, and
// registers each produced system under its role so attachments resolve
// during assembly.
func runSystems(rc *runContext) error {
	plant := rc.doc.Ensure("Building/BuildingDetails/Systems/HVAC/HVACPlant")

	equipment := rc.house.All("House/HeatingCooling/Type1/Equipment")
	heatPump, hasHeatPump := rc.house.Lookup("House/HeatingCooling/Type2/AirHeatPump")

	if len(equipment) == 0 && !hasHeatPump {
		return &source.ParseError{
			Code:    source.ErrCodeMissingMandatory,
			Path:    "HouseFile/House/HeatingCooling/Type1/Equipment",
			Message: "document declares no heating system",
		}
	}

	for i, eq := range equipment {
		node, id, err := translateHeatingSystem(rc, eq, len(equipment))
		if err != nil {
			return err
		}
		// With a heat pump present the Type1 plant is its backup;
		// staged equipment rebinds the role and the last stage wins.
		role := model.RolePrimaryHeating
		if hasHeatPump {
			role = model.RoleBackupHeating
		} else if i > 0 {
			role = model.RoleBackupHeating
		}
		if err := rc.m.RegisterSystem(role, id); err != nil {
			return err
		}
		plant.Add(node)
	}

	if hasHeatPump {
		node, id, err := translateHeatPump(rc, heatPump, len(equipment) > 0)
		if err != nil {
			return err
		}
		if err := rc.m.RegisterSystem(model.RolePrimaryHeating, id); err != nil {
			return err
		}
		plant.Add(node)
	}

	if hw, ok := rc.house.Lookup("House/Components/HotWater/Primary"); ok {
		node, id, err := translateWaterHeater(rc, hw)
		if err != nil {
			return err
		}
		if err := rc.m.RegisterSystem(model.RoleWaterHeating, id); err != nil {
			return err
		}
		rc.doc.Ensure("Building/BuildingDetails/Systems/WaterHeating").Add(node)
	}
	return nil
}

func translateHeatingSystem(rc *runContext, eq *source.Node, stageCount int) (*hpxml.Node, string, error) {
	node, id := rc.reg.NewEntity("HeatingSystem", "HeatingSystem")

	typeCode, err := eq.Code("EquipmentType")
	if err != nil {
		return nil, "", err
	}
	kind, ok := equipmentCodes[typeCode]
	if !ok {
		return nil, "", &MappingError{
			Code:     ErrCodeUnmappedEquipment,
			Table:    "heating-equipment",
			Path:     eq.Path() + "/EquipmentType",
			Value:    typeCode,
			EntityID: id,
		}
	}

	fuel, err := mapFuel(eq, "EnergySource", id)
	if err != nil {
		return nil, "", err
	}
	if kind.ElectricOnly && fuel != "electricity" {
		rc.m.AddWarning(model.SeverityMajor,
			fmt.Sprintf("baseboard heating cannot burn %s, forcing electricity", fuel),
			eq.Path()+"/EnergySource")
		fuel = "electricity"
	}

	capacityKW, err := sizedCapacityKW(rc, eq, "Specifications/OutputCapacity/@value")
	if err != nil {
		return nil, "", err
	}

	eff, err := eq.FloatOr("Specifications/Efficiency/@value", 0)
	if err != nil {
		return nil, "", err
	}
	if eff == 0 {
		eff = defaultEfficiency[fuel] * 100
		rc.m.AddWarning(model.SeverityNotice,
			fmt.Sprintf("no rated efficiency, assuming %.0f%% for %s", eff, fuel),
			eq.Path()+"/Specifications/Efficiency")
	}

	node.Add(
		hpxml.Elem("HeatingSystemType", hpxml.Elem(kind.TypeElem)),
		hpxml.TextElem("HeatingSystemFuel", fuel),
		hpxml.FloatElem("HeatingCapacity", round1(kwToBtuh(capacityKW))),
		hpxml.Elem("AnnualHeatingEfficiency",
			hpxml.TextElem("Units", "AFUE"),
			hpxml.FloatElem("Value", round3(eff/100)),
		),
		hpxml.FloatElem("FractionHeatLoadServed", round3(1/float64(stageCount))),
	)
	return node, id, nil
}

func translateHeatPump(rc *runContext, hp *source.Node, hasBackup bool) (*hpxml.Node, string, error) {
	node, id := rc.reg.NewEntity("HeatPump", "HeatPump")

	capacityKW, err := sizedCapacityKW(rc, hp, "Specifications/OutputCapacity/@value")
	if err != nil {
		return nil, "", err
	}

	cop, err := hp.FloatOr("Specifications/HeatingEfficiency/@cop", 0)
	if err != nil {
		return nil, "", err
	}
	if cop == 0 {
		cop = defaultHeatPumpCOP
		rc.m.AddWarning(model.SeverityNotice,
			fmt.Sprintf("no rated COP, assuming %.1f", defaultHeatPumpCOP),
			hp.Path()+"/Specifications/HeatingEfficiency")
	}

	if hasBackup {
		rc.reg.RecordReference(node, hp.Path(), "BackupSystem", model.RoleBackupHeating)
	}
	node.Add(
		hpxml.TextElem("HeatPumpType", "air-to-air"),
		hpxml.TextElem("HeatPumpFuel", "electricity"),
		hpxml.FloatElem("HeatingCapacity", round1(kwToBtuh(capacityKW))),
		hpxml.Elem("AnnualHeatingEfficiency",
			hpxml.TextElem("Units", "COP"),
			hpxml.FloatElem("Value", round3(cop)),
		),
		hpxml.FloatElem("FractionHeatLoadServed", 1),
		hpxml.Elem("extension",
			hpxml.Elem("HeatingCapacityRetention",
				hpxml.FloatElem("Fraction", round3(capacityRetention(hpRetentionTempC))),
				hpxml.FloatElem("Temperature", 17), // F, the -8.3 C rating point
			),
		),
	)
	return node, id, nil
}

func translateWaterHeater(rc *runContext, hw *source.Node) (*hpxml.Node, string, error) {
	node, id := rc.reg.NewEntity("WaterHeatingSystem", "WaterHeatingSystem")

	fuel, err := mapFuel(hw, "EnergySource", id)
	if err != nil {
		return nil, "", err
	}

	litres, err := hw.FloatOr("TankVolume/@value", 0)
	if err != nil {
		return nil, "", err
	}
	if litres == 0 {
		litres = defaultTankLitres
		rc.m.AddWarning(model.SeverityInfo,
			fmt.Sprintf("no tank volume, assuming %.0f L", defaultTankLitres),
			hw.Path()+"/TankVolume")
	}

	ef, err := hw.FloatOr("EnergyFactor/@value", 0)
	if err != nil {
		return nil, "", err
	}
	if ef == 0 {
		ef = defaultEfficiency[fuel] * 0.9 // tank losses on top of burner efficiency
		rc.m.AddWarning(model.SeverityNotice,
			fmt.Sprintf("no energy factor, assuming %.2f for %s", ef, fuel),
			hw.Path()+"/EnergyFactor")
	}

	node.Add(
		hpxml.TextElem("FuelType", fuel),
		hpxml.TextElem("WaterHeaterType", "storage water heater"),
		hpxml.FloatElem("TankVolume", round1(litresToGal(litres))),
		hpxml.FloatElem("EnergyFactor", round3(ef)),
		hpxml.FloatElem("FractionDHWLoadServed", 1),
	)
	return node, id, nil
}

// mapFuel reads a coded energy source and maps it through the closed
// fuel table.
func mapFuel(n *source.Node, path, entityID string) (string, error) {
	code, err := n.Code(path)
	if err != nil {
		return "", err
	}
	fuel, ok := fuelCodes[code]
	if !ok {
		return "", &MappingError{
			Code:     ErrCodeUnmappedFuel,
			Table:    "energy-source",
			Path:     n.Path() + "/" + path,
			Value:    code,
			EntityID: entityID,
		}
	}
	return fuel, nil
}

// sizedCapacityKW reads a rated output capacity, falling back to a
// floor-area autosize when the source leaves it blank. The fallback is
// why the systems stage runs after building: it reads the conditioned
// floor area fact.
func sizedCapacityKW(rc *runContext, n *source.Node, path string) (float64, error) {
	kw, err := n.FloatOr(path, 0)
	if err != nil {
		return 0, err
	}
	if kw < 0 {
		return 0, &GeometryError{
			Code:    ErrCodeBadGeometry,
			Path:    n.Path() + "/" + path,
			Value:   fmtFloat(kw),
			Message: "output capacity must not be negative",
		}
	}
	if kw > 0 {
		return kw, nil
	}
	area, _ := rc.m.ConditionedFloorArea()
	kw = math.Max(autosizeMinKW, area*autosizeWPerM2/1000)
	rc.m.AddWarning(model.SeverityNotice,
		fmt.Sprintf("no rated capacity, autosizing %.1f kW from floor area", kw),
		n.Path()+"/"+path)
	return kw, nil
}
