// Package testutil provides shared H2K document fixtures for tests.
package testutil

import "fmt"

// HouseDoc assembles an H2K document from replaceable blocks so a test
// can describe exactly one deviation from a known-good document.
// An empty block omits the section entirely.
type HouseDoc struct {
	Weather        string
	Specifications string
	Infiltration   string
	Components     string
	Heating        string
	BaseLoads      string
}

// DefaultHouse returns a minimal valid document: Ottawa weather, one
// wall carrying one window, a natural-gas furnace, and an electric
// water heater.
func DefaultHouse() *HouseDoc {
	return &HouseDoc{
		Weather: `<Weather>
			<Location>Ottawa</Location>
			<Latitude>45.32</Latitude>
			<Longitude>-75.67</Longitude>
		</Weather>`,
		Specifications: `<Specifications>
			<FacilityType code="1">Single detached</FacilityType>
			<Storeys code="3">Two storeys</Storeys>
			<HeatedFloorArea aboveGrade="92.9" belowGrade="0"/>
			<HouseVolume total="357.8"/>
		</Specifications>`,
		Infiltration: `<NaturalAirInfiltration>
			<Specifications>
				<BlowerTest airChangeRate="3.57"/>
			</Specifications>
		</NaturalAirInfiltration>`,
		Components: `<Components>
			<Wall id="A1">
				<Measurements height="2.44" perimeter="38.7"/>
				<Construction>
					<Layers>
						<Layer rsi="0.6"/>
						<Layer rsi="2.1"/>
					</Layers>
				</Construction>
				<Components>
					<Window id="W1">
						<Measurements height="1.2" width="1.5"/>
						<Construction rsi="0.4"/>
					</Window>
				</Components>
			</Wall>
			<HotWater>
				<Primary>
					<EnergySource code="1">Electricity</EnergySource>
					<TankVolume value="189.3"/>
					<EnergyFactor value="0.89"/>
				</Primary>
			</HotWater>
		</Components>`,
		Heating: `<HeatingCooling>
			<Type1>
				<Equipment>
					<EquipmentType code="1">Furnace</EquipmentType>
					<EnergySource code="2">Natural gas</EnergySource>
					<Specifications>
						<OutputCapacity value="18.5"/>
						<Efficiency value="95"/>
					</Specifications>
				</Equipment>
			</Type1>
		</HeatingCooling>`,
		BaseLoads: `<BaseLoads>
			<Occupancy adults="2" children="2"/>
		</BaseLoads>`,
	}
}

// XML renders the document.
func (d *HouseDoc) XML() string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<HouseFile>
	<ProgramInformation>
		%s
	</ProgramInformation>
	<House>
		%s
		%s
		%s
		%s
		%s
	</House>
</HouseFile>`, d.Weather, d.Specifications, d.Infiltration, d.Components, d.Heating, d.BaseLoads)
}
