package translate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/h2hpxml/internal/testutil"
)

func TestEnclosureWallAssemblyRValue(t *testing.T) {
	out, err := translateHouse(t, testutil.DefaultHouse())
	require.NoError(t, err)

	root := target(t, out)
	r, err := root.Float("Building/BuildingDetails/Enclosure/Walls/Wall/Insulation/AssemblyEffectiveRValue")
	require.NoError(t, err)
	// Layers 0.6 + 2.1 RSI in series, converted to imperial R.
	assert.InDelta(t, round1(rsiToR(2.7)), r, 1e-9)
}

func TestEnclosureCompositeWall(t *testing.T) {
	d := testutil.DefaultHouse()
	d.Components = `<Components>
		<Wall id="A1">
			<Measurements height="2.44" perimeter="38.7"/>
			<Construction>
				<Composite>
					<Section percentage="70" rsi="10"/>
					<Section percentage="30" rsi="20"/>
				</Composite>
			</Construction>
		</Wall>
	</Components>`

	out, err := translateHouse(t, d)
	require.NoError(t, err)

	root := target(t, out)
	r, err := root.Float("Building/BuildingDetails/Enclosure/Walls/Wall/Insulation/AssemblyEffectiveRValue")
	require.NoError(t, err)
	want := round1(rsiToR(1 / (0.7/10 + 0.3/20)))
	assert.InDelta(t, want, r, 1e-9)
}

func TestEnclosureCompositeBadFractionsFatal(t *testing.T) {
	d := testutil.DefaultHouse()
	d.Components = `<Components>
		<Wall id="A1">
			<Measurements height="2.44" perimeter="38.7"/>
			<Construction>
				<Composite>
					<Section percentage="70" rsi="10"/>
					<Section percentage="10" rsi="20"/>
				</Composite>
			</Construction>
		</Wall>
	</Components>`

	_, err := translateHouse(t, d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inconsistent composite sections")
}

func TestEnclosureConstructionWithoutLayersFatal(t *testing.T) {
	d := testutil.DefaultHouse()
	d.Components = `<Components>
		<Wall id="A1">
			<Measurements height="2.44" perimeter="38.7"/>
			<Construction/>
		</Wall>
	</Components>`

	_, err := translateHouse(t, d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no layers and no composite sections")
}

func TestEnclosureDuplicateWallIDFatal(t *testing.T) {
	d := testutil.DefaultHouse()
	d.Components = `<Components>
		<Wall id="A1">
			<Measurements height="2.44" perimeter="10"/>
			<Construction><Layers><Layer rsi="2"/></Layers></Construction>
		</Wall>
		<Wall id="A1">
			<Measurements height="2.44" perimeter="10"/>
			<Construction><Layers><Layer rsi="2"/></Layers></Construction>
		</Wall>
	</Components>`

	_, err := translateHouse(t, d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wall:A1")
}

func TestEnclosureWindowDefaultsWithWarning(t *testing.T) {
	d := testutil.DefaultHouse()
	d.Components = strings.Replace(d.Components, `<Construction rsi="0.4"/>`, "", 1)

	out, err := translateHouse(t, d)
	require.NoError(t, err)

	var warned bool
	for _, w := range out.Warnings {
		if strings.Contains(w.Message, "assuming double glazing") {
			warned = true
		}
	}
	assert.True(t, warned)

	root := target(t, out)
	u, err := root.Float("Building/BuildingDetails/Enclosure/Windows/Window/UFactor")
	require.NoError(t, err)
	assert.InDelta(t, round3(1/rsiToR(defaultWindowRSI)), u, 1e-9)
}

func TestEnclosureBasementEmitsFoundationWallAndSlab(t *testing.T) {
	d := testutil.DefaultHouse()
	// Anchor on the outer Components close tag, not the wall's nested one.
	d.Components = strings.Replace(d.Components, "\n\t\t</Components>", `
			<Basement id="B1">
				<Wall>
					<Measurements height="2.2" perimeter="30"/>
					<Construction><Layers><Layer rsi="1.5"/></Layers></Construction>
				</Wall>
				<Floor>
					<Measurements area="55" perimeter="30"/>
				</Floor>
			</Basement>
		</Components>`, 1)

	out, err := translateHouse(t, d)
	require.NoError(t, err)

	root := target(t, out)
	fw := root.All("Building/BuildingDetails/Enclosure/FoundationWalls/FoundationWall")
	require.Len(t, fw, 1)
	slabs := root.All("Building/BuildingDetails/Enclosure/Slabs/Slab")
	require.Len(t, slabs, 1)

	area, err := slabs[0].Float("Area")
	require.NoError(t, err)
	assert.InDelta(t, round1(m2ToFt2(55)), area, 1e-9)
}

func TestEnclosureDoorAttachesToWall(t *testing.T) {
	d := testutil.DefaultHouse()
	d.Components = strings.Replace(d.Components, `</Components>
			</Wall>`, `
				<Door id="D1">
					<Measurements height="2.0" width="0.9"/>
					<Construction rsi="1.1"/>
				</Door>
			</Components>
			</Wall>`, 1)

	out, err := translateHouse(t, d)
	require.NoError(t, err)

	root := target(t, out)
	wallID, err := root.Str("Building/BuildingDetails/Enclosure/Walls/Wall/SystemIdentifier/@id")
	require.NoError(t, err)

	doors := root.All("Building/BuildingDetails/Enclosure/Doors/Door")
	require.Len(t, doors, 1)
	ref, err := doors[0].Str("AttachedToWall/@idref")
	require.NoError(t, err)
	assert.Equal(t, wallID, ref)
}
