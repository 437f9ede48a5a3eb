package translate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/h2hpxml/internal/source"
	"github.com/roach88/h2hpxml/internal/testutil"
)

func TestFoldPlace(t *testing.T) {
	assert.Equal(t, "MONTREAL", foldPlace("Montréal"))
	assert.Equal(t, "MONTREAL", foldPlace("  montreal "))
	assert.Equal(t, "QUEBEC", foldPlace("Québec"))
	assert.Equal(t, "ST. JOHN'S", foldPlace("St. John's"))
}

func TestFindStationExactMatchIgnoresAccents(t *testing.T) {
	st, exact, _, ok := findStation("MONTREAL", 0, 0, false)
	require.True(t, ok)
	assert.True(t, exact)
	assert.Equal(t, "Montréal", st.Name)
}

func TestFindStationNearestFallback(t *testing.T) {
	// Kanata sits right beside Ottawa.
	st, exact, km, ok := findStation("Kanata", 45.30, -75.90, true)
	require.True(t, ok)
	assert.False(t, exact)
	assert.Equal(t, "Ottawa", st.Name)
	assert.Less(t, km, 30.0)
	assert.Greater(t, km, 0.0)
}

func TestFindStationUnknownWithoutCoords(t *testing.T) {
	_, _, _, ok := findStation("Nowhereville", 0, 0, false)
	assert.False(t, ok)
}

func TestHaversineKnownDistance(t *testing.T) {
	// Ottawa to Toronto is roughly 350 km.
	d := haversineKm(45.32, -75.67, 43.67, -79.63)
	assert.InDelta(t, 360, d, 30)
}

func TestWeatherExactMatchEmitsStation(t *testing.T) {
	out, err := translateHouse(t, testutil.DefaultHouse())
	require.NoError(t, err)

	root := target(t, out)
	name, err := root.Str("Building/BuildingDetails/ClimateandRiskZones/WeatherStation/Name")
	require.NoError(t, err)
	assert.Equal(t, "Ottawa", name)

	epw, err := root.Str("Building/BuildingDetails/ClimateandRiskZones/WeatherStation/extension/EPWFilePath")
	require.NoError(t, err)
	assert.Equal(t, "CAN_ON_Ottawa.716280_CWEC.epw", epw)
}

func TestWeatherNearestFallbackWarnsWithDistance(t *testing.T) {
	d := testutil.DefaultHouse()
	d.Weather = `<Weather>
		<Location>Kanata</Location>
		<Latitude>45.30</Latitude>
		<Longitude>-75.90</Longitude>
	</Weather>`

	out, err := translateHouse(t, d)
	require.NoError(t, err)

	var found bool
	for _, w := range out.Warnings {
		if strings.Contains(w.Message, "nearest station Ottawa") {
			found = true
			assert.Contains(t, w.Message, "km away")
		}
	}
	assert.True(t, found, "fallback must warn with the distance")
}

func TestWeatherUnknownLocationNoCoordsIsFatal(t *testing.T) {
	d := testutil.DefaultHouse()
	d.Weather = `<Weather><Location>Nowhereville</Location></Weather>`

	_, err := translateHouse(t, d)
	require.Error(t, err)
	assert.True(t, IsMappingError(err))
	assert.Contains(t, err.Error(), "Nowhereville")
}

func TestWeatherMissingLocationIsFatal(t *testing.T) {
	d := testutil.DefaultHouse()
	d.Weather = `<Weather><Latitude>45.3</Latitude><Longitude>-75.7</Longitude></Weather>`

	_, err := translateHouse(t, d)
	require.Error(t, err)
	assert.True(t, source.IsMissingMandatory(err))
}

func TestWeatherConfigOverrideWins(t *testing.T) {
	d := testutil.DefaultHouse()
	doc, err := source.Parse(strings.NewReader(d.XML()))
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Weather.Station = "Winnipeg"
	out, err := Translate(doc, cfg)
	require.NoError(t, err)

	root := target(t, out)
	name, err := root.Str("Building/BuildingDetails/ClimateandRiskZones/WeatherStation/Name")
	require.NoError(t, err)
	assert.Equal(t, "Winnipeg", name)
}

func TestWeatherConfigOverrideUnknownStationIsFatal(t *testing.T) {
	d := testutil.DefaultHouse()
	doc, err := source.Parse(strings.NewReader(d.XML()))
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Weather.Station = "Atlantis"
	_, err = Translate(doc, cfg)
	require.Error(t, err)
	assert.True(t, IsMappingError(err))
}
