package translate

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/h2hpxml/internal/hpxml"
	"github.com/roach88/h2hpxml/internal/model"
)

// placeFolder strips combining marks so accented and unaccented
// spellings of the same place compare equal.
var placeFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldPlace normalizes a place name for table lookup: accents removed,
// case and surrounding space ignored.
func foldPlace(s string) string {
	folded, _, err := transform.String(placeFolder, s)
	if err != nil {
		folded = s
	}
	return strings.ToUpper(strings.TrimSpace(folded))
}

// earthRadiusKm for the haversine distance metric.
const earthRadiusKm = 6371.0

// haversineKm returns the great-circle distance between two points.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	rad := func(deg float64) float64 { return deg * math.Pi / 180 }
	dLat := rad(lat2 - lat1)
	dLon := rad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}

// findStation resolves a place name against the station table: exact
// folded-name match first, else nearest by haversine when coordinates
// are available. fallbackKm is meaningful only when exact is false.
func findStation(name string, lat, lon float64, haveCoords bool) (st Station, exact bool, fallbackKm float64, ok bool) {
	want := foldPlace(name)
	for _, s := range stations {
		if foldPlace(s.Name) == want {
			return s, true, 0, true
		}
	}
	if !haveCoords {
		return Station{}, false, 0, false
	}
	best := -1
	bestKm := math.MaxFloat64
	for i, s := range stations {
		if d := haversineKm(lat, lon, s.Latitude, s.Longitude); d < bestKm {
			best, bestKm = i, d
		}
	}
	return stations[best], false, bestKm, true
}

// runWeather selects the weather station and emits the climate section.
// The config's weather preference wins over the document; a preference
// naming an unknown station is fatal, not silently ignored.
func runWeather(rc *runContext) error {
	var st Station

	if pref := rc.cfg.Weather.Station; pref != "" {
		found, exact, _, ok := findStation(pref, 0, 0, false)
		if !ok || !exact {
			return &MappingError{
				Code:  ErrCodeUnknownLocation,
				Table: "weather-station",
				Path:  "weather.station (config)",
				Value: pref,
			}
		}
		st = found
	} else {
		name, err := rc.house.Str("ProgramInformation/Weather/Location")
		if err != nil {
			return err
		}
		lat, err := rc.house.FloatOr("ProgramInformation/Weather/Latitude", 0)
		if err != nil {
			return err
		}
		lon, err := rc.house.FloatOr("ProgramInformation/Weather/Longitude", 0)
		if err != nil {
			return err
		}
		haveCoords := lat != 0 || lon != 0

		found, exact, km, ok := findStation(name, lat, lon, haveCoords)
		if !ok {
			return &MappingError{
				Code:  ErrCodeUnknownLocation,
				Table: "weather-station",
				Path:  "ProgramInformation/Weather/Location",
				Value: name,
			}
		}
		if !exact {
			rc.m.AddWarning(model.SeverityNotice,
				fmt.Sprintf("no station named %q, using nearest station %s (%.1f km away)", name, found.Name, km),
				"ProgramInformation/Weather/Location")
		}
		st = found
	}

	node, _ := rc.reg.NewEntity("WeatherStation", "WeatherStation")
	node.Add(hpxml.TextElem("Name", st.Name))
	node.Ensure("extension").Add(hpxml.TextElem("EPWFilePath", st.EPW))

	rc.doc.Ensure("Building/BuildingDetails/ClimateandRiskZones").Add(node)
	return nil
}
