package translate

import (
	"math"
	"strconv"
)

// Unit conversions between the metric source and the imperial target.
const (
	ftPerM      = 3.2808399
	ft2PerM2    = 10.7639104
	ft3PerM3    = 35.3146667
	galPerLitre = 0.264172052
	rPerRSI     = 5.678263337 // h*ft2*F/Btu per m2*K/W
	kBtuhPerKW  = 3.412141633 // kBtu/h per kW
)

func mToFt(m float64) float64 { return m * ftPerM }

func m2ToFt2(m2 float64) float64 { return m2 * ft2PerM2 }

func m3ToFt3(m3 float64) float64 { return m3 * ft3PerM3 }

func litresToGal(l float64) float64 { return l * galPerLitre }

func rsiToR(rsi float64) float64 { return rsi * rPerRSI }

func kwToBtuh(kw float64) float64 { return kw * kBtuhPerKW * 1000 }

// round1 rounds to one decimal so emitted values stay stable across
// platforms and floating-point noise never reaches the document.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// round3 keeps three decimals for small magnitudes such as U-factors
// and retention fractions.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// fmtFloat renders a float for error messages without trailing noise.
func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
