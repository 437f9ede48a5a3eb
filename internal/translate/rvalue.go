package translate

import (
	"fmt"
	"math"
)

// ParallelPath is one parallel heat-flow path through an assembly: an
// area fraction and the path's thermal resistance.
type ParallelPath struct {
	Fraction float64
	R        float64
}

// SerialR combines layered resistances in series: R_total = sum(R_i).
func SerialR(layers []float64) float64 {
	var total float64
	for _, r := range layers {
		total += r
	}
	return total
}

// ParallelR combines parallel paths by area-weighted conductance:
//
//	1/R_total = sum(fraction_i / R_i)
//
// Fractions must be positive and sum to 1 within tolerance; resistances
// must be positive. Violations are reported, never corrected, because a
// bad section table means the source assembly is inconsistent.
func ParallelR(paths []ParallelPath) (float64, error) {
	if len(paths) == 0 {
		return 0, fmt.Errorf("no parallel paths")
	}
	var fractionSum, conductance float64
	for i, p := range paths {
		if p.Fraction <= 0 {
			return 0, fmt.Errorf("path %d: area fraction %g must be positive", i, p.Fraction)
		}
		if p.R <= 0 {
			return 0, fmt.Errorf("path %d: resistance %g must be positive", i, p.R)
		}
		fractionSum += p.Fraction
		conductance += p.Fraction / p.R
	}
	if math.Abs(fractionSum-1) > 0.01 {
		return 0, fmt.Errorf("area fractions sum to %g, want 1", fractionSum)
	}
	return 1 / conductance, nil
}
