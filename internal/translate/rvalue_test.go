package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParallelRTwoPathAssembly(t *testing.T) {
	// 70% of the area at R=10, 30% at R=20:
	// 1/R = 0.7/10 + 0.3/20 = 0.085 -> R = 11.7647...
	r, err := ParallelR([]ParallelPath{
		{Fraction: 0.7, R: 10},
		{Fraction: 0.3, R: 20},
	})
	require.NoError(t, err)
	assert.InDelta(t, 1/(0.7/10+0.3/20), r, 1e-9)
	assert.InDelta(t, 11.7647, r, 1e-3)
}

func TestParallelRSinglePathIsIdentity(t *testing.T) {
	r, err := ParallelR([]ParallelPath{{Fraction: 1, R: 3.5}})
	require.NoError(t, err)
	assert.InDelta(t, 3.5, r, 1e-9)
}

func TestParallelRRejectsBadFractions(t *testing.T) {
	_, err := ParallelR([]ParallelPath{
		{Fraction: 0.7, R: 10},
		{Fraction: 0.2, R: 20}, // sums to 0.9
	})
	require.Error(t, err)

	_, err = ParallelR([]ParallelPath{{Fraction: -0.5, R: 10}, {Fraction: 1.5, R: 10}})
	require.Error(t, err)
}

func TestParallelRRejectsNonPositiveResistance(t *testing.T) {
	_, err := ParallelR([]ParallelPath{{Fraction: 1, R: 0}})
	require.Error(t, err)
}

func TestParallelRRejectsEmpty(t *testing.T) {
	_, err := ParallelR(nil)
	require.Error(t, err)
}

func TestSerialRSumsLayers(t *testing.T) {
	assert.InDelta(t, 3.3, SerialR([]float64{0.6, 2.1, 0.6}), 1e-9)
	assert.Zero(t, SerialR(nil))
}

func TestCapacityRetentionAtRatingPoint(t *testing.T) {
	assert.InDelta(t, 1.0, capacityRetention(hpRatingTempC), 1e-9)
}

func TestCapacityRetentionAtLowTempPoint(t *testing.T) {
	// 1 - 0.0112 * (8.33 - (-8.3)) = 0.8137
	assert.InDelta(t, 0.8137, capacityRetention(hpRetentionTempC), 1e-3)
}

func TestCapacityRetentionClampsAtFloor(t *testing.T) {
	assert.InDelta(t, hpMinRetention, capacityRetention(-100), 1e-9)
}
