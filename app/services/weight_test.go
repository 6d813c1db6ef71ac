package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityWeightReferenceValues(t *testing.T) {
	cases := []struct {
		distance int
		want     float64
	}{
		{0, 0.00},
		{500, 0.66},
		{750, 0.90},
		{1000, 1.00},
		{1100, 1.10},
		{1500, 1.41},
		{2000, 1.69},
		{2500, 1.92},
		{3000, 2.10},
	}
	for _, tc := range cases {
		got, err := ActivityWeight(tc.distance)
		require.NoError(t, err, "distance %d", tc.distance)
		assert.InDelta(t, tc.want, got, 0.001, "distance %d", tc.distance)
	}
}

func TestActivityWeightNegativeDistance(t *testing.T) {
	_, err := ActivityWeight(-100)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestActivityWeightIncreasesBelowBaseline(t *testing.T) {
	prev := 0.0
	for d := 100; d <= WeightBaseline; d += 100 {
		w, err := ActivityWeight(d)
		require.NoError(t, err)
		assert.Greater(t, w, prev, "weight at %dm should exceed weight at %dm", d, d-100)
		prev = w
	}
	assert.InDelta(t, 1.0, prev, 0.001, "baseline distance earns the full weight")
}

func TestActivityWeightDiminishingReturnsAboveBaseline(t *testing.T) {
	distances := []int{1500, 2000, 2500, 3000}
	weights := make([]float64, len(distances))
	for i, d := range distances {
		w, err := ActivityWeight(d)
		require.NoError(t, err)
		weights[i] = w
	}
	for i := 1; i < len(weights); i++ {
		assert.Greater(t, weights[i], weights[i-1], "weight keeps increasing past the baseline")
	}
	for i := 2; i < len(weights); i++ {
		gain := weights[i] - weights[i-1]
		prevGain := weights[i-1] - weights[i-2]
		assert.Less(t, gain, prevGain, "each extra 500m earns less than the previous 500m")
	}
}
