package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMod(t *testing.T) {
	assert.Equal(t, 0, Mod(12, 12))
	assert.Equal(t, 11, Mod(-1, 12))
	assert.Equal(t, 1, Mod(-23, 12))
	assert.Equal(t, int8(3), Mod(int8(15), int8(12)))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1.0, Clamp(1.5, 0.0, 1.0))
	assert.Equal(t, 0.0, Clamp(-0.2, 0.0, 1.0))
	assert.Equal(t, 5, Clamp(5, 0, 11))
}

func TestMeanAndSum(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 0.0, Sum(nil))
	assert.InDelta(t, 2.0, Mean([]float64{1, 2, 3}), 1e-12)
	assert.InDelta(t, 6.0, Sum([]float64{1, 2, 3}), 1e-12)
}

func TestWeightedMean(t *testing.T) {
	assert.InDelta(t, 2.5, WeightedMean([]float64{1, 3}, []float64{1, 3}), 1e-12)
	// mismatched weights fall back to the plain mean
	assert.InDelta(t, 2.0, WeightedMean([]float64{1, 3}, []float64{1}), 1e-12)
}

func TestClarity(t *testing.T) {
	assert.Equal(t, 0.0, Clarity(nil))
	assert.InDelta(t, 0.5, Clarity([]float64{2, 4}), 1e-12)
	assert.InDelta(t, 0.0, Clarity([]float64{3, 3, 1}), 1e-12)
	assert.Equal(t, 0.0, Clarity([]float64{0, 0}))
}

func TestAlmostEqual(t *testing.T) {
	assert.True(t, AlmostEqual(0.1+0.2, 0.3))
	assert.False(t, AlmostEqual(0.3, 0.31))
}
