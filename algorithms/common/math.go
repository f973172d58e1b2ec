package common

import (
	"math"
	"sort"

	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Basic numeric helpers shared by the scoring code, using gonum for the float work

// Epsilon is the tolerance used when comparing scores
const Epsilon = 1e-9

// Mean calculates the arithmetic mean of a slice using gonum
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// Sum adds up a slice using gonum
func Sum(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return floats.Sum(data)
}

// WeightedMean calculates a weighted mean. Missing or zero total weight falls
// back to the plain mean.
func WeightedMean(data, weights []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	if len(weights) != len(data) || floats.Sum(weights) == 0 {
		return Mean(data)
	}
	return stat.Mean(data, weights)
}

// Clarity measures how far the best score stands out from the runner-up:
// (best - second) / best. Scores need not be sorted.
func Clarity(scores []float64) float64 {
	if len(scores) == 0 {
		return 0.0
	}
	if len(scores) == 1 {
		return Clamp(scores[0], 0, 1)
	}

	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	if sorted[0] <= 0 {
		return 0.0
	}
	return (sorted[0] - sorted[1]) / sorted[0]
}

// Mod returns the non-negative remainder of value / modulus
func Mod[T constraints.Integer](value, modulus T) T {
	r := value % modulus
	if r < 0 {
		r += modulus
	}
	return r
}

// Clamp constrains value to the range [min, max]
func Clamp[T constraints.Integer | constraints.Float](value, min, max T) T {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// AlmostEqual reports whether two scores are equal within Epsilon
func AlmostEqual(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}
