package chroma

import (
	"math"

	"github.com/RyanBlaney/sonido-theory/algorithms/common"
	"github.com/RyanBlaney/sonido-theory/algorithms/pitch"
	"gonum.org/v1/gonum/floats"
)

// TonnetzPoint is a position in tonal-centroid space. Each coordinate pair
// places a pitch on one circle, in order fifths then minor thirds then major
// thirds.
type TonnetzPoint [6]float64

// TonnetzMovement summarizes a path through tonal-centroid space
type TonnetzMovement struct {
	TotalDistance  float64 `json:"total_distance"`
	MeanStep       float64 `json:"mean_step"`
	MaxStep        float64 `json:"max_step"`
	SmoothRatio    float64 `json:"smooth_ratio"`    // Share of steps shorter than the smooth threshold
	PathEfficiency float64 `json:"path_efficiency"` // Displacement over distance travelled
}

// Radii of the three circles
const (
	fifthsRadius      = 1.0
	minorThirdsRadius = 1.0
	majorThirdsRadius = 0.5

	// Steps below this count as smooth. Triads sharing two tones sit about
	// 0.8 apart.
	smoothStep = 1.0
)

// Tonnetz maps pitch-class sets onto the tonal-centroid lattice. Harmonically
// close sets (shared tones, fifth and third relations) land close together.
type Tonnetz struct {
	coordinates [12]TonnetzPoint
}

// NewTonnetz builds the coordinate table for all 12 pitch classes
func NewTonnetz() *Tonnetz {
	t := &Tonnetz{}
	for pc := 0; pc < 12; pc++ {
		p := float64(pc)
		t.coordinates[pc] = TonnetzPoint{
			fifthsRadius * math.Sin(p*7*math.Pi/6),
			fifthsRadius * math.Cos(p*7*math.Pi/6),
			minorThirdsRadius * math.Sin(p*3*math.Pi/2),
			minorThirdsRadius * math.Cos(p*3*math.Pi/2),
			majorThirdsRadius * math.Sin(p*2*math.Pi/3),
			majorThirdsRadius * math.Cos(p*2*math.Pi/3),
		}
	}
	return t
}

// Point returns the coordinates of a single pitch class
func (t *Tonnetz) Point(pc pitch.PitchClass) TonnetzPoint {
	return t.coordinates[pc.Normalize()]
}

// Centroid is the mean position of the members of a set. The empty set sits
// at the origin.
func (t *Tonnetz) Centroid(s PitchClassSet) TonnetzPoint {
	var centroid TonnetzPoint
	if s.IsEmpty() {
		return centroid
	}
	for _, pc := range s.Slice() {
		floats.Add(centroid[:], t.coordinates[pc][:])
	}
	floats.Scale(1/float64(s.Len()), centroid[:])
	return centroid
}

// Distance is the Euclidean distance between the centroids of two sets
func (t *Tonnetz) Distance(a, b PitchClassSet) float64 {
	ca, cb := t.Centroid(a), t.Centroid(b)
	return floats.Distance(ca[:], cb[:], 2)
}

// Trajectory returns the centroid of each set in order
func (t *Tonnetz) Trajectory(sets []PitchClassSet) []TonnetzPoint {
	trajectory := make([]TonnetzPoint, len(sets))
	for i, s := range sets {
		trajectory[i] = t.Centroid(s)
	}
	return trajectory
}

// Steps returns the distance between each pair of neighbouring points
func Steps(trajectory []TonnetzPoint) []float64 {
	if len(trajectory) < 2 {
		return []float64{}
	}
	steps := make([]float64, len(trajectory)-1)
	for i := 1; i < len(trajectory); i++ {
		steps[i-1] = floats.Distance(trajectory[i-1][:], trajectory[i][:], 2)
	}
	return steps
}

// AnalyzeMovement summarizes a trajectory. Fewer than two points give the
// zero value.
func AnalyzeMovement(trajectory []TonnetzPoint) TonnetzMovement {
	var movement TonnetzMovement
	steps := Steps(trajectory)
	if len(steps) == 0 {
		return movement
	}

	smooth := 0
	for _, step := range steps {
		movement.TotalDistance += step
		movement.MaxStep = math.Max(movement.MaxStep, step)
		if step < smoothStep {
			smooth++
		}
	}
	movement.MeanStep = common.Mean(steps)
	movement.SmoothRatio = float64(smooth) / float64(len(steps))

	if movement.TotalDistance > 1e-10 {
		first, last := trajectory[0], trajectory[len(trajectory)-1]
		movement.PathEfficiency = floats.Distance(first[:], last[:], 2) / movement.TotalDistance
	}
	return movement
}
