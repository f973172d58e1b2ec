package tonal

import (
	"github.com/RyanBlaney/sonido-theory/algorithms/chroma"
	"github.com/RyanBlaney/sonido-theory/algorithms/common"
	"github.com/RyanBlaney/sonido-theory/algorithms/pitch"
)

// HarmonicMovement describes how a chord sequence moves from chord to chord.
// Every per-transition slice has one entry fewer than there are chords.
type HarmonicMovement struct {
	// Root motion measured in steps around the circle of fifths, 0 to 6
	RootMotions []int `json:"root_motions"`
	// Share of transitions whose root moves by a fourth or fifth
	FifthsMotionRatio float64 `json:"fifths_motion_ratio"`
	CircleProgression bool    `json:"circle_progression"`

	CommonTones []int `json:"common_tones"`
	// Semitones each tone of the next chord lies from the nearest tone of
	// the previous chord, summed
	VoiceLeading []int   `json:"voice_leading"`
	Smoothness   float64 `json:"smoothness"` // Share of transitions moving no tone more than a whole step

	TonnetzSteps []float64              `json:"tonnetz_steps"`
	Tonnetz      chroma.TonnetzMovement `json:"tonnetz"`
}

// Share of fifth-wise root motion above which a sequence counts as a
// circle progression
const circleProgressionRatio = 0.6

var tonnetz = chroma.NewTonnetz()

// FifthsPosition is the position of a pitch class on the circle of fifths,
// C=0, G=1, D=2 and so on
func FifthsPosition(pc pitch.PitchClass) int {
	return common.Mod(int(pc)*7, 12)
}

// FifthsDistance is the number of steps between two pitch classes on the
// circle of fifths, 0 to 6
func FifthsDistance(a, b pitch.PitchClass) int {
	d := common.Mod(FifthsPosition(b)-FifthsPosition(a), 12)
	return min(d, 12-d)
}

// VoiceLeadingCost returns the summed and the largest distance from each tone
// of next to the nearest tone of prev
func VoiceLeadingCost(prev, next chroma.PitchClassSet) (total, largest int) {
	if prev.IsEmpty() {
		return 0, 0
	}
	for _, target := range next.Slice() {
		nearest := 6
		for _, source := range prev.Slice() {
			nearest = min(nearest, abs(pitch.Distance(source, target)))
		}
		total += nearest
		largest = max(largest, nearest)
	}
	return total, largest
}

// AnalyzeMovement measures root motion, voice leading and tonal-centroid
// travel across a chord sequence
func AnalyzeMovement(chords []Chord) HarmonicMovement {
	transitions := max(len(chords)-1, 0)
	movement := HarmonicMovement{
		RootMotions:  make([]int, 0, transitions),
		CommonTones:  make([]int, 0, transitions),
		VoiceLeading: make([]int, 0, transitions),
		TonnetzSteps: []float64{},
	}
	if transitions == 0 {
		return movement
	}

	sets := make([]chroma.PitchClassSet, len(chords))
	for i, chord := range chords {
		sets[i] = chord.Set()
	}

	fifths, smooth := 0, 0
	for i := 1; i < len(chords); i++ {
		motion := FifthsDistance(chords[i-1].RootPitchClass(), chords[i].RootPitchClass())
		if motion == 1 {
			fifths++
		}
		movement.RootMotions = append(movement.RootMotions, motion)
		movement.CommonTones = append(movement.CommonTones, sets[i-1].Intersect(sets[i]).Len())

		total, largest := VoiceLeadingCost(sets[i-1], sets[i])
		movement.VoiceLeading = append(movement.VoiceLeading, total)
		if largest <= 2 {
			smooth++
		}
	}

	movement.FifthsMotionRatio = float64(fifths) / float64(transitions)
	movement.CircleProgression = movement.FifthsMotionRatio > circleProgressionRatio
	movement.Smoothness = float64(smooth) / float64(transitions)

	trajectory := tonnetz.Trajectory(sets)
	movement.TonnetzSteps = chroma.Steps(trajectory)
	movement.Tonnetz = chroma.AnalyzeMovement(trajectory)
	return movement
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
