package tonal

import (
	"testing"

	"github.com/RyanBlaney/sonido-theory/algorithms/chroma"
	"github.com/RyanBlaney/sonido-theory/algorithms/pitch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFifthsDistance(t *testing.T) {
	assert.Equal(t, 0, FifthsPosition(pitch.C))
	assert.Equal(t, 1, FifthsPosition(pitch.G))
	assert.Equal(t, 11, FifthsPosition(pitch.F))

	assert.Equal(t, 1, FifthsDistance(pitch.C, pitch.F))
	assert.Equal(t, 2, FifthsDistance(pitch.F, pitch.G))
	assert.Equal(t, 6, FifthsDistance(pitch.C, pitch.FSharp))
	assert.Equal(t, 0, FifthsDistance(pitch.D, pitch.D))
}

func TestVoiceLeadingCost(t *testing.T) {
	c := chroma.FromInts([]int{0, 4, 7})
	f := chroma.FromInts([]int{5, 9, 0})

	total, largest := VoiceLeadingCost(c, f)
	assert.Equal(t, 3, total)
	assert.Equal(t, 2, largest)

	total, largest = VoiceLeadingCost(c, c)
	assert.Zero(t, total)
	assert.Zero(t, largest)

	// the cost is measured from the tones of the next chord, so adding a
	// seventh costs a step while dropping it is free
	cmaj7 := chroma.FromInts([]int{0, 4, 7, 11})
	total, largest = VoiceLeadingCost(c, cmaj7)
	assert.Equal(t, 1, total)
	assert.Equal(t, 1, largest)
	total, _ = VoiceLeadingCost(cmaj7, c)
	assert.Zero(t, total)

	// F to G: G is a whole step from F, B a semitone from C, D a whole step from C
	g := chroma.FromInts([]int{7, 11, 2})
	total, largest = VoiceLeadingCost(f, g)
	assert.Equal(t, 5, total)
	assert.Equal(t, 2, largest)
}

func TestAnalyzeMovement(t *testing.T) {
	chords, err := ParseProgression([]string{"C", "F", "G", "C"})
	require.NoError(t, err)

	movement := AnalyzeMovement(chords)
	assert.Equal(t, []int{1, 2, 1}, movement.RootMotions)
	assert.InDelta(t, 2.0/3.0, movement.FifthsMotionRatio, 1e-9)
	assert.True(t, movement.CircleProgression)
	assert.Equal(t, []int{1, 0, 1}, movement.CommonTones)
	assert.Equal(t, []int{3, 5, 3}, movement.VoiceLeading)
	assert.Equal(t, 1.0, movement.Smoothness)

	require.Len(t, movement.TonnetzSteps, 3)
	assert.InDelta(t, movement.TonnetzSteps[0], movement.TonnetzSteps[2], 1e-9)
	assert.Greater(t, movement.Tonnetz.TotalDistance, 0.0)

	single := AnalyzeMovement(chords[:1])
	assert.Empty(t, single.RootMotions)
	assert.Empty(t, single.TonnetzSteps)
	assert.False(t, single.CircleProgression)
}
