package chroma

import (
	"testing"

	"github.com/RyanBlaney/sonido-theory/algorithms/pitch"
	"github.com/stretchr/testify/assert"
)

func TestPitchClassSetBasics(t *testing.T) {
	s := FromInts([]int{0, 4, 7, 12, -5})

	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains(pitch.C))
	assert.True(t, s.Contains(pitch.G))
	assert.False(t, s.Contains(pitch.D))
	assert.Equal(t, []int{0, 4, 7}, s.Ints())
	assert.Equal(t, "{C,E,G}", s.String())
	assert.Equal(t, []string{"C", "E", "G"}, s.Names(true))

	assert.Equal(t, 2, s.Remove(pitch.E).Len())
	assert.True(t, PitchClassSet(0).IsEmpty())
}

func TestPitchClassSetTranspose(t *testing.T) {
	cMajor := NewPitchClassSet(pitch.C, pitch.E, pitch.G)
	aMajor := cMajor.Transpose(9)

	assert.Equal(t, []int{1, 4, 9}, aMajor.Ints())
	assert.Equal(t, cMajor, aMajor.Normalize(pitch.A))
	assert.Equal(t, cMajor, cMajor.Transpose(-12))
	assert.Equal(t, cMajor, cMajor.Transpose(0))
}

func TestPitchClassSetAlgebra(t *testing.T) {
	a := FromInts([]int{0, 4, 7})
	b := FromInts([]int{0, 3, 7})

	assert.Equal(t, []int{0, 3, 4, 7}, a.Union(b).Ints())
	assert.Equal(t, []int{0, 7}, a.Intersect(b).Ints())
	assert.Equal(t, []int{4}, a.Difference(b).Ints())
	assert.True(t, a.Intersect(b).IsSubsetOf(a))
	assert.False(t, a.IsSubsetOf(b))

	assert.InDelta(t, 0.5, a.Jaccard(b), 1e-12)
	assert.InDelta(t, 2.0/3.0, a.Coverage(b), 1e-12)
	assert.Equal(t, 0.0, PitchClassSet(0).Jaccard(0))
}

func TestPitchClassSetProfile(t *testing.T) {
	profile := FromInts([]int{2, 11}).Profile()
	assert.Len(t, profile, 12)
	assert.Equal(t, 1.0, profile[2])
	assert.Equal(t, 1.0, profile[11])
	assert.Equal(t, 0.0, profile[0])
}
