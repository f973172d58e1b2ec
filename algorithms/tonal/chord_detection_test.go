package tonal

import (
	"errors"
	"testing"

	"github.com/RyanBlaney/sonido-theory/algorithms/catalog"
	terrors "github.com/RyanBlaney/sonido-theory/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectChordRoundTrip(t *testing.T) {
	detector := NewChordDetector()

	for _, cq := range catalog.Chords() {
		if cq.Set().Len() < 3 {
			continue
		}
		for r := 0; r < 12; r++ {
			chord, err := NewChord(r, cq.Name)
			require.NoError(t, err)

			var pcs []int
			for _, pc := range chord.Tones() {
				pcs = append(pcs, int(pc))
			}

			result, err := detector.DetectChordFromPitchClasses(pcs)
			require.NoError(t, err)
			assert.Equal(t, KindChord, result.Kind, "%s at %d", cq.Name, r)
			assert.Equal(t, r, result.Root, "%s at %d", cq.Name, r)
			assert.Equal(t, cq.Name, result.Quality, "%s at %d", cq.Name, r)
			assert.Equal(t, 0, result.Inversion, "%s at %d", cq.Name, r)
			assert.InDelta(t, 1.0, result.Confidence, 1e-9, "%s at %d", cq.Name, r)
		}
	}
}

func TestDetectChordInversion(t *testing.T) {
	detector := NewChordDetector()

	result, err := detector.DetectChordFromNames([]string{"E", "G", "C"})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Root)
	assert.Equal(t, "maj", result.Quality)
	assert.Equal(t, 1, result.Inversion)
	assert.Equal(t, 1.0, result.Confidence)
	assert.Equal(t, "C/E", result.ChordName)
	assert.Equal(t, 4, result.BassNote)

	// bass is the lowest sounding note, not the first listed
	result, err = detector.DetectChordFromMidi([]int{72, 64, 67})
	require.NoError(t, err)
	assert.Equal(t, "C/E", result.ChordName)
	require.NotNil(t, result.Chord)
	assert.Equal(t, 1, result.Chord.Inversion())
}

func TestDetectChordSymmetricShapes(t *testing.T) {
	detector := NewChordDetector()

	cases := []struct {
		notes   []string
		name    string
		quality string
	}{
		{[]string{"G", "C", "D"}, "Gsus4", "sus4"},
		{[]string{"C", "D", "G"}, "Csus2", "sus2"},
		{[]string{"A", "C", "E", "G"}, "Am7", "min7"},
		{[]string{"C", "E", "G", "A"}, "C6", "6"},
		{[]string{"Eb4", "C5", "F#5", "A5"}, "Eb°7", "dim7"},
	}

	for _, c := range cases {
		result, err := detector.DetectChordFromNames(c.notes)
		require.NoError(t, err)
		assert.Equal(t, c.quality, result.Quality, "%v", c.notes)
		assert.Equal(t, c.name, result.ChordName, "%v", c.notes)
		assert.Equal(t, 0, result.Inversion, "%v", c.notes)
	}
}

func TestDetectChordKeepsInputSpelling(t *testing.T) {
	result, err := NewChordDetector().DetectChordFromNames([]string{"Eb", "G", "Bb"})
	require.NoError(t, err)
	assert.Equal(t, "Eb", result.RootName)
	assert.Equal(t, "Eb", result.ChordName)
	assert.Equal(t, 3, result.Root)
}

func TestDetectChordPartialMatch(t *testing.T) {
	result, err := NewChordDetector().DetectChordFromNames([]string{"C", "E", "G", "F"})
	require.NoError(t, err)
	assert.Equal(t, KindChord, result.Kind)
	assert.Equal(t, 0, result.Root)
	assert.Equal(t, "maj", result.Quality)
	assert.InDelta(t, 0.75, result.Confidence, 1e-9)
	assert.Equal(t, []int{0, 4, 7}, result.Matched)
	assert.Equal(t, []int{5}, result.Unmatched)
	assert.Less(t, result.Clarity, 1.0)
}

func TestDetectChordAssumedToneDecay(t *testing.T) {
	fMaj9 := func(params DetectionParams) ChordCandidate {
		params.MaxCandidates = 100
		result, err := NewChordDetectorWithParams(params).DetectChordFromNames([]string{"C", "E", "G", "F"})
		require.NoError(t, err)
		for _, c := range result.Candidates {
			if c.Root == 5 && c.Quality == "maj9" {
				return c
			}
		}
		t.Fatal("F maj9 not among candidates")
		return ChordCandidate{}
	}

	// one unheard tone (A), not in root position
	c := fMaj9(DefaultDetectionParams())
	assert.Equal(t, []int{9}, c.Missing)
	assert.InDelta(t, 0.8*0.9*0.95, c.Confidence, 1e-9)

	params := DefaultDetectionParams()
	params.AssumedToneDecay = 0
	assert.InDelta(t, 0.8*0.9, fMaj9(params).Confidence, 1e-9)
}

func TestDetectChordNoMatch(t *testing.T) {
	result, err := NewChordDetector().DetectChordFromNames([]string{"C", "C#", "D"})
	require.NoError(t, err)
	assert.Equal(t, KindNoMatch, result.Kind)
	assert.Equal(t, -1, result.Root)
	assert.Empty(t, result.Quality)
	assert.Nil(t, result.Chord)
	assert.Equal(t, []int{0, 1, 2}, result.Unmatched)
	assert.NotEmpty(t, result.Candidates)
}

func TestDetectChordParams(t *testing.T) {
	params := DefaultDetectionParams()
	params.MinCoverage = 0.9
	params.MaxCandidates = 2
	detector := NewChordDetectorWithParams(params)
	assert.Equal(t, params, detector.GetParameters())

	result, err := detector.DetectChordFromNames([]string{"C", "E", "G", "F"})
	require.NoError(t, err)
	assert.Equal(t, KindNoMatch, result.Kind)
	assert.Len(t, result.Candidates, 2)
}

func TestDetectSingleNote(t *testing.T) {
	detector := NewChordDetector()

	result, err := detector.DetectChordFromNames([]string{"A"})
	require.NoError(t, err)
	assert.Equal(t, KindSingleNote, result.Kind)
	assert.Equal(t, 9, result.Root)
	assert.Empty(t, result.Quality)

	result, err = detector.DetectChordFromNames([]string{"C4", "C5"})
	require.NoError(t, err)
	assert.Equal(t, KindSingleNote, result.Kind)
	assert.Equal(t, 0, result.Root)
}

func TestDetectInterval(t *testing.T) {
	detector := NewChordDetector()

	cases := []struct {
		notes    []string
		interval string
		name     string
	}{
		{[]string{"C4", "G4"}, "perfect fifth", "C P5"},
		{[]string{"C", "G"}, "perfect fifth", "C P5"},
		{[]string{"G3", "C5"}, "perfect eleventh", "G P11"},
		{[]string{"E", "C"}, "minor sixth", "E m6"},
	}

	for _, c := range cases {
		result, err := detector.DetectChordFromNames(c.notes)
		require.NoError(t, err)
		assert.Equal(t, KindInterval, result.Kind, "%v", c.notes)
		assert.Equal(t, c.interval, result.Interval, "%v", c.notes)
		assert.Equal(t, c.name, result.ChordName, "%v", c.notes)
		assert.Empty(t, result.Quality)
	}
}

func TestDetectEmptyInput(t *testing.T) {
	result, err := NewChordDetector().DetectChordFromNames(nil)
	assert.True(t, errors.Is(err, terrors.ErrEmptyInput))
	assert.Equal(t, KindEmpty, result.Kind)
	assert.Equal(t, -1, result.Root)

	_, err = NewChordDetector().DetectChordFromNames([]string{"C", "X"})
	assert.True(t, errors.Is(err, terrors.ErrInvalidNote))
}
