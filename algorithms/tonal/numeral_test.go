package tonal

import (
	"errors"
	"testing"

	terrors "github.com/RyanBlaney/sonido-theory/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRomanNumeral(t *testing.T) {
	cMajor := mustScale(t, "C", "major")

	cases := []struct {
		numeral string
		root    string
		quality string
	}{
		{"I", "C", "maj"},
		{"ii", "D", "min"},
		{"V7", "G", "dom7"},
		{"Imaj7", "C", "maj7"},
		{"vii°", "B", "dim"},
		{"viio7", "B", "dim7"},
		{"viiø7", "B", "min7b5"},
		{"III+", "E", "aug"},
		{"bVII", "Bb", "maj"},
		{"bIIImaj7", "Eb", "maj7"},
		{"#iv°", "F#", "dim"},
		{"V9", "G", "9"},
		{"IVsus4", "F", "sus4"},
		{" vi ", "A", "min"},
	}

	for _, c := range cases {
		t.Run(c.numeral, func(t *testing.T) {
			chord, err := ParseRomanNumeral(c.numeral, cMajor)
			require.NoError(t, err)
			assert.Equal(t, c.root, chord.Root().Spelling())
			assert.Equal(t, c.quality, chord.Quality())
		})
	}
}

func TestParseRomanNumeralFollowsKeySpelling(t *testing.T) {
	chord, err := ParseRomanNumeral("IV", mustScale(t, "F", "major"))
	require.NoError(t, err)
	assert.Equal(t, "Bb", chord.Symbol())

	chord, err = ParseRomanNumeral("V", mustScale(t, "A", "natural_minor"))
	require.NoError(t, err)
	assert.Equal(t, "E", chord.Symbol())
}

func TestRomanNumeralsRoundTrip(t *testing.T) {
	keys := []Scale{
		mustScale(t, "C", "major"),
		mustScale(t, "A", "harmonic_minor"),
		mustScale(t, "Eb", "major"),
	}

	for _, key := range keys {
		t.Run(key.Name(), func(t *testing.T) {
			triads, err := DiatonicChords(key)
			require.NoError(t, err)
			sevenths, err := DiatonicSevenths(key)
			require.NoError(t, err)

			for _, dc := range append(triads, sevenths...) {
				chord, err := ParseRomanNumeral(dc.Numeral, key)
				require.NoError(t, err, dc.Numeral)
				assert.True(t, dc.Chord.Equal(chord), "%s gave %s, want %s", dc.Numeral, chord, dc.Chord)
			}
		})
	}
}

func TestChordsFromRomanNumerals(t *testing.T) {
	chords, err := ChordsFromRomanNumerals([]string{"I", "vi", "ii7", "V7", "I"}, mustScale(t, "C", "major"))
	require.NoError(t, err)

	symbols := make([]string, len(chords))
	for i, c := range chords {
		symbols[i] = c.Symbol()
	}
	assert.Equal(t, []string{"C", "Am", "Dm7", "G7", "C"}, symbols)

	chords, err = ChordsFromRomanNumerals([]string{"i", "iv", "V", "i"}, mustScale(t, "A", "natural_minor"))
	require.NoError(t, err)
	analysis, err := NewProgressionAnalyzer().AnalyzeProgression(chords)
	require.NoError(t, err)
	assert.Equal(t, "A minor", analysis.Key)
	assert.Equal(t, []string{"i", "iv", "V", "i"}, analysis.RomanNumerals)
}

func TestParseRomanNumeralErrors(t *testing.T) {
	cMajor := mustScale(t, "C", "major")

	for _, numeral := range []string{"", "?", "Vi", "VIII", "IIII", "b", "Vx", "X"} {
		t.Run(numeral, func(t *testing.T) {
			_, err := ParseRomanNumeral(numeral, cMajor)
			assert.True(t, errors.Is(err, terrors.ErrInvalidNumeral), "got %v", err)
		})
	}

	_, err := ParseRomanNumeral("I", mustScale(t, "C", "major_pentatonic"))
	assert.True(t, errors.Is(err, terrors.ErrNotHeptatonic))

	_, err = ChordsFromRomanNumerals(nil, cMajor)
	assert.True(t, errors.Is(err, terrors.ErrEmptyInput))

	_, err = ChordsFromRomanNumerals([]string{"I", "Q"}, cMajor)
	assert.True(t, errors.Is(err, terrors.ErrInvalidNumeral))
	assert.Contains(t, err.Error(), "numeral 2")
}
