package tonal

import (
	"fmt"
	"slices"
	"strings"

	"github.com/RyanBlaney/sonido-theory/algorithms/pitch"
	terrors "github.com/RyanBlaney/sonido-theory/errors"
)

// Reverse of numeralFigures
var figureQualities = func() map[numeralFigure]string {
	out := make(map[numeralFigure]string, len(numeralFigures))
	for quality, f := range numeralFigures {
		out[f] = quality
	}
	return out
}()

// ParseRomanNumeral builds the chord a numeral names in a heptatonic key.
// A leading "b" or "#" lowers or raises the degree. Case selects the third
// and the suffix the rest of the quality ("V7", "viiø7", "bVImaj7"); "o" is
// read as "°". Suffixes with no numeral figure are looked up as chord
// symbols, so "V9" and "IVsus4" resolve too.
func ParseRomanNumeral(text string, key Scale) (Chord, error) {
	if err := requireHeptatonic(key); err != nil {
		return Chord{}, err
	}

	s := strings.TrimSpace(text)
	accidental := 0
	switch {
	case strings.HasPrefix(s, "b"):
		accidental, s = -1, s[1:]
	case strings.HasPrefix(s, "#"):
		accidental, s = 1, s[1:]
	}

	n := 0
	for n < len(s) && strings.IndexByte("IViv", s[n]) >= 0 {
		n++
	}
	letters, figure := s[:n], s[n:]
	upper := strings.ToUpper(letters)
	lower := letters != upper
	if lower && letters != strings.ToLower(letters) {
		return Chord{}, fmt.Errorf("%w: %q mixes cases", terrors.ErrInvalidNumeral, text)
	}
	degree := slices.Index(upperNumerals[:], upper) + 1
	if degree == 0 {
		return Chord{}, fmt.Errorf("%w: %q", terrors.ErrInvalidNumeral, text)
	}
	if strings.HasPrefix(figure, "o") {
		figure = "°" + figure[1:]
	}

	pc, err := key.Degree(degree)
	if err != nil {
		return Chord{}, err
	}
	pc = pc.Transpose(accidental)

	var root pitch.Note
	switch accidental {
	case -1:
		root = pitch.NoteFromPitchClass(pc, true)
	case 1:
		root = pitch.NoteFromPitchClass(pc, false)
	default:
		root = pitch.NoteFromPitchClass(pc, key.PrefersFlats())
	}

	quality, ok := figureQualities[numeralFigure{lower, figure}]
	if !ok {
		quality = figure
	}
	chord, err := NewChord(root, quality)
	if err != nil {
		return Chord{}, fmt.Errorf("%w: %q: %w", terrors.ErrInvalidNumeral, text, err)
	}
	return chord, nil
}

// ChordsFromRomanNumerals builds a progression from numerals in a key
func ChordsFromRomanNumerals(numerals []string, key Scale) ([]Chord, error) {
	if len(numerals) == 0 {
		return nil, terrors.ErrEmptyInput
	}
	chords := make([]Chord, len(numerals))
	for i, numeral := range numerals {
		chord, err := ParseRomanNumeral(numeral, key)
		if err != nil {
			return nil, fmt.Errorf("numeral %d: %w", i+1, err)
		}
		chords[i] = chord
	}
	return chords, nil
}
