package tonal

import (
	"slices"
	"strings"

	"github.com/RyanBlaney/sonido-theory/algorithms/pitch"
	terrors "github.com/RyanBlaney/sonido-theory/errors"
)

// ArpeggioDirection is the order in which arpeggio tones are played
type ArpeggioDirection string

const (
	ArpeggioUp     ArpeggioDirection = "up"
	ArpeggioDown   ArpeggioDirection = "down"
	ArpeggioUpDown ArpeggioDirection = "up_down"
	ArpeggioDownUp ArpeggioDirection = "down_up"
)

// Upper bound on the octave span of one arpeggio; wider spans leave the MIDI range
const maxArpeggioOctaves = 10

// ParseArpeggioDirection resolves a direction name, case-insensitively
func ParseArpeggioDirection(name string) (ArpeggioDirection, error) {
	switch d := ArpeggioDirection(strings.ToLower(strings.TrimSpace(name))); d {
	case ArpeggioUp, ArpeggioDown, ArpeggioUpDown, ArpeggioDownUp:
		return d, nil
	}
	return "", terrors.NewUnknownTypeError("arpeggio direction", name)
}

// Arpeggio plays the chord tones one at a time across a number of octaves,
// starting from the voicing at octave and closing on the bass an octave span
// above. Turning directions do not repeat the turning tone.
func (c Chord) Arpeggio(octave, octaves int, direction ArpeggioDirection) ([]pitch.Note, error) {
	voicing, err := c.Voicing(octave)
	if err != nil {
		return nil, err
	}
	span := make([]int, len(voicing))
	for i, n := range voicing {
		span[i], _ = n.MIDI()
	}
	return arpeggiate(span, octaves, direction, c.root.IsFlat())
}

// Arpeggio plays the scale members in order from the root at octave,
// closing on the root an octave span above
func (s Scale) Arpeggio(octave, octaves int, direction ArpeggioDirection) ([]pitch.Note, error) {
	preferFlats := s.PrefersFlats()
	rootNote, err := pitch.NoteFromPitchClass(s.Tonic(), preferFlats).WithOctave(octave)
	if err != nil {
		return nil, err
	}
	base, _ := rootNote.MIDI()

	offsets := s.Set().Normalize(s.Tonic()).Ints()
	if len(offsets) == 0 {
		return nil, terrors.ErrEmptyInput
	}
	span := make([]int, len(offsets))
	for i, offset := range offsets {
		span[i] = base + offset
	}
	return arpeggiate(span, octaves, direction, preferFlats)
}

// arpeggiate repeats one ascending octave span of MIDI numbers, adds the
// closing tone and orders the result by direction
func arpeggiate(span []int, octaves int, direction ArpeggioDirection, preferFlats bool) ([]pitch.Note, error) {
	if octaves < 1 || octaves > maxArpeggioOctaves {
		return nil, terrors.NewOutOfRangeError("octaves", float64(octaves), 1, maxArpeggioOctaves)
	}
	direction, err := ParseArpeggioDirection(string(direction))
	if err != nil {
		return nil, err
	}

	ascending := make([]int, 0, len(span)*octaves+1)
	for o := 0; o < octaves; o++ {
		for _, m := range span {
			ascending = append(ascending, m+12*o)
		}
	}
	ascending = append(ascending, span[0]+12*octaves)
	// Extended chords reach past the octave and interleave with the next span
	slices.Sort(ascending)
	ascending = slices.Compact(ascending)

	descending := slices.Clone(ascending)
	slices.Reverse(descending)

	var order []int
	switch direction {
	case ArpeggioUp:
		order = ascending
	case ArpeggioDown:
		order = descending
	case ArpeggioUpDown:
		order = append(ascending, descending[1:]...)
	case ArpeggioDownUp:
		order = append(descending, ascending[1:]...)
	}

	fromMidi := pitch.NoteFromMidi
	if preferFlats {
		fromMidi = pitch.NoteFromMidiPreferFlats
	}
	notes := make([]pitch.Note, len(order))
	for i, m := range order {
		n, err := fromMidi(m)
		if err != nil {
			return nil, err
		}
		notes[i] = n
	}
	return notes, nil
}
