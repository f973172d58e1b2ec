package pitch

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/RyanBlaney/sonido-theory/algorithms/common"
	terrors "github.com/RyanBlaney/sonido-theory/errors"
)

// PitchClass represents a note identity modulo octave (0=C, 1=C#, ..., 11=B)
type PitchClass int

const (
	C PitchClass = iota
	CSharp
	D
	DSharp
	E
	F
	FSharp
	G
	GSharp
	A
	ASharp
	B
)

const (
	// MinMIDI and MaxMIDI bound the MIDI note range
	MinMIDI = 0
	MaxMIDI = 127

	// ConcertA is the reference frequency of A4 (MIDI 69)
	ConcertA     = 440.0
	concertAMIDI = 69
)

var (
	sharpNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
	flatNames  = [12]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

	letterSemitones = map[rune]int{'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11}
)

// NewPitchClass normalizes any integer into [0, 11]
func NewPitchClass(value int) PitchClass {
	return PitchClass(common.Mod(value, 12))
}

// Normalize returns the pitch class reduced modulo 12
func (pc PitchClass) Normalize() PitchClass {
	return NewPitchClass(int(pc))
}

// Transpose moves the pitch class by a number of semitones
func (pc PitchClass) Transpose(semitones int) PitchClass {
	return NewPitchClass(int(pc) + semitones)
}

// IntervalTo returns the ascending distance to other in [0, 11]
func (pc PitchClass) IntervalTo(other PitchClass) int {
	return common.Mod(int(other)-int(pc), 12)
}

// Name returns the pitch class name using sharps or flats for accidentals
func (pc PitchClass) Name(preferFlats bool) string {
	n := pc.Normalize()
	if preferFlats {
		return flatNames[n]
	}
	return sharpNames[n]
}

func (pc PitchClass) String() string {
	return pc.Name(false)
}

// Distance returns the minimal signed semitone distance from a to b, in [-6, 6].
// A tritone is reported as +6.
func Distance(a, b PitchClass) int {
	d := a.IntervalTo(b)
	if d > 6 {
		d -= 12
	}
	return d
}

// Note is an immutable musical note. It always carries a pitch class and the
// spelling it was written with; octave, MIDI number and frequency exist only
// for octave-qualified notes.
type Note struct {
	pitchClass PitchClass
	spelling   string // letter plus accidental, e.g. "Db"
	octave     int
	midi       int
	hasOctave  bool
}

// ParseNote parses note text such as "C", "f#", "Bb3", "E♭4" or "C-1".
// The letter is case-insensitive; the accidental may be '#', 'b', '♯' or '♭'.
func ParseNote(text string) (Note, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return Note{}, terrors.NewInvalidNoteError(text, "empty note")
	}

	runes := []rune(s)
	letter := unicode.ToUpper(runes[0])
	base, ok := letterSemitones[letter]
	if !ok {
		return Note{}, terrors.NewInvalidNoteError(text, "letter must be A-G")
	}

	i := 1
	accidental := 0
	accidentalText := ""
	if i < len(runes) {
		switch runes[i] {
		case '#', '♯':
			accidental, accidentalText = 1, "#"
			i++
		case 'b', '♭':
			accidental, accidentalText = -1, "b"
			i++
		}
	}

	note := Note{
		pitchClass: NewPitchClass(base + accidental),
		spelling:   string(letter) + accidentalText,
	}

	rest := string(runes[i:])
	if rest == "" {
		return note, nil
	}

	octave, err := strconv.Atoi(rest)
	if err != nil || !isOctave(rest) {
		r := []rune(rest)[0]
		if r != '-' && !unicode.IsDigit(r) {
			return Note{}, terrors.NewInvalidNoteError(text, fmt.Sprintf("unrecognized accidental %q", string(r)))
		}
		return Note{}, terrors.NewInvalidNoteError(text, fmt.Sprintf("invalid octave %q", rest))
	}

	midi := base + accidental + 12*(octave+1)
	if midi < MinMIDI || midi > MaxMIDI {
		return Note{}, terrors.NewOutOfRangeError("midi", float64(midi), MinMIDI, MaxMIDI)
	}

	note.octave = octave
	note.midi = midi
	note.hasOctave = true
	return note, nil
}

// isOctave accepts digits with an optional leading minus sign
func isOctave(text string) bool {
	digits := strings.TrimPrefix(text, "-")
	if digits == "" {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// NoteFromMidi converts a MIDI note number (0-127) to a sharp-spelled note
func NoteFromMidi(midiNumber int) (Note, error) {
	return noteFromMidi(midiNumber, false)
}

// NoteFromMidiPreferFlats converts a MIDI note number to a flat-spelled note
func NoteFromMidiPreferFlats(midiNumber int) (Note, error) {
	return noteFromMidi(midiNumber, true)
}

func noteFromMidi(midiNumber int, preferFlats bool) (Note, error) {
	if midiNumber < MinMIDI || midiNumber > MaxMIDI {
		return Note{}, terrors.NewOutOfRangeError("midi", float64(midiNumber), MinMIDI, MaxMIDI)
	}

	pc := NewPitchClass(midiNumber)
	return Note{
		pitchClass: pc,
		spelling:   pc.Name(preferFlats),
		octave:     midiNumber/12 - 1,
		midi:       midiNumber,
		hasOctave:  true,
	}, nil
}

// NoteFromPitchClass creates an octave-less note
func NoteFromPitchClass(pc PitchClass, preferFlats bool) Note {
	pc = pc.Normalize()
	return Note{pitchClass: pc, spelling: pc.Name(preferFlats)}
}

// NoteFromFrequency returns the nearest equal-tempered note to a frequency
func NoteFromFrequency(hz float64) (Note, error) {
	if hz <= 0 || math.IsNaN(hz) || math.IsInf(hz, 0) {
		return Note{}, terrors.NewOutOfRangeError("frequency", hz, 0, math.MaxFloat64)
	}

	midi := int(math.Round(concertAMIDI + 12*math.Log2(hz/ConcertA)))
	return NoteFromMidi(midi)
}

// Resolve turns a Note, PitchClass, int (pitch class) or note-name string
// into a Note.
func Resolve(root any) (Note, error) {
	switch v := root.(type) {
	case Note:
		return v, nil
	case *Note:
		if v == nil {
			return Note{}, terrors.NewInvalidNoteError("<nil>", "nil note")
		}
		return *v, nil
	case PitchClass:
		return NoteFromPitchClass(v, false), nil
	case int:
		return NoteFromPitchClass(NewPitchClass(v), false), nil
	case string:
		return ParseNote(v)
	default:
		return Note{}, terrors.NewInvalidNoteError(fmt.Sprint(root), fmt.Sprintf("unsupported root type %T", root))
	}
}

// PitchClass returns the normalized pitch class
func (n Note) PitchClass() PitchClass {
	return n.pitchClass
}

// Spelling returns the written name without octave, e.g. "Db"
func (n Note) Spelling() string {
	return n.spelling
}

// IsFlat reports whether the note was spelled with a flat
func (n Note) IsFlat() bool {
	return strings.HasSuffix(n.spelling, "b")
}

// HasOctave reports whether octave-dependent values are available
func (n Note) HasOctave() bool {
	return n.hasOctave
}

// Octave returns the written octave when present
func (n Note) Octave() (int, bool) {
	return n.octave, n.hasOctave
}

// MIDI returns the MIDI note number when the note has an octave
func (n Note) MIDI() (int, bool) {
	return n.midi, n.hasOctave
}

// Frequency returns the equal-tempered frequency in Hz when the note has an octave
func (n Note) Frequency() (float64, bool) {
	if !n.hasOctave {
		return 0, false
	}
	return ConcertA * math.Pow(2, float64(n.midi-concertAMIDI)/12.0), true
}

// Equal compares notes by pitch class only
func (n Note) Equal(other Note) bool {
	return n.pitchClass == other.pitchClass
}

// EqualWithOctave compares notes by sounding pitch; octave-less notes only
// equal other octave-less notes of the same pitch class.
func (n Note) EqualWithOctave(other Note) bool {
	if n.hasOctave != other.hasOctave {
		return false
	}
	if n.hasOctave {
		return n.midi == other.midi
	}
	return n.pitchClass == other.pitchClass
}

// Transpose returns a new note moved by semitones, keeping the flat/sharp preference
func (n Note) Transpose(semitones int) (Note, error) {
	if !n.hasOctave {
		return NoteFromPitchClass(n.pitchClass.Transpose(semitones), n.IsFlat()), nil
	}
	return noteFromMidi(n.midi+semitones, n.IsFlat())
}

// WithOctave returns the same spelling placed in an octave
func (n Note) WithOctave(octave int) (Note, error) {
	return ParseNote(n.spelling + strconv.Itoa(octave))
}

// WithoutOctave drops octave information
func (n Note) WithoutOctave() Note {
	return Note{pitchClass: n.pitchClass, spelling: n.spelling}
}

func (n Note) String() string {
	if n.hasOctave {
		return n.spelling + strconv.Itoa(n.octave)
	}
	return n.spelling
}
