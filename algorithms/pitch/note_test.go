package pitch

import (
	"errors"
	"sync"
	"testing"

	terrors "github.com/RyanBlaney/sonido-theory/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNote(t *testing.T) {
	cases := []struct {
		input     string
		pc        PitchClass
		spelling  string
		hasOctave bool
		midi      int
	}{
		{"C", C, "C", false, 0},
		{"c#", CSharp, "C#", false, 0},
		{"Db", CSharp, "Db", false, 0},
		{"bb", ASharp, "Bb", false, 0},
		{"E♭4", DSharp, "Eb", true, 63},
		{"F♯3", FSharp, "F#", true, 54},
		{"A4", A, "A", true, 69},
		{"C-1", C, "C", true, 0},
		{"G9", G, "G", true, 127},
		{"Cb4", B, "Cb", true, 59},
		{"B#3", C, "B#", true, 60},
		{" e ", E, "E", false, 0},
	}

	for _, c := range cases {
		t.Run(c.input, func(t *testing.T) {
			n, err := ParseNote(c.input)
			require.NoError(t, err)
			assert.Equal(t, c.pc, n.PitchClass())
			assert.Equal(t, c.spelling, n.Spelling())
			assert.Equal(t, c.hasOctave, n.HasOctave())

			midi, ok := n.MIDI()
			assert.Equal(t, c.hasOctave, ok)
			if ok {
				assert.Equal(t, c.midi, midi)
			}
		})
	}
}

func TestParseNoteErrors(t *testing.T) {
	invalid := []string{"", "H", "X#4", "C##", "Cx", "C4.5", "#C", "C+4", "Bb+3", "C--1", "C-"}
	for _, input := range invalid {
		t.Run(input, func(t *testing.T) {
			_, err := ParseNote(input)
			assert.True(t, errors.Is(err, terrors.ErrInvalidNote), "got %v", err)
		})
	}

	_, err := ParseNote("G#9")
	assert.True(t, errors.Is(err, terrors.ErrOutOfRange))
}

func TestOctavelessNoteHasNoDerivedValues(t *testing.T) {
	n, err := ParseNote("F#")
	require.NoError(t, err)

	_, ok := n.MIDI()
	assert.False(t, ok)
	_, ok = n.Frequency()
	assert.False(t, ok)
	_, ok = n.Octave()
	assert.False(t, ok)
}

func TestNoteFromMidi(t *testing.T) {
	n, err := NoteFromMidi(60)
	require.NoError(t, err)
	assert.Equal(t, "C4", n.String())

	n, err = NoteFromMidi(0)
	require.NoError(t, err)
	assert.Equal(t, "C-1", n.String())

	n, err = NoteFromMidiPreferFlats(70)
	require.NoError(t, err)
	assert.Equal(t, "Bb4", n.String())

	for _, bad := range []int{-1, 128} {
		_, err := NoteFromMidi(bad)
		var oor *terrors.OutOfRangeError
		require.True(t, errors.As(err, &oor))
		assert.Equal(t, float64(bad), oor.Value)
	}
}

func TestFrequency(t *testing.T) {
	n, err := ParseNote("A4")
	require.NoError(t, err)
	hz, ok := n.Frequency()
	require.True(t, ok)
	assert.InDelta(t, 440.0, hz, 1e-9)

	n, err = ParseNote("C4")
	require.NoError(t, err)
	hz, _ = n.Frequency()
	assert.InDelta(t, 261.6256, hz, 1e-3)
}

func TestNoteFromFrequency(t *testing.T) {
	n, err := NoteFromFrequency(442)
	require.NoError(t, err)
	assert.Equal(t, "A4", n.String())

	_, err = NoteFromFrequency(0)
	assert.True(t, errors.Is(err, terrors.ErrOutOfRange))

	_, err = NoteFromFrequency(50000)
	assert.True(t, errors.Is(err, terrors.ErrOutOfRange))
}

func TestDistance(t *testing.T) {
	assert.Equal(t, 0, Distance(C, C))
	assert.Equal(t, 7-12, Distance(C, G))
	assert.Equal(t, 5, Distance(G, C))
	assert.Equal(t, 6, Distance(C, FSharp))
	assert.Equal(t, -1, Distance(C, B))
	assert.Equal(t, 1, Distance(B, C))

	for a := C; a <= B; a++ {
		for b := C; b <= B; b++ {
			d := Distance(a, b)
			assert.GreaterOrEqual(t, d, -6)
			assert.LessOrEqual(t, d, 6)
			assert.Equal(t, b, a.Transpose(d))
		}
	}
}

func TestEquality(t *testing.T) {
	cs4, _ := ParseNote("C#4")
	db5, _ := ParseNote("Db5")
	db, _ := ParseNote("Db")

	assert.True(t, cs4.Equal(db5))
	assert.False(t, cs4.EqualWithOctave(db5))
	assert.False(t, cs4.EqualWithOctave(db))
	assert.True(t, db.EqualWithOctave(NoteFromPitchClass(CSharp, false)))
}

func TestTransposeKeepsSpellingPreference(t *testing.T) {
	eb, _ := ParseNote("Eb4")
	up, err := eb.Transpose(3)
	require.NoError(t, err)
	assert.Equal(t, "Gb4", up.String())

	g9, _ := ParseNote("G9")
	_, err = g9.Transpose(1)
	assert.True(t, errors.Is(err, terrors.ErrOutOfRange))

	d, _ := ParseNote("D")
	down, err := d.Transpose(-3)
	require.NoError(t, err)
	assert.Equal(t, "B", down.String())
}

func TestResolve(t *testing.T) {
	fromString, err := Resolve("Ab")
	require.NoError(t, err)
	assert.Equal(t, GSharp, fromString.PitchClass())

	fromInt, err := Resolve(14)
	require.NoError(t, err)
	assert.Equal(t, D, fromInt.PitchClass())

	fromPC, err := Resolve(E)
	require.NoError(t, err)
	assert.Equal(t, "E", fromPC.Spelling())

	_, err = Resolve(3.5)
	assert.True(t, errors.Is(err, terrors.ErrInvalidNote))
}

func TestConcurrentParsing(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			n, err := NoteFromMidi(i)
			assert.NoError(t, err)
			parsed, err := ParseNote(n.String())
			assert.NoError(t, err)
			assert.True(t, n.EqualWithOctave(parsed))
		}(i)
	}
	wg.Wait()
}
