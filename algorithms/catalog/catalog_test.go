package catalog

import (
	"errors"
	"testing"

	"github.com/RyanBlaney/sonido-theory/algorithms/chroma"
	terrors "github.com/RyanBlaney/sonido-theory/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIntervalSet(t *testing.T) {
	s, err := NewIntervalSet([]int{0, 4, 7, 14})
	require.NoError(t, err)
	assert.Equal(t, 4, s.Len())
	assert.Equal(t, 4, s.Cardinality())

	invalid := map[string][]int{
		"empty":         {},
		"no root":       {2, 4, 7},
		"duplicate":     {0, 4, 4, 7},
		"descending":    {0, 7, 4},
		"too wide":      {0, 4, 24},
		"negative step": {0, -1},
	}
	for name, intervals := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := NewIntervalSet(intervals)
			assert.True(t, errors.Is(err, terrors.ErrInvalidIntervalSet), "got %v", err)
		})
	}
}

func TestNewIntervalSetCopiesInput(t *testing.T) {
	in := []int{0, 3, 7}
	s, err := NewIntervalSet(in)
	require.NoError(t, err)

	in[1] = 4
	assert.Equal(t, IntervalSet{0, 3, 7}, s)
}

func TestCompoundIntervalsFoldIntoOctave(t *testing.T) {
	nine, err := LookupChord("9")
	require.NoError(t, err)
	// D sits at offset 14
	assert.Equal(t, []int{0, 2, 4, 7, 10}, nine.Set().Ints())
	assert.Equal(t, 5, nine.Intervals.Cardinality())
}

func TestLookupScale(t *testing.T) {
	for _, name := range []string{"natural_minor", "aeolian", "minor", "Natural Minor", "minor_natural"} {
		st, err := LookupScale(name)
		require.NoError(t, err, name)
		assert.Equal(t, "natural_minor", st.Name)
	}

	_, err := LookupScale("hungarian_gypsy")
	var unknown *terrors.UnknownTypeError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "scale", unknown.Kind)
	assert.Equal(t, "hungarian_gypsy", unknown.Name)
}

func TestLookupChord(t *testing.T) {
	cases := map[string]string{
		"maj":       "maj",
		"m":         "min",
		"M7":        "maj7",
		"m7":        "min7",
		"7":         "dom7",
		"ø7":        "min7b5",
		"half_dim7": "min7b5",
		"power":     "5",
		"dom9":      "9",
		"MAJ7":      "maj7",
		"Minor":     "min",
	}
	for input, want := range cases {
		cq, err := LookupChord(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, cq.Name, input)
	}

	_, err := LookupChord("mystery")
	assert.True(t, errors.Is(err, terrors.ErrUnknownType))
}

func TestCatalogEntriesAreWellFormed(t *testing.T) {
	seen := map[string]bool{}
	for _, st := range Scales() {
		assert.False(t, seen["scale:"+st.Name], "duplicate scale %s", st.Name)
		seen["scale:"+st.Name] = true
		assert.Equal(t, 0, st.Intervals[0])
		_, err := NewIntervalSet(st.Intervals)
		assert.NoError(t, err, st.Name)
	}
	for _, cq := range Chords() {
		assert.False(t, seen["chord:"+cq.Name], "duplicate chord %s", cq.Name)
		seen["chord:"+cq.Name] = true
		_, err := NewIntervalSet(cq.Intervals)
		assert.NoError(t, err, cq.Name)
		assert.NotEmpty(t, cq.DisplayName)
	}
}

func TestLookupReturnsCopies(t *testing.T) {
	st, err := LookupScale("major")
	require.NoError(t, err)
	st.Intervals[1] = 1

	again, err := LookupScale("major")
	require.NoError(t, err)
	assert.Equal(t, IntervalSet{0, 2, 4, 5, 7, 9, 11}, again.Intervals)

	all := Chords()
	all[0].Intervals[1] = 3
	maj, _ := LookupChord("maj")
	assert.Equal(t, IntervalSet{0, 4, 7}, maj.Intervals)
}

func TestFindChord(t *testing.T) {
	found := FindChord(chroma.FromInts([]int{0, 4, 7, 10}))
	require.Len(t, found, 1)
	assert.Equal(t, "dom7", found[0].Name)

	assert.Empty(t, FindChord(chroma.FromInts([]int{0, 1, 2})))
}

func TestOrderAndFamilies(t *testing.T) {
	assert.Equal(t, 0, ScaleOrder("ionian"))
	assert.Equal(t, -1, ScaleOrder("nope"))
	assert.Less(t, ChordOrder("maj"), ChordOrder("maj7"))
	assert.Equal(t, -1, ChordOrder("nope"))

	triads := ChordsInFamily(FamilyTriad)
	require.Len(t, triads, 4)
	assert.Equal(t, "maj", triads[0].Name)
	assert.Equal(t, "suspended_added", FamilySuspendedAdded.String())
	assert.Equal(t, len(ChordNames()), len(Chords()))
	assert.Equal(t, "major", ScaleNames()[0])
}
