package tonal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindCadences(t *testing.T) {
	cMajor := mustScale(t, "C", "major")
	aMinor := mustScale(t, "A", "natural_minor")

	cases := []struct {
		name    string
		symbols []string
		key     Scale
		want    []Cadence
	}{
		{"authentic", []string{"C", "F", "G", "C"}, cMajor,
			[]Cadence{{Index: 3, Type: CadenceAuthentic, Numerals: "V-I", Final: true}}},
		{"authentic sevenths", []string{"Dm7", "G7", "Cmaj7"}, cMajor,
			[]Cadence{{Index: 2, Type: CadenceAuthentic, Numerals: "V7-Imaj7", Final: true}}},
		{"plagal", []string{"C", "F", "C"}, cMajor,
			[]Cadence{{Index: 2, Type: CadencePlagal, Numerals: "IV-I", Final: true}}},
		{"deceptive", []string{"C", "G", "Am"}, cMajor,
			[]Cadence{{Index: 2, Type: CadenceDeceptive, Numerals: "V-vi", Final: true}}},
		{"half", []string{"C", "Am", "F", "G"}, cMajor,
			[]Cadence{{Index: 3, Type: CadenceHalf, Numerals: "IV-V", Final: true}}},
		{"interior", []string{"C", "G", "C", "F"}, cMajor,
			[]Cadence{{Index: 2, Type: CadenceAuthentic, Numerals: "V-I", Final: false}}},
		{"minor authentic", []string{"Am", "Dm", "E", "Am"}, aMinor,
			[]Cadence{{Index: 3, Type: CadenceAuthentic, Numerals: "V-i", Final: true}}},
		{"minor dominant", []string{"Am", "Em", "Am"}, aMinor, []Cadence{}},
		{"same root", []string{"C", "G", "G7"}, cMajor, []Cadence{}},
		{"single chord", []string{"C"}, cMajor, []Cadence{}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			chords, err := ParseProgression(c.symbols)
			require.NoError(t, err)
			assert.Equal(t, c.want, FindCadences(chords, c.key))
		})
	}
}

func TestFindCadencesNeedsHeptatonicKey(t *testing.T) {
	chords, err := ParseProgression([]string{"G", "C"})
	require.NoError(t, err)
	assert.Empty(t, FindCadences(chords, mustScale(t, "C", "major_pentatonic")))
}
