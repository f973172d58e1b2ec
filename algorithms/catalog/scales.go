package catalog

import (
	"strings"

	terrors "github.com/RyanBlaney/sonido-theory/errors"
)

// ScaleFamily groups scale types for display and suggestion ranking
type ScaleFamily string

const (
	ScaleFamilyDiatonic   ScaleFamily = "diatonic"
	ScaleFamilyMinor      ScaleFamily = "minor"
	ScaleFamilyPentatonic ScaleFamily = "pentatonic"
	ScaleFamilyBlues      ScaleFamily = "blues"
	ScaleFamilySymmetric  ScaleFamily = "symmetric"
)

// ScaleType is one catalog entry
type ScaleType struct {
	Name        string      `json:"name"`
	DisplayName string      `json:"display_name"`
	Intervals   IntervalSet `json:"intervals"`
	Family      ScaleFamily `json:"family"`
}

func (st ScaleType) clone() ScaleType {
	st.Intervals = st.Intervals.Clone()
	return st
}

// Declaration order doubles as the simplicity ranking used in tie-breaks
var scaleTable = []ScaleType{
	{"major", "Major (Ionian)", mustIntervalSet(0, 2, 4, 5, 7, 9, 11), ScaleFamilyDiatonic},
	{"natural_minor", "Natural Minor (Aeolian)", mustIntervalSet(0, 2, 3, 5, 7, 8, 10), ScaleFamilyDiatonic},
	{"dorian", "Dorian", mustIntervalSet(0, 2, 3, 5, 7, 9, 10), ScaleFamilyDiatonic},
	{"mixolydian", "Mixolydian", mustIntervalSet(0, 2, 4, 5, 7, 9, 10), ScaleFamilyDiatonic},
	{"lydian", "Lydian", mustIntervalSet(0, 2, 4, 6, 7, 9, 11), ScaleFamilyDiatonic},
	{"phrygian", "Phrygian", mustIntervalSet(0, 1, 3, 5, 7, 8, 10), ScaleFamilyDiatonic},
	{"locrian", "Locrian", mustIntervalSet(0, 1, 3, 5, 6, 8, 10), ScaleFamilyDiatonic},
	{"harmonic_minor", "Harmonic Minor", mustIntervalSet(0, 2, 3, 5, 7, 8, 11), ScaleFamilyMinor},
	{"melodic_minor", "Melodic Minor", mustIntervalSet(0, 2, 3, 5, 7, 9, 11), ScaleFamilyMinor},
	{"major_pentatonic", "Major Pentatonic", mustIntervalSet(0, 2, 4, 7, 9), ScaleFamilyPentatonic},
	{"minor_pentatonic", "Minor Pentatonic", mustIntervalSet(0, 3, 5, 7, 10), ScaleFamilyPentatonic},
	{"major_blues", "Major Blues", mustIntervalSet(0, 2, 3, 4, 7, 9), ScaleFamilyBlues},
	{"minor_blues", "Minor Blues", mustIntervalSet(0, 3, 5, 6, 7, 10), ScaleFamilyBlues},
	{"whole_tone", "Whole Tone", mustIntervalSet(0, 2, 4, 6, 8, 10), ScaleFamilySymmetric},
	{"diminished", "Diminished (Whole-Half)", mustIntervalSet(0, 2, 3, 5, 6, 8, 9, 11), ScaleFamilySymmetric},
	{"augmented", "Augmented", mustIntervalSet(0, 3, 4, 7, 8, 11), ScaleFamilySymmetric},
	{"chromatic", "Chromatic", mustIntervalSet(0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11), ScaleFamilySymmetric},
}

var scaleAliases = map[string]string{
	"ionian":           "major",
	"aeolian":          "natural_minor",
	"minor":            "natural_minor",
	"minor_natural":    "natural_minor",
	"minor_harmonic":   "harmonic_minor",
	"minor_melodic":    "melodic_minor",
	"pentatonic_major": "major_pentatonic",
	"pentatonic_minor": "minor_pentatonic",
	"pentatonic_blues": "minor_blues",
	"blues":            "minor_blues",
	"blues_major":      "major_blues",
	"blues_minor":      "minor_blues",
	"whole_half":       "diminished",
}

var scaleIndex = buildScaleIndex()

func buildScaleIndex() map[string]int {
	index := make(map[string]int, len(scaleTable)+len(scaleAliases))
	for i, st := range scaleTable {
		index[st.Name] = i
	}
	for alias, name := range scaleAliases {
		index[alias] = index[name]
	}
	return index
}

func normalizeScaleName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(n)
}

// LookupScale finds a scale type by name or alias ("Natural Minor",
// "aeolian" and "minor" all resolve to natural_minor)
func LookupScale(name string) (ScaleType, error) {
	i, ok := scaleIndex[normalizeScaleName(name)]
	if !ok {
		return ScaleType{}, terrors.NewUnknownTypeError("scale", name)
	}
	return scaleTable[i].clone(), nil
}

// ScaleOrder returns the declaration index of a scale type, or -1
func ScaleOrder(name string) int {
	i, ok := scaleIndex[normalizeScaleName(name)]
	if !ok {
		return -1
	}
	return i
}

// Scales returns a copy of every scale type in declaration order
func Scales() []ScaleType {
	out := make([]ScaleType, len(scaleTable))
	for i, st := range scaleTable {
		out[i] = st.clone()
	}
	return out
}

// ScaleNames lists canonical scale names in declaration order
func ScaleNames() []string {
	names := make([]string, len(scaleTable))
	for i, st := range scaleTable {
		names[i] = st.Name
	}
	return names
}
