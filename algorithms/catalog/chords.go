package catalog

import (
	"strings"

	"github.com/RyanBlaney/sonido-theory/algorithms/chroma"
	terrors "github.com/RyanBlaney/sonido-theory/errors"
)

// ChordFamily orders chord qualities for detection tie-breaks; lower values win
type ChordFamily int

const (
	FamilyTriad ChordFamily = iota
	FamilySeventh
	FamilySuspendedAdded
	FamilyExtended
	FamilyOther
)

func (f ChordFamily) String() string {
	switch f {
	case FamilyTriad:
		return "triad"
	case FamilySeventh:
		return "seventh"
	case FamilySuspendedAdded:
		return "suspended_added"
	case FamilyExtended:
		return "extended"
	default:
		return "other"
	}
}

// MarshalText lets families appear by name in JSON output
func (f ChordFamily) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// ChordQuality is one catalog entry. Symbol is the suffix written after the
// root in a chord symbol ("" for major, "m7" for minor seventh).
type ChordQuality struct {
	Name        string      `json:"name"`
	DisplayName string      `json:"display_name"`
	Symbol      string      `json:"symbol"`
	Intervals   IntervalSet `json:"intervals"`
	Family      ChordFamily `json:"family"`
}

func (cq ChordQuality) clone() ChordQuality {
	cq.Intervals = cq.Intervals.Clone()
	return cq
}

// Set returns the root-relative pitch-class set of the quality
func (cq ChordQuality) Set() chroma.PitchClassSet {
	return cq.Intervals.Set()
}

var chordTable = []ChordQuality{
	// triads
	{"maj", "Major", "", mustIntervalSet(0, 4, 7), FamilyTriad},
	{"min", "Minor", "m", mustIntervalSet(0, 3, 7), FamilyTriad},
	{"dim", "Diminished", "°", mustIntervalSet(0, 3, 6), FamilyTriad},
	{"aug", "Augmented", "+", mustIntervalSet(0, 4, 8), FamilyTriad},

	// sevenths
	{"maj7", "Major 7th", "maj7", mustIntervalSet(0, 4, 7, 11), FamilySeventh},
	{"dom7", "Dominant 7th", "7", mustIntervalSet(0, 4, 7, 10), FamilySeventh},
	{"min7", "Minor 7th", "m7", mustIntervalSet(0, 3, 7, 10), FamilySeventh},
	{"dim7", "Diminished 7th", "°7", mustIntervalSet(0, 3, 6, 9), FamilySeventh},
	{"min7b5", "Minor 7th Flat 5", "m7b5", mustIntervalSet(0, 3, 6, 10), FamilySeventh},
	{"minmaj7", "Minor Major 7th", "m(maj7)", mustIntervalSet(0, 3, 7, 11), FamilySeventh},
	{"aug7", "Augmented 7th", "+7", mustIntervalSet(0, 4, 8, 10), FamilySeventh},
	{"augmaj7", "Augmented Major 7th", "+maj7", mustIntervalSet(0, 4, 8, 11), FamilySeventh},

	// suspended and added tone
	{"sus2", "Suspended 2nd", "sus2", mustIntervalSet(0, 2, 7), FamilySuspendedAdded},
	{"sus4", "Suspended 4th", "sus4", mustIntervalSet(0, 5, 7), FamilySuspendedAdded},
	{"7sus4", "7th Suspended 4th", "7sus4", mustIntervalSet(0, 5, 7, 10), FamilySuspendedAdded},
	{"add9", "Added 9th", "add9", mustIntervalSet(0, 4, 7, 14), FamilySuspendedAdded},
	{"6", "6th", "6", mustIntervalSet(0, 4, 7, 9), FamilySuspendedAdded},
	{"min6", "Minor 6th", "m6", mustIntervalSet(0, 3, 7, 9), FamilySuspendedAdded},
	{"6/9", "6/9", "6/9", mustIntervalSet(0, 4, 7, 9, 14), FamilySuspendedAdded},

	// extended and altered
	{"9", "9th", "9", mustIntervalSet(0, 4, 7, 10, 14), FamilyExtended},
	{"min9", "Minor 9th", "m9", mustIntervalSet(0, 3, 7, 10, 14), FamilyExtended},
	{"maj9", "Major 9th", "maj9", mustIntervalSet(0, 4, 7, 11, 14), FamilyExtended},
	{"7b9", "7th Flat 9", "7b9", mustIntervalSet(0, 4, 7, 10, 13), FamilyExtended},
	{"7#9", "7th Sharp 9", "7#9", mustIntervalSet(0, 4, 7, 10, 15), FamilyExtended},
	{"7#11", "7th Sharp 11", "7#11", mustIntervalSet(0, 4, 7, 10, 18), FamilyExtended},
	{"maj7b5", "Major 7th Flat 5", "maj7b5", mustIntervalSet(0, 4, 6, 11), FamilyExtended},
	{"11", "11th", "11", mustIntervalSet(0, 4, 7, 10, 14, 17), FamilyExtended},
	{"min11", "Minor 11th", "m11", mustIntervalSet(0, 3, 7, 10, 14, 17), FamilyExtended},
	{"maj11", "Major 11th", "maj11", mustIntervalSet(0, 4, 7, 11, 14, 17), FamilyExtended},
	{"13", "13th", "13", mustIntervalSet(0, 4, 7, 10, 14, 21), FamilyExtended},
	{"min13", "Minor 13th", "m13", mustIntervalSet(0, 3, 7, 10, 14, 21), FamilyExtended},
	{"maj13", "Major 13th", "maj13", mustIntervalSet(0, 4, 7, 11, 14, 21), FamilyExtended},

	// other
	{"5", "5th (Power Chord)", "5", mustIntervalSet(0, 7), FamilyOther},
	{"quartal", "Quartal", "quartal", mustIntervalSet(0, 5, 10, 15), FamilyOther},
	{"quintal", "Quintal", "quintal", mustIntervalSet(0, 7, 14, 21), FamilyOther},
}

// Aliases are matched case-sensitively first so that "M7" and "m7" stay distinct
var chordAliases = map[string]string{
	"major":           "maj",
	"M":               "maj",
	"m":               "min",
	"minor":           "min",
	"-":               "min",
	"diminished":      "dim",
	"°":               "dim",
	"o":               "dim",
	"augmented":       "aug",
	"+":               "aug",
	"7":               "dom7",
	"dom":             "dom7",
	"dominant7":       "dom7",
	"M7":              "maj7",
	"major7":          "maj7",
	"Δ":               "maj7",
	"Δ7":              "maj7",
	"m7":              "min7",
	"minor7":          "min7",
	"-7":              "min7",
	"°7":              "dim7",
	"o7":              "dim7",
	"diminished7":     "dim7",
	"m7b5":            "min7b5",
	"ø":               "min7b5",
	"ø7":              "min7b5",
	"half_dim7":       "min7b5",
	"half_diminished": "min7b5",
	"mmaj7":           "minmaj7",
	"m(maj7)":         "minmaj7",
	"minmaj":          "minmaj7",
	"+7":              "aug7",
	"7#5":             "aug7",
	"+maj7":           "augmaj7",
	"maj7#5":          "augmaj7",
	"sus":             "sus4",
	"7sus":            "7sus4",
	"add2":            "add9",
	"m6":              "min6",
	"69":              "6/9",
	"dom9":            "9",
	"m9":              "min9",
	"M9":              "maj9",
	"m11":             "min11",
	"M11":             "maj11",
	"m13":             "min13",
	"M13":             "maj13",
	"power":           "5",
}

var chordIndex = buildChordIndex()

func buildChordIndex() map[string]int {
	index := make(map[string]int, len(chordTable)+len(chordAliases))
	for i, cq := range chordTable {
		index[cq.Name] = i
	}
	for alias, name := range chordAliases {
		index[alias] = index[name]
	}
	return index
}

func chordPosition(name string) (int, bool) {
	n := strings.TrimSpace(name)
	if i, ok := chordIndex[n]; ok {
		return i, true
	}
	lower := strings.ReplaceAll(strings.ToLower(n), " ", "_")
	i, ok := chordIndex[lower]
	return i, ok
}

// LookupChord finds a chord quality by name, alias or symbol suffix
func LookupChord(name string) (ChordQuality, error) {
	i, ok := chordPosition(name)
	if !ok {
		return ChordQuality{}, terrors.NewUnknownTypeError("chord", name)
	}
	return chordTable[i].clone(), nil
}

// ChordOrder returns the declaration index of a chord quality, or -1
func ChordOrder(name string) int {
	i, ok := chordPosition(name)
	if !ok {
		return -1
	}
	return i
}

// Chords returns a copy of every chord quality in declaration order
func Chords() []ChordQuality {
	out := make([]ChordQuality, len(chordTable))
	for i, cq := range chordTable {
		out[i] = cq.clone()
	}
	return out
}

// ChordsInFamily returns the qualities of one family in declaration order
func ChordsInFamily(family ChordFamily) []ChordQuality {
	var out []ChordQuality
	for _, cq := range chordTable {
		if cq.Family == family {
			out = append(out, cq.clone())
		}
	}
	return out
}

// ChordNames lists canonical quality names in declaration order
func ChordNames() []string {
	names := make([]string, len(chordTable))
	for i, cq := range chordTable {
		names[i] = cq.Name
	}
	return names
}

// FindChord returns every quality whose root-relative pitch-class set equals set
func FindChord(set chroma.PitchClassSet) []ChordQuality {
	var out []ChordQuality
	for _, cq := range chordTable {
		if cq.Set() == set {
			out = append(out, cq.clone())
		}
	}
	return out
}
