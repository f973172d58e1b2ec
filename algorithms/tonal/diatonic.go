package tonal

import (
	"strings"

	"github.com/RyanBlaney/sonido-theory/algorithms/catalog"
	"github.com/RyanBlaney/sonido-theory/algorithms/chroma"
	"github.com/RyanBlaney/sonido-theory/algorithms/pitch"
)

// DiatonicChord is the chord built by stacking thirds on one scale degree
type DiatonicChord struct {
	Degree   int    `json:"degree"`    // 1-7
	Numeral  string `json:"numeral"`   // Roman numeral, e.g. "ii" or "vii°"
	Root     int    `json:"root"`      // Root pitch class
	RootName string `json:"root_name"` // Spelled root
	Quality  string `json:"quality"`   // Catalog quality, or "custom"
	Chord    Chord  `json:"chord"`
}

var upperNumerals = [...]string{"I", "II", "III", "IV", "V", "VI", "VII"}

// numeralFigure is the case and suffix a quality takes in a Roman numeral
type numeralFigure struct {
	lower  bool
	figure string
}

// Figures for qualities that are labelled in progressions. Qualities not
// listed fall back to their third.
var numeralFigures = map[string]numeralFigure{
	"maj":     {false, ""},
	"min":     {true, ""},
	"dim":     {true, "°"},
	"aug":     {false, "+"},
	"maj7":    {false, "maj7"},
	"dom7":    {false, "7"},
	"min7":    {true, "7"},
	"dim7":    {true, "°7"},
	"min7b5":  {true, "ø7"},
	"minmaj7": {true, "maj7"},
	"aug7":    {false, "+7"},
	"augmaj7": {false, "+maj7"},
	"min6":    {true, "6"},
	"min9":    {true, "9"},
	"min11":   {true, "11"},
	"min13":   {true, "13"},
}

// RomanNumeral renders the numeral for a chord on a 1-indexed degree.
// Major and augmented chords are uppercase, minor and diminished lowercase.
// Degrees below 1 have no numeral and render as "?".
func RomanNumeral(degree int, chord Chord) string {
	if degree < 1 {
		return "?"
	}
	numeral := upperNumerals[(degree-1)%len(upperNumerals)]

	lower, figure := false, ""
	if f, ok := numeralFigures[chord.Quality()]; ok {
		lower, figure = f.lower, f.figure
	} else {
		rel := chord.Set().Normalize(chord.RootPitchClass())
		lower = rel.Contains(3) && !rel.Contains(4)
		if !chord.IsCustom() {
			figure = chord.symbol
		}
	}

	if lower {
		numeral = strings.ToLower(numeral)
	}
	return numeral + figure
}

// DiatonicChords builds the seven triads of a heptatonic scale. Each quality
// comes from the semitone distances between stacked scale members.
func DiatonicChords(scale Scale) ([]DiatonicChord, error) {
	return diatonicStack(scale, false)
}

// DiatonicSevenths builds the seven seventh chords of a heptatonic scale
func DiatonicSevenths(scale Scale) ([]DiatonicChord, error) {
	return diatonicStack(scale, true)
}

func diatonicStack(scale Scale, sevenths bool) ([]DiatonicChord, error) {
	if err := requireHeptatonic(scale); err != nil {
		return nil, err
	}

	pcs := scale.PitchClasses()
	preferFlats := scale.PrefersFlats()
	chords := make([]DiatonicChord, 0, len(pcs))

	for i, root := range pcs {
		intervals := []int{0, root.IntervalTo(pcs[(i+2)%7]), root.IntervalTo(pcs[(i+4)%7])}
		if sevenths {
			intervals = append(intervals, root.IntervalTo(pcs[(i+6)%7]))
		}

		rootNote := pitch.NoteFromPitchClass(root, preferFlats)
		chord, err := stackedChord(rootNote, intervals, sevenths)
		if err != nil {
			return nil, err
		}

		chords = append(chords, DiatonicChord{
			Degree:   i + 1,
			Numeral:  RomanNumeral(i+1, chord),
			Root:     int(root),
			RootName: rootNote.Spelling(),
			Quality:  chord.Quality(),
			Chord:    chord,
		})
	}

	return chords, nil
}

// stackedChord names a stacked-third chord from the catalog when possible
func stackedChord(root pitch.Note, intervals []int, sevenths bool) (Chord, error) {
	family := catalog.FamilyTriad
	if sevenths {
		family = catalog.FamilySeventh
	}
	for _, cq := range catalog.FindChord(chroma.FromInts(intervals)) {
		if cq.Family == family {
			return newChord(root, cq, false), nil
		}
	}
	return NewCustomChord(root, intervals)
}
