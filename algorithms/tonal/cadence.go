package tonal

import "strings"

// CadenceType names a cadential chord pair
type CadenceType string

const (
	CadenceAuthentic CadenceType = "authentic" // V to I
	CadencePlagal    CadenceType = "plagal"    // IV to I
	CadenceDeceptive CadenceType = "deceptive" // V to vi
	CadenceHalf      CadenceType = "half"      // Ending on V
)

// Cadence is a cadential motion arriving on chord Index
type Cadence struct {
	Index    int         `json:"index"`
	Type     CadenceType `json:"type"`
	Numerals string      `json:"numerals"` // e.g. "V7-I"
	Final    bool        `json:"final"`    // Arrives on the last chord
}

// FindCadences scans neighbouring chords for cadences in a heptatonic key.
// A dominant is a major-third chord on degree 5. Authentic, plagal and
// deceptive motions are reported wherever they occur; a half cadence only
// when the progression ends on the dominant. Other keys give no cadences.
func FindCadences(chords []Chord, key Scale) []Cadence {
	cadences := []Cadence{}
	if key.Len() != 7 {
		return cadences
	}

	last := len(chords) - 1
	for i := 1; i <= last; i++ {
		prev, next := chords[i-1], chords[i]
		if prev.RootPitchClass() == next.RootPitchClass() {
			continue
		}
		from, _ := key.DegreeOf(prev.RootPitchClass())
		to, _ := key.DegreeOf(next.RootPitchClass())

		var kind CadenceType
		switch {
		case isDominant(prev, from) && to == 1:
			kind = CadenceAuthentic
		case from == 4 && to == 1:
			kind = CadencePlagal
		case isDominant(prev, from) && to == 6:
			kind = CadenceDeceptive
		case i == last && isDominant(next, to):
			kind = CadenceHalf
		default:
			continue
		}

		prevNumeral, _ := LabelChord(prev, key)
		nextNumeral, _ := LabelChord(next, key)
		cadences = append(cadences, Cadence{
			Index:    i,
			Type:     kind,
			Numerals: strings.Join([]string{prevNumeral, nextNumeral}, "-"),
			Final:    i == last,
		})
	}
	return cadences
}

func isDominant(chord Chord, degree int) bool {
	if degree != 5 {
		return false
	}
	rel := chord.Set().Normalize(chord.RootPitchClass())
	return rel.Contains(4) && !rel.Contains(3)
}
