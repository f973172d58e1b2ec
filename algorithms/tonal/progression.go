package tonal

import (
	"fmt"

	"github.com/RyanBlaney/sonido-theory/algorithms/catalog"
	"github.com/RyanBlaney/sonido-theory/algorithms/chroma"
	"github.com/RyanBlaney/sonido-theory/algorithms/pitch"
	terrors "github.com/RyanBlaney/sonido-theory/errors"
	"github.com/RyanBlaney/sonido-theory/logging"
)

// Complexity levels of a progression
const (
	ComplexitySimple       = "simple"
	ComplexityIntermediate = "intermediate"
	ComplexityComplex      = "complex"
)

// FunctionChromatic labels chords whose root lies outside the key
const FunctionChromatic = "chromatic"

var degreeFunctions = [...]string{
	"tonic",
	"supertonic",
	"mediant",
	"subdominant",
	"dominant",
	"submediant",
	"leading_tone",
}

// Chromatic roots a semitone below these offsets from the tonic (M2, M3, M6,
// M7) are written as flattened degrees; others as raised degrees
var flattenedAbove = map[int]bool{2: true, 4: true, 9: true, 11: true}

// ProgressionAnalysis contains the analysis of an ordered chord sequence
type ProgressionAnalysis struct {
	Key           string         `json:"key"` // e.g. "C major"
	KeyRoot       int            `json:"key_root"`
	KeyMode       KeyMode        `json:"key_mode"`
	KeyConfidence float64        `json:"key_confidence"`
	KeyCandidates []KeyCandidate `json:"key_candidates"`

	Chords        []string `json:"chords"`         // Chord symbols in input order
	RomanNumerals []string `json:"roman_numerals"` // One per chord
	Functions     []string `json:"functions"`      // Harmonic function per chord
	NonDiatonic   []int    `json:"non_diatonic"`   // Indices of chords with tones outside the key

	Complexity       string            `json:"complexity"`
	PitchClasses     []int             `json:"pitch_classes"` // Union of all chord tones
	ScaleSuggestions []ScaleSuggestion `json:"scale_suggestions"`
	Movement         HarmonicMovement  `json:"movement"`
	Cadences         []Cadence         `json:"cadences"`
}

// ProgressionAnalyzer infers the key of a chord sequence and labels each chord
type ProgressionAnalyzer struct {
	params  ProgressionParams
	harmony *HarmonyAnalyzer
	keys    *KeyEstimator
	logger  logging.Logger
}

// NewProgressionAnalyzer creates a progression analyzer with default parameters
func NewProgressionAnalyzer() *ProgressionAnalyzer {
	return NewProgressionAnalyzerWithParams(DefaultProgressionParams(), NewHarmonyAnalyzer())
}

// NewProgressionAnalyzerWithParams creates a progression analyzer sharing a harmony analyzer
func NewProgressionAnalyzerWithParams(params ProgressionParams, harmony *HarmonyAnalyzer) *ProgressionAnalyzer {
	if harmony == nil {
		harmony = NewHarmonyAnalyzer()
	}
	return &ProgressionAnalyzer{
		params:  params,
		harmony: harmony,
		keys:    NewKeyEstimatorWithParams(params, harmony),
		logger:  logging.WithFields(logging.Fields{"component": "progression_analyzer"}),
	}
}

// GetParameters returns the analyzer parameters
func (pa *ProgressionAnalyzer) GetParameters() ProgressionParams {
	return pa.params
}

// AnalyzeSymbols resolves chord symbols ("C", "Am7", "G/B") and analyzes them
func (pa *ProgressionAnalyzer) AnalyzeSymbols(symbols []string) (ProgressionAnalysis, error) {
	chords, err := ParseProgression(symbols)
	if err != nil {
		return ProgressionAnalysis{}, err
	}
	return pa.AnalyzeProgression(chords)
}

// AnalyzeProgression detects the key and labels every chord with a Roman
// numeral and a harmonic function
func (pa *ProgressionAnalyzer) AnalyzeProgression(chords []Chord) (ProgressionAnalysis, error) {
	if len(chords) == 0 {
		return ProgressionAnalysis{}, terrors.ErrEmptyInput
	}

	key, err := pa.keys.EstimateKey(chords)
	if err != nil {
		return ProgressionAnalysis{}, err
	}

	analysis := ProgressionAnalysis{
		Key:           key.KeyName,
		KeyRoot:       key.Key,
		KeyMode:       key.Mode,
		KeyConfidence: key.Confidence,
		KeyCandidates: key.Candidates,
		Chords:        make([]string, len(chords)),
		RomanNumerals: make([]string, len(chords)),
		Functions:     make([]string, len(chords)),
		NonDiatonic:   []int{},
	}

	var union chroma.PitchClassSet
	keySet := key.Scale.Set()
	for i, chord := range chords {
		numeral, function := LabelChord(chord, key.Scale)
		analysis.Chords[i] = chord.Symbol()
		analysis.RomanNumerals[i] = numeral
		analysis.Functions[i] = function
		if !chord.Set().IsSubsetOf(keySet) {
			analysis.NonDiatonic = append(analysis.NonDiatonic, i)
		}
		union = union.Union(chord.Set())
	}

	analysis.PitchClasses = union.Ints()
	analysis.Complexity = complexity(chords, len(analysis.NonDiatonic))

	suggestions := pa.harmony.RankScalesForPitchClasses(union, pa.params.SuggestionMinCoverage)
	if pa.params.MaxSuggestions > 0 && len(suggestions) > pa.params.MaxSuggestions {
		suggestions = suggestions[:pa.params.MaxSuggestions]
	}
	analysis.ScaleSuggestions = suggestions
	analysis.Movement = AnalyzeMovement(chords)
	analysis.Cadences = FindCadences(chords, key.Scale)

	pa.logger.Debug("progression analyzed", logging.Fields{
		"key":      analysis.Key,
		"numerals": analysis.RomanNumerals,
		"cadences": len(analysis.Cadences),
	})

	return analysis, nil
}

// LabelChord returns the Roman numeral and harmonic function of a chord in a
// key. Roots outside the key get an accidental-prefixed numeral and the
// chromatic function; they are never mapped onto the nearest diatonic degree.
func LabelChord(chord Chord, key Scale) (string, string) {
	root := chord.RootPitchClass()
	if degree, ok := key.DegreeOf(root); ok {
		return RomanNumeral(degree, chord), degreeFunction(degree, key)
	}

	degree, flat, ok := chromaticDegree(root, key)
	switch {
	case !ok:
		return "?", FunctionChromatic
	case flat:
		return "b" + RomanNumeral(degree, chord), FunctionChromatic
	default:
		return "#" + RomanNumeral(degree, chord), FunctionChromatic
	}
}

// chromaticDegree reads a root outside the key as a lowered or raised
// neighbour of a key degree. ok is false when neither neighbour is in the key.
func chromaticDegree(root pitch.PitchClass, key Scale) (degree int, flat, ok bool) {
	offset := key.Tonic().IntervalTo(root)
	above, aboveOK := key.DegreeOf(root.Transpose(1))
	below, belowOK := key.DegreeOf(root.Transpose(-1))

	switch {
	case aboveOK && (flattenedAbove[offset+1] || !belowOK):
		return above, true, true
	case belowOK:
		return below, false, true
	}
	return 0, false, false
}

// spellRoot names a chord root in a key: key members follow the key's
// spelling, chromatic roots follow their reading as a lowered or raised degree
func spellRoot(pc pitch.PitchClass, key Scale) pitch.Note {
	if key.Contains(pc) {
		return pitch.NoteFromPitchClass(pc, key.PrefersFlats())
	}
	_, flat, ok := chromaticDegree(pc, key)
	if !ok {
		flat = key.PrefersFlats()
	}
	return pitch.NoteFromPitchClass(pc, flat)
}

// degreeFunction names a degree; a seventh degree a whole step below the
// tonic is the subtonic rather than the leading tone
func degreeFunction(degree int, key Scale) string {
	if degree < 1 || degree > len(degreeFunctions) || key.Len() != 7 {
		return fmt.Sprintf("degree_%d", degree)
	}
	if degree == 7 {
		if pc, err := key.Degree(7); err == nil && pc.IntervalTo(key.Tonic()) == 2 {
			return "subtonic"
		}
	}
	return degreeFunctions[degree-1]
}

// complexity grades a progression by its chord families and chromaticism
func complexity(chords []Chord, nonDiatonic int) string {
	level := ComplexitySimple
	for _, chord := range chords {
		switch chord.Family() {
		case catalog.FamilyExtended, catalog.FamilyOther:
			return ComplexityComplex
		case catalog.FamilySeventh, catalog.FamilySuspendedAdded:
			level = ComplexityIntermediate
		}
	}
	if nonDiatonic*3 > len(chords) {
		return ComplexityComplex
	}
	if nonDiatonic > 0 {
		level = ComplexityIntermediate
	}
	return level
}

// ParseProgression resolves a list of chord symbols
func ParseProgression(symbols []string) ([]Chord, error) {
	chords := make([]Chord, len(symbols))
	for i, s := range symbols {
		c, err := ParseChordSymbol(s)
		if err != nil {
			return nil, fmt.Errorf("chord %d: %w", i+1, err)
		}
		chords[i] = c
	}
	return chords, nil
}

// TransposeProgression moves every chord by the same number of semitones
func TransposeProgression(chords []Chord, semitones int) []Chord {
	out := make([]Chord, len(chords))
	for i, chord := range chords {
		out[i] = chord.Transpose(semitones)
	}
	return out
}
