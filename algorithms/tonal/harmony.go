package tonal

import (
	"sort"

	"github.com/RyanBlaney/sonido-theory/algorithms/catalog"
	"github.com/RyanBlaney/sonido-theory/algorithms/chroma"
	"github.com/RyanBlaney/sonido-theory/algorithms/common"
	"github.com/RyanBlaney/sonido-theory/algorithms/pitch"
	"github.com/RyanBlaney/sonido-theory/logging"
)

// Relationship classifies how a chord sits in a scale
type Relationship string

const (
	RelationshipDiatonic Relationship = "diatonic" // root is the tonic, every tone in the scale
	RelationshipBorrowed Relationship = "borrowed" // root in the scale but not the tonic, every tone in the scale
	RelationshipPartial  Relationship = "partial"  // root in the scale, some tones outside
	RelationshipNone     Relationship = "none"     // root outside the scale
)

// CompatibilityResult scores one chord against one scale
type CompatibilityResult struct {
	Chord         Chord        `json:"chord"`
	Scale         Scale        `json:"scale"`
	ChordSymbol   string       `json:"chord_symbol"`
	ScaleName     string       `json:"scale_name"`
	TonalScore    float64      `json:"tonal_score"`    // Functional fit (0-1)
	ModalScore    float64      `json:"modal_score"`    // Note-pool overlap (0-1)
	CombinedScore float64      `json:"combined_score"` // Weighted blend used for ranking
	Coverage      float64      `json:"coverage"`       // Chord tones found in the scale / chord tones
	Shared        []int        `json:"shared"`         // Chord tones in the scale
	Missing       []int        `json:"missing"`        // Chord tones outside the scale
	Extensions    []int        `json:"extensions"`     // Scale tones available over the chord
	RootInScale   bool         `json:"root_in_scale"`
	Relationship  Relationship `json:"relationship"`
	Diatonic      bool         `json:"diatonic"` // Chord is one of the scale's stacked-third chords
}

// ScaleSuggestion ranks a scale against an aggregate pitch-class set
type ScaleSuggestion struct {
	Scale    Scale   `json:"scale"`
	Name     string  `json:"name"`
	Coverage float64 `json:"coverage"` // Input pitch classes found in the scale / input size
	Fit      float64 `json:"fit"`      // Jaccard similarity between input and scale
	Missing  []int   `json:"missing"`  // Input pitch classes outside the scale
}

// HarmonyParams contains parameters for compatibility scoring
type HarmonyParams struct {
	TonalWeight     float64 `json:"tonal_weight"`      // Weight of the tonal score in the combined score
	ModalWeight     float64 `json:"modal_weight"`      // Weight of the modal score in the combined score
	NonTonicPenalty float64 `json:"non_tonic_penalty"` // Tonal score reduction when the chord root is not the tonic
	MinScore        float64 `json:"min_score"`         // Default floor for ranking calls
	MaxResults      int     `json:"max_results"`       // 0 means unlimited
}

// DefaultHarmonyParams returns the reference scoring behaviour
func DefaultHarmonyParams() HarmonyParams {
	return HarmonyParams{
		TonalWeight:     0.5,
		ModalWeight:     0.5,
		NonTonicPenalty: 0.2,
		MinScore:        0.5,
		MaxResults:      0,
	}
}

// HarmonyAnalyzer scores chord/scale compatibility
type HarmonyAnalyzer struct {
	params HarmonyParams
	logger logging.Logger
}

// NewHarmonyAnalyzer creates a harmony analyzer with default parameters
func NewHarmonyAnalyzer() *HarmonyAnalyzer {
	return NewHarmonyAnalyzerWithParams(DefaultHarmonyParams())
}

// NewHarmonyAnalyzerWithParams creates a harmony analyzer with custom parameters
func NewHarmonyAnalyzerWithParams(params HarmonyParams) *HarmonyAnalyzer {
	return &HarmonyAnalyzer{
		params: params,
		logger: logging.WithFields(logging.Fields{"component": "harmony_analyzer"}),
	}
}

// GetParameters returns the analyzer parameters
func (ha *HarmonyAnalyzer) GetParameters() HarmonyParams {
	return ha.params
}

// TonalCompatibility asks whether the chord functions within the key. A root
// outside the scale scores 0; otherwise the chord-tone coverage is reduced
// by NonTonicPenalty unless the root is the tonic.
func (ha *HarmonyAnalyzer) TonalCompatibility(chord Chord, scale Scale) CompatibilityResult {
	return ha.Compatibility(chord, scale)
}

// ModalCompatibility asks whether the scale's note pool fits the chord,
// ignoring function. The ModalScore is the chord-tone overlap ratio.
func (ha *HarmonyAnalyzer) ModalCompatibility(chord Chord, scale Scale) CompatibilityResult {
	return ha.Compatibility(chord, scale)
}

// Compatibility computes both scores for a chord/scale pair
func (ha *HarmonyAnalyzer) Compatibility(chord Chord, scale Scale) CompatibilityResult {
	chordSet := chord.Set()
	scaleSet := scale.Set()
	shared := chordSet.Intersect(scaleSet)
	coverage := chordSet.Coverage(scaleSet)
	rootInScale := scaleSet.Contains(chord.RootPitchClass())
	isTonic := chord.RootPitchClass() == scale.Tonic()

	tonal := 0.0
	if rootInScale {
		tonal = coverage
		if !isTonic {
			tonal *= 1.0 - ha.params.NonTonicPenalty
		}
	}
	modal := coverage

	var relationship Relationship
	switch {
	case !rootInScale:
		relationship = RelationshipNone
	case chordSet.IsSubsetOf(scaleSet) && isTonic:
		relationship = RelationshipDiatonic
	case chordSet.IsSubsetOf(scaleSet):
		relationship = RelationshipBorrowed
	default:
		relationship = RelationshipPartial
	}

	return CompatibilityResult{
		Chord:         chord,
		Scale:         scale,
		ChordSymbol:   chord.Symbol(),
		ScaleName:     scale.Name(),
		TonalScore:    common.Clamp(tonal, 0.0, 1.0),
		ModalScore:    common.Clamp(modal, 0.0, 1.0),
		CombinedScore: ha.combined(tonal, modal),
		Coverage:      coverage,
		Shared:        shared.Ints(),
		Missing:       chordSet.Difference(scaleSet).Ints(),
		Extensions:    scaleSet.Difference(chordSet).Ints(),
		RootInScale:   rootInScale,
		Relationship:  relationship,
	}
}

func (ha *HarmonyAnalyzer) combined(tonal, modal float64) float64 {
	return common.WeightedMean(
		[]float64{tonal, modal},
		[]float64{ha.params.TonalWeight, ha.params.ModalWeight},
	)
}

// FindCompatibleScales scores every catalog scale type at every root and
// returns those whose combined score reaches minScore, best first. Ties go to
// the higher tonal score, then the earlier catalog type, then the root
// nearest above the chord root.
func (ha *HarmonyAnalyzer) FindCompatibleScales(chord Chord, minScore float64) []CompatibilityResult {
	var results []CompatibilityResult
	for _, st := range catalog.Scales() {
		for r := 0; r < 12; r++ {
			root := pitch.NoteFromPitchClass(pitch.PitchClass(r), chord.Root().IsFlat())
			scale := newScale(root, st.Name, st.DisplayName, st.Family, false, st.Intervals)
			res := ha.Compatibility(chord, scale)
			if res.CombinedScore+common.Epsilon >= minScore {
				results = append(results, res)
			}
		}
	}

	chordRoot := chord.RootPitchClass()
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if !common.AlmostEqual(a.CombinedScore, b.CombinedScore) {
			return a.CombinedScore > b.CombinedScore
		}
		if !common.AlmostEqual(a.TonalScore, b.TonalScore) {
			return a.TonalScore > b.TonalScore
		}
		ao, bo := catalog.ScaleOrder(a.Scale.Type()), catalog.ScaleOrder(b.Scale.Type())
		if ao != bo {
			return ao < bo
		}
		return chordRoot.IntervalTo(a.Scale.Tonic()) < chordRoot.IntervalTo(b.Scale.Tonic())
	})

	ha.logger.Debug("ranked compatible scales", logging.Fields{
		"chord":   chord.Symbol(),
		"matches": len(results),
	})

	return ha.limit(results)
}

// FindCompatibleChords ranks chords against a scale: the scale's diatonic
// triads and sevenths (heptatonic scales only) plus chromatic triads and
// sevenths that share all but one tone with the scale
func (ha *HarmonyAnalyzer) FindCompatibleChords(scale Scale, minScore float64) []CompatibilityResult {
	seen := make(map[string]bool)
	var results []CompatibilityResult

	add := func(chord Chord, diatonic bool) {
		key := chord.Symbol()
		if seen[key] {
			return
		}
		res := ha.Compatibility(chord, scale)
		if res.CombinedScore+common.Epsilon < minScore {
			return
		}
		seen[key] = true
		res.Diatonic = diatonic
		results = append(results, res)
	}

	if triads, err := DiatonicChords(scale); err == nil {
		for _, dc := range triads {
			add(dc.Chord, true)
		}
	}
	if sevenths, err := DiatonicSevenths(scale); err == nil {
		for _, dc := range sevenths {
			add(dc.Chord, true)
		}
	}

	scaleSet := scale.Set()
	families := append(catalog.ChordsInFamily(catalog.FamilyTriad), catalog.ChordsInFamily(catalog.FamilySeventh)...)
	for r := 0; r < 12; r++ {
		root := spellRoot(pitch.PitchClass(r), scale)
		for _, cq := range families {
			chordSet := cq.Set().Transpose(r)
			if chordSet.Intersect(scaleSet).Len() < chordSet.Len()-1 {
				continue
			}
			add(newChord(root, cq, false), false)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Diatonic != b.Diatonic {
			return a.Diatonic
		}
		if !common.AlmostEqual(a.CombinedScore, b.CombinedScore) {
			return a.CombinedScore > b.CombinedScore
		}
		if !common.AlmostEqual(a.TonalScore, b.TonalScore) {
			return a.TonalScore > b.TonalScore
		}
		da, _ := scale.DegreeOf(a.Chord.RootPitchClass())
		db, _ := scale.DegreeOf(b.Chord.RootPitchClass())
		if da != db {
			return da < db
		}
		return catalog.ChordOrder(a.Chord.Quality()) < catalog.ChordOrder(b.Chord.Quality())
	})

	return ha.limit(results)
}

// RankScalesForPitchClasses ranks every scale by how well it covers an
// aggregate pitch-class set, e.g. all notes of a progression
func (ha *HarmonyAnalyzer) RankScalesForPitchClasses(set chroma.PitchClassSet, minScore float64) []ScaleSuggestion {
	if set.IsEmpty() {
		return nil
	}

	var suggestions []ScaleSuggestion
	for _, st := range catalog.Scales() {
		if st.Name == "chromatic" {
			continue
		}
		for r := 0; r < 12; r++ {
			scale := newScale(pitch.NoteFromPitchClass(pitch.PitchClass(r), false), st.Name, st.DisplayName, st.Family, false, st.Intervals)
			scaleSet := scale.Set()
			coverage := set.Coverage(scaleSet)
			if coverage+common.Epsilon < minScore {
				continue
			}
			suggestions = append(suggestions, ScaleSuggestion{
				Scale:    scale,
				Name:     scale.Name(),
				Coverage: coverage,
				Fit:      set.Jaccard(scaleSet),
				Missing:  set.Difference(scaleSet).Ints(),
			})
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if !common.AlmostEqual(a.Coverage, b.Coverage) {
			return a.Coverage > b.Coverage
		}
		if !common.AlmostEqual(a.Fit, b.Fit) {
			return a.Fit > b.Fit
		}
		return catalog.ScaleOrder(a.Scale.Type()) < catalog.ScaleOrder(b.Scale.Type())
	})

	if ha.params.MaxResults > 0 && len(suggestions) > ha.params.MaxResults {
		suggestions = suggestions[:ha.params.MaxResults]
	}
	return suggestions
}

func (ha *HarmonyAnalyzer) limit(results []CompatibilityResult) []CompatibilityResult {
	if ha.params.MaxResults > 0 && len(results) > ha.params.MaxResults {
		return results[:ha.params.MaxResults]
	}
	return results
}
