package tonal

import (
	"sort"

	"github.com/RyanBlaney/sonido-theory/algorithms/common"
	"github.com/RyanBlaney/sonido-theory/algorithms/pitch"
	terrors "github.com/RyanBlaney/sonido-theory/errors"
	"github.com/RyanBlaney/sonido-theory/logging"
)

// KeyMode represents major or minor mode
type KeyMode int

const (
	KeyModeMajor KeyMode = iota
	KeyModeMinor
)

func (m KeyMode) String() string {
	if m == KeyModeMinor {
		return "minor"
	}
	return "major"
}

// ScaleType returns the catalog scale used for the mode
func (m KeyMode) ScaleType() string {
	if m == KeyModeMinor {
		return "natural_minor"
	}
	return "major"
}

func (m KeyMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// KeyCandidate represents a potential key with its score
type KeyCandidate struct {
	Key         int     `json:"key"`          // Tonic pitch class (0=C, 1=C#, ..., 11=B)
	Mode        KeyMode `json:"mode"`         // Major or Minor
	KeyName     string  `json:"key_name"`     // Human-readable key name
	Score       float64 `json:"score"`        // Summed tonal fit plus cadence bonus
	Confidence  float64 `json:"confidence"`   // Score relative to the best possible (0-1)
	NonDiatonic int     `json:"non_diatonic"` // Chords with tones outside the key
}

// KeyEstimationResult contains key estimation results for a chord sequence
type KeyEstimationResult struct {
	Key        int     `json:"key"`        // Best tonic estimate (0-11)
	Mode       KeyMode `json:"mode"`       // Major or Minor
	KeyName    string  `json:"key_name"`   // Human-readable name (e.g., "C major")
	Confidence float64 `json:"confidence"` // Overall confidence (0-1)
	Clarity    float64 `json:"clarity"`    // Key clarity measure

	Scale       Scale          `json:"scale"`
	Candidates  []KeyCandidate `json:"candidates"`
	RelatedKeys []KeyCandidate `json:"related_keys"` // Relative, parallel, dominant and subdominant keys
}

// ProgressionParams contains parameters for key estimation and progression analysis
type ProgressionParams struct {
	CadenceBonus          float64 `json:"cadence_bonus"`           // Added when the first or last chord root is the tonic
	MaxKeyCandidates      int     `json:"max_key_candidates"`      // Maximum key candidates to return
	SuggestionMinCoverage float64 `json:"suggestion_min_coverage"` // Coverage floor for scale suggestions
	MaxSuggestions        int     `json:"max_suggestions"`         // Maximum scale suggestions to return
}

// DefaultProgressionParams returns the reference progression behaviour
func DefaultProgressionParams() ProgressionParams {
	return ProgressionParams{
		CadenceBonus:          0.5,
		MaxKeyCandidates:      5,
		SuggestionMinCoverage: 0.8,
		MaxSuggestions:        5,
	}
}

// KeyEstimator infers the key of a chord sequence by scoring all 24 major
// and minor keys
type KeyEstimator struct {
	params  ProgressionParams
	harmony *HarmonyAnalyzer
	logger  logging.Logger
}

// NewKeyEstimator creates a key estimator with default parameters
func NewKeyEstimator() *KeyEstimator {
	return NewKeyEstimatorWithParams(DefaultProgressionParams(), NewHarmonyAnalyzer())
}

// NewKeyEstimatorWithParams creates a key estimator that scores chords with
// the given harmony analyzer
func NewKeyEstimatorWithParams(params ProgressionParams, harmony *HarmonyAnalyzer) *KeyEstimator {
	if harmony == nil {
		harmony = NewHarmonyAnalyzer()
	}
	return &KeyEstimator{
		params:  params,
		harmony: harmony,
		logger:  logging.WithFields(logging.Fields{"component": "key_estimator"}),
	}
}

// EstimateKey scores each key by the sum of tonal compatibility of every
// chord, plus a cadence bonus for a first or last chord rooted on the tonic.
// Ties prefer major, then fewer non-diatonic chords, then the lower tonic.
func (ke *KeyEstimator) EstimateKey(chords []Chord) (KeyEstimationResult, error) {
	if len(chords) == 0 {
		return KeyEstimationResult{}, terrors.ErrEmptyInput
	}

	maxScore := float64(len(chords)) + ke.params.CadenceBonus*float64(min(len(chords), 2))

	candidates := make([]KeyCandidate, 0, 24)
	for _, mode := range []KeyMode{KeyModeMajor, KeyModeMinor} {
		for key := 0; key < 12; key++ {
			scale, err := NewScale(pitch.PitchClass(key), mode.ScaleType())
			if err != nil {
				return KeyEstimationResult{}, err
			}
			candidates = append(candidates, ke.scoreKey(chords, scale, key, mode, maxScore))
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if !common.AlmostEqual(a.Score, b.Score) {
			return a.Score > b.Score
		}
		if a.Mode != b.Mode {
			return a.Mode == KeyModeMajor
		}
		if a.NonDiatonic != b.NonDiatonic {
			return a.NonDiatonic < b.NonDiatonic
		}
		return a.Key < b.Key
	})

	scores := make([]float64, len(candidates))
	for i, c := range candidates {
		scores[i] = c.Score
	}

	best := candidates[0]
	scale, _ := NewScale(keyTonic(best.Key, chords), best.Mode.ScaleType())

	result := KeyEstimationResult{
		Key:         best.Key,
		Mode:        best.Mode,
		KeyName:     scale.Root().Spelling() + " " + best.Mode.String(),
		Confidence:  best.Confidence,
		Clarity:     common.Clarity(scores),
		Scale:       scale,
		RelatedKeys: relatedKeys(best, candidates),
	}
	if ke.params.MaxKeyCandidates > 0 && len(candidates) > ke.params.MaxKeyCandidates {
		result.Candidates = candidates[:ke.params.MaxKeyCandidates]
	} else {
		result.Candidates = candidates
	}

	ke.logger.Debug("key estimated", logging.Fields{
		"key":        result.KeyName,
		"score":      best.Score,
		"confidence": result.Confidence,
		"chords":     len(chords),
	})

	return result, nil
}

func (ke *KeyEstimator) scoreKey(chords []Chord, scale Scale, key int, mode KeyMode, maxScore float64) KeyCandidate {
	tonal := make([]float64, 0, len(chords)+2)
	nonDiatonic := 0
	for _, chord := range chords {
		tonal = append(tonal, ke.harmony.TonalCompatibility(chord, scale).TonalScore)
		if !chord.Set().IsSubsetOf(scale.Set()) {
			nonDiatonic++
		}
	}

	tonic := pitch.PitchClass(key)
	if chords[0].RootPitchClass() == tonic {
		tonal = append(tonal, ke.params.CadenceBonus)
	}
	if len(chords) > 1 && chords[len(chords)-1].RootPitchClass() == tonic {
		tonal = append(tonal, ke.params.CadenceBonus)
	}

	score := common.Sum(tonal)
	confidence := 0.0
	if maxScore > 0 {
		confidence = common.Clamp(score/maxScore, 0.0, 1.0)
	}

	return KeyCandidate{
		Key:         key,
		Mode:        mode,
		KeyName:     GetKeyName(key, mode),
		Score:       score,
		Confidence:  confidence,
		NonDiatonic: nonDiatonic,
	}
}

// keyTonic spells the tonic the way the progression spells it, if it does
func keyTonic(key int, chords []Chord) pitch.Note {
	for _, chord := range chords {
		if int(chord.RootPitchClass()) == key {
			return chord.Root().WithoutOctave()
		}
	}
	return pitch.NoteFromPitchClass(pitch.PitchClass(key), false)
}

var keyRelations = []func(int, KeyMode) (int, KeyMode){
	GetRelativeKey,
	GetParallelKey,
	GetDominantKey,
	GetSubdominantKey,
}

func relatedKeys(best KeyCandidate, candidates []KeyCandidate) []KeyCandidate {
	var related []KeyCandidate
	for _, relation := range keyRelations {
		k, m := relation(best.Key, best.Mode)
		for _, c := range candidates {
			if c.Key == k && c.Mode == m {
				related = append(related, c)
				break
			}
		}
	}
	return related
}

// GetKeyName returns human-readable key name
func GetKeyName(key int, mode KeyMode) string {
	return pitch.NewPitchClass(key).Name(false) + " " + mode.String()
}

// GetRelativeKey returns the relative major/minor key
func GetRelativeKey(key int, mode KeyMode) (int, KeyMode) {
	if mode == KeyModeMajor {
		return common.Mod(key-3, 12), KeyModeMinor
	}
	return common.Mod(key+3, 12), KeyModeMajor
}

// GetParallelKey returns the parallel major/minor key
func GetParallelKey(key int, mode KeyMode) (int, KeyMode) {
	if mode == KeyModeMajor {
		return key, KeyModeMinor
	}
	return key, KeyModeMajor
}

// GetDominantKey returns the dominant key (5th above)
func GetDominantKey(key int, mode KeyMode) (int, KeyMode) {
	return common.Mod(key+7, 12), mode
}

// GetSubdominantKey returns the subdominant key (5th below)
func GetSubdominantKey(key int, mode KeyMode) (int, KeyMode) {
	return common.Mod(key-7, 12), mode
}

// IsKeyCompatible checks if two keys are the same or closely related
func IsKeyCompatible(key1 int, mode1 KeyMode, key2 int, mode2 KeyMode) bool {
	if key1 == key2 && mode1 == mode2 {
		return true
	}
	for _, relation := range keyRelations {
		k, m := relation(key1, mode1)
		if k == key2 && m == mode2 {
			return true
		}
	}
	return false
}
