package tonal

import (
	"sort"

	"github.com/RyanBlaney/sonido-theory/algorithms/catalog"
	"github.com/RyanBlaney/sonido-theory/algorithms/chroma"
	"github.com/RyanBlaney/sonido-theory/algorithms/common"
	"github.com/RyanBlaney/sonido-theory/algorithms/pitch"
	terrors "github.com/RyanBlaney/sonido-theory/errors"
	"github.com/RyanBlaney/sonido-theory/logging"
)

// DetectionKind says what a detection call was able to identify
type DetectionKind string

const (
	KindEmpty      DetectionKind = "empty"
	KindSingleNote DetectionKind = "single_note"
	KindInterval   DetectionKind = "interval"
	KindChord      DetectionKind = "chord"
	KindNoMatch    DetectionKind = "no_match"
)

// ChordCandidate represents one root/quality hypothesis for the input
type ChordCandidate struct {
	Root       int     `json:"root"`       // Candidate root (0=C, 1=C#, ..., 11=B)
	RootName   string  `json:"root_name"`  // Root as spelled in the input
	Quality    string  `json:"quality"`    // Catalog quality name
	ChordName  string  `json:"chord_name"` // Symbol including slash bass
	Family     string  `json:"family"`     // Quality family
	Inversion  int     `json:"inversion"`  // Index of the bass among the chord tones
	Coverage   float64 `json:"coverage"`   // |input ∩ chord| / |input ∪ chord|
	Confidence float64 `json:"confidence"` // Detection confidence (0-1)
	Exact      bool    `json:"exact"`      // Input and chord have identical pitch-class sets
	Missing    []int   `json:"missing"`    // Chord tones absent from the input
	Extra      []int   `json:"extra"`      // Input tones outside the chord

	cardinality int
	rootIsBass  bool
	family      catalog.ChordFamily
	order       int
	chord       Chord
}

// DetectionResult contains the output of chord detection. Quality is empty
// when no chord was identified.
type DetectionResult struct {
	Kind       DetectionKind `json:"kind"`
	Root       int           `json:"root"`       // Best root estimate, -1 when unknown
	RootName   string        `json:"root_name"`  // Root as spelled in the input
	Quality    string        `json:"quality"`    // Best quality, empty for no chord
	ChordName  string        `json:"chord_name"` // Symbol, e.g. "C/E"
	Inversion  int           `json:"inversion"`  // 0 = root position
	Confidence float64       `json:"confidence"` // Overall confidence (0-1)
	Clarity    float64       `json:"clarity"`    // How far the best candidate stands out

	BassNote int    `json:"bass_note"` // Lowest sounding pitch class
	BassName string `json:"bass_name"`
	Interval string `json:"interval,omitempty"` // Two-note input only

	Matched   []int `json:"matched"`   // Input pitch classes explained by the result
	Unmatched []int `json:"unmatched"` // Input pitch classes left over

	Chord      *Chord           `json:"chord,omitempty"`
	Candidates []ChordCandidate `json:"candidates"`
}

// DetectionParams contains parameters for chord detection
type DetectionParams struct {
	MinCoverage      float64 `json:"min_coverage"`       // Coverage floor for reporting a chord
	MaxCandidates    int     `json:"max_candidates"`     // Maximum candidates to return
	InversionWeight  float64 `json:"inversion_weight"`   // Confidence factor for partial matches not in root position
	AssumedToneDecay float64 `json:"assumed_tone_decay"` // Confidence lost per chord tone beyond the input size, assumed but unheard
}

// DefaultDetectionParams returns the reference detection behaviour
func DefaultDetectionParams() DetectionParams {
	return DetectionParams{
		MinCoverage:      2.0 / 3.0,
		MaxCandidates:    5,
		InversionWeight:  0.9,
		AssumedToneDecay: 0.05,
	}
}

// ChordDetector identifies chords from unordered note input
type ChordDetector struct {
	params DetectionParams
	logger logging.Logger
}

// NewChordDetector creates a chord detector with default parameters
func NewChordDetector() *ChordDetector {
	return NewChordDetectorWithParams(DefaultDetectionParams())
}

// NewChordDetectorWithParams creates a chord detector with custom parameters
func NewChordDetectorWithParams(params DetectionParams) *ChordDetector {
	return &ChordDetector{
		params: params,
		logger: logging.WithFields(logging.Fields{"component": "chord_detector"}),
	}
}

// GetParameters returns the detector parameters
func (cd *ChordDetector) GetParameters() DetectionParams {
	return cd.params
}

// DetectChordFromPitchClasses detects a chord from bare pitch classes; the
// first entry is taken as the bass
func (cd *ChordDetector) DetectChordFromPitchClasses(pcs []int) (DetectionResult, error) {
	notes := make([]pitch.Note, len(pcs))
	for i, v := range pcs {
		notes[i] = pitch.NoteFromPitchClass(pitch.NewPitchClass(v), false)
	}
	return cd.DetectChord(notes)
}

// DetectChordFromMidi detects a chord from MIDI note numbers
func (cd *ChordDetector) DetectChordFromMidi(midi []int) (DetectionResult, error) {
	notes := make([]pitch.Note, len(midi))
	for i, m := range midi {
		n, err := pitch.NoteFromMidi(m)
		if err != nil {
			return DetectionResult{}, err
		}
		notes[i] = n
	}
	return cd.DetectChord(notes)
}

// DetectChordFromNames detects a chord from note names such as "E4" or "Bb"
func (cd *ChordDetector) DetectChordFromNames(names []string) (DetectionResult, error) {
	notes := make([]pitch.Note, len(names))
	for i, name := range names {
		n, err := pitch.ParseNote(name)
		if err != nil {
			return DetectionResult{}, err
		}
		notes[i] = n
	}
	return cd.DetectChord(notes)
}

// DetectChord identifies the most plausible root, quality and inversion.
// Failing to find a chord is a normal result (KindNoMatch), not an error.
func (cd *ChordDetector) DetectChord(notes []pitch.Note) (DetectionResult, error) {
	if len(notes) == 0 {
		return DetectionResult{Kind: KindEmpty, Root: -1}, terrors.ErrEmptyInput
	}

	input := chroma.FromNotes(notes)
	bass := bassNote(notes)
	spelled := spellings(notes)

	result := DetectionResult{
		Root:     -1,
		BassNote: int(bass.PitchClass()),
		BassName: bass.Spelling(),
	}

	switch input.Len() {
	case 1:
		return cd.singleNote(result, bass), nil
	case 2:
		return cd.interval(result, notes, bass, input), nil
	}

	candidates := cd.generateCandidates(input, bass.PitchClass(), spelled)
	cd.sortCandidates(candidates, input.Len())

	confidences := make([]float64, len(candidates))
	for i, c := range candidates {
		confidences[i] = c.Confidence
	}
	result.Clarity = common.Clarity(confidences)

	best := -1
	for i, c := range candidates {
		if c.Coverage+common.Epsilon >= cd.params.MinCoverage {
			best = i
			break
		}
	}

	if len(candidates) > cd.params.MaxCandidates && cd.params.MaxCandidates > 0 {
		result.Candidates = candidates[:cd.params.MaxCandidates]
	} else {
		result.Candidates = candidates
	}

	if best < 0 {
		result.Kind = KindNoMatch
		result.Matched = []int{}
		result.Unmatched = input.Ints()
		cd.logger.Debug("no chord matched", logging.Fields{
			"input":      input.String(),
			"candidates": len(candidates),
		})
		return result, nil
	}

	top := candidates[best]
	chord := top.chord
	result.Kind = KindChord
	result.Root = top.Root
	result.RootName = top.RootName
	result.Quality = top.Quality
	result.ChordName = top.ChordName
	result.Inversion = top.Inversion
	result.Confidence = top.Confidence
	result.Matched = input.Intersect(chord.Set()).Ints()
	result.Unmatched = input.Difference(chord.Set()).Ints()
	result.Chord = &chord

	cd.logger.Debug("chord detected", logging.Fields{
		"input":      input.String(),
		"chord":      top.ChordName,
		"confidence": top.Confidence,
		"exact":      top.Exact,
	})

	return result, nil
}

func (cd *ChordDetector) singleNote(result DetectionResult, bass pitch.Note) DetectionResult {
	result.Kind = KindSingleNote
	result.Root = int(bass.PitchClass())
	result.RootName = bass.Spelling()
	result.ChordName = bass.Spelling()
	result.Confidence = 1.0
	result.Clarity = 1.0
	result.Matched = []int{result.Root}
	result.Unmatched = []int{}
	result.Candidates = []ChordCandidate{}
	return result
}

// interval names the distance from the bass to the other pitch class without
// going through chord matching
func (cd *ChordDetector) interval(result DetectionResult, notes []pitch.Note, bass pitch.Note, input chroma.PitchClassSet) DetectionResult {
	var upper pitch.Note
	found := false
	for _, n := range notes {
		if n.PitchClass() == bass.PitchClass() {
			continue
		}
		if !found || lowerThan(n, upper) {
			upper = n
			found = true
		}
	}

	iv := pitch.Between(bass, upper)
	result.Kind = KindInterval
	result.Root = int(bass.PitchClass())
	result.RootName = bass.Spelling()
	result.Interval = iv.Name()
	result.ChordName = bass.Spelling() + " " + iv.ShortName()
	result.Confidence = 1.0
	result.Clarity = 1.0
	result.Matched = input.Ints()
	result.Unmatched = []int{}
	result.Candidates = []ChordCandidate{}
	return result
}

// generateCandidates tries every distinct input pitch class as a root against
// every catalog quality
func (cd *ChordDetector) generateCandidates(input chroma.PitchClassSet, bass pitch.PitchClass, spelled map[pitch.PitchClass]pitch.Note) []ChordCandidate {
	qualities := catalog.Chords()
	inputCard := input.Len()
	candidates := make([]ChordCandidate, 0, inputCard*len(qualities))

	for _, root := range input.Slice() {
		rootNote := spelled[root]
		for order, cq := range qualities {
			chordSet := cq.Set().Transpose(int(root))
			coverage := input.Jaccard(chordSet)
			if coverage == 0 {
				continue
			}

			chord := newChord(rootNote, cq, false)
			inversion := 0
			if chordSet.Contains(bass) {
				chord, _ = chord.InvertTo(bass)
				inversion = chord.Inversion()
			}

			exact := chordSet == input
			cardinality := chordSet.Len()
			candidates = append(candidates, ChordCandidate{
				Root:        int(root),
				RootName:    rootNote.Spelling(),
				Quality:     cq.Name,
				ChordName:   chord.Symbol(),
				Family:      cq.Family.String(),
				Inversion:   inversion,
				Coverage:    coverage,
				Confidence:  cd.confidence(coverage, exact, root == bass, cardinality-inputCard),
				Exact:       exact,
				Missing:     chordSet.Difference(input).Ints(),
				Extra:       input.Difference(chordSet).Ints(),
				cardinality: cardinality,
				rootIsBass:  root == bass,
				family:      cq.Family,
				order:       order,
				chord:       chord,
			})
		}
	}

	return candidates
}

// confidence is 1.0 for exact matches in any inversion; partial matches start
// at their coverage and lose weight for inversions and unheard chord tones
func (cd *ChordDetector) confidence(coverage float64, exact, rootIsBass bool, assumedTones int) float64 {
	if exact {
		return 1.0
	}
	conf := coverage
	if !rootIsBass {
		conf *= cd.params.InversionWeight
	}
	if assumedTones > 0 {
		conf *= 1.0 - cd.params.AssumedToneDecay*float64(assumedTones)
	}
	return common.Clamp(conf, 0.0, 1.0)
}

// sortCandidates orders exact matches first, then by confidence, matching
// cardinality, root position, family priority and catalog order
func (cd *ChordDetector) sortCandidates(candidates []ChordCandidate, inputCard int) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Exact != b.Exact {
			return a.Exact
		}
		if !common.AlmostEqual(a.Confidence, b.Confidence) {
			return a.Confidence > b.Confidence
		}
		aFits, bFits := a.cardinality == inputCard, b.cardinality == inputCard
		if aFits != bFits {
			return aFits
		}
		if a.rootIsBass != b.rootIsBass {
			return a.rootIsBass
		}
		if a.family != b.family {
			return a.family < b.family
		}
		if a.order != b.order {
			return a.order < b.order
		}
		return a.Root < b.Root
	})
}

// bassNote picks the lowest octave-qualified note, or the first note when
// no octaves were given
func bassNote(notes []pitch.Note) pitch.Note {
	bass := notes[0]
	for _, n := range notes[1:] {
		if lowerThan(n, bass) {
			bass = n
		}
	}
	return bass
}

func lowerThan(a, b pitch.Note) bool {
	am, aok := a.MIDI()
	bm, bok := b.MIDI()
	if !aok {
		return false
	}
	if !bok {
		return true
	}
	return am < bm
}

// spellings keeps the first spelling seen for each pitch class
func spellings(notes []pitch.Note) map[pitch.PitchClass]pitch.Note {
	spelled := make(map[pitch.PitchClass]pitch.Note, len(notes))
	for _, n := range notes {
		if _, ok := spelled[n.PitchClass()]; !ok {
			spelled[n.PitchClass()] = n.WithoutOctave()
		}
	}
	return spelled
}
