// Package engine is the library surface of the music-theory core: note
// parsing, scale and chord construction, chord detection, harmonic
// compatibility and progression analysis behind one configured value.
package engine

import (
	"fmt"

	"github.com/RyanBlaney/sonido-theory/algorithms/chroma"
	"github.com/RyanBlaney/sonido-theory/algorithms/pitch"
	"github.com/RyanBlaney/sonido-theory/algorithms/tonal"
	"github.com/RyanBlaney/sonido-theory/config"
	"github.com/RyanBlaney/sonido-theory/logging"
	"github.com/RyanBlaney/sonido-theory/midifile"
)

// Engine holds configured analyzers. It has no mutable state and is safe for
// concurrent use.
type Engine struct {
	config      config.EngineConfig
	detector    *tonal.ChordDetector
	harmony     *tonal.HarmonyAnalyzer
	progression *tonal.ProgressionAnalyzer
	logger      logging.Logger
}

// TimedDetection is a chord detection anchored at a point in a MIDI file
type TimedDetection struct {
	Offset    int64                 `json:"offset"` // Microseconds from the start of the file
	Keys      []int                 `json:"keys"`
	Detection tonal.DetectionResult `json:"detection"`
}

// New builds an engine; a nil config means DefaultEngineConfig
func New(cfg *config.EngineConfig) (*Engine, error) {
	if cfg == nil {
		cfg = config.DefaultEngineConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}

	harmony := tonal.NewHarmonyAnalyzerWithParams(cfg.Harmony)
	return &Engine{
		config:      *cfg,
		detector:    tonal.NewChordDetectorWithParams(cfg.Detection),
		harmony:     harmony,
		progression: tonal.NewProgressionAnalyzerWithParams(cfg.Progression, harmony),
		logger:      logging.WithFields(logging.Fields{"component": "engine"}),
	}, nil
}

// Config returns a copy of the engine configuration
func (e *Engine) Config() config.EngineConfig {
	return e.config
}

// ParseNote parses note text such as "C#4" or "Bb"
func (e *Engine) ParseNote(text string) (pitch.Note, error) {
	return pitch.ParseNote(text)
}

// ParseNotes parses every note, failing on the first bad one
func (e *Engine) ParseNotes(texts []string) ([]pitch.Note, error) {
	notes := make([]pitch.Note, len(texts))
	for i, text := range texts {
		n, err := pitch.ParseNote(text)
		if err != nil {
			return nil, err
		}
		notes[i] = n
	}
	return notes, nil
}

// BuildScale builds a catalog scale. root may be a Note, a PitchClass, an
// int or note text.
func (e *Engine) BuildScale(root any, typeName string) (tonal.Scale, error) {
	return tonal.NewScale(root, typeName)
}

// BuildCustomScale builds a scale from its own interval set
func (e *Engine) BuildCustomScale(root any, intervals []int) (tonal.Scale, error) {
	return tonal.NewCustomScale(root, intervals)
}

// BuildChord builds a catalog chord
func (e *Engine) BuildChord(root any, quality string) (tonal.Chord, error) {
	return tonal.NewChord(root, quality)
}

// BuildCustomChord builds a chord from its own interval set
func (e *Engine) BuildCustomChord(root any, intervals []int) (tonal.Chord, error) {
	return tonal.NewCustomChord(root, intervals)
}

// ParseChord parses a lead-sheet symbol such as "F#m7b5" or "C/E"
func (e *Engine) ParseChord(symbol string) (tonal.Chord, error) {
	return tonal.ParseChordSymbol(symbol)
}

// DetectChord identifies root, quality and inversion of a note collection
func (e *Engine) DetectChord(notes []pitch.Note) (tonal.DetectionResult, error) {
	return e.detector.DetectChord(notes)
}

// DetectChordFromNames detects a chord from note text
func (e *Engine) DetectChordFromNames(names []string) (tonal.DetectionResult, error) {
	return e.detector.DetectChordFromNames(names)
}

// DetectChordFromMidi detects a chord from MIDI note numbers
func (e *Engine) DetectChordFromMidi(midi []int) (tonal.DetectionResult, error) {
	return e.detector.DetectChordFromMidi(midi)
}

// DetectMidiFile detects a chord at every change of the sounding keys of a
// Standard MIDI File
func (e *Engine) DetectMidiFile(path string) ([]TimedDetection, error) {
	sets, err := midifile.ReadNoteSets(path)
	if err != nil {
		return nil, err
	}

	detections := make([]TimedDetection, 0, len(sets))
	for _, set := range sets {
		result, err := e.detector.DetectChordFromMidi(set.Keys)
		if err != nil {
			return nil, fmt.Errorf("offset %d: %w", set.Offset, err)
		}
		detections = append(detections, TimedDetection{
			Offset:    set.Offset,
			Keys:      set.Keys,
			Detection: result,
		})
	}

	e.logger.Debug("midi file analyzed", logging.Fields{
		"path":       path,
		"detections": len(detections),
	})
	return detections, nil
}

// TonalCompatibility scores a chord's functional fit in a key
func (e *Engine) TonalCompatibility(chord tonal.Chord, scale tonal.Scale) tonal.CompatibilityResult {
	return e.harmony.TonalCompatibility(chord, scale)
}

// ModalCompatibility scores the overlap of a chord with a scale's note pool
func (e *Engine) ModalCompatibility(chord tonal.Chord, scale tonal.Scale) tonal.CompatibilityResult {
	return e.harmony.ModalCompatibility(chord, scale)
}

// FindCompatibleScales ranks scales for a chord, best first. A negative
// minScore uses the configured floor.
func (e *Engine) FindCompatibleScales(chord tonal.Chord, minScore float64) []tonal.CompatibilityResult {
	return e.harmony.FindCompatibleScales(chord, e.floor(minScore))
}

// FindCompatibleChords ranks diatonic and borrowed chords for a scale. A
// negative minScore uses the configured floor.
func (e *Engine) FindCompatibleChords(scale tonal.Scale, minScore float64) []tonal.CompatibilityResult {
	return e.harmony.FindCompatibleChords(scale, e.floor(minScore))
}

// SuggestScales ranks scales by how well they cover a collection of notes
func (e *Engine) SuggestScales(notes []pitch.Note, minCoverage float64) []tonal.ScaleSuggestion {
	return e.harmony.RankScalesForPitchClasses(chroma.FromNotes(notes), minCoverage)
}

// DiatonicChords returns the stacked-third triads, or sevenths, of a
// seven-note scale
func (e *Engine) DiatonicChords(scale tonal.Scale, sevenths bool) ([]tonal.DiatonicChord, error) {
	if sevenths {
		return tonal.DiatonicSevenths(scale)
	}
	return tonal.DiatonicChords(scale)
}

// AnalyzeProgression finds the key of a chord sequence and labels each chord
func (e *Engine) AnalyzeProgression(chords []tonal.Chord) (tonal.ProgressionAnalysis, error) {
	return e.progression.AnalyzeProgression(chords)
}

// AnalyzeSymbols parses chord symbols and analyzes them as a progression
func (e *Engine) AnalyzeSymbols(symbols []string) (tonal.ProgressionAnalysis, error) {
	return e.progression.AnalyzeSymbols(symbols)
}

// ChordsFromNumerals builds the chords Roman numerals name in a key
func (e *Engine) ChordsFromNumerals(numerals []string, key tonal.Scale) ([]tonal.Chord, error) {
	return tonal.ChordsFromRomanNumerals(numerals, key)
}

func (e *Engine) floor(minScore float64) float64 {
	if minScore < 0 {
		return e.config.Harmony.MinScore
	}
	return minScore
}
