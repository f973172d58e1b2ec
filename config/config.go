package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/RyanBlaney/sonido-theory/algorithms/tonal"
	"github.com/RyanBlaney/sonido-theory/logging"
)

// EngineConfig configures every engine component
type EngineConfig struct {
	Detection   tonal.DetectionParams   `json:"detection"`
	Harmony     tonal.HarmonyParams     `json:"harmony"`
	Progression tonal.ProgressionParams `json:"progression"`
	Logging     LoggingConfig           `json:"logging"`
}

// LoggingConfig selects the global logger level and colour output
type LoggingConfig struct {
	Level  string `json:"level"`  // "debug", "info", "warn", "error", "fatal"
	Colors bool   `json:"colors"` // ANSI colours on terminals
}

// DefaultEngineConfig returns the reference behaviour
func DefaultEngineConfig() *EngineConfig {
	return &EngineConfig{
		Detection:   tonal.DefaultDetectionParams(),
		Harmony:     tonal.DefaultHarmonyParams(),
		Progression: tonal.DefaultProgressionParams(),
		Logging: LoggingConfig{
			Level:  "info",
			Colors: true,
		},
	}
}

// Load reads a JSON file over the defaults. Keys missing from the file keep
// their default values.
func Load(path string) (*EngineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes JSON config data over the defaults and validates the result
func Parse(data []byte) (*EngineConfig, error) {
	cfg := DefaultEngineConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects weights and thresholds outside their ranges
func (c *EngineConfig) Validate() error {
	d := c.Detection
	if err := unitRange("detection.min_coverage", d.MinCoverage); err != nil {
		return err
	}
	if err := unitRange("detection.inversion_weight", d.InversionWeight); err != nil {
		return err
	}
	if err := unitRange("detection.assumed_tone_decay", d.AssumedToneDecay); err != nil {
		return err
	}
	if d.MaxCandidates < 0 {
		return fmt.Errorf("detection.max_candidates must not be negative, got %d", d.MaxCandidates)
	}

	h := c.Harmony
	if h.TonalWeight < 0 || h.ModalWeight < 0 || h.TonalWeight+h.ModalWeight == 0 {
		return fmt.Errorf("harmony weights must be non-negative and not both zero, got %g/%g", h.TonalWeight, h.ModalWeight)
	}
	if err := unitRange("harmony.non_tonic_penalty", h.NonTonicPenalty); err != nil {
		return err
	}
	if err := unitRange("harmony.min_score", h.MinScore); err != nil {
		return err
	}
	if h.MaxResults < 0 {
		return fmt.Errorf("harmony.max_results must not be negative, got %d", h.MaxResults)
	}

	p := c.Progression
	if p.CadenceBonus < 0 {
		return fmt.Errorf("progression.cadence_bonus must not be negative, got %g", p.CadenceBonus)
	}
	if err := unitRange("progression.suggestion_min_coverage", p.SuggestionMinCoverage); err != nil {
		return err
	}
	if p.MaxKeyCandidates < 0 || p.MaxSuggestions < 0 {
		return fmt.Errorf("progression limits must not be negative")
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	return nil
}

// Apply configures the global logger from the logging section
func (c *EngineConfig) Apply() error {
	level, err := logging.ParseLevel(c.Logging.Level)
	if err != nil {
		return err
	}
	logging.SetLevel(level)
	if c.Logging.Colors {
		logging.EnableColors()
	} else {
		logging.DisableColors()
	}
	return nil
}

func unitRange(name string, v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("%s must be within [0, 1], got %g", name, v)
	}
	return nil
}
