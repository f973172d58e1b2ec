package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/RyanBlaney/sonido-theory/algorithms/tonal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultEngineConfig(t *testing.T) {
	cfg := DefaultEngineConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, tonal.DefaultDetectionParams(), cfg.Detection)
	assert.Equal(t, tonal.DefaultHarmonyParams(), cfg.Harmony)
	assert.Equal(t, tonal.DefaultProgressionParams(), cfg.Progression)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestParseKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`{"detection": {"min_coverage": 0.5}, "logging": {"level": "debug"}}`))
	require.NoError(t, err)

	assert.Equal(t, 0.5, cfg.Detection.MinCoverage)
	assert.Equal(t, tonal.DefaultDetectionParams().MaxCandidates, cfg.Detection.MaxCandidates)
	assert.Equal(t, tonal.DefaultHarmonyParams(), cfg.Harmony)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestParseAssumedToneDecay(t *testing.T) {
	cfg, err := Parse([]byte(`{"detection": {"assumed_tone_decay": 0.2}}`))
	require.NoError(t, err)
	assert.Equal(t, 0.2, cfg.Detection.AssumedToneDecay)
}

func TestParseRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"bad json":      `{"detection": `,
		"coverage":      `{"detection": {"min_coverage": 1.5}}`,
		"weights":       `{"harmony": {"tonal_weight": 0, "modal_weight": 0}}`,
		"penalty":       `{"harmony": {"non_tonic_penalty": -0.1}}`,
		"cadence":       `{"progression": {"cadence_bonus": -1}}`,
		"level":         `{"logging": {"level": "loud"}}`,
		"max results":   `{"harmony": {"max_results": -2}}`,
		"suggestions":   `{"progression": {"max_suggestions": -1}}`,
		"decay":         `{"detection": {"assumed_tone_decay": 2}}`,
		"candidates":    `{"detection": {"max_candidates": -1}}`,
		"min score":     `{"harmony": {"min_score": 3}}`,
		"suggest floor": `{"progression": {"suggestion_min_coverage": 1.2}}`,
	}
	for name, data := range cases {
		_, err := Parse([]byte(data))
		assert.Error(t, err, name)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"harmony": {"max_results": 10}}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Harmony.MaxResults)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
