package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/RyanBlaney/sonido-theory/algorithms/tonal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with fresh flag values
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	configPath, logLevel, jsonOutput = "", "", false
	scaleIntervals, scaleDiatonic, scaleSevenths = nil, false, false
	chordOctave, detectMidi, minScore = 4, false, -1
	arpeggio, arpeggioSpan, transpose = "", 1, 0

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestScaleCommand(t *testing.T) {
	out, err := run(t, "scale", "C", "major", "--diatonic")
	require.NoError(t, err)
	assert.Contains(t, out, "C major: C D E F G A B")
	assert.Contains(t, out, "vii°")

	out, err = run(t, "scale", "D", "--intervals", "0,2,5,7,9")
	require.NoError(t, err)
	assert.Contains(t, out, "D custom: D E G A B")

	_, err = run(t, "scale", "C")
	assert.Error(t, err)
}

func TestChordCommand(t *testing.T) {
	out, err := run(t, "chord", "C/E", "--octave", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "voicing: E3 G3 C4")

	out, err = run(t, "chord", "C", "--arpeggio", "up_down")
	require.NoError(t, err)
	assert.Contains(t, out, "arpeggio: C4 E4 G4 C5 G4 E4 C4")

	_, err = run(t, "chord", "C", "--arpeggio", "sideways")
	assert.Error(t, err)
}

func TestScaleArpeggioFlag(t *testing.T) {
	out, err := run(t, "scale", "F", "major", "--arpeggio", "down", "--octave", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "arpeggio: F4 E4 D4 C4 Bb3 A3 G3 F3")

	out, err = run(t, "scale", "C", "major_pentatonic", "--arpeggio", "up", "--octaves", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "arpeggio: C4 D4 E4 G4 A4 C5 D5 E5 G5 A5 C6")
}

func TestDetectCommand(t *testing.T) {
	out, err := run(t, "detect", "E", "G", "C")
	require.NoError(t, err)
	assert.Contains(t, out, "C/E (maj, inversion 1, confidence 1.00)")

	out, err = run(t, "detect", "--midi", "--json", "60", "67")
	require.NoError(t, err)
	var result tonal.DetectionResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, tonal.KindInterval, result.Kind)
	assert.Equal(t, "perfect fifth", result.Interval)

	out, err = run(t, "detect", "C", "C#", "D")
	require.NoError(t, err)
	assert.Contains(t, out, "no chord detected")
}

func TestProgressionCommand(t *testing.T) {
	out, err := run(t, "progression", "C", "F", "G", "C")
	require.NoError(t, err)
	assert.Contains(t, out, "key: C major")
	assert.Contains(t, out, "movement: fifths 0.67  smoothness 1.00")

	out, err = run(t, "progression", "--json", "C", "F", "G", "C")
	require.NoError(t, err)
	var analysis struct {
		Key           string   `json:"key"`
		RomanNumerals []string `json:"roman_numerals"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &analysis))
	assert.Equal(t, "C major", analysis.Key)
	assert.Equal(t, []string{"I", "IV", "V", "I"}, analysis.RomanNumerals)

	out, err = run(t, "progression", "--transpose", "2", "C", "F", "G", "C")
	require.NoError(t, err)
	assert.Contains(t, out, "key: D major")
	assert.Contains(t, out, "cadence: authentic V-I at chord 4")
}

func TestNumeralsCommand(t *testing.T) {
	out, err := run(t, "numerals", "C", "major", "I", "vi", "ii7", "V7", "I")
	require.NoError(t, err)
	assert.Contains(t, out, "key: C major")
	assert.Contains(t, out, "Dm7")
	assert.Contains(t, out, "cadence: authentic V7-I at chord 5")

	_, err = run(t, "numerals", "C", "major", "I", "Q")
	assert.Error(t, err)
}

func TestCompatCommands(t *testing.T) {
	out, err := run(t, "compat", "C", "A", "natural_minor")
	require.NoError(t, err)
	assert.Contains(t, out, "tonal 0.80  modal 1.00")

	out, err = run(t, "scales", "C", "--min-score", "0.95")
	require.NoError(t, err)
	assert.Contains(t, out, "C major")

	out, err = run(t, "chords", "C", "major")
	require.NoError(t, err)
	assert.Contains(t, out, "G7")
}

func TestConfigFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"detection": {"min_coverage": 0.99}}`), 0o644))

	out, err := run(t, "--config", path, "detect", "C", "E", "G", "F")
	require.NoError(t, err)
	assert.Contains(t, out, "no chord detected")

	_, err = run(t, "--log-level", "loud", "note", "C4")
	assert.Error(t, err)
}

func TestNoteAndCatalogCommands(t *testing.T) {
	out, err := run(t, "note", "A4", "Eb")
	require.NoError(t, err)
	assert.Contains(t, out, "440.00 Hz")
	assert.Contains(t, out, "Eb")

	out, err = run(t, "catalog")
	require.NoError(t, err)
	assert.Contains(t, out, "harmonic_minor")
	assert.Contains(t, out, "min7b5")
}
