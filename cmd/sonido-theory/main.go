package main

import (
	"os"

	"github.com/RyanBlaney/sonido-theory/config"
	"github.com/RyanBlaney/sonido-theory/engine"
	"github.com/RyanBlaney/sonido-theory/logging"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

var (
	configPath string
	logLevel   string
	jsonOutput bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sonido-theory",
	Short: "Music theory engine: scales, chords, detection and harmony",
	Long: `sonido-theory builds scales and chords, identifies chords from notes,
scores chord/scale compatibility and labels chord progressions.

Examples:
  sonido-theory scale D dorian
  sonido-theory detect E4 G4 C5
  sonido-theory progression C Am F G7 C`,
	Version:      version,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "JSON engine config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides the config)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print results as JSON")
}

// newEngine loads the config named by --config, applies logging settings
// and builds the engine
func newEngine() (*engine.Engine, error) {
	cfg := config.DefaultEngineConfig()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if err := cfg.Apply(); err != nil {
		return nil, err
	}

	logging.Debug("engine configured", logging.Fields{
		"config":    configPath,
		"log_level": cfg.Logging.Level,
	})
	return engine.New(cfg)
}
