package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

// Persistent flags. Set flags override the config file.
var (
	configPath   string
	logLevel     string
	logFile      string
	backend      string
	sampleRate   int
	noKeystrokes bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sfx-term",
	Short: "A terminal whose commands are sound effects",
	Long: `sfx-term is an interactive terminal. Every command plays a synthesized
sound, and the raw command builds sounds from keywords.

Examples:
  sfx-term
  sfx-term run 'raw sine freq:440 reverb'
  sfx-term presets search laser`,
	Version:      version,
	SilenceUsage: true,
	RunE:         runRepl,
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the interactive terminal (default)",
	Args:  cobra.NoArgs,
	RunE:  runRepl,
}

var runCmd = &cobra.Command{
	Use:   "run <line...>",
	Short: "Run one command line and wait for its sound to finish",
	Long: `Run one command line, print its output and wait until every
sound it started has finished playing.

Examples:
  sfx-term run help
  sfx-term run 'F=660 raw sine freq:$F delay'
  sfx-term run 'echo $(presets search laser)'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

var presetsCmd = &cobra.Command{
	Use:   "presets [term]",
	Short: "List presets, or search them by name, description or category",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPresets,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show or clear the saved command history",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

var clearSavedHistory bool

func init() {
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(historyCmd)

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "Config file (default: $XDG_CONFIG_HOME/sfx-term/config.yaml)")
	pf.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.StringVar(&logFile, "log-file", "", "Append logs to this file")
	pf.StringVar(&backend, "backend", "", "Audio backend (device or null)")
	pf.IntVar(&sampleRate, "sample-rate", 0, "Output sample rate in Hz")
	pf.BoolVar(&noKeystrokes, "no-keystrokes", false, "Disable key click sounds")

	historyCmd.Flags().BoolVar(&clearSavedHistory, "clear", false, "Delete all saved lines")
}
