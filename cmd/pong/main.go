// pong is a synthwave Pong game for the terminal.
//
// Usage:
//
//	pong                     - Open the main menu
//	pong play                - Start a match right away
//	pong serve               - Start SSH server for remote play
//	pong history             - Show recent matches
//	pong settings show       - Print the current settings
//	pong audio generate      - Write the sound effects and music
//
// Global flags:
//
//	--fps <rate>       - Frame rate (default: settings target_fps)
//	--seed <value>     - RNG seed for reproducible matches
//	--db <path>        - Match history database (default: ~/.pong/pong.db)
//	--settings <path>  - Settings file (default: ~/.pong/settings.yaml)
//	--sounds <dir>     - Sound directory (default: ~/.pong/sounds)
//	--debug            - Verbose logging
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-pong/internal/settings"
)

var (
	// Global flags
	flagFPS          int
	flagSeed         int64
	flagDBPath       string
	flagSettingsPath string
	flagSoundsDir    string
	flagDebug        bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pong",
	Short: "Neon Pong - synthwave Pong in your terminal",
	Long: `Neon Pong is a retro Pong game with a synthwave look, an AI
opponent that gets sharper as the rally goes on, and a local two player mode.

Running pong without a command opens the main menu.

Available commands:
  play      - Start a match directly
  serve     - Start SSH server for remote play
  history   - Show recent matches and statistics
  settings  - Show, reset or locate the settings file
  audio     - Generate the sound assets

Examples:
  pong
  pong play --mode two
  pong play --difficulty Hard
  pong serve --ssh :2222
  pong history --limit 5`,
	Run: runMenu,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Frame rate (0 = settings target_fps)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.pong/pong.db", "Path to match history database")
	rootCmd.PersistentFlags().StringVar(&flagSettingsPath, "settings", settings.DefaultPath(), "Path to settings file")
	rootCmd.PersistentFlags().StringVar(&flagSoundsDir, "sounds", filepath.Join(settings.DataDir(), "sounds"), "Directory holding the sound files")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(audioCmd)
}

// newLogger returns a logger writing to w with the command's level.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// sessionLogger logs to ~/.pong/pong.log; the terminal belongs to the game.
// The returned closer must be called when the session ends.
func sessionLogger() (*log.Logger, func()) {
	path := filepath.Join(settings.DataDir(), "pong.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return newLogger(io.Discard, "pong"), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return newLogger(io.Discard, "pong"), func() {}
	}
	return newLogger(f, "pong"), func() { f.Close() }
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
