package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/neon-pong/internal/audio"
	"github.com/vovakirdan/neon-pong/internal/core"
	"github.com/vovakirdan/neon-pong/internal/game"
	"github.com/vovakirdan/neon-pong/internal/platform/tui"
	"github.com/vovakirdan/neon-pong/internal/settings"
	"github.com/vovakirdan/neon-pong/internal/storage"
)

var (
	flagMode       string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a match",
	Long: `Start a match without going through the main menu.

Controls (defaults, remappable in Settings > Controls):
  Single player   W/S or arrow keys
  Two players     W/S for the left paddle, arrow keys for the right
  Esc/P           Pause
  M               Toggle sound
  +/-             Volume
  Enter           Play again (after game over)

Difficulty presets:
  Easy    - slow, forgiving AI
  Normal  - the default ramp
  Hard    - fast AI that rarely misses

Examples:
  pong play
  pong play --mode two
  pong play --difficulty hard
  pong play --seed 42 --fps 60`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMode, "mode", "single", "Game mode: single, two")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

func runMenu(_ *cobra.Command, _ []string) {
	runSession("")
}

func runPlay(_ *cobra.Command, _ []string) {
	mode, err := game.ParseMode(flagMode)
	if err != nil {
		fatal("%v", err)
	}
	if !mode.Local() {
		fatal("mode %q needs an opponent on the same server; run 'pong serve' and pick Play Online", flagMode)
	}
	runSession(mode)
}

// runSession runs one local session. An empty mode opens the main menu.
func runSession(mode game.Mode) {
	logger, closeLog := sessionLogger()
	defer closeLog()

	cfg := settings.Load(flagSettingsPath, logger)
	if flagDifficulty != "" {
		preset, ok := matchPreset(flagDifficulty)
		if !ok {
			fatal("unknown difficulty %q (want easy, normal or hard)", flagDifficulty)
		}
		if err := cfg.ApplyDifficultyPreset(preset); err != nil {
			fatal("%v", err)
		}
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open history database", "path", flagDBPath, "error", err)
		// Continue without storage - game still works
		store = nil
	} else {
		defer store.Close()
	}

	dir := settings.ExpandPath(flagSoundsDir)
	ensureSounds(dir, logger)
	am := audio.Open(dir, cfg.Audio.Enabled, cfg.Audio.MasterVolume, logger)
	defer am.Close()

	logger.Info("session started", "mode", mode, "difficulty", cfg.Gameplay.DifficultyPreset, "size", []int{width, height})

	runErr := tui.Run(tui.Options{
		Settings:     cfg,
		SettingsPath: flagSettingsPath,
		Store:        store,
		Audio:        am,
		Logger:       logger,
		StartMode:    mode,
		Config: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
	})
	if runErr != nil {
		fatal("%v", runErr)
	}
}

// matchPreset resolves a preset name case-insensitively.
func matchPreset(name string) (string, bool) {
	for _, p := range settings.Presets {
		if strings.EqualFold(p, name) {
			return p, true
		}
	}
	return "", false
}

// ensureSounds generates the sound assets on first run.
func ensureSounds(dir string, logger *log.Logger) {
	for _, s := range audio.AllSounds {
		_, err := os.Stat(filepath.Join(dir, s.FileName()))
		if err == nil {
			continue
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return
		}
		logger.Info("generating sound files", "dir", dir)
		if genErr := audio.Generate(dir, logger); genErr != nil {
			logger.Warn("could not generate sound files", "error", genErr)
		}
		return
	}
}
