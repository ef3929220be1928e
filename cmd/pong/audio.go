package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-pong/internal/audio"
	"github.com/vovakirdan/neon-pong/internal/settings"
)

var flagAudioDir string

var audioCmd = &cobra.Command{
	Use:   "audio",
	Short: "Manage the sound assets",
}

var audioGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Synthesise the sound effects and background music",
	Long: `Render every sound effect and the background music loop as
22050 Hz mono 16-bit WAV files. Existing files are overwritten.

The files are written to --dir, or to the --sounds directory when --dir is
not given. The game generates them on first run as well.

Examples:
  pong audio generate
  pong audio generate --dir ./sounds`,
	Args: cobra.NoArgs,
	Run:  runAudioGenerate,
}

func init() {
	audioGenerateCmd.Flags().StringVar(&flagAudioDir, "dir", "", "Output directory (default: --sounds)")
	audioCmd.AddCommand(audioGenerateCmd)
}

func runAudioGenerate(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr, "pong")

	dir := flagAudioDir
	if dir == "" {
		dir = flagSoundsDir
	}
	dir = settings.ExpandPath(dir)

	if err := audio.Generate(dir, logger); err != nil {
		fatal("%v", err)
	}

	for _, s := range audio.AllSounds {
		fmt.Printf("  %s\n", filepath.Join(dir, s.FileName()))
	}
	fmt.Printf("Generated %d sound files\n", len(audio.AllSounds))
}
