package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/neon-pong/internal/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show, reset or locate the settings file",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings as YAML",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		cfg := settings.Load(flagSettingsPath, newLogger(os.Stderr, "pong"))
		data, err := yaml.Marshal(cfg)
		if err != nil {
			fatal("%v", err)
		}
		os.Stdout.Write(data)
	},
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Overwrite the settings file with the defaults",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		path := settings.ExpandPath(flagSettingsPath)
		if err := settings.Default().Save(path); err != nil {
			fatal("%v", err)
		}
		fmt.Printf("Settings reset: %s\n", path)
	},
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file location",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println(settings.ExpandPath(flagSettingsPath))
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	settingsCmd.AddCommand(settingsPathCmd)
}
