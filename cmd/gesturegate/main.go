// SPDX-License-Identifier: Unlicense OR MIT

// Command gesturegate drives gesture gates outside the browser. It
// replays recorded input traces, resolves warning texts and runs an
// interactive terminal demo.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool

	cfg    Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "gesturegate <command>",
	Short:         "Exercise map gesture handling from the command line",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		c, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = c
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath(), "TOML configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug messages")
	rootCmd.AddCommand(replayCmd, localeCmd, demoCmd)
}

func defaultConfigPath() string {
	return os.Getenv("GESTUREGATE_CONFIG")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "gesturegate: %v\n", err)
		os.Exit(1)
	}
}
