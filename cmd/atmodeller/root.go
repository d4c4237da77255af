package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixlaga/atmodeller/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "atmodeller",
	Short: "Atmodeller computes interior-atmosphere chemical equilibrium",
	Long: `Atmodeller solves the coupled mass-action and mass-balance system for a
planetary atmosphere in equilibrium with a molten interior. Cases are
described in YAML or JSON files; see the examples directory.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Emit JSON logs")
}

// newLogger builds the logger from the persistent flags.
func newLogger(cmd *cobra.Command) *slog.Logger {
	levelName, _ := cmd.Flags().GetString("log-level")
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelName)); err != nil {
		level = slog.LevelInfo
	}
	if jsonLog, _ := cmd.Flags().GetBool("log-json"); jsonLog {
		return logging.NewJSON(level)
	}
	return logging.New(level)
}
