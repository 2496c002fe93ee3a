/*
Copyright © 2026 JACOB ARTHURS
*/
package cmd

import (
	"os"
	"runtime/debug"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var Version = "dev"

func init() {
	if Version == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "(devel)" {
			Version = info.Main.Version
		}
	}
	rootCmd.Version = Version

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		level := zerolog.WarnLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().Timestamp().Logger()
	}
}

var rootCmd = &cobra.Command{
	Use:          "dremprof",
	SilenceUsage: true,
	Short:        "Analyze and compare Dremio query profiles",
	Long: `dremprof is a CLI tool for analyzing captured Dremio query profiles.

It finds the longest running operators and planning phases of a query
execution and flags likely performance bottlenecks: I/O stalls, memory
pressure, low-selectivity filters, and expensive joins and sorts.`,
	Example: `  # Analyze a captured profile
  dremprof analyze profile.json

  # Compare two captures of the same query
  dremprof compare before.json after.json

  # Write a thresholds config template
  dremprof init`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
