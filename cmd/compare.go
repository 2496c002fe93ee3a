/*
Copyright © 2026 JACOB ARTHURS
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jacobarthurs/dremprof/internal/analyzer"
	"github.com/jacobarthurs/dremprof/internal/comparator"
	"github.com/jacobarthurs/dremprof/internal/config"
	"github.com/jacobarthurs/dremprof/internal/output"
	"github.com/jacobarthurs/dremprof/internal/profile"
)

var compareCmd = &cobra.Command{
	Use:   "compare <old> <new>",
	Short: "Compare two captures of a query",
	Long: `Compare two captured profiles of the same query, typically taken
before and after a tuning change, and report what improved or regressed:
wall and planning time, per-operator-type time and record counts, and
planning phase durations.`,
	Example: `  # Compare before and after a reflection change
  dremprof compare before.json after.json

  # Ignore changes under 5%
  dremprof compare before.json after.json --threshold 5`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		threshold, _ := cmd.Flags().GetFloat64("threshold")

		if format != "text" && format != "json" {
			return fmt.Errorf("invalid output format %q: must be \"text\" or \"json\"", format)
		}

		th, err := config.LoadThresholds("")
		if err != nil {
			return err
		}

		oldDoc, err := profile.Resolve(args[0], "old ")
		if err != nil {
			return err
		}
		newDoc, err := profile.Resolve(args[1], "new ")
		if err != nil {
			return err
		}

		oldReport := analyzer.Analyze(oldDoc, th)
		newReport := analyzer.Analyze(newDoc, th)

		c := &comparator.Comparator{Threshold: threshold}
		result := c.Compare(oldReport, newReport)
		log.Debug().
			Int("operator_deltas", len(result.Operators)).
			Int("phase_deltas", len(result.Phases)).
			Str("verdict", result.Summary.Verdict).
			Msg("profiles compared")

		switch format {
		case "json":
			return output.RenderJSON(os.Stdout, result)
		case "text":
			return output.RenderComparisonText(os.Stdout, result)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().StringP("format", "f", "text", "Output format: text, json")
	compareCmd.Flags().Float64P("threshold", "t", comparator.SignificanceThresholdPct,
		"Percentage change below which a delta is ignored")
}
