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
	"github.com/jacobarthurs/dremprof/internal/config"
	"github.com/jacobarthurs/dremprof/internal/output"
	"github.com/jacobarthurs/dremprof/internal/profile"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Analyze a captured query profile",
	Long: `Analyze a captured Dremio query profile and report its slowest
operators, slowest planning phases, and likely performance bottlenecks.

Input is the query profile JSON document as downloaded from the Dremio
job page. Use "-" to read from stdin. If no file is provided, enters
interactive mode.`,
	Example: `  # Analyze from file
  dremprof analyze profile.json

  # Show the 5 slowest operators and phases
  dremprof analyze profile.json --top 5

  # Read from stdin
  cat profile.json | dremprof analyze -`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		topN, _ := cmd.Flags().GetInt("top")
		thresholdsPath, _ := cmd.Flags().GetString("thresholds")

		if format != "text" && format != "json" {
			return fmt.Errorf("invalid output format %q: must be \"text\" or \"json\"", format)
		}
		if topN < 1 {
			return fmt.Errorf("invalid --top %d: must be at least 1", topN)
		}

		th, err := config.LoadThresholds(thresholdsPath)
		if err != nil {
			return err
		}

		var file string
		if len(args) > 0 {
			file = args[0]
		}

		doc, err := profile.Resolve(file, "")
		if err != nil {
			return err
		}

		report := analyzer.Analyze(doc, th)
		log.Debug().
			Int("operators", report.Summary.OperatorCount).
			Int("phases", report.Summary.PhaseCount).
			Int("anomalies", len(report.Anomalies)).
			Msg("profile analyzed")

		switch format {
		case "json":
			return output.RenderJSON(os.Stdout, report)
		case "text":
			return output.RenderAnalysisText(os.Stdout, report, topN)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringP("format", "f", "text", "Output format: text, json")
	analyzeCmd.Flags().IntP("top", "n", 10, "Number of operators and phases to show")
	analyzeCmd.Flags().StringP("thresholds", "t", "", "Path to thresholds config (default: user config dir)")
}
