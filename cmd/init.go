/*
Copyright © 2026 JACOB ARTHURS
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacobarthurs/dremprof/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create thresholds config with the built-in defaults",
	Long: `Create the thresholds config file with a commented template of the
built-in bottleneck thresholds.

The analyze command picks this file up automatically; edit it to tune
when operators get flagged. If the file already exists, it will not be
overwritten.`,
	Example: `  # Create default config
  dremprof init

  # Overwrite existing config
  dremprof init --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		path, err := config.WriteTemplate(force)
		if err != nil {
			return err
		}

		fmt.Printf("Created %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "Overwrite existing config")
}
