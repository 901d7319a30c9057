// ABOUTME: CLI command for importing wearable JSON exports.
// ABOUTME: Upserts daily recoveries and workouts; re-import is idempotent.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/rollready/rollready/internal/wearable"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a wearable data export",
	Long: `Import a wearable JSON export containing daily recovery cycles and
workouts. Recoveries upsert by date and workouts by external ID, so
re-importing an overlapping export is safe. Rows with missing dates or
inverted intervals are skipped and counted.

A day whose check-in was already edited manually keeps its
wearable+manual tag; the import only refreshes the raw snapshot.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open export: %w", err)
		}
		defer f.Close()

		summary, err := wearable.Import(f, repo)
		if err != nil {
			return fmt.Errorf("import wearable data: %w", err)
		}

		color.Green("✓ Imported %d recoveries, %d workouts", summary.Recoveries, summary.Workouts)
		if summary.Skipped > 0 {
			color.Yellow("  skipped %d malformed rows", summary.Skipped)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
