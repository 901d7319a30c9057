// ABOUTME: CLI commands for full-database JSON backup and restore.
// ABOUTME: Export writes every table; restore loads a snapshot back in.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/rollready/rollready/internal/storage"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export all data as JSON",
	Long: `Export every checkin, session, recovery, workout, and event as a
single JSON snapshot. Writes to stdout when no file is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := repo.GetAllData()
		if err != nil {
			return fmt.Errorf("collect data: %w", err)
		}

		out := os.Stdout
		if len(args) == 1 {
			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("create export file: %w", err)
			}
			defer f.Close()
			out = f
		}

		if err := storage.WriteExport(out, data); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		if len(args) == 1 {
			color.Green("✓ Exported %d checkins, %d sessions, %d recoveries, %d workouts, %d events to %s",
				len(data.Checkins), len(data.Sessions), len(data.Recoveries),
				len(data.Workouts), len(data.Events), args[0])
		}
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Restore data from a JSON export",
	Long: `Load a JSON export into the database. Checkins, recoveries, and
workouts upsert; sessions and events error on duplicate IDs, so restore
into a fresh database or an export from another device.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open export: %w", err)
		}
		defer f.Close()

		data, err := storage.ReadExport(f)
		if err != nil {
			return err
		}
		if err := repo.ImportData(data); err != nil {
			return fmt.Errorf("restore: %w", err)
		}

		color.Green("✓ Restored %d checkins, %d sessions, %d recoveries, %d workouts, %d events",
			len(data.Checkins), len(data.Sessions), len(data.Recoveries),
			len(data.Workouts), len(data.Events))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(restoreCmd)
}
