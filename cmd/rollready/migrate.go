// ABOUTME: CLI command migrating the old Badger KV layout into SQLite.
// ABOUTME: Read-only on the legacy store; --dry-run previews the counts.
package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/rollready/rollready/internal/legacy"
	"github.com/rollready/rollready/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateFrom   string
	migrateDryRun bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate data from the old KV storage layout",
	Long: `Migrate checkins, sessions, and events from the Badger KV layout used
by old versions into SQLite. The legacy store is opened read-only and
never modified; records already present in SQLite are skipped, so the
migration can be re-run safely.

Use --dry-run to see what would be migrated without writing anything.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := migrateFrom
		if path == "" {
			path = legacy.DefaultPath()
		}
		if !legacy.Exists(path) {
			fmt.Printf("No legacy data at %s; nothing to migrate.\n", path)
			return nil
		}

		store, err := legacy.Open(path)
		if err != nil {
			return err
		}
		defer store.Close()

		snap, skipped, err := store.Read()
		if err != nil {
			return err
		}
		fmt.Printf("Found %d checkins, %d sessions, %d events", len(snap.Checkins), len(snap.Sessions), len(snap.Events))
		if skipped > 0 {
			fmt.Printf(" (%d undecodable records skipped)", skipped)
		}
		fmt.Println()

		if migrateDryRun {
			color.Yellow("Dry run; nothing written.")
			return nil
		}

		var checkins, sessions, events, existing int
		for _, c := range snap.Checkins {
			if _, err := repo.GetCheckinByDate(c.Date); err == nil {
				existing++
				continue
			} else if !errors.Is(err, storage.ErrNotFound) {
				return err
			}
			if err := repo.UpsertCheckin(c); err != nil {
				return fmt.Errorf("migrate checkin %s: %w", c.Date, err)
			}
			checkins++
		}
		for _, s := range snap.Sessions {
			if _, err := repo.GetSession(s.ID.String()); err == nil {
				existing++
				continue
			} else if !errors.Is(err, storage.ErrNotFound) {
				return err
			}
			if err := repo.CreateSession(s); err != nil {
				return fmt.Errorf("migrate session %s: %w", s.ID, err)
			}
			sessions++
		}
		for _, e := range snap.Events {
			if eventMigrated(e.ID.String()) {
				existing++
				continue
			}
			if err := repo.CreateEvent(e); err != nil {
				return fmt.Errorf("migrate event %s: %w", e.Name, err)
			}
			events++
		}

		color.Green("✓ Migrated %d checkins, %d sessions, %d events", checkins, sessions, events)
		if existing > 0 {
			fmt.Printf("  %d records already present, skipped\n", existing)
		}
		return nil
	},
}

func eventMigrated(id string) bool {
	events, err := repo.ListEvents(0)
	if err != nil {
		return false
	}
	for _, e := range events {
		if e.ID.String() == id {
			return true
		}
	}
	return false
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", "", "legacy store path (defaults to the old data dir)")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "report what would be migrated without writing")
	rootCmd.AddCommand(migrateCmd)
}
