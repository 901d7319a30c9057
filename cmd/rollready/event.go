// ABOUTME: CLI commands for the competition calendar.
// ABOUTME: Upcoming events drive the comp_* taper and peaking rules.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/rollready/rollready/internal/models"
	"github.com/spf13/cobra"
)

var eventNotes string

var eventCmd = &cobra.Command{
	Use:     "event",
	Aliases: []string{"e"},
	Short:   "Manage the competition calendar",
}

var eventAddCmd = &cobra.Command{
	Use:   "add <name> <date>",
	Short: "Add a competition event",
	Long: `Add a competition to the calendar. The recommendation engine tapers
training as the nearest upcoming event approaches.

Examples:
  rollready event add "Pans" 2024-03-20
  rollready event add "Local Open" 2024-02-10 --notes "adult blue, -76kg"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, date := args[0], args[1]
		if _, err := time.Parse(models.DateLayout, date); err != nil {
			return fmt.Errorf("invalid date: %s", date)
		}

		e := models.NewEvent(name, date)
		if eventNotes != "" {
			e.WithNotes(eventNotes)
		}
		if err := repo.CreateEvent(e); err != nil {
			return fmt.Errorf("save event: %w", err)
		}

		days := e.DaysUntil(time.Now())
		color.Green("✓ Added %s on %s", name, date)
		if days >= 0 {
			fmt.Printf("  %d days out\n", days)
		}
		return nil
	},
}

var eventListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List competition events",
	RunE: func(cmd *cobra.Command, args []string) error {
		events, err := repo.ListEvents(0)
		if err != nil {
			return fmt.Errorf("list events: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No events on the calendar.")
			return nil
		}

		now := time.Now()
		faint := color.New(color.Faint)
		for _, e := range events {
			days := e.DaysUntil(now)
			when := faint.Sprintf("(%d days out)", days)
			if days < 0 {
				when = faint.Sprint("(past)")
			}
			fmt.Printf("%s %s %s %s\n",
				faint.Sprint(e.ID.String()[:8]), e.Date, e.Name, when)
		}
		return nil
	},
}

var eventDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete an event",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := repo.DeleteEvent(args[0]); err != nil {
			return fmt.Errorf("delete event: %w", err)
		}
		color.Green("✓ Deleted event %s", args[0])
		return nil
	},
}

func init() {
	eventAddCmd.Flags().StringVar(&eventNotes, "notes", "", "division, weight class, etc.")
	eventCmd.AddCommand(eventAddCmd)
	eventCmd.AddCommand(eventListCmd)
	eventCmd.AddCommand(eventDeleteCmd)
	rootCmd.AddCommand(eventCmd)
}
