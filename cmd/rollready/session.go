// ABOUTME: CLI commands for logging, listing, and linking training sessions.
// ABOUTME: Linking attaches wearable biometrics; re-linking overwrites.
package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/rollready/rollready/internal/models"
	"github.com/spf13/cobra"
)

var (
	sessionAt          string
	sessionRolls       int
	sessionPartners    int
	sessionSubsFor     int
	sessionSubsAgainst int
	sessionNotes       string
	sessionListType    string
	sessionListLimit   int
)

var sessionCmd = &cobra.Command{
	Use:     "session",
	Aliases: []string{"s"},
	Short:   "Manage training sessions",
}

var sessionAddCmd = &cobra.Command{
	Use:   "add <class-type> <duration-minutes> <intensity>",
	Short: "Log a training session",
	Long: `Log a training session. Intensity is 1-5. Class types: gi, nogi,
open_mat, competition, strength, mobility, conditioning.

Examples:
  rollready session add gi 90 4 --at "2024-01-10 18:00" --rolls 6 --partners 4
  rollready session add nogi 60 3 --subs-for 2 --subs-against 1
  rollready session add strength 45 3 --notes "squats and pulls"`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		classType := args[0]
		duration, err := strconv.Atoi(args[1])
		if err != nil || duration <= 0 {
			return fmt.Errorf("invalid duration: %s", args[1])
		}
		intensity, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid intensity: %s", args[2])
		}
		if intensity < 1 || intensity > 5 {
			return fmt.Errorf("intensity must be between 1 and 5, got %d", intensity)
		}

		date := time.Now().Format(models.DateLayout)
		s := models.NewSession(date, classType, duration, intensity)

		if sessionAt != "" {
			t, err := parseTime(sessionAt)
			if err != nil {
				return fmt.Errorf("invalid timestamp: %s", sessionAt)
			}
			s.WithStartTime(t)
			s.Date = t.Format(models.DateLayout)
		}
		if cmd.Flags().Changed("rolls") || cmd.Flags().Changed("partners") {
			s.WithRolls(sessionRolls, sessionPartners)
		}
		if cmd.Flags().Changed("subs-for") || cmd.Flags().Changed("subs-against") {
			s.WithSubmissions(sessionSubsFor, sessionSubsAgainst)
		}
		if sessionNotes != "" {
			s.WithNotes(sessionNotes)
		}

		if err := repo.CreateSession(s); err != nil {
			return fmt.Errorf("save session: %w", err)
		}

		color.Green("✓ Logged %s session", classType)
		fmt.Printf("  %s %s, %d min, intensity %d\n",
			color.New(color.Faint).Sprint(s.ID.String()[:8]),
			s.Date, duration, intensity)
		return nil
	},
}

var sessionListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List training sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		var classType *string
		if sessionListType != "" {
			classType = &sessionListType
		}

		sessions, err := repo.ListSessions(classType, sessionListLimit)
		if err != nil {
			return fmt.Errorf("list sessions: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Println("No sessions found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, s := range sessions {
			linked := ""
			if s.Biometrics != nil {
				linked = color.CyanString(" ⌚")
			}
			notes := ""
			if s.Notes != nil && *s.Notes != "" {
				notes = faint.Sprintf(" (%s)", truncate(*s.Notes, 30))
			}
			fmt.Printf("%s %s %s %3dmin i%d%s%s\n",
				faint.Sprint(s.ID.String()[:8]),
				s.Date,
				padRight(s.ClassType, 12),
				s.DurationMinutes, s.Intensity, linked, notes)
		}
		return nil
	},
}

var sessionShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a session with its linked biometrics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := repo.GetSession(args[0])
		if err != nil {
			return fmt.Errorf("get session: %w", err)
		}

		fmt.Printf("Session %s\n", s.ID.String()[:8])
		fmt.Printf("  date:      %s\n", s.Date)
		if s.StartTime != nil {
			fmt.Printf("  start:     %s\n", s.StartTime.Format("15:04"))
		}
		fmt.Printf("  class:     %s\n", s.ClassType)
		fmt.Printf("  duration:  %d min\n", s.DurationMinutes)
		fmt.Printf("  intensity: %d/5\n", s.Intensity)
		if s.Rolls != nil {
			fmt.Printf("  rolls:     %d", *s.Rolls)
			if s.Partners != nil {
				fmt.Printf(" with %d partners", *s.Partners)
			}
			fmt.Println()
		}
		if s.SubmissionsFor != nil || s.SubmissionsAgainst != nil {
			subsFor, subsAgainst := 0, 0
			if s.SubmissionsFor != nil {
				subsFor = *s.SubmissionsFor
			}
			if s.SubmissionsAgainst != nil {
				subsAgainst = *s.SubmissionsAgainst
			}
			fmt.Printf("  subs:      %d for / %d against\n", subsFor, subsAgainst)
		}
		if s.Notes != nil && *s.Notes != "" {
			fmt.Printf("  notes:     %s\n", *s.Notes)
		}
		if s.Biometrics != nil {
			fmt.Println("  wearable:")
			fmt.Printf("    strain:   %.1f\n", s.Biometrics.Strain)
			fmt.Printf("    calories: %.0f\n", s.Biometrics.Calories)
			fmt.Printf("    avg hr:   %.0f bpm\n", s.Biometrics.AvgHeartRate)
			fmt.Printf("    max hr:   %.0f bpm\n", s.Biometrics.MaxHeartRate)
		}
		return nil
	},
}

var sessionLinkCmd = &cobra.Command{
	Use:   "link <session-id> <workout-id>",
	Short: "Link a wearable workout to a session",
	Long: `Link a wearable workout's metrics to a logged session. Use
'rollready match <session-id>' first to see overlapping candidates.
Linking again replaces the previous link.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := svc.LinkWorkout(args[0], args[1]); err != nil {
			return fmt.Errorf("link workout: %w", err)
		}
		color.Green("✓ Linked workout %s to session %s", args[1], args[0])
		return nil
	},
}

var sessionDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a session",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := repo.DeleteSession(args[0]); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
		color.Green("✓ Deleted session %s", args[0])
		return nil
	},
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func parseTime(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02 15:04",
		"2006-01-02T15:04",
		time.RFC3339,
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format")
}

func init() {
	sessionAddCmd.Flags().StringVar(&sessionAt, "at", "", "class start time (YYYY-MM-DD HH:MM)")
	sessionAddCmd.Flags().IntVar(&sessionRolls, "rolls", 0, "number of live rolls")
	sessionAddCmd.Flags().IntVar(&sessionPartners, "partners", 0, "number of distinct partners")
	sessionAddCmd.Flags().IntVar(&sessionSubsFor, "subs-for", 0, "submissions achieved")
	sessionAddCmd.Flags().IntVar(&sessionSubsAgainst, "subs-against", 0, "submissions conceded")
	sessionAddCmd.Flags().StringVar(&sessionNotes, "notes", "", "technique notes")
	sessionListCmd.Flags().StringVarP(&sessionListType, "type", "t", "", "filter by class type")
	sessionListCmd.Flags().IntVarP(&sessionListLimit, "limit", "n", 20, "max number of results")

	sessionCmd.AddCommand(sessionAddCmd)
	sessionCmd.AddCommand(sessionListCmd)
	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionLinkCmd)
	sessionCmd.AddCommand(sessionDeleteCmd)
	rootCmd.AddCommand(sessionCmd)
}
