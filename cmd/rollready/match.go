// ABOUTME: CLI command that matches wearable workouts to a session.
// ABOUTME: Auto-links a sole high-overlap candidate; otherwise lists them.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/rollready/rollready/internal/engine"
	"github.com/spf13/cobra"
)

var matchApply bool

var matchCmd = &cobra.Command{
	Use:   "match <session-id>",
	Short: "Find wearable workouts overlapping a session",
	Long: `Compare a session's time window against imported wearable workouts.
A single candidate covering at least 90% of its own duration inside the
session window is an automatic match; with --apply it is linked without
confirmation. Anything else is listed for manual disambiguation with
'rollready session link'.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, result, err := svc.WorkoutCandidates(args[0])
		if err != nil {
			return fmt.Errorf("match workouts: %w", err)
		}

		switch result.Status {
		case engine.MatchInsufficientData:
			color.Yellow("Session %s has no start time; cannot match.", session.ID.String()[:8])
			fmt.Println("Re-log with --at, or link a workout manually with 'session link'.")
		case engine.MatchNone:
			fmt.Printf("No workouts overlap session %s.\n", session.ID.String()[:8])
		case engine.MatchAuto:
			w := result.Accepted.Workout
			color.Green("✓ Auto-match: %s (%.1f%% overlap)", w.ID.String()[:8], result.Accepted.OverlapPct)
			printWorkout(result.Accepted)
			if matchApply {
				if err := svc.LinkWorkout(session.ID.String(), w.ID.String()); err != nil {
					return fmt.Errorf("link workout: %w", err)
				}
				color.Green("✓ Linked to session %s", session.ID.String()[:8])
			} else {
				fmt.Printf("\nRun with --apply to link, or: rollready session link %s %s\n",
					session.ID.String()[:8], w.ID.String()[:8])
			}
		case engine.MatchAmbiguous:
			color.Yellow("%d candidate(s); pick one with 'session link':", len(result.Candidates))
			for i := range result.Candidates {
				printWorkout(&result.Candidates[i])
			}
		}
		return nil
	},
}

func printWorkout(c *engine.Candidate) {
	w := c.Workout
	fmt.Printf("  %s %s %s-%s  %.1f%% overlap, strain %.1f\n",
		color.New(color.Faint).Sprint(w.ID.String()[:8]),
		w.Sport,
		w.StartedAt.Format("15:04"), w.EndedAt.Format("15:04"),
		c.OverlapPct, w.Strain)
}

func init() {
	matchCmd.Flags().BoolVar(&matchApply, "apply", false, "link an automatic match immediately")
	rootCmd.AddCommand(matchCmd)
}
