// ABOUTME: CLI command that scores a session across the six pillars.
// ABOUTME: Rescoring is the same pure computation over current inputs.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score <session-id>",
	Short: "Score a session's performance",
	Long: `Score a training session on a 0-100 scale across six pillars: effort,
engagement, effectiveness, readiness alignment, biometric validation,
and consistency. The rubric depends on the class type: competition and
supplementary sessions weight the pillars differently than mat classes.

Pillars with no underlying data score zero and lower data completeness.
Running score again recomputes from current data, so it picks up a
later check-in or a newly linked workout.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, breakdown, err := svc.SessionScore(args[0])
		if err != nil {
			return fmt.Errorf("score session: %w", err)
		}

		fmt.Printf("Session %s  %s %s (%d min, intensity %d)\n\n",
			session.ID.String()[:8], session.Date, session.ClassType,
			session.DurationMinutes, session.Intensity)

		switch {
		case breakdown.Score >= 85:
			color.Green("  %.1f/100  %s", breakdown.Score, breakdown.Label)
		case breakdown.Score >= 55:
			color.Yellow("  %.1f/100  %s", breakdown.Score, breakdown.Label)
		default:
			color.Red("  %.1f/100  %s", breakdown.Score, breakdown.Label)
		}
		fmt.Printf("  rubric: %s, data completeness: %.0f%%\n\n", breakdown.Rubric, breakdown.DataCompleteness*100)

		faint := color.New(color.Faint)
		for name, p := range breakdown.Pillars {
			fmt.Printf("  %s %5.1f/%.0f  %s\n",
				padRight(name, 22), p.Score, p.Max,
				faint.Sprintf("%.0f%%", p.Pct))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)
}
