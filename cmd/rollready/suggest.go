// ABOUTME: CLI command that prints today's training recommendation.
// ABOUTME: Shows the label, rendered text, and top triggered rules.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/rollready/rollready/internal/engine"
	"github.com/spf13/cobra"
)

var suggestAll bool

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Get today's training recommendation",
	Long: `Evaluate the rule catalog against today's readiness, recent history,
and the competition calendar. Prints a label (Train Hard, Light Session,
Rest Day, or Check In), a recommendation, and the top triggered rules.

Use --all to see every triggered rule, not just the top three.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		suggestion, err := svc.Suggestion(time.Now())
		if err != nil {
			return fmt.Errorf("evaluate suggestion: %w", err)
		}

		printLabel(suggestion.Label)
		if suggestion.Composite != nil {
			fmt.Printf("  composite %d/20\n", *suggestion.Composite)
		}
		fmt.Printf("\n%s\n", suggestion.Text)

		rules := suggestion.Top
		if suggestAll {
			rules = suggestion.Triggered
		}
		if len(rules) > 0 {
			fmt.Println()
			faint := color.New(color.Faint)
			for _, r := range rules {
				fmt.Printf("  %s %s\n", faint.Sprintf("[%s]", r.Name), r.Explanation)
			}
		}
		return nil
	},
}

func printLabel(label string) {
	switch label {
	case engine.LabelTrainHard:
		color.Green("● %s", label)
	case engine.LabelLightSession:
		color.Yellow("● %s", label)
	case engine.LabelRestDay:
		color.Red("● %s", label)
	default:
		color.White("● %s", label)
	}
}

func init() {
	suggestCmd.Flags().BoolVar(&suggestAll, "all", false, "show every triggered rule")
	rootCmd.AddCommand(suggestCmd)
}
