// ABOUTME: Root Cobra command for rollready CLI.
// ABOUTME: Handles config and repository lifecycle via PersistentPre/PostRunE.
package main

import (
	"fmt"

	"github.com/rollready/rollready/internal/config"
	"github.com/rollready/rollready/internal/service"
	"github.com/rollready/rollready/internal/storage"
	"github.com/spf13/cobra"
)

var (
	cfg  *config.Config
	repo *storage.DB
	svc  *service.Service
)

var rootCmd = &cobra.Command{
	Use:   "rollready",
	Short: "BJJ training log with a readiness and recommendation engine",
	Long: `Rollready is a CLI training log for grapplers. It fuses daily
check-ins, wearable biometrics, training history, and your competition
calendar into a readiness score, a training recommendation, and a
post-session performance score.

QUICK START:

  $ rollready checkin 4 2 2 4              # sleep stress soreness energy (1-5)
  $ rollready suggest                      # today's recommendation
  $ rollready session add gi 90 4 --at "2024-01-10 18:00" --rolls 6
  $ rollready score <session-id>           # six-pillar performance score

WEARABLE DATA:

  $ rollready import whoop-export.json     # load recovery + workouts
  $ rollready checkin --auto               # prefill sliders from wearable
  $ rollready match <session-id>           # find overlapping workouts
  $ rollready session link <session-id> <workout-id>

COMPETITION CALENDAR:

  $ rollready event add "Worlds" 2024-06-01
  $ rollready event list

SYNC (CHARM CLOUD):

  $ rollready sync now        # push and pull via Charm Cloud
  $ rollready sync status     # account and lock state
  $ rollready sync --watch    # keep syncing on a schedule

MCP INTEGRATION:

  Run 'rollready mcp' to start the Model Context Protocol server for
  use with MCP-compatible AI assistants.

DATA STORAGE:

  Data lives in SQLite at ~/.local/share/rollready/rollready.db.
  Settings live at ~/.config/rollready/config.json; ROLLREADY_* env
  vars override them.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		repo, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("open storage: %w", err)
		}
		svc = service.New(repo, cfg.AutoFillTable(), cfg.RecoveryMode)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if repo != nil {
			return repo.Close()
		}
		return nil
	},
}
