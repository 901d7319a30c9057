// ABOUTME: CLI commands for Charm Cloud sync of training data.
// ABOUTME: --watch keeps a cron-scheduled push/pull loop running.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/robfig/cron/v3"
	"github.com/rollready/rollready/internal/charm"
	"github.com/spf13/cobra"
)

var syncWatch bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync training data via Charm Cloud",
	Long: `Sync checkins, sessions, and events across devices through Charm
Cloud. Checkins merge by newest UpdatedAt; sessions and events are
immutable and only ever added.

  rollready sync link      link this device to your Charm account
  rollready sync now       push local data, then pull remote
  rollready sync status    account and lock state
  rollready sync wipe      reset local KV and rebuild from the cloud
  rollready sync --watch   keep syncing on the configured schedule`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !syncWatch {
			return cmd.Help()
		}
		return watchSync()
	},
}

var syncLinkCmd = &cobra.Command{
	Use:   "link",
	Short: "Link this device to your Charm account",
	Long: `Link this device to your Charm account.

If you don't have an account, one is created from your SSH key. Run the
same command on other devices to share one training log.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		link := exec.Command("charm", "link")
		link.Stdin = os.Stdin
		link.Stdout = os.Stdout
		link.Stderr = os.Stderr

		if err := link.Run(); err != nil {
			return fmt.Errorf("link device: %w\n\nInstall the charm CLI first: go install github.com/charmbracelet/charm@latest", err)
		}

		color.Green("✓ Device linked")
		return syncOnce()
	},
}

var syncNowCmd = &cobra.Command{
	Use:   "now",
	Short: "Push and pull once",
	RunE: func(cmd *cobra.Command, args []string) error {
		return syncOnce()
	},
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync account and lock state",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := charm.InitClient()
		if err != nil {
			return fmt.Errorf("init charm client: %w", err)
		}
		defer client.Close()

		id, err := client.ID()
		if err != nil {
			color.Yellow("Not linked to a Charm account.")
			fmt.Println("Run 'charm link' on this machine to link it.")
			return nil
		}
		fmt.Printf("account:  %s\n", id)
		if client.IsReadOnly() {
			color.Yellow("lock:     read-only (another process holds the KV lock)")
		} else {
			fmt.Println("lock:     read-write")
		}
		fmt.Printf("schedule: %s\n", cfg.GetSyncSchedule())
		return nil
	},
}

var syncWipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Reset local sync state and rebuild from the cloud",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := charm.InitClient()
		if err != nil {
			return fmt.Errorf("init charm client: %w", err)
		}
		defer client.Close()

		if err := client.Reset(); err != nil {
			return fmt.Errorf("reset kv: %w", err)
		}
		color.Green("✓ Local sync state wiped and rebuilt from Charm Cloud")
		return nil
	},
}

func syncOnce() error {
	client, err := charm.InitClient()
	if err != nil {
		return fmt.Errorf("init charm client: %w", err)
	}
	defer client.Close()

	pushed, err := client.Push(repo)
	if err != nil {
		return fmt.Errorf("push: %w", err)
	}
	pulled, err := client.Pull(repo)
	if err != nil {
		return fmt.Errorf("pull: %w", err)
	}

	color.Green("✓ Synced")
	fmt.Printf("  pushed: %d checkins, %d sessions, %d events\n",
		pushed.Checkins, pushed.Sessions, pushed.Events)
	fmt.Printf("  pulled: %d checkins, %d sessions, %d events (%d skipped)\n",
		pulled.Checkins, pulled.Sessions, pulled.Events, pulled.Skipped)
	return nil
}

func watchSync() error {
	schedule := cfg.GetSyncSchedule()

	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		if err := syncOnce(); err != nil {
			color.Red("sync failed: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("invalid sync schedule %q: %w", schedule, err)
	}

	if err := syncOnce(); err != nil {
		color.Red("sync failed: %v", err)
	}

	fmt.Printf("Watching on schedule %q. Ctrl-C to stop.\n", schedule)
	c.Start()
	defer c.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	return nil
}

func init() {
	syncCmd.Flags().BoolVar(&syncWatch, "watch", false, "keep syncing on the configured cron schedule")
	syncCmd.AddCommand(syncLinkCmd)
	syncCmd.AddCommand(syncNowCmd)
	syncCmd.AddCommand(syncStatusCmd)
	syncCmd.AddCommand(syncWipeCmd)
	rootCmd.AddCommand(syncCmd)
}
