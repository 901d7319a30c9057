// ABOUTME: CLI version command.
// ABOUTME: Version is overridable at build time via -ldflags.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the rollready version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("rollready %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
