// ABOUTME: CLI command that starts the MCP server over stdio.
// ABOUTME: Exposes readiness, sessions, and suggestions to AI assistants.
package main

import (
	"fmt"

	"github.com/rollready/rollready/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start a Model Context Protocol server on stdio. Exposes tools for
check-ins, session logging, workout linking, scoring, and suggestions,
plus read-only resources for today's readiness and recent sessions.

Intended to be launched by an MCP-compatible client, not interactively.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(repo, svc)
		if err != nil {
			return fmt.Errorf("create mcp server: %w", err)
		}
		return server.Serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
