// ABOUTME: MCP server setup for the training log and readiness engine.
// ABOUTME: Wraps MCP server with repository and service access.
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rollready/rollready/internal/service"
	"github.com/rollready/rollready/internal/storage"
)

// Server wraps the MCP server with storage and engine access.
type Server struct {
	mcpServer *mcp.Server
	repo      storage.Repository
	svc       *service.Service
}

// NewServer creates a new MCP server with the given storage and service.
func NewServer(repo storage.Repository, svc *service.Service) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "rollready",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		repo:      repo,
		svc:       svc,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
