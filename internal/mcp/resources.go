// ABOUTME: MCP resource implementations for readiness and sessions.
// ABOUTME: Read-only JSON views over today's state and recent history.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rollready/rollready/internal/models"
)

func (s *Server) registerResources() {
	// rollready://readiness/today - reconciled readiness for today
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "rollready://readiness/today",
		Name:        "Today's Readiness",
		Description: "Reconciled readiness state for today (checkin + wearable)",
		MIMEType:    "application/json",
	}, s.handleReadinessResource)

	// rollready://suggestion/today - current training suggestion
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "rollready://suggestion/today",
		Name:        "Today's Suggestion",
		Description: "Current training recommendation with triggered rules",
		MIMEType:    "application/json",
	}, s.handleSuggestionResource)

	// rollready://sessions/recent - last 10 training sessions
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "rollready://sessions/recent",
		Name:        "Recent Sessions",
		Description: "Last 10 logged training sessions",
		MIMEType:    "application/json",
	}, s.handleSessionsResource)
}

// Resource handlers

func (s *Server) handleReadinessResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	today := time.Now().Format(models.DateLayout)
	readiness, err := s.svc.Readiness(today)
	if err != nil {
		return nil, fmt.Errorf("fetch readiness: %w", err)
	}

	var result interface{}
	if readiness == nil {
		result = map[string]interface{}{
			"date":   today,
			"status": "unknown",
		}
	} else {
		result = map[string]interface{}{
			"date":      today,
			"band":      readiness.Band(),
			"source":    readiness.Source,
			"composite": readiness.Composite,
			"recovery":  readiness.RecoveryScore,
		}
	}

	return jsonResource("rollready://readiness/today", result)
}

func (s *Server) handleSuggestionResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	suggestion, err := s.svc.Suggestion(time.Now())
	if err != nil {
		return nil, fmt.Errorf("evaluate suggestion: %w", err)
	}

	return jsonResource("rollready://suggestion/today", map[string]interface{}{
		"label":           suggestion.Label,
		"suggestion":      suggestion.Text,
		"triggered_rules": suggestion.Top,
	})
}

func (s *Server) handleSessionsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	sessions, err := s.repo.ListSessions(nil, 10)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	return jsonResource("rollready://sessions/recent", map[string]interface{}{
		"sessions": sessions,
	})
}

func jsonResource(uri string, v interface{}) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
