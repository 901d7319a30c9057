// ABOUTME: MCP tool implementations for the readiness engine and training log.
// ABOUTME: Exposes suggestion, auto-fill, matching, and scoring plus CRUD.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rollready/rollready/internal/engine"
	"github.com/rollready/rollready/internal/models"
)

func (s *Server) registerTools() {
	// Engine operations
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_suggestion",
		Description: "Get today's training suggestion with triggered rules and readiness score",
	}, s.handleGetSuggestion)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_readiness_autofill",
		Description: "Get wearable-derived slider prefill for a date, if wearable data exists",
	}, s.handleGetAutoFill)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_workout_candidates",
		Description: "Find wearable workouts overlapping a logged session's time window",
	}, s.handleGetWorkoutCandidates)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_session_score",
		Description: "Compute the multi-pillar performance score for a session",
	}, s.handleGetSessionScore)

	// Training log CRUD
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_checkin",
		Description: "Record a daily readiness check-in (sleep, stress, soreness, energy on 1-5)",
	}, s.handleAddCheckin)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_session",
		Description: "Log a training session",
	}, s.handleLogSession)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "link_workout",
		Description: "Link a wearable workout's metrics to a session",
	}, s.handleLinkWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_event",
		Description: "Add a competition to the calendar",
	}, s.handleAddEvent)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_sessions",
		Description: "List recent training sessions, optionally filtered by class type",
	}, s.handleListSessions)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_checkins",
		Description: "List recent readiness check-ins",
	}, s.handleListCheckins)
}

// Tool input/output types

type getSuggestionInput struct {
	Date string `json:"date,omitempty" jsonschema:"Evaluation date (YYYY-MM-DD), defaults to today"`
}

type suggestionOutput struct {
	Suggestion     string                 `json:"suggestion"`
	Label          string                 `json:"label"`
	TriggeredRules []engine.TriggeredRule `json:"triggered_rules"`
	Readiness      *readinessOutput       `json:"readiness,omitempty"`
}

type readinessOutput struct {
	CompositeScore int `json:"composite_score"`
}

type getAutoFillInput struct {
	Date string `json:"date" jsonschema:"Date to auto-fill (YYYY-MM-DD)"`
}

type autoFillOutput struct {
	AutoFill *autoFillFields `json:"auto_fill,omitempty"`
	Message  string          `json:"message,omitempty"`
}

type autoFillFields struct {
	Sleep         int      `json:"sleep"`
	Energy        int      `json:"energy"`
	HRVMs         *float64 `json:"hrv_ms,omitempty"`
	RestingHR     *float64 `json:"resting_hr,omitempty"`
	SpO2          *float64 `json:"spo2,omitempty"`
	RecoveryScore *float64 `json:"whoop_recovery_score,omitempty"`
	SleepScore    *float64 `json:"whoop_sleep_score,omitempty"`
	DataSource    string   `json:"data_source"`
}

type sessionIDInput struct {
	SessionID string `json:"session_id" jsonschema:"Session ID or prefix"`
}

type workoutCandidatesOutput struct {
	Status   string            `json:"status"`
	Workouts []candidateOutput `json:"workouts"`
}

type candidateOutput struct {
	ID           string  `json:"id"`
	Sport        string  `json:"sport"`
	Strain       float64 `json:"strain"`
	Calories     float64 `json:"calories"`
	AvgHeartRate float64 `json:"avg_heart_rate"`
	MaxHeartRate float64 `json:"max_heart_rate"`
	OverlapPct   float64 `json:"overlap_pct"`
}

type addCheckinInput struct {
	Date     string  `json:"date,omitempty" jsonschema:"Calendar day (YYYY-MM-DD), defaults to today"`
	Sleep    int     `json:"sleep" jsonschema:"Sleep quality 1-5"`
	Stress   int     `json:"stress" jsonschema:"Stress level 1-5 (lower is better)"`
	Soreness int     `json:"soreness" jsonschema:"Soreness level 1-5 (lower is better)"`
	Energy   int     `json:"energy" jsonschema:"Energy level 1-5"`
	Hotspot  string  `json:"hotspot,omitempty" jsonschema:"Injury hotspot note"`
	WeightKg float64 `json:"weight_kg,omitempty" jsonschema:"Body weight in kg"`
}

type checkinOutput struct {
	Date           string `json:"date"`
	CompositeScore int    `json:"composite_score"`
	Band           string `json:"band"`
	Message        string `json:"message"`
}

type logSessionInput struct {
	Date            string `json:"date,omitempty" jsonschema:"Calendar day (YYYY-MM-DD), defaults to today"`
	StartTime       string `json:"start_time,omitempty" jsonschema:"Class start time (RFC 3339 or YYYY-MM-DD HH:MM)"`
	DurationMinutes int    `json:"duration_minutes" jsonschema:"Session length in minutes"`
	Intensity       int    `json:"intensity" jsonschema:"Intensity 1-5"`
	ClassType       string `json:"class_type" jsonschema:"Class type (gi, nogi, open_mat, competition, strength, mobility, conditioning)"`
	Rolls           *int   `json:"rolls,omitempty" jsonschema:"Number of live rolls"`
	Partners        *int   `json:"partners,omitempty" jsonschema:"Number of distinct partners"`
	SubsFor         *int   `json:"submissions_for,omitempty" jsonschema:"Submissions achieved"`
	SubsAgainst     *int   `json:"submissions_against,omitempty" jsonschema:"Submissions conceded"`
	Notes           string `json:"notes,omitempty" jsonschema:"Technique notes"`
}

type sessionOutput struct {
	ID        string `json:"id"`
	ClassType string `json:"class_type"`
	Message   string `json:"message"`
}

type linkWorkoutInput struct {
	SessionID string `json:"session_id" jsonschema:"Session ID or prefix"`
	WorkoutID string `json:"workout_id" jsonschema:"Wearable workout ID or prefix"`
}

type addEventInput struct {
	Name  string `json:"name" jsonschema:"Competition name"`
	Date  string `json:"date" jsonschema:"Competition date (YYYY-MM-DD)"`
	Notes string `json:"notes,omitempty" jsonschema:"Notes"`
}

type listSessionsInput struct {
	ClassType string `json:"class_type,omitempty" jsonschema:"Filter by class type"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type listCheckinsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

// Tool handlers

func (s *Server) handleGetSuggestion(ctx context.Context, req *mcp.CallToolRequest, input getSuggestionInput) (*mcp.CallToolResult, suggestionOutput, error) {
	now := time.Now()
	if input.Date != "" {
		day, err := time.Parse(models.DateLayout, input.Date)
		if err != nil {
			return nil, suggestionOutput{}, fmt.Errorf("invalid date: %s", input.Date)
		}
		now = day
	}

	suggestion, err := s.svc.Suggestion(now)
	if err != nil {
		return nil, suggestionOutput{}, fmt.Errorf("evaluate suggestion: %w", err)
	}

	out := suggestionOutput{
		Suggestion:     suggestion.Text,
		Label:          suggestion.Label,
		TriggeredRules: suggestion.Top,
	}
	if suggestion.Composite != nil {
		out.Readiness = &readinessOutput{CompositeScore: *suggestion.Composite}
	}
	return nil, out, nil
}

func (s *Server) handleGetAutoFill(ctx context.Context, req *mcp.CallToolRequest, input getAutoFillInput) (*mcp.CallToolResult, autoFillOutput, error) {
	if _, err := time.Parse(models.DateLayout, input.Date); err != nil {
		return nil, autoFillOutput{}, fmt.Errorf("invalid date: %s", input.Date)
	}

	af, err := s.svc.AutoFillForDate(input.Date)
	if err != nil {
		return nil, autoFillOutput{}, fmt.Errorf("auto-fill: %w", err)
	}
	if af == nil {
		return nil, autoFillOutput{Message: "No wearable data for that date."}, nil
	}

	return nil, autoFillOutput{AutoFill: &autoFillFields{
		Sleep:         af.Sleep,
		Energy:        af.Energy,
		HRVMs:         af.HRVMs,
		RestingHR:     af.RestingHR,
		SpO2:          af.SpO2,
		RecoveryScore: af.RecoveryScore,
		SleepScore:    af.SleepScore,
		DataSource:    string(af.DataSource),
	}}, nil
}

func (s *Server) handleGetWorkoutCandidates(ctx context.Context, req *mcp.CallToolRequest, input sessionIDInput) (*mcp.CallToolResult, workoutCandidatesOutput, error) {
	_, result, err := s.svc.WorkoutCandidates(input.SessionID)
	if err != nil {
		return nil, workoutCandidatesOutput{}, fmt.Errorf("match workouts: %w", err)
	}

	out := workoutCandidatesOutput{
		Status:   string(result.Status),
		Workouts: []candidateOutput{},
	}
	for _, c := range result.Candidates {
		out.Workouts = append(out.Workouts, candidateOutput{
			ID:           c.Workout.ID.String()[:8],
			Sport:        c.Workout.Sport,
			Strain:       c.Workout.Strain,
			Calories:     c.Workout.Calories,
			AvgHeartRate: c.Workout.AvgHeartRate,
			MaxHeartRate: c.Workout.MaxHeartRate,
			OverlapPct:   c.OverlapPct,
		})
	}
	return nil, out, nil
}

func (s *Server) handleGetSessionScore(ctx context.Context, req *mcp.CallToolRequest, input sessionIDInput) (*mcp.CallToolResult, any, error) {
	_, breakdown, err := s.svc.SessionScore(input.SessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("score session: %w", err)
	}
	return nil, breakdown, nil
}

func (s *Server) handleAddCheckin(ctx context.Context, req *mcp.CallToolRequest, input addCheckinInput) (*mcp.CallToolResult, checkinOutput, error) {
	date := input.Date
	if date == "" {
		date = time.Now().Format(models.DateLayout)
	} else if _, err := time.Parse(models.DateLayout, date); err != nil {
		return nil, checkinOutput{}, fmt.Errorf("invalid date: %s", input.Date)
	}

	composite, err := engine.ReadinessScore(input.Sleep, input.Stress, input.Soreness, input.Energy)
	if err != nil {
		return nil, checkinOutput{}, err
	}

	c := models.NewCheckin(date, input.Sleep, input.Stress, input.Soreness, input.Energy)
	if input.Hotspot != "" {
		c.WithHotspot(input.Hotspot)
	}
	if input.WeightKg > 0 {
		c.WithBodyWeight(input.WeightKg)
	}

	if err := s.repo.UpsertCheckin(c); err != nil {
		return nil, checkinOutput{}, fmt.Errorf("save checkin: %w", err)
	}

	return nil, checkinOutput{
		Date:           date,
		CompositeScore: composite,
		Band:           string(engine.ReadinessBand(composite)),
		Message:        fmt.Sprintf("Checked in for %s: composite %d/20", date, composite),
	}, nil
}

func (s *Server) handleLogSession(ctx context.Context, req *mcp.CallToolRequest, input logSessionInput) (*mcp.CallToolResult, sessionOutput, error) {
	date := input.Date
	if date == "" {
		date = time.Now().Format(models.DateLayout)
	} else if _, err := time.Parse(models.DateLayout, date); err != nil {
		return nil, sessionOutput{}, fmt.Errorf("invalid date: %s", input.Date)
	}
	if input.DurationMinutes <= 0 {
		return nil, sessionOutput{}, fmt.Errorf("duration_minutes must be positive, got %d", input.DurationMinutes)
	}
	if input.Intensity < 1 || input.Intensity > 5 {
		return nil, sessionOutput{}, fmt.Errorf("intensity must be between 1 and 5, got %d", input.Intensity)
	}

	sess := models.NewSession(date, input.ClassType, input.DurationMinutes, input.Intensity)
	if input.StartTime != "" {
		t, err := parseTimestamp(input.StartTime)
		if err != nil {
			return nil, sessionOutput{}, fmt.Errorf("invalid start_time: %s", input.StartTime)
		}
		sess.WithStartTime(t)
	}
	if input.Rolls != nil {
		sess.Rolls = input.Rolls
	}
	if input.Partners != nil {
		sess.Partners = input.Partners
	}
	if input.SubsFor != nil {
		sess.SubmissionsFor = input.SubsFor
	}
	if input.SubsAgainst != nil {
		sess.SubmissionsAgainst = input.SubsAgainst
	}
	if input.Notes != "" {
		sess.WithNotes(input.Notes)
	}

	if err := s.repo.CreateSession(sess); err != nil {
		return nil, sessionOutput{}, fmt.Errorf("save session: %w", err)
	}

	return nil, sessionOutput{
		ID:        sess.ID.String()[:8],
		ClassType: sess.ClassType,
		Message:   fmt.Sprintf("Logged %s session on %s (ID: %s)", sess.ClassType, date, sess.ID.String()[:8]),
	}, nil
}

func (s *Server) handleLinkWorkout(ctx context.Context, req *mcp.CallToolRequest, input linkWorkoutInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.svc.LinkWorkout(input.SessionID, input.WorkoutID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("link workout: %w", err)
	}
	return nil, simpleOutput{
		Message: fmt.Sprintf("Linked workout %s to session %s", input.WorkoutID, input.SessionID),
	}, nil
}

func (s *Server) handleAddEvent(ctx context.Context, req *mcp.CallToolRequest, input addEventInput) (*mcp.CallToolResult, simpleOutput, error) {
	if _, err := time.Parse(models.DateLayout, input.Date); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("invalid date: %s", input.Date)
	}

	e := models.NewEvent(input.Name, input.Date)
	if input.Notes != "" {
		e.WithNotes(input.Notes)
	}
	if err := s.repo.CreateEvent(e); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("save event: %w", err)
	}
	return nil, simpleOutput{
		Message: fmt.Sprintf("Added %s on %s", input.Name, input.Date),
	}, nil
}

func (s *Server) handleListSessions(ctx context.Context, req *mcp.CallToolRequest, input listSessionsInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}
	var classType *string
	if input.ClassType != "" {
		classType = &input.ClassType
	}

	sessions, err := s.repo.ListSessions(classType, input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("list sessions: %w", err)
	}
	if len(sessions) == 0 {
		return nil, map[string]interface{}{"message": "No sessions found."}, nil
	}
	return nil, sessions, nil
}

func (s *Server) handleListCheckins(ctx context.Context, req *mcp.CallToolRequest, input listCheckinsInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}
	checkins, err := s.repo.ListCheckins(input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("list checkins: %w", err)
	}
	if len(checkins) == 0 {
		return nil, map[string]interface{}{"message": "No checkins found."}, nil
	}
	return nil, checkins, nil
}

func parseTimestamp(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339,
		"2006-01-02 15:04",
		"2006-01-02T15:04",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format")
}
