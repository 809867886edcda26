package mcp

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/fernapp/fern/internal/config"
	"github.com/fernapp/fern/internal/errors"
	"github.com/fernapp/fern/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	db  *sql.DB
	cfg *config.Config
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *sql.DB, cfg *config.Config) *Handlers {
	return &Handlers{db: db, cfg: cfg}
}

// Request types for each tool

// MoodLogRequest represents the arguments for mood_log.
type MoodLogRequest struct {
	Mood              string   `json:"mood"`
	EmotionLabel      *string  `json:"emotion_label,omitempty"`
	EmotionConfidence *float64 `json:"emotion_confidence,omitempty"`
}

// MoodListRequest represents the arguments for mood_list.
type MoodListRequest struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// MoodFromJournalRequest represents the arguments for mood_from_journal.
type MoodFromJournalRequest struct {
	Date string `json:"date,omitempty"`
}

// JournalWriteRequest represents the arguments for journal_write.
type JournalWriteRequest struct {
	Content string `json:"content"`
	Date    string `json:"date,omitempty"`
}

// JournalGetRequest represents the arguments for journal_get.
type JournalGetRequest struct {
	Date string `json:"date"`
}

// JournalListRequest represents the arguments for journal_list.
type JournalListRequest struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// TasksTodayRequest represents the arguments for tasks_today.
type TasksTodayRequest struct {
	Date string `json:"date,omitempty"`
}

// TaskToggleRequest represents the arguments for task_toggle.
type TaskToggleRequest struct {
	TaskID string `json:"task_id"`
	Date   string `json:"date,omitempty"`
}

// HandleMoodLog handles the mood_log tool.
func (h *Handlers) HandleMoodLog(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := decode[MoodLogRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.LogMood(h.db, ops.LogMoodInput{
		Mood:              args.Mood,
		EmotionLabel:      args.EmotionLabel,
		EmotionConfidence: args.EmotionConfidence,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleMoodList handles the mood_list tool.
func (h *Handlers) HandleMoodList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := decode[MoodListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Moods(h.db, ops.MoodsInput{Limit: args.Limit, Offset: args.Offset})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleMoodFromJournal handles the mood_from_journal tool.
func (h *Handlers) HandleMoodFromJournal(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := decode[MoodFromJournalRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.LogMoodFromJournal(h.db, ops.LogMoodFromJournalInput{Date: args.Date})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleJournalWrite handles the journal_write tool.
func (h *Handlers) HandleJournalWrite(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := decode[JournalWriteRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.WriteJournal(h.db, ops.WriteJournalInput{Date: args.Date, Content: args.Content})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleJournalGet handles the journal_get tool.
func (h *Handlers) HandleJournalGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := decode[JournalGetRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.JournalByDate(h.db, ops.JournalByDateInput{Date: args.Date})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleJournalList handles the journal_list tool.
func (h *Handlers) HandleJournalList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := decode[JournalListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Journals(h.db, ops.JournalsInput{Limit: args.Limit, Offset: args.Offset})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleTasksToday handles the tasks_today tool.
func (h *Handlers) HandleTasksToday(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := decode[TasksTodayRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.DailyTasks(ctx, h.db, h.cfg, ops.DailyTasksInput{Date: args.Date})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleTaskToggle handles the task_toggle tool.
func (h *Handlers) HandleTaskToggle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := decode[TaskToggleRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.ToggleTask(ctx, h.db, h.cfg, ops.ToggleTaskInput{TaskID: args.TaskID, Date: args.Date})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleInsightsWeek handles the insights_week tool.
func (h *Handlers) HandleInsightsWeek(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.Insights(h.db)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleSuggest handles the suggest_activities tool.
func (h *Handlers) HandleSuggest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.Suggest(h.db)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// errorResult converts an error into a structured MCP error payload.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if fernErr, ok := err.(*errors.FernError); ok {
		errorObj := map[string]any{
			"code":    fernErr.Code,
			"message": fernErr.Message,
			"status":  fernErr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths or SQL errors
		if fernErr.Code != errors.ErrInternal && fernErr.Details != nil {
			errorObj["details"] = fernErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult wraps data as a JSON tool result.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
