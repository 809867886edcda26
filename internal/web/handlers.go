package web

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/yuin/goldmark"

	"github.com/fernapp/fern/internal/analysis"
	"github.com/fernapp/fern/internal/config"
	"github.com/fernapp/fern/internal/db"
	"github.com/fernapp/fern/internal/discovery"
	"github.com/fernapp/fern/internal/errors"
	"github.com/fernapp/fern/internal/journal"
	"github.com/fernapp/fern/internal/ops"
)

// Handlers contains HTTP route handlers for the API.
//
// Unlike the one-shot CLI and MCP surfaces, the web server is long-lived, so
// it holds a progress tracker for the current day and lets the debounce
// coalesce rapid toggle bursts into one save.
type Handlers struct {
	db     *sql.DB
	cfg    *config.Config
	client *analysis.Client
	sched  *analysis.Scheduler

	mu          sync.Mutex
	tracker     *discovery.Tracker
	trackerDate string
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *sql.DB, cfg *config.Config, client *analysis.Client, sched *analysis.Scheduler) *Handlers {
	return &Handlers{db: db, cfg: cfg, client: client, sched: sched}
}

// trackerFor returns the live tracker for a date, building it on first use
// or when the day rolls over.
func (h *Handlers) trackerFor(r *http.Request, date string) *discovery.Tracker {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.tracker != nil && h.trackerDate == date {
		return h.tracker
	}
	if h.tracker != nil {
		h.tracker.Flush()
	}

	current, err := ops.CurrentMood(h.db, date)
	if err != nil {
		current = nil
	}
	store := db.ProgressStore{DB: h.db}
	completed := discovery.LoadCompleted(r.Context(), store, h.cfg.UserID, date)
	tasks := discovery.SelectDailyTasks(current, completed, date)

	h.tracker = discovery.NewTracker(store, h.cfg.UserID, date, tasks)
	h.trackerDate = date
	return h.tracker
}

// invalidateTracker drops the cached tracker so the next read reselects
// tasks. Called when a new mood changes what today's list should be.
func (h *Handlers) invalidateTracker() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.tracker != nil {
		h.tracker.Flush()
		h.tracker = nil
		h.trackerDate = ""
	}
}

// FlushProgress forces any pending debounced save to run now.
func (h *Handlers) FlushProgress() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.tracker != nil {
		h.tracker.Flush()
	}
}

// HandleMoodLog handles POST /api/moods.
func (h *Handlers) HandleMoodLog(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mood              string   `json:"mood"`
		EmotionLabel      *string  `json:"emotion_label,omitempty"`
		EmotionConfidence *float64 `json:"emotion_confidence,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewInvalidRequest("invalid JSON body"))
		return
	}

	result, err := ops.LogMood(h.db, ops.LogMoodInput{
		Mood:              req.Mood,
		EmotionLabel:      req.EmotionLabel,
		EmotionConfidence: req.EmotionConfidence,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	h.invalidateTracker()
	writeJSON(w, http.StatusCreated, result)
}

// HandleMoodFromJournal handles POST /api/moods/from-journal. The detected
// mood changes what today's task list should be, so the tracker is rebuilt.
func (h *Handlers) HandleMoodFromJournal(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	result, err := ops.LogMoodFromJournal(h.db, ops.LogMoodFromJournalInput{Date: date})
	if err != nil {
		writeError(w, err)
		return
	}

	h.invalidateTracker()
	writeJSON(w, http.StatusCreated, result)
}

// HandleMoodList handles GET /api/moods.
func (h *Handlers) HandleMoodList(w http.ResponseWriter, r *http.Request) {
	result, err := ops.Moods(h.db, ops.MoodsInput{
		Limit:  parseIntParam(r, "limit", 0),
		Offset: parseIntParam(r, "offset", 0),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleJournalWrite handles PUT /api/journal/{date}.
func (h *Handlers) HandleJournalWrite(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewInvalidRequest("invalid JSON body"))
		return
	}

	result, err := ops.WriteJournal(h.db, ops.WriteJournalInput{
		Date:    r.PathValue("date"),
		Content: req.Content,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleJournalGet handles GET /api/journal/{date}.
func (h *Handlers) HandleJournalGet(w http.ResponseWriter, r *http.Request) {
	result, err := ops.JournalByDate(h.db, ops.JournalByDateInput{Date: r.PathValue("date")})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleJournalList handles GET /api/journals.
func (h *Handlers) HandleJournalList(w http.ResponseWriter, r *http.Request) {
	result, err := ops.Journals(h.db, ops.JournalsInput{
		Limit:  parseIntParam(r, "limit", 0),
		Offset: parseIntParam(r, "offset", 0),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleJournalHTML handles GET /journal/{date}/html — the journal entry
// rendered from markdown.
func (h *Handlers) HandleJournalHTML(w http.ResponseWriter, r *http.Request) {
	result, err := ops.JournalByDate(h.db, ops.JournalByDateInput{Date: r.PathValue("date")})
	if err != nil {
		writeError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(result.Entry.Content), &buf); err != nil {
		writeError(w, errors.NewInternal(err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// HandleTasks handles GET /api/tasks.
func (h *Handlers) HandleTasks(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = journal.DateKey(time.Now())
	}
	if !journal.ValidDateKey(date) {
		writeError(w, errors.NewInvalidRequest("date must be YYYY-MM-DD"))
		return
	}

	tracker := h.trackerFor(r, date)
	writeJSON(w, http.StatusOK, map[string]any{
		"date":     date,
		"tasks":    tracker.Tasks(),
		"progress": tracker.Progress(),
	})
}

// HandleTaskToggle handles POST /api/tasks/{id}/toggle. Saves are debounced;
// a burst of toggles is written once.
func (h *Handlers) HandleTaskToggle(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = journal.DateKey(time.Now())
	}
	if !journal.ValidDateKey(date) {
		writeError(w, errors.NewInvalidRequest("date must be YYYY-MM-DD"))
		return
	}

	tracker := h.trackerFor(r, date)
	progress, err := tracker.Toggle(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"progress": progress})
}

// HandleInsights handles GET /api/insights.
func (h *Handlers) HandleInsights(w http.ResponseWriter, r *http.Request) {
	result, err := ops.Insights(h.db)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleSuggestions handles GET /api/suggestions.
func (h *Handlers) HandleSuggestions(w http.ResponseWriter, r *http.Request) {
	result, err := ops.Suggest(h.db)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleAnalyze handles POST /api/analyze.
func (h *Handlers) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	force := r.URL.Query().Get("force") == "true"
	result, err := ops.Analyze(r.Context(), h.db, h.client, h.sched, ops.AnalyzeInput{Force: force})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleSummary handles GET /api/summary.
func (h *Handlers) HandleSummary(w http.ResponseWriter, r *http.Request) {
	result, err := ops.Summary(r.Context(), h.db, h.client)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func parseIntParam(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError maps a FernError to its HTTP status and a JSON error body.
func writeError(w http.ResponseWriter, err error) {
	status := 500
	body := map[string]any{
		"code":    "INTERNAL",
		"message": "an internal error occurred",
	}

	if fernErr, ok := err.(*errors.FernError); ok {
		status = fernErr.Status
		body["code"] = fernErr.Code
		body["message"] = fernErr.Message
		// Internal details stay out of responses
		if fernErr.Code != errors.ErrInternal && fernErr.Details != nil {
			body["details"] = fernErr.Details
		}
	}

	writeJSON(w, status, map[string]any{"error": body})
}
