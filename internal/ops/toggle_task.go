package ops

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fernapp/fern/internal/config"
	"github.com/fernapp/fern/internal/db"
	"github.com/fernapp/fern/internal/discovery"
	"github.com/fernapp/fern/internal/errors"
	"github.com/fernapp/fern/internal/journal"
)

// ToggleTaskInput contains parameters for the ToggleTask operation.
type ToggleTaskInput struct {
	TaskID string // required, an ID from the DailyTasks list
	Date   string // optional, defaults to today (YYYY-MM-DD)
}

// ToggleTaskOutput contains the result of the ToggleTask operation.
type ToggleTaskOutput struct {
	Task     discovery.Task     `json:"task"`
	Progress discovery.Progress `json:"progress"`
}

// ToggleTask flips the completion state of one daily task and persists the
// full completed set. One-shot surfaces flush immediately; long-lived
// surfaces hold their own tracker and let the debounce coalesce bursts.
func ToggleTask(ctx context.Context, database *sql.DB, cfg *config.Config, input ToggleTaskInput) (*ToggleTaskOutput, error) {
	taskID := strings.TrimSpace(input.TaskID)
	if taskID == "" {
		return nil, errors.NewInvalidRequest("task_id is required")
	}
	date := strings.TrimSpace(input.Date)
	if date == "" {
		date = journal.DateKey(time.Now())
	}
	if !journal.ValidDateKey(date) {
		return nil, errors.NewInvalidRequest("date must be YYYY-MM-DD")
	}

	current, err := CurrentMood(database, date)
	if err != nil {
		return nil, err
	}

	store := db.ProgressStore{DB: database}
	completed := discovery.LoadCompleted(ctx, store, cfg.UserID, date)
	tasks := discovery.SelectDailyTasks(current, completed, date)

	tracker := discovery.NewTracker(store, cfg.UserID, date, tasks)
	progress, err := tracker.Toggle(taskID)
	if err != nil {
		return nil, err
	}
	tracker.Flush()

	var toggled discovery.Task
	for _, task := range tracker.Tasks() {
		if task.ID == taskID {
			toggled = task
			break
		}
	}

	return &ToggleTaskOutput{Task: toggled, Progress: progress}, nil
}
