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

// DailyTasksInput contains parameters for the DailyTasks operation.
type DailyTasksInput struct {
	Date string // optional, defaults to today (YYYY-MM-DD)
}

// DailyTasksOutput contains the result of the DailyTasks operation.
type DailyTasksOutput struct {
	Date     string             `json:"date"`
	Mood     string             `json:"mood,omitempty"`
	Tasks    []discovery.Task   `json:"tasks"`
	Progress discovery.Progress `json:"progress"`
}

// DailyTasks returns the deterministic task list for a date with the stored
// completion state applied. Re-running it for the same date and mood always
// yields the same list.
func DailyTasks(ctx context.Context, database *sql.DB, cfg *config.Config, input DailyTasksInput) (*DailyTasksOutput, error) {
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
	out := &DailyTasksOutput{
		Date:     date,
		Tasks:    tasks,
		Progress: tracker.Progress(),
	}
	if current != nil {
		out.Mood = current.Mood.Name
	}
	return out, nil
}
