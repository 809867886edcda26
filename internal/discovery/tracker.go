package discovery

import (
	"context"
	"log"
	"math"
	"sync"
	"time"

	"github.com/fernapp/fern/internal/errors"
)

// ProgressStore persists the per-day completed task ID set. Saves carry the
// full set, not a delta, so overwrites are idempotent and ordering between
// coalesced saves does not matter.
type ProgressStore interface {
	FetchProgress(ctx context.Context, userID, dateKey string) ([]string, error)
	SaveProgress(ctx context.Context, userID, dateKey string, completedIDs []string) error
}

// SaveDelay is the debounce window for completion toggles. Only the latest
// pending save within a burst of toggles fires.
const SaveDelay = 300 * time.Millisecond

// Progress summarizes completion state for the daily task list.
type Progress struct {
	CompletedCount int `json:"completed_count"`
	TotalCount     int `json:"total_count"`
	Percentage     int `json:"percentage"`
}

// Tracker owns today's in-memory task list and debounces persistence of
// completion toggles. Save failures are logged and swallowed; the UI state
// is already updated by the time a save runs.
type Tracker struct {
	mu      sync.Mutex
	tasks   []Task
	userID  string
	dateKey string
	store   ProgressStore

	delay   time.Duration
	pending *time.Timer
	// afterFunc is swapped in tests to avoid real timers.
	afterFunc func(time.Duration, func()) *time.Timer
}

// NewTracker builds a tracker around an already-selected task list.
// Callers load prior completed IDs via LoadCompleted before selecting tasks,
// so a returning user sees prior completions immediately.
func NewTracker(store ProgressStore, userID, dateKey string, tasks []Task) *Tracker {
	return &Tracker{
		tasks:     tasks,
		userID:    userID,
		dateKey:   dateKey,
		store:     store,
		delay:     SaveDelay,
		afterFunc: time.AfterFunc,
	}
}

// LoadCompleted fetches previously completed task IDs for (userID, dateKey).
// Fetch failures degrade to an empty set, matching the empty state for a
// user with no prior progress.
func LoadCompleted(ctx context.Context, store ProgressStore, userID, dateKey string) map[string]bool {
	if store == nil || userID == "" {
		return map[string]bool{}
	}
	ids, err := store.FetchProgress(ctx, userID, dateKey)
	if err != nil {
		log.Printf("discovery: fetch progress failed: %v", err)
		return map[string]bool{}
	}
	return CompletedIDSet(ids)
}

// Tasks returns a copy of the current task list.
func (t *Tracker) Tasks() []Task {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Task, len(t.tasks))
	copy(out, t.tasks)
	return out
}

// Progress returns current completion counts and percentage.
func (t *Tracker) Progress() Progress {
	t.mu.Lock()
	defer t.mu.Unlock()
	return computeProgress(t.tasks)
}

// Toggle flips completion for the matching task, recomputes progress, and
// schedules a debounced save of the full completed-ID set. A pending save is
// cancelled and replaced on every toggle within the window.
func (t *Tracker) Toggle(taskID string) (Progress, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	found := false
	for i := range t.tasks {
		if t.tasks[i].ID == taskID {
			t.tasks[i].IsCompleted = !t.tasks[i].IsCompleted
			found = true
			break
		}
	}
	if !found {
		return Progress{}, errors.NewNotFound("task " + taskID)
	}

	t.scheduleSaveLocked()
	return computeProgress(t.tasks), nil
}

// Flush fires any pending save immediately. Used on shutdown so a toggle
// inside the debounce window is not lost.
func (t *Tracker) Flush() {
	t.mu.Lock()
	if t.pending == nil {
		t.mu.Unlock()
		return
	}
	t.pending.Stop()
	t.pending = nil
	ids := completedIDsLocked(t.tasks)
	t.mu.Unlock()

	t.save(ids)
}

func (t *Tracker) scheduleSaveLocked() {
	if t.store == nil || t.userID == "" {
		return
	}
	if t.pending != nil {
		t.pending.Stop()
	}
	t.pending = t.afterFunc(t.delay, func() {
		t.mu.Lock()
		t.pending = nil
		ids := completedIDsLocked(t.tasks)
		t.mu.Unlock()

		t.save(ids)
	})
}

func (t *Tracker) save(ids []string) {
	if err := t.store.SaveProgress(context.Background(), t.userID, t.dateKey, ids); err != nil {
		// Best-effort persistence: no retry, the next toggle sends the
		// full set again anyway.
		log.Printf("discovery: save progress failed: %v", err)
	}
}

func completedIDsLocked(tasks []Task) []string {
	ids := make([]string, 0, len(tasks))
	for _, task := range tasks {
		if task.IsCompleted {
			ids = append(ids, task.ID)
		}
	}
	return ids
}

func computeProgress(tasks []Task) Progress {
	total := len(tasks)
	completed := 0
	for _, task := range tasks {
		if task.IsCompleted {
			completed++
		}
	}
	pct := 0
	if total > 0 {
		pct = int(math.Round(float64(completed) / float64(total) * 100))
	}
	return Progress{CompletedCount: completed, TotalCount: total, Percentage: pct}
}
