package ops

import (
	"database/sql"
	"time"

	"github.com/fernapp/fern/internal/catalog"
	"github.com/fernapp/fern/internal/discovery"
	"github.com/fernapp/fern/internal/journal"
	"github.com/fernapp/fern/internal/mood"
)

// SuggestOutput contains the result of the Suggest operation.
type SuggestOutput struct {
	Mood       string             `json:"mood,omitempty"`
	Bucket     string             `json:"bucket,omitempty"`
	Activities []catalog.Activity `json:"activities"`
}

// Suggest picks up to two quick activity suggestions for the current mood.
// Unlike DailyTasks, the picks are intentionally varied between calls.
func Suggest(database *sql.DB) (*SuggestOutput, error) {
	current, err := CurrentMood(database, journal.DateKey(time.Now()))
	if err != nil {
		return nil, err
	}

	out := &SuggestOutput{
		Activities: discovery.RecommendActivities(current),
	}
	if current != nil {
		out.Mood = current.Mood.Name
		out.Bucket = mood.Bucket(*current)
	}
	return out, nil
}
