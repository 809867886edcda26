package ops

import (
	"database/sql"
	"time"

	"github.com/fernapp/fern/internal/db"
	"github.com/fernapp/fern/internal/insights"
	"github.com/fernapp/fern/internal/journal"
)

// insightsLookback bounds how much history the weekly aggregates read.
// Two weeks covers the current and previous averaging windows; the streak
// reads further back on its own.
const insightsLookback = 14 * 24 * time.Hour

// InsightsOutput contains the result of the Insights operation.
type InsightsOutput struct {
	Summary insights.Summary `json:"summary"`
}

// Insights computes the weekly summary from stored moods and journals.
func Insights(database *sql.DB) (*InsightsOutput, error) {
	now := time.Now()

	moods, err := db.MoodsSince(database, now.Add(-insightsLookback))
	if err != nil {
		return nil, err
	}
	journals, err := db.JournalsSince(database, journal.DateKey(now.AddDate(0, 0, -insights.StreakLookbackDays)))
	if err != nil {
		return nil, err
	}

	return &InsightsOutput{Summary: insights.Week(moods, journals, now)}, nil
}
