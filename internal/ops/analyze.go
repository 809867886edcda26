package ops

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/fernapp/fern/internal/analysis"
	"github.com/fernapp/fern/internal/db"
	"github.com/fernapp/fern/internal/journal"
	"github.com/fernapp/fern/internal/mood"
)

// analyzeLookback bounds how much history is offered to the summarizer.
// The client trims further to its own record limits.
const analyzeLookback = 14 * 24 * time.Hour

// AnalyzeInput contains parameters for the Analyze operation.
type AnalyzeInput struct {
	Force bool // skip the cache and the 24h gap
}

// AnalyzeOutput contains the result of the Analyze operation.
type AnalyzeOutput struct {
	Result *analysis.Result `json:"result"`
	Cached bool             `json:"cached"`
}

// Analyze returns the AI analysis of recent moods and journals. A cached
// result is served until the scheduler decides a fresh one is due, unless
// Force is set.
func Analyze(ctx context.Context, database *sql.DB, client *analysis.Client, sched *analysis.Scheduler, input AnalyzeInput) (*AnalyzeOutput, error) {
	moods, journals, err := analysisHistory(database)
	if err != nil {
		return nil, err
	}

	cache := &analysis.Cache{DB: database}
	if !input.Force {
		if cached, ok := cache.Load(); ok {
			seedScheduler(sched, cached)
			if !sched.ShouldAnalyze(moods, journals) {
				return &AnalyzeOutput{Result: cached, Cached: true}, nil
			}
		}
	}

	result, err := client.Analyze(ctx, moods, journals)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	result.LastAnalyzed = now.Format(time.RFC3339)
	if err := cache.Store(result); err != nil {
		log.Printf("analysis cache: store failed: %v", err)
	}
	sched.MarkAnalyzed(now)

	return &AnalyzeOutput{Result: result}, nil
}

// seedScheduler restores the last-run time from the cached result. Short-lived
// invocations build a fresh scheduler each time; without the restore every run
// would look like the first and the refresh gap would never hold.
func seedScheduler(sched *analysis.Scheduler, cached *analysis.Result) {
	if !sched.LastAnalyzed().IsZero() || cached.LastAnalyzed == "" {
		return
	}
	if t, err := time.Parse(time.RFC3339, cached.LastAnalyzed); err == nil {
		sched.MarkAnalyzed(t)
	}
}

func analysisHistory(database *sql.DB) ([]mood.Entry, []journal.Entry, error) {
	now := time.Now()
	moods, err := db.MoodsSince(database, now.Add(-analyzeLookback))
	if err != nil {
		return nil, nil, err
	}
	journals, err := db.JournalsSince(database, journal.DateKey(now.Add(-analyzeLookback)))
	if err != nil {
		return nil, nil, err
	}
	return moods, journals, nil
}
