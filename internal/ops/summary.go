package ops

import (
	"context"
	"database/sql"

	"github.com/fernapp/fern/internal/analysis"
)

// SummaryOutput contains the result of the Summary operation.
type SummaryOutput struct {
	Summary string `json:"summary"`
}

// Summary asks the AI service for a short plain-text weekly summary. It is
// never cached; callers wanting the cached detailed analysis use Analyze.
func Summary(ctx context.Context, database *sql.DB, client *analysis.Client) (*SummaryOutput, error) {
	moods, journals, err := analysisHistory(database)
	if err != nil {
		return nil, err
	}

	text, err := client.QuickSummary(ctx, moods, journals)
	if err != nil {
		return nil, err
	}
	return &SummaryOutput{Summary: text}, nil
}
