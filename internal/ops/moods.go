package ops

import (
	"database/sql"

	"github.com/fernapp/fern/internal/db"
	"github.com/fernapp/fern/internal/journal"
	"github.com/fernapp/fern/internal/mood"
)

// MoodsInput contains parameters for the Moods operation.
type MoodsInput struct {
	Limit  int // default: 20, max: 100
	Offset int // default: 0
}

// MoodsOutput contains the result of the Moods operation.
type MoodsOutput struct {
	Items      []mood.Entry `json:"items"`
	Pagination Pagination   `json:"pagination"`
}

// Moods lists mood entries, newest first, with pagination.
func Moods(database *sql.DB, input MoodsInput) (*MoodsOutput, error) {
	limit, offset := clampPage(input.Limit, input.Offset)

	items, total, err := db.ListMoods(database, limit, offset)
	if err != nil {
		return nil, err
	}

	return &MoodsOutput{
		Items: items,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: offset+len(items) < total,
			Total:   total,
		},
	}, nil
}

// CurrentMood returns the most recent mood entry logged on the given date,
// or nil when none was logged that day. Yesterday's mood never drives
// today's recommendations.
func CurrentMood(database *sql.DB, date string) (*mood.Entry, error) {
	latest, err := db.LatestMood(database)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, nil
	}
	if journal.DateKey(latest.Timestamp) != date {
		return nil, nil
	}
	return latest, nil
}
