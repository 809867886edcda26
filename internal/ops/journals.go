package ops

import (
	"database/sql"
	"strings"

	"github.com/fernapp/fern/internal/db"
	"github.com/fernapp/fern/internal/errors"
	"github.com/fernapp/fern/internal/journal"
)

// JournalsInput contains parameters for the Journals operation.
type JournalsInput struct {
	Limit  int // default: 20, max: 100
	Offset int // default: 0
}

// JournalsOutput contains the result of the Journals operation.
type JournalsOutput struct {
	Items      []journal.Entry `json:"items"`
	Pagination Pagination      `json:"pagination"`
}

// Journals lists journal entries, newest first, with pagination.
func Journals(database *sql.DB, input JournalsInput) (*JournalsOutput, error) {
	limit, offset := clampPage(input.Limit, input.Offset)

	items, total, err := db.ListJournals(database, limit, offset)
	if err != nil {
		return nil, err
	}

	return &JournalsOutput{
		Items: items,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: offset+len(items) < total,
			Total:   total,
		},
	}, nil
}

// JournalByDateInput contains parameters for the JournalByDate operation.
type JournalByDateInput struct {
	Date string // required, YYYY-MM-DD
}

// JournalByDateOutput contains the result of the JournalByDate operation.
type JournalByDateOutput struct {
	Entry journal.Entry `json:"entry"`
}

// JournalByDate fetches the journal entry for one date.
func JournalByDate(database *sql.DB, input JournalByDateInput) (*JournalByDateOutput, error) {
	date := strings.TrimSpace(input.Date)
	if !journal.ValidDateKey(date) {
		return nil, errors.NewInvalidRequest("date must be YYYY-MM-DD")
	}

	entry, err := db.GetJournal(database, date)
	if err != nil {
		return nil, err
	}
	return &JournalByDateOutput{Entry: *entry}, nil
}
