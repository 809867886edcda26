package ops

import (
	"database/sql"
	"strings"
	"time"

	"github.com/fernapp/fern/internal/db"
	"github.com/fernapp/fern/internal/errors"
	"github.com/fernapp/fern/internal/journal"
)

// WriteJournalInput contains parameters for the WriteJournal operation.
type WriteJournalInput struct {
	Date    string // optional, defaults to today (YYYY-MM-DD)
	Content string // required
}

// WriteJournalOutput contains the result of the WriteJournal operation.
type WriteJournalOutput struct {
	Entry journal.Entry `json:"entry"`
}

// WriteJournal creates or replaces the journal entry for a date. One entry
// per day; a second write for the same date overwrites the first.
func WriteJournal(database *sql.DB, input WriteJournalInput) (*WriteJournalOutput, error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, errors.NewInvalidRequest("content is required")
	}

	date := strings.TrimSpace(input.Date)
	if date == "" {
		date = journal.DateKey(time.Now())
	}
	if !journal.ValidDateKey(date) {
		return nil, errors.NewInvalidRequest("date must be YYYY-MM-DD")
	}

	entry := journal.New(date, input.Content, time.Now())
	if err := db.UpsertJournal(database, &entry); err != nil {
		return nil, err
	}

	return &WriteJournalOutput{Entry: entry}, nil
}
