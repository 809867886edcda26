package ops

import (
	"database/sql"
	"strings"
	"time"

	"github.com/fernapp/fern/internal/db"
	"github.com/fernapp/fern/internal/emotion"
	"github.com/fernapp/fern/internal/errors"
	"github.com/fernapp/fern/internal/journal"
	"github.com/fernapp/fern/internal/mood"
)

// LogMoodFromJournalInput contains parameters for the LogMoodFromJournal operation.
type LogMoodFromJournalInput struct {
	Date string // optional, defaults to today (YYYY-MM-DD)
}

// LogMoodFromJournalOutput contains the result of the LogMoodFromJournal operation.
type LogMoodFromJournalOutput struct {
	Entry    mood.Entry      `json:"entry"`
	Bucket   string          `json:"bucket"`
	Emotions []emotion.Score `json:"emotions"`
}

// LogMoodFromJournal detects the dominant emotion in a date's journal entry
// and records it as a mood, so a written entry can stand in for an explicit
// mood log. The full detection breakdown is returned alongside the entry.
func LogMoodFromJournal(database *sql.DB, input LogMoodFromJournalInput) (*LogMoodFromJournalOutput, error) {
	date := strings.TrimSpace(input.Date)
	if date == "" {
		date = journal.DateKey(time.Now())
	}
	if !journal.ValidDateKey(date) {
		return nil, errors.NewInvalidRequest("date must be YYYY-MM-DD")
	}

	page, err := db.GetJournal(database, date)
	if err != nil {
		return nil, err
	}

	scores := emotion.Analyze(page.Content)
	if len(scores) == 0 {
		return nil, errors.NewInvalidRequest("journal entry has no analyzable text")
	}
	top := scores[0]

	// An emotion with no mood of its own reads as Neutral, same as the
	// bucket table's fallback direction.
	opt, ok := mood.OptionForEmotion(top.Label)
	if !ok {
		opt, _ = mood.OptionByName("Neutral")
	}

	entry := mood.Entry{
		Mood:      opt,
		Emotion:   &mood.Emotion{Label: top.Label, Confidence: top.Confidence},
		Timestamp: time.Now(),
	}
	id, err := newMoodID(entry.Timestamp)
	if err != nil {
		return nil, err
	}
	entry.ID = id

	if err := db.InsertMood(database, &entry); err != nil {
		return nil, err
	}

	return &LogMoodFromJournalOutput{
		Entry:    entry,
		Bucket:   mood.Bucket(entry),
		Emotions: scores,
	}, nil
}
