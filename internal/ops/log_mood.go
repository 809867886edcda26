package ops

import (
	"crypto/rand"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/fernapp/fern/internal/db"
	"github.com/fernapp/fern/internal/errors"
	"github.com/fernapp/fern/internal/mood"
)

// LogMoodInput contains parameters for the LogMood operation.
type LogMoodInput struct {
	Mood              string   // required, one of the preset mood names
	EmotionLabel      *string  // optional detected emotion
	EmotionConfidence *float64 // required when EmotionLabel is set, 0-1
}

// LogMoodOutput contains the result of the LogMood operation.
type LogMoodOutput struct {
	Entry  mood.Entry `json:"entry"`
	Bucket string     `json:"bucket"`
}

// LogMood records a new mood entry. Entries are append-only; logging twice
// in a day keeps both.
func LogMood(database *sql.DB, input LogMoodInput) (*LogMoodOutput, error) {
	name := strings.TrimSpace(input.Mood)
	if name == "" {
		return nil, errors.NewInvalidRequest("mood is required")
	}
	opt, ok := mood.OptionByName(name)
	if !ok {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("unknown mood %q", name))
	}

	entry := mood.Entry{
		Mood:      opt,
		Timestamp: time.Now(),
	}

	if input.EmotionLabel != nil {
		label := strings.TrimSpace(strings.ToLower(*input.EmotionLabel))
		if label == "" {
			return nil, errors.NewInvalidRequest("emotion label must not be empty")
		}
		if input.EmotionConfidence == nil {
			return nil, errors.NewInvalidRequest("emotion confidence is required with an emotion label")
		}
		conf := *input.EmotionConfidence
		if conf < 0 || conf > 1 {
			return nil, errors.NewInvalidRequest("emotion confidence must be between 0 and 1")
		}
		entry.Emotion = &mood.Emotion{Label: label, Confidence: conf}
	}

	id, err := newMoodID(entry.Timestamp)
	if err != nil {
		return nil, err
	}
	entry.ID = id

	if err := db.InsertMood(database, &entry); err != nil {
		return nil, err
	}

	return &LogMoodOutput{
		Entry:  entry,
		Bucket: mood.Bucket(entry),
	}, nil
}

// newMoodID mints a time-ordered entry ID.
func newMoodID(ts time.Time) (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(ts), entropy)
	if err != nil {
		return "", errors.NewInternal(err)
	}
	return id.String(), nil
}
