package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/fernapp/fern/internal/errors"
	"github.com/fernapp/fern/internal/journal"
	"github.com/fernapp/fern/internal/mood"
)

// InsertMood stores a new mood entry. Entries are immutable once created.
func InsertMood(db *sql.DB, e *mood.Entry) error {
	var label sql.NullString
	var confidence sql.NullFloat64
	if e.Emotion != nil {
		label = sql.NullString{String: e.Emotion.Label, Valid: true}
		confidence = sql.NullFloat64{Float64: e.Emotion.Confidence, Valid: true}
	}

	query := `
		INSERT INTO mood_entries (
			id, mood_name, mood_score, mood_icon, mood_description,
			emotion_label, emotion_confidence, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		e.ID, e.Mood.Name, e.Mood.Score, e.Mood.Icon, e.Mood.Description,
		label, confidence, e.Timestamp.Unix(),
	)
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// ListMoods returns mood entries newest-first, with the total count for
// pagination.
func ListMoods(db *sql.DB, limit, offset int) ([]mood.Entry, int, error) {
	var total int
	if err := db.QueryRow(`SELECT COUNT(*) FROM mood_entries`).Scan(&total); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	rows, err := db.Query(`
		SELECT id, mood_name, mood_score, mood_icon, mood_description,
			emotion_label, emotion_confidence, created_at
		FROM mood_entries
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, 0, errors.NewInternal(err)
	}
	defer rows.Close()

	entries, err := scanMoods(rows)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// MoodsSince returns mood entries at or after t, oldest-first. Used by the
// insight aggregations, which window by timestamp themselves.
func MoodsSince(db *sql.DB, t time.Time) ([]mood.Entry, error) {
	rows, err := db.Query(`
		SELECT id, mood_name, mood_score, mood_icon, mood_description,
			emotion_label, emotion_confidence, created_at
		FROM mood_entries
		WHERE created_at >= ?
		ORDER BY created_at ASC, id ASC
	`, t.Unix())
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	return scanMoods(rows)
}

// LatestMood returns the most recent mood entry, or nil when none exist.
func LatestMood(db *sql.DB) (*mood.Entry, error) {
	rows, err := db.Query(`
		SELECT id, mood_name, mood_score, mood_icon, mood_description,
			emotion_label, emotion_confidence, created_at
		FROM mood_entries
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	entries, err := scanMoods(rows)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

func scanMoods(rows *sql.Rows) ([]mood.Entry, error) {
	var entries []mood.Entry
	for rows.Next() {
		var e mood.Entry
		var icon, desc, label sql.NullString
		var confidence sql.NullFloat64
		var createdAt int64

		if err := rows.Scan(&e.ID, &e.Mood.Name, &e.Mood.Score, &icon, &desc,
			&label, &confidence, &createdAt); err != nil {
			return nil, errors.NewInternal(err)
		}
		e.Mood.Icon = icon.String
		e.Mood.Description = desc.String
		if label.Valid && label.String != "" {
			e.Emotion = &mood.Emotion{Label: label.String, Confidence: confidence.Float64}
		}
		e.Timestamp = time.Unix(createdAt, 0)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return entries, nil
}

// UpsertJournal writes the journal entry for its calendar day, overwriting
// any earlier same-day content.
func UpsertJournal(db *sql.DB, e *journal.Entry) error {
	query := `
		INSERT INTO journal_entries (date, content, word_count, char_count, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			content = excluded.content,
			word_count = excluded.word_count,
			char_count = excluded.char_count,
			updated_at = excluded.updated_at
	`
	_, err := db.Exec(query, e.Date, e.Content, e.WordCount, e.CharCount, e.UpdatedAt.Unix())
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// GetJournal returns the entry for a day key, or NOT_FOUND.
func GetJournal(db *sql.DB, date string) (*journal.Entry, error) {
	var e journal.Entry
	var updatedAt int64
	err := db.QueryRow(`
		SELECT date, content, word_count, char_count, updated_at
		FROM journal_entries
		WHERE date = ?
	`, date).Scan(&e.Date, &e.Content, &e.WordCount, &e.CharCount, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound("journal entry " + date)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	e.UpdatedAt = time.Unix(updatedAt, 0)
	return &e, nil
}

// ListJournals returns journal entries newest-first with the total count.
func ListJournals(db *sql.DB, limit, offset int) ([]journal.Entry, int, error) {
	var total int
	if err := db.QueryRow(`SELECT COUNT(*) FROM journal_entries`).Scan(&total); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	rows, err := db.Query(`
		SELECT date, content, word_count, char_count, updated_at
		FROM journal_entries
		ORDER BY date DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, 0, errors.NewInternal(err)
	}
	defer rows.Close()

	entries, err := scanJournals(rows)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// JournalsSince returns entries dated at or after the day key, oldest-first.
func JournalsSince(db *sql.DB, date string) ([]journal.Entry, error) {
	rows, err := db.Query(`
		SELECT date, content, word_count, char_count, updated_at
		FROM journal_entries
		WHERE date >= ?
		ORDER BY date ASC
	`, date)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	return scanJournals(rows)
}

func scanJournals(rows *sql.Rows) ([]journal.Entry, error) {
	var entries []journal.Entry
	for rows.Next() {
		var e journal.Entry
		var updatedAt int64
		if err := rows.Scan(&e.Date, &e.Content, &e.WordCount, &e.CharCount, &updatedAt); err != nil {
			return nil, errors.NewInternal(err)
		}
		e.UpdatedAt = time.Unix(updatedAt, 0)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return entries, nil
}

// GetProgress returns the completed task IDs for (userID, date), or an empty
// list when none have been saved.
func GetProgress(db *sql.DB, userID, date string) ([]string, error) {
	var idsJSON string
	err := db.QueryRow(`
		SELECT completed_ids_json FROM discovery_progress
		WHERE user_id = ? AND date = ?
	`, userID, date).Scan(&idsJSON)
	if err == sql.ErrNoRows {
		return []string{}, nil
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	var ids []string
	if err := json.Unmarshal([]byte(idsJSON), &ids); err != nil {
		return nil, errors.NewInternal(err)
	}
	return ids, nil
}

// PutProgress overwrites the completed task ID set for (userID, date).
// The full set is written every time, so the operation is idempotent.
func PutProgress(db *sql.DB, userID, date string, completedIDs []string) error {
	if completedIDs == nil {
		completedIDs = []string{}
	}
	data, err := json.Marshal(completedIDs)
	if err != nil {
		return errors.NewInternal(err)
	}

	query := `
		INSERT INTO discovery_progress (user_id, date, completed_ids_json, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, date) DO UPDATE SET
			completed_ids_json = excluded.completed_ids_json,
			updated_at = excluded.updated_at
	`
	if _, err := db.Exec(query, userID, date, string(data), time.Now().Unix()); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// GetSetting returns the value for key. ok is false when the key is absent.
func GetSetting(db *sql.DB, key string) (value string, ok bool, err error) {
	err = db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.NewInternal(err)
	}
	return value, true, nil
}

// SetSetting writes a settings key.
func SetSetting(db *sql.DB, key, value string) error {
	query := `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`
	if _, err := db.Exec(query, key, value); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// ProgressStore adapts the database to the discovery.ProgressStore interface
// used by the tracker's debounced saves.
type ProgressStore struct {
	DB *sql.DB
}

// FetchProgress implements discovery.ProgressStore.
func (s ProgressStore) FetchProgress(_ context.Context, userID, date string) ([]string, error) {
	return GetProgress(s.DB, userID, date)
}

// SaveProgress implements discovery.ProgressStore.
func (s ProgressStore) SaveProgress(_ context.Context, userID, date string, completedIDs []string) error {
	return PutProgress(s.DB, userID, date, completedIDs)
}
