package ops

import (
	"database/sql"
	"testing"

	"github.com/fernapp/fern/internal/db"
	"github.com/fernapp/fern/internal/errors"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("db.Init failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func TestClampPage(t *testing.T) {
	limit, offset := clampPage(0, -5)
	if limit != DefaultListLimit || offset != 0 {
		t.Errorf("clampPage(0, -5) = (%d, %d)", limit, offset)
	}
	limit, _ = clampPage(500, 0)
	if limit != MaxListLimit {
		t.Errorf("limit = %d, want %d", limit, MaxListLimit)
	}
	limit, offset = clampPage(30, 10)
	if limit != 30 || offset != 10 {
		t.Errorf("clampPage(30, 10) = (%d, %d)", limit, offset)
	}
}

func TestLogMood(t *testing.T) {
	database := testDB(t)

	out, err := LogMood(database, LogMoodInput{Mood: "happy"})
	if err != nil {
		t.Fatalf("LogMood failed: %v", err)
	}
	if out.Entry.ID == "" {
		t.Error("expected generated ID")
	}
	if out.Entry.Mood.Name != "Happy" || out.Entry.Mood.Score != 8 {
		t.Errorf("entry mood = %+v", out.Entry.Mood)
	}
	if out.Bucket != "Happy" {
		t.Errorf("Bucket = %q, want Happy", out.Bucket)
	}
}

func TestLogMood_Validation(t *testing.T) {
	database := testDB(t)

	if _, err := LogMood(database, LogMoodInput{}); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("empty mood: err = %v, want INVALID_REQUEST", err)
	}
	if _, err := LogMood(database, LogMoodInput{Mood: "ecstatic"}); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("unknown mood: err = %v, want INVALID_REQUEST", err)
	}

	label := "fearful"
	if _, err := LogMood(database, LogMoodInput{Mood: "Anxious", EmotionLabel: &label}); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("label without confidence: err = %v, want INVALID_REQUEST", err)
	}

	bad := 1.5
	if _, err := LogMood(database, LogMoodInput{Mood: "Anxious", EmotionLabel: &label, EmotionConfidence: &bad}); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("confidence out of range: err = %v, want INVALID_REQUEST", err)
	}
}

func TestLogMood_EmotionBucketWins(t *testing.T) {
	database := testDB(t)

	label := "fearful"
	conf := 0.92
	out, err := LogMood(database, LogMoodInput{Mood: "Happy", EmotionLabel: &label, EmotionConfidence: &conf})
	if err != nil {
		t.Fatalf("LogMood failed: %v", err)
	}
	if out.Bucket != "Anxious" {
		t.Errorf("Bucket = %q, want Anxious (detected emotion wins)", out.Bucket)
	}
}

func TestLogMood_AppendOnly(t *testing.T) {
	database := testDB(t)

	for i := 0; i < 3; i++ {
		if _, err := LogMood(database, LogMoodInput{Mood: "Calm"}); err != nil {
			t.Fatalf("LogMood failed: %v", err)
		}
	}
	out, err := Moods(database, MoodsInput{})
	if err != nil {
		t.Fatalf("Moods failed: %v", err)
	}
	if out.Pagination.Total != 3 {
		t.Errorf("Total = %d, want 3", out.Pagination.Total)
	}
}

func TestMoods_Pagination(t *testing.T) {
	database := testDB(t)

	for i := 0; i < 5; i++ {
		if _, err := LogMood(database, LogMoodInput{Mood: "Happy"}); err != nil {
			t.Fatalf("LogMood failed: %v", err)
		}
	}

	out, err := Moods(database, MoodsInput{Limit: 2})
	if err != nil {
		t.Fatalf("Moods failed: %v", err)
	}
	if len(out.Items) != 2 {
		t.Errorf("len(Items) = %d, want 2", len(out.Items))
	}
	if !out.Pagination.HasMore {
		t.Error("HasMore = false, want true")
	}

	out, err = Moods(database, MoodsInput{Limit: 2, Offset: 4})
	if err != nil {
		t.Fatalf("Moods failed: %v", err)
	}
	if len(out.Items) != 1 || out.Pagination.HasMore {
		t.Errorf("last page: len = %d, HasMore = %v", len(out.Items), out.Pagination.HasMore)
	}
}

func TestWriteJournal_Overwrite(t *testing.T) {
	database := testDB(t)

	first, err := WriteJournal(database, WriteJournalInput{Date: "2026-08-30", Content: "morning draft"})
	if err != nil {
		t.Fatalf("WriteJournal failed: %v", err)
	}
	if first.Entry.WordCount != 2 {
		t.Errorf("WordCount = %d, want 2", first.Entry.WordCount)
	}

	_, err = WriteJournal(database, WriteJournalInput{Date: "2026-08-30", Content: "evening rewrite of the day"})
	if err != nil {
		t.Fatalf("WriteJournal overwrite failed: %v", err)
	}

	got, err := JournalByDate(database, JournalByDateInput{Date: "2026-08-30"})
	if err != nil {
		t.Fatalf("JournalByDate failed: %v", err)
	}
	if got.Entry.Content != "evening rewrite of the day" {
		t.Errorf("Content = %q", got.Entry.Content)
	}

	list, err := Journals(database, JournalsInput{})
	if err != nil {
		t.Fatalf("Journals failed: %v", err)
	}
	if list.Pagination.Total != 1 {
		t.Errorf("Total = %d, want 1 (overwrite, not append)", list.Pagination.Total)
	}
}

func TestWriteJournal_Validation(t *testing.T) {
	database := testDB(t)

	if _, err := WriteJournal(database, WriteJournalInput{Content: "   "}); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("blank content: err = %v, want INVALID_REQUEST", err)
	}
	if _, err := WriteJournal(database, WriteJournalInput{Date: "08/30/2026", Content: "x"}); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("bad date: err = %v, want INVALID_REQUEST", err)
	}
}

func TestJournalByDate_NotFound(t *testing.T) {
	database := testDB(t)

	_, err := JournalByDate(database, JournalByDateInput{Date: "2026-01-01"})
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
}
