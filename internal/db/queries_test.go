package db

import (
	"context"
	"database/sql"
	"reflect"
	"testing"
	"time"

	"github.com/fernapp/fern/internal/errors"
	"github.com/fernapp/fern/internal/journal"
	"github.com/fernapp/fern/internal/mood"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func TestInsertAndListMoods(t *testing.T) {
	database := testDB(t)

	base := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	entries := []mood.Entry{
		{ID: "01A", Mood: mood.Option{Name: "Happy", Score: 8, Icon: "sentiment_satisfied"}, Timestamp: base},
		{ID: "01B", Mood: mood.Option{Name: "Anxious", Score: 2}, Emotion: &mood.Emotion{Label: "fearful", Confidence: 0.7}, Timestamp: base.Add(time.Hour)},
	}
	for i := range entries {
		if err := InsertMood(database, &entries[i]); err != nil {
			t.Fatalf("InsertMood failed: %v", err)
		}
	}

	got, total, err := ListMoods(database, 20, 0)
	if err != nil {
		t.Fatalf("ListMoods failed: %v", err)
	}
	if total != 2 {
		t.Errorf("total = %d, want 2", total)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	// Newest first
	if got[0].ID != "01B" {
		t.Errorf("got[0].ID = %q, want 01B", got[0].ID)
	}
	if got[0].Emotion == nil || got[0].Emotion.Label != "fearful" {
		t.Errorf("Emotion = %+v, want fearful", got[0].Emotion)
	}
	if got[1].Emotion != nil {
		t.Errorf("got[1].Emotion = %+v, want nil", got[1].Emotion)
	}
}

func TestLatestMood(t *testing.T) {
	database := testDB(t)

	if latest, err := LatestMood(database); err != nil || latest != nil {
		t.Fatalf("LatestMood on empty db = (%v, %v), want (nil, nil)", latest, err)
	}

	e := mood.Entry{ID: "01C", Mood: mood.Option{Name: "Calm", Score: 7}, Timestamp: time.Now()}
	if err := InsertMood(database, &e); err != nil {
		t.Fatalf("InsertMood failed: %v", err)
	}

	latest, err := LatestMood(database)
	if err != nil {
		t.Fatalf("LatestMood failed: %v", err)
	}
	if latest == nil || latest.ID != "01C" {
		t.Errorf("latest = %+v, want 01C", latest)
	}
}

func TestMoodsSince(t *testing.T) {
	database := testDB(t)

	base := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"01D", "01E", "01F"} {
		e := mood.Entry{ID: id, Mood: mood.Option{Name: "Neutral", Score: 5}, Timestamp: base.AddDate(0, 0, i*5)}
		if err := InsertMood(database, &e); err != nil {
			t.Fatalf("InsertMood failed: %v", err)
		}
	}

	got, err := MoodsSince(database, base.AddDate(0, 0, 3))
	if err != nil {
		t.Fatalf("MoodsSince failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	// Oldest first
	if got[0].ID != "01E" || got[1].ID != "01F" {
		t.Errorf("order = [%s %s], want [01E 01F]", got[0].ID, got[1].ID)
	}
}

func TestUpsertJournal_OverwritesSameDay(t *testing.T) {
	database := testDB(t)

	first := journal.New("2026-08-31", "morning draft", time.Now())
	if err := UpsertJournal(database, &first); err != nil {
		t.Fatalf("UpsertJournal failed: %v", err)
	}

	second := journal.New("2026-08-31", "evening rewrite with more words", time.Now())
	if err := UpsertJournal(database, &second); err != nil {
		t.Fatalf("UpsertJournal failed: %v", err)
	}

	got, err := GetJournal(database, "2026-08-31")
	if err != nil {
		t.Fatalf("GetJournal failed: %v", err)
	}
	if got.Content != "evening rewrite with more words" {
		t.Errorf("Content = %q, want the rewrite", got.Content)
	}
	if got.WordCount != 5 {
		t.Errorf("WordCount = %d, want 5", got.WordCount)
	}

	_, total, err := ListJournals(database, 20, 0)
	if err != nil {
		t.Fatalf("ListJournals failed: %v", err)
	}
	if total != 1 {
		t.Errorf("total = %d, want 1 (one entry per day)", total)
	}
}

func TestGetJournal_NotFound(t *testing.T) {
	database := testDB(t)

	_, err := GetJournal(database, "2026-01-01")
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
}

func TestJournalsSince(t *testing.T) {
	database := testDB(t)

	for _, date := range []string{"2026-08-25", "2026-08-28", "2026-08-31"} {
		e := journal.New(date, "entry for "+date, time.Now())
		if err := UpsertJournal(database, &e); err != nil {
			t.Fatalf("UpsertJournal failed: %v", err)
		}
	}

	got, err := JournalsSince(database, "2026-08-27")
	if err != nil {
		t.Fatalf("JournalsSince failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Date != "2026-08-28" {
		t.Errorf("got[0].Date = %q, want 2026-08-28 (oldest first)", got[0].Date)
	}
}

func TestProgress_RoundTrip(t *testing.T) {
	database := testDB(t)

	// Absent progress is an empty list, not an error
	ids, err := GetProgress(database, "user-1", "2026-08-31")
	if err != nil {
		t.Fatalf("GetProgress failed: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("ids = %v, want empty", ids)
	}

	want := []string{"mood-box-breathing", "hydrate-glass"}
	if err := PutProgress(database, "user-1", "2026-08-31", want); err != nil {
		t.Fatalf("PutProgress failed: %v", err)
	}

	got, err := GetProgress(database, "user-1", "2026-08-31")
	if err != nil {
		t.Fatalf("GetProgress failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ids = %v, want %v", got, want)
	}

	// Overwrite semantics: second save replaces, not appends
	if err := PutProgress(database, "user-1", "2026-08-31", []string{"digital-detox"}); err != nil {
		t.Fatalf("PutProgress failed: %v", err)
	}
	got, _ = GetProgress(database, "user-1", "2026-08-31")
	if !reflect.DeepEqual(got, []string{"digital-detox"}) {
		t.Errorf("ids = %v, want [digital-detox]", got)
	}
}

func TestProgress_KeyedPerUserAndDay(t *testing.T) {
	database := testDB(t)

	PutProgress(database, "user-1", "2026-08-30", []string{"a"})
	PutProgress(database, "user-1", "2026-08-31", []string{"b"})
	PutProgress(database, "user-2", "2026-08-31", []string{"c"})

	got, _ := GetProgress(database, "user-1", "2026-08-31")
	if !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("ids = %v, want [b]", got)
	}
}

func TestProgressStore_Adapter(t *testing.T) {
	database := testDB(t)
	store := ProgressStore{DB: database}

	ctx := context.Background()
	if err := store.SaveProgress(ctx, "user-1", "2026-08-31", []string{"x"}); err != nil {
		t.Fatalf("SaveProgress failed: %v", err)
	}
	got, err := store.FetchProgress(ctx, "user-1", "2026-08-31")
	if err != nil {
		t.Fatalf("FetchProgress failed: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"x"}) {
		t.Errorf("ids = %v, want [x]", got)
	}
}

func TestSettings(t *testing.T) {
	database := testDB(t)

	if _, ok, err := GetSetting(database, "analysis"); err != nil || ok {
		t.Fatalf("GetSetting on empty = (ok=%v, err=%v), want absent", ok, err)
	}

	if err := SetSetting(database, "analysis", `{"weekly_summary":"ok"}`); err != nil {
		t.Fatalf("SetSetting failed: %v", err)
	}
	v, ok, err := GetSetting(database, "analysis")
	if err != nil || !ok {
		t.Fatalf("GetSetting = (ok=%v, err=%v), want present", ok, err)
	}
	if v != `{"weekly_summary":"ok"}` {
		t.Errorf("value = %q", v)
	}

	// Overwrite
	if err := SetSetting(database, "analysis", "v2"); err != nil {
		t.Fatalf("SetSetting failed: %v", err)
	}
	v, _, _ = GetSetting(database, "analysis")
	if v != "v2" {
		t.Errorf("value = %q, want v2", v)
	}
}
