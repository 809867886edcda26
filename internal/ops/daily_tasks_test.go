package ops

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/fernapp/fern/internal/config"
	"github.com/fernapp/fern/internal/errors"
	"github.com/fernapp/fern/internal/journal"
)

func TestDailyTasks_NoMood(t *testing.T) {
	database := testDB(t)
	cfg := config.DefaultConfig()

	out, err := DailyTasks(context.Background(), database, cfg, DailyTasksInput{Date: "2026-08-30"})
	if err != nil {
		t.Fatalf("DailyTasks failed: %v", err)
	}
	if out.Mood != "" {
		t.Errorf("Mood = %q, want empty", out.Mood)
	}
	// Two general recommendations plus the two fixed general tasks.
	if len(out.Tasks) != 4 {
		t.Fatalf("len(Tasks) = %d, want 4", len(out.Tasks))
	}
	if out.Progress.TotalCount != 4 || out.Progress.CompletedCount != 0 {
		t.Errorf("Progress = %+v", out.Progress)
	}
}

func TestDailyTasks_WithTodaysMood(t *testing.T) {
	database := testDB(t)
	cfg := config.DefaultConfig()

	if _, err := LogMood(database, LogMoodInput{Mood: "Anxious"}); err != nil {
		t.Fatalf("LogMood failed: %v", err)
	}

	today := journal.DateKey(time.Now())
	out, err := DailyTasks(context.Background(), database, cfg, DailyTasksInput{Date: today})
	if err != nil {
		t.Fatalf("DailyTasks failed: %v", err)
	}
	if out.Mood != "Anxious" {
		t.Errorf("Mood = %q, want Anxious", out.Mood)
	}
	if len(out.Tasks) != 7 {
		t.Fatalf("len(Tasks) = %d, want 7", len(out.Tasks))
	}
}

func TestDailyTasks_MoodFromAnotherDayIgnored(t *testing.T) {
	database := testDB(t)
	cfg := config.DefaultConfig()

	if _, err := LogMood(database, LogMoodInput{Mood: "Sad"}); err != nil {
		t.Fatalf("LogMood failed: %v", err)
	}

	// A date the logged mood does not belong to.
	out, err := DailyTasks(context.Background(), database, cfg, DailyTasksInput{Date: "2020-01-15"})
	if err != nil {
		t.Fatalf("DailyTasks failed: %v", err)
	}
	if out.Mood != "" {
		t.Errorf("Mood = %q, want empty for a past date", out.Mood)
	}
	if len(out.Tasks) != 4 {
		t.Errorf("len(Tasks) = %d, want 4", len(out.Tasks))
	}
}

func TestDailyTasks_Deterministic(t *testing.T) {
	database := testDB(t)
	cfg := config.DefaultConfig()

	a, err := DailyTasks(context.Background(), database, cfg, DailyTasksInput{Date: "2026-08-30"})
	if err != nil {
		t.Fatalf("DailyTasks failed: %v", err)
	}
	b, err := DailyTasks(context.Background(), database, cfg, DailyTasksInput{Date: "2026-08-30"})
	if err != nil {
		t.Fatalf("DailyTasks failed: %v", err)
	}
	if !reflect.DeepEqual(a.Tasks, b.Tasks) {
		t.Error("same date produced different task lists")
	}
}

func TestToggleTask_PersistsAcrossCalls(t *testing.T) {
	database := testDB(t)
	cfg := config.DefaultConfig()
	ctx := context.Background()

	date := "2026-08-30"
	list, err := DailyTasks(ctx, database, cfg, DailyTasksInput{Date: date})
	if err != nil {
		t.Fatalf("DailyTasks failed: %v", err)
	}
	target := list.Tasks[0].ID

	out, err := ToggleTask(ctx, database, cfg, ToggleTaskInput{TaskID: target, Date: date})
	if err != nil {
		t.Fatalf("ToggleTask failed: %v", err)
	}
	if !out.Task.IsCompleted {
		t.Error("toggled task not marked completed")
	}
	if out.Progress.CompletedCount != 1 {
		t.Errorf("CompletedCount = %d, want 1", out.Progress.CompletedCount)
	}

	// A fresh read sees the persisted completion.
	list, err = DailyTasks(ctx, database, cfg, DailyTasksInput{Date: date})
	if err != nil {
		t.Fatalf("DailyTasks failed: %v", err)
	}
	var found bool
	for _, task := range list.Tasks {
		if task.ID == target {
			found = true
			if !task.IsCompleted {
				t.Error("completion did not survive a reload")
			}
		}
	}
	if !found {
		t.Fatalf("task %s missing after reload", target)
	}
	if list.Progress.CompletedCount != 1 {
		t.Errorf("reloaded CompletedCount = %d, want 1", list.Progress.CompletedCount)
	}
}

func TestToggleTask_UnknownID(t *testing.T) {
	database := testDB(t)
	cfg := config.DefaultConfig()

	_, err := ToggleTask(context.Background(), database, cfg, ToggleTaskInput{TaskID: "mood-nope", Date: "2026-08-30"})
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
}

func TestToggleTask_Validation(t *testing.T) {
	database := testDB(t)
	cfg := config.DefaultConfig()

	_, err := ToggleTask(context.Background(), database, cfg, ToggleTaskInput{})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("err = %v, want INVALID_REQUEST", err)
	}
}

func TestSuggest(t *testing.T) {
	database := testDB(t)

	out, err := Suggest(database)
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	if len(out.Activities) == 0 || len(out.Activities) > 2 {
		t.Errorf("len(Activities) = %d, want 1-2", len(out.Activities))
	}

	if _, err := LogMood(database, LogMoodInput{Mood: "Tired"}); err != nil {
		t.Fatalf("LogMood failed: %v", err)
	}
	out, err = Suggest(database)
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	if out.Bucket != "Tired" {
		t.Errorf("Bucket = %q, want Tired", out.Bucket)
	}
	seen := map[string]bool{}
	for _, a := range out.Activities {
		if seen[a.ID] {
			t.Errorf("duplicate suggestion %s", a.ID)
		}
		seen[a.ID] = true
	}
}
