package main

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/fernapp/fern/internal/config"
	"github.com/fernapp/fern/internal/db"
	"github.com/fernapp/fern/internal/ops"
)

// setupTestDB creates a temporary database for testing.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("failed to init test db: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

// runCLI runs the app with args and returns captured stdout.
func runCLI(t *testing.T, database *sql.DB, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	app := newCLIApp(database, cfg)

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := app.Run(append([]string{"fern"}, args...))

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	os.Stdout = oldStdout

	return buf.String(), err
}

// runCLIWithStdin runs the app with args and piped stdin content.
func runCLIWithStdin(t *testing.T, database *sql.DB, cfg *config.Config, stdin string, args ...string) (string, error) {
	t.Helper()
	oldStdin := os.Stdin
	stdinR, stdinW, _ := os.Pipe()
	os.Stdin = stdinR
	go func() {
		_, _ = stdinW.WriteString(stdin)
		stdinW.Close()
	}()
	defer func() { os.Stdin = oldStdin }()

	return runCLI(t, database, cfg, args...)
}

func TestCLILog(t *testing.T) {
	database := setupTestDB(t)
	cfg := config.DefaultConfig()

	out, err := runCLI(t, database, cfg, "log", "Happy")
	if err != nil {
		t.Fatalf("log command failed: %v", err)
	}

	var output ops.LogMoodOutput
	if err := json.Unmarshal([]byte(out), &output); err != nil {
		t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
	}
	if output.Entry.ID == "" {
		t.Error("expected non-empty ID")
	}
	if output.Bucket != "Happy" {
		t.Errorf("bucket = %q, want Happy", output.Bucket)
	}
}

func TestCLILog_UnknownMood(t *testing.T) {
	database := setupTestDB(t)
	cfg := config.DefaultConfig()

	_, err := runCLI(t, database, cfg, "log", "ecstatic")
	if err == nil {
		t.Fatal("expected error for unknown mood")
	}
	if !strings.Contains(err.Error(), "INVALID_REQUEST") {
		t.Errorf("err = %v, want INVALID_REQUEST code", err)
	}
}

func TestCLIDetect(t *testing.T) {
	database := setupTestDB(t)
	cfg := config.DefaultConfig()

	if _, err := runCLIWithStdin(t, database, cfg,
		"felt anxious and overwhelmed all afternoon", "journal", "--date", "2026-08-30"); err != nil {
		t.Fatalf("journal command failed: %v", err)
	}

	out, err := runCLI(t, database, cfg, "detect", "--date", "2026-08-30")
	if err != nil {
		t.Fatalf("detect command failed: %v", err)
	}

	var output ops.LogMoodFromJournalOutput
	if err := json.Unmarshal([]byte(out), &output); err != nil {
		t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
	}
	if output.Bucket != "Anxious" {
		t.Errorf("bucket = %q, want Anxious", output.Bucket)
	}
	if output.Entry.Emotion == nil || output.Entry.Emotion.Label != "fearful" {
		t.Errorf("emotion = %+v, want fearful", output.Entry.Emotion)
	}
}

func TestCLIDetect_NoEntry(t *testing.T) {
	database := setupTestDB(t)
	cfg := config.DefaultConfig()

	_, err := runCLI(t, database, cfg, "detect", "--date", "2026-01-01")
	if err == nil {
		t.Fatal("expected error without a journal entry")
	}
	if !strings.Contains(err.Error(), "NOT_FOUND") {
		t.Errorf("err = %v, want NOT_FOUND code", err)
	}
}

func TestCLIMoods(t *testing.T) {
	database := setupTestDB(t)
	cfg := config.DefaultConfig()

	for _, m := range []string{"Happy", "Calm"} {
		if _, err := runCLI(t, database, cfg, "log", m); err != nil {
			t.Fatalf("log failed: %v", err)
		}
	}

	out, err := runCLI(t, database, cfg, "moods", "--limit", "1")
	if err != nil {
		t.Fatalf("moods command failed: %v", err)
	}

	var output ops.MoodsOutput
	if err := json.Unmarshal([]byte(out), &output); err != nil {
		t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
	}
	if len(output.Items) != 1 {
		t.Errorf("len(Items) = %d, want 1", len(output.Items))
	}
	if output.Items[0].Mood.Name != "Calm" {
		t.Errorf("newest mood = %q, want Calm", output.Items[0].Mood.Name)
	}
	if !output.Pagination.HasMore {
		t.Error("HasMore = false, want true")
	}
}

func TestCLIJournalAndRead(t *testing.T) {
	database := setupTestDB(t)
	cfg := config.DefaultConfig()

	out, err := runCLIWithStdin(t, database, cfg, "a quiet day in the garden",
		"journal", "--date", "2026-08-30")
	if err != nil {
		t.Fatalf("journal command failed: %v", err)
	}

	var written ops.WriteJournalOutput
	if err := json.Unmarshal([]byte(out), &written); err != nil {
		t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
	}
	if written.Entry.WordCount != 6 {
		t.Errorf("WordCount = %d, want 6", written.Entry.WordCount)
	}

	out, err = runCLI(t, database, cfg, "read", "2026-08-30")
	if err != nil {
		t.Fatalf("read command failed: %v", err)
	}
	var read ops.JournalByDateOutput
	if err := json.Unmarshal([]byte(out), &read); err != nil {
		t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
	}
	if read.Entry.Content != "a quiet day in the garden" {
		t.Errorf("Content = %q", read.Entry.Content)
	}
}

func TestCLIJournal_NoStdin(t *testing.T) {
	database := setupTestDB(t)
	cfg := config.DefaultConfig()

	// stdin is a pipe under 'go test', so simulate an empty pipe
	_, err := runCLIWithStdin(t, database, cfg, "", "journal")
	if err == nil {
		t.Fatal("expected error for empty content")
	}
}

func TestCLITasksAndToggle(t *testing.T) {
	database := setupTestDB(t)
	cfg := config.DefaultConfig()

	out, err := runCLI(t, database, cfg, "tasks", "--date", "2026-08-30")
	if err != nil {
		t.Fatalf("tasks command failed: %v", err)
	}
	var tasks ops.DailyTasksOutput
	if err := json.Unmarshal([]byte(out), &tasks); err != nil {
		t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
	}
	if len(tasks.Tasks) == 0 {
		t.Fatal("no tasks returned")
	}

	out, err = runCLI(t, database, cfg, "toggle", "--date", "2026-08-30", tasks.Tasks[0].ID)
	if err != nil {
		t.Fatalf("toggle command failed: %v", err)
	}
	var toggled ops.ToggleTaskOutput
	if err := json.Unmarshal([]byte(out), &toggled); err != nil {
		t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
	}
	if !toggled.Task.IsCompleted {
		t.Error("task not marked completed")
	}
	if toggled.Progress.CompletedCount != 1 {
		t.Errorf("CompletedCount = %d, want 1", toggled.Progress.CompletedCount)
	}
}

func TestCLIInsights(t *testing.T) {
	database := setupTestDB(t)
	cfg := config.DefaultConfig()

	out, err := runCLI(t, database, cfg, "insights")
	if err != nil {
		t.Fatalf("insights command failed: %v", err)
	}
	var output ops.InsightsOutput
	if err := json.Unmarshal([]byte(out), &output); err != nil {
		t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
	}
}

func TestCLISuggest(t *testing.T) {
	database := setupTestDB(t)
	cfg := config.DefaultConfig()

	out, err := runCLI(t, database, cfg, "suggest")
	if err != nil {
		t.Fatalf("suggest command failed: %v", err)
	}
	var output ops.SuggestOutput
	if err := json.Unmarshal([]byte(out), &output); err != nil {
		t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
	}
	if len(output.Activities) == 0 {
		t.Error("expected at least one suggestion")
	}
}

func TestIsCLIMode(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"fern", "log"}
	if !isCLIMode() {
		t.Error("log should be CLI mode")
	}

	os.Args = []string{"fern", "--help"}
	if !isCLIMode() {
		t.Error("--help should be CLI mode")
	}

	os.Args = []string{"fern"}
	if isCLIMode() {
		t.Error("no args should not be CLI mode")
	}

	os.Args = []string{"fern", "bogus"}
	if isCLIMode() {
		t.Error("unknown arg should not be CLI mode")
	}
}
