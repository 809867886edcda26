package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

var moodLogToolDef = mcp.NewTool("mood_log",
	mcp.WithDescription("Record the current mood. Entries are append-only; logging twice in a day keeps both."),
	mcp.WithString("mood", mcp.Required(),
		mcp.Description("One of the preset mood names (Joyful, Happy, Calm, Focused, Neutral, Tired, Sad, Anxious, Angry)")),
	mcp.WithString("emotion_label",
		mcp.Description("Optional detected emotion label (happy, sad, angry, fearful, disgusted, surprised, neutral)")),
	mcp.WithNumber("emotion_confidence",
		mcp.Description("Detection confidence 0-1, required with emotion_label")),
)

var moodListToolDef = mcp.NewTool("mood_list",
	mcp.WithDescription("List recorded mood entries, newest first."),
	mcp.WithNumber("limit", mcp.Description("Max entries to return (default 20, max 100)")),
	mcp.WithNumber("offset", mcp.Description("Pagination offset (default 0)")),
)

var journalWriteToolDef = mcp.NewTool("journal_write",
	mcp.WithDescription("Create or replace the journal entry for a date. One entry per day; later writes overwrite."),
	mcp.WithString("content", mcp.Required(), mcp.Description("The journal text")),
	mcp.WithString("date", mcp.Description("Date as YYYY-MM-DD, defaults to today")),
)

var moodFromJournalToolDef = mcp.NewTool("mood_from_journal",
	mcp.WithDescription("Detect the dominant emotion in a date's journal entry and log it as a mood."),
	mcp.WithString("date", mcp.Description("Date as YYYY-MM-DD, defaults to today")),
)

var journalGetToolDef = mcp.NewTool("journal_get",
	mcp.WithDescription("Fetch the journal entry for one date."),
	mcp.WithString("date", mcp.Required(), mcp.Description("Date as YYYY-MM-DD")),
)

var journalListToolDef = mcp.NewTool("journal_list",
	mcp.WithDescription("List journal entries, newest first."),
	mcp.WithNumber("limit", mcp.Description("Max entries to return (default 20, max 100)")),
	mcp.WithNumber("offset", mcp.Description("Pagination offset (default 0)")),
)

var tasksTodayToolDef = mcp.NewTool("tasks_today",
	mcp.WithDescription("Get the daily wellbeing task list for a date, with completion progress. The list is deterministic for a given date and mood."),
	mcp.WithString("date", mcp.Description("Date as YYYY-MM-DD, defaults to today")),
)

var taskToggleToolDef = mcp.NewTool("task_toggle",
	mcp.WithDescription("Flip the completion state of one daily task."),
	mcp.WithString("task_id", mcp.Required(), mcp.Description("A task ID from tasks_today")),
	mcp.WithString("date", mcp.Description("Date as YYYY-MM-DD, defaults to today")),
)

var insightsWeekToolDef = mcp.NewTool("insights_week",
	mcp.WithDescription("Weekly summary computed locally: average mood score, trend vs previous week, journaling streak, top journal topics, words written, and emotion spectrum."),
)

var suggestToolDef = mcp.NewTool("suggest_activities",
	mcp.WithDescription("Up to two quick activity suggestions for the current mood. Picks vary between calls."),
)
