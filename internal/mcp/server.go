// Package mcp exposes the operations as MCP tools over stdio.
package mcp

import (
	"database/sql"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/fernapp/fern/internal/config"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"mood_log": {
		def:     moodLogToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleMoodLog },
	},
	"mood_list": {
		def:     moodListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleMoodList },
	},
	"mood_from_journal": {
		def:     moodFromJournalToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleMoodFromJournal },
	},
	"journal_write": {
		def:     journalWriteToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleJournalWrite },
	},
	"journal_get": {
		def:     journalGetToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleJournalGet },
	},
	"journal_list": {
		def:     journalListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleJournalList },
	},
	"tasks_today": {
		def:     tasksTodayToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleTasksToday },
	},
	"task_toggle": {
		def:     taskToggleToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleTaskToggle },
	},
	"insights_week": {
		def:     insightsWeekToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleInsightsWeek },
	},
	"suggest_activities": {
		def:     suggestToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSuggest },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates a new MCP server with Fern tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration.
func NewServer(db *sql.DB, cfg *config.Config, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"fern",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(db, cfg)

	disabled := make(map[string]bool)
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(db *sql.DB, cfg *config.Config, version string) error {
	s := NewServer(db, cfg, version)
	return server.ServeStdio(s)
}
