package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/fernapp/fern/internal/analysis"
	"github.com/fernapp/fern/internal/config"
	"github.com/fernapp/fern/internal/errors"
	"github.com/fernapp/fern/internal/ops"
	"github.com/fernapp/fern/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(db *sql.DB, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "fern",
		Usage:   "Local mood and journal companion",
		Version: Version,
		Commands: []*cli.Command{
			logCmd(db),
			detectCmd(db),
			moodsCmd(db),
			journalCmd(db),
			journalsCmd(db),
			readCmd(db),
			tasksCmd(db, cfg),
			toggleCmd(db, cfg),
			suggestCmd(db),
			insightsCmd(db),
			analyzeCmd(db, cfg),
			summaryCmd(db, cfg),
			serveCmd(db, cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// logCmd creates the log command.
func logCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "log",
		Usage:     "Record the current mood",
		ArgsUsage: "<mood>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "emotion", Aliases: []string{"e"}, Usage: "Detected emotion label"},
			&cli.Float64Flag{Name: "confidence", Aliases: []string{"c"}, Usage: "Detection confidence 0-1"},
		},
		Action: func(c *cli.Context) error {
			input := ops.LogMoodInput{Mood: c.Args().First()}
			if label := c.String("emotion"); label != "" {
				input.EmotionLabel = &label
				conf := c.Float64("confidence")
				input.EmotionConfidence = &conf
			}

			output, err := ops.LogMood(db, input)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// detectCmd creates the detect command.
func detectCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "detect",
		Usage: "Detect the mood from a journal entry and log it",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "date", Aliases: []string{"d"}, Usage: "Date as YYYY-MM-DD (defaults to today)"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.LogMoodFromJournal(db, ops.LogMoodFromJournalInput{
				Date: c.String("date"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// moodsCmd creates the moods command.
func moodsCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "moods",
		Usage: "List recorded moods, newest first",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: ops.DefaultListLimit, Usage: "Max entries"},
			&cli.IntFlag{Name: "offset", Usage: "Pagination offset"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Moods(db, ops.MoodsInput{
				Limit:  c.Int("limit"),
				Offset: c.Int("offset"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// journalCmd creates the journal command.
func journalCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "journal",
		Usage: "Write today's journal entry (reads content from stdin)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "date", Aliases: []string{"d"}, Usage: "Date as YYYY-MM-DD (defaults to today)"},
		},
		Action: func(c *cli.Context) error {
			if !stdinHasData() {
				return outputError(errors.NewInvalidRequest("content must be piped via stdin"))
			}
			content, err := readStdin()
			if err != nil {
				return outputError(errors.NewInternal(err))
			}

			output, err := ops.WriteJournal(db, ops.WriteJournalInput{
				Date:    c.String("date"),
				Content: content,
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// journalsCmd creates the journals command.
func journalsCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "journals",
		Usage: "List journal entries, newest first",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: ops.DefaultListLimit, Usage: "Max entries"},
			&cli.IntFlag{Name: "offset", Usage: "Pagination offset"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Journals(db, ops.JournalsInput{
				Limit:  c.Int("limit"),
				Offset: c.Int("offset"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// readCmd creates the read command.
func readCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "read",
		Usage:     "Read the journal entry for a date",
		ArgsUsage: "<date>",
		Action: func(c *cli.Context) error {
			output, err := ops.JournalByDate(db, ops.JournalByDateInput{Date: c.Args().First()})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// tasksCmd creates the tasks command.
func tasksCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "tasks",
		Usage: "Show the daily task list with completion progress",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "date", Aliases: []string{"d"}, Usage: "Date as YYYY-MM-DD (defaults to today)"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.DailyTasks(context.Background(), db, cfg, ops.DailyTasksInput{
				Date: c.String("date"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// toggleCmd creates the toggle command.
func toggleCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "toggle",
		Usage:     "Flip the completion state of a daily task",
		ArgsUsage: "<task-id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "date", Aliases: []string{"d"}, Usage: "Date as YYYY-MM-DD (defaults to today)"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.ToggleTask(context.Background(), db, cfg, ops.ToggleTaskInput{
				TaskID: c.Args().First(),
				Date:   c.String("date"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// suggestCmd creates the suggest command.
func suggestCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "suggest",
		Usage: "Quick activity suggestions for the current mood",
		Action: func(c *cli.Context) error {
			output, err := ops.Suggest(db)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// insightsCmd creates the insights command.
func insightsCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "insights",
		Usage: "Weekly summary computed from stored moods and journals",
		Action: func(c *cli.Context) error {
			output, err := ops.Insights(db)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// analyzeCmd creates the analyze command.
func analyzeCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "analyze",
		Usage: "AI analysis of recent moods and journals (cached)",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "force", Aliases: []string{"f"}, Usage: "Skip the cache and request a fresh analysis"},
		},
		Action: func(c *cli.Context) error {
			client := analysis.NewClient(cfg)
			sched := analysis.NewScheduler(nil)
			output, err := ops.Analyze(context.Background(), db, client, sched, ops.AnalyzeInput{
				Force: c.Bool("force"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// summaryCmd creates the summary command.
func summaryCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "summary",
		Usage: "Short AI-written weekly summary",
		Action: func(c *cli.Context) error {
			client := analysis.NewClient(cfg)
			output, err := ops.Summary(context.Background(), db, client)
			if err != nil {
				return outputError(err)
			}
			fmt.Println(output.Summary)
			return nil
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the local HTTP API server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Usage: "Bind address (defaults to config)"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Usage: "Port (defaults to config)"},
		},
		Action: func(c *cli.Context) error {
			bind := cfg.Bind
			if c.String("bind") != "" {
				bind = c.String("bind")
			}
			port := cfg.Port
			if c.Int("port") != 0 {
				port = c.Int("port")
			}

			client := analysis.NewClient(cfg)
			sched := analysis.NewScheduler(nil)
			sched.Start(func() {
				if _, err := ops.Analyze(context.Background(), db, client, sched, ops.AnalyzeInput{}); err != nil {
					log.Printf("background analysis: %v", err)
				}
			})
			defer sched.Stop()

			h := web.NewHandlers(db, cfg, client, sched)
			srv := web.NewServer(h, bind, port)
			return web.Run(srv, h)
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if fernErr, ok := err.(*errors.FernError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", fernErr.Code, fernErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin.
func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
