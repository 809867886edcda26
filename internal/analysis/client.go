// Package analysis talks to the external AI summarization service and
// decides when a fresh analysis is worth requesting.
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fernapp/fern/internal/config"
	"github.com/fernapp/fern/internal/errors"
	"github.com/fernapp/fern/internal/journal"
	"github.com/fernapp/fern/internal/mood"
)

// History bounds sent to the summarization service.
const (
	maxMoodRecords    = 20
	maxJournalRecords = 10
	quickWindow       = 7
)

// MoodRecord is the wire shape for one mood entry.
type MoodRecord struct {
	Mood              string  `json:"mood"`
	Score             float64 `json:"score"`
	Timestamp         string  `json:"timestamp"`
	EmotionLabel      string  `json:"emotion_label"`
	EmotionConfidence float64 `json:"emotion_confidence"`
}

// Result is a full analysis response.
type Result struct {
	WeeklySummary string   `json:"weekly_summary"`
	MoodAnalysis  string   `json:"mood_analysis"`
	Insights      []string `json:"insights"`
	LastAnalyzed  string   `json:"last_analyzed,omitempty"`
}

// Client calls a chat-completions style endpoint for summarization.
type Client struct {
	baseURL string
	model   string
	apiKey  string
	http    *http.Client
}

// NewClient builds a client from config.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.AIBaseURL,
		model:   cfg.AIModel,
		apiKey:  cfg.AIAPIKey,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

const analysisSystemPrompt = "You are a compassionate wellbeing assistant. " +
	"You analyze mood logs and journal entries and reply with warm, concrete observations."

// Analyze requests a detailed analysis over the bounded recent history and
// returns the parsed result. Callers surface failures with a retry control;
// there is no automatic retry here.
func (c *Client) Analyze(ctx context.Context, moods []mood.Entry, journals []journal.Entry) (*Result, error) {
	moodLines := formatMoods(lastMoods(moods, maxMoodRecords))
	journalLines := formatJournals(lastJournals(journals, maxJournalRecords))

	prompt := fmt.Sprintf(`Based on this mood and journal data, respond with a single JSON object, no prose around it, shaped as:
{"weekly_summary": "...", "mood_analysis": "...", "insights": ["...", "..."]}

weekly_summary: 2-3 warm sentences about the overall emotional journey.
mood_analysis: 2-3 sentences on patterns in the mood scores.
insights: 2-4 short, actionable suggestions.

%s

%s`, moodLines, journalLines)

	raw, err := c.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	result, err := parseResult(raw)
	if err != nil {
		return nil, errors.NewServiceUnavailable("analysis service", err)
	}
	return result, nil
}

// QuickSummary requests a short plain-text weekly summary over the last few
// entries.
func (c *Client) QuickSummary(ctx context.Context, moods []mood.Entry, journals []journal.Entry) (string, error) {
	prompt := fmt.Sprintf(`Based on this mood and journal data, provide a brief, compassionate 2-3 sentence weekly summary. Keep it concise, warm, and encouraging. Focus on the overall emotional journey.

%s

%s`,
		formatMoods(lastMoods(moods, quickWindow)),
		formatJournals(lastJournals(journals, quickWindow)))

	return c.complete(ctx, prompt)
}

func (c *Client) complete(ctx context.Context, userPrompt string) (string, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: analysisSystemPrompt},
			{Role: "user", Content: userPrompt},
		},
	}
	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", errors.NewInternal(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(b))
	if err != nil {
		return "", errors.NewInternal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", errors.NewServiceUnavailable("analysis service", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", errors.NewServiceUnavailable("analysis service",
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", errors.NewServiceUnavailable("analysis service", err)
	}
	if len(cr.Choices) == 0 {
		return "", errors.NewServiceUnavailable("analysis service", fmt.Errorf("empty response"))
	}
	return cr.Choices[0].Message.Content, nil
}

// parseResult extracts the JSON object between the first '{' and the last
// '}'. Models sometimes wrap the object in prose or code fences.
func parseResult(raw string) (*Result, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var r Result
	if err := json.Unmarshal([]byte(raw[start:end+1]), &r); err != nil {
		return nil, fmt.Errorf("malformed analysis JSON: %w", err)
	}
	return &r, nil
}

// lastMoods keeps the most recent n entries, preserving order.
func lastMoods(entries []mood.Entry, n int) []mood.Entry {
	if len(entries) > n {
		return entries[len(entries)-n:]
	}
	return entries
}

func lastJournals(entries []journal.Entry, n int) []journal.Entry {
	if len(entries) > n {
		return entries[len(entries)-n:]
	}
	return entries
}

func formatMoods(entries []mood.Entry) string {
	var b strings.Builder
	b.WriteString("Recent moods:\n")
	for _, e := range entries {
		rec := ToMoodRecord(e)
		fmt.Fprintf(&b, "- %s: %s (score: %g)", rec.Timestamp, rec.Mood, rec.Score)
		if rec.EmotionLabel != "" {
			fmt.Fprintf(&b, " [detected: %s %.2f]", rec.EmotionLabel, rec.EmotionConfidence)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func formatJournals(entries []journal.Entry) string {
	var b strings.Builder
	b.WriteString("Recent journal entries:\n")
	for _, e := range entries {
		content := e.Content
		if len(content) > 200 {
			content = content[:200] + "..."
		}
		fmt.Fprintf(&b, "- %s: %s\n", e.Date, content)
	}
	return b.String()
}

// ToMoodRecord converts an entry to the wire shape.
func ToMoodRecord(e mood.Entry) MoodRecord {
	rec := MoodRecord{
		Mood:      e.Mood.Name,
		Score:     e.Mood.Score,
		Timestamp: e.Timestamp.Format(time.RFC3339),
	}
	if e.Emotion != nil {
		rec.EmotionLabel = e.Emotion.Label
		rec.EmotionConfidence = e.Emotion.Confidence
	}
	return rec
}
