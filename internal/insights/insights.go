// Package insights computes aggregate statistics over mood and journal
// history. Everything here is a pure function of (history, now): the data
// volumes are tiny, so results are recomputed on demand and never cached.
package insights

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/fernapp/fern/internal/journal"
	"github.com/fernapp/fern/internal/mood"
)

const (
	// StreakLookbackDays caps the backward walk when counting the streak.
	StreakLookbackDays = 365

	topKeywordCount = 2
	spectrumBuckets = 4
)

// BucketShare is one slice of the emotion spectrum. Percent is rounded
// independently per bucket, so a spectrum may not sum to exactly 100.
type BucketShare struct {
	Name    string `json:"name"`
	Count   int    `json:"count"`
	Percent int    `json:"percent"`
}

// Summary bundles the weekly aggregates for the summary surfaces.
type Summary struct {
	DominantMood     string        `json:"dominant_mood"`
	JournalingStreak int           `json:"journaling_streak"`
	TopTopics        []string      `json:"top_topics"`
	WeeklyScore      float64       `json:"weekly_score"`
	PrevWeeklyScore  float64       `json:"prev_weekly_score"`
	TrendPercent     float64       `json:"trend_percent"`
	WordsWritten     int           `json:"words_written"`
	Spectrum         []BucketShare `json:"spectrum"`
}

// Week computes the full weekly summary.
func Week(moods []mood.Entry, journals []journal.Entry, now time.Time) Summary {
	weekly := WeeklyAverage(moods, now)
	prev := PrevWeeklyAverage(moods, now)
	spectrum := Spectrum(moods, now)

	dominant := "Neutral"
	if len(spectrum) > 0 {
		dominant = spectrum[0].Name
	}

	return Summary{
		DominantMood:     dominant,
		JournalingStreak: Streak(journals, now),
		TopTopics:        TopKeywords(journals, now),
		WeeklyScore:      weekly,
		PrevWeeklyScore:  prev,
		TrendPercent:     TrendPercent(weekly, prev),
		WordsWritten:     WordsWritten(journals, now),
		Spectrum:         spectrum,
	}
}

// WeeklyAverage is the mean mood score over the last 7 calendar days,
// inclusive of today. 0 when there are no entries in the window.
func WeeklyAverage(moods []mood.Entry, now time.Time) float64 {
	return meanScore(moodsInRange(moods, startOfDay(now.AddDate(0, 0, -6)), now))
}

// PrevWeeklyAverage is the mean mood score over the 7 days before the
// current window.
func PrevWeeklyAverage(moods []mood.Entry, now time.Time) float64 {
	start := startOfDay(now.AddDate(0, 0, -13))
	end := startOfDay(now.AddDate(0, 0, -7)).Add(24*time.Hour - time.Nanosecond)
	return meanScore(moodsInRange(moods, start, end))
}

// TrendPercent is the relative change of current vs previous, as a
// percentage. Returns 0 when previous is 0 to avoid division by zero; that
// is not a "no data" signal, callers check previous separately before
// displaying a trend.
func TrendPercent(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

// Streak counts consecutive journaled days walking backward from today.
// Today is skipped (not counted, not a break) when it has no entry or only
// empty content, so an unlogged morning never zeroes the streak. Any missing
// or empty day further back terminates the count.
func Streak(journals []journal.Entry, now time.Time) int {
	byDate := make(map[string]journal.Entry, len(journals))
	for _, e := range journals {
		byDate[e.Date] = e
	}

	streak := 0
	for i := 0; i < StreakLookbackDays; i++ {
		key := journal.DateKey(now.AddDate(0, 0, -i))
		e, ok := byDate[key]
		logged := ok && strings.TrimSpace(e.Content) != ""
		if i == 0 && !logged {
			continue
		}
		if !logged {
			break
		}
		streak++
	}
	return streak
}

// WordsWritten sums word counts for journal entries in the last 7 days.
func WordsWritten(journals []journal.Entry, now time.Time) int {
	total := 0
	for _, e := range journalsInWeek(journals, now) {
		total += e.WordCount
	}
	return total
}

// stopwords excluded from keyword extraction.
var stopwords = map[string]bool{
	"the": true, "and": true, "a": true, "an": true, "to": true, "of": true,
	"in": true, "is": true, "it": true, "for": true, "on": true, "with": true,
	"that": true, "this": true, "was": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "from": true, "or": true, "but": true, "i": true,
	"you": true, "we": true, "they": true, "my": true, "your": true, "our": true,
	"me": true, "us": true, "them": true, "so": true, "if": true, "not": true,
	"have": true, "has": true, "had": true, "do": true, "did": true, "done": true,
}

// TopKeywords extracts the two most frequent words (4+ letters, stopwords
// dropped) from the last 7 days of journal text. Ties keep first-encounter
// order.
func TopKeywords(journals []journal.Entry, now time.Time) []string {
	var parts []string
	for _, e := range journalsInWeek(journals, now) {
		parts = append(parts, e.Content)
	}
	text := strings.ToLower(strings.Join(parts, " "))

	// Strip everything except letters before tokenizing
	text = strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' {
			return r
		}
		return ' '
	}, text)

	freq := make(map[string]int)
	var order []string
	for _, tok := range strings.Fields(text) {
		if len(tok) < 4 || stopwords[tok] {
			continue
		}
		if _, seen := freq[tok]; !seen {
			order = append(order, tok)
		}
		freq[tok]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return freq[order[i]] > freq[order[j]]
	})
	if len(order) > topKeywordCount {
		order = order[:topKeywordCount]
	}
	return order
}

// Spectrum buckets the last 7 days of moods by mapped bucket name and
// expresses the top 4 buckets as percentages of their combined count.
func Spectrum(moods []mood.Entry, now time.Time) []BucketShare {
	counts := make(map[string]int)
	var order []string
	for _, e := range moodsInRange(moods, startOfDay(now.AddDate(0, 0, -6)), now) {
		bucket := mood.Bucket(e)
		if _, seen := counts[bucket]; !seen {
			order = append(order, bucket)
		}
		counts[bucket]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > spectrumBuckets {
		order = order[:spectrumBuckets]
	}

	total := 0
	for _, name := range order {
		total += counts[name]
	}

	shares := make([]BucketShare, 0, len(order))
	for _, name := range order {
		pct := 0
		if total > 0 {
			pct = int(math.Round(float64(counts[name]) / float64(total) * 100))
		}
		shares = append(shares, BucketShare{Name: name, Count: counts[name], Percent: pct})
	}
	return shares
}

func meanScore(entries []mood.Entry) float64 {
	if len(entries) == 0 {
		return 0
	}
	sum := 0.0
	for _, e := range entries {
		sum += e.Mood.Score
	}
	return sum / float64(len(entries))
}

func moodsInRange(moods []mood.Entry, start, end time.Time) []mood.Entry {
	var out []mood.Entry
	for _, e := range moods {
		if !e.Timestamp.Before(start) && !e.Timestamp.After(end) {
			out = append(out, e)
		}
	}
	return out
}

// journalsInWeek keeps entries dated within the last 7 calendar days.
// ISO day keys compare lexicographically, so plain string bounds work.
func journalsInWeek(journals []journal.Entry, now time.Time) []journal.Entry {
	lo := journal.DateKey(now.AddDate(0, 0, -6))
	hi := journal.DateKey(now)
	var out []journal.Entry
	for _, e := range journals {
		if e.Date >= lo && e.Date <= hi {
			out = append(out, e)
		}
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
