package journal

import (
	"strings"
	"time"
	"unicode/utf8"
)

// DateKeyLayout is the calendar-day key format used throughout the store.
const DateKeyLayout = "2006-01-02"

// Entry is one journal entry. There is at most one per calendar day;
// same-day edits overwrite the previous content.
type Entry struct {
	Date      string    `json:"date"` // YYYY-MM-DD
	Content   string    `json:"content"`
	WordCount int       `json:"word_count"`
	CharCount int       `json:"char_count"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New builds an entry for the given day, computing word and char counts.
func New(date, content string, updatedAt time.Time) Entry {
	return Entry{
		Date:      date,
		Content:   content,
		WordCount: CountWords(content),
		CharCount: utf8.RuneCountInString(content),
		UpdatedAt: updatedAt,
	}
}

// CountWords counts whitespace-separated tokens.
func CountWords(s string) int {
	return len(strings.Fields(s))
}

// DateKey formats t as a calendar-day key.
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// ValidDateKey reports whether s parses as a YYYY-MM-DD day key.
func ValidDateKey(s string) bool {
	_, err := time.Parse(DateKeyLayout, s)
	return err == nil
}
