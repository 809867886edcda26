package mood

import (
	"strings"
	"time"
)

// Option is a selectable mood with its canonical score used for averaging.
type Option struct {
	Name        string  `json:"name"`
	Icon        string  `json:"icon"`
	Description string  `json:"description"`
	Score       float64 `json:"score"` // 0-10
}

// Emotion is an optional detected emotion attached to an entry.
// When present, its label takes priority over the mood name for bucket mapping.
type Emotion struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"` // 0-1
}

// Entry is a single logged mood. Immutable once created.
type Entry struct {
	ID        string    `json:"id"`
	Mood      Option    `json:"mood"`
	Emotion   *Emotion  `json:"emotion,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Options lists the moods the logging surfaces offer.
var Options = []Option{
	{Name: "Joyful", Icon: "sentiment_very_satisfied", Description: "Feeling ecstatic and full of positive energy!", Score: 10},
	{Name: "Happy", Icon: "sentiment_satisfied", Description: "A sense of contentment and well-being.", Score: 8},
	{Name: "Calm", Icon: "self_improvement", Description: "Feeling peaceful, relaxed, and at ease.", Score: 7},
	{Name: "Focused", Icon: "psychology", Description: "In the zone and making progress.", Score: 8},
	{Name: "Neutral", Icon: "sentiment_neutral", Description: "Just going with the flow today.", Score: 5},
	{Name: "Tired", Icon: "battery_alert", Description: "Feeling a bit drained and low on energy.", Score: 3},
	{Name: "Sad", Icon: "sentiment_sad", Description: "Feeling down and in need of comfort.", Score: 2},
	{Name: "Anxious", Icon: "sentiment_agitated", Description: "Feeling worried, nervous, or uneasy.", Score: 2},
	{Name: "Angry", Icon: "sentiment_angry", Description: "Feeling frustrated, irritated, or upset.", Score: 1},
}

// emotionToBucket maps detected emotion labels to coarse mood buckets.
// Kept in sync with the analysis backend's mapping.
var emotionToBucket = map[string]string{
	"happy":     "Happy",
	"sad":       "Sad",
	"angry":     "Angry",
	"fearful":   "Anxious",
	"disgusted": "Anxious",
	"surprised": "Joyful",
	"neutral":   "Calm",
}

// negativeBuckets drives the fallback polarity in the daily selector.
var negativeBuckets = map[string]bool{
	"Sad": true, "Anxious": true, "Stressed": true, "Angry": true,
	"Tired": true, "Fearful": true, "Disgusted": true,
}

// OptionByName returns the mood option matching name (case-insensitive).
func OptionByName(name string) (Option, bool) {
	for _, o := range Options {
		if strings.EqualFold(o.Name, name) {
			return o, true
		}
	}
	return Option{}, false
}

// OptionForEmotion maps a detected emotion label to the mood option that
// represents it, through the same table Bucket consults.
func OptionForEmotion(label string) (Option, bool) {
	name, ok := emotionToBucket[strings.ToLower(label)]
	if !ok {
		return Option{}, false
	}
	return OptionByName(name)
}

// Bucket maps an entry to its coarse mood bucket. The detected emotion label
// wins when it is present in the mapping table; unknown or absent labels fall
// back to the raw mood name silently.
func Bucket(e Entry) string {
	if e.Emotion != nil && e.Emotion.Label != "" {
		if bucket, ok := emotionToBucket[e.Emotion.Label]; ok {
			return bucket
		}
	}
	return e.Mood.Name
}

// IsNegative reports whether a bucket counts as a low mood for activity
// fallback purposes.
func IsNegative(bucket string) bool {
	return negativeBuckets[bucket]
}
