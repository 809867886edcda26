// Package discovery builds the daily wellbeing task list and tracks its
// completion state.
package discovery

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/fernapp/fern/internal/catalog"
	"github.com/fernapp/fern/internal/mood"
)

// Category distinguishes why a task is on today's list.
type Category string

const (
	CategoryMoodBased Category = "mood-based"
	CategoryGeneral   Category = "general"
)

// Task is a single ephemeral daily task, rebuilt from the catalog each day.
type Task struct {
	ID          string               `json:"id"`
	Label       string               `json:"label"`
	Icon        string               `json:"icon"`
	Category    Category             `json:"category"`
	Type        catalog.ActivityType `json:"type"`
	Duration    string               `json:"duration"`
	IsCompleted bool                 `json:"is_completed"`
	MoodContext string               `json:"mood_context,omitempty"`
	Benefit     string               `json:"benefit,omitempty"`
}

// moodTaskCount is how many mood-based tasks a day gets when a mood is known.
const moodTaskCount = 5

// minCandidates is the pool size below which fallback types are pulled in.
const minCandidates = 3

// SelectDailyTasks deterministically picks today's task list. The same mood
// bucket, completed set, and dateKey always produce the same ordered output,
// so the list survives process restarts without any persisted selection state.
// Mood-based tasks come first, followed by the two fixed general tasks.
func SelectDailyTasks(currentMood *mood.Entry, completedIDs map[string]bool, dateKey string) []Task {
	var tasks []Task

	if currentMood != nil {
		bucket := mood.Bucket(*currentMood)
		pool := candidatesFor(bucket)
		sortByDailyHash(pool, dateKey)
		if len(pool) > moodTaskCount {
			pool = pool[:moodTaskCount]
		}
		context := fmt.Sprintf("Recommended for %s", bucket)
		for _, a := range pool {
			tasks = append(tasks, moodTask(a, context, completedIDs))
		}
	} else {
		// No mood logged yet: one fixed mindfulness and one fixed physical
		// pick, not hashed, so the list is stable within the day.
		for _, t := range []catalog.ActivityType{catalog.TypeMindfulness, catalog.TypePhysical} {
			if a, ok := catalog.FirstOfType(t); ok {
				tasks = append(tasks, moodTask(a, "General recommendation", completedIDs))
			}
		}
	}

	for _, id := range []string{catalog.HydrateID, catalog.DigitalDetoxID} {
		if a, ok := catalog.ByID(id); ok {
			tasks = append(tasks, generalTask(a, completedIDs))
		}
	}

	return tasks
}

// candidatesFor returns activities targeting the bucket, extended with
// fallback types when the direct matches are too few to fill a day.
func candidatesFor(bucket string) []catalog.Activity {
	var matched []catalog.Activity
	for _, a := range catalog.Activities {
		if a.TargetsMood(bucket) {
			matched = append(matched, a)
		}
	}
	if len(matched) >= minCandidates {
		return matched
	}

	fallback := positiveFallbackTypes
	if mood.IsNegative(bucket) {
		fallback = negativeFallbackTypes
	}

	seen := make(map[string]bool, len(matched))
	for _, a := range matched {
		seen[a.ID] = true
	}
	for _, a := range catalog.Activities {
		if seen[a.ID] || !fallback[a.Type] {
			continue
		}
		matched = append(matched, a)
	}
	return matched
}

var negativeFallbackTypes = map[catalog.ActivityType]bool{
	catalog.TypeMindfulness: true,
	catalog.TypePhysical:    true,
}

var positiveFallbackTypes = map[catalog.ActivityType]bool{
	catalog.TypeCognitive: true,
	catalog.TypeCreative:  true,
	catalog.TypeSocial:    true,
}

// sortByDailyHash orders activities by the hash of id+dateKey, ascending.
// Ties keep catalog order, so the result is fully deterministic.
func sortByDailyHash(pool []catalog.Activity, dateKey string) {
	sort.SliceStable(pool, func(i, j int) bool {
		return dailyHash(pool[i].ID, dateKey) < dailyHash(pool[j].ID, dateKey)
	})
}

// dailyHash is a 32-bit signed rolling hash of id+dateKey. It only needs to
// be pure and stable per (id, date) pair; uniformity in the low bits is
// enough to shuffle the catalog differently each day.
func dailyHash(id, dateKey string) int32 {
	var h int32
	for _, c := range []byte(id + dateKey) {
		h = h*31 + int32(c)
	}
	return h
}

func moodTask(a catalog.Activity, context string, completedIDs map[string]bool) Task {
	id := "mood-" + a.ID
	return Task{
		ID:          id,
		Label:       a.Title,
		Icon:        a.Icon,
		Category:    CategoryMoodBased,
		Type:        a.Type,
		Duration:    a.Duration,
		IsCompleted: completedIDs[id],
		MoodContext: context,
		Benefit:     a.Benefit,
	}
}

func generalTask(a catalog.Activity, completedIDs map[string]bool) Task {
	return Task{
		ID:          a.ID,
		Label:       a.Title,
		Icon:        a.Icon,
		Category:    CategoryGeneral,
		Type:        a.Type,
		Duration:    a.Duration,
		IsCompleted: completedIDs[a.ID],
		Benefit:     a.Benefit,
	}
}

// RecommendActivities picks up to two quick suggestions for the current mood.
// Unlike SelectDailyTasks this is intentionally non-deterministic: the result
// is a throwaway surface and is never persisted, so true randomness is fine.
func RecommendActivities(currentMood *mood.Entry) []catalog.Activity {
	if currentMood == nil {
		var picks []catalog.Activity
		for _, a := range catalog.Activities {
			if a.TargetsMood("Neutral") || a.EnergyLevel == catalog.EnergyMedium {
				picks = append(picks, a)
			}
			if len(picks) == 2 {
				break
			}
		}
		return picks
	}

	bucket := mood.Bucket(*currentMood)
	var matches []catalog.Activity
	for _, a := range catalog.Activities {
		if a.TargetsMood(bucket) {
			matches = append(matches, a)
		}
	}

	if len(matches) < 2 {
		fallback := map[catalog.ActivityType]bool{catalog.TypeCreative: true, catalog.TypeCognitive: true}
		if mood.IsNegative(bucket) {
			fallback = map[catalog.ActivityType]bool{catalog.TypeMindfulness: true, catalog.TypePhysical: true}
		}
		seen := make(map[string]bool, len(matches))
		for _, a := range matches {
			seen[a.ID] = true
		}
		for _, a := range catalog.Activities {
			if !seen[a.ID] && fallback[a.Type] {
				matches = append(matches, a)
			}
		}
	}

	rand.Shuffle(len(matches), func(i, j int) {
		matches[i], matches[j] = matches[j], matches[i]
	})
	if len(matches) > 2 {
		matches = matches[:2]
	}
	return matches
}

// CompletedIDSet converts a stored ID list into a lookup set.
func CompletedIDSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
