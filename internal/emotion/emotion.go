// Package emotion detects emotions in free-form text. It blends a compact
// AFINN-style polarity score with per-emotion keyword frequency, which gives
// a richer picture than raw sentiment polarity alone.
package emotion

import (
	"sort"
	"strings"
	"unicode"
)

// Detectable emotion labels. They line up with the labels the mood bucket
// mapping understands.
const (
	Happy     = "happy"
	Sad       = "sad"
	Angry     = "angry"
	Fearful   = "fearful"
	Surprised = "surprised"
	Disgusted = "disgusted"
	Neutral   = "neutral"
)

// labelOrder fixes iteration order so equal scores resolve the same way on
// every run.
var labelOrder = []string{Happy, Sad, Angry, Fearful, Surprised, Disgusted, Neutral}

// Score is one detected emotion with its share of the total signal.
type Score struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"` // 0-1
}

// minConfidence drops emotions that barely register.
const minConfidence = 0.10

// emotionKeywords lists the words that signal each emotion. A word may appear
// under more than one emotion and then counts toward each.
var emotionKeywords = map[string][]string{
	Happy: {
		"happy", "joy", "joyful", "excited", "grateful", "thankful", "love",
		"wonderful", "amazing", "great", "fantastic", "awesome", "blessed",
		"cheerful", "delighted", "thrilled", "ecstatic", "glad", "pleased",
		"content", "satisfied", "elated", "euphoric", "blissful", "merry",
		"optimistic", "hopeful", "proud", "accomplished", "celebrate", "fun",
		"laugh", "smile", "enjoy", "positive", "bright", "sunshine", "beautiful",
		"perfect", "brilliant", "inspiring", "motivated", "energized",
	},
	Sad: {
		"sad", "unhappy", "depressed", "miserable", "lonely", "alone",
		"heartbroken", "grief", "grieving", "mourning", "loss", "lost",
		"disappointed", "hopeless", "helpless", "empty", "numb", "cry",
		"crying", "tears", "sorrow", "gloomy", "melancholy", "down",
		"blue", "despair", "regret", "guilt", "ashamed", "worthless",
		"painful", "hurt", "suffering", "broke", "broken", "miss", "missing",
	},
	Angry: {
		"angry", "furious", "rage", "mad", "annoyed", "irritated", "frustrated",
		"outraged", "pissed", "hate", "hatred", "resentment", "resent",
		"hostile", "bitter", "infuriated", "aggravated", "upset", "enraged",
		"livid", "fuming", "conflict", "argue", "argument", "fight",
		"unfair", "injustice", "betrayed", "betrayal",
	},
	Fearful: {
		"afraid", "fear", "scared", "anxious", "anxiety", "worried", "worry",
		"nervous", "panic", "panicking", "terrified", "dread", "dreading",
		"phobia", "frightened", "uneasy", "tense", "stressed", "stress",
		"overwhelmed", "insecure", "uncertain", "doubt", "doubtful",
		"apprehensive", "restless", "paranoid", "threatened",
	},
	Surprised: {
		"surprised", "surprise", "shocked", "astonished", "amazed", "unexpected",
		"unbelievable", "incredible", "wow", "whoa", "omg", "stunning",
		"speechless", "startled", "astounded", "bewildered", "mind-blowing",
		"remarkable", "extraordinary",
	},
	Disgusted: {
		"disgusted", "disgust", "revolted", "repulsed", "sick", "nauseous",
		"gross", "yuck", "horrible", "appalling", "repugnant", "vile",
		"loathe", "loathing", "contempt", "abhorrent", "detestable", "awful",
	},
	Neutral: {
		"okay", "fine", "alright", "normal", "usual", "routine", "ordinary",
		"regular", "standard", "average", "typical", "meh", "whatever",
		"indifferent",
	},
}

var keywordSets = func() map[string]map[string]bool {
	sets := make(map[string]map[string]bool, len(emotionKeywords))
	for label, words := range emotionKeywords {
		set := make(map[string]bool, len(words))
		for _, w := range words {
			set[w] = true
		}
		sets[label] = set
	}
	return sets
}()

// polarity is a compact AFINN-style valence lexicon covering the vocabulary
// journal entries tend to use. Positive values lean happy, negative ones lean
// sad, angry, or fearful.
var polarity = map[string]float64{
	"amazing": 4, "awesome": 4, "beautiful": 3, "blessed": 3, "brilliant": 4,
	"calm": 2, "celebrate": 3, "cheerful": 2, "comfort": 2, "delighted": 3,
	"ecstatic": 4, "elated": 3, "energized": 2, "enjoy": 2, "excellent": 3,
	"excited": 3, "fantastic": 4, "fun": 4, "glad": 3, "grateful": 3,
	"great": 3, "happy": 3, "hope": 2, "hopeful": 2, "inspiring": 2,
	"joy": 3, "joyful": 3, "laugh": 2, "love": 3, "loved": 3,
	"motivated": 2, "nice": 3, "optimistic": 2, "peaceful": 2, "perfect": 3,
	"pleased": 3, "positive": 2, "proud": 2, "relaxed": 2, "satisfied": 2,
	"smile": 2, "thankful": 2, "thrilled": 5, "win": 4, "wonderful": 4,

	"afraid": -2, "alone": -2, "angry": -3, "annoyed": -2, "anxious": -2,
	"ashamed": -2, "awful": -3, "bad": -3, "betrayed": -3, "bitter": -2,
	"broken": -2, "cry": -1, "crying": -2, "depressed": -2, "despair": -3,
	"disappointed": -2, "disgusted": -3, "dread": -2, "empty": -1,
	"exhausted": -2, "fear": -2, "fight": -1, "frustrated": -2, "furious": -3,
	"gloomy": -2, "grief": -2, "guilt": -3, "hate": -3, "heartbroken": -3,
	"helpless": -2, "hopeless": -2, "hurt": -2, "insecure": -2,
	"irritated": -2, "lonely": -2, "lost": -3, "mad": -3, "miserable": -3,
	"mourning": -2, "nervous": -2, "outraged": -3, "overwhelmed": -2,
	"panic": -3, "rage": -2, "regret": -2, "resent": -2, "sad": -2,
	"scared": -2, "shocked": -2, "sick": -2, "sorrow": -2, "stressed": -2,
	"suffering": -2, "terrified": -3, "tense": -2, "tired": -2, "unfair": -2,
	"unhappy": -2, "upset": -2, "worried": -3, "worry": -3, "worthless": -2,
}

// Analyze scores every emotion present in text and returns those above the
// confidence floor, strongest first. Text with no usable words yields nil;
// text that carries no emotional signal at all reads as fully neutral.
func Analyze(text string) []Score {
	words := tokenize(text)
	if len(words) == 0 {
		return nil
	}

	raw := make(map[string]float64, len(labelOrder))
	var valence float64
	for _, w := range words {
		for label, set := range keywordSets {
			if set[w] {
				raw[label]++
			}
		}
		valence += polarity[w]
	}

	// Polarity boost: clearly positive text reinforces happy, clearly
	// negative text is split across the negative emotions proportionally to
	// the keywords already seen.
	comparative := valence / float64(len(words))
	switch {
	case comparative > 0.15:
		raw[Happy] += comparative * 3
	case comparative < -0.15:
		mag := -comparative * 3
		negTotal := raw[Sad] + raw[Angry] + raw[Fearful]
		if negTotal == 0 {
			negTotal = 1
		}
		for _, label := range []string{Sad, Angry, Fearful} {
			raw[label] += mag * ((raw[label] + 0.5) / (negTotal + 1.5))
		}
	default:
		raw[Neutral] += 0.5
	}

	var total float64
	for _, label := range labelOrder {
		total += raw[label]
	}
	if total == 0 {
		return []Score{{Label: Neutral, Confidence: 1}}
	}

	var results []Score
	for _, label := range labelOrder {
		conf := raw[label] / total
		if conf >= minConfidence {
			results = append(results, Score{Label: label, Confidence: conf})
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Confidence > results[j].Confidence
	})
	if len(results) == 0 {
		return []Score{{Label: Neutral, Confidence: 1}}
	}
	return results
}

// Top returns the single strongest emotion, for logging a mood from text.
func Top(text string) (Score, bool) {
	scores := Analyze(text)
	if len(scores) == 0 {
		return Score{}, false
	}
	return scores[0], true
}

// tokenize lowercases text and splits it into words, keeping apostrophes and
// hyphens so contractions and compounds survive.
func tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r == '\'', r == '-':
			return r
		case r >= 'A' && r <= 'Z':
			return unicode.ToLower(r)
		default:
			return ' '
		}
	}, text)
	return strings.Fields(cleaned)
}
