// Package catalog holds the static wellbeing activity table. The data is
// reference-only: activities are never created or mutated at runtime.
package catalog

// ActivityType is one of the six activity categories.
type ActivityType string

const (
	TypeMindfulness ActivityType = "mindfulness"
	TypePhysical    ActivityType = "physical"
	TypeCreative    ActivityType = "creative"
	TypeSocial      ActivityType = "social"
	TypeCognitive   ActivityType = "cognitive"
	TypeWellbeing   ActivityType = "wellbeing"
)

// EnergyLevel describes how much energy an activity asks for.
type EnergyLevel string

const (
	EnergyLow    EnergyLevel = "low"
	EnergyMedium EnergyLevel = "medium"
	EnergyHigh   EnergyLevel = "high"
)

// Activity is a catalog entry for a wellbeing micro-task.
type Activity struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Type        ActivityType `json:"type"`
	Duration    string       `json:"duration"`
	TargetMoods []string     `json:"target_moods"`
	EnergyLevel EnergyLevel  `json:"energy_level"`
	Icon        string       `json:"icon"`
	Benefit     string       `json:"benefit"`
}

// TargetsMood reports whether the activity lists bucket among its target moods.
func (a Activity) TargetsMood(bucket string) bool {
	for _, m := range a.TargetMoods {
		if m == bucket {
			return true
		}
	}
	return false
}

// General task activity IDs, always appended to the daily list.
const (
	HydrateID      = "hydrate-glass"
	DigitalDetoxID = "digital-detox"
)

// ByID returns the activity with the given ID.
func ByID(id string) (Activity, bool) {
	for _, a := range Activities {
		if a.ID == id {
			return a, true
		}
	}
	return Activity{}, false
}

// FirstOfType returns the first catalog activity of the given type.
func FirstOfType(t ActivityType) (Activity, bool) {
	for _, a := range Activities {
		if a.Type == t {
			return a, true
		}
	}
	return Activity{}, false
}

// Activities is the full static catalog, grouped by category.
var Activities = []Activity{
	// Mindfulness (low energy, high anxiety)
	{
		ID:          "box-breathing",
		Title:       "Box Breathing",
		Type:        TypeMindfulness,
		Duration:    "3 min",
		TargetMoods: []string{"Anxious", "Stressed", "Overwhelmed", "Fearful", "Panic"},
		EnergyLevel: EnergyLow,
		Icon:        "air",
		Benefit:     "Calms your nervous system instantly by regulating breath rhythm.",
	},
	{
		ID:          "grounding-54321",
		Title:       "5-4-3-2-1 Grounding",
		Type:        TypeMindfulness,
		Duration:    "5 min",
		TargetMoods: []string{"Anxious", "Panic", "Dissociated", "Fearful"},
		EnergyLevel: EnergyLow,
		Icon:        "anchor",
		Benefit:     "Brings you back to the present moment when feeling detached or panicked.",
	},
	{
		ID:          "body-scan",
		Title:       "Body Scan Meditation",
		Type:        TypeMindfulness,
		Duration:    "10 min",
		TargetMoods: []string{"Stressed", "Tired", "Anxious", "Overwhelmed"},
		EnergyLevel: EnergyLow,
		Icon:        "accessibility_new",
		Benefit:     "Releases physical tension you might not even realize you're holding.",
	},
	{
		ID:          "loving-kindness",
		Title:       "Loving Kindness (Metta)",
		Type:        TypeMindfulness,
		Duration:    "7 min",
		TargetMoods: []string{"Lonely", "Sad", "Angry", "Resentful"},
		EnergyLevel: EnergyLow,
		Icon:        "favorite_border",
		Benefit:     "Cultivates self-compassion and softness towards others.",
	},

	// Physical (movement for mood shifting)
	{
		ID:          "gentle-stretch",
		Title:       "Gentle Stretching",
		Type:        TypePhysical,
		Duration:    "5 min",
		TargetMoods: []string{"Sad", "Tired", "Stiff", "Bored", "Depressed"},
		EnergyLevel: EnergyLow,
		Icon:        "self_improvement",
		Benefit:     "Reconnects you with your body and improves circulation gently.",
	},
	{
		ID:          "power-pose",
		Title:       "Power Posing",
		Type:        TypePhysical,
		Duration:    "2 min",
		TargetMoods: []string{"Insecure", "Anxious", "Nervous", "Hesitant"},
		EnergyLevel: EnergyMedium,
		Icon:        "accessibility",
		Benefit:     "Boosts confidence hormones and reduces stress cortisol quickly.",
	},
	{
		ID:          "nature-walk",
		Title:       "Short Nature Walk",
		Type:        TypePhysical,
		Duration:    "15 min",
		TargetMoods: []string{"Sad", "Stressed", "Bored", "Neutral", "Lonely"},
		EnergyLevel: EnergyMedium,
		Icon:        "directions_walk",
		Benefit:     "Fresh air and natural fractals lower stress and improve mood.",
	},
	{
		ID:          "dance-it-out",
		Title:       "Dance to 1 Song",
		Type:        TypePhysical,
		Duration:    "4 min",
		TargetMoods: []string{"Happy", "Excited", "Bored", "Stressed", "Frustrated"},
		EnergyLevel: EnergyHigh,
		Icon:        "music_note",
		Benefit:     "Releases endorphins and shakes off stagnant energy.",
	},
	{
		ID:          "progressive-muscle",
		Title:       "Progressive Muscle Relaxation",
		Type:        TypePhysical,
		Duration:    "8 min",
		TargetMoods: []string{"Stressed", "Anxious", "Insomnia", "Tense"},
		EnergyLevel: EnergyLow,
		Icon:        "hotel",
		Benefit:     "Systematically relaxes your body to help you rest or sleep.",
	},

	// Creative (expression and flow)
	{
		ID:          "doodle-session",
		Title:       "Free Doodling",
		Type:        TypeCreative,
		Duration:    "10 min",
		TargetMoods: []string{"Bored", "Neutral", "Anxious", "Confused"},
		EnergyLevel: EnergyMedium,
		Icon:        "draw",
		Benefit:     "Activates the creative brain and quiets the analytical mind.",
	},
	{
		ID:          "expressive-writing",
		Title:       "Expressive Writing",
		Type:        TypeCreative,
		Duration:    "12 min",
		TargetMoods: []string{"Sad", "Angry", "Confused", "Overwhelmed", "Grieving"},
		EnergyLevel: EnergyMedium,
		Icon:        "edit_note",
		Benefit:     "Helps process complex emotions by getting them out of your head.",
	},
	{
		ID:          "play-music",
		Title:       "Curate a Playlist",
		Type:        TypeCreative,
		Duration:    "15 min",
		TargetMoods: []string{"Bored", "Sad", "Nostalgic", "Inspired"},
		EnergyLevel: EnergyMedium,
		Icon:        "playlist_add",
		Benefit:     "Allows specific emotional expression through sound.",
	},
	{
		ID:          "vision-board-mini",
		Title:       "Mini Vision Board",
		Type:        TypeCreative,
		Duration:    "20 min",
		TargetMoods: []string{"Inspired", "Motivated", "Hopeful", "Excited"},
		EnergyLevel: EnergyHigh,
		Icon:        "dashboard",
		Benefit:     "Visualizes your goals to anchor motivation.",
	},

	// Cognitive (reframing and perspective)
	{
		ID:          "gratitude-journal",
		Title:       "3 Things Grateful For",
		Type:        TypeCognitive,
		Duration:    "5 min",
		TargetMoods: []string{"Happy", "Content", "Sad", "Neutral", "Dissatisfied"},
		EnergyLevel: EnergyMedium,
		Icon:        "favorite",
		Benefit:     "Trains your brain to scan for positives, increasing happiness over time.",
	},
	{
		ID:          "future-visioning",
		Title:       "Future Self Visualization",
		Type:        TypeCognitive,
		Duration:    "10 min",
		TargetMoods: []string{"Excited", "Inspired", "Confident", "Hopeful"},
		EnergyLevel: EnergyHigh,
		Icon:        "visibility",
		Benefit:     "Connects current actions to your long-term identity and goals.",
	},
	{
		ID:          "worry-time",
		Title:       "Scheduled \"Worry Time\"",
		Type:        TypeCognitive,
		Duration:    "10 min",
		TargetMoods: []string{"Anxious", "Worried", "Obsessive"},
		EnergyLevel: EnergyMedium,
		Icon:        "schedule",
		Benefit:     "Contains anxiety to a specific window so it doesn't take over your day.",
	},
	{
		ID:          "reframing",
		Title:       "Thought Reframing",
		Type:        TypeCognitive,
		Duration:    "8 min",
		TargetMoods: []string{"Self-Critical", "Hopeless", "Frustrated", "Angry"},
		EnergyLevel: EnergyMedium,
		Icon:        "psychology",
		Benefit:     "Challenges negative thought patterns to find a more balanced perspective.",
	},
	{
		ID:          "affirmations",
		Title:       "Positive Affirmations",
		Type:        TypeCognitive,
		Duration:    "3 min",
		TargetMoods: []string{"Insecure", "Low Self-Esteem", "Sad", "Neutral"},
		EnergyLevel: EnergyLow,
		Icon:        "format_quote",
		Benefit:     "Reinforces positive self-beliefs and combats negative self-talk.",
	},

	// Social (connection)
	{
		ID:          "reach-out",
		Title:       "Text a Friend",
		Type:        TypeSocial,
		Duration:    "2 min",
		TargetMoods: []string{"Lonely", "Sad", "Bored", "Isolated"},
		EnergyLevel: EnergyLow,
		Icon:        "chat",
		Benefit:     "Small micro-connections reduce feelings of isolation instantly.",
	},
	{
		ID:          "compliment-someone",
		Title:       "Send a Compliment",
		Type:        TypeSocial,
		Duration:    "2 min",
		TargetMoods: []string{"Grateful", "Happy", "Neutral", "Lonely"},
		EnergyLevel: EnergyMedium,
		Icon:        "thumb_up",
		Benefit:     "Boosting someone else generates a happiness feedback loop for you too.",
	},

	// General wellbeing (maintenance)
	{
		ID:          HydrateID,
		Title:       "Drink a Glass of Water",
		Type:        TypeWellbeing,
		Duration:    "1 min",
		TargetMoods: []string{"Tired", "Headache", "Groggy", "Neutral"},
		EnergyLevel: EnergyLow,
		Icon:        "water_drop",
		Benefit:     "Rehydrates your brain for better focus and energy.",
	},
	{
		ID:          DigitalDetoxID,
		Title:       "Digital Detox",
		Type:        TypeWellbeing,
		Duration:    "30 min",
		TargetMoods: []string{"Overwhelmed", "Distracted", "Anxious", "Bored"},
		EnergyLevel: EnergyMedium,
		Icon:        "phonelink_off",
		Benefit:     "Resets your dopamine receptors and reduces information overload.",
	},
	{
		ID:          "clean-space",
		Title:       "Tidy One Small Spot",
		Type:        TypeWellbeing,
		Duration:    "5 min",
		TargetMoods: []string{"Overwhelmed", "Chaotic", "Stressed", "Productive"},
		EnergyLevel: EnergyMedium,
		Icon:        "cleaning_services",
		Benefit:     "External order often helps create internal calm.",
	},
}
