package ai

import "context"

// Mood labels attached to chat replies and journal entries.
const (
	MoodHappy   = "happy"
	MoodNeutral = "neutral"
	MoodSad     = "sad"
	MoodAnxious = "anxious"
	MoodAngry   = "angry"
)

// ValidMood reports whether label is one of the known mood labels.
func ValidMood(label string) bool {
	switch label {
	case MoodHappy, MoodNeutral, MoodSad, MoodAnxious, MoodAngry:
		return true
	}
	return false
}

// MoodAssessment describes the emotional tone read from a user message.
type MoodAssessment struct {
	Mood              string   `json:"mood"`
	Confidence        float64  `json:"confidence"`
	Suggestions       []string `json:"suggestions"`
	SupportiveMessage string   `json:"supportiveMessage"`
}

// Reply is a generated assistant response with its mood assessment.
type Reply struct {
	Message string         `json:"message"`
	Mood    MoodAssessment `json:"mood"`
}

// Turn is one prior message in a conversation.
type Turn struct {
	Role    string
	Content string
}

// JournalEntry is the slice of a journal entry the insight prompt sees.
type JournalEntry struct {
	Content string
	Mood    string
	Date    string
}

// ResponseGenerator produces supportive replies and journal insights.
// Implementations must not surface provider errors to callers for Respond;
// they degrade to a safe local reply instead.
type ResponseGenerator interface {
	Respond(ctx context.Context, message string, history []Turn) (Reply, error)
	Insight(ctx context.Context, entries []JournalEntry) (string, error)
}
