package ai

import (
	"context"
	"math/rand"
	"strings"
)

// LocalResponder generates replies from a fixed keyword vocabulary. It is the
// fallback when no Gemini key is configured and when Gemini calls fail.
type LocalResponder struct{}

// NewLocalResponder returns a responder that needs no external services.
func NewLocalResponder() *LocalResponder {
	return &LocalResponder{}
}

type moodRule struct {
	mood        string
	keywords    []string
	message     string
	suggestions []string
	supportive  string
}

var moodRules = []moodRule{
	{
		mood:     MoodAnxious,
		keywords: []string{"anxious", "anxiety", "stress", "overwhelmed", "panic", "worried", "nervous"},
		message:  "I understand you're feeling anxious. Anxiety is very common and manageable. Would you like to try a breathing exercise together? Remember to take slow, deep breaths and focus on the present moment.",
		suggestions: []string{
			"Try a slow breathing exercise",
			"Break what's worrying you into smaller pieces",
			"Step away from screens for a few minutes",
		},
		supportive: "Feeling anxious doesn't mean something is wrong with you. You're handling a lot.",
	},
	{
		mood:     MoodSad,
		keywords: []string{"sad", "depressed", "down", "lonely", "hopeless", "crying", "cry"},
		message:  "I hear that you're feeling down. It's okay to feel sad sometimes. Have you been able to do any activities that usually bring you joy? Even small steps can make a difference.",
		suggestions: []string{
			"Do one small activity you usually enjoy",
			"Reach out to a friend or family member",
			"Be gentle with yourself today",
		},
		supportive: "It's okay to feel sad. Your feelings matter and you're not alone.",
	},
	{
		mood:     MoodAngry,
		keywords: []string{"angry", "mad", "furious", "frustrated", "annoyed", "hate"},
		message:  "It sounds like something really frustrated you, and that's understandable. Anger often tells us something important. Would you like to talk through what happened?",
		suggestions: []string{
			"Take a short walk before responding",
			"Write down what made you angry",
			"Try counting slowly to ten while breathing",
		},
		supportive: "Anger is a normal feeling. What matters is finding a safe way to let it out.",
	},
	{
		mood:     MoodHappy,
		keywords: []string{"happy", "good", "great", "excited", "awesome", "proud"},
		message:  "I'm so glad to hear you're feeling positive! It's wonderful when we can recognize and celebrate the good moments. What's contributing to these good feelings?",
		suggestions: []string{
			"Write down what made today good",
			"Share the good news with someone",
			"Notice what you did to make this happen",
		},
		supportive: "Celebrating good moments helps them last. Well done.",
	},
}

var genericReplies = []string{
	"I understand you're sharing something important with me. How are you feeling about this?",
	"Thank you for opening up. It takes courage to share your thoughts and feelings.",
	"I hear you. What would be most helpful for you right now?",
	"That sounds challenging. Have you tried any coping strategies that have worked for you before?",
	"Your feelings are valid. Would you like to explore some mindfulness techniques together?",
	"I'm here to support you. What's one small step you could take today for your wellbeing?",
	"It's important to acknowledge what you're going through. How can we work together on this?",
	"Thank you for trusting me with this. What would make you feel more supported right now?",
}

func (l *LocalResponder) Respond(ctx context.Context, message string, history []Turn) (Reply, error) {
	lower := strings.ToLower(message)
	for _, rule := range moodRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return Reply{
					Message: rule.message,
					Mood: MoodAssessment{
						Mood:              rule.mood,
						Confidence:        0.6,
						Suggestions:       rule.suggestions,
						SupportiveMessage: rule.supportive,
					},
				}, nil
			}
		}
	}
	return Reply{
		Message: genericReplies[rand.Intn(len(genericReplies))],
		Mood: MoodAssessment{
			Mood:              MoodNeutral,
			Confidence:        0.5,
			Suggestions:       []string{"Take a moment to breathe", "Consider talking to someone you trust"},
			SupportiveMessage: "Thank you for sharing your thoughts. Your feelings are valid.",
		},
	}, nil
}

func (l *LocalResponder) Insight(ctx context.Context, entries []JournalEntry) (string, error) {
	return "You're doing great by taking time to reflect on your feelings. Keep writing - it's a powerful tool for understanding yourself better.", nil
}
