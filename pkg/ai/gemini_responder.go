package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

const chatSystemPrompt = `You are a caring, supportive companion for teenagers working on their mental wellness.
Listen without judgment, validate feelings, and suggest small concrete steps.
Keep replies warm and short (a few sentences). Never give medical advice or
diagnoses. If the user mentions self-harm or danger, gently encourage them to
talk to a trusted adult or a crisis line right away.`

const moodPrompt = `Assess the emotional tone of the following message. Respond with ONLY a JSON
object, no prose, in this exact shape:
{"mood":"happy|neutral|sad|anxious|angry","confidence":0.0,"suggestions":["..."],"supportiveMessage":"..."}`

const trustedAdultNote = " If things feel heavy right now, consider reaching out to a trusted adult or someone close to you."

const historyWindow = 10

// GeminiResponder generates replies with the Gemini API and degrades to the
// local responder whenever the API fails.
type GeminiResponder struct {
	client   *GeminiClient
	model    string
	fallback *LocalResponder
}

// NewGeminiResponder wraps client with a fixed model.
func NewGeminiResponder(client *GeminiClient, model string) *GeminiResponder {
	return &GeminiResponder{client: client, model: model, fallback: NewLocalResponder()}
}

func (g *GeminiResponder) Respond(ctx context.Context, message string, history []Turn) (Reply, error) {
	prompt := buildConversationPrompt(message, history)
	text, err := g.client.GenerateText(ctx, g.model, chatSystemPrompt, prompt)
	if err != nil {
		reply, _ := g.fallback.Respond(ctx, message, history)
		reply.Message += trustedAdultNote
		return reply, nil
	}
	return Reply{
		Message: strings.TrimSpace(text),
		Mood:    g.assessMood(ctx, message),
	}, nil
}

func (g *GeminiResponder) assessMood(ctx context.Context, message string) MoodAssessment {
	neutral := MoodAssessment{
		Mood:              MoodNeutral,
		Confidence:        0.5,
		Suggestions:       []string{"Take a moment to breathe", "Consider talking to someone you trust"},
		SupportiveMessage: "Thank you for sharing your thoughts. Your feelings are valid.",
	}
	text, err := g.client.GenerateText(ctx, g.model, moodPrompt, message)
	if err != nil {
		return neutral
	}
	raw, ok := extractJSON(text)
	if !ok {
		return neutral
	}
	var assessment MoodAssessment
	if err := json.Unmarshal([]byte(raw), &assessment); err != nil {
		return neutral
	}
	if !ValidMood(assessment.Mood) {
		return neutral
	}
	return assessment
}

func (g *GeminiResponder) Insight(ctx context.Context, entries []JournalEntry) (string, error) {
	var b strings.Builder
	b.WriteString("Here are recent journal entries from a teenager. Offer one short, warm paragraph of encouragement and gentle observations about patterns you notice. Do not diagnose.\n\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "[%s] mood=%s: %s\n", e.Date, e.Mood, e.Content)
	}
	text, err := g.client.GenerateText(ctx, g.model, chatSystemPrompt, b.String())
	if err != nil {
		return g.fallback.Insight(ctx, entries)
	}
	return strings.TrimSpace(text), nil
}

func buildConversationPrompt(message string, history []Turn) string {
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	var b strings.Builder
	for _, t := range history {
		fmt.Fprintf(&b, "%s: %s\n", t.Role, t.Content)
	}
	fmt.Fprintf(&b, "user: %s", message)
	return b.String()
}

// extractJSON pulls the first balanced {...} object out of model output, which
// often wraps JSON in code fences or prose.
func extractJSON(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
