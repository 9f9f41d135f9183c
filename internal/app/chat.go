package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"youthwell/pkg/ai"
	"youthwell/pkg/domain"
	"youthwell/pkg/store"
)

// CreateSession opens a chat session with a default title when none given.
func (a *App) CreateSession(userID int64, title string) (domain.ChatSession, error) {
	if strings.TrimSpace(title) == "" {
		title = "Chat Session " + time.Now().UTC().Format("2006-01-02 15:04")
	}
	session := domain.ChatSession{
		UserID:       userID,
		SessionTitle: title,
		IsActive:     true,
	}
	if err := a.store.CreateSession(&session); err != nil {
		return domain.ChatSession{}, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

func (a *App) ListSessions(userID int64) ([]domain.ChatSession, error) {
	return a.store.ListSessionsByUser(userID)
}

func (a *App) UpdateSession(id, userID int64, upd store.ChatSessionUpdate) (domain.ChatSession, error) {
	return a.store.UpdateSession(id, userID, upd)
}

// ListMessages returns a session's messages in creation order. Sessions the
// caller does not own look absent.
func (a *App) ListMessages(sessionID, userID int64) ([]domain.ChatMessage, error) {
	if _, err := a.store.GetSession(sessionID, userID); err != nil {
		return nil, err
	}
	return a.store.ListMessages(sessionID)
}

// PostMessage stores the user's message, generates the assistant reply and
// stores it too. The responder never lets provider errors escape, so a reply
// always comes back once the session check passes.
func (a *App) PostMessage(ctx context.Context, sessionID, userID int64, content string) (userMsg, assistantMsg domain.ChatMessage, err error) {
	if _, err = a.store.GetSession(sessionID, userID); err != nil {
		return domain.ChatMessage{}, domain.ChatMessage{}, err
	}
	prior, err := a.store.ListMessages(sessionID)
	if err != nil {
		return domain.ChatMessage{}, domain.ChatMessage{}, fmt.Errorf("list messages: %w", err)
	}

	userMsg = domain.ChatMessage{
		SessionID: sessionID,
		Role:      domain.RoleUser,
		Content:   content,
		Metadata:  map[string]any{"timestamp": time.Now().UTC().Format(time.RFC3339)},
	}
	if err = a.store.CreateMessage(&userMsg); err != nil {
		return domain.ChatMessage{}, domain.ChatMessage{}, fmt.Errorf("store user message: %w", err)
	}

	history := make([]ai.Turn, 0, len(prior))
	for _, m := range prior {
		history = append(history, ai.Turn{Role: m.Role, Content: m.Content})
	}
	reply, err := a.responder.Respond(ctx, content, history)
	if err != nil {
		return domain.ChatMessage{}, domain.ChatMessage{}, fmt.Errorf("generate reply: %w", err)
	}

	assistantMsg = domain.ChatMessage{
		SessionID: sessionID,
		Role:      domain.RoleAssistant,
		Content:   reply.Message,
		Metadata: map[string]any{
			"timestamp":  time.Now().UTC().Format(time.RFC3339),
			"mood":       reply.Mood.Mood,
			"confidence": reply.Mood.Confidence,
		},
	}
	if err = a.store.CreateMessage(&assistantMsg); err != nil {
		return domain.ChatMessage{}, domain.ChatMessage{}, fmt.Errorf("store assistant message: %w", err)
	}
	return userMsg, assistantMsg, nil
}

// AIChat answers a one-off message without any session. History alternates
// user/assistant starting from the user.
func (a *App) AIChat(ctx context.Context, message string, history []string) (ai.Reply, error) {
	turns := make([]ai.Turn, 0, len(history))
	for i, h := range history {
		role := domain.RoleUser
		if i%2 == 1 {
			role = domain.RoleAssistant
		}
		turns = append(turns, ai.Turn{Role: role, Content: h})
	}
	return a.responder.Respond(ctx, message, turns)
}

// JournalInsights produces an encouragement paragraph over submitted entries.
func (a *App) JournalInsights(ctx context.Context, entries []ai.JournalEntry) (string, error) {
	return a.responder.Insight(ctx, entries)
}
