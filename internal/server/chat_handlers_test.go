package server

import (
	"net/http"
	"strconv"
	"testing"

	"youthwell/pkg/ai"
)

func sessionPath(id int64) string {
	return "/api/chat/sessions/" + strconv.FormatInt(id, 10)
}

func TestChatSessionFlow(t *testing.T) {
	e := newTestServer(t)
	token := e.anonymousToken(t)

	status, body := e.doJSON(t, http.MethodPost, "/api/chat/sessions", token, map[string]any{
		"sessionTitle": "Evening check-in",
	})
	if status != http.StatusCreated {
		t.Fatalf("create session = %d %v", status, body)
	}
	session := body["session"].(map[string]any)
	id := int64(session["id"].(float64))
	if session["isActive"] != true {
		t.Fatalf("session = %v", session)
	}

	status, body = e.doJSON(t, http.MethodPost, sessionPath(id)+"/messages", token, map[string]any{
		"content": "I've been feeling anxious about school",
	})
	if status != http.StatusCreated {
		t.Fatalf("post message = %d %v", status, body)
	}
	userMsg := body["userMessage"].(map[string]any)
	assistantMsg := body["assistantMessage"].(map[string]any)
	if userMsg["role"] != "user" || assistantMsg["role"] != "assistant" {
		t.Fatalf("roles = %v / %v", userMsg["role"], assistantMsg["role"])
	}
	if assistantMsg["content"] == "" {
		t.Fatal("assistant reply is empty")
	}

	status, body = e.doJSON(t, http.MethodGet, sessionPath(id)+"/messages", token, nil)
	if status != http.StatusOK {
		t.Fatalf("list messages = %d %v", status, body)
	}
	messages := body["messages"].([]any)
	if len(messages) != 2 {
		t.Fatalf("message count = %d, want 2", len(messages))
	}
	// creation order: user first, then assistant
	first := messages[0].(map[string]any)
	if first["role"] != "user" {
		t.Fatalf("first message role = %v, want user", first["role"])
	}
}

func TestChatSessionUpdatePersists(t *testing.T) {
	e := newTestServer(t)
	token := e.anonymousToken(t)

	status, body := e.doJSON(t, http.MethodPost, "/api/chat/sessions", token, map[string]any{})
	if status != http.StatusCreated {
		t.Fatalf("create session = %d %v", status, body)
	}
	id := int64(body["session"].(map[string]any)["id"].(float64))

	status, body = e.doJSON(t, http.MethodPut, sessionPath(id), token, map[string]any{
		"sessionTitle": "Renamed",
		"isActive":     false,
	})
	if status != http.StatusOK {
		t.Fatalf("update session = %d %v", status, body)
	}

	status, body = e.doJSON(t, http.MethodGet, "/api/chat/sessions", token, nil)
	if status != http.StatusOK {
		t.Fatalf("list sessions = %d %v", status, body)
	}
	sessions := body["sessions"].([]any)
	if len(sessions) != 1 {
		t.Fatalf("session count = %d", len(sessions))
	}
	got := sessions[0].(map[string]any)
	if got["sessionTitle"] != "Renamed" || got["isActive"] != false {
		t.Fatalf("update did not persist: %v", got)
	}
}

func TestChatSessionOwnershipHiddenAs404(t *testing.T) {
	e := newTestServer(t)
	owner := e.anonymousToken(t)
	other := e.anonymousToken(t)

	status, body := e.doJSON(t, http.MethodPost, "/api/chat/sessions", owner, map[string]any{})
	if status != http.StatusCreated {
		t.Fatalf("create session = %d %v", status, body)
	}
	id := int64(body["session"].(map[string]any)["id"].(float64))

	status, _ = e.doJSON(t, http.MethodPost, sessionPath(id)+"/messages", other, map[string]any{
		"content": "hello",
	})
	if status != http.StatusNotFound {
		t.Fatalf("cross-user post = %d, want 404", status)
	}
}

func TestAIChatUnauthenticated(t *testing.T) {
	e := newTestServer(t)

	status, body := e.doJSON(t, http.MethodPost, "/api/chat/ai-chat", "", map[string]any{
		"message":             "I feel sad today",
		"conversationHistory": []string{"hi", "Hello! How are you feeling?"},
	})
	if status != http.StatusOK {
		t.Fatalf("ai-chat = %d %v", status, body)
	}
	if body["message"] == "" {
		t.Fatal("reply message is empty")
	}
	mood := body["mood"].(map[string]any)
	if !ai.ValidMood(mood["mood"].(string)) {
		t.Fatalf("mood %v not in vocabulary", mood["mood"])
	}
	if mood["mood"] != "sad" {
		t.Fatalf("mood = %v, want sad from keyword responder", mood["mood"])
	}
}

func TestJournalInsights(t *testing.T) {
	e := newTestServer(t)

	status, body := e.doJSON(t, http.MethodPost, "/api/chat/journal-insights", "", map[string]any{
		"entries": []map[string]string{
			{"content": "rough week at school", "mood": "sad", "date": "2026-08-28"},
			{"content": "better after talking to mom", "mood": "happy", "date": "2026-08-30"},
		},
	})
	if status != http.StatusOK {
		t.Fatalf("insights = %d %v", status, body)
	}
	if body["insight"] == "" {
		t.Fatal("insight is empty")
	}

	status, body = e.doJSON(t, http.MethodPost, "/api/chat/journal-insights", "", map[string]any{
		"entries": []map[string]string{},
	})
	if status != http.StatusBadRequest {
		t.Fatalf("empty entries = %d %v", status, body)
	}
}
