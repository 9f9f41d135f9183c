package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func fakeGemini(t *testing.T, handler http.HandlerFunc) *GeminiClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewGeminiClient("test-key")
	if err != nil {
		t.Fatal(err)
	}
	client.baseURL = srv.URL
	return client
}

func geminiText(t *testing.T, w http.ResponseWriter, text string) {
	t.Helper()
	resp := map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]string{{"text": text}}}},
		},
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		t.Fatal(err)
	}
}

func TestGeminiResponderRespond(t *testing.T) {
	var calls int
	client := fakeGemini(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if calls == 1 {
			geminiText(t, w, "That sounds like a lot. Want to tell me more?")
			return
		}
		geminiText(t, w, "```json\n{\"mood\":\"anxious\",\"confidence\":0.9,\"suggestions\":[\"breathe\"],\"supportiveMessage\":\"You've got this.\"}\n```")
	})
	r := NewGeminiResponder(client, "gemini-2.0-flash")

	reply, err := r.Respond(context.Background(), "exams are stressing me out", nil)
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if reply.Message != "That sounds like a lot. Want to tell me more?" {
		t.Errorf("unexpected message %q", reply.Message)
	}
	if reply.Mood.Mood != MoodAnxious {
		t.Errorf("mood = %q, want anxious", reply.Mood.Mood)
	}
	if reply.Mood.Confidence != 0.9 {
		t.Errorf("confidence = %v, want 0.9", reply.Mood.Confidence)
	}
	if calls != 2 {
		t.Errorf("expected 2 upstream calls, got %d", calls)
	}
}

func TestGeminiResponderMoodParseFailure(t *testing.T) {
	var calls int
	client := fakeGemini(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			geminiText(t, w, "Here for you.")
			return
		}
		geminiText(t, w, "sorry, I can't format that as JSON")
	})
	r := NewGeminiResponder(client, "gemini-2.0-flash")

	reply, err := r.Respond(context.Background(), "hi", nil)
	if err != nil {
		t.Fatal(err)
	}
	if reply.Mood.Mood != MoodNeutral {
		t.Errorf("mood = %q, want neutral default", reply.Mood.Mood)
	}
}

func TestGeminiResponderDegradesToLocal(t *testing.T) {
	client := fakeGemini(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
	})
	r := NewGeminiResponder(client, "gemini-2.0-flash")

	reply, err := r.Respond(context.Background(), "I feel sad tonight", nil)
	if err != nil {
		t.Fatalf("degraded Respond must not error: %v", err)
	}
	if reply.Mood.Mood != MoodSad {
		t.Errorf("fallback mood = %q, want sad", reply.Mood.Mood)
	}
	if !strings.Contains(reply.Message, "trusted adult") {
		t.Errorf("degraded reply should mention a trusted adult, got %q", reply.Message)
	}
	if strings.Contains(reply.Message, "quota exceeded") {
		t.Error("upstream error text leaked into the reply")
	}
}

func TestGeminiResponderInsightFallback(t *testing.T) {
	client := fakeGemini(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	r := NewGeminiResponder(client, "gemini-2.0-flash")

	insight, err := r.Insight(context.Background(), []JournalEntry{{Content: "rough week", Mood: "sad", Date: "2026-08-30"}})
	if err != nil {
		t.Fatalf("Insight fallback must not error: %v", err)
	}
	if insight == "" {
		t.Error("fallback insight must not be empty")
	}
}

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{`{"a":1}`, `{"a":1}`, true},
		{"prose before {\"a\":{\"b\":2}} prose after", `{"a":{"b":2}}`, true},
		{"no json here", "", false},
		{"{unterminated", "", false},
	}
	for _, tc := range cases {
		got, ok := extractJSON(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("extractJSON(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
