package ai

import (
	"context"
	"testing"
)

func TestLocalResponderKeywordMoods(t *testing.T) {
	r := NewLocalResponder()
	cases := []struct {
		message string
		mood    string
	}{
		{"I've been so anxious about exams", MoodAnxious},
		{"feeling totally overwhelmed by school", MoodAnxious},
		{"I'm really sad today", MoodSad},
		{"everything makes me so angry", MoodAngry},
		{"today was a great day!", MoodHappy},
	}
	for _, tc := range cases {
		reply, err := r.Respond(context.Background(), tc.message, nil)
		if err != nil {
			t.Fatalf("Respond(%q): %v", tc.message, err)
		}
		if reply.Mood.Mood != tc.mood {
			t.Errorf("Respond(%q) mood = %q, want %q", tc.message, reply.Mood.Mood, tc.mood)
		}
		if reply.Message == "" {
			t.Errorf("Respond(%q) returned empty message", tc.message)
		}
	}
}

func TestLocalResponderGenericFallback(t *testing.T) {
	r := NewLocalResponder()
	reply, err := r.Respond(context.Background(), "the weather changed", nil)
	if err != nil {
		t.Fatal(err)
	}
	if reply.Message == "" {
		t.Error("generic reply must not be empty")
	}
	if reply.Mood.Mood != MoodNeutral {
		t.Errorf("generic mood = %q, want neutral", reply.Mood.Mood)
	}
	if !ValidMood(reply.Mood.Mood) {
		t.Errorf("mood %q not in vocabulary", reply.Mood.Mood)
	}
}

func TestLocalResponderInsight(t *testing.T) {
	r := NewLocalResponder()
	insight, err := r.Insight(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if insight == "" {
		t.Error("insight must not be empty")
	}
}
