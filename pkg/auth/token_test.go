package auth

import (
	"testing"
	"time"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)
	tok, err := tokens.Sign(42, "abc-123")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	id, err := tokens.Verify(tok)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if id != 42 {
		t.Errorf("got user ID %d, want 42", id)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	tok, err := NewTokens("secret-a", time.Hour).Sign(1, "u")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewTokens("secret-b", time.Hour).Verify(tok); err == nil {
		t.Error("expected verification to fail with a different secret")
	}
}

func TestVerifyExpired(t *testing.T) {
	tokens := NewTokens("test-secret", -time.Minute)
	tok, err := tokens.Sign(1, "u")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tokens.Verify(tok); err == nil {
		t.Error("expected expired token to be rejected")
	}
}

func TestVerifyGarbage(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)
	for _, tok := range []string{"", "not.a.jwt", "aaaa.bbbb.cccc"} {
		if _, err := tokens.Verify(tok); err == nil {
			t.Errorf("expected rejection of %q", tok)
		}
	}
}
