package auth

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("hash equals plaintext")
	}
	if !CheckPassword("correct horse battery staple", hash) {
		t.Error("expected match for correct password")
	}
	if CheckPassword("wrong password", hash) {
		t.Error("expected mismatch for wrong password")
	}
}

func TestHashPasswordSalted(t *testing.T) {
	a, err := HashPassword("same input")
	if err != nil {
		t.Fatal(err)
	}
	b, err := HashPassword("same input")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("two hashes of the same password should differ")
	}
}
