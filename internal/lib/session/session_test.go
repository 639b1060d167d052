package session

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := NewToken("alice", "secret", time.Hour)
	if err != nil {
		t.Fatalf("failed to create token: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	username, err := Verify(token, "secret")
	if err != nil {
		t.Fatalf("failed to verify token: %v", err)
	}
	if username != "alice" {
		t.Errorf("expected username 'alice', got %q", username)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	token, err := NewToken("alice", "secret", time.Hour)
	if err != nil {
		t.Fatalf("failed to create token: %v", err)
	}

	if _, err := Verify(token, "other"); err == nil {
		t.Error("expected verification to fail with a different secret")
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	token, err := NewToken("alice", "secret", -time.Minute)
	if err != nil {
		t.Fatalf("failed to create token: %v", err)
	}

	if _, err := Verify(token, "secret"); err == nil {
		t.Error("expected verification to fail for an expired token")
	}
}

func TestVerifyGarbage(t *testing.T) {
	if _, err := Verify("not-a-token", "secret"); err == nil {
		t.Error("expected verification to fail for malformed input")
	}
}
