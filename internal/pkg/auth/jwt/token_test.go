package jwt

import (
	"testing"
	"time"
)

func TestGenerateAndParseToken(t *testing.T) {
	payload := &Payload{
		UserID:   7,
		Username: "alice",
		Name:     "Alice",
	}

	token, err := GenerateToken(payload, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	parsed, err := ParseToken(token, "test-secret")
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}

	if parsed.UserID != 7 || parsed.Username != "alice" || parsed.Name != "Alice" {
		t.Fatalf("parsed payload = %+v, want original fields", parsed)
	}
	if parsed.Issuer != TokenIssuer {
		t.Fatalf("issuer = %q, want %q", parsed.Issuer, TokenIssuer)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	payload := &Payload{UserID: 7, Username: "alice"}

	token, err := GenerateToken(payload, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := ParseToken(token, "another-secret"); err == nil {
		t.Fatal("ParseToken accepted a token signed with a different secret")
	}
}

func TestParseTokenExpired(t *testing.T) {
	payload := &Payload{UserID: 7, Username: "alice"}

	token, err := GenerateToken(payload, "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := ParseToken(token, "test-secret"); err == nil {
		t.Fatal("ParseToken accepted an expired token")
	}
}
