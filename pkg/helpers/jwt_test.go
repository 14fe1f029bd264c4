package helpers

import (
	"testing"
	"time"
)

func TestAccessToken_RoundTrip(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("access-secret", "refresh-secret", time.Hour)

	tok, exp, err := m.GenerateAccessToken("user-123", "a@x.com", "user")
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Fatalf("expected future expiry, got %v", exp)
	}

	claims, err := m.ParseAccessToken(tok)
	if err != nil {
		t.Fatalf("ParseAccessToken error: %v", err)
	}
	if claims.UserID != "user-123" || claims.Email != "a@x.com" || claims.Role != "user" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestAccessToken_Expired(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("access-secret", "refresh-secret", -1*time.Second)
	tok, _, err := m.GenerateAccessToken("u1", "u1@x.com", "user")
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}
	if _, err := m.ParseAccessToken(tok); err == nil {
		t.Fatalf("expected error for expired token, got nil")
	}
}

func TestRefreshToken_NoExpiry(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("access-secret", "refresh-secret", time.Hour)
	tok, err := m.GenerateRefreshToken("u2", "u2@x.com", "admin")
	if err != nil {
		t.Fatalf("GenerateRefreshToken error: %v", err)
	}

	claims, err := m.ParseRefreshToken(tok)
	if err != nil {
		t.Fatalf("ParseRefreshToken error: %v", err)
	}
	if claims.ExpiresAt != nil {
		t.Fatalf("refresh token must not carry exp, got %v", claims.ExpiresAt)
	}
	if claims.Role != "admin" {
		t.Fatalf("role mismatch: got %q", claims.Role)
	}
}

func TestTokens_DistinctSecrets(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("access-secret", "refresh-secret", time.Hour)
	access, _, err := m.GenerateAccessToken("u3", "u3@x.com", "user")
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}
	// an access token must not validate as a refresh token
	if _, err := m.ParseRefreshToken(access); err == nil {
		t.Fatalf("expected error parsing access token with refresh secret, got nil")
	}
}

func TestParseAccessToken_Malformed(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("a", "b", time.Hour)
	if _, err := m.ParseAccessToken("not.a.jwt"); err == nil {
		t.Fatalf("expected error for malformed token, got nil")
	}
}
