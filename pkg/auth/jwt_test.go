package auth

import (
	"errors"
	"testing"
	"time"

	"bookstore/config"
	"bookstore/domain/user"
)

func newTestService(secret string, expiration time.Duration) *TokenService {
	return NewTokenService(&config.JWTConfig{Secret: secret, Expiration: expiration})
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTestService("test-secret", time.Hour)

	token, err := svc.GenerateToken("alice@example.com", user.RoleAdmin, time.Now())
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	principal, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if principal.Email != "alice@example.com" || principal.Role != user.RoleAdmin {
		t.Errorf("principal = %+v", principal)
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	svc := newTestService("test-secret", time.Hour)

	issuedAt := time.Now().Add(-2 * time.Hour)
	token, err := svc.GenerateToken("alice@example.com", user.RoleUser, issuedAt)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired token: got %v, want ErrInvalidToken", err)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	issuer := newTestService("secret-one", time.Hour)
	verifier := newTestService("secret-two", time.Hour)

	token, err := issuer.GenerateToken("alice@example.com", user.RoleUser, time.Now())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := verifier.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("wrong secret: got %v, want ErrInvalidToken", err)
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	svc := newTestService("test-secret", time.Hour)

	for _, token := range []string{"", "not-a-token", "aaa.bbb.ccc"} {
		if _, err := svc.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("ParseToken(%q): got %v, want ErrInvalidToken", token, err)
		}
	}
}
