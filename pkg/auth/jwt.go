// Package auth issues and verifies the JWT bearer tokens the API uses to
// establish the acting principal.
package auth

import (
	"errors"
	"fmt"
	"time"

	"bookstore/config"
	"bookstore/domain/user"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure: bad signature,
// malformed token, expiry.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the token payload. Subject carries the user email.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies HS256 tokens.
type TokenService struct {
	secret     []byte
	expiration time.Duration
}

// NewTokenService creates a token service from configuration.
func NewTokenService(cfg *config.JWTConfig) *TokenService {
	return &TokenService{
		secret:     []byte(cfg.Secret),
		expiration: cfg.Expiration,
	}
}

// GenerateToken issues a signed token for the given account.
func (s *TokenService) GenerateToken(email string, role user.Role, now time.Time) (string, error) {
	claims := Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies a token and returns the principal it encodes.
func (s *TokenService) ParseToken(tokenString string) (user.Principal, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return user.Principal{}, ErrInvalidToken
	}
	return user.Principal{Email: claims.Subject, Role: user.Role(claims.Role)}, nil
}
