// Package token signs and verifies the stateless session credential.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/ErlanBelekov/blog-platform/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// TTL is the session lifetime; the cookie max-age mirrors it.
const TTL = 7 * 24 * time.Hour

// Claims is the identity payload carried by a session token.
type Claims struct {
	ID       string  `json:"id"`
	Email    string  `json:"email"`
	Username string  `json:"username"`
	Name     *string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

type Service struct {
	key []byte
	ttl time.Duration
}

// NewService builds a token service around a symmetric HS256 key.
// An empty key is refused: operating with no secret must fail at startup,
// not degrade into signing with a known value.
func NewService(key []byte) (*Service, error) {
	if len(key) == 0 {
		return nil, errors.New("token: signing key must not be empty")
	}
	return &Service{key: key, ttl: TTL}, nil
}

// Sign issues a token for the user with iat=now and exp=now+7d.
func (s *Service) Sign(user *domain.User) (string, error) {
	now := time.Now()
	claims := Claims{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
		Name:     user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify validates signature and expiry and returns the claims, or nil on
// any failure. Callers never learn why a token was rejected.
func (s *Service) Verify(raw string) *Claims {
	parsed, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.key, nil
	})
	if err != nil || !parsed.Valid {
		return nil
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || claims.ID == "" {
		return nil
	}
	return claims
}
