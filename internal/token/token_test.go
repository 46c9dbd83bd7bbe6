package token_test

import (
	"testing"
	"time"

	"github.com/ErlanBelekov/blog-platform/internal/domain"
	"github.com/ErlanBelekov/blog-platform/internal/token"
	"github.com/golang-jwt/jwt/v5"
)

const testKey = "token-test-secret-at-least-32-chars!"

func name(s string) *string { return &s }

var testUser = &domain.User{
	ID:       "user-1",
	Email:    "bob@example.com",
	Username: "bob",
	Name:     name("Bob"),
}

func newService(t *testing.T) *token.Service {
	t.Helper()
	svc, err := token.NewService([]byte(testKey))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return svc
}

func TestNewService_EmptyKeyRefused(t *testing.T) {
	if _, err := token.NewService(nil); err == nil {
		t.Fatal("expected error for empty key")
	}
}

func TestSignVerify_Roundtrip(t *testing.T) {
	svc := newService(t)

	signed, err := svc.Sign(testUser)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims := svc.Verify(signed)
	if claims == nil {
		t.Fatal("valid token rejected")
	}
	if claims.ID != testUser.ID {
		t.Errorf("id = %q, want %q", claims.ID, testUser.ID)
	}
	if claims.Email != testUser.Email {
		t.Errorf("email = %q, want %q", claims.Email, testUser.Email)
	}
	if claims.Username != testUser.Username {
		t.Errorf("username = %q, want %q", claims.Username, testUser.Username)
	}
	if claims.Name == nil || *claims.Name != "Bob" {
		t.Errorf("name = %v, want Bob", claims.Name)
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		t.Fatal("missing iat/exp")
	}
	ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if ttl != token.TTL {
		t.Errorf("ttl = %v, want %v", ttl, token.TTL)
	}
}

func TestVerify_TamperedToken(t *testing.T) {
	svc := newService(t)

	signed, err := svc.Sign(testUser)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Flip one byte in each section of the compact form.
	for _, i := range []int{2, len(signed) / 2, len(signed) - 2} {
		b := []byte(signed)
		if b[i] == 'A' {
			b[i] = 'B'
		} else {
			b[i] = 'A'
		}
		if claims := svc.Verify(string(b)); claims != nil {
			t.Errorf("tampered token at byte %d accepted", i)
		}
	}
}

func TestVerify_Expired(t *testing.T) {
	svc := newService(t)

	// Craft a token whose 7-day window has already passed.
	past := time.Now().Add(-8 * 24 * time.Hour)
	claims := token.Claims{
		ID:       testUser.ID,
		Email:    testUser.Email,
		Username: testUser.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(past),
			ExpiresAt: jwt.NewNumericDate(past.Add(token.TTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testKey))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if got := svc.Verify(signed); got != nil {
		t.Error("expired token accepted")
	}
}

func TestVerify_WrongKey(t *testing.T) {
	svc := newService(t)

	other, err := token.NewService([]byte("another-secret-also-32-characters!!!"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	signed, err := other.Sign(testUser)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if claims := svc.Verify(signed); claims != nil {
		t.Error("token signed with a different key accepted")
	}
}

func TestVerify_Garbage(t *testing.T) {
	svc := newService(t)

	for _, raw := range []string{"", "not-a-jwt", "a.b.c"} {
		if claims := svc.Verify(raw); claims != nil {
			t.Errorf("garbage token %q accepted", raw)
		}
	}
}
