package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrCodeInvalid        = errors.New("verification code is invalid or expired")
	ErrEmailSendFailed    = errors.New("failed to send verification email")
)

type User struct {
	ID            string
	Email         string
	Username      string
	Name          *string
	PasswordHash  string
	EmailVerified bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// VerificationCode is a pending email-verification code. Only the SHA-256
// of the code is stored; the plaintext exists in the outgoing email only.
type VerificationCode struct {
	ID        string
	UserID    string
	CodeHash  string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}
