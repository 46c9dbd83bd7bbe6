package repository

import (
	"context"
	"time"

	"github.com/ErlanBelekov/blog-platform/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	MarkEmailVerified(ctx context.Context, id string) error
}

type VerificationCodeRepository interface {
	Create(ctx context.Context, userID, codeHash string, expiresAt time.Time) error
	// Claim atomically consumes an unused, unexpired code for the user.
	// Returns domain.ErrCodeInvalid when no such code exists.
	Claim(ctx context.Context, userID, codeHash string) error
	DeleteExpired(ctx context.Context, before time.Time, limit int) (int64, error)
}
