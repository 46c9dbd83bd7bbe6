package usecase

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/ErlanBelekov/blog-platform/internal/domain"
	"github.com/ErlanBelekov/blog-platform/internal/email"
	"github.com/ErlanBelekov/blog-platform/internal/metrics"
	"github.com/ErlanBelekov/blog-platform/internal/password"
	"github.com/ErlanBelekov/blog-platform/internal/repository"
)

const codeTTL = 10 * time.Minute

type AuthUsecase struct {
	users  repository.UserRepository
	codes  repository.VerificationCodeRepository
	email  email.Sender
	logger *slog.Logger
}

func NewAuthUsecase(users repository.UserRepository, codes repository.VerificationCodeRepository, emailSender email.Sender, logger *slog.Logger) *AuthUsecase {
	return &AuthUsecase{
		users:  users,
		codes:  codes,
		email:  emailSender,
		logger: logger.With("component", "auth_usecase"),
	}
}

type RegisterInput struct {
	Email    string
	Username string
	Password string
	Name     *string
}

// Register creates an unverified account and emails it a verification code.
func (u *AuthUsecase) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	hash, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user, err := u.users.Create(ctx, &domain.User{
		Email:        input.Email,
		Username:     input.Username,
		Name:         input.Name,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := u.issueCode(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks the credentials and returns the account. A missing account
// and a wrong password are indistinguishable to the caller.
func (u *AuthUsecase) Login(ctx context.Context, emailAddr, plaintext string) (*domain.User, error) {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !password.Verify(plaintext, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.EmailVerified {
		return nil, domain.ErrEmailNotVerified
	}
	return user, nil
}

// VerifyEmail redeems a code within its 10-minute window and flips the
// account's verified flag.
func (u *AuthUsecase) VerifyEmail(ctx context.Context, emailAddr, code string) (*domain.User, error) {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrCodeInvalid
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := u.codes.Claim(ctx, user.ID, hashCode(code)); err != nil {
		if errors.Is(err, domain.ErrCodeInvalid) {
			return nil, domain.ErrCodeInvalid
		}
		return nil, fmt.Errorf("claim code: %w", err)
	}

	if err := u.users.MarkEmailVerified(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("mark verified: %w", err)
	}

	user.EmailVerified = true
	return user, nil
}

// ResendCode issues a fresh code for an unverified account. Unknown and
// already-verified emails succeed silently so the endpoint cannot be used
// to probe which accounts exist.
func (u *AuthUsecase) ResendCode(ctx context.Context, emailAddr string) error {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return fmt.Errorf("find user: %w", err)
	}
	if user.EmailVerified {
		return nil
	}
	return u.issueCode(ctx, user)
}

func (u *AuthUsecase) issueCode(ctx context.Context, user *domain.User) error {
	code, err := GenerateVerificationCode()
	if err != nil {
		return err
	}

	expiresAt := time.Now().Add(codeTTL)
	if err := u.codes.Create(ctx, user.ID, hashCode(code), expiresAt); err != nil {
		return fmt.Errorf("store verification code: %w", err)
	}

	subject, body := email.VerificationMail(code)
	if err := u.email.Send(ctx, user.Email, subject, body); err != nil {
		metrics.VerificationEmailsTotal.WithLabelValues("error").Inc()
		u.logger.ErrorContext(ctx, "send verification email", "error", err)
		return domain.ErrEmailSendFailed
	}

	metrics.VerificationEmailsTotal.WithLabelValues("success").Inc()
	return nil
}

// GenerateVerificationCode returns a uniformly random 6-digit decimal
// string in [100000, 999999].
func GenerateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func hashCode(code string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(code)))
}
