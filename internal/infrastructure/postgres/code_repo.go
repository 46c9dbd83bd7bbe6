package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ErlanBelekov/blog-platform/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VerificationCodeRepository struct {
	pool *pgxpool.Pool
}

func NewVerificationCodeRepository(pool *pgxpool.Pool) *VerificationCodeRepository {
	return &VerificationCodeRepository{pool: pool}
}

func (r *VerificationCodeRepository) Create(ctx context.Context, userID, codeHash string, expiresAt time.Time) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO verification_codes (user_id, code_hash, expires_at) VALUES ($1, $2, $3)`,
		userID, codeHash, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("create verification code: %w", err)
	}
	return nil
}

// Claim consumes the code in a single statement so a code can never be
// redeemed twice or after its window.
func (r *VerificationCodeRepository) Claim(ctx context.Context, userID, codeHash string) error {
	query := `
		UPDATE verification_codes
		SET used_at = NOW()
		WHERE user_id = $1
		  AND code_hash = $2
		  AND used_at IS NULL
		  AND expires_at > NOW()
		RETURNING id`

	var id string
	err := r.pool.QueryRow(ctx, query, userID, codeHash).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrCodeInvalid
		}
		return fmt.Errorf("claim verification code: %w", err)
	}
	return nil
}

func (r *VerificationCodeRepository) DeleteExpired(ctx context.Context, before time.Time, limit int) (int64, error) {
	query := `
		DELETE FROM verification_codes
		WHERE id IN (
			SELECT id FROM verification_codes
			WHERE expires_at < $1 OR used_at IS NOT NULL
			LIMIT $2
		)`

	tag, err := r.pool.Exec(ctx, query, before, limit)
	if err != nil {
		return 0, fmt.Errorf("delete expired codes: %w", err)
	}
	return tag.RowsAffected(), nil
}
