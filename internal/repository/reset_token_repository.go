package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Mehboob-alam1/mahir-backend/internal/domain"
	"github.com/Mehboob-alam1/mahir-backend/pkg/database"
	"github.com/lib/pq"
)

// resetTokenRepository implements ResetTokenRepository interface
type resetTokenRepository struct {
	db *database.Postgres
}

// NewResetTokenRepository creates a new password-reset token repository
func NewResetTokenRepository(db *database.Postgres) ResetTokenRepository {
	return &resetTokenRepository{db: db}
}

// Replace stores the token as the user's only live one. The unique index on
// user_id makes this an upsert, so two concurrent forgot-password requests
// serialize on the row and exactly one token survives.
func (r *resetTokenRepository) Replace(ctx context.Context, token *domain.PasswordResetToken) error {
	query := `
		INSERT INTO password_reset_tokens (token, user_id, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET token = EXCLUDED.token, expires_at = EXCLUDED.expires_at
		RETURNING id
	`

	err := r.db.DB.QueryRowContext(ctx, query,
		token.Token, token.UserID, token.ExpiresAt,
	).Scan(&token.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation on the token value itself
				return fmt.Errorf("reset token collision: %w", ErrDuplicateToken)
			}
		}
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	return nil
}

// GetByToken retrieves a reset token by its opaque string
func (r *resetTokenRepository) GetByToken(ctx context.Context, token string) (*domain.PasswordResetToken, error) {
	query := `SELECT id, token, user_id, expires_at FROM password_reset_tokens WHERE token = $1`

	resetToken := &domain.PasswordResetToken{}
	err := r.db.DB.QueryRowContext(ctx, query, token).Scan(
		&resetToken.ID,
		&resetToken.Token,
		&resetToken.UserID,
		&resetToken.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("reset token not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get reset token: %w", err)
	}

	return resetToken, nil
}

// Consume writes the owning user's new password hash and removes the token
// in one transaction. A token that was deleted concurrently yields
// ErrNotFound and no password change.
func (r *resetTokenRepository) Consume(ctx context.Context, token string, passwordHash string) error {
	tx, err := r.db.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var userID int64
	err = tx.QueryRowContext(ctx,
		`DELETE FROM password_reset_tokens WHERE token = $1 RETURNING user_id`, token,
	).Scan(&userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("reset token not found: %w", ErrNotFound)
		}
		return fmt.Errorf("failed to consume reset token: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE users SET password_hash = $2 WHERE id = $1`, userID, passwordHash,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit password reset: %w", err)
	}

	return nil
}

// Delete removes a reset token by its opaque string
func (r *resetTokenRepository) Delete(ctx context.Context, token string) error {
	result, err := r.db.DB.ExecContext(ctx,
		`DELETE FROM password_reset_tokens WHERE token = $1`, token,
	)
	if err != nil {
		return fmt.Errorf("failed to delete reset token: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("reset token not found: %w", ErrNotFound)
	}

	return nil
}

// DeleteByUserID removes every reset token of a user
func (r *resetTokenRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	_, err := r.db.DB.ExecContext(ctx,
		`DELETE FROM password_reset_tokens WHERE user_id = $1`, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete reset tokens by user id: %w", err)
	}

	return nil
}

// DeleteExpiredBefore garbage-collects tokens that expired before the cutoff
func (r *resetTokenRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) error {
	_, err := r.db.DB.ExecContext(ctx,
		`DELETE FROM password_reset_tokens WHERE expires_at < $1`, cutoff,
	)
	if err != nil {
		return fmt.Errorf("failed to delete expired reset tokens: %w", err)
	}

	return nil
}
