package repository

import (
	"context"
	"time"

	"github.com/Mehboob-alam1/mahir-backend/internal/domain"
)

// UserRepository defines methods for user operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetAll(ctx context.Context) ([]*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
}

// CategoryRepository defines methods for service-category reference data
type CategoryRepository interface {
	GetAll(ctx context.Context) ([]*domain.Category, error)
	// GetByIDs resolves category ids to rows. Ids that do not exist are
	// silently dropped, not an error.
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Category, error)
	Count(ctx context.Context) (int64, error)
	CreateAll(ctx context.Context, categories []*domain.Category) error
}

// ResetTokenRepository defines methods for password-reset tokens
type ResetTokenRepository interface {
	// Replace stores the token as the owning user's only live one,
	// displacing any prior token atomically. At most one live token per
	// user can exist, even under concurrent requests.
	Replace(ctx context.Context, token *domain.PasswordResetToken) error
	GetByToken(ctx context.Context, token string) (*domain.PasswordResetToken, error)
	// Consume atomically writes the owning user's new password hash and
	// deletes the token. Returns ErrNotFound if the token is already gone.
	Consume(ctx context.Context, token string, passwordHash string) error
	Delete(ctx context.Context, token string) error
	DeleteByUserID(ctx context.Context, userID int64) error
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) error
}
