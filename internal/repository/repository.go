package repository

import (
	"github.com/Mehboob-alam1/mahir-backend/pkg/database"
)

// Repositories holds all repository interfaces
type Repositories struct {
	User       UserRepository
	Category   CategoryRepository
	ResetToken ResetTokenRepository
}

// NewRepositories creates all repositories
func NewRepositories(db *database.Postgres) *Repositories {
	return &Repositories{
		User:       NewUserRepository(db),
		Category:   NewCategoryRepository(db),
		ResetToken: NewResetTokenRepository(db),
	}
}
