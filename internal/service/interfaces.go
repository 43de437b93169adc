package service

import (
	"context"

	"github.com/Mehboob-alam1/mahir-backend/internal/dto"
)

// AuthService defines the authentication and session lifecycle
type AuthService interface {
	SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.AuthResponse, error)
	SignIn(ctx context.Context, req *dto.SignInRequest) (*dto.AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error)
	CheckSession(ctx context.Context, accessToken string) (*dto.AuthResponse, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// UserService defines the generic user CRUD operations
type UserService interface {
	Create(ctx context.Context, req *dto.UserRequest) (*dto.UserResponse, error)
	GetAll(ctx context.Context) ([]*dto.UserResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.UserResponse, error)
	Update(ctx context.Context, id int64, req *dto.UserRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, id int64) error
}

// CategoryService defines the read-only category lookup
type CategoryService interface {
	GetAll(ctx context.Context) ([]*dto.CategoryResponse, error)
	// SeedDefaults is best effort: a storage failure is logged and the
	// service starts without reference data rather than aborting.
	SeedDefaults(ctx context.Context)
}
