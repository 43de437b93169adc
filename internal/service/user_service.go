package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mehboob-alam1/mahir-backend/internal/domain"
	"github.com/Mehboob-alam1/mahir-backend/internal/dto"
	"github.com/Mehboob-alam1/mahir-backend/internal/repository"
	"github.com/Mehboob-alam1/mahir-backend/internal/utils"
)

// userService implements the peripheral user CRUD. It operates on the same
// user records the auth lifecycle creates, touching only name, email and
// password.
type userService struct {
	users       repository.UserRepository
	resetTokens repository.ResetTokenRepository
	bcryptCost  int
}

// NewUserService creates a new user service
func NewUserService(users repository.UserRepository, resetTokens repository.ResetTokenRepository, bcryptCost int) UserService {
	return &userService{
		users:       users,
		resetTokens: resetTokens,
		bcryptCost:  bcryptCost,
	}
}

// Create creates a user with the default USER role
func (s *userService) Create(ctx context.Context, req *dto.UserRequest) (*dto.UserResponse, error) {
	if req.Password == "" {
		return nil, invalidInput("password is required for new users")
	}

	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check user existence: %w", err)
	}
	if exists {
		return nil, duplicate("email already registered: " + req.Email)
	}

	passwordHash, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		FullName:     req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         domain.RoleUser,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, duplicate("email already registered: " + req.Email)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return mapUserResponse(user), nil
}

// GetAll lists every user
func (s *userService) GetAll(ctx context.Context) ([]*dto.UserResponse, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]*dto.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, mapUserResponse(user))
	}

	return responses, nil
}

// GetByID retrieves one user
func (s *userService) GetByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound(fmt.Sprintf("user not found with id: %d", id))
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return mapUserResponse(user), nil
}

// Update changes name and email, and re-hashes the password only when a new
// one is provided.
func (s *userService) Update(ctx context.Context, id int64, req *dto.UserRequest) (*dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound(fmt.Sprintf("user not found with id: %d", id))
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user.Email != req.Email {
		exists, err := s.users.ExistsByEmail(ctx, req.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check user existence: %w", err)
		}
		if exists {
			return nil, duplicate("email already registered: " + req.Email)
		}
	}

	user.FullName = req.Name
	user.Email = req.Email
	if req.Password != "" {
		passwordHash, err := utils.HashPassword(req.Password, s.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = passwordHash
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, duplicate("email already registered: " + req.Email)
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound(fmt.Sprintf("user not found with id: %d", id))
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return mapUserResponse(user), nil
}

// Delete removes a user together with any live reset tokens
func (s *userService) Delete(ctx context.Context, id int64) error {
	if err := s.resetTokens.DeleteByUserID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete reset tokens: %w", err)
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(fmt.Sprintf("user not found with id: %d", id))
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}
