package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Mehboob-alam1/mahir-backend/internal/domain"
	"github.com/Mehboob-alam1/mahir-backend/internal/dto"
	"github.com/Mehboob-alam1/mahir-backend/internal/mailer"
	"github.com/Mehboob-alam1/mahir-backend/internal/repository"
	"github.com/Mehboob-alam1/mahir-backend/internal/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateOfBirthLayout = "2006-01-02"

// authService implements AuthService interface
type authService struct {
	users         repository.UserRepository
	categories    repository.CategoryRepository
	resetTokens   repository.ResetTokenRepository
	jwtManager    *utils.JWTManager
	mail          *mailer.Mailer // nil when no SMTP host is configured
	logger        *zap.Logger
	bcryptCost    int
	resetBaseURL  string
	resetValidity time.Duration
}

// NewAuthService creates a new auth service. mail may be nil, in which case
// reset links are only logged.
func NewAuthService(
	users repository.UserRepository,
	categories repository.CategoryRepository,
	resetTokens repository.ResetTokenRepository,
	jwtManager *utils.JWTManager,
	mail *mailer.Mailer,
	logger *zap.Logger,
	bcryptCost int,
	resetBaseURL string,
	resetValidity time.Duration,
) AuthService {
	return &authService{
		users:         users,
		categories:    categories,
		resetTokens:   resetTokens,
		jwtManager:    jwtManager,
		mail:          mail,
		logger:        logger,
		bcryptCost:    bcryptCost,
		resetBaseURL:  resetBaseURL,
		resetValidity: resetValidity,
	}
}

// SignUp registers a new account and signs it in
func (s *authService) SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.AuthResponse, error) {
	role := domain.Role(req.Role)
	if !domain.ValidRole(role) {
		return nil, invalidInput(fmt.Sprintf("invalid role %q (expected USER or MAHIR)", req.Role))
	}

	accountType := domain.AccountType(req.AccountType)
	if !domain.ValidAccountType(accountType) {
		return nil, invalidInput(fmt.Sprintf("invalid account type %q (expected FREEMIUM or PREMIUM)", req.AccountType))
	}

	dateOfBirth, err := time.Parse(dateOfBirthLayout, req.DateOfBirth)
	if err != nil {
		return nil, invalidInput(fmt.Sprintf("invalid dateOfBirth %q (expected YYYY-MM-DD)", req.DateOfBirth))
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
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: passwordHash,
		PhoneNumber:  &req.PhoneNumber,
		DateOfBirth:  &dateOfBirth,
		Location: &domain.Location{
			StreetAddress: req.Location.StreetAddress,
			Latitude:      *req.Location.Latitude,
			Longitude:     *req.Location.Longitude,
		},
		AccountType: accountType,
		Role:        role,
	}

	if role == domain.RoleMahir {
		if len(req.ServiceCategoryIDs) > 0 {
			// Unknown ids are dropped here, not rejected
			categories, err := s.categories.GetByIDs(ctx, req.ServiceCategoryIDs)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve service categories: %w", err)
			}
			for _, category := range categories {
				user.ServiceCategories = append(user.ServiceCategories, *category)
			}
		}
		if req.CustomServiceName != "" {
			user.CustomServiceName = &req.CustomServiceName
		}
	}

	if err := s.users.Create(ctx, user); err != nil {
		// The unique index is the real guard against concurrent sign-ups
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, duplicate("email already registered: " + req.Email)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.authResponse(user, "Registration successful", true)
}

// SignIn authenticates a user by email and password. An unknown email and a
// wrong password fail with the identical message.
func (s *authService) SignIn(ctx context.Context, req *dto.SignInRequest) (*dto.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, unauthorized("invalid email or password")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, unauthorized("invalid email or password")
	}

	return s.authResponse(user, "Login successful", true)
}

// RefreshToken mints a brand-new access/refresh pair from a valid
// refresh-kind token. The old token is not revoked; the system is stateless.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, unauthorized("refresh token required")
	}

	if !s.jwtManager.IsRefreshToken(refreshToken) {
		return nil, unauthorized("invalid refresh token")
	}

	claims, err := s.jwtManager.ParseToken(refreshToken)
	if err != nil {
		return nil, unauthorized("invalid refresh token")
	}

	user, err := s.users.GetByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, unauthorized("user not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return s.authResponse(user, "Token refreshed", false)
}

// CheckSession validates an access-kind token and returns the sanitized user
// view. Every failure, including unexpected storage errors, is downgraded to
// the same unauthorized result.
func (s *authService) CheckSession(ctx context.Context, accessToken string) (*dto.AuthResponse, error) {
	if strings.TrimSpace(accessToken) == "" {
		return nil, unauthorized("session expired or invalid")
	}

	if !s.jwtManager.IsAccessToken(accessToken) {
		return nil, unauthorized("session expired or invalid")
	}

	claims, err := s.jwtManager.ParseToken(accessToken)
	if err != nil {
		return nil, unauthorized("session expired or invalid")
	}

	user, err := s.users.GetByEmail(ctx, claims.Email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("check session failed", zap.Error(err))
		}
		return nil, unauthorized("session expired or invalid")
	}

	return &dto.AuthResponse{
		Success: true,
		User:    mapUserResponse(user),
	}, nil
}

// ForgotPassword issues a single-use reset token and mails the reset link.
// An unknown email completes silently and a notifier failure is only logged,
// so the caller-visible outcome never reveals whether the account exists.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Debug("forgot password requested for unknown email", zap.String("email", email))
			return nil
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	token := strings.ReplaceAll(uuid.New().String(), "-", "")
	resetToken := &domain.PasswordResetToken{
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.resetValidity),
	}

	if err := s.resetTokens.Replace(ctx, resetToken); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", s.resetBaseURL, token)

	if s.mail == nil {
		s.logger.Info("no mail sender configured, reset link not emailed",
			zap.String("email", user.Email),
			zap.String("link", link),
		)
		return nil
	}

	if err := s.mail.SendPasswordReset(user.Email, link, s.resetValidity); err != nil {
		s.logger.Warn("failed to send reset email",
			zap.String("email", user.Email),
			zap.Error(err),
		)
		return nil
	}

	s.logger.Info("password reset email sent", zap.String("email", user.Email))
	return nil
}

// ResetPassword consumes a reset token and stores the new password. Unknown
// and expired tokens fail with the same message; an expired token is deleted
// on the way out so it cannot be retried.
func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	resetToken, err := s.resetTokens.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return unauthorized("invalid or expired reset token")
		}
		return fmt.Errorf("failed to get reset token: %w", err)
	}

	if resetToken.IsExpired(time.Now()) {
		if err := s.resetTokens.Delete(ctx, token); err != nil && !errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("failed to delete expired reset token", zap.Error(err))
		}
		return unauthorized("invalid or expired reset token")
	}

	passwordHash, err := utils.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.resetTokens.Consume(ctx, token, passwordHash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return unauthorized("invalid or expired reset token")
		}
		return fmt.Errorf("failed to reset password: %w", err)
	}

	s.logger.Info("password reset completed", zap.Int64("user_id", resetToken.UserID))
	return nil
}
