package service

import (
	"fmt"
	"time"

	"github.com/Mehboob-alam1/mahir-backend/internal/domain"
	"github.com/Mehboob-alam1/mahir-backend/internal/dto"
)

// authResponse issues a fresh access/refresh pair for the user and builds
// the response payload around it.
func (s *authService) authResponse(user *domain.User, message string, includeUser bool) (*dto.AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.Email, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.Email, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	response := &dto.AuthResponse{
		Success:      true,
		Message:      message,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    s.jwtManager.AccessExpirySeconds(),
	}

	if includeUser {
		response.User = mapUserResponse(user)
	}

	return response, nil
}

// mapUserResponse builds the sanitized user view. The password hash is never
// part of it.
func mapUserResponse(user *domain.User) *dto.UserResponse {
	response := &dto.UserResponse{
		ID:                user.ID,
		Role:              string(user.Role),
		FullName:          user.FullName,
		Email:             user.Email,
		AccountType:       string(user.AccountType),
		ServiceCategories: mapCategoryResponses(user.ServiceCategories),
		CreatedAt:         user.CreatedAt.Format(time.RFC3339),
	}

	if user.PhoneNumber != nil {
		response.PhoneNumber = *user.PhoneNumber
	}
	if user.DateOfBirth != nil {
		response.DateOfBirth = user.DateOfBirth.Format(dateOfBirthLayout)
	}
	if user.Location != nil {
		response.Location = &dto.LocationResponse{
			StreetAddress: user.Location.StreetAddress,
			Latitude:      user.Location.Latitude,
			Longitude:     user.Location.Longitude,
		}
	}
	if user.CustomServiceName != nil {
		response.CustomServiceName = *user.CustomServiceName
	}

	return response
}

func mapCategoryResponses(categories []domain.Category) []dto.CategoryResponse {
	if len(categories) == 0 {
		return nil
	}

	responses := make([]dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, dto.CategoryResponse{
			ID:          category.ID,
			Name:        category.Name,
			Description: category.Description,
		})
	}

	return responses
}
