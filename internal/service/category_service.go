package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Mehboob-alam1/mahir-backend/internal/domain"
	"github.com/Mehboob-alam1/mahir-backend/internal/dto"
	"github.com/Mehboob-alam1/mahir-backend/internal/repository"
	"github.com/Mehboob-alam1/mahir-backend/pkg/database"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	categoryCacheKey = "categories:all"
	categoryCacheTTL = time.Minute
)

// categoryService serves the read-only category lookup. The list is
// reference data, so reads go through a short-lived Redis cache; any cache
// error falls through to Postgres.
type categoryService struct {
	categories repository.CategoryRepository
	cache      *database.Redis // nil disables caching
	logger     *zap.Logger
}

// NewCategoryService creates a new category service. cache may be nil.
func NewCategoryService(categories repository.CategoryRepository, cache *database.Redis, logger *zap.Logger) CategoryService {
	return &categoryService{
		categories: categories,
		cache:      cache,
		logger:     logger,
	}
}

// GetAll returns every category ordered by name
func (s *categoryService) GetAll(ctx context.Context) ([]*dto.CategoryResponse, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	categories, err := s.categories.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	responses := make([]*dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, &dto.CategoryResponse{
			ID:          category.ID,
			Name:        category.Name,
			Description: category.Description,
		})
	}

	s.storeCache(ctx, responses)

	return responses, nil
}

// SeedDefaults loads the default service categories once, when the table is
// empty. Failures are logged and swallowed; the server still starts.
func (s *categoryService) SeedDefaults(ctx context.Context) {
	count, err := s.categories.Count(ctx)
	if err != nil {
		s.logger.Warn("failed to count categories, skipping seed", zap.Error(err))
		return
	}
	if count > 0 {
		return
	}

	defaults := defaultCategories()
	if err := s.categories.CreateAll(ctx, defaults); err != nil {
		s.logger.Warn("failed to seed categories", zap.Error(err))
		return
	}

	s.logger.Info("loaded default service categories", zap.Int("count", len(defaults)))
}

func (s *categoryService) fromCache(ctx context.Context) []*dto.CategoryResponse {
	if s.cache == nil {
		return nil
	}

	payload, err := s.cache.Client.Get(ctx, categoryCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Debug("category cache read failed", zap.Error(err))
		}
		return nil
	}

	var responses []*dto.CategoryResponse
	if err := json.Unmarshal(payload, &responses); err != nil {
		s.logger.Debug("category cache payload invalid", zap.Error(err))
		return nil
	}

	return responses
}

func (s *categoryService) storeCache(ctx context.Context, responses []*dto.CategoryResponse) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(responses)
	if err != nil {
		s.logger.Debug("category cache marshal failed", zap.Error(err))
		return
	}

	if err := s.cache.Client.Set(ctx, categoryCacheKey, payload, categoryCacheTTL).Err(); err != nil {
		s.logger.Debug("category cache write failed", zap.Error(err))
	}
}

func defaultCategories() []*domain.Category {
	return []*domain.Category{
		{Name: "Plumbing", Description: "Plumbing and pipe work"},
		{Name: "Electrical", Description: "Electrical repairs and installations"},
		{Name: "Cleaning", Description: "Home and office cleaning"},
		{Name: "Carpentry", Description: "Woodwork and furniture"},
		{Name: "Painting", Description: "Interior and exterior painting"},
		{Name: "AC & HVAC", Description: "Air conditioning and heating"},
		{Name: "Pest Control", Description: "Pest control services"},
		{Name: "Moving", Description: "Moving and relocation"},
		{Name: "Landscaping", Description: "Garden and landscaping"},
		{Name: "Other", Description: "Other home services"},
	}
}
