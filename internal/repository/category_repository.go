package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Mehboob-alam1/mahir-backend/internal/domain"
	"github.com/Mehboob-alam1/mahir-backend/pkg/database"
	"github.com/lib/pq"
)

// categoryRepository implements CategoryRepository interface
type categoryRepository struct {
	db *database.Postgres
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *database.Postgres) CategoryRepository {
	return &categoryRepository{db: db}
}

// GetAll retrieves every category ordered by name
func (r *categoryRepository) GetAll(ctx context.Context) ([]*domain.Category, error) {
	query := `SELECT id, name, description FROM categories ORDER BY name`

	rows, err := r.db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	return scanCategories(rows)
}

// GetByIDs resolves ids to category rows; unknown ids are dropped
func (r *categoryRepository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT id, name, description FROM categories WHERE id = ANY($1) ORDER BY name`

	rows, err := r.db.DB.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to get categories by ids: %w", err)
	}
	defer rows.Close()

	return scanCategories(rows)
}

// Count returns the number of stored categories
func (r *categoryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}
	return count, nil
}

// CreateAll inserts the given categories, assigning their ids
func (r *categoryRepository) CreateAll(ctx context.Context, categories []*domain.Category) error {
	tx, err := r.db.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, category := range categories {
		err := tx.QueryRowContext(ctx,
			`INSERT INTO categories (name, description) VALUES ($1, $2) RETURNING id`,
			category.Name, category.Description,
		).Scan(&category.ID)
		if err != nil {
			return fmt.Errorf("failed to create category %s: %w", category.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit categories: %w", err)
	}

	return nil
}

func scanCategories(rows *sql.Rows) ([]*domain.Category, error) {
	var categories []*domain.Category
	for rows.Next() {
		category := &domain.Category{}
		var description sql.NullString
		if err := rows.Scan(&category.ID, &category.Name, &description); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		category.Description = description.String
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}

	return categories, nil
}
