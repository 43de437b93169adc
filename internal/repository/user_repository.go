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

// userRepository implements UserRepository interface
type userRepository struct {
	db *database.Postgres
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.Postgres) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, full_name, email, password_hash, phone_number, date_of_birth,
		street_address, latitude, longitude, account_type, role, custom_service_name, created_at`

// Create inserts a user and its category links in one transaction. The id
// and creation timestamp are assigned here; created_at is never written
// again afterwards.
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	tx, err := r.db.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO users (full_name, email, password_hash, phone_number, date_of_birth,
			street_address, latitude, longitude, account_type, role, custom_service_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	var streetAddress sql.NullString
	var latitude, longitude sql.NullFloat64
	if user.Location != nil {
		streetAddress = sql.NullString{String: user.Location.StreetAddress, Valid: user.Location.StreetAddress != ""}
		latitude = sql.NullFloat64{Float64: user.Location.Latitude, Valid: true}
		longitude = sql.NullFloat64{Float64: user.Location.Longitude, Valid: true}
	}

	err = tx.QueryRowContext(ctx, query,
		user.FullName,
		user.Email,
		user.PasswordHash,
		user.PhoneNumber,
		user.DateOfBirth,
		streetAddress,
		latitude,
		longitude,
		nullString(string(user.AccountType)),
		string(user.Role),
		user.CustomServiceName,
		user.CreatedAt,
	).Scan(&user.ID)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return fmt.Errorf("user with email %s already exists: %w", user.Email, ErrDuplicateEmail)
			}
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	for _, category := range user.ServiceCategories {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO user_service_categories (user_id, category_id) VALUES ($1, $2)`,
			user.ID, category.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to link category %d: %w", category.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit user creation: %w", err)
	}

	return nil
}

// GetByEmail retrieves a user by exact email match
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := r.scanUser(r.db.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with email %s not found: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := r.loadCategories(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := r.scanUser(r.db.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with id %d not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	if err := r.loadCategories(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetAll retrieves every user. Category links are not loaded here; the
// listing callers only need the basic record.
func (r *userRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`

	rows, err := r.db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user, err := r.scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

// ExistsByEmail reports whether a user with the given email exists
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}

// Update updates the mutable basic fields of a user. The creation timestamp
// is deliberately not part of the statement.
func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET full_name = $2, email = $3, password_hash = $4
		WHERE id = $1
	`

	result, err := r.db.DB.ExecContext(ctx, query,
		user.ID,
		user.FullName,
		user.Email,
		user.PasswordHash,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return fmt.Errorf("user with email %s already exists: %w", user.Email, ErrDuplicateEmail)
			}
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	return r.requireRowsAffected(result, user.ID)
}

// Delete removes a user and its category links
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return r.requireRowsAffected(result, id)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *userRepository) scanUser(row rowScanner) (*domain.User, error) {
	user := &domain.User{}
	var phoneNumber, streetAddress, accountType, customServiceName sql.NullString
	var dateOfBirth sql.NullTime
	var latitude, longitude sql.NullFloat64
	var role string

	err := row.Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.PasswordHash,
		&phoneNumber,
		&dateOfBirth,
		&streetAddress,
		&latitude,
		&longitude,
		&accountType,
		&role,
		&customServiceName,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.Role = domain.Role(role)
	if phoneNumber.Valid {
		user.PhoneNumber = &phoneNumber.String
	}
	if dateOfBirth.Valid {
		user.DateOfBirth = &dateOfBirth.Time
	}
	if accountType.Valid {
		user.AccountType = domain.AccountType(accountType.String)
	}
	if customServiceName.Valid {
		user.CustomServiceName = &customServiceName.String
	}
	if latitude.Valid && longitude.Valid {
		user.Location = &domain.Location{
			StreetAddress: streetAddress.String,
			Latitude:      latitude.Float64,
			Longitude:     longitude.Float64,
		}
	}

	return user, nil
}

func (r *userRepository) loadCategories(ctx context.Context, user *domain.User) error {
	query := `
		SELECT c.id, c.name, c.description
		FROM categories c
		JOIN user_service_categories usc ON usc.category_id = c.id
		WHERE usc.user_id = $1
		ORDER BY c.name
	`

	rows, err := r.db.DB.QueryContext(ctx, query, user.ID)
	if err != nil {
		return fmt.Errorf("failed to load user categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var category domain.Category
		var description sql.NullString
		if err := rows.Scan(&category.ID, &category.Name, &description); err != nil {
			return fmt.Errorf("failed to scan category: %w", err)
		}
		category.Description = description.String
		user.ServiceCategories = append(user.ServiceCategories, category)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate categories: %w", err)
	}

	return nil
}

func (r *userRepository) requireRowsAffected(result sql.Result, id int64) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("user with id %d not found: %w", id, ErrNotFound)
	}

	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
