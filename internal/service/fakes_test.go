package service

import (
	"context"
	"time"

	"github.com/Mehboob-alam1/mahir-backend/internal/domain"
	"github.com/Mehboob-alam1/mahir-backend/internal/repository"
)

// In-memory repository fakes backing the service tests.

type fakeUserRepo struct {
	nextID int64
	users  map[int64]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*domain.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	r.nextID++
	user.ID = r.nextID
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetAll(ctx context.Context) ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, user)
	}
	return users, nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if err == repository.ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

func (r *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	for id, existing := range r.users {
		if id != user.ID && existing.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type fakeCategoryRepo struct {
	nextID     int64
	categories map[int64]*domain.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[int64]*domain.Category)}
}

func (r *fakeCategoryRepo) GetAll(ctx context.Context) ([]*domain.Category, error) {
	categories := make([]*domain.Category, 0, len(r.categories))
	for _, category := range r.categories {
		categories = append(categories, category)
	}
	return categories, nil
}

func (r *fakeCategoryRepo) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Category, error) {
	var categories []*domain.Category
	for _, id := range ids {
		if category, ok := r.categories[id]; ok {
			categories = append(categories, category)
		}
	}
	return categories, nil
}

func (r *fakeCategoryRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.categories)), nil
}

func (r *fakeCategoryRepo) CreateAll(ctx context.Context, categories []*domain.Category) error {
	for _, category := range categories {
		r.nextID++
		category.ID = r.nextID
		r.categories[category.ID] = category
	}
	return nil
}

type fakeResetTokenRepo struct {
	nextID int64
	tokens map[string]*domain.PasswordResetToken
	users  *fakeUserRepo
}

func newFakeResetTokenRepo(users *fakeUserRepo) *fakeResetTokenRepo {
	return &fakeResetTokenRepo{
		tokens: make(map[string]*domain.PasswordResetToken),
		users:  users,
	}
}

func (r *fakeResetTokenRepo) Replace(ctx context.Context, token *domain.PasswordResetToken) error {
	for value, existing := range r.tokens {
		if existing.UserID == token.UserID {
			delete(r.tokens, value)
		}
	}
	r.nextID++
	token.ID = r.nextID
	r.tokens[token.Token] = token
	return nil
}

func (r *fakeResetTokenRepo) GetByToken(ctx context.Context, token string) (*domain.PasswordResetToken, error) {
	resetToken, ok := r.tokens[token]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return resetToken, nil
}

func (r *fakeResetTokenRepo) Consume(ctx context.Context, token string, passwordHash string) error {
	resetToken, ok := r.tokens[token]
	if !ok {
		return repository.ErrNotFound
	}
	delete(r.tokens, token)

	user, ok := r.users.users[resetToken.UserID]
	if !ok {
		return repository.ErrNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

func (r *fakeResetTokenRepo) Delete(ctx context.Context, token string) error {
	if _, ok := r.tokens[token]; !ok {
		return repository.ErrNotFound
	}
	delete(r.tokens, token)
	return nil
}

func (r *fakeResetTokenRepo) DeleteByUserID(ctx context.Context, userID int64) error {
	for value, token := range r.tokens {
		if token.UserID == userID {
			delete(r.tokens, value)
		}
	}
	return nil
}

func (r *fakeResetTokenRepo) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) error {
	for value, token := range r.tokens {
		if token.ExpiresAt.Before(cutoff) {
			delete(r.tokens, value)
		}
	}
	return nil
}

func (r *fakeResetTokenRepo) liveTokensFor(userID int64) []*domain.PasswordResetToken {
	var tokens []*domain.PasswordResetToken
	for _, token := range r.tokens {
		if token.UserID == userID {
			tokens = append(tokens, token)
		}
	}
	return tokens
}
