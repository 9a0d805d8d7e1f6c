package memory

import (
	"context"
	"strings"
	"time"

	"bookstore/domain/user"

	"github.com/google/uuid"
)

type userRecord struct {
	id        string
	email     string
	password  string
	role      user.Role
	createdAt time.Time
	updatedAt time.Time
}

func (rec userRecord) toDomain() *user.User {
	return &user.User{
		ID:        rec.id,
		Email:     rec.email,
		Password:  rec.password,
		Role:      rec.role,
		CreatedAt: rec.createdAt,
		UpdatedAt: rec.updatedAt,
	}
}

// UserRepository is the in-memory implementation of user.Repository.
type UserRepository struct {
	store *Store
}

// NewUserRepository creates an in-memory user repository.
func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

var _ user.Repository = (*UserRepository)(nil)

// NextIdentity generates a new user ID.
func (r *UserRepository) NextIdentity() string {
	return uuid.NewString()
}

// Save writes the user, refusing a second account on the same email.
func (r *UserRepository) Save(ctx context.Context, u *user.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, rec := range r.store.users {
		if rec.id != u.ID && strings.EqualFold(rec.email, u.Email) {
			return user.ErrEmailExists
		}
	}
	r.store.users[u.ID] = userRecord{
		id:        u.ID,
		email:     u.Email,
		password:  u.Password,
		role:      u.Role,
		createdAt: u.CreatedAt,
		updatedAt: u.UpdatedAt,
	}
	return nil
}

// FindByEmail matches case-insensitively.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, rec := range r.store.users {
		if strings.EqualFold(rec.email, email) {
			return rec.toDomain(), nil
		}
	}
	return nil, user.ErrUserNotFound
}

// FindByID loads a user.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	rec, ok := r.store.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return rec.toDomain(), nil
}
