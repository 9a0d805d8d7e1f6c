package mysql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bookstore/domain/user"
	"bookstore/infrastructure/persistence/mysql/po"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository is the MySQL implementation of user.Repository.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a MySQL user repository.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

var _ user.Repository = (*UserRepository)(nil)

// NextIdentity generates a new user ID.
func (r *UserRepository) NextIdentity() string {
	return uuid.NewString()
}

// Save writes the user. The unique index on email turns a concurrent
// duplicate registration into ErrEmailExists.
func (r *UserRepository) Save(ctx context.Context, u *user.User) error {
	db := dbFromContext(ctx, r.db)
	if err := db.Save(po.FromUserDomain(u)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return user.ErrEmailExists
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// FindByEmail matches case-insensitively.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	db := dbFromContext(ctx, r.db)
	var userPO po.UserPO
	err := db.Where("LOWER(email) = ?", strings.ToLower(email)).First(&userPO).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return userPO.ToDomain(), nil
}

// FindByID loads a user.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	db := dbFromContext(ctx, r.db)
	var userPO po.UserPO
	if err := db.Where("id = ?", id).First(&userPO).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return userPO.ToDomain(), nil
}
