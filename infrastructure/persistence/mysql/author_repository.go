package mysql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bookstore/domain/catalog"
	"bookstore/infrastructure/persistence/mysql/po"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthorRepository is the MySQL implementation of catalog.AuthorRepository.
type AuthorRepository struct {
	db *gorm.DB
}

// NewAuthorRepository creates a MySQL author repository.
func NewAuthorRepository(db *gorm.DB) *AuthorRepository {
	return &AuthorRepository{db: db}
}

var _ catalog.AuthorRepository = (*AuthorRepository)(nil)

// NextIdentity generates a new author ID.
func (r *AuthorRepository) NextIdentity() string {
	return uuid.NewString()
}

// Save writes the author.
func (r *AuthorRepository) Save(ctx context.Context, a *catalog.Author) error {
	db := dbFromContext(ctx, r.db)
	if err := db.Save(po.FromAuthorDomain(a)).Error; err != nil {
		return fmt.Errorf("failed to save author: %w", err)
	}
	return nil
}

// FindByID loads an author.
func (r *AuthorRepository) FindByID(ctx context.Context, id string) (*catalog.Author, error) {
	db := dbFromContext(ctx, r.db)
	var authorPO po.AuthorPO
	if err := db.Where("id = ?", id).First(&authorPO).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.NewAuthorNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to find author: %w", err)
	}
	return authorPO.ToDomain(), nil
}

// FindByNameIgnoreCase matches authors case-insensitively by exact name.
func (r *AuthorRepository) FindByNameIgnoreCase(ctx context.Context, name string) (*catalog.Author, error) {
	db := dbFromContext(ctx, r.db)
	var authorPO po.AuthorPO
	err := db.Where("LOWER(name) = ?", strings.ToLower(name)).First(&authorPO).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find author by name: %w", err)
	}
	return authorPO.ToDomain(), nil
}

// FindAll lists every author ordered by name.
func (r *AuthorRepository) FindAll(ctx context.Context) ([]*catalog.Author, error) {
	db := dbFromContext(ctx, r.db)
	var authorPOs []po.AuthorPO
	if err := db.Order("name ASC").Find(&authorPOs).Error; err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	authors := make([]*catalog.Author, 0, len(authorPOs))
	for i := range authorPOs {
		authors = append(authors, authorPOs[i].ToDomain())
	}
	return authors, nil
}
