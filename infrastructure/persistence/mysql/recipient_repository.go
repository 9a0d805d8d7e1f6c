package mysql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bookstore/domain/order"
	"bookstore/infrastructure/persistence/mysql/po"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecipientRepository is the MySQL implementation of
// order.RecipientRepository.
type RecipientRepository struct {
	db *gorm.DB
}

// NewRecipientRepository creates a MySQL recipient repository.
func NewRecipientRepository(db *gorm.DB) *RecipientRepository {
	return &RecipientRepository{db: db}
}

var _ order.RecipientRepository = (*RecipientRepository)(nil)

// NextIdentity generates a new recipient ID.
func (r *RecipientRepository) NextIdentity() string {
	return uuid.NewString()
}

// Save writes the recipient.
func (r *RecipientRepository) Save(ctx context.Context, recipient *order.Recipient) error {
	db := dbFromContext(ctx, r.db)
	if err := db.Save(po.FromRecipientDomain(recipient)).Error; err != nil {
		return fmt.Errorf("failed to save recipient: %w", err)
	}
	return nil
}

// FindByID loads a recipient.
func (r *RecipientRepository) FindByID(ctx context.Context, id string) (*order.Recipient, error) {
	db := dbFromContext(ctx, r.db)
	var recipientPO po.RecipientPO
	if err := db.Where("id = ?", id).First(&recipientPO).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("recipient %s not found", id)
		}
		return nil, fmt.Errorf("failed to find recipient: %w", err)
	}
	return recipientPO.ToDomain(), nil
}

// FindByEmail matches case-insensitively; returns nil when absent.
func (r *RecipientRepository) FindByEmail(ctx context.Context, email string) (*order.Recipient, error) {
	db := dbFromContext(ctx, r.db)
	var recipientPO po.RecipientPO
	err := db.Where("LOWER(email) = ?", strings.ToLower(email)).First(&recipientPO).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find recipient by email: %w", err)
	}
	return recipientPO.ToDomain(), nil
}
