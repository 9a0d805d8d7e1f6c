package memory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bookstore/domain/order"

	"github.com/google/uuid"
)

type recipientRecord struct {
	id        string
	email     string
	name      string
	phone     string
	street    string
	city      string
	zipCode   string
	createdAt time.Time
}

func (rec recipientRecord) toDomain() *order.Recipient {
	return &order.Recipient{
		ID:        rec.id,
		Email:     rec.email,
		Name:      rec.name,
		Phone:     rec.phone,
		Street:    rec.street,
		City:      rec.city,
		ZipCode:   rec.zipCode,
		CreatedAt: rec.createdAt,
	}
}

// RecipientRepository is the in-memory implementation of
// order.RecipientRepository.
type RecipientRepository struct {
	store *Store
}

// NewRecipientRepository creates an in-memory recipient repository.
func NewRecipientRepository(store *Store) *RecipientRepository {
	return &RecipientRepository{store: store}
}

var _ order.RecipientRepository = (*RecipientRepository)(nil)

// NextIdentity generates a new recipient ID.
func (r *RecipientRepository) NextIdentity() string {
	return uuid.NewString()
}

// Save writes the recipient.
func (r *RecipientRepository) Save(ctx context.Context, recipient *order.Recipient) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.recipients[recipient.ID] = recipientRecord{
		id:        recipient.ID,
		email:     recipient.Email,
		name:      recipient.Name,
		phone:     recipient.Phone,
		street:    recipient.Street,
		city:      recipient.City,
		zipCode:   recipient.ZipCode,
		createdAt: recipient.CreatedAt,
	}
	return nil
}

// FindByID loads a recipient.
func (r *RecipientRepository) FindByID(ctx context.Context, id string) (*order.Recipient, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	rec, ok := r.store.recipients[id]
	if !ok {
		return nil, fmt.Errorf("recipient %s not found", id)
	}
	return rec.toDomain(), nil
}

// FindByEmail matches case-insensitively; returns nil when absent.
func (r *RecipientRepository) FindByEmail(ctx context.Context, email string) (*order.Recipient, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, rec := range r.store.recipients {
		if strings.EqualFold(rec.email, email) {
			return rec.toDomain(), nil
		}
	}
	return nil, nil
}
