package order

import (
	"context"
	"time"
)

// Repository persists order aggregates.
type Repository interface {
	// NextIdentity generates a new order ID.
	NextIdentity() string

	// Save creates or updates an order together with its items.
	Save(ctx context.Context, o *Order) error

	// FindByID loads an order; ErrOrderNotFound when absent.
	FindByID(ctx context.Context, id string) (*Order, error)

	// FindPage lists orders, newest last, optionally filtered by status.
	// Returns the page and the total match count.
	FindPage(ctx context.Context, query PageQuery) ([]*Order, int64, error)

	// FindByStatusAndCreatedAtBefore returns every order in the given
	// status created at or before the cutoff.
	FindByStatusAndCreatedAtBefore(ctx context.Context, status Status, cutoff time.Time) ([]*Order, error)

	// Remove deletes an order and its items; ErrOrderNotFound when absent.
	Remove(ctx context.Context, id string) error
}

// PageQuery filters and pages an order listing. Page is 1-based.
type PageQuery struct {
	Status   *Status
	Page     int
	PageSize int
}

// RecipientRepository persists recipients, keyed for lookup by
// case-insensitive email.
type RecipientRepository interface {
	NextIdentity() string
	Save(ctx context.Context, r *Recipient) error
	FindByID(ctx context.Context, id string) (*Recipient, error)
	// FindByEmail matches case-insensitively; returns nil when absent.
	FindByEmail(ctx context.Context, email string) (*Recipient, error)
}
