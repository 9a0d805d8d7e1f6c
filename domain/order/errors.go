package order

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks.
var (
	ErrOrderNotFound = errors.New("order not found")

	// ErrForbidden means the acting principal is neither the order's
	// recipient nor an administrator.
	ErrForbidden = errors.New("not allowed to manage this order")

	ErrEmptyOrderItems = errors.New("order must have at least one item")
	ErrInvalidQuantity = errors.New("quantity must be positive")

	ErrInvalidStatusTransition = errors.New("invalid order status transition")
	ErrOutOfStock              = errors.New("out of stock")
)

// InvalidStatusTransitionError carries the rejected (from, to) pair.
type InvalidStatusTransitionError struct {
	From Status
	To   Status
}

// NewInvalidStatusTransitionError creates the error for an illegal status
// change request.
func NewInvalidStatusTransitionError(from, to Status) error {
	return &InvalidStatusTransitionError{From: from, To: to}
}

func (e *InvalidStatusTransitionError) Error() string {
	return fmt.Sprintf("unable to mark %s order as %s", e.From, e.To)
}

func (e *InvalidStatusTransitionError) Unwrap() error {
	return ErrInvalidStatusTransition
}

// OutOfStockError rejects a placement line that asks for more copies than
// the book has available. Requested and Available are surfaced to the
// caller so the rejection is user-correctable.
type OutOfStockError struct {
	BookID    string
	Requested int
	Available int64
}

// NewOutOfStockError creates the rejection for one placement line.
func NewOutOfStockError(bookID string, requested int, available int64) error {
	return &OutOfStockError{BookID: bookID, Requested: requested, Available: available}
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("too many copies of book %s requested: %d of %d available",
		e.BookID, e.Requested, e.Available)
}

func (e *OutOfStockError) Unwrap() error {
	return ErrOutOfStock
}
