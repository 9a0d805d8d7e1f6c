package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrBookNotFound   = errors.New("book not found")
	ErrAuthorNotFound = errors.New("author not found")
)

// NewBookNotFoundError wraps ErrBookNotFound with the missing ID.
func NewBookNotFoundError(id string) error {
	return fmt.Errorf("%w: %s", ErrBookNotFound, id)
}

// NewAuthorNotFoundError wraps ErrAuthorNotFound with the missing ID.
func NewAuthorNotFoundError(id string) error {
	return fmt.Errorf("%w: %s", ErrAuthorNotFound, id)
}
