/*
Package catalog holds the book catalog consumed by the order core: books
with a price and an available-quantity counter, and their authors. Books
reference authors by ID only; the reverse direction is answered by queries,
not by back-references.
*/
package catalog

import (
	"time"

	"bookstore/domain/shared"
)

// Book is a catalog entry. Available is the stock counter debited by order
// placement and credited back on cancellation or abandonment; it must never
// go negative as a result of order operations.
type Book struct {
	ID        string
	Title     string
	Year      int
	Price     shared.Money
	CoverID   string
	Available int64
	AuthorIDs []string
	CreatedAt time.Time
	UpdatedAt time.Time
}
