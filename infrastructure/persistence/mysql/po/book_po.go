// Package po contains the persistence objects for the MySQL backend.
// Each PO mirrors one table and converts to and from the domain types
// explicitly, so the schema never leaks into the domain layer.
package po

import (
	"time"

	"bookstore/domain/catalog"
	"bookstore/domain/shared"

	"github.com/shopspring/decimal"
)

// BookPO is the persistence object for books.
type BookPO struct {
	ID        string          `gorm:"column:id;primaryKey;size:64"`
	Title     string          `gorm:"column:title;size:255;not null;uniqueIndex:uk_books_title"`
	Year      int             `gorm:"column:year;not null"`
	Price     decimal.Decimal `gorm:"column:price;type:decimal(10,2);not null"`
	CoverID   string          `gorm:"column:cover_id;size:64"`
	Available int64           `gorm:"column:available;not null"`
	CreatedAt time.Time       `gorm:"column:created_at;not null"`
	UpdatedAt time.Time       `gorm:"column:updated_at;not null"`
}

// TableName returns the table name for BookPO.
func (BookPO) TableName() string {
	return "books"
}

// BookAuthorPO links books to authors.
type BookAuthorPO struct {
	BookID   string `gorm:"column:book_id;primaryKey;size:64"`
	AuthorID string `gorm:"column:author_id;primaryKey;size:64;index:idx_book_authors_author"`
}

// TableName returns the table name for BookAuthorPO.
func (BookAuthorPO) TableName() string {
	return "book_authors"
}

// FromBookDomain converts a domain book to its persistence object.
// Author links are stored separately, see BookAuthorPOsFromDomain.
func FromBookDomain(b *catalog.Book) *BookPO {
	return &BookPO{
		ID:        b.ID,
		Title:     b.Title,
		Year:      b.Year,
		Price:     b.Price.Decimal(),
		CoverID:   b.CoverID,
		Available: b.Available,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// BookAuthorPOsFromDomain builds the link rows for a book.
func BookAuthorPOsFromDomain(b *catalog.Book) []BookAuthorPO {
	links := make([]BookAuthorPO, 0, len(b.AuthorIDs))
	for _, authorID := range b.AuthorIDs {
		links = append(links, BookAuthorPO{BookID: b.ID, AuthorID: authorID})
	}
	return links
}

// ToDomain converts the persistence object back to a domain book.
func (p *BookPO) ToDomain(authorIDs []string) *catalog.Book {
	return &catalog.Book{
		ID:        p.ID,
		Title:     p.Title,
		Year:      p.Year,
		Price:     shared.NewMoney(p.Price),
		CoverID:   p.CoverID,
		Available: p.Available,
		AuthorIDs: authorIDs,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
