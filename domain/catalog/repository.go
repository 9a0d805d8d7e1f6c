package catalog

import "context"

// BookRepository persists books and their stock counters.
type BookRepository interface {
	// NextIdentity generates a new book ID.
	NextIdentity() string

	Save(ctx context.Context, b *Book) error

	// SaveAll updates several books as one atomic multi-row write. Callers
	// run it inside a unit of work together with the order change that
	// caused the stock movement.
	SaveAll(ctx context.Context, books []*Book) error

	// FindByID loads a book; ErrBookNotFound when absent.
	FindByID(ctx context.Context, id string) (*Book, error)

	// FindByIDForUpdate loads a book and holds it against concurrent stock
	// updates until the surrounding unit of work completes. This is the
	// entry point for every check-then-debit and credit-back sequence.
	FindByIDForUpdate(ctx context.Context, id string) (*Book, error)

	// FindPage lists books filtered by optional title and author prefixes.
	FindPage(ctx context.Context, query BookQuery) ([]*Book, int64, error)

	// Remove deletes a book; ErrBookNotFound when absent.
	Remove(ctx context.Context, id string) error
}

// BookQuery filters and pages a catalog listing. Title and Author are
// case-insensitive prefix filters; empty means unfiltered. Page is 1-based.
type BookQuery struct {
	Title    string
	Author   string
	Page     int
	PageSize int
}

// AuthorRepository persists authors, unique by case-insensitive name.
type AuthorRepository interface {
	NextIdentity() string
	Save(ctx context.Context, a *Author) error
	// FindByID loads an author; ErrAuthorNotFound when absent.
	FindByID(ctx context.Context, id string) (*Author, error)
	// FindByNameIgnoreCase returns nil when no author matches.
	FindByNameIgnoreCase(ctx context.Context, name string) (*Author, error)
	FindAll(ctx context.Context) ([]*Author, error)
}
