package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"bookstore/domain/catalog"
	"bookstore/domain/shared"

	"github.com/google/uuid"
)

type bookRecord struct {
	id        string
	title     string
	year      int
	price     shared.Money
	coverID   string
	available int64
	authorIDs []string
	createdAt time.Time
	updatedAt time.Time
}

func bookRecordFromDomain(b *catalog.Book) bookRecord {
	authorIDs := make([]string, len(b.AuthorIDs))
	copy(authorIDs, b.AuthorIDs)
	return bookRecord{
		id:        b.ID,
		title:     b.Title,
		year:      b.Year,
		price:     b.Price,
		coverID:   b.CoverID,
		available: b.Available,
		authorIDs: authorIDs,
		createdAt: b.CreatedAt,
		updatedAt: b.UpdatedAt,
	}
}

func (rec bookRecord) toDomain() *catalog.Book {
	authorIDs := make([]string, len(rec.authorIDs))
	copy(authorIDs, rec.authorIDs)
	return &catalog.Book{
		ID:        rec.id,
		Title:     rec.title,
		Year:      rec.year,
		Price:     rec.price,
		CoverID:   rec.coverID,
		Available: rec.available,
		AuthorIDs: authorIDs,
		CreatedAt: rec.createdAt,
		UpdatedAt: rec.updatedAt,
	}
}

// BookRepository is the in-memory implementation of catalog.BookRepository.
type BookRepository struct {
	store *Store
}

// NewBookRepository creates an in-memory book repository.
func NewBookRepository(store *Store) *BookRepository {
	return &BookRepository{store: store}
}

var _ catalog.BookRepository = (*BookRepository)(nil)

// NextIdentity generates a new book ID.
func (r *BookRepository) NextIdentity() string {
	return uuid.NewString()
}

// Save writes the book.
func (r *BookRepository) Save(ctx context.Context, b *catalog.Book) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.books[b.ID] = bookRecordFromDomain(b)
	return nil
}

// SaveAll writes several books under one lock acquisition.
func (r *BookRepository) SaveAll(ctx context.Context, books []*catalog.Book) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, b := range books {
		r.store.books[b.ID] = bookRecordFromDomain(b)
	}
	return nil
}

// FindByID loads a book.
func (r *BookRepository) FindByID(ctx context.Context, id string) (*catalog.Book, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	rec, ok := r.store.books[id]
	if !ok {
		return nil, catalog.NewBookNotFoundError(id)
	}
	return rec.toDomain(), nil
}

// FindByIDForUpdate behaves like FindByID. The unit of work already
// serializes writers, so no row lock is needed here.
func (r *BookRepository) FindByIDForUpdate(ctx context.Context, id string) (*catalog.Book, error) {
	return r.FindByID(ctx, id)
}

// FindPage lists books matching the query, ordered by title.
func (r *BookRepository) FindPage(ctx context.Context, query catalog.BookQuery) ([]*catalog.Book, int64, error) {
	r.store.mu.RLock()
	matched := make([]*catalog.Book, 0, len(r.store.books))
	for _, rec := range r.store.books {
		if query.Title != "" && !strings.HasPrefix(strings.ToLower(rec.title), strings.ToLower(query.Title)) {
			continue
		}
		if query.Author != "" && !r.anyAuthorMatches(rec.authorIDs, query.Author) {
			continue
		}
		matched = append(matched, rec.toDomain())
	}
	r.store.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool { return matched[i].Title < matched[j].Title })
	total := int64(len(matched))
	return pageOf(matched, query.Page, query.PageSize), total, nil
}

func (r *BookRepository) anyAuthorMatches(authorIDs []string, prefix string) bool {
	prefix = strings.ToLower(prefix)
	for _, authorID := range authorIDs {
		if author, ok := r.store.authors[authorID]; ok {
			if strings.HasPrefix(strings.ToLower(author.name), prefix) {
				return true
			}
		}
	}
	return false
}

// Remove deletes a book.
func (r *BookRepository) Remove(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.books[id]; !ok {
		return catalog.NewBookNotFoundError(id)
	}
	delete(r.store.books, id)
	return nil
}

func pageOf[T any](items []T, page, pageSize int) []T {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
