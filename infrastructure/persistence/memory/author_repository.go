package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"bookstore/domain/catalog"

	"github.com/google/uuid"
)

type authorRecord struct {
	id        string
	name      string
	createdAt time.Time
}

func (rec authorRecord) toDomain() *catalog.Author {
	return &catalog.Author{ID: rec.id, Name: rec.name, CreatedAt: rec.createdAt}
}

// AuthorRepository is the in-memory implementation of
// catalog.AuthorRepository.
type AuthorRepository struct {
	store *Store
}

// NewAuthorRepository creates an in-memory author repository.
func NewAuthorRepository(store *Store) *AuthorRepository {
	return &AuthorRepository{store: store}
}

var _ catalog.AuthorRepository = (*AuthorRepository)(nil)

// NextIdentity generates a new author ID.
func (r *AuthorRepository) NextIdentity() string {
	return uuid.NewString()
}

// Save writes the author.
func (r *AuthorRepository) Save(ctx context.Context, a *catalog.Author) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.authors[a.ID] = authorRecord{id: a.ID, name: a.Name, createdAt: a.CreatedAt}
	return nil
}

// FindByID loads an author.
func (r *AuthorRepository) FindByID(ctx context.Context, id string) (*catalog.Author, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	rec, ok := r.store.authors[id]
	if !ok {
		return nil, catalog.NewAuthorNotFoundError(id)
	}
	return rec.toDomain(), nil
}

// FindByNameIgnoreCase matches case-insensitively; returns nil when absent.
func (r *AuthorRepository) FindByNameIgnoreCase(ctx context.Context, name string) (*catalog.Author, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, rec := range r.store.authors {
		if strings.EqualFold(rec.name, name) {
			return rec.toDomain(), nil
		}
	}
	return nil, nil
}

// FindAll lists every author ordered by name.
func (r *AuthorRepository) FindAll(ctx context.Context) ([]*catalog.Author, error) {
	r.store.mu.RLock()
	authors := make([]*catalog.Author, 0, len(r.store.authors))
	for _, rec := range r.store.authors {
		authors = append(authors, rec.toDomain())
	}
	r.store.mu.RUnlock()

	sort.Slice(authors, func(i, j int) bool { return authors[i].Name < authors[j].Name })
	return authors, nil
}
