package mysql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bookstore/domain/catalog"
	"bookstore/infrastructure/persistence/mysql/po"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookRepository is the MySQL implementation of catalog.BookRepository.
type BookRepository struct {
	db *gorm.DB
}

// NewBookRepository creates a MySQL book repository.
func NewBookRepository(db *gorm.DB) *BookRepository {
	return &BookRepository{db: db}
}

var _ catalog.BookRepository = (*BookRepository)(nil)

// NextIdentity generates a new book ID.
func (r *BookRepository) NextIdentity() string {
	return uuid.NewString()
}

// Save writes the book and rewrites its author links.
func (r *BookRepository) Save(ctx context.Context, b *catalog.Book) error {
	db := dbFromContext(ctx, r.db)
	return db.Transaction(func(tx *gorm.DB) error {
		return saveBookTx(tx, b)
	})
}

// SaveAll writes several books in one transaction. Stock movements for a
// multi-line order go through here so either every counter moves or none.
func (r *BookRepository) SaveAll(ctx context.Context, books []*catalog.Book) error {
	db := dbFromContext(ctx, r.db)
	return db.Transaction(func(tx *gorm.DB) error {
		for _, b := range books {
			if err := saveBookTx(tx, b); err != nil {
				return err
			}
		}
		return nil
	})
}

func saveBookTx(tx *gorm.DB, b *catalog.Book) error {
	if err := tx.Save(po.FromBookDomain(b)).Error; err != nil {
		return fmt.Errorf("failed to save book: %w", err)
	}
	if err := tx.Where("book_id = ?", b.ID).Delete(&po.BookAuthorPO{}).Error; err != nil {
		return fmt.Errorf("failed to clear book authors: %w", err)
	}
	links := po.BookAuthorPOsFromDomain(b)
	if len(links) == 0 {
		return nil
	}
	if err := tx.Create(&links).Error; err != nil {
		return fmt.Errorf("failed to save book authors: %w", err)
	}
	return nil
}

// FindByID loads a book with its author IDs.
func (r *BookRepository) FindByID(ctx context.Context, id string) (*catalog.Book, error) {
	return r.findByID(ctx, id, false)
}

// FindByIDForUpdate loads a book under a row lock. Must run inside a unit
// of work; the lock is released when the transaction ends.
func (r *BookRepository) FindByIDForUpdate(ctx context.Context, id string) (*catalog.Book, error) {
	return r.findByID(ctx, id, true)
}

func (r *BookRepository) findByID(ctx context.Context, id string, forUpdate bool) (*catalog.Book, error) {
	db := dbFromContext(ctx, r.db)
	if forUpdate {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var bookPO po.BookPO
	if err := db.Where("id = ?", id).First(&bookPO).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.NewBookNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to find book: %w", err)
	}

	authorIDs, err := r.authorIDsFor(ctx, id)
	if err != nil {
		return nil, err
	}
	return bookPO.ToDomain(authorIDs), nil
}

func (r *BookRepository) authorIDsFor(ctx context.Context, bookID string) ([]string, error) {
	db := dbFromContext(ctx, r.db)
	var links []po.BookAuthorPO
	if err := db.Where("book_id = ?", bookID).Find(&links).Error; err != nil {
		return nil, fmt.Errorf("failed to load book authors: %w", err)
	}
	authorIDs := make([]string, 0, len(links))
	for _, link := range links {
		authorIDs = append(authorIDs, link.AuthorID)
	}
	return authorIDs, nil
}

// FindPage lists books matching the query, ordered by title.
func (r *BookRepository) FindPage(ctx context.Context, query catalog.BookQuery) ([]*catalog.Book, int64, error) {
	db := dbFromContext(ctx, r.db)

	tx := db.Model(&po.BookPO{})
	if query.Title != "" {
		tx = tx.Where("LOWER(books.title) LIKE ?", strings.ToLower(query.Title)+"%")
	}
	if query.Author != "" {
		tx = tx.Where("books.id IN (?)",
			db.Session(&gorm.Session{NewDB: true}).
				Model(&po.BookAuthorPO{}).
				Select("book_authors.book_id").
				Joins("JOIN authors ON authors.id = book_authors.author_id").
				Where("LOWER(authors.name) LIKE ?", strings.ToLower(query.Author)+"%"),
		)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	page, pageSize := normalizePage(query.Page, query.PageSize)
	var bookPOs []po.BookPO
	if err := tx.Order("books.title ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&bookPOs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list books: %w", err)
	}

	books := make([]*catalog.Book, 0, len(bookPOs))
	for i := range bookPOs {
		authorIDs, err := r.authorIDsFor(ctx, bookPOs[i].ID)
		if err != nil {
			return nil, 0, err
		}
		books = append(books, bookPOs[i].ToDomain(authorIDs))
	}
	return books, total, nil
}

// Remove deletes a book and its author links.
func (r *BookRepository) Remove(ctx context.Context, id string) error {
	db := dbFromContext(ctx, r.db)
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", id).Delete(&po.BookAuthorPO{}).Error; err != nil {
			return fmt.Errorf("failed to delete book authors: %w", err)
		}
		result := tx.Where("id = ?", id).Delete(&po.BookPO{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete book: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return catalog.NewBookNotFoundError(id)
		}
		return nil
	})
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}
