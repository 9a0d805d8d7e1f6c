// Package catalog manages books and authors: CRUD, cover images, and bulk
// CSV import.
package catalog

import (
	"context"
	"time"

	"bookstore/domain/catalog"
	"bookstore/domain/shared"
	apperrors "bookstore/pkg/errors"

	"bookstore/application/upload"
	"bookstore/pkg/clock"
)

// Service coordinates catalog operations.
type Service struct {
	bookRepo     catalog.BookRepository
	authorRepo   catalog.AuthorRepository
	uploads      *upload.Service
	uow          shared.UnitOfWork
	clock        clock.Clock
	coverFetcher CoverFetcher
}

// NewService creates the catalog service.
func NewService(
	bookRepo catalog.BookRepository,
	authorRepo catalog.AuthorRepository,
	uploads *upload.Service,
	uow shared.UnitOfWork,
	clk clock.Clock,
) *Service {
	return &Service{
		bookRepo:   bookRepo,
		authorRepo: authorRepo,
		uploads:    uploads,
		uow:        uow,
		clock:      clk,
	}
}

// BookRequest is the payload for creating or updating a book. Authors are
// referenced by name and created on first use.
type BookRequest struct {
	Title     string   `json:"title" binding:"required"`
	Year      int      `json:"year" binding:"required"`
	Price     string   `json:"price" binding:"required"`
	Available int64    `json:"available" binding:"min=0"`
	Authors   []string `json:"authors" binding:"required,min=1"`
}

// BookResponse is the API view of a book.
type BookResponse struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Year      int              `json:"year"`
	Price     string           `json:"price"`
	CoverID   string           `json:"cover_id,omitempty"`
	Available int64            `json:"available"`
	Authors   []AuthorResponse `json:"authors"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// AuthorResponse is the API view of an author.
type AuthorResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreateBook adds a book to the catalog.
func (s *Service) CreateBook(ctx context.Context, req BookRequest) (*BookResponse, error) {
	price, err := shared.ParseMoney(req.Price)
	if err != nil {
		return nil, apperrors.Validation("invalid price: " + req.Price)
	}

	var book *catalog.Book
	err = s.uow.Execute(ctx, func(ctx context.Context) error {
		authorIDs, err := s.resolveAuthors(ctx, req.Authors)
		if err != nil {
			return err
		}
		now := s.clock.Now()
		book = &catalog.Book{
			ID:        s.bookRepo.NextIdentity(),
			Title:     req.Title,
			Year:      req.Year,
			Price:     price,
			Available: req.Available,
			AuthorIDs: authorIDs,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return s.bookRepo.Save(ctx, book)
	})
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, book)
}

// UpdateBook replaces a book's data. The cover is managed separately and
// survives the update.
func (s *Service) UpdateBook(ctx context.Context, id string, req BookRequest) (*BookResponse, error) {
	price, err := shared.ParseMoney(req.Price)
	if err != nil {
		return nil, apperrors.Validation("invalid price: " + req.Price)
	}

	var book *catalog.Book
	err = s.uow.Execute(ctx, func(ctx context.Context) error {
		book, err = s.bookRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		authorIDs, err := s.resolveAuthors(ctx, req.Authors)
		if err != nil {
			return err
		}
		book.Title = req.Title
		book.Year = req.Year
		book.Price = price
		book.Available = req.Available
		book.AuthorIDs = authorIDs
		book.UpdatedAt = s.clock.Now()
		return s.bookRepo.Save(ctx, book)
	})
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, book)
}

// GetBook returns one book.
func (s *Service) GetBook(ctx context.Context, id string) (*BookResponse, error) {
	book, err := s.bookRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, book)
}

// ListQuery filters and pages the catalog listing.
type ListQuery struct {
	Title    string
	Author   string
	Page     int
	PageSize int
}

// ListBooks returns a page of books matching the optional title and author
// prefixes.
func (s *Service) ListBooks(ctx context.Context, query ListQuery) ([]*BookResponse, int64, error) {
	books, total, err := s.bookRepo.FindPage(ctx, catalog.BookQuery{
		Title:    query.Title,
		Author:   query.Author,
		Page:     query.Page,
		PageSize: query.PageSize,
	})
	if err != nil {
		return nil, 0, err
	}
	responses := make([]*BookResponse, 0, len(books))
	for _, book := range books {
		response, err := s.toResponse(ctx, book)
		if err != nil {
			return nil, 0, err
		}
		responses = append(responses, response)
	}
	return responses, total, nil
}

// DeleteBook removes a book and its cover image.
func (s *Service) DeleteBook(ctx context.Context, id string) error {
	return s.uow.Execute(ctx, func(ctx context.Context) error {
		book, err := s.bookRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.bookRepo.Remove(ctx, id); err != nil {
			return err
		}
		if book.CoverID != "" {
			return s.uploads.RemoveByID(ctx, book.CoverID)
		}
		return nil
	})
}

// UploadCover stores a cover image for the book, replacing any previous
// one, and returns the new cover ID.
func (s *Service) UploadCover(ctx context.Context, bookID, filename, contentType string, file []byte) (string, error) {
	var coverID string
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		book, err := s.bookRepo.FindByID(ctx, bookID)
		if err != nil {
			return err
		}

		coverID, err = s.uploads.Save(ctx, filename, contentType, file)
		if err != nil {
			return err
		}

		previous := book.CoverID
		book.CoverID = coverID
		book.UpdatedAt = s.clock.Now()
		if err := s.bookRepo.Save(ctx, book); err != nil {
			return err
		}
		if previous != "" {
			return s.uploads.RemoveByID(ctx, previous)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return coverID, nil
}

// ListAuthors returns every author ordered by name.
func (s *Service) ListAuthors(ctx context.Context) ([]AuthorResponse, error) {
	authors, err := s.authorRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]AuthorResponse, 0, len(authors))
	for _, author := range authors {
		responses = append(responses, AuthorResponse{ID: author.ID, Name: author.Name})
	}
	return responses, nil
}

// resolveAuthors maps author names to IDs, creating unknown authors. Names
// match case-insensitively against existing authors.
func (s *Service) resolveAuthors(ctx context.Context, names []string) ([]string, error) {
	authorIDs := make([]string, 0, len(names))
	for _, name := range names {
		existing, err := s.authorRepo.FindByNameIgnoreCase(ctx, name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			authorIDs = append(authorIDs, existing.ID)
			continue
		}
		author := &catalog.Author{
			ID:        s.authorRepo.NextIdentity(),
			Name:      name,
			CreatedAt: s.clock.Now(),
		}
		if err := s.authorRepo.Save(ctx, author); err != nil {
			return nil, err
		}
		authorIDs = append(authorIDs, author.ID)
	}
	return authorIDs, nil
}

func (s *Service) toResponse(ctx context.Context, book *catalog.Book) (*BookResponse, error) {
	authors := make([]AuthorResponse, 0, len(book.AuthorIDs))
	for _, authorID := range book.AuthorIDs {
		author, err := s.authorRepo.FindByID(ctx, authorID)
		if err != nil {
			return nil, err
		}
		authors = append(authors, AuthorResponse{ID: author.ID, Name: author.Name})
	}
	return &BookResponse{
		ID:        book.ID,
		Title:     book.Title,
		Year:      book.Year,
		Price:     book.Price.String(),
		CoverID:   book.CoverID,
		Available: book.Available,
		Authors:   authors,
		CreatedAt: book.CreatedAt,
		UpdatedAt: book.UpdatedAt,
	}, nil
}
