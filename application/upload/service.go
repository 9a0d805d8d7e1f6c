// Package upload stores and serves uploaded files such as book covers.
package upload

import (
	"context"

	"bookstore/domain/upload"
	"bookstore/pkg/clock"
)

// Service stores and retrieves uploads.
type Service struct {
	repo  upload.Repository
	clock clock.Clock
}

// NewService creates the upload service.
func NewService(repo upload.Repository, clk clock.Clock) *Service {
	return &Service{repo: repo, clock: clk}
}

// Save stores the file and returns its ID.
func (s *Service) Save(ctx context.Context, filename, contentType string, file []byte) (string, error) {
	u := &upload.Upload{
		ID:          s.repo.NextIdentity(),
		Filename:    filename,
		ContentType: contentType,
		File:        file,
		CreatedAt:   s.clock.Now(),
	}
	if err := s.repo.Save(ctx, u); err != nil {
		return "", err
	}
	return u.ID, nil
}

// GetByID returns the upload with its bytes.
func (s *Service) GetByID(ctx context.Context, id string) (*upload.Upload, error) {
	return s.repo.FindByID(ctx, id)
}

// RemoveByID deletes the upload if present.
func (s *Service) RemoveByID(ctx context.Context, id string) error {
	return s.repo.Remove(ctx, id)
}
