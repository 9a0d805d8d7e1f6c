// Package upload holds stored files, e.g. book covers.
package upload

import (
	"context"
	"errors"
	"time"
)

var ErrUploadNotFound = errors.New("upload not found")

// Upload is a stored file.
type Upload struct {
	ID          string
	Filename    string
	ContentType string
	File        []byte
	CreatedAt   time.Time
}

// Repository persists uploads.
type Repository interface {
	NextIdentity() string
	Save(ctx context.Context, u *Upload) error
	// FindByID loads an upload; ErrUploadNotFound when absent.
	FindByID(ctx context.Context, id string) (*Upload, error)
	Remove(ctx context.Context, id string) error
}
