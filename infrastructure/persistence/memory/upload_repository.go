package memory

import (
	"context"
	"time"

	"bookstore/domain/upload"

	"github.com/google/uuid"
)

type uploadRecord struct {
	id          string
	filename    string
	contentType string
	file        []byte
	createdAt   time.Time
}

func (rec uploadRecord) toDomain() *upload.Upload {
	file := make([]byte, len(rec.file))
	copy(file, rec.file)
	return &upload.Upload{
		ID:          rec.id,
		Filename:    rec.filename,
		ContentType: rec.contentType,
		File:        file,
		CreatedAt:   rec.createdAt,
	}
}

// UploadRepository is the in-memory implementation of upload.Repository.
type UploadRepository struct {
	store *Store
}

// NewUploadRepository creates an in-memory upload repository.
func NewUploadRepository(store *Store) *UploadRepository {
	return &UploadRepository{store: store}
}

var _ upload.Repository = (*UploadRepository)(nil)

// NextIdentity generates a new upload ID.
func (r *UploadRepository) NextIdentity() string {
	return uuid.NewString()
}

// Save writes the upload, keeping its own copy of the bytes.
func (r *UploadRepository) Save(ctx context.Context, u *upload.Upload) error {
	file := make([]byte, len(u.File))
	copy(file, u.File)
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.uploads[u.ID] = uploadRecord{
		id:          u.ID,
		filename:    u.Filename,
		contentType: u.ContentType,
		file:        file,
		createdAt:   u.CreatedAt,
	}
	return nil
}

// FindByID loads an upload.
func (r *UploadRepository) FindByID(ctx context.Context, id string) (*upload.Upload, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	rec, ok := r.store.uploads[id]
	if !ok {
		return nil, upload.ErrUploadNotFound
	}
	return rec.toDomain(), nil
}

// Remove deletes an upload. Removing an absent upload is not an error.
func (r *UploadRepository) Remove(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.uploads, id)
	return nil
}
