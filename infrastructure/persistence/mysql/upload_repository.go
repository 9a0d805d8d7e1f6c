package mysql

import (
	"context"
	"errors"
	"fmt"

	"bookstore/domain/upload"
	"bookstore/infrastructure/persistence/mysql/po"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UploadRepository is the MySQL implementation of upload.Repository.
type UploadRepository struct {
	db *gorm.DB
}

// NewUploadRepository creates a MySQL upload repository.
func NewUploadRepository(db *gorm.DB) *UploadRepository {
	return &UploadRepository{db: db}
}

var _ upload.Repository = (*UploadRepository)(nil)

// NextIdentity generates a new upload ID.
func (r *UploadRepository) NextIdentity() string {
	return uuid.NewString()
}

// Save writes the upload.
func (r *UploadRepository) Save(ctx context.Context, u *upload.Upload) error {
	db := dbFromContext(ctx, r.db)
	if err := db.Save(po.FromUploadDomain(u)).Error; err != nil {
		return fmt.Errorf("failed to save upload: %w", err)
	}
	return nil
}

// FindByID loads an upload with its bytes.
func (r *UploadRepository) FindByID(ctx context.Context, id string) (*upload.Upload, error) {
	db := dbFromContext(ctx, r.db)
	var uploadPO po.UploadPO
	if err := db.Where("id = ?", id).First(&uploadPO).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, upload.ErrUploadNotFound
		}
		return nil, fmt.Errorf("failed to find upload: %w", err)
	}
	return uploadPO.ToDomain(), nil
}

// Remove deletes an upload. Removing an absent upload is not an error.
func (r *UploadRepository) Remove(ctx context.Context, id string) error {
	db := dbFromContext(ctx, r.db)
	if err := db.Where("id = ?", id).Delete(&po.UploadPO{}).Error; err != nil {
		return fmt.Errorf("failed to delete upload: %w", err)
	}
	return nil
}
