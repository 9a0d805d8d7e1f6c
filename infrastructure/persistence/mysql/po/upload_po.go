package po

import (
	"time"

	"bookstore/domain/upload"
)

// UploadPO is the persistence object for uploaded files.
type UploadPO struct {
	ID          string    `gorm:"column:id;primaryKey;size:64"`
	Filename    string    `gorm:"column:filename;size:255;not null"`
	ContentType string    `gorm:"column:content_type;size:128;not null"`
	File        []byte    `gorm:"column:file;type:mediumblob;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;not null"`
}

// TableName returns the table name for UploadPO.
func (UploadPO) TableName() string {
	return "uploads"
}

// FromUploadDomain converts a domain upload to its persistence object.
func FromUploadDomain(u *upload.Upload) *UploadPO {
	return &UploadPO{
		ID:          u.ID,
		Filename:    u.Filename,
		ContentType: u.ContentType,
		File:        u.File,
		CreatedAt:   u.CreatedAt,
	}
}

// ToDomain converts the persistence object back to a domain upload.
func (p *UploadPO) ToDomain() *upload.Upload {
	return &upload.Upload{
		ID:          p.ID,
		Filename:    p.Filename,
		ContentType: p.ContentType,
		File:        p.File,
		CreatedAt:   p.CreatedAt,
	}
}
