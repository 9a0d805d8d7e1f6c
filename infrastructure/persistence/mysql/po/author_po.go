package po

import (
	"time"

	"bookstore/domain/catalog"
)

// AuthorPO is the persistence object for authors.
type AuthorPO struct {
	ID        string    `gorm:"column:id;primaryKey;size:64"`
	Name      string    `gorm:"column:name;size:255;not null;uniqueIndex:uk_authors_name"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

// TableName returns the table name for AuthorPO.
func (AuthorPO) TableName() string {
	return "authors"
}

// FromAuthorDomain converts a domain author to its persistence object.
func FromAuthorDomain(a *catalog.Author) *AuthorPO {
	return &AuthorPO{
		ID:        a.ID,
		Name:      a.Name,
		CreatedAt: a.CreatedAt,
	}
}

// ToDomain converts the persistence object back to a domain author.
func (p *AuthorPO) ToDomain() *catalog.Author {
	return &catalog.Author{
		ID:        p.ID,
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
	}
}
