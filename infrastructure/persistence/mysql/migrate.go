package mysql

import (
	"fmt"

	"bookstore/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// Migrate creates or updates the schema for all persistence objects.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&po.AuthorPO{},
		&po.BookPO{},
		&po.BookAuthorPO{},
		&po.RecipientPO{},
		&po.OrderPO{},
		&po.OrderItemPO{},
		&po.UserPO{},
		&po.UploadPO{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
