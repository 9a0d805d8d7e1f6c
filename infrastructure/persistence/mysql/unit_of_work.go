package mysql

import (
	"context"

	"bookstore/infrastructure/persistence"
	"bookstore/infrastructure/persistence/retry"

	"gorm.io/gorm"
)

// UnitOfWork runs a function inside one database transaction. The
// transaction travels in the context; repositories join it through
// dbFromContext. Retryable failures such as deadlocks rerun the whole
// function, so callers must keep it free of external side effects.
type UnitOfWork struct {
	db          *gorm.DB
	retryConfig retry.Config
}

// NewUnitOfWork creates a unit of work over the given connection.
func NewUnitOfWork(db *gorm.DB, retryConfig retry.Config) *UnitOfWork {
	return &UnitOfWork{db: db, retryConfig: retryConfig}
}

// Execute runs fn transactionally. A nested call joins the transaction
// already in the context instead of opening a new one.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	if persistence.TxFromContext(ctx) != nil {
		return fn(ctx)
	}
	return retry.Execute(ctx, u.retryConfig, func(ctx context.Context) error {
		return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(persistence.ContextWithTx(ctx, tx))
		})
	})
}

// dbFromContext returns the transaction bound to the context, or a
// context-scoped handle on the base connection.
func dbFromContext(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return db.WithContext(ctx)
}
