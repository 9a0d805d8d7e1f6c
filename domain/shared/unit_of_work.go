package shared

import "context"

// UnitOfWork runs a business function as one atomic unit. Everything the
// function does through repositories either commits together or not at all;
// implementations decide how (database transaction, in-memory lock).
type UnitOfWork interface {
	// Execute runs fn inside a transaction boundary. The context passed to
	// fn carries the transaction; repositories pick it up from there.
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
}
