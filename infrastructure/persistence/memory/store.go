// Package memory implements the repositories on process-local maps. It is
// the development and test profile; data does not survive a restart.
package memory

import (
	"context"
	"sync"
)

// Store is the shared in-memory state behind every memory repository.
// Repositories guard map access with mu; the unit of work serializes
// whole read-modify-write sequences with txMu.
type Store struct {
	mu sync.RWMutex

	books      map[string]bookRecord
	authors    map[string]authorRecord
	orders     map[string]orderRecord
	recipients map[string]recipientRecord
	users      map[string]userRecord
	uploads    map[string]uploadRecord

	txMu sync.Mutex
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		books:      make(map[string]bookRecord),
		authors:    make(map[string]authorRecord),
		orders:     make(map[string]orderRecord),
		recipients: make(map[string]recipientRecord),
		users:      make(map[string]userRecord),
		uploads:    make(map[string]uploadRecord),
	}
}

// UnitOfWork serializes transactional sequences over the store. There is
// no rollback; callers validate everything before the first write, which
// every service in this codebase does.
type UnitOfWork struct {
	store *Store
}

// NewUnitOfWork creates a unit of work over the store.
func NewUnitOfWork(store *Store) *UnitOfWork {
	return &UnitOfWork{store: store}
}

// Execute runs fn while holding the store's transaction lock. Nested calls
// would deadlock, so the lock state rides in the context the same way the
// database transaction does in the MySQL backend.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}
	u.store.txMu.Lock()
	defer u.store.txMu.Unlock()
	return fn(contextWithTx(ctx))
}

type txKey struct{}

func contextWithTx(ctx context.Context) context.Context {
	return context.WithValue(ctx, txKey{}, true)
}

func inTx(ctx context.Context) bool {
	held, _ := ctx.Value(txKey{}).(bool)
	return held
}
