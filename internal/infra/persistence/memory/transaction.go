package memory

import (
	"context"
	"sync"

	"accounts/internal/domain/repository"
)

// transactionManager serializes transactional callbacks against the store.
// Writes made before a callback error are not undone.
type transactionManager struct {
	mu    sync.Mutex
	store *Store
}

// NewTransactionManager returns a TransactionManager over store.
func NewTransactionManager(store *Store) repository.TransactionManager {
	return &transactionManager{store: store}
}

// Execute runs fn while holding the transaction lock.
func (tm *transactionManager) Execute(ctx context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	if err := ctx.Err(); err != nil {
		return err //nolint:wrapcheck // context errors are returned as-is
	}

	tm.mu.Lock()
	defer tm.mu.Unlock()

	return fn(tm)
}

// AccountRepo returns the store itself; every method already locks.
func (tm *transactionManager) AccountRepo() repository.AccountRepository {
	return tm.store
}
