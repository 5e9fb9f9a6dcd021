// Package persistence selects the account store backend.
package persistence

import (
	"log/slog"

	"accounts/config"
	"accounts/internal/domain/repository"
	"accounts/internal/infra/persistence/memory"
	"accounts/internal/infra/persistence/postgres"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// StoreParams holds dependencies for the store provider, injected by Fx.
type StoreParams struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// StoreResult exposes the repository and its transaction manager to Fx.
type StoreResult struct {
	fx.Out

	AccountRepo repository.AccountRepository
	TxManager   repository.TransactionManager
}

// NewStore builds the configured backend.
func NewStore(params StoreParams) (StoreResult, error) {
	switch params.Config.Storage.Driver {
	case config.StorageDriverMemory:
		params.Logger.Warn("Using in-memory account store; data is lost on restart")
		store := memory.NewStore()

		return StoreResult{
			AccountRepo: memory.NewAccountRepository(store),
			TxManager:   memory.NewTransactionManager(store),
		}, nil

	case config.StorageDriverPostgres, "":
		db, err := postgres.New(postgres.Params{
			Lifecycle: params.Lc,
			Config:    params.Config,
			Logger:    params.Logger,
		})
		if err != nil {
			return StoreResult{}, err
		}

		return StoreResult{
			AccountRepo: postgres.NewAccountRepository(db),
			TxManager:   postgres.NewTransactionManager(db),
		}, nil

	default:
		return StoreResult{}, errors.Errorf("unsupported storage driver: %s", params.Config.Storage.Driver)
	}
}
