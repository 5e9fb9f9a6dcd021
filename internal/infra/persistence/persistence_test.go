package persistence_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"
	"accounts/internal/infra/persistence/memory"
	"accounts/internal/infra/persistence/model"
	"accounts/internal/infra/persistence/postgres"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type storeFactory func(t *testing.T) (repository.AccountRepository, repository.TransactionManager)

func newMemoryStore(t *testing.T) (repository.AccountRepository, repository.TransactionManager) {
	t.Helper()

	store := memory.NewStore()

	return memory.NewAccountRepository(store), memory.NewTransactionManager(store)
}

func newSQLiteStore(t *testing.T) (repository.AccountRepository, repository.TransactionManager) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every connection to ":memory:" is a separate database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&model.AccountModel{}))

	return postgres.NewAccountRepository(db), postgres.NewTransactionManager(db)
}

func stores() map[string]storeFactory {
	return map[string]storeFactory{
		"memory": newMemoryStore,
		"gorm":   newSQLiteStore,
	}
}

func newAccount(email string) *entity.Account {
	return &entity.Account{
		Email:             email,
		PasswordHash:      "hash",
		Subscription:      entity.SubscriptionStarter,
		AvatarURL:         entity.GravatarURL(email),
		VerificationToken: uuid.NewString(),
	}
}

func TestAccountRepository_CreateAndFind(t *testing.T) {
	for name, factory := range stores() {
		t.Run(name, func(t *testing.T) {
			repo, _ := factory(t)
			ctx := context.Background()

			account := newAccount("a@b.com")
			require.NoError(t, repo.Create(ctx, account))
			assert.NotEqual(t, uuid.Nil, account.ID)
			assert.False(t, account.CreatedAt.IsZero())

			byID, err := repo.FindByID(ctx, account.ID)
			require.NoError(t, err)
			assert.Equal(t, "a@b.com", byID.Email)
			assert.Equal(t, entity.SubscriptionStarter, byID.Subscription)
			assert.False(t, byID.Verified)

			byEmail, err := repo.FindByEmail(ctx, "a@b.com")
			require.NoError(t, err)
			assert.Equal(t, account.ID, byEmail.ID)

			byToken, err := repo.FindByVerificationToken(ctx, account.VerificationToken)
			require.NoError(t, err)
			assert.Equal(t, account.ID, byToken.ID)
		})
	}
}

func TestAccountRepository_NotFound(t *testing.T) {
	for name, factory := range stores() {
		t.Run(name, func(t *testing.T) {
			repo, _ := factory(t)
			ctx := context.Background()

			_, err := repo.FindByID(ctx, uuid.New())
			assert.ErrorIs(t, err, repository.ErrAccountNotFound)

			_, err = repo.FindByEmail(ctx, "missing@b.com")
			assert.ErrorIs(t, err, repository.ErrAccountNotFound)

			_, err = repo.FindByVerificationToken(ctx, "")
			assert.ErrorIs(t, err, repository.ErrAccountNotFound)

			assert.ErrorIs(t, repo.MarkVerified(ctx, uuid.New(), "token"), repository.ErrAccountNotFound)
			assert.ErrorIs(t, repo.SetSessionToken(ctx, uuid.New(), "t"), repository.ErrAccountNotFound)

			_, err = repo.SetSubscription(ctx, uuid.New(), entity.SubscriptionPro)
			assert.ErrorIs(t, err, repository.ErrAccountNotFound)
		})
	}
}

func TestAccountRepository_DuplicateEmail(t *testing.T) {
	for name, factory := range stores() {
		t.Run(name, func(t *testing.T) {
			repo, _ := factory(t)
			ctx := context.Background()

			require.NoError(t, repo.Create(ctx, newAccount("dup@b.com")))

			err := repo.Create(ctx, newAccount("dup@b.com"))
			require.Error(t, err)
			assert.ErrorIs(t, err, domainerrors.ErrEmailInUse)
		})
	}
}

func TestAccountRepository_ConcurrentDuplicateEmail(t *testing.T) {
	for name, factory := range stores() {
		t.Run(name, func(t *testing.T) {
			repo, _ := factory(t)
			ctx := context.Background()

			const attempts = 16
			var created, conflicts atomic.Int32
			var wg sync.WaitGroup
			for range attempts {
				wg.Add(1)
				go func() {
					defer wg.Done()

					err := repo.Create(ctx, newAccount("race@b.com"))
					switch {
					case err == nil:
						created.Add(1)
					case errors.Is(err, domainerrors.ErrEmailInUse):
						conflicts.Add(1)
					}
				}()
			}
			wg.Wait()

			assert.Equal(t, int32(1), created.Load())
			assert.Equal(t, int32(attempts-1), conflicts.Load())
		})
	}
}

func TestAccountRepository_MarkVerified(t *testing.T) {
	for name, factory := range stores() {
		t.Run(name, func(t *testing.T) {
			repo, _ := factory(t)
			ctx := context.Background()

			account := newAccount("v@b.com")
			require.NoError(t, repo.Create(ctx, account))
			assert.ErrorIs(t, repo.MarkVerified(ctx, account.ID, "other-token"), repository.ErrAccountNotFound)
			assert.ErrorIs(t, repo.MarkVerified(ctx, account.ID, ""), repository.ErrAccountNotFound)
			require.NoError(t, repo.MarkVerified(ctx, account.ID, account.VerificationToken))

			stored, err := repo.FindByID(ctx, account.ID)
			require.NoError(t, err)
			assert.True(t, stored.Verified)
			assert.Empty(t, stored.VerificationToken)

			// The consumed token no longer resolves, and cannot be consumed twice.
			_, err = repo.FindByVerificationToken(ctx, account.VerificationToken)
			assert.ErrorIs(t, err, repository.ErrAccountNotFound)
			assert.ErrorIs(t, repo.MarkVerified(ctx, account.ID, account.VerificationToken), repository.ErrAccountNotFound)
		})
	}
}

func TestAccountRepository_SessionAndSubscription(t *testing.T) {
	for name, factory := range stores() {
		t.Run(name, func(t *testing.T) {
			repo, _ := factory(t)
			ctx := context.Background()

			account := newAccount("s@b.com")
			require.NoError(t, repo.Create(ctx, account))

			require.NoError(t, repo.SetSessionToken(ctx, account.ID, "token-1"))
			stored, err := repo.FindByID(ctx, account.ID)
			require.NoError(t, err)
			assert.Equal(t, "token-1", stored.SessionToken)

			require.NoError(t, repo.SetSessionToken(ctx, account.ID, ""))
			stored, err = repo.FindByID(ctx, account.ID)
			require.NoError(t, err)
			assert.Empty(t, stored.SessionToken)

			updated, err := repo.SetSubscription(ctx, account.ID, entity.SubscriptionBusiness)
			require.NoError(t, err)
			assert.Equal(t, entity.SubscriptionBusiness, updated.Subscription)
			assert.Equal(t, "s@b.com", updated.Email)
		})
	}
}

func TestAccountRepository_ReturnsCopies(t *testing.T) {
	for name, factory := range stores() {
		t.Run(name, func(t *testing.T) {
			repo, _ := factory(t)
			ctx := context.Background()

			account := newAccount("c@b.com")
			require.NoError(t, repo.Create(ctx, account))

			loaded, err := repo.FindByID(ctx, account.ID)
			require.NoError(t, err)
			loaded.Verified = true

			again, err := repo.FindByID(ctx, account.ID)
			require.NoError(t, err)
			assert.False(t, again.Verified)
		})
	}
}

func TestTransactionManager_Execute(t *testing.T) {
	for name, factory := range stores() {
		t.Run(name, func(t *testing.T) {
			repo, txManager := factory(t)
			ctx := context.Background()

			account := newAccount("tx@b.com")
			require.NoError(t, repo.Create(ctx, account))

			err := txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
				found, err := f.AccountRepo().FindByVerificationToken(ctx, account.VerificationToken)
				if err != nil {
					return err
				}

				return f.AccountRepo().MarkVerified(ctx, found.ID, account.VerificationToken)
			})
			require.NoError(t, err)

			stored, err := repo.FindByID(ctx, account.ID)
			require.NoError(t, err)
			assert.True(t, stored.Verified)
		})
	}
}

func TestGormTransactionManager_RollsBackOnError(t *testing.T) {
	repo, txManager := newSQLiteStore(t)
	ctx := context.Background()

	account := newAccount("rb@b.com")
	require.NoError(t, repo.Create(ctx, account))

	sentinel := errors.New("abort")
	err := txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		if err := f.AccountRepo().MarkVerified(ctx, account.ID, account.VerificationToken); err != nil {
			return err
		}

		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	stored, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.False(t, stored.Verified)
	assert.Equal(t, account.VerificationToken, stored.VerificationToken)
}
