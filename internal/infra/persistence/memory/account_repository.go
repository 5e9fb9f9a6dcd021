// Package memory provides a process-local account store for development and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Store keeps accounts in maps guarded by one mutex. The email index is the
// uniqueness authority, checked and written under the same lock as the insert.
type Store struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]*entity.Account
	byEmail  map[string]uuid.UUID
	byToken  map[string]uuid.UUID
	now      func() time.Time
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		accounts: make(map[uuid.UUID]*entity.Account),
		byEmail:  make(map[string]uuid.UUID),
		byToken:  make(map[string]uuid.UUID),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// NewAccountRepository exposes the store as a repository.AccountRepository.
func NewAccountRepository(store *Store) repository.AccountRepository {
	return store
}

// Create inserts the account unless its email is already indexed.
func (s *Store) Create(_ context.Context, account *entity.Account) error {
	if account.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "failed to generate account id")
		}
		account.ID = id
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[account.Email]; exists {
		return domainerrors.ErrEmailInUse.WrapMessage("email already exists")
	}
	if _, exists := s.accounts[account.ID]; exists {
		return domainerrors.ErrAccountCreationFailed.WrapMessage("duplicate account id")
	}

	now := s.now()
	account.CreatedAt = now
	account.UpdatedAt = now

	stored := *account
	s.accounts[stored.ID] = &stored
	s.byEmail[stored.Email] = stored.ID
	if stored.VerificationToken != "" {
		s.byToken[stored.VerificationToken] = stored.ID
	}

	return nil
}

// FindByID retrieves a copy of the account with the given ID.
func (s *Store) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.copyOf(id)
}

// FindByEmail retrieves a copy of the account with the given email.
func (s *Store) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	return s.copyOf(id)
}

// FindByVerificationToken retrieves the account holding the token. Empty tokens never match.
func (s *Store) FindByVerificationToken(_ context.Context, token string) (*entity.Account, error) {
	if token == "" {
		return nil, repository.ErrAccountNotFound
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byToken[token]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	return s.copyOf(id)
}

// MarkVerified sets the verified flag and drops the token from the index if the
// account still holds token.
func (s *Store) MarkVerified(_ context.Context, id uuid.UUID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[id]
	if !ok || token == "" || account.VerificationToken != token {
		return repository.ErrAccountNotFound
	}

	delete(s.byToken, account.VerificationToken)
	account.Verified = true
	account.VerificationToken = ""
	account.UpdatedAt = s.now()

	return nil
}

// SetSessionToken replaces the stored session token.
func (s *Store) SetSessionToken(_ context.Context, id uuid.UUID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[id]
	if !ok {
		return repository.ErrAccountNotFound
	}

	account.SessionToken = token
	account.UpdatedAt = s.now()

	return nil
}

// SetSubscription updates the tier and returns a copy of the stored account.
func (s *Store) SetSubscription(_ context.Context, id uuid.UUID, tier entity.SubscriptionTier) (*entity.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	account.Subscription = tier
	account.UpdatedAt = s.now()

	return s.copyOf(id)
}

// copyOf must be called with the lock held.
func (s *Store) copyOf(id uuid.UUID) (*entity.Account, error) {
	account, ok := s.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	out := *account

	return &out, nil
}
