// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"accounts/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAccountNotFound is a domain-specific error returned when no account matches a lookup.
var ErrAccountNotFound = errors.New("account not found")

// AccountRepository defines the persistence operations for accounts.
// Implementations must enforce email uniqueness themselves; a violation on Create
// is reported as domainerrors.ErrEmailInUse.
type AccountRepository interface {
	// Create persists a new account. The ID is assigned when it is the zero UUID.
	Create(ctx context.Context, account *entity.Account) error

	// FindByID retrieves a single account by its identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByEmail retrieves a single account by its normalized email.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// FindByVerificationToken retrieves the account holding an exact verification token.
	// An empty token never matches.
	FindByVerificationToken(ctx context.Context, token string) (*entity.Account, error)

	// MarkVerified sets the verified flag and clears the verification token atomically,
	// provided the account still holds token. Otherwise it returns ErrAccountNotFound.
	MarkVerified(ctx context.Context, id uuid.UUID, token string) error

	// SetSessionToken replaces the active session token; an empty token ends the session.
	SetSessionToken(ctx context.Context, id uuid.UUID, token string) error

	// SetSubscription updates the subscription tier and returns the stored account.
	SetSubscription(ctx context.Context, id uuid.UUID, tier entity.SubscriptionTier) (*entity.Account, error)
}
