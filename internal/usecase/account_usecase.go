// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"accounts/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	Subscription string `json:"subscription" validate:"omitempty,subscription"`
}

// ResendVerificationInput names the account whose verification email is re-sent.
type ResendVerificationInput struct {
	Email string `json:"email" validate:"required,email"`
}

// LoginInput defines the data required for an account to log in.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// UpdateSubscriptionInput carries the requested subscription tier.
type UpdateSubscriptionInput struct {
	Subscription string `json:"subscription" validate:"required,subscription"`
}

// --- Output DTOs ---

// RegisterOutput returns the public projection of the newly created account.
type RegisterOutput struct {
	User *entity.AccountProjection `json:"user"`
}

// LoginOutput returns the session token minted by a successful login.
type LoginOutput struct {
	Token string `json:"token"`
}

// AccountUsecase defines the account lifecycle operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AccountUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)
	VerifyEmail(ctx context.Context, verificationToken string) error
	ResendVerification(ctx context.Context, input *ResendVerificationInput) error
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	// Logout revokes the session of an account already resolved by Authenticate.
	Logout(ctx context.Context, account *entity.Account) error
	GetCurrent(ctx context.Context, account *entity.Account) (*entity.AccountProjection, error)
	UpdateSubscription(ctx context.Context, accountID uuid.UUID, input *UpdateSubscriptionInput) (*entity.AccountView, error)

	// Authenticate resolves a bearer token to the account whose active session it is.
	Authenticate(ctx context.Context, token string) (*entity.Account, error)
}
