// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"crypto/md5" //nolint:gosec // gravatar addresses are md5 digests by definition
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
)

const gravatarBaseURL = "https://www.gravatar.com/avatar/"

// AccountState is the position of an account in its lifecycle.
type AccountState string

const (
	// AccountStateUnverified is the state right after registration.
	AccountStateUnverified AccountState = "unverified"
	// AccountStateVerified means the email was confirmed and no session is active.
	AccountStateVerified AccountState = "verified"
	// AccountStateSessionActive means a session token was issued and not yet revoked.
	AccountStateSessionActive AccountState = "session_active"
)

// Account is the single persisted identity of a registered user.
type Account struct {
	ID                uuid.UUID        // Immutable identifier assigned at creation.
	Email             string           // Normalized, unique login identifier.
	PasswordHash      string           // One-way hash of the plaintext password.
	Subscription      SubscriptionTier // Flat plan classification.
	AvatarURL         string           // Gravatar link derived from the email.
	VerificationToken string           // Single-use token; empty once verified.
	Verified          bool             // Becomes true exactly once.
	SessionToken      string           // Most recently issued bearer token, or empty.
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// State derives the lifecycle state from the stored fields.
func (a *Account) State() AccountState {
	switch {
	case !a.Verified:
		return AccountStateUnverified
	case a.SessionToken != "":
		return AccountStateSessionActive
	default:
		return AccountStateVerified
	}
}

// CanLogin reports whether a login attempt may proceed to the credential check.
func (a *Account) CanLogin() bool {
	return a.Verified
}

// HasActiveSession reports whether token is the session currently honored for this account.
func (a *Account) HasActiveSession(token string) bool {
	return token != "" && a.SessionToken == token
}

// AccountProjection is the public subset returned by registration and current-user lookups.
type AccountProjection struct {
	Email        string           `json:"email"`
	Subscription SubscriptionTier `json:"subscription"`
}

// AccountView is the full public projection of an account. Secrets never leave through it.
type AccountView struct {
	ID           uuid.UUID        `json:"id"`
	Email        string           `json:"email"`
	Subscription SubscriptionTier `json:"subscription"`
	AvatarURL    string           `json:"avatarURL"`
	Verified     bool             `json:"verify"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

// Projection returns the {email, subscription} view of the account.
func (a *Account) Projection() *AccountProjection {
	return &AccountProjection{
		Email:        a.Email,
		Subscription: a.Subscription,
	}
}

// PublicView returns every non-secret field of the account.
func (a *Account) PublicView() *AccountView {
	return &AccountView{
		ID:           a.ID,
		Email:        a.Email,
		Subscription: a.Subscription,
		AvatarURL:    a.AvatarURL,
		Verified:     a.Verified,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

// NormalizeEmail is the case policy applied to every email before lookup or insert.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// GravatarURL returns the default avatar link for an email address.
func GravatarURL(email string) string {
	sum := md5.Sum([]byte(NormalizeEmail(email))) //nolint:gosec // see import comment

	return gravatarBaseURL + hex.EncodeToString(sum[:])
}
