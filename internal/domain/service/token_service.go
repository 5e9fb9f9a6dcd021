package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenTypeSession marks bearer tokens minted by a successful login.
const TokenTypeSession = "session"

// Claims defines the custom claims carried by session tokens.
type Claims struct {
	AccountID uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	jwt.RegisteredClaims
}

// TokenService issues and validates time-bounded session tokens.
// Expiry is enforced here and nowhere else.
type TokenService interface {
	// IssueSessionToken mints a token bound to the account identity.
	IssueSessionToken(accountID uuid.UUID) (string, error)

	// ValidateToken checks signature, type and expiry and returns the claims.
	ValidateToken(tokenString string) (*Claims, error)

	// SessionTTL returns the configured lifetime of session tokens.
	SessionTTL() time.Duration
}
