package service

import (
	"context"
	"time"
)

// Account event types.
const (
	EventAccountRegistered          = "account.registered"
	EventAccountVerified            = "account.verified"
	EventAccountLoggedIn            = "account.logged_in"
	EventAccountLoggedOut           = "account.logged_out"
	EventAccountSubscriptionChanged = "account.subscription_changed"
)

// AccountEvent describes a completed account state transition.
type AccountEvent struct {
	RequestID    string    `json:"request_id,omitempty"` // For distributed tracing
	EventID      string    `json:"event_id"`
	Type         string    `json:"type"`
	AccountID    string    `json:"account_id"`
	Email        string    `json:"email"`
	Subscription string    `json:"subscription,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishAccountEvent publishes an account event for downstream consumers
	PublishAccountEvent(ctx context.Context, event *AccountEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
