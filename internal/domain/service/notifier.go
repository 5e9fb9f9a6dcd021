package service

import "context"

// VerificationMessage is the payload of an email-verification notification.
type VerificationMessage struct {
	Email             string
	VerificationToken string
	VerificationURL   string
}

// VerificationNotifier delivers verification links to email addresses.
type VerificationNotifier interface {
	// SendVerification delivers the message; a nil error means the transport accepted it.
	SendVerification(ctx context.Context, msg *VerificationMessage) error
}
