// Package errors defines the application error taxonomy. Every AppError carries
// the HTTP status and the machine-readable code the API answers with.
package errors

import (
	"net/http"

	"accounts/internal/errors"
)

// AppError is an error the delivery layer can render without further mapping.
type AppError interface {
	error
	HTTPCode() int
	ErrorCode() string
	Message() string
	Details() string
}

// BaseError is the value type behind every predefined AppError.
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{httpCode: httpCode, errorCode: errorCode, message: message, details: details}
}

func newError(httpCode int, errorCode, message string) *BaseError {
	return NewBaseError(httpCode, errorCode, message, "")
}

func (e *BaseError) Error() string     { return e.message }
func (e *BaseError) HTTPCode() int     { return e.httpCode }
func (e *BaseError) ErrorCode() string { return e.errorCode }
func (e *BaseError) Message() string   { return e.message }
func (e *BaseError) Details() string   { return e.details }

// WrapMessage attaches internal context that is logged but never rendered.
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// Is matches any error with the same code and status, so a field-level
// validation error still satisfies errors.Is(err, ErrValidationFailed).
func (e *BaseError) Is(target error) bool {
	other, ok := target.(*BaseError)

	return ok && e.errorCode == other.errorCode && e.httpCode == other.httpCode
}

var (
	ErrValidationFailed = newError(http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed")

	ErrEmailInUse            = newError(http.StatusConflict, "EMAIL_IN_USE", "Email in use")
	ErrAccountCreationFailed = newError(http.StatusInternalServerError, "ACCOUNT_CREATION_FAILED", "Failed to create account")
	ErrAccountUpdateFailed   = newError(http.StatusInternalServerError, "ACCOUNT_UPDATE_FAILED", "Failed to update account")
	ErrPasswordHashFailed    = newError(http.StatusInternalServerError, "PASSWORD_HASH_FAILED", "Failed to process password")

	ErrInvalidCredentials = newError(http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email or password wrong")
	ErrEmailNotVerified   = newError(http.StatusUnauthorized, "EMAIL_NOT_VERIFIED", "Email isn't verified")
	ErrNotAuthorized      = newError(http.StatusUnauthorized, "NOT_AUTHORIZED", "Not authorized")
	ErrTokenIssueFailed   = newError(http.StatusInternalServerError, "TOKEN_ISSUE_FAILED", "Failed to issue session token")

	// Verification. Both lookups answer 401 to match the login failures.
	ErrEmailNotFound      = newError(http.StatusUnauthorized, "EMAIL_NOT_FOUND", "Email not found")
	ErrAlreadyVerified    = newError(http.StatusUnauthorized, "ALREADY_VERIFIED", "User already verified")
	ErrNotificationFailed = newError(http.StatusInternalServerError, "NOTIFICATION_FAILED", "Verification email could not be sent")

	ErrAccountNotFound = newError(http.StatusNotFound, "NOT_FOUND", "Not found")
	ErrTooManyRequests = newError(http.StatusTooManyRequests, "TOO_MANY_REQUESTS", "Too many requests, try again later")
	ErrInternalError   = newError(http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
)

// NewValidationError returns a validation failure whose message names the offending field.
func NewValidationError(message string) *BaseError {
	return newError(ErrValidationFailed.httpCode, ErrValidationFailed.errorCode, message)
}

// DatabaseExecuteError wraps a storage failure that has no more specific meaning.
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError wraps err; details is kept for logs only.
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{err: err, details: details}
}

func (e *DatabaseExecuteError) Error() string {
	return "database execution failed: " + e.details + ": " + e.err.Error()
}

func (e *DatabaseExecuteError) HTTPCode() int     { return http.StatusInternalServerError }
func (e *DatabaseExecuteError) ErrorCode() string { return "DATABASE_EXECUTE_FAILED" }
func (e *DatabaseExecuteError) Message() string   { return "Database execution failed" }
func (e *DatabaseExecuteError) Details() string   { return e.details }
func (e *DatabaseExecuteError) Unwrap() error     { return e.err }
