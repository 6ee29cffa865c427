package services

import (
	"errors"
	"fmt"
)

// Sentinel errors for the service layer. Handlers map these onto HTTP status
// codes; anything unrecognized collapses to a generic 500.
var (
	// ErrNotFound covers both genuinely missing resources and resources
	// belonging to another tenant. Cross-tenant access is always reported
	// as not-found so status codes never leak other tenants' data.
	ErrNotFound = errors.New("resource not found")

	// ErrForbidden means the caller's role is insufficient for an endpoint
	// its tenant could otherwise reach.
	ErrForbidden = errors.New("insufficient permissions")

	// ErrInvalidCredentials covers unknown email, wrong password, and
	// deactivated accounts without distinguishing between them.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken covers malformed, badly signed, and expired tokens.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrTooManyAttempts is returned when the login throttle is tripped.
	ErrTooManyAttempts = errors.New("too many failed login attempts")
)

// ValidationError represents a single-field validation failure
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// IsValidationError checks if an error is a ValidationError
func IsValidationError(err error) (*ValidationError, bool) {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr, true
	}
	return nil, false
}

// ConflictError represents a resource conflict (e.g., already exists)
type ConflictError struct {
	Resource string `json:"resource"`
	Message  string `json:"message"`
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s conflict: %s", e.Resource, e.Message)
}

// NewConflictError creates a new conflict error
func NewConflictError(resource, message string) *ConflictError {
	return &ConflictError{
		Resource: resource,
		Message:  message,
	}
}

// IsConflictError checks if an error is a ConflictError
func IsConflictError(err error) (*ConflictError, bool) {
	var conflictErr *ConflictError
	if errors.As(err, &conflictErr) {
		return conflictErr, true
	}
	return nil, false
}
