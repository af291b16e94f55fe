// Package shared contains common domain types and errors used across all
// domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// ErrNotFound means a referenced entity id does not exist in its store.
	// It is always surfaced to the caller and never treated as "create on demand".
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidInput means a payload failed a validation rule.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSameID means a friendship operation referenced one user as both parties.
	ErrSameID = errors.New("same user on both sides")

	// ErrAlreadyExists is returned by stores on unique constraint conflicts.
	ErrAlreadyExists = errors.New("entity already exists")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "user", "film", "relation"
	Op      string // Operation that failed, e.g., "Create", "AddLike"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// NotFound builds the uniform "kind with id does not exist" failure.
// The kind is the entity name as seen by API consumers ("user", "film",
// "genre", "mpa").
func NotFound(kind string, id int64) *DomainError {
	return &DomainError{
		Domain:  kind,
		Op:      "Get",
		Kind:    ErrNotFound,
		Message: fmt.Sprintf("%s with id=%d does not exist", kind, id),
	}
}

// InvalidInput builds a validation failure for a single field.
// The first failing rule determines the reported field and reason.
func InvalidInput(domain, field, reason string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      "Validate",
		Kind:    ErrInvalidInput,
		Message: fmt.Sprintf("%s: %s", field, reason),
	}
}

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidInput checks if the error is a validation error.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsSameID checks if the error is a same-id friendship error.
func IsSameID(err error) bool {
	return errors.Is(err, ErrSameID)
}
