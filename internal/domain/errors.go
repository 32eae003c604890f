package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates an operation referenced an id absent from the collection
	NotFoundError struct {
		Message      string
		ResourceType string // item, team, folder
		ResourceID   string
	}

	// ValidationError indicates malformed mutation input
	ValidationError struct {
		Message string
	}

	// InvariantViolationError signals corrupted data detected during derivation
	// (parent cycle, ancestor chain past the safety bound). It aborts the
	// derivation that found it and nothing else.
	InvariantViolationError struct {
		Message string
		ItemID  string
	}

	// UnauthorizedError indicates the acting user could not be identified
	UnauthorizedError struct {
		Message string
	}
)

// Error implementations
func (e *NotFoundError) Error() string           { return e.Message }
func (e *ValidationError) Error() string         { return e.Message }
func (e *InvariantViolationError) Error() string { return e.Message }
func (e *UnauthorizedError) Error() string       { return e.Message }

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int           { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int         { return http.StatusBadRequest }
func (e *InvariantViolationError) StatusCode() int { return http.StatusInternalServerError }
func (e *UnauthorizedError) StatusCode() int       { return http.StatusUnauthorized }

// Is allows errors.Is() to match the struct errors against their sentinels
func (e *NotFoundError) Is(target error) bool           { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool         { return target == ErrValidation }
func (e *InvariantViolationError) Is(target error) bool { return target == ErrInvariantViolation }
func (e *UnauthorizedError) Is(target error) bool       { return target == ErrUnauthorized }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrInvariantViolation = errors.New("invariant violation")
	ErrUnauthorized       = errors.New("unauthorized")
)

// NewNotFound builds a NotFoundError for a resource type and id
func NewNotFound(resourceType, id string) *NotFoundError {
	return &NotFoundError{
		Message:      fmt.Sprintf("%s %q not found", resourceType, id),
		ResourceType: resourceType,
		ResourceID:   id,
	}
}

// NewValidation builds a ValidationError from a format string
func NewValidation(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NewInvariantViolation builds an InvariantViolationError anchored at an item
func NewInvariantViolation(itemID, format string, args ...any) *InvariantViolationError {
	return &InvariantViolationError{
		Message: "invariant violation: " + fmt.Sprintf(format, args...),
		ItemID:  itemID,
	}
}
