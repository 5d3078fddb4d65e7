// internal/errors/errors.go
package appErrors

import (
	"fmt"
	"strings"
)

// ValidationError carries one message per failing field so the caller can
// surface all of them, not just the first.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}

// NewValidation wraps field messages into a ValidationError.
func NewValidation(fields ...string) error {
	return &ValidationError{Fields: fields}
}

// NotFoundError signals a missing entity by identifier.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// NewNotFound builds a NotFoundError for the given resource.
func NewNotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// ConflictError signals a uniqueness violation, e.g. an email address
// already owned by another customer.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// NewConflict builds a ConflictError with the given message.
func NewConflict(message string) error {
	return &ConflictError{Message: message}
}

// SelectionEmptyError signals that a bulk-send filter matched no recipients.
// It is fatal to the whole call, unlike individual send failures.
type SelectionEmptyError struct {
	Message string
}

func (e *SelectionEmptyError) Error() string { return e.Message }

// NewSelectionEmpty builds a SelectionEmptyError with the given message.
func NewSelectionEmpty(message string) error {
	return &SelectionEmptyError{Message: message}
}
