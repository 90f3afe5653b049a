package model

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed or out-of-range input.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a reference to an unknown product or transaction.
	ErrNotFound = errors.New("not found")
)

// ValidationError describes the first field that failed validation.
type ValidationError struct {
	Field   string
	Tag     string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("Validation failed: %s", e.Message)
	}
	return fmt.Sprintf("Validation failed: Field '%s' failed on tag '%s'", e.Field, e.Tag)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NotFoundError names the missing resource.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

func ProductNotFound(id string) error {
	return &NotFoundError{Resource: "product", ID: id}
}

func TransactionNotFound(id string) error {
	return &NotFoundError{Resource: "transaction", ID: id}
}
