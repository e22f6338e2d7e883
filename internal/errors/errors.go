// Package errors defines the typed error taxonomy used across the core
// services. Callers branch on the kind via the Is* helpers instead of
// matching error strings.
package errors

import (
	"errors"
	"fmt"
)

// ErrValidation signals that caller-supplied input violated a stated bound.
// Never retried; always the caller's fault.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// ErrNotFound signals a well-formed request for which no data exists,
// typically a symbol with no obtainable price data.
type ErrNotFound struct {
	Resource string
}

func (e *ErrNotFound) Error() string {
	return e.Resource + " not found"
}

// ErrExternalService signals that an external collaborator (exchange API,
// persistence layer) failed unexpectedly. An outer layer may retry these.
type ErrExternalService struct {
	Service string
	Err     error
}

func (e *ErrExternalService) Error() string {
	if e.Err == nil {
		return e.Service + " unavailable"
	}
	return fmt.Sprintf("%s unavailable: %v", e.Service, e.Err)
}

func (e *ErrExternalService) Unwrap() error { return e.Err }

// NewValidation builds a field-scoped validation error.
func NewValidation(field, message string) error {
	return &ErrValidation{Field: field, Message: message}
}

// NewNotFound builds a not-found error for the named resource.
func NewNotFound(resource string) error {
	return &ErrNotFound{Resource: resource}
}

// NewExternalService wraps err as a failure of the named external service.
func NewExternalService(service string, err error) error {
	return &ErrExternalService{Service: service, Err: err}
}

func IsValidation(err error) bool {
	var target *ErrValidation
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *ErrNotFound
	return errors.As(err, &target)
}

func IsExternalService(err error) bool {
	var target *ErrExternalService
	return errors.As(err, &target)
}
