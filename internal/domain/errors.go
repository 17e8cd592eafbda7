package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("todo not found")
	ErrBackend    = errors.New("storage backend failure")
)

// ValidationError describes bad or missing input. It is reported before
// any persistence attempt.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NotFoundError is returned when an operation targets a missing id.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("todo %d not found", e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

type backendError struct {
	op  string
	err error
}

func (e *backendError) Error() string {
	return e.op + ": " + e.err.Error()
}

func (e *backendError) Unwrap() []error { return []error{ErrBackend, e.err} }

// BackendError wraps a network, database or serialization failure. Both
// ErrBackend and the cause stay reachable through errors.Is.
func BackendError(op string, err error) error {
	if err == nil {
		return nil
	}
	var be *backendError
	if errors.As(err, &be) {
		return err
	}
	return &backendError{op: op, err: err}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
