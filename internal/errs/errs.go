// Package errs contains the error kinds shared across layers so handlers
// can map failures to stable HTTP statuses with errors.Is.
package errs

import (
	"errors"
	"fmt"
)

// Error kinds. Services wrap these with a human-readable detail; the
// detail is what callers see, the kind is what handlers branch on.
var (
	// ErrValidation indicates malformed or out-of-range input.
	ErrValidation = errors.New("validation error")

	// ErrPermission indicates the actor lacks rights for the mutation.
	ErrPermission = errors.New("permission denied")

	// ErrNotFound indicates the referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrCapacity indicates the bottle-accounting invariant would be violated.
	ErrCapacity = errors.New("capacity exceeded")

	// ErrConflict indicates the entity is in a state incompatible with the
	// requested transition.
	ErrConflict = errors.New("conflict")
)

// Error carries a caller-facing detail string and unwraps to its kind.
type Error struct {
	kind   error
	detail string
}

func (e *Error) Error() string { return e.detail }

func (e *Error) Unwrap() error { return e.kind }

// Validation builds a validation error with a formatted detail.
func Validation(format string, args ...any) error {
	return &Error{kind: ErrValidation, detail: fmt.Sprintf(format, args...)}
}

// Permission builds a permission error with a formatted detail.
func Permission(format string, args ...any) error {
	return &Error{kind: ErrPermission, detail: fmt.Sprintf(format, args...)}
}

// NotFound builds a not-found error with a formatted detail.
func NotFound(format string, args ...any) error {
	return &Error{kind: ErrNotFound, detail: fmt.Sprintf(format, args...)}
}

// Capacity builds a capacity error with a formatted detail.
func Capacity(format string, args ...any) error {
	return &Error{kind: ErrCapacity, detail: fmt.Sprintf(format, args...)}
}

// Conflict builds a conflict error with a formatted detail.
func Conflict(format string, args ...any) error {
	return &Error{kind: ErrConflict, detail: fmt.Sprintf(format, args...)}
}
