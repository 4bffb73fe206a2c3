// Package domainerr holds the error taxonomy shared by the domain, the
// application handlers and the adapters.
package domainerr

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyInitialized is returned when an aggregate that already owns an
	// identity is initialized again.
	ErrAlreadyInitialized = errors.New("aggregate already initialized")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError is the caller's fault and is never retried.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func Validation(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// StorageError hides driver detail from its message; the cause is still
// reachable through errors.Unwrap for logging.
type StorageError struct {
	Op    string
	cause error
}

func (e *StorageError) Error() string { return "storage failure during " + e.Op }
func (e *StorageError) Unwrap() error { return e.cause }

func Storage(op string, err error) error {
	return &StorageError{Op: op, cause: err}
}

type PublicationError struct {
	TypeTag   string
	SubjectID string
	cause     error
}

func (e *PublicationError) Error() string {
	return fmt.Sprintf("publish %s for %s failed", e.TypeTag, e.SubjectID)
}
func (e *PublicationError) Unwrap() error { return e.cause }

func Publication(typeTag, subjectID string, err error) error {
	return &PublicationError{TypeTag: typeTag, SubjectID: subjectID, cause: err}
}

type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string { return e.Resource + " " + e.ID + " not found" }

func NotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// ConflictError reports a uniqueness violation on Field.
type ConflictError struct {
	Resource string
	Field    string
}

func (e *ConflictError) Error() string {
	return e.Resource + " with this " + e.Field + " already exists"
}

func Conflict(resource, field string) error {
	return &ConflictError{Resource: resource, Field: field}
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsStorage(err error) bool {
	var target *StorageError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}
