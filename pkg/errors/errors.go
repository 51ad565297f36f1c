// Package errors defines the failure taxonomy shared by the catalog,
// roster and ingest packages. Callers branch on the sentinels with
// errors.Is (or the Is* helpers); the typed errors carry detail.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument marks malformed caller input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound marks an unknown record, roster or member reference.
	ErrNotFound = errors.New("not found")

	// ErrUpstreamUnavailable marks a failure of the third-party catalog API.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrAssetFetchFailed marks a failed asset download. It is recovered
	// locally by the asset resolver and never returned from an operation.
	ErrAssetFetchFailed = errors.New("asset fetch failed")

	// ErrStorageFailure marks any persistence error.
	ErrStorageFailure = errors.New("storage failure")

	// ErrUnauthorized marks a missing or invalid credential.
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError reports invalid input for a single field.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid argument: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// NewValidationError creates a ValidationError.
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// NotFoundError reports a missing resource. ID is empty when the miss
// covers several references at once.
type NotFoundError struct {
	Resource string
	ID       string
	Message  string
}

func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a NotFoundError for a single identity.
func NewNotFoundError(resource string, id any) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: fmt.Sprint(id)}
}

// UpstreamError reports a failed call to the third-party catalog.
type UpstreamError struct {
	Source     string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream %s: status %d", e.Source, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("upstream %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("upstream %s unavailable", e.Source)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstreamUnavailable
}

// AssetError reports a failed download of one asset slot.
type AssetError struct {
	RecordID int
	Slot     string
	URL      string
	Err      error
}

func (e *AssetError) Error() string {
	return fmt.Sprintf("asset %s for record %d (%s): %v", e.Slot, e.RecordID, e.URL, e.Err)
}

func (e *AssetError) Unwrap() error { return e.Err }

func (e *AssetError) Is(target error) bool {
	return target == ErrAssetFetchFailed
}

// StorageError wraps an error returned by the persistence engine.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool {
	return target == ErrStorageFailure
}

// Storage wraps err as a StorageError; nil stays nil.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

func IsInvalidArgument(err error) bool     { return errors.Is(err, ErrInvalidArgument) }
func IsNotFound(err error) bool            { return errors.Is(err, ErrNotFound) }
func IsUpstreamUnavailable(err error) bool { return errors.Is(err, ErrUpstreamUnavailable) }
func IsStorageFailure(err error) bool      { return errors.Is(err, ErrStorageFailure) }
func IsUnauthorized(err error) bool        { return errors.Is(err, ErrUnauthorized) }
