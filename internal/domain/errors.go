package domain

import (
	"errors"
	"fmt"
)

// Validation sentinels shared by Validate and the client.
var (
	ErrEmptyUserID   = errors.New("user ID cannot be empty")
	ErrEmptyUserName = errors.New("user name cannot be empty")
)

// NotFoundError reports a missing or unresolvable user identifier.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("user not found: %s", e.ID)
}

// InvalidEmailError reports an email that fails the format check.
type InvalidEmailError struct {
	Email string
}

func (e *InvalidEmailError) Error() string {
	return fmt.Sprintf("invalid email format: %s", e.Email)
}

// APIError reports a failure the directory API itself signaled inside an
// otherwise well-formed response.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API request failed: %s", e.Message)
}

// StorageError wraps an underlying serialization or storage failure as an
// opaque passthrough. Callers unwrap for the cause.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %v", e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
