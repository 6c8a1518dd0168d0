package models

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated is returned when a request reaches an operation without
// an authenticated identity attached.
var ErrUnauthenticated = errors.New("authentication credentials were not provided")

// ErrInvalidCredentials is returned when a login does not match an active user.
var ErrInvalidCredentials = errors.New("unable to log in with provided credentials")

// ErrInvalidToken is returned when a refresh token fails verification or
// names a user that no longer exists.
var ErrInvalidToken = errors.New("invalid or expired refresh token")

// NotFoundError reports that a lookup by key matched no row.
type NotFoundError struct {
	Entity string
	Key    interface{}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s matching query does not exist.", e.Entity)
}

// NewNotFound builds a NotFoundError for entity looked up by key.
func NewNotFound(entity string, key interface{}) *NotFoundError {
	return &NotFoundError{Entity: entity, Key: key}
}

// ValidationError reports a malformed or incomplete request body.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConflictError reports a write rejected by a uniqueness constraint.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// IsNotFound reports whether err wraps a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
