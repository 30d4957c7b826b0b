package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// Tokens
	ErrInvalidSigningMethod = fmt.Errorf("invalid token signing method")
	ErrInvalidToken         = fmt.Errorf("invalid token")
	ErrTokenExpired         = fmt.Errorf("token has expired")
	ErrTokenNotYetValid     = fmt.Errorf("token is not valid yet")
	ErrTokenIsNotAccess     = fmt.Errorf("token is not an access token")
	ErrTokenIsNotRefresh    = fmt.Errorf("token is not a refresh token")

	// Authentication
	ErrEmptyAuthHeader    = fmt.Errorf("authorization header is missing")
	ErrInvalidAuthHeader  = fmt.Errorf("invalid authorization header format")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrTooManyAttempts    = fmt.Errorf("too many failed login attempts, try again later")
	ErrUnauthorized       = fmt.Errorf("authentication credentials were not provided")
	ErrForbidden          = fmt.Errorf("you do not have permission to perform this action")

	// Common
	ErrValidation = fmt.Errorf("invalid payload")
	ErrNotFound   = fmt.Errorf("not found")
	ErrConflict   = fmt.Errorf("constraint violation")
	ErrBadRequest = fmt.Errorf("bad request")
)

// HttpError carries a status code chosen by a controller.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details map[string]interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, details map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Details: details}
}

// ValidationError lists payload problems per field. The empty key holds
// errors that are not tied to one field.
type ValidationError struct {
	Fields map[string][]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

func (e *ValidationError) HasErrors() bool { return len(e.Fields) > 0 }

// OrNil returns nil when no field errors were collected.
func (e *ValidationError) OrNil() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], "; ")))
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// ReferenceError reports a strict natural-key lookup that found nothing.
type ReferenceError struct {
	Field string
	Key   string
	Value string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s: no object with %s=%q", e.Field, e.Key, e.Value)
}

func (e *ReferenceError) Unwrap() error { return ErrNotFound }

// InvalidInputError is kept for ad-hoc 400 responses outside payload schemas.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func (e *InvalidInputError) Unwrap() error { return ErrBadRequest }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a payload validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
