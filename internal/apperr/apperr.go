// Package apperr defines the error taxonomy shared by services and handlers.
// Services return *Error values; the HTTP layer maps kinds to statuses and
// response bodies without inspecting messages.
package apperr

import (
	"fmt"
	"strings"
)

// Kind classifies an error for HTTP mapping.
type Kind int

const (
	// Validation is a 400 with the full list of field violations.
	Validation Kind = iota
	// Authentication is a 401: bad credentials or an invalid/expired token.
	Authentication
	// Authorization is a 403: authenticated but not permitted.
	Authorization
	// NotFound is a 404: the resource or its parent does not exist.
	NotFound
	// Conflict is a duplicate-state failure, e.g. an email already in use.
	Conflict
	// Internal is an unexpected persistence or infrastructure failure.
	Internal
)

// Violation is a single human-readable validation failure.
type Violation struct {
	Field string `json:"field,omitempty"`
	Msg   string `json:"msg"`
}

// Error carries a kind, a caller-facing message and, for validation
// failures, the complete set of violations collected in one pass.
type Error struct {
	Kind       Kind
	Message    string
	Violations []Violation
	Err        error // underlying cause, logged but never sent to clients
}

func (e *Error) Error() string {
	if len(e.Violations) > 0 {
		msgs := make([]string, len(e.Violations))
		for i, v := range e.Violations {
			msgs[i] = v.Msg
		}
		return e.Message + ": " + strings.Join(msgs, "; ")
	}
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// NewValidation wraps a set of collected violations.
func NewValidation(message string, violations []Violation) *Error {
	return &Error{Kind: Validation, Message: message, Violations: violations}
}

// NewAuthentication reports failed credentials or token verification.
func NewAuthentication(message string) *Error {
	return &Error{Kind: Authentication, Message: message}
}

// NewAuthorization reports a denied action for an authenticated actor.
func NewAuthorization(message string) *Error {
	return &Error{Kind: Authorization, Message: message}
}

// NewNotFound reports a missing resource or parent resource.
func NewNotFound(message string) *Error {
	return &Error{Kind: NotFound, Message: message}
}

// NewInternal wraps an unexpected failure. The cause stays server-side.
func NewInternal(format string, err error) *Error {
	return &Error{Kind: Internal, Message: fmt.Sprintf(format, err), Err: err}
}
