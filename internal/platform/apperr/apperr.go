// Package apperr defines the error taxonomy shared by all domain services.
// Services return errors classified by Kind; handlers translate the kind to
// an HTTP status at the boundary and never leak internal detail to callers.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a service error.
type Kind int

const (
	// Internal is the fallback for persistence or unexpected failures.
	Internal Kind = iota
	// Validation marks missing or malformed client input.
	Validation
	// Conflict marks a duplicate unique key (e.g. email already registered).
	Conflict
	// Unauthenticated marks a request with no valid identity.
	Unauthenticated
	// Forbidden marks an authenticated caller that is not authorized.
	Forbidden
	// NotFound marks an id that does not resolve to a record.
	NotFound
	// Upstream marks a failed or timed-out external AI call.
	Upstream
	// MalformedResponse marks an AI reply that could not be parsed into the
	// expected schema. Kept distinct from Upstream so operators can tell
	// "AI unreachable" from "AI replied unusably".
	MalformedResponse
)

// Error is a classified service error.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// New creates a classified error with a client-safe message.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf creates a classified error with a formatted client-safe message.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap classifies an underlying error. The wrapped error is kept for logging
// but only msg is exposed to clients.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf returns the kind of err, or Internal for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Is reports whether err is classified with the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Message returns the client-safe message for err. Unclassified errors map to
// a generic message so internal detail never reaches the caller.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return "internal server error"
}

// HTTPStatus maps the error taxonomy to stable HTTP status codes.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case Validation:
		return http.StatusBadRequest
	case Conflict:
		return http.StatusConflict
	case Unauthenticated:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Upstream, MalformedResponse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
