// Package apierror holds the failure taxonomy shared by the HTTP handlers and
// the API client.
package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	Internal Kind = iota
	Unauthorized
	Validation
	NotFound
)

func (k Kind) String() string {
	switch k {
	case Unauthorized:
		return "unauthorized"
	case Validation:
		return "validation"
	case NotFound:
		return "not found"
	default:
		return "internal"
	}
}

// Status is the HTTP status code a handler answers with for this kind.
func (k Kind) Status() int {
	switch k {
	case Unauthorized:
		return http.StatusUnauthorized
	case Validation:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf reports the kind of err. Errors outside the taxonomy are Internal.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return Internal
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// FromStatus rebuilds an error from a non-success HTTP response.
func FromStatus(status int, message string) *Error {
	if message == "" {
		message = http.StatusText(status)
	}
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return New(Unauthorized, message)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return New(Validation, message)
	case http.StatusNotFound:
		return New(NotFound, message)
	default:
		return New(Internal, message)
	}
}
