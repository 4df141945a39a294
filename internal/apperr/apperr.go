// Package apperr defines the domain error taxonomy. Every error the service
// and handler layers exchange carries a Kind discriminant which maps onto a
// single HTTP status code at the boundary.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindPermission
	KindAuthentication
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindPermission:
		return "permission"
	case KindAuthentication:
		return "authentication"
	default:
		return "internal"
	}
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Err.Error())
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap keeps the cause for logging while the message stays client-safe.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the discriminant of err, or KindInternal for any error
// that was not produced by this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

var statusCodes = map[Kind]int{
	KindValidation:     http.StatusBadRequest,
	KindNotFound:       http.StatusNotFound,
	KindPermission:     http.StatusForbidden,
	KindAuthentication: http.StatusUnauthorized,
	KindInternal:       http.StatusInternalServerError,
}

// Status maps an error onto its HTTP status code. Unknown errors are
// treated as internal.
func Status(err error) int {
	return statusCodes[KindOf(err)]
}

// PublicMessage is what the client gets to see. Internal causes are masked
// behind a generic message so they never leak out of the boundary.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Message
	}
	return "something went wrong"
}
