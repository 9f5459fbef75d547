package community

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnexpected Kind = iota
	KindValidation
	KindForbidden
	KindNotFound
	KindConflict
	KindCapacityExceeded
)

// Error is the failure type returned by every Service operation. Kind tells
// the caller which class of failure occurred; Err carries the underlying
// cause for unexpected failures.
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

// ErrKind extracts the Kind from err, returning KindUnexpected for errors
// that did not originate in this package.
func ErrKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return KindUnexpected
}

func validationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func forbiddenError(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

func notFoundError(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func conflictError(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func capacityError(msg string) *Error {
	return &Error{Kind: KindCapacityExceeded, Message: msg}
}

func unexpectedError(msg string, err error) *Error {
	return &Error{Kind: KindUnexpected, Message: msg, Err: err}
}
