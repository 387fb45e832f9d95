package core

import (
	"errors"
	"fmt"
)

// The error kinds of the library. Error values match their kind with errors.Is.
var (
	ErrInvalidArgument    = errors.New("invalid_argument")
	ErrNotFound           = errors.New("not_found")
	ErrConflict           = errors.New("conflict")
	ErrFailedPrecondition = errors.New("failed_precondition")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrPermissionDenied   = errors.New("permission_denied")
)

var errorKinds = []error{
	ErrInvalidArgument,
	ErrNotFound,
	ErrConflict,
	ErrFailedPrecondition,
	ErrUnauthenticated,
	ErrPermissionDenied,
}

// Error is a business error with a kind and a message meant for the caller.
type Error struct {
	kind    error
	message string
}

// Error returns the human-readable message.
func (e Error) Error() string {
	return e.message
}

// Is reports whether target is the kind of this error.
func (e Error) Is(target error) bool {
	return e.kind == target
}

// Kind returns the kind sentinel of this error.
func (e Error) Kind() error {
	return e.kind
}

func newError(kind error, format string, args ...any) Error {
	return Error{kind: kind, message: fmt.Sprintf(format, args...)}
}

// InvalidArgument builds an Error of kind ErrInvalidArgument.
func InvalidArgument(format string, args ...any) Error {
	return newError(ErrInvalidArgument, format, args...)
}

// NotFound builds an Error of kind ErrNotFound.
func NotFound(format string, args ...any) Error {
	return newError(ErrNotFound, format, args...)
}

// Conflict builds an Error of kind ErrConflict.
func Conflict(format string, args ...any) Error {
	return newError(ErrConflict, format, args...)
}

// FailedPrecondition builds an Error of kind ErrFailedPrecondition.
func FailedPrecondition(format string, args ...any) Error {
	return newError(ErrFailedPrecondition, format, args...)
}

// Unauthenticated builds an Error of kind ErrUnauthenticated.
func Unauthenticated(format string, args ...any) Error {
	return newError(ErrUnauthenticated, format, args...)
}

// PermissionDenied builds an Error of kind ErrPermissionDenied.
func PermissionDenied(format string, args ...any) Error {
	return newError(ErrPermissionDenied, format, args...)
}

// IsBusinessError reports whether err is or wraps a business Error.
func IsBusinessError(err error) bool {
	var businessErr Error
	return errors.As(err, &businessErr)
}

// KindOf returns the name of the kind of a business error, or an empty string for other errors.
func KindOf(err error) string {
	for _, kind := range errorKinds {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}

	return ""
}
