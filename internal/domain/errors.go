package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies application errors for transport-level mapping.
type ErrorKind string

const (
	KindInvalidRange ErrorKind = "invalid_range"
	KindValidation   ErrorKind = "validation"
	KindNotFound     ErrorKind = "not_found"
	KindNotAvailable ErrorKind = "not_available"
	KindConflict     ErrorKind = "conflict"
	KindForbidden    ErrorKind = "forbidden"
	KindStorage      ErrorKind = "storage"
)

// Error is the application error type carried across layers. All validation
// errors are produced before any write; storage errors are terminal and
// never retried.
type Error struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// NewInvalidRangeError reports a booking window whose end is not after its start.
func NewInvalidRangeError(message string) *Error {
	return &Error{Kind: KindInvalidRange, Message: message}
}

// NewValidationError reports invalid input data.
func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// NewNotFoundError reports a missing resource. It is also used where access
// is denied but existence must stay hidden from the caller.
func NewNotFoundError(resource, id string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s with id=%s not found", resource, id)}
}

// NewNotAvailableError reports an item that cannot be booked, either because
// it is marked unavailable or because the requested window conflicts.
func NewNotAvailableError(message string) *Error {
	return &Error{Kind: KindNotAvailable, Message: message}
}

// NewConflictError reports a redundant or impossible state transition.
func NewConflictError(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// NewForbiddenError reports an operation the acting user may not perform.
func NewForbiddenError(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// NewStorageError wraps a fatal persistence failure.
func NewStorageError(op string, cause error) *Error {
	return &Error{Kind: KindStorage, Message: fmt.Sprintf("storage: %s: %v", op, cause), cause: cause}
}

// KindOf returns the error kind, or KindStorage for unclassified errors.
func KindOf(err error) ErrorKind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStorage
}

func isKind(err error, kind ErrorKind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// IsNotFound returns true if err is a not-found error.
func IsNotFound(err error) bool { return isKind(err, KindNotFound) }

// IsNotAvailable returns true if err is a not-available error.
func IsNotAvailable(err error) bool { return isKind(err, KindNotAvailable) }

// IsConflict returns true if err is a conflict error.
func IsConflict(err error) bool { return isKind(err, KindConflict) }

// IsInvalidRange returns true if err is an invalid-range error.
func IsInvalidRange(err error) bool { return isKind(err, KindInvalidRange) }
