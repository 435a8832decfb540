// Package apperr classifies domain failures into a small set of kinds that
// the API layer maps onto HTTP status codes.
package apperr

import "errors"

// Kind identifies the category of a failure.
type Kind string

const (
	KindInvalidArgument   Kind = "InvalidArgument"
	KindNotFound          Kind = "NotFound"
	KindConflict          Kind = "Conflict"
	KindUploadFailed      Kind = "UploadFailed"
	KindStorageFailed     Kind = "StorageFailed"
	KindPersistenceFailed Kind = "PersistenceFailed"
	KindUnauthenticated   Kind = "Unauthenticated"
	KindInternal          Kind = "Internal"
)

func (k Kind) String() string {
	return string(k)
}

// Error is a classified error. Sentinel values are compared by identity,
// so errors.Is works on wrapped chains.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// New returns a classified error with no underlying cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap classifies err under kind with a client-safe message.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the outermost classified error in err's chain.
// Unclassified errors are KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Message returns the client-safe message for err.
// Internal errors never leak their underlying text.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Message
	}
	return "An unexpected error occurred"
}

// InvalidArgument is shorthand for New(KindInvalidArgument, message).
func InvalidArgument(message string) *Error {
	return New(KindInvalidArgument, message)
}
