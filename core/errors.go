package core

import (
	"errors"
	"fmt"
)

// Kind tags an Error with the category of failure it represents. The error
// mapper and the HTTP error handler dispatch on the kind rather than on the
// concrete error type.
type Kind int

const (
	// KindUnknown is the kind of any error not produced by this module.
	KindUnknown Kind = iota
	// KindArgument marks a caller supplied value that could not be used,
	// e.g. a subject that failed to serialize while creating a token.
	KindArgument
	// KindSerialization marks subject bytes that are malformed or do not fit
	// the subject type.
	KindSerialization
	// KindSignature marks a structurally invalid token or a signature mismatch.
	KindSignature
	// KindConfiguration marks invalid construction-time arguments.
	KindConfiguration
	// KindMapping marks an unclassified failure wrapped by the error mapper.
	KindMapping
	// KindFatal marks an unrecoverable condition that must not be wrapped.
	KindFatal
)

// String returns the snake_case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindArgument:
		return "argument"
	case KindSerialization:
		return "serialization"
	case KindSignature:
		return "signature"
	case KindConfiguration:
		return "configuration"
	case KindMapping:
		return "mapping"
	case KindFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Sentinel errors, one per kind. An *Error of a given kind matches its
// sentinel with errors.Is.
var (
	ErrArgument      = errors.New("invalid argument")
	ErrSerialization = errors.New("subject serialization failed")
	ErrSignature     = errors.New("token signature invalid")
	ErrConfiguration = errors.New("invalid configuration")
	ErrMapping       = errors.New("authentication binding failed")
	ErrFatal         = errors.New("fatal authentication failure")

	// ErrIdentityNotFound is returned when no identity is stored in the context.
	ErrIdentityNotFound = errors.New("identity not found in context")
)

// Error is the error type produced by every component of the module.
type Error struct {
	// Kind classifies the failure.
	Kind Kind

	// Message is a human-readable error message.
	Message string

	// Details contains the underlying error, if any.
	Details error
}

// NewError creates a new Error with the given kind, message and cause.
func NewError(kind Kind, message string, details error) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
		Details: details,
	}
}

// Configurationf is a shorthand for a KindConfiguration error with a
// formatted message and no cause.
func Configurationf(format string, args ...any) *Error {
	return NewError(KindConfiguration, fmt.Sprintf(format, args...), nil)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Details != nil {
		return e.Message + ": " + e.Details.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error for error unwrapping.
func (e *Error) Unwrap() error {
	return e.Details
}

// Is reports whether target is the sentinel for this error's kind.
func (e *Error) Is(target error) bool {
	return target != nil && target == sentinel(e.Kind)
}

func sentinel(k Kind) error {
	switch k {
	case KindArgument:
		return ErrArgument
	case KindSerialization:
		return ErrSerialization
	case KindSignature:
		return ErrSignature
	case KindConfiguration:
		return ErrConfiguration
	case KindMapping:
		return ErrMapping
	case KindFatal:
		return ErrFatal
	}
	return nil
}

// KindOf returns the kind of the outermost *Error in err's chain, or
// KindUnknown when there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
