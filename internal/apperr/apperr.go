// Package apperr defines the error taxonomy shared by the store, service and
// transport layers: validation, not-found, dependency and configuration errors.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the transport boundary.
type Kind int

const (
	// KindUnknown is reported for errors that were never classified.
	KindUnknown Kind = iota
	// KindValidation marks malformed or missing required input.
	KindValidation
	// KindNotFound marks an identifier that does not resolve.
	KindNotFound
	// KindDependency marks a failed store or mail relay call.
	KindDependency
	// KindConfiguration marks missing or invalid startup configuration.
	KindConfiguration
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindDependency:
		return "dependency"
	case KindConfiguration:
		return "configuration"
	default:
		return "unknown"
	}
}

// Error is a classified application error.
type Error struct {
	// Kind is the error class.
	Kind Kind
	// Msg is safe to show to callers for validation and not-found errors.
	Msg string
	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	if e.Msg == "" {
		return e.Err.Error()
	}
	return e.Msg + ": " + e.Err.Error()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Validation returns a validation error whose message names the violated constraint.
func Validation(msg string) error {
	return &Error{Kind: KindValidation, Msg: msg}
}

// Validationf formats a validation error message.
func Validationf(format string, args ...any) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// NotFound returns a not-found error for the named resource, e.g. "Project".
func NotFound(resource string) error {
	return &Error{Kind: KindNotFound, Msg: resource + " not found"}
}

// Dependency wraps a store or relay failure. op describes what was attempted.
func Dependency(op string, err error) error {
	return &Error{Kind: KindDependency, Msg: op, Err: err}
}

// Configuration returns a fatal startup configuration error.
func Configuration(msg string) error {
	return &Error{Kind: KindConfiguration, Msg: msg}
}

// KindOf returns the kind of the first classified error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Message returns the caller-facing message of the first classified error in
// err's chain, or "" if err is unclassified.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return ""
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
