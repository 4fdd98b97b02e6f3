// Package errs defines the domain error taxonomy. Adapters and services
// classify failures here so that callers and the HTTP layer match on kind,
// never on backend-specific error strings.
package errs

import (
	"errors"
	"fmt"
)

// Kind partitions domain failures by how the caller must react.
type Kind int

const (
	// KindValidation marks malformed input. Surfaced, never retried.
	KindValidation Kind = iota + 1
	// KindNotFound marks an absent entity, public id, or unique code.
	KindNotFound
	// KindConflict marks a uniqueness violation. Surfaced, never retried.
	KindConflict
	// KindInUse marks a deletion blocked by a nonzero usage counter.
	KindInUse
	// KindDependency marks an unreachable storage or blob backend.
	KindDependency
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInUse:
		return "in_use"
	case KindDependency:
		return "dependency"
	default:
		return "unknown"
	}
}

// Error is a classified domain error, optionally wrapping a cause.
type Error struct {
	Kind  Kind
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func Validationf(format string, args ...any) *Error {
	return newError(KindValidation, format, args...)
}

func NotFoundf(format string, args ...any) *Error {
	return newError(KindNotFound, format, args...)
}

func Conflictf(format string, args ...any) *Error {
	return newError(KindConflict, format, args...)
}

func InUsef(format string, args ...any) *Error {
	return newError(KindInUse, format, args...)
}

func Dependencyf(format string, args ...any) *Error {
	return newError(KindDependency, format, args...)
}

// Wrap classifies an underlying error without losing its chain.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Cause: err}
}

// KindOf returns the kind of a classified error, or 0 for unclassified ones.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func IsValidation(err error) bool { return KindOf(err) == KindValidation }
func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }
func IsConflict(err error) bool   { return KindOf(err) == KindConflict }
func IsInUse(err error) bool      { return KindOf(err) == KindInUse }
func IsDependency(err error) bool { return KindOf(err) == KindDependency }
