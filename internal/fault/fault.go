// Package fault defines the typed error kinds shared by every package in
// the scheduler unit. Failures are never retried internally; they carry a
// kind so callers can branch (insert-on-missing, redirect fallbacks,
// surfacing) without string matching.
package fault

import (
	"errors"
	"fmt"
)

// Kind categorizes a failure.
type Kind string

const (
	// KindNotFound means a requested record does not exist. Recoverable:
	// it drives insert-on-missing and redirect fallback logic.
	KindNotFound Kind = "NOT_FOUND"

	// KindValidation means the input is malformed or violates a protocol
	// rule (missing tag, reserved identity, bad mode).
	KindValidation Kind = "VALIDATION"

	// KindAmbiguous means an identifier cannot be resolved without a hint
	// the caller did not supply.
	KindAmbiguous Kind = "AMBIGUOUS"

	// KindExhausted means a required pool is empty, such as a scheduler
	// registry with no entries to balance across.
	KindExhausted Kind = "EXHAUSTED"

	// KindStore wraps an underlying persistence failure.
	KindStore Kind = "STORE"

	// KindClock wraps a time source failure.
	KindClock Kind = "CLOCK"
)

// Error is a classified failure. Kind is always set; Err is the wrapped
// cause when one exists.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Unwrap exposes the cause for errors.Is/errors.As chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error with no underlying cause.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf creates an Error with a formatted message and no underlying cause.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap classifies an underlying error. It returns nil when err is nil so
// call sites can wrap unconditionally.
func Wrap(kind Kind, err error, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// Wrapf classifies an underlying error with a formatted message. It returns
// nil when err is nil.
func Wrapf(kind Kind, err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the Kind from anywhere in the chain. Errors that wrap no
// classified Error report the empty Kind.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}

// IsKind reports whether any error in the chain carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// IsNotFound reports whether the error chain carries KindNotFound.
func IsNotFound(err error) bool {
	return IsKind(err, KindNotFound)
}
