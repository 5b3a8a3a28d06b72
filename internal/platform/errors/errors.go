// Package errors provides a structured error type with wrapping and metadata
package errors

// Always import the project errors package as perr (platform/errors)

import (
	stderrs "errors"
	"fmt"
)

// ErrorCode defines supported error codes used across the harvester
// Values are stable for log grepping; add sparingly
type ErrorCode uint16

const (
	// ErrorCodeUnknown is for unclassified errors
	ErrorCodeUnknown ErrorCode = iota

	// ErrorCodePanic is for recovered panics
	ErrorCodePanic

	// ErrorCodeUnavailable is for transient fetch failures (timeout, non-200)
	ErrorCodeUnavailable

	// ErrorCodeDecode is for malformed remote responses (bad JSON, unparsable timestamp)
	ErrorCodeDecode

	// ErrorCodeInvalidArgument is for bad input parameters
	ErrorCodeInvalidArgument

	// ErrorCodeValidation is for emitted-record contract failures
	ErrorCodeValidation

	// ErrorCodeInsufficientPopulation is for sampling requests larger than the pool
	ErrorCodeInsufficientPopulation

	// ErrorCodeBudgetExhausted is an internal signal that the yield budget is spent
	ErrorCodeBudgetExhausted
)

// Error is the structured error type with wrapping and metadata
// msg is human/developer facing; code is machine facing
// op is an optional operation tag; orig is the wrapped cause
type Error struct {
	orig error
	msg  string
	code ErrorCode
	op   string
}

// Error implements the error interface
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}
	return e.msg
}

// Unwrap returns the wrapped error, if any
func (e *Error) Unwrap() error { return e.orig }

// Code returns the error code
func (e *Error) Code() ErrorCode { return e.code }

// Op returns the operation label, if set
func (e *Error) Op() string { return e.op }

// Root returns the deepest wrapped cause
func Root(err error) error {
	for err != nil {
		u := stderrs.Unwrap(err)
		if u == nil {
			return err
		}
		err = u
	}
	return nil
}

// CodeOf extracts an ErrorCode from any error, defaulting to Unknown
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err has the given code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// As unwraps and returns (*Error, true) if err is one of ours
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// WithOp attaches an operation label to an *Error (copy-on-write). If err isn't *Error, returns err unchanged
func WithOp(err error, op string) error {
	if e, ok := As(err); ok {
		c := *e
		c.op = op
		return &c
	}
	return err
}

// Constructors

// New returns a new *Error with the given code and message
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf returns a new *Error with code and formatted message
func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap returns a new *Error that wraps orig with code and message
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

// Wrapf returns a new *Error that wraps orig with code and formatted message
func Wrapf(orig error, code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...), orig: orig}
}

// WrapIf wraps only when err != nil (helper for 1-liners)
func WrapIf(err error, code ErrorCode, msg string) error {
	if err == nil {
		return nil
	}
	return Wrap(err, code, msg)
}

// Sugar

// Unavailablef returns a transient-fetch error
func Unavailablef(format string, a ...any) error { return Newf(ErrorCodeUnavailable, format, a...) }

// Decodef returns a malformed-response error
func Decodef(format string, a ...any) error { return Newf(ErrorCodeDecode, format, a...) }

// InvalidArgf returns an invalid argument error
func InvalidArgf(format string, a ...any) error { return Newf(ErrorCodeInvalidArgument, format, a...) }

// Validationf returns a record contract error
func Validationf(format string, a ...any) error { return Newf(ErrorCodeValidation, format, a...) }

// InsufficientPopulationf returns a sampling population error. The engine
// clamps draws instead of failing, so constructing this is the caller's
// policy for treating a short catalog as exceptional
func InsufficientPopulationf(format string, a ...any) error {
	return Newf(ErrorCodeInsufficientPopulation, format, a...)
}

// BudgetExhaustedf returns a spent-budget signal
func BudgetExhaustedf(format string, a ...any) error {
	return Newf(ErrorCodeBudgetExhausted, format, a...)
}

// PanicErrf returns a panic error
func PanicErrf(format string, a ...any) error { return Newf(ErrorCodePanic, format, a...) }

// Internalf returns a generic internal error
func Internalf(format string, a ...any) error { return Newf(ErrorCodeUnknown, format, a...) }

// Transient reports whether the error is a local, recoverable fetch failure
// (the traversal continues with the next unit of work)
func Transient(err error) bool { return IsCode(err, ErrorCodeUnavailable) }
