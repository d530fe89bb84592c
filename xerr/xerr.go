// Package xerr defines the error-kind taxonomy shared by the kernel,
// engine, and search layers. A single typed error wraps a causal chain
// built with github.com/pkg/errors so callers can both switch on Kind and
// print/unwrap the underlying cause.
package xerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies why an operation failed. The zero value is never used.
type Kind int

const (
	_ Kind = iota
	// InvalidConfig: caller provided a structurally invalid configuration.
	InvalidConfig
	// InvalidQuery: unknown body/observer/frame code, non-finite epoch.
	InvalidQuery
	// KernelLoad: bad DAF file, missing file, unsupported ND/NI.
	KernelLoad
	// UnsupportedDataType: SPK data type other than 2 encountered.
	UnsupportedDataType
	// SegmentNotFound: no segment for (target, centre) at epoch, no fallback applies.
	SegmentNotFound
	// EpochOutOfRange: epoch outside any matching segment's range.
	EpochOutOfRange
	// TimeConversion: pre-1972 UTC, or EOP lookup out of tabulated range.
	TimeConversion
	// NoConvergence: search primitive reached its iteration bound without bracketing.
	NoConvergence
)

func (k Kind) String() string {
	switch k {
	case InvalidConfig:
		return "InvalidConfig"
	case InvalidQuery:
		return "InvalidQuery"
	case KernelLoad:
		return "KernelLoad"
	case UnsupportedDataType:
		return "UnsupportedDataType"
	case SegmentNotFound:
		return "SegmentNotFound"
	case EpochOutOfRange:
		return "EpochOutOfRange"
	case TimeConversion:
		return "TimeConversion"
	case NoConvergence:
		return "NoConvergence"
	default:
		return "Unknown"
	}
}

// Error is the taxonomy-tagged error type used across the module. It never
// swallows a cause: New wraps nil fine (Cause will be nil), Wrap always
// carries one.
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

func (e *Error) Unwrap() error { return e.Cause }

// New builds a causeless Error of the given kind.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf builds a causeless Error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches cause to a new Error of the given kind, preserving the
// causal chain via github.com/pkg/errors so %+v printing retains a stack.
func Wrap(kind Kind, cause error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg, Cause: errors.Wrap(cause, msg)}
}

// Wrapf attaches cause to a new Error of the given kind with a formatted message.
func Wrapf(kind Kind, cause error, format string, args ...any) *Error {
	msg := fmt.Sprintf(format, args...)
	return &Error{Kind: kind, Msg: msg, Cause: errors.Wrap(cause, msg)}
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
