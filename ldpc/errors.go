package ldpc

import (
	"golang.org/x/xerrors"
)

// An ErrorKind classifies the ways in which an ldpc operation can fail:
// shape mismatches, rate requests outside the supported range, and
// malformed input to a format reader.
type ErrorKind int

const (
	// ErrShapeMismatch indicates that an input or output argument's length
	// did not match the contract for the operation (N for encoder inputs, M
	// or M_current for syndromes, N for LLRs).
	ErrShapeMismatch ErrorKind = iota
	// ErrRateOutOfRange indicates a requested rate-adaption step k > K, or a
	// syndrome length outside [M-K, M].
	ErrRateOutOfRange
	// ErrMalformedInput indicates that arrays passed to NewBinarySparseMatrix
	// or NewQCMatrix violate the CSC invariants or hold out-of-range values.
	// The ldpc/format readers wrap such errors so that IsKind still sees
	// them; their own JSON, CSV, alist-syntax and format-tag errors are
	// plain errors and carry no ErrorKind.
	ErrMalformedInput
)

func (k ErrorKind) String() string {
	switch k {
	case ErrShapeMismatch:
		return "shape mismatch"
	case ErrRateOutOfRange:
		return "rate out of range"
	case ErrMalformedInput:
		return "malformed input"
	default:
		return "unknown error"
	}
}

// An Error wraps a failure arising from the core library with enough
// context to let a caller distinguish the kind of failure, while still
// supporting errors.Is/errors.As against the wrapped cause.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Op + ": " + e.Kind.String()
	}
	return e.Op + ": " + e.Kind.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// newError constructs an *Error, formatting its message with xerrors so that
// the resulting error carries a useful stack frame when wrapped further up
// the call chain.
func newError(kind ErrorKind, op string, format string, args ...interface{}) *Error {
	return &Error{
		Kind: kind,
		Op:   op,
		Err:  xerrors.Errorf(format, args...),
	}
}

// IsKind reports whether err is an *Error of the given kind, unwrapping
// through any wrapping errors in between.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if !xerrors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}
