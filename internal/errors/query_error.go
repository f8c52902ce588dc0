// Package errors provides standardized error types for query operations.
// This package defines QueryError for consistent error handling across
// all public APIs, with an error kind, operation context and error wrapping
// support.
package errors

import (
	"fmt"
)

// Kind classifies a QueryError.
type Kind int

const (
	// KindEmptySequence is reported by Min, Max and Average over zero elements.
	KindEmptySequence Kind = iota + 1
	// KindKeySelector wraps a failure raised by a caller-supplied closure.
	KindKeySelector
	// KindTypeMismatch reports incompatible composite keys on the two sides
	// of a join or comparison.
	KindTypeMismatch
	// KindInvalidArgument reports an unusable argument such as a negative count.
	KindInvalidArgument
)

// String returns the kind name used in error messages.
func (k Kind) String() string {
	switch k {
	case KindEmptySequence:
		return "EmptySequence"
	case KindKeySelector:
		return "KeySelector"
	case KindTypeMismatch:
		return "TypeMismatch"
	case KindInvalidArgument:
		return "InvalidArgument"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// QueryError represents standardized errors across all query operations
type QueryError struct {
	Kind    Kind   // Error classification
	Op      string // Operation name (e.g., "Min", "Join", "GroupBy")
	Message string // Human-readable error description
	Cause   error  // Underlying error cause
}

// Error implements the error interface
func (e *QueryError) Error() string {
	msg := fmt.Sprintf("%s operation failed: %s", e.Op, e.Message)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error wrapping support
func (e *QueryError) Unwrap() error {
	return e.Cause
}

// Is implements error equality checking for errors.Is().
// A target without an Op matches every error of the same kind.
func (e *QueryError) Is(target error) bool {
	qe, ok := target.(*QueryError)
	if !ok {
		return false
	}
	if qe.Kind != e.Kind {
		return false
	}
	return qe.Op == "" || qe.Op == e.Op
}

// Common error constructors for consistent error creation

// NewEmptySequenceError creates an error for aggregations over no elements
func NewEmptySequenceError(op string) *QueryError {
	return &QueryError{
		Kind:    KindEmptySequence,
		Op:      op,
		Message: "sequence contains no elements",
	}
}

// NewKeySelectorError wraps a failure raised inside a caller closure
func NewKeySelectorError(op string, cause error) *QueryError {
	return &QueryError{
		Kind:    KindKeySelector,
		Op:      op,
		Message: "selector failed",
		Cause:   cause,
	}
}

// NewTypeMismatchError creates an error for structurally incompatible keys
func NewTypeMismatchError(op, message string) *QueryError {
	return &QueryError{
		Kind:    KindTypeMismatch,
		Op:      op,
		Message: message,
	}
}

// NewInvalidArgumentError creates an error for invalid operation inputs
func NewInvalidArgumentError(op, message string) *QueryError {
	return &QueryError{
		Kind:    KindInvalidArgument,
		Op:      op,
		Message: message,
	}
}

// PanicCause converts a recovered panic value into an error, keeping error
// values unchanged so errors.Is and errors.As still reach them.
func PanicCause(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", r)
}

// Predefined error variables for matching with errors.Is
var (
	// ErrEmptySequence matches every EmptySequence error
	ErrEmptySequence = &QueryError{Kind: KindEmptySequence, Message: "sequence contains no elements"}

	// ErrKeySelector matches every KeySelector error
	ErrKeySelector = &QueryError{Kind: KindKeySelector, Message: "selector failed"}

	// ErrTypeMismatch matches every TypeMismatch error
	ErrTypeMismatch = &QueryError{Kind: KindTypeMismatch, Message: "incompatible keys"}

	// ErrInvalidArgument matches every InvalidArgument error
	ErrInvalidArgument = &QueryError{Kind: KindInvalidArgument, Message: "invalid argument"}
)
