// Package apperr defines the machine-readable error taxonomy reported at the
// service boundary. Every error carries a Kind so callers can distinguish a
// bad upload from a request that simply arrived before its data.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies boundary errors.
type Kind string

const (
	// KindFormat marks an unparseable upload. The load is aborted and no
	// partial table is published.
	KindFormat Kind = "FORMAT"

	// KindPrerequisiteMissing marks a query made before the required
	// upload(s) exist. Recoverable: the caller should prompt for the upload.
	KindPrerequisiteMissing Kind = "PREREQUISITE_MISSING"

	// KindComputation marks a derived-value failure (for example an
	// unexpected null in a required field). Aggregations fail soft instead
	// of surfacing this, so it appears only for genuinely broken inputs.
	KindComputation Kind = "COMPUTATION"
)

// Error is a boundary error with a machine-readable kind and a
// human-readable message.
type Error struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	err     error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.err }

// New creates an Error of the given kind.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error of the given kind around an underlying cause.
func Wrap(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), err: err}
}

// KindOf returns the Kind of err, or "" when err carries no taxonomy.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err is an Error of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
