package models

import (
	"errors"
	"fmt"
)

// FailureKind classifies where in the per-pair pipeline a failure happened.
type FailureKind string

const (
	FailureNetwork FailureKind = "network"
	FailureParse   FailureKind = "parse"
	FailureWrite   FailureKind = "write"
	FailureExport  FailureKind = "export"
)

// PairError is a failure bound to one trading pair. Failures are
// non-fatal at the run level; the driver logs them and moves on.
type PairError struct {
	Kind FailureKind
	Pair string
	Err  error
}

func (e *PairError) Error() string {
	return fmt.Sprintf("%s failure for %s: %v", e.Kind, e.Pair, e.Err)
}

func (e *PairError) Unwrap() error { return e.Err }

// NewPairError wraps err with the pair and failure kind.
func NewPairError(kind FailureKind, pair string, err error) *PairError {
	return &PairError{Kind: kind, Pair: pair, Err: err}
}

// KindOf extracts the failure kind from an error chain, or "" if the
// error is not a PairError.
func KindOf(err error) FailureKind {
	var pe *PairError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}
