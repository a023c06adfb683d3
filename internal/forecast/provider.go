package forecast

import (
	"context"
	"errors"
	"fmt"
)

// FailureKind classifies why a provider produced no forecast. Kinds exist
// for logging and observers; callers treat every failure the same way.
type FailureKind string

const (
	FailureNetwork       FailureKind = "network"
	FailureTimeout       FailureKind = "timeout"
	FailureBadStatus     FailureKind = "bad_status"
	FailureMalformed     FailureKind = "malformed"
	FailureMissingTarget FailureKind = "missing_target"
)

// FetchError tags a provider failure with its kind.
type FetchError struct {
	Kind FailureKind
	Err  error
}

// NewFetchError wraps err with a failure kind.
func NewFetchError(kind FailureKind, err error) *FetchError {
	return &FetchError{Kind: kind, Err: err}
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// KindOf extracts the failure kind from a provider error, defaulting to
// network for untagged errors.
func KindOf(err error) FailureKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return FailureTimeout
	}
	return FailureNetwork
}

// Provider abstracts one upstream weather source. Fetch performs a single
// attempt; any failure is returned as an error the orchestrator absorbs.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, loc Location) (Forecast, error)
}

// Outcome reports one completed provider call to the optional observer.
// Exactly one of Forecast and Err is meaningful.
type Outcome struct {
	Source   string
	Forecast Forecast
	Err      error
}
