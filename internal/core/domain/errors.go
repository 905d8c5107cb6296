package domain

import (
	"context"
	"errors"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrCancelled indicates an operation was cancelled by the caller.
	// Cancellation is a normal, silent abort, not an error path.
	ErrCancelled = errors.New("cancelled")

	// ErrEngineDisabled indicates the engine is disabled and will not
	// build or serve the index.
	ErrEngineDisabled = errors.New("engine disabled")

	// ErrUnsupportedTask indicates an unknown task type was submitted
	// to a task runner.
	ErrUnsupportedTask = errors.New("unsupported task type")
)

// IsCancellation reports whether an error represents a cancelled
// operation. Delegated workers report cancellation with messages such
// as "Cancelled" or "Calculation cancelled" rather than typed errors,
// so the message is inspected as a last resort.
func IsCancellation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, ErrCancelled) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "cancelled")
}
