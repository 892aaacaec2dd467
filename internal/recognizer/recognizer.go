// Package recognizer defines the external face recognition capability and
// its backends. The attendance flow probes Available before every use and
// treats any failure as "provider unavailable", falling back to the local
// fingerprint matcher; provider errors are never surfaced to the caller.
package recognizer

import (
	"context"

	"github.com/pasiware/faceclock/internal/domain"
)

// Recognizer is one recognition backend, selected per call.
type Recognizer interface {
	// Name identifies the backend in logs and audit rows.
	Name() string

	// Available reports whether the backend can serve a call right now.
	// Implementations must bound this with a short timeout; a slow probe is
	// the same as a down provider.
	Available(ctx context.Context) bool

	// Register submits a reference photo for the employee to the backend.
	// Registration is best-effort: the caller stores its own reference copy
	// regardless of the outcome.
	Register(ctx context.Context, empID string, photo []byte) error

	// Verify compares the captured photo against the employee's reference.
	// reference carries the locally stored photo for backends that are
	// stateless; backends that keep their own gallery may ignore it.
	// Any transport or provider failure returns
	// domain.ErrRecognizerUnavailable (possibly wrapped).
	Verify(ctx context.Context, empID string, reference, captured []byte) (domain.MatchResult, error)
}
