package domain

import (
	"time"

	"github.com/google/uuid"
)

type MatchSource string

const (
	SourceExternal MatchSource = "external"
	SourceLocal    MatchSource = "local"
)

// MatchResult is the transient outcome of one recognition attempt.
// Similarity is normalized to [0,1] regardless of source; Distance is only
// populated by the external provider.
type MatchResult struct {
	Matched    bool        `json:"matched"`
	Similarity float64     `json:"similarity"`
	Distance   float64     `json:"distance,omitempty"`
	Source     MatchSource `json:"source"`
}

// VerificationLog is the audit row written for every recognition attempt,
// matched or not. Writes are best-effort and never fail the request.
type VerificationLog struct {
	ID         uuid.UUID   `json:"id"`
	EmployeeID uuid.UUID   `json:"employee_id"`
	Operation  string      `json:"operation"` // check_in, check_out
	Matched    bool        `json:"matched"`
	Similarity float64     `json:"similarity"`
	Source     MatchSource `json:"source"`
	LatencyMs  int64       `json:"latency_ms"`
	CreatedAt  time.Time   `json:"created_at"`
}
