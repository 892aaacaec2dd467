package faceapi

import (
	"context"
	"fmt"

	"github.com/pasiware/faceclock/internal/domain"
	"github.com/pasiware/faceclock/internal/recognizer"
)

// Recognizer delegates verification to the face recognition HTTP service.
// The service keeps its own per-employee face encodings, so the locally
// stored reference photo is not sent on verify.
type Recognizer struct {
	client *Client
}

// New creates a face service backed recognizer.
func New(config Config) *Recognizer {
	return &Recognizer{client: NewClient(config)}
}

func (r *Recognizer) Name() string {
	return "faceapi"
}

// Available probes GET /health with a short timeout.
func (r *Recognizer) Available(ctx context.Context) bool {
	return r.client.Health(ctx) == nil
}

// Register submits the reference photo so the service can build an accurate
// encoding for later verification.
func (r *Recognizer) Register(ctx context.Context, empID string, photo []byte) error {
	resp, err := r.client.Register(ctx, RegisterRequest{
		EmpID: empID,
		Image: string(photo),
	})
	if err != nil {
		return err
	}

	if !resp.Success {
		return fmt.Errorf("%w: register rejected: %s", domain.ErrRecognizerUnavailable, resp.Message)
	}

	return nil
}

// Verify matches the captured photo against the service's stored encoding.
// The service reports confidence as a 0-100 percentage; it is normalized to
// the [0,1] similarity scale here.
func (r *Recognizer) Verify(ctx context.Context, empID string, _, captured []byte) (domain.MatchResult, error) {
	resp, err := r.client.Verify(ctx, VerifyRequest{
		EmpID: empID,
		Image: string(captured),
	})
	if err != nil {
		return domain.MatchResult{}, err
	}

	similarity := resp.Confidence / 100
	if similarity < 0 {
		similarity = 0
	}
	if similarity > 1 {
		similarity = 1
	}

	return domain.MatchResult{
		Matched:    resp.Match,
		Similarity: similarity,
		Distance:   resp.Distance,
		Source:     domain.SourceExternal,
	}, nil
}

var _ recognizer.Recognizer = (*Recognizer)(nil)
