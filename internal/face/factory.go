// Package face selects and builds the recognition backend from
// configuration. It sits outside internal/recognizer so the backends can
// import the interface package without a cycle.
package face

import (
	"context"
	"fmt"
	"time"

	"github.com/pasiware/faceclock/internal/config"
	"github.com/pasiware/faceclock/internal/recognizer"
	"github.com/pasiware/faceclock/internal/recognizer/faceapi"
	"github.com/pasiware/faceclock/internal/recognizer/rekognition"
)

// BackendType defines supported recognition backend types.
type BackendType string

const (
	// BackendFaceAPI is the HTTP face recognition service (default).
	BackendFaceAPI BackendType = "faceapi"
	// BackendRekognition is the AWS Rekognition backend.
	BackendRekognition BackendType = "rekognition"
)

// NewRecognizer creates a Recognizer based on configuration.
//
// Environment variables:
//   - FACE_PROVIDER: "faceapi" or "rekognition" (default: "faceapi")
//   - FACE_SERVICE_URL: face service URL (default: "http://localhost:5001")
//   - AWS_REGION: AWS region for Rekognition (credentials via the AWS SDK
//     default credential chain)
func NewRecognizer(ctx context.Context, cfg *config.Config) (recognizer.Recognizer, error) {
	switch BackendType(cfg.FaceProvider) {
	case BackendRekognition:
		rec, err := rekognition.New(ctx, rekognition.Config{
			Region: cfg.AWSRegion,
		})
		if err != nil {
			return nil, fmt.Errorf("create rekognition backend: %w", err)
		}
		return rec, nil

	case BackendFaceAPI, "":
		return faceapi.New(faceapi.Config{
			BaseURL:       cfg.FaceServiceURL,
			Timeout:       10 * time.Second,
			HealthTimeout: 2 * time.Second,
		}), nil

	default:
		return nil, fmt.Errorf("unknown face provider: %s (supported: %s, %s)",
			cfg.FaceProvider, BackendFaceAPI, BackendRekognition)
	}
}
