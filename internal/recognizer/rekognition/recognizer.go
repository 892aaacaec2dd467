// Package rekognition implements the external recognizer on AWS Rekognition.
// Unlike the face service backend it is stateless: every verification is a
// 1:1 CompareFaces call between the stored reference photo and the captured
// one, so nothing is indexed on the AWS side.
package rekognition

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsrekognition "github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/aws/smithy-go"

	"github.com/pasiware/faceclock/internal/domain"
	"github.com/pasiware/faceclock/internal/fingerprint"
	"github.com/pasiware/faceclock/internal/recognizer"
)

const (
	// maxImageSize is the maximum image size supported by AWS Rekognition (5MB)
	maxImageSize = 5 * 1024 * 1024
	// minImageSize is the minimum image size for valid processing
	minImageSize = 100
)

// Recognizer implements recognizer.Recognizer using AWS Rekognition.
type Recognizer struct {
	client *awsrekognition.Client
	config Config
}

// New creates a Rekognition-backed recognizer using the AWS default
// credential chain.
func New(ctx context.Context, cfg Config) (*Recognizer, error) {
	if cfg.Region == "" {
		cfg.Region = DefaultConfig().Region
	}
	if cfg.ProbeTimeout == 0 {
		cfg.ProbeTimeout = DefaultConfig().ProbeTimeout
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return &Recognizer{
		client: awsrekognition.NewFromConfig(awsCfg),
		config: cfg,
	}, nil
}

func (r *Recognizer) Name() string {
	return "rekognition"
}

// Available issues a cheap authenticated call with a short timeout. Any
// failure, including expired credentials, means the fallback matcher runs
// instead.
func (r *Recognizer) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, r.config.ProbeTimeout)
	defer cancel()

	_, err := r.client.ListCollections(ctx, &awsrekognition.ListCollectionsInput{
		MaxResults: aws.Int32(1),
	})
	return err == nil
}

// Register validates that the photo decodes to an image Rekognition can
// process. Nothing is stored on the AWS side; verification is stateless.
func (r *Recognizer) Register(ctx context.Context, empID string, photo []byte) error {
	image, err := decodePhoto(photo)
	if err != nil {
		return fmt.Errorf("employee %s: %w", empID, err)
	}

	input := &awsrekognition.DetectFacesInput{
		Image: &types.Image{Bytes: image},
	}

	output, err := r.client.DetectFaces(ctx, input)
	if err != nil {
		return wrapProviderError("detect faces", err)
	}

	if len(output.FaceDetails) == 0 {
		return fmt.Errorf("%w: no face detected in reference photo", domain.ErrRecognizerUnavailable)
	}

	return nil
}

// Verify compares the captured photo against the stored reference photo
// using the CompareFaces API. AWS reports similarity as 0-100; it is
// normalized to [0,1] here.
func (r *Recognizer) Verify(ctx context.Context, empID string, reference, captured []byte) (domain.MatchResult, error) {
	source, err := decodePhoto(reference)
	if err != nil {
		return domain.MatchResult{}, fmt.Errorf("employee %s: reference: %w", empID, err)
	}
	target, err := decodePhoto(captured)
	if err != nil {
		return domain.MatchResult{}, fmt.Errorf("employee %s: captured: %w", empID, err)
	}

	input := &awsrekognition.CompareFacesInput{
		SourceImage:         &types.Image{Bytes: source},
		TargetImage:         &types.Image{Bytes: target},
		SimilarityThreshold: aws.Float32(float32(fingerprint.MatchThreshold * 100)),
	}

	output, err := r.client.CompareFaces(ctx, input)
	if err != nil {
		return domain.MatchResult{}, wrapProviderError("compare faces", err)
	}

	if len(output.FaceMatches) == 0 {
		return domain.MatchResult{
			Matched: false,
			Source:  domain.SourceExternal,
		}, nil
	}

	best := output.FaceMatches[0]
	similarity := float64(*best.Similarity) / 100.0

	return domain.MatchResult{
		Matched:    true,
		Similarity: similarity,
		Source:     domain.SourceExternal,
	}, nil
}

// decodePhoto converts the base64 photo payload (optionally a data URL) to
// raw image bytes and bounds-checks the result.
func decodePhoto(photo []byte) ([]byte, error) {
	payload := string(photo)
	if i := strings.IndexByte(payload, ','); i >= 0 && strings.HasPrefix(payload, "data:") {
		payload = payload[i+1:]
	}

	image, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: decode photo: %v", domain.ErrRecognizerUnavailable, err)
	}

	if len(image) < minImageSize {
		return nil, fmt.Errorf("%w: image too small (%d bytes, minimum %d)", domain.ErrRecognizerUnavailable, len(image), minImageSize)
	}
	if len(image) > maxImageSize {
		return nil, fmt.Errorf("%w: image too large (%d bytes, maximum %d)", domain.ErrRecognizerUnavailable, len(image), maxImageSize)
	}

	return image, nil
}

// wrapProviderError folds AWS errors into the provider-unavailable sentinel.
// The attendance flow treats every provider failure the same way, so the AWS
// error code only matters for the log line.
func wrapProviderError(op string, err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: %s: %s: %s", domain.ErrRecognizerUnavailable, op, apiErr.ErrorCode(), apiErr.ErrorMessage())
	}
	return fmt.Errorf("%w: %s: %v", domain.ErrRecognizerUnavailable, op, err)
}

var _ recognizer.Recognizer = (*Recognizer)(nil)
