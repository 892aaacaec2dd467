package rekognition

import "time"

// Config holds the AWS Rekognition backend configuration. Credentials come
// from the AWS default credential chain.
type Config struct {
	Region       string
	ProbeTimeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Region:       "us-east-1",
		ProbeTimeout: 2 * time.Second,
	}
}
