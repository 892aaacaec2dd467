package config

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost:5432/faceclock")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 4000, cfg.Port)
		assert.Equal(t, "development", cfg.Environment)
		assert.Equal(t, "faceapi", cfg.FaceProvider)
		assert.Equal(t, "http://localhost:5001", cfg.FaceServiceURL)
		assert.Equal(t, "us-east-1", cfg.AWSRegion)
		assert.True(t, cfg.IsDevelopment())
		assert.False(t, cfg.IsProduction())
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://db:5432/faceclock")
		t.Setenv("PORT", "8080")
		t.Setenv("ENV", "production")
		t.Setenv("FACE_PROVIDER", "rekognition")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, "rekognition", cfg.FaceProvider)
		assert.True(t, cfg.IsProduction())
	})
}

func TestNewLogger(t *testing.T) {
	ctx := context.Background()

	t.Run("production logs at info", func(t *testing.T) {
		logger := NewLogger("production")

		assert.False(t, logger.Handler().Enabled(ctx, slog.LevelDebug))
		assert.True(t, logger.Handler().Enabled(ctx, slog.LevelInfo))
	})

	t.Run("development logs at debug", func(t *testing.T) {
		logger := NewLogger("development")

		assert.True(t, logger.Handler().Enabled(ctx, slog.LevelDebug))
	})
}
