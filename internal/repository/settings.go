package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pasiware/faceclock/internal/domain"
)

type SettingsRepository struct {
	pool PgxPool
}

func NewSettingsRepository(pool PgxPool) *SettingsRepository {
	return &SettingsRepository{pool: pool}
}

// Current reads the singleton settings row.
func (r *SettingsRepository) Current(ctx context.Context) (*domain.Settings, error) {
	query := `
		SELECT office_start_time, office_end_time, grace_minutes, office_network, updated_at
		FROM settings
		WHERE id = 1
	`

	var s domain.Settings

	err := r.pool.QueryRow(ctx, query).Scan(
		&s.OfficeStartTime,
		&s.OfficeEndTime,
		&s.GraceMinutes,
		&s.OfficeNetwork,
		&s.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSettingsUnavailable
	}
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}

	return &s, nil
}
