package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pasiware/faceclock/internal/domain"
)

type VerificationLogRepository struct {
	pool PgxPool
}

func NewVerificationLogRepository(pool PgxPool) *VerificationLogRepository {
	return &VerificationLogRepository{pool: pool}
}

func (r *VerificationLogRepository) Create(ctx context.Context, v *domain.VerificationLog) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}

	query := `
		INSERT INTO verification_logs (id, employee_id, operation, matched, similarity, source, latency_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		v.ID,
		v.EmployeeID,
		v.Operation,
		v.Matched,
		v.Similarity,
		v.Source,
		v.LatencyMs,
	)
	if err != nil {
		return fmt.Errorf("create verification log: %w", err)
	}

	return nil
}
