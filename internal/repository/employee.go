package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"

	"github.com/pasiware/faceclock/internal/domain"
)

type EmployeeRepository struct {
	pool PgxPool
}

func NewEmployeeRepository(pool PgxPool) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

func (r *EmployeeRepository) GetByEmpID(ctx context.Context, empID string) (*domain.Employee, error) {
	query := `
		SELECT id, emp_id, name, face_registered, face_photo, face_fingerprint, face_registered_at, created_at, updated_at
		FROM employees
		WHERE emp_id = $1
	`

	var emp domain.Employee
	var fp *pgvector.Vector

	err := r.pool.QueryRow(ctx, query, empID).Scan(
		&emp.ID,
		&emp.EmpID,
		&emp.Name,
		&emp.FaceRegistered,
		&emp.FacePhoto,
		&fp,
		&emp.FaceRegisteredAt,
		&emp.CreatedAt,
		&emp.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get employee by emp_id: %w", err)
	}

	if fp != nil && fp.Slice() != nil {
		emp.Fingerprint = make([]float64, len(fp.Slice()))
		for i, v := range fp.Slice() {
			emp.Fingerprint[i] = float64(v)
		}
	}

	return &emp, nil
}

// SaveFaceRegistration replaces the reference photo, its fingerprint, the
// registration flag and timestamp in one statement, so the registration
// state is never observed half-updated.
func (r *EmployeeRepository) SaveFaceRegistration(ctx context.Context, empID string, photo []byte, fp []float64, at time.Time) error {
	query := `
		UPDATE employees
		SET face_photo = $2,
			face_fingerprint = $3,
			face_registered = TRUE,
			face_registered_at = $4,
			updated_at = NOW()
		WHERE emp_id = $1
	`

	var vec *pgvector.Vector
	if len(fp) > 0 {
		floats := make([]float32, len(fp))
		for i, v := range fp {
			floats[i] = float32(v)
		}
		v := pgvector.NewVector(floats)
		vec = &v
	}

	result, err := r.pool.Exec(ctx, query, empID, photo, vec, at)
	if err != nil {
		return fmt.Errorf("save face registration: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrEmployeeNotFound
	}

	return nil
}
