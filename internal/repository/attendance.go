package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pasiware/faceclock/internal/domain"
)

type AttendanceRepository struct {
	pool PgxPool
}

func NewAttendanceRepository(pool PgxPool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

func (r *AttendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID uuid.UUID, date time.Time) (*domain.AttendanceRecord, error) {
	query := `
		SELECT id, employee_id, date, check_in, check_out, status, work_hours, marked_by, check_in_location, check_out_location, created_at
		FROM attendance
		WHERE employee_id = $1 AND date = $2
	`

	var rec domain.AttendanceRecord

	err := r.pool.QueryRow(ctx, query, employeeID, date).Scan(
		&rec.ID,
		&rec.EmployeeID,
		&rec.Date,
		&rec.CheckIn,
		&rec.CheckOut,
		&rec.Status,
		&rec.WorkHours,
		&rec.MarkedBy,
		&rec.CheckInLocation,
		&rec.CheckOutLocation,
		&rec.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAttendanceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get attendance by employee and date: %w", err)
	}

	return &rec, nil
}

// CheckIn opens the day's record. The upsert only fills a row whose check_in
// is still NULL, so two concurrent check-ins for the same (employee, date)
// resolve to exactly one winner; the loser sees no returned row.
func (r *AttendanceRepository) CheckIn(ctx context.Context, rec *domain.AttendanceRecord) error {
	query := `
		INSERT INTO attendance (id, employee_id, date, check_in, status, marked_by, check_in_location)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (employee_id, date) DO UPDATE
		SET check_in = EXCLUDED.check_in,
			status = EXCLUDED.status,
			marked_by = EXCLUDED.marked_by,
			check_in_location = EXCLUDED.check_in_location
		WHERE attendance.check_in IS NULL
		RETURNING id
	`

	var id uuid.UUID
	err := r.pool.QueryRow(ctx, query,
		rec.ID,
		rec.EmployeeID,
		rec.Date,
		rec.CheckIn,
		rec.Status,
		rec.MarkedBy,
		rec.CheckInLocation,
	).Scan(&id)

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrAlreadyCheckedIn
	}
	if err != nil {
		return fmt.Errorf("record check-in: %w", err)
	}

	rec.ID = id
	return nil
}

// SetCheckOut closes the record. The check_out IS NULL predicate makes a
// repeated check-out affect zero rows instead of overwriting the first one.
func (r *AttendanceRepository) SetCheckOut(ctx context.Context, id uuid.UUID, checkOut time.Time, workHours float64, loc *domain.Location) error {
	query := `
		UPDATE attendance
		SET check_out = $2,
			work_hours = $3,
			check_out_location = $4
		WHERE id = $1 AND check_out IS NULL
	`

	result, err := r.pool.Exec(ctx, query, id, checkOut, workHours, loc)
	if err != nil {
		return fmt.Errorf("record check-out: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrAlreadyCheckedOut
	}

	return nil
}
