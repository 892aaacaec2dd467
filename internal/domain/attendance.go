package domain

import (
	"time"

	"github.com/google/uuid"
)

type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusLate    AttendanceStatus = "late"
	StatusAbsent  AttendanceStatus = "absent"
	StatusHalfday AttendanceStatus = "halfday"
	StatusLeave   AttendanceStatus = "leave"
	StatusHoliday AttendanceStatus = "holiday"
)

type MarkedBy string

const (
	MarkedByApp   MarkedBy = "app"
	MarkedByAdmin MarkedBy = "admin"
)

// Location is the optional client-reported position at check-in/check-out.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// AttendanceRecord is the one-per-employee-per-day ledger row. CheckOut is
// only ever set on a record that already has CheckIn; WorkHours is derived
// from the two timestamps when the record is closed.
type AttendanceRecord struct {
	ID               uuid.UUID        `json:"id"`
	EmployeeID       uuid.UUID        `json:"employee_id"`
	Date             time.Time        `json:"date"`
	CheckIn          *time.Time       `json:"check_in,omitempty"`
	CheckOut         *time.Time       `json:"check_out,omitempty"`
	Status           AttendanceStatus `json:"status"`
	WorkHours        float64          `json:"work_hours"`
	MarkedBy         MarkedBy         `json:"marked_by"`
	CheckInLocation  *Location        `json:"check_in_location,omitempty"`
	CheckOutLocation *Location        `json:"check_out_location,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
}
