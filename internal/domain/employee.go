package domain

import (
	"time"

	"github.com/google/uuid"
)

// Employee is the subset of the employee directory this subsystem reads and
// writes: the registered face photo, its fallback fingerprint, and the
// registration flag. The photo and the flag are always updated together.
type Employee struct {
	ID               uuid.UUID  `json:"id"`
	EmpID            string     `json:"emp_id"`
	Name             string     `json:"name"`
	FaceRegistered   bool       `json:"face_registered"`
	FacePhoto        []byte     `json:"-"`
	Fingerprint      []float64  `json:"-"`
	FaceRegisteredAt *time.Time `json:"face_registered_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
