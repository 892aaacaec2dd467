package domain

import "time"

// Settings is the single organization settings row, read-only here.
type Settings struct {
	OfficeStartTime string    `json:"office_start_time"` // "HH:MM"
	OfficeEndTime   string    `json:"office_end_time"`
	GraceMinutes    int       `json:"grace_minutes"`
	OfficeNetwork   string    `json:"office_network"` // empty means no restriction
	UpdatedAt       time.Time `json:"updated_at"`
}

// NetworkPolicy is the office-network admission policy derived from settings.
type NetworkPolicy struct {
	AllowedNetwork string
}

// AttendanceRules are the lateness parameters derived from settings.
type AttendanceRules struct {
	OfficeStartTime string
	GraceMinutes    int
}

func (s *Settings) NetworkPolicy() NetworkPolicy {
	return NetworkPolicy{AllowedNetwork: s.OfficeNetwork}
}

func (s *Settings) AttendanceRules() AttendanceRules {
	return AttendanceRules{
		OfficeStartTime: s.OfficeStartTime,
		GraceMinutes:    s.GraceMinutes,
	}
}
