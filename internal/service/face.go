package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/pasiware/faceclock/internal/domain"
	"github.com/pasiware/faceclock/internal/fingerprint"
)

type RegisterFaceRequest struct {
	EmpID string
	Photo []byte
}

type RegisterFaceResult struct {
	RegisteredAt time.Time `json:"face_registered_at"`
	// ProviderRegistered reports whether the external recognizer accepted
	// the encoding; false means only the local fallback reference exists.
	ProviderRegistered bool `json:"provider_registered"`
}

type FaceStatus struct {
	Registered   bool       `json:"face_registered"`
	RegisteredAt *time.Time `json:"face_registered_at,omitempty"`
}

// RegisterFace stores the reference photo and its fallback fingerprint for
// the employee, replacing any previous registration wholesale. The external
// recognizer is offered the photo first, but its failure never blocks
// registration: the local copy is what the fallback matcher needs.
func (s *AttendanceService) RegisterFace(ctx context.Context, req RegisterFaceRequest) (*RegisterFaceResult, error) {
	if req.EmpID == "" || len(req.Photo) == 0 {
		return nil, domain.ErrValidationFailed
	}

	emp, err := s.employees.GetByEmpID(ctx, req.EmpID)
	if err != nil {
		return nil, err
	}

	providerRegistered := false
	if s.external != nil && s.external.Available(ctx) {
		if err := s.external.Register(ctx, emp.EmpID, req.Photo); err != nil {
			s.logger.Warn("external face registration failed, keeping local copy only",
				slog.String("backend", s.external.Name()),
				slog.String("emp_id", emp.EmpID),
				slog.Any("error", err),
			)
		} else {
			providerRegistered = true
		}
	}

	now := s.now()
	fp := fingerprint.Extract(req.Photo)

	if err := s.employees.SaveFaceRegistration(ctx, emp.EmpID, req.Photo, fp, now); err != nil {
		return nil, err
	}

	s.logger.Info("face registered",
		slog.String("emp_id", emp.EmpID),
		slog.Bool("provider_registered", providerRegistered),
	)

	return &RegisterFaceResult{
		RegisteredAt:       now,
		ProviderRegistered: providerRegistered,
	}, nil
}

// FaceStatus reports whether the employee has a registered face.
func (s *AttendanceService) FaceStatus(ctx context.Context, empID string) (*FaceStatus, error) {
	if empID == "" {
		return nil, domain.ErrValidationFailed
	}

	emp, err := s.employees.GetByEmpID(ctx, empID)
	if err != nil {
		return nil, err
	}

	return &FaceStatus{
		Registered:   emp.FaceRegistered,
		RegisteredAt: emp.FaceRegisteredAt,
	}, nil
}
