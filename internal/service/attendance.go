package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pasiware/faceclock/internal/domain"
	"github.com/pasiware/faceclock/internal/fingerprint"
	"github.com/pasiware/faceclock/internal/netguard"
	"github.com/pasiware/faceclock/internal/recognizer"
)

// defaultLateHour is the lateness cutoff when settings cannot be read:
// any check-in at or after 10:00 local time counts as late.
const defaultLateHour = 10

type EmployeeRepositoryInterface interface {
	GetByEmpID(ctx context.Context, empID string) (*domain.Employee, error)
	SaveFaceRegistration(ctx context.Context, empID string, photo []byte, fp []float64, at time.Time) error
}

type AttendanceRepositoryInterface interface {
	GetByEmployeeAndDate(ctx context.Context, employeeID uuid.UUID, date time.Time) (*domain.AttendanceRecord, error)
	CheckIn(ctx context.Context, rec *domain.AttendanceRecord) error
	SetCheckOut(ctx context.Context, id uuid.UUID, checkOut time.Time, workHours float64, loc *domain.Location) error
}

type SettingsRepositoryInterface interface {
	Current(ctx context.Context) (*domain.Settings, error)
}

type VerificationLogRepositoryInterface interface {
	Create(ctx context.Context, v *domain.VerificationLog) error
}

// AttendanceService runs the check-in/check-out state machine and face
// registration. Per (employee, day) the record moves
// NoRecord -> CheckedIn -> CheckedOut and never skips a state; the ledger's
// unique (employee, date) constraint makes the "already" guards race-safe.
type AttendanceService struct {
	employees     EmployeeRepositoryInterface
	ledger        AttendanceRepositoryInterface
	settings      SettingsRepositoryInterface
	verifications VerificationLogRepositoryInterface
	external      recognizer.Recognizer
	logger        *slog.Logger
	now           func() time.Time
}

func NewAttendanceService(
	employees EmployeeRepositoryInterface,
	ledger AttendanceRepositoryInterface,
	settings SettingsRepositoryInterface,
	verifications VerificationLogRepositoryInterface,
	external recognizer.Recognizer,
	logger *slog.Logger,
) *AttendanceService {
	return &AttendanceService{
		employees:     employees,
		ledger:        ledger,
		settings:      settings,
		verifications: verifications,
		external:      external,
		logger:        logger,
		now:           time.Now,
	}
}

// WithClock overrides the service clock. Test hook.
func (s *AttendanceService) WithClock(now func() time.Time) *AttendanceService {
	s.now = now
	return s
}

type CheckInRequest struct {
	EmpID      string
	Photo      []byte
	Location   *domain.Location
	RemoteAddr string
}

type CheckInResult struct {
	CheckIn time.Time               `json:"check_in"`
	Status  domain.AttendanceStatus `json:"status"`
	Late    bool                    `json:"is_late"`
	Match   domain.MatchResult      `json:"match"`
}

type CheckOutRequest struct {
	EmpID      string
	Photo      []byte
	Location   *domain.Location
	RemoteAddr string
}

type CheckOutResult struct {
	CheckIn   time.Time          `json:"check_in"`
	CheckOut  time.Time          `json:"check_out"`
	WorkHours float64            `json:"work_hours"`
	Match     domain.MatchResult `json:"match"`
}

// CheckIn gates the request through the network guard, face recognition and
// the already-checked-in guard, then opens today's attendance record.
func (s *AttendanceService) CheckIn(ctx context.Context, req CheckInRequest) (*CheckInResult, error) {
	if req.EmpID == "" || len(req.Photo) == 0 {
		return nil, domain.ErrValidationFailed
	}

	settings := s.loadSettings(ctx)

	if err := s.admit(settings, req.RemoteAddr); err != nil {
		return nil, err
	}

	emp, err := s.registeredEmployee(ctx, req.EmpID)
	if err != nil {
		return nil, err
	}

	match, err := s.recognize(ctx, emp, req.Photo, "check_in")
	if err != nil {
		return nil, err
	}

	now := s.now()
	day := dateOf(now)

	// Cheap pre-check; the upsert below re-checks under the unique
	// constraint so concurrent duplicates still resolve to one check-in.
	existing, err := s.ledger.GetByEmployeeAndDate(ctx, emp.ID, day)
	if err == nil && existing != nil && existing.CheckIn != nil {
		return nil, domain.ErrAlreadyCheckedIn
	}

	late := s.isLate(settings, now)
	status := domain.StatusPresent
	if late {
		status = domain.StatusLate
	}

	rec := &domain.AttendanceRecord{
		ID:              uuid.New(),
		EmployeeID:      emp.ID,
		Date:            day,
		CheckIn:         &now,
		Status:          status,
		MarkedBy:        domain.MarkedByApp,
		CheckInLocation: req.Location,
	}

	if err := s.ledger.CheckIn(ctx, rec); err != nil {
		return nil, err
	}

	s.logger.Info("check-in recorded",
		slog.String("emp_id", emp.EmpID),
		slog.String("status", string(status)),
		slog.String("source", string(match.Source)),
		slog.Float64("similarity", match.Similarity),
	)

	return &CheckInResult{
		CheckIn: now,
		Status:  status,
		Late:    late,
		Match:   match,
	}, nil
}

// CheckOut runs the same gates as CheckIn, then closes today's record and
// derives the worked hours.
func (s *AttendanceService) CheckOut(ctx context.Context, req CheckOutRequest) (*CheckOutResult, error) {
	if req.EmpID == "" || len(req.Photo) == 0 {
		return nil, domain.ErrValidationFailed
	}

	settings := s.loadSettings(ctx)

	if err := s.admit(settings, req.RemoteAddr); err != nil {
		return nil, err
	}

	emp, err := s.registeredEmployee(ctx, req.EmpID)
	if err != nil {
		return nil, err
	}

	match, err := s.recognize(ctx, emp, req.Photo, "check_out")
	if err != nil {
		return nil, err
	}

	now := s.now()
	day := dateOf(now)

	rec, err := s.ledger.GetByEmployeeAndDate(ctx, emp.ID, day)
	if errors.Is(err, domain.ErrAttendanceNotFound) {
		return nil, domain.ErrNoCheckIn
	}
	if err != nil {
		return nil, domain.ErrInternal.WithError(err)
	}
	if rec == nil || rec.CheckIn == nil {
		return nil, domain.ErrNoCheckIn
	}
	if rec.CheckOut != nil {
		return nil, domain.ErrAlreadyCheckedOut
	}

	workHours := roundHours(now.Sub(*rec.CheckIn))

	if err := s.ledger.SetCheckOut(ctx, rec.ID, now, workHours, req.Location); err != nil {
		return nil, err
	}

	s.logger.Info("check-out recorded",
		slog.String("emp_id", emp.EmpID),
		slog.Float64("work_hours", workHours),
		slog.String("source", string(match.Source)),
	)

	return &CheckOutResult{
		CheckIn:   *rec.CheckIn,
		CheckOut:  now,
		WorkHours: workHours,
		Match:     match,
	}, nil
}

// loadSettings fetches the settings row. A read failure returns nil and the
// callers degrade: the network gate fails open, lateness falls back to the
// default cutoff. Neither surfaces to the caller.
func (s *AttendanceService) loadSettings(ctx context.Context) *domain.Settings {
	settings, err := s.settings.Current(ctx)
	if err != nil {
		s.logger.Warn("settings unreadable, using defaults",
			slog.Any("error", err),
		)
		return nil
	}
	return settings
}

// admit applies the office network policy. No settings means no policy.
func (s *AttendanceService) admit(settings *domain.Settings, remoteAddr string) error {
	if settings == nil {
		return nil
	}

	admission := netguard.Check(remoteAddr, settings.NetworkPolicy())
	if !admission.Allowed {
		return domain.ErrNetworkNotAllowed.WithMessagef(
			"Attendance rejected. %s. Please connect to Office WiFi.", admission.Reason)
	}

	return nil
}

// registeredEmployee resolves the employee and requires a registered face.
func (s *AttendanceService) registeredEmployee(ctx context.Context, empID string) (*domain.Employee, error) {
	emp, err := s.employees.GetByEmpID(ctx, empID)
	if err != nil {
		return nil, err
	}

	if !emp.FaceRegistered {
		return nil, domain.ErrFaceNotRegistered
	}

	return emp, nil
}

// recognize runs the external recognizer when it is up, otherwise the local
// fingerprint matcher against the stored reference photo. A no-match
// resolves to ErrFaceMismatch carrying the score for diagnostics; provider
// failures never reach the caller.
func (s *AttendanceService) recognize(ctx context.Context, emp *domain.Employee, photo []byte, operation string) (domain.MatchResult, error) {
	start := time.Now()

	var match domain.MatchResult
	external := s.external != nil && s.external.Available(ctx)

	if external {
		result, err := s.external.Verify(ctx, emp.EmpID, emp.FacePhoto, photo)
		if err != nil {
			s.logger.Warn("external recognizer failed, using local fallback",
				slog.String("backend", s.external.Name()),
				slog.String("emp_id", emp.EmpID),
				slog.Any("error", err),
			)
			external = false
		} else {
			match = result
		}
	}

	if !external {
		if len(emp.FacePhoto) == 0 {
			return domain.MatchResult{}, domain.ErrFaceDataMissing
		}
		match = fingerprint.Compare(emp.FacePhoto, photo)
	}

	s.audit(ctx, emp.ID, operation, match, time.Since(start))

	if !match.Matched {
		return match, domain.ErrFaceMismatch.WithMessagef(
			"Face does not match. Similarity: %s%%. Please try again.",
			strconv.FormatFloat(match.Similarity*100, 'f', 1, 64))
	}

	return match, nil
}

// audit writes the verification log row. Errors are logged, never returned:
// the match decision is already made.
func (s *AttendanceService) audit(ctx context.Context, employeeID uuid.UUID, operation string, match domain.MatchResult, latency time.Duration) {
	if s.verifications == nil {
		return
	}

	entry := &domain.VerificationLog{
		EmployeeID: employeeID,
		Operation:  operation,
		Matched:    match.Matched,
		Similarity: match.Similarity,
		Source:     match.Source,
		LatencyMs:  latency.Milliseconds(),
	}

	if err := s.verifications.Create(ctx, entry); err != nil {
		s.logger.Warn("verification audit write failed",
			slog.String("operation", operation),
			slog.Any("error", err),
		)
	}
}

// isLate decides lateness against officeStartTime + graceMinutes. The
// boundary second itself is on time; only strictly after the cutoff is late.
func (s *AttendanceService) isLate(settings *domain.Settings, now time.Time) bool {
	if settings == nil || settings.OfficeStartTime == "" {
		return now.Hour() >= defaultLateHour
	}

	rules := settings.AttendanceRules()

	hour, minute, err := parseClock(rules.OfficeStartTime)
	if err != nil {
		s.logger.Warn("invalid office start time, using default cutoff",
			slog.String("office_start_time", rules.OfficeStartTime),
		)
		return now.Hour() >= defaultLateHour
	}

	cutoff := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location()).
		Add(time.Duration(rules.GraceMinutes) * time.Minute)

	return now.After(cutoff)
}

// parseClock parses "HH:MM".
func parseClock(v string) (hour, minute int, err error) {
	parts := strings.SplitN(v, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed clock value %q", v)
	}

	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed clock value %q: %w", v, err)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed clock value %q: %w", v, err)
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("clock value %q out of range", v)
	}

	return hour, minute, nil
}

// dateOf truncates to the local calendar day.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// roundHours converts a duration to hours rounded to 2 decimals.
func roundHours(d time.Duration) float64 {
	return math.Round(d.Hours()*100) / 100
}
