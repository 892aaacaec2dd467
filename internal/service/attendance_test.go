package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pasiware/faceclock/internal/domain"
	"github.com/pasiware/faceclock/internal/recognizer"
)

type mockEmployeeRepo struct {
	mock.Mock
}

func (m *mockEmployeeRepo) GetByEmpID(ctx context.Context, empID string) (*domain.Employee, error) {
	args := m.Called(ctx, empID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *mockEmployeeRepo) SaveFaceRegistration(ctx context.Context, empID string, photo []byte, fp []float64, at time.Time) error {
	args := m.Called(ctx, empID, photo, fp, at)
	return args.Error(0)
}

type mockAttendanceRepo struct {
	mock.Mock
}

func (m *mockAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID uuid.UUID, date time.Time) (*domain.AttendanceRecord, error) {
	args := m.Called(ctx, employeeID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AttendanceRecord), args.Error(1)
}

func (m *mockAttendanceRepo) CheckIn(ctx context.Context, rec *domain.AttendanceRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *mockAttendanceRepo) SetCheckOut(ctx context.Context, id uuid.UUID, checkOut time.Time, workHours float64, loc *domain.Location) error {
	args := m.Called(ctx, id, checkOut, workHours, loc)
	return args.Error(0)
}

type mockSettingsRepo struct {
	mock.Mock
}

func (m *mockSettingsRepo) Current(ctx context.Context) (*domain.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settings), args.Error(1)
}

type mockVerificationRepo struct {
	mock.Mock
}

func (m *mockVerificationRepo) Create(ctx context.Context, v *domain.VerificationLog) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

type mockRecognizer struct {
	mock.Mock
}

func (m *mockRecognizer) Name() string {
	return "mock"
}

func (m *mockRecognizer) Available(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

func (m *mockRecognizer) Register(ctx context.Context, empID string, photo []byte) error {
	args := m.Called(ctx, empID, photo)
	return args.Error(0)
}

func (m *mockRecognizer) Verify(ctx context.Context, empID string, reference, captured []byte) (domain.MatchResult, error) {
	args := m.Called(ctx, empID, reference, captured)
	return args.Get(0).(domain.MatchResult), args.Error(1)
}

type serviceMocks struct {
	employees     *mockEmployeeRepo
	ledger        *mockAttendanceRepo
	settings      *mockSettingsRepo
	verifications *mockVerificationRepo
}

func newTestService(external *mockRecognizer) (*AttendanceService, *serviceMocks) {
	mocks := &serviceMocks{
		employees:     new(mockEmployeeRepo),
		ledger:        new(mockAttendanceRepo),
		settings:      new(mockSettingsRepo),
		verifications: new(mockVerificationRepo),
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var rec recognizer.Recognizer
	if external != nil {
		rec = external
	}

	svc := NewAttendanceService(
		mocks.employees,
		mocks.ledger,
		mocks.settings,
		mocks.verifications,
		rec,
		logger,
	)

	return svc, mocks
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func testPhoto(seed byte, size int) []byte {
	photo := make([]byte, size)
	for i := range photo {
		photo[i] = byte(int(seed) + i*13)
	}
	return photo
}

func registeredEmployee(photo []byte) *domain.Employee {
	return &domain.Employee{
		ID:             uuid.New(),
		EmpID:          "EMP001",
		Name:           "Dana Cruz",
		FaceRegistered: true,
		FacePhoto:      photo,
	}
}

func officeSettings() *domain.Settings {
	return &domain.Settings{
		OfficeStartTime: "09:30",
		OfficeEndTime:   "18:30",
		GraceMinutes:    15,
	}
}

func TestCheckIn_Validation(t *testing.T) {
	svc, _ := newTestService(nil)

	t.Run("missing employee id", func(t *testing.T) {
		_, err := svc.CheckIn(context.Background(), CheckInRequest{Photo: []byte("photo")})
		assert.ErrorIs(t, err, domain.ErrValidationFailed)
	})

	t.Run("missing photo", func(t *testing.T) {
		_, err := svc.CheckIn(context.Background(), CheckInRequest{EmpID: "EMP001"})
		assert.ErrorIs(t, err, domain.ErrValidationFailed)
	})
}

func TestCheckIn_OnTime(t *testing.T) {
	photo := testPhoto(5, 4096)
	emp := registeredEmployee(photo)
	now := time.Date(2026, 3, 10, 9, 40, 0, 0, time.UTC)

	svc, m := newTestService(nil)
	svc.WithClock(fixedClock(now))

	m.settings.On("Current", mock.Anything).Return(officeSettings(), nil)
	m.employees.On("GetByEmpID", mock.Anything, "EMP001").Return(emp, nil)
	m.verifications.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.ledger.On("GetByEmployeeAndDate", mock.Anything, emp.ID, mock.Anything).
		Return(nil, domain.ErrAttendanceNotFound)
	m.ledger.On("CheckIn", mock.Anything, mock.MatchedBy(func(rec *domain.AttendanceRecord) bool {
		return rec.EmployeeID == emp.ID &&
			rec.Status == domain.StatusPresent &&
			rec.MarkedBy == domain.MarkedByApp &&
			rec.CheckIn != nil && rec.CheckIn.Equal(now)
	})).Return(nil)

	result, err := svc.CheckIn(context.Background(), CheckInRequest{
		EmpID: "EMP001",
		Photo: bytes.Clone(photo),
	})

	require.NoError(t, err)
	assert.False(t, result.Late)
	assert.Equal(t, domain.StatusPresent, result.Status)
	assert.True(t, result.Match.Matched)
	assert.Equal(t, domain.SourceLocal, result.Match.Source)
	m.ledger.AssertExpectations(t)
}

func TestCheckIn_LatenessBoundary(t *testing.T) {
	// 09:30 start + 15 grace minutes puts the cutoff at 09:45:00. The
	// boundary second itself is on time.
	tests := []struct {
		name     string
		now      time.Time
		wantLate bool
	}{
		{"one second before cutoff", time.Date(2026, 3, 10, 9, 44, 59, 0, time.UTC), false},
		{"exactly at cutoff", time.Date(2026, 3, 10, 9, 45, 0, 0, time.UTC), false},
		{"one second after cutoff", time.Date(2026, 3, 10, 9, 45, 1, 0, time.UTC), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			photo := testPhoto(5, 4096)
			emp := registeredEmployee(photo)

			svc, m := newTestService(nil)
			svc.WithClock(fixedClock(tt.now))

			m.settings.On("Current", mock.Anything).Return(officeSettings(), nil)
			m.employees.On("GetByEmpID", mock.Anything, "EMP001").Return(emp, nil)
			m.verifications.On("Create", mock.Anything, mock.Anything).Return(nil)
			m.ledger.On("GetByEmployeeAndDate", mock.Anything, emp.ID, mock.Anything).
				Return(nil, domain.ErrAttendanceNotFound)
			m.ledger.On("CheckIn", mock.Anything, mock.Anything).Return(nil)

			result, err := svc.CheckIn(context.Background(), CheckInRequest{
				EmpID: "EMP001",
				Photo: bytes.Clone(photo),
			})

			require.NoError(t, err)
			assert.Equal(t, tt.wantLate, result.Late)
			if tt.wantLate {
				assert.Equal(t, domain.StatusLate, result.Status)
			} else {
				assert.Equal(t, domain.StatusPresent, result.Status)
			}
		})
	}
}

func TestCheckIn_AlreadyCheckedIn(t *testing.T) {
	photo := testPhoto(5, 4096)
	emp := registeredEmployee(photo)
	now := time.Date(2026, 3, 10, 9, 40, 0, 0, time.UTC)
	checkIn := now.Add(-time.Hour)

	svc, m := newTestService(nil)
	svc.WithClock(fixedClock(now))

	m.settings.On("Current", mock.Anything).Return(officeSettings(), nil)
	m.employees.On("GetByEmpID", mock.Anything, "EMP001").Return(emp, nil)
	m.verifications.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.ledger.On("GetByEmployeeAndDate", mock.Anything, emp.ID, mock.Anything).
		Return(&domain.AttendanceRecord{ID: uuid.New(), EmployeeID: emp.ID, CheckIn: &checkIn}, nil)

	_, err := svc.CheckIn(context.Background(), CheckInRequest{
		EmpID: "EMP001",
		Photo: bytes.Clone(photo),
	})

	assert.ErrorIs(t, err, domain.ErrAlreadyCheckedIn)
	m.ledger.AssertNotCalled(t, "CheckIn", mock.Anything, mock.Anything)
}

func TestCheckIn_NetworkDenied(t *testing.T) {
	settings := officeSettings()
	settings.OfficeNetwork = "192.168.1.5"

	svc, m := newTestService(nil)
	m.settings.On("Current", mock.Anything).Return(settings, nil)

	_, err := svc.CheckIn(context.Background(), CheckInRequest{
		EmpID:      "EMP001",
		Photo:      testPhoto(5, 4096),
		RemoteAddr: "10.0.0.7",
	})

	require.ErrorIs(t, err, domain.ErrNetworkNotAllowed)

	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Message, "192.168.1.5")
	assert.Contains(t, appErr.Message, "10.0.0.7")
	m.employees.AssertNotCalled(t, "GetByEmpID", mock.Anything, mock.Anything)
}

func TestCheckIn_SameSubnetAllowed(t *testing.T) {
	photo := testPhoto(5, 4096)
	emp := registeredEmployee(photo)
	settings := officeSettings()
	settings.OfficeNetwork = "192.168.1.5"

	svc, m := newTestService(nil)
	svc.WithClock(fixedClock(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)))

	m.settings.On("Current", mock.Anything).Return(settings, nil)
	m.employees.On("GetByEmpID", mock.Anything, "EMP001").Return(emp, nil)
	m.verifications.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.ledger.On("GetByEmployeeAndDate", mock.Anything, emp.ID, mock.Anything).
		Return(nil, domain.ErrAttendanceNotFound)
	m.ledger.On("CheckIn", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.CheckIn(context.Background(), CheckInRequest{
		EmpID:      "EMP001",
		Photo:      bytes.Clone(photo),
		RemoteAddr: "::ffff:192.168.1.77",
	})

	assert.NoError(t, err)
}

func TestCheckIn_SettingsFailOpen(t *testing.T) {
	// Unreadable settings must not block attendance: the network gate is
	// skipped and lateness falls back to the 10:00 cutoff.
	tests := []struct {
		name     string
		now      time.Time
		wantLate bool
	}{
		{"before default cutoff", time.Date(2026, 3, 10, 9, 59, 0, 0, time.UTC), false},
		{"after default cutoff", time.Date(2026, 3, 10, 10, 30, 0, 0, time.UTC), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			photo := testPhoto(5, 4096)
			emp := registeredEmployee(photo)

			svc, m := newTestService(nil)
			svc.WithClock(fixedClock(tt.now))

			m.settings.On("Current", mock.Anything).Return(nil, domain.ErrSettingsUnavailable)
			m.employees.On("GetByEmpID", mock.Anything, "EMP001").Return(emp, nil)
			m.verifications.On("Create", mock.Anything, mock.Anything).Return(nil)
			m.ledger.On("GetByEmployeeAndDate", mock.Anything, emp.ID, mock.Anything).
				Return(nil, domain.ErrAttendanceNotFound)
			m.ledger.On("CheckIn", mock.Anything, mock.Anything).Return(nil)

			result, err := svc.CheckIn(context.Background(), CheckInRequest{
				EmpID:      "EMP001",
				Photo:      bytes.Clone(photo),
				RemoteAddr: "10.0.0.7",
			})

			require.NoError(t, err)
			assert.Equal(t, tt.wantLate, result.Late)
		})
	}
}

func TestCheckIn_FaceNotRegistered(t *testing.T) {
	emp := registeredEmployee(nil)
	emp.FaceRegistered = false

	svc, m := newTestService(nil)
	m.settings.On("Current", mock.Anything).Return(officeSettings(), nil)
	m.employees.On("GetByEmpID", mock.Anything, "EMP001").Return(emp, nil)

	_, err := svc.CheckIn(context.Background(), CheckInRequest{
		EmpID: "EMP001",
		Photo: testPhoto(5, 4096),
	})

	assert.ErrorIs(t, err, domain.ErrFaceNotRegistered)
}

func TestCheckIn_FaceDataMissing(t *testing.T) {
	// Registered flag set but no stored photo and no external provider:
	// nothing can verify the face, so the employee must re-register.
	emp := registeredEmployee(nil)

	svc, m := newTestService(nil)
	m.settings.On("Current", mock.Anything).Return(officeSettings(), nil)
	m.employees.On("GetByEmpID", mock.Anything, "EMP001").Return(emp, nil)

	_, err := svc.CheckIn(context.Background(), CheckInRequest{
		EmpID: "EMP001",
		Photo: testPhoto(5, 4096),
	})

	assert.ErrorIs(t, err, domain.ErrFaceDataMissing)
}

func TestCheckIn_ExternalMismatchCarriesSimilarity(t *testing.T) {
	photo := testPhoto(5, 4096)
	emp := registeredEmployee(photo)

	external := new(mockRecognizer)
	external.On("Available", mock.Anything).Return(true)
	external.On("Verify", mock.Anything, "EMP001", mock.Anything, mock.Anything).
		Return(domain.MatchResult{Matched: false, Similarity: 0.4, Source: domain.SourceExternal}, nil)

	svc, m := newTestService(external)
	m.settings.On("Current", mock.Anything).Return(officeSettings(), nil)
	m.employees.On("GetByEmpID", mock.Anything, "EMP001").Return(emp, nil)
	m.verifications.On("Create", mock.Anything, mock.MatchedBy(func(v *domain.VerificationLog) bool {
		return v.Operation == "check_in" && !v.Matched && v.Source == domain.SourceExternal
	})).Return(nil)

	_, err := svc.CheckIn(context.Background(), CheckInRequest{
		EmpID: "EMP001",
		Photo: testPhoto(200, 4096),
	})

	require.ErrorIs(t, err, domain.ErrFaceMismatch)

	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Message, "40.0%")
	m.verifications.AssertExpectations(t)
}

func TestCheckIn_LocalMismatch(t *testing.T) {
	// A constant stored photo collapses to a zero fingerprint, which can
	// never match anything. Similarity 0 must surface in the message.
	emp := registeredEmployee(bytes.Repeat([]byte{77}, 4096))

	svc, m := newTestService(nil)
	m.settings.On("Current", mock.Anything).Return(officeSettings(), nil)
	m.employees.On("GetByEmpID", mock.Anything, "EMP001").Return(emp, nil)
	m.verifications.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.CheckIn(context.Background(), CheckInRequest{
		EmpID: "EMP001",
		Photo: testPhoto(5, 4096),
	})

	require.ErrorIs(t, err, domain.ErrFaceMismatch)

	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Message, "0.0%")
}

func TestCheckIn_ExternalFailureFallsBackToLocal(t *testing.T) {
	photo := testPhoto(5, 4096)
	emp := registeredEmployee(photo)
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	external := new(mockRecognizer)
	external.On("Available", mock.Anything).Return(true)
	external.On("Verify", mock.Anything, "EMP001", mock.Anything, mock.Anything).
		Return(domain.MatchResult{}, errors.New("connection refused"))

	svc, m := newTestService(external)
	svc.WithClock(fixedClock(now))

	m.settings.On("Current", mock.Anything).Return(officeSettings(), nil)
	m.employees.On("GetByEmpID", mock.Anything, "EMP001").Return(emp, nil)
	m.verifications.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.ledger.On("GetByEmployeeAndDate", mock.Anything, emp.ID, mock.Anything).
		Return(nil, domain.ErrAttendanceNotFound)
	m.ledger.On("CheckIn", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.CheckIn(context.Background(), CheckInRequest{
		EmpID: "EMP001",
		Photo: bytes.Clone(photo),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.SourceLocal, result.Match.Source)
	external.AssertExpectations(t)
}

func TestCheckIn_ExternalUnavailableUsesLocal(t *testing.T) {
	photo := testPhoto(5, 4096)
	emp := registeredEmployee(photo)

	external := new(mockRecognizer)
	external.On("Available", mock.Anything).Return(false)

	svc, m := newTestService(external)
	svc.WithClock(fixedClock(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)))

	m.settings.On("Current", mock.Anything).Return(officeSettings(), nil)
	m.employees.On("GetByEmpID", mock.Anything, "EMP001").Return(emp, nil)
	m.verifications.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.ledger.On("GetByEmployeeAndDate", mock.Anything, emp.ID, mock.Anything).
		Return(nil, domain.ErrAttendanceNotFound)
	m.ledger.On("CheckIn", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.CheckIn(context.Background(), CheckInRequest{
		EmpID: "EMP001",
		Photo: bytes.Clone(photo),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.SourceLocal, result.Match.Source)
	external.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckIn_AuditFailureDoesNotBlock(t *testing.T) {
	photo := testPhoto(5, 4096)
	emp := registeredEmployee(photo)

	svc, m := newTestService(nil)
	svc.WithClock(fixedClock(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)))

	m.settings.On("Current", mock.Anything).Return(officeSettings(), nil)
	m.employees.On("GetByEmpID", mock.Anything, "EMP001").Return(emp, nil)
	m.verifications.On("Create", mock.Anything, mock.Anything).Return(errors.New("insert failed"))
	m.ledger.On("GetByEmployeeAndDate", mock.Anything, emp.ID, mock.Anything).
		Return(nil, domain.ErrAttendanceNotFound)
	m.ledger.On("CheckIn", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.CheckIn(context.Background(), CheckInRequest{
		EmpID: "EMP001",
		Photo: bytes.Clone(photo),
	})

	assert.NoError(t, err)
}

func TestCheckOut_Success(t *testing.T) {
	photo := testPhoto(5, 4096)
	emp := registeredEmployee(photo)
	checkIn := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 10, 17, 30, 0, 0, time.UTC)
	recID := uuid.New()
	loc := &domain.Location{Latitude: -23.55, Longitude: -46.63}

	svc, m := newTestService(nil)
	svc.WithClock(fixedClock(now))

	m.settings.On("Current", mock.Anything).Return(officeSettings(), nil)
	m.employees.On("GetByEmpID", mock.Anything, "EMP001").Return(emp, nil)
	m.verifications.On("Create", mock.Anything, mock.MatchedBy(func(v *domain.VerificationLog) bool {
		return v.Operation == "check_out" && v.Matched
	})).Return(nil)
	m.ledger.On("GetByEmployeeAndDate", mock.Anything, emp.ID, mock.Anything).
		Return(&domain.AttendanceRecord{ID: recID, EmployeeID: emp.ID, CheckIn: &checkIn}, nil)
	m.ledger.On("SetCheckOut", mock.Anything, recID, now, 8.5, loc).Return(nil)

	result, err := svc.CheckOut(context.Background(), CheckOutRequest{
		EmpID:    "EMP001",
		Photo:    bytes.Clone(photo),
		Location: loc,
	})

	require.NoError(t, err)
	assert.Equal(t, 8.5, result.WorkHours)
	assert.Equal(t, checkIn, result.CheckIn)
	assert.Equal(t, now, result.CheckOut)
	m.ledger.AssertExpectations(t)
	m.verifications.AssertExpectations(t)
}

func TestCheckOut_WithoutCheckIn(t *testing.T) {
	photo := testPhoto(5, 4096)
	emp := registeredEmployee(photo)

	svc, m := newTestService(nil)
	m.settings.On("Current", mock.Anything).Return(officeSettings(), nil)
	m.employees.On("GetByEmpID", mock.Anything, "EMP001").Return(emp, nil)
	m.verifications.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.ledger.On("GetByEmployeeAndDate", mock.Anything, emp.ID, mock.Anything).
		Return(nil, domain.ErrAttendanceNotFound)

	_, err := svc.CheckOut(context.Background(), CheckOutRequest{
		EmpID: "EMP001",
		Photo: bytes.Clone(photo),
	})

	assert.ErrorIs(t, err, domain.ErrNoCheckIn)
	m.ledger.AssertNotCalled(t, "SetCheckOut", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckOut_LedgerReadFailureIsNotNoCheckIn(t *testing.T) {
	photo := testPhoto(5, 4096)
	emp := registeredEmployee(photo)

	svc, m := newTestService(nil)
	m.settings.On("Current", mock.Anything).Return(officeSettings(), nil)
	m.employees.On("GetByEmpID", mock.Anything, "EMP001").Return(emp, nil)
	m.verifications.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.ledger.On("GetByEmployeeAndDate", mock.Anything, emp.ID, mock.Anything).
		Return(nil, errors.New("connection reset by peer"))

	_, err := svc.CheckOut(context.Background(), CheckOutRequest{
		EmpID: "EMP001",
		Photo: bytes.Clone(photo),
	})

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNoCheckIn)
	assert.ErrorIs(t, err, domain.ErrInternal)
	m.ledger.AssertNotCalled(t, "SetCheckOut", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckOut_AlreadyCheckedOut(t *testing.T) {
	photo := testPhoto(5, 4096)
	emp := registeredEmployee(photo)
	checkIn := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 3, 10, 17, 0, 0, 0, time.UTC)

	svc, m := newTestService(nil)
	svc.WithClock(fixedClock(time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)))

	m.settings.On("Current", mock.Anything).Return(officeSettings(), nil)
	m.employees.On("GetByEmpID", mock.Anything, "EMP001").Return(emp, nil)
	m.verifications.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.ledger.On("GetByEmployeeAndDate", mock.Anything, emp.ID, mock.Anything).
		Return(&domain.AttendanceRecord{
			ID:         uuid.New(),
			EmployeeID: emp.ID,
			CheckIn:    &checkIn,
			CheckOut:   &checkOut,
		}, nil)

	_, err := svc.CheckOut(context.Background(), CheckOutRequest{
		EmpID: "EMP001",
		Photo: bytes.Clone(photo),
	})

	assert.ErrorIs(t, err, domain.ErrAlreadyCheckedOut)
}

func TestCheckOut_RoundsWorkHours(t *testing.T) {
	photo := testPhoto(5, 4096)
	emp := registeredEmployee(photo)
	checkIn := time.Date(2026, 3, 10, 9, 10, 0, 0, time.UTC)
	// 8h50m -> 8.833... -> 8.83 after rounding
	now := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	recID := uuid.New()

	svc, m := newTestService(nil)
	svc.WithClock(fixedClock(now))

	m.settings.On("Current", mock.Anything).Return(officeSettings(), nil)
	m.employees.On("GetByEmpID", mock.Anything, "EMP001").Return(emp, nil)
	m.verifications.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.ledger.On("GetByEmployeeAndDate", mock.Anything, emp.ID, mock.Anything).
		Return(&domain.AttendanceRecord{ID: recID, EmployeeID: emp.ID, CheckIn: &checkIn}, nil)
	m.ledger.On("SetCheckOut", mock.Anything, recID, now, 8.83, (*domain.Location)(nil)).Return(nil)

	result, err := svc.CheckOut(context.Background(), CheckOutRequest{
		EmpID: "EMP001",
		Photo: bytes.Clone(photo),
	})

	require.NoError(t, err)
	assert.Equal(t, 8.83, result.WorkHours)
	m.ledger.AssertExpectations(t)
}

func TestIsLate_InvalidStartTimeFallsBack(t *testing.T) {
	svc, _ := newTestService(nil)

	settings := officeSettings()
	settings.OfficeStartTime = "not-a-clock"

	assert.False(t, svc.isLate(settings, time.Date(2026, 3, 10, 9, 59, 0, 0, time.UTC)))
	assert.True(t, svc.isLate(settings, time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)))
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		input   string
		hour    int
		minute  int
		wantErr bool
	}{
		{"09:30", 9, 30, false},
		{"00:00", 0, 0, false},
		{"23:59", 23, 59, false},
		{"24:00", 0, 0, true},
		{"09:60", 0, 0, true},
		{"0930", 0, 0, true},
		{"", 0, 0, true},
		{"ab:cd", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			hour, minute, err := parseClock(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.hour, hour)
			assert.Equal(t, tt.minute, minute)
		})
	}
}

func TestRoundHours(t *testing.T) {
	assert.Equal(t, 8.5, roundHours(8*time.Hour+30*time.Minute))
	assert.Equal(t, 8.83, roundHours(8*time.Hour+50*time.Minute))
	assert.Equal(t, 0.0, roundHours(0))
	assert.Equal(t, 0.25, roundHours(15*time.Minute))
}
