package domain

import (
	"errors"
	"fmt"
)

type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Code:       e.Code,
		Message:    e.Message,
		StatusCode: e.StatusCode,
		Err:        err,
	}
}

// WithMessagef returns a copy with a specific user-facing message, keeping the
// code and status. Used where the message carries diagnostics (similarity,
// the rejected network address).
func (e *AppError) WithMessagef(format string, args ...interface{}) *AppError {
	return &AppError{
		Code:       e.Code,
		Message:    fmt.Sprintf(format, args...),
		StatusCode: e.StatusCode,
		Err:        e.Err,
	}
}

// Is makes two AppError values match on their code, so errors.Is works
// against the predefined sentinels after WithError/WithMessagef copies.
func (e *AppError) Is(target error) bool {
	var appErr *AppError
	if errors.As(target, &appErr) {
		return e.Code == appErr.Code
	}
	return false
}

// Pre-defined errors. The first group is user-visible; handlers map them to
// HTTP responses. Provider/settings failures never appear here: those are
// absorbed internally with fallback behavior.
var (
	ErrInternal = &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An unexpected error occurred",
		StatusCode: 500,
	}

	ErrValidationFailed = &AppError{
		Code:       "VALIDATION_FAILED",
		Message:    "Employee ID and face photo are required",
		StatusCode: 400,
	}

	ErrEmployeeNotFound = &AppError{
		Code:       "EMPLOYEE_NOT_FOUND",
		Message:    "Employee not found",
		StatusCode: 404,
	}

	ErrFaceNotRegistered = &AppError{
		Code:       "FACE_NOT_REGISTERED",
		Message:    "Face not registered. Please register first.",
		StatusCode: 400,
	}

	ErrFaceDataMissing = &AppError{
		Code:       "FACE_DATA_MISSING",
		Message:    "Face data not found. Please re-register.",
		StatusCode: 400,
	}

	ErrFaceMismatch = &AppError{
		Code:       "FACE_MISMATCH",
		Message:    "Face does not match. Please try again.",
		StatusCode: 401,
	}

	ErrNetworkNotAllowed = &AppError{
		Code:       "NETWORK_NOT_ALLOWED",
		Message:    "Attendance rejected. Please connect to Office WiFi.",
		StatusCode: 403,
	}

	ErrAlreadyCheckedIn = &AppError{
		Code:       "ALREADY_CHECKED_IN",
		Message:    "Already checked in today",
		StatusCode: 409,
	}

	ErrAlreadyCheckedOut = &AppError{
		Code:       "ALREADY_CHECKED_OUT",
		Message:    "Already checked out today",
		StatusCode: 409,
	}

	ErrNoCheckIn = &AppError{
		Code:       "NO_CHECK_IN",
		Message:    "No check-in found for today. Please check-in first.",
		StatusCode: 400,
	}

	ErrRateLimitExceeded = &AppError{
		Code:       "RATE_LIMIT_EXCEEDED",
		Message:    "Rate limit exceeded, please try again later",
		StatusCode: 429,
	}
)

// Internal sentinels. These never reach the caller; they select degraded
// behavior (fail-open network gate, default lateness cutoff).
var (
	ErrSettingsUnavailable   = errors.New("settings unavailable")
	ErrAttendanceNotFound    = errors.New("attendance record not found")
	ErrRecognizerUnavailable = errors.New("recognition provider unavailable")
)
