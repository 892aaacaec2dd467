package handler

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/pasiware/faceclock/internal/domain"
	"github.com/pasiware/faceclock/internal/service"
)

// AttendanceService is the check-in/check-out surface the handler needs.
type AttendanceService interface {
	CheckIn(ctx context.Context, req service.CheckInRequest) (*service.CheckInResult, error)
	CheckOut(ctx context.Context, req service.CheckOutRequest) (*service.CheckOutResult, error)
}

// AttendanceHandler handles face-verified attendance requests.
type AttendanceHandler struct {
	service AttendanceService
	logger  *slog.Logger
}

func NewAttendanceHandler(service AttendanceService, logger *slog.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		service: service,
		logger:  logger,
	}
}

type attendanceRequest struct {
	EmpID     string           `json:"emp_id"`
	FacePhoto string           `json:"face_photo"`
	Location  *domain.Location `json:"location"`
}

// CheckIn POST /api/face/check-in - open today's attendance record
func (h *AttendanceHandler) CheckIn(c *fiber.Ctx) error {
	var req attendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrValidationFailed.WithError(err)
	}

	photo, err := photoPayload(req.FacePhoto)
	if err != nil {
		return err
	}

	result, err := h.service.CheckIn(c.Context(), service.CheckInRequest{
		EmpID:      strings.TrimSpace(req.EmpID),
		Photo:      photo,
		Location:   req.Location,
		RemoteAddr: clientIP(c),
	})
	if err != nil {
		return err
	}

	message := "Checked in successfully"
	if result.Late {
		message = "Checked in successfully (late)"
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    result,
	})
}

// CheckOut POST /api/face/check-out - close today's attendance record
func (h *AttendanceHandler) CheckOut(c *fiber.Ctx) error {
	var req attendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrValidationFailed.WithError(err)
	}

	photo, err := photoPayload(req.FacePhoto)
	if err != nil {
		return err
	}

	result, err := h.service.CheckOut(c.Context(), service.CheckOutRequest{
		EmpID:      strings.TrimSpace(req.EmpID),
		Photo:      photo,
		Location:   req.Location,
		RemoteAddr: clientIP(c),
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Checked out successfully",
		"data":    result,
	})
}

// clientIP resolves the client address the network guard evaluates. The
// first X-Forwarded-For entry wins when a proxy sits in front.
func clientIP(c *fiber.Ctx) string {
	if forwarded := c.Get("X-Forwarded-For"); forwarded != "" {
		if idx := strings.IndexByte(forwarded, ','); idx >= 0 {
			return strings.TrimSpace(forwarded[:idx])
		}
		return strings.TrimSpace(forwarded)
	}
	return c.IP()
}
