package handler

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/pasiware/faceclock/internal/domain"
	"github.com/pasiware/faceclock/internal/service"
)

// maxPhotoSize bounds the accepted payload. Photos arrive base64-encoded,
// so this is roughly 7MB of raw image.
const maxPhotoSize = 10 * 1024 * 1024

// FaceService is the face registration surface the handler needs.
type FaceService interface {
	RegisterFace(ctx context.Context, req service.RegisterFaceRequest) (*service.RegisterFaceResult, error)
	FaceStatus(ctx context.Context, empID string) (*service.FaceStatus, error)
}

// FaceHandler handles face registration requests.
type FaceHandler struct {
	service FaceService
	logger  *slog.Logger
}

func NewFaceHandler(service FaceService, logger *slog.Logger) *FaceHandler {
	return &FaceHandler{
		service: service,
		logger:  logger,
	}
}

type registerFaceRequest struct {
	EmpID     string `json:"emp_id"`
	FacePhoto string `json:"face_photo"`
}

// Register POST /api/face/register - store the reference photo for an employee
func (h *FaceHandler) Register(c *fiber.Ctx) error {
	var req registerFaceRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrValidationFailed.WithError(err)
	}

	photo, err := photoPayload(req.FacePhoto)
	if err != nil {
		return err
	}

	result, err := h.service.RegisterFace(c.Context(), service.RegisterFaceRequest{
		EmpID: strings.TrimSpace(req.EmpID),
		Photo: photo,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Face registered successfully",
		"data":    result,
	})
}

// Status GET /api/face/status/:emp_id - report whether a face is registered
func (h *FaceHandler) Status(c *fiber.Ctx) error {
	empID := strings.TrimSpace(c.Params("emp_id"))

	status, err := h.service.FaceStatus(c.Context(), empID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    status,
	})
}

// photoPayload validates the base64 photo field and returns it as bytes.
// Decoding happens downstream: the fingerprint extractor and the faceapi
// backend consume the encoded form as-is.
func photoPayload(photo string) ([]byte, error) {
	photo = strings.TrimSpace(photo)
	if photo == "" {
		return nil, domain.ErrValidationFailed
	}
	if len(photo) > maxPhotoSize {
		return nil, domain.ErrValidationFailed.WithMessagef("Face photo too large (max %d bytes)", maxPhotoSize)
	}
	return []byte(photo), nil
}
