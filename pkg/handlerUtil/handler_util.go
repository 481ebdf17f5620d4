package handlerUtil

import (
	"errors"
	"moodcam/internal/api/assistant"
	"moodcam/internal/api/emotion"
	"moodcam/internal/api/liveness"
	"moodcam/pkg/log"
	"moodcam/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	fields := log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
		"operation":  operation,
	}

	// Camera domain
	if errors.Is(err, liveness.ErrCameraUnavailable) || errors.Is(err, emotion.ErrCameraUnavailable) {
		h.logger.WithFields(fields).Warn("Camera not available")
		return c.Status(fiber.StatusServiceUnavailable).SendString("Camera not available")
	}

	// Remote-model domain
	if errors.Is(err, assistant.ErrAssistantUnavailable) {
		h.logger.WithFields(fields).Warn("Language model not configured")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Gemini AI not configured",
		})
	}

	if errors.Is(err, assistant.ErrBadRequest) {
		h.logger.WithFields(fields).Warn("Malformed ask request")
		return c.Status(fiber.StatusBadRequest).JSON(assistant.AskFailure{
			Success: false,
			Error:   err.Error(),
		})
	}

	if errors.Is(err, assistant.ErrGenerationFailed) {
		h.logger.WithFields(fields).Error("Language model call failed")
		return c.Status(fiber.StatusInternalServerError).JSON(assistant.AskFailure{
			Success: false,
			Error:   err.Error(),
		})
	}

	var respErr *response.Error
	if errors.As(err, &respErr) {
		h.logger.WithFields(fields).Warn("Operation failed with error response")
		return c.Status(respErr.Code).JSON(fiber.Map{"error": respErr.Error()})
	}

	traceID := log.ErrorWithTraceID(fields, "Unexpected error")
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error:   "Internal server error",
		Details: traceID,
	})
}

func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, err error, path string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}).Warn("Validation failed")

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error":   "Validation failed: " + err.Error(),
		"code":    "VALIDATION_ERROR",
	})
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}
