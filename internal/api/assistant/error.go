package assistant

import (
	"moodcam/pkg/response"
	"net/http"
)

var (
	ErrAssistantUnavailable = response.NewError(http.StatusServiceUnavailable, "Gemini AI not configured")
	ErrBadRequest           = response.NewError(http.StatusBadRequest, "invalid request body")
	ErrGenerationFailed     = response.NewError(http.StatusInternalServerError, "failed to generate response")
)
