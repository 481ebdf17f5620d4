package liveness

import (
	"moodcam/pkg/response"
	"net/http"
)

var (
	ErrCameraUnavailable = response.NewError(http.StatusServiceUnavailable, "Camera not available")
	ErrStreamFailed      = response.NewError(http.StatusInternalServerError, "failed to render video frame")
)
