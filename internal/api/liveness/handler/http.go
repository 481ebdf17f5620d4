package livenessHandler

import (
	livenessService "moodcam/internal/api/liveness/service"
	"moodcam/internal/middleware"
	"moodcam/pkg/mjpeg"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type LivenessHandler struct {
	log             *logrus.Logger
	middleware      middleware.Middleware
	livenessService livenessService.ILivenessService
	streams         *mjpeg.Streams
}

func New(
	log *logrus.Logger,
	middleware middleware.Middleware,
	ls livenessService.ILivenessService,
	streams *mjpeg.Streams,
) *LivenessHandler {
	return &LivenessHandler{
		log:             log,
		middleware:      middleware,
		livenessService: ls,
		streams:         streams,
	}
}

func (h *LivenessHandler) Start(srv fiber.Router) {
	srv.Get("/video_feed", h.VideoFeed)
	srv.Get("/get_status", h.GetStatus)
}
