package emotionHandler

import (
	emotionService "moodcam/internal/api/emotion/service"
	"moodcam/internal/middleware"
	"moodcam/pkg/mjpeg"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type EmotionHandler struct {
	log            *logrus.Logger
	middleware     middleware.Middleware
	emotionService emotionService.IEmotionService
	streams        *mjpeg.Streams
}

func New(
	log *logrus.Logger,
	middleware middleware.Middleware,
	es emotionService.IEmotionService,
	streams *mjpeg.Streams,
) *EmotionHandler {
	return &EmotionHandler{
		log:            log,
		middleware:     middleware,
		emotionService: es,
		streams:        streams,
	}
}

func (h *EmotionHandler) Start(srv fiber.Router) {
	srv.Get("/video_feed", h.VideoFeed)
	srv.Get("/get_status", h.GetStatus)
}
