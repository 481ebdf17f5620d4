package assistantHandler

import (
	assistantService "moodcam/internal/api/assistant/service"
	"moodcam/internal/entity"
	"moodcam/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// MoodSource yields the detected state the assistant answers against.
type MoodSource interface {
	Mood() entity.Mood
}

type AssistantHandler struct {
	log              *logrus.Logger
	validator        *validator.Validate
	middleware       middleware.Middleware
	assistantService assistantService.IAssistantService
	moods            MoodSource
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	as assistantService.IAssistantService,
	moods MoodSource,
) *AssistantHandler {
	return &AssistantHandler{
		log:              log,
		validator:        validate,
		middleware:       middleware,
		assistantService: as,
		moods:            moods,
	}
}

func (h *AssistantHandler) Start(srv fiber.Router) {
	srv.Post("/ask_gemini", h.middleware.NewRateLimiter, h.Ask)
}
