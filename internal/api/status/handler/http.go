package statusHandler

import (
	"moodcam/internal/entity"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type StatusHandler struct {
	log      *logrus.Logger
	source   entity.StatusProvider
	interval time.Duration
}

// New pushes source's status to every websocket client once per interval.
func New(log *logrus.Logger, source entity.StatusProvider, interval time.Duration) *StatusHandler {
	if interval <= 0 {
		interval = time.Second
	}
	return &StatusHandler{
		log:      log,
		source:   source,
		interval: interval,
	}
}

func (h *StatusHandler) Start(srv fiber.Router) {
	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}

	srv.Use("/ws/status", wsMiddleware)
	srv.Get("/ws/status", websocket.New(h.handleStatusWebSocket))
}
