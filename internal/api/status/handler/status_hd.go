package statusHandler

import (
	"time"

	"github.com/gofiber/websocket/v2"
)

const writeTimeout = 10 * time.Second

func (h *StatusHandler) handleStatusWebSocket(c *websocket.Conn) {
	h.log.Info("Status WebSocket client connected")
	defer h.log.Info("Status WebSocket client disconnected")

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					h.log.Errorf("Status WebSocket error: %v", err)
				}
				return
			}
		}
	}()

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		if err := c.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
			h.log.Errorf("Error setting write deadline: %v", err)
			return
		}
		if err := c.WriteJSON(h.source.CurrentStatus()); err != nil {
			h.log.Debugf("Error writing status: %v", err)
			return
		}

		select {
		case <-closed:
			return
		case <-ticker.C:
		}
	}
}
