package emotionHandler

import (
	"bufio"
	"moodcam/internal/api/emotion"
	contextPkg "moodcam/pkg/context"
	"moodcam/pkg/handlerUtil"
	"moodcam/pkg/log"
	"moodcam/pkg/mjpeg"

	"github.com/gofiber/fiber/v2"
)

func (h *EmotionHandler) VideoFeed(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	errHandler := handlerUtil.New(h.log)

	// The fiber context is recycled once the handler returns, so the stream runs
	// on the server's stream context instead.
	serverCtx, done, ok := h.streams.Begin()
	if !ok {
		return errHandler.Handle(ctx, requestID, emotion.ErrCameraUnavailable, ctx.Path(), "video_feed")
	}

	first, err := h.emotionService.OpenStream()
	if err != nil {
		done()
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "video_feed")
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"ip":         ctx.IP(),
	}).Info("Starting emotion video stream")

	streamCtx := contextPkg.WithRequestID(serverCtx, requestID)

	ctx.Set(fiber.HeaderContentType, mjpeg.ContentType)
	ctx.Set(fiber.HeaderCacheControl, "no-cache")
	ctx.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer done()

		if err := h.emotionService.Stream(streamCtx, first, w); err != nil {
			h.log.WithFields(log.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("Emotion video stream ended")
		}
	})

	return nil
}

func (h *EmotionHandler) GetStatus(ctx *fiber.Ctx) error {
	errHandler := handlerUtil.New(h.log)
	status := h.emotionService.Status(contextPkg.FromFiberCtx(ctx))
	return errHandler.HandleSuccess(ctx, fiber.StatusOK, status)
}
