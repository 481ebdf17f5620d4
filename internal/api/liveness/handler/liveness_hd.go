package livenessHandler

import (
	"bufio"
	"moodcam/internal/api/liveness"
	"moodcam/pkg/handlerUtil"
	"moodcam/pkg/log"
	"moodcam/pkg/mjpeg"

	"github.com/gofiber/fiber/v2"
)

func (h *LivenessHandler) VideoFeed(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	errHandler := handlerUtil.New(h.log)

	streamCtx, done, ok := h.streams.Begin()
	if !ok {
		return errHandler.Handle(ctx, requestID, liveness.ErrCameraUnavailable, ctx.Path(), "video_feed")
	}

	first, err := h.livenessService.OpenStream()
	if err != nil {
		done()
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "video_feed")
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"ip":         ctx.IP(),
	}).Info("Starting liveness video stream")

	ctx.Set(fiber.HeaderContentType, mjpeg.ContentType)
	ctx.Set(fiber.HeaderCacheControl, "no-cache")
	ctx.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer done()

		if err := h.livenessService.Stream(streamCtx, first, w); err != nil {
			h.log.WithFields(log.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("Liveness video stream ended")
		}
	})

	return nil
}

func (h *LivenessHandler) GetStatus(ctx *fiber.Ctx) error {
	errHandler := handlerUtil.New(h.log)
	return errHandler.HandleSuccess(ctx, fiber.StatusOK, h.livenessService.Status())
}
