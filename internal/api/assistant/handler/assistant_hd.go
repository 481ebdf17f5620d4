package assistantHandler

import (
	"moodcam/internal/api/assistant"
	"moodcam/internal/entity"
	contextPkg "moodcam/pkg/context"
	"moodcam/pkg/handlerUtil"
	"moodcam/pkg/log"

	"github.com/gofiber/fiber/v2"
)

func (h *AssistantHandler) Ask(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	errHandler := handlerUtil.New(h.log)

	if !h.assistantService.Available() {
		return errHandler.Handle(ctx, requestID, assistant.ErrAssistantUnavailable, ctx.Path(), "ask_gemini")
	}

	var req assistant.AskRequest
	if err := ctx.BodyParser(&req); err != nil {
		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to parse ask request")
		return errHandler.Handle(ctx, requestID, assistant.ErrBadRequest, ctx.Path(), "ask_gemini")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	mood := h.moods.Mood()

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"kind":       mood.Kind,
		"label":      mood.Label,
	}).Debug("Forwarding question to language model")

	text, err := h.assistantService.Ask(contextPkg.FromFiberCtx(ctx), mood, req.Question)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "ask_gemini")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, answerFor(mood, text))
}

func answerFor(mood entity.Mood, text string) assistant.AskResponse {
	resp := assistant.AskResponse{
		Success:     true,
		Response:    text,
		Suggestions: mood.Suggestions,
	}

	if mood.Kind == entity.MoodKindEmotion {
		confidence := mood.Confidence
		resp.Emotion = mood.Label
		resp.Confidence = &confidence
	} else {
		resp.Activity = mood.Label
	}

	return resp
}
