package assistantService

import (
	"context"
	"fmt"
	"moodcam/internal/api/assistant"
	"moodcam/internal/entity"
	contextPkg "moodcam/pkg/context"
	"moodcam/pkg/log"
	"time"

	"golang.org/x/text/unicode/norm"
)

func (s *assistantService) Ask(ctx context.Context, mood entity.Mood, question string) (string, error) {
	if !s.Available() {
		return "", assistant.ErrAssistantUnavailable
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	// Browsers may send decomposed input; the model sees canonical composed text.
	prompt := BuildPrompt(mood, norm.NFC.String(question))

	start := time.Now()
	text, err := s.model.Generate(ctx, prompt)
	if err != nil {
		s.log.WithFields(log.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
			"latency_ms": time.Since(start).Milliseconds(),
		}).Error("Language model call failed")
		return "", fmt.Errorf("%w: %v", assistant.ErrGenerationFailed, err)
	}

	s.log.WithFields(log.Fields{
		"request_id": contextPkg.GetRequestID(ctx),
		"kind":       mood.Kind,
		"label":      mood.Label,
		"latency_ms": time.Since(start).Milliseconds(),
	}).Debug("Language model answered")

	return text, nil
}
