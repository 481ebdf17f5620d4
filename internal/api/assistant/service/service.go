package assistantService

import (
	"context"
	"moodcam/internal/entity"
	"time"

	"github.com/sirupsen/logrus"
)

// LanguageModel is a hosted text-generation model.
type LanguageModel interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type IAssistantService interface {
	Available() bool
	Ask(ctx context.Context, mood entity.Mood, question string) (string, error)
}

type assistantService struct {
	log     *logrus.Logger
	model   LanguageModel
	timeout time.Duration
}

// NewAssistantService wires the model used by Ask. A nil model leaves the assistant
// unavailable for the lifetime of the process. A zero timeout lets a model call run
// as long as the request does.
func NewAssistantService(log *logrus.Logger, model LanguageModel, timeout time.Duration) IAssistantService {
	return &assistantService{
		log:     log,
		model:   model,
		timeout: timeout,
	}
}

func (s *assistantService) Available() bool {
	return s.model != nil
}
