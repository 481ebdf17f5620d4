package emotionService

import (
	"bufio"
	"context"
	"moodcam/internal/api/emotion"
	"moodcam/internal/entity"
	emotionPkg "moodcam/pkg/emotion"
	"moodcam/pkg/vision"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type IEmotionService interface {
	CameraAvailable() bool
	ProcessFrame(ctx context.Context, now time.Time, frame vision.Frame) bool
	Snapshot() entity.EmotionSnapshot
	OpenStream() (vision.Frame, error)
	Stream(ctx context.Context, first vision.Frame, w *bufio.Writer) error
	Status(ctx context.Context) emotion.StatusResponse
	CurrentStatus() interface{}
	Mood() entity.Mood
}

type emotionService struct {
	log       *logrus.Logger
	camera    vision.FrameSource
	landmarks vision.LandmarkDetector
	renderer  vision.Renderer
	clock     func() time.Time

	mu       sync.RWMutex
	smoother *emotionPkg.Smoother
}

func NewEmotionService(
	log *logrus.Logger,
	camera vision.FrameSource,
	landmarks vision.LandmarkDetector,
	renderer vision.Renderer,
) IEmotionService {
	return newEmotionService(log, camera, landmarks, renderer, time.Now)
}

func newEmotionService(
	log *logrus.Logger,
	camera vision.FrameSource,
	landmarks vision.LandmarkDetector,
	renderer vision.Renderer,
	clock func() time.Time,
) *emotionService {
	return &emotionService{
		log:       log,
		camera:    camera,
		landmarks: landmarks,
		renderer:  renderer,
		clock:     clock,
		smoother:  emotionPkg.NewSmoother(),
	}
}

func (s *emotionService) CameraAvailable() bool {
	return s.camera != nil && s.camera.Available()
}

func (s *emotionService) Snapshot() entity.EmotionSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	label, confidence := s.smoother.Current()
	history := s.smoother.History()
	names := make([]string, len(history))
	for i, l := range history {
		names[i] = string(l)
	}

	return entity.EmotionSnapshot{
		Emotion:    string(label),
		Confidence: confidence,
		LastUpdate: s.smoother.LastUpdate(),
		History:    names,
	}
}
