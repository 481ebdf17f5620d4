package livenessService

import (
	"bufio"
	"context"
	"moodcam/internal/api/liveness"
	"moodcam/internal/entity"
	livenessPkg "moodcam/pkg/liveness"
	"moodcam/pkg/vision"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type ILivenessService interface {
	CameraAvailable() bool
	ProcessFrame(now time.Time, frame vision.Frame) entity.LivenessSnapshot
	Snapshot() entity.LivenessSnapshot
	OpenStream() (vision.Frame, error)
	Stream(ctx context.Context, first vision.Frame, w *bufio.Writer) error
	Status() liveness.StatusResponse
	CurrentStatus() interface{}
	Mood() entity.Mood
}

// Detectors groups the per-frame analysers the liveness checks run on.
type Detectors struct {
	Faces    vision.FaceDetector
	Eyes     vision.EyeDetector
	Motion   vision.MotionMeter
	Renderer vision.Renderer
}

type livenessService struct {
	log       *logrus.Logger
	camera    vision.FrameSource
	detectors Detectors
	clock     func() time.Time

	mu        sync.RWMutex
	blink     *livenessPkg.BlinkTracker
	direction *livenessPkg.DirectionTracker
	activity  *livenessPkg.ActivityTracker
	status    string
}

func NewLivenessService(log *logrus.Logger, camera vision.FrameSource, detectors Detectors) ILivenessService {
	return newLivenessService(log, camera, detectors, time.Now)
}

func newLivenessService(log *logrus.Logger, camera vision.FrameSource, detectors Detectors, clock func() time.Time) *livenessService {
	start := clock()
	return &livenessService{
		log:       log,
		camera:    camera,
		detectors: detectors,
		clock:     clock,
		blink:     livenessPkg.NewBlinkTracker(start),
		direction: livenessPkg.NewDirectionTracker(start),
		activity:  livenessPkg.NewActivityTracker(start),
		status:    livenessPkg.StatusCheckingInit,
	}
}

func (s *livenessService) CameraAvailable() bool {
	return s.camera != nil && s.camera.Available()
}

func (s *livenessService) Snapshot() entity.LivenessSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshotLocked()
}

func (s *livenessService) snapshotLocked() entity.LivenessSnapshot {
	activity, confidence := s.activity.Current()
	return entity.LivenessSnapshot{
		Status:             s.status,
		Blinks:             s.blink.Count(),
		LastBlink:          s.blink.LastBlink(),
		EyesOpen:           s.blink.EyesOpen(),
		FaceDirection:      string(s.direction.Current()),
		LatchedDirection:   string(s.direction.Latched()),
		DirectionChanges:   s.direction.Changes(),
		LastDirectionShift: s.direction.LastChange(),
		Activity:           string(activity),
		ActivityConfidence: confidence,
	}
}
