package emotionService

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"moodcam/internal/api/emotion"
	"moodcam/internal/entity"
	emotionPkg "moodcam/pkg/emotion"
	"moodcam/pkg/log"
	"moodcam/pkg/mjpeg"
	"moodcam/pkg/vision"
	"time"
)

// ProcessFrame classifies the face in frame and feeds the result to the smoother.
// It reports false when no usable face was found; the state is left untouched then.
func (s *emotionService) ProcessFrame(ctx context.Context, now time.Time, frame vision.Frame) bool {
	_, ok := s.process(ctx, now, frame)
	return ok
}

func (s *emotionService) process(ctx context.Context, now time.Time, frame vision.Frame) ([]vision.Landmark, bool) {
	if s.landmarks == nil {
		return nil, false
	}

	points, err := s.landmarks.DetectLandmarks(ctx, frame)
	if err != nil {
		s.log.WithFields(log.Fields{
			"error": err.Error(),
		}).Error("Landmark detection failed")
		return nil, false
	}
	if len(points) == 0 {
		return nil, false
	}

	features, err := emotionPkg.ExtractFeatures(points)
	if err != nil {
		s.log.WithFields(log.Fields{
			"error":     err.Error(),
			"landmarks": len(points),
		}).Warn("Landmark set rejected")
		return nil, false
	}

	label, confidence := emotionPkg.Classify(features)

	s.mu.Lock()
	s.smoother.Observe(now, label, confidence)
	s.mu.Unlock()

	return points, true
}

// Status reads a fresh frame and classifies it. Without a camera or a face it
// reports neutral with zero confidence.
func (s *emotionService) Status(ctx context.Context) emotion.StatusResponse {
	if !s.CameraAvailable() {
		return neutralStatus()
	}

	frame, err := s.camera.Read()
	if err != nil {
		s.log.WithFields(log.Fields{
			"error": err.Error(),
		}).Warn("Failed to read frame for status")
		return neutralStatus()
	}
	defer frame.Close()

	if !s.ProcessFrame(ctx, s.clock(), frame) {
		return neutralStatus()
	}

	return statusOf(s.Snapshot())
}

func neutralStatus() emotion.StatusResponse {
	return emotion.StatusResponse{
		Emotion:     string(emotionPkg.Neutral),
		Confidence:  0,
		Suggestions: emotionPkg.Suggestions(emotionPkg.Neutral),
	}
}

func statusOf(snap entity.EmotionSnapshot) emotion.StatusResponse {
	return emotion.StatusResponse{
		Emotion:     snap.Emotion,
		Confidence:  snap.Confidence,
		Suggestions: emotionPkg.Suggestions(emotionPkg.Label(snap.Emotion)),
	}
}

// CurrentStatus is the smoothed state without a new detection.
func (s *emotionService) CurrentStatus() interface{} {
	return statusOf(s.Snapshot())
}

// OpenStream reads the first frame of a video stream, so a failing camera is
// reported before any response is committed.
func (s *emotionService) OpenStream() (vision.Frame, error) {
	if !s.CameraAvailable() {
		return nil, emotion.ErrCameraUnavailable
	}

	frame, err := s.camera.Read()
	if err != nil {
		s.log.WithFields(log.Fields{
			"error": err.Error(),
		}).Error("Failed to read frame from camera")
		if errors.Is(err, vision.ErrUnavailable) {
			return nil, emotion.ErrCameraUnavailable
		}
		return nil, err
	}
	return frame, nil
}

// Stream writes one annotated JPEG part per frame, starting with first when it is
// not nil, until ctx is done, the camera fails or the consumer goes away.
func (s *emotionService) Stream(ctx context.Context, first vision.Frame, w *bufio.Writer) error {
	mw := mjpeg.NewWriter(w)
	frame := first
	for {
		if ctx.Err() != nil {
			if frame != nil {
				frame.Close()
			}
			return nil
		}

		if frame == nil {
			next, err := s.OpenStream()
			if err != nil {
				return err
			}
			frame = next
		}

		points, _ := s.process(ctx, s.clock(), frame)
		label, confidence := s.current()

		jpeg, err := s.renderer.Render(frame, vision.Overlay{
			Lines:     []string{fmt.Sprintf("Emotion: %s (%.1f%%)", label, confidence)},
			Color:     vision.OverlayGreen,
			Landmarks: points,
		})
		frame.Close()
		frame = nil
		if err != nil {
			s.log.WithFields(log.Fields{
				"error": err.Error(),
			}).Error("Failed to render frame")
			return fmt.Errorf("%w: %v", emotion.ErrStreamFailed, err)
		}

		if err := mw.WritePart(jpeg); err != nil {
			s.log.WithFields(log.Fields{
				"error": err.Error(),
			}).Debug("Video consumer disconnected")
			return nil
		}
	}
}

func (s *emotionService) current() (emotionPkg.Label, float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.smoother.Current()
}

func (s *emotionService) Mood() entity.Mood {
	snap := s.Snapshot()
	return entity.Mood{
		Kind:        entity.MoodKindEmotion,
		Label:       snap.Emotion,
		Confidence:  snap.Confidence,
		Suggestions: emotionPkg.Suggestions(emotionPkg.Label(snap.Emotion)),
	}
}
