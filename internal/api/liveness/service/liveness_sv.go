package livenessService

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"image"
	"moodcam/internal/api/liveness"
	"moodcam/internal/entity"
	"moodcam/pkg/log"
	livenessPkg "moodcam/pkg/liveness"
	"moodcam/pkg/mjpeg"
	"moodcam/pkg/vision"
	"time"
)

// ProcessFrame runs the blink, head-turn and activity checks on one frame and returns
// the resulting state. A detector error counts as "no result" for that check.
func (s *livenessService) ProcessFrame(now time.Time, frame vision.Frame) entity.LivenessSnapshot {
	faces, err := s.detectors.Faces.DetectFaces(frame)
	if err != nil {
		s.log.WithFields(log.Fields{
			"error": err.Error(),
		}).Error("Face detection failed")
		faces = nil
	}

	eyeCounts, eyesOK := s.countEyes(frame, faces)

	var (
		direction livenessPkg.Direction
		movement  float64
		measured  bool
		motionOK  bool
	)
	if len(faces) > 0 {
		direction = livenessPkg.ClassifyDirection(faces[0], frame.Width())

		s.mu.RLock()
		due := s.activity.Due(now)
		s.mu.RUnlock()

		if due {
			movement, measured, err = s.detectors.Motion.Measure(frame, faces[0])
			if err != nil {
				s.log.WithFields(log.Fields{
					"error": err.Error(),
				}).Error("Activity measurement failed")
			} else {
				motionOK = true
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if eyesOK {
		for _, eyes := range eyeCounts {
			s.blink.ObserveEyes(now, eyes)
		}
	}
	if len(faces) > 0 {
		s.direction.Observe(now, direction)
	}
	if motionOK {
		s.activity.Record(now, movement, measured)
	}
	s.status = livenessPkg.Status(s.blink.Count(), s.direction.Changes())

	return s.snapshotLocked()
}

// countEyes runs eye detection for every face. A failure on any face drops the
// blink check for the whole frame.
func (s *livenessService) countEyes(frame vision.Frame, faces []image.Rectangle) ([]int, bool) {
	counts := make([]int, 0, len(faces))
	for _, face := range faces {
		eyes, err := s.detectors.Eyes.DetectEyes(frame, face)
		if err != nil {
			s.log.WithFields(log.Fields{
				"error": err.Error(),
				"face":  face.String(),
			}).Error("Eye detection failed")
			return nil, false
		}
		counts = append(counts, len(eyes))
	}
	return counts, true
}

// OpenStream reads the first frame of a video stream, so a failing camera is
// reported before any response is committed.
func (s *livenessService) OpenStream() (vision.Frame, error) {
	if !s.CameraAvailable() {
		return nil, liveness.ErrCameraUnavailable
	}

	frame, err := s.camera.Read()
	if err != nil {
		s.log.WithFields(log.Fields{
			"error": err.Error(),
		}).Error("Failed to read frame from camera")
		if errors.Is(err, vision.ErrUnavailable) {
			return nil, liveness.ErrCameraUnavailable
		}
		return nil, err
	}
	return frame, nil
}

// Stream writes one annotated JPEG part per frame, starting with first when it is
// not nil, until ctx is done, the camera fails or the consumer goes away.
func (s *livenessService) Stream(ctx context.Context, first vision.Frame, w *bufio.Writer) error {
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

		snap := s.ProcessFrame(s.clock(), frame)
		jpeg, err := s.detectors.Renderer.Render(frame, overlayFor(snap))
		frame.Close()
		frame = nil
		if err != nil {
			s.log.WithFields(log.Fields{
				"error": err.Error(),
			}).Error("Failed to render frame")
			return fmt.Errorf("%w: %v", liveness.ErrStreamFailed, err)
		}

		if err := mw.WritePart(jpeg); err != nil {
			s.log.WithFields(log.Fields{
				"error": err.Error(),
			}).Debug("Video consumer disconnected")
			return nil
		}
	}
}

func overlayFor(snap entity.LivenessSnapshot) vision.Overlay {
	return vision.Overlay{
		Lines: []string{
			fmt.Sprintf("Status: %s", snap.Status),
			fmt.Sprintf("Activity: %s (%.1f%%)", snap.Activity, snap.ActivityConfidence),
			fmt.Sprintf("Face Direction: %s", snap.FaceDirection),
		},
		Color: vision.OverlayGreen,
	}
}

// Status reports the cached state; it never touches the camera.
func (s *livenessService) Status() liveness.StatusResponse {
	snap := s.Snapshot()
	return liveness.StatusResponse{
		Status:             snap.Status,
		Blinks:             snap.Blinks,
		FaceDirection:      snap.FaceDirection,
		Activity:           snap.Activity,
		ActivityConfidence: snap.ActivityConfidence,
		Suggestions:        livenessPkg.Suggestions(livenessPkg.Activity(snap.Activity)),
	}
}

func (s *livenessService) CurrentStatus() interface{} {
	return s.Status()
}

func (s *livenessService) Mood() entity.Mood {
	snap := s.Snapshot()
	return entity.Mood{
		Kind:        entity.MoodKindActivity,
		Status:      snap.Status,
		Label:       snap.Activity,
		Confidence:  snap.ActivityConfidence,
		Suggestions: livenessPkg.Suggestions(livenessPkg.Activity(snap.Activity)),
	}
}
