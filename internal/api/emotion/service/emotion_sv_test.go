package emotionService

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"moodcam/internal/api/emotion"
	"moodcam/internal/entity"
	emotionPkg "moodcam/pkg/emotion"
	"moodcam/pkg/vision"
	"moodcam/pkg/vision/visiontest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// smilingMesh is a face mesh with a wide, slightly open mouth and relaxed brows.
func smilingMesh() []vision.Landmark {
	points := make([]vision.Landmark, emotionPkg.MeshPointCount)
	for i := range points {
		points[i] = vision.Landmark{X: 0.5, Y: 0.5}
	}
	points[emotionPkg.MouthLeft] = vision.Landmark{X: 0.44, Y: 0.70}
	points[emotionPkg.MouthRight] = vision.Landmark{X: 0.56, Y: 0.70}
	points[emotionPkg.UpperLip] = vision.Landmark{X: 0.5, Y: 0.69}
	points[emotionPkg.LowerLip] = vision.Landmark{X: 0.5, Y: 0.71}
	points[emotionPkg.LeftEyeTop] = vision.Landmark{X: 0.4, Y: 0.40}
	points[emotionPkg.RightEyeTop] = vision.Landmark{X: 0.6, Y: 0.40}
	points[emotionPkg.LeftBrow] = vision.Landmark{X: 0.4, Y: 0.365}
	points[emotionPkg.RightBrow] = vision.Landmark{X: 0.6, Y: 0.365}
	return points
}

func newTestService(src vision.FrameSource, lm vision.LandmarkDetector, r vision.Renderer) *emotionService {
	return newEmotionService(quietLogger(), src, lm, r, func() time.Time { return t0 })
}

func TestStatusNoFaceIsNeutral(t *testing.T) {
	cases := map[string]*emotionService{
		"camera unavailable": newTestService(&visiontest.Source{Unopened: true}, &visiontest.Landmarks{}, nil),
		"no frame":           newTestService(&visiontest.Source{}, &visiontest.Landmarks{}, nil),
		"no face": newTestService(
			&visiontest.Source{Frames: []vision.Frame{visiontest.NewFrame(640, 480)}},
			&visiontest.Landmarks{}, nil),
		"detector error": newTestService(
			&visiontest.Source{Frames: []vision.Frame{visiontest.NewFrame(640, 480)}},
			&visiontest.Landmarks{Err: errors.New("boom")}, nil),
		"partial mesh": newTestService(
			&visiontest.Source{Frames: []vision.Frame{visiontest.NewFrame(640, 480)}},
			&visiontest.Landmarks{Points: make([]vision.Landmark, 10)}, nil),
	}

	for name, svc := range cases {
		t.Run(name, func(t *testing.T) {
			status := svc.Status(context.Background())
			assert.Equal(t, "neutral", status.Emotion)
			assert.Zero(t, status.Confidence)
			assert.Equal(t, emotionPkg.Suggestions(emotionPkg.Neutral), status.Suggestions)
			assert.Empty(t, svc.Snapshot().History)
		})
	}
}

func TestStatusWithFace(t *testing.T) {
	frame := visiontest.NewFrame(640, 480)
	svc := newTestService(
		&visiontest.Source{Frames: []vision.Frame{frame}},
		&visiontest.Landmarks{Points: smilingMesh()}, nil)

	status := svc.Status(context.Background())
	assert.Equal(t, "happy", status.Emotion)
	assert.InDelta(t, 6.0/7*100, status.Confidence, 1e-6)
	assert.Equal(t, emotionPkg.Suggestions(emotionPkg.Happy), status.Suggestions)
	assert.True(t, frame.Closed())
}

func TestProcessFrameSmoothing(t *testing.T) {
	svc := newTestService(&visiontest.Source{}, &visiontest.Landmarks{Points: smilingMesh()}, nil)
	frame := visiontest.NewFrame(640, 480)
	ctx := context.Background()

	require.True(t, svc.ProcessFrame(ctx, t0, frame))
	first := svc.Snapshot()
	assert.Equal(t, "happy", first.Emotion)

	// Inside the window: history grows, visible state does not move.
	require.True(t, svc.ProcessFrame(ctx, t0.Add(200*time.Millisecond), frame))
	inside := svc.Snapshot()
	assert.Equal(t, first.Confidence, inside.Confidence)
	assert.Len(t, inside.History, 2)

	require.True(t, svc.ProcessFrame(ctx, t0.Add(600*time.Millisecond), frame))
	after := svc.Snapshot()
	assert.InDelta(t, first.Confidence+10, after.Confidence, 1e-9)
	assert.Equal(t, t0.Add(600*time.Millisecond), after.LastUpdate)
}

func TestStream(t *testing.T) {
	t.Run("camera unavailable", func(t *testing.T) {
		svc := newTestService(&visiontest.Source{Unopened: true}, &visiontest.Landmarks{}, &visiontest.Renderer{})

		var buf bytes.Buffer
		err := svc.Stream(context.Background(), nil, bufio.NewWriter(&buf))
		assert.ErrorIs(t, err, emotion.ErrCameraUnavailable)
		assert.Zero(t, buf.Len())
	})

	t.Run("overlays emotion and landmarks", func(t *testing.T) {
		renderer := &visiontest.Renderer{}
		mesh := smilingMesh()
		svc := newTestService(
			&visiontest.Source{Frames: []vision.Frame{visiontest.NewFrame(640, 480)}},
			&visiontest.Landmarks{Points: mesh}, renderer)

		var buf bytes.Buffer
		err := svc.Stream(context.Background(), nil, bufio.NewWriter(&buf))
		assert.ErrorIs(t, err, emotion.ErrCameraUnavailable)
		assert.Equal(t, 1, strings.Count(buf.String(), "--frame\r\n"))

		require.Len(t, renderer.Overlays, 1)
		assert.Equal(t, []string{"Emotion: happy (85.7%)"}, renderer.Overlays[0].Lines)
		assert.Len(t, renderer.Overlays[0].Landmarks, len(mesh))
	})

	t.Run("open stream reports failing reads", func(t *testing.T) {
		src := &visiontest.Source{}
		svc := newTestService(src, &visiontest.Landmarks{}, &visiontest.Renderer{})

		frame, err := svc.OpenStream()
		assert.ErrorIs(t, err, emotion.ErrCameraUnavailable)
		assert.Nil(t, frame)
		assert.Equal(t, 1, src.Reads())
	})

	t.Run("cancelled context stops before reading", func(t *testing.T) {
		src := &visiontest.Source{Frames: []vision.Frame{visiontest.NewFrame(640, 480)}}
		svc := newTestService(src, &visiontest.Landmarks{}, &visiontest.Renderer{})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var buf bytes.Buffer
		first := visiontest.NewFrame(640, 480)
		assert.NoError(t, svc.Stream(ctx, first, bufio.NewWriter(&buf)))
		assert.Zero(t, src.Reads())
		assert.True(t, first.Closed())
	})
}

func TestMood(t *testing.T) {
	svc := newTestService(&visiontest.Source{}, &visiontest.Landmarks{Points: smilingMesh()}, nil)
	svc.ProcessFrame(context.Background(), t0, visiontest.NewFrame(640, 480))

	mood := svc.Mood()
	assert.Equal(t, entity.MoodKindEmotion, mood.Kind)
	assert.Equal(t, "happy", mood.Label)
	assert.Equal(t, emotionPkg.Suggestions(emotionPkg.Happy), mood.Suggestions)
	assert.Equal(t, svc.CurrentStatus(), emotion.StatusResponse{
		Emotion:     "happy",
		Confidence:  mood.Confidence,
		Suggestions: mood.Suggestions,
	})
}
