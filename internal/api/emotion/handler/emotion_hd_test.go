package emotionHandler

import (
	"errors"
	"io"
	"moodcam/internal/api/emotion"
	emotionService "moodcam/internal/api/emotion/service"
	"moodcam/internal/middleware"
	emotionPkg "moodcam/pkg/emotion"
	"moodcam/pkg/mjpeg"
	"moodcam/pkg/vision"
	"moodcam/pkg/vision/visiontest"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(src *visiontest.Source, lm *visiontest.Landmarks) *fiber.App {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	svc := emotionService.NewEmotionService(logger, src, lm, &visiontest.Renderer{})

	app := fiber.New()
	New(logger, middleware.New(logger, 1, 1), svc, mjpeg.NewStreams()).Start(app)
	return app
}

func TestGetStatusNoFace(t *testing.T) {
	lm := &visiontest.Landmarks{}
	app := newTestApp(&visiontest.Source{Frames: []vision.Frame{visiontest.NewFrame(640, 480)}}, lm)

	resp, err := app.Test(httptest.NewRequest("GET", "/get_status", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var status emotion.StatusResponse
	require.NoError(t, jsoniter.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, "neutral", status.Emotion)
	assert.Zero(t, status.Confidence)
	assert.Equal(t, emotionPkg.Suggestions(emotionPkg.Neutral), status.Suggestions)
	assert.Equal(t, 1, lm.Calls)
}

func TestGetStatusCameraDown(t *testing.T) {
	lm := &visiontest.Landmarks{Err: errors.New("unused")}
	app := newTestApp(&visiontest.Source{Unopened: true}, lm)

	resp, err := app.Test(httptest.NewRequest("GET", "/get_status", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var status emotion.StatusResponse
	require.NoError(t, jsoniter.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, "neutral", status.Emotion)
	assert.Zero(t, lm.Calls)
}

func TestVideoFeedCameraUnavailable(t *testing.T) {
	src := &visiontest.Source{Unopened: true}
	app := newTestApp(src, &visiontest.Landmarks{})

	resp, err := app.Test(httptest.NewRequest("GET", "/video_feed", nil))
	require.NoError(t, err)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "Camera not available", string(body))
	assert.Zero(t, src.Reads())
}

func TestVideoFeedFailingReads(t *testing.T) {
	src := &visiontest.Source{}
	app := newTestApp(src, &visiontest.Landmarks{})

	for i := 1; i <= 2; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/video_feed", nil))
		require.NoError(t, err)

		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "Camera not available", string(body))
		assert.Equal(t, i, src.Reads())
	}
}

func TestVideoFeedStreamsFrames(t *testing.T) {
	src := &visiontest.Source{Frames: []vision.Frame{visiontest.NewFrame(640, 480)}}
	app := newTestApp(src, &visiontest.Landmarks{})

	resp, err := app.Test(httptest.NewRequest("GET", "/video_feed", nil), -1)
	require.NoError(t, err)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, mjpeg.ContentType, resp.Header.Get(fiber.HeaderContentType))
	assert.Equal(t, 1, strings.Count(string(body), "--frame\r\nContent-Type: image/jpeg\r\n\r\n"))
}
