package opencv

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"moodcam/pkg/vision"
)

// Camera wraps a capture device. A device that fails to open yields a Camera that
// is permanently unavailable rather than an error, so the server can still start.
type Camera struct {
	mu      sync.Mutex
	capture *gocv.VideoCapture
	log     *logrus.Logger
}

func OpenCamera(log *logrus.Logger, device string, width, height int) *Camera {
	cam := &Camera{log: log}

	var id interface{} = device
	if n, err := strconv.Atoi(device); err == nil {
		id = n
	}

	capture, err := gocv.OpenVideoCapture(id)
	if err != nil {
		log.Errorf("Error initializing camera %s: %v", device, err)
		return cam
	}
	if !capture.IsOpened() {
		log.Errorf("Could not open camera %s", device)
		capture.Close()
		return cam
	}

	capture.Set(gocv.VideoCaptureFrameWidth, float64(width))
	capture.Set(gocv.VideoCaptureFrameHeight, float64(height))

	cam.capture = capture
	log.Infof("Camera %s opened", device)
	return cam
}

func (c *Camera) Available() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.capture != nil && c.capture.IsOpened()
}

func (c *Camera) Read() (vision.Frame, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.capture == nil || !c.capture.IsOpened() {
		return nil, vision.ErrUnavailable
	}

	mat := gocv.NewMat()
	if ok := c.capture.Read(&mat); !ok || mat.Empty() {
		mat.Close()
		return nil, fmt.Errorf("failed to read frame from camera: %w", vision.ErrUnavailable)
	}

	return newFrame(mat), nil
}

func (c *Camera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.capture == nil {
		return nil
	}
	err := c.capture.Close()
	c.capture = nil
	return err
}
