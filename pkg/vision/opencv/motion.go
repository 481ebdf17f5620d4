package opencv

import (
	"image"
	"sync"

	"gocv.io/x/gocv"

	"moodcam/pkg/liveness"
	"moodcam/pkg/vision"
)

// MotionMeter compares each grayscale face crop, rescaled to a fixed height, with
// the previous one and reports the mean absolute difference.
type MotionMeter struct {
	mu   sync.Mutex
	last gocv.Mat
	has  bool
}

func NewMotionMeter() *MotionMeter {
	return &MotionMeter{}
}

func (m *MotionMeter) Measure(frame vision.Frame, face image.Rectangle) (float64, bool, error) {
	mf, err := matOf(frame)
	if err != nil {
		return 0, false, err
	}

	roi := face.Intersect(mf.bounds())
	if roi.Empty() {
		return 0, false, nil
	}

	gray := grayOf(mf.mat)
	defer gray.Close()

	region := gray.Region(roi)
	defer region.Close()

	width := int(float64(liveness.ActivityCropHeight) * float64(roi.Dx()) / float64(roi.Dy()))
	resized := gocv.NewMat()
	gocv.Resize(region, &resized, image.Pt(width, liveness.ActivityCropHeight), 0, 0, gocv.InterpolationLinear)

	m.mu.Lock()
	defer m.mu.Unlock()

	var movement float64
	measured := false
	if m.has && m.last.Rows() == resized.Rows() && m.last.Cols() == resized.Cols() {
		diff := gocv.NewMat()
		gocv.AbsDiff(m.last, resized, &diff)
		movement = diff.Mean().Val1
		diff.Close()
		measured = true
	}

	if m.has {
		m.last.Close()
	}
	m.last = resized
	m.has = true

	return movement, measured, nil
}

func (m *MotionMeter) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.has {
		return nil
	}
	m.has = false
	return m.last.Close()
}
