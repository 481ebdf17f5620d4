package opencv

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"moodcam/pkg/vision"
)

const (
	faceScaleFactor  = 1.3
	faceMinNeighbors = 5
)

// CascadeDetector finds faces and eyes with Haar cascades.
type CascadeDetector struct {
	face gocv.CascadeClassifier
	eye  gocv.CascadeClassifier
}

func NewCascadeDetector(facePath, eyePath string) (*CascadeDetector, error) {
	face := gocv.NewCascadeClassifier()
	if !face.Load(facePath) {
		face.Close()
		return nil, fmt.Errorf("loading face classifier %s", facePath)
	}

	eye := gocv.NewCascadeClassifier()
	if !eye.Load(eyePath) {
		face.Close()
		eye.Close()
		return nil, fmt.Errorf("loading eye classifier %s", eyePath)
	}

	return &CascadeDetector{face: face, eye: eye}, nil
}

func (d *CascadeDetector) DetectFaces(frame vision.Frame) ([]image.Rectangle, error) {
	mf, err := matOf(frame)
	if err != nil {
		return nil, err
	}

	gray := grayOf(mf.mat)
	defer gray.Close()

	return d.face.DetectMultiScaleWithParams(gray, faceScaleFactor, faceMinNeighbors, 0, image.Point{}, image.Point{}), nil
}

func (d *CascadeDetector) DetectEyes(frame vision.Frame, face image.Rectangle) ([]image.Rectangle, error) {
	mf, err := matOf(frame)
	if err != nil {
		return nil, err
	}

	roi := face.Intersect(mf.bounds())
	if roi.Empty() {
		return nil, nil
	}

	gray := grayOf(mf.mat)
	defer gray.Close()

	region := gray.Region(roi)
	defer region.Close()

	return d.eye.DetectMultiScale(region), nil
}

func (d *CascadeDetector) Close() error {
	if err := d.face.Close(); err != nil {
		return err
	}
	return d.eye.Close()
}
