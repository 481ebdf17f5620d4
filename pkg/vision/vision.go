// Package vision holds the contracts between the frame-processing services and the
// camera, detector and rendering backends. It has no cgo dependency so the services
// can be tested with fakes; the OpenCV implementations live in vision/opencv.
package vision

import (
	"context"
	"errors"
	"image"
	"image/color"
)

var ErrUnavailable = errors.New("camera unavailable")

// Frame is a single captured image. It is owned by the caller of FrameSource.Read
// and must be closed once processing is done.
type Frame interface {
	Width() int
	Height() int
	// Encode returns the frame as JPEG bytes.
	Encode() ([]byte, error)
	Close() error
}

type FrameSource interface {
	// Read returns the next frame or ErrUnavailable when the device could not be
	// opened or the read failed.
	Read() (Frame, error)
	Available() bool
	Close() error
}

type FaceDetector interface {
	DetectFaces(frame Frame) ([]image.Rectangle, error)
}

type EyeDetector interface {
	// DetectEyes searches for eyes inside the face region of the frame.
	DetectEyes(frame Frame, face image.Rectangle) ([]image.Rectangle, error)
}

// MotionMeter measures how much a face region changed since the previous call.
// ok is false when there is nothing to compare against yet or the rescaled
// crops have different shapes.
type MotionMeter interface {
	Measure(frame Frame, face image.Rectangle) (movement float64, ok bool, err error)
}

// LandmarkDetector returns normalized face-mesh points. An empty slice means no face.
type LandmarkDetector interface {
	DetectLandmarks(ctx context.Context, frame Frame) ([]Landmark, error)
}

type Renderer interface {
	Render(frame Frame, overlay Overlay) ([]byte, error)
}

// Landmark is a face-mesh point in image-relative coordinates, X and Y in [0,1].
type Landmark struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z,omitempty"`
}

type Overlay struct {
	Lines     []string
	Color     color.RGBA
	Landmarks []Landmark
}

var OverlayGreen = color.RGBA{R: 0, G: 255, B: 0, A: 0}
