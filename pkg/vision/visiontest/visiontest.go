// Package visiontest provides in-memory implementations of the vision interfaces
// for tests that must run without a camera or OpenCV.
package visiontest

import (
	"context"
	"errors"
	"image"
	"moodcam/pkg/vision"
	"sync"
)

type Frame struct {
	W, H   int
	JPEG   []byte
	closed bool
}

func NewFrame(w, h int) *Frame {
	return &Frame{W: w, H: h, JPEG: []byte{0xff, 0xd8, 0xff, 0xd9}}
}

func (f *Frame) Width() int  { return f.W }
func (f *Frame) Height() int { return f.H }

func (f *Frame) Encode() ([]byte, error) {
	return f.JPEG, nil
}

func (f *Frame) Close() error {
	f.closed = true
	return nil
}

func (f *Frame) Closed() bool {
	return f.closed
}

// Source replays Frames in order and reports vision.ErrUnavailable once they run out.
type Source struct {
	mu        sync.Mutex
	Frames    []vision.Frame
	Unopened  bool
	reads     int
	closeCall int
}

func (s *Source) Read() (vision.Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reads++
	if s.Unopened || len(s.Frames) == 0 {
		return nil, vision.ErrUnavailable
	}
	f := s.Frames[0]
	s.Frames = s.Frames[1:]
	return f, nil
}

func (s *Source) Available() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.Unopened
}

func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeCall++
	return nil
}

func (s *Source) Reads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

// Faces returns the same faces for every frame.
type Faces struct {
	Rects []image.Rectangle
	Err   error
}

func (f Faces) DetectFaces(vision.Frame) ([]image.Rectangle, error) {
	return f.Rects, f.Err
}

// Eyes returns Counts[i] eyes on the i-th call and the last entry afterwards.
type Eyes struct {
	Counts []int
	Err    error
	calls  int
}

func (e *Eyes) DetectEyes(vision.Frame, image.Rectangle) ([]image.Rectangle, error) {
	if e.Err != nil {
		return nil, e.Err
	}
	n := 0
	if len(e.Counts) > 0 {
		i := e.calls
		if i >= len(e.Counts) {
			i = len(e.Counts) - 1
		}
		n = e.Counts[i]
	}
	e.calls++
	return make([]image.Rectangle, n), nil
}

type Motion struct {
	Movement float64
	OK       bool
	Err      error
	Calls    int
}

func (m *Motion) Measure(vision.Frame, image.Rectangle) (float64, bool, error) {
	m.Calls++
	return m.Movement, m.OK, m.Err
}

// Landmarks returns Points for every frame.
type Landmarks struct {
	Points []vision.Landmark
	Err    error
	Calls  int
}

func (l *Landmarks) DetectLandmarks(context.Context, vision.Frame) ([]vision.Landmark, error) {
	l.Calls++
	return l.Points, l.Err
}

var ErrRender = errors.New("render failed")

// Renderer records overlays and returns the frame's own JPEG bytes.
type Renderer struct {
	mu       sync.Mutex
	Overlays []vision.Overlay
	Fail     bool
}

func (r *Renderer) Render(frame vision.Frame, overlay vision.Overlay) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Fail {
		return nil, ErrRender
	}
	r.Overlays = append(r.Overlays, overlay)
	return frame.Encode()
}
