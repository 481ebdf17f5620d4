package liveness

import (
	"image"
	"time"
)

type Direction string

const (
	DirectionLeft   Direction = "left"
	DirectionCenter Direction = "center"
	DirectionRight  Direction = "right"
)

// DirectionDeadZone is the horizontal distance in pixels from the frame center
// inside which a face counts as centered.
const DirectionDeadZone = 50

// ClassifyDirection compares the horizontal center of face with the frame center.
func ClassifyDirection(face image.Rectangle, frameWidth int) Direction {
	faceCenter := face.Min.X + face.Dx()/2
	frameCenter := frameWidth / 2

	switch {
	case faceCenter < frameCenter-DirectionDeadZone:
		return DirectionLeft
	case faceCenter > frameCenter+DirectionDeadZone:
		return DirectionRight
	default:
		return DirectionCenter
	}
}

// DirectionTracker counts head turns. A turn is counted when the classified
// direction differs from the latched one and at least a second passed since the
// previous latch change.
type DirectionTracker struct {
	current    Direction
	latched    Direction
	changes    int
	lastChange time.Time
}

func NewDirectionTracker(start time.Time) *DirectionTracker {
	return &DirectionTracker{
		current:    DirectionCenter,
		latched:    DirectionCenter,
		lastChange: start,
	}
}

// Observe records a newly classified direction and returns the change count and
// the latched direction.
func (d *DirectionTracker) Observe(now time.Time, dir Direction) (int, Direction) {
	if dir != d.latched && now.Sub(d.lastChange) >= minEventGap {
		d.changes++
		d.lastChange = now
		d.latched = dir
	}
	d.current = dir

	return d.changes, d.latched
}

func (d *DirectionTracker) Changes() int {
	return d.changes
}

// Current is the direction of the most recent face, latched or not.
func (d *DirectionTracker) Current() Direction {
	return d.current
}

func (d *DirectionTracker) Latched() Direction {
	return d.latched
}

func (d *DirectionTracker) LastChange() time.Time {
	return d.lastChange
}
