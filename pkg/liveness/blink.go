// Package liveness implements the blink, head-turn and activity heuristics used to
// decide whether the person in front of the camera is live.
package liveness

import "time"

const (
	BlinkThreshold     = 3
	DirectionThreshold = 2
	minEventGap        = time.Second
)

// BlinkTracker counts blinks from per-face eye detections. An eye-occlusion frame
// only re-arms the tracker; the count itself never goes down.
type BlinkTracker struct {
	count     int
	lastBlink time.Time
	eyesOpen  bool
}

// NewBlinkTracker seeds the last-blink time with start, so no blink can be counted
// during the first second after start.
func NewBlinkTracker(start time.Time) *BlinkTracker {
	return &BlinkTracker{
		lastBlink: start,
		eyesOpen:  true,
	}
}

// ObserveEyes feeds the number of eyes found inside one face and returns the
// cumulative blink count.
func (b *BlinkTracker) ObserveEyes(now time.Time, eyes int) int {
	if eyes >= 2 {
		if b.eyesOpen && now.Sub(b.lastBlink) >= minEventGap {
			b.eyesOpen = false
			b.count++
			b.lastBlink = now
		}
	} else {
		b.eyesOpen = true
	}

	return b.count
}

func (b *BlinkTracker) Count() int {
	return b.count
}

func (b *BlinkTracker) EyesOpen() bool {
	return b.eyesOpen
}

func (b *BlinkTracker) LastBlink() time.Time {
	return b.lastBlink
}
