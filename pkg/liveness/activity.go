package liveness

import (
	"math"
	"time"
)

type Activity string

const (
	ActivityActive  Activity = "active"
	ActivityHappy   Activity = "happy"
	ActivityNeutral Activity = "neutral"
	ActivityCalm    Activity = "calm"
)

// ActivityCropHeight is the height every face crop is rescaled to before diffing.
const ActivityCropHeight = 100

const activityInterval = time.Second

// ClassifyMovement maps the mean absolute pixel difference between two face crops
// to an activity band and a confidence in [0,100].
func ClassifyMovement(movement float64) (Activity, float64) {
	switch {
	case movement > 30:
		return ActivityActive, clampConfidence(movement / 50 * 100)
	case movement > 15:
		return ActivityHappy, clampConfidence(movement / 30 * 100)
	case movement > 5:
		return ActivityNeutral, clampConfidence(movement / 15 * 100)
	default:
		return ActivityCalm, clampConfidence((5 - movement) / 5 * 100)
	}
}

func clampConfidence(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(v, 100))
}

// ActivityTracker caches the activity label and rate-limits measurements to one
// per second.
type ActivityTracker struct {
	label      Activity
	confidence float64
	lastRun    time.Time
}

func NewActivityTracker(start time.Time) *ActivityTracker {
	return &ActivityTracker{
		label:   ActivityNeutral,
		lastRun: start,
	}
}

// Due reports whether a new measurement should be taken.
func (a *ActivityTracker) Due(now time.Time) bool {
	return now.Sub(a.lastRun) >= activityInterval
}

// Record stores a measurement taken on a frame with a face. When measured is false
// only the rate-limit clock advances, as happens on the very first crop.
func (a *ActivityTracker) Record(now time.Time, movement float64, measured bool) (Activity, float64) {
	if measured {
		a.label, a.confidence = ClassifyMovement(movement)
	}
	a.lastRun = now

	return a.label, a.confidence
}

func (a *ActivityTracker) Current() (Activity, float64) {
	return a.label, a.confidence
}
