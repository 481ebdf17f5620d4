package emotion

import (
	"math"
	"time"
)

// SmoothingWindow bounds how often the visible emotion can change.
const SmoothingWindow = 500 * time.Millisecond

const confidenceStep = 10.0

// Smoother turns noisy per-frame labels into a stable emotion. Every observation is
// recorded in the history, but the visible label and confidence move at most once
// per SmoothingWindow.
type Smoother struct {
	history    History
	label      Label
	confidence float64
	lastUpdate time.Time
}

func NewSmoother() *Smoother {
	return &Smoother{label: Neutral}
}

// Observe records a raw classification and reports whether the smoothed state was
// updated.
func (s *Smoother) Observe(now time.Time, raw Label, rawConfidence float64) bool {
	s.history.Push(raw)

	if !s.lastUpdate.IsZero() && now.Sub(s.lastUpdate) < SmoothingWindow {
		return false
	}

	mode := s.history.Mode()
	if mode == s.label {
		s.confidence = math.Min(s.confidence+confidenceStep, 100)
	} else {
		s.label = mode
		s.confidence = clamp(rawConfidence)
	}
	s.lastUpdate = now

	return true
}

func (s *Smoother) Current() (Label, float64) {
	return s.label, s.confidence
}

func (s *Smoother) LastUpdate() time.Time {
	return s.lastUpdate
}

func (s *Smoother) History() []Label {
	return s.history.Labels()
}
