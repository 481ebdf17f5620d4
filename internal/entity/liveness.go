package entity

import "time"

type LivenessSnapshot struct {
	Status             string
	Blinks             int
	LastBlink          time.Time
	EyesOpen           bool
	FaceDirection      string
	LatchedDirection   string
	DirectionChanges   int
	LastDirectionShift time.Time
	Activity           string
	ActivityConfidence float64
}
