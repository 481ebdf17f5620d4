package entity

import "time"

type EmotionSnapshot struct {
	Emotion    string
	Confidence float64
	LastUpdate time.Time
	History    []string
}
