package entity

const (
	MoodKindActivity = "activity"
	MoodKindEmotion  = "emotion"
)

// Mood is the view of the detected state handed to the assistant.
type Mood struct {
	Kind        string
	Status      string
	Label       string
	Confidence  float64
	Suggestions []string
}

// StatusProvider exposes the cached status body of the active mode without
// triggering any detection.
type StatusProvider interface {
	CurrentStatus() interface{}
}
