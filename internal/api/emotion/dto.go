package emotion

type StatusResponse struct {
	Emotion     string   `json:"emotion"`
	Confidence  float64  `json:"confidence"`
	Suggestions []string `json:"suggestions"`
}
