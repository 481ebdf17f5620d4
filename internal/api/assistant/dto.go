package assistant

type AskRequest struct {
	Question string `json:"question" validate:"max=4000"`
}

type AskResponse struct {
	Success     bool     `json:"success"`
	Response    string   `json:"response"`
	Activity    string   `json:"activity,omitempty"`
	Emotion     string   `json:"emotion,omitempty"`
	Confidence  *float64 `json:"confidence,omitempty"`
	Suggestions []string `json:"suggestions"`
}

type AskFailure struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
