package liveness

type StatusResponse struct {
	Status             string   `json:"status"`
	Blinks             int      `json:"blinks"`
	FaceDirection      string   `json:"face_direction"`
	Activity           string   `json:"activity"`
	ActivityConfidence float64  `json:"activity_confidence"`
	Suggestions        []string `json:"suggestions"`
}
