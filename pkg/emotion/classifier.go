package emotion

import "math"

type Label string

const (
	Happy     Label = "happy"
	Sad       Label = "sad"
	Surprised Label = "surprised"
	Angry     Label = "angry"
	Fearful   Label = "fearful"
	Neutral   Label = "neutral"
)

// NeutralConfidence is reported when no rule of the table matched.
const NeutralConfidence = 50.0

// Rule is one row of the decision table.
type Rule struct {
	Label      Label
	Match      func(Features) bool
	Confidence func(Features) float64
}

// DecisionTable is evaluated top to bottom and the first matching rule wins. The
// predicates overlap on purpose, so the order is part of the behavior.
var DecisionTable = []Rule{
	{
		Label: Surprised,
		Match: func(f Features) bool {
			return f.MouthHeight > 0.06 && f.EyebrowOffset > 0.045
		},
		Confidence: func(f Features) float64 {
			return f.MouthHeight / 0.1 * 100
		},
	},
	{
		Label: Happy,
		Match: func(f Features) bool {
			return f.SmileRatio > 4.5 && f.MouthHeight > 0.01
		},
		Confidence: func(f Features) float64 {
			return f.SmileRatio / 7 * 100
		},
	},
	{
		Label: Fearful,
		Match: func(f Features) bool {
			return f.EyebrowOffset > 0.05 && f.MouthHeight > 0.025
		},
		Confidence: func(f Features) float64 {
			return f.EyebrowOffset / 0.08 * 100
		},
	},
	{
		Label: Angry,
		Match: func(f Features) bool {
			return f.EyebrowOffset < 0.025
		},
		Confidence: func(f Features) float64 {
			return (0.04 - f.EyebrowOffset) / 0.04 * 100
		},
	},
	{
		Label: Sad,
		Match: func(f Features) bool {
			return f.CornerAsymmetry > 0.012
		},
		Confidence: func(f Features) float64 {
			return f.CornerAsymmetry / 0.03 * 100
		},
	},
}

// Classify runs the decision table and returns the raw label and its confidence
// in [0,100].
func Classify(f Features) (Label, float64) {
	for _, rule := range DecisionTable {
		if rule.Match(f) {
			return rule.Label, clamp(rule.Confidence(f))
		}
	}
	return Neutral, NeutralConfidence
}

func clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(v, 100))
}
