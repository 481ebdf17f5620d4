// Package emotion classifies facial expressions from face-mesh landmarks and
// smooths the per-frame labels over time.
package emotion

import (
	"errors"
	"math"

	"moodcam/pkg/vision"
)

// Face-mesh indices (468-point topology).
const (
	MouthLeft      = 61
	MouthRight     = 291
	UpperLip       = 13
	LowerLip       = 14
	LeftBrow       = 105
	RightBrow      = 334
	LeftEyeTop     = 159
	RightEyeTop    = 386
	MeshPointCount = 468
)

var ErrTooFewLandmarks = errors.New("not enough landmarks for a face mesh")

// Features are the scalar measurements the decision table works on. All distances
// are in normalized image coordinates.
type Features struct {
	SmileRatio      float64 // mouth width / mouth height
	EyebrowOffset   float64 // mean vertical gap between eyebrow and upper eyelid
	MouthHeight     float64
	CornerAsymmetry float64 // |left corner y - right corner y|
}

const minMouthHeight = 1e-3

func ExtractFeatures(points []vision.Landmark) (Features, error) {
	if len(points) <= RightEyeTop || len(points) <= MouthRight {
		return Features{}, ErrTooFewLandmarks
	}

	left, right := points[MouthLeft], points[MouthRight]
	upper, lower := points[UpperLip], points[LowerLip]

	mouthWidth := math.Hypot(right.X-left.X, right.Y-left.Y)
	mouthHeight := math.Abs(lower.Y - upper.Y)

	browGap := ((points[LeftEyeTop].Y - points[LeftBrow].Y) +
		(points[RightEyeTop].Y - points[RightBrow].Y)) / 2

	return Features{
		SmileRatio:      mouthWidth / math.Max(mouthHeight, minMouthHeight),
		EyebrowOffset:   browGap,
		MouthHeight:     mouthHeight,
		CornerAsymmetry: math.Abs(left.Y - right.Y),
	}, nil
}
