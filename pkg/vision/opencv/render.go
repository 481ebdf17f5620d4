package opencv

import (
	"image"

	"gocv.io/x/gocv"

	"moodcam/pkg/vision"
)

const (
	textOriginX    = 10
	textOriginY    = 30
	textLineHeight = 30
	textScale      = 0.7
	textThickness  = 2
	landmarkRadius = 1
)

// Renderer draws overlay text and landmark markers onto the frame and encodes it
// as JPEG. The frame itself is modified.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) Render(frame vision.Frame, overlay vision.Overlay) ([]byte, error) {
	mf, err := matOf(frame)
	if err != nil {
		return nil, err
	}

	for _, p := range overlay.Landmarks {
		center := image.Pt(int(p.X*float64(mf.Width())), int(p.Y*float64(mf.Height())))
		gocv.Circle(&mf.mat, center, landmarkRadius, overlay.Color, -1)
	}

	for i, line := range overlay.Lines {
		origin := image.Pt(textOriginX, textOriginY+i*textLineHeight)
		gocv.PutText(&mf.mat, line, origin, gocv.FontHersheySimplex, textScale, overlay.Color, textThickness)
	}

	return encodeJPEG(mf.mat)
}
