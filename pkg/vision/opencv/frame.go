// Package opencv implements the vision contracts on top of gocv.
package opencv

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"moodcam/pkg/vision"
)

type matFrame struct {
	mat gocv.Mat
}

func newFrame(mat gocv.Mat) *matFrame {
	return &matFrame{mat: mat}
}

func (f *matFrame) Width() int {
	return f.mat.Cols()
}

func (f *matFrame) Height() int {
	return f.mat.Rows()
}

func (f *matFrame) Encode() ([]byte, error) {
	return encodeJPEG(f.mat)
}

func (f *matFrame) Close() error {
	return f.mat.Close()
}

func (f *matFrame) bounds() image.Rectangle {
	return image.Rect(0, 0, f.mat.Cols(), f.mat.Rows())
}

func matOf(frame vision.Frame) (*matFrame, error) {
	mf, ok := frame.(*matFrame)
	if !ok {
		return nil, fmt.Errorf("unsupported frame type %T", frame)
	}
	return mf, nil
}

func encodeJPEG(mat gocv.Mat) ([]byte, error) {
	buf, err := gocv.IMEncode(gocv.JPEGFileExt, mat)
	if err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	defer buf.Close()

	out := make([]byte, buf.Len())
	copy(out, buf.GetBytes())
	return out, nil
}

func grayOf(mat gocv.Mat) gocv.Mat {
	gray := gocv.NewMat()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)
	return gray
}
