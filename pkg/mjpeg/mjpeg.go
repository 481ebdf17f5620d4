// Package mjpeg writes multipart/x-mixed-replace JPEG streams.
package mjpeg

import (
	"bufio"
	"fmt"
)

const Boundary = "frame"

// ContentType is the response content type matching the parts written by Writer.
const ContentType = "multipart/x-mixed-replace; boundary=" + Boundary

type Writer struct {
	w *bufio.Writer
}

func NewWriter(w *bufio.Writer) *Writer {
	return &Writer{w: w}
}

// WritePart writes one JPEG part and flushes it to the client. A flush error
// usually means the consumer went away.
func (m *Writer) WritePart(jpeg []byte) error {
	if _, err := fmt.Fprintf(m.w, "--%s\r\nContent-Type: image/jpeg\r\n\r\n", Boundary); err != nil {
		return err
	}
	if _, err := m.w.Write(jpeg); err != nil {
		return err
	}
	if _, err := m.w.WriteString("\r\n"); err != nil {
		return err
	}

	return m.w.Flush()
}
