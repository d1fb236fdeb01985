package console

import "io"

// Writer adapts a Console to io.Writer.
type Writer struct {
	Console Console
}

// NewWriter returns an io.Writer emitting through c.
func NewWriter(c Console) *Writer {
	return &Writer{Console: c}
}

func (w *Writer) Write(p []byte) (int, error) {
	for i, b := range p {
		if err := w.Console.WriteByte(b); err != nil {
			return i, err
		}
	}
	return len(p), nil
}

var _ io.Writer = (*Writer)(nil)
