package hal

import (
	"bytes"
	"sync"
)

// LogWriter adapts a line Logger to io.Writer. Partial lines are buffered
// until a newline arrives.
func LogWriter(l Logger) *LineWriter {
	return &LineWriter{l: l}
}

type LineWriter struct {
	mu  sync.Mutex
	l   Logger
	buf []byte
}

func (w *LineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.l.WriteLineBytes(bytes.TrimRight(w.buf[:i], "\r"))
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}
