package testhelpers

import (
	"io"
	"strings"
	"sync/atomic"
	"testing"
)

// Writer forwards log lines to t.Log so that they only show up for failing tests.
type Writer struct {
	t    *testing.T
	done atomic.Bool
}

// NewWriter returns a Writer bound to t. Writing after t has finished panics, which points at a server or goroutine
// outliving its test.
func NewWriter(t *testing.T) io.Writer {
	w := &Writer{t: t, done: atomic.Bool{}}
	t.Cleanup(func() {
		w.done.Store(true)
	})
	return w
}

func (w *Writer) Write(p []byte) (int, error) {
	if w.done.Load() {
		panic("testhelpers: write after test completion, is the server shut down in t.Cleanup?")
	}
	if line := strings.TrimRight(string(p), "\n"); line != "" {
		w.t.Log(line)
	}
	return len(p), nil
}
