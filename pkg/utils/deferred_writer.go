// Package utils holds small io helpers shared by the commands.
package utils

import (
	"bytes"
	"io"
	"sync"
)

// DeferredWriter holds everything written to it until Flush. It lets log
// output aimed at the terminal wait until an interactive screen has exited.
// Safe for concurrent use.
type DeferredWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

var _ io.Writer = (*DeferredWriter)(nil)

// Write appends p to the pending output.
func (d *DeferredWriter) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buf.Write(p)
}

// Pending returns the number of buffered bytes.
func (d *DeferredWriter) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buf.Len()
}

// Flush copies the pending output to w and empties the buffer.
func (d *DeferredWriter) Flush(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.buf.Len() == 0 {
		return nil
	}

	_, err := d.buf.WriteTo(w)
	return err
}
