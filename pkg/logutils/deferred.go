package logutils

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// DefaultDeferredLimit caps how much log output a Deferred writer holds.
const DefaultDeferredLimit = 1 << 20

// Deferred buffers log lines in memory until Flush is called. It lets a
// TUI keep console logging without drawing over the screen. Writes beyond
// the limit are dropped and reported on Flush. Safe for concurrent use.
type Deferred struct {
	mu      sync.Mutex
	buf     bytes.Buffer
	limit   int
	dropped int
}

// NewDeferred returns a Deferred holding at most limit bytes. A limit <= 0
// uses DefaultDeferredLimit.
func NewDeferred(limit int) *Deferred {
	if limit <= 0 {
		limit = DefaultDeferredLimit
	}
	return &Deferred{limit: limit}
}

// Write stores p, or counts it as dropped when the buffer is full.
func (d *Deferred) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.buf.Len()+len(p) > d.limit {
		d.dropped++
		return len(p), nil
	}
	return d.buf.Write(p)
}

// Flush writes all buffered data to w and clears the buffer.
func (d *Deferred) Flush(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.buf.Len() > 0 {
		if _, err := d.buf.WriteTo(w); err != nil {
			return err
		}
	}
	if d.dropped > 0 {
		_, err := fmt.Fprintf(w, "%d log line(s) dropped\n", d.dropped)
		d.dropped = 0
		return err
	}
	return nil
}
