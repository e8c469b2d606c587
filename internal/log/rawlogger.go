package log

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// RawLogger dumps rendered artifacts with optional file output.
type RawLogger interface {
	Log(name string, data []byte)
}

// rawLogger implements RawLogger with thread-safe log.
type rawLogger struct {
	w  io.Writer
	mu sync.Mutex
}

// NewRaw creates a new RawLogger. If writer is nil, returns a no-op logger.
func NewRaw(w io.Writer) RawLogger {
	return &rawLogger{w: w}
}

// Log writes a one-line banner with timestamp, name and size followed by the
// artifact text.
func (r *rawLogger) Log(name string, data []byte) {
	if len(data) == 0 {
		return
	}
	if r.w == nil {
		return
	}

	banner := fmt.Sprintf("%s ==> %s (%d bytes)\n",
		time.Now().Format("2006/01/02 15:04:05"),
		name,
		len(data))

	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = io.WriteString(r.w, banner)
	_, _ = r.w.Write(data)
	if data[len(data)-1] != '\n' {
		_, _ = io.WriteString(r.w, "\n")
	}
}
