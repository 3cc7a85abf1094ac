// Package streaming writes download responses to clients that may stall.
package streaming

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"
)

// ErrWriteTimeout indicates a write operation timed out.
var ErrWriteTimeout = errors.New("write timeout")

// TimeoutWriter wraps an io.Writer and refreshes a write deadline before each
// write when the destination is an http.ResponseWriter. A write that misses
// its deadline returns an error wrapping ErrWriteTimeout.
type TimeoutWriter struct {
	dst          io.Writer
	rc           *http.ResponseController
	timeout      time.Duration
	logger       *slog.Logger
	bytesWritten int64
}

// NewTimeoutWriter creates a new timeout-aware writer. Extra log attributes
// (for example the request ID and file name) are attached to every log line.
func NewTimeoutWriter(dst io.Writer, timeout time.Duration, logger *slog.Logger, attrs ...any) *TimeoutWriter {
	tw := &TimeoutWriter{
		dst:     dst,
		timeout: timeout,
		logger:  logger.With(attrs...),
	}
	if rw, ok := dst.(http.ResponseWriter); ok {
		tw.rc = http.NewResponseController(rw)
	}
	return tw
}

// Write writes p to the underlying writer under a fresh deadline.
func (tw *TimeoutWriter) Write(p []byte) (int, error) {
	if tw.rc != nil && tw.timeout > 0 {
		if err := tw.rc.SetWriteDeadline(time.Now().Add(tw.timeout)); err != nil {
			// httptest recorders and some wrappers cannot carry deadlines
			tw.logger.Debug("failed to set write deadline", "error", err)
		}
	}

	n, err := tw.dst.Write(p)
	tw.bytesWritten += int64(n)

	if err != nil && isTimeoutError(err) {
		tw.logger.Warn("slow client detected - write timeout",
			"timeout", tw.timeout,
			"bytes_written", tw.bytesWritten,
			"error", err)
		return n, fmt.Errorf("%w: %v", ErrWriteTimeout, err)
	}

	return n, err
}

// ReadFrom hides any io.ReaderFrom on the destination so that io.Copy goes
// through Write and every chunk gets a deadline.
func (tw *TimeoutWriter) ReadFrom(r io.Reader) (int64, error) {
	return io.Copy(struct{ io.Writer }{tw}, r)
}

// BytesWritten returns the total number of bytes written successfully.
func (tw *TimeoutWriter) BytesWritten() int64 {
	return tw.bytesWritten
}

func isTimeoutError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, os.ErrDeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var te interface{ Timeout() bool }
	if errors.As(err, &te) && te.Timeout() {
		return true
	}

	msg := err.Error()
	return strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline")
}
