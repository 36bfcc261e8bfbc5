// internal/encoder/errors.go
package encoder

import (
	"fmt"
	"time"
)

// FrameSizeError indicates a frame geometry the driver cannot express in
// the IMAGE_SIZE register. It is reported before any bus activity.
type FrameSizeError struct {
	Width  int
	Height int
}

func (e *FrameSizeError) Error() string {
	return fmt.Sprintf("frame %dx%d out of range: each dimension must be 1-65535",
		e.Width, e.Height)
}

// CompletionTimeoutError indicates that the configured completion deadline
// expired while the device still reported a non-done status.
type CompletionTimeoutError struct {
	Elapsed    time.Duration
	LastStatus uint32
}

func (e *CompletionTimeoutError) Error() string {
	return fmt.Sprintf("encode did not complete within %s: last status 0x%02X",
		e.Elapsed, e.LastStatus)
}
