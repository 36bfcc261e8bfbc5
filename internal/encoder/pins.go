// internal/encoder/pins.go
package encoder

import "context"

// Pins drives the device-side signal lines that are not register mapped:
// the reset line, the pixel data word, the write-enable strobe, and the
// almost-full flow-control input.
//
// Implementations that reach the device through a bridge turn each call
// into a bus transaction, so every method carries a context and can fail.
// AlmostFull must sample the live signal on every call; callers rely on a
// fresh read per timing edge and never cache the value.
type Pins interface {
	SetReset(ctx context.Context, asserted bool) error
	SetPixel(ctx context.Context, word uint32) error
	SetWriteEnable(ctx context.Context, asserted bool) error
	AlmostFull(ctx context.Context) (bool, error)
}
