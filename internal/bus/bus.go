// internal/bus/bus.go
package bus

import "context"

// Channel issues single-word register transactions against the device.
// Addresses are device byte offsets. Both calls are synchronous: they do
// not return until the transaction has completed on the wire.
type Channel interface {
	Read(ctx context.Context, addr uint32) (uint32, error)
	Write(ctx context.Context, addr uint32, value uint32) error
}
