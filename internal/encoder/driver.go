// internal/encoder/driver.go
package encoder

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/chiggs/oc-mkjpeg/internal/bus"
	"github.com/chiggs/oc-mkjpeg/internal/timing"
)

// Driver sequences one hardware JPEG encoder instance: quantizer
// programming, flow-controlled pixel streaming, and completion polling.
//
// A Driver owns its bus/timing/pins exclusively. All operations are
// strictly sequential; exactly one encode pass may be outstanding at a
// time.
type Driver struct {
	bus  bus.Channel
	clk  timing.Source
	pins Pins
	cfg  Config
}

// New creates a Driver over the given bus channel, timing source, and
// signal pins.
func New(ch bus.Channel, clk timing.Source, pins Pins, opts ...Option) *Driver {
	if ch == nil || clk == nil || pins == nil {
		panic("encoder: bus, timing source, and pins must all be non-nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Driver{
		bus:  ch,
		clk:  clk,
		pins: pins,
		cfg:  cfg,
	}
}

// Initialise resets the device and programs both quantizer tables. It
// must complete before the first Encode; tables written after an encode
// has started are ignored by the device.
//
// Any failed transaction aborts the sequence. There is no retry:
// correct quantizer contents are a precondition for every later encode.
func (d *Driver) Initialise(ctx context.Context) error {
	if err := d.pins.SetReset(ctx, true); err != nil {
		return fmt.Errorf("assert reset: %w", err)
	}
	for i := 0; i < d.cfg.ResetCycles; i++ {
		if err := d.clk.WaitEdge(ctx); err != nil {
			return fmt.Errorf("reset hold: %w", err)
		}
	}
	if err := d.pins.SetReset(ctx, false); err != nil {
		return fmt.Errorf("deassert reset: %w", err)
	}
	if err := d.clk.WaitEdge(ctx); err != nil {
		return fmt.Errorf("reset settle: %w", err)
	}

	d.logInfo("programming luminance quantizer")
	if err := d.programTable(ctx, QuantLumBase, d.cfg.Luminance); err != nil {
		return fmt.Errorf("program luminance table: %w", err)
	}

	d.logInfo("programming chrominance quantizer")
	if err := d.programTable(ctx, QuantChrBase, d.cfg.Chrominance); err != nil {
		return fmt.Errorf("program chrominance table: %w", err)
	}

	d.logInfo("encoder initialised")
	return nil
}

// programTable writes the 64 entries in ascending index order.
func (d *Driver) programTable(ctx context.Context, base uint32, t Table) error {
	for i, v := range t {
		if err := d.bus.Write(ctx, base+uint32(i)*quantStride, uint32(v)); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return nil
}

// Encode starts an encode pass and streams every pixel of img into the
// device's input queue in raster order (top row first, left to right).
//
// The write-enable strobe covers exactly one word: it is asserted with
// the word present, held while the queue reports almost-full, and
// deasserted once an edge samples the signal low. The almost-full line
// is re-read on every edge; the driver never advances while it holds.
func (d *Driver) Encode(ctx context.Context, img image.Image) error {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width < 1 || width > 0xFFFF || height < 1 || height > 0xFFFF {
		return &FrameSizeError{Width: width, Height: height}
	}

	if err := d.bus.Write(ctx, RegStart, ModeRGB|CtrlEnable); err != nil {
		return fmt.Errorf("start encode: %w", err)
	}

	// Frame geometry must be established after start and before any
	// pixel data.
	if err := d.bus.Write(ctx, RegImageSize, SizeWord(width, height)); err != nil {
		return fmt.Errorf("set image size: %w", err)
	}

	d.logDebug("streaming pixels", "width", width, "height", height)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			word := PackPixel(byte(r>>8), byte(g>>8), byte(bl>>8))

			if err := d.pushPixel(ctx, word); err != nil {
				return fmt.Errorf("pixel (%d,%d): %w", x-b.Min.X, y-b.Min.Y, err)
			}
		}
	}

	return nil
}

// pushPixel presents one word and pulses write-enable for it, stalling
// while the input queue reports almost-full.
func (d *Driver) pushPixel(ctx context.Context, word uint32) error {
	if err := d.pins.SetPixel(ctx, word); err != nil {
		return err
	}
	if err := d.pins.SetWriteEnable(ctx, true); err != nil {
		return err
	}

	for {
		if err := d.clk.WaitEdge(ctx); err != nil {
			return err
		}
		full, err := d.pins.AlmostFull(ctx)
		if err != nil {
			return err
		}
		if !full {
			break
		}
	}

	// One word per enable pulse: drop the strobe before the next word
	// is presented.
	return d.pins.SetWriteEnable(ctx, false)
}

// AwaitCompletion polls the status register until the device reports
// done, then reads and returns the output byte length.
//
// Done is strict equality against StatusDone; any other value keeps the
// poll alive. Without a configured completion timeout the poll is
// unbounded and a hung device blocks the caller until ctx is cancelled.
func (d *Driver) AwaitCompletion(ctx context.Context) (uint32, error) {
	d.logInfo("waiting for encoding to complete")

	start := time.Now()
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		status, err := d.bus.Read(ctx, RegStatus)
		if err != nil {
			return 0, fmt.Errorf("read status: %w", err)
		}
		if status == StatusDone {
			break
		}

		if d.cfg.CompletionTimeout > 0 {
			if elapsed := time.Since(start); elapsed > d.cfg.CompletionTimeout {
				return 0, &CompletionTimeoutError{
					Elapsed:    elapsed,
					LastStatus: status,
				}
			}
		}
	}

	length, err := d.bus.Read(ctx, RegLength)
	if err != nil {
		return 0, fmt.Errorf("read length: %w", err)
	}

	d.logInfo("encoding complete", "length", length)
	return length, nil
}

// Process runs one full encode pass: stream img, then block until the
// device reports done. Returns the output byte length.
func (d *Driver) Process(ctx context.Context, img image.Image) (uint32, error) {
	if err := d.Encode(ctx, img); err != nil {
		return 0, err
	}
	return d.AwaitCompletion(ctx)
}

func (d *Driver) logDebug(msg string, keysAndValues ...interface{}) {
	if d.cfg.Logger != nil {
		d.cfg.Logger.Debug(msg, keysAndValues...)
	}
}

func (d *Driver) logInfo(msg string, keysAndValues ...interface{}) {
	if d.cfg.Logger != nil {
		d.cfg.Logger.Info(msg, keysAndValues...)
	}
}
