// internal/bus/modbus/client.go
package modbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goburrow/modbus"

	"github.com/chiggs/oc-mkjpeg/internal/bus"
)

// Client reaches the encoder through a Modbus TCP register bridge. It
// implements both bus.Channel and the driver's signal pins.
//
// The bridge maps each 32-bit device register onto two consecutive
// big-endian holding registers at modbus address offset/2. The pixel
// data word lives at a configured holding-register base, write-enable
// and reset are coils, and almost-full is a discrete input.
type Client struct {
	handler *modbus.TCPClientHandler
	mb      modbus.Client
	cfg     Config
}

// Config is the bridge transport and signal-mapping configuration.
type Config struct {
	Endpoint string
	UnitID   uint8
	Timeout  time.Duration

	PixelDataBase   uint16 // holding registers, 2 consecutive
	WriteEnableCoil uint16
	ResetCoil       uint16
	AlmostFullInput uint16 // discrete input
}

// New creates a connected bridge client.
func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("modbus bridge: endpoint required")
	}

	handler := modbus.NewTCPClientHandler(cfg.Endpoint)
	handler.SlaveId = cfg.UnitID
	handler.Timeout = cfg.Timeout

	if err := handler.Connect(); err != nil {
		return nil, fmt.Errorf("modbus bridge: connect %s: %w", cfg.Endpoint, err)
	}

	return &Client{
		handler: handler,
		mb:      modbus.NewClient(handler),
		cfg:     cfg,
	}, nil
}

// Close closes the TCP connection.
func (c *Client) Close() error {
	if c == nil || c.handler == nil {
		return nil
	}
	return c.handler.Close()
}

// ---- bus.Channel ----

func (c *Client) Read(ctx context.Context, addr uint32) (uint32, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	res, err := c.mb.ReadHoldingRegisters(regAddr(addr), 2)
	if err != nil {
		return 0, &bus.TransactionError{Op: "read", Addr: addr, Err: err}
	}
	if len(res) != 4 {
		return 0, &bus.TransactionError{
			Op:   "read",
			Addr: addr,
			Err:  fmt.Errorf("short response: %d bytes", len(res)),
		}
	}
	return joinWord(res), nil
}

func (c *Client) Write(ctx context.Context, addr uint32, value uint32) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := c.mb.WriteMultipleRegisters(regAddr(addr), 2, splitWord(value)); err != nil {
		return &bus.TransactionError{Op: "write", Addr: addr, Err: err}
	}
	return nil
}

// ---- encoder.Pins ----

func (c *Client) SetReset(ctx context.Context, asserted bool) error {
	return c.writeCoil(ctx, c.cfg.ResetCoil, asserted)
}

func (c *Client) SetPixel(ctx context.Context, word uint32) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := c.mb.WriteMultipleRegisters(c.cfg.PixelDataBase, 2, splitWord(word)); err != nil {
		return &bus.TransactionError{
			Op:   "write-pixel",
			Addr: uint32(c.cfg.PixelDataBase),
			Err:  err,
		}
	}
	return nil
}

func (c *Client) SetWriteEnable(ctx context.Context, asserted bool) error {
	return c.writeCoil(ctx, c.cfg.WriteEnableCoil, asserted)
}

func (c *Client) AlmostFull(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	res, err := c.mb.ReadDiscreteInputs(c.cfg.AlmostFullInput, 1)
	if err != nil {
		return false, &bus.TransactionError{
			Op:   "read-almost-full",
			Addr: uint32(c.cfg.AlmostFullInput),
			Err:  err,
		}
	}
	if len(res) < 1 {
		return false, &bus.TransactionError{
			Op:   "read-almost-full",
			Addr: uint32(c.cfg.AlmostFullInput),
			Err:  errors.New("empty response"),
		}
	}
	return res[0]&0x01 != 0, nil
}

func (c *Client) writeCoil(ctx context.Context, coil uint16, on bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	value := uint16(0x0000)
	if on {
		value = 0xFF00
	}
	if _, err := c.mb.WriteSingleCoil(coil, value); err != nil {
		return &bus.TransactionError{Op: "write-coil", Addr: uint32(coil), Err: err}
	}
	return nil
}

// ---- helpers (pure geometry) ----

// regAddr maps a device byte offset to the bridge's 16-bit register
// index.
func regAddr(addr uint32) uint16 {
	return uint16(addr / 2)
}

// splitWord lays a 32-bit word out as two big-endian registers, high
// word first.
func splitWord(v uint32) []byte {
	return []byte{
		byte(v >> 24), byte(v >> 16),
		byte(v >> 8), byte(v),
	}
}

// joinWord is the inverse of splitWord.
func joinWord(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}
