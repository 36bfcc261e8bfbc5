// internal/encoder/regmap.go
package encoder

// Register map of the encoder core, byte offsets on the peripheral bus.
// Must match the hardware bit-exactly.
const (
	RegStart     uint32 = 0x00 // bit0 = enable, bits1-2 = input mode
	RegImageSize uint32 = 0x04 // (width<<16) | height
	RegStatus    uint32 = 0x0C // bit1 = done
	RegLength    uint32 = 0x14 // output byte length, valid after done

	QuantLumBase uint32 = 0x100 // 64 luminance entries, 4-byte stride
	QuantChrBase uint32 = 0x200 // 64 chrominance entries, 4-byte stride
)

const (
	// ModeRGB selects 24-bit RGB input in the START register.
	ModeRGB uint32 = 0x3 << 1
	// CtrlEnable starts an encode pass.
	CtrlEnable uint32 = 0x1
	// StatusDone is the exact STATUS value signalling completion.
	// The check is strict equality, not a bit test: 0x03 is not done.
	StatusDone uint32 = 0x02

	quantStride uint32 = 4
)
