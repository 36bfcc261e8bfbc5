// internal/encoder/tables.go
package encoder

// Table is a 64-entry quantization coefficient table in 8x8 block order.
type Table [64]byte

// DefaultLuminanceTable matches the quantizer ROM the core ships with.
var DefaultLuminanceTable = Table{
	0x10, 0x0B, 0x0C, 0x0E, 0x0C, 0x0A, 0x10, 0x0E,
	0x0D, 0x0E, 0x12, 0x11, 0x10, 0x13, 0x18, 0x28,
	0x1A, 0x18, 0x16, 0x16, 0x18, 0x31, 0x23, 0x25,
	0x1D, 0x28, 0x3A, 0x33, 0x3D, 0x3C, 0x39, 0x33,
	0x38, 0x37, 0x40, 0x48, 0x5C, 0x4E, 0x40, 0x44,
	0x57, 0x45, 0x37, 0x38, 0x50, 0x6D, 0x51, 0x57,
	0x5F, 0x62, 0x67, 0x68, 0x67, 0x3E, 0x4D, 0x71,
	0x79, 0x70, 0x64, 0x78, 0x5C, 0x65, 0x67, 0x63,
}

// DefaultChrominanceTable matches the quantizer ROM the core ships with.
var DefaultChrominanceTable = Table{
	0x11, 0x12, 0x12, 0x18, 0x15, 0x18, 0x2F, 0x1A,
	0x1A, 0x2F, 0x63, 0x42, 0x38, 0x42, 0x63, 0x63,
	0x63, 0x63, 0x63, 0x63, 0x63, 0x63, 0x63, 0x63,
	0x63, 0x63, 0x63, 0x63, 0x63, 0x63, 0x63, 0x63,
	0x63, 0x63, 0x63, 0x63, 0x63, 0x63, 0x63, 0x63,
	0x63, 0x63, 0x63, 0x63, 0x63, 0x63, 0x63, 0x63,
	0x63, 0x63, 0x63, 0x63, 0x63, 0x63, 0x63, 0x63,
	0x63, 0x63, 0x63, 0x63, 0x63, 0x63, 0x63, 0x63,
}
