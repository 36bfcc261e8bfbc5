// internal/encoder/pixel.go
package encoder

// PackPixel packs one RGB pixel into the 24-bit word the input queue
// expects: (blue<<16) | (green<<8) | red.
func PackPixel(r, g, b byte) uint32 {
	return uint32(b)<<16 | uint32(g)<<8 | uint32(r)
}

// SizeWord builds the IMAGE_SIZE register value for a width x height
// frame.
func SizeWord(width, height int) uint32 {
	return uint32(width)<<16 | uint32(height)
}
