// internal/imgio/imgio.go
package imgio

import (
	"fmt"
	"image"
	"os"

	// Decoder registration for the formats the harness accepts.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
)

// Load decodes an image file (PNG, JPEG, GIF, or BMP) and reports the
// detected format.
func Load(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("imgio: open %s: %w", path, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("imgio: decode %s: %w", path, err)
	}
	return img, format, nil
}
