// internal/imgio/convert.go
package imgio

import (
	"image"
	"image/draw"
)

// ToRGBA converts an image to the RGBA layout. Source and re-decoded
// output images arrive in whatever layout their decoder produced;
// converting both sides puts them in one mode before comparison.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}
