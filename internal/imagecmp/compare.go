// internal/imagecmp/compare.go
package imagecmp

import (
	"fmt"
	"image"
)

// Compare computes the percentage difference between two images of the
// same kind and size: the sum of absolute per-channel differences over
// R, G, and B, normalized by the channel maximum (255) and the total
// channel count. 0 means identical; lower is more similar.
//
// Mismatched image kinds or sizes are input errors, reported before any
// pixel is touched. The result is symmetric in its arguments.
func Compare(a, b image.Image) (float64, error) {
	ma, mb := mode(a), mode(b)
	if ma != mb {
		return 0, &ModeMismatchError{A: ma, B: mb}
	}

	ab, bb := a.Bounds(), b.Bounds()
	if ab.Dx() != bb.Dx() || ab.Dy() != bb.Dy() {
		return 0, &SizeMismatchError{
			A: image.Pt(ab.Dx(), ab.Dy()),
			B: image.Pt(bb.Dx(), bb.Dy()),
		}
	}

	var total uint64
	for y := 0; y < ab.Dy(); y++ {
		for x := 0; x < ab.Dx(); x++ {
			ar, ag, abl, _ := a.At(ab.Min.X+x, ab.Min.Y+y).RGBA()
			br, bg, bbl, _ := b.At(bb.Min.X+x, bb.Min.Y+y).RGBA()

			total += absDiff(ar>>8, br>>8)
			total += absDiff(ag>>8, bg>>8)
			total += absDiff(abl>>8, bbl>>8)
		}
	}

	components := ab.Dx() * ab.Dy() * 3
	return (float64(total) / 255.0 * 100.0) / float64(components), nil
}

func absDiff(a, b uint32) uint64 {
	if a > b {
		return uint64(a - b)
	}
	return uint64(b - a)
}

// mode names the concrete pixel layout of an image. Go color models are
// function values and cannot be compared directly, so the concrete image
// type stands in for the color mode.
func mode(img image.Image) string {
	switch img.(type) {
	case *image.RGBA:
		return "RGBA"
	case *image.NRGBA:
		return "NRGBA"
	case *image.RGBA64:
		return "RGBA64"
	case *image.NRGBA64:
		return "NRGBA64"
	case *image.YCbCr:
		return "YCbCr"
	case *image.Gray:
		return "Gray"
	case *image.Gray16:
		return "Gray16"
	case *image.CMYK:
		return "CMYK"
	case *image.Paletted:
		return "Paletted"
	default:
		return fmt.Sprintf("%T", img)
	}
}
