// internal/imagecmp/errors.go
package imagecmp

import (
	"fmt"
	"image"
)

// ModeMismatchError indicates the two images use different pixel layouts.
type ModeMismatchError struct {
	A string
	B string
}

func (e *ModeMismatchError) Error() string {
	return fmt.Sprintf("different kinds of images: %s vs %s", e.A, e.B)
}

// SizeMismatchError indicates the two images have different dimensions.
type SizeMismatchError struct {
	A image.Point
	B image.Point
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("different sizes: %dx%d vs %dx%d", e.A.X, e.A.Y, e.B.X, e.B.Y)
}
