package imageutil

import (
	"image"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// Interpolation specifies the interpolation method for resizing.
type Interpolation int

const (
	// InterpolationArea uses Catmull-Rom, good for both up and down scaling.
	InterpolationArea Interpolation = iota

	// InterpolationLinear uses bilinear interpolation.
	InterpolationLinear

	// InterpolationNearest uses nearest-neighbor interpolation.
	// Fastest but lowest quality.
	InterpolationNearest
)

func (interp Interpolation) scaler() draw.Scaler {
	switch interp {
	case InterpolationLinear:
		return draw.BiLinear
	case InterpolationNearest:
		return draw.NearestNeighbor
	default:
		return draw.CatmullRom
	}
}

// Resize resizes an image to exactly width x height.
func Resize(img image.Image, width, height int, interp Interpolation) *PixelBuffer {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	interp.scaler().Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return FromImage(dst)
}

// FitWidth scales img to the given width with a Lanczos filter, keeping
// the aspect ratio. Images already that wide, and non-positive widths,
// are normalised without scaling.
func FitWidth(img image.Image, width int) *PixelBuffer {
	if width <= 0 || img.Bounds().Dx() == width {
		return FromImage(img)
	}
	return FromImage(imaging.Resize(img, width, 0, imaging.Lanczos))
}
