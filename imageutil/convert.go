package imageutil

import "image"

// Luma returns the BT.601 luminance of c scaled to [0, 1]:
// Y = (0.299*R + 0.587*G + 0.114*B) / 255.
func Luma(c Color) float64 {
	return (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255
}

// Gray is the byte grayscale used by the pixel-difference metrics:
// 0.21*R + 0.71*G + 0.071*B, truncated.
func Gray(c Color) uint8 {
	v := 0.21*float64(c.R) + 0.71*float64(c.G) + 0.071*float64(c.B)
	if v > 255 {
		v = 255
	}
	return uint8(v)
}

// ToGrayscale converts a buffer to grayscale using the integer BT.601
// formula, rounded.
func ToGrayscale(pb *PixelBuffer) *image.Gray {
	gray := image.NewGray(pb.Bounds())

	for y := 0; y < pb.Height; y++ {
		for x := 0; x < pb.Width; x++ {
			c := pb.ColorAt(x, y)
			lum := (299*int(c.R) + 587*int(c.G) + 114*int(c.B) + 500) / 1000
			if lum > 255 {
				lum = 255
			}
			gray.Pix[y*gray.Stride+x] = uint8(lum)
		}
	}

	return gray
}

// GrayPlane returns Gray for every pixel, row-major.
func GrayPlane(pb *PixelBuffer) []uint8 {
	out := make([]uint8, pb.Width*pb.Height)
	for i := range out {
		p := pb.Pix[i*BytesPerPixel:]
		out[i] = Gray(Color{B: p[0], G: p[1], R: p[2], A: p[3]})
	}
	return out
}
