package imageutil

import "math"

// CreateSolidImage creates a buffer filled with one opaque color.
func CreateSolidImage(width, height int, c Color) *PixelBuffer {
	pb := NewPixelBuffer(width, height)
	pb.Fill(c.Opaque())
	return pb
}

// CreateGradientImage creates a horizontal black-to-white gradient.
func CreateGradientImage(width, height int) *PixelBuffer {
	pb := NewPixelBuffer(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(0)
			if width > 1 {
				v = uint8(255 * x / (width - 1))
			}
			pb.SetColor(x, y, Color{R: v, G: v, B: v, A: 255})
		}
	}
	return pb
}

// CreateCheckerboardImage creates a black and white checkerboard.
func CreateCheckerboardImage(width, height, squareSize int) *PixelBuffer {
	pb := NewPixelBuffer(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if ((x/squareSize)+(y/squareSize))%2 == 0 {
				pb.SetColor(x, y, Color{R: 255, G: 255, B: 255, A: 255})
			} else {
				pb.SetColor(x, y, Color{A: 255})
			}
		}
	}
	return pb
}

// CreateColorBarsImage creates a color bars test pattern.
func CreateColorBarsImage(width, height int) *PixelBuffer {
	pb := NewPixelBuffer(width, height)
	colors := []Color{
		{255, 255, 255, 255}, // White
		{255, 255, 0, 255},   // Yellow
		{0, 255, 255, 255},   // Cyan
		{0, 255, 0, 255},     // Green
		{255, 0, 255, 255},   // Magenta
		{255, 0, 0, 255},     // Red
		{0, 0, 255, 255},     // Blue
		{0, 0, 0, 255},       // Black
	}

	barWidth := max(width/len(colors), 1)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := min(x/barWidth, len(colors)-1)
			pb.SetColor(x, y, colors[idx])
		}
	}
	return pb
}

// CalculateMSE calculates the per-channel mean squared error between two
// buffers of equal size. Mismatched sizes return +Inf.
func CalculateMSE(a, b *PixelBuffer) float64 {
	if a.Width != b.Width || a.Height != b.Height {
		return math.Inf(1)
	}
	if len(a.Pix) == 0 {
		return 0
	}
	var sum float64
	for i := range a.Pix {
		d := float64(a.Pix[i]) - float64(b.Pix[i])
		sum += d * d
	}
	return sum / float64(len(a.Pix))
}
