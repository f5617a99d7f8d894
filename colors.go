package img2ascii

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/wbrown/img2ascii/imageutil"
)

// ParseHexColor parses "#rgb" or "#rrggbb" into an opaque color.
func ParseHexColor(s string) (imageutil.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return imageutil.Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return imageutil.Color{R: r, G: g, B: b, A: 255}, nil
}

// HexColor formats the RGB channels of c as "#rrggbb".
func HexColor(c imageutil.Color) string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}
