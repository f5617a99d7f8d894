package img2ascii

import (
	"fmt"
	"strings"

	"github.com/wbrown/img2ascii/imageutil"
)

// ColorPolicy decides the output color of one pixel from the glyph
// pixel and the source image pixel under it.
type ColorPolicy interface {
	Color(glyph, source imageutil.Color) imageutil.Color
}

// PolicyKind names a ColorPolicy for configuration.
type PolicyKind int

const (
	PolicyDefault PolicyKind = iota
	PolicyImageForeground
	PolicyImageBackground
)

var policyNames = [...]string{
	PolicyDefault:         "default",
	PolicyImageForeground: "image-foreground",
	PolicyImageBackground: "image-background",
}

func (k PolicyKind) String() string {
	if k < 0 || int(k) >= len(policyNames) {
		return fmt.Sprintf("PolicyKind(%d)", int(k))
	}
	return policyNames[k]
}

// ParsePolicy resolves a policy kind by name.
func ParsePolicy(name string) (PolicyKind, error) {
	for i, n := range policyNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return PolicyKind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
}

// isInk reports whether a glyph pixel belongs to the character. Only
// pixels with all three channels below 255 count.
func isInk(c imageutil.Color) bool {
	return c.R != 255 && c.G != 255 && c.B != 255
}

func clampChannel(v, lo, hi int) uint8 {
	v = max(lo, min(v, hi))
	return uint8(min(v, 255))
}

// DefaultPolicy draws ink in Foreground and everything else in
// Background. With Blend set, ink is Foreground darkened by the glyph's
// own shade.
type DefaultPolicy struct {
	Background imageutil.Color
	Foreground imageutil.Color
	Blend      bool
}

func (p DefaultPolicy) Color(glyph, _ imageutil.Color) imageutil.Color {
	if !isInk(glyph) {
		return p.Background
	}
	if !p.Blend {
		return p.Foreground
	}
	fg := p.Foreground
	return imageutil.Color{
		R: clampChannel(int(fg.R)-int(glyph.R), 0, int(fg.R)+150),
		G: clampChannel(int(fg.G)-int(glyph.G), 0, int(fg.G)+150),
		B: clampChannel(int(fg.B)-int(glyph.B), 0, int(fg.B)+150),
		A: fg.A,
	}
}

// ImageForegroundPolicy paints ink in the source image color.
type ImageForegroundPolicy struct {
	Background imageutil.Color
}

func (p ImageForegroundPolicy) Color(glyph, source imageutil.Color) imageutil.Color {
	if isInk(glyph) {
		return source.Opaque()
	}
	return p.Background
}

// ImageBackgroundPolicy paints ink in Foreground and lets the source
// image show through elsewhere at a fixed opacity.
type ImageBackgroundPolicy struct {
	Foreground imageutil.Color
	opacity    float64
}

// NewImageBackgroundPolicy clamps opacity to [0, 1].
func NewImageBackgroundPolicy(foreground imageutil.Color, opacity float64) ImageBackgroundPolicy {
	return ImageBackgroundPolicy{
		Foreground: foreground,
		opacity:    max(0, min(opacity, 1)),
	}
}

// Opacity returns the clamped background opacity.
func (p ImageBackgroundPolicy) Opacity() float64 {
	return p.opacity
}

func (p ImageBackgroundPolicy) Color(glyph, source imageutil.Color) imageutil.Color {
	if isInk(glyph) {
		return p.Foreground.Opaque()
	}
	source.A = uint8(255 * p.opacity)
	return source
}
