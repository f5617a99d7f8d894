package img2ascii

import (
	"fmt"
	"html"
	"image"
	"strconv"
	"strings"

	"github.com/wbrown/img2ascii/imageutil"
)

// markupOutput writes an HTML document with one colored span per tile
// and one paragraph per row.
type markupOutput struct {
	sb     strings.Builder
	policy ColorPolicy
	font   FontDescriptor
}

func (o *markupOutput) Begin(size image.Point) error {
	style, weight := "normal", "normal"
	if o.font.Italic {
		style = "italic"
	}
	if o.font.Bold {
		weight = "bold"
	}
	o.sb.Reset()
	fmt.Fprintf(&o.sb,
		`<!DOCTYPE html><html><head><style>p {font-family: "%s", monospace;font-size: %spx;font-style: %s;font-weight: %s;}</style></head><body><p>`,
		html.EscapeString(o.font.Family), strconv.FormatFloat(o.font.Size, 'f', -1, 64), style, weight)
	return nil
}

func (o *markupOutput) Put(g Glyph, at image.Point, tile *TileStats) {
	if at.X == 0 && at.Y != 0 {
		o.sb.WriteString("</p><p>")
	}
	c := o.policy.Color(imageutil.Color{}, tile.AverageColor)
	fmt.Fprintf(&o.sb, `<span style="color:%s">%s</span>`,
		HexColor(c), html.EscapeString(string(g.Char)))
}

func (o *markupOutput) Finish() (string, error) {
	o.sb.WriteString("</p></body></html>")
	return o.sb.String(), nil
}

// NewMarkupConverter creates a Converter producing an HTML document
// styled with the alphabet's font. Each character takes its color from
// policy applied to the tile's average color.
func NewMarkupConverter(scorer Scorer, policy ColorPolicy, opts ...ConverterOption) *Converter[string] {
	font := scorer.Alphabet().Font()
	return NewConverter(scorer, func() Output[string] {
		return &markupOutput{policy: policy, font: font}
	}, false, opts...)
}
