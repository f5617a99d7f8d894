package img2ascii

import (
	"image"
	"strings"
)

// textOutput writes one character per tile and a line break before each
// row but the first.
type textOutput struct {
	sb strings.Builder
}

func (o *textOutput) Begin(size image.Point) error {
	o.sb.Reset()
	return nil
}

func (o *textOutput) Put(g Glyph, at image.Point, _ *TileStats) {
	if at.X == 0 && at.Y != 0 {
		o.sb.WriteByte('\n')
	}
	o.sb.WriteRune(g.Char)
}

func (o *textOutput) Finish() (string, error) {
	return o.sb.String(), nil
}

// NewTextConverter creates a Converter producing plain text.
func NewTextConverter(scorer Scorer, opts ...ConverterOption) *Converter[string] {
	return NewConverter(scorer, func() Output[string] {
		return &textOutput{}
	}, false, opts...)
}
