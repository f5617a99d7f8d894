package img2ascii

import (
	"image"

	"github.com/wbrown/img2ascii/imageutil"
)

// imageOutput redraws every tile as its glyph, colored pixel by pixel by
// a ColorPolicy. Tiles never overlap, so Put may run concurrently.
type imageOutput struct {
	policy ColorPolicy
	buf    *imageutil.PixelBuffer
}

func (o *imageOutput) Begin(size image.Point) error {
	o.buf = imageutil.NewPixelBuffer(size.X, size.Y)
	return nil
}

func (o *imageOutput) Put(g Glyph, at image.Point, tile *TileStats) {
	cell := g.Stats.Size()
	for ly := 0; ly < cell.Y; ly++ {
		for lx := 0; lx < cell.X; lx++ {
			c := o.policy.Color(g.Stats.PixelAt(lx, ly), tile.PixelAt(lx, ly))
			o.buf.SetColor(at.X+lx, at.Y+ly, c)
		}
	}
}

func (o *imageOutput) Finish() (*imageutil.PixelBuffer, error) {
	return o.buf, nil
}

// NewImageConverter creates a Converter producing a raster image the
// size of the source truncated to whole cells. Tiles are scored in
// parallel by default.
func NewImageConverter(scorer Scorer, policy ColorPolicy, opts ...ConverterOption) *Converter[*imageutil.PixelBuffer] {
	return NewConverter(scorer, func() Output[*imageutil.PixelBuffer] {
		return &imageOutput{policy: policy}
	}, true, opts...)
}
