package img2ascii

import (
	"image"
	"strings"

	"github.com/muesli/termenv"
	"github.com/wbrown/img2ascii/imageutil"
)

// ansiReset clears all SGR attributes.
const ansiReset = termenv.CSI + termenv.ResetSeq + "m"

// ansiOutput writes one styled character per tile for display in a
// terminal. Colors are degraded to what profile supports; the Ascii
// profile produces plain text.
type ansiOutput struct {
	sb      strings.Builder
	policy  ColorPolicy
	profile termenv.Profile
}

func (o *ansiOutput) Begin(size image.Point) error {
	o.sb.Reset()
	return nil
}

func (o *ansiOutput) Put(g Glyph, at image.Point, tile *TileStats) {
	if at.X == 0 && at.Y != 0 {
		o.endRow()
		o.sb.WriteByte('\n')
	}
	c := o.policy.Color(imageutil.Color{}, tile.AverageColor)
	s := o.profile.String(string(g.Char)).Foreground(o.profile.Color(HexColor(c)))
	o.sb.WriteString(s.String())
}

func (o *ansiOutput) endRow() {
	if o.profile != termenv.Ascii {
		o.sb.WriteString(ansiReset)
	}
}

func (o *ansiOutput) Finish() (string, error) {
	if o.sb.Len() > 0 {
		o.endRow()
	}
	return o.sb.String(), nil
}

// NewANSIConverter creates a Converter producing terminal text colored
// like NewMarkupConverter, using escape sequences for profile.
func NewANSIConverter(scorer Scorer, policy ColorPolicy, profile termenv.Profile, opts ...ConverterOption) *Converter[string] {
	return NewConverter(scorer, func() Output[string] {
		return &ansiOutput{policy: policy, profile: profile}
	}, false, opts...)
}
