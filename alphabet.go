package img2ascii

import (
	"fmt"
	"image"
	"strings"

	"github.com/wbrown/img2ascii/imageutil"
)

// DefaultAlphabet is the printable ASCII range used when none is given.
const DefaultAlphabet = " !\"#$%&'()*+,-./0123456789:;<=>?@ABCDEFGHIJKLMNOPQRSTUVWXYZ[\\]^_`abcdefghijklmnopqrstuvwxyz{|}~"

// FontDescriptor names the font glyphs are rendered with. Markup output
// repeats it in its style block.
type FontDescriptor struct {
	Family string
	Size   float64
	Italic bool
	Bold   bool
}

// GlyphSource measures and rasterises single characters.
type GlyphSource interface {
	// Measure returns the natural size of r.
	Measure(r rune) (image.Point, error)
	// Render draws r in black on white, centred in a cell-sized buffer.
	Render(r rune, cell image.Point) (*imageutil.PixelBuffer, error)
	Descriptor() FontDescriptor
}

// Glyph is one alphabet character with the statistics of its rendering.
type Glyph struct {
	Char  rune
	Stats *TileStats
}

// Alphabet is the ordered set of glyphs a mosaic is drawn from. All
// glyphs share one cell size. An Alphabet is immutable once built.
type Alphabet struct {
	glyphs *orderedMap[rune, Glyph]
	list   []Glyph
	cell   image.Point
	font   FontDescriptor
}

// NewAlphabet renders every distinct character of chars with src. The
// cell is the largest measured width by the largest measured height.
func NewAlphabet(chars string, src GlyphSource) (*Alphabet, error) {
	runes := uniqueRunes(chars)
	if len(runes) == 0 {
		return nil, ErrEmptyAlphabet
	}

	var cell image.Point
	for _, r := range runes {
		size, err := src.Measure(r)
		if err != nil {
			return nil, fmt.Errorf("failed to measure %q: %w", r, err)
		}
		cell.X = max(cell.X, size.X)
		cell.Y = max(cell.Y, size.Y)
	}
	if cell.X <= 0 || cell.Y <= 0 {
		return nil, fmt.Errorf("%w: cell %dx%d", ErrInvalidTileSize, cell.X, cell.Y)
	}

	bitmaps := make([][]byte, len(runes))
	for i, r := range runes {
		pb, err := src.Render(r, cell)
		if err != nil {
			return nil, fmt.Errorf("failed to render %q: %w", r, err)
		}
		bitmaps[i] = pb.Pix
	}
	return newAlphabetFromBitmaps(src.Descriptor(), cell, runes, bitmaps)
}

// newAlphabetFromBitmaps rebuilds an alphabet from pre-rendered cells.
func newAlphabetFromBitmaps(desc FontDescriptor, cell image.Point, runes []rune, bitmaps [][]byte) (*Alphabet, error) {
	if len(runes) == 0 {
		return nil, ErrEmptyAlphabet
	}
	if len(bitmaps) != len(runes) {
		return nil, fmt.Errorf("%w: %d glyphs, %d bitmaps", imageutil.ErrSizeMismatch, len(runes), len(bitmaps))
	}
	a := &Alphabet{
		glyphs: newOrderedMap[rune, Glyph](),
		cell:   cell,
		font:   desc,
	}
	for i, r := range runes {
		stats, err := NewTileStats(bitmaps[i], cell.X, cell.Y)
		if err != nil {
			return nil, fmt.Errorf("glyph %q: %w", r, err)
		}
		a.glyphs.SetIfAbsent(r, Glyph{Char: r, Stats: stats})
	}
	a.list = a.glyphs.Values()
	return a, nil
}

func uniqueRunes(s string) []rune {
	seen := make(map[rune]bool)
	var out []rune
	for _, r := range s {
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}

// CellSize returns the common glyph cell size.
func (a *Alphabet) CellSize() image.Point {
	return a.cell
}

// Font returns the descriptor of the font the glyphs were rendered with.
func (a *Alphabet) Font() FontDescriptor {
	return a.font
}

// Len returns the number of distinct glyphs.
func (a *Alphabet) Len() int {
	if a == nil {
		return 0
	}
	return len(a.list)
}

// Glyphs returns the glyphs in alphabet order. The slice must not be
// modified.
func (a *Alphabet) Glyphs() []Glyph {
	return a.list
}

// Glyph looks up the glyph for r.
func (a *Alphabet) Glyph(r rune) (Glyph, bool) {
	return a.glyphs.Get(r)
}

// Chars returns the distinct characters in order.
func (a *Alphabet) Chars() string {
	var sb strings.Builder
	for _, r := range a.glyphs.Keys() {
		sb.WriteRune(r)
	}
	return sb.String()
}
