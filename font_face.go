package img2ascii

import (
	"fmt"
	"image"
	"image/draw"
	"os"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/wbrown/img2ascii/imageutil"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultFontSize is the point size used when a descriptor leaves it
// unset.
const DefaultFontSize = 12

// FaceSource renders glyphs from any font.Face. Faces are not safe for
// concurrent use, so every call is serialised.
type FaceSource struct {
	mu   sync.Mutex
	face font.Face
	desc FontDescriptor
}

// NewFaceSource wraps face. desc is reported back by Descriptor.
func NewFaceSource(face font.Face, desc FontDescriptor) *FaceSource {
	return &FaceSource{face: face, desc: desc}
}

// LoadTrueType loads a .ttf file at desc.Size points.
func LoadTrueType(path string, desc FontDescriptor) (*FaceSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	return ParseTrueType(data, desc)
}

// ParseTrueType parses TrueType font data at desc.Size points.
func ParseTrueType(data []byte, desc FontDescriptor) (*FaceSource, error) {
	f, err := freetype.ParseFont(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	if desc.Size <= 0 {
		desc.Size = DefaultFontSize
	}
	if desc.Family == "" {
		desc.Family = f.Name(truetype.NameIDFontFamily)
	}
	face := truetype.NewFace(f, &truetype.Options{
		Size:    desc.Size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	return NewFaceSource(face, desc), nil
}

// LoadOpenType loads an OpenType font or the first font of a collection.
func LoadOpenType(path string, desc FontDescriptor) (*FaceSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		coll, collErr := opentype.ParseCollection(data)
		if collErr != nil {
			return nil, fmt.Errorf("failed to parse font: %w", err)
		}
		if f, err = coll.Font(0); err != nil {
			return nil, fmt.Errorf("failed to read collection: %w", err)
		}
	}
	if desc.Size <= 0 {
		desc.Size = DefaultFontSize
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    desc.Size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create face: %w", err)
	}
	return NewFaceSource(face, desc), nil
}

// DefaultFace returns the embedded Go Mono font at size points.
func DefaultFace(size float64) (*FaceSource, error) {
	return ParseTrueType(gomono.TTF, FontDescriptor{Family: "Go Mono", Size: size})
}

// BasicFace returns the fixed 7x13 bitmap face.
func BasicFace() *FaceSource {
	return NewFaceSource(basicfont.Face7x13, FontDescriptor{Family: "monospace", Size: 13})
}

// Descriptor implements GlyphSource.
func (s *FaceSource) Descriptor() FontDescriptor {
	return s.desc
}

// Measure implements GlyphSource. Width is the advance of r, height is
// the line's ascent plus descent.
func (s *FaceSource) Measure(r rune) (image.Point, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	adv, ok := s.face.GlyphAdvance(r)
	if !ok {
		return image.Point{}, fmt.Errorf("font has no glyph for %q", r)
	}
	m := s.face.Metrics()
	return image.Pt(adv.Ceil(), (m.Ascent + m.Descent).Ceil()), nil
}

// Render implements GlyphSource.
func (s *FaceSource) Render(r rune, cell image.Point) (*imageutil.PixelBuffer, error) {
	if cell.X <= 0 || cell.Y <= 0 {
		return nil, fmt.Errorf("%w: cell %dx%d", ErrInvalidTileSize, cell.X, cell.Y)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dst := image.NewNRGBA(image.Rect(0, 0, cell.X, cell.Y))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)

	adv, _ := s.face.GlyphAdvance(r)
	m := s.face.Metrics()
	lineHeight := m.Ascent + m.Descent
	x := (fixed.I(cell.X) - adv) / 2
	y := (fixed.I(cell.Y)-lineHeight)/2 + m.Ascent

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.Black,
		Face: s.face,
		Dot:  fixed.Point26_6{X: x, Y: y},
	}
	d.DrawString(string(r))

	return imageutil.FromImage(dst), nil
}

// Close releases the underlying face.
func (s *FaceSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.face.Close()
}
