package img2ascii

import (
	"fmt"
	"image"
	"testing"

	"github.com/wbrown/img2ascii/imageutil"
)

var (
	white = imageutil.Color{R: 255, G: 255, B: 255, A: 255}
	black = imageutil.Color{A: 255}
	red   = imageutil.Color{R: 255, A: 255}
)

// patternSource draws each rune as black pixels wherever its pattern
// returns true, on a white cell.
type patternSource struct {
	cell     image.Point
	sizes    map[rune]image.Point
	patterns map[rune]func(x, y int) bool
	desc     FontDescriptor
}

func (s *patternSource) Measure(r rune) (image.Point, error) {
	if _, ok := s.patterns[r]; !ok {
		return image.Point{}, fmt.Errorf("no pattern for %q", r)
	}
	if size, ok := s.sizes[r]; ok {
		return size, nil
	}
	return s.cell, nil
}

func (s *patternSource) Render(r rune, cell image.Point) (*imageutil.PixelBuffer, error) {
	pb := imageutil.CreateSolidImage(cell.X, cell.Y, white)
	pattern := s.patterns[r]
	for y := 0; y < cell.Y; y++ {
		for x := 0; x < cell.X; x++ {
			if pattern(x, y) {
				pb.SetColor(x, y, black)
			}
		}
	}
	return pb, nil
}

func (s *patternSource) Descriptor() FontDescriptor {
	return s.desc
}

func solidInk(x, y int) bool { return true }
func noInk(x, y int) bool    { return false }

// blockSource knows ' ' (blank), '#' (solid) and a few partial shapes
// on a 4x4 cell.
func blockSource() *patternSource {
	return &patternSource{
		cell: image.Pt(4, 4),
		patterns: map[rune]func(x, y int) bool{
			' ': noInk,
			'#': solidInk,
			'<': solidInk,
			'.': func(x, y int) bool { return x == 0 && y == 0 },
			'|': func(x, y int) bool { return x == 0 },
			'/': func(x, y int) bool { return x != 0 },
			'a': solidInk,
			'b': solidInk,
		},
		desc: FontDescriptor{Family: "Test", Size: 4},
	}
}

func mustAlphabet(t *testing.T, chars string) *Alphabet {
	t.Helper()
	a, err := NewAlphabet(chars, blockSource())
	if err != nil {
		t.Fatalf("NewAlphabet(%q) failed: %v", chars, err)
	}
	return a
}

func mustScorer(t *testing.T, m Metric, a *Alphabet, opts ...ScorerOption) Scorer {
	t.Helper()
	s, err := NewScorer(m, a, opts...)
	if err != nil {
		t.Fatalf("NewScorer(%v) failed: %v", m, err)
	}
	return s
}

func solidTile(t *testing.T, c imageutil.Color, w, h int) *TileStats {
	t.Helper()
	pb := imageutil.CreateSolidImage(w, h, c)
	ts, err := NewTileStats(pb.Pix, w, h)
	if err != nil {
		t.Fatalf("NewTileStats failed: %v", err)
	}
	return ts
}

// quadrantImage returns a 2x2 grid of 4x4 cells, filled top-left,
// top-right, bottom-left, bottom-right.
func quadrantImage(colors [4]imageutil.Color) *imageutil.PixelBuffer {
	pb := imageutil.NewPixelBuffer(8, 8)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			pb.SetColor(x, y, colors[(y/4)*2+x/4])
		}
	}
	return pb
}
