package img2ascii

import (
	"errors"
	"image"
	"testing"

	"github.com/wbrown/img2ascii/imageutil"
)

func TestParseMetric(t *testing.T) {
	for _, m := range Metrics() {
		got, err := ParseMetric(m.String())
		if err != nil || got != m {
			t.Errorf("ParseMetric(%q) = %v, %v", m.String(), got, err)
		}
	}
	if got, err := ParseMetric(" SSIM "); err != nil || got != MetricSSIM {
		t.Errorf("ParseMetric should ignore case and space, got %v, %v", got, err)
	}
	if _, err := ParseMetric("earthmover"); !errors.Is(err, ErrUnknownMetric) {
		t.Errorf("expected ErrUnknownMetric, got %v", err)
	}
	if len(Metrics()) != 10 {
		t.Errorf("expected 10 metrics, got %d", len(Metrics()))
	}
}

func TestParseRenderingMode(t *testing.T) {
	for _, mode := range []RenderingMode{ModeDefault, ModeInverted} {
		if got, err := ParseRenderingMode(mode.String()); err != nil || got != mode {
			t.Errorf("round trip of %v failed: %v, %v", mode, got, err)
		}
	}
	if _, err := ParseRenderingMode("sideways"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestNewScorerErrors(t *testing.T) {
	if _, err := NewScorer(MetricMSE, nil); !errors.Is(err, ErrEmptyAlphabet) {
		t.Errorf("nil alphabet: expected ErrEmptyAlphabet, got %v", err)
	}
	if _, err := NewScorer(Metric(99), mustAlphabet(t, "#")); !errors.Is(err, ErrUnknownMetric) {
		t.Errorf("expected ErrUnknownMetric, got %v", err)
	}
}

func TestSingleGlyphAlphabet(t *testing.T) {
	a := mustAlphabet(t, ".")
	tiles := []*TileStats{
		solidTile(t, black, 4, 4),
		solidTile(t, white, 4, 4),
		solidTile(t, red, 4, 4),
	}
	for _, m := range Metrics() {
		for _, mode := range []RenderingMode{ModeDefault, ModeInverted} {
			s := mustScorer(t, m, a, WithRenderingMode(mode))
			for _, tile := range tiles {
				if g := s.SelectGlyph(tile); g.Char != '.' {
					t.Errorf("%v/%v: single glyph alphabet returned %q", m, mode, g.Char)
				}
			}
		}
	}
}

func TestSelectGlyphExtremes(t *testing.T) {
	a := mustAlphabet(t, " #")
	tile := solidTile(t, black, 4, 4)

	for _, m := range Metrics() {
		t.Run(m.String(), func(t *testing.T) {
			s := mustScorer(t, m, a)
			if s.Metric() != m || s.Alphabet() != a {
				t.Fatal("scorer should report its metric and alphabet")
			}
			if g := s.SelectGlyph(tile); g.Char != '#' {
				t.Errorf("default mode should match black with '#', got %q", g.Char)
			}
			inv := mustScorer(t, m, a, WithRenderingMode(ModeInverted))
			if g := inv.SelectGlyph(tile); g.Char != ' ' {
				t.Errorf("inverted mode should match black with ' ', got %q", g.Char)
			}
		})
	}
}

func TestSelectGlyphTiesGoToFirst(t *testing.T) {
	for _, chars := range []string{"ab", "ba"} {
		a := mustAlphabet(t, chars)
		for _, m := range Metrics() {
			s := mustScorer(t, m, a)
			if g := s.SelectGlyph(solidTile(t, black, 4, 4)); g.Char != rune(chars[0]) {
				t.Errorf("%v over %q: expected first glyph %q, got %q", m, chars, chars[0], g.Char)
			}
		}
	}
}

func TestBrightnessRedSelectsHash(t *testing.T) {
	a := mustAlphabet(t, " #")
	s := mustScorer(t, MetricBrightness, a)
	if g := s.SelectGlyph(solidTile(t, red, 4, 4)); g.Char != '#' {
		t.Errorf("red (luma 0.299) should be closer to '#' than ' ', got %q", g.Char)
	}
}

func TestColumnStride(t *testing.T) {
	// '/' has ink everywhere except column 0, '|' only in column 0. A
	// tile black in column 0 and white elsewhere matches '|' exactly.
	// Sampling only column 0 cannot tell '#' from '|'.
	tilePix := imageutil.CreateSolidImage(4, 4, white)
	for y := 0; y < 4; y++ {
		tilePix.SetColor(0, y, black)
	}
	tile, err := NewTileStats(tilePix.Pix, 4, 4)
	if err != nil {
		t.Fatal(err)
	}

	a := mustAlphabet(t, "/#|")
	full := mustScorer(t, MetricMSE, a)
	if g := full.SelectGlyph(tile); g.Char != '|' {
		t.Errorf("stride 1 should find the exact match '|', got %q", g.Char)
	}
	sparse := mustScorer(t, MetricMSE, a, WithColumnStride(4))
	if g := sparse.SelectGlyph(tile); g.Char != '#' {
		t.Errorf("stride 4 only sees column 0, so '#' ties '|' and wins by order; got %q", g.Char)
	}
	if g := mustScorer(t, MetricMSE, a, WithColumnStride(0)).SelectGlyph(tile); g.Char != '|' {
		t.Errorf("stride below 1 should behave like 1, got %q", g.Char)
	}
}

func TestSimilarity(t *testing.T) {
	similar := map[Metric]bool{MetricSSIM: true, MetricIntersection: true, MetricEarthMovers: true}
	for _, m := range Metrics() {
		if m.Similarity() != similar[m] {
			t.Errorf("%v: Similarity() = %v", m, m.Similarity())
		}
	}
}

func TestCreateTilesAndScoreGradient(t *testing.T) {
	// Left half black, right half white: brightness picks '#' then ' '.
	pb := imageutil.NewPixelBuffer(8, 4)
	pb.Fill(white)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			pb.SetColor(x, y, black)
		}
	}
	tiles, err := CreateTiles(pb, image.Pt(4, 4))
	if err != nil {
		t.Fatal(err)
	}
	s := mustScorer(t, MetricBrightness, mustAlphabet(t, " .#"))
	var got []rune
	for _, tile := range tiles {
		got = append(got, s.SelectGlyph(tile).Char)
	}
	if string(got) != "# " {
		t.Errorf("expected \"# \", got %q", string(got))
	}
}
