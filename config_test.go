package img2ascii

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/wbrown/img2ascii/imageutil"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"empty alphabet", func(c *Config) { c.Alphabet = "" }, ErrEmptyAlphabet},
		{"bad metric", func(c *Config) { c.Metric = Metric(42) }, ErrUnknownMetric},
		{"bad policy", func(c *Config) { c.Policy = PolicyKind(-1) }, ErrUnknownPolicy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.modify(&c)
			if err := c.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}

	c := DefaultConfig()
	c.Font.Size = 0
	c.Workers = -1
	c.ColumnStride = -2
	if err := c.Validate(); err == nil {
		t.Error("expected errors for size, workers and stride")
	}
}

func TestConfigNewPolicy(t *testing.T) {
	c := DefaultConfig()
	if _, ok := c.NewPolicy().(DefaultPolicy); !ok {
		t.Error("expected DefaultPolicy")
	}
	c.Policy = PolicyImageForeground
	if _, ok := c.NewPolicy().(ImageForegroundPolicy); !ok {
		t.Error("expected ImageForegroundPolicy")
	}
	c.Policy = PolicyImageBackground
	c.BackgroundOpacity = 2
	p, ok := c.NewPolicy().(ImageBackgroundPolicy)
	if !ok || p.Opacity() != 1 {
		t.Errorf("expected clamped ImageBackgroundPolicy, got %#v", c.NewPolicy())
	}
}

func TestConfigEndToEnd(t *testing.T) {
	c := DefaultConfig()
	c.Alphabet = " .:#@"
	c.Font.Size = 10
	c.CacheDir = filepath.Join(t.TempDir(), "cache")
	c.Metric = MetricMSE
	c.Workers = 2

	a, err := c.BuildAlphabet()
	if err != nil {
		t.Fatalf("BuildAlphabet failed: %v", err)
	}
	if a.Len() != 5 {
		t.Errorf("expected 5 glyphs, got %d", a.Len())
	}
	if files, _ := filepath.Glob(filepath.Join(c.CacheDir, "*.glyphs.zst")); len(files) != 1 {
		t.Errorf("expected the alphabet to be cached, got %v", files)
	}

	scorer, err := c.NewScorer(a)
	if err != nil {
		t.Fatal(err)
	}
	cell := a.CellSize()
	img := imageutil.CreateSolidImage(cell.X*3, cell.Y*2, imageutil.Color{A: 255})
	out, err := NewImageConverter(scorer, c.NewPolicy(), c.ConverterOptions()...).Convert(context.Background(), img, nil)
	if err != nil {
		t.Fatal(err)
	}
	if out.Width != cell.X*3 || out.Height != cell.Y*2 {
		t.Errorf("unexpected output size %dx%d", out.Width, out.Height)
	}
}

func TestConfigMissingFont(t *testing.T) {
	c := DefaultConfig()
	c.FontPath = filepath.Join(t.TempDir(), "missing.ttf")
	if _, err := c.BuildAlphabet(); err == nil {
		t.Error("expected an error for a missing font file")
	}
}
