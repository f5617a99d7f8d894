package img2ascii

import (
	"errors"
	"testing"

	"github.com/wbrown/img2ascii/imageutil"
)

func TestIsInk(t *testing.T) {
	tests := []struct {
		c    imageutil.Color
		want bool
	}{
		{imageutil.Color{}, true},
		{imageutil.Color{R: 254, G: 254, B: 254}, true},
		{imageutil.Color{R: 255, G: 0, B: 0}, false},
		{imageutil.Color{R: 0, G: 255, B: 0}, false},
		{imageutil.Color{R: 0, G: 0, B: 255}, false},
		{white, false},
	}
	for _, tt := range tests {
		if got := isInk(tt.c); got != tt.want {
			t.Errorf("isInk(%+v) = %v, want %v", tt.c, got, tt.want)
		}
	}
}

func TestDefaultPolicy(t *testing.T) {
	fg := imageutil.Color{R: 200, G: 100, B: 50, A: 255}
	p := DefaultPolicy{Background: white, Foreground: fg}

	if got := p.Color(black, red); got != fg {
		t.Errorf("ink should take the foreground, got %+v", got)
	}
	if got := p.Color(white, red); got != white {
		t.Errorf("paper should take the background, got %+v", got)
	}

	p.Blend = true
	gray := imageutil.Color{R: 60, G: 60, B: 60, A: 255}
	want := imageutil.Color{R: 140, G: 40, B: 0, A: 255}
	if got := p.Color(gray, red); got != want {
		t.Errorf("blend: expected %+v, got %+v", want, got)
	}
}

func TestImageForegroundPolicy(t *testing.T) {
	p := ImageForegroundPolicy{Background: white}
	src := imageutil.Color{R: 1, G: 2, B: 3, A: 7}

	if got := p.Color(black, src); got != (imageutil.Color{R: 1, G: 2, B: 3, A: 255}) {
		t.Errorf("ink should take the opaque source color, got %+v", got)
	}
	if got := p.Color(white, src); got != white {
		t.Errorf("paper should take the background, got %+v", got)
	}
}

func TestImageBackgroundPolicy(t *testing.T) {
	src := imageutil.Color{R: 10, G: 20, B: 30, A: 255}
	fg := imageutil.Color{R: 9, A: 0}

	tests := []struct {
		opacity float64
		clamped float64
		alpha   uint8
	}{
		{-1, 0, 0},
		{0.5, 0.5, 127},
		{1, 1, 255},
		{3, 1, 255},
	}
	for _, tt := range tests {
		p := NewImageBackgroundPolicy(fg, tt.opacity)
		if p.Opacity() != tt.clamped {
			t.Errorf("opacity %f should clamp to %f, got %f", tt.opacity, tt.clamped, p.Opacity())
		}
		if got := p.Color(white, src); got != (imageutil.Color{R: 10, G: 20, B: 30, A: tt.alpha}) {
			t.Errorf("opacity %f: paper got %+v", tt.opacity, got)
		}
		if got := p.Color(black, src); got != (imageutil.Color{R: 9, A: 255}) {
			t.Errorf("ink should take the opaque foreground, got %+v", got)
		}
	}
}

func TestParsePolicy(t *testing.T) {
	for _, k := range []PolicyKind{PolicyDefault, PolicyImageForeground, PolicyImageBackground} {
		if got, err := ParsePolicy(k.String()); err != nil || got != k {
			t.Errorf("ParsePolicy(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParsePolicy("sepia"); !errors.Is(err, ErrUnknownPolicy) {
		t.Errorf("expected ErrUnknownPolicy, got %v", err)
	}
}

func TestHexColors(t *testing.T) {
	c, err := ParseHexColor("#ff8000")
	if err != nil {
		t.Fatal(err)
	}
	if c != (imageutil.Color{R: 255, G: 128, B: 0, A: 255}) {
		t.Errorf("unexpected color %+v", c)
	}
	if got := HexColor(c); got != "#ff8000" {
		t.Errorf("expected #ff8000, got %s", got)
	}
	if _, err := ParseHexColor("orange"); err == nil {
		t.Error("expected error for non-hex color")
	}
}
