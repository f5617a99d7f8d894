package img2ascii

import (
	"context"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/wbrown/img2ascii/imageutil"
)

func TestMarkupConverter(t *testing.T) {
	t.Parallel()
	src := blockSource()
	src.desc = FontDescriptor{Family: "Test", Size: 4, Bold: true}
	a, err := NewAlphabet(" #", src)
	if err != nil {
		t.Fatal(err)
	}
	conv := NewMarkupConverter(mustScorer(t, MetricBrightness, a), DefaultPolicy{Background: white, Foreground: red})

	img := quadrantImage([4]imageutil.Color{black, white, white, black})
	got, err := conv.Convert(context.Background(), img, nil)
	if err != nil {
		t.Fatal(err)
	}

	wantHeader := `<!DOCTYPE html><html><head><style>p {font-family: "Test", monospace;font-size: 4px;font-style: normal;font-weight: bold;}</style></head><body><p>`
	if !strings.HasPrefix(got, wantHeader) {
		t.Errorf("unexpected header in %q", got)
	}
	if !strings.HasSuffix(got, "</p></body></html>") {
		t.Errorf("document should be closed, got %q", got)
	}
	span := `<span style="color:#ff0000">`
	body := strings.TrimSuffix(strings.TrimPrefix(got, wantHeader), "</p></body></html>")
	want := span + "#</span>" + span + " </span></p><p>" + span + " </span>" + span + "#</span>"
	if body != want {
		t.Errorf("expected body %q, got %q", want, body)
	}
}

func TestMarkupEscapesCharacters(t *testing.T) {
	t.Parallel()
	conv := NewMarkupConverter(mustScorer(t, MetricBrightness, mustAlphabet(t, "<")), ImageForegroundPolicy{Background: white})
	got, err := conv.Convert(context.Background(), imageutil.CreateSolidImage(4, 4, red), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, `<span style="color:#ff0000">&lt;</span>`) {
		t.Errorf("expected escaped, image-colored span in %q", got)
	}
}

func TestANSIConverter(t *testing.T) {
	t.Parallel()
	img := quadrantImage([4]imageutil.Color{black, white, white, black})
	policy := ImageForegroundPolicy{Background: white}

	plain, err := NewANSIConverter(brightnessScorer(t), policy, termenv.Ascii).Convert(context.Background(), img, nil)
	if err != nil {
		t.Fatal(err)
	}
	if plain != "# \n #" {
		t.Errorf("Ascii profile should produce plain text, got %q", plain)
	}

	colored, err := NewANSIConverter(brightnessScorer(t), policy, termenv.TrueColor).
		Convert(context.Background(), imageutil.CreateSolidImage(8, 8, red), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(colored, "38;2;255;0;0") {
		t.Errorf("expected a true color red foreground in %q", colored)
	}
	rows := strings.Split(colored, "\n")
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	for i, row := range rows {
		if !strings.HasSuffix(row, ansiReset) {
			t.Errorf("row %d should end with a reset: %q", i, row)
		}
	}
}
