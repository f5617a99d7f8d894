package img2ascii

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font/gofont/gomono"

	"github.com/wbrown/img2ascii/imageutil"
)

// StandardRamp is the classic 70 character density ramp, darkest first.
const StandardRamp = "$@B%8&WM#*oahkbdpqwmZO0QLCJUYXzcvunxrjft/\\|()1{}[]?-_+~<>i!lI;:,\"^`'. "

// Config holds everything needed to build a conversion. It is a plain
// value: copy it, change fields, and pass it on.
type Config struct {
	// Alphabet lists the characters to draw with. Duplicates are ignored.
	Alphabet string
	// Font describes the font. Size is in points at 72 DPI, so also in
	// pixels.
	Font FontDescriptor
	// FontPath is a .ttf, .otf or .ttc file. Empty selects Go Mono.
	FontPath string
	// CacheDir enables the on-disk alphabet cache when set.
	CacheDir string

	Metric       Metric
	Mode         RenderingMode
	ColumnStride int

	Policy            PolicyKind
	Background        imageutil.Color
	Foreground        imageutil.Color
	BackgroundOpacity float64
	Blend             bool

	// Workers bounds the tile worker pool. Zero means one per CPU.
	Workers int
}

// DefaultConfig returns black-on-white brightness matching with the
// standard ramp in 16 point Go Mono.
func DefaultConfig() Config {
	return Config{
		Alphabet:          StandardRamp,
		Font:              FontDescriptor{Family: "Go Mono", Size: 16},
		Metric:            MetricBrightness,
		Mode:              ModeDefault,
		ColumnStride:      1,
		Policy:            PolicyDefault,
		Background:        imageutil.Color{R: 255, G: 255, B: 255, A: 255},
		Foreground:        imageutil.Color{A: 255},
		BackgroundOpacity: 1,
	}
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	if c.Alphabet == "" {
		errs = append(errs, ErrEmptyAlphabet)
	}
	if c.Font.Size <= 0 {
		errs = append(errs, fmt.Errorf("font size must be positive, got %g", c.Font.Size))
	}
	if c.Metric < 0 || int(c.Metric) >= len(metricNames) {
		errs = append(errs, fmt.Errorf("%w: %v", ErrUnknownMetric, c.Metric))
	}
	if c.Mode != ModeDefault && c.Mode != ModeInverted {
		errs = append(errs, fmt.Errorf("unknown rendering mode %d", c.Mode))
	}
	if c.Policy < 0 || int(c.Policy) >= len(policyNames) {
		errs = append(errs, fmt.Errorf("%w: %v", ErrUnknownPolicy, c.Policy))
	}
	if c.ColumnStride < 0 {
		errs = append(errs, fmt.Errorf("column stride must not be negative, got %d", c.ColumnStride))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	return errors.Join(errs...)
}

// LoadGlyphSource opens the configured font and returns it with its raw
// bytes, which identify it in the alphabet cache.
func (c Config) LoadGlyphSource() (*FaceSource, []byte, error) {
	if c.FontPath == "" {
		src, err := ParseTrueType(gomono.TTF, c.Font)
		return src, gomono.TTF, err
	}

	data, err := os.ReadFile(c.FontPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read font: %w", err)
	}
	var src *FaceSource
	switch strings.ToLower(filepath.Ext(c.FontPath)) {
	case ".otf", ".ttc", ".otc":
		src, err = LoadOpenType(c.FontPath, c.Font)
	default:
		src, err = ParseTrueType(data, c.Font)
	}
	if err != nil {
		return nil, nil, err
	}
	return src, data, nil
}

// BuildAlphabet renders the configured alphabet, through the cache when
// CacheDir is set.
func (c Config) BuildAlphabet() (*Alphabet, error) {
	src, data, err := c.LoadGlyphSource()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	if c.CacheDir != "" {
		return AlphabetCache{Dir: c.CacheDir}.LoadOrBuild(c.Alphabet, src, data)
	}
	return NewAlphabet(c.Alphabet, src)
}

// NewScorer creates the configured Scorer over alphabet.
func (c Config) NewScorer(alphabet *Alphabet) (Scorer, error) {
	return NewScorer(c.Metric, alphabet,
		WithRenderingMode(c.Mode),
		WithColumnStride(c.ColumnStride))
}

// NewPolicy creates the configured ColorPolicy.
func (c Config) NewPolicy() ColorPolicy {
	switch c.Policy {
	case PolicyImageForeground:
		return ImageForegroundPolicy{Background: c.Background}
	case PolicyImageBackground:
		return NewImageBackgroundPolicy(c.Foreground, c.BackgroundOpacity)
	default:
		return DefaultPolicy{Background: c.Background, Foreground: c.Foreground, Blend: c.Blend}
	}
}

// ConverterOptions returns the options shared by every output kind.
func (c Config) ConverterOptions() []ConverterOption {
	var opts []ConverterOption
	if c.Workers > 0 {
		opts = append(opts, WithWorkers(c.Workers))
	}
	return opts
}
