package img2ascii

import (
	"fmt"
	"math"
	"strings"
)

// Metric identifies how tiles are compared with glyphs.
type Metric int

const (
	MetricBrightness Metric = iota
	MetricMSE
	MetricSSIM
	MetricChiSquared
	MetricEuclidean
	MetricEarthMovers
	MetricIntersection
	MetricBhattacharyya
	MetricManhattan
	MetricMatusita
)

var metricNames = [...]string{
	MetricBrightness:    "brightness",
	MetricMSE:           "mse",
	MetricSSIM:          "ssim",
	MetricChiSquared:    "chisquared",
	MetricEuclidean:     "euclidean",
	MetricEarthMovers:   "earthmovers",
	MetricIntersection:  "intersection",
	MetricBhattacharyya: "bhattacharyya",
	MetricManhattan:     "manhattan",
	MetricMatusita:      "matusita",
}

func (m Metric) String() string {
	if m < 0 || int(m) >= len(metricNames) {
		return fmt.Sprintf("Metric(%d)", int(m))
	}
	return metricNames[m]
}

// Metrics returns every metric in declaration order.
func Metrics() []Metric {
	out := make([]Metric, len(metricNames))
	for i := range out {
		out[i] = Metric(i)
	}
	return out
}

// ParseMetric resolves a metric by its case-insensitive name.
func ParseMetric(name string) (Metric, error) {
	for i, n := range metricNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Metric(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMetric, name)
}

// Similarity reports whether larger scores mean a better match.
func (m Metric) Similarity() bool {
	switch m {
	case MetricSSIM, MetricIntersection, MetricEarthMovers:
		return true
	}
	return false
}

// RenderingMode selects whether a scorer looks for the best or the
// worst matching glyph.
type RenderingMode int

const (
	// ModeDefault picks the closest glyph.
	ModeDefault RenderingMode = iota
	// ModeInverted picks the least similar glyph, which reverses the
	// apparent brightness of the output.
	ModeInverted
)

func (m RenderingMode) String() string {
	if m == ModeInverted {
		return "inverted"
	}
	return "default"
}

// ParseRenderingMode resolves "default" or "inverted".
func ParseRenderingMode(name string) (RenderingMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default":
		return ModeDefault, nil
	case "inverted":
		return ModeInverted, nil
	}
	return 0, fmt.Errorf("unknown rendering mode %q", name)
}

// Scorer picks, for a tile, the glyph of its alphabet that fits best
// under its metric.
type Scorer interface {
	// SelectGlyph scans the alphabet once and returns the winning glyph.
	// Ties go to the glyph that appears first in the alphabet.
	SelectGlyph(tile *TileStats) Glyph
	Alphabet() *Alphabet
	Metric() Metric
}

// ScorerOption is a functional option for configuring a Scorer.
type ScorerOption func(*scorer)

// WithRenderingMode sets Default or Inverted selection.
func WithRenderingMode(mode RenderingMode) ScorerOption {
	return func(s *scorer) {
		s.mode = mode
	}
}

// WithColumnStride makes the pixel metrics (mse, ssim) sample every
// n-th column only. Values below 1 are treated as 1.
func WithColumnStride(n int) ScorerOption {
	return func(s *scorer) {
		s.stride = max(n, 1)
	}
}

type scoreFunc func(tile *tileSamples, g *glyphSamples) float64

// scorer is the single Scorer implementation. Each metric contributes
// only its score function; selection is shared.
type scorer struct {
	metric   Metric
	alphabet *Alphabet
	mode     RenderingMode
	stride   int

	score   scoreFunc
	glyphs  []glyphSamples
	maximum bool
}

// NewScorer creates a Scorer for metric over alphabet.
func NewScorer(metric Metric, alphabet *Alphabet, opts ...ScorerOption) (Scorer, error) {
	if alphabet.Len() == 0 {
		return nil, ErrEmptyAlphabet
	}
	s := &scorer{
		metric:   metric,
		alphabet: alphabet,
		mode:     ModeDefault,
		stride:   1,
	}
	for _, opt := range opts {
		opt(s)
	}

	switch metric {
	case MetricBrightness:
		s.score = scoreBrightness
	case MetricMSE:
		s.score = mseScore(s.stride)
	case MetricSSIM:
		s.score = ssimScore(s.stride)
	case MetricChiSquared, MetricEuclidean, MetricEarthMovers, MetricIntersection,
		MetricBhattacharyya, MetricManhattan, MetricMatusita:
		s.score = histogramScore(metric)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownMetric, metric)
	}

	s.maximum = metric.Similarity() != (s.mode == ModeInverted)

	glyphs := alphabet.Glyphs()
	s.glyphs = make([]glyphSamples, len(glyphs))
	for i, g := range glyphs {
		s.glyphs[i] = newGlyphSamples(g, s.needsGray())
	}
	return s, nil
}

func (s *scorer) Alphabet() *Alphabet { return s.alphabet }

func (s *scorer) Metric() Metric { return s.metric }

func (s *scorer) needsGray() bool {
	return s.metric == MetricMSE || s.metric == MetricSSIM
}

// better reports whether candidate strictly beats best.
func (s *scorer) better(candidate, best float64) bool {
	if s.maximum {
		return candidate > best
	}
	return candidate < best
}

func (s *scorer) SelectGlyph(tile *TileStats) Glyph {
	ts := newTileSamples(tile, s.needsGray())

	bestIdx := 0
	bestScore := math.Inf(1)
	if s.maximum {
		bestScore = math.Inf(-1)
	}
	if s.metric == MetricBrightness {
		bestScore = s.score(ts, &s.glyphs[0])
	}

	for i := range s.glyphs {
		score := s.score(ts, &s.glyphs[i])
		if s.better(score, bestScore) {
			bestIdx, bestScore = i, score
		}
	}
	return s.glyphs[bestIdx].Glyph
}
