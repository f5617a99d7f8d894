package img2ascii

import (
	"math"

	"github.com/wbrown/img2ascii/imageutil"
)

// HistogramLevels is the number of bins per channel.
const HistogramLevels = 4

const histogramBins = HistogramLevels * HistogramLevels * HistogramLevels

// Histogram counts colors in a coarse 4x4x4 RGB grid. Each channel is
// bucketed by value/64.
type Histogram struct {
	bins  [histogramBins]int
	total int
}

func binIndex(r, g, b int) int {
	return r*HistogramLevels*HistogramLevels + g*HistogramLevels + b
}

// Add counts one pixel of color c.
func (h *Histogram) Add(c imageutil.Color) {
	h.bins[binIndex(int(c.R/64), int(c.G/64), int(c.B/64))]++
	h.total++
}

// Bin returns the count of bin (r, g, b), each in [0, HistogramLevels).
func (h *Histogram) Bin(r, g, b int) int {
	if r < 0 || g < 0 || b < 0 || r >= HistogramLevels || g >= HistogramLevels || b >= HistogramLevels {
		return 0
	}
	return h.bins[binIndex(r, g, b)]
}

// Total returns the number of pixels added.
func (h *Histogram) Total() int {
	return h.total
}

// Euclidean returns sqrt(sum((a-b)^2)).
func (h *Histogram) Euclidean(o *Histogram) float64 {
	var sum float64
	for i := range h.bins {
		d := float64(h.bins[i] - o.bins[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}

// Manhattan returns sum(|a-b|).
func (h *Histogram) Manhattan(o *Histogram) float64 {
	var sum float64
	for i := range h.bins {
		sum += math.Abs(float64(h.bins[i] - o.bins[i]))
	}
	return sum
}

// ChiSquared returns sum((a-b)^2 / a), using 1 as the divisor for empty
// bins of the receiver.
func (h *Histogram) ChiSquared(o *Histogram) float64 {
	var sum float64
	for i := range h.bins {
		d := float64(h.bins[i] - o.bins[i])
		div := float64(h.bins[i])
		if div == 0 {
			div = 1
		}
		sum += d * d / div
	}
	return sum
}

// Matusita returns sqrt(sum((sqrt(a)-sqrt(b))^2)).
func (h *Histogram) Matusita(o *Histogram) float64 {
	var sum float64
	for i := range h.bins {
		d := math.Sqrt(float64(h.bins[i])) - math.Sqrt(float64(o.bins[i]))
		sum += d * d
	}
	return math.Sqrt(sum)
}

// Bhattacharyya returns -ln(sum(sqrt(a*b))) over raw counts. Histograms
// with no common bin are infinitely far apart.
func (h *Histogram) Bhattacharyya(o *Histogram) float64 {
	var sum float64
	for i := range h.bins {
		sum += math.Sqrt(float64(h.bins[i]) * float64(o.bins[i]))
	}
	return -math.Log(sum)
}

// DotProduct returns sum(a*b). Larger means more alike.
func (h *Histogram) DotProduct(o *Histogram) float64 {
	var sum float64
	for i := range h.bins {
		sum += float64(h.bins[i]) * float64(o.bins[i])
	}
	return sum
}

// Intersection returns sum(min(a,b)) divided by the receiver's total, or
// 0 for an empty receiver.
func (h *Histogram) Intersection(o *Histogram) float64 {
	if h.total == 0 {
		return 0
	}
	var sum int
	for i := range h.bins {
		sum += min(h.bins[i], o.bins[i])
	}
	return float64(sum) / float64(h.total)
}
