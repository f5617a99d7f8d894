package img2ascii

// histogramScore compares the tile histogram, as receiver, with each
// glyph histogram.
func histogramScore(m Metric) scoreFunc {
	var f func(t, g *Histogram) float64
	switch m {
	case MetricChiSquared:
		f = (*Histogram).ChiSquared
	case MetricEuclidean:
		f = (*Histogram).Euclidean
	case MetricEarthMovers:
		f = (*Histogram).DotProduct
	case MetricIntersection:
		f = (*Histogram).Intersection
	case MetricBhattacharyya:
		f = (*Histogram).Bhattacharyya
	case MetricManhattan:
		f = (*Histogram).Manhattan
	case MetricMatusita:
		f = (*Histogram).Matusita
	default:
		return nil
	}
	return func(t *tileSamples, g *glyphSamples) float64 {
		return f(&t.stats.Histogram, &g.Stats.Histogram)
	}
}
