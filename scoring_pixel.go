package img2ascii

import (
	"math"

	"github.com/wbrown/img2ascii/imageutil"
)

// SSIM constants with a dynamic range of 2^4-1.
const (
	ssimK1 = 0.01
	ssimK2 = 0.03
	ssimL  = 1<<imageutil.BytesPerPixel - 1
	ssimC1 = (ssimK1 * ssimL) * (ssimK1 * ssimL)
	ssimC2 = (ssimK2 * ssimL) * (ssimK2 * ssimL)
)

// glyphSamples caches per-glyph data the pixel metrics reuse for every
// tile.
type glyphSamples struct {
	Glyph
	gray []uint8
}

func newGlyphSamples(g Glyph, gray bool) glyphSamples {
	gs := glyphSamples{Glyph: g}
	if gray {
		gs.gray = grayPlane(g.Stats)
	}
	return gs
}

// tileSamples is the per-tile counterpart of glyphSamples.
type tileSamples struct {
	stats *TileStats
	gray  []uint8
}

func newTileSamples(t *TileStats, gray bool) *tileSamples {
	ts := &tileSamples{stats: t}
	if gray {
		ts.gray = grayPlane(t)
	}
	return ts
}

func grayPlane(t *TileStats) []uint8 {
	pb, _ := imageutil.NewPixelBufferFromBytes(t.Width, t.Height, t.Pix)
	return imageutil.GrayPlane(pb)
}

func scoreBrightness(t *tileSamples, g *glyphSamples) float64 {
	return g.Stats.CompareBrightness(t.stats)
}

// mseScore sums squared grayscale differences over every stride-th
// column.
func mseScore(stride int) scoreFunc {
	return func(t *tileSamples, g *glyphSamples) float64 {
		w, h := g.Stats.Width, g.Stats.Height
		var sum float64
		for y := 0; y < h; y++ {
			row := y * w
			for x := 0; x < w; x += stride {
				d := float64(t.gray[row+x]) - float64(g.gray[row+x])
				sum += d * d
			}
		}
		return sum
	}
}

// ssimScore computes a structural similarity index from the tile and
// glyph Mean and Variance and their grayscale covariance.
func ssimScore(stride int) scoreFunc {
	return func(t *tileSamples, g *glyphSamples) float64 {
		w, h := g.Stats.Width, g.Stats.Height
		gm, tm := g.Stats.Mean, t.stats.Mean

		var cov float64
		for y := 0; y < h; y++ {
			row := y * w
			for x := 0; x < w; x += stride {
				cov += (float64(g.gray[row+x]) - gm) * (float64(t.gray[row+x]) - tm)
			}
		}
		cov /= float64(w * h)

		num := (2*math.Sqrt(g.Stats.Variance)*math.Sqrt(t.stats.Variance) + ssimC1) * (2*cov + ssimC2)
		den := (gm*gm + tm*tm + ssimC1) * (cov*cov + ssimC2)
		return num / den
	}
}
