package img2ascii

import (
	"fmt"
	"image"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/wbrown/img2ascii/imageutil"
)

// averageColorDominance is the share of pixels a single color must
// exceed to be taken as a tile's average color outright.
const averageColorDominance = 0.7

// TileStats is a rectangular pixel block, either a glyph cell or a piece
// of the source image, together with statistics computed once at
// construction. A TileStats is never modified afterwards and may be read
// from any number of goroutines.
type TileStats struct {
	Width  int
	Height int

	// Pix holds the tile-local pixels in BGRA order with stride Width*4.
	Pix []byte

	// Brightness is the mean BT.601 luma of all pixels, in [0, 1].
	Brightness float64

	// Mean is the mean of (R+G+B)/3 per pixel, integer division per pixel.
	Mean float64

	// Variance is computed over the first Width*Height bytes of Pix,
	// not over per-pixel intensities.
	Variance float64

	Histogram Histogram

	// AverageColor is the dominant color of the tile. Alpha is always 255.
	AverageColor imageutil.Color
}

// NewTileStats builds statistics over a buffer the tile owns. pix must
// hold exactly width*height BGRA pixels.
func NewTileStats(pix []byte, width, height int) (*TileStats, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidTileSize, width, height)
	}
	if len(pix) != width*height*imageutil.BytesPerPixel {
		return nil, fmt.Errorf("%w: tile %dx%d needs %d bytes, got %d",
			imageutil.ErrSizeMismatch, width, height, width*height*imageutil.BytesPerPixel, len(pix))
	}
	t := &TileStats{Width: width, Height: height, Pix: pix}
	t.compute()
	return t, nil
}

// NewTileStatsFromRegion copies the size window at origin out of src,
// a BGRA buffer with srcStride bytes per row, and builds its statistics.
func NewTileStatsFromRegion(src []byte, srcStride int, origin, size image.Point) (*TileStats, error) {
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidTileSize, size.X, size.Y)
	}
	rowBytes := size.X * imageutil.BytesPerPixel
	left := origin.X * imageutil.BytesPerPixel
	if origin.X < 0 || origin.Y < 0 || left+rowBytes > srcStride ||
		(origin.Y+size.Y-1)*srcStride+left+rowBytes > len(src) {
		return nil, fmt.Errorf("%w: window %v at %v outside source", imageutil.ErrSizeMismatch, size, origin)
	}

	pix := make([]byte, rowBytes*size.Y)
	for y := 0; y < size.Y; y++ {
		start := (origin.Y+y)*srcStride + left
		copy(pix[y*rowBytes:(y+1)*rowBytes], src[start:start+rowBytes])
	}
	t := &TileStats{Width: size.X, Height: size.Y, Pix: pix}
	t.compute()
	return t, nil
}

// CreateTiles cuts buf into floor(H/th) x floor(W/tw) tiles in row-major
// order. Partial tiles at the right and bottom edges are dropped.
func CreateTiles(buf *imageutil.PixelBuffer, tileSize image.Point) ([]*TileStats, error) {
	if tileSize.X <= 0 || tileSize.Y <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidTileSize, tileSize.X, tileSize.Y)
	}
	grid := tileGrid(buf.Size(), tileSize)
	tiles := make([]*TileStats, 0, grid.X*grid.Y)
	for i := 0; i < grid.X*grid.Y; i++ {
		t, err := NewTileStatsFromRegion(buf.Pix, buf.Stride(), tileOrigin(i, grid.X, tileSize), tileSize)
		if err != nil {
			return nil, err
		}
		tiles = append(tiles, t)
	}
	return tiles, nil
}

// tileGrid returns the number of whole tile columns and rows.
func tileGrid(size, tile image.Point) image.Point {
	return image.Pt(size.X/tile.X, size.Y/tile.Y)
}

// tileOrigin returns the pixel origin of tile i in a grid cols wide.
func tileOrigin(i, cols int, tile image.Point) image.Point {
	return image.Pt(i%cols*tile.X, i/cols*tile.Y)
}

// PixelAt returns the color at tile-local (x, y).
func (t *TileStats) PixelAt(x, y int) imageutil.Color {
	if x < 0 || y < 0 || x >= t.Width || y >= t.Height {
		return imageutil.Color{}
	}
	i := (y*t.Width + x) * imageutil.BytesPerPixel
	return imageutil.Color{B: t.Pix[i], G: t.Pix[i+1], R: t.Pix[i+2], A: t.Pix[i+3]}
}

// Size returns the tile dimensions.
func (t *TileStats) Size() image.Point {
	return image.Pt(t.Width, t.Height)
}

// CompareBrightness returns |t.Brightness - o.Brightness|.
func (t *TileStats) CompareBrightness(o *TileStats) float64 {
	return math.Abs(t.Brightness - o.Brightness)
}

// Key hashes the tile pixels. Tiles with equal keys have, barring
// collisions, identical pixels and therefore identical statistics.
func (t *TileStats) Key() uint64 {
	return xxhash.Sum64(t.Pix)
}

func (t *TileStats) compute() {
	n := t.Width * t.Height

	var luma float64
	var meanSum int
	counts := make(map[imageutil.Color]int)
	var order []imageutil.Color

	for i := 0; i < n; i++ {
		p := t.Pix[i*imageutil.BytesPerPixel:]
		c := imageutil.Color{B: p[0], G: p[1], R: p[2], A: p[3]}

		luma += imageutil.Luma(c)
		meanSum += (int(c.R) + int(c.G) + int(c.B)) / 3
		t.Histogram.Add(c)

		key := c.Opaque()
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}

	t.Brightness = luma / float64(n)
	t.Mean = float64(meanSum) / float64(n)

	var variance float64
	for i := 0; i < n; i++ {
		d := float64(t.Pix[i]) - t.Mean
		variance += d * d
	}
	t.Variance = variance / float64(n)

	t.AverageColor = dominantColor(counts, order, n)
}

// dominantColor returns the mean of the colors covering more than 70% of
// the pixels, or failing that the most frequent color, ties going to the
// color seen first.
func dominantColor(counts map[imageutil.Color]int, order []imageutil.Color, n int) imageutil.Color {
	threshold := averageColorDominance * float64(n)
	var r, g, b, k int
	for _, c := range order {
		if float64(counts[c]) > threshold {
			r += int(c.R)
			g += int(c.G)
			b += int(c.B)
			k++
		}
	}
	if k > 0 {
		return imageutil.Color{R: uint8(r / k), G: uint8(g / k), B: uint8(b / k), A: 255}
	}

	var best imageutil.Color
	bestCount := 0
	for _, c := range order {
		if counts[c] > bestCount {
			best, bestCount = c, counts[c]
		}
	}
	return best
}
