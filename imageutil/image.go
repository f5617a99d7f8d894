// Package imageutil provides the pixel buffer used throughout img2ascii
// together with pure Go helpers for decoding, encoding, resizing and
// grayscale conversion.
package imageutil

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// BytesPerPixel is the width of one pixel in a PixelBuffer.
const BytesPerPixel = 4

// ErrSizeMismatch is returned when a byte slice does not hold exactly
// width*height pixels, or a region does not fit inside its source.
var ErrSizeMismatch = errors.New("pixel data does not match dimensions")

// Color is an 8-bit per channel color with alpha.
type Color struct {
	R, G, B, A uint8
}

// Opaque returns c with alpha forced to 255.
func (c Color) Opaque() Color {
	c.A = 255
	return c
}

// RGBA implements color.Color. Channels are treated as non-premultiplied.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// ColorFrom converts any color.Color to a Color.
func ColorFrom(c color.Color) Color {
	if own, ok := c.(Color); ok {
		return own
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

// PixelBuffer is a row-major pixel grid stored as B,G,R,A bytes with a
// stride of Width*4. It implements image.Image so it can be handed to any
// encoder directly.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []byte
}

// NewPixelBuffer allocates a transparent black buffer.
func NewPixelBuffer(width, height int) *PixelBuffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*BytesPerPixel),
	}
}

// NewPixelBufferFromBytes wraps pix without copying. The slice must hold
// exactly width*height pixels.
func NewPixelBufferFromBytes(width, height int, pix []byte) (*PixelBuffer, error) {
	if width < 0 || height < 0 || len(pix) != width*height*BytesPerPixel {
		return nil, fmt.Errorf("%w: %dx%d needs %d bytes, got %d",
			ErrSizeMismatch, width, height, width*height*BytesPerPixel, len(pix))
	}
	return &PixelBuffer{Width: width, Height: height, Pix: pix}, nil
}

// FromImage converts any image into the canonical BGRA layout. A
// *PixelBuffer is returned unchanged.
func FromImage(img image.Image) *PixelBuffer {
	if pb, ok := img.(*PixelBuffer); ok {
		return pb
	}
	bounds := img.Bounds()
	pb := NewPixelBuffer(bounds.Dx(), bounds.Dy())

	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := 0; y < pb.Height; y++ {
			src := nrgba.Pix[nrgba.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
			dst := pb.Pix[y*pb.Stride():]
			for x := 0; x < pb.Width; x++ {
				i := x * BytesPerPixel
				dst[i], dst[i+1], dst[i+2], dst[i+3] = src[i+2], src[i+1], src[i], src[i+3]
			}
		}
		return pb
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			pb.SetColor(x-bounds.Min.X, y-bounds.Min.Y, ColorFrom(img.At(x, y)))
		}
	}
	return pb
}

// Stride returns the number of bytes per row.
func (pb *PixelBuffer) Stride() int {
	return pb.Width * BytesPerPixel
}

// Size returns the buffer dimensions.
func (pb *PixelBuffer) Size() image.Point {
	return image.Pt(pb.Width, pb.Height)
}

// PixOffset returns the index of the first byte of pixel (x, y).
func (pb *PixelBuffer) PixOffset(x, y int) int {
	return y*pb.Stride() + x*BytesPerPixel
}

// ColorModel implements image.Image.
func (pb *PixelBuffer) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements image.Image.
func (pb *PixelBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, pb.Width, pb.Height)
}

// At implements image.Image.
func (pb *PixelBuffer) At(x, y int) color.Color {
	c := pb.ColorAt(x, y)
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Set stores any color.Color at (x, y).
func (pb *PixelBuffer) Set(x, y int, c color.Color) {
	pb.SetColor(x, y, ColorFrom(c))
}

// ColorAt returns the pixel at (x, y), or the zero Color when out of
// bounds.
func (pb *PixelBuffer) ColorAt(x, y int) Color {
	if !(image.Point{X: x, Y: y}.In(pb.Bounds())) {
		return Color{}
	}
	i := pb.PixOffset(x, y)
	s := pb.Pix[i : i+4 : i+4]
	return Color{B: s[0], G: s[1], R: s[2], A: s[3]}
}

// SetColor stores c at (x, y). Out of bounds writes are ignored.
func (pb *PixelBuffer) SetColor(x, y int, c Color) {
	if !(image.Point{X: x, Y: y}.In(pb.Bounds())) {
		return
	}
	i := pb.PixOffset(x, y)
	s := pb.Pix[i : i+4 : i+4]
	s[0], s[1], s[2], s[3] = c.B, c.G, c.R, c.A
}

// Fill sets every pixel to c.
func (pb *PixelBuffer) Fill(c Color) {
	for i := 0; i < len(pb.Pix); i += BytesPerPixel {
		pb.Pix[i], pb.Pix[i+1], pb.Pix[i+2], pb.Pix[i+3] = c.B, c.G, c.R, c.A
	}
}

// Clone creates a deep copy of the buffer.
func (pb *PixelBuffer) Clone() *PixelBuffer {
	clone := NewPixelBuffer(pb.Width, pb.Height)
	copy(clone.Pix, pb.Pix)
	return clone
}

// ToNRGBA copies the buffer into a standard library image.
func (pb *PixelBuffer) ToNRGBA() *image.NRGBA {
	dst := image.NewNRGBA(pb.Bounds())
	for i := 0; i < len(pb.Pix); i += BytesPerPixel {
		dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2], dst.Pix[i+3] =
			pb.Pix[i+2], pb.Pix[i+1], pb.Pix[i], pb.Pix[i+3]
	}
	return dst
}
