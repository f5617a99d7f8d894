package img2ascii

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"io"
	"os"

	"github.com/wbrown/img2ascii/imageutil"
)

const gifHeaderSize = 13

// loopExtension is the NETSCAPE2.0 application extension with a loop
// count of 0, meaning loop forever.
var loopExtension = []byte{
	0x21, 0xFF, 0x0B,
	'N', 'E', 'T', 'S', 'C', 'A', 'P', 'E', '2', '.', '0',
	0x03, 0x01, 0x00, 0x00, 0x00,
}

var errNotGIF = errors.New("not a GIF stream")

// AnimationConverter converts animated GIFs frame by frame with a raster
// Converter and re-encodes the result.
type AnimationConverter struct {
	converter *Converter[*imageutil.PixelBuffer]

	// InjectLoop splices a fixed loop-forever block after the header
	// instead of relying on the encoder's own loop count.
	InjectLoop bool
}

// NewAnimationConverter creates an AnimationConverter whose frames are
// rendered like NewImageConverter. InjectLoop is enabled.
func NewAnimationConverter(scorer Scorer, policy ColorPolicy, opts ...ConverterOption) *AnimationConverter {
	return &AnimationConverter{
		converter:  NewImageConverter(scorer, policy, opts...),
		InjectLoop: true,
	}
}

// ConvertFile reads the GIF at src and writes the converted animation
// to dst.
func (a *AnimationConverter) ConvertFile(ctx context.Context, src, dst string, progress ProgressFunc) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open animation: %w", err)
	}
	defer in.Close()

	var buf bytes.Buffer
	if err := a.Convert(ctx, in, &buf, progress); err != nil {
		return err
	}
	if err := os.WriteFile(dst, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write animation: %w", err)
	}
	return nil
}

// Convert decodes a GIF from r, converts every frame and writes the
// encoded result to w.
func (a *AnimationConverter) Convert(ctx context.Context, r io.Reader, w io.Writer, progress ProgressFunc) error {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return fmt.Errorf("failed to decode animation: %w", err)
	}
	out, err := a.ConvertGIF(ctx, g, progress)
	if err != nil {
		return err
	}
	return a.Encode(w, out)
}

// ConvertGIF converts each frame of g strictly in order. Frames are
// composited onto a full canvas first so partial frames convert like
// what a viewer would show. Progress is reported as
// (frames done + frame fraction) / frame count.
func (a *AnimationConverter) ConvertGIF(ctx context.Context, g *gif.GIF, progress ProgressFunc) (*gif.GIF, error) {
	if len(g.Image) == 0 {
		return nil, fmt.Errorf("%w: no frames", errNotGIF)
	}

	canvas := image.NewNRGBA(animationBounds(g))
	total := float64(len(g.Image))
	out := &gif.GIF{
		Image: make([]*image.Paletted, 0, len(g.Image)),
		Delay: make([]int, 0, len(g.Image)),
	}

	for i, frame := range g.Image {
		disposal := byte(gif.DisposalNone)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		var previous *image.NRGBA
		if disposal == gif.DisposalPrevious {
			previous = cloneNRGBA(canvas)
		}

		draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)

		done := float64(i)
		var frameProgress ProgressFunc
		if progress != nil {
			frameProgress = func(p float64) { progress((done + p) / total) }
		}
		converted, err := a.converter.Convert(ctx, imageutil.FromImage(canvas), frameProgress)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}

		out.Image = append(out.Image, imageutil.Quantize(converted))
		delay := 0
		if i < len(g.Delay) {
			delay = g.Delay[i]
		}
		out.Delay = append(out.Delay, delay)

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, frame.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			canvas = previous
		}
	}
	return out, nil
}

// Encode writes g. With InjectLoop the encoder writes no loop block of
// its own and the fixed block is spliced in; otherwise the encoder loops
// forever natively.
func (a *AnimationConverter) Encode(w io.Writer, g *gif.GIF) error {
	g.Config = image.Config{}
	if !a.InjectLoop {
		g.LoopCount = 0
		if err := gif.EncodeAll(w, g); err != nil {
			return fmt.Errorf("failed to encode animation: %w", err)
		}
		return nil
	}

	g.LoopCount = -1
	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, g); err != nil {
		return fmt.Errorf("failed to encode animation: %w", err)
	}
	b, err := SpliceLoopExtension(buf.Bytes())
	if err != nil {
		return err
	}
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("failed to write animation: %w", err)
	}
	return nil
}

// SpliceLoopExtension returns a copy of the GIF stream b with the
// loop-forever block inserted right after the header and global color
// table, if any.
func SpliceLoopExtension(b []byte) ([]byte, error) {
	if len(b) < gifHeaderSize || !bytes.HasPrefix(b, []byte("GIF8")) {
		return nil, errNotGIF
	}
	at := gifHeaderSize
	if flags := b[10]; flags&0x80 != 0 {
		at += 3 << (1 + flags&0x07)
	}
	if at > len(b) {
		return nil, fmt.Errorf("%w: truncated color table", errNotGIF)
	}

	out := make([]byte, 0, len(b)+len(loopExtension))
	out = append(out, b[:at]...)
	out = append(out, loopExtension...)
	out = append(out, b[at:]...)
	return out, nil
}

func animationBounds(g *gif.GIF) image.Rectangle {
	if g.Config.Width > 0 && g.Config.Height > 0 {
		return image.Rect(0, 0, g.Config.Width, g.Config.Height)
	}
	var r image.Rectangle
	for _, frame := range g.Image {
		r = r.Union(frame.Bounds())
	}
	return image.Rect(0, 0, r.Max.X, r.Max.Y)
}

func cloneNRGBA(src *image.NRGBA) *image.NRGBA {
	dst := image.NewNRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}
