package img2ascii

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"sync"

	"github.com/wbrown/img2ascii/imageutil"
)

// ProgressFunc receives the completed fraction of a conversion, in
// (0, 1]. Calls are serialised and never decrease.
type ProgressFunc func(fraction float64)

// Output accumulates the glyphs chosen for each tile into a result of
// type T. An Output is used for a single conversion.
type Output[T any] interface {
	// Begin is called once with the mosaic size in pixels, which is the
	// source size truncated to whole cells.
	Begin(size image.Point) error
	// Put records glyph g for the tile whose top-left pixel is at.
	// Parallel conversions call Put concurrently for disjoint tiles.
	Put(g Glyph, at image.Point, tile *TileStats)
	// Finish returns the result after every tile has been put.
	Finish() (T, error)
}

// Converter turns images into mosaics of the glyphs its Scorer selects.
// A Converter holds no per-conversion state and may run any number of
// conversions at once.
type Converter[T any] struct {
	scorer    Scorer
	newOutput func() Output[T]
	parallel  bool
	workers   int
	cache     *SelectionCache
}

type converterOptions struct {
	workers  int
	parallel *bool
	cache    *SelectionCache
}

// ConverterOption is a functional option for configuring a Converter.
type ConverterOption func(*converterOptions)

// WithWorkers sets the size of the tile worker pool. Defaults to
// runtime.NumCPU().
func WithWorkers(n int) ConverterOption {
	return func(o *converterOptions) {
		o.workers = n
	}
}

// WithParallel(false) forces tiles to be scored one at a time. Outputs
// that depend on tile order are always sequential.
func WithParallel(parallel bool) ConverterOption {
	return func(o *converterOptions) {
		o.parallel = &parallel
	}
}

// WithSelectionCache reuses earlier decisions for tiles with identical
// pixels. A nil cache creates a private one. A cache must only be shared
// between converters built on the same Scorer.
func WithSelectionCache(cache *SelectionCache) ConverterOption {
	return func(o *converterOptions) {
		if cache == nil {
			cache = NewSelectionCache()
		}
		o.cache = cache
	}
}

// NewConverter creates a Converter that feeds a fresh output from
// newOutput on every conversion. parallel reports whether the output
// accepts concurrent Put calls.
func NewConverter[T any](scorer Scorer, newOutput func() Output[T], parallel bool, opts ...ConverterOption) *Converter[T] {
	o := converterOptions{workers: runtime.NumCPU()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.parallel != nil {
		parallel = parallel && *o.parallel
	}
	return &Converter[T]{
		scorer:    scorer,
		newOutput: newOutput,
		parallel:  parallel,
		workers:   max(o.workers, 1),
		cache:     o.cache,
	}
}

// Scorer returns the scorer glyphs are selected with.
func (c *Converter[T]) Scorer() Scorer {
	return c.scorer
}

// SelectionCache returns the attached cache, or nil.
func (c *Converter[T]) SelectionCache() *SelectionCache {
	return c.cache
}

// Convert runs a full conversion of img. A nil progress is allowed. The
// context is checked between tiles; a cancelled conversion returns
// ctx.Err().
func (c *Converter[T]) Convert(ctx context.Context, img image.Image, progress ProgressFunc) (T, error) {
	var zero T
	if c.scorer == nil {
		return zero, ErrEmptyAlphabet
	}

	buf := imageutil.FromImage(img)
	cell := c.scorer.Alphabet().CellSize()
	grid := tileGrid(buf.Size(), cell)
	total := grid.X * grid.Y

	out := c.newOutput()
	if err := out.Begin(image.Pt(grid.X*cell.X, grid.Y*cell.Y)); err != nil {
		return zero, fmt.Errorf("failed to initialise output: %w", err)
	}

	report := newProgressReporter(total, progress)
	process := func(i int) error {
		origin := tileOrigin(i, grid.X, cell)
		tile, err := NewTileStatsFromRegion(buf.Pix, buf.Stride(), origin, cell)
		if err != nil {
			return err
		}
		out.Put(c.selectGlyph(tile), origin, tile)
		report.add(1)
		return nil
	}

	var err error
	if c.parallel && total > 1 {
		err = c.runParallel(ctx, total, process)
	} else {
		err = runSequential(ctx, total, process)
	}
	if err != nil {
		return zero, err
	}
	return out.Finish()
}

// ConvertFile decodes the image at path and converts it.
func (c *Converter[T]) ConvertFile(ctx context.Context, path string, progress ProgressFunc) (T, error) {
	img, err := imageutil.LoadImage(path)
	if err != nil {
		var zero T
		return zero, err
	}
	return c.Convert(ctx, img, progress)
}

// Task is a conversion running on its own goroutine.
type Task[T any] struct {
	done   chan struct{}
	result T
	err    error
}

// Wait blocks until the conversion finishes.
func (t *Task[T]) Wait() (T, error) {
	<-t.done
	return t.result, t.err
}

// Done is closed when the conversion finishes.
func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

// ConvertAsync starts Convert in the background.
func (c *Converter[T]) ConvertAsync(ctx context.Context, img image.Image, progress ProgressFunc) *Task[T] {
	t := &Task[T]{done: make(chan struct{})}
	go func() {
		defer close(t.done)
		t.result, t.err = c.Convert(ctx, img, progress)
	}()
	return t
}

func (c *Converter[T]) selectGlyph(tile *TileStats) Glyph {
	if c.cache == nil {
		return c.scorer.SelectGlyph(tile)
	}
	key := tile.Key()
	if g, ok := c.cache.Get(key); ok {
		return g
	}
	g := c.scorer.SelectGlyph(tile)
	c.cache.Put(key, g)
	return g
}

func runSequential(ctx context.Context, total int, process func(int) error) error {
	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := process(i); err != nil {
			return err
		}
	}
	return ctx.Err()
}

// runParallel hands tile indices to a fixed pool of workers. The first
// error stops the remaining workers.
func (c *Converter[T]) runParallel(ctx context.Context, total int, process func(int) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan int)
	var wg sync.WaitGroup
	var once sync.Once
	var firstErr error

	workers := min(c.workers, total)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					continue
				}
				if err := process(i); err != nil {
					once.Do(func() {
						firstErr = err
						cancel()
					})
				}
			}
		}()
	}

feed:
	for i := 0; i < total; i++ {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}

// progressReporter turns completed units into serialised, monotonic
// fractions.
type progressReporter struct {
	mu        sync.Mutex
	completed int
	total     int
	sink      ProgressFunc
}

func newProgressReporter(total int, sink ProgressFunc) *progressReporter {
	return &progressReporter{total: total, sink: sink}
}

func (p *progressReporter) add(n int) {
	if p.sink == nil || p.total == 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.completed += n
	p.sink(float64(p.completed) / float64(p.total))
}
