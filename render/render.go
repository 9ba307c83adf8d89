package render

import (
	"context"
	"fmt"
	"image"
	"runtime"

	"golang.org/x/sync/errgroup"

	"go.jacobcolvin.com/termart/frame"
	"go.jacobcolvin.com/termart/raster"
	"go.jacobcolvin.com/termart/resize"
)

// Options configures glyph-ramp conversion.
type Options struct {
	// Ramp is the glyph ramp, darkest to lightest.
	Ramp string
	// Colored enables truecolor output in the rendered frame.
	Colored bool
}

// DefaultOptions returns [Options] using [DefaultRamp] without color.
func DefaultOptions() Options {
	return Options{Ramp: DefaultRamp}
}

// Renderer converts a [raster.Grid] into a [frame.Frame] using a
// [Classifier].
//
// Rows are classified concurrently by up to Workers goroutines. Workers
// below one uses [runtime.GOMAXPROCS]; a value of one classifies rows one
// at a time.
type Renderer struct {
	Classifier Classifier
	Workers    int
	Colored    bool
}

// New returns a [Renderer] for c.
func New(c Classifier, colored bool) *Renderer {
	return &Renderer{
		Classifier: c,
		Colored:    colored,
	}
}

// Render classifies every cell of g. It returns [ErrSize] before doing any
// work if g is too small for the classifier, and the first classification
// error otherwise. No partial frame is returned.
func (r *Renderer) Render(ctx context.Context, g *raster.Grid) (*frame.Frame, error) {
	cols, rows, err := r.Classifier.Size(g.Width, g.Height)
	if err != nil {
		return nil, err
	}

	cells := make([]frame.Cell, cols*rows)

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(r.workers())

	for row := range rows {
		eg.Go(func() error {
			ctxErr := ctx.Err()
			if ctxErr != nil {
				return ctxErr
			}

			line := cells[row*cols : (row+1)*cols]
			for col := range line {
				cell, err := r.Classifier.Classify(g, col, row)
				if err != nil {
					return err
				}

				line[col] = cell
			}

			return nil
		})
	}

	err = eg.Wait()
	if err != nil {
		return nil, err
	}

	return frame.New(cells, cols, rows, r.Colored)
}

// RenderImage resizes img according to spec, converts it to a
// [raster.Grid] and renders it. Sizes rejected by [resize.Check] are
// reported as [ErrSize].
func (r *Renderer) RenderImage(ctx context.Context, img image.Image, spec resize.Spec) (*frame.Frame, error) {
	resized, err := resize.Resize(img, spec)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSize, err)
	}

	return r.Render(ctx, raster.FromImage(resized))
}

func (r *Renderer) workers() int {
	if r.Workers < 1 {
		return runtime.GOMAXPROCS(0)
	}

	return r.Workers
}
