package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"time"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/sync/errgroup"

	"go.jacobcolvin.com/termart/frame"
	"go.jacobcolvin.com/termart/raster"
	"go.jacobcolvin.com/termart/render"
)

// ErrNoPaths indicates playback was requested without any source images.
var ErrNoPaths = errors.New("no input paths")

// Player renders image sequences and plays them back on a terminal.
//
// Create instances with [New].
type Player struct {
	out      io.Writer
	decoder  Decoder
	progress Progress
	logger   *slog.Logger
	sleep    func(context.Context, time.Duration) error
	opts     Options
}

// Option configures a [Player].
type Option func(*Player)

// WithDecoder sets the [Decoder] used to load source images. The default is
// [FileDecoder].
func WithDecoder(d Decoder) Option {
	return func(p *Player) {
		p.decoder = d
	}
}

// WithProgress sets the [Progress] reported while pre-rendering.
func WithProgress(pr Progress) Option {
	return func(p *Player) {
		p.progress = pr
	}
}

// WithLogger sets the logger. The default discards all records.
func WithLogger(l *slog.Logger) Option {
	return func(p *Player) {
		p.logger = l
	}
}

// WithSleep replaces the function used to wait out the remainder of each
// frame's delay.
func WithSleep(fn func(context.Context, time.Duration) error) Option {
	return func(p *Player) {
		p.sleep = fn
	}
}

// New creates a [Player] that writes frames to out.
func New(opts Options, out io.Writer, options ...Option) *Player {
	p := &Player{
		out:      out,
		opts:     opts,
		decoder:  FileDecoder{},
		progress: &Counter{},
		logger:   slog.New(slog.DiscardHandler),
		sleep:    sleepContext,
	}
	for _, opt := range options {
		opt(p)
	}

	return p
}

// Options returns the player's options.
func (p *Player) Options() Options {
	return p.opts
}

// RenderFrame decodes the image at path, applies adaptive thresholding if
// enabled, resizes it and renders it with the configured classifier.
func (p *Player) RenderFrame(ctx context.Context, path string) (*frame.Frame, error) {
	img, err := p.decoder.Decode(path)
	if err != nil {
		if !errors.Is(err, ErrDecode) {
			err = fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
		}

		return nil, err
	}

	if p.opts.ThresholdRadius > 0 {
		img = raster.AdaptiveThreshold(img, p.opts.ThresholdRadius)
	}

	r := render.New(p.opts.Classifier(), p.opts.Colored)
	r.Workers = p.opts.Workers

	f, err := r.RenderImage(ctx, img, p.opts.Spec)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", path, err)
	}

	p.logger.DebugContext(ctx, "rendered frame",
		slog.String("path", path),
		slog.Int("width", f.Width),
		slog.Int("height", f.Height),
	)

	return f, nil
}

// PreRender renders every path concurrently and returns the frames in input
// order. The first error cancels the remaining renders and is returned; no
// frames are returned in that case.
func (p *Player) PreRender(ctx context.Context, paths []string) ([]*frame.Frame, error) {
	frames := make([]*frame.Frame, len(paths))

	p.progress.Start(len(paths))
	defer p.progress.Finish()

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(p.workers())

	for i, path := range paths {
		eg.Go(func() error {
			ctxErr := ctx.Err()
			if ctxErr != nil {
				return ctxErr
			}

			f, err := p.RenderFrame(ctx, path)
			if err != nil {
				return err
			}

			frames[i] = f

			p.progress.Increment()

			return nil
		})
	}

	err := eg.Wait()
	if err != nil {
		return nil, err
	}

	return frames, nil
}

// Play plays paths in order, pre-rendering them first if
// [Options.PreRender] is set. With [Options.Loop] set it repeats until ctx
// is canceled, returning ctx.Err(). Any decode or render error ends
// playback and is returned.
func (p *Player) Play(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return ErrNoPaths
	}

	err := p.opts.Validate()
	if err != nil {
		return err
	}

	p.logger.InfoContext(ctx, "starting playback",
		slog.Int("frames", len(paths)),
		slog.String("mode", string(p.opts.mode())),
		slog.Bool("pre-render", p.opts.PreRender),
		slog.Bool("loop", p.opts.Loop),
	)

	if p.opts.PreRender {
		err = p.playPreRendered(ctx, paths)
	} else {
		err = p.playStreaming(ctx, paths)
	}

	if err != nil {
		return err
	}

	p.logger.InfoContext(ctx, "playback finished")

	return nil
}

func (p *Player) playStreaming(ctx context.Context, paths []string) error {
	d := display{p: p}

	for {
		for _, path := range paths {
			start := time.Now()

			f, err := p.RenderFrame(ctx, path)
			if err != nil {
				return err
			}

			err = d.show(ctx, f, start)
			if err != nil {
				return err
			}
		}

		if !p.opts.Loop {
			return nil
		}
	}
}

func (p *Player) playPreRendered(ctx context.Context, paths []string) error {
	frames, err := p.PreRender(ctx, paths)
	if err != nil {
		return err
	}

	d := display{p: p}

	for {
		for _, f := range frames {
			err := d.show(ctx, f, time.Now())
			if err != nil {
				return err
			}
		}

		if !p.opts.Loop {
			return nil
		}
	}
}

// display tracks whether a frame has been printed yet, so later frames can
// overwrite it in place.
type display struct {
	p       *Player
	started bool
}

func (d *display) show(ctx context.Context, f *frame.Frame, start time.Time) error {
	err := ctx.Err()
	if err != nil {
		return err
	}

	if d.started {
		_, err = io.WriteString(d.p.out, ansi.CursorUp(f.Height))
		if err != nil {
			return fmt.Errorf("write frame: %w", err)
		}
	}

	d.started = true

	_, err = io.WriteString(d.p.out, frame.Format(f)+"\n")
	if err != nil {
		return fmt.Errorf("write frame: %w", err)
	}

	remaining := d.p.opts.FrameDelay - time.Since(start)
	if remaining <= 0 {
		return nil
	}

	return d.p.sleep(ctx, remaining)
}

func (p *Player) workers() int {
	if p.opts.Workers < 1 {
		return runtime.GOMAXPROCS(0)
	}

	return p.opts.Workers
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
