package player

import (
	"errors"
	"fmt"
	"time"

	"go.jacobcolvin.com/termart/render"
	"go.jacobcolvin.com/termart/resize"
)

// ErrInvalidOption indicates an [Options] value that cannot be played.
var ErrInvalidOption = errors.New("invalid option")

// Mode selects the classifier used to render each frame.
type Mode string

const (
	// ModeASCII maps luminance onto a glyph ramp.
	ModeASCII Mode = "ascii"
	// ModeBraille packs 2x4 pixel blocks into Braille patterns.
	ModeBraille Mode = "braille"
	// ModeStencil tiles a string across lit pixels.
	ModeStencil Mode = "stencil"
)

// Options configures a [Player].
type Options struct {
	// Mode selects the classifier. The zero value is [ModeASCII].
	Mode Mode
	// StencilText is tiled across lit pixels in [ModeStencil].
	StencilText string

	render.Options
	resize.Spec

	// FrameDelay is the minimum time between the start of two frames.
	FrameDelay time.Duration
	// ThresholdRadius enables adaptive thresholding with the given window
	// radius when greater than zero.
	ThresholdRadius int
	// Workers bounds parallelism both within a frame and across frames
	// while pre-rendering. Zero uses GOMAXPROCS.
	Workers int

	// PreRender renders every frame before playback starts.
	PreRender bool
	// Loop repeats the sequence until the context is canceled.
	Loop bool
}

// DefaultOptions returns [Options] for plain ASCII playback with the default
// ramp, font ratio and filter.
func DefaultOptions() Options {
	return Options{
		Mode:    ModeASCII,
		Options: render.DefaultOptions(),
		Spec: resize.Spec{
			FontRatio: resize.DefaultFontRatio,
			Filter:    resize.FilterTriangle,
		},
	}
}

// FrameDelayFromRate converts a frame rate to the delay between frames,
// truncated to whole milliseconds. A rate of zero or less disables
// throttling.
func FrameDelayFromRate(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}

	return time.Duration(1000/fps) * time.Millisecond
}

// Validate reports the first problem with o, wrapping [ErrInvalidOption].
func (o Options) Validate() error {
	if o.Width < 0 || o.Height < 0 {
		return fmt.Errorf("%w: negative size %dx%d", ErrInvalidOption, o.Width, o.Height)
	}

	if o.Width > resize.MaxDimension || o.Height > resize.MaxDimension {
		return fmt.Errorf("%w: %w: %dx%d", ErrInvalidOption, resize.ErrTooLarge, o.Width, o.Height)
	}

	if !(o.FontRatio > 0) {
		return fmt.Errorf("%w: font ratio must be positive, got %v", ErrInvalidOption, o.FontRatio)
	}

	if o.ThresholdRadius < 0 {
		return fmt.Errorf("%w: negative threshold radius %d", ErrInvalidOption, o.ThresholdRadius)
	}

	if o.FrameDelay < 0 {
		return fmt.Errorf("%w: negative frame delay %s", ErrInvalidOption, o.FrameDelay)
	}

	if o.Filter != "" {
		_, err := resize.ParseFilter(string(o.Filter))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidOption, err)
		}
	}

	switch o.mode() {
	case ModeASCII:
		return checkGlyphs("glyph ramp", o.Ramp)
	case ModeStencil:
		return checkGlyphs("stencil text", o.StencilText)
	case ModeBraille:
		return nil
	}

	return fmt.Errorf("%w: unknown mode %q", ErrInvalidOption, o.Mode)
}

// Classifier returns the [render.Classifier] for o's mode.
func (o Options) Classifier() render.Classifier {
	switch o.mode() {
	case ModeBraille:
		return render.NewBraille()
	case ModeStencil:
		return render.NewStencil(o.StencilText)
	}

	return render.NewAscii(o.Ramp)
}

func (o Options) mode() Mode {
	if o.Mode == "" {
		return ModeASCII
	}

	return o.Mode
}

func checkGlyphs(what, s string) error {
	if s == "" {
		return fmt.Errorf("%w: empty %s", ErrInvalidOption, what)
	}

	err := render.CheckGlyphs([]rune(s))
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidOption, what, err)
	}

	return nil
}
