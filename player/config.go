package player

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"go.jacobcolvin.com/termart/render"
	"go.jacobcolvin.com/termart/resize"
)

// Flags holds CLI flag names for playback configuration, allowing callers to
// customize flag names while keeping sensible defaults via [NewConfig].
type Flags struct {
	Width            string
	Height           string
	Framerate        string
	PreRender        string
	Loop             string
	Colored          string
	AsciiString      string
	Reverse          string
	Pixels           string
	Ratio            string
	Threshold        string
	Braille          string
	BackgroundString string
	Filter           string
	Workers          string
	Fit              string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags: f,
	}
}

// Config holds CLI flag values for playback configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewOptions] to resolve the flag
// values into [Options].
type Config struct {
	Flags Flags

	AsciiString      string
	BackgroundString string
	Filter           string

	Framerate float64
	Ratio     float64

	Width     int
	Height    int
	Threshold int
	Workers   int

	PreRender bool
	Loop      bool
	Colored   bool
	Reverse   bool
	Pixels    bool
	Braille   bool
	Fit       bool
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	f := Flags{
		Width:            "width",
		Height:           "height",
		Framerate:        "framerate",
		PreRender:        "pre-render",
		Loop:             "loop",
		Colored:          "colored",
		AsciiString:      "ascii-string",
		Reverse:          "reverse",
		Pixels:           "pixels",
		Ratio:            "ratio",
		Threshold:        "threshold",
		Braille:          "braille",
		BackgroundString: "background-string",
		Filter:           "filter",
		Workers:          "workers",
		Fit:              "fit",
	}

	return f.NewConfig()
}

// RegisterFlags adds playback flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	// Size.
	flags.IntVarP(&c.Width, c.Flags.Width, "w", 0, "output width in pixels before classification (0 = derive)")
	flags.IntVarP(&c.Height, c.Flags.Height, "H", 0, "output height in pixels before classification (0 = derive)")
	flags.Float64Var(&c.Ratio, c.Flags.Ratio, 0,
		fmt.Sprintf("font cell width/height ratio (0 = %.4f, or %.4f with --%s)",
			resize.DefaultFontRatio, resize.BrailleFontRatio, c.Flags.Braille))
	flags.StringVar(&c.Filter, c.Flags.Filter, string(resize.FilterTriangle),
		fmt.Sprintf("resize filter, one of: %s", resize.FilterNames()))
	flags.BoolVar(&c.Fit, c.Flags.Fit, false, "fit the output to the terminal width")

	// Rendering.
	flags.StringVarP(&c.AsciiString, c.Flags.AsciiString, "a", render.DefaultRamp, "glyph ramp, darkest to lightest")
	flags.BoolVarP(&c.Reverse, c.Flags.Reverse, "r", false, "reverse the glyph ramp")
	flags.BoolVarP(&c.Colored, c.Flags.Colored, "c", false, "colorize output with truecolor escapes")
	flags.BoolVar(&c.Pixels, c.Flags.Pixels, false, "draw solid colored blocks (implies --"+c.Flags.Colored+")")
	flags.BoolVarP(&c.Braille, c.Flags.Braille, "b", false, "render with braille patterns")
	flags.StringVar(&c.BackgroundString, c.Flags.BackgroundString, "", "tile this string across lit pixels")
	flags.IntVarP(&c.Threshold, c.Flags.Threshold, "t", 0, "adaptive threshold radius (0 = disabled)")

	// Playback.
	flags.Float64VarP(&c.Framerate, c.Flags.Framerate, "f", 0, "frames per second (0 = unthrottled)")
	flags.BoolVarP(&c.PreRender, c.Flags.PreRender, "p", false, "render all frames before playback")
	flags.BoolVarP(&c.Loop, c.Flags.Loop, "l", false, "loop playback until interrupted")
	flags.IntVar(&c.Workers, c.Flags.Workers, 0, "parallel render workers (0 = GOMAXPROCS)")
}

// RegisterCompletions registers shell completions for playback flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Filter,
		cobra.FixedCompletions(resize.FilterNames(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Filter, err)
	}

	noFileComp := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	for _, flag := range []string{
		c.Flags.Width,
		c.Flags.Height,
		c.Flags.Framerate,
		c.Flags.AsciiString,
		c.Flags.Ratio,
		c.Flags.Threshold,
		c.Flags.BackgroundString,
		c.Flags.Workers,
	} {
		regErr := cmd.RegisterFlagCompletionFunc(flag, noFileComp)
		if regErr != nil {
			return fmt.Errorf("registering %s completion: %w", flag, regErr)
		}
	}

	return nil
}

// NewOptions resolves the flag values into [Options].
//
// The background string takes precedence over braille mode. --pixels
// replaces the ramp with a solid block and enables color; otherwise
// --reverse reverses the ramp. When --fit is set and no size was given,
// termWidth supplies the terminal's column count.
func (c *Config) NewOptions(termWidth func() (int, error)) (Options, error) {
	opts := DefaultOptions()

	opts.Width = c.Width
	opts.Height = c.Height
	opts.FrameDelay = FrameDelayFromRate(c.Framerate)
	opts.PreRender = c.PreRender
	opts.Loop = c.Loop
	opts.ThresholdRadius = c.Threshold
	opts.Workers = c.Workers

	filter, err := resize.ParseFilter(c.Filter)
	if err != nil {
		return Options{}, fmt.Errorf("%w: %w", ErrInvalidOption, err)
	}

	opts.Filter = filter

	switch {
	case c.BackgroundString != "":
		opts.Mode = ModeStencil
		opts.StencilText = c.BackgroundString
	case c.Braille:
		opts.Mode = ModeBraille
	default:
		opts.Mode = ModeASCII
	}

	if c.Ratio < 0 {
		return Options{}, fmt.Errorf("%w: negative font ratio %v", ErrInvalidOption, c.Ratio)
	}

	switch {
	case c.Ratio > 0:
		opts.FontRatio = c.Ratio
	case c.Braille:
		opts.FontRatio = resize.BrailleFontRatio
	default:
		opts.FontRatio = resize.DefaultFontRatio
	}

	switch {
	case c.Pixels:
		opts.Ramp = render.PixelRamp
		opts.Colored = true
	case c.Reverse:
		ramp := []rune(c.AsciiString)
		slices.Reverse(ramp)
		opts.Ramp = string(ramp)
		opts.Colored = c.Colored
	default:
		opts.Ramp = c.AsciiString
		opts.Colored = c.Colored
	}

	if c.Fit && c.Width == 0 && c.Height == 0 && termWidth != nil {
		cols, err := termWidth()
		if err != nil {
			return Options{}, fmt.Errorf("%w: detect terminal width: %w", ErrInvalidOption, err)
		}

		opts.Width = cols
		if opts.Mode == ModeBraille {
			opts.Width = cols * 2
		}
	}

	err = opts.Validate()
	if err != nil {
		return Options{}, err
	}

	return opts, nil
}
