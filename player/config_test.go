package player_test

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/termart/player"
	"go.jacobcolvin.com/termart/render"
	"go.jacobcolvin.com/termart/resize"
)

func TestConfig_RegisterFlags_Parsing(t *testing.T) {
	t.Parallel()

	cfg := player.NewConfig()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.RegisterFlags(flags)

	err := flags.Parse([]string{
		"-w", "80",
		"-H", "20",
		"-f", "12.5",
		"-p", "-l", "-c", "-r", "-b",
		"-a", " #",
		"-t", "3",
		"--pixels",
		"--ratio=0.5",
		"--background-string=HI",
		"--filter=lanczos3",
		"--workers=2",
		"--fit",
	})
	require.NoError(t, err)

	assert.Equal(t, 80, cfg.Width)
	assert.Equal(t, 20, cfg.Height)
	assert.InDelta(t, 12.5, cfg.Framerate, 1e-9)
	assert.True(t, cfg.PreRender)
	assert.True(t, cfg.Loop)
	assert.True(t, cfg.Colored)
	assert.True(t, cfg.Reverse)
	assert.True(t, cfg.Braille)
	assert.True(t, cfg.Pixels)
	assert.True(t, cfg.Fit)
	assert.Equal(t, " #", cfg.AsciiString)
	assert.Equal(t, 3, cfg.Threshold)
	assert.InDelta(t, 0.5, cfg.Ratio, 1e-9)
	assert.Equal(t, "HI", cfg.BackgroundString)
	assert.Equal(t, "lanczos3", cfg.Filter)
	assert.Equal(t, 2, cfg.Workers)
}

func TestConfig_RegisterFlags_Defaults(t *testing.T) {
	t.Parallel()

	cfg := player.NewConfig()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.RegisterFlags(flags)

	require.NoError(t, flags.Parse(nil))

	assert.Equal(t, render.DefaultRamp, cfg.AsciiString)
	assert.Equal(t, string(resize.FilterTriangle), cfg.Filter)

	opts, err := cfg.NewOptions(nil)
	require.NoError(t, err)

	want := player.DefaultOptions()
	assert.Equal(t, want, opts)
}

func TestConfig_RegisterCompletions(t *testing.T) {
	t.Parallel()

	cfg := player.NewConfig()

	cmd := &cobra.Command{Use: "test"}
	cfg.RegisterFlags(cmd.Flags())

	require.NoError(t, cfg.RegisterCompletions(cmd))

	tcs := map[string]struct {
		flag string
		want []string
	}{
		"filter": {
			flag: "filter",
			want: resize.FilterNames(),
		},
		"width": {
			flag: "width",
			want: nil,
		},
		"background-string": {
			flag: "background-string",
			want: nil,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			completionFn, ok := cmd.GetFlagCompletionFunc(tc.flag)
			require.True(t, ok)

			values, directive := completionFn(cmd, nil, "")
			assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
			assert.Equal(t, tc.want, values)
		})
	}
}

func TestConfig_NewOptions(t *testing.T) {
	t.Parallel()

	errNoTerminal := errors.New("not a terminal")

	tcs := map[string]struct {
		termWidth func() (int, error)
		check     func(*testing.T, player.Options)
		args      []string
		wantErr   error
	}{
		"framerate": {
			args: []string{"-f", "24"},
			check: func(t *testing.T, o player.Options) {
				t.Helper()
				assert.Equal(t, 41*time.Millisecond, o.FrameDelay)
			},
		},
		"reverse": {
			args: []string{"-r", "-a", "ab€"},
			check: func(t *testing.T, o player.Options) {
				t.Helper()
				assert.Equal(t, "€ba", o.Ramp)
			},
		},
		"pixels forces the block ramp and color": {
			args: []string{"--pixels", "-r", "-a", "xyz"},
			check: func(t *testing.T, o player.Options) {
				t.Helper()
				assert.Equal(t, render.PixelRamp, o.Ramp)
				assert.True(t, o.Colored)
			},
		},
		"braille uses the braille ratio": {
			args: []string{"-b"},
			check: func(t *testing.T, o player.Options) {
				t.Helper()
				assert.Equal(t, player.ModeBraille, o.Mode)
				assert.InDelta(t, resize.BrailleFontRatio, o.FontRatio, 1e-9)
			},
		},
		"explicit ratio wins": {
			args: []string{"-b", "--ratio=1"},
			check: func(t *testing.T, o player.Options) {
				t.Helper()
				assert.InDelta(t, 1.0, o.FontRatio, 1e-9)
			},
		},
		"background string wins over braille": {
			args: []string{"-b", "--background-string=HI"},
			check: func(t *testing.T, o player.Options) {
				t.Helper()
				assert.Equal(t, player.ModeStencil, o.Mode)
				assert.Equal(t, "HI", o.StencilText)
			},
		},
		"fit uses terminal width": {
			args:      []string{"--fit"},
			termWidth: func() (int, error) { return 100, nil },
			check: func(t *testing.T, o player.Options) {
				t.Helper()
				assert.Equal(t, 100, o.Width)
				assert.Zero(t, o.Height)
			},
		},
		"fit doubles for braille": {
			args:      []string{"--fit", "-b"},
			termWidth: func() (int, error) { return 100, nil },
			check: func(t *testing.T, o player.Options) {
				t.Helper()
				assert.Equal(t, 200, o.Width)
			},
		},
		"fit yields to explicit size": {
			args:      []string{"--fit", "-H", "10"},
			termWidth: func() (int, error) { return 100, nil },
			check: func(t *testing.T, o player.Options) {
				t.Helper()
				assert.Zero(t, o.Width)
				assert.Equal(t, 10, o.Height)
			},
		},
		"fit without a terminal": {
			args:      []string{"--fit"},
			termWidth: func() (int, error) { return 0, errNoTerminal },
			wantErr:   errNoTerminal,
		},
		"unknown filter": {
			args:    []string{"--filter=bicubic"},
			wantErr: resize.ErrUnknownFilter,
		},
		"empty ramp": {
			args:    []string{"-a", ""},
			wantErr: player.ErrInvalidOption,
		},
		"unprintable ramp": {
			args:    []string{"-a", "a\tb"},
			wantErr: render.ErrUnprintable,
		},
		"negative width": {
			args:    []string{"--width=-3"},
			wantErr: player.ErrInvalidOption,
		},
		"negative ratio": {
			args:    []string{"--ratio=-1"},
			wantErr: player.ErrInvalidOption,
		},
		"huge width": {
			args:    []string{"--width=2147483648"},
			wantErr: resize.ErrTooLarge,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := player.NewConfig()
			flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
			cfg.RegisterFlags(flags)
			require.NoError(t, flags.Parse(tc.args))

			opts, err := cfg.NewOptions(tc.termWidth)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				require.ErrorIs(t, err, player.ErrInvalidOption)

				return
			}

			require.NoError(t, err)
			tc.check(t, opts)
		})
	}
}
