// Command termart plays image sequences as text animations in the terminal.
//
// Each argument is an image file, a directory of images (played in name
// order) or a glob pattern. Frames are rendered as ASCII, Braille patterns or
// a tiled stencil string, optionally in truecolor.
//
// # Usage
//
//	termart [flags] <image|directory|glob>...
//	termart schema
//
// Run termart --help for the full flag list. Settings can also be read from
// a YAML preset with --config; flags given on the command line win.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"go.jacobcolvin.com/termart/log"
	"go.jacobcolvin.com/termart/player"
	"go.jacobcolvin.com/termart/preset"
	"go.jacobcolvin.com/termart/profile"
	"go.jacobcolvin.com/termart/tui"
	"go.jacobcolvin.com/termart/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)

	stop()

	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app holds the configuration shared by the root command's flags.
type app struct {
	player  *player.Config
	log     *log.Config
	profile *profile.Config

	// termWidth reports the terminal's column count for --fit.
	termWidth func() (int, error)

	preset string
	tui    bool
}

func newRootCmd() *cobra.Command {
	a := &app{
		player:    player.NewConfig(),
		log:       log.NewConfig(),
		profile:   profile.NewConfig(),
		termWidth: stdoutWidth,
	}

	rootCmd := &cobra.Command{
		Use:   "termart [flags] <image|directory|glob>...",
		Short: "Play image sequences as text animations in the terminal",
		Long: `termart renders images as ASCII art, Braille patterns or a tiled stencil
string and plays them back in place, one frame over the previous one.

Arguments may be image files, directories of images (played in name order)
or glob patterns.`,
		Version:       version.String(),
		Args:          cobra.MinimumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          a.run,
	}

	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	a.player.RegisterFlags(rootCmd.Flags())
	a.log.RegisterFlags(rootCmd.PersistentFlags())
	a.profile.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.Flags().StringVar(&a.preset, "config", "", "read playback settings from a YAML preset")
	rootCmd.Flags().BoolVar(&a.tui, "tui", false, "play pre-rendered frames in an interactive full-screen view")

	for _, register := range []func(*cobra.Command) error{
		a.player.RegisterCompletions,
		a.log.RegisterCompletions,
		a.profile.RegisterCompletions,
		func(cmd *cobra.Command) error {
			return cmd.MarkFlagFilename("config", "yaml", "yml")
		},
	} {
		err := register(rootCmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
		}
	}

	rootCmd.AddCommand(newSchemaCmd())

	return rootCmd
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for preset files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")

			err := enc.Encode(preset.Schema())
			if err != nil {
				return fmt.Errorf("encode schema: %w", err)
			}

			return nil
		},
	}
}

func (a *app) run(cmd *cobra.Command, args []string) (err error) {
	ctx := cmd.Context()

	if a.preset != "" {
		p, loadErr := preset.Load(a.preset)
		if loadErr != nil {
			return loadErr
		}

		p.Apply(a.player, cmd.Flags().Changed)
	}

	// The full-screen view owns the terminal, so log records go to its
	// status line instead of stderr.
	var (
		logOut io.Writer = cmd.ErrOrStderr()
		pub    *log.Publisher
	)

	if a.tui {
		pub = log.NewPublisher()
		defer func() { _ = pub.Close() }()

		logOut = pub
	}

	logger, err := a.log.NewLogger(logOut)
	if err != nil {
		return err
	}

	opts, err := a.player.NewOptions(a.termWidth)
	if err != nil {
		return err
	}

	paths, err := expandPaths(args)
	if err != nil {
		return err
	}

	prof := a.profile.NewProfiler()

	err = prof.Start()
	if err != nil {
		return fmt.Errorf("start profiling: %w", err)
	}

	defer func() {
		stopErr := prof.Stop()
		if stopErr != nil {
			err = errors.Join(err, fmt.Errorf("stop profiling: %w", stopErr))
		}
	}()

	playerOpts := []player.Option{player.WithLogger(logger)}
	if opts.PreRender || a.tui {
		playerOpts = append(playerOpts, player.WithProgress(player.NewBar(cmd.ErrOrStderr())))
	}

	p := player.New(opts, cmd.OutOrStdout(), playerOpts...)

	if !a.tui {
		return p.Play(ctx, paths)
	}

	frames, err := p.PreRender(ctx, paths)
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting interactive playback", slog.Int("frames", len(frames)))

	err = tui.Run(ctx, frames, tui.Options{Logs: pub, Delay: opts.FrameDelay, Loop: opts.Loop})
	if ctx.Err() != nil {
		return ctx.Err()
	}

	return err
}

func stdoutWidth() (int, error) {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0, fmt.Errorf("unable to detect terminal size (use --width): %w", err)
	}

	return w, nil
}
