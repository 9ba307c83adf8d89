// Package player plays a sequence of still images as an animation of
// character frames in a terminal.
//
// Each source path is decoded, optionally binarized with
// [raster.AdaptiveThreshold], resized with [resize.Resize] and rendered
// with the classifier selected by [Options.Mode]. Frames are written to the
// output one after another; from the second frame on the cursor is first
// moved up by the frame's height so that the new frame overwrites the
// previous one.
//
// Two modes are supported:
//
//   - Streaming (the default) renders each frame just before it is shown.
//   - Pre-rendered ([Options.PreRender]) renders every frame up front, in
//     parallel, reporting to a [Progress], then plays them back with steady
//     timing.
//
// Typical usage:
//
//	opts := player.DefaultOptions()
//	opts.Width = 80
//	opts.FrameDelay = player.FrameDelayFromRate(24)
//
//	p := player.New(opts, os.Stdout, player.WithProgress(player.NewBar(os.Stderr)))
//	err := p.Play(ctx, paths)
//
// Use [Config] to bind the options to command line flags.
package player
