// Package profile adds pprof and execution-trace output to the termart
// command.
//
// Register the flags on the root command, start the [Profiler] before
// playback and stop it afterwards:
//
//	cfg := profile.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//
//	p := cfg.NewProfiler()
//	err := p.Start()
//	defer p.Stop()
//
// A trace (--trace) is the most useful view of pre-rendering, where each
// frame is rendered on its own goroutine.
package profile
