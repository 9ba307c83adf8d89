// Package log builds the [log/slog] handlers termart logs through.
//
// The --log-level and --log-format flags come from [Config], which also
// completes their values in the shell. [FormatText] is styled by
// [charm.land/log/v2]; [FormatJSON] and [FormatLogfmt] use the standard
// slog handlers with source locations.
//
//	cfg := log.NewConfig()
//	cfg.RegisterFlags(root.PersistentFlags())
//	cfg.RegisterCompletions(root)
//
//	logger, err := cfg.NewLogger(os.Stderr)
//
// During full-screen playback the terminal belongs to the TUI, so the logger
// writes to a [Publisher] instead. The TUI shows [Publisher.Last] on its
// status line and follows later lines through a [Subscription]:
//
//	pub := log.NewPublisher()
//	defer pub.Close()
//
//	logger, err := cfg.NewLogger(pub)
//
//	sub := pub.Subscribe()
//	for line := range sub.Lines() {
//		// Replace the status line.
//	}
package log
