package log_test

import (
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/termart/log"
)

func drain(sub *log.Subscription) []string {
	var got []string

	for {
		select {
		case line, ok := <-sub.Lines():
			if !ok {
				return got
			}

			got = append(got, line)
		default:
			return got
		}
	}
}

func TestPublisher_StatusLines(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		writes []string
		want   []string
	}{
		"one record per write": {
			writes: []string{"INFO starting playback\n", "WARN slow frame\n"},
			want:   []string{"INFO starting playback", "WARN slow frame"},
		},
		"multi-line write splits": {
			writes: []string{"first\nsecond\n"},
			want:   []string{"first", "second"},
		},
		"blank lines are skipped": {
			writes: []string{"\n", "  \r\n", "kept\n\n"},
			want:   []string{"kept"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			pub := log.NewPublisher()
			sub := pub.Subscribe()

			for _, w := range tc.writes {
				n, err := pub.Write([]byte(w))
				require.NoError(t, err)
				assert.Equal(t, len(w), n)
			}

			assert.Equal(t, tc.want, drain(sub))
			assert.Equal(t, tc.want[len(tc.want)-1], pub.Last())
		})
	}
}

func TestPublisher_FromLogger(t *testing.T) {
	t.Parallel()

	pub := log.NewPublisher()
	sub := pub.Subscribe()

	logger := slog.New(log.NewHandler(pub, log.LevelInfo, log.FormatLogfmt))
	logger.Info("rendered frame", slog.String("path", "frame-0001.png"))

	got := drain(sub)
	require.Len(t, got, 1)
	assert.Contains(t, got[0], "rendered frame")
	assert.Contains(t, got[0], "path=frame-0001.png")
	assert.Equal(t, got[0], pub.Last())
}

func TestPublisher_SlowSubscriberDropsOldest(t *testing.T) {
	t.Parallel()

	pub := log.NewPublisher(log.WithBacklog(3))
	slow := pub.Subscribe()
	fast := pub.Subscribe()

	var all []string

	for i := range 10 {
		_, err := fmt.Fprintf(pub, "frame %d\n", i)
		require.NoError(t, err)

		all = append(all, drain(fast)...)
	}

	assert.Equal(t, []string{"frame 7", "frame 8", "frame 9"}, drain(slow))
	assert.Len(t, all, 10)
}

func TestPublisher_Last(t *testing.T) {
	t.Parallel()

	pub := log.NewPublisher()
	assert.Empty(t, pub.Last())

	_, err := pub.Write([]byte("loading\n"))
	require.NoError(t, err)

	late := pub.Subscribe()
	assert.Equal(t, "loading", pub.Last())
	assert.Empty(t, drain(late), "earlier lines are not replayed")

	require.NoError(t, pub.Close())

	_, err = pub.Write([]byte("after close\n"))
	require.NoError(t, err)
	assert.Equal(t, "loading", pub.Last())
}

func TestPublisher_Close(t *testing.T) {
	t.Parallel()

	pub := log.NewPublisher()
	kept := pub.Subscribe()
	left := pub.Subscribe()

	left.Close()
	left.Close()

	_, ok := <-left.Lines()
	assert.False(t, ok)

	_, err := pub.Write([]byte("only kept\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"only kept"}, drain(kept))

	require.NoError(t, pub.Close())
	require.NoError(t, pub.Close())
	kept.Close()

	_, ok = <-kept.Lines()
	assert.False(t, ok)

	_, ok = <-pub.Subscribe().Lines()
	assert.False(t, ok)
}
