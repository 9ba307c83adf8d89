// Package tui plays pre-rendered frames full-screen with Bubble Tea.
//
// Playback advances one frame per tick. q, esc and ctrl+c quit; space pauses.
// When a [log.Publisher] is supplied, its most recent line is shown on a
// status line beneath the frame.
package tui

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"go.jacobcolvin.com/termart/frame"
	"go.jacobcolvin.com/termart/log"
)

// DefaultDelay is the tick interval used when [Options.Delay] is zero.
const DefaultDelay = time.Second / 24

// Options configures a [Model].
type Options struct {
	// Logs supplies the status line. Nil disables it.
	Logs *log.Publisher
	// Delay between frames. Zero means [DefaultDelay].
	Delay time.Duration
	// Loop restarts playback after the last frame.
	Loop bool
}

// tickMsg signals that it is time to advance to the next frame.
type tickMsg struct{}

// logMsg carries one status line from the log subscription.
type logMsg string

// Model is the Bubble Tea model for interactive playback.
//
// Create instances with [New].
type Model struct {
	sub    *log.Subscription
	frames []string
	status string
	opts   Options
	width  int
	index  int
	paused bool
	done   bool
}

// New creates a [Model] playing frames. Frames are formatted once up front.
func New(frames []*frame.Frame, opts Options) *Model {
	m := &Model{
		frames: make([]string, len(frames)),
		opts:   opts,
	}

	for i, f := range frames {
		m.frames[i] = frame.Format(f)
	}

	if m.opts.Delay <= 0 {
		m.opts.Delay = DefaultDelay
	}

	if opts.Logs != nil {
		m.status = opts.Logs.Last()
		m.sub = opts.Logs.Subscribe()
	}

	return m
}

// Init returns the first tick, plus the log listener if enabled.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.tick(), m.waitLog())
}

// Update handles tick, log, resize and key messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.close()

			return m, tea.Quit

		case "space":
			m.paused = !m.paused
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case logMsg:
		m.status = string(msg)

		return m, m.waitLog()

	case tickMsg:
		if len(m.frames) <= 1 || m.done {
			return m, nil
		}

		if m.paused {
			return m, m.tick()
		}

		m.index++

		if m.index >= len(m.frames) {
			if !m.opts.Loop {
				m.index = len(m.frames) - 1
				m.done = true

				return m, nil
			}

			m.index = 0
		}

		return m, m.tick()
	}

	return m, nil
}

// Content returns the text drawn for the current state: the current frame,
// followed by the status line if there is one.
func (m *Model) Content() string {
	if len(m.frames) == 0 {
		return m.status
	}

	out := m.frames[m.index]
	if m.status == "" {
		return out
	}

	status := m.status
	if m.width > 0 {
		status = ansi.Truncate(status, m.width, "…")
	}

	return out + "\n" + status
}

// Index returns the position of the frame being shown.
func (m *Model) Index() int {
	return m.index
}

// Done reports whether non-looping playback has reached the last frame.
func (m *Model) Done() bool {
	return m.done
}

// View draws [Model.Content] in the alternate screen.
func (m *Model) View() tea.View {
	v := tea.NewView(m.Content())
	v.AltScreen = true

	return v
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.opts.Delay, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

func (m *Model) waitLog() tea.Cmd {
	if m.sub == nil {
		return nil
	}

	sub := m.sub

	return func() tea.Msg {
		line, ok := <-sub.Lines()
		if !ok {
			return nil
		}

		return logMsg(line)
	}
}

func (m *Model) close() {
	if m.sub != nil {
		m.sub.Close()
	}
}

// Run plays frames until the user quits or ctx is canceled. Without
// [Options.Loop] the last frame stays on screen until then.
func Run(ctx context.Context, frames []*frame.Frame, opts Options, progOpts ...tea.ProgramOption) error {
	m := New(frames, opts)
	defer m.close()

	p := tea.NewProgram(m, append([]tea.ProgramOption{tea.WithContext(ctx)}, progOpts...)...)

	_, err := p.Run()
	if err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	return nil
}
