package log

import (
	"bytes"
	"sync"
)

const defaultBacklog = 16

// Publisher is an [io.Writer] that turns log output into status lines for
// the playback TUI.
//
// Every non-blank line written becomes one status line with surrounding
// whitespace removed. Lines are delivered to each [Subscription] through a
// bounded backlog; a subscriber that falls behind loses its oldest pending
// line, so a slow view never stalls the logger. Safe for concurrent use.
//
// Create instances with [NewPublisher].
type Publisher struct {
	subs    map[*Subscription]struct{}
	last    string
	backlog int
	mu      sync.Mutex
	closed  bool
}

// PublisherOption configures a [Publisher].
type PublisherOption func(*Publisher)

// WithBacklog sets how many undelivered lines each subscription holds
// before the oldest is dropped. Values below 1 mean 1.
func WithBacklog(n int) PublisherOption {
	return func(p *Publisher) {
		p.backlog = max(n, 1)
	}
}

// NewPublisher creates a [Publisher]. The default backlog is 16 lines.
func NewPublisher(opts ...PublisherOption) *Publisher {
	p := &Publisher{
		subs:    map[*Subscription]struct{}{},
		backlog: defaultBacklog,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Write publishes the lines in b. It never fails and never blocks on
// subscribers. Writes after [Publisher.Close] are discarded.
func (p *Publisher) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return len(b), nil
	}

	for raw := range bytes.SplitSeq(b, []byte{'\n'}) {
		line := string(bytes.TrimSpace(raw))
		if line == "" {
			continue
		}

		p.last = line

		for sub := range p.subs {
			sub.push(line)
		}
	}

	return len(b), nil
}

// Last returns the most recent status line, or "" before the first one.
// It lets a view created after logging started show the current status.
func (p *Publisher) Last() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.last
}

// Subscribe registers a new [Subscription]. Subscribing to a closed
// Publisher returns a subscription whose channel is already closed.
func (p *Publisher) Subscribe() *Subscription {
	p.mu.Lock()
	defer p.mu.Unlock()

	sub := &Subscription{
		pub:   p,
		lines: make(chan string, p.backlog),
	}

	if p.closed {
		close(sub.lines)
		return sub
	}

	p.subs[sub] = struct{}{}

	return sub
}

// Close ends every subscription and discards later writes. Idempotent.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}

	p.closed = true

	for sub := range p.subs {
		close(sub.lines)
	}

	clear(p.subs)

	return nil
}

// Subscription receives status lines from a [Publisher].
type Subscription struct {
	pub   *Publisher
	lines chan string
}

// Lines returns the channel of status lines. It is closed when either the
// subscription or its [Publisher] is closed.
func (s *Subscription) Lines() <-chan string {
	return s.lines
}

// Close unregisters the subscription and closes its channel. Idempotent.
func (s *Subscription) Close() {
	s.pub.mu.Lock()
	defer s.pub.mu.Unlock()

	if _, ok := s.pub.subs[s]; !ok {
		return
	}

	delete(s.pub.subs, s)
	close(s.lines)
}

// push delivers line, evicting the oldest pending line when the backlog is
// full. Callers hold the publisher lock, which makes it the only sender.
func (s *Subscription) push(line string) {
	select {
	case s.lines <- line:
		return
	default:
	}

	select {
	case <-s.lines:
	default:
	}

	select {
	case s.lines <- line:
	default:
	}
}
