package player

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/schollz/progressbar/v3"
)

// Progress receives pre-rendering progress. Increment may be called from
// multiple goroutines concurrently.
type Progress interface {
	Start(total int)
	Increment()
	Finish()
}

// Counter is a [Progress] that only counts completed frames. Safe for
// concurrent use.
type Counter struct {
	total atomic.Int64
	done  atomic.Int64
}

// Start implements [Progress].
func (c *Counter) Start(total int) {
	c.total.Store(int64(total))
	c.done.Store(0)
}

// Increment implements [Progress].
func (c *Counter) Increment() {
	c.done.Add(1)
}

// Finish implements [Progress].
func (c *Counter) Finish() {}

// Done returns the number of completed frames.
func (c *Counter) Done() int {
	return int(c.done.Load())
}

// Total returns the total passed to [Counter.Start].
func (c *Counter) Total() int {
	return int(c.total.Load())
}

const barWidth = 40

// Bar is a [Progress] that redraws a single-line bar on an [io.Writer],
// typically stderr. The bar shows the percentage, frame count, frames per
// second, elapsed time and an estimate of the time remaining.
//
// Create instances with [NewBar].
type Bar struct {
	w   io.Writer
	bar *progressbar.ProgressBar
	Counter
}

// NewBar creates a [Bar] writing to w.
func NewBar(w io.Writer) *Bar {
	return &Bar{w: w}
}

// Start implements [Progress].
func (b *Bar) Start(total int) {
	b.Counter.Start(total)

	b.bar = progressbar.NewOptions(max(total, 1),
		progressbar.OptionSetWriter(b.w),
		progressbar.OptionSetDescription("rendering"),
		progressbar.OptionSetWidth(barWidth),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("frames"),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionThrottle(0),
	)
}

// Increment implements [Progress].
func (b *Bar) Increment() {
	b.Counter.Increment()

	if b.bar != nil {
		_ = b.bar.Add(1)
	}
}

// Finish implements [Progress]. It leaves the bar at its current state and
// terminates the bar's line.
func (b *Bar) Finish() {
	if b.bar != nil {
		_ = b.bar.Exit()
	}

	fmt.Fprintln(b.w)
}
