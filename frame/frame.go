// Package frame defines the rendered character grid produced from one image
// and its serialisation to terminal text.
package frame

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var (
	// ErrSize indicates grid dimensions that are too small to hold a frame.
	ErrSize = errors.New("width and height are too small")
	// ErrShape indicates a cell slice whose length is not width*height.
	ErrShape = errors.New("cell count does not match dimensions")
)

// Cell is one rendered character and the source color it represents.
type Cell struct {
	Glyph rune
	R     uint8
	G     uint8
	B     uint8
	A     uint8
}

// Frame is a row-major grid of [Cell]s.
//
// Create instances with [New]. A Frame's cells are not modified after
// construction; only the Colored flag may change.
type Frame struct {
	Cells   []Cell
	Width   int
	Height  int
	Colored bool
}

// New returns a [Frame] over cells. It returns [ErrSize] if either
// dimension is zero or negative and [ErrShape] if len(cells) is not
// width*height.
func New(cells []Cell, width, height int, colored bool) (*Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrSize, width, height)
	}

	if len(cells) != width*height {
		return nil, fmt.Errorf("%w: %d cells for %dx%d", ErrShape, len(cells), width, height)
	}

	return &Frame{
		Cells:   cells,
		Width:   width,
		Height:  height,
		Colored: colored,
	}, nil
}

// WithColored returns a shallow copy of f with the Colored flag set. The
// cells are shared with f.
func (f *Frame) WithColored(colored bool) *Frame {
	c := *f
	c.Colored = colored

	return &c
}

// SetColored sets the Colored flag in place.
func (f *Frame) SetColored(colored bool) {
	f.Colored = colored
}

// String formats the frame. See [Format].
func (f *Frame) String() string {
	return Format(f)
}

// WriteTo writes the formatted frame to w.
func (f *Frame) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, Format(f))

	return int64(n), err
}

// Format renders f as text: one line per row, joined by "\n" with no
// trailing newline. When f.Colored is set each glyph is wrapped in a 24-bit
// foreground color escape and a reset. A frame without columns formats
// as the empty string.
func Format(f *Frame) string {
	if f.Width <= 0 {
		return ""
	}

	var sb strings.Builder

	per := 1
	if f.Colored {
		// ESC[38;2;RRR;GGG;BBBm + glyph + ESC[0m
		per = 24
	}

	sb.Grow(len(f.Cells)*per + f.Height)

	for i, c := range f.Cells {
		if i > 0 && i%f.Width == 0 {
			sb.WriteByte('\n')
		}

		if !f.Colored {
			sb.WriteRune(c.Glyph)

			continue
		}

		writeColored(&sb, c)
	}

	return sb.String()
}

func writeColored(sb *strings.Builder, c Cell) {
	var buf [3]byte

	sb.WriteString("\x1b[38;2;")
	sb.Write(strconv.AppendUint(buf[:0], uint64(c.R), 10))
	sb.WriteByte(';')
	sb.Write(strconv.AppendUint(buf[:0], uint64(c.G), 10))
	sb.WriteByte(';')
	sb.Write(strconv.AppendUint(buf[:0], uint64(c.B), 10))
	sb.WriteByte('m')
	sb.WriteRune(c.Glyph)
	sb.WriteString("\x1b[0m")
}
