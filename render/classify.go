package render

import (
	"errors"
	"fmt"
	"math"
	"unicode"

	"go.jacobcolvin.com/termart/frame"
	"go.jacobcolvin.com/termart/raster"
)

const (
	// DefaultRamp is the default glyph ramp, darkest to lightest.
	DefaultRamp = " .,:;+*?%S#@"
	// PixelRamp is a single solid block, used to draw color-only output.
	PixelRamp = "█"
	// DefaultThreshold is the luminance above which a pixel counts as lit.
	DefaultThreshold = 0.5

	brailleBase = 0x2800
)

var (
	// ErrSize indicates image dimensions too small for the classifier.
	ErrSize = frame.ErrSize
	// ErrGlyphRamp indicates a luminance value that does not map into the
	// glyph ramp.
	ErrGlyphRamp = errors.New("lightness is out of glyph ramp")
	// ErrEmptyRamp indicates a classifier configured with no glyphs.
	ErrEmptyRamp = errors.New("empty glyph ramp")
	// ErrStencilText indicates a stencil classifier with no text to tile.
	ErrStencilText = errors.New("empty stencil text")
	// ErrUnprintable indicates a glyph that cannot be drawn in a terminal.
	ErrUnprintable = errors.New("unprintable glyph")
)

// CheckGlyphs returns [ErrUnprintable] if any of glyphs is a control or
// otherwise non-printing character. The ASCII space is allowed.
func CheckGlyphs(glyphs []rune) error {
	for i, g := range glyphs {
		if !unicode.IsPrint(g) {
			return fmt.Errorf("%w: %U at index %d", ErrUnprintable, g, i)
		}
	}

	return nil
}

// Luminance returns the HSL lightness of (r, g, b) scaled by the normalized
// alpha, in [0, 1]. Transparent pixels have zero luminance.
func Luminance(r, g, b, a uint8) float64 {
	hi := max(r, g, b)
	lo := min(r, g, b)

	return (float64(hi) + float64(lo)) * float64(a) / (2 * 255 * 255)
}

// RampGlyph returns the glyph of ramp for luminance l. It returns
// [ErrGlyphRamp] if l is outside [0, 1] and [ErrEmptyRamp] if ramp has no
// glyphs.
func RampGlyph(ramp []rune, l float64) (rune, error) {
	if len(ramp) == 0 {
		return 0, ErrEmptyRamp
	}

	if math.IsNaN(l) || l < 0 || l > 1 {
		return 0, fmt.Errorf("%w: %v", ErrGlyphRamp, l)
	}

	return ramp[int(float64(len(ramp)-1)*l)], nil
}

// Lit reports whether a pixel's luminance is strictly above threshold.
func Lit(r, g, b, a uint8, threshold float64) bool {
	return Luminance(r, g, b, a) > threshold
}

// BrailleRune maps eight dots onto a Unicode Braille pattern. Dot i sets bit
// i of the code point offset from U+2800, laid out as:
//
//	0 3
//	1 4
//	2 5
//	6 7
func BrailleRune(dots [8]bool) rune {
	var bits rune

	for i, on := range dots {
		if on {
			bits |= 1 << i
		}
	}

	return brailleBase | bits
}

// brailleOffsets are the (dx, dy) sub-pixel offsets of dots 0 through 7.
var brailleOffsets = [8][2]int{
	{0, 0}, {0, 1}, {0, 2},
	{1, 0}, {1, 1}, {1, 2},
	{0, 3}, {1, 3},
}

// Classifier maps pixels of a [raster.Grid] to [frame.Cell]s.
//
// Implementations must be safe for concurrent use: [Renderer] calls
// Classify for different cells from multiple goroutines.
type Classifier interface {
	// Size returns the output grid dimensions for a w x h source, or
	// [ErrSize] if the source is too small.
	Size(w, h int) (cols, rows int, err error)
	// Classify returns the cell at (col, row) of the output grid.
	Classify(g *raster.Grid, col, row int) (frame.Cell, error)
}

// Ascii classifies each pixel by looking its luminance up in a glyph ramp.
type Ascii struct {
	Ramp []rune
}

// NewAscii returns an [Ascii] classifier for ramp, ordered darkest to
// lightest.
func NewAscii(ramp string) Ascii {
	return Ascii{Ramp: []rune(ramp)}
}

// Size implements [Classifier]. The output grid matches the source.
func (c Ascii) Size(w, h int) (int, int, error) {
	return pixelSize(w, h)
}

// Classify implements [Classifier].
func (c Ascii) Classify(g *raster.Grid, col, row int) (frame.Cell, error) {
	r, gr, b, a := g.Sample(col, row)

	glyph, err := RampGlyph(c.Ramp, Luminance(r, gr, b, a))
	if err != nil {
		return frame.Cell{}, err
	}

	return frame.Cell{Glyph: glyph, R: r, G: gr, B: b, A: a}, nil
}

// Braille packs each 2x4 block of pixels into one Braille pattern cell. A
// dot is raised when its pixel is lit. The cell color is taken from the
// block's top-left pixel.
type Braille struct {
	Threshold float64
}

// NewBraille returns a [Braille] classifier using [DefaultThreshold].
func NewBraille() Braille {
	return Braille{Threshold: DefaultThreshold}
}

// Size implements [Classifier]. It requires at least a 4x8 source;
// trailing columns and rows that do not fill a block are dropped.
func (c Braille) Size(w, h int) (int, int, error) {
	if w < 4 || h < 8 {
		return 0, 0, fmt.Errorf("%w: braille needs at least 4x8, got %dx%d", ErrSize, w, h)
	}

	return w / 2, h / 4, nil
}

// Classify implements [Classifier].
func (c Braille) Classify(g *raster.Grid, col, row int) (frame.Cell, error) {
	x, y := col*2, row*4

	var dots [8]bool
	for i, off := range brailleOffsets {
		r, gr, b, a := g.Sample(x+off[0], y+off[1])
		dots[i] = Lit(r, gr, b, a, c.Threshold)
	}

	r, gr, b, a := g.Sample(x, y)

	return frame.Cell{Glyph: BrailleRune(dots), R: r, G: gr, B: b, A: a}, nil
}

// Stencil draws lit pixels with the characters of Text, tiled across the
// frame in reading order, and unlit pixels as spaces.
type Stencil struct {
	Text      []rune
	Threshold float64
}

// NewStencil returns a [Stencil] classifier tiling text with
// [DefaultThreshold].
func NewStencil(text string) Stencil {
	return Stencil{Text: []rune(text), Threshold: DefaultThreshold}
}

// Size implements [Classifier]. The output grid matches the source.
func (c Stencil) Size(w, h int) (int, int, error) {
	return pixelSize(w, h)
}

// Classify implements [Classifier].
func (c Stencil) Classify(g *raster.Grid, col, row int) (frame.Cell, error) {
	if len(c.Text) == 0 {
		return frame.Cell{}, ErrStencilText
	}

	r, gr, b, a := g.Sample(col, row)

	glyph := ' '
	if Lit(r, gr, b, a, c.Threshold) {
		glyph = c.Text[(row*g.Width+col)%len(c.Text)]
	}

	return frame.Cell{Glyph: glyph, R: r, G: gr, B: b, A: a}, nil
}

func pixelSize(w, h int) (int, int, error) {
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("%w: %dx%d", ErrSize, w, h)
	}

	return w, h, nil
}
