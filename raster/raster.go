package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// ErrInvalidGrid indicates that a [Grid]'s pixel buffer does not match its
// declared layout and dimensions.
var ErrInvalidGrid = errors.New("invalid grid")

// Layout identifies the channel layout of a [Grid].
type Layout int

const (
	// Gray has one luma channel per pixel.
	Gray Layout = iota
	// GrayAlpha has a luma and an alpha channel per pixel.
	GrayAlpha
	// RGB has red, green and blue channels per pixel.
	RGB
	// RGBA has red, green, blue and non-premultiplied alpha channels per
	// pixel.
	RGBA
)

// Channels returns the number of bytes per pixel for the layout.
func (l Layout) Channels() int {
	switch l {
	case Gray:
		return 1
	case GrayAlpha:
		return 2
	case RGB:
		return 3
	case RGBA:
		return 4
	}

	return 0
}

// String returns the layout name.
func (l Layout) String() string {
	switch l {
	case Gray:
		return "gray"
	case GrayAlpha:
		return "gray+alpha"
	case RGB:
		return "rgb"
	case RGBA:
		return "rgba"
	}

	return fmt.Sprintf("Layout(%d)", int(l))
}

// Grid is a tightly packed, row-major pixel buffer with a fixed [Layout].
//
// Create instances with [NewGrid] or [FromImage].
type Grid struct {
	Pix    []uint8
	Layout Layout
	Width  int
	Height int
}

// NewGrid wraps pix as a [Grid]. It returns [ErrInvalidGrid] when the
// buffer length does not equal width*height*channels.
func NewGrid(layout Layout, width, height int, pix []uint8) (*Grid, error) {
	ch := layout.Channels()
	if ch == 0 {
		return nil, fmt.Errorf("%w: unknown layout %s", ErrInvalidGrid, layout)
	}

	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: negative dimensions %dx%d", ErrInvalidGrid, width, height)
	}

	if len(pix) != width*height*ch {
		return nil, fmt.Errorf("%w: %s %dx%d needs %d bytes, got %d",
			ErrInvalidGrid, layout, width, height, width*height*ch, len(pix))
	}

	return &Grid{
		Pix:    pix,
		Layout: layout,
		Width:  width,
		Height: height,
	}, nil
}

// Sample returns the r, g, b and a channels of the pixel at (x, y). Gray
// layouts report the luma value on all three color channels, and layouts
// without alpha report a=255.
func (g *Grid) Sample(x, y int) (uint8, uint8, uint8, uint8) {
	ch := g.Layout.Channels()
	i := (y*g.Width + x) * ch
	p := g.Pix[i : i+ch : i+ch]

	switch g.Layout {
	case Gray:
		return p[0], p[0], p[0], 0xff
	case GrayAlpha:
		return p[0], p[0], p[0], p[1]
	case RGB:
		return p[0], p[1], p[2], 0xff
	case RGBA:
		return p[0], p[1], p[2], p[3]
	}

	return 0, 0, 0, 0
}

// FromImage converts img into a [Grid], choosing the narrowest layout that
// represents it without loss. Images whose pixels all have equal color
// channels become [Gray] or [GrayAlpha], and the rest become [RGB] or
// [RGBA]. The alpha channel is kept only when some pixel is not opaque.
func FromImage(img image.Image) *Grid {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	switch src := img.(type) {
	case *image.Gray:
		pix := make([]uint8, 0, w*h)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			off := src.PixOffset(b.Min.X, y)
			pix = append(pix, src.Pix[off:off+w]...)
		}

		return &Grid{Pix: pix, Layout: Gray, Width: w, Height: h}

	case *image.Gray16:
		pix := make([]uint8, 0, w*h)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				pix = append(pix, uint8(src.Gray16At(x, y).Y>>8))
			}
		}

		return &Grid{Pix: pix, Layout: Gray, Width: w, Height: h}
	}

	nrgba := make([]color.NRGBA, 0, w*h)
	gray, opaque := true, true

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			gray = gray && c.R == c.G && c.G == c.B
			opaque = opaque && c.A == 0xff
			nrgba = append(nrgba, c)
		}
	}

	layout := RGBA

	switch {
	case gray && opaque:
		layout = Gray
	case gray:
		layout = GrayAlpha
	case opaque:
		layout = RGB
	}

	pix := make([]uint8, 0, len(nrgba)*layout.Channels())
	for _, c := range nrgba {
		switch layout {
		case Gray:
			pix = append(pix, c.R)
		case GrayAlpha:
			pix = append(pix, c.R, c.A)
		case RGB:
			pix = append(pix, c.R, c.G, c.B)
		case RGBA:
			pix = append(pix, c.R, c.G, c.B, c.A)
		}
	}

	return &Grid{Pix: pix, Layout: layout, Width: w, Height: h}
}
