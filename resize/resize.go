// Package resize scales images to a character grid, correcting for the
// aspect ratio of a terminal font cell.
//
// A monospace cell is taller than it is wide, so an image resized to W
// columns must use fewer than W*srcH/srcW rows to keep its proportions.
// [Spec.FontRatio] is the cell's width divided by its height.
package resize

import (
	"errors"
	"fmt"
	"image"
	"math"
	"slices"
	"strings"

	nfnt "github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

const (
	// DefaultFontRatio is the width/height ratio of a typical monospace
	// terminal font cell.
	DefaultFontRatio = 11.0 / 24.0
	// BrailleFontRatio is the cell ratio to use when each cell covers a 2x4
	// dot matrix.
	BrailleFontRatio = 21.0 / 24.0
)

const (
	// MaxDimension is the largest accepted output width or height.
	MaxDimension = 1 << 15
	// MaxPixels is the largest accepted output area.
	MaxPixels = 1 << 25
)

var (
	// ErrUnknownFilter indicates an unrecognized filter name.
	ErrUnknownFilter = errors.New("unknown filter")
	// ErrTooLarge indicates an output size beyond [MaxDimension] or
	// [MaxPixels].
	ErrTooLarge = errors.New("output size too large")
)

// Filter selects the interpolation kernel used when resampling.
type Filter string

const (
	// FilterNearest picks the nearest source pixel.
	FilterNearest Filter = "nearest"
	// FilterTriangle is bilinear interpolation.
	FilterTriangle Filter = "triangle"
	// FilterCatmullRom is the Catmull-Rom cubic.
	FilterCatmullRom Filter = "catmull-rom"
	// FilterMitchell is the Mitchell-Netravali cubic.
	FilterMitchell Filter = "mitchell"
	// FilterLanczos2 is a two-lobe Lanczos kernel.
	FilterLanczos2 Filter = "lanczos2"
	// FilterLanczos3 is a three-lobe Lanczos kernel.
	FilterLanczos3 Filter = "lanczos3"
)

// Filters returns all supported filters.
func Filters() []Filter {
	return []Filter{
		FilterNearest,
		FilterTriangle,
		FilterCatmullRom,
		FilterMitchell,
		FilterLanczos2,
		FilterLanczos3,
	}
}

// FilterNames returns the names of all supported filters.
func FilterNames() []string {
	filters := Filters()

	names := make([]string, 0, len(filters))
	for _, f := range filters {
		names = append(names, string(f))
	}

	return names
}

// ParseFilter parses a filter name. Matching is case insensitive.
func ParseFilter(name string) (Filter, error) {
	f := Filter(strings.ToLower(name))
	if slices.Contains(Filters(), f) {
		return f, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownFilter, name)
}

// Spec describes a resize. Zero Width or Height means the dimension is
// derived from the other one; when both are zero the image is left alone.
type Spec struct {
	Filter    Filter
	FontRatio float64
	Width     int
	Height    int
}

// Dimensions returns the output size for a srcW x srcH source.
//
// When only one target dimension is set the other one is derived from the
// source aspect ratio and s.FontRatio, truncated toward zero and capped at
// [math.MaxInt32]. When both are set they are returned unchanged.
func Dimensions(srcW, srcH int, s Spec) (int, int) {
	switch {
	case s.Width == 0 && s.Height == 0:
		return srcW, srcH

	case s.Height == 0:
		h := float64(s.Width) * s.FontRatio * float64(srcH) / float64(srcW)

		return s.Width, derived(h)

	case s.Width == 0:
		w := float64(s.Height) * float64(srcW) / (float64(srcH) * s.FontRatio)

		return derived(w), s.Height
	}

	return s.Width, s.Height
}

func derived(v float64) int {
	if math.IsNaN(v) || v < 0 {
		return 0
	}

	return int(min(v, math.MaxInt32))
}

// Check returns [ErrTooLarge] if a w x h output exceeds [MaxDimension] on
// either side or [MaxPixels] in area.
func Check(w, h int) error {
	if w > MaxDimension || h > MaxDimension || int64(w)*int64(h) > MaxPixels {
		return fmt.Errorf("%w: %dx%d, limit is %dx%d and %d pixels",
			ErrTooLarge, w, h, MaxDimension, MaxDimension, MaxPixels)
	}

	return nil
}

// Resize resamples img to the size computed by [Dimensions]. The image is
// returned unchanged when s has no target dimensions. A computed size with
// a zero dimension produces an empty image, and one rejected by [Check]
// returns [ErrTooLarge]. Gray sources stay gray.
func Resize(img image.Image, s Spec) (image.Image, error) {
	if s.Width == 0 && s.Height == 0 {
		return img, nil
	}

	b := img.Bounds()
	w, h := Dimensions(b.Dx(), b.Dy(), s)

	err := Check(w, h)
	if err != nil {
		return nil, err
	}

	if w <= 0 || h <= 0 || b.Empty() {
		return image.NewNRGBA(image.Rect(0, 0, max(w, 0), max(h, 0))), nil
	}

	switch s.Filter {
	case FilterMitchell:
		return nfnt.Resize(uint(w), uint(h), img, nfnt.MitchellNetravali), nil
	case FilterLanczos2:
		return nfnt.Resize(uint(w), uint(h), img, nfnt.Lanczos2), nil
	case FilterLanczos3:
		return nfnt.Resize(uint(w), uint(h), img, nfnt.Lanczos3), nil
	}

	var dst draw.Image

	switch img.(type) {
	case *image.Gray, *image.Gray16:
		dst = image.NewGray(image.Rect(0, 0, w, h))
	default:
		dst = image.NewNRGBA(image.Rect(0, 0, w, h))
	}

	kernel(s.Filter).Scale(dst, dst.Bounds(), img, b, draw.Src, nil)

	return dst, nil
}

func kernel(f Filter) draw.Scaler {
	switch f {
	case FilterNearest:
		return draw.NearestNeighbor
	case FilterCatmullRom:
		return draw.CatmullRom
	}

	return draw.BiLinear
}
