package raster

import (
	"image"
	"image/color"
)

// AdaptiveThreshold converts img to luma and binarizes it: a pixel becomes
// white when its luma is at least the mean luma of the (2*radius+1) square
// window around it, clipped to the image bounds, and black otherwise.
//
// A radius below zero is treated as zero, which makes every pixel white.
func AdaptiveThreshold(img image.Image, radius int) *image.Gray {
	radius = max(radius, 0)

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	luma := make([]uint8, w*h)
	for y := range h {
		for x := range w {
			luma[y*w+x] = color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray).Y
		}
	}

	// Summed-area table with a zero row and column prepended.
	stride := w + 1
	sums := make([]uint64, stride*(h+1))

	for y := range h {
		var row uint64

		for x := range w {
			row += uint64(luma[y*w+x])
			sums[(y+1)*stride+x+1] = sums[y*stride+x+1] + row
		}
	}

	out := image.NewGray(image.Rect(0, 0, w, h))

	for y := range h {
		y0, y1 := max(y-radius, 0), min(y+radius+1, h)

		for x := range w {
			x0, x1 := max(x-radius, 0), min(x+radius+1, w)

			total := sums[y1*stride+x1] - sums[y0*stride+x1] - sums[y1*stride+x0] + sums[y0*stride+x0]
			count := uint64((y1 - y0) * (x1 - x0))

			if uint64(luma[y*w+x])*count >= total {
				out.Pix[y*out.Stride+x] = 0xff
			}
		}
	}

	return out
}
