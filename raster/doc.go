// Package raster holds decoded pixel data in one of a closed set of channel
// layouts ([Gray], [GrayAlpha], [RGB] and [RGBA]).
//
// Every layout is read through [Grid.Sample], which fills in layout
// defaults (gray on all color channels, opaque alpha), so consumers never
// switch on the layout themselves:
//
//	g := raster.FromImage(img)
//	r, gr, b, a := g.Sample(x, y)
//
// [AdaptiveThreshold] binarizes an image against the mean of each pixel's
// neighborhood before it is handed to a renderer.
package raster
