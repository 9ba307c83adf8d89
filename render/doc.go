// Package render converts pixel grids into character frames.
//
// A [Classifier] decides which glyph represents a pixel, or a block of
// pixels, and which color it carries. Three classifiers are provided:
//
//   - [Ascii] looks the pixel's [Luminance] up in a glyph ramp.
//   - [Braille] packs 2x4 blocks of lit/unlit pixels into Unicode Braille
//     patterns via [BrailleRune].
//   - [Stencil] tiles a string across lit pixels and leaves the rest blank.
//
// A [Renderer] drives a classifier over a whole [raster.Grid], classifying
// rows in parallel, and collects the cells into a [frame.Frame]:
//
//	r := render.New(render.NewAscii(render.DefaultRamp), false)
//	f, err := r.RenderImage(ctx, img, resize.Spec{
//	    Width:     80,
//	    FontRatio: resize.DefaultFontRatio,
//	    Filter:    resize.FilterTriangle,
//	})
//	fmt.Println(f)
package render
