package resize_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/termart/resize"
)

func TestDimensions(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		spec  resize.Spec
		srcW  int
		srcH  int
		wantW int
		wantH int
	}{
		"no target passes through": {
			spec:  resize.Spec{FontRatio: resize.DefaultFontRatio},
			srcW:  100,
			srcH:  50,
			wantW: 100,
			wantH: 50,
		},
		"width only": {
			spec:  resize.Spec{Width: 64, FontRatio: 11.0 / 24.0},
			srcW:  100,
			srcH:  50,
			wantW: 64,
			wantH: 14, // floor(64 * 11/24 * 50/100)
		},
		"height only": {
			spec:  resize.Spec{Height: 14, FontRatio: 11.0 / 24.0},
			srcW:  100,
			srcH:  50,
			wantW: 61,
			wantH: 14,
		},
		"both given stretches": {
			spec:  resize.Spec{Width: 10, Height: 90, FontRatio: resize.DefaultFontRatio},
			srcW:  100,
			srcH:  50,
			wantW: 10,
			wantH: 90,
		},
		"tiny target truncates to zero": {
			spec:  resize.Spec{Width: 1, FontRatio: resize.DefaultFontRatio},
			srcW:  100,
			srcH:  50,
			wantW: 1,
			wantH: 0,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			w, h := resize.Dimensions(tc.srcW, tc.srcH, tc.spec)
			assert.Equal(t, tc.wantW, w)
			assert.Equal(t, tc.wantH, h)
		})
	}
}

func TestDimensions_RoundTrip(t *testing.T) {
	t.Parallel()

	ratio := resize.DefaultFontRatio

	_, h := resize.Dimensions(100, 50, resize.Spec{Width: 64, FontRatio: ratio})
	require.Equal(t, 14, h)

	w, _ := resize.Dimensions(100, 50, resize.Spec{Height: h, FontRatio: ratio})
	assert.InDelta(t, 64, w, 3)

	// The inverse of an exactly representable height is exact.
	_, h = resize.Dimensions(240, 110, resize.Spec{Width: 48, FontRatio: ratio})
	w, _ = resize.Dimensions(240, 110, resize.Spec{Height: h, FontRatio: ratio})
	assert.InDelta(t, 48, w, 1)
}

func TestParseFilter(t *testing.T) {
	t.Parallel()

	for _, name := range resize.FilterNames() {
		f, err := resize.ParseFilter(name)
		require.NoError(t, err)
		assert.Equal(t, name, string(f))
	}

	f, err := resize.ParseFilter("Lanczos3")
	require.NoError(t, err)
	assert.Equal(t, resize.FilterLanczos3, f)

	_, err = resize.ParseFilter("gaussian")
	require.ErrorIs(t, err, resize.ErrUnknownFilter)
}

func TestResize(t *testing.T) {
	t.Parallel()

	src := image.NewRGBA(image.Rect(0, 0, 100, 50))
	for y := range 50 {
		for x := range 100 {
			src.SetRGBA(x, y, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
		}
	}

	for _, f := range resize.Filters() {
		t.Run(string(f), func(t *testing.T) {
			t.Parallel()

			out, err := resize.Resize(src, resize.Spec{
				Width:     64,
				FontRatio: resize.DefaultFontRatio,
				Filter:    f,
			})
			require.NoError(t, err)

			assert.Equal(t, 64, out.Bounds().Dx())
			assert.Equal(t, 14, out.Bounds().Dy())

			r, g, b, a := out.At(out.Bounds().Min.X+10, out.Bounds().Min.Y+5).RGBA()
			for _, v := range []uint32{r, g, b, a} {
				assert.Greater(t, v, uint32(0xf000))
			}
		})
	}
}

func TestResize_NoTarget(t *testing.T) {
	t.Parallel()

	src := image.NewGray(image.Rect(0, 0, 3, 3))
	out, err := resize.Resize(src, resize.Spec{FontRatio: resize.DefaultFontRatio})
	require.NoError(t, err)

	assert.Same(t, src, out)
}

func TestResize_ZeroResult(t *testing.T) {
	t.Parallel()

	src := image.NewGray(image.Rect(0, 0, 100, 50))
	out, err := resize.Resize(src, resize.Spec{Width: 1, FontRatio: resize.DefaultFontRatio})
	require.NoError(t, err)

	assert.Equal(t, 1, out.Bounds().Dx())
	assert.Equal(t, 0, out.Bounds().Dy())
}

func TestResize_TooLarge(t *testing.T) {
	t.Parallel()

	src := image.NewGray(image.Rect(0, 0, 10, 10))

	tcs := map[string]resize.Spec{
		"both sides huge": {Width: 1 << 31, Height: 1 << 31},
		"width too wide":  {Width: resize.MaxDimension + 1, Height: 1},
		"area too large":  {Width: resize.MaxDimension, Height: resize.MaxDimension},
		"derived height":  {Width: 100, FontRatio: 1e300},
	}

	for name, spec := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			out, err := resize.Resize(src, spec)
			require.ErrorIs(t, err, resize.ErrTooLarge)
			assert.Nil(t, out)
		})
	}
}

func TestResize_KeepsGray(t *testing.T) {
	t.Parallel()

	src := image.NewGray(image.Rect(0, 0, 100, 50))

	for _, f := range resize.Filters() {
		t.Run(string(f), func(t *testing.T) {
			t.Parallel()

			out, err := resize.Resize(src, resize.Spec{Width: 20, FontRatio: 1, Filter: f})
			require.NoError(t, err)
			assert.IsType(t, &image.Gray{}, out)
			assert.Equal(t, image.Rect(0, 0, 20, 10), out.Bounds())
		})
	}
}
