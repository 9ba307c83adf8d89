package player

import (
	"errors"
	"fmt"
	"image"
	"os"

	// Decoders registered with [image.Decode].
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrDecode indicates that a source image could not be opened or decoded.
var ErrDecode = errors.New("decode image")

// Decoder loads the image stored at a path.
type Decoder interface {
	Decode(path string) (image.Image, error)
}

// DecoderFunc adapts a function to a [Decoder].
type DecoderFunc func(path string) (image.Image, error)

// Decode calls f(path).
func (f DecoderFunc) Decode(path string) (image.Image, error) {
	return f(path)
}

// FileDecoder decodes PNG, JPEG, GIF, BMP, TIFF and WebP files.
type FileDecoder struct{}

// Decode opens and decodes the file at path. Errors wrap [ErrDecode].
func (FileDecoder) Decode(path string) (image.Image, error) {
	f, err := os.Open(path) //nolint:gosec // Paths come from the command line.
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	defer func() {
		closeErr := f.Close()
		if closeErr != nil {
			fmt.Fprintf(os.Stderr, "warning: closing %s: %v\n", path, closeErr)
		}
	}()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}

	return img, nil
}
