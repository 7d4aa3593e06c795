// Package bitmap decodes image files into BGRA pixel buffers that can be
// uploaded to the gpu without further conversion.
package bitmap

import (
	"errors"
	"fmt"
	"image"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	ErrFileNotFound      = errors.New("file not found")
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrDecodeFailed      = errors.New("decode failed")
	ErrTooLarge          = errors.New("image too large")
)

// MaxDimension is the largest width or height Decode accepts. It matches the
// texture size every gpu supports with the default limits.
const MaxDimension = 8192

// Extensions lists the file extensions of all formats Decode understands.
var Extensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}

// Decode reads the image file at path and converts it into a top-down BGRA image.
func Decode(path string) (*Image, error) {
	fp, err := os.Open(filepath.Clean(path))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)

	case err != nil:
		return nil, fmt.Errorf("%w: open %s: %w", ErrDecodeFailed, path, err)
	}

	defer func() { _ = fp.Close() }()

	if info, err := fp.Stat(); err == nil && info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrDecodeFailed, path)
	}

	// check the header before the decoder allocates the full image
	config, format, err := image.DecodeConfig(fp)
	switch {
	case errors.Is(err, image.ErrFormat):
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)

	case err != nil:
		return nil, fmt.Errorf("%w: %s: %w", ErrDecodeFailed, path, err)

	case config.Width > MaxDimension || config.Height > MaxDimension:
		return nil, fmt.Errorf("%w: %s is %dx%d, limit is %d",
			ErrTooLarge, path, config.Width, config.Height, MaxDimension)
	}

	if _, err := fp.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecodeFailed, path, err)
	}

	src, _, err := image.Decode(fp)
	switch {
	case errors.Is(err, image.ErrFormat):
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)

	case err != nil:
		return nil, fmt.Errorf("%w: %s: %w", ErrDecodeFailed, path, err)
	}

	bounds := src.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("%w: %s: image has no pixels", ErrDecodeFailed, path)
	}

	slog.Debug("Decoded image",
		slog.String("path", path),
		slog.String("format", format),
		slog.Int("width", bounds.Dx()),
		slog.Int("height", bounds.Dy()),
	)

	return FromImage(src), nil
}

// FromImage converts any image.Image into a top-down BGRA image with straight alpha.
func FromImage(src image.Image) *Image {
	bounds := src.Bounds()

	// straight alpha, same byte order as RGBA but without premultiplication
	nrgba := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), src, bounds.Min, draw.Src)

	// swap red and blue in place to get BGRA
	pix := nrgba.Pix
	for idx := 0; idx+3 < len(pix); idx += BytesPerPixel {
		pix[idx], pix[idx+2] = pix[idx+2], pix[idx]
	}

	return &Image{
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
		Stride: uint32(nrgba.Stride),
		Pixels: pix,
		Origin: TopDown,
	}
}
