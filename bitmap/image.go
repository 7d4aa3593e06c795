package bitmap

import "fmt"

// Origin describes which row of a pixel buffer is stored first.
type Origin uint8

const (
	// TopDown buffers store the visual top row first.
	TopDown Origin = iota

	// BottomUp buffers store the visual bottom row first.
	BottomUp
)

func (o Origin) String() string {
	switch o {
	case TopDown:
		return "TopDown"
	case BottomUp:
		return "BottomUp"
	default:
		return fmt.Sprintf("Origin(%d)", uint8(o))
	}
}

// BytesPerPixel is the size of one BGRA pixel.
const BytesPerPixel = 4

// Image is a decoded raster image with 32-bit BGRA pixels in straight alpha.
// An Image is not modified after it was produced.
type Image struct {
	Width  uint32
	Height uint32

	// number of bytes between the start of two consecutive rows
	Stride uint32

	Pixels []byte
	Origin Origin
}

// New allocates a fully transparent, top-down image.
func New(width, height uint32) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Stride: width * BytesPerPixel,
		Pixels: make([]byte, int(width)*int(height)*BytesPerPixel),
	}
}

// Row returns the pixels of the stored row y, without padding.
func (img *Image) Row(y uint32) []byte {
	offset := y * img.Stride
	return img.Pixels[offset : offset+img.Width*BytesPerPixel]
}

// At returns the BGRA components of the pixel at x, y where y counts from the visual top.
func (img *Image) At(x, y uint32) (b, g, r, a uint8) {
	if img.Origin == BottomUp {
		y = img.Height - 1 - y
	}

	px := img.Row(y)[x*BytesPerPixel:]
	return px[0], px[1], px[2], px[3]
}

// TopDown returns the image with row 0 at the visual top. Top-down images are
// returned as is, bottom-up images are copied with their rows reversed.
func (img *Image) TopDown() *Image {
	if img.Origin == TopDown {
		return img
	}

	flipped := New(img.Width, img.Height)
	for y := range img.Height {
		copy(flipped.Row(img.Height-1-y), img.Row(y))
	}

	return flipped
}

func (img *Image) String() string {
	return fmt.Sprintf("Image(%dx%d, stride=%d, %s)", img.Width, img.Height, img.Stride, img.Origin)
}
