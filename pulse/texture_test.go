package pulse

import (
	"errors"
	"strings"
	"testing"

	"github.com/oliverbestmann/daylight/bitmap"
	"github.com/oliverbestmann/daylight/glm"
)

func TestNewTextureFromBitmapRejectsDimensions(t *testing.T) {
	cases := []struct {
		name string
		img  *bitmap.Image
	}{
		{"empty", &bitmap.Image{}},
		{"zero height", &bitmap.Image{Width: 16}},
		{"too wide", &bitmap.Image{Width: MaxTextureDimension + 1, Height: 1}},
		{"too high", &bitmap.Image{Width: 1, Height: MaxTextureDimension + 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// rejected before the context is used
			texture, err := NewTextureFromBitmap(nil, tc.img, tc.name)
			if !errors.Is(err, ErrGpuUploadFailed) {
				t.Fatalf("NewTextureFromBitmap() error = %v, want ErrGpuUploadFailed", err)
			}

			if texture != nil {
				t.Errorf("NewTextureFromBitmap() returned a texture on error")
			}
		})
	}
}

func TestWritePixelsRejectsShortBuffer(t *testing.T) {
	texture := &Texture{size: glm.Vec2u{4, 4}}

	cases := []struct {
		name   string
		pixels int
		stride uint32
	}{
		{"tight rows", 4*4*4 - 1, 0},
		{"padded rows", 3*32 + 4*4 - 1, 32},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := texture.WritePixels(nil, make([]byte, tc.pixels), tc.stride)
			if err == nil || !strings.Contains(err.Error(), "pixel buffer too small") {
				t.Errorf("WritePixels() error = %v, want a too small buffer error", err)
			}
		})
	}
}

func TestTextureReleaseTwice(t *testing.T) {
	var texture Texture

	texture.Release()
	texture.Release()
}
