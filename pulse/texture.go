package pulse

import (
	"fmt"

	"github.com/oliverbestmann/daylight/bitmap"
	"github.com/oliverbestmann/daylight/glm"
	"github.com/oliverbestmann/webgpu/wgpu"
)

// MaxTextureDimension is the largest texture width or height every device
// supports with the default limits.
const MaxTextureDimension = bitmap.MaxDimension

// Texture wraps a wgpu.Texture and an identity wgpu.TextureView.
type Texture struct {
	texture     *wgpu.Texture
	textureView *wgpu.TextureView

	// equal to texture.GetFormat()
	format wgpu.TextureFormat

	size glm.Vec2u
}

type NewTextureOptions struct {
	Format wgpu.TextureFormat
	Width  uint32
	Height uint32
	Label  string
}

// NewTexture creates a texture that can be sampled in a shader and written to
// with WritePixels.
func NewTexture(ctx *Context, opts NewTextureOptions) (*Texture, error) {
	desc := &wgpu.TextureDescriptor{
		Label:         opts.Label,
		Format:        opts.Format,
		SampleCount:   1,
		MipLevelCount: 1,

		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              opts.Width,
			Height:             opts.Height,
			DepthOrArrayLayers: 1,
		},

		Usage: wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	}

	texture, err := ctx.TryCreateTexture(desc)
	if err != nil {
		return nil, fmt.Errorf("create texture %q: %w", opts.Label, err)
	}

	textureView, err := texture.TryCreateView(nil)
	if err != nil {
		texture.Release()
		return nil, fmt.Errorf("create view of texture %q: %w", opts.Label, err)
	}

	t := &Texture{
		texture:     texture,
		textureView: textureView,
		format:      opts.Format,
		size:        glm.Vec2u{opts.Width, opts.Height},
	}

	return t, nil
}

// NewTextureFromBitmap uploads a decoded image into a new BGRA texture. Every
// failure is reported as ErrGpuUploadFailed.
func NewTextureFromBitmap(ctx *Context, img *bitmap.Image, label string) (*Texture, error) {
	if img.Width == 0 || img.Height == 0 {
		return nil, fmt.Errorf("%w: image %q has no pixels", ErrGpuUploadFailed, label)
	}

	if img.Width > MaxTextureDimension || img.Height > MaxTextureDimension {
		return nil, fmt.Errorf("%w: image %q is %dx%d, limit is %d",
			ErrGpuUploadFailed, label, img.Width, img.Height, MaxTextureDimension)
	}

	// texture rows are addressed top to bottom
	img = img.TopDown()

	t, err := NewTexture(ctx, NewTextureOptions{
		Format: wgpu.TextureFormatBGRA8Unorm,
		Width:  img.Width,
		Height: img.Height,
		Label:  label,
	})

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGpuUploadFailed, err)
	}

	guard := NewReleaseGuard(t)
	defer guard.Release()

	if err := t.WritePixels(ctx, img.Pixels, img.Stride); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGpuUploadFailed, err)
	}

	guard.Keep()

	return t, nil
}

func (t *Texture) Width() uint32 {
	return t.size[0]
}

func (t *Texture) Height() uint32 {
	return t.size[1]
}

func (t *Texture) Size() glm.Vec2u {
	return t.size
}

func (t *Texture) Format() wgpu.TextureFormat {
	return t.format
}

func (t *Texture) View() *wgpu.TextureView {
	return t.textureView
}

// Release releases the texture view and the texture. You must be sure to
// not use the texture after calling release.
func (t *Texture) Release() {
	if t.textureView != nil {
		t.textureView.Release()
		t.textureView = nil
	}

	if t.texture != nil {
		t.texture.Release()
		t.texture = nil
	}
}

// WritePixels replaces the full content of the texture. Rows in pixels are
// stride bytes apart, a stride of zero means tightly packed rows.
func (t *Texture) WritePixels(ctx *Context, pixels []byte, stride uint32) error {
	width, height := t.size.XY()

	if stride == 0 {
		stride = width * bitmap.BytesPerPixel
	}

	if need := uint64(stride)*uint64(height-1) + uint64(width)*bitmap.BytesPerPixel; uint64(len(pixels)) < need {
		return fmt.Errorf("pixel buffer too small: got %d bytes, need %d", len(pixels), need)
	}

	layout := &wgpu.TexelCopyBufferLayout{
		Offset:       0,
		BytesPerRow:  stride,
		RowsPerImage: height,
	}

	size := &wgpu.Extent3D{
		Width:              width,
		Height:             height,
		DepthOrArrayLayers: 1,
	}

	dest := &wgpu.TexelCopyTextureInfo{
		Texture:  t.texture,
		MipLevel: 0,
		Aspect:   wgpu.TextureAspectAll,
	}

	// send data to the gpu
	if err := ctx.TryWriteTexture(dest, pixels, layout, size); err != nil {
		return fmt.Errorf("copy image data to texture: %w", err)
	}

	return nil
}
