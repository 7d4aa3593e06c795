package pulse

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/oliverbestmann/daylight/glm"
	"github.com/oliverbestmann/webgpu/wgpu"
)

// View owns the configuration of the surface, the swapchain that frames are
// presented to. The surface is configured once, the viewer does not resize.
type View struct {
	*Context

	surfaceConfig *wgpu.SurfaceConfiguration
	configured    bool
}

// NewView prepares a double buffered surface configuration presenting with vsync.
func NewView(ctx *Context) (*View, error) {
	// Print the available render formats
	caps := ctx.Surface.GetCapabilities(ctx.Adapter)
	slog.Info("Available surface formats", slog.Any("formats", caps.Formats))

	if len(caps.Formats) == 0 || len(caps.AlphaModes) == 0 {
		return nil, fmt.Errorf("%w: surface is not compatible with the adapter", ErrDeviceCreationFailed)
	}

	st := &View{Context: ctx}

	st.surfaceConfig = &wgpu.SurfaceConfiguration{
		Usage:  wgpu.TextureUsageRenderAttachment,
		Format: ChooseSurfaceFormat(caps.Formats),

		// blocks on present until the next vertical blank, an interval of one
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],

		// one frame on screen, one being rendered
		DesiredMaximumFrameLatency: 2,
	}

	return st, nil
}

// ChooseSurfaceFormat prefers BGRA8Unorm, then RGBA8Unorm. Other formats, including the
// srgb variants, are only used if nothing else is available, as the image bytes must reach
// the screen without a color conversion.
func ChooseSurfaceFormat(formats []wgpu.TextureFormat) wgpu.TextureFormat {
	preferred := []wgpu.TextureFormat{
		wgpu.TextureFormatBGRA8Unorm,
		wgpu.TextureFormatRGBA8Unorm,
	}

	for _, format := range preferred {
		if slices.Contains(formats, format) {
			return format
		}
	}

	return formats[0]
}

func (vs *View) Format() wgpu.TextureFormat {
	return vs.surfaceConfig.Format
}

func (vs *View) Size() glm.Vec2u {
	return glm.Vec2u{vs.surfaceConfig.Width, vs.surfaceConfig.Height}
}

// Configure sizes the swapchain. It is called once when the window is shown.
func (vs *View) Configure(width, height uint32) error {
	if width == 0 || height == 0 {
		return fmt.Errorf("invalid surface size %dx%d", width, height)
	}

	slog.Info("Configure surface",
		slog.Int("width", int(width)),
		slog.Int("height", int(height)),
		slog.Any("format", vs.surfaceConfig.Format),
	)

	vs.surfaceConfig.Width = width
	vs.surfaceConfig.Height = height

	vs.Surface.Configure(vs.Device, vs.surfaceConfig)
	vs.configured = true

	return nil
}

// Frame is an acquired back buffer of the surface.
type Frame struct {
	texture *wgpu.Texture
	view    *wgpu.TextureView
	format  wgpu.TextureFormat
}

// Target returns the back buffer as a RenderTarget.
func (f *Frame) Target() RenderTarget {
	return RenderTarget{
		View:   f.view,
		Format: f.format,
		Width:  f.texture.GetWidth(),
		Height: f.texture.GetHeight(),
	}
}

// AcquireFrame returns the next back buffer to render into. Failing to get one
// is reported as ErrPresentationLost.
func (vs *View) AcquireFrame() (*Frame, error) {
	if !vs.configured {
		return nil, errors.New("surface is not configured")
	}

	// get the surface texture (the actual screen)
	surface, err := vs.Surface.TryGetCurrentTexture()
	if err != nil {
		return nil, fmt.Errorf("%w: get current texture: %w", ErrPresentationLost, err)
	}

	view, err := surface.TryCreateView(nil)
	if err != nil {
		surface.Release()
		return nil, fmt.Errorf("%w: create back buffer view: %w", ErrPresentationLost, err)
	}

	return &Frame{texture: surface, view: view, format: vs.surfaceConfig.Format}, nil
}

// Present shows the frame on screen. With fifo presentation this waits
// for the next vertical blank.
func (vs *View) Present(frame *Frame) {
	vs.Surface.Present()

	// we do not need to release the screen if present was successful
	frame.view.Release()
}

// Discard releases a frame that will not be presented.
func (vs *View) Discard(frame *Frame) {
	frame.view.Release()
	frame.texture.Release()
}

// Release unconfigures the surface.
func (vs *View) Release() {
	if vs.configured {
		vs.Surface.Unconfigure()
		vs.configured = false
	}
}
