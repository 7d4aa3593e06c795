package orion

import (
	"fmt"

	"github.com/oliverbestmann/daylight/bitmap"
	"github.com/oliverbestmann/daylight/glm"
	"github.com/oliverbestmann/daylight/pulse"
	"github.com/oliverbestmann/daylight/pulse/commands"
)

// surface is the part of pulse.View the viewer presents to.
type surface interface {
	Size() glm.Vec2u
	AcquireFrame() (*pulse.Frame, error)
	Present(frame *pulse.Frame)
	Discard(frame *pulse.Frame)
}

// quad is the part of commands.AspectQuad the viewer draws with.
type quad interface {
	Bind(texture *pulse.Texture) (*commands.Binding, error)
	UpdateResolution(imageWidth, imageHeight, surfaceWidth, surfaceHeight uint32) error
	Draw(target pulse.RenderTarget, binding *commands.Binding, clear pulse.Color) error
}

// Viewer draws the current image to the surface once per frame. It implements
// both Frame for the Scheduler and slideshow.Renderer for the Controller.
type Viewer struct {
	view surface
	quad quad
	slot *pulse.Slot[*commands.Binding]

	upload  func(img *bitmap.Image) (*pulse.Texture, error)
	discard func(resource pulse.Releaser)

	clear pulse.Color
}

func NewViewer(ctx *pulse.Context, view *pulse.View, quad *commands.AspectQuad) *Viewer {
	return &Viewer{
		view: view,
		quad: quad,
		slot: pulse.NewSlot[*commands.Binding](ctx),

		upload: func(img *bitmap.Image) (*pulse.Texture, error) {
			return pulse.NewTextureFromBitmap(ctx, img, "Slide")
		},

		discard: pulse.Releaser.Release,

		clear: pulse.ColorDarkGray,
	}
}

// ShowImage uploads img and makes it the image drawn by the next frame. On error
// only the objects created for img are released, the previous image stays bound.
func (v *Viewer) ShowImage(img *bitmap.Image) error {
	texture, err := v.upload(img)
	if err != nil {
		return err
	}

	binding, err := v.quad.Bind(texture)
	if err != nil {
		v.discard(texture)
		return fmt.Errorf("%w: bind texture: %w", pulse.ErrGpuUploadFailed, err)
	}

	size := v.view.Size()

	err = v.quad.UpdateResolution(texture.Width(), texture.Height(), size[0], size[1])
	if err != nil {
		// releases the texture too
		v.discard(binding)
		return fmt.Errorf("%w: %w", pulse.ErrGpuUploadFailed, err)
	}

	// binds the new texture, waits for the queue and releases the old one
	v.slot.Replace(binding)

	return nil
}

// RenderFrame clears the back buffer, draws the bound image and presents it.
func (v *Viewer) RenderFrame() error {
	binding, ok := v.slot.Current()
	if !ok {
		return nil
	}

	frame, err := v.view.AcquireFrame()
	if err != nil {
		return err
	}

	if err := v.quad.Draw(frame.Target(), binding, v.clear); err != nil {
		v.view.Discard(frame)
		return fmt.Errorf("%w: draw: %w", pulse.ErrPresentationLost, err)
	}

	v.view.Present(frame)

	return nil
}

// Release releases the bound image, if any.
func (v *Viewer) Release() {
	v.slot.Release()
}
