package glimpse

import "github.com/oliverbestmann/webgpu/wgpu"

type Window interface {
	// GetSize returns the size of the framebuffer in pixels
	GetSize() (uint32, uint32)
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	SetTitle(title string)

	// Close asks Run to return after the current iteration
	Close()

	Run(render func(input UpdateInputState) error) error
	Terminate()
}
