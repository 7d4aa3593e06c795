package commands

import (
	"encoding/binary"

	"github.com/oliverbestmann/daylight/glm"
	"github.com/oliverbestmann/daylight/pulse"
	"golang.org/x/mobile/exp/f32"
)

// ResolutionSize is the size of the resolution uniform buffer in bytes.
const ResolutionSize = 4 * 4

// Resolution holds the image and surface dimensions the vertex shader
// needs to keep the aspect ratio of the image.
type Resolution struct {
	Image   glm.Vec2f
	Surface glm.Vec2f
}

func ResolutionOf(imageWidth, imageHeight, surfaceWidth, surfaceHeight uint32) Resolution {
	return Resolution{
		Image:   glm.Vec2Of[float32](glm.Vec2u{imageWidth, imageHeight}),
		Surface: glm.Vec2Of[float32](glm.Vec2u{surfaceWidth, surfaceHeight}),
	}
}

// Scale returns the factors applied to the x and y coordinates of the unit quad.
// This mirrors aspect_scale in aspectquad.wgsl.
func (r Resolution) Scale() glm.Vec2f {
	scale := glm.Vec2f{1, 1}

	if min(r.Image[0], r.Image[1]) <= 0 || min(r.Surface[0], r.Surface[1]) <= 0 {
		return scale
	}

	imageAspect := r.Image.Aspect()
	surfaceAspect := r.Surface.Aspect()

	if imageAspect > surfaceAspect {
		scale[1] = surfaceAspect / imageAspect
	} else {
		scale[0] = imageAspect / surfaceAspect
	}

	return scale
}

// Extent returns the area of the surface covered by the image, in pixels.
// The area is centered on the surface.
func (r Resolution) Extent() pulse.Rectangle2f {
	size := r.Surface.Mul(r.Scale())
	offset := r.Surface.Sub(size).Div(glm.Vec2f{2, 2})
	return pulse.RectangleFromSize(offset, size)
}

func (r Resolution) ToVec() glm.Vec4f {
	return glm.Vec4f{r.Image[0], r.Image[1], r.Surface[0], r.Surface[1]}
}

// Bytes encodes the uniform as four little endian float32 values.
func (r Resolution) Bytes() []byte {
	x, y, z, w := r.ToVec().XYZW()
	return f32.Bytes(binary.LittleEndian, x, y, z, w)
}
