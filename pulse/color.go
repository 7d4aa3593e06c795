package pulse

import (
	"github.com/oliverbestmann/daylight/glm"
	"github.com/oliverbestmann/webgpu/wgpu"
)

var ColorDarkGray = ColorLinearRGBA(0.1, 0.1, 0.1, 1)

// Color is an a straight rgba color value. The values are passed to the gpu
// unchanged, no color space conversion is applied.
// The default value of a Color value is fully opaque white.
type Color struct {
	r1, g1, b1, a1 float32
}

// ColorLinearRGBA creates a new Color value from the given color values.
func ColorLinearRGBA(r, g, b, a float32) Color {
	return Color{
		r1: r - 1,
		g1: g - 1,
		b1: b - 1,
		a1: a - 1,
	}
}

// ToVec returns a glm.Vec4f containing the components of this Color instance.
func (c Color) ToVec() glm.Vec4f {
	return glm.Vec4f{
		c.r1 + 1,
		c.g1 + 1,
		c.b1 + 1,
		c.a1 + 1,
	}
}

// ToWGPU converts the color into a clear value for a render pass.
func (c Color) ToWGPU() wgpu.Color {
	r, g, b, a := c.Components()

	return wgpu.Color{
		R: float64(r),
		G: float64(g),
		B: float64(b),
		A: float64(a),
	}
}

// Components returns the color components.
func (c Color) Components() (r, g, b, a float32) {
	return c.ToVec().XYZW()
}
