package commands

import (
	_ "embed"
	"fmt"
	"log/slog"
	"structs"
	"unsafe"

	"github.com/oliverbestmann/daylight/glm"
	"github.com/oliverbestmann/daylight/pulse"
	"github.com/oliverbestmann/webgpu/wgpu"
)

//go:embed aspectquad.wgsl
var aspectQuadShaderCode string

type quadVertex struct {
	_ structs.HostLayout

	Position glm.Vec3f
	TexCoord glm.Vec2f
}

// unit quad as a triangle strip. Texture row 0 is the visual top,
// so v grows downwards.
var quadVertices = []quadVertex{
	{Position: glm.Vec3f{-1, 1, 0}, TexCoord: glm.Vec2f{0, 0}},  // top-left
	{Position: glm.Vec3f{1, 1, 0}, TexCoord: glm.Vec2f{1, 0}},   // top-right
	{Position: glm.Vec3f{-1, -1, 0}, TexCoord: glm.Vec2f{0, 1}}, // bottom-left
	{Position: glm.Vec3f{1, -1, 0}, TexCoord: glm.Vec2f{1, 1}},  // bottom-right
}

// AspectQuad draws a texture onto a full screen quad that is scaled
// to keep the aspect ratio of the texture.
type AspectQuad struct {
	ctx *pulse.Context

	pipelineCache *pulse.PipelineCache[aspectQuadPipelineConfig]
	pipeline      pulse.CachedPipeline

	bufVertices   *wgpu.Buffer
	bufResolution *wgpu.Buffer

	resolution Resolution
}

func NewAspectQuad(ctx *pulse.Context, targetFormat wgpu.TextureFormat) (*AspectQuad, error) {
	q := &AspectQuad{
		ctx:           ctx,
		pipelineCache: pulse.NewPipelineCache[aspectQuadPipelineConfig](ctx),
	}

	var err error

	q.pipeline, err = q.pipelineCache.Get(aspectQuadPipelineConfig{
		TargetFormat: targetFormat,
		ShaderSource: aspectQuadShaderCode,
	})

	if err != nil {
		q.Release()
		return nil, fmt.Errorf("create aspect quad pipeline: %w", err)
	}

	// static, never written again
	q.bufVertices, err = ctx.TryCreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "AspectQuad.Vertices",
		Contents: wgpu.ToBytes(quadVertices),
		Usage:    wgpu.BufferUsageVertex,
	})

	if err != nil {
		q.Release()
		return nil, fmt.Errorf("create aspect quad vertices: %w", err)
	}

	// updated in place whenever the image changes
	q.bufResolution, err = ctx.TryCreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "AspectQuad.Resolution",
		Contents: q.resolution.Bytes(),
		Usage:    wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})

	if err != nil {
		q.Release()
		return nil, fmt.Errorf("create aspect quad uniform: %w", err)
	}

	return q, nil
}

// UpdateResolution writes the image and surface size into the existing uniform buffer.
// If the write fails, the values written before stay in place.
func (q *AspectQuad) UpdateResolution(imageWidth, imageHeight, surfaceWidth, surfaceHeight uint32) error {
	resolution := ResolutionOf(imageWidth, imageHeight, surfaceWidth, surfaceHeight)

	if err := q.ctx.TryWriteBuffer(q.bufResolution, 0, resolution.Bytes()); err != nil {
		return fmt.Errorf("write resolution uniform: %w", err)
	}

	q.resolution = resolution

	slog.Debug("Update resolution",
		slog.Any("image", resolution.Image),
		slog.Any("surface", resolution.Surface),
		slog.String("extent", resolution.Extent().String()),
	)

	return nil
}

// Resolution returns the values last written by UpdateResolution.
func (q *AspectQuad) Resolution() Resolution {
	return q.resolution
}

// Binding is a texture together with the bind group that samples it.
// Releasing a Binding releases the texture too.
type Binding struct {
	Texture   *pulse.Texture
	bindGroup *wgpu.BindGroup
}

func (b *Binding) Release() {
	if b.bindGroup != nil {
		b.bindGroup.Release()
		b.bindGroup = nil
	}

	if b.Texture != nil {
		b.Texture.Release()
		b.Texture = nil
	}
}

// Bind prepares a texture for sampling by the quad. The returned Binding takes
// ownership of the texture only if no error is returned.
func (q *AspectQuad) Bind(texture *pulse.Texture) (*Binding, error) {
	sampler, err := pulse.CachedSampler(q.ctx.Device, pulse.SamplerLinearRepeat)
	if err != nil {
		return nil, err
	}

	bindGroup, err := q.ctx.TryCreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "AspectQuad.BindGroup",
		Layout: q.pipeline.GetBindGroupLayout(0),
		Entries: []wgpu.BindGroupEntry{
			{
				Binding:     0,
				TextureView: texture.View(),
			},
			{
				Binding: 1,
				Sampler: sampler,
			},
			{
				Binding: 2,
				Buffer:  q.bufResolution,
				Size:    wgpu.WholeSize,
			},
		},
	})

	if err != nil {
		return nil, fmt.Errorf("create bind group: %w", err)
	}

	return &Binding{Texture: texture, bindGroup: bindGroup}, nil
}

// Draw clears the target and draws the bound texture in a single render pass.
func (q *AspectQuad) Draw(target pulse.RenderTarget, binding *Binding, clear pulse.Color) error {
	// create command encoder to prepare render pass
	encoder, err := q.ctx.TryCreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: "AspectQuad"})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}

	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "RenderPassAspectQuad",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       target.View,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: clear.ToWGPU(),
			},
		},
	})

	pass.SetPipeline(q.pipeline.Pipeline)
	pass.SetVertexBuffer(0, q.bufVertices, 0, wgpu.WholeSize)
	pass.SetBindGroup(0, binding.bindGroup, nil)
	pass.Draw(uint32(len(quadVertices)), 1, 0, 0)

	if err := pass.TryEnd(); err != nil {
		return fmt.Errorf("end render pass: %w", err)
	}

	cmdBuffer, err := encoder.TryFinish(nil)
	if err != nil {
		return fmt.Errorf("finish command buffer: %w", err)
	}

	defer cmdBuffer.Release()

	q.ctx.Submit(cmdBuffer)

	return nil
}

func (q *AspectQuad) Release() {
	if q.bufResolution != nil {
		q.bufResolution.Release()
		q.bufResolution = nil
	}

	if q.bufVertices != nil {
		q.bufVertices.Release()
		q.bufVertices = nil
	}

	q.pipelineCache.Release()
}

type aspectQuadPipelineConfig struct {
	TargetFormat wgpu.TextureFormat
	ShaderSource string
}

func (conf aspectQuadPipelineConfig) Specialize(dev *wgpu.Device) (pipeline *wgpu.RenderPipeline, err error) {
	slog.Info(
		"Create RenderPipeline for aspect quad",
		slog.Any("format", conf.TargetFormat),
	)

	shader, err := dev.TryCreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:      "AspectQuad.ShaderSource",
		WGSLSource: &wgpu.ShaderSourceWGSL{Code: conf.ShaderSource},
	})

	if err != nil {
		return nil, fmt.Errorf("compile shader: %w", err)
	}

	defer shader.Release()

	pipeline, err = dev.TryCreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: fmt.Sprintf("AspectQuad.%s", conf.TargetFormat),
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					StepMode:    wgpu.VertexStepModeVertex,
					ArrayStride: uint64(unsafe.Sizeof(quadVertex{})),
					Attributes: []wgpu.VertexAttribute{
						{
							// position
							Format:         wgpu.VertexFormatFloat32x3,
							Offset:         uint64(unsafe.Offsetof(quadVertex{}.Position)),
							ShaderLocation: 0,
						},
						{
							// texcoord
							Format:         wgpu.VertexFormatFloat32x2,
							Offset:         uint64(unsafe.Offsetof(quadVertex{}.TexCoord)),
							ShaderLocation: 1,
						},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    conf.TargetFormat,
					Blend:     &wgpu.BlendStateReplace,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleStrip,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		DepthStencil: nil,
		Multisample: wgpu.MultisampleState{
			Count:                  1,
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: false,
		},
	})

	if err != nil {
		return nil, fmt.Errorf("create render pipeline: %w", err)
	}

	return pipeline, nil
}
