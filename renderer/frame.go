package renderer

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/transform"
	"github.com/bloeys/nshade/gpu"
	"github.com/bloeys/nshade/postfx"
	"github.com/bloeys/nshade/scene"
)

type Options struct {
	// ShaderDir holds the combined shader files named by the ShaderFile_ constants
	ShaderDir string

	// ShadowMaxSize caps the shadow map size. 0 means the device max
	ShadowMaxSize int32

	ClearColor [4]float32
}

// Frame runs the passes in their fixed order over one scene context, and owns the
// resources they share
type Frame struct {
	Ctx    *scene.Context
	Res    *FrameResources
	Passes []Pass

	Width  int32
	Height int32

	pendingResize bool
	pendingWidth  int32
	pendingHeight int32

	env *frameEnv
	dev gpu.Device
}

// RequestResize records the new window size. Nothing is reallocated until the next Render,
// and only the last request before it counts
func (f *Frame) RequestResize(width, height int32) {
	f.pendingResize = true
	f.pendingWidth = width
	f.pendingHeight = height
}

func (f *Frame) HasPendingResize() bool {
	return f.pendingResize
}

func (f *Frame) applyResize() error {

	f.pendingResize = false

	if err := f.Res.CreateFilterResources(f.pendingWidth, f.pendingHeight); err != nil {
		return err
	}

	f.Width = f.pendingWidth
	f.Height = f.pendingHeight
	f.Ctx.Camera.SetAspectRatio(float32(f.Width) / float32(f.Height))
	return nil
}

// Render draws one frame. A pending resize is applied before any pass runs.
// Errors are fatal: the frame is not drawn
func (f *Frame) Render() error {

	if f.pendingResize {
		if err := f.applyResize(); err != nil {
			return fmt.Errorf("resize: %w", err)
		}
	}

	f.env.draw.Reset()

	dev := f.dev
	dev.Enable(gpu.Capability_DepthTest)
	dev.DepthMask(true)
	dev.DepthFunc(gpu.DepthFunc_Less)

	f.Ctx.Camera.Update()

	for _, p := range f.Passes {
		p.Execute(f.Ctx)
	}

	return nil
}

// Capture reads back the scene before the filter pass and runs it through the CPU filter,
// so it matches what is on screen. Rows are returned top first
func (f *Frame) Capture() *image.RGBA {

	f.Res.FilterFbo.Bind()
	pixels := f.dev.ReadPixels(0, 0, f.Width, f.Height)
	f.Res.FilterFbo.UnBind()

	img := &image.RGBA{
		Pix:    pixels,
		Stride: int(f.Width) * 4,
		Rect:   image.Rect(0, 0, int(f.Width), int(f.Height)),
	}

	return postfx.Apply(transform.FlipV(img), postfx.Options{
		Grayscale:     f.Ctx.Flags.Grayscale,
		EdgeDetection: f.Ctx.Flags.EdgeDetection,
	})
}

// PassNames lists the passes in execution order
func (f *Frame) PassNames() []string {

	names := make([]string, len(f.Passes))
	for i, p := range f.Passes {
		names[i] = p.Name()
	}

	return names
}

func (f *Frame) Delete() {

	for _, p := range f.Passes {
		p.Delete()
	}

	f.Res.Delete()
}

// NewFrame loads every pass and creates the shadow and filter resources at the given window size.
// Shadow support found missing here is recorded in ctx and is not an error
func NewFrame(dev gpu.Device, opts Options, ctx *scene.Context, width, height int32) (*Frame, error) {

	f := &Frame{
		Ctx: ctx,
		Res: NewFrameResources(dev, opts.ShadowMaxSize),
		Passes: []Pass{
			&ShadowPass{},
			&FilterTargetPass{},
			&SkyboxPass{},
			&LitPass{},
			&FilterPass{},
		},
		Width:  width,
		Height: height,
		dev:    dev,
	}

	f.env = &frameEnv{
		dev:  dev,
		opts: &opts,
		res:  f.Res,
		draw: &drawer{dev: dev},
	}

	for _, p := range f.Passes {
		if err := p.load(f.env); err != nil {
			f.Delete()
			return nil, fmt.Errorf("failed to load %s pass: %w", p.Name(), err)
		}
	}

	f.Res.CreateShadowResources()
	ctx.ShadowSupported = f.Res.ShadowSupported
	ctx.ShadowMapTex = f.Res.ShadowMapTex()

	if err := f.Res.CreateFilterResources(width, height); err != nil {
		f.Delete()
		return nil, err
	}

	ctx.Camera.SetAspectRatio(float32(width) / float32(height))
	return f, nil
}
