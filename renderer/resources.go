package renderer

import (
	"errors"
	"fmt"

	"github.com/bloeys/nshade/assert"
	"github.com/bloeys/nshade/buffers"
	"github.com/bloeys/nshade/gpu"
	"github.com/bloeys/nshade/logging"
	"github.com/bloeys/nshade/meshes"
)

var (
	ErrZeroSizedFramebuffer  = errors.New("framebuffer size must be positive")
	ErrIncompleteFramebuffer = errors.New("framebuffer is incomplete")
)

// FrameResources owns the framebuffers shared by the passes: the shadow map, which keeps
// its size for the whole session, and the filter target, which follows the window size.
// Every allocation here changes global bindings, so passes always bind what they use
type FrameResources struct {
	ShadowFbo       buffers.Framebuffer
	ShadowSize      int32
	ShadowSupported bool

	FilterFbo    buffers.Framebuffer
	FilterQuad   meshes.Model
	FilterWidth  int32
	FilterHeight int32

	// shadowCap limits the shadow map size. 0 means the device max
	shadowCap     int32
	shadowCreated bool
	filterCreated bool

	dev gpu.Device
}

func (r *FrameResources) ShadowMapTex() uint32 {
	return r.ShadowFbo.DepthTexture()
}

func (r *FrameResources) FilterColorTex() uint32 {
	return r.FilterFbo.ColorTexture()
}

// CreateShadowResources creates the depth only shadow framebuffer at
// min(device max texture size, cap). An incomplete framebuffer is not an error:
// shadows get disabled for the session and rendering goes on without them
func (r *FrameResources) CreateShadowResources() {

	assert.T(!r.shadowCreated, "shadow resources must only be created once")
	r.shadowCreated = true

	size := r.dev.MaxTextureSize()
	if r.shadowCap > 0 && r.shadowCap < size {
		size = r.shadowCap
	}

	r.ShadowSize = size
	logging.InfoLog.Printf("Shadow map size is %dx%d\n", size, size)

	r.ShadowFbo = buffers.NewFramebuffer(r.dev, uint32(size), uint32(size))
	r.ShadowFbo.NewDepthAttachment()
	r.ShadowFbo.SetNoColorBuffer()

	r.ShadowSupported = r.ShadowFbo.IsComplete()
	if !r.ShadowSupported {
		logging.WarnLog.Printf("Shadow framebuffer of size %dx%d is incomplete. Shadows will be disabled\n", size, size)
	}
}

// CreateFilterResources (re)creates the filter color texture and depth-stencil renderbuffer at
// the given size. The full screen quad is only created on the first call
func (r *FrameResources) CreateFilterResources(width, height int32) error {

	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: filter target of %dx%d", ErrZeroSizedFramebuffer, width, height)
	}

	if !r.filterCreated {

		r.FilterQuad = meshes.NewFilterQuad(r.dev)

		r.FilterFbo = buffers.NewFramebuffer(r.dev, uint32(width), uint32(height))
		r.FilterFbo.NewColorAttachment(buffers.FramebufferAttachmentType_Texture, gpu.TextureFormat_RGB8)
		r.FilterFbo.NewDepthStencilAttachment(buffers.FramebufferAttachmentType_Renderbuffer, gpu.TextureFormat_Depth24Stencil8)

		r.filterCreated = true
	} else {
		r.FilterFbo.Resize(uint32(width), uint32(height))
	}

	r.FilterWidth = width
	r.FilterHeight = height

	if !r.FilterFbo.IsComplete() {
		return fmt.Errorf("%w: filter target of %dx%d", ErrIncompleteFramebuffer, width, height)
	}

	return nil
}

func (r *FrameResources) Delete() {

	r.ShadowFbo.Delete()
	r.FilterFbo.Delete()
	r.FilterQuad.Delete()

	r.shadowCreated = false
	r.filterCreated = false
}

func NewFrameResources(dev gpu.Device, shadowCap int32) *FrameResources {
	return &FrameResources{
		shadowCap: shadowCap,
		dev:       dev,
	}
}
