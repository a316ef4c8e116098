package buffers

import (
	"github.com/bloeys/nshade/assert"
	"github.com/bloeys/nshade/gpu"
	"github.com/bloeys/nshade/logging"
)

type FramebufferAttachmentType int32

const (
	FramebufferAttachmentType_Unknown FramebufferAttachmentType = iota
	FramebufferAttachmentType_Texture
	FramebufferAttachmentType_Renderbuffer
)

func (f FramebufferAttachmentType) IsValid() bool {

	switch f {
	case FramebufferAttachmentType_Texture:
		fallthrough
	case FramebufferAttachmentType_Renderbuffer:
		return true

	default:
		return false
	}
}

type FramebufferAttachment struct {
	Id     uint32
	Type   FramebufferAttachmentType
	Format gpu.TextureFormat
	Slot   gpu.Attachment

	// Params are only used by texture attachments
	Params gpu.TextureParams
}

var (
	ColorAttachmentParams = gpu.TextureParams{
		MinFilter: gpu.TextureFilter_Linear,
		MagFilter: gpu.TextureFilter_Linear,
		WrapS:     gpu.TextureWrap_ClampToEdge,
		WrapT:     gpu.TextureWrap_ClampToEdge,
	}

	// Sampling outside a shadow map returns the white border, so depth 1 and never in shadow
	DepthMapParams = gpu.TextureParams{
		MinFilter:   gpu.TextureFilter_Nearest,
		MagFilter:   gpu.TextureFilter_Nearest,
		WrapS:       gpu.TextureWrap_ClampToBorder,
		WrapT:       gpu.TextureWrap_ClampToBorder,
		BorderColor: [4]float32{1, 1, 1, 1},
	}

	DepthStencilParams = gpu.TextureParams{
		MinFilter: gpu.TextureFilter_Nearest,
		MagFilter: gpu.TextureFilter_Nearest,
		WrapS:     gpu.TextureWrap_ClampToEdge,
		WrapT:     gpu.TextureWrap_ClampToEdge,
	}
)

type Framebuffer struct {
	Id                    uint32
	Attachments           []FramebufferAttachment
	ColorAttachmentsCount uint32
	Width                 uint32
	Height                uint32

	// NoColor is set for depth-only framebuffers that have color draw and read disabled
	NoColor bool

	dev gpu.Device
}

func (fbo *Framebuffer) Bind() {
	fbo.dev.BindFramebuffer(fbo.Id)
}

func (fbo *Framebuffer) BindWithViewport() {
	fbo.dev.BindFramebuffer(fbo.Id)
	fbo.dev.Viewport(0, 0, int32(fbo.Width), int32(fbo.Height))
}

func (fbo *Framebuffer) UnBind() {
	fbo.dev.BindFramebuffer(0)
}

func (fbo *Framebuffer) UnBindWithViewport(width, height uint32) {
	fbo.dev.BindFramebuffer(0)
	fbo.dev.Viewport(0, 0, int32(width), int32(height))
}

// Clear clears the color and depth of the fbo. Note that this function binds the fbo and leaves it bound
func (fbo *Framebuffer) Clear() {

	fbo.Bind()

	mask := gpu.ClearMask_Depth
	if fbo.HasColorAttachment() {
		mask |= gpu.ClearMask_Color
	}

	fbo.dev.Clear(mask)
}

// IsComplete returns true if the device reports that the fbo is complete/usable.
// Note that this function binds and then unbinds the fbo
func (fbo *Framebuffer) IsComplete() bool {
	fbo.Bind()
	isComplete := fbo.dev.IsFramebufferComplete()
	fbo.UnBind()
	return isComplete
}

func (fbo *Framebuffer) HasColorAttachment() bool {
	return fbo.ColorAttachmentsCount > 0
}

func (fbo *Framebuffer) HasDepthAttachment() bool {

	for i := 0; i < len(fbo.Attachments); i++ {

		a := &fbo.Attachments[i]
		if a.Format.IsDepthFormat() {
			return true
		}
	}

	return false
}

// ColorTexture returns the texture id of the first texture color attachment, or 0
func (fbo *Framebuffer) ColorTexture() uint32 {
	return fbo.findTexture(func(a *FramebufferAttachment) bool { return a.Format.IsColorFormat() })
}

// DepthTexture returns the texture id of the first texture depth attachment, or 0
func (fbo *Framebuffer) DepthTexture() uint32 {
	return fbo.findTexture(func(a *FramebufferAttachment) bool { return a.Format.IsDepthFormat() })
}

func (fbo *Framebuffer) findTexture(match func(a *FramebufferAttachment) bool) uint32 {

	for i := 0; i < len(fbo.Attachments); i++ {

		a := &fbo.Attachments[i]
		if a.Type == FramebufferAttachmentType_Texture && match(a) {
			return a.Id
		}
	}

	return 0
}

// SetNoColorBuffer disables color draw and read, which a framebuffer without color attachments needs to be complete
func (fbo *Framebuffer) SetNoColorBuffer() {

	assert.T(!fbo.HasColorAttachment(), "can not disable color buffer for framebuffer %d because it has color attachments", fbo.Id)

	fbo.Bind()
	fbo.dev.DisableColorBuffer()
	fbo.UnBind()

	fbo.NoColor = true
}

func (fbo *Framebuffer) NewColorAttachment(
	attachType FramebufferAttachmentType,
	attachFormat gpu.TextureFormat,
) {

	if fbo.ColorAttachmentsCount == 1 {
		logging.ErrLog.Fatalf("failed creating color attachment for framebuffer due it already having %d attached\n", fbo.ColorAttachmentsCount)
	}

	if !attachType.IsValid() {
		logging.ErrLog.Fatalf("failed creating color attachment for framebuffer due to unknown attachment type. Type=%d\n", attachType)
	}

	if !attachFormat.IsColorFormat() {
		logging.ErrLog.Fatalf("failed creating color attachment for framebuffer due to attachment data format not being a valid color type. Data format=%d\n", attachFormat)
	}

	a := FramebufferAttachment{
		Type:   attachType,
		Format: attachFormat,
		Slot:   gpu.Attachment_Color0,
		Params: ColorAttachmentParams,
	}

	fbo.allocAttachment(&a)
	fbo.ColorAttachmentsCount++
	fbo.Attachments = append(fbo.Attachments, a)
}

// NewDepthAttachment creates a depth-only float texture attachment suitable for sampling as a shadow map
func (fbo *Framebuffer) NewDepthAttachment() {

	if fbo.HasDepthAttachment() {
		logging.ErrLog.Fatalf("failed creating depth attachment for framebuffer because a depth attachment already exists\n")
	}

	a := FramebufferAttachment{
		Type:   FramebufferAttachmentType_Texture,
		Format: gpu.TextureFormat_DepthF32,
		Slot:   gpu.Attachment_Depth,
		Params: DepthMapParams,
	}

	fbo.allocAttachment(&a)
	fbo.Attachments = append(fbo.Attachments, a)
}

func (fbo *Framebuffer) NewDepthStencilAttachment(
	attachType FramebufferAttachmentType,
	attachFormat gpu.TextureFormat,
) {

	if fbo.HasDepthAttachment() {
		logging.ErrLog.Fatalf("failed creating depth-stencil attachment for framebuffer because a depth-stencil attachment already exists\n")
	}

	if !attachType.IsValid() {
		logging.ErrLog.Fatalf("failed creating depth-stencil attachment for framebuffer due to unknown attachment type. Type=%d\n", attachType)
	}

	if attachFormat != gpu.TextureFormat_Depth24Stencil8 {
		logging.ErrLog.Fatalf("failed creating depth-stencil attachment for framebuffer due to attachment data format not being a valid depth-stencil type. Data format=%d\n", attachFormat)
	}

	a := FramebufferAttachment{
		Type:   attachType,
		Format: attachFormat,
		Slot:   gpu.Attachment_DepthStencil,
		Params: DepthStencilParams,
	}

	fbo.allocAttachment(&a)
	fbo.Attachments = append(fbo.Attachments, a)
}

// allocAttachment creates the storage of a at the fbo size and attaches it, setting a.Id
func (fbo *Framebuffer) allocAttachment(a *FramebufferAttachment) {

	fbo.Bind()

	if a.Type == FramebufferAttachmentType_Texture {

		a.Id = fbo.dev.GenTexture()
		fbo.dev.BindTexture(gpu.TextureTarget_2D, a.Id)
		fbo.dev.TexImage2D(gpu.TextureTarget_2D, 0, a.Format, int32(fbo.Width), int32(fbo.Height), nil)
		fbo.dev.SetTextureParams(gpu.TextureTarget_2D, a.Params)
		fbo.dev.BindTexture(gpu.TextureTarget_2D, 0)

		fbo.dev.FramebufferTexture(a.Slot, a.Id)

	} else if a.Type == FramebufferAttachmentType_Renderbuffer {

		a.Id = fbo.dev.GenRenderbuffer()
		fbo.dev.RenderbufferStorage(a.Id, a.Format, int32(fbo.Width), int32(fbo.Height))

		fbo.dev.FramebufferRenderbuffer(a.Slot, a.Id)
	}

	fbo.UnBind()
}

func (fbo *Framebuffer) deleteAttachment(a *FramebufferAttachment) {

	if a.Id == 0 {
		return
	}

	if a.Type == FramebufferAttachmentType_Texture {
		fbo.dev.DeleteTexture(a.Id)
	} else {
		fbo.dev.DeleteRenderbuffer(a.Id)
	}

	a.Id = 0
}

// Resize deletes every attachment and recreates it with the same type, format and params at the new size.
// Attachment ids change, so anything holding an old id must re-read it
func (fbo *Framebuffer) Resize(width, height uint32) {

	fbo.Width = width
	fbo.Height = height

	for i := 0; i < len(fbo.Attachments); i++ {

		a := &fbo.Attachments[i]
		fbo.deleteAttachment(a)
		fbo.allocAttachment(a)
	}
}

func (fbo *Framebuffer) Delete() {

	for i := 0; i < len(fbo.Attachments); i++ {
		fbo.deleteAttachment(&fbo.Attachments[i])
	}
	fbo.Attachments = nil
	fbo.ColorAttachmentsCount = 0

	if fbo.Id == 0 {
		return
	}

	fbo.dev.DeleteFramebuffer(fbo.Id)
	fbo.Id = 0
}

func NewFramebuffer(dev gpu.Device, width, height uint32) Framebuffer {

	// It is allowed to have attachments of differnt sizes in one FBO,
	// but that complicates things (e.g. which size to use for gl.viewport) and I don't see much use
	// for it now, so we will have all attachments share size
	fbo := Framebuffer{
		Width:  width,
		Height: height,
		dev:    dev,
	}

	fbo.Id = dev.GenFramebuffer()
	return fbo
}
