package glgpu

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nshade/gpu"
	"github.com/bloeys/nshade/logging"
	"github.com/go-gl/gl/v4.1-core/gl"
)

var _ gpu.Device = &GLDevice{}

// GLDevice issues every gpu.Device call directly to the current OpenGL context.
// gl.Init must have been called on the thread that owns the context.
type GLDevice struct {
	maxTexSize int32
}

func (d *GLDevice) MaxTextureSize() int32 {

	if d.maxTexSize == 0 {
		gl.GetIntegerv(gl.MAX_TEXTURE_SIZE, &d.maxTexSize)
	}

	return d.maxTexSize
}

func (d *GLDevice) GenFramebuffer() uint32 {

	var id uint32
	gl.GenFramebuffers(1, &id)
	if id == 0 {
		logging.ErrLog.Fatalf("failed to generate framebuffer. GlError=%d\n", gl.GetError())
	}

	return id
}

func (d *GLDevice) DeleteFramebuffer(fbo uint32) {
	gl.DeleteFramebuffers(1, &fbo)
}

func (d *GLDevice) BindFramebuffer(fbo uint32) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)
}

func (d *GLDevice) FramebufferTexture(attachment gpu.Attachment, tex uint32) {
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, attachmentToGl(attachment), gl.TEXTURE_2D, tex, 0)
}

func (d *GLDevice) FramebufferRenderbuffer(attachment gpu.Attachment, rbo uint32) {
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, attachmentToGl(attachment), gl.RENDERBUFFER, rbo)
}

func (d *GLDevice) DisableColorBuffer() {
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)
}

func (d *GLDevice) IsFramebufferComplete() bool {
	return gl.CheckFramebufferStatus(gl.FRAMEBUFFER) == gl.FRAMEBUFFER_COMPLETE
}

func (d *GLDevice) GenTexture() uint32 {

	var id uint32
	gl.GenTextures(1, &id)
	if id == 0 {
		logging.ErrLog.Fatalf("failed to generate texture. GlError=%d\n", gl.GetError())
	}

	return id
}

func (d *GLDevice) DeleteTexture(tex uint32) {
	gl.DeleteTextures(1, &tex)
}

func (d *GLDevice) ActiveTexture(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
}

func (d *GLDevice) BindTexture(target gpu.TextureTarget, tex uint32) {
	gl.BindTexture(textureTargetToGl(target), tex)
}

func (d *GLDevice) TexImage2D(target gpu.TextureTarget, face int, format gpu.TextureFormat, width, height int32, pixels []byte) {

	imgTarget := uint32(gl.TEXTURE_2D)
	if target == gpu.TextureTarget_CubeMap {
		imgTarget = gl.TEXTURE_CUBE_MAP_POSITIVE_X + uint32(face)
	}

	var ptr = gl.Ptr(nil)
	if len(pixels) > 0 {
		ptr = gl.Ptr(&pixels[0])
	}

	gl.TexImage2D(imgTarget, 0, internalFormatToGl(format), width, height, 0, formatToGl(format), dataTypeToGl(format), ptr)
}

func (d *GLDevice) SetTextureParams(target gpu.TextureTarget, params gpu.TextureParams) {

	glTarget := textureTargetToGl(target)
	gl.TexParameteri(glTarget, gl.TEXTURE_MIN_FILTER, filterToGl(params.MinFilter))
	gl.TexParameteri(glTarget, gl.TEXTURE_MAG_FILTER, filterToGl(params.MagFilter))
	gl.TexParameteri(glTarget, gl.TEXTURE_WRAP_S, wrapToGl(params.WrapS))
	gl.TexParameteri(glTarget, gl.TEXTURE_WRAP_T, wrapToGl(params.WrapT))

	if target == gpu.TextureTarget_CubeMap {
		gl.TexParameteri(glTarget, gl.TEXTURE_WRAP_R, wrapToGl(params.WrapR))
	}

	if params.WrapS == gpu.TextureWrap_ClampToBorder || params.WrapT == gpu.TextureWrap_ClampToBorder {
		gl.TexParameterfv(glTarget, gl.TEXTURE_BORDER_COLOR, &params.BorderColor[0])
	}
}

func (d *GLDevice) GenerateMipmap(target gpu.TextureTarget) {
	gl.GenerateMipmap(textureTargetToGl(target))
}

func (d *GLDevice) GenRenderbuffer() uint32 {

	var id uint32
	gl.GenRenderbuffers(1, &id)
	if id == 0 {
		logging.ErrLog.Fatalf("failed to generate render buffer. GlError=%d\n", gl.GetError())
	}

	return id
}

func (d *GLDevice) DeleteRenderbuffer(rbo uint32) {
	gl.DeleteRenderbuffers(1, &rbo)
}

func (d *GLDevice) RenderbufferStorage(rbo uint32, format gpu.TextureFormat, width, height int32) {
	gl.BindRenderbuffer(gl.RENDERBUFFER, rbo)
	gl.RenderbufferStorage(gl.RENDERBUFFER, uint32(internalFormatToGl(format)), width, height)
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
}

func (d *GLDevice) GenVertexArray() uint32 {

	var id uint32
	gl.GenVertexArrays(1, &id)
	if id == 0 {
		logging.ErrLog.Println("Failed to create OpenGL vertex array object")
	}

	return id
}

func (d *GLDevice) DeleteVertexArray(vao uint32) {
	gl.DeleteVertexArrays(1, &vao)
}

func (d *GLDevice) BindVertexArray(vao uint32) {
	gl.BindVertexArray(vao)
}

func (d *GLDevice) GenBuffer() uint32 {

	var id uint32
	gl.GenBuffers(1, &id)
	if id == 0 {
		logging.ErrLog.Panicln("Failed to create OpenGL buffer")
	}

	return id
}

func (d *GLDevice) DeleteBuffer(buf uint32) {
	gl.DeleteBuffers(1, &buf)
}

func (d *GLDevice) BindArrayBuffer(buf uint32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, buf)
}

func (d *GLDevice) ArrayBufferData(values []float32, usage gpu.BufUsage) {

	sizeInBytes := len(values) * 4
	if sizeInBytes == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, gl.Ptr(nil), bufUsageToGl(usage))
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, sizeInBytes, gl.Ptr(&values[0]), bufUsageToGl(usage))
	}
}

func (d *GLDevice) VertexAttribPointer(index uint32, compCount, stride int32, offset int) {
	gl.EnableVertexAttribArray(index)
	gl.VertexAttribPointerWithOffset(index, compCount, gl.FLOAT, false, stride, uintptr(offset))
}

func (d *GLDevice) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (d *GLDevice) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (d *GLDevice) Clear(mask gpu.ClearMask) {

	var glMask uint32
	if mask.Has(gpu.ClearMask_Color) {
		glMask |= gl.COLOR_BUFFER_BIT
	}

	if mask.Has(gpu.ClearMask_Depth) {
		glMask |= gl.DEPTH_BUFFER_BIT
	}

	if mask.Has(gpu.ClearMask_Stencil) {
		glMask |= gl.STENCIL_BUFFER_BIT
	}

	gl.Clear(glMask)
}

func (d *GLDevice) Enable(c gpu.Capability) {
	gl.Enable(capabilityToGl(c))
}

func (d *GLDevice) Disable(c gpu.Capability) {
	gl.Disable(capabilityToGl(c))
}

func (d *GLDevice) DepthMask(write bool) {
	gl.DepthMask(write)
}

func (d *GLDevice) DepthFunc(f gpu.DepthFunc) {

	switch f {
	case gpu.DepthFunc_LessEqual:
		gl.DepthFunc(gl.LEQUAL)
	case gpu.DepthFunc_Always:
		gl.DepthFunc(gl.ALWAYS)
	default:
		gl.DepthFunc(gl.LESS)
	}
}

func (d *GLDevice) DeleteProgram(prog uint32) {
	gl.DeleteProgram(prog)
}

func (d *GLDevice) UseProgram(prog uint32) {
	gl.UseProgram(prog)
}

func (d *GLDevice) UniformLocation(prog uint32, name string) int32 {
	return gl.GetUniformLocation(prog, gl.Str(name+"\x00"))
}

func (d *GLDevice) SetUniformInt32(prog uint32, loc int32, v int32) {
	gl.ProgramUniform1i(prog, loc, v)
}

func (d *GLDevice) SetUniformFloat32(prog uint32, loc int32, v float32) {
	gl.ProgramUniform1f(prog, loc, v)
}

func (d *GLDevice) SetUniformVec3(prog uint32, loc int32, v *gglm.Vec3) {
	gl.ProgramUniform3fv(prog, loc, 1, &v.Data[0])
}

func (d *GLDevice) SetUniformMat4(prog uint32, loc int32, m *gglm.Mat4) {
	gl.ProgramUniformMatrix4fv(prog, loc, 1, false, &m.Data[0][0])
}

func (d *GLDevice) DrawArrays(mode gpu.PrimitiveMode, first, count int32) {
	gl.DrawArrays(primitiveModeToGl(mode), first, count)
}

func (d *GLDevice) ReadPixels(x, y, width, height int32) []byte {

	pixels := make([]byte, width*height*4)
	if len(pixels) == 0 {
		return pixels
	}

	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(x, y, width, height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&pixels[0]))
	return pixels
}

// New returns a device for the current context. gl.Init must have been called already.
func New() *GLDevice {
	return &GLDevice{}
}
