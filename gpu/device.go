// Package gpu is the thin command interface every renderer component talks to.
//
// It mirrors the subset of OpenGL 4.1 core used by nshade, one call per GL call,
// so that passes and resources keep the immediate-mode shape of GL while being
// runnable against a recording device in tests (see gputest). Like GL, calls act
// on global binding state: whatever was bound last is what the next call targets.
package gpu

import (
	"github.com/bloeys/gglm/gglm"
)

type Device interface {
	// MaxTextureSize is the largest width/height a 2D texture may have on this device
	MaxTextureSize() int32

	// Framebuffers. Attach and completeness calls act on the bound framebuffer.
	// Framebuffer 0 is the default (visible) framebuffer.
	GenFramebuffer() uint32
	DeleteFramebuffer(fbo uint32)
	BindFramebuffer(fbo uint32)
	FramebufferTexture(attachment Attachment, tex uint32)
	FramebufferRenderbuffer(attachment Attachment, rbo uint32)
	DisableColorBuffer()
	IsFramebufferComplete() bool

	// Textures. Image and param calls act on the texture bound to target on the active unit.
	// For cube maps, face is 0-5 in the order +X,-X,+Y,-Y,+Z,-Z, and ignored otherwise.
	GenTexture() uint32
	DeleteTexture(tex uint32)
	ActiveTexture(unit uint32)
	BindTexture(target TextureTarget, tex uint32)
	TexImage2D(target TextureTarget, face int, format TextureFormat, width, height int32, pixels []byte)
	SetTextureParams(target TextureTarget, params TextureParams)
	GenerateMipmap(target TextureTarget)

	GenRenderbuffer() uint32
	DeleteRenderbuffer(rbo uint32)
	RenderbufferStorage(rbo uint32, format TextureFormat, width, height int32)

	// Vertex data. Attribute pointers are recorded into the bound vertex array
	// and read from the bound array buffer.
	GenVertexArray() uint32
	DeleteVertexArray(vao uint32)
	BindVertexArray(vao uint32)
	GenBuffer() uint32
	DeleteBuffer(buf uint32)
	BindArrayBuffer(buf uint32)
	ArrayBufferData(values []float32, usage BufUsage)
	VertexAttribPointer(index uint32, compCount, stride int32, offset int)

	// Fixed function state
	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear(mask ClearMask)
	Enable(c Capability)
	Disable(c Capability)
	DepthMask(write bool)
	DepthFunc(f DepthFunc)

	// Programs. Uniform setters write directly into the given program, bound or not.
	// Setting location -1 is a no-op, same as GL.
	CompileProgram(stages ...ShaderSource) (uint32, error)
	DeleteProgram(prog uint32)
	UseProgram(prog uint32)
	UniformLocation(prog uint32, name string) int32
	SetUniformInt32(prog uint32, loc int32, v int32)
	SetUniformFloat32(prog uint32, loc int32, v float32)
	SetUniformVec3(prog uint32, loc int32, v *gglm.Vec3)
	SetUniformMat4(prog uint32, loc int32, m *gglm.Mat4)

	DrawArrays(mode PrimitiveMode, first, count int32)

	// ReadPixels returns tightly packed RGBA8 rows, bottom row first, read from the bound framebuffer
	ReadPixels(x, y, width, height int32) []byte
}
