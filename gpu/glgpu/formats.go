package glgpu

import (
	"github.com/bloeys/nshade/gpu"
	"github.com/bloeys/nshade/logging"
	"github.com/go-gl/gl/v4.1-core/gl"
)

func shaderTypeToGl(s gpu.ShaderType) uint32 {

	switch s {
	case gpu.ShaderType_Vertex:
		return gl.VERTEX_SHADER
	case gpu.ShaderType_Fragment:
		return gl.FRAGMENT_SHADER
	case gpu.ShaderType_Geometry:
		return gl.GEOMETRY_SHADER

	default:
		logging.ErrLog.Fatalf("Unknown shader type '%d'\n", s)
		return 0
	}
}

func internalFormatToGl(f gpu.TextureFormat) int32 {

	switch f {
	case gpu.TextureFormat_RGB8:
		return gl.RGB8
	case gpu.TextureFormat_RGBA8:
		return gl.RGBA8
	case gpu.TextureFormat_SRGBA:
		return gl.SRGB_ALPHA
	case gpu.TextureFormat_DepthF32:
		return gl.DEPTH_COMPONENT
	case gpu.TextureFormat_Depth24Stencil8:
		return gl.DEPTH24_STENCIL8
	default:
		logging.ErrLog.Fatalf("unknown texture format. Format=%d\n", f)
		return 0
	}
}

func formatToGl(f gpu.TextureFormat) uint32 {

	switch f {
	case gpu.TextureFormat_RGB8:
		return gl.RGB

	case gpu.TextureFormat_RGBA8:
		fallthrough
	case gpu.TextureFormat_SRGBA:
		return gl.RGBA

	case gpu.TextureFormat_DepthF32:
		return gl.DEPTH_COMPONENT

	case gpu.TextureFormat_Depth24Stencil8:
		return gl.DEPTH_STENCIL

	default:
		logging.ErrLog.Fatalf("unknown texture format. Format=%d\n", f)
		return 0
	}
}

func dataTypeToGl(f gpu.TextureFormat) uint32 {

	switch f {
	case gpu.TextureFormat_DepthF32:
		return gl.FLOAT
	case gpu.TextureFormat_Depth24Stencil8:
		return gl.UNSIGNED_INT_24_8
	default:
		return gl.UNSIGNED_BYTE
	}
}

func attachmentToGl(a gpu.Attachment) uint32 {

	switch a {
	case gpu.Attachment_Color0:
		return gl.COLOR_ATTACHMENT0
	case gpu.Attachment_Depth:
		return gl.DEPTH_ATTACHMENT
	case gpu.Attachment_DepthStencil:
		return gl.DEPTH_STENCIL_ATTACHMENT
	default:
		logging.ErrLog.Fatalf("unknown framebuffer attachment. Attachment=%d\n", a)
		return 0
	}
}

func textureTargetToGl(t gpu.TextureTarget) uint32 {

	if t == gpu.TextureTarget_CubeMap {
		return gl.TEXTURE_CUBE_MAP
	}

	return gl.TEXTURE_2D
}

func filterToGl(f gpu.TextureFilter) int32 {

	switch f {
	case gpu.TextureFilter_Nearest:
		return gl.NEAREST
	case gpu.TextureFilter_LinearMipmapLinear:
		return gl.LINEAR_MIPMAP_LINEAR
	default:
		return gl.LINEAR
	}
}

func wrapToGl(w gpu.TextureWrap) int32 {

	switch w {
	case gpu.TextureWrap_ClampToEdge:
		return gl.CLAMP_TO_EDGE
	case gpu.TextureWrap_ClampToBorder:
		return gl.CLAMP_TO_BORDER
	default:
		return gl.REPEAT
	}
}

func bufUsageToGl(b gpu.BufUsage) uint32 {

	switch b {
	case gpu.BufUsage_Static_Draw:
		return gl.STATIC_DRAW
	case gpu.BufUsage_Dynamic_Draw:
		return gl.DYNAMIC_DRAW
	case gpu.BufUsage_Stream_Draw:
		return gl.STREAM_DRAW
	default:
		logging.ErrLog.Panicf("unknown BufUsage '%d'\n", b)
		return 0
	}
}

func capabilityToGl(c gpu.Capability) uint32 {

	switch c {
	case gpu.Capability_DepthTest:
		return gl.DEPTH_TEST
	case gpu.Capability_CullFace:
		return gl.CULL_FACE
	case gpu.Capability_Blend:
		return gl.BLEND
	case gpu.Capability_Multisample:
		return gl.MULTISAMPLE
	case gpu.Capability_FramebufferSRGB:
		return gl.FRAMEBUFFER_SRGB
	default:
		logging.ErrLog.Fatalf("unknown capability '%d'\n", c)
		return 0
	}
}

func primitiveModeToGl(m gpu.PrimitiveMode) uint32 {

	switch m {
	case gpu.PrimitiveMode_Points:
		return gl.POINTS
	case gpu.PrimitiveMode_Lines:
		return gl.LINES
	case gpu.PrimitiveMode_LineStrip:
		return gl.LINE_STRIP
	case gpu.PrimitiveMode_Triangles:
		return gl.TRIANGLES
	case gpu.PrimitiveMode_TriangleStrip:
		return gl.TRIANGLE_STRIP
	case gpu.PrimitiveMode_TriangleFan:
		return gl.TRIANGLE_FAN
	default:
		logging.ErrLog.Fatalf("unknown primitive mode '%d'\n", m)
		return 0
	}
}
