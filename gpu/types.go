package gpu

type PrimitiveMode int32

const (
	PrimitiveMode_Unknown PrimitiveMode = iota
	PrimitiveMode_Points
	PrimitiveMode_Lines
	PrimitiveMode_LineStrip
	PrimitiveMode_Triangles
	PrimitiveMode_TriangleStrip
	PrimitiveMode_TriangleFan
)

type TextureTarget int32

const (
	TextureTarget_Unknown TextureTarget = iota
	TextureTarget_2D
	TextureTarget_CubeMap
)

type TextureFormat int32

const (
	TextureFormat_Unknown TextureFormat = iota
	TextureFormat_RGB8
	TextureFormat_RGBA8
	TextureFormat_SRGBA
	TextureFormat_DepthF32
	TextureFormat_Depth24Stencil8
)

func (f TextureFormat) IsColorFormat() bool {
	return f == TextureFormat_RGB8 ||
		f == TextureFormat_RGBA8 ||
		f == TextureFormat_SRGBA
}

func (f TextureFormat) IsDepthFormat() bool {
	return f == TextureFormat_DepthF32 ||
		f == TextureFormat_Depth24Stencil8
}

type Attachment int32

const (
	Attachment_Unknown Attachment = iota
	Attachment_Color0
	Attachment_Depth
	Attachment_DepthStencil
)

type TextureFilter int32

const (
	TextureFilter_Linear TextureFilter = iota
	TextureFilter_Nearest
	TextureFilter_LinearMipmapLinear
)

type TextureWrap int32

const (
	TextureWrap_Repeat TextureWrap = iota
	TextureWrap_ClampToEdge
	TextureWrap_ClampToBorder
)

// TextureParams are applied to the texture currently bound to the given target.
// BorderColor is only used when a wrap mode is TextureWrap_ClampToBorder.
type TextureParams struct {
	MinFilter   TextureFilter
	MagFilter   TextureFilter
	WrapS       TextureWrap
	WrapT       TextureWrap
	WrapR       TextureWrap
	BorderColor [4]float32
}

type ClearMask uint32

const (
	ClearMask_Color ClearMask = 1 << iota
	ClearMask_Depth
	ClearMask_Stencil
)

func (c ClearMask) Has(flags ClearMask) bool {
	return c&flags == flags
}

type Capability int32

const (
	Capability_Unknown Capability = iota
	Capability_DepthTest
	Capability_CullFace
	Capability_Blend
	Capability_Multisample
	Capability_FramebufferSRGB
)

type DepthFunc int32

const (
	DepthFunc_Less DepthFunc = iota
	DepthFunc_LessEqual
	DepthFunc_Always
)

type ShaderType int32

const (
	ShaderType_Unknown ShaderType = iota
	ShaderType_Vertex
	ShaderType_Fragment
	ShaderType_Geometry
)

func (s ShaderType) String() string {

	switch s {
	case ShaderType_Vertex:
		return "vertex"
	case ShaderType_Fragment:
		return "fragment"
	case ShaderType_Geometry:
		return "geometry"
	default:
		return "unknown"
	}
}

type ShaderSource struct {
	Type ShaderType
	Src  []byte
}

type BufUsage int

// Full docs for buffer usage can be found here: https://registry.khronos.org/OpenGL-Refpages/gl4/html/glBufferData.xhtml
const (
	BufUsage_Unknown BufUsage = iota

	//Buffer is set only once and used many times
	BufUsage_Static_Draw
	//Buffer is changed a lot and used many times
	BufUsage_Dynamic_Draw
	//Buffer is set only once and used by the GPU at most a few times
	BufUsage_Stream_Draw
)
