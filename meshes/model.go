package meshes

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nshade/assert"
	"github.com/bloeys/nshade/buffers"
	"github.com/bloeys/nshade/gpu"
)

var (
	// LayoutPosNormUV is used by lit models:
	//	- Loc0: Pos
	//	- Loc1: Normal
	//	- Loc2: UV0
	LayoutPosNormUV = []buffers.Element{
		{ElementType: buffers.DataTypeVec3},
		{ElementType: buffers.DataTypeVec3},
		{ElementType: buffers.DataTypeVec2},
	}

	// LayoutPosNorm is used by untextured models such as the arm parts
	LayoutPosNorm = []buffers.Element{
		{ElementType: buffers.DataTypeVec3},
		{ElementType: buffers.DataTypeVec3},
	}

	// LayoutPos is used by the skybox cube
	LayoutPos = []buffers.Element{
		{ElementType: buffers.DataTypeVec3},
	}
)

// Model is immutable GPU geometry plus the textures objects may pick from by index
type Model struct {
	Name        string
	Vao         buffers.VertexArray
	DrawMode    gpu.PrimitiveMode
	VertexCount int32

	// LocalTransform is applied before the per-object transform
	LocalTransform gglm.Mat4
	Textures       []uint32
}

func (m *Model) Draw(dev gpu.Device) {
	m.Vao.Bind()
	dev.DrawArrays(m.DrawMode, 0, m.VertexCount)
}

// Delete frees the geometry. Textures are owned by whoever loaded them
func (m *Model) Delete() {
	m.Vao.Delete()
}

// NewModel uploads non-indexed vertex data laid out as layout into a new vao
func NewModel(dev gpu.Device, name string, drawMode gpu.PrimitiveMode, vertexData []float32, layout ...buffers.Element) Model {

	vbo := buffers.NewVertexBuffer(dev, layout...)
	floatsPerVertex := int(vbo.FloatsPerVertex())
	assert.T(floatsPerVertex > 0, "model '%s' has an empty vertex layout", name)
	assert.T(len(vertexData)%floatsPerVertex == 0, "vertex data of model '%s' has %d floats, which is not a multiple of the layout size %d", name, len(vertexData), floatsPerVertex)

	vbo.SetData(vertexData, gpu.BufUsage_Static_Draw)

	m := Model{
		Name:           name,
		Vao:            buffers.NewVertexArray(dev),
		DrawMode:       drawMode,
		VertexCount:    int32(len(vertexData) / floatsPerVertex),
		LocalTransform: gglm.NewMat4Diag(1),
	}

	m.Vao.AddVertexBuffer(vbo)
	vbo.UnBind()
	return m
}
