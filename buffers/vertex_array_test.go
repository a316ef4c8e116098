package buffers

import (
	"testing"

	"github.com/bloeys/nshade/gpu"
	"github.com/bloeys/nshade/gpu/gputest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVertexBufferLayout(t *testing.T) {

	rec := gputest.NewRecorder()
	vbo := NewVertexBuffer(rec,
		Element{ElementType: DataTypeVec3},
		Element{ElementType: DataTypeVec3},
		Element{ElementType: DataTypeVec2},
	)

	assert.Equal(t, int32(32), vbo.Stride)
	assert.Equal(t, int32(8), vbo.FloatsPerVertex())

	layout := vbo.GetLayout()
	require.Len(t, layout, 3)
	assert.Equal(t, 0, layout[0].Offset)
	assert.Equal(t, 12, layout[1].Offset)
	assert.Equal(t, 24, layout[2].Offset)

	vbo.SetData([]float32{1, 2, 3}, gpu.BufUsage_Dynamic_Draw)
	assert.Equal(t, []float32{1, 2, 3}, rec.Buffers[vbo.Id].Data)
	assert.Equal(t, gpu.BufUsage_Dynamic_Draw, rec.Buffers[vbo.Id].Usage)
}

func TestVertexArrayContinuesAttribIndices(t *testing.T) {

	rec := gputest.NewRecorder()

	posVbo := NewVertexBuffer(rec, Element{ElementType: DataTypeVec3})
	uvVbo := NewVertexBuffer(rec, Element{ElementType: DataTypeVec2})

	vao := NewVertexArray(rec)
	vao.AddVertexBuffer(posVbo)
	vao.AddVertexBuffer(uvVbo)

	attribs := rec.VertexArrays[vao.Id].Attribs
	require.Len(t, attribs, 2)

	assert.Equal(t, gputest.VertexAttrib{Buffer: posVbo.Id, CompCount: 3, Stride: 12}, attribs[0])
	assert.Equal(t, gputest.VertexAttrib{Buffer: uvVbo.Id, CompCount: 2, Stride: 8}, attribs[1])
	assert.Equal(t, uint32(0), rec.BoundVertexArray)

	vaoId := vao.Id
	vao.Delete()
	assert.True(t, rec.VertexArrays[vaoId].Deleted)
	assert.True(t, rec.Buffers[posVbo.Id].Deleted)
	assert.True(t, rec.Buffers[uvVbo.Id].Deleted)
}
