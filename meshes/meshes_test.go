package meshes

import (
	"testing"

	"github.com/bloeys/nshade/gpu"
	"github.com/bloeys/nshade/gpu/gputest"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeVertexCounts(t *testing.T) {
	assert.Len(t, CubeVertices(), 36*8)
	assert.Len(t, SkyboxVertices(), 36*3)
	assert.Len(t, BoardVertices(), 4*6)
	assert.Len(t, CylinderVertices(16), 16*12*6)
	assert.Len(t, FilterQuadPositions, 6*3)
	assert.Len(t, FilterQuadUVs, 6*2)
}

func TestCubeFacesPointOutward(t *testing.T) {

	verts := CubeVertices()
	for tri := 0; tri < 12; tri++ {

		var p [3][3]float32
		for v := 0; v < 3; v++ {
			start := (tri*3 + v) * 8
			copy(p[v][:], verts[start:start+3])
		}

		e1 := [3]float32{p[1][0] - p[0][0], p[1][1] - p[0][1], p[1][2] - p[0][2]}
		e2 := [3]float32{p[2][0] - p[0][0], p[2][1] - p[0][1], p[2][2] - p[0][2]}
		cross := [3]float32{
			e1[1]*e2[2] - e1[2]*e2[1],
			e1[2]*e2[0] - e1[0]*e2[2],
			e1[0]*e2[1] - e1[1]*e2[0],
		}

		n := verts[tri*3*8+3 : tri*3*8+6]
		dot := cross[0]*n[0] + cross[1]*n[1] + cross[2]*n[2]
		assert.Greater(t, dot, float32(0), "triangle %d winds clockwise", tri)
	}
}

func TestSkyboxSpansTwoUnits(t *testing.T) {
	for _, f := range SkyboxVertices() {
		assert.Equal(t, float32(1), math32.Abs(f))
	}
}

func TestCylinderBounds(t *testing.T) {

	verts := CylinderVertices(8)
	for i := 0; i < len(verts); i += 6 {
		x, y, z := verts[i], verts[i+1], verts[i+2]
		assert.True(t, y >= 0 && y <= 1)
		assert.LessOrEqual(t, math32.Sqrt(x*x+z*z), float32(1.0001))
	}
}

func TestNewModel(t *testing.T) {

	rec := gputest.NewRecorder()
	m := NewModel(rec, "cube", gpu.PrimitiveMode_Triangles, CubeVertices(), LayoutPosNormUV...)

	assert.Equal(t, int32(36), m.VertexCount)
	attribs := rec.VertexArrays[m.Vao.Id].Attribs
	require.Len(t, attribs, 3)
	assert.Equal(t, int32(3), attribs[0].CompCount)
	assert.Equal(t, int32(3), attribs[1].CompCount)
	assert.Equal(t, int32(2), attribs[2].CompCount)
	assert.Equal(t, 24, attribs[2].Offset)

	m.Draw(rec)
	require.Len(t, rec.Draws, 1)
	assert.Equal(t, m.Vao.Id, rec.Draws[0].Vao)
	assert.Equal(t, int32(36), rec.Draws[0].Count)
	assert.Equal(t, gpu.PrimitiveMode_Triangles, rec.Draws[0].Mode)
}

func TestNewModelRejectsPartialVertex(t *testing.T) {
	rec := gputest.NewRecorder()
	assert.Panics(t, func() {
		NewModel(rec, "bad", gpu.PrimitiveMode_Triangles, []float32{1, 2, 3, 4}, LayoutPos...)
	})
}

func TestNewFilterQuad(t *testing.T) {

	rec := gputest.NewRecorder()
	q := NewFilterQuad(rec)

	assert.Equal(t, int32(6), q.VertexCount)
	attribs := rec.VertexArrays[q.Vao.Id].Attribs
	require.Len(t, attribs, 2)
	assert.Equal(t, int32(3), attribs[0].CompCount)
	assert.Equal(t, int32(2), attribs[1].CompCount)
	assert.NotEqual(t, attribs[0].Buffer, attribs[1].Buffer)
}
