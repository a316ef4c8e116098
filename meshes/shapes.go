package meshes

import (
	"github.com/bloeys/nshade/buffers"
	"github.com/bloeys/nshade/gpu"
	"github.com/chewxy/math32"
)

// cube faces as (normal, u axis, v axis) with the face centre at normal*0.5
var cubeFaces = [6][3][3]float32{
	{{1, 0, 0}, {0, 0, -1}, {0, 1, 0}},
	{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
	{{0, 1, 0}, {1, 0, 0}, {0, 0, -1}},
	{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
	{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
	{{0, 0, -1}, {-1, 0, 0}, {0, 1, 0}},
}

// CubeVertices is a unit cube centered at the origin with counter clockwise outward faces,
// 36 vertices in the LayoutPosNormUV layout
func CubeVertices() []float32 {

	corners := [6][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 0}, {1, 1}, {0, 1}}

	out := make([]float32, 0, 36*8)
	for _, f := range cubeFaces {

		n, u, v := f[0], f[1], f[2]
		for _, c := range corners {

			su, sv := c[0]-0.5, c[1]-0.5
			out = append(out,
				n[0]*0.5+u[0]*su+v[0]*sv,
				n[1]*0.5+u[1]*su+v[1]*sv,
				n[2]*0.5+u[2]*su+v[2]*sv,
				n[0], n[1], n[2],
				c[0], c[1],
			)
		}
	}

	return out
}

// SkyboxVertices is a 2x2x2 cube with faces pointing inwards, 36 vertices in the LayoutPos layout
func SkyboxVertices() []float32 {

	cube := CubeVertices()
	out := make([]float32, 0, 36*3)

	// Doubling the positions and reversing each triangle flips the faces inward
	for tri := 0; tri < 12; tri++ {
		for _, vert := range [3]int{0, 2, 1} {
			start := (tri*3 + vert) * 8
			out = append(out, cube[start]*2, cube[start+1]*2, cube[start+2]*2)
		}
	}

	return out
}

// CylinderVertices is a unit cylinder of radius 1 along +Y from y=0 to y=1, drawn as
// triangles: per segment a bottom cap, a top cap and two side triangles (12 vertices).
// Layout is LayoutPosNorm
func CylinderVertices(segments int) []float32 {

	slice := 2 * math32.Pi / float32(segments)
	point := func(i int) (float32, float32) {
		return math32.Sincos(slice * float32(i))
	}

	out := make([]float32, 0, segments*12*6)
	for i := 0; i < segments; i++ {

		x0, z0 := point(i)
		x1, z1 := point(i + 1)

		// Bottom cap, facing down
		out = append(out,
			0, 0, 0, 0, -1, 0,
			x1, 0, z1, 0, -1, 0,
			x0, 0, z0, 0, -1, 0,
		)

		// Top cap, facing up
		out = append(out,
			0, 1, 0, 0, 1, 0,
			x0, 1, z0, 0, 1, 0,
			x1, 1, z1, 0, 1, 0,
		)

		// Side
		out = append(out,
			x0, 0, z0, x0, 0, z0,
			x1, 0, z1, x1, 0, z1,
			x0, 1, z0, x0, 0, z0,

			x1, 1, z1, x1, 0, z1,
			x0, 1, z0, x0, 0, z0,
			x1, 0, z1, x1, 0, z1,
		)
	}

	return out
}

// BoardVertices is a 2x2 floor quad on the XZ plane facing up, drawn as a 4 vertex triangle strip.
// Layout is LayoutPosNorm
func BoardVertices() []float32 {
	return []float32{
		-1, 0, -1, 0, 1, 0,
		-1, 0, 1, 0, 1, 0,
		1, 0, -1, 0, 1, 0,
		1, 0, 1, 0, 1, 0,
	}
}

// FilterQuadPositions and FilterQuadUVs cover the whole screen in NDC with 6 vertices
var (
	FilterQuadPositions = []float32{
		-1, 1, 0,
		-1, -1, 0,
		1, -1, 0,

		-1, 1, 0,
		1, -1, 0,
		1, 1, 0,
	}

	FilterQuadUVs = []float32{
		0, 1,
		0, 0,
		1, 0,

		0, 1,
		1, 0,
		1, 1,
	}
)

// NewFilterQuad uploads the full screen quad with positions at location 0 and uvs at location 1,
// each in its own buffer
func NewFilterQuad(dev gpu.Device) Model {

	posVbo := buffers.NewVertexBuffer(dev, buffers.Element{ElementType: buffers.DataTypeVec3})
	posVbo.SetData(FilterQuadPositions, gpu.BufUsage_Static_Draw)

	uvVbo := buffers.NewVertexBuffer(dev, buffers.Element{ElementType: buffers.DataTypeVec2})
	uvVbo.SetData(FilterQuadUVs, gpu.BufUsage_Static_Draw)

	m := Model{
		Name:        "filter quad",
		Vao:         buffers.NewVertexArray(dev),
		DrawMode:    gpu.PrimitiveMode_Triangles,
		VertexCount: 6,
	}

	m.Vao.AddVertexBuffer(posVbo)
	m.Vao.AddVertexBuffer(uvVbo)
	uvVbo.UnBind()

	return m
}
