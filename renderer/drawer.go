package renderer

import (
	"github.com/bloeys/nshade/gpu"
	"github.com/bloeys/nshade/materials"
	"github.com/bloeys/nshade/meshes"
)

// drawer skips program and vertex array binds that are already in place.
// Anything outside the drawer may change those bindings, so Reset must be called
// at the start of every frame and after any resource (re)allocation
type drawer struct {
	dev gpu.Device

	boundVaoId  uint32
	boundProgId uint32
}

func (d *drawer) UseMaterial(mat *materials.Material) {

	if mat.ShaderProg.Id == d.boundProgId {
		return
	}

	mat.Bind()
	d.boundProgId = mat.ShaderProg.Id
}

func (d *drawer) DrawModel(mat *materials.Material, m *meshes.Model) {

	d.UseMaterial(mat)

	if m.Vao.Id != d.boundVaoId {
		m.Vao.Bind()
		d.boundVaoId = m.Vao.Id
	}

	d.dev.DrawArrays(m.DrawMode, 0, m.VertexCount)
}

func (d *drawer) Reset() {
	d.boundVaoId = 0
	d.boundProgId = 0
}
