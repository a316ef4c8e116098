package buffers

import (
	"github.com/bloeys/nshade/gpu"
)

type VertexArray struct {
	Id   uint32
	Vbos []VertexBuffer
	dev  gpu.Device

	// nextAttrib is the attribute index the next added buffer starts at
	nextAttrib uint32
}

func (va *VertexArray) Bind() {
	va.dev.BindVertexArray(va.Id)
}

func (va *VertexArray) UnBind() {
	va.dev.BindVertexArray(0)
}

// AddVertexBuffer records the layout of vbo into the vertex array. Attribute indices continue
// from the previous buffer, so a position buffer followed by a uv buffer gives locations 0 and 1
func (va *VertexArray) AddVertexBuffer(vbo VertexBuffer) {

	// NOTE: VBOs are only bound at 'VertexAttribPointer' (and related) calls

	va.Bind()
	vbo.Bind()

	for i := 0; i < len(vbo.layout); i++ {

		l := &vbo.layout[i]
		va.dev.VertexAttribPointer(va.nextAttrib, l.ElementType.CompCount(), vbo.Stride, l.Offset)
		va.nextAttrib++
	}

	va.Vbos = append(va.Vbos, vbo)
	va.UnBind()
}

func (va *VertexArray) Delete() {

	for i := 0; i < len(va.Vbos); i++ {
		va.Vbos[i].Delete()
	}
	va.Vbos = nil

	if va.Id == 0 {
		return
	}

	va.dev.DeleteVertexArray(va.Id)
	va.Id = 0
}

func NewVertexArray(dev gpu.Device) VertexArray {
	return VertexArray{
		Id:  dev.GenVertexArray(),
		dev: dev,
	}
}
