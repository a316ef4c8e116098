package buffers

import (
	"github.com/bloeys/nshade/gpu"
)

type VertexBuffer struct {
	Id     uint32
	Stride int32
	layout []Element
	dev    gpu.Device
}

func (vb *VertexBuffer) Bind() {
	vb.dev.BindArrayBuffer(vb.Id)
}

func (vb *VertexBuffer) UnBind() {
	vb.dev.BindArrayBuffer(0)
}

func (vb *VertexBuffer) SetData(values []float32, usage gpu.BufUsage) {
	vb.Bind()
	vb.dev.ArrayBufferData(values, usage)
}

func (vb *VertexBuffer) GetLayout() []Element {
	e := make([]Element, len(vb.layout))
	copy(e, vb.layout)
	return e
}

func (vb *VertexBuffer) SetLayout(layout ...Element) {

	vb.Stride = 0
	vb.layout = layout

	for i := 0; i < len(vb.layout); i++ {

		vb.layout[i].Offset = int(vb.Stride)
		vb.Stride += vb.layout[i].Size()
	}
}

// FloatsPerVertex is the number of float32 values one vertex takes with the current layout
func (vb *VertexBuffer) FloatsPerVertex() int32 {
	return vb.Stride / 4
}

func (vb *VertexBuffer) Delete() {

	if vb.Id == 0 {
		return
	}

	vb.dev.DeleteBuffer(vb.Id)
	vb.Id = 0
}

func NewVertexBuffer(dev gpu.Device, layout ...Element) VertexBuffer {

	vb := VertexBuffer{
		Id:  dev.GenBuffer(),
		dev: dev,
	}

	vb.SetLayout(layout...)
	return vb
}
