package shaders

import (
	"github.com/bloeys/nshade/gpu"
)

type ShaderProgram struct {
	Id  uint32
	dev gpu.Device
}

func (s *ShaderProgram) Bind() {
	s.dev.UseProgram(s.Id)
}

func (s *ShaderProgram) UnBind() {
	s.dev.UseProgram(0)
}

func (s *ShaderProgram) Delete() {

	if s.Id == 0 {
		return
	}

	s.dev.DeleteProgram(s.Id)
	s.Id = 0
}
