package glgpu

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bloeys/nshade/gpu"
	"github.com/bloeys/nshade/logging"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// CompileProgram compiles every stage, links them into a new program then deletes the stage objects.
func (d *GLDevice) CompileProgram(stages ...gpu.ShaderSource) (uint32, error) {

	progId := gl.CreateProgram()
	if progId == 0 {
		return 0, errors.New("failed to create shader program")
	}

	shaderIds := make([]uint32, 0, len(stages))
	deleteShaders := func() {
		for _, id := range shaderIds {
			gl.DeleteShader(id)
		}
	}

	for _, stage := range stages {

		shaderId, err := compileShaderOfType(stage.Src, stage.Type)
		if err != nil {
			deleteShaders()
			gl.DeleteProgram(progId)
			return 0, err
		}

		gl.AttachShader(progId, shaderId)
		shaderIds = append(shaderIds, shaderId)
	}

	gl.LinkProgram(progId)
	deleteShaders()

	if err := getProgramLinkErrors(progId); err != nil {
		gl.DeleteProgram(progId)
		return 0, err
	}

	return progId, nil
}

func compileShaderOfType(shaderSource []byte, shaderType gpu.ShaderType) (uint32, error) {

	shaderId := gl.CreateShader(shaderTypeToGl(shaderType))
	if shaderId == 0 {
		return 0, fmt.Errorf("failed to create OpenGl %s shader. OpenGl Error=%d", shaderType, gl.GetError())
	}

	//Load shader source and compile
	shaderCStr, shaderFree := gl.Strs(string(shaderSource) + "\x00")
	defer shaderFree()
	gl.ShaderSource(shaderId, 1, shaderCStr, nil)

	gl.CompileShader(shaderId)
	if err := getShaderCompileErrors(shaderId, shaderType); err != nil {
		gl.DeleteShader(shaderId)
		return 0, err
	}

	return shaderId, nil
}

func getShaderCompileErrors(shaderId uint32, shaderType gpu.ShaderType) error {

	var compiledSuccessfully int32
	gl.GetShaderiv(shaderId, gl.COMPILE_STATUS, &compiledSuccessfully)
	if compiledSuccessfully == gl.TRUE {
		return nil
	}

	var logLength int32
	gl.GetShaderiv(shaderId, gl.INFO_LOG_LENGTH, &logLength)

	log := gl.Str(strings.Repeat("\x00", int(logLength)+1))
	gl.GetShaderInfoLog(shaderId, logLength, nil, log)

	errMsg := gl.GoStr(log)
	logging.ErrLog.Printf("Compilation of %s shader with id %d failed. Err: %s\n", shaderType, shaderId, errMsg)
	return fmt.Errorf("%s shader compilation failed: %s", shaderType, errMsg)
}

func getProgramLinkErrors(progId uint32) error {

	var linkedSuccessfully int32
	gl.GetProgramiv(progId, gl.LINK_STATUS, &linkedSuccessfully)
	if linkedSuccessfully == gl.TRUE {
		return nil
	}

	var logLength int32
	gl.GetProgramiv(progId, gl.INFO_LOG_LENGTH, &logLength)

	log := gl.Str(strings.Repeat("\x00", int(logLength)+1))
	gl.GetProgramInfoLog(progId, logLength, nil, log)

	errMsg := gl.GoStr(log)
	logging.ErrLog.Printf("Linking of shader program with id %d failed. Err: %s\n", progId, errMsg)
	return errors.New("shader program link failed: " + errMsg)
}
