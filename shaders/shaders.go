package shaders

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/bloeys/nshade/gpu"
	"github.com/bloeys/nshade/logging"
)

var (
	ErrNoVertexShader   = errors.New("no valid vertex shader found. Please put '//shader:vertex' before your vertex shader")
	ErrNoFragmentShader = errors.New("no valid fragment shader found. Please put '//shader:fragment' before your fragment shader")
)

func LoadAndCompileCombinedShader(dev gpu.Device, shaderPath string) (ShaderProgram, error) {

	combinedSource, err := os.ReadFile(shaderPath)
	if err != nil {
		logging.ErrLog.Println("Failed to read shader. Err: ", err)
		return ShaderProgram{}, err
	}

	prog, err := LoadAndCompileCombinedShaderSrc(dev, combinedSource)
	if err != nil {
		return ShaderProgram{}, fmt.Errorf("shader '%s': %w", shaderPath, err)
	}

	return prog, nil
}

func LoadAndCompileCombinedShaderSrc(dev gpu.Device, shaderSrc []byte) (ShaderProgram, error) {

	stages, err := SplitCombinedShaderSrc(shaderSrc)
	if err != nil {
		return ShaderProgram{}, err
	}

	return compileStages(dev, stages)
}

// LoadAndCompileShaderPair compiles a program from a separate vertex and fragment shader file
func LoadAndCompileShaderPair(dev gpu.Device, vertPath, fragPath string) (ShaderProgram, error) {

	vertSrc, err := os.ReadFile(vertPath)
	if err != nil {
		return ShaderProgram{}, fmt.Errorf("failed to read vertex shader '%s': %w", vertPath, err)
	}

	fragSrc, err := os.ReadFile(fragPath)
	if err != nil {
		return ShaderProgram{}, fmt.Errorf("failed to read fragment shader '%s': %w", fragPath, err)
	}

	prog, err := compileStages(dev, []gpu.ShaderSource{
		{Type: gpu.ShaderType_Vertex, Src: vertSrc},
		{Type: gpu.ShaderType_Fragment, Src: fragSrc},
	})
	if err != nil {
		return ShaderProgram{}, fmt.Errorf("shader pair '%s'+'%s': %w", vertPath, fragPath, err)
	}

	return prog, nil
}

func compileStages(dev gpu.Device, stages []gpu.ShaderSource) (ShaderProgram, error) {

	id, err := dev.CompileProgram(stages...)
	if err != nil {
		return ShaderProgram{}, err
	}

	return ShaderProgram{Id: id, dev: dev}, nil
}

// SplitCombinedShaderSrc splits a file holding several shaders, each starting with a
// '//shader:vertex', '//shader:fragment' or '//shader:geometry' line, into its stages.
// A vertex and a fragment stage are required
func SplitCombinedShaderSrc(shaderSrc []byte) ([]gpu.ShaderSource, error) {

	shaderSources := bytes.Split(shaderSrc, []byte("//shader:"))
	if len(shaderSources) < 2 {
		return nil, errors.New("failed to read combined shader. The minimum shader types to have are '//shader:vertex' and '//shader:fragment'")
	}

	stages := make([]gpu.ShaderSource, 0, len(shaderSources))
	hasVert, hasFrag := false, false
	for i := 0; i < len(shaderSources); i++ {

		src := shaderSources[i]

		//This can happen when the shader type is at the start of the file
		if len(bytes.TrimSpace(src)) == 0 {
			continue
		}

		var shdrType gpu.ShaderType
		if bytes.HasPrefix(src, []byte("vertex")) {
			src = src[6:]
			shdrType = gpu.ShaderType_Vertex
			hasVert = true
		} else if bytes.HasPrefix(src, []byte("fragment")) {
			src = src[8:]
			shdrType = gpu.ShaderType_Fragment
			hasFrag = true
		} else if bytes.HasPrefix(src, []byte("geometry")) {
			src = src[8:]
			shdrType = gpu.ShaderType_Geometry
		} else {
			return nil, errors.New("unknown shader type. Must be '//shader:vertex' or '//shader:fragment' or '//shader:geometry'")
		}

		stages = append(stages, gpu.ShaderSource{Type: shdrType, Src: src})
	}

	if !hasVert {
		return nil, ErrNoVertexShader
	}

	if !hasFrag {
		return nil, ErrNoFragmentShader
	}

	return stages, nil
}
