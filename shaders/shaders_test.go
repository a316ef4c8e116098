package shaders

import (
	"testing"

	"github.com/bloeys/nshade/gpu"
	"github.com/bloeys/nshade/gpu/gputest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const combinedSrc = `//shader:vertex
#version 410
void main() { gl_Position = vec4(0); }

//shader:fragment
#version 410
out vec4 fragColor;
void main() { fragColor = vec4(1); }
`

func TestSplitCombinedShaderSrc(t *testing.T) {

	stages, err := SplitCombinedShaderSrc([]byte(combinedSrc))
	require.NoError(t, err)
	require.Len(t, stages, 2)

	assert.Equal(t, gpu.ShaderType_Vertex, stages[0].Type)
	assert.Equal(t, gpu.ShaderType_Fragment, stages[1].Type)
	assert.Contains(t, string(stages[0].Src), "gl_Position")
	assert.NotContains(t, string(stages[0].Src), "fragColor")
	assert.Contains(t, string(stages[1].Src), "fragColor")
}

func TestSplitCombinedShaderSrcErrors(t *testing.T) {

	tests := []struct {
		name string
		src  string
		err  error
	}{
		{name: "no fragment", src: "//shader:vertex\nvoid main(){}", err: ErrNoFragmentShader},
		{name: "no vertex", src: "//shader:fragment\nvoid main(){}", err: ErrNoVertexShader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SplitCombinedShaderSrc([]byte(tt.src))
			assert.ErrorIs(t, err, tt.err)
		})
	}

	_, err := SplitCombinedShaderSrc([]byte("void main(){}"))
	assert.Error(t, err)

	_, err = SplitCombinedShaderSrc([]byte("//shader:compute\nvoid main(){}"))
	assert.Error(t, err)
}

func TestLoadAndCompileCombinedShaderSrc(t *testing.T) {

	rec := gputest.NewRecorder()
	prog, err := LoadAndCompileCombinedShaderSrc(rec, []byte(combinedSrc))
	require.NoError(t, err)
	require.NotZero(t, prog.Id)
	assert.Len(t, rec.Programs[prog.Id].Stages, 2)

	prog.Bind()
	assert.Equal(t, prog.Id, rec.CurrentProgram)

	id := prog.Id
	prog.Delete()
	assert.True(t, rec.Programs[id].Deleted)
}

func TestCompileErrorIsReturned(t *testing.T) {

	rec := gputest.NewRecorder()
	rec.CompileErr = assert.AnError

	_, err := LoadAndCompileCombinedShaderSrc(rec, []byte(combinedSrc))
	assert.ErrorIs(t, err, gputest.ErrCompileFailed)
}

func TestLoadAndCompileCombinedShaderMissingFile(t *testing.T) {
	_, err := LoadAndCompileCombinedShader(gputest.NewRecorder(), "does-not-exist.glsl")
	assert.Error(t, err)
}
