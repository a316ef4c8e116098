package materials

import (
	"testing"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nshade/gpu"
	"github.com/bloeys/nshade/gpu/gputest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testShaderSrc = `//shader:vertex
void main() {}
//shader:fragment
void main() {}
`

func TestMaterialUniforms(t *testing.T) {

	rec := gputest.NewRecorder()
	mat, err := NewMaterialSrc(rec, "test", []byte(testShaderSrc))
	require.NoError(t, err)

	mat.SetUnifInt32("shadowMap", 1)
	mat.SetUnifBool("enableGrayscale", true)
	mat.SetUnifFloat32("shininess", 32)

	v := gglm.NewVec3(1, 2, 3)
	mat.SetUnifVec3("light.direction", &v)

	m := gglm.NewMat4Diag(2)
	mat.SetUnifMat4("model", &m)

	unifs := rec.Programs[mat.ShaderProg.Id].Uniforms
	assert.Equal(t, int32(1), unifs["shadowMap"])
	assert.Equal(t, int32(1), unifs["enableGrayscale"])
	assert.Equal(t, float32(32), unifs["shininess"])
	assert.Equal(t, v, unifs["light.direction"])
	assert.Equal(t, m, unifs["model"])

	// Locations are cached after the first query
	assert.Len(t, mat.UnifLocs, 5)
	mat.SetUnifInt32("shadowMap", 0)
	assert.Len(t, mat.UnifLocs, 5)
	assert.Equal(t, int32(0), unifs["shadowMap"])
}

func TestMaterialBindTexture(t *testing.T) {

	rec := gputest.NewRecorder()
	mat, err := NewMaterialSrc(rec, "test", []byte(testShaderSrc))
	require.NoError(t, err)

	mat.BindTexture(TextureSlot_ShadowMap, gpu.TextureTarget_2D, 42)
	assert.Equal(t, uint32(1), rec.ActiveUnit)
	assert.Equal(t, gputest.BoundTexture{Target: gpu.TextureTarget_2D, Id: 42}, rec.BoundTextures[1])
}

func TestMaterialIdsAreUnique(t *testing.T) {

	rec := gputest.NewRecorder()
	a, err := NewMaterialSrc(rec, "a", []byte(testShaderSrc))
	require.NoError(t, err)
	b, err := NewMaterialSrc(rec, "b", []byte(testShaderSrc))
	require.NoError(t, err)

	assert.NotEqual(t, a.Id, b.Id)
	assert.NotEqual(t, a.ShaderProg.Id, b.ShaderProg.Id)
}

func TestNewMaterialFailures(t *testing.T) {

	rec := gputest.NewRecorder()

	_, err := NewMaterialSrc(rec, "bad", []byte("//shader:vertex\nvoid main() {}"))
	assert.Error(t, err)

	_, err = NewMaterial(rec, "missing", "missing.glsl")
	assert.Error(t, err)

	_, err = NewMaterialPair(rec, "missing", "missing.vert", "missing.frag")
	assert.Error(t, err)
}
