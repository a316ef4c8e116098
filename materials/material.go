package materials

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nshade/gpu"
	"github.com/bloeys/nshade/logging"
	"github.com/bloeys/nshade/shaders"
)

var (
	lastMatId uint32
)

type TextureSlot uint32

// Programs never sample a cube map and a 2D texture at once, so slot 0 is shared
const (
	TextureSlot_Diffuse     TextureSlot = 0
	TextureSlot_Cubemap     TextureSlot = 0
	TextureSlot_ColorBuffer TextureSlot = 0
	TextureSlot_ShadowMap   TextureSlot = 1
)

type Material struct {
	Id         uint32
	Name       string
	ShaderProg shaders.ShaderProgram

	UnifLocs map[string]int32

	dev gpu.Device
}

func (m *Material) Bind() {
	m.ShaderProg.Bind()
}

func (m *Material) UnBind() {
	m.ShaderProg.UnBind()
}

func (m *Material) BindTexture(slot TextureSlot, target gpu.TextureTarget, texId uint32) {
	m.dev.ActiveTexture(uint32(slot))
	m.dev.BindTexture(target, texId)
}

// GetUnifLoc returns the cached location of a uniform. A uniform the program doesn't have
// (e.g. optimized out by the driver) is logged once and then silently ignored by the setters
func (m *Material) GetUnifLoc(uniformName string) int32 {

	loc, ok := m.UnifLocs[uniformName]
	if ok {
		return loc
	}

	loc = m.dev.UniformLocation(m.ShaderProg.Id, uniformName)
	if loc == -1 {
		logging.WarnLog.Printf("Uniform '%s' doesn't exist on material '%s'\n", uniformName, m.Name)
	}

	m.UnifLocs[uniformName] = loc
	return loc
}

func (m *Material) SetUnifInt32(uniformName string, val int32) {
	m.dev.SetUniformInt32(m.ShaderProg.Id, m.GetUnifLoc(uniformName), val)
}

func (m *Material) SetUnifBool(uniformName string, val bool) {

	var v int32
	if val {
		v = 1
	}

	m.dev.SetUniformInt32(m.ShaderProg.Id, m.GetUnifLoc(uniformName), v)
}

func (m *Material) SetUnifFloat32(uniformName string, val float32) {
	m.dev.SetUniformFloat32(m.ShaderProg.Id, m.GetUnifLoc(uniformName), val)
}

func (m *Material) SetUnifVec3(uniformName string, vec3 *gglm.Vec3) {
	m.dev.SetUniformVec3(m.ShaderProg.Id, m.GetUnifLoc(uniformName), vec3)
}

func (m *Material) SetUnifMat4(uniformName string, mat4 *gglm.Mat4) {
	m.dev.SetUniformMat4(m.ShaderProg.Id, m.GetUnifLoc(uniformName), mat4)
}

func (m *Material) Delete() {
	m.ShaderProg.Delete()
}

func getNewMatId() uint32 {
	lastMatId++
	return lastMatId
}

func newMaterial(dev gpu.Device, matName string, shdrProg shaders.ShaderProgram) Material {
	return Material{
		Id:         getNewMatId(),
		Name:       matName,
		ShaderProg: shdrProg,
		UnifLocs:   make(map[string]int32),
		dev:        dev,
	}
}

func NewMaterial(dev gpu.Device, matName, shaderPath string) (Material, error) {

	shdrProg, err := shaders.LoadAndCompileCombinedShader(dev, shaderPath)
	if err != nil {
		logging.ErrLog.Printf("Failed to create new material '%s'. Err: %s\n", matName, err.Error())
		return Material{}, err
	}

	return newMaterial(dev, matName, shdrProg), nil
}

func NewMaterialSrc(dev gpu.Device, matName string, shaderSrc []byte) (Material, error) {

	shdrProg, err := shaders.LoadAndCompileCombinedShaderSrc(dev, shaderSrc)
	if err != nil {
		logging.ErrLog.Printf("Failed to create new material '%s'. Err: %s\n", matName, err.Error())
		return Material{}, err
	}

	return newMaterial(dev, matName, shdrProg), nil
}

// NewMaterialPair creates a material from separate vertex and fragment shader files
func NewMaterialPair(dev gpu.Device, matName, vertPath, fragPath string) (Material, error) {

	shdrProg, err := shaders.LoadAndCompileShaderPair(dev, vertPath, fragPath)
	if err != nil {
		logging.ErrLog.Printf("Failed to create new material '%s'. Err: %s\n", matName, err.Error())
		return Material{}, err
	}

	return newMaterial(dev, matName, shdrProg), nil
}
