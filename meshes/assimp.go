package meshes

import (
	"errors"
	"fmt"

	"github.com/bloeys/assimp-go/asig"
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nshade/assert"
	"github.com/bloeys/nshade/gpu"
)

var (
	// DefaultMeshLoadFlags are the flags always applied when loading a new mesh regardless
	// of what post process flags are used when loading a mesh.
	DefaultMeshLoadFlags asig.PostProcess = asig.PostProcessTriangulate | asig.PostProcessCalcTangentSpace

	ErrNoMeshes = errors.New("no meshes found in model file")
)

// LoadModel imports every mesh in the file and flattens them into one non-indexed triangle list
// with the LayoutPosNormUV layout
func LoadModel(dev gpu.Device, name, modelPath string, postProcessFlags asig.PostProcess) (Model, error) {

	vertexData, err := LoadModelVertices(modelPath, postProcessFlags)
	if err != nil {
		return Model{}, err
	}

	return NewModel(dev, name, gpu.PrimitiveMode_Triangles, vertexData, LayoutPosNormUV...), nil
}

// LoadModelVertices does the CPU side of LoadModel
func LoadModelVertices(modelPath string, postProcessFlags asig.PostProcess) ([]float32, error) {

	finalPostProcessFlags := DefaultMeshLoadFlags | postProcessFlags

	scene, release, err := asig.ImportFile(modelPath, finalPostProcessFlags)
	if err != nil {
		return nil, fmt.Errorf("failed to load model '%s': %w", modelPath, err)
	}
	defer release()

	if len(scene.Meshes) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMeshes, modelPath)
	}

	// pos+normal+uv per index
	vertexBufData := make([]float32, 0, len(scene.Meshes[0].Faces)*3*8)

	for i := 0; i < len(scene.Meshes); i++ {

		sceneMesh := scene.Meshes[i]

		// We always want normals and UV0
		if len(sceneMesh.Normals) == 0 {
			sceneMesh.Normals = make([]gglm.Vec3, len(sceneMesh.Vertices))
		}

		if len(sceneMesh.TexCoords[0]) == 0 {
			sceneMesh.TexCoords[0] = make([]gglm.Vec3, len(sceneMesh.Vertices))
		}

		vertices := interleave(
			arrToInterleave{V3s: sceneMesh.Vertices},
			arrToInterleave{V3s: sceneMesh.Normals},
			arrToInterleave{V2s: v3sToV2s(sceneMesh.TexCoords[0])},
		)

		vertexBufData = append(vertexBufData, unindex(vertices, flattenFaces(sceneMesh.Faces), 8)...)
	}

	return vertexBufData, nil
}

// unindex expands an indexed vertex list into one vertex per index
func unindex(vertices []float32, indices []uint32, floatsPerVertex int) []float32 {

	out := make([]float32, 0, len(indices)*floatsPerVertex)
	for _, idx := range indices {
		start := int(idx) * floatsPerVertex
		out = append(out, vertices[start:start+floatsPerVertex]...)
	}

	return out
}

func v3sToV2s(v3s []gglm.Vec3) []gglm.Vec2 {

	v2s := make([]gglm.Vec2, len(v3s))
	for i := 0; i < len(v3s); i++ {
		v2s[i] = gglm.Vec2{
			Data: [2]float32{v3s[i].X(), v3s[i].Y()},
		}
	}

	return v2s
}

type arrToInterleave struct {
	V2s []gglm.Vec2
	V3s []gglm.Vec3
}

func (a *arrToInterleave) get(i int) []float32 {

	assert.T(len(a.V2s) == 0 || len(a.V3s) == 0, "One array should be set in arrToInterleave, but multiple arrays are set")

	if len(a.V2s) > 0 {
		return a.V2s[i].Data[:]
	}

	return a.V3s[i].Data[:]
}

func (a *arrToInterleave) len() int {

	if len(a.V2s) > 0 {
		return len(a.V2s)
	}

	return len(a.V3s)
}

func interleave(arrs ...arrToInterleave) []float32 {

	assert.T(len(arrs) > 0, "No input sent to interleave")

	elementCount := arrs[0].len()
	assert.T(elementCount > 0, "Interleave arrays are empty")

	//Calculate final size of the float buffer
	totalSize := 0
	for i := 0; i < len(arrs); i++ {

		assert.T(arrs[i].len() == elementCount, "Mesh vertex data given to interleave is not the same length")

		if len(arrs[i].V2s) > 0 {
			totalSize += len(arrs[i].V2s) * 2
		} else {
			totalSize += len(arrs[i].V3s) * 3
		}
	}

	out := make([]float32, 0, totalSize)
	for i := 0; i < elementCount; i++ {
		for arrToUse := 0; arrToUse < len(arrs); arrToUse++ {
			out = append(out, arrs[arrToUse].get(i)...)
		}
	}

	return out
}

func flattenFaces(faces []asig.Face) []uint32 {

	assert.T(len(faces) > 0 && len(faces[0].Indices) == 3, "Face doesn't have 3 indices")

	uints := make([]uint32, len(faces)*3)
	for i := 0; i < len(faces); i++ {
		uints[i*3+0] = uint32(faces[i].Indices[0])
		uints[i*3+1] = uint32(faces[i].Indices[1])
		uints[i*3+2] = uint32(faces[i].Indices[2])
	}

	return uints
}
