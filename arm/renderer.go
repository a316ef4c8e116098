package arm

import (
	"fmt"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nshade/camera"
	"github.com/bloeys/nshade/gpu"
	"github.com/bloeys/nshade/materials"
	"github.com/bloeys/nshade/meshes"
)

var DefaultLightPos = gglm.NewVec3(50, 75, 80)

// Renderer draws arm poses with one flat colored, diffuse lit program straight to the default framebuffer
type Renderer struct {
	Mat      materials.Material
	Cylinder meshes.Model
	Board    meshes.Model
	LightPos gglm.Vec3

	dev gpu.Device
}

func (r *Renderer) model(s Shape) *meshes.Model {

	if s == Shape_Board {
		return &r.Board
	}

	return &r.Cylinder
}

func (r *Renderer) Render(cam *camera.Camera, parts []Part) {

	r.dev.BindFramebuffer(0)
	r.dev.ClearColor(0, 0, 0, 1)
	r.dev.Clear(gpu.ClearMask_Color | gpu.ClearMask_Depth)

	r.dev.Enable(gpu.Capability_DepthTest)
	r.dev.DepthFunc(gpu.DepthFunc_LessEqual)

	r.Mat.Bind()
	r.Mat.SetUnifMat4("Projection", &cam.ProjMat)
	r.Mat.SetUnifMat4("ViewMatrix", &cam.ViewMat)
	r.Mat.SetUnifVec3("lightPos", &r.LightPos)

	for i := 0; i < len(parts); i++ {

		p := &parts[i]
		r.Mat.SetUnifMat4("ModelMatrix", &p.Transform)
		r.Mat.SetUnifVec3("color", &p.Color)
		r.model(p.Shape).Draw(r.dev)
	}

	r.dev.DepthFunc(gpu.DepthFunc_Less)
}

func (r *Renderer) Delete() {
	r.Mat.Delete()
	r.Cylinder.Delete()
	r.Board.Delete()
}

// NewRenderer compiles the shader at shaderPath and uploads the cylinder and board geometry once
func NewRenderer(dev gpu.Device, shaderPath string) (*Renderer, error) {

	mat, err := materials.NewMaterial(dev, "arm", shaderPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load arm material: %w", err)
	}

	r := &Renderer{
		Mat:      mat,
		Cylinder: meshes.NewModel(dev, "cylinder", gpu.PrimitiveMode_Triangles, meshes.CylinderVertices(CircleSegment), meshes.LayoutPosNorm...),
		Board:    meshes.NewModel(dev, "board", gpu.PrimitiveMode_TriangleStrip, meshes.BoardVertices(), meshes.LayoutPosNorm...),
		LightPos: DefaultLightPos,
		dev:      dev,
	}

	return r, nil
}
