// Package scene holds the session state every render pass reads: camera, light, models,
// objects and feature flags. It is mutated between frames and read only during a frame.
package scene

import (
	"errors"
	"fmt"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nshade/camera"
	"github.com/bloeys/nshade/meshes"
)

var (
	ErrInvalidModelIndex   = errors.New("model index out of range")
	ErrInvalidTextureIndex = errors.New("texture index out of range")
	ErrNoCamera            = errors.New("scene has no camera")
)

type DirLight struct {
	Dir      gglm.Vec3
	Ambient  gglm.Vec3
	Diffuse  gglm.Vec3
	Specular gglm.Vec3
}

type Flags struct {
	Shadow        bool
	Grayscale     bool
	EdgeDetection bool
}

// Object is an instance of a model. Only Transform is expected to change after load
type Object struct {
	ModelIndex   int
	TextureIndex int
	Transform    gglm.Mat4
}

// Skybox selects a cube map texture from a model's texture list
type Skybox struct {
	ModelIndex   int
	TextureIndex int
}

type Context struct {
	Camera  *camera.Camera
	Light   DirLight
	Models  []meshes.Model
	Objects []Object

	// Skybox is nil when the scene has none
	Skybox *Skybox

	// ShadowMapTex is owned by the shadow resources and only read here
	ShadowMapTex uint32

	Flags Flags

	// ShadowSupported turns false when the shadow framebuffer can't be completed on this device.
	// Shadows then stay off no matter what Flags.Shadow says
	ShadowSupported bool
}

// New validates every object and the skybox against the models. Any bad index fails
// the whole scene, nothing is skipped
func New(cam *camera.Camera, light DirLight, models []meshes.Model, objects []Object, skybox *Skybox, flags Flags) (*Context, error) {

	ctx := &Context{
		Camera:          cam,
		Light:           light,
		Models:          models,
		Objects:         objects,
		Skybox:          skybox,
		Flags:           flags,
		ShadowSupported: true,
	}

	if err := ctx.Validate(); err != nil {
		return nil, err
	}

	return ctx, nil
}

func (c *Context) Validate() error {

	if c.Camera == nil {
		return ErrNoCamera
	}

	for i := 0; i < len(c.Objects); i++ {

		o := &c.Objects[i]
		if err := c.checkIndices(o.ModelIndex, o.TextureIndex); err != nil {
			return fmt.Errorf("object %d: %w", i, err)
		}
	}

	if c.Skybox != nil {
		if err := c.checkIndices(c.Skybox.ModelIndex, c.Skybox.TextureIndex); err != nil {
			return fmt.Errorf("skybox: %w", err)
		}
	}

	return nil
}

func (c *Context) checkIndices(modelIndex, textureIndex int) error {

	if modelIndex < 0 || modelIndex >= len(c.Models) {
		return fmt.Errorf("%w: %d (have %d models)", ErrInvalidModelIndex, modelIndex, len(c.Models))
	}

	m := &c.Models[modelIndex]
	if textureIndex < 0 || textureIndex >= len(m.Textures) {
		return fmt.Errorf("%w: %d (model '%s' has %d textures)", ErrInvalidTextureIndex, textureIndex, m.Name, len(m.Textures))
	}

	return nil
}

// ShadowsEnabled is what passes consult, it folds in device support
func (c *Context) ShadowsEnabled() bool {
	return c.Flags.Shadow && c.ShadowSupported
}

func (c *Context) ObjectModel(o *Object) *meshes.Model {
	return &c.Models[o.ModelIndex]
}

// ObjectWorldMatrix is objectTransform * modelLocalTransform
func (c *Context) ObjectWorldMatrix(o *Object) gglm.Mat4 {
	world := o.Transform
	world.Mul(&c.Models[o.ModelIndex].LocalTransform)
	return world
}

func (c *Context) ObjectTexture(o *Object) uint32 {
	return c.Models[o.ModelIndex].Textures[o.TextureIndex]
}
