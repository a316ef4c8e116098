package renderer

import (
	"path/filepath"

	"github.com/bloeys/nshade/gpu"
	"github.com/bloeys/nshade/materials"
	"github.com/bloeys/nshade/scene"
	"github.com/bloeys/nshade/xform"
)

// Pass is one stage of a frame. The set of passes is closed: only this package can
// implement it, and a Frame always runs them in a fixed order
type Pass interface {
	Name() string
	Execute(ctx *scene.Context)
	Delete()

	load(env *frameEnv) error
}

// frameEnv is what passes share. It is owned by the Frame
type frameEnv struct {
	dev  gpu.Device
	opts *Options
	res  *FrameResources
	draw *drawer
}

func loadPassMaterial(env *frameEnv, name, shaderFile string) (materials.Material, error) {
	return materials.NewMaterial(env.dev, name, filepath.Join(env.opts.ShaderDir, shaderFile))
}

var (
	_ Pass = &ShadowPass{}
	_ Pass = &FilterTargetPass{}
	_ Pass = &SkyboxPass{}
	_ Pass = &LitPass{}
	_ Pass = &FilterPass{}
)

// ShadowPass renders scene depth from the light into the shadow map
type ShadowPass struct {
	Mat materials.Material
	env *frameEnv
}

func (p *ShadowPass) Name() string {
	return "shadow"
}

func (p *ShadowPass) load(env *frameEnv) (err error) {
	p.env = env
	p.Mat, err = loadPassMaterial(env, "shadow", ShaderFile_Shadow)
	return err
}

func (p *ShadowPass) Execute(ctx *scene.Context) {

	if !ctx.ShadowsEnabled() {
		return
	}

	res := p.env.res
	lightViewMat := LightSpaceMatrix(&ctx.Light.Dir)

	res.ShadowFbo.BindWithViewport()
	res.ShadowFbo.Clear()

	p.env.draw.UseMaterial(&p.Mat)
	p.Mat.SetUnifMat4(Unif_LightViewMatrix, &lightViewMat)

	for i := 0; i < len(ctx.Objects); i++ {

		o := &ctx.Objects[i]
		modelMat := ctx.ObjectWorldMatrix(o)
		p.Mat.SetUnifMat4(Unif_ModelMatrix, &modelMat)
		p.env.draw.DrawModel(&p.Mat, ctx.ObjectModel(o))
	}

	res.ShadowFbo.UnBindWithViewport(uint32(res.FilterWidth), uint32(res.FilterHeight))
}

func (p *ShadowPass) Delete() {
	p.Mat.Delete()
}

// FilterTargetPass redirects the passes after it into the filter framebuffer
type FilterTargetPass struct {
	env *frameEnv
}

func (p *FilterTargetPass) Name() string {
	return "filter target"
}

func (p *FilterTargetPass) load(env *frameEnv) error {
	p.env = env
	return nil
}

func (p *FilterTargetPass) Execute(ctx *scene.Context) {

	cc := &p.env.opts.ClearColor
	p.env.dev.ClearColor(cc[0], cc[1], cc[2], cc[3])

	p.env.res.FilterFbo.BindWithViewport()
	p.env.res.FilterFbo.Clear()
}

func (p *FilterTargetPass) Delete() {
}

// SkyboxPass draws the cube map behind everything. It writes no depth, so the
// lit pass draws over it no matter the order of depths
type SkyboxPass struct {
	Mat materials.Material
	env *frameEnv
}

func (p *SkyboxPass) Name() string {
	return "skybox"
}

func (p *SkyboxPass) load(env *frameEnv) (err error) {
	p.env = env
	p.Mat, err = loadPassMaterial(env, "skybox", ShaderFile_Skybox)
	return err
}

func (p *SkyboxPass) Execute(ctx *scene.Context) {

	if ctx.Skybox == nil {
		return
	}

	dev := p.env.dev
	model := &ctx.Models[ctx.Skybox.ModelIndex]
	viewMat := ctx.Camera.SkyboxViewMat()

	p.env.draw.UseMaterial(&p.Mat)
	p.Mat.SetUnifMat4(Unif_Projection, &ctx.Camera.ProjMat)
	p.Mat.SetUnifMat4(Unif_ViewMatrix, &viewMat)
	p.Mat.SetUnifInt32(Unif_Skybox, int32(materials.TextureSlot_Cubemap))
	p.Mat.BindTexture(materials.TextureSlot_Cubemap, gpu.TextureTarget_CubeMap, model.Textures[ctx.Skybox.TextureIndex])

	dev.DepthMask(false)
	dev.DepthFunc(gpu.DepthFunc_LessEqual)

	p.env.draw.DrawModel(&p.Mat, model)

	dev.DepthFunc(gpu.DepthFunc_Less)
	dev.DepthMask(true)
}

func (p *SkyboxPass) Delete() {
	p.Mat.Delete()
}

// LitPass draws every object with directional lighting and, when enabled, shadows
type LitPass struct {
	Mat materials.Material
	env *frameEnv
}

func (p *LitPass) Name() string {
	return "lit"
}

func (p *LitPass) load(env *frameEnv) (err error) {

	p.env = env
	p.Mat, err = loadPassMaterial(env, "lit", ShaderFile_ShadowLight)
	if err != nil {
		return err
	}

	// Sampler units never change
	p.Mat.SetUnifInt32(Unif_OurTexture, int32(materials.TextureSlot_Diffuse))
	p.Mat.SetUnifInt32(Unif_ShadowMap, int32(materials.TextureSlot_ShadowMap))
	return nil
}

func (p *LitPass) Execute(ctx *scene.Context) {

	cam := ctx.Camera
	light := &ctx.Light
	lightViewMat := LightSpaceMatrix(&light.Dir)
	fakeLightPos := FakeLightPos(&light.Dir)

	p.env.draw.UseMaterial(&p.Mat)

	// Per frame values
	p.Mat.SetUnifMat4(Unif_Projection, &cam.ProjMat)
	p.Mat.SetUnifMat4(Unif_ViewMatrix, &cam.ViewMat)
	p.Mat.SetUnifVec3(Unif_ViewPos, &cam.Pos)
	p.Mat.SetUnifVec3(Unif_DirLightDirection, &light.Dir)
	p.Mat.SetUnifVec3(Unif_DirLightAmbient, &light.Ambient)
	p.Mat.SetUnifVec3(Unif_DirLightDiffuse, &light.Diffuse)
	p.Mat.SetUnifVec3(Unif_DirLightSpecular, &light.Specular)
	p.Mat.SetUnifMat4(Unif_LightViewMatrix, &lightViewMat)
	p.Mat.SetUnifVec3(Unif_FakeLightPos, &fakeLightPos)
	p.Mat.SetUnifBool(Unif_EnableShadow, ctx.ShadowsEnabled())

	p.Mat.BindTexture(materials.TextureSlot_ShadowMap, gpu.TextureTarget_2D, ctx.ShadowMapTex)

	for i := 0; i < len(ctx.Objects); i++ {

		o := &ctx.Objects[i]
		model := ctx.ObjectModel(o)

		modelMat := ctx.ObjectWorldMatrix(o)
		tiModelMat := xform.InverseTranspose(&model.LocalTransform)
		p.Mat.SetUnifMat4(Unif_ModelMatrix, &modelMat)
		p.Mat.SetUnifMat4(Unif_TIModelMatrix, &tiModelMat)

		p.Mat.BindTexture(materials.TextureSlot_Diffuse, gpu.TextureTarget_2D, ctx.ObjectTexture(o))
		p.env.draw.DrawModel(&p.Mat, model)
	}
}

func (p *LitPass) Delete() {
	p.Mat.Delete()
}

// FilterPass draws the filter color target onto the default framebuffer through the
// grayscale/edge detection shader
type FilterPass struct {
	Mat materials.Material
	env *frameEnv
}

func (p *FilterPass) Name() string {
	return "filter"
}

func (p *FilterPass) load(env *frameEnv) (err error) {

	p.env = env
	p.Mat, err = loadPassMaterial(env, "filter", ShaderFile_Filter)
	if err != nil {
		return err
	}

	p.Mat.SetUnifInt32(Unif_ColorBuffer, int32(materials.TextureSlot_ColorBuffer))
	return nil
}

func (p *FilterPass) Execute(ctx *scene.Context) {

	dev := p.env.dev
	res := p.env.res

	res.FilterFbo.UnBindWithViewport(uint32(res.FilterWidth), uint32(res.FilterHeight))
	dev.Clear(gpu.ClearMask_Color | gpu.ClearMask_Depth)

	p.env.draw.UseMaterial(&p.Mat)
	p.Mat.SetUnifBool(Unif_EnableEdgeDetection, ctx.Flags.EdgeDetection)
	p.Mat.SetUnifBool(Unif_EnableGrayscale, ctx.Flags.Grayscale)
	p.Mat.BindTexture(materials.TextureSlot_ColorBuffer, gpu.TextureTarget_2D, res.FilterColorTex())

	dev.Disable(gpu.Capability_DepthTest)
	p.env.draw.DrawModel(&p.Mat, &res.FilterQuad)
	dev.Enable(gpu.Capability_DepthTest)
}

func (p *FilterPass) Delete() {
	p.Mat.Delete()
}
