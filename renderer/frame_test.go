package renderer

import (
	"testing"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nshade/camera"
	"github.com/bloeys/nshade/gpu"
	"github.com/bloeys/nshade/gpu/gputest"
	"github.com/bloeys/nshade/meshes"
	"github.com/bloeys/nshade/scene"
	"github.com/bloeys/nshade/xform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testWidth  = 800
	testHeight = 600
)

type testFrame struct {
	rec   *gputest.Recorder
	ctx   *scene.Context
	frame *Frame

	crateTex uint32
	skyTex   uint32
}

func newTestContext(t *testing.T, rec *gputest.Recorder, objectCount int) (*scene.Context, uint32, uint32) {

	crateTex := rec.GenTexture()
	skyTex := rec.GenTexture()

	cube := meshes.NewModel(rec, "cube", gpu.PrimitiveMode_Triangles, meshes.CubeVertices(), meshes.LayoutPosNormUV...)
	cube.LocalTransform = xform.Scaling(2, 2, 2)
	cube.Textures = []uint32{crateTex}

	sky := meshes.NewModel(rec, "skybox", gpu.PrimitiveMode_Triangles, meshes.SkyboxVertices(), meshes.LayoutPos...)
	sky.Textures = []uint32{skyTex}

	objects := make([]scene.Object, objectCount)
	for i := 0; i < objectCount; i++ {
		objects[i] = scene.Object{
			ModelIndex: 0,
			Transform:  xform.Translation(float32(i), 0, 0),
		}
	}

	pos := gglm.NewVec3(0, 2, 5)
	forward := gglm.NewVec3(0, 0, -1)
	up := gglm.NewVec3(0, 1, 0)
	cam := camera.NewPerspective(&pos, &forward, &up, 0.1, 100, 45*gglm.Deg2Rad, 1)

	light := scene.DirLight{
		Dir:      gglm.NewVec3(-0.2, -1, -0.3),
		Ambient:  gglm.NewVec3(0.2, 0.2, 0.2),
		Diffuse:  gglm.NewVec3(0.5, 0.5, 0.5),
		Specular: gglm.NewVec3(1, 1, 1),
	}

	ctx, err := scene.New(cam, light, []meshes.Model{cube, sky}, objects, &scene.Skybox{ModelIndex: 1}, scene.Flags{Shadow: true})
	require.NoError(t, err)

	return ctx, crateTex, skyTex
}

func newTestFrame(t *testing.T, rec *gputest.Recorder, opts Options, objectCount int) *testFrame {

	ctx, crateTex, skyTex := newTestContext(t, rec, objectCount)

	opts.ShaderDir = "../res/shaders"
	frame, err := NewFrame(rec, opts, ctx, testWidth, testHeight)
	require.NoError(t, err)

	return &testFrame{
		rec:      rec,
		ctx:      ctx,
		frame:    frame,
		crateTex: crateTex,
		skyTex:   skyTex,
	}
}

func (tf *testFrame) render(t *testing.T) {
	tf.rec.ResetCommands()
	require.NoError(t, tf.frame.Render())
}

func (tf *testFrame) passDraws(p Pass) []gputest.Draw {

	switch p := p.(type) {
	case *ShadowPass:
		return tf.rec.DrawsWithProgram(p.Mat.ShaderProg.Id)
	case *SkyboxPass:
		return tf.rec.DrawsWithProgram(p.Mat.ShaderProg.Id)
	case *LitPass:
		return tf.rec.DrawsWithProgram(p.Mat.ShaderProg.Id)
	case *FilterPass:
		return tf.rec.DrawsWithProgram(p.Mat.ShaderProg.Id)
	default:
		return nil
	}
}

func (tf *testFrame) shadowDraws() []gputest.Draw { return tf.passDraws(tf.frame.Passes[0]) }
func (tf *testFrame) skyboxDraws() []gputest.Draw { return tf.passDraws(tf.frame.Passes[2]) }
func (tf *testFrame) litDraws() []gputest.Draw    { return tf.passDraws(tf.frame.Passes[3]) }
func (tf *testFrame) filterDraws() []gputest.Draw { return tf.passDraws(tf.frame.Passes[4]) }

func TestPassOrder(t *testing.T) {
	tf := newTestFrame(t, gputest.NewRecorder(), Options{}, 1)
	assert.Equal(t, []string{"shadow", "filter target", "skybox", "lit", "filter"}, tf.frame.PassNames())
}

func TestOneDrawPerObjectPerFrame(t *testing.T) {

	tf := newTestFrame(t, gputest.NewRecorder(), Options{}, 3)

	for frame := 0; frame < 2; frame++ {

		tf.render(t)
		assert.Len(t, tf.shadowDraws(), 3)
		assert.Len(t, tf.litDraws(), 3)
		assert.Len(t, tf.skyboxDraws(), 1)
		assert.Len(t, tf.filterDraws(), 1)
		assert.Len(t, tf.rec.Draws, 8)
	}
}

func TestDrawsHappenInPassOrder(t *testing.T) {

	tf := newTestFrame(t, gputest.NewRecorder(), Options{}, 2)
	tf.render(t)

	shadow, sky, lit, filter := tf.shadowDraws(), tf.skyboxDraws(), tf.litDraws(), tf.filterDraws()
	assert.Less(t, shadow[len(shadow)-1].Seq, sky[0].Seq)
	assert.Less(t, sky[0].Seq, lit[0].Seq)
	assert.Less(t, lit[len(lit)-1].Seq, filter[0].Seq)

	// The filter target is cleared after the shadow map is drawn and before the skybox
	var filterClearSeq int
	for _, c := range tf.rec.Clears {
		if c.Framebuffer == tf.frame.Res.FilterFbo.Id {
			filterClearSeq = c.Seq
		}
	}
	assert.Greater(t, filterClearSeq, shadow[len(shadow)-1].Seq)
	assert.Less(t, filterClearSeq, sky[0].Seq)
}

func TestShadowAndLitUseSameLightMatrix(t *testing.T) {

	tf := newTestFrame(t, gputest.NewRecorder(), Options{}, 2)
	tf.render(t)

	want := LightSpaceMatrix(&tf.ctx.Light.Dir)
	for _, d := range append(tf.shadowDraws(), tf.litDraws()...) {
		assert.Equal(t, want, d.Uniforms[Unif_LightViewMatrix])
	}

	wantPos := FakeLightPos(&tf.ctx.Light.Dir)
	for _, d := range tf.litDraws() {
		assert.Equal(t, wantPos, d.Uniforms[Unif_FakeLightPos])
	}
}

func TestShadowPassTargetsShadowMap(t *testing.T) {

	rec := gputest.NewRecorder()
	rec.MaxTexSize = 2048
	tf := newTestFrame(t, rec, Options{ShadowMaxSize: 4096}, 2)
	tf.render(t)

	res := tf.frame.Res
	assert.Equal(t, int32(2048), res.ShadowSize)

	for i, d := range tf.shadowDraws() {

		assert.Equal(t, res.ShadowFbo.Id, d.Framebuffer)
		assert.Equal(t, [4]int32{0, 0, 2048, 2048}, d.Viewport)
		assert.True(t, d.DepthTest)

		want := xform.Mul(xform.Translation(float32(i), 0, 0), xform.Scaling(2, 2, 2))
		assert.Equal(t, want, d.Uniforms[Unif_ModelMatrix])
	}

	// Only depth is cleared in the shadow map
	for _, c := range rec.Clears {
		if c.Framebuffer == res.ShadowFbo.Id {
			assert.Equal(t, gpu.ClearMask_Depth, c.Mask)
		}
	}
}

func TestShadowSizeCap(t *testing.T) {

	tests := []struct {
		name   string
		devMax int32
		cap    int32
		want   int32
	}{
		{name: "device max below cap", devMax: 2048, cap: 4096, want: 2048},
		{name: "cap below device max", devMax: 16384, cap: 1024, want: 1024},
		{name: "no cap", devMax: 8192, cap: 0, want: 8192},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {

			rec := gputest.NewRecorder()
			rec.MaxTexSize = tt.devMax
			tf := newTestFrame(t, rec, Options{ShadowMaxSize: tt.cap}, 1)

			tex := rec.Textures[tf.frame.Res.ShadowMapTex()]
			assert.Equal(t, tt.want, tex.Width)
			assert.Equal(t, tt.want, tex.Height)
			assert.Equal(t, gpu.TextureFormat_DepthF32, tex.Format)
			assert.Equal(t, gpu.TextureWrap_ClampToBorder, tex.Params.WrapT)
			assert.Equal(t, gpu.TextureFilter_Nearest, tex.Params.MinFilter)
		})
	}
}

func TestSkyboxLeavesDepthWritesOn(t *testing.T) {

	rec := gputest.NewRecorder()
	tf := newTestFrame(t, rec, Options{}, 1)
	tf.render(t)

	sky := tf.skyboxDraws()
	require.Len(t, sky, 1)
	assert.False(t, sky[0].DepthWrite)
	assert.Equal(t, gpu.DepthFunc_LessEqual, sky[0].DepthFunc)
	assert.Equal(t, gputest.BoundTexture{Target: gpu.TextureTarget_CubeMap, Id: tf.skyTex}, sky[0].Textures[0])

	// Translation is stripped from the skybox view
	view := sky[0].Uniforms[Unif_ViewMatrix].(gglm.Mat4)
	assert.Equal(t, [4]float32{0, 0, 0, 1}, view.Data[3])

	for _, d := range tf.litDraws() {
		assert.True(t, d.DepthWrite)
		assert.Equal(t, gpu.DepthFunc_Less, d.DepthFunc)
	}

	assert.True(t, rec.DepthWrite)
	assert.Equal(t, gpu.DepthFunc_Less, rec.CurrDepthFunc)
}

func TestNoSkybox(t *testing.T) {

	tf := newTestFrame(t, gputest.NewRecorder(), Options{}, 1)
	tf.ctx.Skybox = nil
	tf.render(t)

	assert.Empty(t, tf.skyboxDraws())
	assert.Len(t, tf.litDraws(), 1)
}

func TestLitPassUniforms(t *testing.T) {

	tf := newTestFrame(t, gputest.NewRecorder(), Options{}, 2)
	tf.render(t)

	res := tf.frame.Res
	wantTI := xform.InverseTranspose(&tf.ctx.Models[0].LocalTransform)

	lit := tf.litDraws()
	require.Len(t, lit, 2)
	for _, d := range lit {

		assert.Equal(t, res.FilterFbo.Id, d.Framebuffer)
		assert.Equal(t, [4]int32{0, 0, testWidth, testHeight}, d.Viewport)

		assert.Equal(t, int32(0), d.Uniforms[Unif_OurTexture])
		assert.Equal(t, int32(1), d.Uniforms[Unif_ShadowMap])
		assert.Equal(t, int32(1), d.Uniforms[Unif_EnableShadow])
		assert.Equal(t, wantTI, d.Uniforms[Unif_TIModelMatrix])
		assert.Equal(t, tf.ctx.Camera.Pos, d.Uniforms[Unif_ViewPos])
		assert.Equal(t, tf.ctx.Camera.ViewMat, d.Uniforms[Unif_ViewMatrix])
		assert.Equal(t, tf.ctx.Light.Dir, d.Uniforms[Unif_DirLightDirection])
		assert.Equal(t, tf.ctx.Light.Specular, d.Uniforms[Unif_DirLightSpecular])

		assert.Equal(t, gputest.BoundTexture{Target: gpu.TextureTarget_2D, Id: tf.crateTex}, d.Textures[0])
		assert.Equal(t, gputest.BoundTexture{Target: gpu.TextureTarget_2D, Id: res.ShadowMapTex()}, d.Textures[1])
	}
}

func TestShadowFlagOff(t *testing.T) {

	tf := newTestFrame(t, gputest.NewRecorder(), Options{}, 2)
	tf.ctx.Flags.Shadow = false
	tf.render(t)

	assert.Empty(t, tf.shadowDraws())
	for _, d := range tf.litDraws() {
		assert.Equal(t, int32(0), d.Uniforms[Unif_EnableShadow])
	}
}

func TestIncompleteShadowMapDisablesShadows(t *testing.T) {

	rec := gputest.NewRecorder()
	rec.UnsupportedFormats[gpu.TextureFormat_DepthF32] = true

	tf := newTestFrame(t, rec, Options{}, 2)
	assert.False(t, tf.frame.Res.ShadowSupported)
	assert.False(t, tf.ctx.ShadowSupported)

	// The flag stays on but has no effect, and the frame still renders
	assert.True(t, tf.ctx.Flags.Shadow)
	tf.render(t)

	assert.Empty(t, tf.shadowDraws())
	require.Len(t, tf.litDraws(), 2)
	for _, d := range tf.litDraws() {
		assert.Equal(t, int32(0), d.Uniforms[Unif_EnableShadow])
	}
	assert.Len(t, tf.filterDraws(), 1)
}

func TestFilterPass(t *testing.T) {

	rec := gputest.NewRecorder()
	tf := newTestFrame(t, rec, Options{}, 1)
	tf.ctx.Flags.Grayscale = true
	tf.render(t)

	filter := tf.filterDraws()
	require.Len(t, filter, 1)

	d := filter[0]
	assert.Equal(t, uint32(0), d.Framebuffer)
	assert.Equal(t, [4]int32{0, 0, testWidth, testHeight}, d.Viewport)
	assert.False(t, d.DepthTest)
	assert.Equal(t, int32(6), d.Count)
	assert.Equal(t, int32(1), d.Uniforms[Unif_EnableGrayscale])
	assert.Equal(t, int32(0), d.Uniforms[Unif_EnableEdgeDetection])
	assert.Equal(t, int32(0), d.Uniforms[Unif_ColorBuffer])
	assert.Equal(t, gputest.BoundTexture{Target: gpu.TextureTarget_2D, Id: tf.frame.Res.FilterColorTex()}, d.Textures[0])

	// Depth testing is back on for the next frame
	assert.True(t, rec.Enabled[gpu.Capability_DepthTest])
	assert.Equal(t, uint32(0), rec.BoundFramebuffer)
}

func TestResizeIsDeferredToNextRender(t *testing.T) {

	rec := gputest.NewRecorder()
	tf := newTestFrame(t, rec, Options{}, 1)
	res := tf.frame.Res

	oldColor := res.FilterColorTex()
	tf.frame.RequestResize(320, 200)
	tf.frame.RequestResize(640, 480)

	assert.True(t, tf.frame.HasPendingResize())
	assert.Equal(t, oldColor, res.FilterColorTex(), "resize must wait for the next frame")
	assert.Equal(t, int32(testWidth), rec.Textures[oldColor].Width)

	tf.render(t)
	assert.False(t, tf.frame.HasPendingResize())

	newColor := res.FilterColorTex()
	assert.NotEqual(t, oldColor, newColor)
	assert.True(t, rec.Textures[oldColor].Deleted)
	assert.Equal(t, int32(640), rec.Textures[newColor].Width)
	assert.Equal(t, int32(480), rec.Textures[newColor].Height)

	depthRbo := rec.Renderbuffers[res.FilterFbo.Attachments[1].Id]
	assert.Equal(t, int32(640), depthRbo.Width)
	assert.Equal(t, int32(480), depthRbo.Height)
	assert.True(t, res.FilterFbo.IsComplete())

	// Every pass of the frame already saw the new size
	for _, d := range tf.litDraws() {
		assert.Equal(t, [4]int32{0, 0, 640, 480}, d.Viewport)
	}
	filter := tf.filterDraws()
	require.Len(t, filter, 1)
	assert.Equal(t, newColor, filter[0].Textures[0].Id)
	assert.Equal(t, [4]int32{0, 0, 640, 480}, filter[0].Viewport)

	assert.InDelta(t, 640.0/480.0, tf.ctx.Camera.AspectRatio, 1e-5)

	// The shadow map keeps its size
	assert.Equal(t, int32(8192), rec.Textures[res.ShadowMapTex()].Width)
}

func TestResizeToZeroIsFatal(t *testing.T) {

	tf := newTestFrame(t, gputest.NewRecorder(), Options{}, 1)
	tf.frame.RequestResize(0, 480)

	err := tf.frame.Render()
	assert.ErrorIs(t, err, ErrZeroSizedFramebuffer)
}

func TestNewFrameErrors(t *testing.T) {

	rec := gputest.NewRecorder()
	ctx, _, _ := newTestContext(t, rec, 1)

	_, err := NewFrame(rec, Options{ShaderDir: "does-not-exist"}, ctx, testWidth, testHeight)
	assert.Error(t, err)

	_, err = NewFrame(rec, Options{ShaderDir: "../res/shaders"}, ctx, 0, testHeight)
	assert.ErrorIs(t, err, ErrZeroSizedFramebuffer)

	rec.ForceIncomplete = true
	_, err = NewFrame(rec, Options{ShaderDir: "../res/shaders"}, ctx, testWidth, testHeight)
	assert.ErrorIs(t, err, ErrIncompleteFramebuffer)
}

func TestCapture(t *testing.T) {

	rec := gputest.NewRecorder()
	tf := newTestFrame(t, rec, Options{}, 1)
	tf.frame.RequestResize(1, 2)
	tf.render(t)

	// Bottom row red, top row blue, as GL would return them
	tex := rec.Textures[tf.frame.Res.FilterColorTex()]
	tex.Data = []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}

	img := tf.frame.Capture()
	assert.Equal(t, []byte{0, 0, 255, 255, 255, 0, 0, 255}, img.Pix)

	tf.ctx.Flags.Grayscale = true
	img = tf.frame.Capture()
	assert.Equal(t, []byte{18, 18, 18, 255, 54, 54, 54, 255}, img.Pix)
}

func TestDelete(t *testing.T) {

	rec := gputest.NewRecorder()
	tf := newTestFrame(t, rec, Options{}, 1)
	tf.frame.Delete()

	for _, p := range rec.Programs {
		assert.True(t, p.Deleted)
	}

	// Only the scene textures remain
	assert.Equal(t, 2, rec.LiveTextures())
}
