// Command nshade renders a scene file with shadows, a skybox and a post process filter.
//
//	WASD + right mouse  move the camera   wheel  zoom   double click  reset the camera
//	H  toggle shadows   G  toggle grayscale   E  toggle edge detection   P  save a screenshot
//
// Changes to the light and filter sections of the scene file are applied while running.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"slices"
	"time"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nshade/assets"
	"github.com/bloeys/nshade/camera"
	"github.com/bloeys/nshade/config"
	"github.com/bloeys/nshade/engine"
	"github.com/bloeys/nshade/gpu"
	"github.com/bloeys/nshade/input"
	"github.com/bloeys/nshade/logging"
	"github.com/bloeys/nshade/meshes"
	"github.com/bloeys/nshade/renderer"
	"github.com/bloeys/nshade/scene"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	defaultShaderDir = "./res/shaders"

	camMoveSpeed float32 = 4
	camRotSpeed  float32 = 0.5
)

var (
	configPath = flag.String("config", "./res/scenes/default.toml", "Scene file to render, TOML or YAML")
	watch      = flag.Bool("watch", true, "Reload light and filter settings when the scene file changes")
)

type Game struct {
	Win   *engine.Window
	Cfg   config.Config
	Ctx   *scene.Context
	Frame *renderer.Frame

	models   []meshes.Model
	textures []assets.Texture
	cubemap  assets.Cubemap
	watcher  *config.Watcher
	homeCam  camera.Camera
}

// loadModels creates the configured models and their textures, plus the skybox cube as the last model when enabled
func loadModels(dev gpu.Device, cfg *config.Config) ([]meshes.Model, []assets.Texture, *scene.Skybox, assets.Cubemap, error) {

	models := make([]meshes.Model, 0, len(cfg.Models)+1)
	textures := make([]assets.Texture, 0)

	texOpts := &assets.TextureLoadOptions{TryLoadFromCache: true, WriteToCache: true, GenMipMaps: true}
	for i := 0; i < len(cfg.Models); i++ {

		mc := &cfg.Models[i]

		var m meshes.Model
		if mc.Shape == config.Shape_Cube {
			m = meshes.NewModel(dev, mc.Name, gpu.PrimitiveMode_Triangles, meshes.CubeVertices(), meshes.LayoutPosNormUV...)
		} else {

			var err error
			m, err = meshes.LoadModel(dev, mc.Name, mc.Path, 0)
			if err != nil {
				return nil, nil, nil, assets.Cubemap{}, err
			}
		}

		m.LocalTransform = mc.LocalTransform()
		for _, texPath := range mc.Textures {

			tex, err := assets.LoadTexture(dev, texPath, texOpts)
			if err != nil {
				return nil, nil, nil, assets.Cubemap{}, fmt.Errorf("model '%s': %w", mc.Name, err)
			}

			m.Textures = append(m.Textures, tex.TexID)

			// Cached textures come back with the same id and must only be deleted once
			if !slices.ContainsFunc(textures, func(t assets.Texture) bool { return t.TexID == tex.TexID }) {
				textures = append(textures, tex)
			}
		}

		models = append(models, m)
	}

	if !cfg.Skybox.Enabled() {
		return models, textures, nil, assets.Cubemap{}, nil
	}

	f := cfg.Skybox.Faces
	cmap, err := assets.LoadCubemapTextures(dev, f[0], f[1], f[2], f[3], f[4], f[5])
	if err != nil {
		return nil, nil, nil, assets.Cubemap{}, fmt.Errorf("skybox: %w", err)
	}

	sky := meshes.NewModel(dev, "skybox", gpu.PrimitiveMode_Triangles, meshes.SkyboxVertices(), meshes.LayoutPos...)
	sky.Textures = []uint32{cmap.TexID}
	models = append(models, sky)

	return models, textures, &scene.Skybox{ModelIndex: len(models) - 1, TextureIndex: 0}, cmap, nil
}

func (g *Game) Init() {

	dev := g.Win.Dev

	var skybox *scene.Skybox
	var err error
	g.models, g.textures, skybox, g.cubemap, err = loadModels(dev, &g.Cfg)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to load scene assets. Err:", err)
	}

	width, height := g.Win.DrawableSize()

	cc := &g.Cfg.Camera
	pos, forward, up := config.Vec3(cc.Pos), config.Vec3(cc.Forward), gglm.NewVec3(0, 1, 0)
	cam := camera.NewPerspective(&pos, &forward, &up, cc.Near, cc.Far, cc.FovDeg*gglm.Deg2Rad, float32(width)/float32(height))

	g.homeCam = *cam

	g.Ctx, err = scene.New(cam, g.Cfg.Light.DirLight(), g.models, g.Cfg.SceneObjects(), skybox, g.Cfg.Flags())
	if err != nil {
		logging.ErrLog.Fatalln("Invalid scene. Err:", err)
	}

	shaderDir := g.Cfg.Shaders.Dir
	if shaderDir == "" {
		shaderDir = defaultShaderDir
	}

	g.Frame, err = renderer.NewFrame(dev, renderer.Options{
		ShaderDir:     shaderDir,
		ShadowMaxSize: g.Cfg.Shadow.MaxSize,
		ClearColor:    [4]float32{0, 0, 0, 1},
	}, g.Ctx, width, height)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to create renderer. Err:", err)
	}

	g.Win.OnResize = g.Frame.RequestResize
	logging.InfoLog.Printf("Rendering %d objects with passes %v\n", len(g.Ctx.Objects), g.Frame.PassNames())

	if *watch {
		g.watcher, err = config.Watch(*configPath)
		if err != nil {
			logging.WarnLog.Printf("Not watching '%s' for changes. Err: %v\n", *configPath, err)
		}
	}
}

func (g *Game) applyConfigChanges() {

	if g.watcher == nil {
		return
	}

	cfg, ok := g.watcher.Poll()
	if !ok {
		return
	}

	g.Cfg.Light = cfg.Light
	g.Cfg.Shadow.Enabled = cfg.Shadow.Enabled
	g.Cfg.Filter = cfg.Filter

	g.Ctx.Light = cfg.Light.DirLight()
	g.Ctx.Flags = g.Cfg.Flags()
	logging.InfoLog.Printf("Reloaded light and filter settings from '%s'\n", g.watcher.Path)
}

func (g *Game) Update() {

	if input.IsQuitClicked() || input.KeyClicked(sdl.K_ESCAPE) {
		engine.Quit()
	}

	g.applyConfigChanges()

	if input.KeyClicked(sdl.K_h) {
		g.Ctx.Flags.Shadow = !g.Ctx.Flags.Shadow
	}

	if input.KeyClicked(sdl.K_g) {
		g.Ctx.Flags.Grayscale = !g.Ctx.Flags.Grayscale
	}

	if input.KeyClicked(sdl.K_e) {
		g.Ctx.Flags.EdgeDetection = !g.Ctx.Flags.EdgeDetection
	}

	if input.KeyClicked(sdl.K_p) {
		g.saveScreenshot()
	}

	if input.MouseDoubleClicked(sdl.BUTTON_LEFT) {
		g.Ctx.Camera.ResetTo(&g.homeCam)
	}

	engine.UpdateFreeCamera(g.Ctx.Camera, camMoveSpeed, camRotSpeed)
}

func (g *Game) saveScreenshot() {

	name := fmt.Sprintf("screenshot-%s.png", time.Now().Format("20060102-150405"))
	f, err := os.Create(name)
	if err != nil {
		logging.ErrLog.Printf("Failed to create screenshot file. Err: %v\n", err)
		return
	}
	defer f.Close()

	if err := png.Encode(f, g.Frame.Capture()); err != nil {
		logging.ErrLog.Printf("Failed to write screenshot '%s'. Err: %v\n", name, err)
		return
	}

	logging.InfoLog.Printf("Saved screenshot '%s'\n", name)
}

func (g *Game) Render() {

	if err := g.Frame.Render(); err != nil {
		logging.ErrLog.Fatalln("Failed to render frame. Err:", err)
	}
}

func (g *Game) FrameEnd() {
}

func (g *Game) DeInit() {

	if g.watcher != nil {
		g.watcher.Close()
	}

	g.Frame.Delete()

	for i := 0; i < len(g.models); i++ {
		g.models[i].Delete()
	}

	for i := 0; i < len(g.textures); i++ {
		assets.DeleteTexture(g.Win.Dev, &g.textures[i])
	}

	g.Win.Dev.DeleteTexture(g.cubemap.TexID)
}

func main() {

	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to load config. Err:", err)
	}

	err = engine.Init()
	if err != nil {
		logging.ErrLog.Fatalln("Failed to init engine. Err:", err)
	}

	window, err := engine.CreateOpenGLWindowCentered(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height, engine.WindowFlags_RESIZABLE|engine.WindowFlags_ALLOW_HIGHDPI)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to create window. Err:", err)
	}

	engine.SetMSAA(true)
	engine.SetVSync(cfg.Window.VSync)

	game := &Game{
		Win: window,
		Cfg: cfg,
	}

	engine.Run(game, window)
}
