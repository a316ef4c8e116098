// Command armdemo drives the robotic arm with the keyboard.
//
//	U/J  turn the base        K/I  bend joint 1       L/O  bend joint 2
//	SPACE  toggle catching    B    toggle falling     WASD + right mouse  move the camera
//	wheel  zoom               double click  reset the camera
package main

import (
	"flag"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nshade/arm"
	"github.com/bloeys/nshade/camera"
	"github.com/bloeys/nshade/engine"
	"github.com/bloeys/nshade/input"
	"github.com/bloeys/nshade/logging"
	"github.com/bloeys/nshade/timing"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	ticksPerSecond = 60

	camMoveSpeed float32 = 4
	camRotSpeed  float32 = 0.5
)

type Game struct {
	Win   *engine.Window
	Cam   *camera.Camera
	State *arm.State
	Rend  *arm.Renderer

	shaderPath string
	ticker     timing.Ticker
	homeCam    camera.Camera
}

func (g *Game) Init() {

	var err error
	g.Rend, err = arm.NewRenderer(g.Win.Dev, g.shaderPath)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to create arm renderer. Err:", err)
	}

	g.homeCam = *g.Cam

	w, h := g.Win.DrawableSize()
	g.onResize(w, h)
}

func (g *Game) onResize(width, height int32) {
	g.Win.Dev.Viewport(0, 0, width, height)
	g.Cam.SetAspectRatio(float32(width) / float32(height))
}

func (g *Game) Update() {

	if input.IsQuitClicked() || input.KeyClicked(sdl.K_ESCAPE) {
		engine.Quit()
	}

	for _, k := range input.ClickedKeys() {
		if k < 0x80 {
			g.State.HandleKey(arm.Key(k))
		}
	}

	for i := g.ticker.Advance(timing.DT()); i > 0; i-- {
		g.State.Step()
	}

	if input.MouseDoubleClicked(sdl.BUTTON_LEFT) {
		g.Cam.ResetTo(&g.homeCam)
	}

	engine.UpdateFreeCamera(g.Cam, camMoveSpeed, camRotSpeed)
}

func (g *Game) Render() {
	g.Rend.Render(g.Cam, arm.Pose(g.State))
}

func (g *Game) FrameEnd() {
}

func (g *Game) DeInit() {
	g.Rend.Delete()
}

func main() {

	shaderPath := flag.String("shader", "./res/shaders/arm.glsl", "Path of the arm shader")
	flag.Parse()

	err := engine.Init()
	if err != nil {
		logging.ErrLog.Fatalln("Failed to init engine. Err:", err)
	}

	window, err := engine.CreateOpenGLWindowCentered("Robotic arm", 1280, 720, engine.WindowFlags_RESIZABLE|engine.WindowFlags_ALLOW_HIGHDPI)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to create window. Err:", err)
	}

	engine.SetMSAA(true)
	engine.SetVSync(true)

	pos := gglm.NewVec3(0, 2, 5)
	forward := gglm.NewVec3(0, -0.3, -1)
	up := gglm.NewVec3(0, 1, 0)

	game := &Game{
		Win:        window,
		Cam:        camera.NewPerspective(&pos, &forward, &up, 0.1, 100, 45*gglm.Deg2Rad, 16.0/9),
		State:      arm.NewState(),
		shaderPath: *shaderPath,
		ticker:     timing.NewTicker(ticksPerSecond),
	}
	window.OnResize = game.onResize

	engine.Run(game, window)
}
