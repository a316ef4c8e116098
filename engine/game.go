package engine

import (
	"github.com/bloeys/nshade/timing"
)

var (
	isRunning = false
)

// Game is driven by Run on the thread that owns the GL context.
// Each frame is: input polling, Update, Render, buffer swap, FrameEnd
type Game interface {
	Init()

	Update()
	Render()
	FrameEnd()

	DeInit()
}

// Run blocks until Quit is called, then calls g.DeInit and destroys the window
func Run(g Game, w *Window) {

	isRunning = true
	g.Init()

	for isRunning {

		timing.FrameStarted()
		w.handleInputs()

		g.Update()
		g.Render()
		w.SDLWin.GLSwap()

		g.FrameEnd()
		timing.FrameEnded()
	}

	g.DeInit()
	w.Destroy()
}

func IsRunning() bool {
	return isRunning
}

// Quit makes Run return after the current frame
func Quit() {
	isRunning = false
}
