package engine

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nshade/camera"
	"github.com/bloeys/nshade/input"
	"github.com/bloeys/nshade/timing"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	maxMouseMove = 300

	zoomStep float32 = 2 * gglm.Deg2Rad
)

// UpdateFreeCamera moves cam with WASD (shift doubles speed), rotates it while the
// right mouse button is held and zooms with the wheel. Speeds are per second
func UpdateFreeCamera(cam *camera.Camera, moveSpeed, rotSpeed float32) {

	// The cursor is hidden and kept in place while looking around
	if input.MouseClicked(sdl.BUTTON_RIGHT) {
		sdl.SetRelativeMouseMode(true)
	} else if input.MouseReleased(sdl.BUTTON_RIGHT) {
		sdl.SetRelativeMouseMode(false)
	}

	if wheel := input.GetMouseWheelYNorm(); wheel != 0 {
		cam.Zoom(-float32(wheel) * zoomStep)
	}

	mouseX, mouseY := input.GetMouseMotion()
	if (mouseX != 0 || mouseY != 0) && input.MouseDown(sdl.BUTTON_RIGHT) {

		mouseX = gglm.Clamp(mouseX, -maxMouseMove, maxMouseMove)
		mouseY = gglm.Clamp(mouseY, -maxMouseMove, maxMouseMove)
		cam.UpdateRotation(float32(-mouseY)*rotSpeed*timing.DT(), float32(mouseX)*rotSpeed*timing.DT())
	}

	speed := moveSpeed * timing.DT()
	if input.KeyDown(sdl.K_LSHIFT) {
		speed *= 2
	}

	var forward, right float32
	if input.KeyDown(sdl.K_w) {
		forward = speed
	} else if input.KeyDown(sdl.K_s) {
		forward = -speed
	}

	if input.KeyDown(sdl.K_d) {
		right = speed
	} else if input.KeyDown(sdl.K_a) {
		right = -speed
	}

	if forward != 0 || right != 0 {
		cam.MoveLocal(forward, right)
	}
}
