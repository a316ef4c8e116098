package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/veandco/go-sdl2/sdl"
)

func keyEvent(k sdl.Keycode, state uint8, repeat uint8) *sdl.KeyboardEvent {
	return &sdl.KeyboardEvent{State: state, Repeat: repeat, Keysym: sdl.Keysym{Sym: k}}
}

func mouseEvent(btn uint8, state uint8, clicks uint8) *sdl.MouseButtonEvent {
	return &sdl.MouseButtonEvent{Button: btn, State: state, Clicks: clicks}
}

func resetState() {
	ClearKeyboardState()
	ClearMouseState()
	EventLoopStart()
}

func TestKeyClickedOnlyForOneFrame(t *testing.T) {

	resetState()

	HandleKeyboardEvent(keyEvent(sdl.K_u, sdl.PRESSED, 0))
	assert.True(t, KeyClicked(sdl.K_u))
	assert.True(t, KeyDown(sdl.K_u))
	assert.False(t, KeyClicked(sdl.K_j))

	EventLoopStart()
	assert.False(t, KeyClicked(sdl.K_u))
	assert.True(t, KeyDown(sdl.K_u))

	// Repeats keep the key down without counting as a new click
	HandleKeyboardEvent(keyEvent(sdl.K_u, sdl.PRESSED, 1))
	assert.False(t, KeyClicked(sdl.K_u))
	assert.True(t, KeyDown(sdl.K_u))

	EventLoopStart()
	HandleKeyboardEvent(keyEvent(sdl.K_u, sdl.RELEASED, 0))
	assert.False(t, KeyDown(sdl.K_u))
}

func TestClickedKeysAreSorted(t *testing.T) {

	resetState()

	HandleKeyboardEvent(keyEvent(sdl.K_u, sdl.PRESSED, 0))
	HandleKeyboardEvent(keyEvent(sdl.K_SPACE, sdl.PRESSED, 0))
	HandleKeyboardEvent(keyEvent(sdl.K_b, sdl.PRESSED, 0))
	HandleKeyboardEvent(keyEvent(sdl.K_k, sdl.PRESSED, 1))

	assert.Equal(t, []sdl.Keycode{sdl.K_SPACE, sdl.K_b, sdl.K_u}, ClickedKeys())

	EventLoopStart()
	assert.Empty(t, ClickedKeys())
}

func TestClearKeyboardStateReleasesKeys(t *testing.T) {

	resetState()

	HandleKeyboardEvent(keyEvent(sdl.K_w, sdl.PRESSED, 0))
	assert.True(t, KeyDown(sdl.K_w))

	ClearKeyboardState()
	assert.False(t, KeyDown(sdl.K_w))
	assert.Empty(t, ClickedKeys())
}

func TestMouseButtons(t *testing.T) {

	resetState()

	HandleMouseBtnEvent(mouseEvent(sdl.BUTTON_RIGHT, sdl.PRESSED, 1))
	assert.True(t, MouseClicked(sdl.BUTTON_RIGHT))
	assert.True(t, MouseDown(sdl.BUTTON_RIGHT))
	assert.False(t, MouseDoubleClicked(sdl.BUTTON_RIGHT))
	assert.False(t, MouseReleased(sdl.BUTTON_RIGHT))

	EventLoopStart()
	assert.False(t, MouseClicked(sdl.BUTTON_RIGHT))
	assert.True(t, MouseDown(sdl.BUTTON_RIGHT))

	HandleMouseBtnEvent(mouseEvent(sdl.BUTTON_RIGHT, sdl.RELEASED, 1))
	assert.True(t, MouseReleased(sdl.BUTTON_RIGHT))
	assert.False(t, MouseDown(sdl.BUTTON_RIGHT))

	EventLoopStart()
	HandleMouseBtnEvent(mouseEvent(sdl.BUTTON_LEFT, sdl.PRESSED, 2))
	assert.True(t, MouseDoubleClicked(sdl.BUTTON_LEFT))

	EventLoopStart()
	assert.False(t, MouseDoubleClicked(sdl.BUTTON_LEFT))
}

func TestMouseMotionAndWheel(t *testing.T) {

	resetState()

	HandleMouseMotionEvent(&sdl.MouseMotionEvent{X: 100, Y: 50, XRel: 4, YRel: -2})
	x, y := GetMouseMotion()
	assert.Equal(t, int32(4), x)
	assert.Equal(t, int32(-2), y)

	HandleMouseWheelEvent(&sdl.MouseWheelEvent{Y: 3})
	assert.Equal(t, int32(1), GetMouseWheelYNorm())

	HandleMouseWheelEvent(&sdl.MouseWheelEvent{Y: -2})
	assert.Equal(t, int32(-1), GetMouseWheelYNorm())

	EventLoopStart()
	x, y = GetMouseMotion()
	assert.Zero(t, x)
	assert.Zero(t, y)
	assert.Zero(t, GetMouseWheelYNorm())

	HandleMouseBtnEvent(mouseEvent(sdl.BUTTON_RIGHT, sdl.PRESSED, 1))
	ClearMouseState()
	assert.False(t, MouseDown(sdl.BUTTON_RIGHT))
}

func TestQuitLastsOneFrame(t *testing.T) {

	resetState()

	HandleQuitEvent(&sdl.QuitEvent{})
	assert.True(t, IsQuitClicked())

	EventLoopStart()
	assert.False(t, IsQuitClicked())
}
