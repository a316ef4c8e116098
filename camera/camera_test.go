package camera

import (
	"testing"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nshade/xform"
	"github.com/stretchr/testify/assert"
)

func TestSkyboxViewMatHasNoTranslation(t *testing.T) {

	pos := gglm.NewVec3(3, 4, 5)
	forward := gglm.NewVec3(0, 0, -1)
	up := gglm.NewVec3(0, 1, 0)
	cam := NewPerspective(&pos, &forward, &up, 0.1, 100, 45*gglm.Deg2Rad, 16.0/9)

	skyView := cam.SkyboxViewMat()
	assert.Equal(t, [4]float32{0, 0, 0, 1}, skyView.Data[3])

	// The camera position maps to the view space origin with the full view matrix
	camInView, _ := xform.TransformPoint(&cam.ViewMat, &cam.Pos)
	assert.InDelta(t, 0, camInView.X(), 1e-4)
	assert.InDelta(t, 0, camInView.Y(), 1e-4)
	assert.InDelta(t, 0, camInView.Z(), 1e-4)
}

func TestUpdateRotationClampsPitch(t *testing.T) {

	pos := gglm.NewVec3(0, 0, 0)
	forward := gglm.NewVec3(1, 0, 0)
	up := gglm.NewVec3(0, 1, 0)
	cam := NewPerspective(&pos, &forward, &up, 0.1, 100, 45*gglm.Deg2Rad, 1)

	cam.UpdateRotation(10, 0)
	assert.InDelta(t, 89*gglm.Deg2Rad, cam.Pitch, 1e-5)
	assert.Less(t, cam.Forward.Y(), float32(1))
	assert.Greater(t, cam.Forward.Y(), float32(0.99))
}

func TestMoveLocal(t *testing.T) {

	pos := gglm.NewVec3(0, 2, 5)
	forward := gglm.NewVec3(0, 0, -2)
	up := gglm.NewVec3(0, 1, 0)
	cam := NewPerspective(&pos, &forward, &up, 0.1, 100, 45*gglm.Deg2Rad, 1)

	cam.MoveLocal(1, 0)
	assert.InDelta(t, 4, cam.Pos.Z(), 1e-5)

	// Right of looking down -Z is +X
	cam.MoveLocal(0, 3)
	assert.InDelta(t, 3, cam.Pos.X(), 1e-5)
	assert.InDelta(t, 2, cam.Pos.Y(), 1e-5)
	assert.InDelta(t, 4, cam.Pos.Z(), 1e-5)

	camInView, _ := xform.TransformPoint(&cam.ViewMat, &cam.Pos)
	assert.InDelta(t, 0, camInView.Z(), 1e-4)
}

func TestZoomClampsFov(t *testing.T) {

	pos := gglm.NewVec3(0, 0, 0)
	forward := gglm.NewVec3(0, 0, -1)
	up := gglm.NewVec3(0, 1, 0)
	cam := NewPerspective(&pos, &forward, &up, 0.1, 100, 45*gglm.Deg2Rad, 1)

	before := cam.ProjMat
	cam.Zoom(-5 * gglm.Deg2Rad)
	assert.InDelta(t, 40*gglm.Deg2Rad, cam.Fov, 1e-5)
	assert.NotEqual(t, before, cam.ProjMat)

	cam.Zoom(-180 * gglm.Deg2Rad)
	assert.InDelta(t, MinFov, cam.Fov, 1e-5)

	cam.Zoom(180 * gglm.Deg2Rad)
	assert.InDelta(t, MaxFov, cam.Fov, 1e-5)
}

func TestResetToKeepsAspectRatio(t *testing.T) {

	pos := gglm.NewVec3(0, 2, 5)
	forward := gglm.NewVec3(0, 0, -1)
	up := gglm.NewVec3(0, 1, 0)
	cam := NewPerspective(&pos, &forward, &up, 0.1, 100, 45*gglm.Deg2Rad, 1)
	home := *cam

	cam.MoveLocal(3, 1)
	cam.UpdateRotation(0.3, 1)
	cam.Zoom(20 * gglm.Deg2Rad)
	cam.SetAspectRatio(2)

	cam.ResetTo(&home)
	assert.Equal(t, home.Pos, cam.Pos)
	assert.Equal(t, home.Forward, cam.Forward)
	assert.Equal(t, home.Fov, cam.Fov)
	assert.Equal(t, home.Yaw, cam.Yaw)
	assert.Equal(t, home.Pitch, cam.Pitch)
	assert.Equal(t, home.ViewMat, cam.ViewMat)
	assert.Equal(t, float32(2), cam.AspectRatio)

	// MoveLocal works on the camera's own vectors, not home's
	cam.MoveLocal(1, 0)
	assert.NotEqual(t, home.Pos, cam.Pos)
}
