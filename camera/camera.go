package camera

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nshade/xform"
	"github.com/chewxy/math32"
)

type Camera struct {
	Pos     gglm.Vec3
	Forward gglm.Vec3
	WorldUp gglm.Vec3

	NearClip float32
	FarClip  float32

	Fov         float32
	AspectRatio float32

	// Yaw and Pitch are in radians and are only used by UpdateRotation
	Yaw   float32
	Pitch float32

	ViewMat gglm.Mat4
	ProjMat gglm.Mat4
}

// Update recalculates the view and projection matrices
func (c *Camera) Update() {

	c.ViewMat = gglm.LookAtRH(&c.Pos, c.Pos.Clone().Add(&c.Forward), &c.WorldUp).Mat4

	projMat := gglm.Perspective(c.Fov, c.AspectRatio, c.NearClip, c.FarClip)
	c.ProjMat = *projMat.Clone()
}

// SkyboxViewMat is the view matrix without translation, so the skybox stays centered on the camera
func (c *Camera) SkyboxViewMat() gglm.Mat4 {
	return xform.StripTranslation(&c.ViewMat)
}

func (c *Camera) SetAspectRatio(aspect float32) {
	c.AspectRatio = aspect
	c.Update()
}

// UpdateRotation sets Forward from Yaw and Pitch. Pitch is clamped to avoid flipping over the up axis
func (c *Camera) UpdateRotation(pitchDelta, yawDelta float32) {

	var maxPitch float32 = 89 * gglm.Deg2Rad

	c.Pitch = math32.Max(-maxPitch, math32.Min(maxPitch, c.Pitch+pitchDelta))
	c.Yaw += yawDelta

	sinPitch, cosPitch := math32.Sincos(c.Pitch)
	sinYaw, cosYaw := math32.Sincos(c.Yaw)
	c.Forward = gglm.NewVec3(cosYaw*cosPitch, sinPitch, sinYaw*cosPitch)
	c.Update()
}

// MoveLocal moves the camera along its forward direction and its right direction (forward x up)
func (c *Camera) MoveLocal(forwardAmount, rightAmount float32) {

	if forwardAmount != 0 {
		c.Pos.Add(c.Forward.Clone().Normalize().Scale(forwardAmount))
	}

	if rightAmount != 0 {
		cross := gglm.Cross(&c.Forward, &c.WorldUp)
		c.Pos.Add(cross.Normalize().Scale(rightAmount))
	}

	c.Update()
}

var (
	MinFov float32 = 10 * gglm.Deg2Rad
	MaxFov float32 = 90 * gglm.Deg2Rad
)

// Zoom changes the field of view by fovDelta radians, staying within [MinFov, MaxFov]
func (c *Camera) Zoom(fovDelta float32) {
	c.Fov = math32.Max(MinFov, math32.Min(MaxFov, c.Fov+fovDelta))
	c.Update()
}

// ResetTo copies the pose and lens of home but keeps the current aspect ratio, which follows the window
func (c *Camera) ResetTo(home *Camera) {
	aspect := c.AspectRatio
	*c = *home
	c.SetAspectRatio(aspect)
}

func NewPerspective(pos, forward, worldUp *gglm.Vec3, nearClip, farClip, fovRadians, aspectRatio float32) *Camera {

	cam := &Camera{
		Pos:         *pos,
		Forward:     *forward,
		WorldUp:     *worldUp,
		NearClip:    nearClip,
		FarClip:     farClip,
		Fov:         fovRadians,
		AspectRatio: aspectRatio,
	}

	cam.Pitch, cam.Yaw = pitchYawFromForward(&cam.Forward)
	cam.Update()
	return cam
}

func pitchYawFromForward(forward *gglm.Vec3) (pitch, yaw float32) {
	f := forward.Clone().Normalize()
	pitch = math32.Asin(f.Y())
	yaw = math32.Atan2(f.Z(), f.X())
	return pitch, yaw
}
