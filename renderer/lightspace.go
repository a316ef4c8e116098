package renderer

import (
	"github.com/bloeys/gglm/gglm"
)

var (
	// The directional light has no position, so shadows are rendered from a point
	// lightDistance units back along its direction, looking at the world origin
	lightDistance  float32 = 10
	lightOrthoSize float32 = 10
	lightNear      float32 = 1
	lightFar       float32 = 7.5
)

// FakeLightPos is the point shadows are cast from. dir is used as is, not normalized
func FakeLightPos(dir *gglm.Vec3) gglm.Vec3 {
	return *dir.Clone().Scale(-lightDistance)
}

// LightSpaceMatrix is ortho * lookAt for the directional light. The shadow pass and the
// lit pass must both use it so that depths written and depths compared agree
func LightSpaceMatrix(dir *gglm.Vec3) gglm.Mat4 {

	pos := FakeLightPos(dir)
	target := gglm.NewVec3(0, 0, 0)

	// Looking straight up or down makes the usual up vector useless
	up := gglm.NewVec3(0, 1, 0)
	if gglm.Abs32(gglm.DotVec3(dir.Clone().Normalize(), &up)) > 0.99 {
		up = gglm.NewVec3(1, 0, 0)
	}

	// gglm takes top before bottom
	projMat := gglm.Ortho(-lightOrthoSize, lightOrthoSize, lightOrthoSize, -lightOrthoSize, lightNear, lightFar).Mat4
	viewMat := gglm.LookAtRH(&pos, &target, &up).Mat4

	return *projMat.Mul(&viewMat)
}
