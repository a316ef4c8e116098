package arm

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nshade/xform"
)

var (
	ColorRed   = gglm.NewVec3(0.905, 0.298, 0.235)
	ColorBlue  = gglm.NewVec3(0.203, 0.596, 0.858)
	ColorGreen = gglm.NewVec3(0.18, 0.8, 0.443)
	ColorWhite = gglm.NewVec3(1, 0.921, 0.803)

	ColorBoard = gglm.NewVec3(1, 1, 1)
)

type Shape int32

const (
	Shape_Cylinder Shape = iota
	Shape_Board
)

type Part struct {
	Name      string
	Shape     Shape
	Transform gglm.Mat4
	Color     gglm.Vec3
}

// joint returns the transform of a joint cylinder lying along Z and centred on the arm axis,
// given the frame at the top of the arm below it
func joint(frame *gglm.Mat4, deg float32) gglm.Mat4 {
	return xform.Mul(
		*frame,
		xform.Translation(0, 0, -ArmRadius),
		xform.RotationX(90*gglm.Deg2Rad),
		xform.RotationY(deg*gglm.Deg2Rad),
		xform.Scaling(JointRadius, JointWidth, JointRadius),
	)
}

// Pose returns the board, the target, the base, then arms and joints from the base up.
// Cylinders are unit cylinders along +Y
func Pose(s *State) []Part {

	parts := make([]Part, 0, 8)
	parts = append(parts, Part{
		Name:      "board",
		Shape:     Shape_Board,
		Transform: xform.Scaling(3, 1, 3),
		Color:     ColorBoard,
	})

	targetColor := ColorRed
	if s.Falling {
		targetColor = ColorWhite
	}

	parts = append(parts, Part{
		Name:      "target",
		Shape:     Shape_Cylinder,
		Transform: xform.Mul(xform.TranslationVec(&s.TargetPos), xform.Scaling(TargetRadius, TargetHeight, TargetRadius)),
		Color:     targetColor,
	})

	frame := xform.RotationY(s.JointDeg[0] * gglm.Deg2Rad)
	parts = append(parts, Part{
		Name:      "base",
		Shape:     Shape_Cylinder,
		Transform: xform.Mul(frame, xform.Scaling(BaseRadius, BaseHeight, BaseRadius)),
		Color:     ColorGreen,
	})

	armScale := xform.Scaling(ArmRadius, ArmLen, ArmRadius)
	armNames := [3]string{"arm 1", "arm 2", "arm 3"}
	jointNames := [2]string{"joint 1", "joint 2"}

	frame = xform.Mul(frame, xform.Translation(0, BaseHeight, 0))
	for i := 0; i < 3; i++ {

		parts = append(parts, Part{
			Name:      armNames[i],
			Shape:     Shape_Cylinder,
			Transform: xform.Mul(frame, armScale),
			Color:     ColorBlue,
		})

		if i == 2 {
			break
		}

		frame = xform.Mul(frame, xform.Translation(0, ArmLen+JointRadius, 0))
		deg := s.JointDeg[i+1]
		parts = append(parts, Part{
			Name:      jointNames[i],
			Shape:     Shape_Cylinder,
			Transform: joint(&frame, deg),
			Color:     ColorGreen,
		})

		// RotationX(90) * RotationY(a) == RotationZ(a) * RotationX(90), so past the joint the angle is a bend around Z
		frame = xform.Mul(frame, xform.RotationZ(deg*gglm.Deg2Rad), xform.Translation(0, JointRadius, 0))
	}

	return parts
}
