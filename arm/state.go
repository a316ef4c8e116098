// Package arm is a three joint robotic arm that can pick up a small cylinder target.
//
// State holds everything the demo mutates between ticks. Step advances it by one tick,
// Pose turns it into world transforms for drawing.
package arm

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nshade/xform"
)

// Component sizes, in world units
const (
	ArmLen        float32 = 1
	ArmRadius     float32 = 0.05
	JointRadius   float32 = 0.05
	JointWidth    float32 = 0.1
	BaseRadius    float32 = 0.5
	BaseHeight    float32 = 0.1
	TargetRadius  float32 = 0.05
	TargetHeight  float32 = 0.1
	CatchOffset   float32 = 0.05
	CircleSegment         = 64
)

const (
	// RotateSpeed is in degrees per tick
	RotateSpeed float32 = 1

	// CatchTolerance is compared against the squared distance between the end effector and the target centre
	CatchTolerance float32 = 0.1

	Gravity      float32 = -0.001
	BounceFactor float32 = 0.5
)

var InitialTargetPos = gglm.NewVec3(1, 0.05, 1)

// Key is the lower case character of the key. Space is ' '
type Key rune

const (
	Key_U     Key = 'u'
	Key_J     Key = 'j'
	Key_K     Key = 'k'
	Key_I     Key = 'i'
	Key_L     Key = 'l'
	Key_O     Key = 'o'
	Key_B     Key = 'b'
	Key_Space Key = ' '
)

type State struct {
	// Joint angles in degrees. Joint 0 turns the base around Y, joints 1 and 2 bend around Z
	JointDeg [3]float32

	// Per joint rotation direction: -1, 0 or 1
	JointDir [3]int

	Catching bool
	CanCatch bool

	// Falling enables gravity and bouncing on the target while it is not held
	Falling  bool
	Velocity float32

	// TargetPos is the centre of the target's bottom face
	TargetPos gglm.Vec3

	// EndEffector is updated by Step
	EndEffector gglm.Vec3
}

// The same key starts the joint turning and stops it. The opposite key flips
// the direction when turning, and stops it when already turning that way
func toggleForward(dir int) int {
	return (dir + 1) % 2
}

func toggleBackward(dir int) int {
	return -(dir + 1) % 2
}

// HandleKey applies one key press. Repeats should not be passed in
func (s *State) HandleKey(k Key) {

	switch k {
	case Key_U:
		s.JointDir[0] = toggleForward(s.JointDir[0])
	case Key_J:
		s.JointDir[0] = toggleBackward(s.JointDir[0])
	case Key_K:
		s.JointDir[1] = toggleForward(s.JointDir[1])
	case Key_I:
		s.JointDir[1] = toggleBackward(s.JointDir[1])
	case Key_L:
		s.JointDir[2] = toggleForward(s.JointDir[2])
	case Key_O:
		s.JointDir[2] = toggleBackward(s.JointDir[2])
	case Key_Space:
		s.Catching = !s.Catching
	case Key_B:
		s.Falling = !s.Falling
	}
}

// TargetCentre is the point the end effector has to reach
func (s *State) TargetCentre() gglm.Vec3 {
	return gglm.NewVec3(s.TargetPos.X(), s.TargetPos.Y()+TargetHeight/2, s.TargetPos.Z())
}

// Holding is true while the target moves with the end effector
func (s *State) Holding() bool {
	return s.CanCatch && s.Catching
}

// Step advances the arm by one tick
func (s *State) Step() {

	for i := 0; i < len(s.JointDeg); i++ {
		s.JointDeg[i] += RotateSpeed * float32(s.JointDir[i])
	}

	s.EndEffector = EndEffector(s.JointDeg)

	centre := s.TargetCentre()
	dx := s.EndEffector.X() - centre.X()
	dy := s.EndEffector.Y() - centre.Y()
	dz := s.EndEffector.Z() - centre.Z()
	s.CanCatch = dx*dx+dy*dy+dz*dz < CatchTolerance

	if s.Holding() {
		s.TargetPos = gglm.NewVec3(s.EndEffector.X(), s.EndEffector.Y()-TargetHeight/2, s.EndEffector.Z())
		return
	}

	if !s.Falling {
		return
	}

	y := s.TargetPos.Y() + s.Velocity
	if y < 0 {
		y = 0
		s.Velocity = -s.Velocity * BounceFactor
	}
	s.TargetPos.Data[1] = y
	s.Velocity += Gravity
}

// EndEffectorMatrix walks the joint chain from the base to the catch point
func EndEffectorMatrix(jointDeg [3]float32) gglm.Mat4 {
	return xform.Mul(
		xform.RotationY(jointDeg[0]*gglm.Deg2Rad),
		xform.Translation(0, BaseHeight, 0),
		xform.Translation(0, ArmLen, 0),
		xform.Translation(0, JointRadius, 0),

		xform.RotationZ(jointDeg[1]*gglm.Deg2Rad),
		xform.Translation(0, JointRadius, 0),
		xform.Translation(0, ArmLen, 0),
		xform.Translation(0, JointRadius, 0),

		xform.RotationZ(jointDeg[2]*gglm.Deg2Rad),
		xform.Translation(0, JointRadius, 0),
		xform.Translation(0, ArmLen, 0),
		xform.Translation(0, CatchOffset, 0),
	)
}

func EndEffector(jointDeg [3]float32) gglm.Vec3 {
	m := EndEffectorMatrix(jointDeg)
	origin := gglm.NewVec3(0, 0, 0)
	p, _ := xform.TransformPoint(&m, &origin)
	return p
}

func NewState() *State {
	s := &State{
		TargetPos: InitialTargetPos,
	}
	s.EndEffector = EndEffector(s.JointDeg)
	return s
}
