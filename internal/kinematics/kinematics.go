package kinematics

import (
	"github.com/Faultbox/terradrive/pkg/math"
)

// Ground is the terrain a vehicle drives on. Sample is only called for
// points Contains accepts.
type Ground interface {
	Contains(p math.Vec3) bool
	Sample(p math.Vec3) (height float32, normal math.Vec3, err error)
}

// State is the kinematic state of one vehicle.
type State struct {
	Position         math.Vec3
	PreviousPosition math.Vec3
	// Frame is the terrain-aligned orientation.
	Frame math.Frame
	// Facing is the steered heading in radians, independent of terrain tilt.
	Facing    float32
	WheelRoll float32
	Throttle  Throttle
}

// NewState places a vehicle at position facing the given heading.
func NewState(position math.Vec3, facing float32) State {
	return State{
		Position:         position,
		PreviousPosition: position,
		Frame:            math.YawFrame(facing),
		Facing:           facing,
	}
}

// Matrix returns the world transform of the vehicle body.
func (s *State) Matrix() math.Mat4 {
	return s.Frame.Matrix(s.Position)
}

// Rollback restores the position committed before the last step.
func (s *State) Rollback() {
	s.Position = s.PreviousPosition
}

// Step advances the vehicle by one simulation step. It reports whether the
// vehicle moved; a move that would leave the ground is rejected and leaves
// position, frame and wheel roll untouched. Heading and throttle still follow
// the input so the driver can steer back.
func Step(s *State, in Intent, p Params, ground Ground) (bool, error) {
	s.Throttle.Update(in, p)

	turn := in.Turn
	if p.InvertSteerInReverse && s.Throttle.Speed < 0 {
		turn = -turn
	}
	s.Facing += turn * p.TurnRate

	yaw := math.YawFrame(s.Facing)
	velocity := yaw.Forward.Scale(s.Throttle.Speed * p.MaxSpeed)
	candidate := s.Position.Add(velocity)

	if !ground.Contains(candidate) {
		return false, nil
	}

	height, normal, err := ground.Sample(candidate)
	if err != nil {
		return false, err
	}
	candidate.Y = height
	s.Frame = yaw.AlignUp(normal)

	if p.WheelRadius > 0 {
		theta := s.Position.Distance(candidate) / p.WheelRadius
		if s.Throttle.Speed < 0 {
			theta = -theta
		}
		s.WheelRoll += theta
	}

	s.PreviousPosition = s.Position
	s.Position = candidate
	return true, nil
}
