package kinematics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/terradrive/pkg/math"
)

func TestBindWheels(t *testing.T) {
	bones := []string{"body", "wheel_fl", "turret", "wheel_fr"}
	rest := []math.Mat4{
		math.Identity(),
		math.Translate(math.Vec3{X: -10, Y: 5}),
		math.Translate(math.Vec3{Y: 20}),
		math.Translate(math.Vec3{X: 10, Y: 5}),
	}

	rig, err := BindWheels(bones, rest, []string{"wheel_fl", "wheel_fr"})
	require.NoError(t, err)
	assert.Equal(t, 2, rig.WheelCount())

	out := make([]math.Mat4, len(bones))
	rig.Transforms(0, out)
	assert.Equal(t, rest, out)

	rig.Transforms(1.5, out)
	assert.Equal(t, rest[0], out[0])
	assert.Equal(t, rest[2], out[2])
	assert.Equal(t, rest[1].Mul(math.RotateX(1.5)), out[1])
	assert.Equal(t, rest[3].Mul(math.RotateX(1.5)), out[3])

	// Wheels spin in place: the axle center stays put.
	center := out[1].TransformPoint(math.Vec3{})
	assert.True(t, center.ApproxEqual(math.Vec3{X: -10, Y: 5}, 1e-5), "got %v", center)
}

func TestBindWheelsUnknownBone(t *testing.T) {
	_, err := BindWheels([]string{"body"}, []math.Mat4{math.Identity()}, []string{"wheel_rr"})
	assert.ErrorIs(t, err, ErrUnknownBone)
}

func TestBindWheelsMismatchedRest(t *testing.T) {
	_, err := BindWheels([]string{"body", "wheel"}, []math.Mat4{math.Identity()}, nil)
	assert.Error(t, err)
}
