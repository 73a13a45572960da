package kinematics

import (
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/terradrive/internal/terrain"
	"github.com/Faultbox/terradrive/pkg/heightmap"
	"github.com/Faultbox/terradrive/pkg/math"
)

// boxGround is a constant plane over |x|,|z| < half.
type boxGround struct {
	half   float32
	height float32
	normal math.Vec3
}

func (g boxGround) Contains(p math.Vec3) bool {
	return p.X > -g.half && p.X < g.half && p.Z > -g.half && p.Z < g.half
}

func (g boxGround) Sample(p math.Vec3) (float32, math.Vec3, error) {
	if !g.Contains(p) {
		return 0, math.Vec3{}, terrain.ErrOutOfBounds
	}
	return g.height, g.normal, nil
}

func flatTerrain(t *testing.T) *terrain.Engine {
	t.Helper()
	_, grid, err := terrain.Build(heightmap.Flat(20, 20, 1), terrain.DefaultOptions())
	require.NoError(t, err)
	return terrain.NewEngine(grid)
}

func TestStepRejectsMoveOffTerrain(t *testing.T) {
	ground := boxGround{half: 2, normal: math.UnitY}
	p := DefaultParams()

	s := NewState(math.Vec3{X: 0.5, Y: 3, Z: -1}, 0.3)
	s.PreviousPosition = math.Vec3{X: 0.25, Y: 3, Z: -0.5}
	s.Frame = math.YawFrame(0.3).AlignUp(math.Vec3{X: 0.6, Y: 0.8})
	s.WheelRoll = 1.25
	s.Throttle.Speed = p.TopSpeed

	before := s
	moved, err := Step(&s, Intent{Turn: 1, Throttle: 1}, p, ground)
	require.NoError(t, err)
	assert.False(t, moved)

	assert.Equal(t, before.Position, s.Position)
	assert.Equal(t, before.PreviousPosition, s.PreviousPosition)
	assert.Equal(t, before.Frame, s.Frame)
	assert.Equal(t, before.WheelRoll, s.WheelRoll)

	// Steering still applies so the driver can turn back.
	assert.InDelta(t, 0.3+p.TurnRate, s.Facing, 1e-6)
}

func TestStepFlatTerrainKeepsUp(t *testing.T) {
	ground := flatTerrain(t)
	p := DefaultParams()

	for _, facing := range []float32{0, 0.7, 2, -1.2, 3.1} {
		s := NewState(math.Vec3{Y: 50}, facing)
		for i := range 60 {
			in := Intent{Throttle: 1}
			if i%3 == 0 {
				in.Turn = 1
			}
			_, err := Step(&s, in, p, ground)
			require.NoError(t, err)

			assert.Equal(t, math.UnitY, s.Frame.Up)
			assert.Equal(t, float32(0), s.Position.Y)
		}
		assert.NotEqual(t, math.Vec3{Y: 50}, s.Position)
	}
}

func TestStepAlignsToSlope(t *testing.T) {
	normal := math.Vec3{X: -1, Y: 1}.Normalize()
	ground := boxGround{half: 1000, height: 12, normal: normal}

	s := NewState(math.Vec3{}, 0)
	moved, err := Step(&s, Intent{Throttle: 1}, DefaultParams(), ground)
	require.NoError(t, err)
	require.True(t, moved)

	assert.Equal(t, float32(12), s.Position.Y)
	assert.Equal(t, normal, s.Frame.Up)

	f := s.Frame
	assert.InDelta(t, 0, f.Right.Dot(f.Up), 1e-6)
	assert.InDelta(t, 0, f.Forward.Dot(f.Up), 1e-6)
	assert.InDelta(t, 0, f.Forward.Dot(f.Right), 1e-6)
	assert.InDelta(t, 1, f.Right.Length(), 1e-6)
	assert.InDelta(t, 1, f.Forward.Length(), 1e-6)
	// Heading is kept: still driving toward -Z.
	assert.Less(t, f.Forward.Z, float32(-0.99))
}

func TestStepCommitsPreviousPosition(t *testing.T) {
	ground := boxGround{half: 1000, normal: math.UnitY}
	p := DefaultParams()

	s := NewState(math.Vec3{X: 4, Z: 9}, 0)
	_, err := Step(&s, Intent{Throttle: 1}, p, ground)
	require.NoError(t, err)

	assert.Equal(t, math.Vec3{X: 4, Z: 9}, s.PreviousPosition)
	assert.InDelta(t, 9-p.Acceleration*p.MaxSpeed, s.Position.Z, 1e-5)

	moved := s.Position
	s.Rollback()
	assert.Equal(t, s.PreviousPosition, s.Position)
	assert.NotEqual(t, moved, s.Position)
}

func TestStepWheelRoll(t *testing.T) {
	ground := boxGround{half: 1000, normal: math.UnitY}
	p := DefaultParams()

	forward := NewState(math.Vec3{}, 0)
	forward.Throttle.Speed = 1
	_, err := Step(&forward, Intent{Throttle: 1}, p, ground)
	require.NoError(t, err)
	dist := forward.Position.Distance(forward.PreviousPosition)
	assert.InDelta(t, dist/p.WheelRadius, forward.WheelRoll, 1e-6)
	assert.Greater(t, forward.WheelRoll, float32(0))

	backward := NewState(math.Vec3{}, 0)
	backward.Throttle.Speed = -1
	_, err = Step(&backward, Intent{Throttle: -1}, p, ground)
	require.NoError(t, err)
	assert.Less(t, backward.WheelRoll, float32(0))
	assert.Greater(t, backward.Position.Z, float32(0))

	// Roll accumulates across steps.
	first := forward.WheelRoll
	_, err = Step(&forward, Intent{Throttle: 1}, p, ground)
	require.NoError(t, err)
	assert.Greater(t, forward.WheelRoll, first)
}

func TestStepReverseSteering(t *testing.T) {
	ground := boxGround{half: 1000, normal: math.UnitY}

	tests := []struct {
		name   string
		invert bool
		speed  float32
		want   float32
	}{
		{"forward", true, 1, 1},
		{"reverse inverted", true, -1, -1},
		{"reverse plain", false, -1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			p.InvertSteerInReverse = tt.invert
			s := NewState(math.Vec3{}, 0)
			s.Throttle.Speed = tt.speed

			_, err := Step(&s, Intent{Turn: 1}, p, ground)
			require.NoError(t, err)
			assert.InDelta(t, tt.want*p.TurnRate, s.Facing, 1e-7)
		})
	}
}

func TestStepYawMatchesFacing(t *testing.T) {
	ground := boxGround{half: 1000, normal: math.UnitY}
	p := DefaultParams()

	// Facing a quarter turn left drives toward -X.
	s := NewState(math.Vec3{}, gomath.Pi/2)
	s.Throttle.Speed = 1
	_, err := Step(&s, Intent{Throttle: 1}, p, ground)
	require.NoError(t, err)
	assert.Less(t, s.Position.X, float32(-5))
	assert.InDelta(t, 0, s.Position.Z, 1e-5)
}

func TestControlsIntent(t *testing.T) {
	tests := []struct {
		name string
		c    Controls
		want Intent
	}{
		{"idle", Controls{}, Intent{}},
		{"left", Controls{Left: true}, Intent{Turn: 1}},
		{"right", Controls{Right: true}, Intent{Turn: -1}},
		{"both turns", Controls{Left: true, Right: true}, Intent{}},
		{"forward", Controls{Forward: true}, Intent{Throttle: 1}},
		{"backward brake", Controls{Backward: true, Brake: true}, Intent{Throttle: -1, Brake: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.c.Intent())
		})
	}
}
