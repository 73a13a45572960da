package camera

import (
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/terradrive/pkg/math"
)

type plane struct {
	height float32
	half   float32
}

func (p plane) Contains(v math.Vec3) bool {
	return v.X > -p.half && v.X < p.half && v.Z > -p.half && v.Z < p.half
}

func (p plane) Sample(math.Vec3) (float32, math.Vec3, error) {
	return p.height, math.UnitY, nil
}

func TestChaseSitsBehindTarget(t *testing.T) {
	c := NewChase()
	c.Update(math.Vec3{X: 10, Z: 20}, 0, nil)

	// Facing -Z, so behind is +Z.
	assert.True(t, c.Position().ApproxEqual(math.Vec3{X: 10, Y: 40, Z: 170}, 1e-4), "got %v", c.Position())

	view := c.ViewMatrix()
	eye := view.TransformPoint(c.Position())
	assert.True(t, eye.ApproxEqual(math.Vec3{}, 1e-3), "got %v", eye)
}

func TestChaseSmoothsHeading(t *testing.T) {
	c := NewChase()
	c.Update(math.Vec3{}, 1, nil)
	assert.InDelta(t, 0.05, c.Facing(), 1e-6)

	for range 500 {
		c.Update(math.Vec3{}, 1, nil)
	}
	assert.InDelta(t, 1, c.Facing(), 1e-3)

	c.Snap(-2)
	assert.Equal(t, float32(-2), c.Facing())
}

func TestChaseTurnsShortWay(t *testing.T) {
	c := NewChase()
	c.Snap(3)
	c.Update(math.Vec3{}, -3, nil)
	// -3 is 0.28 rad past +pi, so the camera keeps turning positive.
	assert.Greater(t, c.Facing(), float32(3))
}

func TestChaseStaysAboveGround(t *testing.T) {
	c := NewChase()
	ground := plane{height: 500, half: 1000}

	c.Update(math.Vec3{Y: 0}, 0, ground)
	assert.Equal(t, float32(540), c.Position().Y)

	// Off the terrain the camera is not clamped.
	c.Update(math.Vec3{X: 5000}, 0, ground)
	assert.Equal(t, float32(40), c.Position().Y)
}

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{0, 0},
		{1, 1},
		{gomath.Pi + 0.5, -gomath.Pi + 0.5},
		{-gomath.Pi - 0.5, gomath.Pi - 0.5},
		{7, 7 - 2*gomath.Pi},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, wrapAngle(tt.in), 1e-5, "wrapAngle(%v)", tt.in)
	}
}

func TestOverview(t *testing.T) {
	o := NewOverview(math.Vec3{X: -300, Y: -640, Z: -100}, math.Vec3{X: 300, Y: 0, Z: 100})
	assert.Equal(t, math.Vec3{Y: -320}, o.Center)
	assert.Equal(t, float32(600), o.Distance)

	p := o.Position()
	assert.InDelta(t, 600, p.Distance(o.Center), 1e-3)
	assert.Greater(t, p.Y, o.Center.Y)

	o.Update()
	assert.InDelta(t, 0.002, o.Yaw, 1e-7)
}
