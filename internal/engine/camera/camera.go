// Package camera frames the scene: a chase camera that trails a vehicle and
// an overview camera that circles the whole terrain.
package camera

import (
	gomath "math"

	"github.com/Faultbox/terradrive/pkg/math"
)

// Ground keeps the chase camera above the terrain.
type Ground interface {
	Contains(p math.Vec3) bool
	Sample(p math.Vec3) (float32, math.Vec3, error)
}

// Chase follows a target from behind, turning with it after a delay.
type Chase struct {
	// Offset is the camera position relative to the target, before rotation.
	Offset math.Vec3
	// TargetOffset is the look-at point relative to the target.
	TargetOffset math.Vec3
	// FollowRate is the fraction of the heading difference caught up per step.
	FollowRate float32

	facing   float32
	position math.Vec3
	lookAt   math.Vec3
}

// NewChase creates a chase camera with the standard framing.
func NewChase() *Chase {
	return &Chase{
		Offset:       math.Vec3{Y: 40, Z: 150},
		TargetOffset: math.Vec3{Y: 30},
		FollowRate:   0.05,
	}
}

// Snap turns the camera straight to facing, skipping the smoothing.
func (c *Chase) Snap(facing float32) {
	c.facing = facing
}

// Update moves the camera behind a target at position with the given
// heading. When the camera is over ground it stays at least Offset.Y above it.
func (c *Chase) Update(position math.Vec3, facing float32, ground Ground) {
	c.facing += wrapAngle(facing-c.facing) * c.FollowRate

	rot := math.RotateY(c.facing)
	c.position = position.Add(rot.TransformDirection(c.Offset))
	c.lookAt = position.Add(rot.TransformDirection(c.TargetOffset))

	if ground != nil && ground.Contains(c.position) {
		if h, _, err := ground.Sample(c.position); err == nil {
			if floor := h + c.Offset.Y; c.position.Y < floor {
				c.position.Y = floor
			}
		}
	}
}

// Facing returns the smoothed heading.
func (c *Chase) Facing() float32 { return c.facing }

// Position returns the camera position from the last Update.
func (c *Chase) Position() math.Vec3 { return c.position }

// ViewMatrix returns the view matrix from the last Update.
func (c *Chase) ViewMatrix() math.Mat4 {
	return math.LookAt(c.position, c.lookAt, math.UnitY)
}

// wrapAngle maps a to (-pi, pi] so the camera turns the short way round.
func wrapAngle(a float32) float32 {
	const twoPi = 2 * gomath.Pi
	for a > gomath.Pi {
		a -= twoPi
	}
	for a <= -gomath.Pi {
		a += twoPi
	}
	return a
}

// Overview circles the center of a bounding box.
type Overview struct {
	Center   math.Vec3
	Distance float32
	Pitch    float32 // radians above the horizon
	Yaw      float32 // radians around Y
	Speed    float32 // yaw change per step
}

// NewOverview frames a box from min to max.
func NewOverview(min, max math.Vec3) *Overview {
	size := max.Sub(min)
	dist := size.X
	if size.Z > dist {
		dist = size.Z
	}
	if dist < 200 {
		dist = 200
	}
	return &Overview{
		Center:   min.Add(max).Scale(0.5),
		Distance: dist,
		Pitch:    0.6,
		Speed:    0.002,
	}
}

// Update advances the orbit by one step.
func (o *Overview) Update() {
	o.Yaw += o.Speed
}

// Position returns the camera position in world space.
func (o *Overview) Position() math.Vec3 {
	cp := float32(gomath.Cos(float64(o.Pitch)))
	return o.Center.Add(math.Vec3{
		X: o.Distance * cp * float32(gomath.Sin(float64(o.Yaw))),
		Y: o.Distance * float32(gomath.Sin(float64(o.Pitch))),
		Z: o.Distance * cp * float32(gomath.Cos(float64(o.Yaw))),
	})
}

// ViewMatrix returns the view matrix for this camera.
func (o *Overview) ViewMatrix() math.Mat4 {
	return math.LookAt(o.Position(), o.Center, math.UnitY)
}
