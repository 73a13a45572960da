// Package collision detects overlapping vehicles and props with bounding
// spheres and rolls offending vehicles back to their last position.
package collision

import (
	gomath "math"

	"github.com/Faultbox/terradrive/pkg/math"
)

// Sphere is a bounding sphere.
type Sphere struct {
	Center math.Vec3
	Radius float32
}

// Intersects reports whether the spheres touch or overlap.
func (s Sphere) Intersects(other Sphere) bool {
	r := s.Radius + other.Radius
	return s.Center.DistanceSquared(other.Center) <= r*r
}

// Translate returns the sphere moved by offset.
func (s Sphere) Translate(offset math.Vec3) Sphere {
	return Sphere{Center: s.Center.Add(offset), Radius: s.Radius}
}

// Enclose returns a sphere centered on the bounding box of points that
// contains all of them.
func Enclose(points []math.Vec3) Sphere {
	if len(points) == 0 {
		return Sphere{}
	}

	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		lo = math.Vec3{X: min(lo.X, p.X), Y: min(lo.Y, p.Y), Z: min(lo.Z, p.Z)}
		hi = math.Vec3{X: max(hi.X, p.X), Y: max(hi.Y, p.Y), Z: max(hi.Z, p.Z)}
	}
	center := lo.Add(hi).Scale(0.5)

	var r2 float32
	for _, p := range points {
		r2 = max(r2, center.DistanceSquared(p))
	}
	return Sphere{Center: center, Radius: float32(gomath.Sqrt(float64(r2)))}
}
