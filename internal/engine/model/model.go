// Package model describes vehicles and props as rigid box parts. Each part is
// a bone: it has a name, a rest transform and a box, which gives the renderer
// something to draw and the collision pass one bounding sphere per part.
package model

import (
	"github.com/Faultbox/terradrive/internal/collision"
	"github.com/Faultbox/terradrive/pkg/math"
)

// Part is one rigid piece of a model.
type Part struct {
	Name string
	// Min and Max bound the box in part space.
	Min, Max math.Vec3
	// Rest places the part in model space.
	Rest  math.Mat4
	Color math.Vec3
}

// Corners returns the eight box corners in part space.
func (p Part) Corners() [8]math.Vec3 {
	var c [8]math.Vec3
	for i := range c {
		c[i] = math.Vec3{X: p.Min.X, Y: p.Min.Y, Z: p.Min.Z}
		if i&1 != 0 {
			c[i].X = p.Max.X
		}
		if i&2 != 0 {
			c[i].Y = p.Max.Y
		}
		if i&4 != 0 {
			c[i].Z = p.Max.Z
		}
	}
	return c
}

// Model is a named set of parts.
type Model struct {
	Name  string
	Parts []Part
}

// BoneNames returns the part names in part order.
func (m *Model) BoneNames() []string {
	names := make([]string, len(m.Parts))
	for i, p := range m.Parts {
		names[i] = p.Name
	}
	return names
}

// RestTransforms returns the rest transform of every part.
func (m *Model) RestTransforms() []math.Mat4 {
	out := make([]math.Mat4, len(m.Parts))
	for i, p := range m.Parts {
		out[i] = p.Rest
	}
	return out
}

// Spheres returns one model-space bounding sphere per part, at rest.
func (m *Model) Spheres() []collision.Sphere {
	spheres := make([]collision.Sphere, len(m.Parts))
	for i, p := range m.Parts {
		corners := p.Corners()
		pts := make([]math.Vec3, len(corners))
		for j, c := range corners {
			pts[j] = p.Rest.TransformPoint(c)
		}
		spheres[i] = collision.Enclose(pts)
	}
	return spheres
}
