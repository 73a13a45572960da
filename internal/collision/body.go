package collision

import (
	"github.com/Faultbox/terradrive/internal/kinematics"
	"github.com/Faultbox/terradrive/pkg/math"
)

// Kind tags what a body can do.
type Kind uint8

const (
	// Static bodies never move and are never rolled back.
	Static Kind = iota
	// Mobile bodies are driven by a kinematic state.
	Mobile
)

func (k Kind) String() string {
	switch k {
	case Static:
		return "static"
	case Mobile:
		return "mobile"
	default:
		return "unknown"
	}
}

// Body is anything that takes part in collision tests.
type Body struct {
	Kind Kind
	// Spheres are the part bounding spheres relative to the body position.
	Spheres []Sphere
	// Position places a Static body.
	Position math.Vec3
	// State drives a Mobile body.
	State *kinematics.State
}

// NewStatic returns a prop fixed at position.
func NewStatic(position math.Vec3, spheres []Sphere) Body {
	return Body{Kind: Static, Position: position, Spheres: spheres}
}

// NewMobile returns a body following state.
func NewMobile(state *kinematics.State, spheres []Sphere) Body {
	return Body{Kind: Mobile, State: state, Spheres: spheres}
}

// WorldPosition returns where the body currently is.
func (b *Body) WorldPosition() math.Vec3 {
	if b.Kind == Mobile && b.State != nil {
		return b.State.Position
	}
	return b.Position
}

// Overlaps reports whether any part sphere of a touches any part sphere of b.
func Overlaps(a, b *Body) bool {
	pa, pb := a.WorldPosition(), b.WorldPosition()
	for _, sa := range a.Spheres {
		wa := sa.Translate(pa)
		for _, sb := range b.Spheres {
			if wa.Intersects(sb.Translate(pb)) {
				return true
			}
		}
	}
	return false
}
