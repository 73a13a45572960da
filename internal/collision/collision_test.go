package collision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/terradrive/internal/kinematics"
	"github.com/Faultbox/terradrive/pkg/math"
)

func TestSphereIntersects(t *testing.T) {
	tests := []struct {
		name string
		a, b Sphere
		want bool
	}{
		{"apart", Sphere{math.Vec3{}, 1}, Sphere{math.Vec3{X: 3}, 1}, false},
		{"touching", Sphere{math.Vec3{}, 1}, Sphere{math.Vec3{X: 2}, 1}, true},
		{"overlapping", Sphere{math.Vec3{}, 2}, Sphere{math.Vec3{Y: 1, Z: 1}, 1}, true},
		{"contained", Sphere{math.Vec3{}, 10}, Sphere{math.Vec3{X: 1}, 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Intersects(tt.b))
			assert.Equal(t, tt.want, tt.b.Intersects(tt.a))
		})
	}
}

func TestEnclose(t *testing.T) {
	s := Enclose([]math.Vec3{
		{X: -2, Y: 0, Z: -1},
		{X: 2, Y: 2, Z: 1},
		{X: 0, Y: 1, Z: 0},
	})
	assert.Equal(t, math.Vec3{Y: 1}, s.Center)
	assert.InDelta(t, 2.449, s.Radius, 1e-3)

	assert.Equal(t, Sphere{}, Enclose(nil))
}

func TestBodyWorldPosition(t *testing.T) {
	state := kinematics.NewState(math.Vec3{X: 7}, 0)
	mobile := NewMobile(&state, nil)
	assert.Equal(t, math.Vec3{X: 7}, mobile.WorldPosition())

	static := NewStatic(math.Vec3{Z: 3}, nil)
	assert.Equal(t, math.Vec3{Z: 3}, static.WorldPosition())
	assert.Equal(t, "static", static.Kind.String())
}

func TestResolveDisjointNeverRollsBack(t *testing.T) {
	parts := []Sphere{{Center: math.Vec3{Y: 5}, Radius: 4}, {Center: math.Vec3{Z: 6}, Radius: 3}}

	a := kinematics.NewState(math.Vec3{X: -50}, 0)
	b := kinematics.NewState(math.Vec3{X: 50}, 0)
	a.Position = math.Vec3{X: -40}
	b.Position = math.Vec3{X: 40}

	bodies := []Body{
		NewMobile(&a, parts),
		NewMobile(&b, parts),
		NewStatic(math.Vec3{Z: 100}, parts),
	}

	called := false
	hits := Resolve(bodies, func(Hit) { called = true })
	assert.Empty(t, hits)
	assert.False(t, called)
	assert.Equal(t, math.Vec3{X: -40}, a.Position)
	assert.Equal(t, math.Vec3{X: 40}, b.Position)
}

func TestResolveRollsBackToPreviousPosition(t *testing.T) {
	parts := []Sphere{{Radius: 5}}

	a := kinematics.NewState(math.Vec3{X: -20, Z: 1.5}, 0)
	b := kinematics.NewState(math.Vec3{X: 20, Z: -2.25}, 0)
	prevA, prevB := a.PreviousPosition, b.PreviousPosition

	// Inject an overlap.
	a.Position = math.Vec3{X: -2}
	b.Position = math.Vec3{X: 2}

	bodies := []Body{NewMobile(&a, parts), NewMobile(&b, parts)}

	var got []Hit
	hits := Resolve(bodies, func(h Hit) { got = append(got, h) })

	// a rolls back first, after which b is clear.
	require.Len(t, hits, 1)
	assert.Equal(t, Hit{Body: 0, Other: 1}, hits[0])
	assert.Equal(t, hits, got)
	assert.Equal(t, prevA, a.Position)
	assert.Equal(t, math.Vec3{X: 2}, b.Position)
	assert.NotEqual(t, prevB, b.Position)
}

func TestResolveStaticPropsStayPut(t *testing.T) {
	parts := []Sphere{{Radius: 5}}

	v := kinematics.NewState(math.Vec3{X: 30}, 0)
	v.Position = math.Vec3{X: 4}

	bodies := []Body{
		NewStatic(math.Vec3{}, parts),
		NewMobile(&v, parts),
	}

	hits := Resolve(bodies, nil)
	require.Len(t, hits, 1)
	assert.Equal(t, Hit{Body: 1, Other: 0}, hits[0])
	assert.Equal(t, math.Vec3{X: 30}, v.Position)
	assert.Equal(t, math.Vec3{}, bodies[0].Position)
}
