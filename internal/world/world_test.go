package world

import (
	gomath "math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/terradrive/internal/collision"
	"github.com/Faultbox/terradrive/internal/kinematics"
	"github.com/Faultbox/terradrive/internal/terrain"
	"github.com/Faultbox/terradrive/pkg/heightmap"
	"github.com/Faultbox/terradrive/pkg/math"
)

func flatWorld(t *testing.T, opts ...Option) *World {
	t.Helper()
	_, grid, err := terrain.Build(heightmap.Flat(20, 20, 0.5), terrain.DefaultOptions())
	require.NoError(t, err)
	return New(terrain.NewEngine(grid), opts...)
}

var hull = []collision.Sphere{{Center: math.Vec3{Y: 10}, Radius: 10}}

func TestAddVehicleSettlesOnGround(t *testing.T) {
	w := flatWorld(t)

	v, err := w.AddVehicle("tank", math.Vec3{X: 10, Y: 999, Z: -20}, 0, kinematics.DefaultParams(), hull)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, v.ID)
	assert.True(t, v.Enabled)
	assert.Equal(t, math.Vec3{X: 10, Y: -320, Z: -20}, v.State.Position)
	assert.Equal(t, v.State.Position, v.State.PreviousPosition)
	assert.Equal(t, math.UnitY, v.State.Frame.Up)

	got, ok := w.Vehicle(v.ID)
	require.True(t, ok)
	assert.Same(t, v, got)

	_, ok = w.Vehicle(uuid.New())
	assert.False(t, ok)
}

func TestAddOffTerrain(t *testing.T) {
	w := flatWorld(t)

	_, err := w.AddVehicle("lost", math.Vec3{X: 5000}, 0, kinematics.DefaultParams(), hull)
	assert.ErrorIs(t, err, ErrOffTerrain)

	_, err = w.AddProp("rock", math.Vec3{Z: -5000}, hull)
	assert.ErrorIs(t, err, ErrOffTerrain)
	assert.Empty(t, w.Vehicles())
	assert.Empty(t, w.Props())
}

func TestStepDrivesVehicles(t *testing.T) {
	w := flatWorld(t)
	p := kinematics.DefaultParams()

	a, err := w.AddVehicle("a", math.Vec3{X: -100}, 0, p, hull)
	require.NoError(t, err)
	b, err := w.AddVehicle("b", math.Vec3{X: 100}, 0, p, hull)
	require.NoError(t, err)
	b.Enabled = false
	startB := b.State

	for range 20 {
		events := w.Step(map[uuid.UUID]kinematics.Intent{
			a.ID: {Throttle: 1},
			b.ID: {Throttle: 1},
		})
		assert.Empty(t, events)
	}

	assert.Less(t, a.State.Position.Z, float32(0))
	assert.Greater(t, a.State.Throttle.Speed, float32(0))
	assert.Equal(t, startB, b.State)
}

func TestStepHeadOnCollision(t *testing.T) {
	var feedback []Event
	w := flatWorld(t, WithFeedback(func(ev Event) { feedback = append(feedback, ev) }))
	p := kinematics.DefaultParams()

	// a drives toward -Z, b toward +Z.
	a, err := w.AddVehicle("a", math.Vec3{Z: 60}, 0, p, hull)
	require.NoError(t, err)
	b, err := w.AddVehicle("b", math.Vec3{Z: -60}, gomath.Pi, p, hull)
	require.NoError(t, err)

	intents := map[uuid.UUID]kinematics.Intent{
		a.ID: {Throttle: 1},
		b.ID: {Throttle: 1},
	}

	var events []Event
	for range 300 {
		if events = w.Step(intents); len(events) > 0 {
			break
		}
	}
	require.NotEmpty(t, events)
	assert.Equal(t, events, feedback)

	first := events[0]
	assert.Equal(t, a.ID, first.Vehicle)
	assert.Equal(t, b.ID, first.Other)
	assert.Equal(t, a.State.PreviousPosition, a.State.Position)

	// Every rolled back vehicle sits at its previous position.
	for _, ev := range events {
		v, ok := w.Vehicle(ev.Vehicle)
		require.True(t, ok)
		assert.Equal(t, v.State.PreviousPosition, v.State.Position)
	}
}

func TestStepPropBlocks(t *testing.T) {
	w := flatWorld(t)

	rock, err := w.AddProp("rock", math.Vec3{Z: -40}, hull)
	require.NoError(t, err)
	v, err := w.AddVehicle("tank", math.Vec3{}, 0, kinematics.DefaultParams(), hull)
	require.NoError(t, err)

	hit := false
	for range 300 {
		for _, ev := range w.Step(map[uuid.UUID]kinematics.Intent{v.ID: {Throttle: 1}}) {
			assert.Equal(t, v.ID, ev.Vehicle)
			assert.Equal(t, rock.ID, ev.Other)
			hit = true
		}
	}
	require.True(t, hit)

	// Never ends a step inside the rock.
	assert.Greater(t, v.State.Position.Z, float32(-40+20))
}
