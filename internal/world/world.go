// Package world sequences one simulation step: every enabled vehicle moves
// over the terrain, then overlapping vehicles are rolled back.
package world

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/terradrive/internal/collision"
	"github.com/Faultbox/terradrive/internal/kinematics"
	"github.com/Faultbox/terradrive/internal/logger"
	"github.com/Faultbox/terradrive/pkg/math"
)

// ErrOffTerrain reports an entity placed outside the terrain.
var ErrOffTerrain = errors.New("position is off the terrain")

// Vehicle is a driven entity.
type Vehicle struct {
	ID      uuid.UUID
	Name    string
	State   kinematics.State
	Params  kinematics.Params
	Parts   []collision.Sphere
	Rig     *kinematics.Rig
	Enabled bool
}

// Prop is a static obstacle.
type Prop struct {
	ID       uuid.UUID
	Name     string
	Position math.Vec3
	Parts    []collision.Sphere
}

// Event reports a vehicle rolled back after running into something.
type Event struct {
	Vehicle uuid.UUID
	Other   uuid.UUID
}

// Feedback receives collision events, e.g. to play a sound.
type Feedback func(Event)

// World owns the terrain and everything on it.
type World struct {
	ground   kinematics.Ground
	vehicles []*Vehicle
	props    []*Prop
	feedback Feedback
	log      *zap.Logger

	bodies []collision.Body
	owners []uuid.UUID
}

// Option configures a World.
type Option func(*World)

// WithFeedback sets the collision hook.
func WithFeedback(fb Feedback) Option {
	return func(w *World) { w.feedback = fb }
}

// WithLogger replaces the component logger.
func WithLogger(l *zap.Logger) Option {
	return func(w *World) { w.log = l }
}

// New creates an empty world over ground.
func New(ground kinematics.Ground, opts ...Option) *World {
	w := &World{
		ground: ground,
		log:    logger.Named("world"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// AddVehicle places a vehicle on the ground at position, facing the given
// heading. Only X and Z of position are used.
func (w *World) AddVehicle(name string, position math.Vec3, facing float32, params kinematics.Params, parts []collision.Sphere) (*Vehicle, error) {
	height, normal, err := w.settle(position)
	if err != nil {
		return nil, fmt.Errorf("adding vehicle %s: %w", name, err)
	}
	position.Y = height

	v := &Vehicle{
		ID:      uuid.New(),
		Name:    name,
		State:   kinematics.NewState(position, facing),
		Params:  params,
		Parts:   parts,
		Enabled: true,
	}
	v.State.Frame = v.State.Frame.AlignUp(normal)
	w.vehicles = append(w.vehicles, v)

	w.log.Info("vehicle added",
		zap.String("name", name),
		zap.Stringer("id", v.ID),
		logger.Vec3("position", position))
	return v, nil
}

// AddProp places a static obstacle on the ground.
func (w *World) AddProp(name string, position math.Vec3, parts []collision.Sphere) (*Prop, error) {
	height, _, err := w.settle(position)
	if err != nil {
		return nil, fmt.Errorf("adding prop %s: %w", name, err)
	}
	position.Y = height

	p := &Prop{
		ID:       uuid.New(),
		Name:     name,
		Position: position,
		Parts:    parts,
	}
	w.props = append(w.props, p)

	w.log.Info("prop added",
		zap.String("name", name),
		zap.Stringer("id", p.ID),
		logger.Vec3("position", position))
	return p, nil
}

func (w *World) settle(p math.Vec3) (float32, math.Vec3, error) {
	if !w.ground.Contains(p) {
		return 0, math.Vec3{}, fmt.Errorf("%w: (%g, %g)", ErrOffTerrain, p.X, p.Z)
	}
	return w.ground.Sample(p)
}

// Vehicles returns the vehicles in step order.
func (w *World) Vehicles() []*Vehicle {
	return w.vehicles
}

// Props returns the static obstacles.
func (w *World) Props() []*Prop {
	return w.props
}

// Vehicle looks a vehicle up by id.
func (w *World) Vehicle(id uuid.UUID) (*Vehicle, bool) {
	for _, v := range w.vehicles {
		if v.ID == id {
			return v, true
		}
	}
	return nil, false
}

// Step advances the simulation by one frame. Vehicles without an entry in
// intents coast. It returns the collisions resolved during the step.
func (w *World) Step(intents map[uuid.UUID]kinematics.Intent) []Event {
	for _, v := range w.vehicles {
		if !v.Enabled {
			continue
		}
		moved, err := kinematics.Step(&v.State, intents[v.ID], v.Params, w.ground)
		if err != nil {
			// Contains accepted the point, so the ground is inconsistent.
			w.log.Error("vehicle step failed", zap.Stringer("id", v.ID), zap.Error(err))
			continue
		}
		if !moved && v.State.Throttle.Speed != 0 {
			w.log.Debug("move off terrain rejected",
				zap.Stringer("id", v.ID),
				logger.Vec3("position", v.State.Position))
		}
	}

	return w.resolveCollisions()
}

// resolveCollisions runs the collision pass over all vehicles and props.
// Disabled vehicles block like props.
func (w *World) resolveCollisions() []Event {
	w.bodies = w.bodies[:0]
	w.owners = w.owners[:0]
	for _, v := range w.vehicles {
		if v.Enabled {
			w.bodies = append(w.bodies, collision.NewMobile(&v.State, v.Parts))
		} else {
			w.bodies = append(w.bodies, collision.NewStatic(v.State.Position, v.Parts))
		}
		w.owners = append(w.owners, v.ID)
	}
	for _, p := range w.props {
		w.bodies = append(w.bodies, collision.NewStatic(p.Position, p.Parts))
		w.owners = append(w.owners, p.ID)
	}

	hits := collision.Resolve(w.bodies, nil)
	if len(hits) == 0 {
		return nil
	}

	events := make([]Event, 0, len(hits))
	for _, h := range hits {
		ev := Event{Vehicle: w.owners[h.Body], Other: w.owners[h.Other]}
		events = append(events, ev)
		w.log.Debug("collision rollback",
			zap.Stringer("vehicle", ev.Vehicle),
			zap.Stringer("other", ev.Other))
		if w.feedback != nil {
			w.feedback(ev)
		}
	}
	return events
}
