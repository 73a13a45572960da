package kinematics

import (
	"errors"
	"fmt"

	"github.com/Faultbox/terradrive/pkg/math"
)

// ErrUnknownBone reports a wheel name missing from the model skeleton.
var ErrUnknownBone = errors.New("unknown bone")

// Rig animates the wheel bones of a vehicle model. Bone names are resolved
// once by BindWheels; per-frame updates are plain index lookups.
type Rig struct {
	wheels  []int
	initial []math.Mat4
	rest    []math.Mat4
}

// BindWheels resolves wheel bone names against the model's bone names and
// rest transforms.
func BindWheels(boneNames []string, rest []math.Mat4, wheelNames []string) (*Rig, error) {
	if len(boneNames) != len(rest) {
		return nil, fmt.Errorf("bind wheels: %d bone names for %d transforms", len(boneNames), len(rest))
	}

	index := make(map[string]int, len(boneNames))
	for i, name := range boneNames {
		index[name] = i
	}

	r := &Rig{
		wheels:  make([]int, len(wheelNames)),
		initial: make([]math.Mat4, len(wheelNames)),
		rest:    append([]math.Mat4(nil), rest...),
	}
	for i, name := range wheelNames {
		idx, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownBone, name)
		}
		r.wheels[i] = idx
		r.initial[i] = rest[idx]
	}
	return r, nil
}

// WheelCount returns the number of bound wheels.
func (r *Rig) WheelCount() int {
	return len(r.wheels)
}

// Transforms writes the bone transforms for the given wheel roll into dst,
// which must hold one matrix per bone. Non-wheel bones get their rest pose.
func (r *Rig) Transforms(roll float32, dst []math.Mat4) {
	copy(dst, r.rest)
	// Spin about the wheel's own axle, then place it.
	spin := math.RotateX(roll)
	for i, idx := range r.wheels {
		dst[idx] = r.initial[i].Mul(spin)
	}
}
