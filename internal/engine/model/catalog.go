package model

import (
	"github.com/Faultbox/terradrive/pkg/math"
)

// TankWheels names the wheel bones of Tank.
var TankWheels = []string{"l_front_wheel", "r_front_wheel", "l_back_wheel", "r_back_wheel"}

// Tank returns a four-wheeled vehicle with its wheels' axles at height
// wheelRadius, so the wheels rest on the ground.
func Tank(wheelRadius float32) *Model {
	hullColor := math.Vec3{X: 0.35, Y: 0.42, Z: 0.25}
	wheelColor := math.Vec3{X: 0.12, Y: 0.12, Z: 0.12}

	wheel := func(name string, x, z float32) Part {
		return Part{
			Name:  name,
			Min:   math.Vec3{X: -6, Y: -wheelRadius, Z: -wheelRadius},
			Max:   math.Vec3{X: 6, Y: wheelRadius, Z: wheelRadius},
			Rest:  math.Translate(math.Vec3{X: x, Y: wheelRadius, Z: z}),
			Color: wheelColor,
		}
	}

	return &Model{
		Name: "tank",
		Parts: []Part{
			{
				Name:  "hull",
				Min:   math.Vec3{X: -30, Y: 0, Z: -55},
				Max:   math.Vec3{X: 30, Y: 28, Z: 55},
				Rest:  math.Translate(math.Vec3{Y: wheelRadius}),
				Color: hullColor,
			},
			{
				Name:  "turret",
				Min:   math.Vec3{X: -18, Y: 0, Z: -20},
				Max:   math.Vec3{X: 18, Y: 16, Z: 20},
				Rest:  math.Translate(math.Vec3{Y: wheelRadius + 28, Z: 5}),
				Color: hullColor.Scale(0.9),
			},
			{
				Name:  "canon",
				Min:   math.Vec3{X: -3, Y: -3, Z: -60},
				Max:   math.Vec3{X: 3, Y: 3, Z: 0},
				Rest:  math.Translate(math.Vec3{Y: wheelRadius + 36, Z: -15}),
				Color: hullColor.Scale(0.7),
			},
			wheel(TankWheels[0], -36, -35),
			wheel(TankWheels[1], 36, -35),
			wheel(TankWheels[2], -36, 35),
			wheel(TankWheels[3], 36, 35),
		},
	}
}

// Monolith returns a large static landmark.
func Monolith() *Model {
	return &Model{
		Name: "monolith",
		Parts: []Part{
			{
				Name:  "base",
				Min:   math.Vec3{X: -60, Y: -20, Z: -60},
				Max:   math.Vec3{X: 60, Y: 40, Z: 60},
				Rest:  math.Identity(),
				Color: math.Vec3{X: 0.45, Y: 0.4, Z: 0.38},
			},
			{
				Name:  "pillar",
				Min:   math.Vec3{X: -25, Y: 0, Z: -25},
				Max:   math.Vec3{X: 25, Y: 220, Z: 25},
				Rest:  math.Translate(math.Vec3{Y: 40}),
				Color: math.Vec3{X: 0.3, Y: 0.28, Z: 0.3},
			},
		},
	}
}
