// Package kinematics moves vehicles across a heightfield: it integrates
// throttle and steering input, keeps the vehicle on the ground and banked to
// the surface normal, and accumulates wheel roll.
package kinematics

// Params are the per-vehicle tuning constants.
type Params struct {
	// MaxSpeed converts the throttle speed into world units per step.
	MaxSpeed float32 `yaml:"max_speed"`
	// WheelRadius converts distance travelled into wheel roll.
	WheelRadius float32 `yaml:"wheel_radius"`
	// TurnRate is the heading change per step at full steering input.
	TurnRate float32 `yaml:"turn_rate"`
	// Acceleration is the throttle speed change per step.
	Acceleration float32 `yaml:"acceleration"`
	// TopSpeed bounds the magnitude of the throttle speed.
	TopSpeed float32 `yaml:"top_speed"`
	// InvertSteerInReverse mirrors steering while backing up, like a tank.
	InvertSteerInReverse bool `yaml:"invert_steer_in_reverse"`
}

// Default tuning.
const (
	DefaultMaxSpeed     = 5.0
	DefaultWheelRadius  = 18.0
	DefaultTurnRate     = 0.025
	DefaultAcceleration = 0.01
	DefaultTopSpeed     = 1.5
)

// DefaultParams returns the standard vehicle tuning.
func DefaultParams() Params {
	return Params{
		MaxSpeed:             DefaultMaxSpeed,
		WheelRadius:          DefaultWheelRadius,
		TurnRate:             DefaultTurnRate,
		Acceleration:         DefaultAcceleration,
		TopSpeed:             DefaultTopSpeed,
		InvertSteerInReverse: true,
	}
}
