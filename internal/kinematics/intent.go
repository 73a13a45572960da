package kinematics

// Intent is the movement request for one step.
type Intent struct {
	// Turn is in [-1, 1]; positive turns left.
	Turn float32
	// Throttle is in [-1, 1]; positive accelerates forward.
	Throttle float32
	// Brake starts braking toward a standstill.
	Brake bool
}

// Controls is the digital input state that drives a vehicle.
type Controls struct {
	Left     bool
	Right    bool
	Forward  bool
	Backward bool
	Brake    bool
}

// Intent converts held controls into a movement request. Opposing keys cancel.
func (c Controls) Intent() Intent {
	var in Intent
	if c.Left {
		in.Turn++
	}
	if c.Right {
		in.Turn--
	}
	if c.Forward {
		in.Throttle++
	}
	if c.Backward {
		in.Throttle--
	}
	in.Brake = c.Brake
	return in
}
