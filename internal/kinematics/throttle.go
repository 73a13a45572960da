package kinematics

// Throttle integrates throttle input into a bounded forward speed. Each
// vehicle owns its own Throttle.
type Throttle struct {
	// Speed is in [-TopSpeed, TopSpeed]; positive is forward.
	Speed float32
	// Braking is set by a brake request and cleared once stopped.
	Braking bool
}

// Update advances the speed by one step.
func (t *Throttle) Update(in Intent, p Params) {
	accel := p.Acceleration

	if t.Braking {
		t.Speed = approachZero(t.Speed, accel)
		if abs(t.Speed) < accel {
			t.Speed = 0
			t.Braking = false
		}
	}

	// Coast down when nothing is pushing.
	if !t.Braking && in.Throttle == 0 {
		t.Speed = approachZero(t.Speed, accel/2)
		if abs(t.Speed) < accel {
			t.Speed = 0
		}
	}

	t.Speed += in.Throttle * accel
	if in.Brake {
		t.Braking = true
	}

	if t.Speed > p.TopSpeed {
		t.Speed = p.TopSpeed
	} else if t.Speed < -p.TopSpeed {
		t.Speed = -p.TopSpeed
	}
}

// approachZero moves v toward zero by step without crossing it.
func approachZero(v, step float32) float32 {
	switch {
	case v > step:
		return v - step
	case v < -step:
		return v + step
	default:
		return 0
	}
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
