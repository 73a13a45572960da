package kinematics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThrottleAccelerates(t *testing.T) {
	p := DefaultParams()
	var th Throttle

	th.Update(Intent{Throttle: 1}, p)
	assert.InDelta(t, p.Acceleration, th.Speed, 1e-7)

	for range 500 {
		th.Update(Intent{Throttle: 1}, p)
	}
	assert.Equal(t, p.TopSpeed, th.Speed)

	for range 1000 {
		th.Update(Intent{Throttle: -1}, p)
	}
	assert.Equal(t, -p.TopSpeed, th.Speed)
}

func TestThrottleCoasts(t *testing.T) {
	p := DefaultParams()

	th := Throttle{Speed: 1}
	th.Update(Intent{}, p)
	assert.InDelta(t, 1-p.Acceleration/2, th.Speed, 1e-6)

	th = Throttle{Speed: -1}
	th.Update(Intent{}, p)
	assert.InDelta(t, -1+p.Acceleration/2, th.Speed, 1e-6)

	// Snaps to a standstill once slower than one acceleration step.
	th = Throttle{Speed: 0.012}
	th.Update(Intent{}, p)
	assert.Equal(t, float32(0), th.Speed)
}

func TestThrottleBrakes(t *testing.T) {
	p := DefaultParams()

	th := Throttle{Speed: 1}
	th.Update(Intent{Brake: true}, p)
	assert.True(t, th.Braking)

	prev := th.Speed
	th.Update(Intent{}, p)
	assert.InDelta(t, prev-p.Acceleration, th.Speed, 1e-6)

	for range 200 {
		th.Update(Intent{}, p)
	}
	assert.Equal(t, float32(0), th.Speed)
	assert.False(t, th.Braking)
}

func TestThrottleBrakeSnapsToZero(t *testing.T) {
	p := DefaultParams()

	tests := []struct {
		name  string
		speed float32
	}{
		{"forward within two steps", 0.015},
		{"reverse within two steps", -0.015},
		{"under one step", 0.004},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := Throttle{Speed: tt.speed, Braking: true}
			th.Update(Intent{}, p)
			assert.Equal(t, float32(0), th.Speed)
			assert.False(t, th.Braking)
		})
	}
}

func TestThrottleIsPerVehicle(t *testing.T) {
	p := DefaultParams()
	var a, b Throttle

	for range 10 {
		a.Update(Intent{Throttle: 1}, p)
		b.Update(Intent{Throttle: -1}, p)
	}
	assert.Greater(t, a.Speed, float32(0))
	assert.Less(t, b.Speed, float32(0))
}
