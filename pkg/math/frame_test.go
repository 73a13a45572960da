package math

import (
	"math"
	"testing"
)

func checkOrthonormal(t *testing.T, f Frame) {
	t.Helper()
	const eps = 1e-5
	for name, v := range map[string]Vec3{"right": f.Right, "up": f.Up, "forward": f.Forward} {
		if l := v.Length(); abs(l-1) > eps {
			t.Errorf("%s length = %f, want 1", name, l)
		}
	}
	if d := f.Right.Dot(f.Up); abs(d) > eps {
		t.Errorf("right.up = %f, want 0", d)
	}
	if d := f.Up.Dot(f.Forward); abs(d) > eps {
		t.Errorf("up.forward = %f, want 0", d)
	}
	if d := f.Right.Dot(f.Forward); abs(d) > eps {
		t.Errorf("right.forward = %f, want 0", d)
	}
}

func TestYawFrameMatchesRotateY(t *testing.T) {
	for _, angle := range []float32{0, 0.4, float32(math.Pi / 2), -2.1, 5} {
		f := YawFrame(angle)
		want := RotateY(angle).TransformDirection(Vec3{0, 0, -1})
		if !f.Forward.ApproxEqual(want, 1e-5) {
			t.Errorf("YawFrame(%f).Forward = %v, want %v", angle, f.Forward, want)
		}
		checkOrthonormal(t, f)
	}
}

func TestAlignUpFlatKeepsYaw(t *testing.T) {
	f := YawFrame(1.2)
	aligned := f.AlignUp(UnitY)
	if !aligned.Forward.ApproxEqual(f.Forward, 1e-6) || !aligned.Right.ApproxEqual(f.Right, 1e-6) {
		t.Errorf("AlignUp(+Y) changed a yaw frame: %+v -> %+v", f, aligned)
	}
}

func TestAlignUpSlope(t *testing.T) {
	normal := Vec3{0.3, 0.9, -0.2}.Normalize()
	aligned := YawFrame(0.7).AlignUp(normal)

	if aligned.Up != normal {
		t.Errorf("up = %v, want %v", aligned.Up, normal)
	}
	checkOrthonormal(t, aligned)
}

func TestFrameMatrix(t *testing.T) {
	f := YawFrame(0.5)
	pos := Vec3{10, -3, 7}
	m := f.Matrix(pos)

	if got := m.TransformPoint(Vec3{}); got != pos {
		t.Errorf("origin maps to %v, want %v", got, pos)
	}
	if got := m.TransformDirection(Vec3{0, 0, -1}); !got.ApproxEqual(f.Forward, 1e-6) {
		t.Errorf("-Z maps to %v, want forward %v", got, f.Forward)
	}
	if got := m.TransformDirection(UnitY); !got.ApproxEqual(f.Up, 1e-6) {
		t.Errorf("+Y maps to %v, want up %v", got, f.Up)
	}
}
