package math

import "math"

// Frame is an orthonormal orientation basis. Forward points along -Z for the
// identity frame, matching the right-handed convention used by Mat4.
type Frame struct {
	Right   Vec3
	Up      Vec3
	Forward Vec3
}

// IdentityFrame returns the unrotated basis.
func IdentityFrame() Frame {
	return Frame{
		Right:   UnitX,
		Up:      UnitY,
		Forward: UnitZ.Negate(),
	}
}

// YawFrame returns the basis rotated by angle radians around the Y axis.
func YawFrame(angle float32) Frame {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))
	return Frame{
		Right:   Vec3{c, 0, -s},
		Up:      UnitY,
		Forward: Vec3{-s, 0, -c},
	}
}

// AlignUp replaces the up axis with up and re-orthogonalizes the basis around
// it, keeping the forward direction as close as possible to the old one.
// up is expected to be unit length.
func (f Frame) AlignUp(up Vec3) Frame {
	right := f.Forward.Cross(up).Normalize()
	forward := up.Cross(right).Normalize()
	return Frame{
		Right:   right,
		Up:      up,
		Forward: forward,
	}
}

// Matrix returns the rotation of the frame followed by a translation to pos.
func (f Frame) Matrix(pos Vec3) Mat4 {
	back := f.Forward.Negate()
	return Mat4{
		f.Right.X, f.Right.Y, f.Right.Z, 0,
		f.Up.X, f.Up.Y, f.Up.Z, 0,
		back.X, back.Y, back.Z, 0,
		pos.X, pos.Y, pos.Z, 1,
	}
}
