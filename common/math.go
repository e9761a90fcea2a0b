package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// LengthSquared returns the squared length of v.
//
// Parameters:
//   - v: the vector to measure
//
// Returns:
//   - float32: v·v
func LengthSquared(v mgl32.Vec3) float32 {
	return v.Dot(v)
}

// DistanceSquared returns the squared distance between two points.
//
// Parameters:
//   - a, b: the points to measure between
//
// Returns:
//   - float32: |a - b|²
func DistanceSquared(a, b mgl32.Vec3) float32 {
	d := a.Sub(b)
	return d.Dot(d)
}

// Normalize returns v scaled to unit length. The zero vector is returned unchanged
// instead of producing NaN components.
//
// Parameters:
//   - v: the vector to normalize
//
// Returns:
//   - mgl32.Vec3: the unit vector, or the zero vector
func Normalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l == 0 {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}

// SetLength returns v rescaled to the given length while keeping its direction.
// A negative length flips the direction. The zero vector stays zero.
//
// Parameters:
//   - v: the vector to rescale
//   - length: the desired length
//
// Returns:
//   - mgl32.Vec3: the rescaled vector
func SetLength(v mgl32.Vec3, length float32) mgl32.Vec3 {
	l := v.Len()
	if l == 0 {
		return mgl32.Vec3{}
	}
	return v.Mul(length / l)
}

// AngleBetween returns the angle in radians between a and b, computed as
// atan2(|a × b|, a · b). Unlike acos of the normalized dot product this keeps full float32
// precision for nearly parallel vectors and never yields NaN. A zero length input yields 0.
//
// Parameters:
//   - a, b: the vectors to compare
//
// Returns:
//   - float32: the angle in [0, π]
func AngleBetween(a, b mgl32.Vec3) float32 {
	if a.Dot(a) == 0 || b.Dot(b) == 0 {
		return 0
	}
	return math32.Atan2(a.Cross(b).Len(), a.Dot(b))
}

// RotateAxisAngle rotates v around a unit axis by angle radians (right-handed).
//
// Parameters:
//   - v: the vector to rotate
//   - axis: the rotation axis (must be unit length)
//   - angle: rotation angle in radians
//
// Returns:
//   - mgl32.Vec3: the rotated vector
func RotateAxisAngle(v, axis mgl32.Vec3, angle float32) mgl32.Vec3 {
	return mgl32.QuatRotate(angle, axis).Rotate(v)
}
