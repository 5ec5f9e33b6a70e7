package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	BaseWidth  = 1280
	BaseHeight = 720
)

// Up is the world up axis. The arena floor is the XZ plane.
var Up = mgl32.Vec3{0, 1, 0}

// Forward is the local axis a LookRotation points along the requested direction.
var Forward = mgl32.Vec3{0, 0, 1}

const epsilon = 1e-6

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

func IsZero(v mgl32.Vec3) bool {
	return v == mgl32.Vec3{}
}

// Planar drops the vertical component of v.
func Planar(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v.X(), 0, v.Z()}
}

// ClampLength scales v down so its length does not exceed max.
func ClampLength(v mgl32.Vec3, max float32) mgl32.Vec3 {
	l := v.Len()
	if l <= max || l < epsilon {
		return v
	}
	return v.Mul(max / l)
}

// LookRotation returns the orientation whose Forward axis points along dir and
// whose up axis is as close to up as possible. A zero dir yields identity.
func LookRotation(dir, up mgl32.Vec3) mgl32.Quat {
	if dir.Len() < epsilon {
		return mgl32.QuatIdent()
	}
	f := dir.Normalize()
	r := up.Cross(f)
	if r.Len() < epsilon {
		// dir is parallel to up, any roll is valid
		return mgl32.QuatBetweenVectors(Forward, f)
	}
	r = r.Normalize()
	u := f.Cross(r)
	m := mgl32.Mat3FromCols(r, u, f)
	return mgl32.Mat4ToQuat(m.Mat4()).Normalize()
}

// Slerp interpolates from a to b along the shortest arc. t is clamped to [0, 1].
func Slerp(a, b mgl32.Quat, t float32) mgl32.Quat {
	t = mgl32.Clamp(t, 0, 1)
	if a.Dot(b) < 0 {
		b = b.Scale(-1)
	}
	return mgl32.QuatSlerp(a, b, t).Normalize()
}

// Angle returns the rotation angle in radians between two orientations.
func Angle(a, b mgl32.Quat) float32 {
	d := math.Abs(float64(a.Normalize().Dot(b.Normalize())))
	if d > 1 {
		d = 1
	}
	return float32(2 * math.Acos(d))
}
