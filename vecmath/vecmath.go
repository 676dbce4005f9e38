// Package vecmath provides the scalar 2D vector primitives the rest of the
// simulation builds on: dot/cross/distance/normalize and the
// closest-point-on-segment projection used by contact manifold extraction.
//
// Vec2 is mgl64.Vec2 directly — the teacher's mgl64.Vec3 usage throughout
// its actor/constraint/gjk/epa packages is the model; this package only
// adds what mathgl doesn't ship for the 2D case.
package vecmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec2 is an ordered pair of finite reals (x, y).
type Vec2 = mgl64.Vec2

// New builds a Vec2 from components.
func New(x, y float64) Vec2 {
	return Vec2{x, y}
}

// Dot returns a·b.
func Dot(a, b Vec2) float64 {
	return a.Dot(b)
}

// Cross returns the scalar z-component of the 3D cross product of a and b
// extended with a zero z-axis: a.x*b.y - a.y*b.x.
func Cross(a, b Vec2) float64 {
	return a[0]*b[1] - a[1]*b[0]
}

// CrossScalar rotates a scalar "pseudo-vector" s against v, the 2D
// equivalent of crossing a z-axis vector (0,0,s) with (v.x, v.y, 0):
// s×v = (-s*v.y, s*v.x).
func CrossScalar(s float64, v Vec2) Vec2 {
	return Vec2{-s * v[1], s * v[0]}
}

// Perp returns v rotated 90 degrees counter-clockwise.
func Perp(v Vec2) Vec2 {
	return Vec2{-v[1], v[0]}
}

// Magnitude returns |v|.
func Magnitude(v Vec2) float64 {
	return v.Len()
}

// SquareMagnitude returns |v|².
func SquareMagnitude(v Vec2) float64 {
	return v.LenSqr()
}

// Distance returns |b-a|.
func Distance(a, b Vec2) float64 {
	return b.Sub(a).Len()
}

// SquareDistance returns |b-a|².
func SquareDistance(a, b Vec2) float64 {
	return b.Sub(a).LenSqr()
}

// Normalize returns v/|v|, falling back to (1,0) for the zero vector
// instead of producing NaN components.
func Normalize(v Vec2) Vec2 {
	lenSq := v.LenSqr()
	if lenSq == 0 {
		return Vec2{1, 0}
	}
	return v.Mul(1 / math.Sqrt(lenSq))
}

// FindClosestPointToSegment projects p onto the segment ab, clamping the
// parametric t to [0,1], and returns the clamped point along with the
// squared distance from p to it.
func FindClosestPointToSegment(p, a, b Vec2) (Vec2, float64) {
	ab := b.Sub(a)
	denom := ab.LenSqr()

	var t float64
	if denom > 0 {
		t = ab.Dot(p.Sub(a)) / denom
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
	}

	closest := a.Add(ab.Mul(t))
	return closest, SquareDistance(p, closest)
}
