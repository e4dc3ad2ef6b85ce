// Package geo provides the spherical-geometry primitives shared by the
// mesh overlay pipeline: a 3D vector value type, great-arc intersection,
// and triangle ray intersection.
package geo

import (
	"errors"
	"math"

	"spheremorph/morpherr"
)

// EPS is the single global tolerance used for point equality, planarity,
// between-tests, and cosine clamping throughout this package and its
// callers. Do not introduce a second epsilon.
const EPS = 1e-9

// Vector is a point or direction in 3D space, stored in double precision.
// Single precision loses too much accuracy across the cross-product
// cascade in arc intersection.
type Vector struct {
	X, Y, Z float64
}

// New builds a Vector from components.
func New(x, y, z float64) Vector {
	return Vector{X: x, Y: y, Z: z}
}

// Add returns a+b.
func (a Vector) Add(b Vector) Vector {
	return Vector{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

// Sub returns a-b.
func (a Vector) Sub(b Vector) Vector {
	return Vector{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

// Neg returns -a.
func (a Vector) Neg() Vector {
	return Vector{-a.X, -a.Y, -a.Z}
}

// Scale returns a scaled by s.
func (a Vector) Scale(s float64) Vector {
	return Vector{a.X * s, a.Y * s, a.Z * s}
}

// Div returns a scaled by 1/s. A zero divisor yields a DomainError instead
// of a result.
func (a Vector) Div(s float64) (Vector, error) {
	if s == 0 {
		return Vector{}, morpherr.NewDomainError("divide vector by zero", errZeroDivisor)
	}
	return Vector{a.X / s, a.Y / s, a.Z / s}, nil
}

var errZeroDivisor = errors.New("zero divisor")
var errDegenerateRadial = errors.New("point coincides with projection center")

// Cross returns the cross product a×b, following the right-hand rule.
func (a Vector) Cross(b Vector) Vector {
	return Vector{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Dot returns the dot product ⟨a,b⟩.
func (a Vector) Dot(b Vector) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Det returns the scalar triple product ⟨a, b×c⟩.
func Det(a, b, c Vector) float64 {
	return a.Dot(b.Cross(c))
}

// Len2 returns the squared length of a.
func (a Vector) Len2() float64 {
	return a.Dot(a)
}

// Len returns the length of a.
func (a Vector) Len() float64 {
	return math.Sqrt(a.Len2())
}

// Unit returns a normalized to unit length. A vector shorter than EPS is
// returned unchanged, matching the original implementation's convergence
// behavior at the origin rather than raising a DomainError there.
func (a Vector) Unit() Vector {
	l := a.Len()
	if l < EPS {
		return a
	}
	return Vector{a.X / l, a.Y / l, a.Z / l}
}

// ProjectToSphere returns the central projection of a onto the sphere of
// the given radius centered at center: center + R·unit(a−center).
func (a Vector) ProjectToSphere(center Vector, radius float64) (Vector, error) {
	dir := a.Sub(center)
	l := dir.Len()
	if l < EPS {
		return Vector{}, morpherr.NewDomainError("central projection", errDegenerateRadial)
	}
	return center.Add(dir.Scale(radius / l)), nil
}

// ProjectDirection returns R·unit(a−center): the same central projection
// as ProjectToSphere but without re-adding center, so that both meshes'
// sphere vertices land on one sphere centered at the origin regardless of
// where each mesh's own centroid sits in world space. This is what makes
// the two meshes' great arcs comparable on a single common sphere (spec.md
// §3 Purpose); the original implementation's project_to_sphere omits the
// "+center" term for the same reason.
func (a Vector) ProjectDirection(center Vector, radius float64) (Vector, error) {
	dir := a.Sub(center)
	l := dir.Len()
	if l < EPS {
		return Vector{}, morpherr.NewDomainError("central projection", errDegenerateRadial)
	}
	return dir.Scale(radius / l), nil
}

// Equal reports whether a and b are within EPS on every component.
func (a Vector) Equal(b Vector) bool {
	return math.Abs(a.X-b.X) < EPS && math.Abs(a.Y-b.Y) < EPS && math.Abs(a.Z-b.Z) < EPS
}

// Less gives the lexicographic order on (X, Y, Z), independent of Equal's
// epsilon tolerance. Vector is usable as a map key only through this order
// (e.g. via a sorted slice or a tree), never by hashing — epsilon equality
// is not hash-compatible.
func (a Vector) Less(b Vector) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.Z < b.Z
}

// Max returns the largest of the three components.
func (a Vector) Max() float64 {
	m := a.X
	if a.Y > m {
		m = a.Y
	}
	if a.Z > m {
		m = a.Z
	}
	return m
}

// BoundingBox returns the componentwise (min, max) corners of verts. For an
// empty slice it returns min at +MaxFloat64 and max at -MaxFloat64 on every
// component.
func BoundingBox(verts []Vector) (min, max Vector) {
	min = Vector{math.MaxFloat64, math.MaxFloat64, math.MaxFloat64}
	max = Vector{-math.MaxFloat64, -math.MaxFloat64, -math.MaxFloat64}
	for _, v := range verts {
		if v.X < min.X {
			min.X = v.X
		}
		if v.Y < min.Y {
			min.Y = v.Y
		}
		if v.Z < min.Z {
			min.Z = v.Z
		}
		if v.X > max.X {
			max.X = v.X
		}
		if v.Y > max.Y {
			max.Y = v.Y
		}
		if v.Z > max.Z {
			max.Z = v.Z
		}
	}
	return min, max
}

// Centroid returns the arithmetic mean of verts.
func Centroid(verts []Vector) Vector {
	var sum Vector
	for _, v := range verts {
		sum = sum.Add(v)
	}
	return sum.Scale(1.0 / float64(len(verts)))
}
