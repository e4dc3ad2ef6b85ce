package geo

import "math"

// Triangle is a 3D triangle used for ray intersection during
// back-projection (spec.md §4.5).
type Triangle struct {
	A, B, C Vector
}

// NewTriangle builds a Triangle from its three corners.
func NewTriangle(a, b, c Vector) Triangle {
	return Triangle{A: a, B: b, C: c}
}

// Normal returns the (unnormalized) plane normal (B−A)×(C−A).
func (t Triangle) Normal() Vector {
	return t.B.Sub(t.A).Cross(t.C.Sub(t.A))
}

// Contains reports whether v lies in the triangle's plane and within its
// boundary, tested by the sum of the three sub-triangle areas equaling
// the triangle's own area within EPS.
func (t Triangle) Contains(v Vector) bool {
	a, b, c := t.A.Sub(v), t.B.Sub(v), t.C.Sub(v)
	area := t.Normal().Len()
	sum := a.Cross(b).Len() + b.Cross(c).Len() + c.Cross(a).Len()
	return math.Abs(area-sum) < EPS
}

// Intersect computes the intersection of the ray from a through b with
// this triangle's plane, returning the hit point and its ray parameter t
// when the ray enters the triangle at t > EPS. ok is false when the ray
// is parallel to the plane, the hit is behind the ray origin, or the hit
// point falls outside the triangle.
func (t Triangle) Intersect(a, b Vector) (hit Vector, param float64, ok bool) {
	n := t.Normal()
	dir := b.Sub(a)
	div := dir.Dot(n)
	if math.Abs(div) < EPS {
		return Vector{}, 0, false
	}
	param = t.A.Sub(a).Dot(n) / div
	hit = a.Add(dir.Scale(param))
	if param <= EPS || !t.Contains(hit) {
		return Vector{}, 0, false
	}
	return hit, param, true
}
