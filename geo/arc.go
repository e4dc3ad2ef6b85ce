package geo

import (
	"errors"
	"math"

	"spheremorph/morpherr"
)

// Arc is a minor great-circle arc between two distinct endpoints on a
// sphere, each carrying the id of the overlay vertex it came from.
type Arc struct {
	A, B     Vector
	AID, BID int
}

var errAntipodalArc = errors.New("arc endpoints are antipodal: great circle is undefined")

// NewArc builds an Arc from its endpoints and their overlay vertex ids. It
// rejects antipodal endpoints (spec.md §4.2/§4.1): antipodal points share
// infinitely many great circles, so no minor arc between them is defined.
func NewArc(a, b Vector, aID, bID int) (Arc, error) {
	if a.Unit().Add(b.Unit()).Len() < EPS {
		return Arc{}, morpherr.NewDomainError("construct arc", errAntipodalArc)
	}
	return Arc{A: a, B: b, AID: aID, BID: bID}, nil
}

// normal returns the supporting-plane normal A×B.
func (a Arc) normal() Vector {
	return a.A.Cross(a.B)
}

// paramAlong returns the parameter k of point v along this arc (0 at A, 1
// at B), per spec.md §4.2: acos(⟨v̂,Â⟩) / acos(⟨B̂,Â⟩). Callers only call
// this once they know v lies on the arc's great circle.
func (a Arc) paramAlong(v Vector) float64 {
	aUnit, bUnit, vUnit := a.A.Unit(), a.B.Unit(), v.Unit()
	num := clampedAcos(vUnit.Dot(aUnit))
	den := clampedAcos(bUnit.Dot(aUnit))
	if den < EPS {
		return 0
	}
	return num / den
}

// clampedAcos guards against a dot product that drifts fractionally
// outside [-1,1] from floating-point rounding.
func clampedAcos(c float64) float64 {
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}
	return math.Acos(c)
}

// between reports whether v, already known to lie on this arc's great
// circle, lies between A and B (strictly, within EPS).
func (a Arc) between(v Vector) bool {
	ab := a.normal()
	return a.A.Cross(v).Dot(ab) > EPS && a.B.Cross(v).Dot(ab.Neg()) > EPS
}

// onArc reports whether v lies on the arc: on its great circle and
// between its endpoints.
func (a Arc) onArc(v Vector) bool {
	if math.Abs(v.Dot(a.normal())) >= EPS {
		return false
	}
	return a.between(v)
}

// IntersectKind classifies the outcome of intersecting two arcs.
type IntersectKind int

const (
	// KindNone: no intersection.
	KindNone IntersectKind = iota
	// KindSame: the two arcs coincide.
	KindSame
	// KindEndpoint: an endpoint of one arc equals an endpoint of the other.
	KindEndpoint
	// KindT1: an endpoint of arc 1 lies on the interior of arc 2.
	KindT1
	// KindT2: an endpoint of arc 2 lies on the interior of arc 1.
	KindT2
	// KindCross: the arcs cross transversally at an interior point.
	KindCross
	// KindOverlap: the arcs are coplanar and their interiors overlap.
	KindOverlap
)

// IntersectResult is the outcome of Intersect, tagged by Kind. Only the
// fields relevant to Kind are populated:
//
//	KindNone, KindSame:  none
//	KindEndpoint:        ID1 (arc1's matched endpoint), ID2 (arc2's)
//	KindT1:              ID1 (arc1's endpoint id), K (its param along arc2)
//	KindT2:              ID1 (arc2's endpoint id), K (its param along arc1)
//	KindCross:           V (intersection point), K (param along arc2)
//	KindOverlap:         ID1,K and ID2,K2: the two (endpoint id, param-along-arc2) pairs
type IntersectResult struct {
	Kind   IntersectKind
	ID1    int
	ID2    int
	K      float64
	K2     float64
	V      Vector
}

// Intersect classifies and, where applicable, computes the intersection of
// two great-circle arcs on a unit-radius (up to scale) sphere, per
// spec.md §4.2. Both arcs are assumed non-antipodal: NewArc is the only
// constructor and already rejects that case, so the coplanarity test below
// (‖n1×n2‖ < EPS) can never be spuriously triggered by antipodal endpoints.
func Intersect(a, b Arc) IntersectResult {
	n1, n2 := a.normal(), b.normal()
	coplanar := n1.Cross(n2).Len() < EPS

	if coplanar {
		return intersectCoplanar(a, b, n2)
	}
	return intersectGeneral(a, b, n1, n2)
}

func intersectGeneral(a, b Arc, n1, n2 Vector) IntersectResult {
	switch {
	case a.A.Equal(b.A):
		return IntersectResult{Kind: KindEndpoint, ID1: a.AID, ID2: b.AID}
	case a.A.Equal(b.B):
		return IntersectResult{Kind: KindEndpoint, ID1: a.AID, ID2: b.BID}
	case a.B.Equal(b.A):
		return IntersectResult{Kind: KindEndpoint, ID1: a.BID, ID2: b.AID}
	case a.B.Equal(b.B):
		return IntersectResult{Kind: KindEndpoint, ID1: a.BID, ID2: b.BID}
	}

	if b.onArc(a.A) {
		return IntersectResult{Kind: KindT1, ID1: a.AID, K: b.paramAlong(a.A)}
	}
	if b.onArc(a.B) {
		return IntersectResult{Kind: KindT1, ID1: a.BID, K: b.paramAlong(a.B)}
	}
	if a.onArc(b.A) {
		return IntersectResult{Kind: KindT2, ID1: b.AID, K: a.paramAlong(b.A)}
	}
	if a.onArc(b.B) {
		return IntersectResult{Kind: KindT2, ID1: b.BID, K: a.paramAlong(b.B)}
	}

	// Intersect the plane of arc2 with the line through A and B.
	div := a.A.Sub(a.B).Dot(n2)
	if math.Abs(div) < EPS {
		return IntersectResult{Kind: KindNone}
	}
	t := a.A.Dot(n2) / div
	candidate := a.A.Add(a.B.Sub(a.A).Scale(t)).Unit()

	// Lift to the sphere radius implied by arc1's endpoint A (both arcs
	// share the same sphere in every caller, but this keeps the
	// computation self-contained).
	radius := a.A.Len()
	v := candidate.Scale(radius)

	if !a.onArc(v) || !b.onArc(v) {
		return IntersectResult{Kind: KindNone}
	}
	return IntersectResult{Kind: KindCross, V: v, K: b.paramAlong(v)}
}

// intersectCoplanar handles the case where both arcs lie on the same
// great circle (‖n1×n2‖ < EPS). Each endpoint of arc a is given a
// position along arc b, with k<0 meaning "past A on the far side" and
// k>1 meaning "past B on the far side" (spec.md §4.2's sign convention);
// the two results are then classified.
func intersectCoplanar(a, b Arc, n2 Vector) IntersectResult {
	if math.Abs(a.A.Dot(n2)) >= EPS {
		return IntersectResult{Kind: KindNone}
	}

	ka := coplanarParam(b, a.A)
	kb := coplanarParam(b, a.B)

	id1, k1 := a.AID, ka
	id2, k2 := a.BID, kb
	if k2 < k1 {
		id1, id2 = id2, id1
		k1, k2 = k2, k1
	}

	if k2 < 0 || k1 > 1 {
		return IntersectResult{Kind: KindNone}
	}
	// Endpoints on both extensions: a either spans all of b or runs the
	// other way round the circle and misses it; b's midpoint tells which.
	if k1 < 0 && k2 > 1 && !a.between(b.A.Unit().Add(b.B.Unit())) {
		return IntersectResult{Kind: KindNone}
	}

	aMatchesC := math.Abs(k1-0) < EPS
	aMatchesD := math.Abs(k2-1) < EPS
	if aMatchesC && aMatchesD {
		return IntersectResult{Kind: KindSame}
	}
	if (k1 >= 0 && k1 <= 1 && math.Abs(k1) < EPS) || (k2 >= 0 && k2 <= 1 && math.Abs(k2-1) < EPS) {
		// One endpoint touches C or D exactly with no interior overlap
		// beyond that shared point.
		if math.Abs(k1) < EPS && math.Abs(k2) < EPS {
			return IntersectResult{Kind: KindEndpoint, ID1: id1, ID2: b.AID}
		}
		if math.Abs(k1-1) < EPS && math.Abs(k2-1) < EPS {
			return IntersectResult{Kind: KindEndpoint, ID1: id1, ID2: b.BID}
		}
	}

	return IntersectResult{Kind: KindOverlap, ID1: id1, K: k1, ID2: id2, K2: k2}
}

// coplanarParam computes arc b's parameter for point v, extending past
// [0,1] with the sign convention k<0 (beyond B's endpoint A) / k>1
// (beyond endpoint B) described in spec.md §4.2.
func coplanarParam(b Arc, v Vector) float64 {
	aUnit, bUnit, vUnit := b.A.Unit(), b.B.Unit(), v.Unit()
	num := clampedAcos(vUnit.Dot(aUnit))
	den := clampedAcos(bUnit.Dot(aUnit))
	if den < EPS {
		den = EPS
	}
	k := num / den
	if vUnit.Equal(aUnit) {
		return 0
	}
	if vUnit.Equal(bUnit) {
		return 1
	}
	// Disambiguate the side: if v is not between A and B on the great
	// circle, it is on the extension beyond whichever endpoint is closer.
	if !b.between(v) {
		if vUnit.Dot(aUnit) > bUnit.Dot(aUnit) {
			return -k
		}
		return 1 + k
	}
	return k
}
