// Package edgeset implements the canonical-keyed undirected edge set
// shared by a mesh's face-boundary edges and the overlay's growing arc
// set (spec.md §3, OverlayEdgeSet).
package edgeset

// Edge is an undirected edge between two overlay-vertex indices, always
// stored with From < To (its canonical form).
type Edge struct {
	From, To int
}

func canon(a, b int) Edge {
	if a < b {
		return Edge{a, b}
	}
	return Edge{b, a}
}

// Set is a set of undirected edges over vertex indices, keyed canonically
// so {a,b} and {b,a} are the same entry. Self-loops and duplicates are
// silently rejected by Add, matching spec.md §3.
type Set struct {
	m map[Edge]struct{}
	// order preserves insertion order for deterministic iteration, since
	// Overlay's snapshot-then-mutate algorithm (spec.md §4.3) depends on
	// a stable enumeration order for a given input.
	order []Edge
}

// New returns an empty edge set.
func New() *Set {
	return &Set{m: make(map[Edge]struct{})}
}

// Add inserts the edge {from,to}, returning false if it was a self-loop
// or already present.
func (s *Set) Add(from, to int) bool {
	if from == to {
		return false
	}
	e := canon(from, to)
	if _, ok := s.m[e]; ok {
		return false
	}
	s.m[e] = struct{}{}
	s.order = append(s.order, e)
	return true
}

// Remove deletes the edge {from,to}, a no-op if absent.
func (s *Set) Remove(from, to int) {
	e := canon(from, to)
	if _, ok := s.m[e]; !ok {
		return
	}
	delete(s.m, e)
	for i, o := range s.order {
		if o == e {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Has reports whether {from,to} is present.
func (s *Set) Has(from, to int) bool {
	_, ok := s.m[canon(from, to)]
	return ok
}

// Len returns the number of edges.
func (s *Set) Len() int { return len(s.order) }

// Snapshot returns a copy of the current edges, safe to range over while
// the caller mutates the live set — Overlay's insertion loop relies on
// this to iterate a fixed view of E while splitting edges within it
// (spec.md §4.3).
func (s *Set) Snapshot() []Edge {
	out := make([]Edge, len(s.order))
	copy(out, s.order)
	return out
}

// All returns the current edges without copying the backing order slice;
// callers must not mutate the set while ranging over the result.
func (s *Set) All() []Edge {
	return s.order
}
