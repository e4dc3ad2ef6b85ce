// Package overlay implements the incremental spherical overlay (spec.md
// §4.3), the half-edge graph it produces (§3, §4.4), and face tracing
// (§4.4) — the core of the morphing pipeline.
package overlay

import (
	"sort"

	"spheremorph/edgeset"
	"spheremorph/geo"
	"spheremorph/mesh"
)

// Origin tags where an overlay Vertex came from.
type Origin int

const (
	// FromOne: carried over from mesh 1, unchanged.
	FromOne Origin = iota
	// FromTwo: carried over from mesh 2, unchanged.
	FromTwo
	// Intersection: a new vertex created where two arcs crossed.
	Intersection
)

// Vertex is a vertex of the overlay: a sphere position, its origin, and
// — when Origin is FromOne or FromTwo — the index of the original mesh
// vertex it came from (meaningless for Intersection vertices).
type Vertex struct {
	Pos         geo.Vector
	Origin      Origin
	SourceIndex int
}

// State holds the overlay's growing vertex list and edge set while
// Insert runs, and the two source meshes needed to resolve indices and
// back-project results.
type State struct {
	Mesh1, Mesh2 *mesh.Projection
	Verts        []Vertex
	Edges        *edgeset.Set
}

// NewState seeds the overlay with mesh 1's sphere vertices and edges,
// mesh 2's sphere vertices appended (offset by mesh 1's vertex count, per
// spec.md §4.3), and mesh 2's edges left to be inserted by Insert.
func NewState(m1, m2 *mesh.Projection) *State {
	n := m1.NrVerts()
	m := m2.NrVerts()

	verts := make([]Vertex, 0, n+m)
	for i := 0; i < n; i++ {
		verts = append(verts, Vertex{Pos: m1.SphereVerts[i], Origin: FromOne, SourceIndex: i})
	}
	for i := 0; i < m; i++ {
		verts = append(verts, Vertex{Pos: m2.SphereVerts[i], Origin: FromTwo, SourceIndex: i})
	}

	edges := edgeset.New()
	for _, e := range m1.Edges.All() {
		edges.Add(e.From, e.To)
	}

	return &State{Mesh1: m1, Mesh2: m2, Verts: verts, Edges: edges}
}

// Insert runs the incremental overlay loop of spec.md §4.3: every edge of
// mesh 2 (index-shifted into the shared vertex space) is inserted into
// the current edge set of mesh 1, splitting both sides at each
// intersection. It fails with a DomainError if any edge, on either mesh,
// turns out to have antipodal endpoints (spec.md §4.1/§4.2).
func (s *State) Insert() error {
	n := s.Mesh1.NrVerts()
	for _, e2 := range s.Mesh2.Edges.All() {
		if err := s.insertEdge(e2.From+n, e2.To+n); err != nil {
			return err
		}
	}
	return nil
}

// insertEdge inserts one arc of mesh 2 (endpoints already in V's index
// space) following the seven-way classification of spec.md §4.2/§4.3.
func (s *State) insertEdge(p, q int) error {
	arc2, err := geo.NewArc(s.Verts[p].Pos, s.Verts[q].Pos, p, q)
	if err != nil {
		return err
	}

	type param struct {
		k  float64
		id int
	}
	ints := []param{{0.0, p}, {1.0, q}}

	snapshot := s.Edges.Snapshot()
	for _, e1 := range snapshot {
		// The edge may have been removed by a split earlier in this same
		// loop; skip it rather than re-intersecting a stale arc.
		if !s.Edges.Has(e1.From, e1.To) {
			continue
		}

		u1, u2 := e1.From, e1.To
		arc1, err := geo.NewArc(s.Verts[u1].Pos, s.Verts[u2].Pos, u1, u2)
		if err != nil {
			return err
		}

		r := geo.Intersect(arc1, arc2)
		switch r.Kind {
		case geo.KindNone:
			// nothing to do

		case geo.KindT1:
			ints = append(ints, param{r.K, r.ID1})

		case geo.KindT2:
			s.Edges.Remove(u1, u2)
			s.Edges.Add(u1, r.ID1)
			s.Edges.Add(u2, r.ID1)

		case geo.KindCross:
			g := len(s.Verts)
			s.Verts = append(s.Verts, Vertex{Pos: r.V, Origin: Intersection})
			s.Edges.Remove(u1, u2)
			s.Edges.Add(u1, g)
			s.Edges.Add(u2, g)
			ints = append(ints, param{r.K, g})

		case geo.KindEndpoint:
			if r.ID2 == p {
				ints[0].id = r.ID1
			} else if r.ID2 == q {
				ints[1].id = r.ID1
			}

		case geo.KindOverlap:
			s.Edges.Remove(u1, u2)
			if r.K > 0 {
				ints = append(ints, param{r.K, r.ID1})
			} else if r.K < 0 {
				s.Edges.Add(r.ID1, ints[0].id)
			}
			if r.K2 < 1 {
				ints = append(ints, param{r.K2, r.ID2})
			} else if r.K2 > 1 {
				s.Edges.Add(r.ID2, ints[1].id)
			}

		case geo.KindSame:
			return nil
		}
	}

	sort.Slice(ints, func(i, j int) bool { return ints[i].k < ints[j].k })
	for i := 0; i+1 < len(ints); i++ {
		s.Edges.Add(ints[i].id, ints[i+1].id)
	}
	return nil
}
