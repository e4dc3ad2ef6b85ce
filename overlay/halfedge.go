package overlay

import (
	"errors"
	"math"
	"sort"

	"spheremorph/edgeset"
	"spheremorph/geo"
	"spheremorph/morpherr"
)

var errMissingLink = errors.New("half-edge graph invariant violated")

// halfEdge is one directed edge record in the graph's arena. Opposite
// and Next are indices into Graph.edges rather than pointers — the Go
// equivalent of the original's Rc<RefCell<..>>/Weak cross-references
// (spec.md §9 Design Notes): non-owning, bounded to the graph's
// lifetime, never cyclic ownership.
type halfEdge struct {
	From, To int
	Opposite int
	Next     int
	Visited  bool
}

const noEdge = -1

// Graph is the directed half-edge multigraph built from the overlay's
// final vertex positions and edge set (spec.md §3, §4.4 Step 1).
type Graph struct {
	verts []geo.Vector
	edges []halfEdge
	// outgoing[v] lists indices into edges of v's outgoing half-edges.
	outgoing [][]int
}

// BuildGraph constructs the half-edge graph: two directed edges per
// undirected edge, cross-linked as opposites, attached to their source
// vertex's adjacency list (spec.md §4.4 Step 1).
func BuildGraph(verts []geo.Vector, edges *edgeset.Set) *Graph {
	g := &Graph{
		verts:    verts,
		edges:    make([]halfEdge, 0, edges.Len()*2),
		outgoing: make([][]int, len(verts)),
	}
	for _, e := range edges.All() {
		i := len(g.edges)
		g.edges = append(g.edges, halfEdge{From: e.From, To: e.To, Opposite: i + 1, Next: noEdge})
		g.edges = append(g.edges, halfEdge{From: e.To, To: e.From, Opposite: i, Next: noEdge})
		g.outgoing[e.From] = append(g.outgoing[e.From], i)
		g.outgoing[e.To] = append(g.outgoing[e.To], i+1)
	}
	return g
}

// AngularSort wires every half-edge's Next pointer to the following edge,
// in counter-clockwise tangent order as seen from outside the sphere,
// among the edges emanating from the same source vertex (spec.md §4.4
// Step 2).
func (g *Graph) AngularSort() {
	for v := range g.outgoing {
		out := g.outgoing[v]
		if len(out) == 0 {
			continue
		}
		vPos := g.verts[v]
		l2 := vPos.Len2()

		dir := func(edgeIdx int) geo.Vector {
			p := g.verts[g.edges[edgeIdx].To]
			tangent := p.Sub(vPos.Scale(vPos.Dot(p) / l2))
			return tangent.Unit()
		}

		firstDir := dir(out[0])

		type angled struct {
			angle float64
			idx   int
		}
		sorted := make([]angled, len(out))
		for i, e := range out {
			d := dir(e)
			cos := firstDir.Dot(d)
			var angle float64
			switch {
			case math.Abs(cos-1) < geo.EPS:
				angle = 0
			case math.Abs(cos+1) < geo.EPS:
				angle = math.Pi
			default:
				angle = math.Acos(cos)
			}
			norm := firstDir.Cross(d)
			if vPos.Dot(norm) < -geo.EPS {
				angle = -angle
			}
			sorted[i] = angled{angle, e}
		}
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].angle < sorted[j].angle })

		m := len(sorted)
		for i := 0; i < m; i++ {
			j := (i + 1) % m
			g.edges[sorted[i].idx].Next = sorted[j].idx
		}
	}
}

// Faces walks the next-of-opposite cycles to recover the overlay's
// polygonal faces (spec.md §4.4 Step 3). It requires AngularSort to have
// run first; a missing Opposite/Next link is reported as a TopologyError.
func (g *Graph) Faces() ([][]int, error) {
	var faces [][]int
	for start := range g.edges {
		if g.edges[start].Visited {
			continue
		}
		var face []int
		e := start
		for !g.edges[e].Visited {
			g.edges[e].Visited = true
			face = append(face, g.edges[e].To)

			opp := g.edges[e].Opposite
			if opp == noEdge {
				return nil, morpherr.NewTopologyError("missing opposite edge", errMissingLink)
			}
			next := g.edges[opp].Next
			if next == noEdge {
				return nil, morpherr.NewTopologyError("missing next edge", errMissingLink)
			}
			e = next
		}
		if len(face) >= 3 {
			faces = append(faces, face)
		}
	}
	return faces, nil
}
