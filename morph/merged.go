// Package morph assembles the overlay's vertex pairs and polygonal faces
// into a MergedMesh, and produces interpolated meshes at any ratio
// (spec.md §4.6).
package morph

import (
	"sort"

	"spheremorph/geo"
	"spheremorph/mesh"
	"spheremorph/overlay"
)

// ModelSize is the target bounding-box side length after normalization,
// matching the original implementation's MODEL_SIZE constant.
const ModelSize = 1.0

// Options controls the optional behaviors of Merge (spec.md §6 CLI
// surface): SphereOnly skips back-projection, EdgeOnly degenerates every
// edge into a visualizable zero-area triangle instead of tracing faces,
// and Scale forces both point clouds to the same bounding-box extent
// rather than only the larger of the two.
type Options struct {
	SphereOnly bool
	EdgeOnly   bool
	Scale      bool
}

// MergedMesh owns the final paired vertex list (one position per input
// mesh per overlay vertex) and the triangulated face list.
type MergedMesh struct {
	VertPairs [][2]geo.Vector
	Faces     [][3]int
}

// Merge runs the overlay, traces its faces (unless EdgeOnly), back-projects
// every overlay vertex onto both original surfaces (unless SphereOnly),
// translates both point clouds to their own centroid, rescales them to a
// common extent, and triangulates/dedups/orients the result (spec.md
// §4.6).
func Merge(m1, m2 *mesh.Projection, opts Options) (*MergedMesh, error) {
	st := overlay.NewState(m1, m2)
	if err := st.Insert(); err != nil {
		return nil, err
	}

	positions := make([]geo.Vector, len(st.Verts))
	for i, v := range st.Verts {
		positions[i] = v.Pos
	}

	var rawFaces [][]int
	if opts.EdgeOnly {
		n := len(positions)
		positions = append(append([]geo.Vector{}, positions...), positions...)
		for _, e := range st.Edges.All() {
			rawFaces = append(rawFaces, []int{e.From, e.To, e.To + n})
		}
	} else {
		g := overlay.BuildGraph(pointsOf(st.Verts), st.Edges)
		g.AngularSort()
		faces, err := g.Faces()
		if err != nil {
			return nil, err
		}
		rawFaces = faces
	}

	vertPairs, err := pairVertices(st.Verts, m1, m2, opts.SphereOnly)
	if err != nil {
		return nil, err
	}

	if opts.EdgeOnly {
		// The edge triangles' third corners index the second copy.
		vertPairs = append(vertPairs, vertPairs...)
	}

	normalize(vertPairs, opts.Scale)

	triFaces := triangulateDedupOrient(rawFaces, vertPairs)

	return &MergedMesh{VertPairs: vertPairs, Faces: triFaces}, nil
}

func pointsOf(verts []overlay.Vertex) []geo.Vector {
	out := make([]geo.Vector, len(verts))
	for i, v := range verts {
		out[i] = v.Pos
	}
	return out
}

// pairVertices computes, for every overlay vertex, a pair (p1, p2):
// FromOne -> (m1's original vertex, m2's back-projection); FromTwo ->
// symmetric; Intersection -> both back-projected. Both components are
// then translated to their mesh's own centroid (spec.md §4.6).
func pairVertices(verts []overlay.Vertex, m1, m2 *mesh.Projection, sphereOnly bool) ([][2]geo.Vector, error) {
	pairs := make([][2]geo.Vector, len(verts))
	for i, v := range verts {
		var p1, p2 geo.Vector
		if sphereOnly {
			p1, p2 = v.Pos, v.Pos
		} else {
			switch v.Origin {
			case overlay.FromOne:
				p1 = m1.Vertex(v.SourceIndex)
				bp, err := m2.ProjectFromSphere(v.Pos)
				if err != nil {
					return nil, err
				}
				p2 = bp
			case overlay.FromTwo:
				bp, err := m1.ProjectFromSphere(v.Pos)
				if err != nil {
					return nil, err
				}
				p1 = bp
				p2 = m2.Vertex(v.SourceIndex)
			default: // Intersection
				bp1, err := m1.ProjectFromSphere(v.Pos)
				if err != nil {
					return nil, err
				}
				bp2, err := m2.ProjectFromSphere(v.Pos)
				if err != nil {
					return nil, err
				}
				p1, p2 = bp1, bp2
			}
		}
		pairs[i] = [2]geo.Vector{p1.Sub(m1.Center), p2.Sub(m2.Center)}
	}
	return pairs, nil
}

// normalize rescales both point clouds in place. By default both are
// scaled by ModelSize over the larger of the two bounding-box extents, so
// the larger cloud ends with side length ModelSize and the relative size
// of the two is kept; with scale set, each cloud is scaled by ModelSize
// over its own extent, so both end with side length ModelSize (spec.md
// §4.6).
func normalize(pairs [][2]geo.Vector, scale bool) {
	if len(pairs) == 0 {
		return
	}
	firsts := make([]geo.Vector, len(pairs))
	seconds := make([]geo.Vector, len(pairs))
	for i, p := range pairs {
		firsts[i], seconds[i] = p[0], p[1]
	}
	min1, max1 := geo.BoundingBox(firsts)
	min2, max2 := geo.BoundingBox(seconds)
	scale1 := max1.Sub(min1).Max()
	scale2 := max2.Sub(min2).Max()

	if !scale {
		r := scale1
		if scale2 > r {
			r = scale2
		}
		scale1, scale2 = r, r
	}

	for i := range pairs {
		if scale1 > geo.EPS {
			pairs[i][0] = pairs[i][0].Scale(ModelSize / scale1)
		}
		if scale2 > geo.EPS {
			pairs[i][1] = pairs[i][1].Scale(ModelSize / scale2)
		}
	}
}

// triangulateDedupOrient fans each polygonal face (length > 3) from its
// first vertex, drops degenerate triangles, deduplicates by canonical
// sorted-index key, and orients each triangle CCW as seen from the
// current centroid (spec.md §4.6).
func triangulateDedupOrient(faces [][]int, pairs [][2]geo.Vector) [][3]int {
	// Orientation is checked against the origin, not a computed centroid:
	// by this point every pair's first component has already been
	// translated to its mesh's own centroid (pairVertices), so the origin
	// already sits at the center of mass the original implementation's
	// triangulation pass used.
	centroid := geo.New(0, 0, 0)
	seen := make(map[[3]int]bool)
	var out [][3]int

	addTri := func(a, b, c int) {
		if a == b || b == c || a == c {
			return
		}
		key := [3]int{a, b, c}
		sort.Ints(key[:])
		if seen[key] {
			return
		}
		seen[key] = true
		tri := [3]int{a, b, c}
		orient(&tri, pairs, centroid)
		out = append(out, tri)
	}

	for _, f := range faces {
		if len(f) < 3 {
			continue
		}
		if len(f) == 3 {
			addTri(f[0], f[1], f[2])
			continue
		}
		for i := 1; i+1 < len(f); i++ {
			addTri(f[0], f[i], f[i+1])
		}
	}
	return out
}

// orient reverses tri if its orientation, viewed from center using the
// first component of each vertex pair, is not counter-clockwise (det >
// EPS).
func orient(tri *[3]int, pairs [][2]geo.Vector, center geo.Vector) {
	a := pairs[tri[0]][0].Sub(center)
	b := pairs[tri[1]][0].Sub(center)
	c := pairs[tri[2]][0].Sub(center)
	if geo.Det(a, b, c) <= geo.EPS {
		tri[0], tri[2] = tri[2], tri[0]
	}
}

// Interpolate returns a plain Mesh at ratio r: vertices (1-r)*p1 + r*p2,
// the same triangulated face list, re-oriented against the blended
// centroid (spec.md §4.6).
func (mm *MergedMesh) Interpolate(r float64) *mesh.Mesh {
	verts := make([]geo.Vector, len(mm.VertPairs))
	for i, p := range mm.VertPairs {
		verts[i] = p[0].Add(p[1].Sub(p[0]).Scale(r))
	}

	faces := make([][]int, len(mm.Faces))
	for i, f := range mm.Faces {
		faces[i] = []int{f[0], f[1], f[2]}
	}

	m := mesh.New(verts, faces)
	center := m.Center()
	for _, f := range m.Faces {
		a := verts[f[0]].Sub(center)
		b := verts[f[1]].Sub(center)
		c := verts[f[2]].Sub(center)
		if geo.Det(a, b, c) <= geo.EPS {
			f[0], f[2] = f[2], f[0]
		}
	}
	return m
}
