package overlay

import (
	"testing"

	"github.com/stretchr/testify/require"

	"spheremorph/edgeset"
	"spheremorph/geo"
	"spheremorph/mesh"
)

func tetrahedron() *mesh.Mesh {
	v := []geo.Vector{
		geo.New(1, 1, 1),
		geo.New(-1, -1, 1),
		geo.New(-1, 1, -1),
		geo.New(1, -1, -1),
	}
	f := [][]int{
		{0, 1, 2},
		{0, 3, 1},
		{0, 2, 3},
		{1, 3, 2},
	}
	return mesh.New(v, f)
}

func rotateZ90(m *mesh.Mesh) *mesh.Mesh {
	verts := make([]geo.Vector, len(m.Vertices))
	for i, v := range m.Vertices {
		verts[i] = geo.New(-v.Y, v.X, v.Z)
	}
	faces := make([][]int, len(m.Faces))
	copy(faces, m.Faces)
	return mesh.New(verts, faces)
}

// Scenario from spec.md §8.1: a tetrahedron overlaid with itself.
func TestOverlaySelf(t *testing.T) {
	m := tetrahedron()
	p1, err := mesh.NewProjection(m)
	require.NoError(t, err)
	p2, err := mesh.NewProjection(m)
	require.NoError(t, err)

	st := NewState(p1, p2)
	require.NoError(t, st.Insert())

	g := BuildGraph(vertPositions(st.Verts), st.Edges)
	g.AngularSort()
	faces, err := g.Faces()
	require.NoError(t, err)

	require.Equal(t, 4, len(faces), "expected 4 triangular faces")
	for _, f := range faces {
		require.GreaterOrEqual(t, len(f), 3)
	}
}

// Scenario from spec.md §8.2: Euler characteristic V-E+F=2 after overlaying
// a tetrahedron with a 90-degree-rotated copy of itself.
func TestOverlayRotatedEulerCharacteristic(t *testing.T) {
	m1 := tetrahedron()
	m2 := rotateZ90(tetrahedron())

	p1, err := mesh.NewProjection(m1)
	require.NoError(t, err)
	p2, err := mesh.NewProjection(m2)
	require.NoError(t, err)

	st := NewState(p1, p2)
	require.NoError(t, st.Insert())

	g := BuildGraph(vertPositions(st.Verts), st.Edges)
	g.AngularSort()
	faces, err := g.Faces()
	require.NoError(t, err)

	v := len(st.Verts)
	e := st.Edges.Len()
	f := len(faces)
	require.Equal(t, 2, v-e+f, "Euler characteristic must be 2 for a genus-0 overlay")
}

// Invariant 2 from spec.md §8: after Overlay, no two edges cross
// transversally — ArcIntersect between any two edges in E must be in
// {N, L, S}, never T1/T2/X/I.
func TestOverlayNoTransversalCrossings(t *testing.T) {
	m1 := tetrahedron()
	m2 := rotateZ90(tetrahedron())

	p1, err := mesh.NewProjection(m1)
	require.NoError(t, err)
	p2, err := mesh.NewProjection(m2)
	require.NoError(t, err)

	st := NewState(p1, p2)
	require.NoError(t, st.Insert())

	edges := st.Edges.All()
	for i := range edges {
		for j := i + 1; j < len(edges); j++ {
			a := edges[i]
			b := edges[j]
			if a.From == b.From || a.From == b.To || a.To == b.From || a.To == b.To {
				continue // shared endpoint, not a crossing candidate
			}
			arc1, err := geo.NewArc(st.Verts[a.From].Pos, st.Verts[a.To].Pos, a.From, a.To)
			require.NoError(t, err)
			arc2, err := geo.NewArc(st.Verts[b.From].Pos, st.Verts[b.To].Pos, b.From, b.To)
			require.NoError(t, err)
			r := geo.Intersect(arc1, arc2)
			require.Contains(t, []geo.IntersectKind{geo.KindNone, geo.KindEndpoint, geo.KindSame}, r.Kind,
				"edges %v and %v must not cross transversally", a, b)
		}
	}
}

func vertPositions(verts []Vertex) []geo.Vector {
	out := make([]geo.Vector, len(verts))
	for i, v := range verts {
		out[i] = v.Pos
	}
	return out
}

func TestEdgeSetCanonicalKey(t *testing.T) {
	s := edgeset.New()
	require.True(t, s.Add(1, 2))
	require.False(t, s.Add(2, 1), "reversed pair must collide with the canonical key")
	require.False(t, s.Add(3, 3), "self-loop must be rejected")
	require.Equal(t, 1, s.Len())
}
