package morph

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

// Merging a mesh with itself must produce coincident vertex pairs: every
// overlay vertex back-projects to the same point on both "copies" of the
// surface.
func TestMergeSelfProducesCoincidentPairs(t *testing.T) {
	m := tetrahedron()
	p1, err := mesh.NewProjection(m)
	require.NoError(t, err)
	p2, err := mesh.NewProjection(m)
	require.NoError(t, err)

	mm, err := Merge(p1, p2, Options{})
	require.NoError(t, err)
	require.NotEmpty(t, mm.VertPairs)

	for i, pair := range mm.VertPairs {
		require.InDelta(t, 0, pair[0].Sub(pair[1]).Len(), 1e-6, "pair %d: p1 and p2 must coincide when merging a mesh with itself", i)
	}
}

// Interpolate at r=0 must reproduce mesh 1 (up to the centroid translation
// and common-extent rescale applied during Merge); at r=1, mesh 2.
func TestInterpolateEndpointsMatchSources(t *testing.T) {
	m1 := tetrahedron()
	m2 := rotateZ90(tetrahedron())

	p1, err := mesh.NewProjection(m1)
	require.NoError(t, err)
	p2, err := mesh.NewProjection(m2)
	require.NoError(t, err)

	mm, err := Merge(p1, p2, Options{})
	require.NoError(t, err)

	at0 := mm.Interpolate(0)
	at1 := mm.Interpolate(1)

	require.Equal(t, len(mm.VertPairs), at0.NrVerts())
	require.Equal(t, len(mm.Faces), at0.NrFaces())
	require.Equal(t, at0.NrVerts(), at1.NrVerts())

	for i, pair := range mm.VertPairs {
		require.True(t, pair[0].Equal(at0.Vertices[i]), "vertex %d at r=0 must equal the first pair component", i)
		require.True(t, pair[1].Equal(at1.Vertices[i]), "vertex %d at r=1 must equal the second pair component", i)
	}
}

// Every traced face must come out CCW-oriented (positive signed volume
// against the blended centroid), at every ratio in a sweep.
func TestInterpolateSweepStaysOriented(t *testing.T) {
	m1 := tetrahedron()
	m2 := rotateZ90(tetrahedron())

	p1, err := mesh.NewProjection(m1)
	require.NoError(t, err)
	p2, err := mesh.NewProjection(m2)
	require.NoError(t, err)

	mm, err := Merge(p1, p2, Options{})
	require.NoError(t, err)
	require.NotEmpty(t, mm.Faces)

	for _, r := range []float64{0, 0.25, 0.5, 0.75, 1} {
		m := mm.Interpolate(r)
		center := m.Center()
		for _, f := range m.Faces {
			a := m.Vertices[f[0]].Sub(center)
			b := m.Vertices[f[1]].Sub(center)
			c := m.Vertices[f[2]].Sub(center)
			require.Greater(t, geo.Det(a, b, c), -geo.EPS, "face must stay CCW-oriented at ratio %v", r)
		}
	}
}

// EdgeOnly degenerates every edge into a zero-area triangle: each face is
// a 3-cycle (From, To, a duplicate of To), so it carries no real area but
// still round-trips through triangulateDedupOrient without panicking.
func TestMergeEdgeOnly(t *testing.T) {
	m := tetrahedron()
	p1, err := mesh.NewProjection(m)
	require.NoError(t, err)
	p2, err := mesh.NewProjection(m)
	require.NoError(t, err)

	mm, err := Merge(p1, p2, Options{EdgeOnly: true})
	require.NoError(t, err)
	require.NotEmpty(t, mm.Faces)
	// The overlay keeps both meshes' vertices (no crossings here), and
	// edge-only mode doubles that list.
	require.Equal(t, 2*(len(p1.SphereVerts)+len(p2.SphereVerts)), len(mm.VertPairs), "edge-only duplicates every vertex position")
}

// Scenario from spec.md §8 scenario 3: merging a cube with an octahedron
// (distinct topology and vertex/face counts on each side) must still
// produce a closed, triangle-only, genus-0 merged mesh — V-E+F=2, derived
// from the final triangulated face list.
func TestMergeCubeOctahedronEulerCharacteristic(t *testing.T) {
	cube := mesh.Cube(geo.New(0, 0, 0), 1)
	oct := mesh.Octahedron(geo.New(0, 0, 0), 1.5)

	p1, err := mesh.NewProjection(cube)
	require.NoError(t, err)
	p2, err := mesh.NewProjection(oct)
	require.NoError(t, err)

	mm, err := Merge(p1, p2, Options{})
	require.NoError(t, err)
	require.NotEmpty(t, mm.Faces)

	edges := edgeset.New()
	for _, f := range mm.Faces {
		require.Len(t, f, 3, "every merged face must be a triangle")
		edges.Add(f[0], f[1])
		edges.Add(f[1], f[2])
		edges.Add(f[2], f[0])
	}

	v := len(mm.VertPairs)
	e := edges.Len()
	f := len(mm.Faces)
	require.Equal(t, 2, v-e+f, "Euler characteristic must be 2 for a genus-0 cube/octahedron merge")
}

// SphereOnly skips back-projection entirely: both pair components are the
// unprojected sphere position, so they always coincide exactly.
func TestMergeSphereOnly(t *testing.T) {
	m1 := tetrahedron()
	m2 := rotateZ90(tetrahedron())

	p1, err := mesh.NewProjection(m1)
	require.NoError(t, err)
	p2, err := mesh.NewProjection(m2)
	require.NoError(t, err)

	mm, err := Merge(p1, p2, Options{SphereOnly: true})
	require.NoError(t, err)
	for i, pair := range mm.VertPairs {
		require.True(t, pair[0].Equal(pair[1]), "vertex %d: sphere-only pairs must coincide before normalization collapses them further", i)
	}
}
