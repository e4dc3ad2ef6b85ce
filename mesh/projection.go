package mesh

import (
	"errors"

	"spheremorph/edgeset"
	"spheremorph/geo"
	"spheremorph/morpherr"
)

var errNoFaceHit = errors.New("mesh is non-star-shaped with respect to its centroid: no face hit")

// SphereRadius is the fixed radius of the common bounding sphere both
// meshes are projected onto (spec.md §3).
const SphereRadius = 100.0

// Projection owns an original Mesh and derives, immutably, its centroid,
// its vertices' central projection onto the common sphere, and the
// canonical edge set induced by its face boundaries.
//
// SphereVerts stores direction vectors of magnitude SphereRadius, relative
// to Center rather than translated back into world space (geo.Vector's
// ProjectDirection, not ProjectToSphere). That is what lets a Projection's
// SphereVerts be compared directly against another Projection's, as
// great-arc endpoints on one shared sphere centered at the origin, even
// though the two meshes' Centers sit at different points in world space.
type Projection struct {
	Mesh        *Mesh
	Center      geo.Vector
	SphereVerts []geo.Vector
	Edges       *edgeset.Set
}

// NewProjection builds a Projection from m. It never mutates m.
func NewProjection(m *Mesh) (*Projection, error) {
	center := m.Center()

	sphereVerts := make([]geo.Vector, len(m.Vertices))
	for i, v := range m.Vertices {
		sv, err := v.ProjectDirection(center, SphereRadius)
		if err != nil {
			return nil, err
		}
		sphereVerts[i] = sv
	}

	edges := edgeset.New()
	for _, f := range m.Faces {
		n := len(f)
		for i := 0; i < n; i++ {
			edges.Add(f[i], f[(i+1)%n])
		}
	}

	return &Projection{
		Mesh:        m,
		Center:      center,
		SphereVerts: sphereVerts,
		Edges:       edges,
	}, nil
}

// NrVerts returns the underlying mesh's vertex count.
func (p *Projection) NrVerts() int { return p.Mesh.NrVerts() }

// Vertex returns the original (unprojected) vertex at index i.
func (p *Projection) Vertex(i int) geo.Vector { return p.Mesh.Vertices[i] }

// ProjectFromSphere back-projects a point on the sphere (taken as a
// direction from Center) onto the original surface: the unique face
// whose triangle the ray from Center through v intersects at a positive
// parameter. Per spec.md §9 Open Question (b), when more than one face is
// hit (possible for non-convex meshes) the nearest positive-t hit wins.
func (p *Projection) ProjectFromSphere(v geo.Vector) (geo.Vector, error) {
	best, bestT, found := geo.Vector{}, 0.0, false
	target := p.Center.Add(v)
	for _, f := range p.Mesh.Faces {
		tri := geo.NewTriangle(p.Mesh.Vertices[f[0]], p.Mesh.Vertices[f[1]], p.Mesh.Vertices[f[2]])
		hit, t, ok := tri.Intersect(p.Center, target)
		if !ok {
			continue
		}
		if !found || t < bestT {
			best, bestT, found = hit, t, true
		}
	}
	if !found {
		return geo.Vector{}, morpherr.NewProjectionError(nil, errNoFaceHit)
	}
	return best, nil
}
