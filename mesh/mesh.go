// Package mesh holds the plain triangle-mesh value type and its
// sphere-projected derivative used as input to the overlay pipeline.
package mesh

import "spheremorph/geo"

// Mesh is an ordered sequence of vertices plus an ordered sequence of
// faces, each face an ordered list of vertex indices (length >= 3,
// typically 3). Every index in a Face is required to be < len(Vertices).
type Mesh struct {
	Vertices []geo.Vector
	Faces    [][]int
}

// New builds a Mesh from vertices and faces.
func New(verts []geo.Vector, faces [][]int) *Mesh {
	return &Mesh{Vertices: verts, Faces: faces}
}

// NrVerts returns the vertex count.
func (m *Mesh) NrVerts() int { return len(m.Vertices) }

// NrFaces returns the face count.
func (m *Mesh) NrFaces() int { return len(m.Faces) }

// Center returns the arithmetic mean of the mesh's vertices.
func (m *Mesh) Center() geo.Vector {
	return geo.Centroid(m.Vertices)
}
