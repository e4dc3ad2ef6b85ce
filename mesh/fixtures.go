package mesh

import "spheremorph/geo"

// Cube returns a triangulated cube centered at center with the given half
// extent: 8 vertices, 12 triangular faces. Adapted from the teacher's
// pkg/geometry.CreateCubeMesh, which built the same 8 corners but left
// each side as a single quad face; every face here is split into two
// triangles since this pipeline admits triangles only.
func Cube(center geo.Vector, halfExtent float64) *Mesh {
	r := halfExtent
	cx, cy, cz := center.X, center.Y, center.Z

	verts := []geo.Vector{
		geo.New(cx-r, cy-r, cz-r), // 0: left-bottom-back
		geo.New(cx+r, cy-r, cz-r), // 1: right-bottom-back
		geo.New(cx+r, cy+r, cz-r), // 2: right-top-back
		geo.New(cx-r, cy+r, cz-r), // 3: left-top-back
		geo.New(cx-r, cy-r, cz+r), // 4: left-bottom-front
		geo.New(cx+r, cy-r, cz+r), // 5: right-bottom-front
		geo.New(cx+r, cy+r, cz+r), // 6: right-top-front
		geo.New(cx-r, cy+r, cz+r), // 7: left-top-front
	}

	quads := [][4]int{
		{0, 3, 2, 1}, // back
		{4, 5, 6, 7}, // front
		{0, 1, 5, 4}, // bottom
		{3, 7, 6, 2}, // top
		{0, 4, 7, 3}, // left
		{1, 2, 6, 5}, // right
	}
	faces := make([][]int, 0, len(quads)*2)
	for _, q := range quads {
		faces = append(faces, []int{q[0], q[1], q[2]}, []int{q[0], q[2], q[3]})
	}

	return New(verts, faces)
}

// Octahedron returns a regular octahedron centered at center with the
// given circumradius: 6 vertices, 8 triangular faces — the spec.md §8
// scenario 3 counterpart to Cube.
func Octahedron(center geo.Vector, radius float64) *Mesh {
	r := radius
	cx, cy, cz := center.X, center.Y, center.Z

	verts := []geo.Vector{
		geo.New(cx+r, cy, cz), // 0: +x
		geo.New(cx-r, cy, cz), // 1: -x
		geo.New(cx, cy+r, cz), // 2: +y
		geo.New(cx, cy-r, cz), // 3: -y
		geo.New(cx, cy, cz+r), // 4: +z
		geo.New(cx, cy, cz-r), // 5: -z
	}

	faces := [][]int{
		{0, 2, 4}, {2, 1, 4}, {1, 3, 4}, {3, 0, 4},
		{2, 0, 5}, {1, 2, 5}, {3, 1, 5}, {0, 3, 5},
	}

	return New(verts, faces)
}
