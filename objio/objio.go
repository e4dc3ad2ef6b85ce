// Package objio reads and writes the Wavefront-subset mesh format used by
// the morphing pipeline's external interface (spec.md §6): `v`/`f` lines
// for a plain Mesh, plus `v`/`u`/`f` for a merged vertex-pair dump.
package objio

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/exp/mmap"

	"spheremorph/geo"
	"spheremorph/mesh"
	"spheremorph/morpherr"
	"spheremorph/morph"
)

// mmapThreshold is the file size above which Load reads through a
// memory-mapped reader rather than os.ReadFile, mirroring the teacher's
// scene baker's size-gated choice between a full read and mmap.Open
// (pkg/renderer/bake.go's LoadBakedScene).
const mmapThreshold = 64 * 1024 * 1024

// Load reads a Mesh from a Wavefront-subset OBJ file: `v x y z` vertex
// lines and `f i j k` triangular face lines with 1-based indices. Every
// other line (blank, comment, or any other token) is skipped.
func Load(path string) (*mesh.Mesh, error) {
	r, closer, err := openSource(path)
	if err != nil {
		return nil, morpherr.NewParseError(path, 0, err)
	}
	defer closer()

	var verts []geo.Vector
	var faces [][]int

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		switch fields[0] {
		case "v":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, morpherr.NewParseError(path, lineNo, err)
			}
			verts = append(verts, v)
		case "f":
			f, err := parseFace(fields[1:], len(verts))
			if err != nil {
				return nil, morpherr.NewParseError(path, lineNo, err)
			}
			faces = append(faces, f)
		default:
			// not part of the subset: ignored
		}
	}
	if err := sc.Err(); err != nil {
		return nil, morpherr.NewParseError(path, lineNo, err)
	}
	return mesh.New(verts, faces), nil
}

// openSource returns a reader over path's contents and a closer to run
// when done. Files at or above mmapThreshold are memory-mapped; smaller
// files are read whole, since the scanning overhead dominates for them.
func openSource(path string) (io.Reader, func(), error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, err
	}
	if info.Size() < mmapThreshold {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, err
		}
		return bytes.NewReader(data), func() {}, nil
	}

	r, err := mmap.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return io.NewSectionReader(r, 0, int64(r.Len())), func() { r.Close() }, nil
}

func parseVec3(fields []string) (geo.Vector, error) {
	if len(fields) != 3 {
		return geo.Vector{}, fmt.Errorf("vertex line wants 3 coordinates, got %d", len(fields))
	}
	var c [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return geo.Vector{}, fmt.Errorf("bad coordinate %q: %w", f, err)
		}
		c[i] = v
	}
	return geo.New(c[0], c[1], c[2]), nil
}

func parseFace(fields []string, nrVerts int) ([]int, error) {
	if len(fields) != 3 {
		return nil, fmt.Errorf("face line wants exactly 3 indices (triangles only), got %d", len(fields))
	}
	idx := make([]int, 3)
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("bad face index %q: %w", f, err)
		}
		n--
		if n < 0 || n >= nrVerts {
			return nil, fmt.Errorf("face index %d out of range [0,%d)", n, nrVerts)
		}
		idx[i] = n
	}
	return idx, nil
}

// Save writes m as a Wavefront-subset OBJ file: `v` lines followed by `f`
// lines, 1-based indices.
func Save(path string, m *mesh.Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, v := range m.Vertices {
		fmt.Fprintf(w, "v %.6f %.6f %.6f\n", v.X, v.Y, v.Z)
	}
	for _, face := range m.Faces {
		fmt.Fprintf(w, "f %d %d %d\n", face[0]+1, face[1]+1, face[2]+1)
	}
	return w.Flush()
}

// SaveMerged writes mm as the merged vertex-pair dump format of spec.md
// §6: every `v` line (the pair's first component) is immediately followed
// by its `u` line (the second component), then the triangulated face
// list, 1-based, referencing the shared v/u index space.
func SaveMerged(path string, mm *morph.MergedMesh) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, pair := range mm.VertPairs {
		fmt.Fprintf(w, "v %.6f %.6f %.6f\n", pair[0].X, pair[0].Y, pair[0].Z)
		fmt.Fprintf(w, "u %.6f %.6f %.6f\n", pair[1].X, pair[1].Y, pair[1].Z)
	}
	for _, tri := range mm.Faces {
		fmt.Fprintf(w, "f %d %d %d\n", tri[0]+1, tri[1]+1, tri[2]+1)
	}
	return w.Flush()
}
