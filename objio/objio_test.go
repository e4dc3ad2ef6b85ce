package objio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"spheremorph/geo"
	"spheremorph/mesh"
	"spheremorph/morph"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	m := mesh.New(
		[]geo.Vector{geo.New(0, 0, 0), geo.New(1, 0, 0), geo.New(0, 1, 0)},
		[][]int{{0, 1, 2}},
	)

	dir := t.TempDir()
	path := filepath.Join(dir, "tri.obj")
	require.NoError(t, Save(path, m))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, len(m.Vertices), len(got.Vertices))
	require.Equal(t, len(m.Faces), len(got.Faces))
	for i, v := range m.Vertices {
		require.True(t, v.Equal(got.Vertices[i]))
	}
	require.Equal(t, m.Faces[0], got.Faces[0])
}

func TestLoadRejectsQuadFace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quad.obj")
	content := "v 0 0 0\nv 1 0 0\nv 0 1 0\nv 1 1 0\nf 1 2 3 4\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadIgnoresUnrecognizedLine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "extra.obj")
	content := "v 0 0 0\nvt 0 0\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	m, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 1, len(m.Vertices))
}

func TestLoadSkipsBlankAndCommentLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "commented.obj")
	content := "# a comment\n\nv 0 0 0\nv 1 0 0\nv 0 1 0\n\nf 1 2 3\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	m, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 3, len(m.Vertices))
	require.Equal(t, 1, len(m.Faces))
}

func TestSaveMergedFormat(t *testing.T) {
	mm := &morph.MergedMesh{
		VertPairs: [][2]geo.Vector{
			{geo.New(0, 0, 0), geo.New(0, 0, 1)},
			{geo.New(1, 0, 0), geo.New(1, 0, 1)},
			{geo.New(0, 1, 0), geo.New(0, 1, 1)},
		},
		Faces: [][3]int{{0, 1, 2}},
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "merged.obj")
	require.NoError(t, SaveMerged(path, mm))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	require.Contains(t, text, "v 0.000000 0.000000 0.000000\n")
	require.Contains(t, text, "u 0.000000 0.000000 1.000000\n")
	require.Contains(t, text, "f 1 2 3\n")
}
