package meshio

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/geo/r3"

	"github.com/NickShargan/utils-3d/pkg/mesh"
	"github.com/NickShargan/utils-3d/pkg/slice"
)

func cubeMesh() *mesh.Mesh {
	return &mesh.Mesh{
		Vertices: []r3.Vector{
			{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0},
			{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 1},
		},
		Faces: [][]int{
			{0, 3, 2, 1}, {4, 5, 6, 7},
			{0, 1, 5, 4}, {1, 2, 6, 5}, {2, 3, 7, 6}, {3, 0, 4, 7},
		},
	}
}

func TestFormatForPath(t *testing.T) {
	cases := []struct {
		path string
		want Format
	}{
		{"model.obj", FormatOBJ},
		{"MODEL.OBJ", FormatOBJ},
		{"out/part.stl", FormatSTL},
		{"scan.ply", FormatPLY},
	}
	for _, c := range cases {
		got, err := FormatForPath(c.path)
		if err != nil {
			t.Errorf("FormatForPath(%q) failed: %v", c.path, err)
			continue
		}
		if got != c.want {
			t.Errorf("FormatForPath(%q) = %v, want %v", c.path, got, c.want)
		}
	}

	_, err := FormatForPath("scene.gltf")
	var ufe *UnsupportedFormatError
	if !errors.As(err, &ufe) {
		t.Fatalf("err = %v, want UnsupportedFormatError", err)
	}
	if ufe.Ext != ".gltf" {
		t.Errorf("ext = %q, want .gltf", ufe.Ext)
	}
}

func TestOBJRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cube.obj")
	src := cubeMesh()

	if err := WriteMesh(src, path); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	got, err := ReadMesh(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if got.VertexCount() != 8 || got.FaceCount() != 6 {
		t.Fatalf("counts = %d/%d, want 8/6", got.VertexCount(), got.FaceCount())
	}
	for i, v := range got.Vertices {
		if v != src.Vertices[i] {
			t.Errorf("vertex %d = %v, want %v", i, v, src.Vertices[i])
		}
	}
	for i, f := range got.Faces {
		if len(f) != len(src.Faces[i]) {
			t.Fatalf("face %d has %d vertices, want %d", i, len(f), len(src.Faces[i]))
		}
		for j, idx := range f {
			if idx != src.Faces[i][j] {
				t.Errorf("face %d index %d = %d, want %d", i, j, idx, src.Faces[i][j])
			}
		}
	}
}

func TestReadOBJIndexVariants(t *testing.T) {
	const data = `# comment
v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 1
f 1/1/1 2/2/1 3/3/1
f -3 -2 -1
`
	m, err := readOBJ(strings.NewReader(data))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if m.VertexCount() != 3 || m.FaceCount() != 2 {
		t.Fatalf("counts = %d/%d, want 3/2", m.VertexCount(), m.FaceCount())
	}
	for _, f := range m.Faces {
		if f[0] != 0 || f[1] != 1 || f[2] != 2 {
			t.Errorf("face = %v, want [0 1 2]", f)
		}
	}
}

func TestReadOBJErrors(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"bad coordinate", "v 0 zero 0\n"},
		{"short vertex", "v 1 2\n"},
		{"bad face index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 x\n"},
		{"index out of range", "v 0 0 0\nf 1 2 3\n"},
	}
	for _, c := range cases {
		if _, err := readOBJ(strings.NewReader(c.data)); err == nil {
			t.Errorf("%s: expected a parse error", c.name)
		}
	}
}

func TestSTLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cube.stl")
	src := cubeMesh()

	if err := WriteMesh(src, path); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	got, err := ReadMesh(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	// Quads triangulate on write; shared vertices weld back on read.
	if got.VertexCount() != 8 {
		t.Errorf("vertex count = %d, want 8", got.VertexCount())
	}
	if got.FaceCount() != 12 {
		t.Errorf("face count = %d, want 12", got.FaceCount())
	}
	min, max := got.Bounds()
	if min != (r3.Vector{}) || max != (r3.Vector{X: 1, Y: 1, Z: 1}) {
		t.Errorf("bounds = %v/%v, want unit cube", min, max)
	}
}

func TestReadSTLAscii(t *testing.T) {
	const data = `solid tri
facet normal 0 0 1
  outer loop
    vertex 0 0 0
    vertex 1 0 0
    vertex 0 1 0
  endloop
endfacet
facet normal 0 0 1
  outer loop
    vertex 1 0 0
    vertex 1 1 0
    vertex 0 1 0
  endloop
endfacet
endsolid tri
`
	m, err := readSTL(strings.NewReader(data))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if m.VertexCount() != 4 {
		t.Errorf("welded vertex count = %d, want 4", m.VertexCount())
	}
	if m.FaceCount() != 2 {
		t.Errorf("face count = %d, want 2", m.FaceCount())
	}
}

func TestWritePLY(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cube.ply")
	if err := WriteMesh(cubeMesh(), path); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	text := string(data)
	for _, want := range []string{
		"ply\n", "format ascii 1.0\n",
		"element vertex 8\n", "element face 6\n",
		"property list uchar int vertex_indices\n", "end_header\n",
		"4 0 3 2 1\n",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("ply output missing %q", want)
		}
	}
}

func TestReadPLYUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.ply")
	if err := WriteMesh(cubeMesh(), path); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	_, err := ReadMesh(path)
	var ufe *UnsupportedFormatError
	if !errors.As(err, &ufe) {
		t.Errorf("reading ply: err = %v, want UnsupportedFormatError", err)
	}
}

func TestReadEmptyMesh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.obj")
	if err := os.WriteFile(path, []byte("# nothing here\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := ReadMesh(path)
	if !errors.Is(err, mesh.ErrEmptyMesh) {
		t.Errorf("err = %v, want ErrEmptyMesh", err)
	}
}

func TestWriteMeshCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "cube.obj")
	if err := WriteMesh(cubeMesh(), path); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("output file missing: %v", err)
	}
}

func TestWriteCurveOBJ(t *testing.T) {
	c := &slice.Curve{Polylines: []slice.Polyline{
		{Points: []r3.Vector{{X: 0}, {X: 1}, {X: 1, Y: 1}}, Closed: true},
		{Points: []r3.Vector{{Z: 5}}},
	}}
	path := filepath.Join(t.TempDir(), "cut.obj")
	if err := WriteCurve(c, path); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	// A closed loop repeats its first index; a lone contact is a point.
	if !strings.Contains(text, "l 1 2 3 1\n") {
		t.Errorf("missing closed line element in:\n%s", text)
	}
	if !strings.Contains(text, "p 4\n") {
		t.Errorf("missing point element in:\n%s", text)
	}
}

func TestWriteCurvePLY(t *testing.T) {
	c := &slice.Curve{Polylines: []slice.Polyline{
		{Points: []r3.Vector{{X: 0}, {X: 1}, {X: 1, Y: 1}}, Closed: true},
	}}
	path := filepath.Join(t.TempDir(), "cut.ply")
	if err := WriteCurve(c, path); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	for _, want := range []string{
		"element vertex 3\n", "element edge 3\n", "2 0\n",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("ply curve output missing %q", want)
		}
	}
}

func TestWriteCurveSTLRejected(t *testing.T) {
	c := &slice.Curve{Polylines: []slice.Polyline{
		{Points: []r3.Vector{{X: 0}, {X: 1}}},
	}}
	path := filepath.Join(t.TempDir(), "cut.stl")
	if err := WriteCurve(c, path); err == nil {
		t.Error("writing a curve as STL should fail")
	}
}
