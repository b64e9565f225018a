// Package mesh defines the polygonal mesh data model shared by the
// primitive generators, the file readers/writers and the plane-slicing
// core. A Mesh is value-like: every producing operation returns a new,
// independently owned instance and never mutates its input.
package mesh

import (
	"github.com/golang/geo/r3"
)

// Mesh is an ordered sequence of vertex positions plus an ordered
// sequence of polygonal faces. Each face is a list of vertex indices;
// faces with more than three vertices are fanned into triangles on
// demand by Triangles.
type Mesh struct {
	Vertices []r3.Vector
	Faces    [][]int
}

// New returns an empty mesh.
func New() *Mesh {
	return &Mesh{}
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// FaceCount returns the number of polygonal faces.
func (m *Mesh) FaceCount() int {
	return len(m.Faces)
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0 || len(m.Faces) == 0
}

// Triangle is a triple of vertex indices into Mesh.Vertices.
type Triangle [3]int

// Triangles returns the triangulated faces of the mesh. Triangular
// faces are passed through; larger polygons are split with a fan
// anchored at their first vertex. Faces with fewer than three vertices
// are skipped.
func (m *Mesh) Triangles() []Triangle {
	tris := make([]Triangle, 0, len(m.Faces))
	for _, f := range m.Faces {
		if len(f) < 3 {
			continue
		}
		for i := 1; i+1 < len(f); i++ {
			tris = append(tris, Triangle{f[0], f[i], f[i+1]})
		}
	}
	return tris
}

// Bounds returns the axis-aligned bounding box of the mesh vertices.
// An empty mesh has zero bounds.
func (m *Mesh) Bounds() (min, max r3.Vector) {
	if len(m.Vertices) == 0 {
		return r3.Vector{}, r3.Vector{}
	}
	min, max = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		if v.X < min.X {
			min.X = v.X
		}
		if v.Y < min.Y {
			min.Y = v.Y
		}
		if v.Z < min.Z {
			min.Z = v.Z
		}
		if v.X > max.X {
			max.X = v.X
		}
		if v.Y > max.Y {
			max.Y = v.Y
		}
		if v.Z > max.Z {
			max.Z = v.Z
		}
	}
	return min, max
}

// Centroid returns the mean of the mesh vertices, the same center of
// mass an unweighted point average produces. An empty mesh has a zero
// centroid.
func (m *Mesh) Centroid() r3.Vector {
	if len(m.Vertices) == 0 {
		return r3.Vector{}
	}
	var sum r3.Vector
	for _, v := range m.Vertices {
		sum = sum.Add(v)
	}
	return sum.Mul(1.0 / float64(len(m.Vertices)))
}

// Clone returns a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	out := &Mesh{
		Vertices: make([]r3.Vector, len(m.Vertices)),
		Faces:    make([][]int, len(m.Faces)),
	}
	copy(out.Vertices, m.Vertices)
	for i, f := range m.Faces {
		out.Faces[i] = make([]int, len(f))
		copy(out.Faces[i], f)
	}
	return out
}
