package mesh

import (
	"fmt"

	"github.com/golang/geo/r3"
)

// Scale uniformly scales the mesh about a center point and returns the
// scaled mesh as a new object. A nil center scales about the mesh
// centroid. A factor <= 0 fails with ErrInvalidScale.
func (m *Mesh) Scale(factor float64, center *r3.Vector) (*Mesh, error) {
	if factor <= 0 {
		return nil, fmt.Errorf("scale by %v: %w", factor, ErrInvalidScale)
	}

	c := m.Centroid()
	if center != nil {
		c = *center
	}

	out := m.Clone()
	for i, v := range out.Vertices {
		out.Vertices[i] = c.Add(v.Sub(c).Mul(factor))
	}
	return out, nil
}

// Merge appends b onto a and welds exactly coincident vertices,
// returning the combined surface as a new mesh. Faces keep their
// orientation; vertex order follows first occurrence in a then b.
func Merge(a, b *Mesh) *Mesh {
	out := &Mesh{}
	seen := make(map[[3]float64]int, len(a.Vertices)+len(b.Vertices))

	addVertex := func(v r3.Vector) int {
		key := [3]float64{v.X, v.Y, v.Z}
		if idx, ok := seen[key]; ok {
			return idx
		}
		idx := len(out.Vertices)
		out.Vertices = append(out.Vertices, v)
		seen[key] = idx
		return idx
	}

	addMesh := func(m *Mesh) {
		remap := make([]int, len(m.Vertices))
		for i, v := range m.Vertices {
			remap[i] = addVertex(v)
		}
		for _, f := range m.Faces {
			nf := make([]int, len(f))
			for i, idx := range f {
				nf[i] = remap[idx]
			}
			out.Faces = append(out.Faces, nf)
		}
	}

	addMesh(a)
	addMesh(b)
	return out
}
