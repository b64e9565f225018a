package mesh

import "fmt"

// Validate checks the structural invariants of the mesh: a renderable
// mesh has at least one vertex and one face, every face has at least
// three vertices, and every face index is within vertex bounds.
func (m *Mesh) Validate() error {
	if m.IsEmpty() {
		return ErrEmptyMesh
	}
	for fi, f := range m.Faces {
		if len(f) < 3 {
			return fmt.Errorf("face %d has %d vertices, need at least 3", fi, len(f))
		}
		for _, idx := range f {
			if idx < 0 || idx >= len(m.Vertices) {
				return fmt.Errorf("face %d references vertex %d, mesh has %d vertices",
					fi, idx, len(m.Vertices))
			}
		}
	}
	return nil
}
