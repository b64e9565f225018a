package engine

import (
	"github.com/NickShargan/utils-3d/pkg/mesh"
	"github.com/NickShargan/utils-3d/pkg/slice"
)

// Object is a named scene entry: either a mesh or a cut curve,
// registered from script code with (part ...) or (curve ...).
type Object struct {
	Name  string
	Mesh  *mesh.Mesh   // nil for curve objects
	Curve *slice.Curve // nil for mesh objects
}

// Scene is the ordered output of a script evaluation. Objects keep
// their registration order so downstream consumers (file export,
// rendering) are deterministic.
type Scene struct {
	Objects []Object
}

// NewScene returns an empty scene.
func NewScene() *Scene {
	return &Scene{}
}

// AddMesh registers a named mesh.
func (s *Scene) AddMesh(name string, m *mesh.Mesh) {
	s.Objects = append(s.Objects, Object{Name: name, Mesh: m})
}

// AddCurve registers a named cut curve.
func (s *Scene) AddCurve(name string, c *slice.Curve) {
	s.Objects = append(s.Objects, Object{Name: name, Curve: c})
}

// Lookup returns the first object with the given name, or nil.
func (s *Scene) Lookup(name string) *Object {
	for i := range s.Objects {
		if s.Objects[i].Name == name {
			return &s.Objects[i]
		}
	}
	return nil
}
