// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library. Primitives are modeled
// as signed distance fields and meshed with marching cubes, so surface
// quality is governed by the cell count rather than by the requested
// resolutions.
package sdfx

import (
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/golang/geo/r3"

	"github.com/NickShargan/utils-3d/pkg/kernel"
	"github.com/NickShargan/utils-3d/pkg/mesh"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

// defaultMeshCells controls marching cubes tessellation resolution.
const defaultMeshCells = 100

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct{}

// New returns a new SdfxKernel.
func New() *SdfxKernel {
	return &SdfxKernel{}
}

// Sphere models a sphere SDF at the given center. The theta/phi
// resolutions are ignored since SDF surfaces are smooth.
func (k *SdfxKernel) Sphere(radius float64, center r3.Vector, thetaRes, phiRes int) (*mesh.Mesh, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("sphere radius must be > 0, got %v", radius)
	}
	s, err := sdf.Sphere3D(radius)
	if err != nil {
		return nil, fmt.Errorf("sdfx.Sphere3D: %w", err)
	}
	return toMesh(translate(s, center)), nil
}

// Cone models a cone SDF pointing along +Z, centered at center. The
// resolution parameter is ignored since SDF surfaces are smooth.
func (k *SdfxKernel) Cone(height, radius float64, center r3.Vector, resolution int) (*mesh.Mesh, error) {
	if height <= 0 {
		return nil, fmt.Errorf("cone height must be > 0, got %v", height)
	}
	if radius <= 0 {
		return nil, fmt.Errorf("cone radius must be > 0, got %v", radius)
	}
	s, err := sdf.Cone3D(height, radius, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("sdfx.Cone3D: %w", err)
	}
	return toMesh(translate(s, center)), nil
}

// translate moves an SDF so its local origin lands on center.
func translate(s sdf.SDF3, center r3.Vector) sdf.SDF3 {
	if center == (r3.Vector{}) {
		return s
	}
	m := sdf.Translate3d(v3.Vec{X: center.X, Y: center.Y, Z: center.Z})
	return sdf.Transform3D(s, m)
}

// toMesh runs marching cubes over the SDF and welds the resulting
// triangle soup into an indexed mesh.
func toMesh(s sdf.SDF3) *mesh.Mesh {
	renderer := render.NewMarchingCubesUniform(defaultMeshCells)
	triangles := render.ToTriangles(s, renderer)

	m := mesh.New()
	seen := make(map[[3]float64]int, len(triangles))
	addVertex := func(v v3.Vec) int {
		key := [3]float64{v.X, v.Y, v.Z}
		if idx, ok := seen[key]; ok {
			return idx
		}
		idx := len(m.Vertices)
		m.Vertices = append(m.Vertices, r3.Vector{X: v.X, Y: v.Y, Z: v.Z})
		seen[key] = idx
		return idx
	}

	for _, tri := range triangles {
		face := []int{addVertex(tri[0]), addVertex(tri[1]), addVertex(tri[2])}
		// Marching cubes can emit slivers whose vertices weld together.
		if face[0] == face[1] || face[1] == face[2] || face[0] == face[2] {
			continue
		}
		m.Faces = append(m.Faces, face)
	}
	return m
}
