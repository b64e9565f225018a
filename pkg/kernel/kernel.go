// Package kernel defines the abstract primitive-generator interface.
// Implementations (parametric, sdfx) produce sphere and cone meshes
// behind this interface. The kernel abstraction allows swapping
// tessellation backends without changing the rest of the system.
package kernel

import (
	"github.com/golang/geo/r3"

	"github.com/NickShargan/utils-3d/pkg/mesh"
)

// Default tessellation resolutions, matching the common 32-subdivision
// primitive sources.
const (
	DefaultThetaRes   = 32
	DefaultPhiRes     = 32
	DefaultResolution = 32
)

// Kernel is the abstract primitive generator.
type Kernel interface {
	// Sphere produces a sphere mesh centered at center. thetaRes is the
	// number of subdivisions around the longitude, phiRes the number
	// from pole to pole.
	Sphere(radius float64, center r3.Vector, thetaRes, phiRes int) (*mesh.Mesh, error)

	// Cone produces a cone mesh pointing along +Z with the given height
	// and base radius, centered (bounding-box center) at center.
	// resolution is the number of points on the base circle.
	Cone(height, radius float64, center r3.Vector, resolution int) (*mesh.Mesh, error)
}
