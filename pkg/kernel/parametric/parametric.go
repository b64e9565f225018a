// Package parametric implements the kernel.Kernel interface with
// direct analytic tessellation of the primitive surfaces. It is the
// default backend: vertex and face counts are exact functions of the
// requested resolution, which downstream cut-curve consumers rely on.
package parametric

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"

	"github.com/NickShargan/utils-3d/pkg/kernel"
	"github.com/NickShargan/utils-3d/pkg/mesh"
)

// Compile-time interface check.
var _ kernel.Kernel = (*Parametric)(nil)

// Parametric implements kernel.Kernel by sampling the primitive
// surfaces directly.
type Parametric struct{}

// New returns a new parametric kernel.
func New() *Parametric {
	return &Parametric{}
}

// Sphere tessellates a latitude/longitude sphere: two pole vertices
// plus phiRes-1 rings of thetaRes vertices, triangle fans at the poles
// and quads between rings.
func (k *Parametric) Sphere(radius float64, center r3.Vector, thetaRes, phiRes int) (*mesh.Mesh, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("sphere radius must be > 0, got %v", radius)
	}
	if thetaRes < 3 {
		return nil, fmt.Errorf("sphere theta resolution must be >= 3, got %d", thetaRes)
	}
	if phiRes < 2 {
		return nil, fmt.Errorf("sphere phi resolution must be >= 2, got %d", phiRes)
	}

	m := mesh.New()
	north := center.Add(r3.Vector{Z: radius})
	south := center.Add(r3.Vector{Z: -radius})
	m.Vertices = append(m.Vertices, north, south)

	// Rings from just below the north pole down to just above the south.
	for i := 1; i < phiRes; i++ {
		phi := math.Pi * float64(i) / float64(phiRes)
		z := radius * math.Cos(phi)
		rr := radius * math.Sin(phi)
		for j := 0; j < thetaRes; j++ {
			theta := 2 * math.Pi * float64(j) / float64(thetaRes)
			m.Vertices = append(m.Vertices, center.Add(r3.Vector{
				X: rr * math.Cos(theta),
				Y: rr * math.Sin(theta),
				Z: z,
			}))
		}
	}

	ring := func(i, j int) int { // i in [1, phiRes-1], j wraps
		return 2 + (i-1)*thetaRes + (j % thetaRes)
	}

	// Pole fans.
	for j := 0; j < thetaRes; j++ {
		m.Faces = append(m.Faces, []int{0, ring(1, j), ring(1, j+1)})
		m.Faces = append(m.Faces, []int{1, ring(phiRes-1, j+1), ring(phiRes-1, j)})
	}
	// Quad strips between consecutive rings.
	for i := 1; i < phiRes-1; i++ {
		for j := 0; j < thetaRes; j++ {
			m.Faces = append(m.Faces, []int{
				ring(i, j), ring(i, j+1), ring(i+1, j+1), ring(i+1, j),
			})
		}
	}

	return m, nil
}

// Cone tessellates a capped cone pointing along +Z: the apex sits at
// center + (0,0,height/2), the base circle of resolution vertices at
// center - (0,0,height/2). The lateral surface is a fan of resolution
// triangles; the base is a single polygon face.
func (k *Parametric) Cone(height, radius float64, center r3.Vector, resolution int) (*mesh.Mesh, error) {
	if height <= 0 {
		return nil, fmt.Errorf("cone height must be > 0, got %v", height)
	}
	if radius <= 0 {
		return nil, fmt.Errorf("cone radius must be > 0, got %v", radius)
	}
	if resolution < 3 {
		return nil, fmt.Errorf("cone resolution must be >= 3, got %d", resolution)
	}

	m := mesh.New()
	apex := center.Add(r3.Vector{Z: height / 2})
	baseZ := center.Z - height/2
	m.Vertices = append(m.Vertices, apex)
	for j := 0; j < resolution; j++ {
		theta := 2 * math.Pi * float64(j) / float64(resolution)
		m.Vertices = append(m.Vertices, r3.Vector{
			X: center.X + radius*math.Cos(theta),
			Y: center.Y + radius*math.Sin(theta),
			Z: baseZ,
		})
	}

	for j := 0; j < resolution; j++ {
		m.Faces = append(m.Faces, []int{0, 1 + j, 1 + (j+1)%resolution})
	}
	// Base polygon, wound opposite to the lateral fan so the cap faces
	// outward.
	base := make([]int, resolution)
	for j := 0; j < resolution; j++ {
		base[j] = resolution - j
	}
	m.Faces = append(m.Faces, base)

	return m, nil
}
