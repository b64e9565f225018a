// Package slice implements the plane/mesh intersection core: a
// canonical plane representation, a boolean intersection predicate, a
// cut-curve extractor that stitches per-triangle crossing segments into
// maximal polylines, and a connected-component splitter that breaks a
// cut curve into independent loops and chains.
package slice

import (
	"errors"

	"github.com/golang/geo/r3"
)

// ErrInvalidPlane reports a degenerate (zero) plane normal.
var ErrInvalidPlane = errors.New("plane normal must be non-zero")

// Plane is an infinite plane given by a point on the plane and a
// non-zero normal vector. The normal is not required to be unit length;
// signed distances are scaled by its magnitude, which never changes the
// side classification.
type Plane struct {
	Origin r3.Vector
	Normal r3.Vector
}

// NewPlane builds a plane from an origin point and a normal vector.
func NewPlane(origin, normal r3.Vector) (Plane, error) {
	if normal == (r3.Vector{}) {
		return Plane{}, ErrInvalidPlane
	}
	return Plane{Origin: origin, Normal: normal}, nil
}

// FromImplicit builds a plane from implicit coefficients satisfying
// a*x + b*y + c*z = d. The origin is the point on the plane closest to
// the coordinate origin and the normal is (a, b, c), unnormalized.
func FromImplicit(a, b, c, d float64) (Plane, error) {
	n := r3.Vector{X: a, Y: b, Z: c}
	normSq := n.Dot(n)
	if normSq == 0 {
		return Plane{}, ErrInvalidPlane
	}
	return Plane{Origin: n.Mul(d / normSq), Normal: n}, nil
}

// SignedDistance returns dot(normal, pt - origin). The sign indicates
// which side of the plane pt lies on; zero means pt is on the plane.
func (p Plane) SignedDistance(pt r3.Vector) float64 {
	return p.Normal.Dot(pt.Sub(p.Origin))
}
