package mesh

import "errors"

// ErrInvalidScale reports a non-positive uniform scale factor.
var ErrInvalidScale = errors.New("scale factor must be > 0")

// ErrEmptyMesh reports a mesh with no usable geometry where geometry
// is required.
var ErrEmptyMesh = errors.New("mesh has no geometry")
