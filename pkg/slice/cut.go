package slice

import (
	"github.com/golang/geo/r3"

	"github.com/NickShargan/utils-3d/pkg/mesh"
)

// Intersects reports whether the plane crosses the triangulated surface
// of the mesh. A triangle counts as crossed when its vertices are not
// all strictly on one side of the plane, so a vertex lying exactly on
// the plane is a contact. No tolerance band is applied: the exact sign
// of the floating-point distance governs the decision, matching the cut
// extractor. A mesh with zero faces never intersects.
func Intersects(m *mesh.Mesh, p Plane) bool {
	for _, t := range m.Triangles() {
		d0 := p.SignedDistance(m.Vertices[t[0]])
		d1 := p.SignedDistance(m.Vertices[t[1]])
		d2 := p.SignedDistance(m.Vertices[t[2]])
		if (d0 > 0 && d1 > 0 && d2 > 0) || (d0 < 0 && d1 < 0 && d2 < 0) {
			continue
		}
		return true
	}
	return false
}

// Cut computes the intersection curve of the plane with the mesh's
// triangulated surface. Each crossed triangle contributes the segment
// where the plane enters and leaves it; the segments are then stitched
// into maximal polylines. An empty intersection yields an empty curve,
// not an error.
//
// Edge-case policy: a triangle lying entirely in the plane contributes
// its longest edge; a triangle touching the plane at a single vertex
// contributes that point, which surfaces as a one-point polyline unless
// a neighboring triangle already carries it on a segment.
func Cut(m *mesh.Mesh, p Plane) *Curve {
	st := newStitcher()

	for _, t := range m.Triangles() {
		v0, v1, v2 := m.Vertices[t[0]], m.Vertices[t[1]], m.Vertices[t[2]]
		d0 := p.SignedDistance(v0)
		d1 := p.SignedDistance(v1)
		d2 := p.SignedDistance(v2)

		if (d0 > 0 && d1 > 0 && d2 > 0) || (d0 < 0 && d1 < 0 && d2 < 0) {
			continue
		}

		if d0 == 0 && d1 == 0 && d2 == 0 {
			a, b := longestEdge(v0, v1, v2)
			st.addSegment(a, b)
			continue
		}

		verts := [3]r3.Vector{v0, v1, v2}
		dists := [3]float64{d0, d1, d2}
		var crossings []r3.Vector

		// Vertices exactly on the plane are crossing points themselves.
		for i := 0; i < 3; i++ {
			if dists[i] == 0 {
				crossings = appendCrossing(crossings, verts[i])
			}
		}
		// Edges whose endpoints lie strictly on opposite sides cross the
		// plane at the linear interpolation t = d1 / (d1 - d2).
		for i := 0; i < 3; i++ {
			j := (i + 1) % 3
			di, dj := dists[i], dists[j]
			if (di > 0 && dj < 0) || (di < 0 && dj > 0) {
				t := di / (di - dj)
				pt := verts[i].Add(verts[j].Sub(verts[i]).Mul(t))
				crossings = appendCrossing(crossings, pt)
			}
		}

		switch len(crossings) {
		case 1:
			st.addPoint(crossings[0])
		case 2:
			st.addSegment(crossings[0], crossings[1])
		}
	}

	return st.curve()
}

// appendCrossing adds pt to the crossing list unless it coincides with
// a point already collected for the same triangle.
func appendCrossing(crossings []r3.Vector, pt r3.Vector) []r3.Vector {
	k := snapKey(pt)
	for _, c := range crossings {
		if snapKey(c) == k {
			return crossings
		}
	}
	return append(crossings, pt)
}

// longestEdge returns the endpoints of the longest edge of a triangle.
func longestEdge(v0, v1, v2 r3.Vector) (r3.Vector, r3.Vector) {
	e0 := v1.Sub(v0).Norm2()
	e1 := v2.Sub(v1).Norm2()
	e2 := v0.Sub(v2).Norm2()
	switch {
	case e0 >= e1 && e0 >= e2:
		return v0, v1
	case e1 >= e0 && e1 >= e2:
		return v1, v2
	default:
		return v2, v0
	}
}
