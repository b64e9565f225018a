package slice

import (
	"math"

	"github.com/golang/geo/r3"
)

// snapEpsilon is the absolute tolerance used to merge coincident cut
// points. Crossing points computed from the two triangles sharing an
// edge agree to floating-point roundoff, so a tight grid is enough.
const snapEpsilon = 1e-9

// Segment is a single straight piece of a cut curve.
type Segment struct {
	A, B r3.Vector
}

// Polyline is a maximal chain of connected cut points. A closed
// polyline is a loop: the last point connects back to the first, which
// is not repeated in Points. An open polyline with a single point marks
// a tangential vertex contact.
type Polyline struct {
	Points []r3.Vector
	Closed bool
}

// SegmentCount returns the number of segments in the polyline.
func (p Polyline) SegmentCount() int {
	if len(p.Points) < 2 {
		return 0
	}
	if p.Closed {
		return len(p.Points)
	}
	return len(p.Points) - 1
}

// Curve is a set of polylines produced by cutting a mesh with a plane.
// The curve is owned by the caller and never aliases mesh storage.
type Curve struct {
	Polylines []Polyline
}

// IsEmpty reports whether the curve carries no geometry at all.
func (c *Curve) IsEmpty() bool {
	return len(c.Polylines) == 0
}

// PointCount returns the total number of points across all polylines.
func (c *Curve) PointCount() int {
	n := 0
	for _, p := range c.Polylines {
		n += len(p.Points)
	}
	return n
}

// SegmentCount returns the total number of segments across all polylines.
func (c *Curve) SegmentCount() int {
	n := 0
	for _, p := range c.Polylines {
		n += p.SegmentCount()
	}
	return n
}

// Segments returns the curve flattened to individual segments, in
// polyline order.
func (c *Curve) Segments() []Segment {
	segs := make([]Segment, 0, c.SegmentCount())
	for _, p := range c.Polylines {
		for i := 0; i+1 < len(p.Points); i++ {
			segs = append(segs, Segment{A: p.Points[i], B: p.Points[i+1]})
		}
		if p.Closed && len(p.Points) >= 2 {
			segs = append(segs, Segment{A: p.Points[len(p.Points)-1], B: p.Points[0]})
		}
	}
	return segs
}

// pointKey is a quantized coordinate triple used to identify coincident
// points within snapEpsilon.
type pointKey [3]int64

func snapKey(v r3.Vector) pointKey {
	return pointKey{
		int64(math.Round(v.X / snapEpsilon)),
		int64(math.Round(v.Y / snapEpsilon)),
		int64(math.Round(v.Z / snapEpsilon)),
	}
}

// stitcher accumulates raw cut segments and merges them into maximal
// polylines. Points are interned through the snap grid so that segments
// emitted by neighboring triangles share endpoint identities; duplicate
// segments (both triangles adjacent to an on-plane edge emit it) are
// dropped.
type stitcher struct {
	pts     []r3.Vector
	ids     map[pointKey]int
	segs    [][2]int
	segSeen map[[2]int]bool
	adj     map[int][]int // point id -> incident segment indices
	singles []int         // point ids from tangential vertex contacts
}

func newStitcher() *stitcher {
	return &stitcher{
		ids:     make(map[pointKey]int),
		segSeen: make(map[[2]int]bool),
		adj:     make(map[int][]int),
	}
}

// intern returns the id of the snapped point, registering it on first use.
func (s *stitcher) intern(v r3.Vector) int {
	k := snapKey(v)
	if id, ok := s.ids[k]; ok {
		return id
	}
	id := len(s.pts)
	s.pts = append(s.pts, v)
	s.ids[k] = id
	return id
}

func (s *stitcher) addSegment(a, b r3.Vector) {
	ia, ib := s.intern(a), s.intern(b)
	if ia == ib {
		s.singles = append(s.singles, ia)
		return
	}
	key := [2]int{ia, ib}
	if ib < ia {
		key = [2]int{ib, ia}
	}
	if s.segSeen[key] {
		return
	}
	s.segSeen[key] = true
	si := len(s.segs)
	s.segs = append(s.segs, [2]int{ia, ib})
	s.adj[ia] = append(s.adj[ia], si)
	s.adj[ib] = append(s.adj[ib], si)
}

func (s *stitcher) addPoint(v r3.Vector) {
	s.singles = append(s.singles, s.intern(v))
}

// step finds the first unused segment incident to point id and returns
// the opposite endpoint. Incident segments are scanned in emission
// order, which keeps the traversal deterministic per run.
func (s *stitcher) step(id int, used []bool) (next, seg int, ok bool) {
	for _, si := range s.adj[id] {
		if used[si] {
			continue
		}
		if s.segs[si][0] == id {
			return s.segs[si][1], si, true
		}
		return s.segs[si][0], si, true
	}
	return 0, 0, false
}

// curve walks the segment soup and emits maximal polylines. Each
// polyline is seeded at the earliest unvisited segment and first grows
// from that segment's second endpoint; when the walk returns to the
// seed the polyline closes into a loop, otherwise the walk resumes
// backward from the first endpoint.
func (s *stitcher) curve() *Curve {
	c := &Curve{}
	used := make([]bool, len(s.segs))

	for si := range s.segs {
		if used[si] {
			continue
		}
		used[si] = true
		chain := []int{s.segs[si][0], s.segs[si][1]}
		closed := false

		for {
			next, seg, ok := s.step(chain[len(chain)-1], used)
			if !ok {
				break
			}
			used[seg] = true
			if next == chain[0] {
				closed = true
				break
			}
			chain = append(chain, next)
		}
		if !closed {
			for {
				next, seg, ok := s.step(chain[0], used)
				if !ok {
					break
				}
				used[seg] = true
				if next == chain[len(chain)-1] {
					closed = true
					break
				}
				chain = append([]int{next}, chain...)
			}
		}

		points := make([]r3.Vector, len(chain))
		for i, id := range chain {
			points[i] = s.pts[id]
		}
		c.Polylines = append(c.Polylines, Polyline{Points: points, Closed: closed})
	}

	// Tangential contacts become one-point polylines unless the point
	// already sits on a stitched segment.
	seen := make(map[int]bool)
	for _, id := range s.singles {
		if seen[id] || len(s.adj[id]) > 0 {
			continue
		}
		seen[id] = true
		c.Polylines = append(c.Polylines, Polyline{Points: []r3.Vector{s.pts[id]}})
	}

	return c
}
