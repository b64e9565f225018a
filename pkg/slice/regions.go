package slice

// Region is a maximal edge-connected subset of a cut curve: one loop,
// one open chain, or several polylines meeting at shared points. Each
// region carries its own independently consumable sub-curve.
type Region struct {
	Curve Curve
}

// Split partitions the curve into connected regions. Two polylines
// belong to the same region when they share a point within the snap
// tolerance. Regions are numbered by the first occurrence of one of
// their polylines in the curve, so the order is deterministic for a
// fixed input.
func Split(c *Curve) []Region {
	if c.IsEmpty() {
		return nil
	}

	// Union-find over snapped point identities.
	parent := []int{}
	find := func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[rb] = ra
		}
	}

	ids := make(map[pointKey]int)
	intern := func(k pointKey) int {
		if id, ok := ids[k]; ok {
			return id
		}
		id := len(parent)
		parent = append(parent, id)
		ids[k] = id
		return id
	}

	// A polyline is internally connected, so uniting consecutive points
	// is enough to place it in a component.
	anchors := make([]int, len(c.Polylines))
	for pi, pl := range c.Polylines {
		prev := intern(snapKey(pl.Points[0]))
		anchors[pi] = prev
		for _, pt := range pl.Points[1:] {
			cur := intern(snapKey(pt))
			union(prev, cur)
			prev = cur
		}
	}

	regionOf := make(map[int]int)
	var regions []Region
	for pi, pl := range c.Polylines {
		root := find(anchors[pi])
		ri, ok := regionOf[root]
		if !ok {
			ri = len(regions)
			regionOf[root] = ri
			regions = append(regions, Region{})
		}
		regions[ri].Curve.Polylines = append(regions[ri].Curve.Polylines, pl)
	}
	return regions
}
