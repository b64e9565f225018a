package meshio

import (
	"bufio"
	"fmt"
	"io"

	"github.com/NickShargan/utils-3d/pkg/mesh"
	"github.com/NickShargan/utils-3d/pkg/slice"
)

// writePLY emits an ASCII PLY file with double-precision vertex
// coordinates and a vertex-index list per face.
func writePLY(w io.Writer, m *mesh.Mesh) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "ply")
	fmt.Fprintln(bw, "format ascii 1.0")
	fmt.Fprintln(bw, "comment written by utils-3d")
	fmt.Fprintf(bw, "element vertex %d\n", len(m.Vertices))
	fmt.Fprintln(bw, "property double x")
	fmt.Fprintln(bw, "property double y")
	fmt.Fprintln(bw, "property double z")
	fmt.Fprintf(bw, "element face %d\n", len(m.Faces))
	fmt.Fprintln(bw, "property list uchar int vertex_indices")
	fmt.Fprintln(bw, "end_header")

	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "%g %g %g\n", v.X, v.Y, v.Z)
	}
	for _, f := range m.Faces {
		fmt.Fprintf(bw, "%d", len(f))
		for _, idx := range f {
			fmt.Fprintf(bw, " %d", idx)
		}
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}

// writeCurvePLY stores a cut curve as vertices plus edge elements,
// one edge per polyline segment.
func writeCurvePLY(w io.Writer, c *slice.Curve) error {
	total := c.PointCount()
	edges := c.SegmentCount()

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "ply")
	fmt.Fprintln(bw, "format ascii 1.0")
	fmt.Fprintln(bw, "comment written by utils-3d")
	fmt.Fprintf(bw, "element vertex %d\n", total)
	fmt.Fprintln(bw, "property double x")
	fmt.Fprintln(bw, "property double y")
	fmt.Fprintln(bw, "property double z")
	fmt.Fprintf(bw, "element edge %d\n", edges)
	fmt.Fprintln(bw, "property int vertex1")
	fmt.Fprintln(bw, "property int vertex2")
	fmt.Fprintln(bw, "end_header")

	for _, pl := range c.Polylines {
		for _, pt := range pl.Points {
			fmt.Fprintf(bw, "%g %g %g\n", pt.X, pt.Y, pt.Z)
		}
	}
	base := 0
	for _, pl := range c.Polylines {
		for i := 0; i+1 < len(pl.Points); i++ {
			fmt.Fprintf(bw, "%d %d\n", base+i, base+i+1)
		}
		if pl.Closed && len(pl.Points) >= 2 {
			fmt.Fprintf(bw, "%d %d\n", base+len(pl.Points)-1, base)
		}
		base += len(pl.Points)
	}
	return bw.Flush()
}
