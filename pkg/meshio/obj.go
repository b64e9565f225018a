package meshio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"

	"github.com/NickShargan/utils-3d/pkg/mesh"
	"github.com/NickShargan/utils-3d/pkg/slice"
)

// readOBJ parses the v and f statements of a Wavefront OBJ stream.
// Texture and normal references on face indices are dropped; all other
// statements (vn, vt, usemtl, groups, comments) are ignored.
func readOBJ(r io.Reader) (*mesh.Mesh, error) {
	m := mesh.New()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("obj line %d: vertex needs 3 coordinates", lineNo)
			}
			var coords [3]float64
			for i := 0; i < 3; i++ {
				val, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, fmt.Errorf("obj line %d: bad coordinate %q", lineNo, fields[i+1])
				}
				coords[i] = val
			}
			m.Vertices = append(m.Vertices, r3.Vector{X: coords[0], Y: coords[1], Z: coords[2]})

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("obj line %d: face needs at least 3 indices", lineNo)
			}
			face := make([]int, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				// f statements may carry v/vt/vn triplets.
				if i := strings.IndexByte(tok, '/'); i >= 0 {
					tok = tok[:i]
				}
				idx, err := strconv.Atoi(tok)
				if err != nil {
					return nil, fmt.Errorf("obj line %d: bad face index %q", lineNo, tok)
				}
				// OBJ indices are 1-based; negatives count from the end.
				if idx > 0 {
					idx--
				} else {
					idx = len(m.Vertices) + idx
				}
				if idx < 0 || idx >= len(m.Vertices) {
					return nil, fmt.Errorf("obj line %d: face index out of range", lineNo)
				}
				face = append(face, idx)
			}
			m.Faces = append(m.Faces, face)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

func writeOBJ(w io.Writer, m *mesh.Mesh) error {
	bw := bufio.NewWriter(w)
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "v %g %g %g\n", v.X, v.Y, v.Z)
	}
	for _, f := range m.Faces {
		fmt.Fprint(bw, "f")
		for _, idx := range f {
			fmt.Fprintf(bw, " %d", idx+1)
		}
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}

// writeCurveOBJ stores each polyline as an l element over its own
// vertices; closed loops repeat their first index at the end and
// single-point contacts become p elements.
func writeCurveOBJ(w io.Writer, c *slice.Curve) error {
	bw := bufio.NewWriter(w)
	base := 1
	for _, pl := range c.Polylines {
		for _, pt := range pl.Points {
			fmt.Fprintf(bw, "v %g %g %g\n", pt.X, pt.Y, pt.Z)
		}
		if len(pl.Points) == 1 {
			fmt.Fprintf(bw, "p %d\n", base)
		} else {
			fmt.Fprint(bw, "l")
			for i := range pl.Points {
				fmt.Fprintf(bw, " %d", base+i)
			}
			if pl.Closed {
				fmt.Fprintf(bw, " %d", base)
			}
			fmt.Fprintln(bw)
		}
		base += len(pl.Points)
	}
	return bw.Flush()
}
