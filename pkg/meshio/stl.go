package meshio

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"

	"github.com/NickShargan/utils-3d/pkg/mesh"
)

const stlHeader = "utils-3d binary STL"

// readSTL loads an STL stream, auto-detecting the ASCII and binary
// variants. Triangle-soup vertices are welded through an exact-match
// map so the result is an indexed mesh.
func readSTL(r io.Reader) (*mesh.Mesh, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if isASCIISTL(data) {
		return readSTLAscii(data)
	}
	return readSTLBinary(data)
}

// isASCIISTL sniffs the variant: ASCII files start with "solid" and
// contain a facet statement. A binary file may also start with "solid"
// in its free-form header, hence the second check.
func isASCIISTL(data []byte) bool {
	head := bytes.TrimLeft(data, " \t\r\n")
	if !bytes.HasPrefix(head, []byte("solid")) {
		return false
	}
	probe := head
	if len(probe) > 1024 {
		probe = probe[:1024]
	}
	return bytes.Contains(probe, []byte("facet"))
}

func readSTLBinary(data []byte) (*mesh.Mesh, error) {
	r := bytes.NewReader(data)
	var header struct {
		H    [80]byte
		NTri uint32
	}
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("stl: short header: %w", err)
	}

	m := mesh.New()
	seen := make(map[[3]float32]int)

	// 12 floats (normal + 3 vertices) plus the attribute count.
	triBuf := make([]byte, 4*3*4+2)
	for i := 0; i < int(header.NTri); i++ {
		if _, err := io.ReadFull(r, triBuf); err != nil {
			return nil, fmt.Errorf("stl: triangle %d: %w", i, err)
		}
		face := make([]int, 3)
		for v := 0; v < 3; v++ {
			var vert [3]float32
			const start = 3 * 4 // skip the stored normal
			for c := 0; c < 3; c++ {
				bits := binary.LittleEndian.Uint32(triBuf[start+12*v+4*c:])
				vert[c] = math.Float32frombits(bits)
			}
			idx, ok := seen[vert]
			if !ok {
				idx = len(m.Vertices)
				m.Vertices = append(m.Vertices, r3.Vector{
					X: float64(vert[0]), Y: float64(vert[1]), Z: float64(vert[2]),
				})
				seen[vert] = idx
			}
			face[v] = idx
		}
		m.Faces = append(m.Faces, face)
	}
	return m, nil
}

func readSTLAscii(data []byte) (*mesh.Mesh, error) {
	m := mesh.New()
	seen := make(map[[3]float64]int)
	var face []int

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "vertex":
			if len(fields) < 4 {
				return nil, fmt.Errorf("stl line %d: vertex needs 3 coordinates", lineNo)
			}
			var key [3]float64
			for i := 0; i < 3; i++ {
				val, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, fmt.Errorf("stl line %d: bad coordinate %q", lineNo, fields[i+1])
				}
				key[i] = val
			}
			idx, ok := seen[key]
			if !ok {
				idx = len(m.Vertices)
				m.Vertices = append(m.Vertices, r3.Vector{X: key[0], Y: key[1], Z: key[2]})
				seen[key] = idx
			}
			face = append(face, idx)
		case "endfacet":
			if len(face) != 3 {
				return nil, fmt.Errorf("stl line %d: facet has %d vertices, want 3", lineNo, len(face))
			}
			m.Faces = append(m.Faces, face)
			face = nil
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

// writeSTL emits the binary variant. Faces are triangulated first since
// STL carries only triangles; facet normals are recomputed from the
// winding.
func writeSTL(w io.Writer, m *mesh.Mesh) error {
	tris := m.Triangles()

	bw := bufio.NewWriter(w)
	var header [80]byte
	copy(header[:], stlHeader)
	if err := binary.Write(bw, binary.LittleEndian, header); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(tris))); err != nil {
		return err
	}

	buf := make([]byte, 4*3*4+2)
	for _, t := range tris {
		v0, v1, v2 := m.Vertices[t[0]], m.Vertices[t[1]], m.Vertices[t[2]]
		n := v1.Sub(v0).Cross(v2.Sub(v0))
		if norm := n.Norm(); norm > 0 {
			n = n.Mul(1 / norm)
		}
		putVec(buf[0:], n)
		putVec(buf[12:], v0)
		putVec(buf[24:], v1)
		putVec(buf[36:], v2)
		buf[48], buf[49] = 0, 0
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func putVec(b []byte, v r3.Vector) {
	binary.LittleEndian.PutUint32(b[0:], math.Float32bits(float32(v.X)))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(float32(v.Y)))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(float32(v.Z)))
}
