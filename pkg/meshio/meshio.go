// Package meshio reads and writes meshes in the common interchange
// formats: OBJ and STL for both directions, PLY for writing. The
// format is picked once from the file extension and dispatched over a
// tagged variant.
package meshio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/NickShargan/utils-3d/pkg/mesh"
	"github.com/NickShargan/utils-3d/pkg/slice"
)

// Format identifies a mesh interchange format.
type Format int

const (
	FormatOBJ Format = iota
	FormatSTL
	FormatPLY
)

// String returns the canonical lowercase name of the format.
func (f Format) String() string {
	switch f {
	case FormatOBJ:
		return "obj"
	case FormatSTL:
		return "stl"
	case FormatPLY:
		return "ply"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// UnsupportedFormatError reports a file extension no reader or writer
// handles.
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported mesh format %q (use .obj, .stl or .ply)", e.Ext)
}

// FormatForPath derives the format from the file extension,
// case-insensitively.
func FormatForPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".obj":
		return FormatOBJ, nil
	case ".stl":
		return FormatSTL, nil
	case ".ply":
		return FormatPLY, nil
	}
	return 0, &UnsupportedFormatError{Ext: ext}
}

// ReadMesh loads a mesh from path. OBJ and STL are readable; PLY is
// write-only. A file that parses to no geometry fails with
// mesh.ErrEmptyMesh.
func ReadMesh(path string) (*mesh.Mesh, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var m *mesh.Mesh
	switch format {
	case FormatOBJ:
		m, err = readOBJ(f)
	case FormatSTL:
		m, err = readSTL(f)
	case FormatPLY:
		return nil, &UnsupportedFormatError{Ext: ".ply"}
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if m.IsEmpty() {
		return nil, fmt.Errorf("read %s: %w", path, mesh.ErrEmptyMesh)
	}
	return m, nil
}

// WriteMesh saves a mesh to path in the format named by its extension,
// creating parent directories as needed.
func WriteMesh(m *mesh.Mesh, path string) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}
	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch format {
	case FormatOBJ:
		err = writeOBJ(f, m)
	case FormatSTL:
		err = writeSTL(f, m)
	case FormatPLY:
		err = writePLY(f, m)
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// WriteCurve saves a cut curve as polylines. OBJ stores them as line
// elements, PLY as edges. STL has no line primitive.
func WriteCurve(c *slice.Curve, path string) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}
	if format == FormatSTL {
		return fmt.Errorf("write %s: STL cannot represent polylines, use .obj or .ply", path)
	}
	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch format {
	case FormatOBJ:
		err = writeCurveOBJ(f, c)
	case FormatPLY:
		err = writeCurvePLY(f, c)
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func createFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}
