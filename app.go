package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/NickShargan/utils-3d/pkg/engine"
	"github.com/NickShargan/utils-3d/pkg/kernel"
	"github.com/NickShargan/utils-3d/pkg/kernel/parametric"
	sdfxkernel "github.com/NickShargan/utils-3d/pkg/kernel/sdfx"
	"github.com/NickShargan/utils-3d/pkg/meshio"
)

// App bundles the script engine with a primitive kernel. It is the
// backend for the CLI commands; the same pipeline (source -> engine ->
// scene -> export) is exercised end to end by the tests.
type App struct {
	engine *engine.Engine
	kernel kernel.Kernel
}

// NewApp creates an App with the named kernel backend.
func NewApp(backend string) (*App, error) {
	k, err := kernelFor(backend)
	if err != nil {
		return nil, err
	}
	return &App{
		engine: engine.NewEngine(k),
		kernel: k,
	}, nil
}

// kernelFor selects a primitive-generator backend by name.
func kernelFor(name string) (kernel.Kernel, error) {
	switch name {
	case "", "parametric":
		return parametric.New(), nil
	case "sdf", "sdfx":
		return sdfxkernel.New(), nil
	}
	return nil, fmt.Errorf("unknown kernel backend %q (use parametric or sdf)", name)
}

// Kernel returns the primitive generator in use.
func (a *App) Kernel() kernel.Kernel {
	return a.kernel
}

// EvalScript evaluates scene-script source. Eval errors carry line
// information from user code; the final error reports fatal failures
// (timeout, panic).
func (a *App) EvalScript(source string) (*engine.Scene, []engine.EvalError, error) {
	return a.engine.Evaluate(source)
}

// ExportScene writes every scene object into dir, one file per object,
// named after the object. Meshes use the requested format; curves fall
// back from STL to OBJ since STL cannot carry polylines. Returns the
// written paths in scene order.
func (a *App) ExportScene(s *engine.Scene, dir, format string) ([]string, error) {
	var paths []string
	for _, obj := range s.Objects {
		ext := format
		if obj.Curve != nil && format == "stl" {
			ext = "obj"
		}
		path := filepath.Join(dir, sanitizeName(obj.Name)+"."+ext)

		var err error
		if obj.Mesh != nil {
			err = meshio.WriteMesh(obj.Mesh, path)
		} else {
			err = meshio.WriteCurve(obj.Curve, path)
		}
		if err != nil {
			return paths, fmt.Errorf("export %q: %w", obj.Name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// sanitizeName makes a scene object name safe to use as a file name.
func sanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', ' ':
			return '_'
		}
		return r
	}, name)
}
