// Command utils3d generates primitive meshes, scales meshes and cuts
// them with planes, reading and writing the common interchange formats.
package main

import (
	"fmt"
	"os"

	"github.com/golang/geo/r3"
	"github.com/urfave/cli/v2"

	"github.com/NickShargan/utils-3d/internal/logger"
	"github.com/NickShargan/utils-3d/pkg/meshio"
	"github.com/NickShargan/utils-3d/pkg/slice"
)

// zeroVec is the default primitive center.
var zeroVec = r3.Vector{}

func main() {
	if err := newCLI().Run(os.Args); err != nil {
		// cli.Exit errors already carry their message and exit code.
		if exitErr, ok := err.(cli.ExitCoder); ok {
			if err.Error() != "" {
				fmt.Fprintln(os.Stderr, err.Error())
			}
			logger.Sync()
			os.Exit(exitErr.ExitCode())
		}
		fmt.Fprintln(os.Stderr, err.Error())
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}

func newCLI() *cli.App {
	return &cli.App{
		Name:            "utils3d",
		Usage:           "generate meshes and basic mesh ops (OBJ/STL/PLY)",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "append logs to `FILE` (rotated)",
			},
			&cli.StringFlag{
				Name:  "backend",
				Value: "parametric",
				Usage: "primitive kernel backend: parametric or sdf",
			},
		},
		Before: func(c *cli.Context) error {
			logger.Init(c.Bool("debug"), c.String("log-file"))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "sphere",
				Usage: "generate a sphere mesh and save to file",
				Flags: []cli.Flag{
					&cli.Float64Flag{Name: "radius", Required: true, Usage: "sphere radius"},
					&cli.StringFlag{Name: "out", Required: true, Usage: "output path (.obj/.stl/.ply)"},
					&cli.IntFlag{Name: "theta-res", Value: 32, Usage: "subdivisions around longitude"},
					&cli.IntFlag{Name: "phi-res", Value: 32, Usage: "subdivisions pole to pole"},
				},
				Action: sphereAction,
			},
			{
				Name:  "cone",
				Usage: "generate a cone mesh and save to file",
				Flags: []cli.Flag{
					&cli.Float64Flag{Name: "radius", Required: true, Usage: "base radius"},
					&cli.Float64Flag{Name: "height", Required: true, Usage: "cone height"},
					&cli.StringFlag{Name: "out", Required: true, Usage: "output path (.obj/.stl/.ply)"},
					&cli.IntFlag{Name: "resolution", Value: 32, Usage: "points on the base circle"},
				},
				Action: coneAction,
			},
			{
				Name:  "scale",
				Usage: "scale a mesh uniformly around its centroid",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "mesh", Required: true, Usage: "input mesh path (.obj or .stl)"},
					&cli.Float64Flag{Name: "coef", Required: true, Usage: "uniform scaling coefficient"},
					&cli.StringFlag{Name: "out", Required: true, Usage: "output path"},
				},
				Action: scaleAction,
			},
			{
				Name:  "is_intersect",
				Usage: "check if the plane a*x + b*y + c*z = d intersects the mesh",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "mesh", Required: true, Usage: "input mesh path (.obj or .stl)"},
					&cli.Float64Flag{Name: "a", Required: true},
					&cli.Float64Flag{Name: "b", Required: true},
					&cli.Float64Flag{Name: "c", Required: true},
					&cli.Float64Flag{Name: "d", Required: true},
					&cli.StringFlag{Name: "out", Usage: "write the cut polyline to this path (.obj or .ply)"},
				},
				Action: isIntersectAction,
			},
			{
				Name:  "script",
				Usage: "evaluate a scene script and export its objects",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Required: true, Usage: "scene script path"},
					&cli.StringFlag{Name: "out-dir", Value: ".", Usage: "output directory"},
					&cli.StringFlag{Name: "format", Value: "obj", Usage: "export format: obj, stl or ply"},
				},
				Action: scriptAction,
			},
		},
	}
}

func sphereAction(c *cli.Context) error {
	app, err := NewApp(c.String("backend"))
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	m, err := app.Kernel().Sphere(c.Float64("radius"), zeroVec, c.Int("theta-res"), c.Int("phi-res"))
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	if err := meshio.WriteMesh(m, c.String("out")); err != nil {
		return cli.Exit(err.Error(), 2)
	}
	logger.Sugar.Infow("mesh written", "path", c.String("out"),
		"vertices", m.VertexCount(), "faces", m.FaceCount())
	return nil
}

func coneAction(c *cli.Context) error {
	app, err := NewApp(c.String("backend"))
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	m, err := app.Kernel().Cone(c.Float64("height"), c.Float64("radius"), zeroVec, c.Int("resolution"))
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	if err := meshio.WriteMesh(m, c.String("out")); err != nil {
		return cli.Exit(err.Error(), 2)
	}
	logger.Sugar.Infow("mesh written", "path", c.String("out"),
		"vertices", m.VertexCount(), "faces", m.FaceCount())
	return nil
}

func scaleAction(c *cli.Context) error {
	m, err := meshio.ReadMesh(c.String("mesh"))
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	scaled, err := m.Scale(c.Float64("coef"), nil)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	out := c.String("out")
	if err := meshio.WriteMesh(scaled, out); err != nil {
		return cli.Exit(err.Error(), 2)
	}
	fmt.Printf("mesh was written to %s\n", out)
	return nil
}

func isIntersectAction(c *cli.Context) error {
	m, err := meshio.ReadMesh(c.String("mesh"))
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	a, b, cc, d := c.Float64("a"), c.Float64("b"), c.Float64("c"), c.Float64("d")
	logger.Sugar.Debugw("plane parameters", "a", a, "b", b, "c", cc, "d", d)

	plane, err := slice.FromImplicit(a, b, cc, d)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	ok := slice.Intersects(m, plane)
	fmt.Println(ok)

	if out := c.String("out"); out != "" {
		curve := slice.Cut(m, plane)
		if err := meshio.WriteCurve(curve, out); err != nil {
			return cli.Exit(err.Error(), 2)
		}
		logger.Sugar.Debugw("cut written", "path", out,
			"points", curve.PointCount(), "polylines", len(curve.Polylines))
	}

	if !ok {
		return cli.Exit("", 1)
	}
	return nil
}

func scriptAction(c *cli.Context) error {
	app, err := NewApp(c.String("backend"))
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	source, err := os.ReadFile(c.String("file"))
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	scene, evalErrs, err := app.EvalScript(string(source))
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		return cli.Exit("script evaluation failed", 2)
	}

	paths, err := app.ExportScene(scene, c.String("out-dir"), c.String("format"))
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	for _, p := range paths {
		logger.Sugar.Infow("scene object written", "path", p)
	}
	return nil
}
