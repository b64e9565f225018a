package engine

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/golang/geo/r3"

	"github.com/NickShargan/utils-3d/pkg/kernel"
	"github.com/NickShargan/utils-3d/pkg/mesh"
	"github.com/NickShargan/utils-3d/pkg/slice"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// preprocessSource transforms scene source before it reaches zygomys:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal),
//     so keywords need no global symbol registration.
//  2. Kebab-case to underscore: theta-res -> theta_res, since zygomys
//     reads a hyphen inside an identifier as subtraction.
//  3. ; line comments become // comments, zygomys's comment syntax.
//
// String literal boundaries are respected throughout.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Copy double-quoted string literals untouched.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments.
		if b[i] == ';' {
			result = append(result, '/', '/')
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword", preserving := assignment.
		if b[i] == ':' && i+1 < len(b) && b[i+1] != '=' && isLetter(b[i+1]) {
			j := i + 1
			for j < len(b) && isKWChar(b[j]) {
				j++
			}
			result = append(result, '"')
			result = append(result, kwPrefix...)
			result = append(result, b[i+1:j]...)
			result = append(result, '"')
			i = j
			continue
		}
		// Hyphen between identifier characters is kebab-case, not minus.
		if b[i] == '-' && i > 0 && i+1 < len(b) && isIdentChar(b[i-1]) && isLetter(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpMesh wraps a mesh so it can be passed between builtins.
type sexpMesh struct {
	m *mesh.Mesh
}

func (s *sexpMesh) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(mesh :vertices %d :faces %d)", s.m.VertexCount(), s.m.FaceCount())
}
func (s *sexpMesh) Type() *zygo.RegisteredType { return nil }

// sexpPlane wraps a slice.Plane.
type sexpPlane struct {
	p slice.Plane
}

func (s *sexpPlane) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(plane :origin (%g %g %g) :normal (%g %g %g))",
		s.p.Origin.X, s.p.Origin.Y, s.p.Origin.Z,
		s.p.Normal.X, s.p.Normal.Y, s.p.Normal.Z)
}
func (s *sexpPlane) Type() *zygo.RegisteredType { return nil }

// sexpCurve wraps a cut curve.
type sexpCurve struct {
	c *slice.Curve
}

func (s *sexpCurve) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(cut-curve :points %d :polylines %d)", s.c.PointCount(), len(s.c.Polylines))
}
func (s *sexpCurve) Type() *zygo.RegisteredType { return nil }

// sexpVec3 wraps a vector.
type sexpVec3 struct {
	v r3.Vector
}

func (s *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", s.v.X, s.v.Y, s.v.Z)
}
func (s *sexpVec3) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok && i+1 < len(args) {
			result.kw[name] = args[i+1]
			i += 2
			continue
		}
		if ok {
			result.kw[name] = zygo.SexpNull
			i++
			continue
		}
		result.positional = append(result.positional, args[i])
		i++
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

func toVec3(s zygo.Sexp) (r3.Vector, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.v, nil
	}
	return r3.Vector{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

func toMesh(s zygo.Sexp) (*mesh.Mesh, error) {
	if m, ok := s.(*sexpMesh); ok {
		return m.m, nil
	}
	return nil, fmt.Errorf("expected mesh, got %T (%s)", s, s.SexpString(nil))
}

func toPlane(s zygo.Sexp) (slice.Plane, error) {
	if p, ok := s.(*sexpPlane); ok {
		return p.p, nil
	}
	return slice.Plane{}, fmt.Errorf("expected plane, got %T (%s)", s, s.SexpString(nil))
}

func toCurve(s zygo.Sexp) (*slice.Curve, error) {
	if c, ok := s.(*sexpCurve); ok {
		return c.c, nil
	}
	return nil, fmt.Errorf("expected cut curve, got %T (%s)", s, s.SexpString(nil))
}

// kwFloat reads an optional keyword number, keeping def when absent.
func kwFloat(pa kwArgs, name string, def float64) (float64, error) {
	v, ok := pa.kw[name]
	if !ok {
		return def, nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return f, nil
}

// kwInt reads an optional keyword integer, keeping def when absent.
func kwInt(pa kwArgs, name string, def int) (int, error) {
	v, ok := pa.kw[name]
	if !ok {
		return def, nil
	}
	n, err := toInt(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the scene DSL into a zygomys environment.
// Mesh-producing builtins are pure; (part ...) and (curve ...) register
// their argument into the scene in evaluation order.
//
// Source code must be preprocessed with preprocessSource() before
// evaluation so that :keyword tokens are recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, scene *Scene, k kernel.Kernel) {

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}
		var coords [3]float64
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: %w", err)
			}
			coords[i] = f
		}
		return &sexpVec3{v: r3.Vector{X: coords[0], Y: coords[1], Z: coords[2]}}, nil
	})

	// -----------------------------------------------------------------------
	// (sphere :radius 0.5 :center (vec3 -1 0 0) :theta-res 32 :phi-res 32)
	// -----------------------------------------------------------------------
	env.AddFunction("sphere", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		radius, err := kwFloat(pa, "radius", 0)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sphere: %w", err)
		}
		center := r3.Vector{}
		if v, ok := pa.kw["center"]; ok {
			if center, err = toVec3(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("sphere: center: %w", err)
			}
		}
		thetaRes, err := kwInt(pa, "theta-res", kernel.DefaultThetaRes)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sphere: %w", err)
		}
		phiRes, err := kwInt(pa, "phi-res", kernel.DefaultPhiRes)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sphere: %w", err)
		}

		m, err := k.Sphere(radius, center, thetaRes, phiRes)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sphere: %w", err)
		}
		return &sexpMesh{m: m}, nil
	})

	// -----------------------------------------------------------------------
	// (cone :height 1.5 :radius 0.5 :center (vec3 1 0 0) :resolution 32)
	// -----------------------------------------------------------------------
	env.AddFunction("cone", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		height, err := kwFloat(pa, "height", 0)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cone: %w", err)
		}
		radius, err := kwFloat(pa, "radius", 0)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cone: %w", err)
		}
		center := r3.Vector{}
		if v, ok := pa.kw["center"]; ok {
			if center, err = toVec3(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("cone: center: %w", err)
			}
		}
		resolution, err := kwInt(pa, "resolution", kernel.DefaultResolution)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cone: %w", err)
		}

		m, err := k.Cone(height, radius, center, resolution)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cone: %w", err)
		}
		return &sexpMesh{m: m}, nil
	})

	// -----------------------------------------------------------------------
	// (scale m 2.0)            -- about the mesh centroid
	// (scale m 2.0 :center (vec3 0 0 0))
	// -----------------------------------------------------------------------
	env.AddFunction("scale", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 2 {
			return zygo.SexpNull, fmt.Errorf("scale requires a mesh and a factor")
		}
		m, err := toMesh(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("scale: %w", err)
		}
		factor, err := toFloat64(pa.positional[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("scale: factor: %w", err)
		}
		var center *r3.Vector
		if v, ok := pa.kw["center"]; ok {
			c, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("scale: center: %w", err)
			}
			center = &c
		}

		out, err := m.Scale(factor, center)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("scale: %w", err)
		}
		return &sexpMesh{m: out}, nil
	})

	// -----------------------------------------------------------------------
	// (merge m1 m2 ...) -- combined surface with welded duplicate vertices
	// -----------------------------------------------------------------------
	env.AddFunction("merge", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("merge requires at least one mesh")
		}
		acc, err := toMesh(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("merge: %w", err)
		}
		for _, a := range args[1:] {
			m, err := toMesh(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("merge: %w", err)
			}
			acc = mesh.Merge(acc, m)
		}
		return &sexpMesh{m: acc}, nil
	})

	// -----------------------------------------------------------------------
	// (plane 0 0 1 0.5) -- implicit coefficients of a*x + b*y + c*z = d
	// -----------------------------------------------------------------------
	env.AddFunction("plane", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 4 {
			return zygo.SexpNull, fmt.Errorf("plane requires coefficients a b c d, got %d arguments", len(args))
		}
		var coef [4]float64
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("plane: %w", err)
			}
			coef[i] = f
		}
		p, err := slice.FromImplicit(coef[0], coef[1], coef[2], coef[3])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("plane: %w", err)
		}
		return &sexpPlane{p: p}, nil
	})

	// -----------------------------------------------------------------------
	// (intersects m p) -> bool
	// -----------------------------------------------------------------------
	env.AddFunction("intersects", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("intersects requires a mesh and a plane")
		}
		m, err := toMesh(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("intersects: %w", err)
		}
		p, err := toPlane(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("intersects: %w", err)
		}
		return &zygo.SexpBool{Val: slice.Intersects(m, p)}, nil
	})

	// -----------------------------------------------------------------------
	// (cut m p) -> cut curve
	// -----------------------------------------------------------------------
	env.AddFunction("cut", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("cut requires a mesh and a plane")
		}
		m, err := toMesh(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cut: %w", err)
		}
		p, err := toPlane(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cut: %w", err)
		}
		return &sexpCurve{c: slice.Cut(m, p)}, nil
	})

	// -----------------------------------------------------------------------
	// (regions c) -> number of connected regions
	// (region c i) -> the i-th region as its own curve
	// -----------------------------------------------------------------------
	env.AddFunction("regions", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("regions requires a cut curve")
		}
		c, err := toCurve(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("regions: %w", err)
		}
		return &zygo.SexpInt{Val: int64(len(slice.Split(c)))}, nil
	})

	env.AddFunction("region", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("region requires a cut curve and an index")
		}
		c, err := toCurve(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("region: %w", err)
		}
		i, err := toInt(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("region: %w", err)
		}
		regions := slice.Split(c)
		if i < 0 || i >= len(regions) {
			return zygo.SexpNull, fmt.Errorf("region: index %d out of range, curve has %d regions", i, len(regions))
		}
		sub := regions[i].Curve
		return &sexpCurve{c: &sub}, nil
	})

	// -----------------------------------------------------------------------
	// (points c) / (segments c) -> curve measurements
	// -----------------------------------------------------------------------
	env.AddFunction("points", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("points requires a cut curve")
		}
		c, err := toCurve(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("points: %w", err)
		}
		return &zygo.SexpInt{Val: int64(c.PointCount())}, nil
	})

	env.AddFunction("segments", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("segments requires a cut curve")
		}
		c, err := toCurve(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("segments: %w", err)
		}
		return &zygo.SexpInt{Val: int64(c.SegmentCount())}, nil
	})

	// -----------------------------------------------------------------------
	// (part "name" m)  -- register a mesh in the scene
	// (curve "name" c) -- register a cut curve in the scene
	// -----------------------------------------------------------------------
	env.AddFunction("part", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("part requires a name and a mesh")
		}
		partName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("part: name: %w", err)
		}
		m, err := toMesh(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("part: %w", err)
		}
		scene.AddMesh(partName, m)
		return args[1], nil
	})

	env.AddFunction("curve", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("curve requires a name and a cut curve")
		}
		curveName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("curve: name: %w", err)
		}
		c, err := toCurve(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("curve: %w", err)
		}
		scene.AddCurve(curveName, c)
		return args[1], nil
	})
}
