package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/tenon/pkg/geom"
	"github.com/chazu/tenon/pkg/kernel"
	"github.com/chazu/tenon/pkg/selector"
	"github.com/chazu/tenon/pkg/topo"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms script source before passing it to zygomys.
// It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Comment conversion: ; line comments become //, which is what
//     zygomys expects.
//
// Both transformations respect string literal boundaries.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
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
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, b[i+1:j]...)
				result = append(result, '"')
				i = j
				continue
			}
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
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpSolid wraps a kernel.Solid so it can be passed between builtins.
type sexpSolid struct {
	solid kernel.Solid
}

func (s *sexpSolid) SexpString(ps *zygo.PrintState) string {
	min, max := s.solid.BoundingBox()
	return fmt.Sprintf("(solid %.1fx%.1fx%.1f)", max[0]-min[0], max[1]-min[1], max[2]-min[2])
}
func (s *sexpSolid) Type() *zygo.RegisteredType { return nil }

// sexpElements wraps an ordered element list, the currency of the
// topology and select builtins.
type sexpElements struct {
	elems []topo.Element
}

func (e *sexpElements) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(elements %d)", len(e.elems))
}
func (e *sexpElements) Type() *zygo.RegisteredType { return nil }

// sexpVec3 wraps a geom.Vec3.
type sexpVec3 struct {
	vec geom.Vec3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %.1f %.1f %.1f)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

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
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value — treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toSolid extracts a kernel.Solid from a sexpSolid.
func toSolid(s zygo.Sexp) (kernel.Solid, error) {
	if v, ok := s.(*sexpSolid); ok {
		return v.solid, nil
	}
	return nil, fmt.Errorf("expected solid, got %T (%s)", s, s.SexpString(nil))
}

// toElements extracts an element list from a sexpElements.
func toElements(s zygo.Sexp) ([]topo.Element, error) {
	if v, ok := s.(*sexpElements); ok {
		return v.elems, nil
	}
	return nil, fmt.Errorf("expected element list, got %T (%s)", s, s.SexpString(nil))
}

// toVec3 extracts a Vec3 from a sexpVec3.
func toVec3(s zygo.Sexp) (geom.Vec3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return geom.Vec3{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// kwFloat reads an optional keyword number argument.
func kwFloat(pa kwArgs, name string, out *float64) error {
	v, ok := pa.kw[name]
	if !ok {
		return nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*out = f
	return nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the selector scripting builtins into a zygomys
// environment. All geometry construction goes through the provided kernel.
//
// Source code must be preprocessed with preprocessSource() before evaluation
// so that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, kern kernel.Kernel) {

	// -----------------------------------------------------------------------
	// (box :x 100 :y 60 :z 20)
	// -----------------------------------------------------------------------
	env.AddFunction("box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var x, y, z float64
		if err := kwFloat(pa, "x", &x); err != nil {
			return zygo.SexpNull, fmt.Errorf("box: %w", err)
		}
		if err := kwFloat(pa, "y", &y); err != nil {
			return zygo.SexpNull, fmt.Errorf("box: %w", err)
		}
		if err := kwFloat(pa, "z", &z); err != nil {
			return zygo.SexpNull, fmt.Errorf("box: %w", err)
		}
		if x <= 0 || y <= 0 || z <= 0 {
			return zygo.SexpNull, fmt.Errorf("box: dimensions must be positive, got %gx%gx%g", x, y, z)
		}
		return &sexpSolid{solid: kern.Box(x, y, z)}, nil
	})

	// -----------------------------------------------------------------------
	// (cylinder :height 50 :radius 10)
	// -----------------------------------------------------------------------
	env.AddFunction("cylinder", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var h, r float64
		if err := kwFloat(pa, "height", &h); err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: %w", err)
		}
		if err := kwFloat(pa, "radius", &r); err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: %w", err)
		}
		if h <= 0 || r <= 0 {
			return zygo.SexpNull, fmt.Errorf("cylinder: height and radius must be positive, got %g and %g", h, r)
		}
		return &sexpSolid{solid: kern.Cylinder(h, r)}, nil
	})

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}
		var v geom.Vec3
		var err error
		if v.X, err = toFloat64(args[0]); err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: x: %w", err)
		}
		if v.Y, err = toFloat64(args[1]); err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: y: %w", err)
		}
		if v.Z, err = toFloat64(args[2]); err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: z: %w", err)
		}
		return &sexpVec3{vec: v}, nil
	})

	// -----------------------------------------------------------------------
	// (move (box ...) :by (vec3 10 0 0))
	// -----------------------------------------------------------------------
	env.AddFunction("move", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("move requires a solid as first argument")
		}
		s, err := toSolid(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("move: %w", err)
		}
		by, ok := pa.kw["by"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("move requires a :by (vec3 ...) argument")
		}
		d, err := toVec3(by)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("move: by: %w", err)
		}
		return &sexpSolid{solid: kern.Translate(s, d.X, d.Y, d.Z)}, nil
	})

	// -----------------------------------------------------------------------
	// (faces s) / (edges s) / (vertices s)
	// -----------------------------------------------------------------------
	topology := func(name string, pick func(topo.Shape) []topo.Element) {
		env.AddFunction(name, func(env *zygo.Zlisp, fn string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) != 1 {
				return zygo.SexpNull, fmt.Errorf("%s requires a solid argument", name)
			}
			s, err := toSolid(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
			}
			return &sexpElements{elems: pick(s)}, nil
		})
	}
	topology("faces", topo.Shape.Faces)
	topology("edges", topo.Shape.Edges)
	topology("vertices", topo.Shape.Vertices)

	// -----------------------------------------------------------------------
	// (select ">Z" elems)
	// -----------------------------------------------------------------------
	env.AddFunction("select", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("select requires a selector string and an element list")
		}
		expr, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("select: %w", err)
		}
		elems, err := toElements(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("select: %w", err)
		}
		out, err := selector.Filter(expr, elems)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("select: %w", err)
		}
		return &sexpElements{elems: out}, nil
	})

	// -----------------------------------------------------------------------
	// (count elems)
	// -----------------------------------------------------------------------
	env.AddFunction("count", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("count requires an element list argument")
		}
		elems, err := toElements(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("count: %w", err)
		}
		return &zygo.SexpInt{Val: int64(len(elems))}, nil
	})
}
