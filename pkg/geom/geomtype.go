package geom

import "strings"

// GeomType classifies the underlying surface or curve of an element.
type GeomType int

const (
	GeomOther GeomType = iota // unclassified surface or curve
	GeomPlane
	GeomCylinder
	GeomCone
	GeomSphere
	GeomTorus
	GeomBezier
	GeomBSpline
	GeomLine
	GeomCircle
	GeomEllipse
	GeomHyperbola
	GeomParabola
)

// geomTypeNames is the closed tag vocabulary accepted by the %TYPE selector.
var geomTypeNames = map[string]GeomType{
	"OTHER":     GeomOther,
	"PLANE":     GeomPlane,
	"CYLINDER":  GeomCylinder,
	"CONE":      GeomCone,
	"SPHERE":    GeomSphere,
	"TORUS":     GeomTorus,
	"BEZIER":    GeomBezier,
	"BSPLINE":   GeomBSpline,
	"LINE":      GeomLine,
	"CIRCLE":    GeomCircle,
	"ELLIPSE":   GeomEllipse,
	"HYPERBOLA": GeomHyperbola,
	"PARABOLA":  GeomParabola,
}

func (t GeomType) String() string {
	for name, gt := range geomTypeNames {
		if gt == t {
			return name
		}
	}
	return "OTHER"
}

// LookupGeomType resolves a type tag (case-insensitive) to its GeomType.
// The second result is false for tags outside the vocabulary.
func LookupGeomType(name string) (GeomType, bool) {
	t, ok := geomTypeNames[strings.ToUpper(name)]
	return t, ok
}
