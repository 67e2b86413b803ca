package selector

import (
	"fmt"
	"strings"

	"github.com/chazu/tenon/pkg/geom"
)

// Node is one node of a parsed selector tree. Trees are immutable: a
// parsed Node may be shared freely across goroutines and reused for any
// number of evaluations.
type Node interface {
	selectorNode() // marker method restricting implementations to this package
	fmt.Stringer
}

// Directional selects the element cluster with the extreme center
// projection along Axis: the maximum when Max is set (">"), otherwise
// the minimum ("<"). All elements whose projection ties the extreme
// within tolerance are returned, in input order.
type Directional struct {
	Axis geom.Vec3
	Max  bool
}

// CenterNth clusters all elements by center projection along Axis and
// selects the cluster at position Index. Clusters are ordered ascending
// by projection when Max is set, descending otherwise, so Index -1 is
// always the extreme cluster in the operator's sense: ">>Z[-1]" is the
// highest cluster and ">>Z[-2]" the second highest. Corresponds to the
// ">>axis[n]" / "<<axis[n]" forms; without an index clause, Index is -1.
type CenterNth struct {
	Axis  geom.Vec3
	Index int
	Max   bool
}

// Parallel keeps elements whose direction is parallel to Axis in
// either sense. Elements without a direction are excluded.
type Parallel struct {
	Axis geom.Vec3
}

// Normal keeps elements whose direction is parallel to Axis and points
// the same way (Positive) or the opposite way (negative).
type Normal struct {
	Axis     geom.Vec3
	Positive bool
}

// Perpendicular keeps elements whose direction is orthogonal to every
// axis in Axes. Elements without a direction are excluded.
type Perpendicular struct {
	Axes []geom.Vec3
}

// TypeFilter keeps elements whose geometry type equals Type.
type TypeFilter struct {
	Type geom.GeomType
}

// Indexed evaluates Inner and returns the single element at position
// Index of its output sequence. Negative indices count from the end.
// An out-of-range index yields an empty result, not an error.
type Indexed struct {
	Inner Node
	Index int
}

// And intersects the results of both children, preserving Left's order.
type And struct {
	Left, Right Node
}

// Or unions the results of both children, deduplicated, ordered by
// first occurrence across Left then Right.
type Or struct {
	Left, Right Node
}

// Not complements Inner's result against the full input, in input order.
type Not struct {
	Inner Node
}

// Sub removes Right's result from Left's, preserving Left's order.
type Sub struct {
	Left, Right Node
}

func (Directional) selectorNode()   {}
func (CenterNth) selectorNode()     {}
func (Parallel) selectorNode()      {}
func (Normal) selectorNode()        {}
func (Perpendicular) selectorNode() {}
func (TypeFilter) selectorNode()    {}
func (Indexed) selectorNode()       {}
func (And) selectorNode()           {}
func (Or) selectorNode()            {}
func (Not) selectorNode()           {}
func (Sub) selectorNode()           {}

func (n Directional) String() string {
	if n.Max {
		return ">" + axisString(n.Axis)
	}
	return "<" + axisString(n.Axis)
}

func (n CenterNth) String() string {
	op := "<<"
	if n.Max {
		op = ">>"
	}
	return fmt.Sprintf("%s%s[%d]", op, axisString(n.Axis), n.Index)
}

func (n Parallel) String() string {
	return "|" + axisString(n.Axis)
}

func (n Normal) String() string {
	if n.Positive {
		return "+" + axisString(n.Axis)
	}
	return "-" + axisString(n.Axis)
}

func (n Perpendicular) String() string {
	parts := make([]string, len(n.Axes))
	for i, a := range n.Axes {
		parts[i] = axisString(a)
	}
	return "#" + strings.Join(parts, "")
}

func (n TypeFilter) String() string {
	return "%" + n.Type.String()
}

func (n Indexed) String() string {
	return fmt.Sprintf("%s[%d]", n.Inner, n.Index)
}

func (n And) String() string {
	return fmt.Sprintf("(%s and %s)", n.Left, n.Right)
}

func (n Or) String() string {
	return fmt.Sprintf("(%s or %s)", n.Left, n.Right)
}

func (n Not) String() string {
	return fmt.Sprintf("not %s", n.Inner)
}

func (n Sub) String() string {
	return fmt.Sprintf("(%s exc %s)", n.Left, n.Right)
}

// axisString renders a direction vector, using the single-letter name
// for principal axes.
func axisString(v geom.Vec3) string {
	switch v {
	case geom.AxisX:
		return "X"
	case geom.AxisY:
		return "Y"
	case geom.AxisZ:
		return "Z"
	}
	return fmt.Sprintf("(%g,%g,%g)", v.X, v.Y, v.Z)
}
