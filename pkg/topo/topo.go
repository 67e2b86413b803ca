// Package topo defines the topology boundary between the selector core and
// a geometry backend. A backend exposes a shape's faces, edges, and vertices
// as Elements; the selector only ever reads the element attributes declared
// here and never touches backend internals.
package topo

import "github.com/chazu/tenon/pkg/geom"

// Element is one topological feature (face, edge, or vertex) of a shape.
//
// Implementations must be comparable values, in practice pointers: the
// evaluator's set operations use Go interface identity, so two distinct
// elements with identical attributes are still distinct selections.
type Element interface {
	// Center returns the representative point of the element,
	// typically its centroid.
	Center() geom.Vec3

	// Direction returns the intrinsic axis of the element: the normal of
	// a planar face or the direction of a straight edge. The second result
	// is false for elements without one (curved faces, curved edges,
	// vertices), which directional filters then skip.
	Direction() (geom.Vec3, bool)

	// GeomType returns the element's surface or curve classification.
	GeomType() geom.GeomType

	// BoundingBox returns the element's axis-aligned bounds.
	BoundingBox() geom.Box
}

// Shape exposes the topology of a solid. The returned slices are stable:
// repeated calls yield the same elements in the same order.
type Shape interface {
	Faces() []Element
	Edges() []Element
	Vertices() []Element
}
