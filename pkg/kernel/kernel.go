// Package kernel defines the abstract geometry kernel interface.
// Implementations (sdfx) construct solids behind this interface and
// expose each solid's topology as selector-ready elements. The kernel
// abstraction allows swapping backends without changing the rest of
// the system.
package kernel

import "github.com/chazu/tenon/pkg/topo"

// Solid is an opaque handle to a geometry kernel solid. Every solid
// exposes its topology through the topo.Shape facade so the selector
// can address its faces, edges, and vertices.
type Solid interface {
	topo.Shape

	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Primitives
	Box(x, y, z float64) Solid
	Cylinder(height, radius float64) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}
