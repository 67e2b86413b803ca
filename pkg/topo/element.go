package topo

import "github.com/chazu/tenon/pkg/geom"

// ---------------------------------------------------------------------------
// Snapshot elements
// ---------------------------------------------------------------------------
//
// Face, Edge, and Vertex are immutable attribute snapshots implementing
// Element. Backends that compute topology analytically (pkg/kernel/sdfx)
// and tests both build these instead of defining their own element types.
// All constructors return pointers so that interface identity works as
// element identity.

// Face is a snapshot of one face of a solid.
type Face struct {
	center geom.Vec3
	normal geom.Vec3
	hasDir bool
	typ    geom.GeomType
	bounds geom.Box
}

// NewFace creates a face with the given centroid, classification, and bounds.
func NewFace(center geom.Vec3, typ geom.GeomType, bounds geom.Box) *Face {
	return &Face{center: center, typ: typ, bounds: bounds}
}

// NewPlanarFace creates a planar face with an outward normal.
func NewPlanarFace(center, normal geom.Vec3, bounds geom.Box) *Face {
	return &Face{
		center: center,
		normal: normal.Normalize(),
		hasDir: true,
		typ:    geom.GeomPlane,
		bounds: bounds,
	}
}

// Translated returns a copy of the face moved by d.
func (f *Face) Translated(d geom.Vec3) *Face {
	c := *f
	c.center = f.center.Add(d)
	c.bounds = translateBox(f.bounds, d)
	return &c
}

func (f *Face) Center() geom.Vec3 { return f.center }

func (f *Face) Direction() (geom.Vec3, bool) { return f.normal, f.hasDir }

func (f *Face) GeomType() geom.GeomType { return f.typ }

func (f *Face) BoundingBox() geom.Box { return f.bounds }

// Edge is a snapshot of one edge of a solid.
type Edge struct {
	center  geom.Vec3
	tangent geom.Vec3
	hasDir  bool
	typ     geom.GeomType
	bounds  geom.Box
}

// NewEdge creates a curved edge with the given classification.
func NewEdge(center geom.Vec3, typ geom.GeomType, bounds geom.Box) *Edge {
	return &Edge{center: center, typ: typ, bounds: bounds}
}

// NewLineEdge creates a straight edge between two points. Its direction
// is the normalized a-to-b tangent and its type is LINE.
func NewLineEdge(a, b geom.Vec3) *Edge {
	return &Edge{
		center:  a.Add(b).Scale(0.5),
		tangent: b.Sub(a).Normalize(),
		hasDir:  true,
		typ:     geom.GeomLine,
		bounds:  boxAround(a, b),
	}
}

// Translated returns a copy of the edge moved by d.
func (e *Edge) Translated(d geom.Vec3) *Edge {
	c := *e
	c.center = e.center.Add(d)
	c.bounds = translateBox(e.bounds, d)
	return &c
}

func (e *Edge) Center() geom.Vec3 { return e.center }

func (e *Edge) Direction() (geom.Vec3, bool) { return e.tangent, e.hasDir }

func (e *Edge) GeomType() geom.GeomType { return e.typ }

func (e *Edge) BoundingBox() geom.Box { return e.bounds }

// Vertex is a snapshot of one vertex of a solid. Vertices have no
// direction and classify as OTHER.
type Vertex struct {
	point geom.Vec3
}

// NewVertex creates a vertex at the given point.
func NewVertex(p geom.Vec3) *Vertex {
	return &Vertex{point: p}
}

// Translated returns a copy of the vertex moved by d.
func (v *Vertex) Translated(d geom.Vec3) *Vertex {
	return &Vertex{point: v.point.Add(d)}
}

func (v *Vertex) Center() geom.Vec3 { return v.point }

func (v *Vertex) Direction() (geom.Vec3, bool) { return geom.Vec3{}, false }

func (v *Vertex) GeomType() geom.GeomType { return geom.GeomOther }

func (v *Vertex) BoundingBox() geom.Box { return geom.Box{Min: v.point, Max: v.point} }

func translateBox(b geom.Box, d geom.Vec3) geom.Box {
	return geom.Box{Min: b.Min.Add(d), Max: b.Max.Add(d)}
}

// boxAround returns the axis-aligned box spanned by two points.
func boxAround(a, b geom.Vec3) geom.Box {
	min := geom.Vec3{X: minf(a.X, b.X), Y: minf(a.Y, b.Y), Z: minf(a.Z, b.Z)}
	max := geom.Vec3{X: maxf(a.X, b.X), Y: maxf(a.Y, b.Y), Z: maxf(a.Z, b.Z)}
	return geom.Box{Min: min, Max: max}
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
