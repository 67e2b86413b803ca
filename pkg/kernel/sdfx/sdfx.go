// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library. Since signed distance
// fields carry no boundary representation, the backend derives the
// topology of each primitive analytically: a box contributes 6 planar
// faces, 12 line edges, and 8 vertices; a cylinder contributes 2 planar
// caps, a cylindrical side face, and 2 circle edges.
package sdfx

import (
	"fmt"

	"github.com/chazu/tenon/pkg/geom"
	"github.com/chazu/tenon/pkg/kernel"
	"github.com/chazu/tenon/pkg/topo"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

// defaultMeshCells controls marching cubes tessellation resolution.
const defaultMeshCells = 200

// sdfxSolid pairs an sdf.SDF3 with the analytic topology of the
// primitive it was built from.
type sdfxSolid struct {
	s     sdf.SDF3
	faces []topo.Element
	edges []topo.Element
	verts []topo.Element
}

// BoundingBox returns the axis-aligned bounding box.
func (s *sdfxSolid) BoundingBox() (min, max [3]float64) {
	bb := s.s.BoundingBox()
	min = [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	max = [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	return min, max
}

func (s *sdfxSolid) Faces() []topo.Element    { return s.faces }
func (s *sdfxSolid) Edges() []topo.Element    { return s.edges }
func (s *sdfxSolid) Vertices() []topo.Element { return s.verts }

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct{}

// New returns a new SdfxKernel.
func New() *SdfxKernel {
	return &SdfxKernel{}
}

// unwrap extracts the underlying sdf.SDF3 from a kernel.Solid.
func unwrap(s kernel.Solid) *sdfxSolid {
	return s.(*sdfxSolid)
}

// Box creates a box with the given dimensions. The resulting solid has
// its minimum corner at the origin (0,0,0) so placement translations
// work intuitively. sdf.Box3D centers the box at the origin, so we
// translate by half-dimensions.
func (k *SdfxKernel) Box(x, y, z float64) kernel.Solid {
	s, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Box3D: %v", err))
	}
	// Shift from center-origin to min-corner-origin.
	m := sdf.Translate3d(v3.Vec{X: x / 2, Y: y / 2, Z: z / 2})
	solid := &sdfxSolid{s: sdf.Transform3D(s, m)}
	bb := solid.s.BoundingBox()
	buildBoxTopology(solid, geom.Box{
		Min: geom.Vec3{X: bb.Min.X, Y: bb.Min.Y, Z: bb.Min.Z},
		Max: geom.Vec3{X: bb.Max.X, Y: bb.Max.Y, Z: bb.Max.Z},
	})
	return solid
}

// buildBoxTopology fills in the 6-face, 12-edge, 8-vertex topology of
// an axis-aligned box. Faces are ordered -X +X -Y +Y -Z +Z; edges are
// grouped by direction (4 along X, then Y, then Z); vertices are the
// corners in lexicographic (x,y,z) order.
func buildBoxTopology(s *sdfxSolid, b geom.Box) {
	min, max := b.Min, b.Max
	mid := b.Center()

	face := func(center, normal geom.Vec3, lo, hi geom.Vec3) {
		s.faces = append(s.faces, topo.NewPlanarFace(center, normal, geom.Box{Min: lo, Max: hi}))
	}
	face(geom.Vec3{X: min.X, Y: mid.Y, Z: mid.Z}, geom.Vec3{X: -1}, min, geom.Vec3{X: min.X, Y: max.Y, Z: max.Z})
	face(geom.Vec3{X: max.X, Y: mid.Y, Z: mid.Z}, geom.Vec3{X: 1}, geom.Vec3{X: max.X, Y: min.Y, Z: min.Z}, max)
	face(geom.Vec3{X: mid.X, Y: min.Y, Z: mid.Z}, geom.Vec3{Y: -1}, min, geom.Vec3{X: max.X, Y: min.Y, Z: max.Z})
	face(geom.Vec3{X: mid.X, Y: max.Y, Z: mid.Z}, geom.Vec3{Y: 1}, geom.Vec3{X: min.X, Y: max.Y, Z: min.Z}, max)
	face(geom.Vec3{X: mid.X, Y: mid.Y, Z: min.Z}, geom.Vec3{Z: -1}, min, geom.Vec3{X: max.X, Y: max.Y, Z: min.Z})
	face(geom.Vec3{X: mid.X, Y: mid.Y, Z: max.Z}, geom.Vec3{Z: 1}, geom.Vec3{X: min.X, Y: min.Y, Z: max.Z}, max)

	// Corner shorthand: c(i,j,k) picks min/max per axis.
	c := func(i, j, k int) geom.Vec3 {
		v := min
		if i == 1 {
			v.X = max.X
		}
		if j == 1 {
			v.Y = max.Y
		}
		if k == 1 {
			v.Z = max.Z
		}
		return v
	}

	edge := func(a, b geom.Vec3) {
		s.edges = append(s.edges, topo.NewLineEdge(a, b))
	}
	// Along X.
	edge(c(0, 0, 0), c(1, 0, 0))
	edge(c(0, 1, 0), c(1, 1, 0))
	edge(c(0, 0, 1), c(1, 0, 1))
	edge(c(0, 1, 1), c(1, 1, 1))
	// Along Y.
	edge(c(0, 0, 0), c(0, 1, 0))
	edge(c(1, 0, 0), c(1, 1, 0))
	edge(c(0, 0, 1), c(0, 1, 1))
	edge(c(1, 0, 1), c(1, 1, 1))
	// Along Z.
	edge(c(0, 0, 0), c(0, 0, 1))
	edge(c(1, 0, 0), c(1, 0, 1))
	edge(c(0, 1, 0), c(0, 1, 1))
	edge(c(1, 1, 0), c(1, 1, 1))

	for i := 0; i <= 1; i++ {
		for j := 0; j <= 1; j++ {
			for k := 0; k <= 1; k++ {
				s.verts = append(s.verts, topo.NewVertex(c(i, j, k)))
			}
		}
	}
}

// Cylinder creates a Z-axis cylinder centered at the origin, matching
// sdf.Cylinder3D's placement. Its caps are planar faces with ±Z
// normals, the side face classifies as CYLINDER with no direction, and
// the two rim edges classify as CIRCLE with no direction.
func (k *SdfxKernel) Cylinder(height, radius float64) kernel.Solid {
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Cylinder3D: %v", err))
	}
	solid := &sdfxSolid{s: s}

	h := height / 2
	capBox := func(z float64) geom.Box {
		return geom.Box{
			Min: geom.Vec3{X: -radius, Y: -radius, Z: z},
			Max: geom.Vec3{X: radius, Y: radius, Z: z},
		}
	}
	full := geom.Box{
		Min: geom.Vec3{X: -radius, Y: -radius, Z: -h},
		Max: geom.Vec3{X: radius, Y: radius, Z: h},
	}
	solid.faces = []topo.Element{
		topo.NewPlanarFace(geom.Vec3{Z: -h}, geom.Vec3{Z: -1}, capBox(-h)),
		topo.NewPlanarFace(geom.Vec3{Z: h}, geom.Vec3{Z: 1}, capBox(h)),
		topo.NewFace(geom.Vec3{}, geom.GeomCylinder, full),
	}
	solid.edges = []topo.Element{
		topo.NewEdge(geom.Vec3{Z: -h}, geom.GeomCircle, capBox(-h)),
		topo.NewEdge(geom.Vec3{Z: h}, geom.GeomCircle, capBox(h)),
	}
	return solid
}

// Translate moves a solid by (x, y, z), shifting both the SDF and the
// derived topology elements.
func (k *SdfxKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	src := unwrap(s)
	m := sdf.Translate3d(v3.Vec{X: x, Y: y, Z: z})
	d := geom.Vec3{X: x, Y: y, Z: z}

	out := &sdfxSolid{s: sdf.Transform3D(src.s, m)}
	out.faces = translateElements(src.faces, d)
	out.edges = translateElements(src.edges, d)
	out.verts = translateElements(src.verts, d)
	return out
}

func translateElements(elems []topo.Element, d geom.Vec3) []topo.Element {
	if elems == nil {
		return nil
	}
	out := make([]topo.Element, len(elems))
	for i, e := range elems {
		switch e := e.(type) {
		case *topo.Face:
			out[i] = e.Translated(d)
		case *topo.Edge:
			out[i] = e.Translated(d)
		case *topo.Vertex:
			out[i] = e.Translated(d)
		default:
			out[i] = e
		}
	}
	return out
}

// ToMesh converts a solid to a triangle mesh using marching cubes.
func (k *SdfxKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	sdf3 := unwrap(s).s

	renderer := render.NewMarchingCubesUniform(defaultMeshCells)
	triangles := render.ToTriangles(sdf3, renderer)

	numTri := len(triangles)
	numVerts := numTri * 3

	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		// Compute face normal.
		n := tri.Normal()
		nx := float32(n.X)
		ny := float32(n.Y)
		nz := float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}, nil
}
