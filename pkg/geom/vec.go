// Package geom provides the small vector algebra and the closed axis and
// geometry-type vocabularies shared by the selector grammar and evaluator.
package geom

import "math"

// Tolerance is the default epsilon for all geometric comparisons:
// parallelism, perpendicularity, and projection-tie detection. It is
// threaded explicitly through the evaluator rather than read as a global.
const Tolerance = 1e-6

// Vec3 is a 3D vector or point.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

// Sub returns v - w.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Neg returns -v.
func (v Vec3) Neg() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Dot returns the dot product of v and w.
func (v Vec3) Dot(w Vec3) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Cross returns the cross product of v and w.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		v.Y*w.Z - v.Z*w.Y,
		v.Z*w.X - v.X*w.Z,
		v.X*w.Y - v.Y*w.X,
	}
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// IsZero reports whether v has length below tol.
func (v Vec3) IsZero(tol float64) bool {
	return v.Length() < tol
}

// Normalize returns v scaled to unit length. The zero vector is
// returned unchanged; callers that care must check IsZero first.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// ParallelTo reports whether v and w point along the same line,
// in either sense, within tol. Both inputs are normalized internally.
func (v Vec3) ParallelTo(w Vec3, tol float64) bool {
	return v.Normalize().Cross(w.Normalize()).Length() < tol
}

// PerpendicularTo reports whether v and w are orthogonal within tol.
// Both inputs are normalized internally.
func (v Vec3) PerpendicularTo(w Vec3, tol float64) bool {
	return math.Abs(v.Normalize().Dot(w.Normalize())) < tol
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min Vec3 `json:"min"`
	Max Vec3 `json:"max"`
}

// Center returns the midpoint of the box.
func (b Box) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}
