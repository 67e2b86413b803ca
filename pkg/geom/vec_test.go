package geom

import (
	"math"
	"testing"
)

func TestVecBasics(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}

	if got := a.Add(b); got != (Vec3{5, 7, 9}) {
		t.Errorf("Add = %v", got)
	}
	if got := b.Sub(a); got != (Vec3{3, 3, 3}) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Scale(2); got != (Vec3{2, 4, 6}) {
		t.Errorf("Scale = %v", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot = %v, want 32", got)
	}
	if got := AxisX.Cross(AxisY); got != AxisZ {
		t.Errorf("X cross Y = %v, want Z", got)
	}
	if got := (Vec3{3, 4, 0}).Length(); got != 5 {
		t.Errorf("Length = %v, want 5", got)
	}
}

func TestNormalize(t *testing.T) {
	v := Vec3{0, 0, 10}.Normalize()
	if v != AxisZ {
		t.Errorf("Normalize = %v, want %v", v, AxisZ)
	}
	// The zero vector stays zero instead of producing NaNs.
	z := Vec3{}.Normalize()
	if z != (Vec3{}) || math.IsNaN(z.X) {
		t.Errorf("Normalize(zero) = %v", z)
	}
}

func TestParallelTo(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec3
		want bool
	}{
		{"same", AxisZ, AxisZ, true},
		{"opposite", AxisZ, Vec3{0, 0, -1}, true},
		{"scaled", Vec3{0, 0, 7}, AxisZ, true},
		{"orthogonal", AxisZ, AxisX, false},
		{"diagonal", Vec3{1, 1, 0}, Vec3{-2, -2, 0}, true},
	}
	for _, tt := range tests {
		if got := tt.a.ParallelTo(tt.b, Tolerance); got != tt.want {
			t.Errorf("%s: ParallelTo = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestPerpendicularTo(t *testing.T) {
	if !AxisX.PerpendicularTo(AxisZ, Tolerance) {
		t.Error("X should be perpendicular to Z")
	}
	if AxisZ.PerpendicularTo(AxisZ, Tolerance) {
		t.Error("Z should not be perpendicular to itself")
	}
	// Unnormalized inputs must not defeat the tolerance check.
	if !(Vec3{100, 0, 0}).PerpendicularTo(Vec3{0, 0.001, 0}, Tolerance) {
		t.Error("scaled orthogonal vectors should still test perpendicular")
	}
}

func TestLookupAxis(t *testing.T) {
	tests := []struct {
		name string
		want Vec3
		ok   bool
	}{
		{"X", AxisX, true},
		{"z", AxisZ, true},
		{"xy", Vec3{1, 1, 0}, true},
		{"YZ", Vec3{0, 1, 1}, true},
		{"W", Vec3{}, false},
		{"ZZ", Vec3{}, false},
	}
	for _, tt := range tests {
		got, ok := LookupAxis(tt.name)
		if ok != tt.ok || got != tt.want {
			t.Errorf("LookupAxis(%q) = %v, %v; want %v, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLookupView(t *testing.T) {
	if v, ok := LookupView("TOP"); !ok || v != AxisZ {
		t.Errorf("LookupView(TOP) = %v, %v", v, ok)
	}
	if v, ok := LookupView("front"); !ok || v != (Vec3{0, -1, 0}) {
		t.Errorf("LookupView(front) = %v, %v", v, ok)
	}
	if _, ok := LookupView("sideways"); ok {
		t.Error("LookupView(sideways) should fail")
	}
}

func TestLookupGeomType(t *testing.T) {
	if gt, ok := LookupGeomType("plane"); !ok || gt != GeomPlane {
		t.Errorf("LookupGeomType(plane) = %v, %v", gt, ok)
	}
	if gt, ok := LookupGeomType("BSpline"); !ok || gt != GeomBSpline {
		t.Errorf("LookupGeomType(BSpline) = %v, %v", gt, ok)
	}
	if _, ok := LookupGeomType("WIDGET"); ok {
		t.Error("LookupGeomType(WIDGET) should fail")
	}
}

func TestGeomTypeString(t *testing.T) {
	if GeomPlane.String() != "PLANE" {
		t.Errorf("GeomPlane.String() = %q", GeomPlane.String())
	}
	if GeomType(999).String() != "OTHER" {
		t.Errorf("unknown GeomType should render as OTHER")
	}
}

func TestBoxCenter(t *testing.T) {
	b := Box{Min: Vec3{0, 0, 0}, Max: Vec3{10, 20, 30}}
	if got := b.Center(); got != (Vec3{5, 10, 15}) {
		t.Errorf("Center = %v", got)
	}
}
