package selector

import (
	"errors"
	"reflect"
	"testing"

	"github.com/chazu/tenon/pkg/geom"
	"github.com/chazu/tenon/pkg/topo"
)

// boxEdges returns the 12 edges of a 10x20x30 box with its minimum
// corner at the origin: 4 along X, then 4 along Y, then 4 along Z.
// The top edges (center z=30) are at indices 2, 3, 6, 7.
func boxEdges() []topo.Element {
	c := func(i, j, k float64) geom.Vec3 {
		return geom.Vec3{X: i * 10, Y: j * 20, Z: k * 30}
	}
	return []topo.Element{
		topo.NewLineEdge(c(0, 0, 0), c(1, 0, 0)), // 0: X, bottom
		topo.NewLineEdge(c(0, 1, 0), c(1, 1, 0)), // 1: X, bottom
		topo.NewLineEdge(c(0, 0, 1), c(1, 0, 1)), // 2: X, top
		topo.NewLineEdge(c(0, 1, 1), c(1, 1, 1)), // 3: X, top
		topo.NewLineEdge(c(0, 0, 0), c(0, 1, 0)), // 4: Y, bottom
		topo.NewLineEdge(c(1, 0, 0), c(1, 1, 0)), // 5: Y, bottom
		topo.NewLineEdge(c(0, 0, 1), c(0, 1, 1)), // 6: Y, top
		topo.NewLineEdge(c(1, 0, 1), c(1, 1, 1)), // 7: Y, top
		topo.NewLineEdge(c(0, 0, 0), c(0, 0, 1)), // 8: Z
		topo.NewLineEdge(c(1, 0, 0), c(1, 0, 1)), // 9: Z
		topo.NewLineEdge(c(0, 1, 0), c(0, 1, 1)), // 10: Z
		topo.NewLineEdge(c(1, 1, 0), c(1, 1, 1)), // 11: Z
	}
}

// boxFaces returns the 6 planar faces of the same box,
// ordered -X +X -Y +Y -Z +Z.
func boxFaces() []topo.Element {
	face := func(center, normal geom.Vec3) topo.Element {
		return topo.NewPlanarFace(center, normal, geom.Box{})
	}
	return []topo.Element{
		face(geom.Vec3{X: 0, Y: 10, Z: 15}, geom.Vec3{X: -1, Y: 0, Z: 0}),
		face(geom.Vec3{X: 10, Y: 10, Z: 15}, geom.Vec3{X: 1, Y: 0, Z: 0}),
		face(geom.Vec3{X: 5, Y: 0, Z: 15}, geom.Vec3{X: 0, Y: -1, Z: 0}),
		face(geom.Vec3{X: 5, Y: 20, Z: 15}, geom.Vec3{X: 0, Y: 1, Z: 0}),
		face(geom.Vec3{X: 5, Y: 10, Z: 0}, geom.Vec3{X: 0, Y: 0, Z: -1}),
		face(geom.Vec3{X: 5, Y: 10, Z: 30}, geom.Vec3{X: 0, Y: 0, Z: 1}),
	}
}

func filterT(t *testing.T, src string, elems []topo.Element) []topo.Element {
	t.Helper()
	out, err := Filter(src, elems)
	if err != nil {
		t.Fatalf("Filter(%q) failed: %v", src, err)
	}
	return out
}

func sameElements(got []topo.Element, elems []topo.Element, want ...int) bool {
	if len(got) != len(want) {
		return false
	}
	for i, idx := range want {
		if got[i] != elems[idx] {
			return false
		}
	}
	return true
}

func TestExtremalTies(t *testing.T) {
	elems := []topo.Element{
		topo.NewVertex(geom.Vec3{X: 0, Y: 0, Z: 5}),
		topo.NewVertex(geom.Vec3{X: 1, Y: 0, Z: 5}),
		topo.NewVertex(geom.Vec3{X: 2, Y: 0, Z: 3}),
	}
	got := filterT(t, ">Z", elems)
	if !sameElements(got, elems, 0, 1) {
		t.Errorf("expected the two z=5 vertices in input order, got %d elements", len(got))
	}
	got = filterT(t, "<Z", elems)
	if !sameElements(got, elems, 2) {
		t.Errorf("expected the z=3 vertex, got %d elements", len(got))
	}
}

func TestExtremalBoxEdges(t *testing.T) {
	edges := boxEdges()
	got := filterT(t, ">Z", edges)
	if !sameElements(got, edges, 2, 3, 6, 7) {
		t.Fatalf("expected the 4 top edges in input order, got %d", len(got))
	}
	got = filterT(t, "<Z", edges)
	if !sameElements(got, edges, 0, 1, 4, 5) {
		t.Fatalf("expected the 4 bottom edges, got %d", len(got))
	}
}

func TestIndexedSelection(t *testing.T) {
	edges := boxEdges()

	// Ties from an extremal selector keep input order, so indexing is
	// deterministic: the top edges are [2 3 6 7].
	tests := []struct {
		src  string
		want int
	}{
		{">Z[0]", 2},
		{">Z[1]", 3},
		{">Z[-1]", 7},
		{">Z[-2]", 6},
		{">Z[3]", 7},
	}
	for _, tt := range tests {
		got := filterT(t, tt.src, edges)
		if !sameElements(got, edges, tt.want) {
			t.Errorf("%s: got %d elements, want edge %d", tt.src, len(got), tt.want)
		}
	}
}

func TestIndexedBoundary(t *testing.T) {
	edges := boxEdges()
	// The >Z ordering has length 4: index -1 equals index 3, and any
	// out-of-range index yields an empty result rather than an error.
	last := filterT(t, ">Z[-1]", edges)
	third := filterT(t, ">Z[3]", edges)
	if !reflect.DeepEqual(last, third) {
		t.Error(">Z[-1] and >Z[3] should select the same element")
	}
	for _, src := range []string{">Z[4]", ">Z[-5]", ">Z[100]"} {
		if got := filterT(t, src, edges); len(got) != 0 {
			t.Errorf("%s: expected empty result, got %d", src, len(got))
		}
	}
}

func TestParallel(t *testing.T) {
	edges := boxEdges()
	got := filterT(t, "|X", edges)
	if !sameElements(got, edges, 0, 1, 2, 3) {
		t.Fatalf("|X: expected the 4 X edges, got %d", len(got))
	}
	// Parallelism ignores sense: a vector literal pointing the other
	// way selects the same edges.
	got = filterT(t, "|(-1,0,0)", edges)
	if !sameElements(got, edges, 0, 1, 2, 3) {
		t.Fatalf("|(-1,0,0): expected the 4 X edges, got %d", len(got))
	}
}

func TestParallelExcludesUndirected(t *testing.T) {
	curved := topo.NewFace(geom.Vec3{X: 5, Y: 5, Z: 5}, geom.GeomSphere, geom.Box{})
	vert := topo.NewVertex(geom.Vec3{X: 0, Y: 0, Z: 9})
	straight := topo.NewLineEdge(geom.Vec3{X: 0, Y: 0, Z: 0}, geom.Vec3{X: 0, Y: 0, Z: 4})
	elems := []topo.Element{curved, vert, straight}

	for _, src := range []string{"|Z", "#X", "+Z", "-Z"} {
		got := filterT(t, src, elems)
		for _, e := range got {
			if e == topo.Element(curved) || e == topo.Element(vert) {
				t.Errorf("%s: selected an element without a direction", src)
			}
		}
	}
	if got := filterT(t, "|Z", elems); !sameElements(got, elems, 2) {
		t.Error("|Z should select only the straight edge")
	}
}

func TestNormalSign(t *testing.T) {
	faces := boxFaces()
	if got := filterT(t, "+Z", faces); !sameElements(got, faces, 5) {
		t.Errorf("+Z: expected only the top face")
	}
	if got := filterT(t, "-Z", faces); !sameElements(got, faces, 4) {
		t.Errorf("-Z: expected only the bottom face")
	}
	if got := filterT(t, "|Z", faces); !sameElements(got, faces, 4, 5) {
		t.Errorf("|Z: expected top and bottom faces")
	}
}

func TestPerpendicular(t *testing.T) {
	edges := boxEdges()
	// Perpendicular to both X and Y leaves only the vertical edges.
	if got := filterT(t, "#XY", edges); !sameElements(got, edges, 8, 9, 10, 11) {
		t.Errorf("#XY: expected the 4 Z edges")
	}
	// Perpendicular to Z: all horizontal edges.
	if got := filterT(t, "#Z", edges); !sameElements(got, edges, 0, 1, 2, 3, 4, 5, 6, 7) {
		t.Errorf("#Z: expected the 8 horizontal edges")
	}
}

func TestTypeFilter(t *testing.T) {
	line := topo.NewLineEdge(geom.Vec3{}, geom.Vec3{X: 1, Y: 0, Z: 0})
	circ := topo.NewEdge(geom.Vec3{}, geom.GeomCircle, geom.Box{})
	plane := topo.NewPlanarFace(geom.Vec3{}, geom.AxisZ, geom.Box{})
	elems := []topo.Element{line, circ, plane}

	if got := filterT(t, "%LINE", elems); !sameElements(got, elems, 0) {
		t.Error("%LINE should select the straight edge")
	}
	if got := filterT(t, "%CIRCLE", elems); !sameElements(got, elems, 1) {
		t.Error("%CIRCLE should select the circular edge")
	}
	if got := filterT(t, "%TORUS", elems); len(got) != 0 {
		t.Errorf("%%TORUS should select nothing")
	}
}

func TestCombinatorScenario(t *testing.T) {
	edges := boxEdges()
	// Every X edge of a box is perpendicular to Z by construction, so
	// the intersection is exactly the X edges.
	got := filterT(t, "|X and #Z", edges)
	if !sameElements(got, edges, 0, 1, 2, 3) {
		t.Fatalf("|X and #Z: got %d elements", len(got))
	}
}

func TestAndOrAgainstSets(t *testing.T) {
	edges := boxEdges()
	a := mustParse(t, "|X")
	b := mustParse(t, ">Z")

	and := Evaluate(And{Left: a, Right: b}, edges)
	or := Evaluate(Or{Left: a, Right: b}, edges)
	ra := Evaluate(a, edges)
	rb := Evaluate(b, edges)

	inA := make(map[topo.Element]bool)
	for _, e := range ra {
		inA[e] = true
	}
	inB := make(map[topo.Element]bool)
	for _, e := range rb {
		inB[e] = true
	}

	for _, e := range and {
		if !inA[e] || !inB[e] {
			t.Error("And result contains element outside the intersection")
		}
	}
	for _, e := range ra {
		if inB[e] && !contains(and, e) {
			t.Error("And result missing an intersection element")
		}
	}

	union := make(map[topo.Element]bool)
	for _, e := range or {
		if union[e] {
			t.Error("Or result contains duplicates")
		}
		union[e] = true
	}
	for _, e := range append(append([]topo.Element{}, ra...), rb...) {
		if !union[e] {
			t.Error("Or result missing a union element")
		}
	}
	if len(union) != len(or) {
		t.Error("Or result size mismatch")
	}

	// And preserves left order: |X and >Z lists the top X edges 2, 3.
	if !sameElements(and, edges, 2, 3) {
		t.Errorf("And order: got %d elements", len(and))
	}
}

func TestComplementLaw(t *testing.T) {
	edges := boxEdges()
	for _, src := range []string{">Z", "|X", "%LINE", "#XY", ">Z[1]"} {
		inner := mustParse(t, src)
		sel := Evaluate(inner, edges)
		comp := Evaluate(Not{Inner: inner}, edges)

		if len(sel)+len(comp) != len(edges) {
			t.Errorf("not %s: |sel|+|comp| = %d, want %d", src, len(sel)+len(comp), len(edges))
		}
		for _, e := range comp {
			if contains(sel, e) {
				t.Errorf("not %s: results overlap", src)
			}
		}
		// The complement preserves original input order.
		pos := -1
		for _, e := range comp {
			p := indexOf(edges, e)
			if p <= pos {
				t.Errorf("not %s: complement out of input order", src)
			}
			pos = p
		}
	}
}

func TestSubtract(t *testing.T) {
	edges := boxEdges()
	// Horizontal edges minus the top ones: the bottom 4, in #Z order.
	got := filterT(t, "#Z exc >Z", edges)
	if !sameElements(got, edges, 0, 1, 4, 5) {
		t.Fatalf("#Z exc >Z: got %d elements", len(got))
	}
}

func TestCenterNthClusters(t *testing.T) {
	// Stacked plates: faces at z = 2, 7, 8.
	faces := []topo.Element{
		topo.NewPlanarFace(geom.Vec3{X: 0, Y: 0, Z: 2}, geom.AxisZ, geom.Box{}),
		topo.NewPlanarFace(geom.Vec3{X: 0, Y: 0, Z: 8}, geom.AxisZ, geom.Box{}),
		topo.NewPlanarFace(geom.Vec3{X: 0, Y: 0, Z: 7}, geom.AxisZ, geom.Box{}),
	}
	if got := filterT(t, ">>Z", faces); !sameElements(got, faces, 1) {
		t.Error(">>Z should select the highest face")
	}
	if got := filterT(t, ">>Z[-2]", faces); !sameElements(got, faces, 2) {
		t.Error(">>Z[-2] should select the second-highest face")
	}
	if got := filterT(t, "<<Z", faces); !sameElements(got, faces, 0) {
		t.Error("<<Z should select the lowest face")
	}
	if got := filterT(t, "<<Z[-2]", faces); !sameElements(got, faces, 2) {
		t.Error("<<Z[-2] should select the second-lowest face")
	}
	// Out-of-range cluster index is empty, not an error.
	if got := filterT(t, ">>Z[5]", faces); len(got) != 0 {
		t.Error(">>Z[5] should be empty")
	}
}

func TestCenterNthTieCluster(t *testing.T) {
	edges := boxEdges()
	// The 12 box edges cluster into bottom (z=0), middle (z=15, the
	// vertical edges), and top (z=30). Members keep input order.
	if got := filterT(t, ">>Z[-1]", edges); !sameElements(got, edges, 2, 3, 6, 7) {
		t.Error(">>Z[-1] should be the top cluster")
	}
	if got := filterT(t, ">>Z[-2]", edges); !sameElements(got, edges, 8, 9, 10, 11) {
		t.Error(">>Z[-2] should be the vertical-edge cluster")
	}
	if got := filterT(t, ">>Z[0]", edges); !sameElements(got, edges, 0, 1, 4, 5) {
		t.Error(">>Z[0] should be the bottom cluster")
	}
}

func TestNamedViewsAndBareAxis(t *testing.T) {
	faces := boxFaces()
	if got := filterT(t, "top", faces); !sameElements(got, faces, 5) {
		t.Error("top should select the +Z face")
	}
	if got := filterT(t, "bottom", faces); !sameElements(got, faces, 4) {
		t.Error("bottom should select the -Z face")
	}
	if got := filterT(t, "front", faces); !sameElements(got, faces, 2) {
		t.Error("front should select the -Y face")
	}
	// A bare axis is the positive normal-direction filter.
	if got := filterT(t, "Z", faces); !sameElements(got, faces, 5) {
		t.Error("bare Z should behave like +Z")
	}
}

func TestDeterminism(t *testing.T) {
	edges := boxEdges()
	n := mustParse(t, "not (|X and #Z) or %LINE[-1]")
	a := Evaluate(n, edges)
	b := Evaluate(n, edges)
	if !reflect.DeepEqual(a, b) {
		t.Error("evaluation is not deterministic")
	}
}

func TestEmptyInput(t *testing.T) {
	for _, src := range []string{">Z", "|X", "%PLANE", "not >Z", ">Z[0]", ">>Z[1]"} {
		if got := filterT(t, src, nil); len(got) != 0 {
			t.Errorf("%s over empty input: got %d elements", src, len(got))
		}
	}
}

func TestNoMatchIsEmptyNotError(t *testing.T) {
	verts := []topo.Element{topo.NewVertex(geom.Vec3{})}
	got, err := Filter("%PLANE and |X", verts)
	if err != nil {
		t.Fatalf("evaluation must not fail on no match: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty result, got %d", len(got))
	}
}

func TestIdenticalAttributesDistinctElements(t *testing.T) {
	// Two elements with identical attributes are still distinct
	// selections: identity is per element, not per value.
	a := topo.NewVertex(geom.Vec3{X: 0, Y: 0, Z: 5})
	b := topo.NewVertex(geom.Vec3{X: 0, Y: 0, Z: 5})
	elems := []topo.Element{a, b}
	got := filterT(t, ">Z", elems)
	if !sameElements(got, elems, 0, 1) {
		t.Fatalf("expected both tied vertices, got %d", len(got))
	}
	if got := filterT(t, "not >Z[0]", elems); !sameElements(got, elems, 1) {
		t.Error("complement should drop exactly the indexed element")
	}
}

func TestEvaluatorTolerance(t *testing.T) {
	near := []topo.Element{
		topo.NewVertex(geom.Vec3{X: 0, Y: 0, Z: 10}),
		topo.NewVertex(geom.Vec3{X: 0, Y: 0, Z: 9.95}),
	}
	n := mustParse(t, ">Z")

	// Default tolerance separates the two.
	if got := Evaluate(n, near); len(got) != 1 {
		t.Errorf("default tolerance: got %d elements, want 1", len(got))
	}
	// A coarse evaluator treats them as tied.
	coarse := NewEvaluator(0.1)
	if got := coarse.Evaluate(n, near); len(got) != 2 {
		t.Errorf("coarse tolerance: got %d elements, want 2", len(got))
	}
}

func TestFilterPropagatesParseError(t *testing.T) {
	_, err := Filter(">W", boxEdges())
	if err == nil {
		t.Fatal("Filter should surface the parse error")
	}
	var serr *SyntaxError
	if !errors.As(err, &serr) || serr.Kind != ErrUnknownAxis {
		t.Errorf("unexpected error: %v", err)
	}
}

func contains(elems []topo.Element, e topo.Element) bool {
	return indexOf(elems, e) >= 0
}

func indexOf(elems []topo.Element, e topo.Element) int {
	for i, x := range elems {
		if x == e {
			return i
		}
	}
	return -1
}
