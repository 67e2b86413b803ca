package selector

import (
	"sort"

	"github.com/chazu/tenon/pkg/geom"
	"github.com/chazu/tenon/pkg/topo"
)

// DefaultTolerance is the epsilon used by the package-level Evaluate and
// Filter functions for parallelism, perpendicularity, and projection-tie
// comparisons.
const DefaultTolerance = geom.Tolerance

// Evaluator applies selector trees to element lists. The zero value is
// not usable; construct with NewEvaluator. Evaluators are stateless and
// safe for concurrent use.
type Evaluator struct {
	tol float64
}

// NewEvaluator creates an Evaluator with an explicit tolerance.
// Tolerances at or below zero fall back to DefaultTolerance.
func NewEvaluator(tol float64) Evaluator {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	return Evaluator{tol: tol}
}

// Evaluate applies a parsed selector to an ordered element list and
// returns the selected ordered subsequence. Evaluation is total: an
// unmatched selector or out-of-range index yields an empty result,
// never an error. Neither the tree nor the input list is mutated.
func (ev Evaluator) Evaluate(n Node, elems []topo.Element) []topo.Element {
	switch n := n.(type) {
	case Directional:
		return ev.extremal(n.Axis, n.Max, elems)
	case CenterNth:
		return ev.nthCluster(n.Axis, n.Index, n.Max, elems)
	case Parallel:
		return filterDir(elems, func(d geom.Vec3) bool {
			return d.ParallelTo(n.Axis, ev.tol)
		})
	case Normal:
		return filterDir(elems, func(d geom.Vec3) bool {
			if !d.ParallelTo(n.Axis, ev.tol) {
				return false
			}
			if n.Positive {
				return d.Dot(n.Axis) > 0
			}
			return d.Dot(n.Axis) < 0
		})
	case Perpendicular:
		return filterDir(elems, func(d geom.Vec3) bool {
			for _, a := range n.Axes {
				if !d.PerpendicularTo(a, ev.tol) {
					return false
				}
			}
			return true
		})
	case TypeFilter:
		var out []topo.Element
		for _, e := range elems {
			if e.GeomType() == n.Type {
				out = append(out, e)
			}
		}
		return out
	case Indexed:
		inner := ev.Evaluate(n.Inner, elems)
		i := n.Index
		if i < 0 {
			i += len(inner)
		}
		if i < 0 || i >= len(inner) {
			return nil
		}
		return []topo.Element{inner[i]}
	case And:
		left := ev.Evaluate(n.Left, elems)
		right := toSet(ev.Evaluate(n.Right, elems))
		var out []topo.Element
		for _, e := range left {
			if _, ok := right[e]; ok {
				out = append(out, e)
			}
		}
		return out
	case Or:
		seen := make(map[topo.Element]struct{})
		var out []topo.Element
		for _, e := range ev.Evaluate(n.Left, elems) {
			if _, ok := seen[e]; !ok {
				seen[e] = struct{}{}
				out = append(out, e)
			}
		}
		for _, e := range ev.Evaluate(n.Right, elems) {
			if _, ok := seen[e]; !ok {
				seen[e] = struct{}{}
				out = append(out, e)
			}
		}
		return out
	case Not:
		drop := toSet(ev.Evaluate(n.Inner, elems))
		var out []topo.Element
		for _, e := range elems {
			if _, ok := drop[e]; !ok {
				out = append(out, e)
			}
		}
		return out
	case Sub:
		left := ev.Evaluate(n.Left, elems)
		drop := toSet(ev.Evaluate(n.Right, elems))
		var out []topo.Element
		for _, e := range left {
			if _, ok := drop[e]; !ok {
				out = append(out, e)
			}
		}
		return out
	}
	return nil
}

// extremal returns the elements whose center projection on axis ties
// the extreme value within tolerance, in input order.
func (ev Evaluator) extremal(axis geom.Vec3, max bool, elems []topo.Element) []topo.Element {
	if len(elems) == 0 {
		return nil
	}
	keys := make([]float64, len(elems))
	best := 0.0
	for i, e := range elems {
		keys[i] = e.Center().Dot(axis)
		if i == 0 || (max && keys[i] > best) || (!max && keys[i] < best) {
			best = keys[i]
		}
	}
	var out []topo.Element
	for i, e := range elems {
		d := best - keys[i]
		if !max {
			d = keys[i] - best
		}
		if d <= ev.tol {
			out = append(out, e)
		}
	}
	return out
}

// nthCluster groups elements whose center projections on axis agree
// within tolerance and returns the cluster at the given position.
// Clusters are ordered ascending by projection for max, descending for
// min, so index -1 is always the operator's extreme. Members of the
// selected cluster keep their input order.
func (ev Evaluator) nthCluster(axis geom.Vec3, index int, max bool, elems []topo.Element) []topo.Element {
	if len(elems) == 0 {
		return nil
	}
	type keyed struct {
		key   float64
		order int
	}
	ks := make([]keyed, len(elems))
	for i, e := range elems {
		ks[i] = keyed{key: e.Center().Dot(axis), order: i}
	}
	sort.Slice(ks, func(i, j int) bool { return ks[i].key < ks[j].key })

	var clusters [][]int
	start := ks[0].key
	cur := []int{ks[0].order}
	for _, k := range ks[1:] {
		if k.key-start <= ev.tol {
			cur = append(cur, k.order)
			continue
		}
		clusters = append(clusters, cur)
		cur = []int{k.order}
		start = k.key
	}
	clusters = append(clusters, cur)

	if !max {
		for i, j := 0, len(clusters)-1; i < j; i, j = i+1, j-1 {
			clusters[i], clusters[j] = clusters[j], clusters[i]
		}
	}

	i := index
	if i < 0 {
		i += len(clusters)
	}
	if i < 0 || i >= len(clusters) {
		return nil
	}
	picked := clusters[i]
	sort.Ints(picked)
	out := make([]topo.Element, len(picked))
	for j, ord := range picked {
		out[j] = elems[ord]
	}
	return out
}

// filterDir keeps elements that have a direction satisfying test.
// Elements without a direction are always excluded.
func filterDir(elems []topo.Element, test func(geom.Vec3) bool) []topo.Element {
	var out []topo.Element
	for _, e := range elems {
		d, ok := e.Direction()
		if !ok {
			continue
		}
		if test(d) {
			out = append(out, e)
		}
	}
	return out
}

// toSet builds an identity set of elements. Membership is Go interface
// identity, not attribute equality.
func toSet(elems []topo.Element) map[topo.Element]struct{} {
	s := make(map[topo.Element]struct{}, len(elems))
	for _, e := range elems {
		s[e] = struct{}{}
	}
	return s
}
