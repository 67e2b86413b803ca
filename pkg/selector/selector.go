// Package selector implements a textual query language for picking
// topological elements of a shape: ">Z" selects the topmost elements,
// "|X and #Z" the elements parallel to X and perpendicular to Z,
// "%PLANE" the planar ones. Selector strings compile to immutable Node
// trees which an Evaluator applies to element lists as pure set
// filter, sort, and index operations.
//
// The grammar, lowest to highest precedence:
//
//	expr    := and { ("or" | "exc" | "except") and }
//	and     := unary { "and" unary }
//	unary   := "not" unary | postfix
//	postfix := atom { "[" int "]" }
//	atom    := (">"|"<") axis
//	         | (">>"|"<<") axis [ "[" int "]" ]
//	         | "|" axis | ("+"|"-") axis | "#" axes | "%" TYPE
//	         | axis | view | "(" expr ")"
//	axis    := "X" | "Y" | "Z" | "XY" | "XZ" | "YZ" | "(" x "," y "," z ")"
//
// Keywords, axis names, view names, and type tags are case-insensitive.
package selector

import "github.com/chazu/tenon/pkg/topo"

// Evaluate applies a parsed selector to an element list using the
// default tolerance.
func Evaluate(n Node, elems []topo.Element) []topo.Element {
	return NewEvaluator(DefaultTolerance).Evaluate(n, elems)
}

// Filter parses a selector string and applies it to an element list in
// one step. Callers evaluating the same selector repeatedly should
// Parse once and reuse the Node instead.
func Filter(src string, elems []topo.Element) ([]topo.Element, error) {
	n, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return Evaluate(n, elems), nil
}
