package selector

import (
	"strconv"
	"strings"

	"github.com/chazu/tenon/pkg/geom"
)

// Parse compiles a selector string into an immutable Node tree.
// It returns a *SyntaxError for malformed input, including axis or
// geometry-type tokens outside the fixed vocabulary.
func Parse(src string) (Node, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	n, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tEOF {
		return nil, syntaxErr(ErrTrailing, t.pos, t.text, "unexpected input after selector")
	}
	return n, nil
}

// MustParse is like Parse but panics on error. Intended for selectors
// fixed at compile time.
func MustParse(src string) Node {
	n, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return n
}

// parser is a recursive-descent parser over the token stream.
// Precedence, lowest to highest: or/exc, and, not, postfix index, atom.
type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tEOF {
		p.pos++
	}
	return t
}

// keyword reports whether the next token is the given case-insensitive
// word, consuming it if so.
func (p *parser) keyword(words ...string) (string, bool) {
	t := p.peek()
	if t.kind != tIdent {
		return "", false
	}
	for _, w := range words {
		if strings.EqualFold(t.text, w) {
			p.next()
			return w, true
		}
	}
	return "", false
}

func (p *parser) parseOr() (Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		w, ok := p.keyword("or", "exc", "except")
		if !ok {
			return left, nil
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		if w == "or" {
			left = Or{Left: left, Right: right}
		} else {
			left = Sub{Left: left, Right: right}
		}
	}
}

func (p *parser) parseAnd() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.keyword("and"); !ok {
			return left, nil
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = And{Left: left, Right: right}
	}
}

func (p *parser) parseUnary() (Node, error) {
	if _, ok := p.keyword("not"); ok {
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Not{Inner: inner}, nil
	}
	return p.parsePostfix()
}

// parsePostfix parses an atom followed by any number of [n] suffixes.
func (p *parser) parsePostfix() (Node, error) {
	n, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tLBracket {
		idx, err := p.parseIndex()
		if err != nil {
			return nil, err
		}
		n = Indexed{Inner: n, Index: idx}
	}
	return n, nil
}

// parseIndex parses an index clause "[n]" with an optional sign.
func (p *parser) parseIndex() (int, error) {
	open := p.next() // consume '['
	neg := false
	switch p.peek().kind {
	case tMinus:
		p.next()
		neg = true
	case tPlus:
		p.next()
	}
	num := p.peek()
	if num.kind != tNumber {
		return 0, syntaxErr(ErrBadIndex, open.pos, num.text, "expected integer index")
	}
	p.next()
	v, err := strconv.Atoi(num.text)
	if err != nil {
		return 0, syntaxErr(ErrBadIndex, num.pos, num.text, "invalid index")
	}
	if neg {
		v = -v
	}
	if t := p.peek(); t.kind != tRBracket {
		return 0, syntaxErr(ErrBadIndex, t.pos, t.text, "expected closing bracket")
	}
	p.next()
	return v, nil
}

func (p *parser) parseAtom() (Node, error) {
	t := p.peek()
	switch t.kind {
	case tGT, tLT:
		p.next()
		axis, err := p.parseAxis()
		if err != nil {
			return nil, err
		}
		return Directional{Axis: axis, Max: t.kind == tGT}, nil

	case tGTGT, tLTLT:
		p.next()
		axis, err := p.parseAxis()
		if err != nil {
			return nil, err
		}
		// An immediately following index clause selects the nth
		// projection cluster and belongs to this node, not to a
		// generic Indexed wrapper.
		idx := -1
		if p.peek().kind == tLBracket {
			var err error
			idx, err = p.parseIndex()
			if err != nil {
				return nil, err
			}
		}
		return CenterNth{Axis: axis, Index: idx, Max: t.kind == tGTGT}, nil

	case tPipe:
		p.next()
		axis, err := p.parseAxis()
		if err != nil {
			return nil, err
		}
		return Parallel{Axis: axis}, nil

	case tPlus, tMinus:
		p.next()
		axis, err := p.parseAxis()
		if err != nil {
			return nil, err
		}
		return Normal{Axis: axis, Positive: t.kind == tPlus}, nil

	case tHash:
		p.next()
		axes, err := p.parseAxisSet()
		if err != nil {
			return nil, err
		}
		return Perpendicular{Axes: axes}, nil

	case tPercent:
		p.next()
		name := p.peek()
		if name.kind != tIdent {
			return nil, syntaxErr(ErrUnknownType, name.pos, name.text, "expected geometry type")
		}
		p.next()
		gt, ok := geom.LookupGeomType(name.text)
		if !ok {
			return nil, syntaxErr(ErrUnknownType, name.pos, name.text, "unknown geometry type")
		}
		return TypeFilter{Type: gt}, nil

	case tVector:
		p.next()
		if t.vec.IsZero(geom.Tolerance) {
			return nil, syntaxErr(ErrUnknownAxis, t.pos, t.text, "zero-length direction")
		}
		return Normal{Axis: t.vec.Normalize(), Positive: true}, nil

	case tIdent:
		// A bare identifier is a named view or an axis shorthand for
		// the positive normal-direction filter.
		if view, ok := geom.LookupView(t.text); ok {
			p.next()
			return Directional{Axis: view, Max: true}, nil
		}
		if axis, ok := geom.LookupAxis(t.text); ok {
			p.next()
			return Normal{Axis: axis.Normalize(), Positive: true}, nil
		}
		return nil, syntaxErr(ErrUnknownAxis, t.pos, t.text, "unknown selector")

	case tLParen:
		open := p.next()
		n, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if c := p.peek(); c.kind != tRParen {
			return nil, syntaxErr(ErrUnbalanced, open.pos, open.text, "unterminated parenthesis")
		}
		p.next()
		return n, nil

	case tEOF:
		return nil, syntaxErr(ErrMalformed, t.pos, "", "expected selector")
	}
	return nil, syntaxErr(ErrMalformed, t.pos, t.text, "expected selector")
}

// parseAxis parses the axis operand of a sigil: a named axis or a
// vector literal, normalized.
func (p *parser) parseAxis() (geom.Vec3, error) {
	t := p.peek()
	switch t.kind {
	case tIdent:
		axis, ok := geom.LookupAxis(t.text)
		if !ok {
			return geom.Vec3{}, syntaxErr(ErrUnknownAxis, t.pos, t.text, "unknown axis")
		}
		p.next()
		return axis.Normalize(), nil
	case tVector:
		if t.vec.IsZero(geom.Tolerance) {
			return geom.Vec3{}, syntaxErr(ErrUnknownAxis, t.pos, t.text, "zero-length direction")
		}
		p.next()
		return t.vec.Normalize(), nil
	}
	return geom.Vec3{}, syntaxErr(ErrUnknownAxis, t.pos, t.text, "expected axis")
}

// parseAxisSet parses the operand of '#': one or more concatenated
// principal axis letters ("#XY" means perpendicular to X and to Y),
// or a single vector literal.
func (p *parser) parseAxisSet() ([]geom.Vec3, error) {
	t := p.peek()
	switch t.kind {
	case tIdent:
		p.next()
		axes := make([]geom.Vec3, 0, len(t.text))
		for i := 0; i < len(t.text); i++ {
			axis, ok := geom.LookupAxis(string(t.text[i]))
			if !ok {
				return nil, syntaxErr(ErrUnknownAxis, t.pos+i, string(t.text[i]), "unknown axis letter")
			}
			axes = append(axes, axis)
		}
		return axes, nil
	case tVector:
		if t.vec.IsZero(geom.Tolerance) {
			return nil, syntaxErr(ErrUnknownAxis, t.pos, t.text, "zero-length direction")
		}
		p.next()
		return []geom.Vec3{t.vec.Normalize()}, nil
	}
	return nil, syntaxErr(ErrUnknownAxis, t.pos, t.text, "expected axis letters")
}
