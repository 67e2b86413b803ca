package selector

import (
	"strconv"
	"strings"

	"github.com/chazu/tenon/pkg/geom"
)

// tokenKind enumerates the lexical tokens of the selector grammar.
type tokenKind int

const (
	tEOF tokenKind = iota
	tIdent
	tNumber
	tVector // parenthesized vector literal, e.g. (1,0.5,-2)
	tGT
	tGTGT
	tLT
	tLTLT
	tPipe
	tPlus
	tMinus
	tHash
	tPercent
	tLParen
	tRParen
	tLBracket
	tRBracket
)

// token is one lexical unit with its source position.
type token struct {
	kind tokenKind
	pos  int    // byte offset in the source string
	text string // raw source text
	vec  geom.Vec3
}

// lex scans a selector string into tokens. A trailing tEOF token is
// always appended so the parser can peek without bounds checks.
func lex(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '>':
			if i+1 < len(src) && src[i+1] == '>' {
				toks = append(toks, token{tGTGT, i, ">>", geom.Vec3{}})
				i += 2
			} else {
				toks = append(toks, token{tGT, i, ">", geom.Vec3{}})
				i++
			}
		case c == '<':
			if i+1 < len(src) && src[i+1] == '<' {
				toks = append(toks, token{tLTLT, i, "<<", geom.Vec3{}})
				i += 2
			} else {
				toks = append(toks, token{tLT, i, "<", geom.Vec3{}})
				i++
			}
		case c == '|':
			toks = append(toks, token{tPipe, i, "|", geom.Vec3{}})
			i++
		case c == '+':
			toks = append(toks, token{tPlus, i, "+", geom.Vec3{}})
			i++
		case c == '-':
			toks = append(toks, token{tMinus, i, "-", geom.Vec3{}})
			i++
		case c == '#':
			toks = append(toks, token{tHash, i, "#", geom.Vec3{}})
			i++
		case c == '%':
			toks = append(toks, token{tPercent, i, "%", geom.Vec3{}})
			i++
		case c == '[':
			toks = append(toks, token{tLBracket, i, "[", geom.Vec3{}})
			i++
		case c == ']':
			toks = append(toks, token{tRBracket, i, "]", geom.Vec3{}})
			i++
		case c == ')':
			toks = append(toks, token{tRParen, i, ")", geom.Vec3{}})
			i++
		case c == '(':
			// A '(' opens either a vector literal or a grouped expression.
			// Try the vector form first; fall back to a plain paren.
			if vec, end, ok := scanVector(src, i); ok {
				toks = append(toks, token{tVector, i, src[i:end], vec})
				i = end
			} else {
				toks = append(toks, token{tLParen, i, "(", geom.Vec3{}})
				i++
			}
		case isDigit(c):
			j := i
			for j < len(src) && isDigit(src[j]) {
				j++
			}
			toks = append(toks, token{tNumber, i, src[i:j], geom.Vec3{}})
			i = j
		case isAlpha(c):
			j := i
			for j < len(src) && (isAlpha(src[j]) || isDigit(src[j]) || src[j] == '_') {
				j++
			}
			toks = append(toks, token{tIdent, i, src[i:j], geom.Vec3{}})
			i = j
		default:
			return nil, syntaxErr(ErrMalformed, i, string(c), "unexpected character")
		}
	}
	toks = append(toks, token{tEOF, len(src), "", geom.Vec3{}})
	return toks, nil
}

// scanVector attempts to read "(x,y,z)" starting at the '(' at src[start].
// Components are signed decimal numbers; whitespace is allowed around each
// component. Returns the vector and the offset just past the ')'.
func scanVector(src string, start int) (geom.Vec3, int, bool) {
	i := start + 1
	var comps [3]float64
	for n := 0; n < 3; n++ {
		i = skipSpace(src, i)
		f, end, ok := scanFloat(src, i)
		if !ok {
			return geom.Vec3{}, 0, false
		}
		comps[n] = f
		i = skipSpace(src, end)
		if n < 2 {
			if i >= len(src) || src[i] != ',' {
				return geom.Vec3{}, 0, false
			}
			i++
		}
	}
	if i >= len(src) || src[i] != ')' {
		return geom.Vec3{}, 0, false
	}
	return geom.Vec3{X: comps[0], Y: comps[1], Z: comps[2]}, i + 1, true
}

// scanFloat reads a signed decimal number (no exponent) at src[i].
func scanFloat(src string, i int) (float64, int, bool) {
	j := i
	if j < len(src) && (src[j] == '+' || src[j] == '-') {
		j++
	}
	digits := j
	for j < len(src) && isDigit(src[j]) {
		j++
	}
	if j == digits {
		return 0, 0, false
	}
	if j < len(src) && src[j] == '.' {
		j++
		for j < len(src) && isDigit(src[j]) {
			j++
		}
	}
	f, err := strconv.ParseFloat(strings.TrimPrefix(src[i:j], "+"), 64)
	if err != nil {
		return 0, 0, false
	}
	return f, j, true
}

func skipSpace(src string, i int) int {
	for i < len(src) && (src[i] == ' ' || src[i] == '\t') {
		i++
	}
	return i
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
