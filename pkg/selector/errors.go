package selector

import "fmt"

// ErrorKind classifies a SyntaxError.
type ErrorKind int

const (
	ErrMalformed   ErrorKind = iota // unrecognized character or token
	ErrUnbalanced                   // unterminated parenthesis
	ErrBadIndex                     // empty or non-integer index clause
	ErrTrailing                     // unconsumed input after a complete selector
	ErrUnknownAxis                  // axis token outside the vocabulary
	ErrUnknownType                  // geometry-type token outside the vocabulary
)

func (k ErrorKind) String() string {
	switch k {
	case ErrMalformed:
		return "malformed"
	case ErrUnbalanced:
		return "unbalanced"
	case ErrBadIndex:
		return "bad index"
	case ErrTrailing:
		return "trailing input"
	case ErrUnknownAxis:
		return "unknown axis"
	case ErrUnknownType:
		return "unknown type"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// SyntaxError describes a malformed selector string. It carries the
// offending fragment and its byte offset for diagnostics. Parsing never
// recovers from a SyntaxError; the caller decides how to present it.
type SyntaxError struct {
	Pos      int       // byte offset of the offending fragment
	Fragment string    // the offending substring, empty at end of input
	Kind     ErrorKind // error classification
	Message  string    // human-readable description
}

func (e *SyntaxError) Error() string {
	if e.Fragment == "" {
		return fmt.Sprintf("selector: %s at offset %d", e.Message, e.Pos)
	}
	return fmt.Sprintf("selector: %s at offset %d: %q", e.Message, e.Pos, e.Fragment)
}

func syntaxErr(kind ErrorKind, pos int, fragment, format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{
		Pos:      pos,
		Fragment: fragment,
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
	}
}
