// Package rx compiles a regular-expression string into an automaton.Fragment
// using automaton.Builder's Thompson-construction helpers, implementing the
// subset §4.4 specifies: alternation, concatenation, grouping, character
// classes with ranges and escapes, dot, and the quantifiers that reduce to
// the star/plus/opt identities. It has no teacher file to ground on directly
// (the host repository's lex.RegexToNFA is a stub); it is grounded
// structurally on automaton.Builder's own Thompson helpers, which this
// package is the sole caller of.
package rx

import "fmt"

// ExceptionKind enumerates why a regex string failed to compile.
type ExceptionKind int

const (
	UnexpectedChar ExceptionKind = iota
	UnterminatedPattern
	UnsupportedEscape
	UnsupportedSpecial
	InvalidRepeatCount
)

func (k ExceptionKind) String() string {
	switch k {
	case UnexpectedChar:
		return "UnexpectedChar"
	case UnterminatedPattern:
		return "UnterminatedPattern"
	case UnsupportedEscape:
		return "UnsupportedEscape"
	case UnsupportedSpecial:
		return "UnsupportedSpecial"
	case InvalidRepeatCount:
		return "InvalidRepeatCount"
	default:
		return "Unknown"
	}
}

// Exception is a positional regex compilation error.
type Exception struct {
	Kind ExceptionKind
	Pos  int
	Msg  string
}

func (e *Exception) Error() string {
	return fmt.Sprintf("%s at position %d: %s", e.Kind, e.Pos, e.Msg)
}

func newException(kind ExceptionKind, pos int, format string, a ...any) error {
	return &Exception{Kind: kind, Pos: pos, Msg: fmt.Sprintf(format, a...)}
}
