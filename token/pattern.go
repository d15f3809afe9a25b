// Package token holds the lexical vocabulary of a grammar: TokenPattern (the
// declarative description of one lexical rule), Token (a lexeme produced
// from it), and TokenMatch (the "current best match" record the tokenizer's
// matchers race to fill in).
//
// It is grounded on types.TokenClass and the teacher's lexerTemplate
// pattern/action records, generalized to the richer
// {id, name, type, pattern, ignore, error} shape spec.md requires.
package token

import "fmt"

// Kind distinguishes a fixed-string token pattern from a regular-expression
// one.
type Kind int

const (
	String Kind = iota
	Regexp
)

func (k Kind) String() string {
	if k == String {
		return "STRING"
	}
	return "REGEXP"
}

// Pattern is the declarative description of one lexical rule.
type Pattern struct {
	id   int
	name string
	kind Kind
	text string

	ignoreCase bool

	ignore        bool
	ignoreMessage string

	errorFlag    bool
	errorMessage string

	debugInfo string
}

// NewPattern declares a new token pattern. id must be unique across the
// grammar it is added to; that invariant is enforced by grammar.Grammar, not
// by Pattern itself.
func NewPattern(id int, name string, kind Kind, text string) *Pattern {
	return &Pattern{id: id, name: name, kind: kind, text: text}
}

// ID returns the pattern's unique identifier.
func (p *Pattern) ID() int { return p.id }

// Name returns the pattern's declared name, e.g. "NUM" or "IDENT".
func (p *Pattern) Name() string { return p.name }

// Kind returns whether this is a fixed-string or regular-expression
// pattern.
func (p *Pattern) Kind() Kind { return p.kind }

// Text returns the pattern source text: the literal string for a String
// pattern, or the regex source for a Regexp pattern.
func (p *Pattern) Text() string { return p.text }

// SetIgnoreCase marks a String pattern as case-insensitive. It has no
// effect on Regexp patterns, which express case-insensitivity within the
// regex syntax itself.
func (p *Pattern) SetIgnoreCase(v bool) *Pattern {
	p.ignoreCase = v
	return p
}

// IgnoreCase returns whether this String pattern matches case-insensitively.
func (p *Pattern) IgnoreCase() bool { return p.ignoreCase }

// Ignore flags this pattern so that tokens it produces are dropped by the
// tokenizer rather than returned to the caller, optionally recording msg for
// diagnostic use (e.g. "whitespace", "line comment").
func (p *Pattern) Ignore(msg string) *Pattern {
	p.ignore = true
	p.ignoreMessage = msg
	return p
}

// IsIgnored returns whether this pattern is flagged to be dropped.
func (p *Pattern) IsIgnored() bool { return p.ignore }

// IgnoreMessage returns the diagnostic message associated with Ignore, if
// any.
func (p *Pattern) IgnoreMessage() string { return p.ignoreMessage }

// Error flags this pattern so that matching it raises an InvalidToken parse
// error carrying msg, instead of producing a token.
func (p *Pattern) Error(msg string) *Pattern {
	p.errorFlag = true
	p.errorMessage = msg
	return p
}

// IsError returns whether this pattern is flagged as an error pattern.
func (p *Pattern) IsError() bool { return p.errorFlag }

// ErrorMessage returns the message raised when this pattern matches.
func (p *Pattern) ErrorMessage() string { return p.errorMessage }

// SetDebugInfo attaches a free-form debugging label to the pattern, shown by
// DebugString and in test failure output.
func (p *Pattern) SetDebugInfo(s string) *Pattern {
	p.debugInfo = s
	return p
}

// DebugString returns a short human-readable description of the pattern,
// useful in failed-assertion output and example tooling.
func (p *Pattern) DebugString() string {
	flags := ""
	if p.ignore {
		flags += " ignore"
	}
	if p.errorFlag {
		flags += " error"
	}
	if p.debugInfo != "" {
		return fmt.Sprintf("%s#%d(%s %q%s) [%s]", p.name, p.id, p.kind, p.text, flags, p.debugInfo)
	}
	return fmt.Sprintf("%s#%d(%s %q%s)", p.name, p.id, p.kind, p.text, flags)
}

func (p *Pattern) String() string { return p.DebugString() }
