// Package grammar is the grammar model (§4.7 data): ProductionPattern,
// Alternative, and Element, assembled into a Grammar container with a
// construction API and a Prepare() that validates the grammar and runs
// the look-ahead analyzer.
//
// It is grounded on the host repository's grammar.Rule/Production shape
// plus grammar.LR0Item/LR1Item's equality-ignoring-metadata pattern (an
// Alternative's cached look-ahead is excluded from equality exactly as
// LR1Item.Equal compares the core item and ignores Lookahead).
package grammar

import "github.com/cederberg/grammatica-sub000/lookahead"

// ElementKind distinguishes a reference to a token pattern from a
// reference to a production pattern.
type ElementKind int

const (
	TokenElement ElementKind = iota
	ProductionElement
)

func (k ElementKind) String() string {
	if k == TokenElement {
		return "token"
	}
	return "production"
}

// Infinite is the Max sentinel: any Max <= 0 is treated as unbounded.
const Infinite = 0

// Element references a token or production pattern by id, with a
// repetition count. Max <= 0 means unbounded.
type Element struct {
	Kind ElementKind
	ID   int
	Min  int
	Max  int

	lookAhead *lookahead.Set
}

// Unbounded reports whether e has no upper repetition bound.
func (e Element) Unbounded() bool { return e.Max <= 0 }

// Repeatable reports whether e may match more than once.
func (e Element) Repeatable() bool { return e.Unbounded() || e.Max > 1 }

// Optional reports whether e may match zero times.
func (e Element) Optional() bool { return e.Min == 0 }

// LookAhead returns the cached one-occurrence look-ahead set computed by
// Grammar.Prepare, or nil before preparation.
func (e Element) LookAhead() *lookahead.Set { return e.lookAhead }

func elementsEqual(a, b Element) bool {
	return a.Kind == b.Kind && a.ID == b.ID && a.Min == b.Min && a.Max == b.Max
}
