// Package automaton implements the two token matchers the tokenizer
// composes: StringDFA for fixed-string patterns and TokenNFA for regular
// expressions (plus fixed strings, via the same Thompson construction).
//
// Both are grounded structurally on the host repository's generic
// automaton.DFA[E]/NFA[E] (states held in a map, transitions holding state
// names, an accepting-value carried per state), specialized here from
// grammar-symbol transitions to character transitions, with the
// ASCII-table-rooted fast path spec.md's StringDFA and TokenNFA require.
package automaton

import (
	"sort"

	"github.com/cederberg/grammatica-sub000/token"
)

// asciiLimit is the size of the direct-indexed ASCII transition table held
// by every StringDFA state and by TokenNFA's initial-state fast path.
const asciiLimit = 128

// dfaState is one node of the StringDFA trie: an ASCII-indexed transition
// table for speed, plus a rune-keyed map for the non-ASCII overflow, and an
// optional accepted pattern if this state is itself a match.
type dfaState struct {
	ascii  [asciiLimit]*dfaState
	extra  map[rune]*dfaState
	accept *token.Pattern

	// acceptFold records whether accept was added case-insensitively, so
	// that it may be reached through case-folded input.
	acceptFold bool
}

func newDFAState() *dfaState {
	return &dfaState{}
}

func (s *dfaState) child(r rune) *dfaState {
	if r >= 0 && r < asciiLimit {
		return s.ascii[r]
	}
	if s.extra == nil {
		return nil
	}
	return s.extra[r]
}

func (s *dfaState) ensureChild(r rune) *dfaState {
	if c := s.child(r); c != nil {
		return c
	}
	c := newDFAState()
	if r >= 0 && r < asciiLimit {
		s.ascii[r] = c
	} else {
		if s.extra == nil {
			s.extra = map[rune]*dfaState{}
		}
		s.extra[r] = c
	}
	return c
}

// StringDFA is a deterministic finite automaton over fixed-string token
// patterns. Patterns are added with AddMatch; Match walks the automaton
// against a buffer's upcoming characters without consuming input and
// returns the deepest accepting pattern reached, i.e. the longest matching
// fixed string.
type StringDFA struct {
	root *dfaState
}

// NewStringDFA returns an empty StringDFA.
func NewStringDFA() *StringDFA {
	return &StringDFA{root: newDFAState()}
}

// peeker is the minimal interface StringDFA.Match needs from a character
// source: look ahead without consuming.
type peeker interface {
	Peek(offset int) rune
}

// AddMatch extends the automaton with a new fixed string leading to
// pattern's acceptance. When ignoreCase is set the string is folded to
// lower-case before insertion, and Match folds input to lower-case as it
// walks, matching §4.2's case-insensitive contract.
func (d *StringDFA) AddMatch(s string, ignoreCase bool, pattern *token.Pattern) {
	if ignoreCase {
		s = foldLower(s)
	}

	state := d.root
	for _, r := range s {
		state = state.ensureChild(r)
	}
	state.accept = pattern
	state.acceptFold = ignoreCase
}

// Match walks the automaton across buf.Peek(0), buf.Peek(1), ... and
// returns the pattern of the deepest accepting state reached, or nil if no
// prefix of the input matches any added string. It never consumes input.
func (d *StringDFA) Match(buf peeker) *token.Pattern {
	state := d.root
	var best *token.Pattern
	folded := false

	for i := 0; ; i++ {
		r := buf.Peek(i)
		if r < 0 {
			break
		}

		next := state.child(r)
		if next == nil {
			// fold to lowercase as a second attempt, for case-insensitive
			// strings inserted in lower form; once a folded step is taken,
			// only strings added case-insensitively are accepted.
			if f := foldRune(r); f != r {
				next = state.child(f)
				folded = true
			}
		}
		if next == nil {
			break
		}
		state = next
		if state.accept != nil && (!folded || state.acceptFold) {
			best = state.accept
		}
	}

	return best
}

func foldRune(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

func foldLower(s string) string {
	out := []rune(s)
	for i, r := range out {
		out[i] = foldRune(r)
	}
	return string(out)
}

// Patterns returns every pattern registered in the automaton, in
// ascending-id order; used by tests and debugging tools, never by the
// matching hot path.
func (d *StringDFA) Patterns() []*token.Pattern {
	seen := map[int]*token.Pattern{}
	var walk func(s *dfaState)
	walk = func(s *dfaState) {
		if s.accept != nil {
			seen[s.accept.ID()] = s.accept
		}
		for _, c := range s.ascii {
			if c != nil {
				walk(c)
			}
		}
		for _, c := range s.extra {
			walk(c)
		}
	}
	walk(d.root)

	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]*token.Pattern, len(ids))
	for i, id := range ids {
		out[i] = seen[id]
	}
	return out
}
