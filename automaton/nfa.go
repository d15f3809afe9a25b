package automaton

import "github.com/cederberg/grammatica-sub000/token"

// nfaTransition is one outgoing edge of a state: either an epsilon move
// (matcher == nil) or a move on any rune matcher accepts.
type nfaTransition struct {
	matcher CharMatcher // nil means epsilon
	to      int
}

type nfaState struct {
	out []nfaTransition

	// accept is set only on states that are the final state of exactly one
	// compiled pattern fragment; it is never set on a merged/internal
	// state.
	accept *token.Pattern
}

// Fragment is a partially-built sub-automaton with exactly one start and one
// accept state, per the Thompson-construction discipline: every operator
// combines fragments that each have a single entry and single exit.
type Fragment struct {
	Start, Accept int
}

// Builder assembles a TokenNFA's states via Thompson construction. States
// are kept in an arena (a growable slice); transitions hold state indices
// rather than pointers, so states can be added and fragments joined without
// creating heap cycles, mirroring automaton.NFA[E]'s states-map-owns-nothing
// discipline in the host repository (here specialized to an index arena
// instead of a name map, since character automata have no need of the LR
// automaton's human-readable state names).
type Builder struct {
	states []nfaState
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder { return &Builder{} }

// AddState allocates a new state with no outgoing transitions and returns
// its index.
func (b *Builder) AddState() int {
	b.states = append(b.states, nfaState{})
	return len(b.states) - 1
}

// AddTransition adds an edge from -> to guarded by matcher.
func (b *Builder) AddTransition(from, to int, matcher CharMatcher) {
	b.states[from].out = append(b.states[from].out, nfaTransition{matcher: matcher, to: to})
}

// AddEpsilon adds an unguarded edge from -> to.
func (b *Builder) AddEpsilon(from, to int) {
	b.states[from].out = append(b.states[from].out, nfaTransition{to: to})
}

// Char builds the fragment for a single literal rune, i.e. "for any
// subexpression r in sigma" per the McNaughton-Yamada-Thompson algorithm the
// host repository's (stubbed) RegexToNFA cites.
func (b *Builder) Char(r rune) Fragment {
	return b.Class(Lit(r))
}

// Class builds the fragment for a single transition guarded by matcher:
// covers Dot, CharRange, and the ASCII class shortcuts as well as Lit.
func (b *Builder) Class(matcher CharMatcher) Fragment {
	start := b.AddState()
	accept := b.AddState()
	b.AddTransition(start, accept, matcher)
	return Fragment{Start: start, Accept: accept}
}

// Epsilon builds the fragment that accepts the empty string.
func (b *Builder) Epsilon() Fragment {
	start := b.AddState()
	accept := b.AddState()
	b.AddEpsilon(start, accept)
	return Fragment{Start: start, Accept: accept}
}

// Concat builds the juxtaposition "st": left's accept becomes an epsilon
// predecessor of right's start.
func (b *Builder) Concat(left, right Fragment) Fragment {
	b.AddEpsilon(left.Accept, right.Start)
	return Fragment{Start: left.Start, Accept: right.Accept}
}

// Alt builds the alternation "s|t".
func (b *Builder) Alt(left, right Fragment) Fragment {
	start := b.AddState()
	accept := b.AddState()
	b.AddEpsilon(start, left.Start)
	b.AddEpsilon(start, right.Start)
	b.AddEpsilon(left.Accept, accept)
	b.AddEpsilon(right.Accept, accept)
	return Fragment{Start: start, Accept: accept}
}

// Star builds the Kleene closure "s*": zero or more repetitions.
func (b *Builder) Star(expr Fragment) Fragment {
	start := b.AddState()
	accept := b.AddState()
	b.AddEpsilon(start, expr.Start)
	b.AddEpsilon(start, accept)
	b.AddEpsilon(expr.Accept, expr.Start)
	b.AddEpsilon(expr.Accept, accept)
	return Fragment{Start: start, Accept: accept}
}

// Plus builds "s+": one or more repetitions. Compiled as s followed by s*,
// one of the degenerate identities §4.4 allows without needing a distinct
// counted-repetition construction.
func (b *Builder) Plus(expr Fragment) Fragment {
	return b.Concat(expr, b.Star(b.copyFragment(expr)))
}

// Opt builds "s?": zero or one repetitions.
func (b *Builder) Opt(expr Fragment) Fragment {
	start := b.AddState()
	accept := b.AddState()
	b.AddEpsilon(start, expr.Start)
	b.AddEpsilon(start, accept)
	b.AddEpsilon(expr.Accept, accept)
	return Fragment{Start: start, Accept: accept}
}

// copyFragment duplicates the states reachable from expr's fragment so it
// can be reused as the body of a Star following a Concat (Plus needs two
// independent copies of its operand's sub-automaton: one that must be taken,
// one that may repeat).
func (b *Builder) copyFragment(f Fragment) Fragment {
	offset := len(b.states)
	remap := map[int]int{}
	var walk func(s int)
	visited := map[int]bool{}
	walk = func(s int) {
		if visited[s] {
			return
		}
		visited[s] = true
		if _, ok := remap[s]; !ok {
			remap[s] = offset + len(remap)
		}
		for _, t := range b.states[s].out {
			if _, ok := remap[t.to]; !ok {
				remap[t.to] = offset + len(remap)
			}
			walk(t.to)
		}
	}
	walk(f.Start)

	newStates := make([]nfaState, len(remap))
	for old, idx := range remap {
		for _, t := range b.states[old].out {
			newStates[idx-offset].out = append(newStates[idx-offset].out, nfaTransition{matcher: t.matcher, to: remap[t.to]})
		}
	}
	b.states = append(b.states, newStates...)

	return Fragment{Start: remap[f.Start], Accept: remap[f.Accept]}
}
