package automaton

import "github.com/cederberg/grammatica-sub000/token"

// TokenNFA composes the per-pattern fragments a Builder constructs into a
// single non-deterministic automaton: one shared start state with an
// epsilon edge to every pattern fragment's entry, with each fragment's accept
// state tagged by the token.Pattern it completes.
//
// Matching runs an iterative worklist over the states reachable at each
// input offset, rather than recursion, so a long match never grows the Go
// call stack.
type TokenNFA struct {
	b     *Builder
	start int

	// asciiFast maps a first input rune in [0,asciiLimit) directly to the
	// epsilon-closed state set reached by consuming it from start, so that
	// common-case matching skips recomputing epsilon-closure(start) on
	// every call. It is populated by Compile.
	asciiFast [asciiLimit][]int
	fastOK    bool

	closureStart []int // epsilon-closure(start), computed once by Compile
}

// NewTokenNFA returns an empty TokenNFA backed by b. Patterns are attached
// with AddFragment, then Compile must be called once before Match is used.
func NewTokenNFA(b *Builder) *TokenNFA {
	start := b.AddState()
	return &TokenNFA{b: b, start: start}
}

// AddFragment merges frag into the automaton as an alternative, tagging its
// accept state with pattern so that reaching it during matching offers
// pattern as a candidate.
func (n *TokenNFA) AddFragment(frag Fragment, pattern *token.Pattern) {
	n.b.AddEpsilon(n.start, frag.Start)
	n.b.states[frag.Accept].accept = pattern
	n.fastOK = false
}

func epsilonClosure(states []nfaState, roots []int) []int {
	visited := map[int]bool{}
	var order []int
	var stack []int
	stack = append(stack, roots...)
	for _, r := range roots {
		visited[r] = true
	}

	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		order = append(order, s)
		for _, t := range states[s].out {
			if t.matcher == nil && !visited[t.to] {
				visited[t.to] = true
				stack = append(stack, t.to)
			}
		}
	}
	return order
}

// Compile finalizes the automaton after all patterns have been added,
// computing the shared epsilon-closure(start) and the ASCII initial-state
// fast path: for each ASCII first character, the set of states reachable by
// consuming it directly from start.
func (n *TokenNFA) Compile() {
	n.closureStart = epsilonClosure(n.b.states, []int{n.start})

	for r := 0; r < asciiLimit; r++ {
		n.asciiFast[r] = n.stepFrom(n.closureStart, rune(r))
	}
	n.fastOK = true
}

func (n *TokenNFA) stepFrom(current []int, r rune) []int {
	var next []int
	for _, s := range current {
		for _, t := range n.b.states[s].out {
			if t.matcher != nil && t.matcher.Match(r) {
				next = append(next, t.to)
			}
		}
	}
	if len(next) == 0 {
		return nil
	}
	return epsilonClosure(n.b.states, next)
}

// Match walks the automaton against buf.Peek(0), buf.Peek(1), ... and
// returns the length and pattern of the best (longest, then lowest pattern
// id) accepting path found, or length 0 / nil pattern if none accepts. It
// never consumes input.
func (n *TokenNFA) Match(buf peeker) (length int, pattern *token.Pattern) {
	if !n.fastOK {
		n.Compile()
	}

	length, pattern = n.bestAt(n.closureStart, 0, 0, nil)

	r0 := buf.Peek(0)
	var current []int
	switch {
	case r0 < 0:
		return length, pattern
	case r0 < asciiLimit:
		current = n.asciiFast[r0]
	default:
		current = n.stepFrom(n.closureStart, r0)
	}

	offset := 1
	for len(current) > 0 {
		length, pattern = n.bestAt(current, offset, length, pattern)

		r := buf.Peek(offset)
		if r < 0 {
			break
		}
		current = n.stepFrom(current, r)
		offset++
	}

	return length, pattern
}

func (n *TokenNFA) bestAt(states []int, offset, bestLen int, bestPat *token.Pattern) (int, *token.Pattern) {
	for _, s := range states {
		acc := n.b.states[s].accept
		if acc == nil {
			continue
		}
		if bestPat == nil || offset > bestLen || (offset == bestLen && acc.ID() < bestPat.ID()) {
			bestLen, bestPat = offset, acc
		}
	}
	return bestLen, bestPat
}
