// Package lookahead implements LookAheadSet: a bounded-length set of
// token-id sequences used by the look-ahead analyzer to decide, at each
// point in a grammar, which alternative to take. It has no single teacher
// file to ground on — the host repository's LL(1) parser
// (parse/ll1.go, via grammar.LLParseTable) only ever needs single-token
// look-ahead and so never materializes a Sequence/Set abstraction — so this
// package is grounded on the *shape* of grammar.LR0Item/LR1Item's
// equality-ignoring-metadata discipline (Sequence equality ignores the
// Repetitive flag exactly as LR0Item.Equal ignores LR1Item's Lookahead
// field) generalized to the k-bounded algebra spec.md §4.7 specifies.
package lookahead

// Sequence is an ordered list of token pattern ids of length at most some
// k, optionally flagged as corresponding to an unbounded repetition.
// Equality and hashing deliberately ignore Repetitive: two sequences with
// the same ids are the same sequence whether or not either was derived from
// a repetition, so that Set de-duplication and conflict detection compare
// only the observable token sequence.
type Sequence struct {
	IDs        []int
	Repetitive bool
}

// Equal compares two sequences by id list only, ignoring Repetitive.
func (s Sequence) Equal(o Sequence) bool {
	if len(s.IDs) != len(o.IDs) {
		return false
	}
	for i := range s.IDs {
		if s.IDs[i] != o.IDs[i] {
			return false
		}
	}
	return true
}

func (s Sequence) truncated(k int) Sequence {
	if len(s.IDs) <= k {
		return s
	}
	cp := make([]int, k)
	copy(cp, s.IDs)
	return Sequence{IDs: cp, Repetitive: s.Repetitive}
}

func (s Sequence) hasPrefix(ids []int) bool {
	if len(ids) > len(s.IDs) {
		return false
	}
	for i, id := range ids {
		if s.IDs[i] != id {
			return false
		}
	}
	return true
}

func concatIDs(a, b []int, limit int) []int {
	out := make([]int, 0, min(len(a)+len(b), limit))
	out = append(out, a...)
	for _, id := range b {
		if len(out) >= limit {
			break
		}
		out = append(out, id)
	}
	return out
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
