package lookahead

// Set is a LookAheadSet: the set of ≤k-length token-id sequences that can
// begin a derivation from some position in the grammar, per §4.7.
type Set struct {
	k    int
	seqs []Sequence
}

// NewSet returns an empty LookAheadSet bounded to sequences of length at
// most k.
func NewSet(k int) *Set {
	return &Set{k: k}
}

// MaxLength returns k.
func (s *Set) MaxLength() int { return s.k }

// Sequences returns the set's sequences in insertion order. Callers must
// not mutate the returned slice.
func (s *Set) Sequences() []Sequence { return s.seqs }

// Empty returns whether the set contains no sequences at all (not even the
// empty sequence).
func (s *Set) Empty() bool { return len(s.seqs) == 0 }

// HasEmptySequence returns whether the zero-length sequence is a member.
func (s *Set) HasEmptySequence() bool {
	for _, seq := range s.seqs {
		if len(seq.IDs) == 0 {
			return true
		}
	}
	return false
}

// Add inserts seq, truncating it to k if longer, and discarding it if an
// equal (ignoring Repetitive) sequence is already present. If the existing
// equal sequence is not yet Repetitive and seq is, the stored sequence is
// upgraded to Repetitive (repetitive-ness is monotone, never lost on a
// later non-repetitive insert of the same ids).
func (s *Set) Add(seq Sequence) {
	seq = seq.truncated(s.k)
	for i, existing := range s.seqs {
		if existing.Equal(seq) {
			if seq.Repetitive && !existing.Repetitive {
				s.seqs[i].Repetitive = true
			}
			return
		}
	}
	s.seqs = append(s.seqs, seq)
}

// AddEmpty inserts the empty sequence, significant for optional elements:
// it marks that stopping here (taking zero occurrences) is admissible.
func (s *Set) AddEmpty() {
	s.Add(Sequence{})
}

// CreateRepetitive returns a copy of s with every sequence's Repetitive flag
// forced true, used when a look-ahead set is derived from an unbounded
// repetition (a Kleene element) so that the marker carries through later
// combinations.
func (s *Set) CreateRepetitive() *Set {
	out := NewSet(s.k)
	for _, seq := range s.seqs {
		seq.Repetitive = true
		out.seqs = append(out.seqs, seq)
	}
	return out
}

// Union returns a new set holding every sequence in s or other.
func Union(sets ...*Set) *Set {
	k := 0
	for _, s := range sets {
		if s.k > k {
			k = s.k
		}
	}
	out := NewSet(k)
	for _, s := range sets {
		for _, seq := range s.seqs {
			out.Add(seq)
		}
	}
	return out
}

// Intersect returns the sequences present in both a and b. Per §4.7, the
// result preserves Repetitive=true if either operand's matching sequence
// has it.
func Intersect(a, b *Set) *Set {
	k := a.k
	if b.k > k {
		k = b.k
	}
	out := NewSet(k)
	for _, sa := range a.seqs {
		for _, sb := range b.seqs {
			if sa.Equal(sb) {
				merged := sa
				merged.Repetitive = sa.Repetitive || sb.Repetitive
				out.Add(merged)
			}
		}
	}
	return out
}

// RemoveAll returns the sequences of a that are not present in remove.
func RemoveAll(a, remove *Set) *Set {
	out := NewSet(a.k)
	for _, sa := range a.seqs {
		found := false
		for _, sr := range remove.seqs {
			if sa.Equal(sr) {
				found = true
				break
			}
		}
		if !found {
			out.Add(sa)
		}
	}
	return out
}

// Combine returns the cartesian product of a and b, concatenating each
// pair of sequences and truncating to k, with the special cases §4.7 and
// §9 require preserved verbatim: if a is empty, the result is b exactly (no
// copy, no re-truncation to a new k) — this affects look-ahead growth
// behavior and must not be "simplified" away. Likewise if b is empty the
// result is a.
func Combine(a, b *Set, k int) *Set {
	if a.Empty() {
		return b
	}
	if b.Empty() {
		return a
	}

	out := NewSet(k)
	for _, sa := range a.seqs {
		for _, sb := range b.seqs {
			ids := concatIDs(sa.IDs, sb.IDs, k)
			out.Add(Sequence{IDs: ids, Repetitive: sa.Repetitive || sb.Repetitive})
		}
	}
	return out
}

// Overlaps returns true if some sequence of a is a prefix of some sequence
// of b, or vice versa (including either being empty, which is a prefix of
// everything).
func Overlaps(a, b *Set) bool {
	for _, sa := range a.seqs {
		for _, sb := range b.seqs {
			if sa.hasPrefix(sb.IDs) || sb.hasPrefix(sa.IDs) {
				return true
			}
		}
	}
	return false
}

// Filter returns the sequences of a that start with some sequence in trim,
// with that matching prefix stripped.
func Filter(a *Set, trim *Set) *Set {
	out := NewSet(a.k)
	for _, sa := range a.seqs {
		for _, st := range trim.seqs {
			if sa.hasPrefix(st.IDs) {
				rest := append([]int{}, sa.IDs[len(st.IDs):]...)
				out.Add(Sequence{IDs: rest, Repetitive: sa.Repetitive})
				break
			}
		}
	}
	return out
}

// NextSet returns the sub-sequences of a that begin with tok, with tok
// stripped — the look-ahead remaining after reading tok.
func NextSet(a *Set, tok int) *Set {
	out := NewSet(a.k)
	for _, sa := range a.seqs {
		if len(sa.IDs) > 0 && sa.IDs[0] == tok {
			out.Add(Sequence{IDs: append([]int{}, sa.IDs[1:]...), Repetitive: sa.Repetitive})
		}
	}
	return out
}

// MatchesPrefix returns whether some sequence in s is a prefix of (or equal
// to) the given look-ahead token ids actually seen, i.e. whether the next
// len(seq) tokens read so far are consistent with taking this alternative.
// The empty sequence is skipped and never counts as a match.
func (s *Set) MatchesPrefix(seen []int) bool {
	for _, seq := range s.seqs {
		if len(seq.IDs) == 0 {
			continue
		}
		n := len(seq.IDs)
		if n > len(seen) {
			n = len(seen)
		}
		match := true
		for i := 0; i < n; i++ {
			if seq.IDs[i] != seen[i] {
				match = false
				break
			}
		}
		if match && n == len(seq.IDs) {
			return true
		}
	}
	return false
}

// HasRepetitive returns whether any sequence in s is flagged Repetitive.
func (s *Set) HasRepetitive() bool {
	for _, seq := range s.seqs {
		if seq.Repetitive {
			return true
		}
	}
	return false
}
