package grammar

import (
	"fmt"

	"github.com/cederberg/grammatica-sub000/ggerr"
	"github.com/cederberg/grammatica-sub000/lookahead"
	"github.com/emirpasic/gods/sets/hashset"
)

// analyzeLookAhead implements §4.7's algorithm: for every production,
// grow k until the alternatives' look-ahead sets no longer conflict (or a
// conflict is certified as inherent ambiguity, or the remaining
// ambiguity can be resolved by designating one alternative as default).
//
// Unlike the step-3 optimization described in spec.md (recompute an
// offending alternative's look-ahead filtering only along prefixes that
// lie in the running conflict set), this recomputes every alternative's
// LA_k from scratch on each growth round. k stays small in practice (the
// seed grammars resolve by k=3) so the recomputation cost is negligible;
// see DESIGN.md for the tradeoff.
func (g *Grammar) analyzeLookAhead() error {
	for _, pid := range g.prodOrder {
		if err := g.analyzeProduction(g.productions[pid]); err != nil {
			return err
		}
	}
	return nil
}

// maxKGrowth bounds how far k is allowed to grow past the grammar's
// configured starting point before the analyzer gives up trying to
// resolve a conflict by growing k and instead falls back to designating
// a default alternative (or fails with InherentAmbiguity if more than one
// alternative would need to be the default).
const maxKGrowth = 5

func (g *Grammar) analyzeProduction(p *ProductionPattern) error {
	if len(p.Alternatives) == 0 {
		return nil
	}

	k := g.MaxLookahead
	if k < 1 {
		k = 1
	}

	var las []*lookahead.Set
	var conflicts *lookahead.Set

	for {
		var err error
		las, err = g.computeAlternativeLookAheads(p, k)
		if err != nil {
			return err
		}

		altConflicts := lookahead.NewSet(k)
		for i := 0; i < len(las); i++ {
			for j := i + 1; j < len(las); j++ {
				inter := lookahead.Intersect(las[i], las[j])
				for _, sq := range inter.Sequences() {
					altConflicts.Add(sq)
				}
			}
		}

		repConflicts, err := g.repetitionConflicts(p, k)
		if err != nil {
			return err
		}

		newConflicts := lookahead.NewSet(k)
		for _, sq := range altConflicts.Sequences() {
			newConflicts.Add(sq)
		}
		for _, sq := range repConflicts.Sequences() {
			newConflicts.Add(sq)
		}
		if conflicts != nil {
			for _, sq := range conflicts.Sequences() {
				newConflicts.Add(sq)
			}
		}
		conflicts = newConflicts

		if altConflicts.Empty() && repConflicts.Empty() {
			break
		}
		if conflicts.HasRepetitive() {
			return ggerr.NewCreationError(ggerr.InherentAmbiguity, p.name,
				"alternatives cannot be distinguished by any bounded look-ahead")
		}
		if k-g.MaxLookahead >= maxKGrowth {
			if !repConflicts.Empty() {
				return ggerr.NewCreationError(ggerr.InherentAmbiguity, p.name,
					"an optional or repeated element cannot be distinguished from what follows it by any bounded look-ahead")
			}
			if err := designateDefault(p, las, conflicts); err != nil {
				return err
			}
			break
		}
		k++
	}

	for i, alt := range p.Alternatives {
		alt.lookAhead = las[i]
	}
	if err := g.cacheElementLookAheads(p, k); err != nil {
		return err
	}
	p.lookAhead = lookahead.Union(las...)
	return nil
}

// designateDefault marks the single alternative whose look-ahead
// intersects the unresolved conflict set as the production's default,
// per §4.7 step 4. More than one candidate alternative is certified
// InherentAmbiguity: "the presence of two would-be defaults."
func designateDefault(p *ProductionPattern, las []*lookahead.Set, conflicts *lookahead.Set) error {
	candidates := []int{}
	for i, la := range las {
		if lookahead.Overlaps(la, conflicts) {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		// conflicts exist but no single alternative's set overlaps them
		// individually (can happen if the intersection only appears once
		// sets are unioned); fall back to the last alternative, matching
		// the conventional "else" placement in every seed grammar.
		p.defaultAlt = len(p.Alternatives) - 1
		p.Alternatives[p.defaultAlt].defaultAlt = true
		return nil
	}
	if len(candidates) > 1 {
		return ggerr.NewCreationError(ggerr.InherentAmbiguity, p.name,
			"more than one alternative would need to be the default")
	}
	p.defaultAlt = candidates[0]
	p.Alternatives[p.defaultAlt].defaultAlt = true
	return nil
}

// repetitionConflicts implements §4.7 step 5: for every optional or
// repeatable element of every alternative, checks whether "take one more
// occurrence" (the element's own first set) can be confused with "stop
// here" (the look-ahead of whatever follows it in the same alternative).
// A non-empty result feeds into the same conflict set as alt-vs-alt
// conflicts. A repeatable element's first set is always marked Repetitive,
// so such a conflict is rejected as InherentAmbiguity in the same round; a
// conflict from an optional, non-repeatable element grows k and, if it
// survives k-growth, is also InherentAmbiguity rather than a
// default-alternative designation (there is no alternative to prefer — the
// ambiguity is internal to one alternative).
func (g *Grammar) repetitionConflicts(p *ProductionPattern, k int) (*lookahead.Set, error) {
	out := lookahead.NewSet(k)
	for _, alt := range p.Alternatives {
		for idx, e := range alt.Elements {
			if !e.Repeatable() && !e.Optional() {
				continue
			}
			first, err := g.elementOccurrenceLookAhead(e, k, hashset.New())
			if err != nil {
				return nil, err
			}
			if e.Repeatable() {
				first = first.CreateRepetitive()
			}
			follow, err := g.elementsLookAhead(alt.Elements, idx+1, k, hashset.New())
			if err != nil {
				return nil, err
			}
			inter := lookahead.Intersect(first, follow)
			for _, sq := range inter.Sequences() {
				out.Add(sq)
			}
		}
	}
	return out, nil
}

func (g *Grammar) computeAlternativeLookAheads(p *ProductionPattern, k int) ([]*lookahead.Set, error) {
	out := make([]*lookahead.Set, len(p.Alternatives))
	for i, alt := range p.Alternatives {
		stack := hashset.New()
		s, err := g.elementsLookAhead(alt.Elements, 0, k, stack)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// cacheElementLookAheads stores, on every repeatable or optional element,
// the one-occurrence look-ahead set the driver uses at runtime to decide
// whether to take one more occurrence or stop.
func (g *Grammar) cacheElementLookAheads(p *ProductionPattern, k int) error {
	for _, alt := range p.Alternatives {
		for i := range alt.Elements {
			e := &alt.Elements[i]
			if !e.Repeatable() && !e.Optional() {
				continue
			}
			stack := hashset.New()
			one, err := g.elementOccurrenceLookAhead(*e, k, stack)
			if err != nil {
				return err
			}
			if e.Repeatable() {
				one = one.CreateRepetitive()
			}
			e.lookAhead = one
		}
	}
	return nil
}

// baseEmptySet returns the look-ahead set containing only the empty
// sequence: "nothing more to match," the recursion base case. It is
// deliberately NOT the empty set (no sequences at all), which would
// trigger LookAheadSet.Combine's "other operand verbatim" special case.
func baseEmptySet(k int) *lookahead.Set {
	s := lookahead.NewSet(k)
	s.AddEmpty()
	return s
}

// elementsLookAhead computes the LA_k of elems[start:], the look-ahead
// for what can appear from this position in an alternative onward.
func (g *Grammar) elementsLookAhead(elems []Element, start, k int, stack *hashset.Set) (*lookahead.Set, error) {
	if start >= len(elems) {
		return baseEmptySet(k), nil
	}

	head, err := g.repetitionLookAhead(elems[start], k, stack)
	if err != nil {
		return nil, err
	}
	tail, err := g.elementsLookAhead(elems, start+1, k, stack)
	if err != nil {
		return nil, err
	}
	return lookahead.Combine(head, tail, k), nil
}

// repetitionLookAhead computes the look-ahead contributed by a single
// element, accounting for its repetition: a repeatable element's
// sequences are marked repetitive (since "take one more" looks
// indistinguishable from "take the first one" at any finite k), and an
// optional element additionally admits the empty sequence (skip it
// entirely).
func (g *Grammar) repetitionLookAhead(e Element, k int, stack *hashset.Set) (*lookahead.Set, error) {
	one, err := g.elementOccurrenceLookAhead(e, k, stack)
	if err != nil {
		return nil, err
	}

	result := one
	if e.Repeatable() {
		result = one.CreateRepetitive()
		// Close the repetition up to k: a second occurrence's tokens may
		// extend a first occurrence's shorter sequences. Sequence length
		// is capped at k, so this reaches a fixed point in at most k
		// rounds.
		for i := 0; i < k; i++ {
			grown := lookahead.Combine(result, one, k)
			before := len(result.Sequences())
			result = lookahead.Union(result, grown)
			if len(result.Sequences()) == before {
				break
			}
		}
	}
	if e.Optional() {
		result = lookahead.Union(result, baseEmptySet(k))
	}
	return result, nil
}

func (g *Grammar) elementOccurrenceLookAhead(e Element, k int, stack *hashset.Set) (*lookahead.Set, error) {
	if e.Kind == TokenElement {
		s := lookahead.NewSet(k)
		s.Add(lookahead.Sequence{IDs: []int{e.ID}})
		return s, nil
	}

	prod, ok := g.productions[e.ID]
	if !ok {
		return nil, ggerr.NewCreationError(ggerr.InvalidProduction, fmt.Sprintf("id#%d", e.ID), "dangling production reference during look-ahead analysis")
	}

	key := fmt.Sprintf("%d@%d", prod.id, k)
	if stack.Contains(key) {
		return nil, ggerr.NewCreationError(ggerr.InfiniteLoop, prod.name,
			fmt.Sprintf("look-ahead computation revisits %q at k=%d", prod.name, k))
	}
	stack.Add(key)
	defer stack.Remove(key)

	result := lookahead.NewSet(k)
	for _, alt := range prod.Alternatives {
		altSet, err := g.elementsLookAhead(alt.Elements, 0, k, stack)
		if err != nil {
			return nil, err
		}
		for _, sq := range altSet.Sequences() {
			result.Add(sq)
		}
	}
	return result, nil
}
