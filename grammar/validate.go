package grammar

import (
	"fmt"

	"github.com/cederberg/grammatica-sub000/ggerr"
)

// validate runs the structural checks that must pass before look-ahead
// analysis: every element reference resolves, no production has two
// identical alternatives, no production is directly left-recursive, and
// the start pattern cannot match the empty string.
func (g *Grammar) validate() error {
	if err := g.validateReferences(); err != nil {
		return err
	}
	if err := g.validateNoIdenticalAlternatives(); err != nil {
		return err
	}
	if err := g.validateNoLeftRecursion(); err != nil {
		return err
	}
	if err := g.validateStartNotNullable(); err != nil {
		return err
	}
	return nil
}

func (g *Grammar) validateReferences() error {
	for _, pid := range g.prodOrder {
		p := g.productions[pid]
		for _, alt := range p.Alternatives {
			for _, e := range alt.Elements {
				switch e.Kind {
				case TokenElement:
					if _, ok := g.tokens[e.ID]; !ok {
						return ggerr.NewCreationError(ggerr.InvalidProduction, p.name,
							fmt.Sprintf("alternative references unknown token pattern id %d", e.ID))
					}
				case ProductionElement:
					if _, ok := g.productions[e.ID]; !ok {
						return ggerr.NewCreationError(ggerr.InvalidProduction, p.name,
							fmt.Sprintf("alternative references unknown production pattern id %d", e.ID))
					}
				}
			}
		}
	}
	return nil
}

// validateNoIdenticalAlternatives catches grammars like `P = "a" | "a"`
// (seed scenario E), which give the driver no way to choose between two
// alternatives that always match the same input.
func (g *Grammar) validateNoIdenticalAlternatives() error {
	for _, pid := range g.prodOrder {
		p := g.productions[pid]
		for i := 0; i < len(p.Alternatives); i++ {
			for j := i + 1; j < len(p.Alternatives); j++ {
				if p.Alternatives[i].Equal(p.Alternatives[j]) {
					return ggerr.NewCreationError(ggerr.InvalidProduction, p.name, "two identical alternatives")
				}
			}
		}
	}
	return nil
}

// validateNoLeftRecursion catches grammars like `P = P "x" | "y"` (seed
// scenario F): an alternative whose very first element refers back to its
// own production can never make progress, since the driver would need to
// enter P again before consuming anything.
func (g *Grammar) validateNoLeftRecursion() error {
	for _, pid := range g.prodOrder {
		p := g.productions[pid]
		for _, alt := range p.Alternatives {
			if len(alt.Elements) == 0 {
				continue
			}
			first := alt.Elements[0]
			if first.Kind == ProductionElement && first.ID == p.id {
				return ggerr.NewCreationError(ggerr.InvalidProduction, p.name, "left recursive patterns are not allowed")
			}
		}
	}
	return nil
}

// validateStartNotNullable rejects a start pattern that can derive the
// empty string, which would make every repetition containing it
// ambiguous about whether to stop.
func (g *Grammar) validateStartNotNullable() error {
	if g.start == nil {
		return nil
	}
	if g.mayMatchEmpty(g.start, map[int]bool{}) {
		return ggerr.NewCreationError(ggerr.InvalidProduction, g.start.name, "top pattern may match the empty string")
	}
	return nil
}

func (g *Grammar) mayMatchEmpty(p *ProductionPattern, visiting map[int]bool) bool {
	if visiting[p.id] {
		// a cycle back to p without having proven emptiness through it;
		// treat conservatively as not-empty along this path.
		return false
	}
	visiting[p.id] = true
	defer delete(visiting, p.id)

	for _, alt := range p.Alternatives {
		if g.altMayMatchEmpty(alt, visiting) {
			return true
		}
	}
	return false
}

func (g *Grammar) altMayMatchEmpty(alt *Alternative, visiting map[int]bool) bool {
	for _, e := range alt.Elements {
		if e.Min == 0 {
			continue // this element can be skipped entirely
		}
		if e.Kind == TokenElement {
			return false // a mandatory token always consumes input
		}
		prod, ok := g.productions[e.ID]
		if !ok || !g.mayMatchEmpty(prod, visiting) {
			return false
		}
	}
	return true
}
