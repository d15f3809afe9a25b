package grammar

import "github.com/cederberg/grammatica-sub000/lookahead"

// Alternative is one right-hand side of a ProductionPattern, an ordered
// list of Elements.
type Alternative struct {
	Elements []Element

	owner      *ProductionPattern
	lookAhead  *lookahead.Set
	defaultAlt bool
}

// Owner returns the ProductionPattern this alternative belongs to, or nil
// if it has not yet been added to one via ProductionPattern.AddAlternative.
func (a *Alternative) Owner() *ProductionPattern { return a.owner }

// AddTokenElement appends a reference to the token pattern with the given
// id, repeated between min and max times (max<=0 meaning unbounded).
// Returns a for chaining.
func (a *Alternative) AddTokenElement(id, min, max int) *Alternative {
	a.Elements = append(a.Elements, Element{Kind: TokenElement, ID: id, Min: min, Max: max})
	return a
}

// AddProductionElement appends a reference to the production pattern with
// the given id. Returns a for chaining.
func (a *Alternative) AddProductionElement(id, min, max int) *Alternative {
	a.Elements = append(a.Elements, Element{Kind: ProductionElement, ID: id, Min: min, Max: max})
	return a
}

// LookAhead returns the cached LA_k set computed by Grammar.Prepare, or
// nil before preparation.
func (a *Alternative) LookAhead() *lookahead.Set { return a.lookAhead }

// IsDefault reports whether the analyzer designated this alternative as
// the production's default (taken when no other alternative's look-ahead
// matches).
func (a *Alternative) IsDefault() bool { return a.defaultAlt }

// Equal compares two alternatives by their element sequences only; cached
// look-ahead and default-designation are not part of alternative identity.
func (a *Alternative) Equal(o *Alternative) bool {
	if len(a.Elements) != len(o.Elements) {
		return false
	}
	for i := range a.Elements {
		if !elementsEqual(a.Elements[i], o.Elements[i]) {
			return false
		}
	}
	return true
}
