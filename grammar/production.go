package grammar

import "github.com/cederberg/grammatica-sub000/lookahead"

// ProductionPattern is a grammar rule producing a non-terminal: an id, a
// name, a synthetic flag, and an ordered set of Alternatives.
type ProductionPattern struct {
	id         int
	name       string
	synthetic  bool
	Alternatives []*Alternative

	defaultAlt int // index into Alternatives, -1 if none designated
	lookAhead  *lookahead.Set
}

// ID returns the production's unique id.
func (p *ProductionPattern) ID() int { return p.id }

// Name returns the production's name.
func (p *ProductionPattern) Name() string { return p.name }

// SetSynthetic flags whether this production was inserted by a higher
// layer: its node is flattened into its parent in the output tree rather
// than appearing itself.
func (p *ProductionPattern) SetSynthetic(v bool) { p.synthetic = v }

// IsSynthetic reports the synthetic flag.
func (p *ProductionPattern) IsSynthetic() bool { return p.synthetic }

// AddAlternative appends alt to p's alternatives and sets its owner
// back-reference.
func (p *ProductionPattern) AddAlternative(alt *Alternative) {
	alt.owner = p
	p.Alternatives = append(p.Alternatives, alt)
}

// HasDefault reports whether the analyzer designated a default
// alternative for this production during Grammar.Prepare.
func (p *ProductionPattern) HasDefault() bool { return p.defaultAlt >= 0 }

// DefaultAlt returns the designated default alternative, or nil if none.
func (p *ProductionPattern) DefaultAlt() *Alternative {
	if !p.HasDefault() {
		return nil
	}
	return p.Alternatives[p.defaultAlt]
}

// DefaultAltIndex returns the index of the designated default
// alternative, or -1 if none.
func (p *ProductionPattern) DefaultAltIndex() int { return p.defaultAlt }

// LookAhead returns the production's own cached look-ahead set (the union
// of its alternatives'), or nil before preparation.
func (p *ProductionPattern) LookAhead() *lookahead.Set { return p.lookAhead }
