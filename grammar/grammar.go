package grammar

import (
	"fmt"

	"github.com/cederberg/grammatica-sub000/ggerr"
	"github.com/cederberg/grammatica-sub000/token"
)

// Grammar is the construction-time and prepared-time container for a set
// of token patterns and production patterns. It is built once via the
// New*/Add* API below, then Prepare()'d; afterward it is immutable except
// for the look-ahead caches Prepare populates.
type Grammar struct {
	tokens     map[int]*token.Pattern
	tokenOrder []int

	productions map[int]*ProductionPattern
	prodOrder   []int

	start *ProductionPattern

	prepared bool

	// MaxLookahead is the starting k the look-ahead analyzer grows from.
	// Defaults to 1.
	MaxLookahead int

	// RecoveryCooldown is the number of correctly-matched tokens the
	// driver's panic-mode recovery must see before resuming normal
	// callbacks and un-suppressing duplicate-error logging. Defaults to 3,
	// matching spec's R counter.
	RecoveryCooldown int

	// BufferBlockSize records a ReaderBuffer block size, in characters.
	// Defaults to 1024. Nothing in this module reads it: ReaderBuffer
	// always grows by its own fixed 1024-character block.
	BufferBlockSize int
}

// New returns an empty Grammar with default tunables.
func New() *Grammar {
	return &Grammar{
		tokens:           map[int]*token.Pattern{},
		productions:      map[int]*ProductionPattern{},
		start:            nil,
		prepared:         false,
		MaxLookahead:     1,
		RecoveryCooldown: 3,
		BufferBlockSize:  1024,
	}
}

// NewTokenPattern builds, registers, and returns a token pattern. It
// fails with a *ggerr.CreationError of kind InvalidToken if id is already
// in use by another token pattern.
func (g *Grammar) NewTokenPattern(id int, name string, kind token.Kind, pattern string) (*token.Pattern, error) {
	if _, exists := g.tokens[id]; exists {
		return nil, ggerr.NewCreationError(ggerr.InvalidToken, name, fmt.Sprintf("token pattern id %d already in use", id))
	}
	p := token.NewPattern(id, name, kind, pattern)
	g.tokens[id] = p
	g.tokenOrder = append(g.tokenOrder, id)
	return p, nil
}

// NewProductionPattern builds and returns a production pattern. It is not
// registered into the grammar until passed to AddPattern.
func (g *Grammar) NewProductionPattern(id int, name string) *ProductionPattern {
	return &ProductionPattern{id: id, name: name, defaultAlt: -1}
}

// NewAlternative returns a new, unowned Alternative ready to have elements
// added and then be attached to a production via
// ProductionPattern.AddAlternative.
func (g *Grammar) NewAlternative() *Alternative {
	return &Alternative{defaultAlt: false}
}

// AddPattern registers p into the grammar. The first pattern ever added
// becomes the grammar's start pattern (the root Prepare validates as
// non-empty-matching and Parser.Parse begins from). It fails with a
// *ggerr.CreationError of kind InvalidProduction if id is already in use.
func (g *Grammar) AddPattern(p *ProductionPattern) error {
	if _, exists := g.productions[p.id]; exists {
		return ggerr.NewCreationError(ggerr.InvalidProduction, p.name, fmt.Sprintf("production pattern id %d already in use", p.id))
	}
	g.productions[p.id] = p
	g.prodOrder = append(g.prodOrder, p.id)
	if g.start == nil {
		g.start = p
	}
	return nil
}

// Token returns the token pattern registered under id, if any.
func (g *Grammar) Token(id int) (*token.Pattern, bool) {
	p, ok := g.tokens[id]
	return p, ok
}

// TokenName returns the name of the token pattern registered under id, or
// a placeholder if unknown.
func (g *Grammar) TokenName(id int) string {
	if p, ok := g.tokens[id]; ok {
		return p.Name()
	}
	return fmt.Sprintf("token#%d", id)
}

// TokenPatterns returns every registered token pattern in declaration
// order, suitable for building a Tokenizer.
func (g *Grammar) TokenPatterns() []*token.Pattern {
	out := make([]*token.Pattern, 0, len(g.tokenOrder))
	for _, id := range g.tokenOrder {
		out = append(out, g.tokens[id])
	}
	return out
}

// Production returns the production pattern registered under id, if any.
func (g *Grammar) Production(id int) (*ProductionPattern, bool) {
	p, ok := g.productions[id]
	return p, ok
}

// Productions returns every registered production pattern in declaration
// order.
func (g *Grammar) Productions() []*ProductionPattern {
	out := make([]*ProductionPattern, 0, len(g.prodOrder))
	for _, id := range g.prodOrder {
		out = append(out, g.productions[id])
	}
	return out
}

// Start returns the grammar's start (root) production pattern: the first
// one registered via AddPattern.
func (g *Grammar) Start() *ProductionPattern { return g.start }

// Prepared reports whether Prepare has already succeeded.
func (g *Grammar) Prepared() bool { return g.prepared }

// Prepare validates the grammar (dangling references, identical
// alternatives, direct left recursion, an empty-matching start pattern)
// and then runs the look-ahead analyzer, caching a LookAheadSet on every
// alternative and repeatable element. It is idempotent: calling it again
// after success re-runs validation and analysis from scratch.
func (g *Grammar) Prepare() error {
	if err := g.validate(); err != nil {
		return err
	}
	if err := g.analyzeLookAhead(); err != nil {
		return err
	}
	g.prepared = true
	return nil
}
