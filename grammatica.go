// Package grammatica is the top-level facade over the parser-generator
// runtime: build a grammar.Grammar, wrap it in a Parser, and call Parse
// repeatedly as Reset rebinds it to new input.
//
// It is grounded on the host repository's internal/ictiobus.go facade —
// the NewLexer/NewParser/NewSDD constructor functions composed into
// Frontend[E]'s Analyze(r) lex-then-parse-then-evaluate pipeline — reduced
// to a single Parser type, since this runtime has exactly one driver
// strategy (table-less LA_k recursive descent) rather than a choice of
// LALR1/SLR/LL1/CLR, and no SDD evaluation stage of its own: semantic
// actions are the caller's Analyzer, not a bound attribute grammar.
package grammatica

import (
	"io"

	"github.com/cederberg/grammatica-sub000/buffer"
	"github.com/cederberg/grammatica-sub000/grammar"
	"github.com/cederberg/grammatica-sub000/lex"
	"github.com/cederberg/grammatica-sub000/parse"
	"github.com/cederberg/grammatica-sub000/tree"
)

// Parser composes a prepared grammar, its tokenizer, and a recursive-descent
// driver into the single object external callers drive: reset it to a new
// reader, then call Parse.
type Parser struct {
	g      *grammar.Grammar
	tz     *lex.Tokenizer
	driver *parse.Driver
}

// New builds a Parser over g, preparing it first if Prepare has not already
// been called. It fails with whatever *ggerr.CreationError Prepare raised,
// or a token-pattern compilation error from the tokenizer.
func New(g *grammar.Grammar) (*Parser, error) {
	if !g.Prepared() {
		if err := g.Prepare(); err != nil {
			return nil, err
		}
	}
	tz, err := lex.New(g.TokenPatterns())
	if err != nil {
		return nil, err
	}
	return &Parser{g: g, tz: tz, driver: parse.NewDriver(g)}, nil
}

// SetAnalyzer installs the callback surface invoked during tree
// construction, as described by parse.Analyzer.
func (p *Parser) SetAnalyzer(a parse.Analyzer) {
	p.driver.SetAnalyzer(a)
}

// Reset rebinds the parser to r, discarding any buffered lookahead from a
// previous Parse call. It must be called once before the first Parse and
// again before reusing the Parser on new input.
func (p *Parser) Reset(r io.Reader) {
	p.tz.Reset(buffer.New(r))
}

// Parse runs the driver from the grammar's start production against the
// reader most recently passed to Reset. It returns the root tree.Node on
// success, or a non-nil error that is a *parse.ParserLog when one or more
// recoverable errors were logged during the parse.
func (p *Parser) Parse() (*tree.Node, error) {
	return p.driver.Parse(p.tz)
}

// Grammar returns the underlying grammar, for callers that need to inspect
// token or production patterns directly (e.g. to describe a grammar back to
// a user, or drive tooling).
func (p *Parser) Grammar() *grammar.Grammar {
	return p.g
}
