package parse

import (
	"fmt"

	"github.com/cederberg/grammatica-sub000/ggerr"
	"github.com/cederberg/grammatica-sub000/grammar"
	"github.com/cederberg/grammatica-sub000/lex"
	"github.com/cederberg/grammatica-sub000/tree"
	"github.com/emirpasic/gods/stacks/arraystack"
)

// Driver is the RecursiveDescentDriver (§4.8): table-less predictive
// dispatch over a prepared grammar, one production call per grammar
// rule, with panic-mode error recovery.
type Driver struct {
	g        *grammar.Grammar
	analyzer Analyzer

	q         *tokenQueue
	log       *ParserLog
	cooldown  int
	frames    *arraystack.Stack // production names currently being parsed, innermost on top
}

// NewDriver returns a Driver over the prepared grammar g, using
// DefaultAnalyzer until SetAnalyzer is called.
func NewDriver(g *grammar.Grammar) *Driver {
	return &Driver{g: g, analyzer: DefaultAnalyzer{}}
}

// SetAnalyzer installs the callback surface invoked during tree
// construction. A nil a is ignored.
func (d *Driver) SetAnalyzer(a Analyzer) {
	if a != nil {
		d.analyzer = a
	}
}

// Parse runs the driver against tz from its current position, starting at
// the grammar's designated start production. It returns the root node and
// a nil error on success, or a non-nil *ParserLog (which itself satisfies
// error) if any recoverable errors were logged. Internal/Io failures
// (a driver bug, or a broken reader) are returned directly, unwrapped from
// any log.
func (d *Driver) Parse(tz *lex.Tokenizer) (*tree.Node, error) {
	start := d.g.Start()
	if start == nil {
		return nil, ggerr.NewInternal(0, 0, "grammar has no registered start production")
	}

	d.q = newTokenQueue(tz)
	d.log = NewParserLog()
	d.cooldown = 0
	d.frames = arraystack.New()

	node, err := d.parseProduction(start)
	if err != nil {
		if !d.log.Empty() && isRecoverable(err) {
			// An unrecoverable EOF still leaves its triggering error in the
			// log; surface the aggregated log rather than the bare error so
			// callers always see the ParserLog contract on a failed parse.
			return nil, d.log
		}
		return nil, err
	}
	if !d.log.Empty() {
		return node, d.log
	}
	return node, nil
}

// maxRecursionDepth bounds the parseProduction call stack. Prepare()
// already rejects direct left recursion, so this only guards against
// indirect cycles through several productions that validate() cannot see
// (e.g. mutual recursion with no base case reachable at the given input).
const maxRecursionDepth = 500

func (d *Driver) parseProduction(p *grammar.ProductionPattern) (*tree.Node, error) {
	if d.frames.Size() >= maxRecursionDepth {
		top, _ := d.frames.Peek()
		return nil, ggerr.NewInternal(0, 0, "recursion depth exceeded %d while parsing %q beneath %v", maxRecursionDepth, p.Name(), top)
	}
	d.frames.Push(p.Name())
	defer d.frames.Pop()

	altIdx, err := d.selectAlternative(p)
	if err != nil {
		return nil, err
	}
	alt := p.Alternatives[altIdx]

	node := tree.NewNonTerminal(p.Name(), altIdx)
	suppressed := d.cooldown > 0
	if !p.IsSynthetic() && !suppressed {
		if err := d.analyzer.Enter(node); err != nil {
			d.log.Record(err)
		}
	}

	for i := range alt.Elements {
		if err := d.parseElement(node, alt.Elements[i], p.IsSynthetic(), suppressed); err != nil {
			return nil, err
		}
	}

	if p.IsSynthetic() {
		return node, nil
	}

	suppressed = d.cooldown > 0
	if !suppressed {
		exited, err := d.analyzer.Exit(node)
		if err != nil {
			d.log.Record(err)
		} else if exited != nil {
			node = exited
		}
	}
	return node, nil
}

// parseElement matches element e within alt, appending the resulting
// child (or its flattened grandchildren, if e references a synthetic
// production) to parent. parentSynthetic/suppressed control whether the
// analyzer's Child callback fires.
func (d *Driver) parseElement(parent *tree.Node, e grammar.Element, parentSynthetic, suppressed bool) error {
	count := 0
	for {
		if !e.Unbounded() && count >= e.Max {
			break
		}
		if count >= e.Min {
			proceed, err := d.lookAheadAdmitsOneMore(e)
			if err != nil {
				return err
			}
			if !proceed {
				break
			}
		}

		child, err := d.matchOneOccurrence(e)
		if err != nil {
			if !isRecoverable(err) {
				return err
			}
			if pe, ok := err.(*ggerr.ParseError); ok && pe.Kind() == ggerr.UnexpectedEof {
				if d.cooldown <= 0 {
					d.log.Record(err)
				}
				return err // nothing left to discard; recovery is impossible
			}
			if d.cooldown <= 0 {
				d.log.Record(err)
			}
			d.cooldown = d.g.RecoveryCooldown
			if d.cooldown <= 0 {
				d.cooldown = 3
			}
			// Panic-mode: discard exactly one token and retry the same
			// element. The failure may have come from arbitrarily deep
			// inside a ProductionElement without anything having been
			// consumed yet, so the discard always happens here, uniformly,
			// rather than relying on matchOneOccurrence to have eaten the
			// offending token itself.
			discarded, derr := d.q.consume()
			if derr != nil {
				return derr // already a typed *ggerr.ParseError from the tokenizer
			}
			if discarded == nil {
				return err // nothing left to discard; surface the original error
			}
			continue
		}

		d.appendChild(parent, child, parentSynthetic, suppressed)
		count++
	}

	if count < e.Min {
		return d.raiseMissingElement(e)
	}
	return nil
}

func (d *Driver) appendChild(parent *tree.Node, child *tree.Node, parentSynthetic, suppressed bool) {
	if !child.Terminal && isFlattened(child) {
		for _, grandchild := range child.Children {
			parent.AddChild(grandchild)
			if !parentSynthetic && !suppressed {
				if err := d.analyzer.Child(parent, grandchild); err != nil {
					d.log.Record(err)
				}
			}
		}
		return
	}

	parent.AddChild(child)
	if !parentSynthetic && !suppressed {
		if err := d.analyzer.Child(parent, child); err != nil {
			d.log.Record(err)
		}
	}
}

// isFlattened reports whether a non-terminal node came from a synthetic
// production and so must be spliced into its parent rather than kept as
// its own node.
func isFlattened(n *tree.Node) bool {
	return n.Alternative == syntheticMarker
}

const syntheticMarker = -1

func (d *Driver) matchOneOccurrence(e grammar.Element) (*tree.Node, error) {
	switch e.Kind {
	case grammar.TokenElement:
		tok, err := d.q.peekToken(0)
		if err != nil {
			return nil, err // already a typed *ggerr.ParseError from the tokenizer
		}
		if tok == nil {
			line, col := d.q.position()
			return nil, ggerr.NewUnexpectedEof(line, col)
		}
		if tok.PatternID() != e.ID {
			expected := []string{d.g.TokenName(e.ID)}
			return nil, ggerr.NewUnexpectedToken(tok.Image(), expected, tok.StartLine(), tok.StartColumn())
		}
		// Only consume once the token is confirmed to match: a mismatch
		// must leave it in the queue for the recovery discard in
		// parseElement to account for, uniformly, across both token- and
		// production-element failures.
		if _, err := d.q.consume(); err != nil {
			return nil, err
		}
		if d.cooldown > 0 {
			d.cooldown--
		}
		return tree.NewTerminal(d.g.TokenName(e.ID), tok), nil

	case grammar.ProductionElement:
		prod, ok := d.g.Production(e.ID)
		if !ok {
			return nil, ggerr.NewInternal(0, 0, "element references unregistered production id %d", e.ID)
		}
		node, err := d.parseProduction(prod)
		if err != nil {
			return nil, err
		}
		if prod.IsSynthetic() {
			node.Alternative = syntheticMarker
		}
		return node, nil
	}
	return nil, ggerr.NewInternal(0, 0, "element has unknown kind %v", e.Kind)
}

func (d *Driver) lookAheadAdmitsOneMore(e grammar.Element) (bool, error) {
	la := e.LookAhead()
	if la == nil {
		return true, nil
	}
	seen, err := d.q.peekIDs(la.MaxLength())
	if err != nil {
		return false, err
	}
	return la.MatchesPrefix(seen), nil
}

func (d *Driver) raiseMissingElement(e grammar.Element) error {
	var expected []string
	if e.Kind == grammar.TokenElement {
		expected = []string{d.g.TokenName(e.ID)}
	} else if prod, ok := d.g.Production(e.ID); ok {
		expected = []string{prod.Name()}
	}
	line, col := d.q.position()
	tok, _ := d.q.peekToken(0)
	image := "<eof>"
	if tok != nil {
		image = tok.Image()
		line, col = tok.StartLine(), tok.StartColumn()
	}
	return ggerr.NewUnexpectedToken(image, expected, line, col)
}

func (d *Driver) selectAlternative(p *grammar.ProductionPattern) (int, error) {
	maxNeeded := 1
	for _, alt := range p.Alternatives {
		if la := alt.LookAhead(); la != nil && la.MaxLength() > maxNeeded {
			maxNeeded = la.MaxLength()
		}
	}
	seen, err := d.q.peekIDs(maxNeeded)
	if err != nil {
		return 0, err
	}

	for i, alt := range p.Alternatives {
		if alt.IsDefault() {
			continue
		}
		if la := alt.LookAhead(); la != nil && la.MatchesPrefix(seen) {
			return i, nil
		}
	}
	if p.HasDefault() {
		return p.DefaultAltIndex(), nil
	}

	expected := d.expectedDescriptions(p)
	line, col := d.q.position()
	image := "<eof>"
	if tok, _ := d.q.peekToken(0); tok != nil {
		image = tok.Image()
		line, col = tok.StartLine(), tok.StartColumn()
	}
	return 0, ggerr.NewUnexpectedToken(image, expected, line, col)
}

func (d *Driver) expectedDescriptions(p *grammar.ProductionPattern) []string {
	seen := map[string]bool{}
	var out []string
	for _, alt := range p.Alternatives {
		if len(alt.Elements) == 0 {
			continue
		}
		first := alt.Elements[0]
		var name string
		if first.Kind == grammar.TokenElement {
			name = d.g.TokenName(first.ID)
		} else if prod, ok := d.g.Production(first.ID); ok {
			name = prod.Name()
		} else {
			name = fmt.Sprintf("id#%d", first.ID)
		}
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}
