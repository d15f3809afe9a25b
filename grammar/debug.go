package grammar

import (
	"fmt"
	"strings"

	"github.com/cederberg/grammatica-sub000/lookahead"
	"github.com/dekarrin/rosed"
)

// DebugTable renders every production's alternatives, their elements, and
// their prepared look-ahead sets as a table, one row per alternative. It
// is meant for a human debugging a grammar that fails to prepare cleanly
// or parses unexpectedly — not for machine consumption.
//
// Grounded on the host repository's slrTable.String()/lalrTable.String()
// (internal/ictiobus/parse/slr.go, lalr.go): both build a [][]string with
// a header row first, then render it with
// rosed.Edit("").InsertTableOpts(0, data, width, rosed.Options{...}), the
// same call shape used here.
func (g *Grammar) DebugTable() string {
	data := [][]string{
		{"Production", "Alt", "Elements", "Look-ahead", "Default"},
	}

	for _, p := range g.Productions() {
		for i, alt := range p.Alternatives {
			name := p.Name()
			if p.IsSynthetic() {
				name = name + " (synthetic)"
			}
			if i > 0 {
				name = ""
			}

			def := ""
			if alt.IsDefault() {
				def = "yes"
			}

			data = append(data, []string{
				name,
				fmt.Sprintf("%d", i),
				g.elementsDebugString(alt.Elements),
				g.lookAheadDebugString(alt.LookAhead()),
				def,
			})
		}
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 20, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

func (g *Grammar) elementsDebugString(elems []Element) string {
	parts := make([]string, 0, len(elems))
	for _, e := range elems {
		name := g.elementName(e)
		switch {
		case e.Min == 0 && e.Unbounded():
			name += "*"
		case e.Min == 1 && e.Unbounded():
			name += "+"
		case e.Min == 0 && e.Max == 1:
			name += "?"
		case e.Min != 1 || e.Max != 1:
			name += fmt.Sprintf("{%d,%d}", e.Min, e.Max)
		}
		parts = append(parts, name)
	}
	if len(parts) == 0 {
		return "ε"
	}
	return strings.Join(parts, " ")
}

func (g *Grammar) elementName(e Element) string {
	if e.Kind == TokenElement {
		return g.TokenName(e.ID)
	}
	if prod, ok := g.productions[e.ID]; ok {
		return prod.Name()
	}
	return fmt.Sprintf("prod#%d", e.ID)
}

func (g *Grammar) lookAheadDebugString(la *lookahead.Set) string {
	if la == nil {
		return "-"
	}
	seqs := la.Sequences()
	if len(seqs) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(seqs))
	for _, sq := range seqs {
		parts = append(parts, g.sequenceDebugString(sq))
	}
	return strings.Join(parts, " | ")
}

func (g *Grammar) sequenceDebugString(sq lookahead.Sequence) string {
	if len(sq.IDs) == 0 {
		return "ε"
	}
	names := make([]string, len(sq.IDs))
	for i, id := range sq.IDs {
		names[i] = g.TokenName(id)
	}
	s := strings.Join(names, " ")
	if sq.Repetitive {
		s += "…"
	}
	return s
}
