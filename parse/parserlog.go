// Package parse implements the RecursiveDescentDriver (§4.8): table-less
// LA_k dispatch over a prepared grammar.Grammar, with panic-mode error
// recovery and an analyzer callback surface, producing a tree.Node or an
// aggregated ParserLog.
//
// It is grounded on the host repository's parse.ll1Parser.Parse
// stack-of-symbols-plus-stack-of-tree-nodes shape, generalized from
// table-driven LL(1) dispatch to table-less LA_k dispatch, and on
// icterrors.NewSyntaxErrorFromToken's usage in parse/ll1.go and
// parse/lr.go for how a syntax error is built from the offending token.
package parse

import (
	"strings"

	"github.com/cederberg/grammatica-sub000/ggerr"
	"github.com/google/uuid"
)

// Entry is one recorded parse error, tagged with a stable id so tooling
// can correlate a specific entry across retries or telemetry even when
// two entries share the same line/column (e.g. two recoveries on one
// line).
type Entry struct {
	ID  uuid.UUID
	Err error
}

// ParserLog aggregates the errors recorded during one Parser.Parse call,
// in the order they were encountered. It implements error, so a
// *ParserLog can be returned directly wherever the driver is expected to
// surface "the parse failed."
type ParserLog struct {
	entries []Entry
}

// NewParserLog returns an empty log.
func NewParserLog() *ParserLog {
	return &ParserLog{}
}

// Record appends a new entry wrapping err, stamping it with a fresh id.
func (l *ParserLog) Record(err error) Entry {
	e := Entry{ID: uuid.New(), Err: err}
	l.entries = append(l.entries, e)
	return e
}

// Empty reports whether no errors were recorded: parse succeeded.
func (l *ParserLog) Empty() bool { return len(l.entries) == 0 }

// Entries returns the recorded entries in encounter order.
func (l *ParserLog) Entries() []Entry { return l.entries }

// Error renders every entry's message, one per line, satisfying the error
// interface so a non-empty ParserLog can be returned as the parse's
// failure.
func (l *ParserLog) Error() string {
	var sb strings.Builder
	for i, e := range l.entries {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

// isRecoverable reports whether err is a lexical/syntactic parse error the
// driver's panic-mode recovery can act on, rather than an Internal/Io
// failure that must abort the parse immediately.
func isRecoverable(err error) bool {
	pe, ok := err.(*ggerr.ParseError)
	if !ok {
		return false
	}
	switch pe.Kind() {
	case ggerr.UnexpectedToken, ggerr.UnexpectedEof, ggerr.UnexpectedChar, ggerr.InvalidTokenParse:
		return true
	default:
		return false
	}
}
