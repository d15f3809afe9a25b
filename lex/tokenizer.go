// Package lex composes automaton.StringDFA and automaton.TokenNFA over a
// buffer.ReaderBuffer into Tokenizer: the component that turns a character
// stream into a sequence of token.Token values, applying the
// longest-match/lowest-id arbitration and the ignore/error pattern flags
// §4.6 specifies.
//
// It is grounded on the host repository's lazyLex (longest-match,
// lowest-id-on-tie selectMatch, Mark/Restore-based Peek), generalized from
// "one composed regex per state" to two-way StringDFA/TokenNFA
// arbitration (there is no host-regex fallback matcher), and with
// states dropped entirely: grammatica-sub000 has no lexer-state concept,
// only ignore/error flags per pattern.
package lex

import (
	"github.com/cederberg/grammatica-sub000/automaton"
	"github.com/cederberg/grammatica-sub000/buffer"
	"github.com/cederberg/grammatica-sub000/ggerr"
	"github.com/cederberg/grammatica-sub000/rx"
	"github.com/cederberg/grammatica-sub000/token"
)

// Tokenizer composes a string matcher and a regex matcher over a
// ReaderBuffer and emits Token values one at a time.
type Tokenizer struct {
	patterns []*token.Pattern
	strings  *automaton.StringDFA
	regexes  *automaton.TokenNFA

	buf *buffer.ReaderBuffer

	listMode bool
	lastTok  *token.Token
}

// New builds a Tokenizer over patterns, compiling every String pattern into
// a shared StringDFA and every Regexp pattern into a shared TokenNFA. It
// returns a *ggerr.CreationError if a regex pattern fails to compile or two
// patterns share an id.
func New(patterns []*token.Pattern) (*Tokenizer, error) {
	seen := map[int]bool{}
	strDFA := automaton.NewStringDFA()
	b := automaton.NewBuilder()
	nfa := automaton.NewTokenNFA(b)
	hasRegex := false

	for _, p := range patterns {
		if seen[p.ID()] {
			return nil, ggerr.NewCreationError(ggerr.InvalidToken, p.Name(), "duplicate pattern id")
		}
		seen[p.ID()] = true

		switch p.Kind() {
		case token.String:
			strDFA.AddMatch(p.Text(), p.IgnoreCase(), p)
		case token.Regexp:
			frag, err := rx.Compile(b, p.Text())
			if err != nil {
				return nil, ggerr.NewCreationError(ggerr.InvalidToken, p.Name(), err.Error())
			}
			nfa.AddFragment(frag, p)
			hasRegex = true
		}
	}
	if hasRegex {
		nfa.Compile()
	}

	return &Tokenizer{
		patterns: patterns,
		strings:  strDFA,
		regexes:  nfa,
	}, nil
}

// SetListMode enables or disables token-list linking: when enabled, every
// emitted token (including ignored ones) is chained to its predecessor via
// Token.Link so that a consumer can walk the full token stream, comments and
// whitespace included.
func (t *Tokenizer) SetListMode(v bool) {
	t.listMode = v
}

// Reset rebinds the tokenizer to a fresh reader, clearing all rolling match
// state, per §4.6.
func (t *Tokenizer) Reset(buf *buffer.ReaderBuffer) {
	t.buf = buf
	t.lastTok = nil
}

// Next returns the next significant (non-ignored) token from the input, or
// an error: a *ggerr.ParseError of kind UnexpectedChar if no pattern
// matches any remaining input, of kind InvalidToken if the matched pattern
// is flagged as an error pattern, or of kind Io if the underlying reader
// failed. At end of input it returns (nil, nil).
func (t *Tokenizer) Next() (*token.Token, error) {
	for {
		if t.buf.Peek(0) == buffer.EOF {
			if err := t.buf.Err(); err != nil {
				return nil, ggerr.NewIo(t.buf.Line(), t.buf.Column(), err)
			}
			return nil, nil
		}

		match := t.bestMatch()
		if !match.Found() {
			img := string(t.buf.Peek(0))
			return nil, ggerr.NewUnexpectedChar(img, t.buf.Line(), t.buf.Column())
		}

		line, col := t.buf.Line(), t.buf.Column()
		image := t.buf.Read(match.Length())
		pat := match.Pattern()

		tok := token.NewToken(pat.ID(), image, line, col)
		t.link(tok)

		if pat.IsError() {
			return nil, ggerr.NewInvalidToken(pat.ErrorMessage(), line, col)
		}
		if pat.IsIgnored() {
			continue
		}
		return tok, nil
	}
}

// bestMatch runs both matchers against the current buffer position and
// returns the longest-then-lowest-id winner per §8 invariant 1.
func (t *Tokenizer) bestMatch() token.Match {
	best := token.NoMatch
	if strPat := t.strings.Match(t.buf); strPat != nil {
		best = best.Offer(stringMatchLen(strPat), strPat)
	}
	if length, pat := t.regexes.Match(t.buf); pat != nil {
		best = best.Offer(length, pat)
	}
	return best
}

func stringMatchLen(p *token.Pattern) int {
	return len([]rune(p.Text()))
}

func (t *Tokenizer) link(tok *token.Token) {
	if !t.listMode {
		return
	}
	if t.lastTok != nil {
		t.lastTok.Link(tok)
	}
	t.lastTok = tok
}
