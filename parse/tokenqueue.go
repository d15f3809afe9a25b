package parse

import (
	"github.com/cederberg/grammatica-sub000/lex"
	"github.com/cederberg/grammatica-sub000/token"
)

// tokenQueue buffers tokens read from a Tokenizer so the driver can peek
// up to k tokens ahead (to evaluate a LookAheadSet) without consuming
// them, then consume one at a time as alternatives and elements are
// chosen.
type tokenQueue struct {
	tz  *lex.Tokenizer
	buf []*token.Token
	eof bool

	lastLine, lastCol int
}

func newTokenQueue(tz *lex.Tokenizer) *tokenQueue {
	return &tokenQueue{tz: tz}
}

// fill ensures at least n tokens are buffered, or that EOF has been
// observed.
func (q *tokenQueue) fill(n int) error {
	for len(q.buf) < n && !q.eof {
		tok, err := q.tz.Next()
		if err != nil {
			return err
		}
		if tok == nil {
			q.eof = true
			break
		}
		q.buf = append(q.buf, tok)
		q.lastLine, q.lastCol = tok.StartLine(), tok.StartColumn()
	}
	return nil
}

// peekID returns the pattern id of the token i positions ahead (0 being
// next), and whether one exists (false at end of input).
func (q *tokenQueue) peekID(i int) (int, bool, error) {
	if err := q.fill(i + 1); err != nil {
		return 0, false, err
	}
	if i >= len(q.buf) {
		return 0, false, nil
	}
	return q.buf[i].PatternID(), true, nil
}

// peekIDs returns up to n buffered look-ahead token ids, fewer at end of
// input.
func (q *tokenQueue) peekIDs(n int) ([]int, error) {
	if err := q.fill(n); err != nil {
		return nil, err
	}
	limit := n
	if limit > len(q.buf) {
		limit = len(q.buf)
	}
	ids := make([]int, limit)
	for i := 0; i < limit; i++ {
		ids[i] = q.buf[i].PatternID()
	}
	return ids, nil
}

// peekToken returns the token i positions ahead, or nil at end of input.
func (q *tokenQueue) peekToken(i int) (*token.Token, error) {
	if err := q.fill(i + 1); err != nil {
		return nil, err
	}
	if i >= len(q.buf) {
		return nil, nil
	}
	return q.buf[i], nil
}

// consume returns and removes the next buffered token, or nil at end of
// input.
func (q *tokenQueue) consume() (*token.Token, error) {
	if err := q.fill(1); err != nil {
		return nil, err
	}
	if len(q.buf) == 0 {
		return nil, nil
	}
	tok := q.buf[0]
	q.buf = q.buf[1:]
	return tok, nil
}

// position returns the line/column to report for an error at the current
// queue front: the next buffered token's start, or, if none remain, the
// start of the last token read from the tokenizer.
func (q *tokenQueue) position() (int, int) {
	if len(q.buf) > 0 {
		return q.buf[0].StartLine(), q.buf[0].StartColumn()
	}
	return q.lastLine, q.lastCol
}
