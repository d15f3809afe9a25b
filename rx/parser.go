package rx

import (
	"strconv"

	"github.com/cederberg/grammatica-sub000/automaton"
)

// Compile parses pattern and emits its Thompson-constructed fragment into b,
// returning the fragment's start/accept pair. On failure it returns an
// *Exception identifying the kind and position of the problem.
func Compile(b *automaton.Builder, pattern string) (automaton.Fragment, error) {
	p := &parser{runes: []rune(pattern), b: b}
	frag, err := p.parseAlt()
	if err != nil {
		return automaton.Fragment{}, err
	}
	if p.pos != len(p.runes) {
		return automaton.Fragment{}, newException(UnexpectedChar, p.pos, "unexpected %q", p.runes[p.pos])
	}
	return frag, nil
}

type parser struct {
	runes []rune
	pos   int
	b     *automaton.Builder
}

func (p *parser) eof() bool      { return p.pos >= len(p.runes) }
func (p *parser) peek() rune     { return p.runes[p.pos] }
func (p *parser) advance() rune  { r := p.runes[p.pos]; p.pos++; return r }
func (p *parser) at(r rune) bool { return !p.eof() && p.peek() == r }

// parseAlt := concat ('|' concat)*
func (p *parser) parseAlt() (automaton.Fragment, error) {
	left, err := p.parseConcat()
	if err != nil {
		return automaton.Fragment{}, err
	}
	for p.at('|') {
		p.advance()
		right, err := p.parseConcat()
		if err != nil {
			return automaton.Fragment{}, err
		}
		left = p.b.Alt(left, right)
	}
	return left, nil
}

// parseConcat := repeat*
func (p *parser) parseConcat() (automaton.Fragment, error) {
	var frag automaton.Fragment
	has := false

	for !p.eof() && !p.at('|') && !p.at(')') {
		next, err := p.parseRepeat()
		if err != nil {
			return automaton.Fragment{}, err
		}
		if !has {
			frag = next
			has = true
		} else {
			frag = p.b.Concat(frag, next)
		}
	}

	if !has {
		frag = p.b.Epsilon()
	}
	return frag, nil
}

// parseRepeat := atom quantifier?
func (p *parser) parseRepeat() (automaton.Fragment, error) {
	startPos := p.pos
	atom, err := p.parseAtom()
	if err != nil {
		return automaton.Fragment{}, err
	}

	if p.eof() {
		return atom, nil
	}

	switch p.peek() {
	case '?':
		p.advance()
		if err := p.rejectReluctantOrPossessive(); err != nil {
			return automaton.Fragment{}, err
		}
		return p.b.Opt(atom), nil
	case '*':
		p.advance()
		if err := p.rejectReluctantOrPossessive(); err != nil {
			return automaton.Fragment{}, err
		}
		return p.b.Star(atom), nil
	case '+':
		p.advance()
		if err := p.rejectReluctantOrPossessive(); err != nil {
			return automaton.Fragment{}, err
		}
		return p.b.Plus(atom), nil
	case '{':
		return p.parseCountedRepeat(atom, startPos)
	}

	return atom, nil
}

// rejectReluctantOrPossessive rejects a trailing '?' (reluctant) or '+'
// (possessive) modifier on a just-parsed quantifier, per §4.4.
func (p *parser) rejectReluctantOrPossessive() error {
	if !p.eof() && (p.peek() == '?' || p.peek() == '+') {
		return newException(UnsupportedSpecial, p.pos, "reluctant/possessive quantifiers are not supported")
	}
	return nil
}

// parseCountedRepeat handles "{n}", "{n,}", "{n,m}". Only the degenerate
// forms equivalent to ?, *, + (and the literal-count identities {0},
// {1}) are compiled; anything else is InvalidRepeatCount per §4.4.
func (p *parser) parseCountedRepeat(atom automaton.Fragment, startPos int) (automaton.Fragment, error) {
	bracePos := p.pos
	p.advance() // consume '{'

	n, nOK := p.parseInt()
	hasComma := false
	m, mOK := n, nOK
	if p.at(',') {
		hasComma = true
		p.advance()
		if p.at('}') {
			mOK = false
		} else {
			m, mOK = p.parseInt()
		}
	}

	if !p.at('}') {
		return automaton.Fragment{}, newException(InvalidRepeatCount, bracePos, "malformed repeat count")
	}
	p.advance()

	if err := p.rejectReluctantOrPossessive(); err != nil {
		return automaton.Fragment{}, err
	}

	switch {
	case !nOK:
		return automaton.Fragment{}, newException(InvalidRepeatCount, bracePos, "missing repeat count")
	case !hasComma:
		// {n}
		if n == 0 {
			return p.b.Epsilon(), nil
		}
		if n == 1 {
			return atom, nil
		}
		return automaton.Fragment{}, newException(InvalidRepeatCount, startPos, "counted repetition {%d} is not supported", n)
	case !mOK:
		// {n,}
		if n == 0 {
			return p.b.Star(atom), nil
		}
		if n == 1 {
			return p.b.Plus(atom), nil
		}
		return automaton.Fragment{}, newException(InvalidRepeatCount, startPos, "counted repetition {%d,} is not supported", n)
	default:
		// {n,m}
		if n == 0 && m == 1 {
			return p.b.Opt(atom), nil
		}
		return automaton.Fragment{}, newException(InvalidRepeatCount, startPos, "counted repetition {%d,%d} is not supported", n, m)
	}
}

func (p *parser) parseInt() (int, bool) {
	start := p.pos
	for !p.eof() && p.peek() >= '0' && p.peek() <= '9' {
		p.advance()
	}
	if p.pos == start {
		return 0, false
	}
	n, err := strconv.Atoi(string(p.runes[start:p.pos]))
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseAtom := '(' alt ')' | '.' | '[' class ']' | escape | literal
func (p *parser) parseAtom() (automaton.Fragment, error) {
	if p.eof() {
		return automaton.Fragment{}, newException(UnterminatedPattern, p.pos, "expected an atom but pattern ended")
	}

	switch p.peek() {
	case '^', '$':
		return automaton.Fragment{}, newException(UnsupportedSpecial, p.pos, "anchors are not supported")
	case '(':
		p.advance()
		frag, err := p.parseAlt()
		if err != nil {
			return automaton.Fragment{}, err
		}
		if !p.at(')') {
			return automaton.Fragment{}, newException(UnterminatedPattern, p.pos, "missing closing ')'")
		}
		p.advance()
		return frag, nil
	case '.':
		p.advance()
		return p.b.Class(automaton.Dot{}), nil
	case '[':
		return p.parseClass()
	case '\\':
		return p.parseEscape()
	case ')', '|':
		return automaton.Fragment{}, newException(UnexpectedChar, p.pos, "unexpected %q", p.peek())
	default:
		r := p.advance()
		return p.b.Char(r), nil
	}
}

// parseClass parses "[...]"/"[^...]" with ranges "a-z" and the same escapes
// parseEscape understands.
func (p *parser) parseClass() (automaton.Fragment, error) {
	startPos := p.pos
	p.advance() // consume '['

	cls := automaton.Class{}
	if p.at('^') {
		cls.Inverse = true
		p.advance()
	}

	first := true
	for {
		if p.eof() {
			return automaton.Fragment{}, newException(UnterminatedPattern, startPos, "missing closing ']'")
		}
		if p.at(']') && !first {
			p.advance()
			break
		}
		first = false

		lo, loMatcher, err := p.parseClassAtom()
		if err != nil {
			return automaton.Fragment{}, err
		}

		if loMatcher != nil {
			// an escape shortcut like \d inside a class contributes its own
			// matcher rather than a single rune usable in a range.
			cls = cls.AddMatcher(loMatcher)
			continue
		}

		if p.at('-') && p.pos+1 < len(p.runes) && p.runes[p.pos+1] != ']' {
			p.advance() // consume '-'
			hi, hiMatcher, err := p.parseClassAtom()
			if err != nil {
				return automaton.Fragment{}, err
			}
			if hiMatcher != nil {
				return automaton.Fragment{}, newException(UnexpectedChar, p.pos, "character class shortcut cannot end a range")
			}
			cls = cls.AddRange(lo, hi)
			continue
		}

		cls = cls.AddChar(lo)
	}

	return p.b.Class(cls), nil
}

// parseClassAtom parses one member of a character class: either a literal
// rune (possibly escaped) or a class-shortcut matcher (\d \s \w and their
// negations), in which case matcher is non-nil and r is unused.
func (p *parser) parseClassAtom() (r rune, matcher automaton.CharMatcher, err error) {
	if p.peek() == '\\' {
		p.advance()
		return p.parseEscapeBody(true)
	}
	return p.advance(), nil, nil
}

// parseEscape parses a top-level "\X" atom, outside of a character class.
func (p *parser) parseEscape() (automaton.Fragment, error) {
	p.advance() // consume backslash
	r, matcher, err := p.parseEscapeBody(false)
	if err != nil {
		return automaton.Fragment{}, err
	}
	if matcher != nil {
		return p.b.Class(matcher), nil
	}
	return p.b.Char(r), nil
}

// parseEscapeBody parses the character(s) following a backslash, common to
// both top-level escapes and class-member escapes. inClass is not
// consulted: the same set of escapes is accepted in both positions.
func (p *parser) parseEscapeBody(inClass bool) (rune, automaton.CharMatcher, error) {
	pos := p.pos
	if p.eof() {
		return 0, nil, newException(UnterminatedPattern, pos, "dangling escape")
	}

	c := p.advance()
	switch c {
	case 'd':
		return 0, automaton.Digit{}, nil
	case 'D':
		return 0, automaton.NotDigit{}, nil
	case 's':
		return 0, automaton.Space{}, nil
	case 'S':
		return 0, automaton.NotSpace{}, nil
	case 'w':
		return 0, automaton.Word{}, nil
	case 'W':
		return 0, automaton.NotWord{}, nil
	case 't':
		return '\t', nil, nil
	case 'n':
		return '\n', nil, nil
	case 'r':
		return '\r', nil, nil
	case 'f':
		return '\f', nil, nil
	case 'a':
		return '\a', nil, nil
	case 'e':
		return 0x1b, nil, nil
	case 'x':
		return p.parseHexEscape(pos, 2)
	case 'u':
		return p.parseHexEscape(pos, 4)
	case '0':
		return p.parseOctalEscape(pos)
	case '.', '*', '+', '?', '(', ')', '[', ']', '{', '}', '|', '^', '$', '\\', '/', '-':
		return c, nil, nil
	default:
		return 0, nil, newException(UnsupportedEscape, pos, "unsupported escape %q", c)
	}
}

func (p *parser) parseHexEscape(pos, digits int) (rune, automaton.CharMatcher, error) {
	if p.pos+digits > len(p.runes) {
		return 0, nil, newException(UnsupportedEscape, pos, "truncated hex escape")
	}
	text := string(p.runes[p.pos : p.pos+digits])
	n, err := strconv.ParseInt(text, 16, 32)
	if err != nil {
		return 0, nil, newException(UnsupportedEscape, pos, "invalid hex escape %q", text)
	}
	p.pos += digits
	return rune(n), nil, nil
}

func (p *parser) parseOctalEscape(pos int) (rune, automaton.CharMatcher, error) {
	start := p.pos
	for p.pos < len(p.runes) && p.pos < start+3 && p.runes[p.pos] >= '0' && p.runes[p.pos] <= '7' {
		p.pos++
	}
	text := string(p.runes[start:p.pos])
	if text == "" {
		return 0, nil, nil // bare \0
	}
	n, err := strconv.ParseInt(text, 8, 32)
	if err != nil {
		return 0, nil, newException(UnsupportedEscape, pos, "invalid octal escape %q", text)
	}
	return rune(n), nil, nil
}
