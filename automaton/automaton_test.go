package automaton

import (
	"testing"

	"github.com/cederberg/grammatica-sub000/token"
	"github.com/stretchr/testify/assert"
)

type stringPeeker struct {
	s []rune
}

func newPeeker(s string) *stringPeeker { return &stringPeeker{s: []rune(s)} }

func (p *stringPeeker) Peek(offset int) rune {
	if offset < 0 || offset >= len(p.s) {
		return -1
	}
	return p.s[offset]
}

func Test_StringDFA_MatchesEachAddedString(t *testing.T) {
	assert := assert.New(t)

	ifPat := token.NewPattern(1, "IF", token.String, "if")
	inPat := token.NewPattern(2, "IN", token.String, "in")

	d := NewStringDFA()
	d.AddMatch("if", false, ifPat)
	d.AddMatch("in", false, inPat)

	assert.Equal(ifPat, d.Match(newPeeker("if")))
	assert.Equal(inPat, d.Match(newPeeker("in x")))
	assert.Nil(d.Match(newPeeker("it")))
}

func Test_StringDFA_IgnoreCase(t *testing.T) {
	assert := assert.New(t)

	ifPat := token.NewPattern(1, "IF", token.String, "if")

	d := NewStringDFA()
	d.AddMatch("if", true, ifPat)

	assert.Equal(ifPat, d.Match(newPeeker("IF")))
	assert.Equal(ifPat, d.Match(newPeeker("If")))
}

func buildDigitsPlusNFA() (*TokenNFA, *token.Pattern) {
	numPat := token.NewPattern(10, "NUM", token.Regexp, `[0-9]+`)

	b := NewBuilder()
	n := NewTokenNFA(b)

	digitFrag := b.Class(Digit{})
	frag := b.Plus(digitFrag)
	n.AddFragment(frag, numPat)
	n.Compile()

	return n, numPat
}

func Test_TokenNFA_PlusMatchesLongest(t *testing.T) {
	assert := assert.New(t)

	n, numPat := buildDigitsPlusNFA()

	length, pat := n.Match(newPeeker("1234 + 5"))
	assert.Equal(4, length)
	assert.Equal(numPat, pat)
}

func Test_TokenNFA_AlternationAndStar(t *testing.T) {
	assert := assert.New(t)

	wordPat := token.NewPattern(1, "WORD", token.Regexp, `a(b|c)*`)

	b := NewBuilder()
	n := NewTokenNFA(b)

	a := b.Char('a')
	bb := b.Char('b')
	cc := b.Char('c')
	alt := b.Alt(bb, cc)
	star := b.Star(alt)
	frag := b.Concat(a, star)

	n.AddFragment(frag, wordPat)
	n.Compile()

	length, pat := n.Match(newPeeker("abcbcbd"))
	assert.Equal(6, length)
	assert.Equal(wordPat, pat)

	length, pat = n.Match(newPeeker("a"))
	assert.Equal(1, length)
	assert.Equal(wordPat, pat)

	_, pat = n.Match(newPeeker("zzz"))
	assert.Nil(pat)
}

func Test_TokenNFA_DotExcludesLineTerminators(t *testing.T) {
	assert := assert.New(t)

	anyPat := token.NewPattern(1, "ANY", token.Regexp, `.`)

	b := NewBuilder()
	n := NewTokenNFA(b)
	n.AddFragment(b.Class(Dot{}), anyPat)
	n.Compile()

	length, pat := n.Match(newPeeker("x"))
	assert.Equal(1, length)
	assert.NotNil(pat)

	_, pat = n.Match(newPeeker("\n"))
	assert.Nil(pat)
}

func Test_TokenNFA_LowestIDWinsOnTie(t *testing.T) {
	assert := assert.New(t)

	first := token.NewPattern(1, "FIRST", token.Regexp, `a`)
	second := token.NewPattern(2, "SECOND", token.Regexp, `a`)

	b := NewBuilder()
	n := NewTokenNFA(b)
	n.AddFragment(b.Char('a'), first)
	n.AddFragment(b.Char('a'), second)
	n.Compile()

	length, pat := n.Match(newPeeker("a"))
	assert.Equal(1, length)
	assert.Equal(first, pat)
}

func Test_TokenNFA_EmptyInputNoMatch(t *testing.T) {
	assert := assert.New(t)

	numPat := token.NewPattern(1, "NUM", token.Regexp, `[0-9]+`)
	b := NewBuilder()
	n := NewTokenNFA(b)
	n.AddFragment(b.Plus(b.Class(Digit{})), numPat)
	n.Compile()

	_, pat := n.Match(newPeeker(""))
	assert.Nil(pat)
}
