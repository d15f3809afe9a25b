package lex

import (
	"strings"
	"testing"

	"github.com/cederberg/grammatica-sub000/buffer"
	"github.com/cederberg/grammatica-sub000/token"
	"github.com/stretchr/testify/assert"
)

func Test_Tokenizer_LongestMatchLowestID(t *testing.T) {
	assert := assert.New(t)

	ifPat := token.NewPattern(1, "IF", token.String, "if")
	identPat := token.NewPattern(2, "IDENT", token.Regexp, `[a-z]+`)

	tz, err := New([]*token.Pattern{ifPat, identPat})
	assert.NoError(err)

	tz.Reset(buffer.New(strings.NewReader("if")))
	tok, err := tz.Next()
	assert.NoError(err)
	assert.Equal(ifPat.ID(), tok.PatternID())

	tz.Reset(buffer.New(strings.NewReader("iff")))
	tok, err = tz.Next()
	assert.NoError(err)
	assert.Equal(identPat.ID(), tok.PatternID())
	assert.Equal("iff", tok.Image())
}

func Test_Tokenizer_IgnoreTransparency(t *testing.T) {
	assert := assert.New(t)

	numPat := token.NewPattern(1, "NUM", token.Regexp, `[0-9]+`)
	wsPat := token.NewPattern(2, "WS", token.Regexp, `[ \t\n]+`)
	wsPat.Ignore("whitespace")

	tz, err := New([]*token.Pattern{numPat, wsPat})
	assert.NoError(err)

	tz.Reset(buffer.New(strings.NewReader("1  22   333")))

	var images []string
	for {
		tok, err := tz.Next()
		assert.NoError(err)
		if tok == nil {
			break
		}
		images = append(images, tok.Image())
	}

	assert.Equal([]string{"1", "22", "333"}, images)
}

func Test_Tokenizer_ErrorPattern(t *testing.T) {
	assert := assert.New(t)

	identPat := token.NewPattern(1, "IDENT", token.Regexp, `[a-z]+`)
	strayPat := token.NewPattern(2, "STRAY", token.String, "?")
	strayPat.Error("stray char")

	tz, err := New([]*token.Pattern{identPat, strayPat})
	assert.NoError(err)

	tz.Reset(buffer.New(strings.NewReader("a?b")))

	tok, err := tz.Next()
	assert.NoError(err)
	assert.Equal("a", tok.Image())

	_, err = tz.Next()
	assert.Error(err)
	assert.Contains(err.Error(), "stray char")
}

func Test_Tokenizer_UnexpectedChar(t *testing.T) {
	assert := assert.New(t)

	numPat := token.NewPattern(1, "NUM", token.Regexp, `[0-9]+`)

	tz, err := New([]*token.Pattern{numPat})
	assert.NoError(err)

	tz.Reset(buffer.New(strings.NewReader("12x")))
	tok, err := tz.Next()
	assert.NoError(err)
	assert.Equal("12", tok.Image())

	_, err = tz.Next()
	assert.Error(err)
}

func Test_Tokenizer_ListMode(t *testing.T) {
	assert := assert.New(t)

	numPat := token.NewPattern(1, "NUM", token.Regexp, `[0-9]+`)
	wsPat := token.NewPattern(2, "WS", token.Regexp, `[ \t\n]+`)
	wsPat.Ignore("whitespace")

	tz, err := New([]*token.Pattern{numPat, wsPat})
	assert.NoError(err)
	tz.SetListMode(true)

	tz.Reset(buffer.New(strings.NewReader("1 2")))

	first, err := tz.Next()
	assert.NoError(err)
	assert.Equal("1", first.Image())

	second, err := tz.Next()
	assert.NoError(err)
	assert.Equal("2", second.Image())

	// the ignored whitespace token should still be reachable via the link
	assert.NotNil(first.Next())
	assert.Equal(" ", first.Next().Image())
	assert.Equal(second, first.Next().Next())
}
