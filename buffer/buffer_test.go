package buffer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ReaderBuffer_PeekDoesNotConsume(t *testing.T) {
	assert := assert.New(t)

	b := New(strings.NewReader("abc"))

	assert.Equal('a', b.Peek(0))
	assert.Equal('b', b.Peek(1))
	assert.Equal('a', b.Peek(0), "peek must not advance the cursor")
	assert.Equal(0, b.Position())
}

func Test_ReaderBuffer_PeekPastEndReturnsEOF(t *testing.T) {
	assert := assert.New(t)

	b := New(strings.NewReader("ab"))

	assert.Equal(EOF, b.Peek(2))
	assert.Equal(EOF, b.Peek(100))
}

func Test_ReaderBuffer_ReadAdvancesAndTracksLineCol(t *testing.T) {
	assert := assert.New(t)

	b := New(strings.NewReader("ab\ncd"))

	assert.Equal("ab", b.Read(2))
	assert.Equal(1, b.Line())
	assert.Equal(3, b.Column())

	assert.Equal("\ncd", b.Read(3))
	assert.Equal(2, b.Line())
	assert.Equal(3, b.Column())
}

func Test_ReaderBuffer_ReadPastEndReturnsShortResult(t *testing.T) {
	assert := assert.New(t)

	b := New(strings.NewReader("ab"))

	assert.Equal("ab", b.Read(10))
	assert.Equal(EOF, b.Peek(0))
}

func Test_ReaderBuffer_TrimDoesNotChangeObservableBehavior(t *testing.T) {
	assert := assert.New(t)

	var sb strings.Builder
	for i := 0; i < 4000; i++ {
		sb.WriteByte('x')
	}
	input := sb.String()

	b := New(strings.NewReader(input))

	// read past several trim boundaries
	for i := 0; i < 3000; i++ {
		b.Read(1)
	}

	assert.Equal(3000, b.Position())
	assert.Equal('x', b.Peek(0))

	remaining := b.Read(1000)
	assert.Equal(1000, len(remaining))
	assert.Equal(EOF, b.Peek(0))
}
