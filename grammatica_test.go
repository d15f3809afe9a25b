package grammatica

import (
	"strings"
	"testing"

	"github.com/cederberg/grammatica-sub000/grammar"
	"github.com/cederberg/grammatica-sub000/parse"
	"github.com/cederberg/grammatica-sub000/token"
	"github.com/stretchr/testify/require"
)

// buildGreeting is the spec's simplest seed grammar: S = "hello" "world".
func buildGreeting(t *testing.T) *grammar.Grammar {
	t.Helper()
	g := grammar.New()
	_, err := g.NewTokenPattern(1, "HELLO", token.String, "hello")
	require.NoError(t, err)
	_, err = g.NewTokenPattern(2, "WORLD", token.String, "world")
	require.NoError(t, err)
	ws, err := g.NewTokenPattern(3, "WS", token.Regexp, "[ ]+")
	require.NoError(t, err)
	ws.Ignore("whitespace")

	s := g.NewProductionPattern(10, "S")
	s.AddAlternative(g.NewAlternative().AddTokenElement(1, 1, 1).AddTokenElement(2, 1, 1))
	require.NoError(t, g.AddPattern(s))
	return g
}

func Test_Parser_ParsesSimpleGreeting(t *testing.T) {
	g := buildGreeting(t)
	p, err := New(g)
	require.NoError(t, err)

	p.Reset(strings.NewReader("hello world"))
	node, err := p.Parse()
	require.NoError(t, err)
	require.Equal(t, "S", node.Name)
	require.Len(t, node.Children, 2)
	require.Equal(t, "HELLO", node.Children[0].Name)
	require.Equal(t, "WORLD", node.Children[1].Name)
}

func Test_Parser_ResetClearsStateBetweenParses(t *testing.T) {
	g := buildGreeting(t)
	p, err := New(g)
	require.NoError(t, err)

	p.Reset(strings.NewReader("hello world"))
	_, err = p.Parse()
	require.NoError(t, err)

	// A malformed input (an extra "hello" where "world" belongs) must not
	// see any leftover log entries or cooldown state from the previous,
	// successful parse.
	p.Reset(strings.NewReader("hello hello"))
	_, err = p.Parse()
	require.Error(t, err)
	log, ok := err.(*parse.ParserLog)
	require.True(t, ok, "expected a *parse.ParserLog, got %T: %v", err, err)
	require.Len(t, log.Entries(), 1)
}
