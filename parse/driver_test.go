package parse

import (
	"strings"
	"testing"

	"github.com/cederberg/grammatica-sub000/buffer"
	"github.com/cederberg/grammatica-sub000/grammar"
	"github.com/cederberg/grammatica-sub000/lex"
	"github.com/cederberg/grammatica-sub000/token"
	"github.com/cederberg/grammatica-sub000/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Arithmetic seed grammar (spec's Scenario A):
//
//	Expr   = Term (ADD Term)*
//	Term   = Factor (MUL Factor)*
//	Factor = NUM | LP Expr RP
const (
	tNUM = 1
	tADD = 2
	tMUL = 3
	tLP  = 4
	tRP  = 5
	tWS  = 6

	pExpr     = 10
	pAddGroup = 11 // synthetic: ADD Term
	pTerm     = 12
	pMulGroup = 13 // synthetic: MUL Factor
	pFactor   = 14
)

func arithGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	g := grammar.New()

	_, err := g.NewTokenPattern(tNUM, "NUM", token.Regexp, "[0-9]+")
	require.NoError(t, err)
	_, err = g.NewTokenPattern(tADD, "ADD", token.String, "+")
	require.NoError(t, err)
	_, err = g.NewTokenPattern(tMUL, "MUL", token.String, "*")
	require.NoError(t, err)
	_, err = g.NewTokenPattern(tLP, "LP", token.String, "(")
	require.NoError(t, err)
	_, err = g.NewTokenPattern(tRP, "RP", token.String, ")")
	require.NoError(t, err)
	ws, err := g.NewTokenPattern(tWS, "WS", token.Regexp, "[ \t\n\r]+")
	require.NoError(t, err)
	ws.Ignore("whitespace")

	expr := g.NewProductionPattern(pExpr, "Expr")
	expr.AddAlternative(g.NewAlternative().
		AddProductionElement(pTerm, 1, 1).
		AddProductionElement(pAddGroup, 0, grammar.Infinite))
	require.NoError(t, g.AddPattern(expr))

	addGroup := g.NewProductionPattern(pAddGroup, "AddGroup")
	addGroup.SetSynthetic(true)
	addGroup.AddAlternative(g.NewAlternative().
		AddTokenElement(tADD, 1, 1).
		AddProductionElement(pTerm, 1, 1))
	require.NoError(t, g.AddPattern(addGroup))

	term := g.NewProductionPattern(pTerm, "Term")
	term.AddAlternative(g.NewAlternative().
		AddProductionElement(pFactor, 1, 1).
		AddProductionElement(pMulGroup, 0, grammar.Infinite))
	require.NoError(t, g.AddPattern(term))

	mulGroup := g.NewProductionPattern(pMulGroup, "MulGroup")
	mulGroup.SetSynthetic(true)
	mulGroup.AddAlternative(g.NewAlternative().
		AddTokenElement(tMUL, 1, 1).
		AddProductionElement(pFactor, 1, 1))
	require.NoError(t, g.AddPattern(mulGroup))

	factor := g.NewProductionPattern(pFactor, "Factor")
	factor.AddAlternative(g.NewAlternative().AddTokenElement(tNUM, 1, 1))
	factor.AddAlternative(g.NewAlternative().
		AddTokenElement(tLP, 1, 1).
		AddProductionElement(pExpr, 1, 1).
		AddTokenElement(tRP, 1, 1))
	require.NoError(t, g.AddPattern(factor))

	require.NoError(t, g.Prepare())
	return g
}

func tokenizerFor(t *testing.T, g *grammar.Grammar, src string) *lex.Tokenizer {
	t.Helper()
	tz, err := lex.New(g.TokenPatterns())
	require.NoError(t, err)
	tz.Reset(buffer.New(strings.NewReader(src)))
	return tz
}

func Test_Driver_ArithmeticTreeShape(t *testing.T) {
	g := arithGrammar(t)
	d := NewDriver(g)

	node, err := d.Parse(tokenizerFor(t, g, "1 + 2 * 3"))
	require.NoError(t, err)
	require.NotNil(t, node)

	assert.Equal(t, "Expr", node.Name)
	assert.False(t, node.Terminal)
	// Expr: Term, ADD, Term (AddGroup flattened) -> 3 children
	require.Len(t, node.Children, 3)
	assert.Equal(t, "Term", node.Children[0].Name)
	assert.True(t, node.Children[1].Terminal)
	assert.Equal(t, "ADD", node.Children[1].Name)
	assert.Equal(t, "Term", node.Children[2].Name)

	// Second Term is "2 * 3": Factor, MUL, Factor (MulGroup flattened)
	secondTerm := node.Children[2]
	require.Len(t, secondTerm.Children, 3)
	assert.Equal(t, "Factor", secondTerm.Children[0].Name)
	assert.True(t, secondTerm.Children[1].Terminal)
	assert.Equal(t, "MUL", secondTerm.Children[1].Name)
	assert.Equal(t, "Factor", secondTerm.Children[2].Name)
}

func Test_Driver_ParenthesizedExpression(t *testing.T) {
	g := arithGrammar(t)
	d := NewDriver(g)

	node, err := d.Parse(tokenizerFor(t, g, "(1 + 2) * 3"))
	require.NoError(t, err)
	require.NotNil(t, node)

	// Term: Factor, MUL, Factor (MulGroup flattened)
	require.Len(t, node.Children, 1) // Expr -> single Term
	term := node.Children[0]
	require.Len(t, term.Children, 3)
	firstFactor := term.Children[0]
	require.Len(t, firstFactor.Children, 3) // LP Expr RP
	assert.Equal(t, "LP", firstFactor.Children[0].Name)
	assert.Equal(t, "Expr", firstFactor.Children[1].Name)
	assert.Equal(t, "RP", firstFactor.Children[2].Name)
}

func Test_Driver_UnexpectedToken_RecoversAndLogsOnce(t *testing.T) {
	g := arithGrammar(t)
	d := NewDriver(g)

	_, err := d.Parse(tokenizerFor(t, g, "1 + + 2"))
	require.Error(t, err)

	log, ok := err.(*ParserLog)
	require.True(t, ok, "expected a *ParserLog, got %T: %v", err, err)
	assert.Len(t, log.Entries(), 1, "exactly one error should be logged despite retries during cooldown")
}

func Test_Driver_WellFormedInputParsesCleanly(t *testing.T) {
	g := arithGrammar(t)
	d := NewDriver(g)

	node, err := d.Parse(tokenizerFor(t, g, "1 + 2"))
	require.NoError(t, err)
	assert.Equal(t, "Expr", node.Name)
	require.Len(t, node.Children, 3)
}

type recordingAnalyzer struct {
	entered []string
}

func (r *recordingAnalyzer) Enter(node *tree.Node) error {
	r.entered = append(r.entered, node.Name)
	return nil
}

func (r *recordingAnalyzer) Exit(node *tree.Node) (*tree.Node, error) { return node, nil }

func (r *recordingAnalyzer) Child(parent, child *tree.Node) error { return nil }

func Test_Driver_AnalyzerSuppressedDuringRecoveryCooldown(t *testing.T) {
	g := arithGrammar(t)
	d := NewDriver(g)
	rec := &recordingAnalyzer{}
	d.SetAnalyzer(rec)

	_, err := d.Parse(tokenizerFor(t, g, "1 + + 2"))
	require.Error(t, err)

	// AddGroup is synthetic and never calls Enter regardless; Term/Factor
	// nodes entered while the cooldown counter is still positive must be
	// absent from the recording.
	for _, name := range rec.entered {
		assert.NotEqual(t, "AddGroup", name)
	}
	assert.Contains(t, rec.entered, "Expr")
	// Only the nodes entered before the stray "+" are recorded; the Term
	// and Factor for "2" are parsed while the cooldown is still positive.
	assert.Equal(t, []string{"Expr", "Term", "Factor"}, rec.entered)
}
