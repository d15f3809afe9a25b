package grammar

import (
	"testing"

	"github.com/cederberg/grammatica-sub000/ggerr"
	"github.com/cederberg/grammatica-sub000/token"
	"github.com/stretchr/testify/assert"
)

func Test_Grammar_IdenticalAlternatives_RejectedAsAmbiguous(t *testing.T) {
	assert := assert.New(t)

	g := New()
	_, err := g.NewTokenPattern(1, "A", token.String, "a")
	assert.NoError(err)

	p := g.NewProductionPattern(1, "P")
	p.AddAlternative(g.NewAlternative().AddTokenElement(1, 1, 1))
	p.AddAlternative(g.NewAlternative().AddTokenElement(1, 1, 1))
	assert.NoError(g.AddPattern(p))

	err = g.Prepare()
	assert.Error(err)
	ce, ok := err.(*ggerr.CreationError)
	assert.True(ok)
	assert.Equal(ggerr.InvalidProduction, ce.Kind())
	assert.Contains(err.Error(), "two identical alternatives")
}

func Test_Grammar_LeftRecursion_Rejected(t *testing.T) {
	assert := assert.New(t)

	g := New()
	_, err := g.NewTokenPattern(1, "X", token.String, "x")
	assert.NoError(err)
	_, err = g.NewTokenPattern(2, "Y", token.String, "y")
	assert.NoError(err)

	p := g.NewProductionPattern(1, "P")
	alt1 := g.NewAlternative()
	alt1.AddProductionElement(1, 1, 1)
	alt1.AddTokenElement(1, 1, 1)
	p.AddAlternative(alt1)
	p.AddAlternative(g.NewAlternative().AddTokenElement(2, 1, 1))
	assert.NoError(g.AddPattern(p))

	err = g.Prepare()
	assert.Error(err)
	ce, ok := err.(*ggerr.CreationError)
	assert.True(ok)
	assert.Equal(ggerr.InvalidProduction, ce.Kind())
	assert.Contains(err.Error(), "left recursive patterns are not allowed")
}

func Test_Grammar_DanglingReference_Rejected(t *testing.T) {
	assert := assert.New(t)

	g := New()
	p := g.NewProductionPattern(1, "P")
	p.AddAlternative(g.NewAlternative().AddTokenElement(99, 1, 1))
	assert.NoError(g.AddPattern(p))

	err := g.Prepare()
	assert.Error(err)
	assert.Contains(err.Error(), "unknown token pattern id 99")
}

func Test_Grammar_SimpleLL1_PreparesAndCachesLookAhead(t *testing.T) {
	assert := assert.New(t)

	g := New()
	_, err := g.NewTokenPattern(1, "A", token.String, "a")
	assert.NoError(err)
	_, err = g.NewTokenPattern(2, "B", token.String, "b")
	assert.NoError(err)

	p := g.NewProductionPattern(1, "P")
	p.AddAlternative(g.NewAlternative().AddTokenElement(1, 1, 1))
	p.AddAlternative(g.NewAlternative().AddTokenElement(2, 1, 1))
	assert.NoError(g.AddPattern(p))

	assert.NoError(g.Prepare())
	assert.True(g.Prepared())

	for _, alt := range p.Alternatives {
		assert.NotNil(alt.LookAhead())
		assert.Len(alt.LookAhead().Sequences(), 1)
	}
}

// Scenario G: S = A "x" | A "y"; A = "a" "a" — resolving which
// alternative to take requires looking past both of A's tokens, i.e.
// k=3, since the first two tokens ("a","a") are identical across both
// alternatives of S.
func Test_Grammar_KGrowth_ResolvesSharedPrefix(t *testing.T) {
	assert := assert.New(t)

	g := New()
	_, err := g.NewTokenPattern(1, "a", token.String, "a")
	assert.NoError(err)
	_, err = g.NewTokenPattern(2, "x", token.String, "x")
	assert.NoError(err)
	_, err = g.NewTokenPattern(3, "y", token.String, "y")
	assert.NoError(err)

	aProd := g.NewProductionPattern(2, "A")
	aAlt := g.NewAlternative()
	aAlt.AddTokenElement(1, 1, 1)
	aAlt.AddTokenElement(1, 1, 1)
	aProd.AddAlternative(aAlt)
	assert.NoError(g.AddPattern(aProd))

	sProd := g.NewProductionPattern(1, "S")
	alt1 := g.NewAlternative()
	alt1.AddProductionElement(2, 1, 1)
	alt1.AddTokenElement(2, 1, 1)
	alt2 := g.NewAlternative()
	alt2.AddProductionElement(2, 1, 1)
	alt2.AddTokenElement(3, 1, 1)
	sProd.AddAlternative(alt1)
	sProd.AddAlternative(alt2)
	assert.NoError(g.AddPattern(sProd))

	assert.NoError(g.Prepare())

	assert.True(sProd.Alternatives[0].LookAhead().MatchesPrefix([]int{1, 1, 2}))
	assert.False(sProd.Alternatives[0].LookAhead().MatchesPrefix([]int{1, 1, 3}))
	assert.True(sProd.Alternatives[1].LookAhead().MatchesPrefix([]int{1, 1, 3}))
}

// S = ("a")* "a": the starred element's first set ("a") always collides
// with what follows it in the same alternative (also "a"), and since the
// star marks its sequences Repetitive, no amount of k-growth can tell
// "take one more a" apart from "stop, the trailing a is next" — this must
// be rejected at Prepare() rather than silently greedily over-consuming
// at parse time.
func Test_Grammar_RepeatedElementVsFollow_RejectedAsAmbiguous(t *testing.T) {
	assert := assert.New(t)

	g := New()
	_, err := g.NewTokenPattern(1, "A", token.String, "a")
	assert.NoError(err)

	p := g.NewProductionPattern(1, "S")
	p.AddAlternative(g.NewAlternative().
		AddTokenElement(1, 0, Infinite).
		AddTokenElement(1, 1, 1))
	assert.NoError(g.AddPattern(p))

	err = g.Prepare()
	assert.Error(err)
	ce, ok := err.(*ggerr.CreationError)
	assert.True(ok)
	assert.Equal(ggerr.InherentAmbiguity, ce.Kind())
}

func Test_Grammar_DebugTable_ListsAlternativesAndLookAhead(t *testing.T) {
	assert := assert.New(t)

	g := New()
	_, err := g.NewTokenPattern(1, "A", token.String, "a")
	assert.NoError(err)
	_, err = g.NewTokenPattern(2, "B", token.String, "b")
	assert.NoError(err)

	p := g.NewProductionPattern(1, "P")
	p.AddAlternative(g.NewAlternative().AddTokenElement(1, 1, 1))
	p.AddAlternative(g.NewAlternative().AddTokenElement(2, 1, 1))
	assert.NoError(g.AddPattern(p))
	assert.NoError(g.Prepare())

	out := g.DebugTable()
	assert.Contains(out, "P")
	assert.Contains(out, "A")
	assert.Contains(out, "B")
}

func Test_Grammar_EmptyMatchingStart_Rejected(t *testing.T) {
	assert := assert.New(t)

	g := New()
	_, err := g.NewTokenPattern(1, "A", token.String, "a")
	assert.NoError(err)

	p := g.NewProductionPattern(1, "P")
	p.AddAlternative(g.NewAlternative().AddTokenElement(1, 0, 1))
	assert.NoError(g.AddPattern(p))

	err = g.Prepare()
	assert.Error(err)
	assert.Contains(err.Error(), "may match the empty string")
}
