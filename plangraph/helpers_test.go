package plangraph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvplan/plangraph"
	"github.com/katalvlaran/lvplan/strips"
)

// chainProblem: B makes Q from P, A needs P and Q to make R.
func chainProblem() *strips.Problem {
	return &strips.Problem{
		Name:     "chain",
		StateMap: []string{"P", "Q", "R"},
		Initial:  "TFF",
		Actions: []strips.Action{
			{Name: "A", PrecondPos: []string{"P", "Q"}, EffectAdd: []string{"R"}},
			{Name: "B", PrecondPos: []string{"P"}, EffectAdd: []string{"Q"}},
		},
		Goal: []strips.Literal{strips.Pos("R")},
	}
}

// conflictProblem: Set and Clear both need Y; Set adds X, Clear deletes X,
// Drop deletes Y.
func conflictProblem() *strips.Problem {
	return &strips.Problem{
		Name:     "conflict",
		StateMap: []string{"X", "Y"},
		Initial:  "FT",
		Actions: []strips.Action{
			{Name: "Set", PrecondPos: []string{"Y"}, EffectAdd: []string{"X"}},
			{Name: "Clear", PrecondPos: []string{"Y"}, EffectRem: []string{"X"}},
			{Name: "Drop", PrecondPos: []string{"Y"}, EffectRem: []string{"Y"}},
		},
	}
}

// cascadeProblem: Make produces X from nothing; UseX needs X, UseNotX needs ~X.
func cascadeProblem() *strips.Problem {
	return &strips.Problem{
		Name:     "cascade",
		StateMap: []string{"X", "Z", "W"},
		Initial:  "FFF",
		Actions: []strips.Action{
			{Name: "Make", EffectAdd: []string{"X"}},
			{Name: "UseX", PrecondPos: []string{"X"}, EffectAdd: []string{"Z"}},
			{Name: "UseNotX", PrecondNeg: []string{"X"}, EffectAdd: []string{"W"}},
		},
	}
}

// supportProblem: two producers for X and for Y, none for their negations.
func supportProblem() *strips.Problem {
	return &strips.Problem{
		Name:     "support",
		StateMap: []string{"X", "Y"},
		Initial:  "FF",
		Actions: []strips.Action{
			{Name: "MX1", EffectAdd: []string{"X"}},
			{Name: "MX2", EffectAdd: []string{"X"}},
			{Name: "MY1", EffectAdd: []string{"Y"}},
			{Name: "MY2", EffectAdd: []string{"Y"}},
		},
	}
}

func mustBuild(t testing.TB, p *strips.Problem, state string, opts ...plangraph.Option) *plangraph.Graph {
	t.Helper()
	g, err := plangraph.Build(p, state, opts...)
	require.NoError(t, err)
	require.NotNil(t, g)

	return g
}

func action(t testing.TB, g *plangraph.Graph, level int, sig string) *plangraph.ActionNode {
	t.Helper()
	al := g.ActionLevel(level)
	require.NotNil(t, al, "action level %d", level)
	n, ok := al.Find(sig)
	require.True(t, ok, "action %s missing from A%d", sig, level)

	return n
}

func literal(t testing.TB, g *plangraph.Graph, level int, lit strips.Literal) *plangraph.LiteralNode {
	t.Helper()
	ll := g.LiteralLevel(level)
	require.NotNil(t, ll, "literal level %d", level)
	n, ok := ll.Lookup(lit)
	require.True(t, ok, "literal %s missing from S%d", lit, level)

	return n
}

func signatures(nodes []plangraph.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.(*plangraph.ActionNode).Key().Signature)
	}

	return out
}

// stateAt renders the i-th state over n fluents, bit k of i = fluent k.
func stateAt(i, n int) string {
	b := make([]byte, n)
	for k := 0; k < n; k++ {
		if i&(1<<k) != 0 {
			b[k] = 'T'
		} else {
			b[k] = 'F'
		}
	}

	return string(b)
}
