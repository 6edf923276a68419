package strips_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvplan/strips"
)

const cakeYAML = `
name: have-cake
fluents: [Have(Cake), Eaten(Cake)]
initial: TF
goal: [Have(Cake), Eaten(Cake)]
actions:
  - name: Eat
    args: [Cake]
    precond_pos: [Have(Cake)]
    effect_add: [Eaten(Cake)]
    effect_rem: [Have(Cake)]
  - name: Bake
    args: [Cake]
    precond_neg: [Have(Cake)]
    effect_add: [Have(Cake)]
`

// TestLoadProblem_HaveCake decodes the canonical two-action problem.
func TestLoadProblem_HaveCake(t *testing.T) {
	p, err := strips.LoadProblem(strings.NewReader(cakeYAML))
	require.NoError(t, err)
	assert.Equal(t, "have-cake", p.Name)
	assert.Equal(t, cakeMap, p.StateMap)
	require.Len(t, p.Actions, 2)
	assert.Equal(t, "Eat(Cake)", p.Actions[0].Signature())
	assert.Equal(t, []string{"Have(Cake)"}, p.Actions[1].PrecondNeg)
	assert.Equal(t, []strips.Literal{strips.Pos("Have(Cake)"), strips.Pos("Eaten(Cake)")}, p.Goal)

	fs, err := p.InitialState()
	require.NoError(t, err)
	assert.Equal(t, []string{"Have(Cake)"}, fs.Pos)
}

// TestLoadProblem_Rejects covers the validation classes.
func TestLoadProblem_Rejects(t *testing.T) {
	cases := map[string]string{
		"empty":          ``,
		"unknown key":    "name: x\nfluents: [P]\nbogus: 1\n",
		"no fluents":     "name: x\n",
		"dup fluent":     "fluents: [P, P]\n",
		"bad initial":    "fluents: [P]\ninitial: TT\n",
		"unknown goal":   "fluents: [P]\ngoal: [Q]\n",
		"unknown fluent": "fluents: [P]\nactions:\n  - name: A\n    effect_add: [Q]\n",
		"nameless":       "fluents: [P]\nactions:\n  - effect_add: [P]\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := strips.LoadProblem(strings.NewReader(doc))
			assert.ErrorIs(t, err, strips.ErrInvalidProblem)
		})
	}
}

// TestLoadProblemFile_RoundTrip writes a problem with MarshalYAML and reads it back.
func TestLoadProblemFile_RoundTrip(t *testing.T) {
	p, err := strips.LoadProblem(strings.NewReader(cakeYAML))
	require.NoError(t, err)
	p.Goal = append(p.Goal, strips.Neg("Eaten(Cake)"))

	raw, err := strips.MarshalYAML(p)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "cake.yaml")
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	back, err := strips.LoadProblemFile(path)
	require.NoError(t, err)
	assert.Equal(t, p, back)

	_, err = strips.LoadProblemFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

// TestProblem_GoalTest checks goal satisfaction including negative goals.
func TestProblem_GoalTest(t *testing.T) {
	p := &strips.Problem{
		StateMap: cakeMap,
		Goal:     []strips.Literal{strips.Pos("Have(Cake)"), strips.Neg("Eaten(Cake)")},
	}
	ok, err := p.GoalTest("TF")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.GoalTest("TT")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = p.GoalTest("T")
	assert.ErrorIs(t, err, strips.ErrStateLength)
}

// TestValidate_Nil guards the nil receiver.
func TestValidate_Nil(t *testing.T) {
	var p *strips.Problem
	assert.ErrorIs(t, p.Validate(), strips.ErrInvalidProblem)
}
