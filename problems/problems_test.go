package problems_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvplan/problems"
	"github.com/katalvlaran/lvplan/strips"
)

// TestNames lists every embedded problem.
func TestNames(t *testing.T) {
	assert.Equal(t, []string{problems.AirCargoP1Name, problems.HaveCakeName}, problems.Names())
}

// TestLoad_All decodes and validates every embedded problem.
func TestLoad_All(t *testing.T) {
	for _, name := range problems.Names() {
		t.Run(name, func(t *testing.T) {
			p, err := problems.Load(name)
			require.NoError(t, err)
			assert.Equal(t, name, p.Name)
			assert.NoError(t, p.Validate())
		})
	}
}

// TestLoad_Unknown returns the sentinel.
func TestLoad_Unknown(t *testing.T) {
	_, err := problems.Load("blocks-world")
	assert.ErrorIs(t, err, problems.ErrUnknownProblem)
	assert.Panics(t, func() { problems.MustLoad("blocks-world") })
}

// TestAirCargoP1_Shape pins the vocabulary and action counts.
func TestAirCargoP1_Shape(t *testing.T) {
	p := problems.AirCargoP1()
	assert.Len(t, p.StateMap, 12)
	assert.Len(t, p.Actions, 20)
	assert.Equal(t, "TTTTFFFFFFFF", p.Initial)
	assert.Equal(t, []strips.Literal{strips.Pos("At(C1, JFK)"), strips.Pos("At(C2, SFO)")}, p.Goal)

	counts := map[string]int{}
	for _, a := range p.Actions {
		counts[a.Name]++
	}
	assert.Equal(t, map[string]int{"Load": 8, "Unload": 8, "Fly": 4}, counts)
}

// TestLoad_FreshCopies ensures callers cannot alias each other's problems.
func TestLoad_FreshCopies(t *testing.T) {
	a := problems.HaveCake()
	b := problems.HaveCake()
	a.Actions[0].Name = "Mutated"
	assert.Equal(t, "Eat", b.Actions[0].Name)
}
