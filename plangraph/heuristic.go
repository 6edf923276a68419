// SPDX-License-Identifier: MIT

package plangraph

import (
	"fmt"

	"github.com/katalvlaran/lvplan/strips"
)

// GoalMatch selects how a goal is matched against level literals.
type GoalMatch int

const (
	// MatchLiteral requires symbol and polarity to agree.
	MatchLiteral GoalMatch = iota
	// MatchSymbol compares symbols only, so a negative goal is met by a
	// positive literal of the same fluent and vice versa.
	MatchSymbol
)

// HeuristicOption configures LevelSum, MaxLevel and LevelCost.
type HeuristicOption func(*heuristicOptions)

type heuristicOptions struct {
	match    GoalMatch
	goals    []strips.Literal
	goalsSet bool // false: use the problem goal
}

// WithGoalMatch selects the goal matching mode. Panics on an unknown mode.
func WithGoalMatch(m GoalMatch) HeuristicOption {
	if m != MatchLiteral && m != MatchSymbol {
		panic(fmt.Sprintf("plangraph: WithGoalMatch(%d): unknown mode", int(m)))
	}

	return func(o *heuristicOptions) {
		o.match = m
	}
}

// WithGoals replaces the problem goal for one heuristic evaluation.
// An empty list is an empty goal, not the problem goal.
func WithGoals(goals ...strips.Literal) HeuristicOption {
	return func(o *heuristicOptions) {
		o.goals = append([]strips.Literal(nil), goals...)
		o.goalsSet = true
	}
}

func (g *Graph) heuristicConfig(opts []HeuristicOption) heuristicOptions {
	cfg := heuristicOptions{match: MatchLiteral}
	for _, opt := range opts {
		opt(&cfg)
	}
	if !cfg.goalsSet && g.problem != nil {
		cfg.goals = g.problem.Goal
	}

	return cfg
}

// LevelCost returns the index of the first literal level containing goal
// and whether any level contains it.
// Complexity: O(L) map lookups for MatchLiteral, O(L·|S|) for MatchSymbol.
func (g *Graph) LevelCost(goal strips.Literal, opts ...HeuristicOption) (int, bool) {
	cfg := g.heuristicConfig(opts)

	return g.firstLevel(goal, cfg.match)
}

func (g *Graph) firstLevel(goal strips.Literal, match GoalMatch) (int, bool) {
	for i, s := range g.sLevels {
		if match == MatchLiteral {
			if s.Contains(goal) {
				return i, true
			}

			continue
		}
		if s.Contains(goal) || s.Contains(goal.Negate()) {
			return i, true
		}
	}

	return 0, false
}

// goalLevels returns the first level of every distinct goal that appears
// in the graph. Goals that never appear are left out.
func (g *Graph) goalLevels(cfg heuristicOptions) []int {
	seen := make(map[strips.Literal]struct{}, len(cfg.goals))
	levels := make([]int, 0, len(cfg.goals))
	for _, goal := range cfg.goals {
		if _, dup := seen[goal]; dup {
			continue
		}
		seen[goal] = struct{}{}
		if lvl, ok := g.firstLevel(goal, cfg.match); ok {
			levels = append(levels, lvl)
		}
	}

	return levels
}

// LevelSum is the level-sum heuristic: the sum over distinct goals of the
// first literal level in which each goal appears. It assumes goals are
// achieved independently. Unreachable goals add nothing, so the estimate
// undercounts when a goal never appears. A nil graph yields 0.
//
// Goals match on symbol and polarity by default. The classic GraphPlan
// level-sum scan ignores polarity, so a negative goal counts as met wherever
// its fluent appears at all; WithGoalMatch(MatchSymbol) selects that
// behavior and gives different numbers whenever a goal's negation is
// present earlier than the goal itself.
//
// Complexity: O(|goals|·L) for MatchLiteral.
func LevelSum(g *Graph, opts ...HeuristicOption) int {
	if g == nil {
		return 0
	}
	sum := 0
	for _, lvl := range g.goalLevels(g.heuristicConfig(opts)) {
		sum += lvl
	}

	return sum
}

// MaxLevel is the max-level heuristic: the largest first level over all
// goals that appear. Unreachable goals are ignored as in LevelSum.
func MaxLevel(g *Graph, opts ...HeuristicOption) int {
	if g == nil {
		return 0
	}
	best := 0
	for _, lvl := range g.goalLevels(g.heuristicConfig(opts)) {
		best = max(best, lvl)
	}

	return best
}

// LevelSum is shorthand for LevelSum(g, opts...).
func (g *Graph) LevelSum(opts ...HeuristicOption) int { return LevelSum(g, opts...) }
