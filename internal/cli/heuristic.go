// SPDX-License-Identifier: MIT

package cli

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvplan/plangraph"
	"github.com/katalvlaran/lvplan/strips"
)

type goalCost struct {
	Goal  string `json:"goal"`
	Level int    `json:"level"`
	Found bool   `json:"found"`
}

type heuristicReport struct {
	Problem  string     `json:"problem"`
	LevelSum int        `json:"level_sum"`
	MaxLevel int        `json:"max_level"`
	Goals    []goalCost `json:"goals"`
}

func newHeuristicCmd(a *app) *cobra.Command {
	var (
		goals       []string
		matchSymbol bool
	)

	cmd := &cobra.Command{
		Use:   "heuristic",
		Short: "Estimate goal distance with the level-sum and max-level heuristics",
		Long: `Build the planning graph and report, for every goal literal, the first
literal level containing it, plus their sum (level-sum) and maximum.
Goals that never appear are listed as not found and add nothing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withGraph(cmd, func(g *plangraph.Graph) error {
				var hopts []plangraph.HeuristicOption
				if len(goals) > 0 {
					lits := make([]strips.Literal, 0, len(goals))
					for _, s := range goals {
						lits = append(lits, strips.ParseLiteral(s))
					}
					hopts = append(hopts, plangraph.WithGoals(lits...))
				}
				if matchSymbol {
					hopts = append(hopts, plangraph.WithGoalMatch(plangraph.MatchSymbol))
				}

				rep := reportHeuristic(g, goals, hopts)
				if a.jsonOutput {
					return outputJSON(cmd.OutOrStdout(), rep)
				}

				w := cmd.OutOrStdout()
				printSection(w, "%s", rep.Problem)
				for _, gc := range rep.Goals {
					if gc.Found {
						printLabelValue(w, gc.Goal, gc.Level)
					} else {
						_, _ = labelColor.Fprintf(w, "  %s: ", gc.Goal)
						_, _ = warnColor.Fprintln(w, "unreachable")
					}
				}
				printLabelValue(w, "level-sum", rep.LevelSum)
				printLabelValue(w, "max-level", rep.MaxLevel)

				return nil
			})
		},
	}
	cmd.Flags().StringArrayVarP(&goals, "goal", "g", nil, "Goal literal, ~ for negative (repeatable; default: problem goal)")
	cmd.Flags().BoolVar(&matchSymbol, "match-symbol", false, "Match goals by fluent symbol only, ignoring polarity")

	return cmd
}

func reportHeuristic(g *plangraph.Graph, goals []string, hopts []plangraph.HeuristicOption) heuristicReport {
	rep := heuristicReport{
		Problem:  g.Problem().Name,
		LevelSum: plangraph.LevelSum(g, hopts...),
		MaxLevel: plangraph.MaxLevel(g, hopts...),
	}

	lits := g.Problem().Goal
	if len(goals) > 0 {
		lits = nil
		for _, s := range goals {
			lits = append(lits, strips.ParseLiteral(s))
		}
	}
	for _, lit := range lits {
		lvl, ok := g.LevelCost(lit, hopts...)
		rep.Goals = append(rep.Goals, goalCost{Goal: lit.String(), Level: lvl, Found: ok})
	}

	return rep
}
