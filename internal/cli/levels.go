// SPDX-License-Identifier: MIT

package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvplan/plangraph"
	"github.com/katalvlaran/lvplan/strips"
)

type nodeReport struct {
	Name     string `json:"name"`
	Parents  int    `json:"parents"`
	Children int    `json:"children"`
	Mutex    int    `json:"mutex"`
}

type levelReport struct {
	Index       int          `json:"index"`
	Literals    []nodeReport `json:"literals"`
	LiteralPair int          `json:"literal_mutex_pairs"`
	Actions     []nodeReport `json:"actions,omitempty"`
	ActionPairs int          `json:"action_mutex_pairs,omitempty"`
}

type graphReport struct {
	ID      string        `json:"id"`
	Problem string        `json:"problem"`
	State   string        `json:"state"`
	Serial  bool          `json:"serial"`
	Leveled bool          `json:"leveled"`
	Levels  []levelReport `json:"levels"`
}

func newLevelsCmd(a *app) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "levels",
		Short: "Build the planning graph and print every level",
		Long: `Build the planning graph from the starting state until two consecutive
literal levels hold the same literals, then print each literal level S_i and
action level A_i with per-node parent, child and mutex counts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withGraph(cmd, func(g *plangraph.Graph) error {
				rep := reportGraph(g)
				if a.jsonOutput {
					return outputJSON(cmd.OutOrStdout(), rep)
				}
				printGraph(cmd.OutOrStdout(), rep, quiet)

				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Print level headers only")

	return cmd
}

func reportGraph(g *plangraph.Graph) graphReport {
	p := g.Problem()
	rep := graphReport{
		ID:      g.ID().String(),
		Problem: p.Name,
		Serial:  g.Serial(),
		Leveled: g.Leveled(),
	}
	rep.State = strips.EncodeState(g.State(), p.StateMap)

	for i := 0; i < g.Levels(); i++ {
		ll := g.LiteralLevel(i)
		lr := levelReport{Index: i, LiteralPair: ll.MutexPairs()}
		for _, n := range ll.Nodes() {
			lr.Literals = append(lr.Literals, nodeReport{
				Name:     n.Literal().String(),
				Parents:  len(n.ParentIndices()),
				Children: len(n.ChildIndices()),
				Mutex:    len(n.MutexIndices()),
			})
		}
		if al := g.ActionLevel(i); al != nil {
			lr.ActionPairs = al.MutexPairs()
			for _, n := range al.Nodes() {
				lr.Actions = append(lr.Actions, nodeReport{
					Name:     n.Key().Signature,
					Parents:  len(n.ParentIndices()),
					Children: len(n.ChildIndices()),
					Mutex:    len(n.MutexIndices()),
				})
			}
		}
		rep.Levels = append(rep.Levels, lr)
	}

	return rep
}

func printGraph(w io.Writer, rep graphReport, quiet bool) {
	printSection(w, "%s from %s", rep.Problem, rep.State)
	printLabelValue(w, "build", rep.ID)
	printLabelValue(w, "serial", rep.Serial)
	if rep.Leveled {
		_, _ = okColor.Fprintf(w, "  leveled off after %d literal levels\n", len(rep.Levels))
	} else {
		_, _ = warnColor.Fprintf(w, "  not leveled after %d literal levels\n", len(rep.Levels))
	}

	for _, lr := range rep.Levels {
		printSection(w, "S%d  %d literals, %d mutex pairs", lr.Index, len(lr.Literals), lr.LiteralPair)
		if !quiet {
			printNodes(w, lr.Literals)
		}
		if lr.Actions == nil {
			continue
		}
		printSection(w, "A%d  %d actions, %d mutex pairs", lr.Index, len(lr.Actions), lr.ActionPairs)
		if !quiet {
			printNodes(w, lr.Actions)
		}
	}
}

func printNodes(w io.Writer, nodes []nodeReport) {
	for _, n := range nodes {
		_, _ = labelColor.Fprintf(w, "    %-36s", n.Name)
		_, _ = dimColor.Fprintf(w, " parents=%d children=%d ", n.Parents, n.Children)
		if n.Mutex > 0 {
			_, _ = mutexColor.Fprintf(w, "mutex=%d\n", n.Mutex)
		} else {
			_, _ = dimColor.Fprintf(w, "mutex=%d\n", n.Mutex)
		}
	}
}
