// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvplan/plangraph"
)

// Values of mutex --kind.
const (
	kindActions  = "actions"
	kindLiterals = "literals"
)

type mutexPair struct {
	A       string   `json:"a"`
	B       string   `json:"b"`
	Reasons []string `json:"reasons"`
}

type mutexReport struct {
	Level int         `json:"level"`
	Kind  string      `json:"kind"`
	Pairs []mutexPair `json:"pairs"`
}

func newMutexCmd(a *app) *cobra.Command {
	var (
		level int
		kind  string
	)

	cmd := &cobra.Command{
		Use:   "mutex",
		Short: "List the mutex pairs of one level with the tests that fired",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if kind != kindActions && kind != kindLiterals {
				return fmt.Errorf("%w: --kind %q", ErrBadFlag, kind)
			}

			return a.withGraph(cmd, func(g *plangraph.Graph) error {
				rep, err := reportMutex(g, level, kind)
				if err != nil {
					return err
				}
				if a.jsonOutput {
					return outputJSON(cmd.OutOrStdout(), rep)
				}

				w := cmd.OutOrStdout()
				prefix := "S"
				if kind == kindActions {
					prefix = "A"
				}
				printSection(w, "%s%d  %d mutex pairs", prefix, rep.Level, len(rep.Pairs))
				for _, p := range rep.Pairs {
					_, _ = labelColor.Fprintf(w, "    %s", p.A)
					_, _ = dimColor.Fprint(w, " x ")
					_, _ = labelColor.Fprintf(w, "%s", p.B)
					_, _ = mutexColor.Fprintf(w, "  %v\n", p.Reasons)
				}

				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&level, "level", "l", 0, "Level index")
	cmd.Flags().StringVarP(&kind, "kind", "k", kindActions, "Level kind (actions, literals)")

	return cmd
}

func reportMutex(g *plangraph.Graph, level int, kind string) (mutexReport, error) {
	rep := mutexReport{Level: level, Kind: kind, Pairs: []mutexPair{}}

	if kind == kindActions {
		al := g.ActionLevel(level)
		if al == nil {
			return rep, fmt.Errorf("%w: --level %d, graph has %d action levels", ErrBadFlag, level, g.Levels()-1)
		}
		nodes := al.Nodes()
		for i := range nodes {
			for j := i + 1; j < len(nodes); j++ {
				if r := g.ActionMutexReasons(nodes[i], nodes[j]); r != 0 && nodes[i].IsMutex(nodes[j]) {
					rep.Pairs = append(rep.Pairs, mutexPair{A: nodes[i].Key().Signature, B: nodes[j].Key().Signature, Reasons: reasonNames(r)})
				}
			}
		}

		return rep, nil
	}

	ll := g.LiteralLevel(level)
	if ll == nil {
		return rep, fmt.Errorf("%w: --level %d, graph has %d literal levels", ErrBadFlag, level, g.Levels())
	}
	nodes := ll.Nodes()
	for i := range nodes {
		for j := i + 1; j < len(nodes); j++ {
			if r := g.LiteralMutexReasons(nodes[i], nodes[j]); r != 0 && nodes[i].IsMutex(nodes[j]) {
				rep.Pairs = append(rep.Pairs, mutexPair{A: nodes[i].Literal().String(), B: nodes[j].Literal().String(), Reasons: reasonNames(r)})
			}
		}
	}

	return rep, nil
}

func reasonNames(r plangraph.MutexReason) []string {
	var out []string
	for _, one := range r.Reasons() {
		out = append(out, one.String())
	}

	return out
}
