// SPDX-License-Identifier: MIT

package cli

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvplan/problems"
)

type problemSummary struct {
	Name    string   `json:"name"`
	Fluents int      `json:"fluents"`
	Actions int      `json:"actions"`
	Initial string   `json:"initial"`
	Goal    []string `json:"goal"`
}

func newProblemsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "problems",
		Short: "List the built-in problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var out []problemSummary
			for _, name := range problems.Names() {
				p, err := problems.Load(name)
				if err != nil {
					return err
				}
				s := problemSummary{
					Name:    p.Name,
					Fluents: len(p.StateMap),
					Actions: len(p.Actions),
					Initial: p.Initial,
				}
				for _, g := range p.Goal {
					s.Goal = append(s.Goal, g.String())
				}
				out = append(out, s)
			}

			if a.jsonOutput {
				return outputJSON(cmd.OutOrStdout(), out)
			}
			w := cmd.OutOrStdout()
			for _, s := range out {
				printSection(w, "%s", s.Name)
				printLabelValue(w, "fluents", s.Fluents)
				printLabelValue(w, "actions", s.Actions)
				printLabelValue(w, "initial", s.Initial)
				printLabelValue(w, "goal", s.Goal)
			}

			return nil
		},
	}
}
