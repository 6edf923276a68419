// SPDX-License-Identifier: MIT

// Package cli implements the lvplan command tree.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var version = "dev"

// SetVersion overrides the version reported by --version and `lvplan version`.
func SetVersion(v string) {
	if v == "" {
		return
	}
	version = v
}

// NewRootCmd assembles a fresh command tree. Flag state lives in the
// returned tree only.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:     "lvplan",
		Version: version,
		Short:   "Planning graph construction and level-based heuristics",
		Long: `lvplan levels a GraphPlan-style planning graph for a STRIPS problem
and reports its levels, mutex relations and level-sum heuristic.

Problems come from a YAML file (--problem) or a built-in fixture (--builtin).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.prepare(cmd)
		},
	}
	root.SetVersionTemplate("{{.Version}}\n")

	// Global flags
	pf := root.PersistentFlags()
	pf.BoolVar(&a.jsonOutput, "json", false, "Output in JSON format")
	pf.StringVar(&a.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	pf.StringVar(&a.metricsFile, "metrics-file", "", "Write Prometheus metrics of the run to this file")
	pf.BoolVar(&a.trace, "trace", false, "Print trace spans to stderr")
	pf.StringVar(&a.configFile, "config", "", "YAML file with default build settings")

	// Problem and build flags
	pf.StringVarP(&a.problemFile, "problem", "p", "", "Problem YAML file")
	pf.StringVarP(&a.builtin, "builtin", "b", "", "Built-in problem name (see `lvplan problems`)")
	pf.StringVarP(&a.state, "state", "s", "", "Starting state as T/F per fluent (default: problem initial state)")
	pf.BoolVar(&a.parallel, "parallel", false, "Build a parallel graph (disable serial planning)")
	pf.StringVar(&a.links, "links", linksAll, "Parent links of admitted actions (all, preconditions)")
	pf.StringVar(&a.support, "support", supportCounted, "Inconsistent-support test (counted, all-pairs)")
	pf.IntVar(&a.maxLevels, "max-levels", 0, "Fail if the graph has not leveled off after this many action levels (0 = unbounded)")
	pf.IntVar(&a.workers, "workers", 1, "Goroutines evaluating mutex pairs")

	root.AddGroup(
		&cobra.Group{ID: "graph", Title: "Planning Graph:"},
		&cobra.Group{ID: "cli-tooling", Title: "CLI & Tooling:"},
	)

	for _, c := range []*cobra.Command{
		newLevelsCmd(a),
		newMutexCmd(a),
		newHeuristicCmd(a),
		newProblemsCmd(a),
	} {
		c.GroupID = "graph"
		root.AddCommand(c)
	}

	root.AddCommand(&cobra.Command{
		Use:     "version",
		Short:   "Print the lvplan CLI version",
		Args:    cobra.NoArgs,
		GroupID: "cli-tooling",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version)

			return err
		},
	})
	root.SetHelpCommandGroupID("cli-tooling")

	return root
}

// Execute runs the command tree against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}
