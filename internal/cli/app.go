// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/katalvlaran/lvplan/metrics"
	"github.com/katalvlaran/lvplan/plangraph"
	"github.com/katalvlaran/lvplan/problems"
	"github.com/katalvlaran/lvplan/strips"
)

// Flag values for --links and --support.
const (
	linksAll           = "all"
	linksPreconditions = "preconditions"
	supportCounted     = "counted"
	supportAllPairs    = "all-pairs"
)

var (
	// ErrNoProblem is returned when neither --problem nor --builtin is given.
	ErrNoProblem = errors.New("cli: no problem given (use --problem or --builtin)")
	// ErrBadFlag is returned for an unknown enumerated flag value.
	ErrBadFlag = errors.New("cli: invalid flag value")
)

// app carries the flag values of one command tree.
type app struct {
	jsonOutput  bool
	logLevel    string
	metricsFile string
	trace       bool
	configFile  string

	problemFile string
	builtin     string
	state       string
	parallel    bool
	links       string
	support     string
	maxLevels   int
	workers     int

	logger *slog.Logger
}

// prepare merges the config file under the command-line flags and sets up logging.
func (a *app) prepare(cmd *cobra.Command) error {
	if a.configFile != "" {
		cfg, err := loadConfig(a.configFile)
		if err != nil {
			return err
		}
		cfg.apply(a, cmd.Flags().Changed)
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(a.logLevel)); err != nil {
		return fmt.Errorf("%w: --log-level %q", ErrBadFlag, a.logLevel)
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl}))

	return nil
}

// loadProblem resolves --problem or --builtin; a file wins when both are set.
func (a *app) loadProblem() (*strips.Problem, error) {
	switch {
	case a.problemFile != "":
		return strips.LoadProblemFile(a.problemFile)
	case a.builtin != "":
		return problems.Load(a.builtin)
	default:
		return nil, ErrNoProblem
	}
}

// buildOptions translates flags into plangraph options.
func (a *app) buildOptions() ([]plangraph.Option, error) {
	opts := []plangraph.Option{
		plangraph.WithSerial(!a.parallel),
		plangraph.WithLogger(a.logger),
	}

	switch a.links {
	case linksAll:
		opts = append(opts, plangraph.WithParentLinks(plangraph.LinkAllLiterals))
	case linksPreconditions:
		opts = append(opts, plangraph.WithParentLinks(plangraph.LinkPreconditions))
	default:
		return nil, fmt.Errorf("%w: --links %q", ErrBadFlag, a.links)
	}

	switch a.support {
	case supportCounted:
		opts = append(opts, plangraph.WithSupportTest(plangraph.SupportCounted))
	case supportAllPairs:
		opts = append(opts, plangraph.WithSupportTest(plangraph.SupportAllPairs))
	default:
		return nil, fmt.Errorf("%w: --support %q", ErrBadFlag, a.support)
	}

	if a.maxLevels < 0 {
		return nil, fmt.Errorf("%w: --max-levels %d", ErrBadFlag, a.maxLevels)
	}
	if a.workers < 1 {
		return nil, fmt.Errorf("%w: --workers %d", ErrBadFlag, a.workers)
	}
	opts = append(opts, plangraph.WithMaxLevels(a.maxLevels), plangraph.WithWorkers(a.workers))

	return opts, nil
}

// withGraph builds the graph for the selected problem under the requested
// telemetry, runs fn on it and flushes spans and metrics afterwards.
func (a *app) withGraph(cmd *cobra.Command, fn func(*plangraph.Graph) error) (err error) {
	// 1. Resolve inputs
	p, err := a.loadProblem()
	if err != nil {
		return err
	}
	opts, err := a.buildOptions()
	if err != nil {
		return err
	}
	state := a.state
	if state == "" {
		state = p.Initial
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	opts = append(opts, plangraph.WithContext(ctx))

	// 2. Telemetry
	if a.trace {
		tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(newSpanPrinter(cmd.ErrOrStderr())))
		defer func() {
			err = errors.Join(err, tp.Shutdown(context.Background()))
		}()
		opts = append(opts, plangraph.WithTracer(tp.Tracer("github.com/katalvlaran/lvplan/internal/cli")))
	}
	if a.metricsFile != "" {
		reg := prometheus.NewRegistry()
		col, cerr := metrics.New(reg)
		if cerr != nil {
			return cerr
		}
		opts = append(opts, plangraph.WithObserver(col))
		defer func() {
			if werr := prometheus.WriteToTextfile(a.metricsFile, reg); werr != nil {
				err = errors.Join(err, fmt.Errorf("cli: write metrics: %w", werr))
			}
		}()
	}

	// 3. Build and hand over
	g, err := plangraph.Build(p, state, opts...)
	if err != nil {
		return err
	}

	return fn(g)
}
