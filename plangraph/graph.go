// SPDX-License-Identifier: MIT

package plangraph

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/lvplan/strips"
)

// tracerName is the instrumentation scope of the build span.
const tracerName = "github.com/katalvlaran/lvplan/plangraph"

// Noop action names. Every fluent F gets Noop_pos(F) and Noop_neg(F).
const (
	NoopPos = "Noop_pos"
	NoopNeg = "Noop_neg"
)

// Graph is a leveled planning graph built for one starting state.
//
// Literal level i precedes action level i, which precedes literal level i+1.
// Build returns a finished graph and read methods are safe for concurrent
// use. Mutexify writes relations of built nodes; calling it on nodes of g
// while other goroutines read g is a data race.
type Graph struct {
	id      uuid.UUID
	problem *strips.Problem
	state   strips.FluentState
	opts    Options

	candidates []*actionTemplate // domain actions followed by no-ops
	sLevels    []*LiteralLevel
	aLevels    []*ActionLevel
	leveled    bool
	stats      []LevelStats
}

// buildPhase is the state of the leveling loop.
type buildPhase int

const (
	phaseActions  buildPhase = iota // expand A_i from S_i and mark its mutexes
	phaseLiterals                   // expand S_{i+1} from A_i and mark its mutexes
	phaseCompare                    // leveled iff S_{i+1} == S_i
	phaseDone
)

// Build constructs the planning graph of problem rooted at state until two
// consecutive literal levels hold the same literals.
//
// state is a T/F string over problem.StateMap (see strips.DecodeState).
// Serial planning is on by default; use WithSerial(false) for parallel graphs.
//
// Errors:
//   - ErrNilProblem if problem is nil.
//   - strips.ErrStateLength / strips.ErrStateSymbol for a malformed state.
//   - ErrNotLeveled if WithMaxLevels is exceeded.
//   - ctx.Err() if the context from WithContext is cancelled.
//
// Complexity per level: O(|A|·|pre|) admission, O(|A|²·|S|²) action mutex
// tests in the worst case (LinkAllLiterals), O(|S|²·|A|²) literal mutex tests.
func Build(problem *strips.Problem, state string, opts ...Option) (*Graph, error) {
	// 1. Apply options
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// 2. Validate inputs
	if problem == nil {
		return nil, ErrNilProblem
	}
	fs, err := strips.DecodeState(state, problem.StateMap)
	if err != nil {
		return nil, fmt.Errorf("plangraph: decode state: %w", err)
	}

	// 3. Assemble the candidate action list once for the whole build
	g := &Graph{
		id:      uuid.New(),
		problem: problem,
		state:   fs,
		opts:    cfg,
	}
	all := append(append([]strips.Action(nil), problem.Actions...), NoopActions(problem.StateMap)...)
	g.candidates = make([]*actionTemplate, 0, len(all))
	for _, a := range all {
		g.candidates = append(g.candidates, newActionTemplate(a))
	}

	// 4. Level the graph under a build span
	ctx, span := cfg.Tracer.Start(cfg.Ctx, "plangraph.build",
		trace.WithAttributes(
			attribute.String("plangraph.build_id", g.id.String()),
			attribute.String("plangraph.problem", problem.Name),
			attribute.Bool("plangraph.serial", cfg.Serial),
			attribute.Int("plangraph.fluents", len(problem.StateMap)),
			attribute.Int("plangraph.candidates", len(g.candidates)),
		))
	defer span.End()

	started := time.Now()
	err = g.create(ctx, span)
	g.finish(span, time.Since(started), err)
	if err != nil {
		return nil, err
	}

	return g, nil
}

// NoopActions synthesises the persistence actions for a fluent vocabulary:
// Noop_pos(F) keeps F true and Noop_neg(F) keeps F false.
func NoopActions(stateMap []string) []strips.Action {
	out := make([]strips.Action, 0, 2*len(stateMap))
	for _, f := range stateMap {
		out = append(out,
			strips.Action{Name: NoopPos, Args: []string{f}, PrecondPos: []string{f}, EffectAdd: []string{f}},
			strips.Action{Name: NoopNeg, Args: []string{f}, PrecondNeg: []string{f}, EffectRem: []string{f}},
		)
	}

	return out
}

// create fills the level arenas. It refuses to run twice on one graph.
func (g *Graph) create(ctx context.Context, span trace.Span) error {
	if len(g.sLevels) != 0 || len(g.aLevels) != 0 {
		return ErrAlreadyBuilt
	}

	// S0 comes straight from the decoded state; no mutexes at level 0.
	s0 := newLiteralLevel(g, 0, len(g.state.Pos)+len(g.state.Neg))
	for _, f := range g.state.Pos {
		s0.add(strips.Pos(f))
	}
	for _, f := range g.state.Neg {
		s0.add(strips.Neg(f))
	}
	g.sLevels = append(g.sLevels, s0)

	var (
		level  int
		phase  = phaseActions
		sweepA mutexSweep
		sweepS mutexSweep
		err    error
	)
	for phase != phaseDone {
		switch phase {
		case phaseActions:
			if err = ctx.Err(); err != nil {
				return err
			}
			if g.opts.MaxLevels > 0 && level >= g.opts.MaxLevels {
				return fmt.Errorf("%w: %d action levels built", ErrNotLeveled, level)
			}
			g.addActionLevel(level)
			if sweepA, err = g.updateActionMutex(ctx, g.aLevels[level]); err != nil {
				return err
			}
			phase = phaseLiterals

		case phaseLiterals:
			g.addLiteralLevel(level + 1)
			if sweepS, err = g.updateLiteralMutex(ctx, g.sLevels[level+1]); err != nil {
				return err
			}
			phase = phaseCompare

		case phaseCompare:
			g.recordLevel(ctx, span, level, sweepA, sweepS)
			level++
			if g.sLevels[level].SameLiterals(g.sLevels[level-1]) {
				g.leveled = true
				phase = phaseDone
			} else {
				phase = phaseActions
			}
		}
	}

	return nil
}

// addActionLevel admits every candidate whose preconditions are all present
// in S_level and links it to its parent literals.
func (g *Graph) addActionLevel(level int) {
	lits := g.sLevels[level]
	al := newActionLevel(g, level, len(g.candidates))
	for _, tmpl := range g.candidates {
		if !lits.containsAll(tmpl.pre) {
			continue
		}
		n, ok := al.add(tmpl)
		if !ok {
			g.opts.Logger.Debug("duplicate action skipped",
				"build_id", g.id.String(), "level", level, "action", tmpl.key.Signature)

			continue
		}
		switch g.opts.Links {
		case LinkPreconditions:
			for _, lit := range tmpl.pre {
				s, _ := lits.Lookup(lit)
				n.parents.add(s.index)
				s.children.add(n.index)
			}
		default:
			for _, s := range lits.nodes {
				n.parents.add(s.index)
				s.children.add(n.index)
			}
		}
	}
	g.aLevels = append(g.aLevels, al)
}

// addLiteralLevel collects the effects of A_{level-1} into S_level. A literal
// produced by several actions is one node with every producer as a parent.
func (g *Graph) addLiteralLevel(level int) {
	acts := g.aLevels[level-1]
	ll := newLiteralLevel(g, level, g.sLevels[level-1].Len())
	for _, a := range acts.nodes {
		for _, lit := range a.tmpl.eff {
			s := ll.add(lit)
			s.parents.add(a.index)
			a.children.add(s.index)
		}
	}
	g.sLevels = append(g.sLevels, ll)
}

// recordLevel reports one finished expansion step to the log, span and observer.
func (g *Graph) recordLevel(ctx context.Context, span trace.Span, level int, sweepA, sweepS mutexSweep) {
	reasons := make(map[MutexReason]int, len(sweepA.reasons)+len(sweepS.reasons))
	for r, c := range sweepA.reasons {
		reasons[r] += c
	}
	for r, c := range sweepS.reasons {
		reasons[r] += c
	}
	st := LevelStats{
		Level:             level,
		Actions:           g.aLevels[level].Len(),
		Literals:          g.sLevels[level+1].Len(),
		ActionMutexPairs:  sweepA.pairs,
		LiteralMutexPairs: sweepS.pairs,
		Reasons:           reasons,
	}
	g.stats = append(g.stats, st)

	g.opts.Logger.DebugContext(ctx, "level built",
		"build_id", g.id.String(),
		"level", level,
		"actions", st.Actions,
		"literals", st.Literals,
		"action_mutex", st.ActionMutexPairs,
		"literal_mutex", st.LiteralMutexPairs,
	)
	span.AddEvent("level", trace.WithAttributes(
		attribute.Int("plangraph.level", level),
		attribute.Int("plangraph.actions", st.Actions),
		attribute.Int("plangraph.literals", st.Literals),
		attribute.Int("plangraph.action_mutex", st.ActionMutexPairs),
		attribute.Int("plangraph.literal_mutex", st.LiteralMutexPairs),
	))
	if g.opts.Observer != nil {
		g.opts.Observer.LevelBuilt(st)
	}
}

// finish closes out telemetry for a build.
func (g *Graph) finish(span trace.Span, elapsed time.Duration, err error) {
	span.SetAttributes(
		attribute.Int("plangraph.levels", len(g.sLevels)),
		attribute.Bool("plangraph.leveled", g.leveled),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		g.opts.Logger.Warn("planning graph build failed",
			"build_id", g.id.String(), "problem", g.problem.Name, "levels", len(g.sLevels), "error", err)
	} else {
		span.SetStatus(codes.Ok, "leveled")
		g.opts.Logger.Info("planning graph leveled",
			"build_id", g.id.String(), "problem", g.problem.Name, "levels", len(g.sLevels), "elapsed", elapsed)
	}
	if g.opts.Observer != nil {
		g.opts.Observer.BuildFinished(BuildStats{
			Problem:  g.problem.Name,
			Levels:   len(g.sLevels),
			Leveled:  g.leveled,
			Duration: elapsed,
			Err:      err,
		})
	}
}

// ID returns the unique identifier assigned to this build.
func (g *Graph) ID() uuid.UUID { return g.id }

// Problem returns the problem the graph was built for.
func (g *Graph) Problem() *strips.Problem { return g.problem }

// State returns the decoded starting state.
func (g *Graph) State() strips.FluentState { return g.state }

// Serial reports whether the graph was built with serial planning.
func (g *Graph) Serial() bool { return g.opts.Serial }

// Leveled reports whether the last two literal levels hold the same literals.
func (g *Graph) Leveled() bool { return g.leveled }

// Levels returns the number of literal levels S0..Sn.
func (g *Graph) Levels() int { return len(g.sLevels) }

// LiteralLevel returns S_i, or nil when i is out of range.
func (g *Graph) LiteralLevel(i int) *LiteralLevel {
	if i < 0 || i >= len(g.sLevels) {
		return nil
	}

	return g.sLevels[i]
}

// ActionLevel returns A_i, or nil when i is out of range.
func (g *Graph) ActionLevel(i int) *ActionLevel {
	if i < 0 || i >= len(g.aLevels) {
		return nil
	}

	return g.aLevels[i]
}

// LevelStats returns the statistics of every expansion step, in order.
func (g *Graph) LevelStats() []LevelStats {
	return append([]LevelStats(nil), g.stats...)
}

// owns reports whether n was built by g.
func (g *Graph) owns(n Node) bool {
	return n != nil && n.rel().owner == g
}

// Parents resolves the parents of n: actions of A_{k-1} for a literal at
// S_k, literals of S_k for an action at A_k. Nodes of another graph yield nil.
func (g *Graph) Parents(n Node) []Node {
	if !g.owns(n) {
		return nil
	}
	r := n.rel()
	var out []Node
	for _, i := range r.parents.sorted() {
		if r.kind == LiteralKind {
			out = append(out, g.aLevels[r.level-1].nodes[i])
		} else {
			out = append(out, g.sLevels[r.level].nodes[i])
		}
	}

	return out
}

// Children resolves the children of n: actions of A_k for a literal at S_k,
// literals of S_{k+1} for an action at A_k. Nodes of another graph yield nil.
func (g *Graph) Children(n Node) []Node {
	if !g.owns(n) {
		return nil
	}
	r := n.rel()
	var out []Node
	for _, i := range r.children.sorted() {
		if r.kind == LiteralKind {
			out = append(out, g.aLevels[r.level].nodes[i])
		} else {
			out = append(out, g.sLevels[r.level+1].nodes[i])
		}
	}

	return out
}

// Mutexes resolves the mutex siblings of n. Nodes of another graph yield nil.
func (g *Graph) Mutexes(n Node) []Node {
	if !g.owns(n) {
		return nil
	}
	r := n.rel()
	var out []Node
	for _, i := range r.mutex.sorted() {
		if r.kind == LiteralKind {
			out = append(out, g.sLevels[r.level].nodes[i])
		} else {
			out = append(out, g.aLevels[r.level].nodes[i])
		}
	}

	return out
}

// Dump writes every level with per-node relation counts to w.
func (g *Graph) Dump(w io.Writer) error {
	for i, s := range g.sLevels {
		if _, err := fmt.Fprintf(w, "S%d (%d literals, %d mutex pairs)\n", i, s.Len(), s.MutexPairs()); err != nil {
			return err
		}
		for _, n := range s.nodes {
			if _, err := fmt.Fprintf(w, "  %-40s %s\n", n.lit, n.counts()); err != nil {
				return err
			}
		}
		if i >= len(g.aLevels) {
			continue
		}
		a := g.aLevels[i]
		if _, err := fmt.Fprintf(w, "A%d (%d actions, %d mutex pairs)\n", i, a.Len(), a.MutexPairs()); err != nil {
			return err
		}
		for _, n := range a.nodes {
			if _, err := fmt.Fprintf(w, "  %-40s %s\n", n.tmpl.key.Signature, n.counts()); err != nil {
				return err
			}
		}
	}

	return nil
}
