// SPDX-License-Identifier: MIT

// Package plangraph defines the options, sentinel errors and diagnostic
// types shared by planning-graph construction and heuristic extraction.
package plangraph

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Sentinel errors for planning-graph construction.
var (
	// ErrNilProblem is returned when Build receives a nil problem.
	ErrNilProblem = errors.New("plangraph: problem is nil")

	// ErrAlreadyBuilt is returned when construction runs on a graph that
	// already holds levels. Build a new graph for every state instead.
	ErrAlreadyBuilt = errors.New("plangraph: graph already built; construct a new graph for each state")

	// ErrHeterogeneousMutex is returned when a mutex is requested between a
	// literal node and an action node.
	ErrHeterogeneousMutex = errors.New("plangraph: mutex between nodes of different kinds")

	// ErrNotSiblings is returned when a mutex is requested between nodes of
	// different levels, or between a node and itself.
	ErrNotSiblings = errors.New("plangraph: mutex between non-sibling nodes")

	// ErrNotLeveled is returned when the graph did not level off within the
	// bound set by WithMaxLevels.
	ErrNotLeveled = errors.New("plangraph: graph did not level off")
)

// NodeKind distinguishes literal (S-level) nodes from action (A-level) nodes.
type NodeKind int

const (
	// LiteralKind marks a node of a literal level.
	LiteralKind NodeKind = iota
	// ActionKind marks a node of an action level.
	ActionKind
)

// String implements fmt.Stringer.
func (k NodeKind) String() string {
	switch k {
	case LiteralKind:
		return "literal"
	case ActionKind:
		return "action"
	default:
		return fmt.Sprintf("NodeKind(%d)", int(k))
	}
}

// MutexReason is a bit set naming the tests that made two siblings mutex.
type MutexReason uint8

const (
	// ReasonSerial: serial planning and neither action is a persistence action.
	ReasonSerial MutexReason = 1 << iota
	// ReasonInconsistentEffects: one action adds what the other deletes.
	ReasonInconsistentEffects
	// ReasonInterference: one action deletes a positive precondition of the other.
	ReasonInterference
	// ReasonCompetingNeeds: some parent of one action is mutex with some parent of the other.
	ReasonCompetingNeeds
	// ReasonNegation: same symbol, opposite polarity.
	ReasonNegation
	// ReasonInconsistentSupport: the producers of both literals are pairwise mutex.
	ReasonInconsistentSupport
)

// reasonNames lists every reason in bit order.
var reasonNames = []struct {
	r    MutexReason
	name string
}{
	{ReasonSerial, "serial"},
	{ReasonInconsistentEffects, "inconsistent_effects"},
	{ReasonInterference, "interference"},
	{ReasonCompetingNeeds, "competing_needs"},
	{ReasonNegation, "negation"},
	{ReasonInconsistentSupport, "inconsistent_support"},
}

// Has reports whether every bit of q is set in r.
func (r MutexReason) Has(q MutexReason) bool { return q != 0 && r&q == q }

// Reasons splits r into its single-bit members, in bit order.
func (r MutexReason) Reasons() []MutexReason {
	out := make([]MutexReason, 0, len(reasonNames))
	for _, rn := range reasonNames {
		if r&rn.r != 0 {
			out = append(out, rn.r)
		}
	}

	return out
}

// String renders r as "a|b", or "none" for the empty set.
func (r MutexReason) String() string {
	if r == 0 {
		return "none"
	}
	parts := make([]string, 0, len(reasonNames))
	for _, rn := range reasonNames {
		if r&rn.r != 0 {
			parts = append(parts, rn.name)
		}
	}

	return strings.Join(parts, "|")
}

// ParentLinks selects which literals become parents of an admitted action.
type ParentLinks int

const (
	// LinkAllLiterals connects an admitted action to every literal of its
	// level. Competing needs then compares whole levels, not preconditions.
	LinkAllLiterals ParentLinks = iota
	// LinkPreconditions connects an admitted action to its precondition literals only.
	LinkPreconditions
)

// SupportTest selects the inconsistent-support formulation.
type SupportTest int

const (
	// SupportCounted marks two literals mutex when the number of mutex
	// producer pairs equals the number of producers of the first literal.
	SupportCounted SupportTest = iota
	// SupportAllPairs marks two literals mutex only when every producer pair is mutex.
	SupportAllPairs
)

// LevelStats summarises one expansion step (A_i and S_{i+1}).
type LevelStats struct {
	Level             int                 // index i of the action level
	Actions           int                 // |A_i|
	Literals          int                 // |S_{i+1}|
	ActionMutexPairs  int                 // mutex pairs in A_i
	LiteralMutexPairs int                 // mutex pairs in S_{i+1}
	Reasons           map[MutexReason]int // single-bit reason -> pairs it fired for
}

// BuildStats summarises a finished (or failed) construction.
type BuildStats struct {
	Problem  string        // problem name
	Levels   int           // number of literal levels built
	Leveled  bool          // true if two consecutive literal levels matched
	Duration time.Duration // wall time of construction
	Err      error         // construction error, if any
}

// Observer receives construction progress. Calls are made synchronously
// from the building goroutine.
type Observer interface {
	LevelBuilt(stats LevelStats)
	BuildFinished(stats BuildStats)
}

// Option configures Build.
type Option func(*Options)

// Options holds the construction parameters.
type Options struct {
	// Ctx is the parent context for tracing; cancellation is checked between levels.
	Ctx context.Context

	// Serial enables serial planning: at most one non-persistence action per step.
	Serial bool

	// Links selects the parent set of admitted actions.
	Links ParentLinks

	// Support selects the inconsistent-support test.
	Support SupportTest

	// MaxLevels bounds the number of action levels; 0 means unbounded.
	MaxLevels int

	// Workers > 1 evaluates sibling pair tests concurrently.
	Workers int

	// Logger receives structured build records.
	Logger *slog.Logger

	// Tracer creates the build span.
	Tracer trace.Tracer

	// Observer, if non-nil, receives per-level and final statistics.
	Observer Observer
}

// DefaultOptions returns Options with:
//   - Background context
//   - serial planning
//   - LinkAllLiterals and SupportCounted
//   - no level bound, sequential mutex evaluation
//   - discarding logger, no-op tracer, no observer
func DefaultOptions() Options {
	return Options{
		Ctx:       context.Background(),
		Serial:    true,
		Links:     LinkAllLiterals,
		Support:   SupportCounted,
		MaxLevels: 0,
		Workers:   1,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Tracer:    noop.NewTracerProvider().Tracer(tracerName),
		Observer:  nil,
	}
}

// WithContext sets the parent context. A nil context has no effect.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithSerial selects serial (true) or parallel (false) planning.
func WithSerial(serial bool) Option {
	return func(o *Options) {
		o.Serial = serial
	}
}

// WithParentLinks selects how admitted actions are connected to their level.
func WithParentLinks(mode ParentLinks) Option {
	if mode != LinkAllLiterals && mode != LinkPreconditions {
		panic(fmt.Sprintf("plangraph: WithParentLinks(%d): unknown mode", int(mode)))
	}

	return func(o *Options) {
		o.Links = mode
	}
}

// WithSupportTest selects the inconsistent-support formulation.
func WithSupportTest(mode SupportTest) Option {
	if mode != SupportCounted && mode != SupportAllPairs {
		panic(fmt.Sprintf("plangraph: WithSupportTest(%d): unknown mode", int(mode)))
	}

	return func(o *Options) {
		o.Support = mode
	}
}

// WithMaxLevels bounds construction to n action levels; Build returns
// ErrNotLeveled if the graph has not leveled off by then. Zero disables the bound.
// Panics on negative n.
func WithMaxLevels(n int) Option {
	if n < 0 {
		panic(fmt.Sprintf("plangraph: WithMaxLevels(%d): must be non-negative", n))
	}

	return func(o *Options) {
		o.MaxLevels = n
	}
}

// WithWorkers sets the number of goroutines evaluating sibling pairs.
// Values below 1 panic.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("plangraph: WithWorkers(%d): must be at least 1", n))
	}

	return func(o *Options) {
		o.Workers = n
	}
}

// WithLogger installs a structured logger. A nil logger has no effect.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithTracer installs an OpenTelemetry tracer. A nil tracer has no effect.
func WithTracer(t trace.Tracer) Option {
	return func(o *Options) {
		if t != nil {
			o.Tracer = t
		}
	}
}

// WithObserver installs a statistics observer.
func WithObserver(obs Observer) Option {
	return func(o *Options) {
		o.Observer = obs
	}
}
