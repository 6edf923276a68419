// SPDX-License-Identifier: MIT

// Package metrics exports planning-graph construction statistics to
// Prometheus. A Collector implements plangraph.Observer, so it plugs into
// Build through plangraph.WithObserver.
package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/lvplan/plangraph"
)

// Namespace prefixes every metric name.
const Namespace = "lvplan"

// Build outcomes used as the "outcome" label.
const (
	OutcomeLeveled    = "leveled"
	OutcomeNotLeveled = "not_leveled"
	OutcomeError      = "error"
)

// Collector records build statistics into Prometheus metrics.
type Collector struct {
	builds     *prometheus.CounterVec
	levels     *prometheus.HistogramVec
	duration   *prometheus.HistogramVec
	nodes      *prometheus.CounterVec
	mutexPairs *prometheus.CounterVec
}

var _ plangraph.Observer = (*Collector)(nil)

// New creates a Collector and registers its metrics with reg.
// It fails if any metric is already registered there.
func New(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		builds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "builds_total",
				Help:      "Planning graphs built, by problem and outcome",
			},
			[]string{"problem", "outcome"},
		),
		levels: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "build_levels",
				Help:      "Literal levels per planning graph",
				Buckets:   prometheus.LinearBuckets(1, 2, 10),
			},
			[]string{"problem"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "build_duration_seconds",
				Help:      "Wall time of planning graph construction",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"problem"},
		),
		nodes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "nodes_total",
				Help:      "Nodes created across all expansion steps, by kind",
			},
			[]string{"kind"},
		),
		mutexPairs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "mutex_pairs_total",
				Help:      "Sibling pairs a mutex test fired for, by reason",
			},
			[]string{"reason"},
		),
	}

	for _, col := range []prometheus.Collector{c.builds, c.levels, c.duration, c.nodes, c.mutexPairs} {
		if err := reg.Register(col); err != nil {
			return nil, fmt.Errorf("metrics: register: %w", err)
		}
	}

	return c, nil
}

// MustNew is New that panics on registration failure.
func MustNew(reg prometheus.Registerer) *Collector {
	c, err := New(reg)
	if err != nil {
		panic(err)
	}

	return c
}

// LevelBuilt implements plangraph.Observer.
func (c *Collector) LevelBuilt(s plangraph.LevelStats) {
	c.nodes.WithLabelValues(plangraph.ActionKind.String()).Add(float64(s.Actions))
	c.nodes.WithLabelValues(plangraph.LiteralKind.String()).Add(float64(s.Literals))
	for reason, n := range s.Reasons {
		c.mutexPairs.WithLabelValues(reason.String()).Add(float64(n))
	}
}

// BuildFinished implements plangraph.Observer.
func (c *Collector) BuildFinished(s plangraph.BuildStats) {
	c.builds.WithLabelValues(s.Problem, Outcome(s)).Inc()
	c.duration.WithLabelValues(s.Problem).Observe(s.Duration.Seconds())
	if s.Err == nil {
		c.levels.WithLabelValues(s.Problem).Observe(float64(s.Levels))
	}
}

// Outcome classifies a finished build for the "outcome" label.
func Outcome(s plangraph.BuildStats) string {
	switch {
	case s.Err == nil:
		return OutcomeLeveled
	case errors.Is(s.Err, plangraph.ErrNotLeveled):
		return OutcomeNotLeveled
	default:
		return OutcomeError
	}
}
