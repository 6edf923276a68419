// Package lvplan is an in-memory toolkit for GraphPlan-style planning graphs
// over ground STRIPS problems.
//
// What is lvplan?
//
//	A small, dependency-light library and CLI that brings together:
//		• Problem model: fluents, literals, ground actions, T/F state strings
//		• Planning graph: alternating literal and action levels with no-op
//		  persistence, grown until the graph levels off
//		• Mutex relations: serial, inconsistent effects, interference,
//		  competing needs, negation, inconsistent support
//		• Heuristics: level-sum, max-level, per-goal level cost
//
// Why lvplan?
//
//   - Readable levels: every node can be dumped with its relations
//   - Diagnosable mutexes: each pair reports which tests fired
//   - Observable builds: slog records, OpenTelemetry spans, Prometheus metrics
//
// Under the hood, everything is organized under these packages:
//
//	strips/       Literal, Action, Problem, state decoding, YAML problem files
//	plangraph/    graph construction, mutex tests, heuristics
//	problems/     built-in fixtures (have-cake, air-cargo-p1)
//	metrics/      Prometheus collector for build statistics
//	cmd/lvplan    command-line front end
//
// Quick example:
//
//	S0 ──► A0 ──► S1 ──► A1 ──► S2      (S2 == S1: leveled)
//
//	have-cake from "TF": Eaten(Cake) first appears in S1, so level-sum = 1.
//
//	go get github.com/katalvlaran/lvplan
package lvplan
