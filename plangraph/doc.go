// SPDX-License-Identifier: MIT

// Package plangraph builds GraphPlan-style planning graphs over ground STRIPS
// problems and extracts level-based heuristics from them.
//
// What:
//
//   - Build(problem, state, opts...): alternates literal levels S_i and
//     action levels A_i from a starting state until two consecutive literal
//     levels hold the same literals ("leveling off").
//   - Persistence actions Noop_pos(F) / Noop_neg(F) carry every fluent F
//     forward unchanged.
//   - Action mutexes: serial exclusion, inconsistent effects, interference,
//     competing needs. Literal mutexes: negation, inconsistent support.
//   - LevelSum / MaxLevel: admissible-under-independence heuristics read
//     from the finished levels.
//
// Why:
//
//   - Heuristic search over state spaces (A*, greedy best-first) needs a
//     cheap lower-bound estimate; the planning graph provides one.
//
// Layout:
//
//	S0 ──► A0 ──► S1 ──► A1 ──► S2 … Sn   (Sn == Sn-1 as literal sets)
//
//	Nodes live in per-level arenas. Parents, children and mutex siblings are
//	stored as index sets into the adjacent/same level, never as pointers.
//
// Options:
//
//   - WithSerial(bool)              serial (default) or parallel planning.
//   - WithParentLinks(mode)         LinkAllLiterals (default) or LinkPreconditions.
//   - WithSupportTest(mode)         SupportCounted (default) or SupportAllPairs.
//   - WithMaxLevels(n)              fail with ErrNotLeveled after n action levels.
//   - WithWorkers(n)                evaluate sibling pairs on n goroutines.
//   - WithContext / WithLogger / WithTracer / WithObserver.
//
// Errors:
//
//   - ErrNilProblem          problem pointer is nil.
//   - ErrAlreadyBuilt        construction ran on a graph that has levels.
//   - ErrHeterogeneousMutex  Mutexify called on a literal and an action.
//   - ErrNotSiblings         Mutexify called across levels or on one node.
//   - ErrNotLeveled          WithMaxLevels bound reached.
//
// Complexity:
//
//   - One expansion step costs O(|A|·|pre|) for admission plus O(k²·p²) pair
//     tests over k siblings with p parents each; the number of steps is
//     bounded by the number of distinct literal sets (2F literals).
package plangraph
