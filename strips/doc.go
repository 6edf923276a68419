// SPDX-License-Identifier: MIT

// Package strips models ground STRIPS planning problems: fluent literals,
// ground actions, goal sets, and the T/F bitstring encoding of world states.
//
// What:
//
//   - Literal: a fluent symbol with polarity (positive or negated "~Sym").
//   - Action: a ground action with positive/negative preconditions and
//     add/delete effects, identified by Name and Args.
//   - Problem: the ordered fluent vocabulary (state map), ground actions,
//     an initial state string and the goal literals.
//   - DecodeState/EncodeState: convert between "TFFT..." strings and
//     positive/negative fluent lists.
//   - LoadProblem/LoadProblemFile: read a Problem from YAML.
//
// Why:
//
//   - plangraph consumes exactly this surface to build planning graphs and
//     level-based heuristics; keeping it small keeps the graph code honest.
//
// Errors:
//
//   - ErrStateLength     state string length differs from the state map.
//   - ErrStateSymbol     state string holds a character other than T/F/1/0.
//   - ErrInvalidProblem  problem failed validation (wrapped with detail).
//
// Complexity:
//
//   - DecodeState / EncodeState: O(F) for F fluents.
//   - Validate: O(F + Σ|action literals| + |goal|).
//
// Example YAML:
//
//	name: have-cake
//	fluents: [Have(Cake), Eaten(Cake)]
//	initial: TF
//	goal: [Have(Cake), Eaten(Cake)]
//	actions:
//	  - name: Eat
//	    args: [Cake]
//	    precond_pos: [Have(Cake)]
//	    effect_add: [Eaten(Cake)]
//	    effect_rem: [Have(Cake)]
package strips
