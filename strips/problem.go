// SPDX-License-Identifier: MIT

package strips

import "fmt"

// Validate checks that the problem is internally consistent:
//   - the state map is non-empty and free of duplicates or empty fluents;
//   - every action has a name and refers only to fluents of the state map;
//   - the initial state (when set) decodes against the state map;
//   - every goal symbol belongs to the state map.
//
// All failures wrap ErrInvalidProblem.
// Complexity: O(F + Σ|action literals| + |goal|).
func (p *Problem) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: problem is nil", ErrInvalidProblem)
	}

	// 1. Fluent vocabulary
	if len(p.StateMap) == 0 {
		return fmt.Errorf("%w: empty state map", ErrInvalidProblem)
	}
	known := make(map[string]struct{}, len(p.StateMap))
	for i, f := range p.StateMap {
		if f == "" {
			return fmt.Errorf("%w: empty fluent at position %d", ErrInvalidProblem, i)
		}
		if _, dup := known[f]; dup {
			return fmt.Errorf("%w: duplicate fluent %q", ErrInvalidProblem, f)
		}
		known[f] = struct{}{}
	}

	// 2. Actions reference known fluents only
	for _, a := range p.Actions {
		if a.Name == "" {
			return fmt.Errorf("%w: action without name", ErrInvalidProblem)
		}
		for _, group := range [][]string{a.PrecondPos, a.PrecondNeg, a.EffectAdd, a.EffectRem} {
			for _, f := range group {
				if _, ok := known[f]; !ok {
					return fmt.Errorf("%w: action %s uses unknown fluent %q", ErrInvalidProblem, a.Signature(), f)
				}
			}
		}
	}

	// 3. Initial state
	if p.Initial != "" {
		if _, err := DecodeState(p.Initial, p.StateMap); err != nil {
			return fmt.Errorf("%w: initial state: %w", ErrInvalidProblem, err)
		}
	}

	// 4. Goal symbols
	for _, g := range p.Goal {
		if _, ok := known[g.Symbol]; !ok {
			return fmt.Errorf("%w: unknown goal fluent %q", ErrInvalidProblem, g.Symbol)
		}
	}

	return nil
}

// InitialState decodes p.Initial against p.StateMap.
func (p *Problem) InitialState() (FluentState, error) {
	return DecodeState(p.Initial, p.StateMap)
}

// GoalTest reports whether every goal literal holds in the state string.
func (p *Problem) GoalTest(state string) (bool, error) {
	fs, err := DecodeState(state, p.StateMap)
	if err != nil {
		return false, err
	}
	truth := make(map[string]bool, len(p.StateMap))
	for _, f := range fs.Pos {
		truth[f] = true
	}
	for _, g := range p.Goal {
		if truth[g.Symbol] != g.Positive {
			return false, nil
		}
	}

	return true, nil
}
