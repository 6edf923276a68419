// SPDX-License-Identifier: MIT

package strips

import (
	"fmt"
	"strings"
)

// DecodeState maps a state string onto positive and negative fluent lists.
// Each character encodes the fluent at the same index of stateMap:
// 'T', 't' or '1' for true, 'F', 'f' or '0' for false.
//
// Errors:
//   - ErrStateLength if len(state) != len(stateMap).
//   - ErrStateSymbol for any other character (wrapped with its position).
//
// Complexity: O(F).
func DecodeState(state string, stateMap []string) (FluentState, error) {
	// 1. Lengths must agree character-for-fluent
	if len(state) != len(stateMap) {
		return FluentState{}, fmt.Errorf("%w: got %d symbols for %d fluents", ErrStateLength, len(state), len(stateMap))
	}

	// 2. Split fluents by the polarity of their character
	fs := FluentState{
		Pos: make([]string, 0, len(stateMap)),
		Neg: make([]string, 0, len(stateMap)),
	}
	for i, fluent := range stateMap {
		switch state[i] {
		case 'T', 't', '1':
			fs.Pos = append(fs.Pos, fluent)
		case 'F', 'f', '0':
			fs.Neg = append(fs.Neg, fluent)
		default:
			return FluentState{}, fmt.Errorf("%w: %q at position %d", ErrStateSymbol, state[i], i)
		}
	}

	return fs, nil
}

// EncodeState is the inverse of DecodeState: every fluent listed in fs.Pos
// encodes as 'T', every other fluent of stateMap as 'F'.
// Complexity: O(F + |fs.Pos|).
func EncodeState(fs FluentState, stateMap []string) string {
	truth := make(map[string]struct{}, len(fs.Pos))
	for _, f := range fs.Pos {
		truth[f] = struct{}{}
	}

	var sb strings.Builder
	sb.Grow(len(stateMap))
	for _, fluent := range stateMap {
		if _, ok := truth[fluent]; ok {
			sb.WriteByte('T')
		} else {
			sb.WriteByte('F')
		}
	}

	return sb.String()
}
