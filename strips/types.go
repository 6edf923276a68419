// SPDX-License-Identifier: MIT

package strips

import (
	"errors"
	"strings"
)

// Sentinel errors for problem and state handling.
var (
	// ErrStateLength indicates a state string whose length differs from the state map.
	ErrStateLength = errors.New("strips: state length does not match state map")

	// ErrStateSymbol indicates a state character outside T/F (t/f, 1/0 also accepted).
	ErrStateSymbol = errors.New("strips: invalid state symbol")

	// ErrInvalidProblem indicates a problem definition that failed validation.
	ErrInvalidProblem = errors.New("strips: invalid problem")
)

// negPrefix marks a negated literal in its string form.
const negPrefix = "~"

// Literal is a fluent symbol together with its polarity.
// It is comparable and safe to use as a map key.
type Literal struct {
	Symbol   string // ground fluent, e.g. "At(C1, SFO)"
	Positive bool   // true = asserted, false = asserted false
}

// Pos returns the positive literal for symbol.
func Pos(symbol string) Literal { return Literal{Symbol: symbol, Positive: true} }

// Neg returns the negative literal for symbol.
func Neg(symbol string) Literal { return Literal{Symbol: symbol, Positive: false} }

// Negate returns the literal with the same symbol and opposite polarity.
func (l Literal) Negate() Literal {
	return Literal{Symbol: l.Symbol, Positive: !l.Positive}
}

// String renders the literal, prefixing negatives with "~".
func (l Literal) String() string {
	if l.Positive {
		return l.Symbol
	}

	return negPrefix + l.Symbol
}

// ParseLiteral is the inverse of Literal.String. Surrounding spaces are trimmed.
func ParseLiteral(s string) Literal {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, negPrefix) {
		return Neg(strings.TrimSpace(strings.TrimPrefix(s, negPrefix)))
	}

	return Pos(s)
}

// Action is a ground action: every argument is bound to a concrete object.
// PrecondPos must hold and PrecondNeg must not hold before execution;
// EffectAdd become true and EffectRem become false afterwards.
type Action struct {
	Name       string   `yaml:"name"`
	Args       []string `yaml:"args,omitempty"`
	PrecondPos []string `yaml:"precond_pos,omitempty"`
	PrecondNeg []string `yaml:"precond_neg,omitempty"`
	EffectAdd  []string `yaml:"effect_add,omitempty"`
	EffectRem  []string `yaml:"effect_rem,omitempty"`
}

// Signature renders the name/argument identity pair, e.g. "Fly(P1, SFO, JFK)".
func (a Action) Signature() string {
	return a.Name + "(" + strings.Join(a.Args, ", ") + ")"
}

// String implements fmt.Stringer.
func (a Action) String() string { return a.Signature() }

// Preconditions returns the precondition literals, positives first.
func (a Action) Preconditions() []Literal {
	out := make([]Literal, 0, len(a.PrecondPos)+len(a.PrecondNeg))
	for _, s := range a.PrecondPos {
		out = append(out, Pos(s))
	}
	for _, s := range a.PrecondNeg {
		out = append(out, Neg(s))
	}

	return out
}

// Effects returns the effect literals, add-effects first.
func (a Action) Effects() []Literal {
	out := make([]Literal, 0, len(a.EffectAdd)+len(a.EffectRem))
	for _, s := range a.EffectAdd {
		out = append(out, Pos(s))
	}
	for _, s := range a.EffectRem {
		out = append(out, Neg(s))
	}

	return out
}

// FluentState is a decoded world state: fluents known true and known false.
type FluentState struct {
	Pos []string
	Neg []string
}

// Problem is a ground planning problem.
//
// StateMap fixes the bit order of state strings: StateMap[i] is the fluent
// encoded by the i-th character. Goal is order-independent.
type Problem struct {
	Name     string
	StateMap []string
	Initial  string
	Actions  []Action
	Goal     []Literal
}
