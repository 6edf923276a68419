// SPDX-License-Identifier: MIT

package plangraph

import (
	"sort"

	"github.com/katalvlaran/lvplan/strips"
)

// LiteralLevel is the arena of literal nodes at one time step.
// Nodes keep insertion order; lookup is keyed by literal identity.
type LiteralLevel struct {
	owner *Graph
	index int
	nodes []*LiteralNode
	byLit map[strips.Literal]int
}

func newLiteralLevel(owner *Graph, index, capHint int) *LiteralLevel {
	return &LiteralLevel{
		owner: owner,
		index: index,
		nodes: make([]*LiteralNode, 0, capHint),
		byLit: make(map[strips.Literal]int, capHint),
	}
}

// add returns the node for lit, creating it on first sight.
func (l *LiteralLevel) add(lit strips.Literal) *LiteralNode {
	if i, ok := l.byLit[lit]; ok {
		return l.nodes[i]
	}
	n := &LiteralNode{relations: newRelations(l.owner, LiteralKind, l.index, len(l.nodes)), lit: lit}
	l.byLit[lit] = n.index
	l.nodes = append(l.nodes, n)

	return n
}

// Index returns the level number.
func (l *LiteralLevel) Index() int { return l.index }

// Len returns the number of literal nodes.
func (l *LiteralLevel) Len() int { return len(l.nodes) }

// Nodes returns the nodes in insertion order. The slice must not be modified.
func (l *LiteralLevel) Nodes() []*LiteralNode { return l.nodes }

// Node returns the node at position i.
func (l *LiteralLevel) Node(i int) *LiteralNode { return l.nodes[i] }

// Lookup returns the node for lit, if present.
func (l *LiteralLevel) Lookup(lit strips.Literal) (*LiteralNode, bool) {
	i, ok := l.byLit[lit]
	if !ok {
		return nil, false
	}

	return l.nodes[i], true
}

// Contains reports whether lit is present.
func (l *LiteralLevel) Contains(lit strips.Literal) bool {
	_, ok := l.byLit[lit]

	return ok
}

// containsAll reports whether every literal of lits is present.
func (l *LiteralLevel) containsAll(lits []strips.Literal) bool {
	for _, lit := range lits {
		if _, ok := l.byLit[lit]; !ok {
			return false
		}
	}

	return true
}

// Literals returns the level as a sorted literal list (symbol, then positive first).
func (l *LiteralLevel) Literals() []strips.Literal {
	out := make([]strips.Literal, 0, len(l.nodes))
	for _, n := range l.nodes {
		out = append(out, n.lit)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Symbol != out[j].Symbol {
			return out[i].Symbol < out[j].Symbol
		}

		return out[i].Positive && !out[j].Positive
	})

	return out
}

// SameLiterals reports set equality of the two levels' literals.
// Relations are not compared.
func (l *LiteralLevel) SameLiterals(other *LiteralLevel) bool {
	if other == nil || len(l.byLit) != len(other.byLit) {
		return false
	}
	for lit := range l.byLit {
		if _, ok := other.byLit[lit]; !ok {
			return false
		}
	}

	return true
}

// MutexPairs counts unordered mutex pairs in the level.
func (l *LiteralLevel) MutexPairs() int {
	total := 0
	for _, n := range l.nodes {
		total += len(n.mutex)
	}

	return total / 2
}

// ActionLevel is the arena of action nodes at one time step.
type ActionLevel struct {
	owner *Graph
	index int
	nodes []*ActionNode
	byKey map[ActionKey]int
}

func newActionLevel(owner *Graph, index, capHint int) *ActionLevel {
	return &ActionLevel{
		owner: owner,
		index: index,
		nodes: make([]*ActionNode, 0, capHint),
		byKey: make(map[ActionKey]int, capHint),
	}
}

// add admits a node for tmpl. It returns false if an action with the same
// identity is already in the level.
func (l *ActionLevel) add(tmpl *actionTemplate) (*ActionNode, bool) {
	if _, dup := l.byKey[tmpl.key]; dup {
		return nil, false
	}
	n := &ActionNode{relations: newRelations(l.owner, ActionKind, l.index, len(l.nodes)), tmpl: tmpl}
	l.byKey[tmpl.key] = n.index
	l.nodes = append(l.nodes, n)

	return n, true
}

// Index returns the level number.
func (l *ActionLevel) Index() int { return l.index }

// Len returns the number of action nodes.
func (l *ActionLevel) Len() int { return len(l.nodes) }

// Nodes returns the nodes in admission order. The slice must not be modified.
func (l *ActionLevel) Nodes() []*ActionNode { return l.nodes }

// Node returns the node at position i.
func (l *ActionLevel) Node(i int) *ActionNode { return l.nodes[i] }

// Lookup returns the node with the given identity, if present.
func (l *ActionLevel) Lookup(key ActionKey) (*ActionNode, bool) {
	i, ok := l.byKey[key]
	if !ok {
		return nil, false
	}

	return l.nodes[i], true
}

// Find returns the node whose signature is sig, preferring a
// non-persistent action when both identities exist.
func (l *ActionLevel) Find(sig string) (*ActionNode, bool) {
	if n, ok := l.Lookup(ActionKey{Signature: sig}); ok {
		return n, true
	}

	return l.Lookup(ActionKey{Signature: sig, Persistent: true})
}

// MutexPairs counts unordered mutex pairs in the level.
func (l *ActionLevel) MutexPairs() int {
	total := 0
	for _, n := range l.nodes {
		total += len(n.mutex)
	}

	return total / 2
}
