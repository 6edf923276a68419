// SPDX-License-Identifier: MIT

package plangraph

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/lvplan/strips"
)

// Node is implemented by *LiteralNode and *ActionNode.
//
// Nodes never point at each other: parents, children and mutex siblings are
// stored as index sets into the owning Graph's level arenas and resolved with
// Graph.Parents, Graph.Children and Graph.Mutexes.
type Node interface {
	fmt.Stringer

	// Kind reports whether the node belongs to a literal or an action level.
	Kind() NodeKind
	// Level is the index of the owning level.
	Level() int
	// Index is the position of the node within its level.
	Index() int
	// IsMutex reports whether other is a mutex sibling of this node.
	IsMutex(other Node) bool

	rel() *relations
}

// indexSet is a set of node indices within one level.
type indexSet map[int]struct{}

func (s indexSet) add(i int) { s[i] = struct{}{} }

func (s indexSet) has(i int) bool {
	_, ok := s[i]

	return ok
}

// sorted returns the members in ascending order.
func (s indexSet) sorted() []int {
	out := make([]int, 0, len(s))
	for i := range s {
		out = append(out, i)
	}
	sort.Ints(out)

	return out
}

// relations holds the position of a node and its non-owning relations.
//
//	literal at S_k: parents ⊆ A_{k-1}, children ⊆ A_k, mutex ⊆ S_k
//	action  at A_k: parents ⊆ S_k,     children ⊆ S_{k+1}, mutex ⊆ A_k
type relations struct {
	owner    *Graph
	kind     NodeKind
	level    int
	index    int
	parents  indexSet
	children indexSet
	mutex    indexSet
}

func newRelations(owner *Graph, kind NodeKind, level, index int) relations {
	return relations{
		owner:    owner,
		kind:     kind,
		level:    level,
		index:    index,
		parents:  make(indexSet),
		children: make(indexSet),
		mutex:    make(indexSet),
	}
}

func (e *relations) rel() *relations { return e }

// Kind implements Node.
func (e *relations) Kind() NodeKind { return e.kind }

// Level implements Node.
func (e *relations) Level() int { return e.level }

// Index implements Node.
func (e *relations) Index() int { return e.index }

// IsMutex implements Node. Nodes of another graph, kind or level are never mutex.
func (e *relations) IsMutex(other Node) bool {
	if other == nil {
		return false
	}
	o := other.rel()
	if o.owner != e.owner || o.kind != e.kind || o.level != e.level {
		return false
	}

	return e.mutex.has(o.index)
}

// ParentIndices returns the parent positions in the preceding level, ascending.
func (e *relations) ParentIndices() []int { return e.parents.sorted() }

// ChildIndices returns the child positions in the following level, ascending.
func (e *relations) ChildIndices() []int { return e.children.sorted() }

// MutexIndices returns the mutex sibling positions, ascending.
func (e *relations) MutexIndices() []int { return e.mutex.sorted() }

// counts renders the relation sizes for debug output.
func (e *relations) counts() string {
	return fmt.Sprintf("parents=%d children=%d mutex=%d", len(e.parents), len(e.children), len(e.mutex))
}

// LiteralNode is a fluent literal at one literal level.
// Its identity is the (symbol, polarity) pair.
type LiteralNode struct {
	relations
	lit strips.Literal
}

// Literal returns the node identity.
func (n *LiteralNode) Literal() strips.Literal { return n.lit }

// Symbol returns the fluent symbol.
func (n *LiteralNode) Symbol() string { return n.lit.Symbol }

// Positive reports the literal polarity.
func (n *LiteralNode) Positive() bool { return n.lit.Positive }

// String renders "S<level>:<literal>".
func (n *LiteralNode) String() string {
	return fmt.Sprintf("S%d:%s", n.level, n.lit)
}

// ActionKey is the identity of an action node: signature plus persistence flag.
type ActionKey struct {
	Signature  string
	Persistent bool
}

// actionTemplate precomputes the literal forms of one candidate action.
// Templates are built once per graph and shared by the nodes of every level.
type actionTemplate struct {
	action     strips.Action
	key        ActionKey
	pre        []strips.Literal // precondition literals, deduplicated
	eff        []strips.Literal // effect literals, deduplicated
	persistent bool             // pre == eff as sets

	add    map[string]struct{}
	rem    map[string]struct{}
	prePos map[string]struct{}
}

func newActionTemplate(a strips.Action) *actionTemplate {
	pre, preSet := uniqueLiterals(a.Preconditions())
	eff, effSet := uniqueLiterals(a.Effects())

	persistent := len(preSet) == len(effSet)
	if persistent {
		for l := range preSet {
			if _, ok := effSet[l]; !ok {
				persistent = false

				break
			}
		}
	}

	return &actionTemplate{
		action:     a,
		key:        ActionKey{Signature: a.Signature(), Persistent: persistent},
		pre:        pre,
		eff:        eff,
		persistent: persistent,
		add:        stringSet(a.EffectAdd),
		rem:        stringSet(a.EffectRem),
		prePos:     stringSet(a.PrecondPos),
	}
}

// ActionNode is a ground action (or a persistence no-op) at one action level.
type ActionNode struct {
	relations
	tmpl *actionTemplate
}

// Action returns the underlying ground action.
func (n *ActionNode) Action() strips.Action { return n.tmpl.action }

// Key returns the node identity.
func (n *ActionNode) Key() ActionKey { return n.tmpl.key }

// Persistent reports whether the action is a no-op: its precondition
// literals equal its effect literals.
func (n *ActionNode) Persistent() bool { return n.tmpl.persistent }

// PreconditionLiterals returns the literal forms of the preconditions.
func (n *ActionNode) PreconditionLiterals() []strips.Literal {
	return append([]strips.Literal(nil), n.tmpl.pre...)
}

// EffectLiterals returns the literal forms of the effects.
func (n *ActionNode) EffectLiterals() []strips.Literal {
	return append([]strips.Literal(nil), n.tmpl.eff...)
}

// String renders "A<level>:<signature>".
func (n *ActionNode) String() string {
	return fmt.Sprintf("A%d:%s", n.level, n.tmpl.key.Signature)
}

// Mutexify marks a and b mutually exclusive in both directions.
//
// Errors:
//   - ErrHeterogeneousMutex if a and b are of different kinds.
//   - ErrNotSiblings if they belong to different graphs, sit on different
//     levels or are the same node.
//
// Mutexify mutates both nodes; it is not safe while the graph is read
// concurrently.
func Mutexify(a, b Node) error {
	if a == nil || b == nil {
		return fmt.Errorf("%w: nil node", ErrNotSiblings)
	}
	ea, eb := a.rel(), b.rel()
	if ea.kind != eb.kind {
		return fmt.Errorf("%w: %s %s and %s %s", ErrHeterogeneousMutex, ea.kind, a, eb.kind, b)
	}
	if ea.owner != eb.owner || ea.level != eb.level || ea.index == eb.index {
		return fmt.Errorf("%w: %s and %s", ErrNotSiblings, a, b)
	}
	ea.mutex.add(eb.index)
	eb.mutex.add(ea.index)

	return nil
}

// uniqueLiterals drops duplicates while keeping first-seen order.
func uniqueLiterals(in []strips.Literal) ([]strips.Literal, map[strips.Literal]struct{}) {
	set := make(map[strips.Literal]struct{}, len(in))
	out := make([]strips.Literal, 0, len(in))
	for _, l := range in {
		if _, dup := set[l]; dup {
			continue
		}
		set[l] = struct{}{}
		out = append(out, l)
	}

	return out, set
}

func stringSet(in []string) map[string]struct{} {
	set := make(map[string]struct{}, len(in))
	for _, s := range in {
		set[s] = struct{}{}
	}

	return set
}
