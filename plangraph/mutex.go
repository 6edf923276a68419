// SPDX-License-Identifier: MIT

package plangraph

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// pairHit is a mutex verdict for the sibling pair (i, j), i < j.
type pairHit struct {
	j      int
	reason MutexReason
}

// mutexSweep is the outcome of one level's pair tests.
type mutexSweep struct {
	pairs   int
	reasons map[MutexReason]int
}

// sweepPairs evaluates test over every unordered pair of n siblings and then
// marks the hits through mark.
//
// Pair tests only read the previous, already finished level, so rows may be
// evaluated concurrently; each goroutine writes its own row slot. Marking
// runs afterwards on the calling goroutine, so no two mutex writes race.
func (g *Graph) sweepPairs(ctx context.Context, n int, test func(i, j int) MutexReason, mark func(i, j int) error) (mutexSweep, error) {
	sweep := mutexSweep{reasons: make(map[MutexReason]int)}
	if n < 2 {
		return sweep, nil
	}

	// 1. Evaluate rows
	rows := make([][]pairHit, n-1)
	scan := func(i int) {
		var row []pairHit
		for j := i + 1; j < n; j++ {
			if r := test(i, j); r != 0 {
				row = append(row, pairHit{j: j, reason: r})
			}
		}
		rows[i] = row
	}

	if g.opts.Workers > 1 {
		eg, egCtx := errgroup.WithContext(ctx)
		eg.SetLimit(g.opts.Workers)
		for i := 0; i < n-1; i++ {
			i := i
			eg.Go(func() error {
				if err := egCtx.Err(); err != nil {
					return err
				}
				scan(i)

				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return sweep, err
		}
	} else {
		for i := 0; i < n-1; i++ {
			scan(i)
		}
	}

	// 2. Apply symmetric marks and tally reasons
	for i, row := range rows {
		for _, hit := range row {
			if err := mark(i, hit.j); err != nil {
				return sweep, err
			}
			sweep.pairs++
			for _, r := range hit.reason.Reasons() {
				sweep.reasons[r]++
			}
		}
	}

	return sweep, nil
}

// updateActionMutex marks every mutex pair of action level al.
func (g *Graph) updateActionMutex(ctx context.Context, al *ActionLevel) (mutexSweep, error) {
	return g.sweepPairs(ctx, al.Len(),
		func(i, j int) MutexReason { return g.ActionMutexReasons(al.nodes[i], al.nodes[j]) },
		func(i, j int) error { return Mutexify(al.nodes[i], al.nodes[j]) },
	)
}

// updateLiteralMutex marks every mutex pair of literal level ll.
func (g *Graph) updateLiteralMutex(ctx context.Context, ll *LiteralLevel) (mutexSweep, error) {
	return g.sweepPairs(ctx, ll.Len(),
		func(i, j int) MutexReason { return g.LiteralMutexReasons(ll.nodes[i], ll.nodes[j]) },
		func(i, j int) error { return Mutexify(ll.nodes[i], ll.nodes[j]) },
	)
}

// ActionMutexReasons evaluates every action mutex test on a1 and a2 without
// short-circuiting. The pair is mutex iff the result is non-zero.
// Actions on different levels or of another graph yield zero.
func (g *Graph) ActionMutexReasons(a1, a2 *ActionNode) MutexReason {
	if a1 == nil || a2 == nil || a1.owner != g || a2.owner != g {
		return 0
	}
	if a1.level != a2.level || a1.index == a2.index {
		return 0
	}
	var r MutexReason
	if g.serializeActions(a1, a2) {
		r |= ReasonSerial
	}
	if inconsistentEffects(a1, a2) {
		r |= ReasonInconsistentEffects
	}
	if interference(a1, a2) {
		r |= ReasonInterference
	}
	if g.competingNeeds(a1, a2) {
		r |= ReasonCompetingNeeds
	}

	return r
}

// LiteralMutexReasons evaluates both literal mutex tests on s1 and s2.
// The inconsistent-support test is directional in s1 under SupportCounted.
func (g *Graph) LiteralMutexReasons(s1, s2 *LiteralNode) MutexReason {
	if s1 == nil || s2 == nil || s1.owner != g || s2.owner != g {
		return 0
	}
	if s1.level != s2.level || s1.index == s2.index {
		return 0
	}
	var r MutexReason
	if negation(s1, s2) {
		r |= ReasonNegation
	}
	if g.inconsistentSupport(s1, s2) {
		r |= ReasonInconsistentSupport
	}

	return r
}

// serializeActions: in serial planning two non-persistence actions never share a step.
func (g *Graph) serializeActions(a1, a2 *ActionNode) bool {
	if !g.opts.Serial {
		return false
	}

	return !a1.tmpl.persistent && !a2.tmpl.persistent
}

// inconsistentEffects: one action adds a fluent the other deletes.
func inconsistentEffects(a1, a2 *ActionNode) bool {
	return intersects(a1.tmpl.add, a2.tmpl.rem) || intersects(a2.tmpl.add, a1.tmpl.rem)
}

// interference: one action deletes a positive precondition of the other.
func interference(a1, a2 *ActionNode) bool {
	return intersects(a1.tmpl.rem, a2.tmpl.prePos) || intersects(a2.tmpl.rem, a1.tmpl.prePos)
}

// competingNeeds: some parent literal of a1 is mutex with some parent literal of a2.
func (g *Graph) competingNeeds(a1, a2 *ActionNode) bool {
	lits := g.sLevels[a1.level]
	for p1 := range a1.parents {
		m := lits.nodes[p1].mutex
		if len(m) == 0 {
			continue
		}
		for p2 := range a2.parents {
			if m.has(p2) {
				return true
			}
		}
	}

	return false
}

// negation: same fluent, opposite polarity.
func negation(s1, s2 *LiteralNode) bool {
	return s1.lit.Symbol == s2.lit.Symbol && s1.lit.Positive != s2.lit.Positive
}

// inconsistentSupport counts mutex pairs across the producer cross product.
//
// SupportCounted compares the count with |parents(s1)|; a producer of s1
// that is mutex with several producers of s2 counts once per pair.
// SupportAllPairs compares it with |parents(s1)|·|parents(s2)|.
// Level 0 has no producers and never yields support mutexes.
func (g *Graph) inconsistentSupport(s1, s2 *LiteralNode) bool {
	if s1.level == 0 || s1.level-1 >= len(g.aLevels) {
		return false
	}
	acts := g.aLevels[s1.level-1]

	count := 0
	for p1 := range s1.parents {
		m := acts.nodes[p1].mutex
		for p2 := range s2.parents {
			if m.has(p2) {
				count++
			}
		}
	}

	if g.opts.Support == SupportAllPairs {
		return count == len(s1.parents)*len(s2.parents)
	}

	return count == len(s1.parents)
}

func intersects(a, b map[string]struct{}) bool {
	if len(b) < len(a) {
		a, b = b, a
	}
	for k := range a {
		if _, ok := b[k]; ok {
			return true
		}
	}

	return false
}
