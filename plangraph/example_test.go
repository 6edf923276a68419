package plangraph_test

import (
	"fmt"

	"github.com/katalvlaran/lvplan/plangraph"
	"github.com/katalvlaran/lvplan/problems"
	"github.com/katalvlaran/lvplan/strips"
)

// ExampleBuild levels the have-cake problem and scores its goal.
func ExampleBuild() {
	p := problems.HaveCake()
	g, err := plangraph.Build(p, p.Initial)
	if err != nil {
		fmt.Println(err)

		return
	}
	for i := 0; i < g.Levels(); i++ {
		fmt.Printf("S%d: %v\n", i, g.LiteralLevel(i).Literals())
	}
	fmt.Println("leveled:", g.Leveled())
	fmt.Println("level-sum:", plangraph.LevelSum(g))
	// Output:
	// S0: [~Eaten(Cake) Have(Cake)]
	// S1: [Eaten(Cake) ~Eaten(Cake) Have(Cake) ~Have(Cake)]
	// S2: [Eaten(Cake) ~Eaten(Cake) Have(Cake) ~Have(Cake)]
	// leveled: true
	// level-sum: 1
}

// ExampleGraph_ActionMutexReasons explains why eating the cake excludes keeping it.
func ExampleGraph_ActionMutexReasons() {
	p := problems.HaveCake()
	g, _ := plangraph.Build(p, p.Initial)
	a0 := g.ActionLevel(0)
	eat, _ := a0.Find("Eat(Cake)")
	keep, _ := a0.Find("Noop_pos(Have(Cake))")
	fmt.Println(g.ActionMutexReasons(eat, keep))
	// Output: inconsistent_effects|interference
}

// ExampleGraph_LevelCost reports where a single literal first appears.
func ExampleGraph_LevelCost() {
	p := problems.AirCargoP1()
	g, _ := plangraph.Build(p, p.Initial, plangraph.WithSerial(false))
	for _, goal := range p.Goal {
		lvl, ok := g.LevelCost(goal)
		fmt.Println(goal, lvl, ok)
	}
	lvl, ok := g.LevelCost(strips.Neg("At(C1, SFO)"))
	fmt.Println("~At(C1, SFO)", lvl, ok)
	// Output:
	// At(C1, JFK) 2 true
	// At(C2, SFO) 2 true
	// ~At(C1, SFO) 1 true
}
