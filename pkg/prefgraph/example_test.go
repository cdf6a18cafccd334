package prefgraph_test

import (
	"fmt"

	"github.com/matzehuels/prefgraph/pkg/prefgraph"
)

func ExampleGraph_IsPreferred() {
	// One criterion: 1 beats 2, 2 beats 3.
	g := prefgraph.New()
	g.AddPreference(1, 2)
	g.AddPreference(2, 3)

	fmt.Println("1 >= 3:", g.IsPreferred(1, 3))
	fmt.Println("3 >= 1:", g.IsPreferred(3, 1))
	fmt.Println("3 >= 3:", g.IsPreferred(3, 3))
	// Output:
	// 1 >= 3: true
	// 3 >= 1: false
	// 3 >= 3: true
}

func ExampleFromRelations() {
	rels, _ := prefgraph.ParseRelations([]string{"2>1", "1=3"})
	g, _ := prefgraph.FromRelations(rels)

	fmt.Println("reachable from 2:", g.Reachable(2))
	fmt.Println("reachable from 3:", g.Reachable(3))
	// Output:
	// reachable from 2: [1 2 3]
	// reachable from 3: [1 3]
}
