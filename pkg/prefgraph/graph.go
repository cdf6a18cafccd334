package prefgraph

import (
	"maps"
	"slices"
)

// Edge is a directed pair of alternatives as listed by [Graph.Preferences]
// and [Graph.Equivalences].
type Edge struct {
	From int
	To   int
}

// Graph holds the judgments of one criterion.
//
// The zero value is not usable - use New or FromRelations.
type Graph struct {
	strict     map[int]map[int]struct{} // x -> {y : x > y}
	equivalent map[int]map[int]struct{} // symmetric: x -> {y : x = y}
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		strict:     make(map[int]map[int]struct{}),
		equivalent: make(map[int]map[int]struct{}),
	}
}

// FromRelations builds a graph holding exactly the given relations.
// It fails on the first relation with an unknown operator.
func FromRelations(rels []Relation) (*Graph, error) {
	g := New()
	for _, r := range rels {
		if err := g.Add(r); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// AddPreference records that x is strictly preferred to y.
// Repeated calls with the same pair are absorbed.
func (g *Graph) AddPreference(x, y int) {
	addEdge(g.strict, x, y)
}

// AddEquivalence records that x and y are interchangeable, in both
// directions.
func (g *Graph) AddEquivalence(x, y int) {
	addEdge(g.equivalent, x, y)
	addEdge(g.equivalent, y, x)
}

// Add records r using AddPreference or AddEquivalence depending on its
// operator. Endpoints are not range-checked here; see [Relation.Validate].
func (g *Graph) Add(r Relation) error {
	switch r.Op {
	case StrictlyPreferred:
		g.AddPreference(r.Left, r.Right)
	case Equivalent:
		g.AddEquivalence(r.Left, r.Right)
	default:
		return r.Validate(0)
	}
	return nil
}

// IsPreferred reports whether y is reachable from x over strict and
// equivalence edges, i.e. whether x is at least as good as y.
//
// The search is breadth-first and expands every node at most once. It
// returns true as soon as y is dequeued, so IsPreferred(x, x) is always true.
func (g *Graph) IsPreferred(x, y int) bool {
	seen := make(map[int]bool)
	queue := []int{x}

	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]

		if seen[u] {
			continue
		}
		if u == y {
			return true
		}
		seen[u] = true

		for v := range g.strict[u] {
			if !seen[v] {
				queue = append(queue, v)
			}
		}
		for v := range g.equivalent[u] {
			if !seen[v] {
				queue = append(queue, v)
			}
		}
	}
	return false
}

// Reachable returns every alternative reachable from x, including x itself,
// in ascending order.
func (g *Graph) Reachable(x int) []int {
	seen := map[int]bool{x: true}
	queue := []int{x}

	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, adj := range []map[int]map[int]struct{}{g.strict, g.equivalent} {
			for v := range adj[u] {
				if !seen[v] {
					seen[v] = true
					queue = append(queue, v)
				}
			}
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

// Reset discards all edges, returning the graph to its empty state.
func (g *Graph) Reset() {
	g.strict = make(map[int]map[int]struct{})
	g.equivalent = make(map[int]map[int]struct{})
}

// Preferences lists strict edges sorted by (From, To).
func (g *Graph) Preferences() []Edge {
	return sortedEdges(g.strict, false)
}

// Equivalences lists each equivalence once, with From < To, sorted.
// Self-equivalences (x = x) are listed as a single edge.
func (g *Graph) Equivalences() []Edge {
	return sortedEdges(g.equivalent, true)
}

// Nodes returns every alternative mentioned by at least one edge, ascending.
func (g *Graph) Nodes() []int {
	set := make(map[int]struct{})
	for _, adj := range []map[int]map[int]struct{}{g.strict, g.equivalent} {
		for u, vs := range adj {
			set[u] = struct{}{}
			for v := range vs {
				set[v] = struct{}{}
			}
		}
	}
	return slices.Sorted(maps.Keys(set))
}

// EdgeCount returns the number of strict edges plus the number of distinct
// equivalences.
func (g *Graph) EdgeCount() int {
	return len(g.Preferences()) + len(g.Equivalences())
}

func addEdge(adj map[int]map[int]struct{}, x, y int) {
	if adj[x] == nil {
		adj[x] = make(map[int]struct{})
	}
	adj[x][y] = struct{}{}
}

func sortedEdges(adj map[int]map[int]struct{}, undirected bool) []Edge {
	var edges []Edge
	for u, vs := range adj {
		for v := range vs {
			if undirected && u > v {
				continue
			}
			edges = append(edges, Edge{From: u, To: v})
		}
	}
	slices.SortFunc(edges, func(a, b Edge) int {
		if a.From != b.From {
			return a.From - b.From
		}
		return a.To - b.To
	})
	return edges
}
