// Package prefgraph models the pairwise judgments of a single criterion as a
// graph and answers "is x at least as good as y" by reachability.
//
// # Overview
//
// A criterion contributes judgments of two kinds:
//
//   - strict preference, "x is better than y", stored as a directed edge x→y
//   - equivalence, "x and y are interchangeable", stored as edges both ways
//
// [Graph.IsPreferred] walks both edge sets breadth-first without telling them
// apart, so it decides membership in the transitive closure of
// strict ∪ equivalence. A node always reaches itself.
//
// # Basic Usage
//
// Build one graph per criterion, either incrementally or from relations:
//
//	g := prefgraph.New()
//	g.AddPreference(1, 2) // 1 > 2
//	g.AddEquivalence(2, 3) // 2 = 3
//	g.IsPreferred(1, 3)   // true
//
//	rels, _ := prefgraph.ParseRelations([]string{"1>2", "2=3"})
//	g, _ = prefgraph.FromRelations(rels)
//
// [Graph.Reset] empties a graph so it can be reused, but building a fresh
// graph per criterion with [FromRelations] avoids any ordering hazard between
// populating, querying and resetting.
//
// # Relations
//
// [Relation] is the wire form of a judgment. Its text encoding is compact,
// "1>2" or "2=3", and is used by scenario files, CLI flags and the API.
//
// # Concurrency
//
// Graph is not safe for concurrent mutation. Concurrent IsPreferred calls on
// a graph that is no longer being mutated are safe.
package prefgraph
