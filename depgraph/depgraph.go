// Package depgraph implements the directed graph of strong
// capability-routing dependencies and its cycle detection.
//
// Nodes are either "self" (this component) or a named entity (child,
// collection, environment, or capability name, depending on context).
// The graph is built once per validation run; Toposort proves it
// acyclic or reports every witness cycle with a deterministic
// rendering.
package depgraph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/routekit-dev/routekit/manifest/values"
)

// Node is the unit of the dependency graph.
type Node struct {
	self bool
	name string
}

// Self returns the node for this component.
func Self() Node {
	return Node{self: true}
}

// Named returns the node for a named entity.
func Named(name string) Node {
	return Node{name: name}
}

// IsSelf reports whether the node is the self node.
func (n Node) IsSelf() bool {
	return n.self
}

// Display renders the node for diagnostics: "self" or "#<name>".
func (n Node) Display() string {
	if n.self {
		return "self"
	}
	return "#" + n.name
}

// ProjectReference projects a routing reference onto a graph node.
// Parent, framework, debug, void, and the "all" target sentinel are
// resolved by encompassing scopes and cannot participate in a cycle
// local to one manifest, so they project to no node.
func ProjectReference(ref values.Reference) (Node, bool) {
	switch ref.Kind() {
	case values.RefSelf:
		return Self(), true
	case values.RefNamed, values.RefChild:
		return Named(ref.Name().String()), true
	case values.RefParent, values.RefFramework, values.RefDebug, values.RefVoid, values.RefAll:
		return Node{}, false
	}
	return Node{}, false
}

// Graph is a mutable directed dependency graph. The zero value is not
// usable; construct with New.
type Graph struct {
	nodes map[Node]bool
	succs map[Node]map[Node]bool
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[Node]bool),
		succs: make(map[Node]map[Node]bool),
	}
}

// AddNode ensures a node is present.
func (g *Graph) AddNode(n Node) {
	g.nodes[n] = true
}

// AddEdge inserts a dependency edge from -> to. A self-to-self edge is
// skipped: routing from this component to itself is not a cycle.
func (g *Graph) AddEdge(from, to Node) {
	if from.IsSelf() && to.IsSelf() {
		return
	}
	g.AddNode(from)
	g.AddNode(to)
	if g.succs[from] == nil {
		g.succs[from] = make(map[Node]bool)
	}
	g.succs[from][to] = true
}

// Nodes returns all nodes sorted by display string.
func (g *Graph) Nodes() []Node {
	nodes := make([]Node, 0, len(g.nodes))
	for n := range g.nodes {
		nodes = append(nodes, n)
	}
	sortNodes(nodes)
	return nodes
}

// Successors returns the successors of a node sorted by display string.
func (g *Graph) Successors(n Node) []Node {
	succs := make([]Node, 0, len(g.succs[n]))
	for s := range g.succs[n] {
		succs = append(succs, s)
	}
	sortNodes(succs)
	return succs
}

// HasEdge reports whether the edge from -> to is present.
func (g *Graph) HasEdge(from, to Node) bool {
	return g.succs[from][to]
}

func sortNodes(nodes []Node) {
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].Display() < nodes[j].Display()
	})
}

// maxReportedCycles bounds cycle enumeration; pathological graphs can
// hold exponentially many elementary cycles.
const maxReportedCycles = 64

// CycleError reports that the graph is not acyclic. It carries every
// enumerated witness cycle, each an ordered node sequence starting and
// ending at the cycle's lexicographically smallest node.
type CycleError struct {
	Cycles [][]Node
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	return "dependency cycle(s) exist: " + e.Render()
}

// Render formats the cycle set deterministically: each cycle is its
// nodes joined by " -> " and wrapped in braces; cycles are sorted
// lexicographically and comma-joined inside an outer brace pair, e.g.
// {{#a -> #b -> #a}, {#b -> #d -> #b}}.
func (e *CycleError) Render() string {
	rendered := make([]string, len(e.Cycles))
	for i, cycle := range e.Cycles {
		displays := make([]string, len(cycle))
		for j, n := range cycle {
			displays[j] = n.Display()
		}
		rendered[i] = "{" + strings.Join(displays, " -> ") + "}"
	}
	sort.Strings(rendered)
	return "{" + strings.Join(rendered, ", ") + "}"
}

// Toposort returns a topological ordering of the graph, or a
// *CycleError when none exists. Both the ordering and the cycle report
// are deterministic for a fixed graph: ties break on node display
// strings.
func (g *Graph) Toposort() ([]Node, error) {
	indegree := make(map[Node]int, len(g.nodes))
	for n := range g.nodes {
		indegree[n] = 0
	}
	for _, succs := range g.succs {
		for s := range succs {
			indegree[s]++
		}
	}

	// Kahn's algorithm, always removing the smallest ready node.
	ready := make([]Node, 0, len(g.nodes))
	for n, d := range indegree {
		if d == 0 {
			ready = append(ready, n)
		}
	}
	sortNodes(ready)

	order := make([]Node, 0, len(g.nodes))
	for len(ready) > 0 {
		n := ready[0]
		ready = ready[1:]
		order = append(order, n)
		inserted := false
		for _, s := range g.Successors(n) {
			indegree[s]--
			if indegree[s] == 0 {
				ready = append(ready, s)
				inserted = true
			}
		}
		if inserted {
			sortNodes(ready)
		}
	}

	if len(order) == len(g.nodes) {
		return order, nil
	}

	cycles := g.elementaryCycles()
	if len(cycles) == 0 {
		// Unreachable: leftover nodes imply at least one cycle.
		return nil, fmt.Errorf("graph not acyclic but no cycle found")
	}
	return nil, &CycleError{Cycles: cycles}
}

// elementaryCycles enumerates elementary cycles, each rooted at its
// smallest node: for every node s in display order, a DFS restricted to
// nodes not smaller than s records every simple path from s back to s.
func (g *Graph) elementaryCycles() [][]Node {
	nodes := g.Nodes()
	rank := make(map[Node]int, len(nodes))
	for i, n := range nodes {
		rank[n] = i
	}

	var cycles [][]Node
	for i, start := range nodes {
		if len(cycles) >= maxReportedCycles {
			break
		}
		onPath := map[Node]bool{start: true}
		path := []Node{start}

		var visit func(n Node)
		visit = func(n Node) {
			for _, s := range g.Successors(n) {
				if len(cycles) >= maxReportedCycles {
					return
				}
				if rank[s] < i {
					continue
				}
				if s == start {
					cycle := make([]Node, len(path)+1)
					copy(cycle, path)
					cycle[len(path)] = start
					cycles = append(cycles, cycle)
					continue
				}
				if onPath[s] {
					continue
				}
				onPath[s] = true
				path = append(path, s)
				visit(s)
				path = path[:len(path)-1]
				delete(onPath, s)
			}
		}
		visit(start)
	}
	return cycles
}
