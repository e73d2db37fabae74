package graph

import "strings"

// Solution is the ordered sequence of deleted edges, each rendered
// canonically as "u->v" by vertex labels. Reductions that commit to a
// deletion count without naming the edge record placeholders instead; see
// [PlaceholderAt] and [RangePlaceholder].
type Solution []string

// Add appends entries to the solution.
func (s *Solution) Add(entries ...string) { *s = append(*s, entries...) }

// Append concatenates another solution.
func (s *Solution) Append(other Solution) { *s = append(*s, other...) }

// Size returns the number of recorded deletions.
func (s Solution) Size() int { return len(s) }

// String renders the solution as a space-separated list.
func (s Solution) String() string { return strings.Join(s, " ") }

// PlaceholderAt records the deletion of some unspecified edge at the vertex
// with the given label.
func PlaceholderAt(label string) string { return label + "->?" }

// RangePlaceholder records the deletion of some edge on the path stretch
// between the two labelled vertices.
func RangePlaceholder(from, to string) string {
	return "[some edge between " + from + " and " + to + "]"
}

// FESPlaceholder records the deletion of an unnamed non-bridge edge; the
// greedy upper bound uses it for its trailing feedback edge set.
const FESPlaceholder = "[a non-bridge]"

// Instance couples a graph with the remaining deletion budget k. A negative
// budget marks a failed search branch.
type Instance struct {
	G *Graph
	K int
}

// NewInstance wraps a graph with the given budget.
func NewInstance(g *Graph, k int) *Instance { return &Instance{G: g, K: k} }

// Clone deep-copies the instance; outmap receives the vertex translation if
// non-nil.
func (in *Instance) Clone(outmap map[VertexID]VertexID) *Instance {
	return &Instance{G: in.G.Clone(outmap), K: in.K}
}

// DeleteEdge deletes e, charges the budget, and returns the next half-edge in
// the tail's adjacency.
func (in *Instance) DeleteEdge(e EdgeID) EdgeID {
	in.K--
	return in.G.DeleteEdge(e)
}

// DeleteEdgeRecording deletes e, charges the budget, and registers the edge
// in the solution.
func (in *Instance) DeleteEdgeRecording(e EdgeID, sol *Solution) EdgeID {
	sol.Add(in.G.EdgeString(e))
	return in.DeleteEdge(e)
}

// DeleteEdges deletes all listed edges, charging the budget for each.
func (in *Instance) DeleteEdges(el []EdgeID) {
	for _, e := range el {
		in.DeleteEdge(e)
	}
}

// DeleteEdgesRecording deletes all listed edges, charging the budget and
// recording each in the solution.
func (in *Instance) DeleteEdgesRecording(el []EdgeID, sol *Solution) {
	for _, e := range el {
		in.DeleteEdgeRecording(e, sol)
	}
}

// EdgesToSolution renders an edge list as solution entries.
func (g *Graph) EdgesToSolution(el []EdgeID) Solution {
	sol := make(Solution, 0, len(el))
	for _, e := range el {
		sol.Add(g.EdgeString(e))
	}
	return sol
}
