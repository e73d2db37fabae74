package reduce

import (
	"github.com/ckrueger/catforest/pkg/graph"
	"github.com/ckrueger/catforest/pkg/stats"
)

// =============================================================================
// Split rule
// =============================================================================

// splittable reports whether the bridge b can be split at its head: the head
// must not be a leaf and neither it nor any of its neighbors may have more
// than two non-leaf neighbors.
func splittable(g *graph.Graph, b graph.EdgeID) bool {
	v := g.Head(b)
	if g.Degree(v) <= 1 {
		return false
	}
	if g.NLDeg(v) > 2 {
		return false
	}
	for e := g.FirstAdj(v); e != graph.NoEdge; e = g.NextAdj(e) {
		if g.NLDeg(g.Head(e)) > 2 {
			return false
		}
	}
	return true
}

// splitAt replaces the bridge b by a fresh pendant leaf at its tail. Purely
// structural: the budget is untouched.
func splitAt(in *graph.Instance, b graph.EdgeID) {
	g := in.G
	v := g.Head(b)
	u := g.Tail(b)
	vprime := g.AddVertex(g.Label(v) + "'")
	g.AddEdge(vprime, u)
	g.DeleteEdge(b)
}

// ApplySplitRule finds a splittable B-bridge and splits it, reporting whether
// a split happened.
func ApplySplitRule(in *graph.Instance) bool {
	g := in.G
	for _, b := range g.BBridges() {
		if splittable(g, b) {
			splitAt(in, b)
			return true
		}
		if splittable(g, g.Twin(b)) {
			splitAt(in, g.Twin(b))
			return true
		}
	}
	return false
}

// =============================================================================
// Generator-free reachability (PRR4 generalization, path branching)
// =============================================================================

// ExistsGenFreePath reports whether v is reachable from u without crossing x
// or any generator. Pass x == u to forbid taking the direct edge uv instead
// of forbidding a vertex.
func ExistsGenFreePath(g *graph.Graph, u, v, x graph.VertexID) bool {
	if g.IsGenerator(u) || g.IsGenerator(v) {
		return false
	}
	// the path rules keep their own marks alive, so use a local visited set
	visited := make(map[graph.VertexID]bool)
	var queue []graph.VertexID
	if x == u {
		visited[u] = true
		for e := g.FirstAdj(u); e != graph.NoEdge; e = g.NextAdj(e) {
			if g.Head(e) != v {
				queue = append(queue, g.Head(e))
			}
		}
	} else {
		queue = append(queue, u)
	}
	for len(queue) > 0 {
		w := queue[0]
		queue = queue[1:]
		visited[w] = true
		if w == x || g.IsGenerator(w) {
			continue
		}
		if w == v {
			return true
		}
		for e := g.FirstAdj(w); e != graph.NoEdge; e = g.NextAdj(e) {
			if !visited[g.Head(e)] {
				queue = append(queue, g.Head(e))
			}
		}
	}
	return false
}

// prr4GenApplicable decides the generalized PRR4 at a separator: it applies
// at a double-P2 separator outright, and otherwise when the separator's two
// core neighbors are not connected by a generator-free detour avoiding it.
func prr4GenApplicable(g *graph.Graph, separator graph.VertexID) bool {
	if len(g.Pend(separator).PTwos) > 1 {
		return true
	}
	el := g.CyclicCoreNeighbors(separator)
	if len(el) != 2 {
		return false
	}
	return !ExistsGenFreePath(g, g.Head(el[0]), g.Head(el[1]), separator)
}

// =============================================================================
// trr3_gen: double-P2 core vertices pin the backbone
// =============================================================================

// TRR3Gen fires at a cyclic-core vertex with two or more P2 pendants: every
// incident core edge is replaced by a fresh Y-pendant, which prevents any
// future branching at v.
func TRR3Gen(in *graph.Instance, st *stats.Stats, v graph.VertexID, sol *graph.Solution) bool {
	g := in.G
	if !g.OnCyclicCore(v) {
		return false
	}
	if len(g.Pend(v).PTwos) < 2 {
		return false
	}
	st.CountRule(stats.TRR3)

	cn := g.CyclicCoreNeighbors(v)

	doNotCross := make([]graph.VertexID, 0, len(cn))
	for _, e := range cn {
		doNotCross = append(doNotCross, g.Head(e))
	}

	for i, e := range cn {
		u := g.Head(e)
		Ygraphify(g, e)
		sol.Append(applyTRRsUpwards(in, st, u, doNotCross[i+1:]...))
	}
	return true
}

// =============================================================================
// Y-lookahead
// =============================================================================

// YLookaheadAt compares the degree of a Y-carrying vertex against the upper
// bound: exceeding it forces the Y-edge out, matching it is probed by a
// hypothetical deletion of all other edges under TRR6.
func YLookaheadAt(in *graph.Instance, st *stats.Stats, sol *graph.Solution, v graph.VertexID, upperBound int) bool {
	g := in.G
	p := g.Pend(v)
	if len(p.YGraphs) == 0 {
		return false
	}
	cycVDeg := g.Degree(v) - 1
	switch {
	case cycVDeg < upperBound:
		return false
	case cycVDeg == upperBound:
		outmap := make(map[graph.VertexID]graph.VertexID)
		probe := in.Clone(outmap)
		vprime := outmap[v]
		wprime := outmap[g.Head(p.YGraphs[0])]
		for f := probe.G.FirstAdj(vprime); f != graph.NoEdge; {
			if probe.G.Head(f) == wprime {
				f = probe.G.NextAdj(f)
			} else {
				f = probe.G.DeleteEdge(f)
			}
		}
		TRR6(probe)
		if probe.G.Empty() {
			// keeping only the Y-edge solves the graph; no forced move
			return false
		}
		fallthrough
	default:
		in.DeleteEdgeRecording(p.YGraphs[0], sol)
		p.YGraphs = p.YGraphs[1:]
		st.CountRule(stats.YLookahead)
		return true
	}
}

// YLookahead applies the lookahead to every vertex when the graph is small
// enough (fewer than maxSize vertices).
func YLookahead(in *graph.Instance, st *stats.Stats, sol *graph.Solution, maxSize, upperBound int) bool {
	if in.G.NumVertices() >= maxSize {
		return false
	}
	result := false
	for _, v := range in.G.Vertices() {
		if in.G.Alive(v) && YLookaheadAt(in, st, sol, v, upperBound) {
			result = true
		}
	}
	return result
}
