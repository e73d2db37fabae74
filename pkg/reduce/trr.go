package reduce

import (
	"github.com/ckrueger/catforest/pkg/graph"
	"github.com/ckrueger/catforest/pkg/stats"
)

// =============================================================================
// Pendant classifier (leaves-first work queue)
// =============================================================================

// UpdateClassification rebuilds the pendant classification of every vertex by
// folding finished subtrees toward the cyclic core, applying the tree
// reduction rules opportunistically at every vertex reached. It is a no-op
// while the classification is fresh.
func UpdateClassification(in *graph.Instance, st *stats.Stats) graph.Solution {
	var sol graph.Solution
	g := in.G
	if g.SubtreesFresh {
		return sol
	}

	var queue []graph.VertexID
	for _, v := range g.Vertices() {
		g.InvalidateParent(v)
		*g.Pend(v) = graph.PendantInfo{}
		if g.Degree(v) == 1 && !g.Protected(v) {
			queue = append(queue, v)
		}
	}

	mark := g.NextMark()
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		if !g.Alive(v) {
			continue
		}
		g.SetMark(v, mark)

		sol.Append(performTRRs(in, st, v))
		if !g.Alive(v) {
			continue
		}

		// our subtree is done, so the parent is the only neighbor still
		// carrying the old mark
		toParent := graph.NoEdge
		for e := g.FirstAdj(v); e != graph.NoEdge; e = g.NextAdj(e) {
			if g.Mark(g.Head(e)) != mark {
				toParent = e
				break
			}
		}
		// no parent left means v roots a tree; nothing more to fold
		if toParent == graph.NoEdge {
			continue
		}
		parent := g.Head(toParent)
		classifyChild(g, toParent)

		// queue the parent once all but one of its neighbors are classified
		if !(g.Degree(parent) > g.SubtreeNH(parent)+1) {
			queue = append(queue, parent)
		}
	}

	// the loop never reaches cyclic-core vertices, so sweep them separately
	for _, v := range g.Vertices() {
		if g.Alive(v) && g.OnCyclicCore(v) {
			sol.Append(performTRRs(in, st, v))
		}
	}

	g.SubtreesFresh = true
	return sol
}

// =============================================================================
// Tree reduction rules TRR1-5 at a single vertex
// =============================================================================

// trr14 applies TRR4 then TRR1 at v: a lone P2 below the core turns into a
// leaf, and all redundant leaves are dropped. Leaves never belong to an
// optimal deletion set, so the budget is untouched.
func trr14(in *graph.Instance, st *stats.Stats, v graph.VertexID) bool {
	g := in.G
	p := g.Pend(v)
	result := false

	if len(p.PTwos) == 1 && len(p.YGraphs) == 0 && len(p.TClaws) == 0 && !g.OnCyclicCore(v) {
		st.CountRule(stats.TRR4)
		// drop the P2's leaf; its center becomes a new leaf of v
		middle := g.Head(p.PTwos[0])
		g.DeleteVertex(g.Head(g.Pend(middle).Leaves[0]))
		g.Pend(middle).Leaves = nil
		p.Leaves = append(p.Leaves, p.PTwos[0])
		p.PTwos = p.PTwos[1:]
		result = true
	}

	if len(p.Leaves) > 1 || len(p.PTwos) > 0 {
		st.CountRule(stats.TRR1)
		// keep one leaf, unless a P2 already represents v on the backbone
		keep := 0
		if len(p.PTwos) == 0 {
			keep = 1
		}
		for _, e := range p.Leaves[keep:] {
			g.DeleteVertex(g.Head(e))
		}
		p.Leaves = p.Leaves[:keep]
		result = true
	}
	return result
}

// trr2 deletes redundant pendant Y-graphs at v, charging the budget for each
// cut edge.
func trr2(in *graph.Instance, st *stats.Stats, v graph.VertexID) graph.Solution {
	g := in.G
	p := g.Pend(v)
	leavesAndPTwos := len(p.Leaves) + len(p.PTwos)
	var sol graph.Solution
	var toDel []graph.VertexID

	hasPermanent := false
	if g.OnCyclicCore(v) {
		for _, e := range g.CyclicCoreNeighbors(v) {
			if g.IsPermanent(e) {
				hasPermanent = true
				break
			}
		}
	}

	for len(p.YGraphs) > 0 && (len(p.YGraphs)+leavesAndPTwos > 1 || hasPermanent) {
		st.CountRule(stats.TRR2)
		toDel = append(toDel, g.Head(p.YGraphs[0]))
		in.DeleteEdgeRecording(p.YGraphs[0], &sol)
		p.YGraphs = p.YGraphs[1:]
	}
	for _, u := range toDel {
		g.DeleteComponent(u)
	}
	return sol
}

// trr3 keeps two pendant P2s at v and deletes the rest, charging the budget.
// The deleted edge is recorded as a hint only: after PRR4 split the graph,
// naming the concrete edge could pick the wrong copy.
func trr3(in *graph.Instance, st *stats.Stats, v graph.VertexID) graph.Solution {
	g := in.G
	p := g.Pend(v)
	var sol graph.Solution
	var toDel []graph.VertexID

	for len(p.PTwos) > 2 {
		st.CountRule(stats.TRR3)
		toDel = append(toDel, g.Head(p.PTwos[0]))
		g.DeleteEdge(p.PTwos[0])
		in.K--
		sol.Add(graph.PlaceholderAt(g.Label(v)))
		p.PTwos = p.PTwos[1:]
	}
	for _, u := range toDel {
		g.DeleteComponent(u)
	}
	return sol
}

// trr5 cuts a pendant 2-claw at v, charging the budget, and retries the
// remaining rules at v since TRR4 may have become applicable.
func trr5(in *graph.Instance, st *stats.Stats, v graph.VertexID) graph.Solution {
	g := in.G
	p := g.Pend(v)
	if len(p.TClaws) == 0 {
		return nil
	}
	st.CountRule(stats.TRR5)
	tc := p.TClaws[0]
	w := g.Head(tc)
	var sol graph.Solution

	in.DeleteEdgeRecording(tc, &sol)
	g.DeleteComponent(w)
	p.TClaws = p.TClaws[1:]

	sol.Append(performTRRs(in, st, v))
	return sol
}

// performTRRs applies TRR1-5 at a vertex whose pendant lists are accurate,
// repeating until a fixed point.
func performTRRs(in *graph.Instance, st *stats.Stats, v graph.VertexID) graph.Solution {
	if in.G.Pend(v).Empty() {
		return nil
	}
	var sol graph.Solution
	for {
		oldSize := sol.Size()
		trr14(in, st, v)
		sol.Append(trr2(in, st, v))
		sol.Append(trr3(in, st, v))
		sol.Append(trr5(in, st, v))
		if oldSize == sol.Size() {
			return sol
		}
	}
}

// =============================================================================
// TRR6: remove solved components
// =============================================================================

// blockedComponent walks the component of v and reports whether it contains a
// vertex with more than two non-leaf neighbors, a protected vertex, or a
// cycle - anything that keeps it from being a finished caterpillar. The whole
// component is marked even after the answer is known, so later scans do not
// revisit it.
func blockedComponent(g *graph.Graph, mark uint32, v, parent graph.VertexID) bool {
	if g.Mark(v) == mark {
		// met twice: the component has a cycle
		return true
	}
	g.SetMark(v, mark)
	blocked := g.NLDeg(v) > 2 || g.Protected(v)
	for e := g.FirstAdj(v); e != graph.NoEdge; e = g.NextAdj(e) {
		if h := g.Head(e); h != parent {
			if blockedComponent(g, mark, h, v) {
				blocked = true
			}
		}
	}
	return blocked
}

// TRR6 deletes every connected component that already is a caterpillar. Such
// components are solved with zero deletions, so the budget is untouched.
func TRR6(in *graph.Instance) bool {
	g := in.G
	result := false
	mark := g.NextMark()
	var toDel []graph.VertexID

	for _, v := range g.Vertices() {
		if g.Degree(v) <= 1 && g.Mark(v) != mark {
			if !blockedComponent(g, mark, v, graph.NoVertex) {
				toDel = append(toDel, v)
				result = true
			}
		}
	}
	for _, v := range toDel {
		g.DeleteComponent(v)
	}
	return result
}

// =============================================================================
// Upward propagation and the combined pass
// =============================================================================

// applyTRRsUpwards re-applies the tree reductions from v toward the cyclic
// core after v lost core membership, folding each finished vertex into its
// parent. The walk stops at protected vertices, at any vertex listed in
// doNotCross, at new tree roots and on reaching the core.
func applyTRRsUpwards(in *graph.Instance, st *stats.Stats, v graph.VertexID, doNotCross ...graph.VertexID) graph.Solution {
	g := in.G
	var sol graph.Solution
	stop := make(map[graph.VertexID]bool, len(doNotCross))
	for _, u := range doNotCross {
		stop[u] = true
	}

	for {
		sol.Append(performTRRs(in, st, v))
		if stop[v] || g.Protected(v) {
			return sol
		}
		if g.Degree(v)-g.SubtreeNH(v) != 1 {
			// back on the cyclic core, or v roots a finished tree
			return sol
		}
		toParent, ok := g.Parent(v)
		if !ok {
			return sol
		}
		classifyChild(g, toParent)
		v = g.Head(toParent)
	}
}

// ApplyTRRs runs the full tree-reduction pass: classification with
// opportunistic TRR1-5, then TRR6.
func ApplyTRRs(in *graph.Instance, st *stats.Stats) graph.Solution {
	sol := UpdateClassification(in, st)
	if TRR6(in) {
		st.CountRule(stats.TRR6)
	}
	return sol
}
