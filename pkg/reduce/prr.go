package reduce

import (
	"fmt"

	"github.com/ckrueger/catforest/pkg/graph"
	"github.com/ckrueger/catforest/pkg/stats"
)

// =============================================================================
// PRR applicability predicates
// =============================================================================

// prr1Applicable reports whether the Y-pendant at v can be cut: some cyclic
// core neighbor w of v is on the backbone, or w continues a degree-2 stretch
// whose far vertex is an inner vertex without a P2.
func prr1Applicable(g *graph.Graph, v graph.VertexID) bool {
	for _, e := range g.CyclicCoreNeighbors(v) {
		w := g.Head(e)
		if g.OnBackbone(w) {
			return true
		}
		if g.Degree(w) == 2 {
			ue, ok := g.FirstCyclicCoreNeighborExcept(w, v)
			if !ok {
				continue
			}
			u := g.Head(ue)
			if g.CycCoreDegree(u) == 2 && len(g.Pend(u).PTwos) == 0 {
				return true
			}
		}
	}
	return false
}

// prr2Applicable reports whether v (an inner vertex with a Y-pendant) can be
// bypassed, judged by the pendant categories of its two core neighbors.
func prr2Applicable(g *graph.Graph, v graph.VertexID) bool {
	nh := g.CyclicCoreNeighbors(v)
	if len(nh) != 2 {
		return false
	}
	countSingle := 0
	for _, e := range nh {
		w := g.Head(e)
		if g.CycCoreDegree(w) != 2 {
			continue
		}
		if g.PendantIsY(w) {
			return true
		}
		countSingle++
		xe, ok := g.FirstCyclicCoreNeighborExcept(w, v)
		if !ok {
			continue
		}
		x := g.Head(xe)
		if g.CycCoreDegree(x) == 2 && g.OnBackbone(x) {
			return true
		}
	}
	return countSingle == 2
}

func prr3Applicable(info *PathInfo) bool {
	if len(info.Generators) > 0 {
		return false
	}
	if len(info.Separators) > 0 {
		return true
	}
	if len(info.PendantYs) > 0 {
		return false
	}
	return info.Length == 3
}

func prr4Applicable(g *graph.Graph, info *PathInfo) bool {
	if len(info.Separators) == 0 {
		return false
	}
	return prr4GenApplicable(g, info.Separators[0])
}

func prr5Applicable(info *PathInfo) bool {
	return len(info.Separators) == 0 && len(info.Generators) > 2
}

func prr6Applicable(g *graph.Graph, info *PathInfo) bool {
	return info.IsCycle(g) && len(info.Generators) <= 1
}

// prr7Applicable assumes PRR6 was tried first.
func prr7Applicable(g *graph.Graph, info *PathInfo) bool {
	if !info.IsCycle(g) {
		return false
	}
	return len(g.Pend(g.Tail(info.Start)).PTwos) > 0
}

// =============================================================================
// PRR rule bodies
// =============================================================================

// performPRR1 cuts v's Y-pendant, charging the budget, and discards the split
// off caterpillar.
func performPRR1(in *graph.Instance, v graph.VertexID) graph.Solution {
	g := in.G
	var sol graph.Solution
	p := g.Pend(v)
	e := p.YGraphs[0]
	w := g.Head(e)
	p.YGraphs = p.YGraphs[1:]
	in.DeleteEdgeRecording(e, &sol)
	g.DeleteComponent(w)
	return sol
}

// performPRR2 removes the Y-carrying inner vertex v: on a triangle both
// incident core edges are deleted outright, otherwise v is bypassed with a
// skip edge and one charged deletion.
func performPRR2(in *graph.Instance, st *stats.Stats, v graph.VertexID, info *PathInfo) graph.Solution {
	g := in.G
	var sol graph.Solution

	nh := g.CyclicCoreNeighbors(v)
	u := g.Head(nh[0])
	w := g.Head(nh[1])

	if g.FindEdge(u, w) != graph.NoEdge {
		pathStart := g.Tail(info.Start)
		in.DeleteEdgesRecording(nh, &sol)

		// fold from the endpoint that just fell off the core, unless it
		// anchors the path
		if g.Degree(u)-g.SubtreeNH(u) == 1 {
			if u != pathStart {
				sol.Append(applyTRRsUpwards(in, st, u, w))
			}
		} else {
			if w != pathStart {
				sol.Append(applyTRRsUpwards(in, st, w, u))
			}
		}
	} else {
		sol.Add(graph.PlaceholderAt(g.Label(v)))
		in.K--

		updateStart := g.Head(info.Start) == v
		updateEnd := g.Tail(info.End) == v
		if updateStart && w == g.Tail(info.Start) {
			u, w = w, u
		}
		if updateEnd && u == g.Head(info.End) {
			u, w = w, u
		}

		g.DeleteEdges(nh)
		skip := g.AddEdge(u, w)
		if updateStart {
			info.Start = skip
		}
		if updateEnd {
			info.End = skip
		}

		// obscure the labels of rewired inner vertices so verification knows
		// the named solution entries near them are approximate
		if g.CycCoreDegree(u) == 2 {
			g.AppendLabel(u, "*")
		}
		if g.CycCoreDegree(w) == 2 {
			g.AppendLabel(w, "*")
		}

		if g.IsSeparator(u) {
			info.addSeparator(u)
		} else {
			info.removeSeparator(u)
		}
		if g.IsSeparator(w) {
			info.addSeparator(w)
		} else {
			info.removeSeparator(w)
		}
		info.Length--
	}
	info.Valid = false
	g.DeleteComponent(v)
	return sol
}

// performPRR3 contracts a generator-free path down to a short skeleton,
// attaching pendant leaves to endpoints so their backbone membership stays
// visible. Returns whether the graph changed.
func performPRR3(in *graph.Instance, st *stats.Stats, info *PathInfo, sol *graph.Solution) bool {
	g := in.G

	if len(info.Separators) == 0 {
		if info.Length != 3 {
			panic(fmt.Sprintf("reduce: PRR3 on separator-free path of length %d, want 3", info.Length))
		}
		u := g.Tail(info.Start)
		v := g.Head(info.End)
		change := false
		if !g.OnBackbone(u) {
			AddLeaf(g, u, "")
			sol.Append(performTRRs(in, st, u))
			change = true
		}
		if !g.OnBackbone(v) {
			AddLeaf(g, v, "")
			sol.Append(performTRRs(in, st, v))
			change = true
		}
		return change
	}

	if info.IsCycle(g) {
		// a cycle carrying only separators: cut it open at the start edge
		v := g.Head(info.End)
		x := g.Head(info.Start)
		in.DeleteEdgeRecording(info.Start, sol)
		sol.Append(applyTRRsUpwards(in, st, x, v))
		info.Valid = false
		return true
	}

	e := info.Start
	f := g.Twin(info.End)
	change := false

	u := g.Head(e)
	v := g.Head(f)
	x := g.Tail(info.Start)
	y := g.Head(info.End)
	// here the path is  x --e--> u ... v <--f-- y

	if u != v {
		// contract everything strictly between u and y
		e = g.NextOnDeg2Path(e)
		g.DeleteEdge(e)
		g.DeleteEdge(f)
		g.DeleteComponent(v)
		f2 := g.AddEdge(u, y)

		if len(g.Pend(u).Leaves) == 0 {
			AddLeaf(g, u, "")
		}

		// the path stays valid with its new length and single separator
		info.Separators = info.Separators[:0]
		info.addSeparator(u)
		info.Length = 2
		info.End = f2
		change = true
	}

	if !g.OnBackbone(x) {
		AddLeaf(g, x, "")
		sol.Append(performTRRs(in, st, x))
		change = true
	}
	if !g.OnBackbone(y) {
		AddLeaf(g, y, "")
		sol.Append(performTRRs(in, st, y))
		change = true
	}
	return change
}

// performPRR4 splits the graph at a separator x by duplicating x together
// with its pendant and rewiring one side, then folds both copies away from
// the path anchor.
func performPRR4(in *graph.Instance, st *stats.Stats, info *PathInfo) graph.Solution {
	g := in.G
	var sol graph.Solution
	v := info.Separators[0]

	doNotCross := g.Tail(info.Start)
	e, _ := g.FirstCyclicCoreNeighbor(v)
	w := g.Head(e)

	g.DeleteEdge(e)
	vprime := g.AddVertex(g.Label(v) + "'")
	g.AddEdge(vprime, w)
	copyPendant(g, v, vprime)

	sol.Append(applyTRRsUpwards(in, st, v, doNotCross))
	sol.Append(applyTRRsUpwards(in, st, vprime, doNotCross))

	info.Valid = false
	return sol
}

// performPRR5 compresses a separator-free path with more than two generators,
// charging ⌊(|generators|-1)/2⌋ deletions and reconnecting the stubs with a
// single skip edge. If the skip edge already exists the path was a cycle and
// the duplicate is charged too.
func performPRR5(in *graph.Instance, st *stats.Stats, info *PathInfo) graph.Solution {
	g := in.G
	var sol graph.Solution

	firstToDel := info.Generators[0]
	if len(info.Generators)%2 == 0 {
		firstToDel = g.NextOnDeg2Path(firstToDel)
	}
	lastToDel := info.Generators[len(info.Generators)-1]

	deletes := (len(info.Generators) - 1) / 2
	in.K -= deletes
	// the concrete edges are only determined during verification
	from := g.Label(g.Head(info.Generators[0]))
	to := g.Label(g.Head(lastToDel))
	for i := 0; i < deletes; i++ {
		sol.Add(graph.RangePlaceholder(from, to))
	}

	firstVertex := g.Tail(firstToDel)
	lastVertex := g.Head(lastToDel)
	compToDel := g.Head(firstToDel)
	firstName := g.EdgeString(firstToDel)

	g.DeleteEdge(firstToDel)
	g.DeleteEdge(lastToDel)
	g.DeleteComponent(compToDel)

	if g.FindEdge(firstVertex, lastVertex) != graph.NoEdge {
		// the skip edge already exists: we broke a cycle into a 2-cycle,
		// so the duplicate has to go as well
		sol.Add(firstName)
		in.K--
		sol.Append(applyTRRsUpwards(in, st, lastVertex, firstVertex))
	} else {
		g.AddEdge(firstVertex, lastVertex)
	}
	info.Valid = false
	return sol
}

// performPRR6 opens a cycle with at most one generator, deleting an edge far
// from the generator (or the second cycle edge if there is none).
func performPRR6(in *graph.Instance, st *stats.Stats, info *PathInfo) graph.Solution {
	g := in.G
	var sol graph.Solution
	v := g.Head(info.End)

	if len(info.Separators) > 0 {
		panic("reduce: PRR6 hit a cycle with separators; PRR3 should have reduced it")
	}
	if len(info.Generators) == 0 {
		e := g.NextOnDeg2Path(info.Start)
		y := g.Head(e)
		x := g.Head(info.Start)
		in.DeleteEdgeRecording(e, &sol)
		sol.Append(applyTRRsUpwards(in, st, x, v))
		sol.Append(applyTRRsUpwards(in, st, y, v))
	} else {
		e := g.Twin(info.Generators[0])
		if g.Head(e) != v {
			e = g.NextOnDeg2Path(e)
		}
		x := g.Tail(e)
		y := g.Head(e)
		in.DeleteEdgeRecording(e, &sol)
		sol.Append(applyTRRsUpwards(in, st, x, v))
		sol.Append(applyTRRsUpwards(in, st, y, v))
	}
	info.Valid = false
	return sol
}

// performPRR7 opens a cycle whose anchor carries a P2 by deleting an edge
// next to a generator.
func performPRR7(in *graph.Instance, st *stats.Stats, info *PathInfo) graph.Solution {
	g := in.G
	var sol graph.Solution
	v := g.Head(info.End)

	e := info.Start
	if !g.IsGenerator(g.Head(info.Start)) {
		e = g.NextOnDeg2Path(info.Start)
	}
	x := g.Head(e)
	y := g.Tail(e)
	in.DeleteEdgeRecording(e, &sol)
	sol.Append(applyTRRsUpwards(in, st, x, v))
	sol.Append(applyTRRsUpwards(in, st, y, v))
	info.Valid = false
	return sol
}

// =============================================================================
// Budget-gated rule drivers
// =============================================================================

// budgetExceeded fails the instance and invalidates the path.
func budgetExceeded(in *graph.Instance, info *PathInfo) {
	in.K = -1
	info.Valid = false
}

// prr12FromInfo applies PRR1 and PRR2 at every Y-carrying vertex of the path.
func prr12FromInfo(in *graph.Instance, st *stats.Stats, info *PathInfo, sol *graph.Solution) bool {
	g := in.G
	change := false
	for info.Valid && len(info.PendantYs) > 0 {
		v := info.PendantYs[0]
		switch {
		case prr1Applicable(g, v):
			change = true
			if in.K <= 0 {
				budgetExceeded(in, info)
				return false
			}
			st.CountRule(stats.PRR1)
			info.PendantYs = info.PendantYs[1:]
			sol.Append(performPRR1(in, v))
		case prr2Applicable(g, v):
			change = true
			if in.K <= 0 {
				budgetExceeded(in, info)
				return false
			}
			st.CountRule(stats.PRR2)
			info.PendantYs = info.PendantYs[1:]
			sol.Append(performPRR2(in, st, v, info))
		default:
			// a short path with just a Y-graph: nothing to do
			return change
		}
	}
	return change
}

func prr3FromInfo(in *graph.Instance, st *stats.Stats, info *PathInfo, sol *graph.Solution) bool {
	if !prr3Applicable(info) {
		return false
	}
	st.CountRule(stats.PRR3)
	return performPRR3(in, st, info, sol)
}

func prr4FromInfo(in *graph.Instance, st *stats.Stats, info *PathInfo, sol *graph.Solution) bool {
	if !prr4Applicable(in.G, info) {
		return false
	}
	if in.K <= 0 {
		budgetExceeded(in, info)
		return false
	}
	st.CountRule(stats.PRR4)
	sol.Append(performPRR4(in, st, info))
	return true
}

func prr5FromInfo(in *graph.Instance, st *stats.Stats, info *PathInfo, sol *graph.Solution) bool {
	if !prr5Applicable(info) {
		return false
	}
	if in.K <= 0 {
		budgetExceeded(in, info)
		return false
	}
	st.CountRule(stats.PRR5)
	sol.Append(performPRR5(in, st, info))
	return true
}

func prr6FromInfo(in *graph.Instance, st *stats.Stats, info *PathInfo, sol *graph.Solution) bool {
	if !prr6Applicable(in.G, info) {
		return false
	}
	if in.K <= 0 {
		budgetExceeded(in, info)
		return false
	}
	st.CountRule(stats.PRR6)
	sol.Append(performPRR6(in, st, info))
	return true
}

func prr7FromInfo(in *graph.Instance, st *stats.Stats, info *PathInfo, sol *graph.Solution) bool {
	if !prr7Applicable(in.G, info) {
		return false
	}
	if in.K <= 0 {
		budgetExceeded(in, info)
		return false
	}
	st.CountRule(stats.PRR7)
	sol.Append(performPRR7(in, st, info))
	return true
}

// actOnPathInfo runs the rules in order against one path. A rule that
// invalidates the path returns control immediately.
func actOnPathInfo(in *graph.Instance, st *stats.Stats, info *PathInfo, sol *graph.Solution) bool {
	change := prr12FromInfo(in, st, info, sol)
	if !info.Valid {
		return change
	}
	if prr3FromInfo(in, st, info, sol) {
		change = true
	}
	if !info.Valid {
		return change
	}
	if prr4FromInfo(in, st, info, sol) {
		change = true
	}
	if !info.Valid {
		return change
	}
	if prr5FromInfo(in, st, info, sol) {
		change = true
	}
	if !info.Valid {
		return change
	}
	if prr6FromInfo(in, st, info, sol) {
		change = true
	}
	if !info.Valid {
		return change
	}
	if prr7FromInfo(in, st, info, sol) {
		change = true
	}
	return change
}

// =============================================================================
// PRR8: parallel degree-2 paths between the same anchors
// =============================================================================

// prr8DeleteSecondEdge removes the second edge (or the first, on demand) of
// the less structured one of two anchor-sharing paths and reconciles the path
// bookkeeping.
func prr8DeleteSecondEdge(in *graph.Instance, st *stats.Stats, sol *graph.Solution,
	infoDelete, infoRemain *PathInfo, infos *[]*PathInfo,
	paths map[graph.VertexID]*PathInfo, deleteFirstEdge bool) bool {

	g := in.G
	e := infoDelete.Start
	if !deleteFirstEdge && infoDelete.Length > 1 {
		e = g.NextOnDeg2Path(e)
	}

	v := g.Tail(infoDelete.Start)
	x := g.Head(e)
	y := g.Tail(e)

	st.CountRule(stats.PRR8)
	in.DeleteEdgeRecording(e, sol)

	paths[g.Head(infoRemain.End)] = infoRemain
	for i, pi := range *infos {
		if pi == infoDelete {
			*infos = append((*infos)[:i], (*infos)[i+1:]...)
			break
		}
	}

	sol.Append(applyTRRsUpwards(in, st, x, v))
	sol.Append(applyTRRsUpwards(in, st, y, v))
	return true
}

// applyPRR8 checks the freshly collected path against earlier paths sharing
// the same far anchor. The tie-break prefers to delete on the path with a
// pendant Y, then on the one without separators, then away from a
// backbone-attached endpoint. PRR8 can tear down a lot of structure, so the
// caller restarts its scan after any application.
func applyPRR8(in *graph.Instance, st *stats.Stats, sol *graph.Solution,
	path *PathInfo, infos *[]*PathInfo, paths map[graph.VertexID]*PathInfo) bool {

	g := in.G
	v := g.Head(path.End)

	if len(path.Generators) > 0 {
		return false
	}
	old, ok := paths[v]
	if !ok {
		paths[v] = path
		return false
	}
	if len(old.PendantYs) > 0 {
		return prr8DeleteSecondEdge(in, st, sol, old, path, infos, paths, false)
	}
	if len(path.PendantYs) > 0 {
		return prr8DeleteSecondEdge(in, st, sol, path, old, infos, paths, false)
	}
	// from here, neither path carries a Y-graph
	if len(path.Separators) == 0 || len(old.Separators) == 0 {
		if len(path.Separators) > 0 {
			return prr8DeleteSecondEdge(in, st, sol, old, path, infos, paths, false)
		}
		if len(old.Separators) > 0 {
			return prr8DeleteSecondEdge(in, st, sol, path, old, infos, paths, false)
		}
		// both are plain singleton paths
		if g.OnBackbone(g.Tail(path.Start)) {
			return prr8DeleteSecondEdge(in, st, sol, path, old, infos, paths, false)
		}
		if g.OnBackbone(g.Head(path.End)) {
			return prr8DeleteSecondEdge(in, st, sol, path, old, infos, paths, path.Length < 3)
		}
	}
	return false
}

// =============================================================================
// Per-vertex and whole-graph PRR application
// =============================================================================

// applyPRRsToVertex collects every degree-2 path leaving v and acts on each,
// accumulating still-valid paths for the path branching rules.
func applyPRRsToVertex(in *graph.Instance, st *stats.Stats, sol *graph.Solution,
	infos *[]*PathInfo, v graph.VertexID, mark uint32) bool {

	g := in.G
	if TRR3Gen(in, st, v, sol) {
		return true
	}

	paths := make(map[graph.VertexID]*PathInfo)
	g.SetMark(v, mark)

	change := false
	pathVia := findFirstPath(g, v, mark)
	for pathVia != graph.NoEdge {
		info := gatherPathInfo(g, pathVia, mark)
		pathVia = findNextPath(g, info, mark)
		if actOnPathInfo(in, st, info, sol) {
			change = true
		}
		if info.Valid {
			*infos = append([]*PathInfo{info}, *infos...)
			// PRR8 can destroy the next path, so start over after it fires
			if applyPRR8(in, st, sol, info, infos, paths) {
				return true
			}
		}
		if g.CycCoreDegree(v) < 3 {
			break
		}
	}
	return change
}

// applyPRRsAndTRRsToVertex runs the path rules at v and, if they changed the
// graph, folds v toward the core in case it lost all its paths.
func applyPRRsAndTRRsToVertex(in *graph.Instance, st *stats.Stats, sol *graph.Solution,
	infos *[]*PathInfo, v graph.VertexID, mark uint32) bool {

	if !applyPRRsToVertex(in, st, sol, infos, v, mark) {
		return false
	}
	sol.Append(applyTRRsUpwards(in, st, v))
	return true
}

// ApplyPRRs exhaustively applies the path reduction rules to the instance,
// filling infos with the degree-2 paths that survived for the path branching
// rules. ylMax bounds the graph size up to which the Y-lookahead runs.
func ApplyPRRs(in *graph.Instance, st *stats.Stats, ylMax int, infos *[]*PathInfo) graph.Solution {
	g := in.G
	sol := UpdateClassification(in, st)

	for {
		*infos = (*infos)[:0]

		hasCycDeg3 := false
		hasCycDeg2 := false
		change := false
		mark := g.NextMark()

		for _, v := range g.Vertices() {
			for g.Alive(v) {
				if g.CycCoreDegree(v) > 2 {
					hasCycDeg3 = true
					var vInfos []*PathInfo
					if applyPRRsAndTRRsToVertex(in, st, &sol, &vInfos, v, mark) {
						change = true
						continue // retry this vertex
					}
					// no rule fired here: try the Y-lookahead and keep the
					// collected paths (the lookahead does not change paths)
					if g.NumVertices() < ylMax {
						YLookaheadAt(in, st, &sol, v, in.K)
					}
					*infos = append(*infos, vInfos...)
				} else if g.CycCoreDegree(v) == 2 {
					hasCycDeg2 = true
				}
				break
			}
		}

		if !change && !hasCycDeg3 {
			if hasCycDeg2 {
				// the core is a plain cycle: probe it from every core vertex
				for _, v := range g.Vertices() {
					if !g.Alive(v) || !g.OnCyclicCore(v) {
						continue
					}
					mark = g.NextMark()
					if applyPRRsAndTRRsToVertex(in, st, &sol, infos, v, mark) {
						change = true
						break
					}
				}
			}
			if TRR6(in) {
				change = true
			}
		}

		if !change || in.K <= 0 || g.Empty() {
			break
		}
	}
	// a budget-exhausted exit may still leave finished caterpillars behind
	if in.K == 0 {
		TRR6(in)
	}
	return sol
}
