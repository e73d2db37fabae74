package solve

import (
	"sort"

	"github.com/ckrueger/catforest/pkg/graph"
	"github.com/ckrueger/catforest/pkg/reduce"
	"github.com/ckrueger/catforest/pkg/stats"
)

// =============================================================================
// Branch operation types
// =============================================================================

// ModType says how a branch modifies an edge.
type ModType int

const (
	// Del deletes the edge, charging the budget.
	Del ModType = iota
	// Yify replaces the edge by a pendant Y-graph at its head.
	Yify
)

// GraphMod is one modification of a branch.
type GraphMod struct {
	Type ModType
	E    graph.EdgeID
}

// Branch is the list of modifications one child instance applies.
type Branch []GraphMod

// BranchOp is a candidate branching operation: a set of alternative branches
// together with the rule kind that produced it. Bnum caches the branching
// number once computed; zero means not yet known. A single-branch operation
// is a reduction in disguise.
type BranchOp struct {
	Kind     stats.BranchKind
	Branches []Branch
	Bnum     float64
}

// addBranch appends el as a new branch, converting each edge into a
// modification of the given type. Non-relevant A-bridges never belong in a
// branch, so A-bridge edges are filtered out.
func addBranch(g *graph.Graph, bo *BranchOp, el []graph.EdgeID, mt ModType) {
	var br Branch
	for _, e := range el {
		if !g.IsABridge(e) {
			br = append(br, GraphMod{Type: mt, E: e})
		}
	}
	bo.Branches = append(bo.Branches, br)
}

// =============================================================================
// Path helpers
// =============================================================================

// skipDeg2Path follows the degree-2 path in the given direction and returns
// the edge arriving at the first vertex that is not an inner path vertex, or
// at doNotCross.
func skipDeg2Path(g *graph.Graph, direction graph.EdgeID, doNotCross graph.VertexID) graph.EdgeID {
	for g.Head(direction) != doNotCross {
		if g.CycCoreDegree(g.Head(direction)) != 2 {
			return direction
		}
		direction = g.NextOnDeg2Path(direction)
	}
	return direction
}

// skipDeg2PathFindingSeparators walks like skipDeg2Path but reports whether
// any inner vertex passed is a separator, returning the final edge.
func skipDeg2PathFindingSeparators(g *graph.Graph, e graph.EdgeID, doNotCross graph.VertexID) (graph.EdgeID, bool) {
	found := false
	for g.Head(e) != doNotCross && g.CycCoreDegree(g.Head(e)) < 3 {
		if g.IsSeparator(g.Head(e)) {
			found = true
		}
		e = g.NextOnDeg2Path(e)
	}
	return e, found
}

// =============================================================================
// BRR1: triangles
// =============================================================================

// triangleDegenerate reports whether the triangle u-v-w collapses two of its
// deletion branches: v is a degree-2 core vertex with a Y-pendant, or all
// three corners are bare inner vertices.
func triangleDegenerate(g *graph.Graph, v, u, w graph.VertexID) bool {
	if g.CycCoreDegree(v) == 2 && g.PendantIsY(v) {
		return true
	}
	return g.CycCoreDegree(u) == 2 && g.CycCoreDegree(w) == 2 &&
		g.Pend(v).Count() == 0 && g.Pend(u).Count() == 0 && g.Pend(w).Count() == 0
}

// BRR1 looks for a cyclic triangle at v and enumerates its deletion branches,
// skipping permanent edges. One triangle per vertex suffices.
func BRR1(g *graph.Graph, v graph.VertexID, br *[]BranchOp) bool {
	nonBridges := g.CyclicNeighbors(v)
	for i, a := range nonBridges {
		for _, b := range nonBridges[i+1:] {
			c := g.FindEdge(g.Head(a), g.Head(b))
			if c == graph.NoEdge {
				continue
			}
			bo := BranchOp{Kind: stats.Triangle}
			if triangleDegenerate(g, v, g.Head(a), g.Head(b)) {
				if !g.IsPermanent(a) && !g.IsPermanent(b) {
					bo.Branches = append(bo.Branches, Branch{{Del, a}, {Del, b}})
				}
				if !g.IsPermanent(c) {
					bo.Branches = append(bo.Branches, Branch{{Del, c}})
				}
			} else {
				for _, e := range []graph.EdgeID{a, b, c} {
					if !g.IsPermanent(e) {
						bo.Branches = append(bo.Branches, Branch{{Del, e}})
					}
				}
			}
			if len(bo.Branches) > 0 {
				*br = append(*br, bo)
				return true
			}
		}
	}
	return false
}

// =============================================================================
// BRR2-5: 2-claws
// =============================================================================

// clawLeg pairs a branching head edge with E_i, all edges at the head except
// the connecting one.
type clawLeg struct {
	head graph.EdgeID
	E    []graph.EdgeID
}

// brr2 handles the all-singleton case: three singleton branches plus the
// combined heads branch.
func brr2(g *graph.Graph, legs []clawLeg, br *[]BranchOp) bool {
	bo := BranchOp{Kind: stats.Claw0}
	var heads []graph.EdgeID
	for _, l := range legs {
		if len(l.E) != 1 {
			return false
		}
		addBranch(g, &bo, l.E, Del)
		heads = append(heads, l.head)
	}
	if len(heads) > 2 {
		addBranch(g, &bo, heads, Del)
	}
	*br = append(*br, bo)
	return true
}

// brr3 handles exactly one big leg.
func brr3(g *graph.Graph, legs []clawLeg, br *[]BranchOp) bool {
	big := 0
	bo := BranchOp{Kind: stats.Claw1}
	var smallHeads []graph.EdgeID
	for _, l := range legs {
		if len(l.E) > 1 {
			if big++; big > 1 {
				return false
			}
			addBranch(g, &bo, l.E, Del)
			addBranch(g, &bo, []graph.EdgeID{l.head}, Del)
		} else {
			addBranch(g, &bo, l.E, Del)
			smallHeads = append(smallHeads, l.head)
		}
	}
	if len(smallHeads) > 1 {
		addBranch(g, &bo, smallHeads, Del)
	}
	*br = append(*br, bo)
	return true
}

// brr4 handles exactly two big legs.
func brr4(g *graph.Graph, legs []clawLeg, br *[]BranchOp) bool {
	big := 0
	bo := BranchOp{Kind: stats.Claw2}
	for _, l := range legs {
		if len(l.E) > 1 {
			if big++; big > 2 {
				return false
			}
			addBranch(g, &bo, l.E, Del)
			addBranch(g, &bo, []graph.EdgeID{l.head}, Del)
		} else {
			addBranch(g, &bo, l.E, Del)
		}
	}
	*br = append(*br, bo)
	return true
}

// brr5 handles three big legs.
func brr5(g *graph.Graph, legs []clawLeg, br *[]BranchOp) bool {
	bo := BranchOp{Kind: stats.Claw3}
	for _, l := range legs {
		addBranch(g, &bo, l.E, Del)
		addBranch(g, &bo, []graph.EdgeID{l.head}, Del)
	}
	*br = append(*br, bo)
	return true
}

// eligibleBranchingHead rejects heads that are leaves and Y-pendant edges on
// degree-2 stretches (those are non-relevant A-bridges).
func eligibleBranchingHead(g *graph.Graph, e graph.EdgeID) bool {
	if g.Degree(g.Head(e)) == 1 {
		return false
	}
	v := g.Tail(e)
	if g.NonBridgeDegree(v) == 2 && g.PendantIsY(v) && g.Pend(v).YGraphs[0] == e {
		return false
	}
	return true
}

// nonABridgeBranchingHeads collects the eligible non-A-bridge heads at v.
func nonABridgeBranchingHeads(g *graph.Graph, v graph.VertexID) []graph.EdgeID {
	var el []graph.EdgeID
	for e := g.FirstAdj(v); e != graph.NoEdge; e = g.NextAdj(e) {
		if !g.IsABridge(e) && eligibleBranchingHead(g, e) {
			el = append(el, e)
		}
	}
	return el
}

// headRank orders candidate heads: vertices pinned to the backbone first,
// then by descending degree, with degree-2 heads trailing so that the suffix
// condition on the selected triple holds.
func headRank(g *graph.Graph, e graph.EdgeID) int {
	h := g.Head(e)
	if g.Degree(h) == 2 {
		return 2
	}
	p := g.Pend(h)
	if len(p.Leaves) > 0 || len(p.PTwos) > 0 {
		return 0
	}
	return 1
}

// bringInOrder checks whether deleting el[i] would turn el[j] into a bridge;
// if so el[j] is swapped with its successor. Without a successor the heads
// cannot be used at all and el is emptied.
func bringInOrder(g *graph.Graph, el *[]graph.EdgeID, i, j int) {
	v := g.Tail((*el)[i])
	e := skipDeg2Path(g, (*el)[i], v)
	if g.Twin(e) != (*el)[j] {
		return
	}
	if j+1 >= len(*el) {
		*el = (*el)[:0]
		return
	}
	(*el)[j], (*el)[j+1] = (*el)[j+1], (*el)[j]
}

// selectBranchingHeads narrows the candidate list down to the three heads the
// claw rules branch on. P2 pendants stand in for missing heads.
func selectBranchingHeads(g *graph.Graph, el *[]graph.EdgeID) bool {
	v := g.Tail((*el)[0])
	ptwos := len(g.Pend(v).PTwos)
	if len(*el)+ptwos < 3 {
		return false
	}

	sort.SliceStable(*el, func(i, j int) bool {
		ri, rj := headRank(g, (*el)[i]), headRank(g, (*el)[j])
		if ri != rj {
			return ri < rj
		}
		if ri == 1 {
			return g.Degree(g.Head((*el)[i])) > g.Degree(g.Head((*el)[j]))
		}
		return false
	})

	if ptwos == 0 {
		if g.Degree(g.Head((*el)[0])) == 2 {
			bringInOrder(g, el, 0, 1)
		}
		if len(*el) == 0 {
			return false
		}
		if g.Degree(g.Head((*el)[0])) > 2 && g.Degree(g.Head((*el)[1])) == 2 {
			bringInOrder(g, el, 1, 2)
		}
		if len(*el) == 0 {
			return false
		}
	}
	*el = (*el)[:3-ptwos]
	return true
}

// computeEi returns all edges at the head of ei except the connecting edge.
func computeEi(g *graph.Graph, ei graph.EdgeID) []graph.EdgeID {
	var el []graph.EdgeID
	rev := g.Twin(ei)
	for e := g.FirstAdj(g.Head(ei)); e != graph.NoEdge; e = g.NextAdj(e) {
		if e != rev {
			el = append(el, e)
		}
	}
	return el
}

// BRR2to5 branches on a 2-claw rooted at v. The partition of the selected
// heads by |E_i| decides which of the four claw rules fires; exactly one
// always does.
func BRR2to5(g *graph.Graph, v graph.VertexID, br *[]BranchOp) bool {
	if g.NLDeg(v) < 3 {
		return false
	}
	heads := nonABridgeBranchingHeads(g, v)
	if len(heads) == 0 {
		return false
	}
	if !selectBranchingHeads(g, &heads) {
		return false
	}

	legs := make([]clawLeg, 0, len(heads))
	for _, e := range heads {
		legs = append(legs, clawLeg{head: e, E: computeEi(g, e)})
	}

	if brr2(g, legs, br) {
		return true
	}
	if brr3(g, legs, br) {
		return true
	}
	if brr4(g, legs, br) {
		return true
	}
	if brr5(g, legs, br) {
		return true
	}
	panic("solve: claw branching rules are not exhaustive")
}

// =============================================================================
// BRR6: token vertices
// =============================================================================

// cleanNeighbors deduplicates v's branching directions: of two edges whose
// deletion would turn the other into an A-bridge, only one is kept; leaves
// and A-bridges are dropped. The first direction hiding a separator is
// reported as disallowed - a kept leg must run through it.
func cleanNeighbors(g *graph.Graph, v graph.VertexID) (cleanNH []graph.EdgeID, disallowed graph.EdgeID) {
	used := make(map[graph.VertexID]bool)
	disallowed = graph.NoEdge
	hasP2 := len(g.Pend(v).PTwos) > 0

	for e := g.FirstAdj(v); e != graph.NoEdge; e = g.NextAdj(e) {
		if g.IsABridge(e) {
			continue
		}
		if g.IsBridge(e) || hasP2 {
			used[g.Head(e)] = true
			cleanNH = append(cleanNH, e)
			if disallowed == graph.NoEdge {
				if _, sep := skipDeg2PathFindingSeparators(g, e, v); sep {
					disallowed = e
				}
			}
		} else {
			f, sep := skipDeg2PathFindingSeparators(g, e, v)
			if g.Head(f) != v || !used[g.Tail(f)] {
				used[g.Head(e)] = true
				cleanNH = append(cleanNH, e)
				if sep && disallowed == graph.NoEdge {
					disallowed = e
				}
			}
		}
	}
	return cleanNH, disallowed
}

// BRR6 branches on which two legs of the caterpillar pass through a token
// vertex, Y-graphifying the rest. If v could still become a leaf, additional
// branches guess its single backbone neighbor, honoring permanent edges.
func BRR6(g *graph.Graph, v graph.VertexID, br *[]BranchOp) bool {
	if !g.OnCyclicCore(v) || g.NLDeg(v) <= 2 {
		return false
	}
	bo := BranchOp{Kind: stats.Token}
	hasP2 := len(g.Pend(v).PTwos) > 0

	cleanNH, disallowed := cleanNeighbors(g, v)
	hasDisallowed := disallowed != graph.NoEdge

	need := len(cleanNH)
	if hasP2 {
		need++
	}
	if need < 3 {
		return false
	}

	// enumerate the leg sets to keep; a P2 or forced separator leg stands in
	// for one of the two
	var keepLegs [][]graph.EdgeID
	switch {
	case hasP2 && hasDisallowed:
		keepLegs = append(keepLegs, nil)
	default:
		for i, keep1 := range cleanNH {
			if keep1 == disallowed {
				continue
			}
			if !hasP2 && !hasDisallowed {
				for _, keep2 := range cleanNH[i+1:] {
					keepLegs = append(keepLegs, []graph.EdgeID{keep1, keep2})
				}
			} else {
				keepLegs = append(keepLegs, []graph.EdgeID{keep1})
			}
		}
	}

	for _, leg := range keepLegs {
		if hasDisallowed {
			leg = append(leg, disallowed)
		}
		kept := make(map[graph.EdgeID]bool, len(leg))
		for _, e := range leg {
			kept[e] = true
		}
		var branch []graph.EdgeID
		for _, e := range cleanNH {
			if !kept[e] {
				branch = append(branch, e)
			}
		}
		addBranch(g, &bo, branch, Yify)
	}

	if !g.OnBackbone(v) {
		// v might become a leaf: guess its sole kept neighbor
		perm := graph.NoEdge
		for e := g.FirstAdj(v); e != graph.NoEdge; e = g.NextAdj(e) {
			if g.IsPermanent(e) {
				if perm != graph.NoEdge {
					// two permanent edges pin v to the backbone
					*br = append(*br, bo)
					return true
				}
				perm = e
			}
		}
		if perm != graph.NoEdge {
			var el []graph.EdgeID
			for f := g.FirstAdj(v); f != graph.NoEdge; f = g.NextAdj(f) {
				if f != perm {
					el = append(el, f)
				}
			}
			addBranch(g, &bo, el, Del)
		} else {
			for e := g.FirstAdj(v); e != graph.NoEdge; e = g.NextAdj(e) {
				var el []graph.EdgeID
				for f := g.FirstAdj(v); f != graph.NoEdge; f = g.NextAdj(f) {
					if f != e {
						el = append(el, f)
					}
				}
				addBranch(g, &bo, el, Del)
			}
		}
	}
	*br = append(*br, bo)
	return true
}

// =============================================================================
// BRR7/8: long degree-2 paths between separated backbone anchors
// =============================================================================

// pathBranchingApplicable requires a generator-free path whose backbone
// anchors are weakly separated in the graph minus the path.
func pathBranchingApplicable(g *graph.Graph, info *reduce.PathInfo) bool {
	if len(info.Generators) > 0 {
		return false
	}
	u := g.Tail(info.Start)
	v := g.Head(info.End)
	if !g.OnBackbone(u) || !g.OnBackbone(v) {
		return false
	}
	x := g.Head(info.Start)
	return !reduce.ExistsGenFreePath(g, v, u, x)
}

// BRR78 creates up to two one-edge deletion branches near the path's ends,
// plus a duplicate of the first branch standing for the guess that the whole
// path survives into the caterpillar. The duplicate works because a repeated
// size-1 branch finds its edge already permanent, which the application code
// reads as "cut out the entire path".
func BRR78(g *graph.Graph, info *reduce.PathInfo, br *[]BranchOp) bool {
	if !pathBranchingApplicable(g, info) {
		return false
	}
	bo := BranchOp{Kind: stats.Deg2Path}

	if info.Length > 1 {
		toDelLeft := info.Start
		if !g.IsSeparator(g.Head(info.Start)) {
			toDelLeft = g.NextOnDeg2Path(info.Start)
		}
		addBranch(g, &bo, []graph.EdgeID{toDelLeft}, Del)
		if info.Length > 2 {
			revEnd := g.Twin(info.End)
			if g.IsSeparator(g.Head(revEnd)) {
				addBranch(g, &bo, []graph.EdgeID{revEnd}, Del)
			} else if g.Head(revEnd) != g.Head(toDelLeft) {
				addBranch(g, &bo, []graph.EdgeID{g.NextOnDeg2Path(revEnd)}, Del)
			}
		}
	} else {
		addBranch(g, &bo, []graph.EdgeID{info.Start}, Del)
	}
	if len(bo.Branches) == 0 {
		return false
	}
	dup := make(Branch, len(bo.Branches[0]))
	copy(dup, bo.Branches[0])
	bo.Branches = append(bo.Branches, dup)

	*br = append(*br, bo)
	return true
}

// =============================================================================
// Best-operation selection
// =============================================================================

// singleBranches counts the size-1 deletion branches of an operation.
func singleBranches(bo *BranchOp) int {
	n := 0
	for _, br := range bo.Branches {
		if len(br) == 1 && br[0].Type == Del {
			n++
		}
	}
	return n
}

// selectBestBranchOp picks the operation with the lowest branching number,
// breaking ties by fewer size-1 branches. The winner's branches are ordered
// singles-first and then rotated so the largest branch runs first.
func selectBestBranchOp(br []BranchOp) (BranchOp, float64) {
	bestBnum := float64(0)
	bestSingles := 0
	best := -1
	for i := range br {
		bnum := branchOpNumber(&br[i])
		if best >= 0 && bnum > bestBnum {
			continue
		}
		singles := singleBranches(&br[i])
		if best < 0 || bnum < bestBnum || singles < bestSingles {
			best = i
			bestBnum = bnum
			bestSingles = singles
		}
	}

	bo := BranchOp{Kind: br[best].Kind, Bnum: bestBnum}
	bo.Branches = append([]Branch(nil), br[best].Branches...)
	sort.SliceStable(bo.Branches, func(i, j int) bool {
		a, b := bo.Branches[i], bo.Branches[j]
		if len(a) == 1 || len(b) == 1 {
			return len(a) == 1 && len(b) != 1
		}
		return len(a) < len(b)
	})
	if n := len(bo.Branches); n > 1 {
		last := bo.Branches[n-1]
		copy(bo.Branches[1:], bo.Branches[:n-1])
		bo.Branches[0] = last
	}
	return bo, bestBnum
}

// bestBranchOp collects candidate operations rule by rule. A size-1
// operation short-circuits (it is a reduction), and unless elaborate
// selection is requested the scan stops early once the best branching number
// drops to the configured threshold.
func (s *Solver) bestBranchOp(g *graph.Graph, pathInfos []*reduce.PathInfo) (BranchOp, bool) {
	var br []BranchOp
	quickSelect := !s.Opts.ElaborateBranchSelection

	checkpoint := func() (BranchOp, bool) {
		if !quickSelect || len(br) == 0 {
			return BranchOp{}, false
		}
		best, bnum := selectBestBranchOp(br)
		if bnum <= s.Opts.KeepSearchingAboveBnum {
			return best, true
		}
		br = br[:0]
		br = append(br, best)
		return BranchOp{}, false
	}

	// BRR6 first: it has the best chance to produce a size-1 reduction
	for _, v := range g.Vertices() {
		if BRR6(g, v, &br) && len(br[len(br)-1].Branches) == 1 {
			return br[len(br)-1], true
		}
	}
	if bo, done := checkpoint(); done {
		return bo, true
	}

	for _, info := range pathInfos {
		if BRR78(g, info, &br) && len(br[len(br)-1].Branches) == 1 {
			return br[len(br)-1], true
		}
	}
	if bo, done := checkpoint(); done {
		return bo, true
	}

	for _, v := range g.Vertices() {
		if !g.OnCycle(v) {
			continue
		}
		if BRR1(g, v, &br) && len(br[len(br)-1].Branches) == 1 {
			return br[len(br)-1], true
		}
	}
	if bo, done := checkpoint(); done {
		return bo, true
	}

	for _, v := range g.Vertices() {
		if !g.OnCycle(v) {
			continue
		}
		if BRR2to5(g, v, &br) && len(br[len(br)-1].Branches) == 1 {
			return br[len(br)-1], true
		}
	}

	if len(br) == 0 {
		return BranchOp{}, false
	}
	bo, _ := selectBestBranchOp(br)
	return bo, true
}
