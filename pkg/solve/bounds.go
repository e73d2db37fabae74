package solve

import (
	"sort"

	"github.com/ckrueger/catforest/pkg/graph"
	"github.com/ckrueger/catforest/pkg/reduce"
	"github.com/ckrueger/catforest/pkg/stats"
)

// =============================================================================
// Lower bounds
// =============================================================================

// starPacking computes a lower bound by greedily packing vertex-disjoint
// 2-stars on a throwaway copy: a star with r > 2 rays forces r-2 deletions.
// The FES of whatever remains is added on top.
func starPacking(src *graph.Graph) int {
	g := src.Clone(nil)
	k := 0

	order := g.Vertices()
	sort.SliceStable(order, func(i, j int) bool {
		return g.Degree(order[i]) < g.Degree(order[j])
	})

	for _, v := range order {
		if !g.Alive(v) {
			continue
		}
		toDelete := make(map[graph.EdgeID]bool)
		// for each neighbor, look for a second edge extending the ray
		for e := g.FirstAdj(v); e != graph.NoEdge; e = g.NextAdj(e) {
			w := g.Head(e)
			chosen := graph.NoEdge
			for a := g.FirstAdj(w); a != graph.NoEdge; a = g.NextAdj(a) {
				if g.Head(a) != v && !toDelete[a] {
					chosen = a
					break
				}
			}
			if chosen != graph.NoEdge {
				toDelete[e] = true
				// store the reversed half so the far side sees it too
				toDelete[g.Twin(chosen)] = true
			}
		}
		rays := len(toDelete) / 2
		if rays > 2 {
			// all but two rays have to be destroyed
			k += rays - 2
			el := make([]graph.EdgeID, 0, len(toDelete))
			for e := range toDelete {
				el = append(el, e)
			}
			sort.Slice(el, func(i, j int) bool { return el[i] < el[j] })
			g.DeleteEdges(el)
		}
	}
	return k + g.FES()
}

// lowerBound accumulates the bounds whose cadence divides the current depth.
func (s *Solver) lowerBound(g *graph.Graph, depth int) int {
	lb := 0
	if s.Opts.FastLowerBoundEvery > 0 && depth%s.Opts.FastLowerBoundEvery == 0 {
		lb = max(lb, g.FES())
	}
	if s.Opts.SlowLowerBoundEvery > 0 && depth%s.Opts.SlowLowerBoundEvery == 0 {
		lb = max(lb, starPacking(g))
	}
	return lb
}

// =============================================================================
// Greedy upper bound
// =============================================================================

// makeNLDeg2 deletes non-A-bridge, non-permanent edges at v until at most two
// non-leaf neighbors remain, preferring to cut behind degree-2 neighbors.
// Returns the empty solution once the budget runs out.
func makeNLDeg2(in *graph.Instance, v graph.VertexID) graph.Solution {
	g := in.G
	var sol graph.Solution
	nldeg := g.NLDeg(v)

	for e := g.FirstAdj(v); nldeg > 2 && e != graph.NoEdge; {
		if g.IsABridge(e) || g.IsPermanent(e) {
			e = g.NextAdj(e)
			continue
		}
		w := g.Head(e)
		var toDel graph.EdgeID
		if g.Degree(w) == 2 {
			// cut w loose on its far side, unless that edge is off limits
			toDel = g.FirstAdj(w)
			if g.Head(toDel) == v {
				far := g.NextAdj(toDel)
				if !g.IsPermanent(far) && !g.IsABridge(far) {
					toDel = far
				}
			}
		} else {
			toDel = e
		}

		// advance before the deletion can take e with it
		e = g.NextAdj(e)
		in.DeleteEdgeRecording(toDel, &sol)
		if in.K <= 0 {
			return nil
		}
		nldeg--
	}
	return sol
}

// UpperBound greedily computes a feasible solution on a copy: every vertex is
// forced to nldeg <= 2, tree reductions mop up, and one FES placeholder is
// added per edge of a feedback edge set of the rest. The empty solution
// signals failure.
func UpperBound(src *graph.Instance) graph.Solution {
	in := src.Clone(nil)
	in.G.MarkBridges()

	var sol graph.Solution
	for _, v := range in.G.Vertices() {
		if in.G.Alive(v) {
			sol.Append(makeNLDeg2(in, v))
		}
	}
	if in.K <= 0 {
		return nil
	}

	// clean up 2-claws that were only guarded by A-bridges
	tmp := stats.New()
	sol.Append(reduce.ApplyTRRs(in, tmp))

	fes := in.G.FES()
	if in.K <= fes {
		return nil
	}
	for i := 0; i < fes; i++ {
		sol.Add(graph.FESPlaceholder)
	}
	return sol
}
