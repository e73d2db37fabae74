package solve

import (
	"github.com/ckrueger/catforest/pkg/graph"
	"github.com/ckrueger/catforest/pkg/reduce"
	"github.com/ckrueger/catforest/pkg/stats"
)

// bbridgeFESThreshold gates the B-bridge rule: below this global cyclic
// complexity the split is not worth four recursions.
const bbridgeFESThreshold = 4

// recurseFor solves a copy of the small side with the given pendant shape
// hung onto v.
func (s *Solver) recurseFor(small *graph.Instance, v graph.VertexID,
	modify func(*graph.Graph, graph.VertexID, string), depth int) (graph.Solution, bool) {

	outmap := make(map[graph.VertexID]graph.VertexID)
	probe := small.Clone(outmap)
	modify(probe.G, outmap[v], small.G.Label(v))
	return s.run(probe, depth+1)
}

// applyBBridgeRule picks the most balanced B-bridge uv (by split-off vertex
// count) and solves the smaller side C2 under four pendant variants at v:
// nothing, leaf, P2, and Y. The variant matching the optimum reveals the role
// of uv, deciding how C2's solution recombines with the rest:
//
//   - uv deletable and the bare variant strictly cheaper: delete uv.
//   - no permanent edge pins v and the Y variant matches: hang a leaf on u.
//   - the P2 variant matches: hang a P2 on u.
//   - otherwise: the leaf variant holds and u gets a Y.
//
// Returns applied=false if the rule did not fire; a failed inner search also
// fails the instance (in.K goes negative).
func (s *Solver) applyBBridgeRule(in *graph.Instance, depth int) (graph.Solution, bool) {
	g := in.G

	bigFES := g.FES()
	if bigFES < bbridgeFESThreshold {
		return nil, false
	}
	weighted := g.WeightedBBridges()
	if len(weighted) == 0 {
		return nil, false
	}

	// the score of a B-bridge is how evenly it splits the graph; orient it
	// toward the smaller side
	n := g.NumVertices()
	bestScore := 0
	uv := weighted[0].Edge
	for _, we := range weighted {
		if we.Weight < n/2 {
			if we.Weight > bestScore {
				bestScore = we.Weight
				uv = we.Edge
			}
		} else if score := n - we.Weight; score > bestScore {
			bestScore = score
			uv = g.Twin(we.Edge)
		}
	}

	u := g.Tail(uv)
	v := g.Head(uv)
	uvWasPermanent := g.IsPermanent(uv)

	g.DeleteEdge(uv)
	small := graph.NewInstance(graph.New(), in.K)
	outmap := make(map[graph.VertexID]graph.VertexID)
	g.CopyComponent(v, small.G, outmap)
	g.DeleteComponent(v)
	v = outmap[v]

	smallFES := small.G.FES()
	created := 2

	// the leaf variant always solves; it bounds everything else
	s4, ok := s.recurseFor(small, v, reduce.AddLeaf, depth)
	if !ok {
		in.K = -1
		return nil, false
	}
	small.K = s4.Size()

	finish := func(partial graph.Solution) (graph.Solution, bool) {
		s.Stats.CountBranching(stats.BBridge, BranchNumber(bbridgeSizes(smallFES, bigFES, created)))
		return partial, true
	}

	// 1. can C2 minus uv be solved strictly cheaper? then uv is deleted
	if !uvWasPermanent {
		created++
		small.K = s4.Size() - 1
		if s1, ok := s.recurseFor(small, v, reduce.AddNothing, depth); ok {
			s1.Add(g.Label(u) + "->" + small.G.Label(v))
			in.K -= s1.Size()
			return finish(s1)
		}
		small.K = s4.Size()
	}

	// 2. does some optimum keep all of C2 plus a path through u? only
	// possible while no permanent edge except uv pins v
	permAtV := false
	for e := small.G.FirstAdj(v); e != graph.NoEdge; e = small.G.NextAdj(e) {
		if small.G.IsPermanent(e) {
			permAtV = true
			break
		}
	}
	if !permAtV {
		created++
		if s2, ok := s.recurseFor(small, v, reduce.AddY, depth); ok {
			in.K -= s2.Size()
			reduce.AddLeaf(g, u, "")
			return finish(s2)
		}
	}

	// 3. the P2 variant
	created++
	if s3, ok := s.recurseFor(small, v, reduce.AddP2, depth); ok {
		in.K -= s3.Size()
		reduce.AddP2(g, u, "")
		return finish(s3)
	}

	// 4. fall back to the leaf variant; a Y-graph dangles at u afterwards
	in.K -= s4.Size()
	reduce.AddY(g, u, "")
	return finish(s4)
}

// bbridgeSizes builds the branch-size vector the statistics record for a
// B-bridge application: the small side's FES once, the remainder's for every
// further instance.
func bbridgeSizes(smallFES, bigFES, created int) []int {
	sizes := make([]int, 0, created)
	sizes = append(sizes, max(smallFES, 1))
	for i := 1; i < created; i++ {
		sizes = append(sizes, max(bigFES-smallFES, 1))
	}
	return sizes
}
