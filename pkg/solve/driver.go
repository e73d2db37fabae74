package solve

import (
	"github.com/charmbracelet/log"

	"github.com/ckrueger/catforest/pkg/cache"
	"github.com/ckrueger/catforest/pkg/graph"
	"github.com/ckrueger/catforest/pkg/reduce"
	"github.com/ckrueger/catforest/pkg/stats"
)

// Solver drives the branch-and-reduce search. It is single-threaded; one
// Solver serves one Solve call at a time.
type Solver struct {
	Opts  Options
	Stats *stats.Stats
	Log   *log.Logger
	Cache cache.Cache
}

// New assembles a solver. A nil logger falls back to the default logger and a
// nil stats accumulator is created on the spot; the cache stays disabled
// unless the options ask for it.
func New(opts Options, st *stats.Stats, logger *log.Logger) *Solver {
	if st == nil {
		st = stats.New()
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Solver{Opts: opts, Stats: st, Log: logger, Cache: cache.NewNull()}
	if opts.UseSolutionCache {
		s.Cache = cache.NewMemory(cache.DefaultMaxEntries)
	}
	return s
}

// Solve finds a minimum caterpillar-forest edge-deletion set of at most in.K
// edges. It reports false when no solution fits the budget; the instance is
// consumed either way.
func (s *Solver) Solve(in *graph.Instance) (graph.Solution, bool) {
	return s.run(in, 0)
}

// solveSmall finishes off an instance too small to contain a 2-claw: any
// feedback edge set is an optimal solution.
func solveSmall(in *graph.Instance) (graph.Solution, bool) {
	fes := in.G.EdgesToSolution(in.G.SpanningFES())
	in.K -= fes.Size()
	in.G.Clear()
	return fes, in.K >= 0
}

// run is one node of the search tree. Success means the graph was emptied
// within budget; the returned solution then lists every deletion this subtree
// committed to.
func (s *Solver) run(in *graph.Instance, depth int) (graph.Solution, bool) {
	_, isNull := s.Cache.(*cache.Null)
	if s.Cache != nil && !isNull && in.G.NumVertices() >= 7 {
		if sol, ok := s.Cache.Lookup(in.G); ok {
			if sol.Size() > in.K {
				in.K = -1
				return nil, false
			}
			in.K -= sol.Size()
			in.G.Clear()
			return sol, true
		}
		snapshot := in.G.Clone(nil)
		sol, ok := s.runInner(in, depth)
		if ok {
			s.Cache.Insert(snapshot, sol)
		}
		return sol, ok
	}
	return s.runInner(in, depth)
}

func (s *Solver) runInner(in *graph.Instance, depth int) (graph.Solution, bool) {
	s.Stats.EnterNode(depth)

	// no 2-claw fits in fewer than 7 vertices
	if in.G.NumVertices() < 7 {
		return solveSmall(in)
	}

	var sol graph.Solution

	// phase 1: tree reductions
	sol.Append(reduce.ApplyTRRs(in, s.Stats))

	// phase 2: split rule, then path reductions
	reduce.ApplySplitRule(in)
	var deg2paths []*reduce.PathInfo
	sol.Append(reduce.ApplyPRRs(in, s.Stats, s.Opts.YLookaheadMax, &deg2paths))

	if in.G.Empty() && in.K >= 0 {
		return sol, true
	}
	if in.K <= 0 {
		return nil, false
	}
	if in.G.NumVertices() < 8 {
		rest, ok := solveSmall(in)
		if !ok {
			return nil, false
		}
		sol.Append(rest)
		return sol, true
	}

	// phase 3: prune against the lower bound
	if lb := s.lowerBound(in.G, depth); lb > in.K {
		in.K = -1
		return nil, false
	}

	// phase 4: component decomposition
	in.G.MarkBridges()
	if in.G.CCNumber > 1 {
		rest, ok := s.solveComponents(in, depth)
		if !ok {
			return nil, false
		}
		sol.Append(rest)
		return sol, true
	}

	if s.Opts.UseBBridgeRule {
		if bbSol, applied := s.applyBBridgeRule(in, depth); applied {
			s.Log.Debug("B-bridge rule fired", "depth", depth, "partial", bbSol.Size())
			sol.Append(bbSol)
			rest, ok := s.run(in, depth)
			if !ok {
				return nil, false
			}
			sol.Append(rest)
			return sol, true
		}
		if in.K < 0 {
			return nil, false
		}
	}

	// phase 5: branch
	bo, found := s.bestBranchOp(in.G, deg2paths)
	if !found {
		in.G.Write(logWriter{s.Log}, true)
		panic("solve: no reduction and no branching applies")
	}

	switch len(bo.Branches) {
	case 0:
		// every branch edge is permanent: an optimal solution was already
		// seen on an earlier sibling
		return nil, false
	case 1:
		// a single branch is a reduction; no need to copy the graph
		s.Stats.CountBranching(bo.Kind, branchOpNumber(&bo))
		s.applyOneBranch(in, &bo, bo.Branches[0], &sol)
		rest, ok := s.run(in, depth+1)
		if !ok {
			return nil, false
		}
		sol.Append(rest)
		return sol, true
	default:
		s.Stats.CountBranching(bo.Kind, branchOpNumber(&bo))
		minSol, ok := s.applyBranchOp(&bo, in, depth)
		if !ok {
			return nil, false
		}
		in.G.Clear()
		sol.Append(minSol)
		return sol, true
	}
}

// solveComponents splits off one component and solves both parts, smaller
// first, sharing the budget.
func (s *Solver) solveComponents(in *graph.Instance, depth int) (graph.Solution, bool) {
	split := graph.NewInstance(graph.New(), in.K)
	graph.SplitOffComponent(in.G, split.G, nil)

	first, second := in, split
	if in.G.NumVertices() >= split.G.NumVertices() {
		first, second = split, in
	}

	recSol, ok := s.run(first, depth+1)
	if !ok {
		in.K = -1
		return nil, false
	}
	second.K -= recSol.Size()
	rest, ok := s.run(second, depth+1)
	if !ok {
		in.K = -1
		return nil, false
	}
	recSol.Append(rest)
	// keep the surviving budget on the original instance
	if second != in {
		in.K = second.K
	}
	return recSol, true
}

// =============================================================================
// Branch application
// =============================================================================

// applyYify replaces the edge by a pendant Y-graph at its head; if the edge
// is permanent, everything else at the head is deleted instead. The tail gets
// a marker leaf unless it is already visibly on the backbone.
func (s *Solver) applyYify(in *graph.Instance, e graph.EdgeID, sol *graph.Solution) {
	g := in.G
	v := g.Tail(e)
	u := g.Head(e)
	uname := g.Label(u)
	name := g.Label(v)

	if !g.IsPermanent(e) {
		g.DeleteEdge(e)
		reduce.AddY(g, u, name)
	} else {
		rev := g.Twin(e)
		for f := g.FirstAdj(u); f != graph.NoEdge; {
			if f == rev {
				f = g.NextAdj(f)
				continue
			}
			f = in.DeleteEdgeRecording(f, sol)
		}
	}
	if !g.OnBackbone(v) {
		reduce.AddLeaf(g, v, uname+"*")
	}
}

// applyPathBranch realizes a degree-2 path branch. A permanent branch edge is
// the marker for "the whole path survives": the path is cut out without
// charge and both anchors get pendant P2s. Otherwise one edge near the chosen
// end is deleted.
func (s *Solver) applyPathBranch(in *graph.Instance, ml Branch, sol *graph.Solution) {
	g := in.G
	toDel := ml[0].E
	if !g.EdgeAlive(toDel) {
		return
	}
	if g.IsPermanent(toDel) {
		u := g.Tail(toDel)
		for g.CycCoreDegree(g.Head(toDel)) < 3 && g.Head(toDel) != u {
			next := g.NextOnDeg2Path(toDel)
			g.DeleteEdge(toDel)
			toDel = next
		}
		v := g.Head(toDel)
		g.DeleteEdge(toDel)
		reduce.AddP2(g, u, "")
		reduce.AddP2(g, v, "")
		return
	}
	if g.CycCoreDegree(g.Head(toDel)) < 3 && !g.IsSeparator(g.Head(toDel)) {
		toDel = g.NextOnDeg2Path(toDel)
	}
	in.DeleteEdgeRecording(toDel, sol)
}

// applyOneBranch applies all modifications of a single branch to the
// instance.
func (s *Solver) applyOneBranch(in *graph.Instance, bo *BranchOp, ml Branch, sol *graph.Solution) {
	if bo.Kind == stats.Deg2Path {
		s.applyPathBranch(in, ml, sol)
		return
	}
	for _, gmod := range ml {
		// a reduction fired by the clone's reclassification may already have
		// consumed the edge, charged correctly
		if !in.G.EdgeAlive(gmod.E) {
			continue
		}
		switch gmod.Type {
		case Del:
			in.DeleteEdgeRecording(gmod.E, sol)
		case Yify:
			s.applyYify(in, gmod.E, sol)
		}
	}
}

// applyBranchOp clones the instance per branch, applies the branch, and
// recurses, keeping the minimum successful solution. After every size-1
// deletion branch the edge is marked permanent in the parent, committing
// "this edge stays" for the remaining siblings.
func (s *Solver) applyBranchOp(bo *BranchOp, in *graph.Instance, depth int) (graph.Solution, bool) {
	var minSol graph.Solution
	found := false
	knownSolution := in.K + 1

	for _, ml := range bo.Branches {
		if bo.Kind != stats.Token && bo.Kind != stats.Deg2Path {
			if len(ml) > min(in.K, knownSolution-1) {
				continue
			}
		}
		toBePermanent := ml[0]

		outmap := make(map[graph.VertexID]graph.VertexID)
		prime := in.Clone(outmap)
		translated := make(Branch, len(ml))
		for i, gmod := range ml {
			translated[i] = GraphMod{Type: gmod.Type, E: graph.ConvertEdge(in.G, gmod.E, prime.G, outmap)}
		}
		prime.K = min(in.K, knownSolution-1)
		var solPrime graph.Solution
		// the clone has no pendant classification yet; the branch bodies
		// consult it
		solPrime.Append(reduce.UpdateClassification(prime, s.Stats))
		s.applyOneBranch(prime, bo, translated, &solPrime)

		rest, ok := s.run(prime, depth+1)
		solPrime.Append(rest)
		if ok {
			minSol = solPrime
			found = true
			knownSolution = solPrime.Size()
		}

		if len(ml) == 1 && ml[0].Type == Del {
			in.G.MarkPermanent(toBePermanent.E, true)
		}
	}
	return minSol, found
}

// logWriter adapts the solver logger for occasional structure dumps.
type logWriter struct{ l *log.Logger }

func (w logWriter) Write(p []byte) (int, error) {
	w.l.Error(string(p))
	return len(p), nil
}
