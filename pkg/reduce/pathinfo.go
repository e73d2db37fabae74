package reduce

import "github.com/ckrueger/catforest/pkg/graph"

// PathInfo describes one maximal degree-2 path of the cyclic core. Start and
// End are directed edges into the path's endpoint vertices; Length counts the
// inner edges. Generators are listed in path order as the edges pointing to
// them; Separators and PendantYs name inner vertices. A rule that destroys
// the path clears Valid and returns control to the scan.
type PathInfo struct {
	Start, End graph.EdgeID
	Generators []graph.EdgeID
	PendantYs  []graph.VertexID
	Separators []graph.VertexID
	Length     int
	Valid      bool
}

// IsCycle reports whether the path closes on its own anchor.
func (p *PathInfo) IsCycle(g *graph.Graph) bool {
	return g.Head(p.End) == g.Tail(p.Start)
}

func (p *PathInfo) hasSeparator(v graph.VertexID) bool {
	for _, s := range p.Separators {
		if s == v {
			return true
		}
	}
	return false
}

func (p *PathInfo) addSeparator(v graph.VertexID) {
	if !p.hasSeparator(v) {
		p.Separators = append(p.Separators, v)
	}
}

func (p *PathInfo) removeSeparator(v graph.VertexID) {
	for i, s := range p.Separators {
		if s == v {
			p.Separators = append(p.Separators[:i], p.Separators[i+1:]...)
			return
		}
	}
}

// gatherPathInfo walks the degree-2 path entered through e, marking every
// inner vertex with the given generation mark, and collects its structure. e
// must leave a cyclic-core vertex toward the path.
func gatherPathInfo(g *graph.Graph, e graph.EdgeID, mark uint32) *PathInfo {
	info := &PathInfo{Start: e, Length: 1}
	v := g.Tail(e)
	next := e

	for g.CycCoreDegree(g.Head(next)) == 2 && g.Head(next) != v {
		inner := g.Head(next)
		g.SetMark(inner, mark)
		info.Length++

		if g.IsSeparator(inner) {
			info.addSeparator(inner)
		}
		if g.IsGenerator(inner) {
			info.Generators = append(info.Generators, next)
		}
		if len(g.Pend(inner).YGraphs) > 0 {
			info.PendantYs = append(info.PendantYs, inner)
		}

		next = g.NextOnDeg2Path(next)
	}

	info.End = next
	info.Valid = true
	return info
}

// findFirstPath returns the first edge from v onto an unvisited cyclic-core
// neighbor, or NoEdge.
func findFirstPath(g *graph.Graph, v graph.VertexID, mark uint32) graph.EdgeID {
	for e := g.FirstAdj(v); e != graph.NoEdge; e = g.NextAdj(e) {
		if h := g.Head(e); g.OnCyclicCore(h) && g.Mark(h) != mark {
			return e
		}
	}
	return graph.NoEdge
}

// findNextPath advances past info's start edge to the next path leaving the
// same anchor, skipping visited heads, non-core neighbors, and the reverse of
// the path just explored.
func findNextPath(g *graph.Graph, info *PathInfo, mark uint32) graph.EdgeID {
	result := info.Start
	for {
		result = g.NextAdj(result)
		if result == graph.NoEdge {
			return graph.NoEdge
		}
		h := g.Head(result)
		if g.Mark(h) == mark || !g.OnCyclicCore(h) || result == g.Twin(info.End) {
			continue
		}
		return result
	}
}
