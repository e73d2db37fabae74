package graph

import "fmt"

// =============================================================================
// Derived pendant predicates
// =============================================================================
//
// All predicates in this file read the pendant classification, so they are
// only meaningful while SubtreesFresh holds (invariant I3), except NLDeg,
// which deliberately recounts degrees because it is also used while the
// classification is being torn down.

// SubtreeNH returns the number of neighbors of v that are roots of classified
// pendant subtrees.
func (g *Graph) SubtreeNH(v VertexID) int { return g.v(v).pend.Count() }

// CycCoreDegree returns the number of neighbors of v on the cyclic core. A
// vertex whose whole remainder is a single edge is itself pendant and gets
// core degree 0.
func (g *Graph) CycCoreDegree(v VertexID) int {
	d := g.Degree(v) - g.SubtreeNH(v)
	if d == 1 {
		return 0
	}
	return d
}

// OnCyclicCore reports whether v belongs to the cyclic core.
func (g *Graph) OnCyclicCore(v VertexID) bool { return g.CycCoreDegree(v) > 0 }

// NonBridgeDegree returns the number of incident non-bridge edges.
func (g *Graph) NonBridgeDegree(v VertexID) int { return g.Degree(v) - g.v(v).incidentBridges }

// OnCycle reports whether v lies on some cycle, i.e. has a non-bridge edge.
func (g *Graph) OnCycle(v VertexID) bool { return g.NonBridgeDegree(v) > 0 }

// NLDeg returns the number of neighbors of v that are not leaves. It counts
// degrees directly instead of trusting the pendant lists.
func (g *Graph) NLDeg(v VertexID) int {
	n := 0
	for e := g.FirstAdj(v); e != NoEdge; e = g.NextAdj(e) {
		if g.Degree(g.Head(e)) > 1 {
			n++
		}
	}
	return n
}

// PendantIsSingle reports whether v has no classified pendant subtrees.
func (g *Graph) PendantIsSingle(v VertexID) bool { return g.v(v).pend.Empty() }

// PendantIsY reports whether v carries at least one pendant Y-graph.
func (g *Graph) PendantIsY(v VertexID) bool { return len(g.v(v).pend.YGraphs) > 0 }

// IsGenerator reports whether v contributes a token to its degree-2 path,
// i.e. carries at least one P2 pendant.
func (g *Graph) IsGenerator(v VertexID) bool { return len(g.v(v).pend.PTwos) > 0 }

// OnBackbone reports whether v is forced onto the caterpillar backbone by a
// pendant leaf or P2.
func (g *Graph) OnBackbone(v VertexID) bool {
	p := &g.v(v).pend
	return len(p.Leaves) > 0 || len(p.PTwos) > 0
}

// IsSeparator decides whether v merely segments its degree-2 path: v must
// have core degree 2 and either more than one P2, or a leaf but neither P2
// nor Y, or two cyclic neighbors that generate no token themselves.
func (g *Graph) IsSeparator(v VertexID) bool {
	if g.CycCoreDegree(v) != 2 {
		return false
	}
	p := &g.v(v).pend
	if len(p.PTwos) > 1 {
		return true
	}
	if len(p.PTwos) > 0 {
		return false
	}
	if len(p.YGraphs) > 0 {
		return false
	}
	if len(p.Leaves) > 0 {
		return true
	}
	// only degree-two vertices remain from here on
	for e := g.FirstAdj(v); e != NoEdge; e = g.NextAdj(e) {
		h := g.Head(e)
		if g.IsGenerator(h) || g.CycCoreDegree(h) > 2 {
			return false
		}
	}
	return true
}

// IncidentToBBridge reports whether some edge at v is a B-bridge.
func (g *Graph) IncidentToBBridge(v VertexID) bool {
	for e := g.FirstAdj(v); e != NoEdge; e = g.NextAdj(e) {
		if g.IsBBridge(e) {
			return true
		}
	}
	return false
}

// IsBBridge reports whether e is a bridge with both endpoints on the cyclic
// core.
func (g *Graph) IsBBridge(e EdgeID) bool {
	if !g.e(e).bridge {
		return false
	}
	return g.OnCyclicCore(g.Tail(e)) && g.OnCyclicCore(g.Head(e))
}

// IsABridge reports whether e is a bridge that is not a B-bridge.
func (g *Graph) IsABridge(e EdgeID) bool {
	return g.e(e).bridge && !g.IsBBridge(e)
}

// IsRelevantABridge reports whether the A-bridge e is a legal branching
// candidate: its tail must not sit on a degree-2 stretch of the core and must
// be incident to some B-bridge.
func (g *Graph) IsRelevantABridge(e EdgeID) bool {
	if !g.e(e).bridge {
		return false
	}
	if g.OnCyclicCore(g.Tail(e)) && g.OnCyclicCore(g.Head(e)) {
		return false
	}
	if g.CycCoreDegree(g.Tail(e)) == 2 {
		return false
	}
	return g.IncidentToBBridge(g.Tail(e))
}

// =============================================================================
// Neighbor finders
// =============================================================================

// CyclicNeighbors returns the edges from v to its non-bridge neighbors.
func (g *Graph) CyclicNeighbors(v VertexID) []EdgeID {
	var el []EdgeID
	for e := g.FirstAdj(v); e != NoEdge; e = g.NextAdj(e) {
		if !g.e(e).bridge {
			el = append(el, e)
		}
	}
	return el
}

// CyclicCoreNeighbors returns the edges from v to its cyclic-core neighbors.
func (g *Graph) CyclicCoreNeighbors(v VertexID) []EdgeID {
	var el []EdgeID
	for e := g.FirstAdj(v); e != NoEdge; e = g.NextAdj(e) {
		if g.OnCyclicCore(g.Head(e)) {
			el = append(el, e)
		}
	}
	return el
}

// FirstCyclicCoreNeighborExcept returns the first edge from v to a cyclic
// core vertex other than except. The boolean reports success.
func (g *Graph) FirstCyclicCoreNeighborExcept(v, except VertexID) (EdgeID, bool) {
	for e := g.FirstAdj(v); e != NoEdge; e = g.NextAdj(e) {
		if h := g.Head(e); g.OnCyclicCore(h) && h != except {
			return e, true
		}
	}
	return NoEdge, false
}

// FirstCyclicCoreNeighbor returns the first edge from v to a cyclic core
// vertex.
func (g *Graph) FirstCyclicCoreNeighbor(v VertexID) (EdgeID, bool) {
	return g.FirstCyclicCoreNeighborExcept(v, NoVertex)
}

// FirstNonBridgeNeighborExcept returns the first non-bridge edge at v not
// pointing to except.
func (g *Graph) FirstNonBridgeNeighborExcept(v, except VertexID) (EdgeID, bool) {
	for e := g.FirstAdj(v); e != NoEdge; e = g.NextAdj(e) {
		if !g.e(e).bridge && g.Head(e) != except {
			return e, true
		}
	}
	return NoEdge, false
}

// FirstNonBridgeNeighbor returns the first non-bridge edge at v.
func (g *Graph) FirstNonBridgeNeighbor(v VertexID) (EdgeID, bool) {
	return g.FirstNonBridgeNeighborExcept(v, NoVertex)
}

// Parent returns the edge from v to its parent in the pendant forest,
// computing and caching it if necessary. Cyclic-core vertices have no parent.
func (g *Graph) Parent(v VertexID) (EdgeID, bool) {
	if g.OnCyclicCore(v) {
		return NoEdge, false
	}
	if p := g.v(v).parent; p != NoEdge {
		return p, true
	}
	// the parent is the only neighbor that does not have v as its parent
	for e := g.FirstAdj(v); e != NoEdge; e = g.NextAdj(e) {
		hp := g.v(g.Head(e)).parent
		if hp == NoEdge || hp != e^1 {
			g.SetParent(v, e)
			return e, true
		}
	}
	return NoEdge, false
}

// NextOnDeg2Path continues along the degree-2 path entered through e and
// returns the edge leaving e's head on the far side. Calling it at a vertex
// that is not an inner path vertex is an invariant violation and panics.
func (g *Graph) NextOnDeg2Path(e EdgeID) EdgeID {
	h := g.Head(e)
	if g.CycCoreDegree(h) != 2 {
		panic(fmt.Sprintf("graph: NextOnDeg2Path(%s): %s has cyclic core degree %d, want 2",
			g.EdgeString(e), g.Label(h), g.CycCoreDegree(h)))
	}
	next, _ := g.FirstCyclicCoreNeighborExcept(h, g.Tail(e))
	return next
}

// NextOnCycle continues along non-bridge edges from e's head.
func (g *Graph) NextOnCycle(e EdgeID) EdgeID {
	next, _ := g.FirstNonBridgeNeighborExcept(g.Head(e), g.Tail(e))
	return next
}
