package graph

// =============================================================================
// Bridge detection (Tarjan low-link) and feedback-edge-set helpers
// =============================================================================

// tarjanDFS numbers the vertices in preorder and computes, per vertex, the
// lowest and highest preorder number reachable through its DFS subtree plus
// one non-tree edge, and the subtree size. An edge to a child is a bridge iff
// the child's subtree is an interval that cannot escape over the edge.
func (g *Graph) tarjanDFS(v, parent VertexID, number *int, bridges *[]WeightedEdge) {
	vt := &g.v(v).tar
	vt.number = *number
	vt.low = *number
	vt.high = *number
	vt.nd = 1
	*number++

	for e := g.FirstAdj(v); e != NoEdge; e = g.NextAdj(e) {
		h := g.Head(e)
		ht := &g.v(h).tar
		if ht.number == 0 {
			g.tarjanDFS(h, v, number, bridges)
			vt.nd += ht.nd
			vt.low = min(vt.low, ht.low)
			vt.high = max(vt.high, ht.high)
			if ht.low == ht.number && ht.high < ht.number+ht.nd {
				g.markBridge(e, true)
				*bridges = append(*bridges, WeightedEdge{Edge: e, Weight: ht.nd})
			}
		} else if h != parent {
			vt.low = min(vt.low, ht.number)
			vt.high = max(vt.high, ht.number)
		}
	}
}

// computeBridges recomputes all bridge bits, the incident-bridge counters,
// and CCNumber. Every returned entry carries the number of vertices split off
// on the head side of the bridge.
func (g *Graph) computeBridges() []WeightedEdge {
	g.CCNumber = 0
	if g.ecount == 0 {
		// isolated vertices are their own components
		g.CCNumber = g.vcount
		g.BridgesFresh = true
		return nil
	}

	for _, v := range g.Vertices() {
		vr := g.v(v)
		vr.incidentBridges = 0
		vr.tar = tarjanInfo{}
		for e := g.FirstAdj(v); e != NoEdge; e = g.NextAdj(e) {
			g.e(e).bridge = false
		}
	}

	var bridges []WeightedEdge
	number := 1
	for _, v := range g.Vertices() {
		if g.v(v).tar.number == 0 {
			g.CCNumber++
			g.tarjanDFS(v, NoVertex, &number, &bridges)
		}
	}
	g.BridgesFresh = true
	return bridges
}

// MarkBridges refreshes the bridge marking unless it is already fresh.
func (g *Graph) MarkBridges() {
	if !g.BridgesFresh {
		g.computeBridges()
	}
}

// Bridges marks and returns all bridges.
func (g *Graph) Bridges() []EdgeID {
	weighted := g.computeBridges()
	el := make([]EdgeID, 0, len(weighted))
	for _, we := range weighted {
		el = append(el, we.Edge)
	}
	return el
}

// WeightedBridges marks and returns all bridges together with the size of the
// component each one cuts off on its head side.
func (g *Graph) WeightedBridges() []WeightedEdge {
	return g.computeBridges()
}

// BBridges marks all bridges and returns those with both endpoints on the
// cyclic core.
func (g *Graph) BBridges() []EdgeID {
	var el []EdgeID
	for _, e := range g.Bridges() {
		if g.IsBBridge(e) {
			el = append(el, e)
		}
	}
	return el
}

// WeightedBBridges marks all bridges and returns the B-bridges with their
// split-off component sizes.
func (g *Graph) WeightedBBridges() []WeightedEdge {
	var el []WeightedEdge
	for _, we := range g.WeightedBridges() {
		if g.IsBBridge(we.Edge) {
			el = append(el, we)
		}
	}
	return el
}

// FES returns the cyclic complexity |E| + cc - |V|, the size of a minimum
// feedback edge set. Bridge marking is refreshed as a side effect so that
// CCNumber is valid.
func (g *Graph) FES() int {
	g.MarkBridges()
	return g.ecount + g.CCNumber - g.vcount
}

// SpanningFES returns a concrete feedback edge set: the non-tree edges of a
// spanning forest covering every component.
func (g *Graph) SpanningFES() []EdgeID {
	if g.Empty() {
		return nil
	}
	var fes []EdgeID
	mark := g.NextMark()
	for _, root := range g.Vertices() {
		if g.Mark(root) == mark {
			continue
		}
		g.SetMark(root, mark)
		queue := []VertexID{root}
		inQueue := map[VertexID]bool{root: true}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			delete(inQueue, v)
			for e := g.FirstAdj(v); e != NoEdge; e = g.NextAdj(e) {
				h := g.Head(e)
				if g.Mark(h) != mark {
					g.SetMark(h, mark)
					queue = append(queue, h)
					inQueue[h] = true
				} else if inQueue[h] {
					fes = append(fes, e)
				}
			}
		}
	}
	return fes
}
