package reduce

import (
	"fmt"

	"github.com/ckrueger/catforest/pkg/graph"
)

// =============================================================================
// Pendant classification step
// =============================================================================

// classifyChild folds a finished subtree into its parent's pendant lists.
// toParent is the edge from the classified child to the not-yet-classified
// parent. New entries go to the front of the parent's lists so that a P2
// created after a path split cannot be deleted as permanent by TRR3.
func classifyChild(g *graph.Graph, toParent graph.EdgeID) {
	toChild := g.Twin(toParent)
	child := g.Head(toChild)
	parent := g.Head(toParent)
	cp := g.Pend(child)
	pp := g.Pend(parent)

	g.SetParent(child, toParent)
	switch g.Degree(child) {
	case 1:
		pp.Leaves = append([]graph.EdgeID{toChild}, pp.Leaves...)
		g.MarkPermanent(toChild, true)
	case 2:
		switch {
		case len(cp.YGraphs) > 0:
			pp.TClaws = append([]graph.EdgeID{toChild}, pp.TClaws...)
		case len(cp.Leaves) > 0:
			pp.PTwos = append([]graph.EdgeID{toChild}, pp.PTwos...)
			g.MarkPermanent(toChild, true)
		default:
			panic(fmt.Sprintf("reduce: classifyChild: deg(%s)=2 but neither Y nor leaf below; TRRs not applied?", g.Label(child)))
		}
	default:
		if len(cp.PTwos) > 1 {
			pp.YGraphs = append([]graph.EdgeID{toChild}, pp.YGraphs...)
		} else {
			panic(fmt.Sprintf("reduce: classifyChild: deg(%s)>2 but fewer than two P2s below; TRRs not applied?", g.Label(child)))
		}
	}
}

// =============================================================================
// Pendant constructors
// =============================================================================

// AddNothing leaves v untouched; it is the identity pendant used by the
// B-bridge branching.
func AddNothing(g *graph.Graph, v graph.VertexID, name string) {}

// AddLeaf attaches a fresh pendant leaf to v and registers it in v's pendant
// lists.
func AddLeaf(g *graph.Graph, v graph.VertexID, name string) {
	if name == "" {
		name = g.Label(v)
	}
	w := g.AddVertex(name + "~")
	e := g.AddEdge(w, v)
	classifyChild(g, e)
}

// AddP2 attaches a fresh pendant P2 to v.
func AddP2(g *graph.Graph, v graph.VertexID, name string) {
	if name == "" {
		name = g.Label(v)
	}
	w := g.AddVertex(name + "~")
	e := g.AddEdge(w, v)
	AddLeaf(g, w, g.Label(w))
	classifyChild(g, e)
}

// Add2P2 attaches two fresh pendant P2s to v.
func Add2P2(g *graph.Graph, v graph.VertexID, name string) {
	if name == "" {
		name = g.Label(v)
	}
	AddP2(g, v, name)
	AddP2(g, v, name+"~~~")
}

// AddY attaches a fresh pendant Y-graph to v.
func AddY(g *graph.Graph, v graph.VertexID, name string) {
	if name == "" {
		name = g.Label(v)
	}
	w := g.AddVertex(name + "~")
	e := g.AddEdge(w, v)
	Add2P2(g, w, g.Label(w))
	classifyChild(g, e)
}

// Ygraphify replaces the edge e = uv by a fresh pendant Y-graph at its head,
// priming the tail's label so reports can tell the rewritten vertex apart.
func Ygraphify(g *graph.Graph, e graph.EdgeID) {
	v := g.Head(e)
	u := g.Tail(e)
	name := g.Label(u)
	g.DeleteEdge(e)
	AddY(g, v, name)
	g.AppendLabel(u, "'")
}

// =============================================================================
// Pendant copying (used when PRR4 splits a separator)
// =============================================================================

// copyLeaf attaches a copy of the leaf to v, carrying the visited mark over,
// and returns the edge from v to the new leaf.
func copyLeaf(g *graph.Graph, v, leaf graph.VertexID) graph.EdgeID {
	newLeaf := g.AddVertex(g.Label(leaf) + "'")
	g.SetMark(newLeaf, g.Mark(leaf))
	toV := g.AddEdge(newLeaf, v)
	classifyChild(g, toV)
	return g.Twin(toV)
}

// copyP2 attaches a copy of the P2 centered at center to v and returns the
// edge from v to the new center.
func copyP2(g *graph.Graph, v, center graph.VertexID) graph.EdgeID {
	newCenter := g.AddVertex(g.Label(center) + "'")
	g.SetMark(newCenter, g.Mark(center))
	for _, le := range g.Pend(center).Leaves {
		copyLeaf(g, newCenter, g.Head(le))
	}
	toV := g.AddEdge(newCenter, v)
	classifyChild(g, toV)
	return g.Twin(toV)
}

// copyY attaches a copy of the Y-graph centered at center to v and returns
// the edge from v to the new center.
func copyY(g *graph.Graph, v, center graph.VertexID) graph.EdgeID {
	newCenter := g.AddVertex(g.Label(center) + "'")
	g.SetMark(newCenter, g.Mark(center))
	for _, le := range g.Pend(center).Leaves {
		copyLeaf(g, newCenter, g.Head(le))
	}
	for _, pe := range g.Pend(center).PTwos {
		copyP2(g, newCenter, g.Head(pe))
	}
	toV := g.AddEdge(newCenter, v)
	classifyChild(g, toV)
	return g.Twin(toV)
}

// copyPendant copies v's complete pendant tree onto vprime, marks included.
func copyPendant(g *graph.Graph, v, vprime graph.VertexID) {
	for _, e := range g.Pend(v).Leaves {
		copyLeaf(g, vprime, g.Head(e))
	}
	for _, e := range g.Pend(v).PTwos {
		copyP2(g, vprime, g.Head(e))
	}
	for _, e := range g.Pend(v).YGraphs {
		copyY(g, vprime, g.Head(e))
	}
}
