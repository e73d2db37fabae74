package graph

import "errors"

var (
	// ErrSelfLoop is returned by [Graph.AddEdgeChecked] when both endpoints
	// are the same vertex. The graph is simple; self-loops are forbidden.
	ErrSelfLoop = errors.New("self-loops are not allowed")

	// ErrParallelEdge is returned by [Graph.AddEdgeChecked] when the two
	// vertices are already adjacent. Parallel edges are forbidden.
	ErrParallelEdge = errors.New("parallel edges are not allowed")
)

// VertexID is an opaque handle to a vertex of a [Graph]. Handles are only
// meaningful for the graph that issued them; after [Graph.Clone] they must be
// translated through the clone's outmap.
type VertexID int32

// EdgeID is an opaque handle to a directed half-edge. Every undirected edge
// is stored as two half-edges referencing each other; [Graph.Twin] returns
// the reverse direction. Like vertex handles, edge handles are per-graph.
type EdgeID int32

// NoVertex and NoEdge are the invalid handles returned by lookups that find
// nothing.
const (
	NoVertex VertexID = -1
	NoEdge   EdgeID   = -1
)

// PendantInfo records which neighbors of a vertex are roots of which kind of
// pendant subtree. All entries are half-edges pointing from the vertex to the
// pendant child. The lists are maintained by the tree-reduction machinery and
// are only trustworthy while the graph's subtree marking is fresh.
type PendantInfo struct {
	// Leaves holds edges to degree-1 neighbors.
	Leaves []EdgeID
	// PTwos holds edges to degree-2 neighbors whose other neighbor is a leaf.
	PTwos []EdgeID
	// YGraphs holds edges to centers of pendant Y-graphs.
	YGraphs []EdgeID
	// TClaws holds edges to degree-2 neighbors whose other neighbor is the
	// center of a pendant Y-graph.
	TClaws []EdgeID
}

// Count returns the total number of pendant subtrees hanging off the vertex.
func (p *PendantInfo) Count() int {
	return len(p.Leaves) + len(p.PTwos) + len(p.YGraphs) + len(p.TClaws)
}

// Empty reports whether the vertex has no classified pendant subtrees.
func (p *PendantInfo) Empty() bool { return p.Count() == 0 }

func (p *PendantInfo) clear() {
	p.Leaves = p.Leaves[:0]
	p.PTwos = p.PTwos[:0]
	p.YGraphs = p.YGraphs[:0]
	p.TClaws = p.TClaws[:0]
}

// tarjanInfo carries the per-vertex state of the bridge finder.
type tarjanInfo struct {
	number, low, high, nd int
}

// vertex is the arena record behind a VertexID.
type vertex struct {
	label string
	prot  bool

	// mark is the reusable visited flag, compared against the graph's
	// generation counter instead of a per-traversal visited set.
	mark uint32

	incidentBridges int

	// adjHead/adjTail anchor the intrusive doubly-linked adjacency list of
	// half-edges whose tail is this vertex.
	adjHead, adjTail EdgeID
	degree           int

	// parent caches the edge to this vertex's parent in the pendant forest.
	// It is a hint only: NoEdge means unknown.
	parent EdgeID

	pend PendantInfo
	tar  tarjanInfo

	inUse bool
}

// halfEdge is the arena record behind an EdgeID. Half-edges are allocated in
// twin pairs; ids 2k and 2k+1 always form one undirected edge, so the twin of
// e is e^1.
type halfEdge struct {
	head       VertexID
	next, prev EdgeID

	bridge    bool
	permanent bool

	inUse bool
}

// WeightedEdge pairs a bridge with the number of vertices in the component
// its head side splits off.
type WeightedEdge struct {
	Edge   EdgeID
	Weight int
}
