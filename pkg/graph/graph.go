package graph

// Graph is a mutable, simple, undirected graph backed by arenas of vertex and
// half-edge records. Handles stay valid until the vertex or edge they name is
// deleted; deleting during adjacency traversal is supported the same way the
// intrusive lists support it: [Graph.DeleteEdge] returns the next half-edge
// of the tail's list.
//
// The zero value is not usable - use [New].
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	verts []*vertex
	edges []*halfEdge

	vcount int
	ecount int

	curMark uint32

	// BridgesFresh reports whether the bridge bits and CCNumber reflect the
	// current structure. Any structural change clears it.
	BridgesFresh bool
	// SubtreesFresh reports whether the pendant classification of all
	// vertices is up to date. Any structural change clears it.
	SubtreesFresh bool

	// CCNumber is the number of connected components. Valid while
	// BridgesFresh holds; edge deletions keep it incrementally correct via
	// the bridge bit of the deleted edge.
	CCNumber int
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{curMark: 1, BridgesFresh: false, SubtreesFresh: false}
}

// NumVertices returns the number of vertices present in the graph.
func (g *Graph) NumVertices() int { return g.vcount }

// NumEdges returns the number of undirected edges present in the graph.
func (g *Graph) NumEdges() int { return g.ecount }

// Empty reports whether the graph has no vertices.
func (g *Graph) Empty() bool { return g.vcount == 0 }

// Clear removes all vertices and edges. The generation counter survives so
// outstanding marks cannot collide.
func (g *Graph) Clear() {
	g.verts = g.verts[:0]
	g.edges = g.edges[:0]
	g.vcount, g.ecount = 0, 0
	g.CCNumber = 0
	g.BridgesFresh = true
	g.SubtreesFresh = true
}

func (g *Graph) v(id VertexID) *vertex   { return g.verts[id] }
func (g *Graph) e(id EdgeID) *halfEdge   { return g.edges[id] }
func (g *Graph) validV(id VertexID) bool { return id >= 0 && int(id) < len(g.verts) && g.verts[id].inUse }

// =============================================================================
// Vertex iteration and accessors
// =============================================================================

// Vertices returns the ids of all vertices in ascending id order. Reductions
// rely on this order for determinism.
func (g *Graph) Vertices() []VertexID {
	ids := make([]VertexID, 0, g.vcount)
	for i, v := range g.verts {
		if v.inUse {
			ids = append(ids, VertexID(i))
		}
	}
	return ids
}

// FirstVertex returns the lowest-id vertex, or NoVertex for an empty graph.
func (g *Graph) FirstVertex() VertexID {
	for i, v := range g.verts {
		if v.inUse {
			return VertexID(i)
		}
	}
	return NoVertex
}

// Alive reports whether the handle names a vertex that is still present.
func (g *Graph) Alive(v VertexID) bool { return g.validV(v) }

// Label returns the human-readable name of the vertex.
func (g *Graph) Label(v VertexID) string { return g.v(v).label }

// SetLabel replaces the vertex label.
func (g *Graph) SetLabel(v VertexID, s string) { g.v(v).label = s }

// AppendLabel appends a marker to the vertex label. Reductions use primes and
// stars to flag vertices whose identity was rewritten.
func (g *Graph) AppendLabel(v VertexID, suffix string) { g.v(v).label += suffix }

// Protected reports whether the vertex may not be removed by reductions.
func (g *Graph) Protected(v VertexID) bool { return g.v(v).prot }

// SetProtected marks or unmarks the vertex as protected.
func (g *Graph) SetProtected(v VertexID, p bool) { g.v(v).prot = p }

// Degree returns the number of incident edges.
func (g *Graph) Degree(v VertexID) int { return g.v(v).degree }

// IncidentBridges returns the number of bridge-flagged incident edges.
func (g *Graph) IncidentBridges(v VertexID) int { return g.v(v).incidentBridges }

// Pend returns the pendant classification record of the vertex. The pointer
// stays valid for the lifetime of the vertex; callers may mutate the lists.
func (g *Graph) Pend(v VertexID) *PendantInfo { return &g.v(v).pend }

// Mark returns the visited mark of the vertex.
func (g *Graph) Mark(v VertexID) uint32 { return g.v(v).mark }

// SetMark sets the visited mark of the vertex.
func (g *Graph) SetMark(v VertexID, m uint32) { g.v(v).mark = m }

// NextMark returns a fresh generation mark guaranteed not to be set on any
// vertex. On counter wrap-around all vertex marks are reset to zero.
func (g *Graph) NextMark() uint32 {
	g.curMark++
	if g.curMark == 0 {
		for _, v := range g.verts {
			v.mark = 0
		}
		g.curMark++
	}
	return g.curMark
}

// HasParent reports whether the cached parent edge of the vertex is valid.
func (g *Graph) HasParent(v VertexID) bool { return g.v(v).parent != NoEdge }

// ParentEdge returns the cached parent edge hint (NoEdge if invalid).
func (g *Graph) ParentEdge(v VertexID) EdgeID { return g.v(v).parent }

// SetParent caches e as the edge from v to its parent in the pendant forest.
func (g *Graph) SetParent(v VertexID, e EdgeID) { g.v(v).parent = e }

// InvalidateParent drops the cached parent edge of the vertex.
func (g *Graph) InvalidateParent(v VertexID) { g.v(v).parent = NoEdge }

// =============================================================================
// Edge accessors and adjacency traversal
// =============================================================================

// Head returns the vertex the half-edge points to.
func (g *Graph) Head(e EdgeID) VertexID { return g.e(e).head }

// Tail returns the vertex the half-edge points from.
func (g *Graph) Tail(e EdgeID) VertexID { return g.e(e ^ 1).head }

// Twin returns the reversed half-edge of e.
func (g *Graph) Twin(e EdgeID) EdgeID { return e ^ 1 }

// EdgeAlive reports whether the handle names an edge still present.
func (g *Graph) EdgeAlive(e EdgeID) bool {
	return e >= 0 && int(e) < len(g.edges) && g.edges[e].inUse
}

// IsBridge reports the bridge bit of the edge. Only meaningful while
// BridgesFresh holds.
func (g *Graph) IsBridge(e EdgeID) bool { return g.e(e).bridge }

// IsPermanent reports whether the search committed to keeping this edge.
func (g *Graph) IsPermanent(e EdgeID) bool { return g.e(e).permanent }

// MarkPermanent sets the permanent bit on both half-edges.
func (g *Graph) MarkPermanent(e EdgeID, mark bool) {
	g.e(e).permanent = mark
	g.e(e ^ 1).permanent = mark
}

// markBridge sets the bridge bit on both half-edges and keeps the incident
// bridge counters of both endpoints in sync (invariant I4).
func (g *Graph) markBridge(e EdgeID, mark bool) {
	d := 1
	if !mark {
		d = -1
	}
	g.e(e).bridge = mark
	g.v(g.e(e).head).incidentBridges += d
	g.e(e ^ 1).bridge = mark
	g.v(g.e(e^1).head).incidentBridges += d
}

// FirstAdj returns the first half-edge leaving v, or NoEdge.
func (g *Graph) FirstAdj(v VertexID) EdgeID { return g.v(v).adjHead }

// NextAdj returns the half-edge after e in its tail's adjacency list.
func (g *Graph) NextAdj(e EdgeID) EdgeID { return g.e(e).next }

// Adj returns all half-edges leaving v in adjacency order.
func (g *Graph) Adj(v VertexID) []EdgeID {
	var el []EdgeID
	for e := g.FirstAdj(v); e != NoEdge; e = g.NextAdj(e) {
		el = append(el, e)
	}
	return el
}

// FindEdge returns the half-edge from u to v, or NoEdge if the two are not
// adjacent.
func (g *Graph) FindEdge(u, v VertexID) EdgeID {
	for e := g.FirstAdj(u); e != NoEdge; e = g.NextAdj(e) {
		if g.e(e).head == v {
			return e
		}
	}
	return NoEdge
}

// Adjacent reports whether u and v are joined by an edge.
func (g *Graph) Adjacent(u, v VertexID) bool { return g.FindEdge(u, v) != NoEdge }

// EdgeString renders the edge canonically as "tail->head" by vertex labels.
func (g *Graph) EdgeString(e EdgeID) string {
	return g.Label(g.Tail(e)) + "->" + g.Label(g.Head(e))
}

// =============================================================================
// Structural modifications
// =============================================================================

// AddVertex adds a fresh vertex with the given label and returns its handle.
// Handles are never reused within one graph, so a stale handle stays
// detectably dead instead of silently naming a newer vertex.
func (g *Graph) AddVertex(label string) VertexID {
	id := VertexID(len(g.verts))
	g.verts = append(g.verts, &vertex{label: label, adjHead: NoEdge, adjTail: NoEdge, parent: NoEdge, inUse: true})
	g.vcount++
	return id
}

// allocEdgePair reserves a twin pair of half-edge records and returns the
// even half. Like vertex handles, edge handles are never reused.
func (g *Graph) allocEdgePair() EdgeID {
	id := EdgeID(len(g.edges))
	g.edges = append(g.edges, &halfEdge{next: NoEdge, prev: NoEdge, inUse: true})
	g.edges = append(g.edges, &halfEdge{next: NoEdge, prev: NoEdge, inUse: true})
	return id
}

func (g *Graph) linkAdj(tail VertexID, e EdgeID) {
	vr := g.v(tail)
	if vr.adjTail == NoEdge {
		vr.adjHead, vr.adjTail = e, e
	} else {
		g.e(vr.adjTail).next = e
		g.e(e).prev = vr.adjTail
		vr.adjTail = e
	}
	vr.degree++
}

func (g *Graph) unlinkAdj(tail VertexID, e EdgeID) {
	vr := g.v(tail)
	er := g.e(e)
	if er.prev != NoEdge {
		g.e(er.prev).next = er.next
	} else {
		vr.adjHead = er.next
	}
	if er.next != NoEdge {
		g.e(er.next).prev = er.prev
	} else {
		vr.adjTail = er.prev
	}
	vr.degree--
}

// AddEdge inserts the undirected edge {u,v} without any checks and returns
// the half-edge from u to v. Both endpoints must exist and must not already
// be adjacent; callers that cannot guarantee that use [Graph.AddEdgeChecked].
func (g *Graph) AddEdge(u, v VertexID) EdgeID {
	e := g.allocEdgePair()
	g.e(e).head = v
	g.e(e ^ 1).head = u
	g.linkAdj(u, e)
	g.linkAdj(v, e^1)

	g.BridgesFresh = false
	g.SubtreesFresh = false
	g.ecount++
	return e
}

// AddEdgeCopy inserts {u,v} and copies the permanent and bridge bits of the
// template edge, keeping the incident-bridge counters consistent.
func (g *Graph) AddEdgeCopy(u, v VertexID, src *Graph, template EdgeID) EdgeID {
	e := g.AddEdge(u, v)
	if src.IsPermanent(template) {
		g.MarkPermanent(e, true)
	}
	if src.IsBridge(template) {
		g.markBridge(e, true)
	}
	return e
}

// AddEdgeChecked inserts {u,v} after rejecting self-loops and parallel edges.
func (g *Graph) AddEdgeChecked(u, v VertexID) (EdgeID, error) {
	if u == v {
		return NoEdge, ErrSelfLoop
	}
	if g.Adjacent(u, v) {
		return NoEdge, ErrParallelEdge
	}
	return g.AddEdge(u, v), nil
}

// DeleteEdge removes the edge and returns the half-edge that followed e in
// its tail's adjacency list, so callers may keep traversing while deleting.
// Deleting a bridge raises CCNumber; parent hints through the edge are
// dropped.
func (g *Graph) DeleteEdge(e EdgeID) EdgeID {
	twin := e ^ 1
	w := g.e(e).head
	u := g.e(twin).head

	if g.e(e).bridge {
		g.v(u).incidentBridges--
		g.v(w).incidentBridges--
		g.CCNumber++
	}

	if p := g.v(u).parent; p != NoEdge && g.e(p).head == w {
		g.v(u).parent = NoEdge
	}
	if p := g.v(w).parent; p != NoEdge && g.e(p).head == u {
		g.v(w).parent = NoEdge
	}

	next := g.e(e).next

	g.unlinkAdj(u, e)
	g.unlinkAdj(w, twin)
	g.e(e).inUse = false
	g.e(twin).inUse = false

	g.ecount--
	g.BridgesFresh = false
	g.SubtreesFresh = false
	return next
}

// DeleteEdges removes every edge in the list.
func (g *Graph) DeleteEdges(el []EdgeID) {
	for _, e := range el {
		g.DeleteEdge(e)
	}
}

// DeleteVertex removes the vertex together with all incident edges.
func (g *Graph) DeleteVertex(v VertexID) {
	for g.v(v).adjHead != NoEdge {
		g.DeleteEdge(g.v(v).adjHead)
	}
	g.v(v).inUse = false
	g.vcount--
}

// DeleteComponent removes the whole connected component containing v and
// decrements CCNumber.
func (g *Graph) DeleteComponent(v VertexID) {
	mark := g.NextMark()
	queue := []VertexID{v}
	g.SetMark(v, mark)
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for e := g.FirstAdj(u); e != NoEdge; e = g.NextAdj(e) {
			if h := g.Head(e); g.Mark(h) != mark {
				g.SetMark(h, mark)
				queue = append(queue, h)
			}
		}
		g.DeleteVertex(u)
	}
	g.CCNumber--
}

// ComponentSize returns the number of vertices in the component of v.
func (g *Graph) ComponentSize(v VertexID) int {
	mark := g.NextMark()
	count := 0
	queue := []VertexID{v}
	g.SetMark(v, mark)
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		count++
		for e := g.FirstAdj(u); e != NoEdge; e = g.NextAdj(e) {
			if h := g.Head(e); g.Mark(h) != mark {
				g.SetMark(h, mark)
				queue = append(queue, h)
			}
		}
	}
	return count
}

// Leaves returns all degree-1 vertices in ascending id order.
func (g *Graph) Leaves() []VertexID {
	var leaves []VertexID
	for _, v := range g.Vertices() {
		if g.Degree(v) == 1 {
			leaves = append(leaves, v)
		}
	}
	return leaves
}

// =============================================================================
// Copying
// =============================================================================

// CopyComponent copies the connected component of v into dst. If outmap is
// non-nil it receives the translation from this graph's vertex ids to the
// handles in dst.
func (g *Graph) CopyComponent(v VertexID, dst *Graph, outmap map[VertexID]VertexID) {
	if outmap == nil {
		outmap = make(map[VertexID]VertexID)
	}
	mark := g.NextMark()
	queue := []VertexID{v}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		if g.Mark(u) == mark {
			continue
		}
		nu := dst.AddVertex(g.Label(u))
		outmap[u] = nu
		g.SetMark(u, mark)
		for e := g.FirstAdj(u); e != NoEdge; e = g.NextAdj(e) {
			h := g.Head(e)
			if g.Mark(h) != mark {
				queue = append(queue, h)
			} else {
				dst.AddEdgeCopy(nu, outmap[h], g, e)
			}
		}
	}
}

// AddDisjointly copies all of src into g as additional components. If outmap
// is non-nil it receives the id translation.
func (g *Graph) AddDisjointly(src *Graph, outmap map[VertexID]VertexID) {
	if src.Empty() {
		return
	}
	if outmap == nil {
		outmap = make(map[VertexID]VertexID)
	}
	for _, x := range src.Vertices() {
		y := g.AddVertex(src.Label(x))
		g.v(y).prot = src.Protected(x)
		outmap[x] = y
		for e := src.FirstAdj(x); e != NoEdge; e = src.NextAdj(e) {
			if ny, ok := outmap[src.Head(e)]; ok {
				g.AddEdgeCopy(ny, y, src, e)
			}
		}
	}
}

// Clone deep-copies the graph. The copy shares no mutable state with g; if
// outmap is non-nil it receives the vertex-id translation, through which edge
// handles can be converted with [ConvertEdge]. Pendant classifications are
// not carried over and must be recomputed on the clone.
func (g *Graph) Clone(outmap map[VertexID]VertexID) *Graph {
	ng := New()
	ng.curMark = g.curMark
	ng.AddDisjointly(g, outmap)
	// AddDisjointly dirties the freshness flag on every insertion; the copy
	// is exact, so restore it
	ng.BridgesFresh = g.BridgesFresh
	ng.CCNumber = g.CCNumber
	return ng
}

// ConvertEdge translates an edge handle of the source graph into the
// corresponding handle of a clone through the clone's outmap.
func ConvertEdge(src *Graph, e EdgeID, dst *Graph, outmap map[VertexID]VertexID) EdgeID {
	return dst.FindEdge(outmap[src.Tail(e)], outmap[src.Head(e)])
}

// SplitOffComponent moves one connected component of g into comp. It is a
// no-op unless g has at least two components.
func SplitOffComponent(g, comp *Graph, outmap map[VertexID]VertexID) {
	if g.CCNumber < 2 || g.Empty() {
		return
	}
	seed := g.FirstVertex()
	g.CopyComponent(seed, comp, outmap)
	g.DeleteComponent(seed)
}

// =============================================================================
// Equality and hashing
// =============================================================================

// Equal reports whether g and other contain the same vertices (by label and
// protection, in iteration order) with the same adjacency and the same
// permanent bits. It is the full-equality guard behind the hash-keyed
// solution cache: permanence matters because it constrains which solutions
// are legal.
func (g *Graph) Equal(other *Graph) bool {
	if g.vcount != other.vcount || g.ecount != other.ecount {
		return false
	}
	va, vb := g.Vertices(), other.Vertices()
	// vertices correspond positionally in iteration order
	posA := make(map[VertexID]int, len(va))
	posB := make(map[VertexID]int, len(vb))
	for i := range va {
		posA[va[i]] = i
		posB[vb[i]] = i
	}
	for i := range va {
		x, y := va[i], vb[i]
		if g.Label(x) != other.Label(y) || g.Degree(x) != other.Degree(y) ||
			g.Protected(x) != other.Protected(y) {
			return false
		}
		heads := make(map[int]bool, g.Degree(x))
		perms := make(map[int]bool, g.Degree(x))
		for e := g.FirstAdj(x); e != NoEdge; e = g.NextAdj(e) {
			heads[posA[g.Head(e)]] = true
			perms[posA[g.Head(e)]] = g.IsPermanent(e)
		}
		for e := other.FirstAdj(y); e != NoEdge; e = other.NextAdj(e) {
			p := posB[other.Head(e)]
			if !heads[p] || perms[p] != other.IsPermanent(e) {
				return false
			}
		}
	}
	return true
}

// Hash computes a cheap structural fingerprint: for every vertex, the parity
// of its degree is folded into the bit selected by its position in iteration
// order, and the parity of the vertex count goes into the low bit. Position
// rather than raw id keeps the hash stable across cloning, which renumbers.
// Collisions are expected; cache lookups must confirm with [Graph.Equal].
func (g *Graph) Hash() uint32 {
	var h uint32
	for i, v := range g.Vertices() {
		h ^= uint32(g.Degree(v)&1) << (uint32(i) % 32)
	}
	return h<<1 | uint32(g.vcount&1)
}
