package graph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// build constructs a graph from label pairs and returns it with a label
// lookup.
func build(t *testing.T, edges [][2]string) (*Graph, map[string]VertexID) {
	t.Helper()
	g := New()
	byLabel := make(map[string]VertexID)
	lookup := func(l string) VertexID {
		if v, ok := byLabel[l]; ok {
			return v
		}
		v := g.AddVertex(l)
		byLabel[l] = v
		return v
	}
	for _, e := range edges {
		g.AddEdge(lookup(e[0]), lookup(e[1]))
	}
	return g, byLabel
}

func triangleEdges() [][2]string {
	return [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}}
}

func k4Edges() [][2]string {
	return [][2]string{{"a", "b"}, {"a", "c"}, {"a", "d"}, {"b", "c"}, {"b", "d"}, {"c", "d"}}
}

func TestAddAndDeleteEdges(t *testing.T) {
	g, vs := build(t, triangleEdges())

	assert.Equal(t, 3, g.NumVertices())
	assert.Equal(t, 3, g.NumEdges())
	assert.Equal(t, 2, g.Degree(vs["a"]))
	assert.True(t, g.Adjacent(vs["a"], vs["b"]))

	e := g.FindEdge(vs["a"], vs["b"])
	require.NotEqual(t, NoEdge, e)
	assert.Equal(t, vs["b"], g.Head(e))
	assert.Equal(t, vs["a"], g.Tail(e))
	assert.Equal(t, e, g.Twin(g.Twin(e)))
	assert.Equal(t, "a->b", g.EdgeString(e))

	g.DeleteEdge(e)
	assert.Equal(t, 2, g.NumEdges())
	assert.False(t, g.Adjacent(vs["a"], vs["b"]))
	assert.Equal(t, 1, g.Degree(vs["a"]))
	assert.Equal(t, 1, g.Degree(vs["b"]))
}

func TestAddEdgeChecked(t *testing.T) {
	g, vs := build(t, triangleEdges())

	_, err := g.AddEdgeChecked(vs["a"], vs["a"])
	assert.ErrorIs(t, err, ErrSelfLoop)

	_, err = g.AddEdgeChecked(vs["a"], vs["b"])
	assert.ErrorIs(t, err, ErrParallelEdge)
}

func TestDeleteEdgeReturnsNext(t *testing.T) {
	g := New()
	v := g.AddVertex("v")
	var heads []VertexID
	for _, l := range []string{"x", "y", "z"} {
		heads = append(heads, g.AddVertex(l))
		g.AddEdge(v, heads[len(heads)-1])
	}

	// deleting while traversing visits every remaining edge exactly once
	var seen []VertexID
	for e := g.FirstAdj(v); e != NoEdge; {
		seen = append(seen, g.Head(e))
		e = g.DeleteEdge(e)
	}
	assert.Equal(t, heads, seen)
	assert.Equal(t, 0, g.Degree(v))
	assert.Equal(t, 0, g.NumEdges())
}

func TestDeleteVertexRemovesIncidentEdges(t *testing.T) {
	g, vs := build(t, k4Edges())
	g.DeleteVertex(vs["a"])

	assert.Equal(t, 3, g.NumVertices())
	assert.Equal(t, 3, g.NumEdges())
	assert.False(t, g.Alive(vs["a"]))
	for _, l := range []string{"b", "c", "d"} {
		assert.Equal(t, 2, g.Degree(vs[l]))
	}
}

func TestBridgesOnPath(t *testing.T) {
	g, vs := build(t, [][2]string{{"a", "b"}, {"b", "c"}})

	bridges := g.Bridges()
	assert.Len(t, bridges, 2)
	assert.True(t, g.BridgesFresh)
	assert.Equal(t, 1, g.CCNumber)

	// invariant I4: counters match the marked edges
	assert.Equal(t, 1, g.IncidentBridges(vs["a"]))
	assert.Equal(t, 2, g.IncidentBridges(vs["b"]))
	assert.Equal(t, 1, g.IncidentBridges(vs["c"]))
}

func TestBridgesOnTriangle(t *testing.T) {
	g, vs := build(t, triangleEdges())
	assert.Empty(t, g.Bridges())
	assert.Equal(t, 0, g.IncidentBridges(vs["a"]))
	assert.Equal(t, 1, g.CCNumber)
}

func TestWeightedBridges(t *testing.T) {
	// a triangle with a tail of two vertices: t2 - t1 - a - (triangle a,b,c)
	g, vs := build(t, [][2]string{
		{"a", "b"}, {"b", "c"}, {"c", "a"}, {"a", "t1"}, {"t1", "t2"},
	})

	weighted := g.WeightedBridges()
	require.Len(t, weighted, 2)
	bySplit := make(map[string]int)
	for _, we := range weighted {
		bySplit[g.EdgeString(we.Edge)] = we.Weight
	}
	// the DFS enters the tail from a, so both bridges point away from the
	// triangle
	assert.Equal(t, 2, bySplit["a->t1"])
	assert.Equal(t, 1, bySplit["t1->t2"])
	_ = vs
}

func TestDeleteBridgeUpdatesComponentCount(t *testing.T) {
	g, vs := build(t, [][2]string{{"a", "b"}, {"b", "c"}})
	g.MarkBridges()
	require.Equal(t, 1, g.CCNumber)

	g.DeleteEdge(g.FindEdge(vs["a"], vs["b"]))
	assert.Equal(t, 2, g.CCNumber)
	assert.False(t, g.BridgesFresh)
}

func TestFES(t *testing.T) {
	tri, _ := build(t, triangleEdges())
	assert.Equal(t, 1, tri.FES())

	k4, _ := build(t, k4Edges())
	assert.Equal(t, 3, k4.FES())

	path, _ := build(t, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}})
	assert.Equal(t, 0, path.FES())
}

func TestSpanningFESCoversAllComponents(t *testing.T) {
	g, _ := build(t, [][2]string{
		{"a", "b"}, {"b", "c"}, {"c", "a"},
		{"x", "y"}, {"y", "z"}, {"z", "x"},
	})
	fes := g.SpanningFES()
	require.Len(t, fes, 2)

	g.DeleteEdges(fes)
	assert.Equal(t, 0, g.FES())
}

func TestComponentOps(t *testing.T) {
	g, vs := build(t, [][2]string{
		{"a", "b"}, {"b", "c"}, {"c", "a"},
		{"x", "y"}, {"y", "z"}, {"z", "x"},
	})
	g.MarkBridges()
	assert.Equal(t, 2, g.CCNumber)
	assert.Equal(t, 3, g.ComponentSize(vs["a"]))

	comp := New()
	SplitOffComponent(g, comp, nil)
	assert.Equal(t, 3, g.NumVertices())
	assert.Equal(t, 3, comp.NumVertices())
	assert.Equal(t, 3, comp.NumEdges())
	assert.Equal(t, 1, g.CCNumber)

	g.DeleteComponent(g.FirstVertex())
	assert.True(t, g.Empty())
	assert.Equal(t, 0, g.CCNumber)
}

func TestCloneRoundTrip(t *testing.T) {
	g, vs := build(t, [][2]string{
		{"a", "b"}, {"b", "c"}, {"c", "a"}, {"c", "d"},
	})
	g.MarkBridges()
	perm := g.FindEdge(vs["a"], vs["b"])
	g.MarkPermanent(perm, true)

	outmap := make(map[VertexID]VertexID)
	clone := g.Clone(outmap)

	assert.Equal(t, g.NumVertices(), clone.NumVertices())
	assert.Equal(t, g.NumEdges(), clone.NumEdges())
	assert.Equal(t, g.CCNumber, clone.CCNumber)

	// every edge translates to an edge with the same endpoints and flags
	for _, v := range g.Vertices() {
		assert.Equal(t, g.Label(v), clone.Label(outmap[v]))
		for e := g.FirstAdj(v); e != NoEdge; e = g.NextAdj(e) {
			ce := ConvertEdge(g, e, clone, outmap)
			require.NotEqual(t, NoEdge, ce)
			assert.Equal(t, g.Label(g.Head(e)), clone.Label(clone.Head(ce)))
			assert.Equal(t, g.Label(g.Tail(e)), clone.Label(clone.Tail(ce)))
			assert.Equal(t, g.IsPermanent(e), clone.IsPermanent(ce))
			assert.Equal(t, g.IsBridge(e), clone.IsBridge(ce))
		}
	}

	// no shared mutable state
	clone.DeleteEdge(clone.FindEdge(outmap[vs["a"]], outmap[vs["b"]]))
	assert.True(t, g.Adjacent(vs["a"], vs["b"]))
}

func TestEqualAndHash(t *testing.T) {
	g1, _ := build(t, triangleEdges())
	g2, _ := build(t, triangleEdges())
	assert.True(t, g1.Equal(g2))
	assert.Equal(t, g1.Hash(), g2.Hash())

	clone := g1.Clone(nil)
	assert.True(t, g1.Equal(clone))
	assert.Equal(t, g1.Hash(), clone.Hash())

	// permanence is part of equality
	e := g2.FindEdge(g2.FirstVertex(), g2.Head(g2.FirstAdj(g2.FirstVertex())))
	g2.MarkPermanent(e, true)
	assert.False(t, g1.Equal(g2))

	path, _ := build(t, [][2]string{{"a", "b"}, {"b", "c"}})
	assert.False(t, g1.Equal(path))
}

func TestNextMarkWraparound(t *testing.T) {
	g, vs := build(t, [][2]string{{"a", "b"}})
	g.SetMark(vs["a"], g.NextMark())

	g.curMark = ^uint32(0)
	m := g.NextMark()
	assert.Equal(t, uint32(1), m)
	assert.Equal(t, uint32(0), g.Mark(vs["a"]))
}

func TestMarkPermanentBothHalves(t *testing.T) {
	g, vs := build(t, [][2]string{{"a", "b"}})
	e := g.FindEdge(vs["a"], vs["b"])
	g.MarkPermanent(e, true)
	assert.True(t, g.IsPermanent(g.Twin(e)))
}

func TestReadIgnoresDuplicatesAndLoops(t *testing.T) {
	in := "a b\nb c\na b\nc c\n\n c a \n"
	g, err := Read(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 3, g.NumVertices())
	assert.Equal(t, 3, g.NumEdges())
}

func TestWriteRoundTrip(t *testing.T) {
	g, _ := build(t, triangleEdges())
	var sb strings.Builder
	require.NoError(t, g.Write(&sb, false))

	back, err := Read(strings.NewReader(sb.String()))
	require.NoError(t, err)
	assert.True(t, g.Equal(back))
}
