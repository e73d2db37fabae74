package cache

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ckrueger/catforest/pkg/graph"
)

func triangle(labels ...string) *graph.Graph {
	g := graph.New()
	var vs []graph.VertexID
	for _, l := range labels {
		vs = append(vs, g.AddVertex(l))
	}
	g.AddEdge(vs[0], vs[1])
	g.AddEdge(vs[1], vs[2])
	g.AddEdge(vs[2], vs[0])
	return g
}

func TestMemoryLookupByEquality(t *testing.T) {
	c := NewMemory(16)
	c.Insert(triangle("a", "b", "c"), graph.Solution{"a->b"})

	sol, ok := c.Lookup(triangle("a", "b", "c"))
	require.True(t, ok)
	assert.Equal(t, graph.Solution{"a->b"}, sol)

	// different labels hash alike but fail the equality guard
	_, ok = c.Lookup(triangle("x", "y", "z"))
	assert.False(t, ok)

	// handing out copies keeps entries immutable
	sol[0] = "mutated"
	again, ok := c.Lookup(triangle("a", "b", "c"))
	require.True(t, ok)
	assert.Equal(t, graph.Solution{"a->b"}, again)
}

func TestMemoryDuplicateInsert(t *testing.T) {
	c := NewMemory(16)
	c.Insert(triangle("a", "b", "c"), graph.Solution{"a->b"})
	c.Insert(triangle("a", "b", "c"), graph.Solution{"b->c"})
	assert.Equal(t, 1, c.Len())

	sol, ok := c.Lookup(triangle("a", "b", "c"))
	require.True(t, ok)
	assert.Equal(t, graph.Solution{"a->b"}, sol)
}

func TestMemoryEviction(t *testing.T) {
	c := NewMemory(4)
	for i := 0; i < 10; i++ {
		l := strconv.Itoa(i)
		c.Insert(triangle("a"+l, "b"+l, "c"+l), graph.Solution{"a" + l + "->b" + l})
	}
	assert.LessOrEqual(t, c.Len(), 5)

	// the most recent entry is still there
	_, ok := c.Lookup(triangle("a9", "b9", "c9"))
	assert.True(t, ok)
}

func TestNullCache(t *testing.T) {
	c := NewNull()
	c.Insert(triangle("a", "b", "c"), graph.Solution{"a->b"})
	_, ok := c.Lookup(triangle("a", "b", "c"))
	assert.False(t, ok)
}
