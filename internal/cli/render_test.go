package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ckrueger/catforest/pkg/graph"
)

func TestToDOT(t *testing.T) {
	g := graph.New()
	a := g.AddVertex("a")
	b := g.AddVertex("b")
	c := g.AddVertex("c")
	g.AddEdge(a, b)
	g.AddEdge(b, c)

	dot := toDOT(g, false)
	assert.True(t, strings.HasPrefix(dot, "graph G {"))
	assert.Contains(t, dot, `"a" -- "b";`)
	assert.Contains(t, dot, `"b" -- "c";`)
	assert.NotContains(t, dot, `"a" -- "c"`)
	// undirected: each edge appears once
	assert.Equal(t, 2, strings.Count(dot, " -- "))
}

func TestToDOTDetailed(t *testing.T) {
	g := graph.New()
	a := g.AddVertex("a")
	b := g.AddVertex("b")
	g.AddEdge(a, b)

	dot := toDOT(g, true)
	assert.Contains(t, dot, "d=1")
}
